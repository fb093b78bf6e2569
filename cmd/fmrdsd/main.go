// Command fmrdsd is the FM radio receiver daemon: it decodes the RDS
// sub-carrier from a tuner device, keeps a station registry, resamples
// captured audio onto the output clock, and optionally announces a
// small control-query service and drives a status LED.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/pkg/term"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/mlang/fmrds/audio"
	"github.com/mlang/fmrds/config"
	"github.com/mlang/fmrds/control"
	"github.com/mlang/fmrds/discovery"
	"github.com/mlang/fmrds/rds"
	"github.com/mlang/fmrds/resample"
	"github.com/mlang/fmrds/session"
	"github.com/mlang/fmrds/status"
	"github.com/mlang/fmrds/tuner"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fmrdsd:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		device      = pflag.StringP("device", "d", "/dev/radio0", "Radio device or rig-control endpoint.")
		alsaDevice  = pflag.StringP("alsa-device", "a", "hw:Music", "Audio capture device.")
		frequency   = pflag.Float64P("frequency", "F", 0, "Tune to this frequency (MHz) at startup.")
		useGraph    = pflag.BoolP("graph", "j", false, "Use the realtime audio graph (PortAudio) instead of file recording.")
		outFile     = pflag.StringP("output", "o", "", "Record resampled audio to this file.")
		seekUp      = pflag.BoolP("seek", "s", false, "Hardware-seek upward at startup instead of tuning to -F.")
		verbosity   = pflag.CountP("verbose", "v", "Increase verbosity (repeatable).")
		configFile  = pflag.StringP("config", "c", "fmrds.yaml", "YAML config file, used if present.")
		announce    = pflag.BoolP("announce", "n", false, "Announce a control-query service via mDNS/DNS-SD.")
		help        = pflag.BoolP("help", "h", false, "Display help text.")
	)

	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "fmrdsd - FM radio receiver with RDS decoding and adaptive resampling.")
		fmt.Fprintln(os.Stderr)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if *help {
		pflag.Usage()
		return nil
	}

	cfg, err := config.LoadIfExists(*configFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *announce {
		cfg.Announce = true
	}

	logger := log.New(os.Stderr)
	logger.SetLevel(verbosityToLevel(*verbosity))

	radioPath := *device
	if radioPath == "" {
		if found, derr := discovery.RadioDevice(); derr != nil {
			logger.Warn("device discovery failed", "err", derr)
		} else if found != "" {
			radioPath = found
		}
	}
	if radioPath == "" {
		radioPath = cfg.RadioDevice
	}

	t, err := openTuner(radioPath)
	if err != nil {
		return fmt.Errorf("opening tuner: %w", err)
	}
	defer t.Close()

	sess := session.New(cfg, t, logger)

	var indicator *status.Indicator
	if cfg.StatusGPIOChip != "" {
		ind, ierr := status.Open(cfg.StatusGPIOChip, cfg.StatusGPIOLine)
		if ierr != nil {
			logger.Warn("status indicator unavailable", "err", ierr)
		} else {
			indicator = ind
			defer indicator.Close()
		}
	}

	if *seekUp {
		if f, serr := t.Seek(true); serr != nil {
			logger.Warn("hardware seek failed", "err", serr)
		} else {
			logger.Info("sought", "frequency", f)
			blink(indicator, logger)
		}
	} else if *frequency != 0 {
		if serr := t.SetFrequency(*frequency); serr != nil {
			logger.Warn("initial tune failed", "err", serr)
		} else {
			blink(indicator, logger)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	group, gctx := errgroup.WithContext(ctx)

	decoder := rds.NewDecoder(sess.Registry, sess.Tuner, logger)
	blocks := make(chan rds.Block, 64)
	commands := make(chan rds.Command, 8)

	kb, kbErr := term.Open("/dev/tty", term.RawMode)
	if kbErr != nil {
		logger.Warn("keyboard raw mode unavailable, commands disabled", "err", kbErr)
	} else {
		defer kb.Restore()
		defer kb.Close()
	}

	group.Go(func() error {
		return decoder.Decode(gctx, blocks, commands)
	})

	// A negative fd is ignored by poll, so without a keyboard the loop
	// still delivers RDS blocks.
	keyboardFD := -1
	if kb != nil {
		keyboardFD = int(kb.Fd())
	}
	group.Go(func() error {
		return runInputLoop(gctx, tunerFD(t), keyboardFD, blocks, commands, func() {
			logger.Debug("no RDS data")
		})
	})

	if *useGraph {
		group.Go(func() error {
			return runAudioGraph(gctx, cfg, *alsaDevice, logger)
		})
	}

	if cfg.Announce {
		summarySource := func() control.StationSummary {
			return control.StationSummary{
				CurrentFrequency: sess.Tuner.CurrentFrequency(),
				RecentStations:   sess.Summary(5),
			}
		}
		group.Go(func() error {
			return control.Serve(gctx, ":7373", summarySource)
		})
		if aerr := control.Announce(gctx, "fmrdsd", 7373); aerr != nil {
			logger.Warn("control announcement failed", "err", aerr)
		}
	}

	_ = outFile // -o is parsed but nothing records to the file

	return group.Wait()
}

// blink signals a successful tune/seek on the status LED, if present,
// without blocking startup on GPIO latency.
func blink(indicator *status.Indicator, logger *log.Logger) {
	if indicator == nil {
		return
	}
	go func() {
		if err := indicator.Blink(); err != nil {
			logger.Warn("status blink failed", "err", err)
		}
	}()
}

func verbosityToLevel(v int) log.Level {
	switch {
	case v >= 3:
		return log.DebugLevel
	case v >= 1:
		return log.InfoLevel
	default:
		return log.WarnLevel
	}
}

// openTuner selects between the V4L2-radio and Hamlib rig-control
// backends based on whether path looks like a device node or a
// rig-control endpoint (host:port).
func openTuner(path string) (tuner.Controller, error) {
	if strings.Contains(path, ":") {
		return tuner.OpenHamlib(0, path, 0) // model 0 = RIG_MODEL_DUMMY/auto, refined via config in a fuller build
	}
	return tuner.OpenV4L2(path)
}

func tunerFD(t tuner.Controller) int {
	type fdTuner interface{ FD() int }
	if f, ok := t.(fdTuner); ok {
		return f.FD()
	}
	return -1
}

func runAudioGraph(ctx context.Context, cfg config.Config, alsaDevice string, logger *log.Logger) error {
	const sampleRate = 96000.0
	const channels = 2

	g, err := audio.Open(alsaDevice, sampleRate, channels, cfg.PeriodSize)
	if err != nil {
		return fmt.Errorf("opening audio graph: %w", err)
	}
	defer g.Close()

	target := cfg.TargetDelay(cfg.PeriodSize)
	maxDiff := cfg.MaxDiff(cfg.PeriodSize)
	r := resample.New(target, maxDiff, 1.0, channels)
	capture := g.Capture()

	<-ctx.Done()
	_, _ = r.Process(capture, cfg.PeriodSize, 0) // drains one final cycle on shutdown
	return ctx.Err()
}
