// Command rdsdump decodes a raw stream of RDS block records (3 bytes
// each: lsb, msb, status) from stdin and prints decoded events to
// stdout. It has no tuner attached, so frequency-dependent output (the
// station's freq field, keyboard commands) is inert; it exists for
// offline decoding of captured RDS streams, the way the teacher stack's
// smaller cmd/ utilities operate on saved data rather than live hardware.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/mlang/fmrds/rds"
	"github.com/mlang/fmrds/registry"
)

type staticTuner struct{ freq float64 }

func (s *staticTuner) CurrentFrequency() float64    { return s.freq }
func (s *staticTuner) MinFrequency() float64        { return 87.5 }
func (s *staticTuner) MaxFrequency() float64        { return 108.0 }
func (s *staticTuner) SetFrequency(mhz float64) error { s.freq = mhz; return nil }

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "rdsdump:", err)
		os.Exit(1)
	}
}

func run() error {
	frequency := pflag.Float64P("frequency", "F", 0, "Frequency (MHz) to stamp decoded stations with.")
	verbose := pflag.BoolP("verbose", "v", false, "Enable debug logging.")
	pflag.Parse()

	logger := log.New(os.Stdout)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	decoder := rds.NewDecoder(registry.New(), &staticTuner{freq: *frequency}, logger)

	reader := bufio.NewReader(os.Stdin)
	for {
		var rec [3]byte
		if _, err := io.ReadFull(reader, rec[:]); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("rdsdump: reading block: %w", err)
		}
		decoder.Feed(rds.Block{LSB: rec[0], MSB: rec[1], Status: rec[2]})
	}
}
