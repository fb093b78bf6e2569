package tuner

import (
	"fmt"

	"github.com/xylo04/goHamlib"
)

// HamlibTuner drives a receiver through Hamlib's rig-control abstraction
// instead of a V4L2 device node: a serial CAT interface or a networked
// rigctld, selected by rigModel and port exactly as rigctl would be.
type HamlibTuner struct {
	rig           *goHamlib.Rig
	min, max, cur float64
}

// OpenHamlib opens a rig of the given Hamlib model number on port
// (a serial device path or host:port for NET_RIGCTL) and queries its
// frequency range.
func OpenHamlib(rigModel int, port string, baud int) (*HamlibTuner, error) {
	rig := goHamlib.NewRig(rigModel)
	rig.SetConf("rig_pathname", port)
	if baud > 0 {
		rig.SetConf("serial_speed", fmt.Sprintf("%d", baud))
	}

	if err := rig.Open(); err != nil {
		return nil, fmt.Errorf("tuner: hamlib rig_open: %w", err)
	}

	lo, hi, err := rig.GetFreqRange(goHamlib.RIG_VFO_CURR)
	if err != nil {
		rig.Close()
		return nil, fmt.Errorf("tuner: hamlib rig_get_range: %w", err)
	}

	t := &HamlibTuner{rig: rig, min: lo / 1e6, max: hi / 1e6}
	t.cur, _ = t.readFrequency()
	return t, nil
}

func (t *HamlibTuner) readFrequency() (float64, error) {
	hz, err := t.rig.GetFreq(goHamlib.RIG_VFO_CURR)
	if err != nil {
		return 0, fmt.Errorf("tuner: hamlib rig_get_freq: %w", err)
	}
	return hz / 1e6, nil
}

func (t *HamlibTuner) CurrentFrequency() float64 { return t.cur }
func (t *HamlibTuner) MinFrequency() float64     { return t.min }
func (t *HamlibTuner) MaxFrequency() float64     { return t.max }

func (t *HamlibTuner) SetFrequency(mhz float64) error {
	if mhz < t.min || mhz > t.max {
		return ErrOutOfRange
	}
	if err := t.rig.SetFreq(goHamlib.RIG_VFO_CURR, mhz*1e6); err != nil {
		return fmt.Errorf("tuner: hamlib rig_set_freq: %w", err)
	}
	t.cur = mhz
	return nil
}

// Seek is not offered by Hamlib's rig-control abstraction the way it is
// by V4L2's hardware seek ioctl; rig-control receivers step by the
// tuning increment instead.
func (t *HamlibTuner) Seek(up bool) (float64, error) {
	const step = 0.1
	next := t.cur + step
	if !up {
		next = t.cur - step
	}
	if err := t.SetFrequency(next); err != nil {
		return t.cur, err
	}
	return t.cur, nil
}

func (t *HamlibTuner) SetVolume(percent int) error {
	if percent > 100 {
		percent = 100
	} else if percent < 0 {
		percent = 0
	}
	if err := t.rig.SetLevel(goHamlib.RIG_VFO_CURR, goHamlib.RIG_LEVEL_AF, float32(percent)/100.0); err != nil {
		return fmt.Errorf("tuner: hamlib rig_set_level AF: %w", err)
	}
	return nil
}

func (t *HamlibTuner) Close() error {
	return t.rig.Close()
}
