// Package config loads the daemon's startup configuration from YAML,
// layered under the CLI flag defaults the way the teacher stack treats
// its own config file as an override of built-in defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk shape of fmrds.yaml. Every field has a sensible
// zero value so a missing or partial file still produces a usable
// configuration.
type Config struct {
	RadioDevice string `yaml:"radio_device"`
	AudioDevice string `yaml:"audio_device"`

	NumPeriods    int `yaml:"num_periods"`
	PeriodSize    int `yaml:"period_size"`
	CaptureBuffer int `yaml:"capture_buffer"`

	Announce       bool   `yaml:"announce"`
	StatusGPIOChip string `yaml:"status_gpio_chip"`
	StatusGPIOLine int    `yaml:"status_gpio_line"`

	Verbosity int `yaml:"verbosity"`
}

// Default returns the built-in configuration matching the original
// program's compiled-in defaults (DEFAULT_RADIO_DEVICE, DEFAULT_AUDIO_DEVICE).
func Default() Config {
	return Config{
		RadioDevice:   "/dev/radio0",
		AudioDevice:   "hw:Music",
		NumPeriods:    4,
		PeriodSize:    1024,
		CaptureBuffer: 8192,
	}
}

// Load reads and decodes path over top of Default(), so a config file
// needs to specify only the fields it wants to override.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// LoadIfExists behaves like Load but returns Default() without error
// when path does not exist, matching the CLI's "-c fmrds.yaml if present"
// semantics.
func LoadIfExists(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// TargetDelay computes the resampler's nominal capture-buffer occupancy
// target from the configured period geometry.
func (c Config) TargetDelay(jackBufferSize int) int {
	return c.NumPeriods*c.PeriodSize/2 + jackBufferSize/2
}

// MaxDiff computes the resampler's drift-recovery tolerance band.
func (c Config) MaxDiff(jackBufferSize int) int {
	return c.NumPeriods*c.PeriodSize - c.TargetDelay(jackBufferSize)
}
