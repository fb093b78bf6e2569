package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIfExistsFallsBackToDefaultWhenMissing(t *testing.T) {
	cfg, err := LoadIfExists(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlySpecifiedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fmrds.yaml")
	require.NoError(t, os.WriteFile(path, []byte("radio_device: /dev/radio1\nverbosity: 2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/dev/radio1", cfg.RadioDevice)
	assert.Equal(t, 2, cfg.Verbosity)
	assert.Equal(t, Default().AudioDevice, cfg.AudioDevice)
	assert.Equal(t, Default().NumPeriods, cfg.NumPeriods)
}

func TestTargetDelayAndMaxDiff(t *testing.T) {
	cfg := Config{NumPeriods: 4, PeriodSize: 1024}
	assert.Equal(t, 2048, cfg.TargetDelay(0))
	assert.Equal(t, 2048, cfg.MaxDiff(0))

	assert.Equal(t, 2048+50, cfg.TargetDelay(100))
	assert.Equal(t, 4096-(2048+50), cfg.MaxDiff(100))
}
