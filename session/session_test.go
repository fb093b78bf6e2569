package session

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlang/fmrds/config"
	"github.com/mlang/fmrds/tuner"
)

type fakeController struct {
	cur, min, max float64
	closed        bool
}

func (f *fakeController) CurrentFrequency() float64    { return f.cur }
func (f *fakeController) MinFrequency() float64         { return f.min }
func (f *fakeController) MaxFrequency() float64         { return f.max }
func (f *fakeController) SetFrequency(mhz float64) error { f.cur = mhz; return nil }
func (f *fakeController) Seek(up bool) (float64, error)  { return f.cur, nil }
func (f *fakeController) SetVolume(percent int) error    { return nil }
func (f *fakeController) Close() error                   { f.closed = true; return nil }

var _ tuner.Controller = (*fakeController)(nil)

func TestNewSessionWiresRegistryAndTuner(t *testing.T) {
	ft := &fakeController{cur: 100, min: 87.5, max: 108}
	s := New(config.Default(), ft, log.New(io.Discard))

	require.NotNil(t, s.Registry)
	assert.Equal(t, 100.0, s.Tuner.CurrentFrequency())
}

func TestCloseClosesTuner(t *testing.T) {
	ft := &fakeController{}
	s := New(config.Default(), ft, log.New(io.Discard))

	require.NoError(t, s.Close())
	assert.True(t, ft.closed)
}

func TestSummaryTruncatesToMostRecent(t *testing.T) {
	ft := &fakeController{}
	s := New(config.Default(), ft, log.New(io.Discard))

	for _, id := range []uint16{1, 2, 3} {
		s.Registry.LookupOrInsert(id)
	}

	summary := s.Summary(2)
	require.Len(t, summary, 2)
	assert.Equal(t, uint16(2), summary[0].ID)
	assert.Equal(t, uint16(3), summary[1].ID)
}
