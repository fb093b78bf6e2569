package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCapture is an in-memory Capture backed by a simple sample counter:
// every frame's first channel holds its absolute frame index so tests can
// assert on exactly which frames were skipped, rewound, or consumed.
type fakeCapture struct {
	channels  int
	cursor    int // next frame index to hand out
	available int // frames currently buffered ahead of cursor
	discarded int // frames skipped past (never handed back)
}

func newFakeCapture(channels, available int) *fakeCapture {
	return &fakeCapture{channels: channels, available: available}
}

func (c *fakeCapture) Channels() int { return c.channels }

func (c *fakeCapture) Available() (int, error) { return c.available, nil }

func (c *fakeCapture) Read(buf []int16) (int, error) {
	frames := len(buf) / c.channels
	if frames > c.available {
		frames = c.available
	}
	for i := 0; i < frames; i++ {
		for ch := 0; ch < c.channels; ch++ {
			buf[i*c.channels+ch] = int16(c.cursor + i)
		}
	}
	c.cursor += frames
	c.available -= frames
	return frames, nil
}

func (c *fakeCapture) Rewind(frames int) (int, error) {
	if frames > c.cursor-c.discarded {
		frames = c.cursor - c.discarded
	}
	c.cursor -= frames
	c.available += frames
	return frames, nil
}

func (c *fakeCapture) Recover(cause error) error { return nil }

// TestScenario6DriftRecoverySkip is literal scenario 6 from the spec:
// target_delay=4096, max_diff=512, measured delay=5000 => 904 frames
// discarded to bring the buffer back to target_delay.
func TestScenario6DriftRecoverySkip(t *testing.T) {
	r := New(4096, 512, 1.0, 2)
	capture := newFakeCapture(2, 5000)

	delay, err := r.recoverDrift(capture, 5000)
	require.NoError(t, err)
	assert.Equal(t, 4096, delay)
	assert.Equal(t, 904, capture.cursor)
}

// TestProcessProducesExactFrameCount: for all cycles, Process returns
// exactly nframes samples per channel.
func TestProcessProducesExactFrameCount(t *testing.T) {
	r := New(4096, 512, 1.0, 2)
	capture := newFakeCapture(2, 4096+2000)

	out, err := r.Process(capture, 512, 0)
	require.NoError(t, err)
	require.Len(t, out, 2)
	for ch := range out {
		assert.Len(t, out[ch], 512)
	}
}

// TestResampleFactorStaysWithinBounds: over 50 cycles with inflow
// matching outflow, the running mean of applied ratios (resampleMean)
// stays within [0.25, 4.0].
func TestResampleFactorStaysWithinBounds(t *testing.T) {
	r := New(4096, 8192, 1.0, 1) // wide tolerance so drift recovery never fires
	capture := newFakeCapture(1, 4096)

	for i := 0; i < 50; i++ {
		_, err := r.Process(capture, 256, 0)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, r.resampleMean, minResampleFactor)
		assert.LessOrEqual(t, r.resampleMean, maxResampleFactor)
		capture.available += 256 // simulate steady inflow matching outflow
	}
}

// TestDriftRecoveryConvergesWithinTolerance: after recoverDrift runs, the
// resulting delay is always within maxDiff+1 of targetDelay (±1 for the
// skip/rewind granularity).
func TestDriftRecoveryConvergesWithinTolerance(t *testing.T) {
	cases := []int{0, 1000, 4096, 4600, 9000}
	for _, initial := range cases {
		r := New(4096, 512, 1.0, 1)
		capture := newFakeCapture(1, initial)
		capture.cursor = 100000 // ample prior history available to rewind into
		delay, err := r.recoverDrift(capture, initial)
		require.NoError(t, err)
		assert.LessOrEqual(t, abs64(float64(delay-4096)), float64(513))
	}
}

func abs64(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
