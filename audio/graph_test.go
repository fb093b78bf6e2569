package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlang/fmrds/resample"
)

func TestCaptureRingPushThenRead(t *testing.T) {
	r := newCaptureRing(2, 16)
	r.push([]int16{1, 2, 3, 4, 5, 6}) // 3 frames, 2 channels

	avail, err := r.Available()
	require.NoError(t, err)
	assert.Equal(t, 3, avail)

	buf := make([]int16, 2*2)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []int16{1, 2, 3, 4}, buf)

	avail, _ = r.Available()
	assert.Equal(t, 1, avail)
}

func TestCaptureRingReadEmptyReturnsWouldBlock(t *testing.T) {
	r := newCaptureRing(2, 16)
	_, err := r.Read(make([]int16, 4))
	assert.ErrorIs(t, err, resample.ErrWouldBlock)
}

func TestCaptureRingRewindRestoresFrames(t *testing.T) {
	r := newCaptureRing(1, 16)
	r.push([]int16{10, 20, 30})

	buf := make([]int16, 3)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	avail, _ := r.Available()
	require.Equal(t, 0, avail)

	rewound, err := r.Rewind(2)
	require.NoError(t, err)
	assert.Equal(t, 2, rewound)

	avail, _ = r.Available()
	assert.Equal(t, 2, avail)
}

func TestCaptureRingOverflowDropsOldestFrame(t *testing.T) {
	r := newCaptureRing(1, 2)
	r.push([]int16{1, 2, 3}) // capacity 2: frame "1" should be dropped

	buf := make([]int16, 2)
	n, err := r.Read(buf)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	assert.Equal(t, []int16{2, 3}, buf)
}
