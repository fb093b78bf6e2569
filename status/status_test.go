package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockLine is a test double for outputLine that records calls without
// requiring GPIO hardware or the gpio-sim kernel module.
type mockLine struct {
	value  int
	closed bool
}

func (m *mockLine) SetValue(v int) error {
	m.value = v
	return nil
}

func (m *mockLine) Close() error {
	m.closed = true
	return nil
}

func TestSetMutedDrivesLineHigh(t *testing.T) {
	mock := &mockLine{}
	ind := &Indicator{line: mock}

	assert.NoError(t, ind.SetMuted(true))
	assert.Equal(t, 1, mock.value)

	assert.NoError(t, ind.SetMuted(false))
	assert.Equal(t, 0, mock.value)
}

func TestBlinkEndsLow(t *testing.T) {
	mock := &mockLine{value: 0}
	ind := &Indicator{line: mock}

	assert.NoError(t, ind.Blink())
	assert.Equal(t, 0, mock.value)
}

func TestCloseClosesLine(t *testing.T) {
	mock := &mockLine{}
	ind := &Indicator{line: mock}

	assert.NoError(t, ind.Close())
	assert.True(t, mock.closed)
}
