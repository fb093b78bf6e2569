package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDecodeAltFreqScenario(t *testing.T) {
	// Scenario 5 from the testable properties: groupData[4]=224+2=226 opens
	// a 2-entry AF list; the following byte 12 decodes to 88.7 MHz.
	length, ok := isAFListOpen(226)
	assert.True(t, ok)
	assert.Equal(t, 2, length)
	assert.InDelta(t, 88.7, DecodeAltFreq(12), 1e-9)
}

func TestAltFreqRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		b := rapid.IntRange(afFreqLow, afFreqHigh).Draw(rt, "b")
		mhz := DecodeAltFreq(b)
		assert.Equal(t, b, EncodeAltFreq(mhz))
	})
}

func TestIsAFListOpenBoundaries(t *testing.T) {
	_, ok := isAFListOpen(223)
	assert.False(t, ok)

	length, ok := isAFListOpen(224)
	assert.True(t, ok)
	assert.Equal(t, 0, length)

	length, ok = isAFListOpen(249)
	assert.True(t, ok)
	assert.Equal(t, 25, length)

	_, ok = isAFListOpen(250)
	assert.False(t, ok)
}

func TestIsAFFreqCodeBoundaries(t *testing.T) {
	assert.False(t, isAFFreqCode(0))
	assert.True(t, isAFFreqCode(1))
	assert.True(t, isAFFreqCode(204))
	assert.False(t, isAFFreqCode(205))
}
