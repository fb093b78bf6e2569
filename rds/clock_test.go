package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeClockScenario(t *testing.T) {
	// Scenario 4: MJD 58849 (2020-01-01), hour=12, minute=30, offset=+2
	// half-hour units (+01:00).
	c := DecodeClock(58849, 12, 30, 2)
	assert.Equal(t, "2020-01-01 13:30 (+01:00)", c.Format())
}

func TestDecodeClockNegativeOffset(t *testing.T) {
	c := DecodeClock(58849, 12, 30, -4)
	assert.Equal(t, "2020-01-01 10:30 (-02:00)", c.Format())
}

func TestMjdToDateKnownValues(t *testing.T) {
	cases := []struct {
		mjd                  int
		year, month, day int
	}{
		{58849, 2020, 1, 1},
		{40587, 1970, 1, 1},
		{51544, 2000, 1, 1},
	}
	for _, c := range cases {
		year, month, day := mjdToDate(c.mjd)
		assert.Equal(t, c.year, year, "mjd=%d year", c.mjd)
		assert.Equal(t, c.month, month, "mjd=%d month", c.mjd)
		assert.Equal(t, c.day, day, "mjd=%d day", c.mjd)
	}
}
