package rds

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"
)

// ClockTime is one decoded 4A clock-time & date group.
type ClockTime struct {
	Year, Month, Day int
	Hour, Minute     int
	// OffsetMinutes is the local time offset from UTC, in minutes, signed.
	OffsetMinutes int
}

// mjdToDate converts a Modified Julian Date to a (year, month, day) civil
// date using the classical formula from the RDS / BBC WHP 062 reference
// algorithm.
func mjdToDate(mjd int) (year, month, day int) {
	yp := int((float64(mjd) - 15078.2) / 365.25)
	mp := int((float64(mjd) - 14956.1 - float64(int(float64(yp)*365.25))) / 30.6001)
	day = mjd - 14956 - int(float64(yp)*365.25) - int(float64(mp)*30.6001)
	k := 0
	if mp == 14 || mp == 15 {
		k = 1
	}
	year = yp + k + 1900
	month = mp - 1 - k*12
	return year, month, day
}

// DecodeClock decodes the 4A clock-time & date group fields into a
// ClockTime. mjd is the 17-bit Modified Julian Date, hour is 5 bits,
// minute is 6 bits, and offsetHalfHours is the signed local-time offset
// in units of half an hour (sign in bit 5 of the raw field, magnitude in
// bits 0..4, already separated out by the caller).
func DecodeClock(mjd, hour, minute, offsetHalfHours int) ClockTime {
	year, month, day := mjdToDate(mjd)
	return ClockTime{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute,
		OffsetMinutes: offsetHalfHours * 30,
	}
}

// Local returns the clock time with the local-time offset applied.
func (c ClockTime) Local() time.Time {
	t := time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, 0, 0, time.UTC)
	return t.Add(time.Duration(c.OffsetMinutes) * time.Minute)
}

// Format renders the clock as "YYYY-MM-DD hh:mm (±HH:MM)", the line the
// RDS decoder emits for a 4A group.
func (c ClockTime) Format() string {
	local := c.Local()
	date, _ := strftime.Format("%Y-%m-%d %H:%M", local)

	sign := "+"
	off := c.OffsetMinutes
	if off < 0 {
		sign = "-"
		off = -off
	}
	return fmt.Sprintf("%s (%s%02d:%02d)", date, sign, off/60, off%60)
}
