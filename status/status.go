// Package status drives an optional GPIO status-indicator line: steady
// on while muted, a short blink on each successful tune/seek, off
// otherwise. It is never required for correct operation — any
// acquisition failure disables the feature rather than failing startup.
package status

import (
	"fmt"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// outputLine is the narrow shape status needs from a GPIO line, kept
// local so tests can substitute a mock without a real gpio-sim chip.
type outputLine interface {
	SetValue(v int) error
	Close() error
}

const blinkDuration = 150 * time.Millisecond

// Indicator drives one GPIO output line as a status LED.
type Indicator struct {
	line outputLine
}

// Open acquires chipName's line at offset as an output, initially low.
// Returns (nil, err) if the chip or line cannot be acquired; the caller
// is expected to log and continue without an Indicator in that case.
func Open(chipName string, offset int) (*Indicator, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("status: open chip %s: %w", chipName, err)
	}

	line, err := chip.RequestLine(offset, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("status: request line %d on %s: %w", offset, chipName, err)
	}

	return &Indicator{line: line}, nil
}

// SetMuted drives the line steady-on while muted is true, off otherwise.
func (ind *Indicator) SetMuted(muted bool) error {
	v := 0
	if muted {
		v = 1
	}
	if err := ind.line.SetValue(v); err != nil {
		return fmt.Errorf("status: set value: %w", err)
	}
	return nil
}

// Blink drives the line high for blinkDuration then low, signalling a
// successful tune or seek. It blocks for the blink duration; callers on
// a latency-sensitive path should invoke it from its own goroutine.
func (ind *Indicator) Blink() error {
	if err := ind.line.SetValue(1); err != nil {
		return fmt.Errorf("status: blink on: %w", err)
	}
	time.Sleep(blinkDuration)
	if err := ind.line.SetValue(0); err != nil {
		return fmt.Errorf("status: blink off: %w", err)
	}
	return nil
}

// Close releases the GPIO line.
func (ind *Indicator) Close() error {
	return ind.line.Close()
}
