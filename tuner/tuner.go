// Package tuner implements the tuner controller: concrete backends that
// satisfy the rds.TunerController interface by driving a real radio
// device, either a V4L2-radio device node or a Hamlib rig-control
// endpoint.
package tuner

import "fmt"

// ErrOutOfRange is returned by SetFrequency when the requested frequency
// falls outside the tuner's reported hardware range.
var ErrOutOfRange = fmt.Errorf("tuner: frequency out of range")

// Controller is the common shape both backends implement; it is a
// superset of rds.TunerController (that interface is defined locally in
// the rds package to avoid a circular import, but any Controller here
// satisfies it structurally).
type Controller interface {
	CurrentFrequency() float64
	MinFrequency() float64
	MaxFrequency() float64
	SetFrequency(mhz float64) error
	Seek(up bool) (float64, error)
	SetVolume(percent int) error
	Close() error
}
