// Package resample implements the resampling/clock-synchronization engine
// that bridges an audio capture device's clock to the audio graph's
// clock: a PI-controlled adaptive resampler with drift recovery.
package resample

import "errors"

// ErrWouldBlock is returned by Capture.Read when no frames are currently
// available and the caller should retry (the capture device's analogue of
// EAGAIN).
var ErrWouldBlock = errors.New("resample: capture would block")

// ErrHardFailure is returned by Capture.Read or Capture.Recover when the
// underlying device has failed in a way that cannot be recovered in
// place; this is the one condition that terminates the audio regime.
var ErrHardFailure = errors.New("resample: capture hard failure")

// Capture is the pull-model audio capture device the resampler reads
// from: interleaved signed 16-bit samples, two channels, opened
// non-blocking.
type Capture interface {
	// Available reports how many frames are currently buffered and ready
	// to read without blocking.
	Available() (int, error)

	// Read fills buf (interleaved, Channels() samples per frame) and
	// returns the number of frames actually read. Returns ErrWouldBlock on
	// a transient EAGAIN-style condition and ErrHardFailure if the device
	// cannot be recovered.
	Read(buf []int16) (frames int, err error)

	// Rewind returns up to frames previously-read frames to the device so
	// they are read again on the next call. Returns the number actually
	// rewound.
	Rewind(frames int) (int, error)

	// Recover attempts to recover the device from an underrun or suspend
	// condition signalled by a prior Read/Rewind error. Returns
	// ErrHardFailure if recovery is not possible.
	Recover(cause error) error

	// Channels reports the interleaved channel count (2 in this design).
	Channels() int
}
