package resample

import (
	"fmt"
	"math"
)

// Tuning constants from the original controller.
const (
	catchFactor  = 100000.0 // K1
	catchFactor2 = 10000.0  // K2
	pclamp       = 15.0
	controlQuant = 10000.0

	minResampleFactor = 0.25
	maxResampleFactor = 4.0

	// readRetryIterations bounds how many times Process will retry a
	// transient capture read failure before giving up as a hard failure,
	// mirroring the original's bounded iteration count.
	readRetryIterations = 10

	// skipRetryMaxIterations bounds drift-recovery skip retries similarly.
	skipRetryMaxIterations = 1000
)

// Resampler is the per-session PI controller and adaptive resampler
// state. It is created once at audio-graph startup and must be used
// from a single goroutine only (the audio callback).
type Resampler struct {
	targetDelay int
	maxDiff     int

	staticResampleFactor float64
	resampleMean         float64

	offsetArray   [smoothSize]float64
	windowArray   [smoothSize]float64
	offsetIndex   int
	offsetIntegral float64

	channels int

	// residual is not read or written: input frames left unconsumed by
	// a cycle are rewound to the capture device instead.
	residual []float32
}

// New returns a Resampler configured for the given target occupancy,
// tolerance band, nominal in/out sample-rate ratio, and channel count.
func New(targetDelay, maxDiff int, staticResampleFactor float64, channels int) *Resampler {
	r := &Resampler{
		targetDelay:          targetDelay,
		maxDiff:              maxDiff,
		staticResampleFactor: staticResampleFactor,
		resampleMean:         staticResampleFactor,
		channels:             channels,
		windowArray:          [smoothSize]float64{},
	}
	copy(r.windowArray[:], hannWindow(smoothSize))
	return r
}

// ResampleMean reports the current EWMA of applied resampling factors,
// the controller's running estimate of the true hardware ratio.
func (r *Resampler) ResampleMean() float64 { return r.resampleMean }

// resetControlLoop reinitializes the offset ring and integral term after
// a drift-recovery skip or rewind.
func (r *Resampler) resetControlLoop() {
	r.offsetIntegral = -(r.resampleMean - r.staticResampleFactor) * catchFactor * catchFactor2
	for i := range r.offsetArray {
		r.offsetArray[i] = 0
	}
}

// recoverDrift checks whether the capture buffer has drifted outside
// [targetDelay-maxDiff, targetDelay+maxDiff] and, if so, skips or rewinds
// frames to bring it back to targetDelay and resets the control loop.
func (r *Resampler) recoverDrift(capture Capture, delay int) (int, error) {
	switch {
	case delay > r.targetDelay+r.maxDiff:
		skip := delay - r.targetDelay
		if err := r.skipFrames(capture, skip); err != nil {
			return delay, err
		}
		r.resetControlLoop()
		return r.targetDelay, nil

	case delay < r.targetDelay-r.maxDiff:
		want := r.targetDelay - delay
		rewound, err := capture.Rewind(want)
		if err != nil {
			return delay, fmt.Errorf("resample: rewind for drift recovery: %w", err)
		}
		r.resetControlLoop()
		return delay + rewound, nil

	default:
		return delay, nil
	}
}

// skipFrames discards skip frames from capture, retrying on transient
// failures and invoking Recover on underrun/suspend.
func (r *Resampler) skipFrames(capture Capture, skip int) error {
	tmp := make([]int16, skip*r.channels)
	remaining := skip
	offset := 0
	for iter := 0; remaining > 0; iter++ {
		if iter >= skipRetryMaxIterations {
			return ErrHardFailure
		}
		n, err := capture.Read(tmp[offset*r.channels:])
		switch {
		case err == ErrWouldBlock:
			continue
		case err != nil:
			if rerr := capture.Recover(err); rerr != nil {
				return rerr
			}
			continue
		}
		offset += n
		remaining -= n
	}
	return nil
}

// Process runs one audio-graph callback cycle: it measures occupancy,
// applies drift recovery, updates the PI controller, reads input frames
// at the resulting ratio, and resamples into exactly nframes output
// frames per channel. framesSinceCycleStart is the number of output
// frames the graph has already consumed since Capture.Available was last
// accurate (0 if the caller has no finer clock than the callback
// boundary itself).
func (r *Resampler) Process(capture Capture, nframes, framesSinceCycleStart int) ([][]float32, error) {
	avail, err := capture.Available()
	if err != nil {
		return nil, fmt.Errorf("resample: capture.Available: %w", err)
	}
	delay := avail - framesSinceCycleStart

	delay, err = r.recoverDrift(capture, delay)
	if err != nil {
		return nil, err
	}

	offset := float64(delay - r.targetDelay)
	r.offsetArray[r.offsetIndex%smoothSize] = offset
	r.offsetIndex++

	var smoothOffset float64
	for i := 0; i < smoothSize; i++ {
		idx := (i + r.offsetIndex - 1) % smoothSize
		smoothOffset += r.offsetArray[idx] * r.windowArray[i]
	}
	smoothOffset /= smoothSize

	r.offsetIntegral += smoothOffset

	pTerm := smoothOffset
	if math.Abs(pTerm) < pclamp {
		pTerm = 0
	}

	factor := r.staticResampleFactor - pTerm/catchFactor - r.offsetIntegral/(catchFactor*catchFactor2)
	factor = math.Floor((factor-r.resampleMean)*controlQuant+0.5)/controlQuant + r.resampleMean

	if factor < minResampleFactor {
		factor = minResampleFactor
	} else if factor > maxResampleFactor {
		factor = maxResampleFactor
	}

	r.resampleMean = 0.9999*r.resampleMean + 0.0001*factor

	rlen := int(math.Ceil(float64(nframes)/factor)) + 2
	if rlen <= 2 {
		rlen = 3
	}

	in, err := r.readInput(capture, rlen)
	if err != nil {
		return nil, err
	}

	out := make([][]float32, r.channels)
	var unused int
	for ch := 0; ch < r.channels; ch++ {
		chanIn := deinterleaveChannel(in, r.channels, ch, rlen)
		chanOut, used := resampleLinear(chanIn, factor, nframes)
		out[ch] = chanOut
		unused = rlen - used
	}

	if unused > 0 {
		if _, err := capture.Rewind(unused); err != nil {
			return nil, fmt.Errorf("resample: rewind residual: %w", err)
		}
	}

	return out, nil
}

// readInput reads exactly rlen frames from capture, retrying transient
// failures up to readRetryIterations times and recovering from
// underrun/suspend in place.
func (r *Resampler) readInput(capture Capture, rlen int) ([]int16, error) {
	buf := make([]int16, rlen*r.channels)
	framesRead := 0
	for iter := 0; framesRead < rlen; iter++ {
		if iter >= readRetryIterations {
			return nil, ErrHardFailure
		}
		n, err := capture.Read(buf[framesRead*r.channels:])
		switch {
		case err == ErrWouldBlock:
			continue
		case err != nil:
			if rerr := capture.Recover(err); rerr != nil {
				return nil, rerr
			}
			continue
		}
		framesRead += n
	}
	return buf, nil
}

// deinterleaveChannel extracts one channel's samples from interleaved
// signed 16-bit PCM, converting to float32 in [-1,1].
func deinterleaveChannel(in []int16, channels, ch, frames int) []float32 {
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		out[i] = float32(in[i*channels+ch]) / 32767.0
	}
	return out
}
