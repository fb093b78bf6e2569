// Package audio wraps PortAudio as the realtime audio source the
// resampling engine reads from: an input-only stream whose callback
// is invoked once per period with a caller-supplied frame count.
package audio

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/mlang/fmrds/resample"
)

// Graph owns one PortAudio input stream: samples from the capture
// device feed a ring buffer satisfying resample.Capture. The stream has
// no output side.
type Graph struct {
	stream     *portaudio.Stream
	ring       *captureRing
	channels   int
	sampleRate float64
	bufferSize int
}

// Open initializes PortAudio and opens an input stream on the named
// input device at the given sample rate, channel count, and period
// size (framesPerBuffer). deviceName matches a PortAudio host device
// name substring (e.g. the ALSA device configured via -a).
func Open(deviceName string, sampleRate float64, channels, framesPerBuffer int) (*Graph, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("audio: portaudio.Initialize: %w", err)
	}

	dev, err := findDevice(deviceName)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}

	g := &Graph{
		ring:       newCaptureRing(channels, int(sampleRate)*4),
		channels:   channels,
		sampleRate: sampleRate,
		bufferSize: framesPerBuffer,
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   dev,
			Channels: channels,
			Latency:  dev.DefaultLowInputLatency,
		},
		SampleRate:      sampleRate,
		FramesPerBuffer: framesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, g.inputCallback)
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: OpenStream: %w", err)
	}
	g.stream = stream

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("audio: Stream.Start: %w", err)
	}

	return g, nil
}

func findDevice(name string) (*portaudio.DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("audio: enumerating devices: %w", err)
	}
	for _, d := range devices {
		if d.MaxInputChannels > 0 && (name == "" || strings.Contains(d.Name, name)) {
			return d, nil
		}
	}
	return nil, fmt.Errorf("audio: no capture device matching %q", name)
}

// inputCallback is invoked by PortAudio on its own realtime thread; it
// must not block or allocate beyond the fixed ring push.
func (g *Graph) inputCallback(in []int16) {
	g.ring.push(in)
}

// SampleRate reports the negotiated input sample rate.
func (g *Graph) SampleRate() float64 { return g.sampleRate }

// BufferSize reports the negotiated period size in frames.
func (g *Graph) BufferSize() int { return g.bufferSize }

// Capture returns the resample.Capture view of this graph's input ring.
func (g *Graph) Capture() resample.Capture { return g.ring }

// Close stops the stream and releases PortAudio.
func (g *Graph) Close() error {
	if err := g.stream.Close(); err != nil {
		portaudio.Terminate()
		return fmt.Errorf("audio: Stream.Close: %w", err)
	}
	return portaudio.Terminate()
}

// captureRing is a fixed-capacity interleaved sample FIFO fed by the
// PortAudio input callback and drained by the resampler; it implements
// resample.Capture.
type captureRing struct {
	mu       sync.Mutex
	buf      []int16
	channels int
	head     int // next frame to read
	count    int // frames currently buffered
	cap      int // capacity in frames
}

func newCaptureRing(channels, capacityFrames int) *captureRing {
	return &captureRing{
		buf:      make([]int16, capacityFrames*channels),
		channels: channels,
		cap:      capacityFrames,
	}
}

func (r *captureRing) Channels() int { return r.channels }

func (r *captureRing) push(in []int16) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(in) / r.channels
	for i := 0; i < frames; i++ {
		writeAt := (r.head + r.count) % r.cap
		copy(r.buf[writeAt*r.channels:(writeAt+1)*r.channels], in[i*r.channels:(i+1)*r.channels])
		if r.count < r.cap {
			r.count++
		} else {
			r.head = (r.head + 1) % r.cap // drop the oldest frame on overflow
		}
	}
}

func (r *captureRing) Available() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count, nil
}

func (r *captureRing) Read(buf []int16) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return 0, resample.ErrWouldBlock
	}

	frames := len(buf) / r.channels
	if frames > r.count {
		frames = r.count
	}
	for i := 0; i < frames; i++ {
		readAt := (r.head + i) % r.cap
		copy(buf[i*r.channels:(i+1)*r.channels], r.buf[readAt*r.channels:(readAt+1)*r.channels])
	}
	r.head = (r.head + frames) % r.cap
	r.count -= frames
	return frames, nil
}

func (r *captureRing) Rewind(frames int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if frames > r.cap-r.count {
		frames = r.cap - r.count
	}
	r.head = (r.head - frames + r.cap) % r.cap
	r.count += frames
	return frames, nil
}

func (r *captureRing) Recover(cause error) error {
	// A ring buffer cannot suspend or underrun the way a hardware device
	// can; nothing to recover.
	return nil
}
