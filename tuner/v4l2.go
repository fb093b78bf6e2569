package tuner

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// V4L2-radio ioctl numbers and structure layouts, computed from the
// stable linux/videodev2.h uAPI (type 'V' = 0x56). x/sys/unix has no
// typed helpers for these, unlike the generic TIOCM*/HIDIOC families, so
// the ioctl request codes and argument structs are reproduced here.
const (
	vidiocQueryCap      = 0x80685600
	vidiocGTuner        = 0xC054561D
	vidiocSTuner        = 0x4054561E
	vidiocGFrequency    = 0xC02C5638
	vidiocSFrequency    = 0x402C5639
	vidiocSHwFreqSeek    = 0x40305652
	vidiocQueryCtrl     = 0xC0445624
	vidiocSCtrl         = 0xC008561C

	v4l2TunerRadio    = 1
	v4l2TunerCapLow   = 0x0001
	v4l2CIDAudioMute  = 0x00980909
	v4l2CIDAudioVolume = 0x00980905
)

type v4l2Capability struct {
	Driver       [16]byte
	Card         [32]byte
	BusInfo      [32]byte
	Version      uint32
	Capabilities uint32
	DeviceCaps   uint32
	Reserved     [3]uint32
}

type v4l2Tuner struct {
	Index      uint32
	Name       [32]byte
	Type       uint32
	Capability uint32
	RangeLow   uint32
	RangeHigh  uint32
	RxSubchans uint32
	AudMode    uint32
	Signal     int32
	AFC        int32
	Reserved   [4]uint32
}

type v4l2Frequency struct {
	Tuner     uint32
	Type      uint32
	Frequency uint32
	Reserved  [8]uint32
}

type v4l2HwFreqSeek struct {
	Tuner       uint32
	Type        uint32
	SeekUpward  uint32
	WrapAround  uint32
	Spacing     uint32
	RangeLow    uint32
	RangeHigh   uint32
	Reserved    [5]uint32
}

type v4l2QueryCtrl struct {
	ID           uint32
	Type         uint32
	Name         [32]byte
	Minimum      int32
	Maximum      int32
	Step         int32
	DefaultValue int32
	Flags        uint32
	Reserved     [2]uint32
}

type v4l2Control struct {
	ID    uint32
	Value int32
}

// V4L2Tuner drives a /dev/radioN-style device node the way the original
// program did, via VIDIOC_* ioctls.
type V4L2Tuner struct {
	fd               int
	frequencyDivider uint32
	min, max, cur    float64
}

// OpenV4L2 opens path (typically /dev/radio0) and queries its tuner
// capabilities to establish the frequency range and divider.
func OpenV4L2(path string) (*V4L2Tuner, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("tuner: open %s: %w", path, err)
	}
	fd := int(f.Fd())

	var tun v4l2Tuner
	if err := ioctl(fd, vidiocGTuner, unsafe.Pointer(&tun)); err != nil {
		f.Close()
		return nil, fmt.Errorf("tuner: VIDIOC_G_TUNER: %w", err)
	}
	if tun.Type != v4l2TunerRadio {
		f.Close()
		return nil, fmt.Errorf("tuner: %s is not a radio tuner", path)
	}

	divider := uint32(16)
	if tun.Capability&v4l2TunerCapLow != 0 {
		divider = 16000
	}

	t := &V4L2Tuner{
		fd:               fd,
		frequencyDivider: divider,
		min:              float64(tun.RangeLow) / float64(divider),
		max:              float64(tun.RangeHigh) / float64(divider),
	}
	t.cur, _ = t.readFrequency()
	return t, nil
}

func (t *V4L2Tuner) CurrentFrequency() float64 { return t.cur }
func (t *V4L2Tuner) MinFrequency() float64     { return t.min }
func (t *V4L2Tuner) MaxFrequency() float64     { return t.max }

// FD exposes the open device descriptor so the input loop can poll it
// for incoming RDS byte triples alongside the keyboard fd.
func (t *V4L2Tuner) FD() int { return t.fd }

func (t *V4L2Tuner) readFrequency() (float64, error) {
	var freq v4l2Frequency
	freq.Type = v4l2TunerRadio
	if err := ioctl(t.fd, vidiocGFrequency, unsafe.Pointer(&freq)); err != nil {
		return 0, fmt.Errorf("tuner: VIDIOC_G_FREQUENCY: %w", err)
	}
	return float64(freq.Frequency) / float64(t.frequencyDivider), nil
}

func (t *V4L2Tuner) SetFrequency(mhz float64) error {
	if mhz < t.min || mhz > t.max {
		return ErrOutOfRange
	}
	var freq v4l2Frequency
	freq.Type = v4l2TunerRadio
	freq.Frequency = uint32(mhz * float64(t.frequencyDivider))
	if err := ioctl(t.fd, vidiocSFrequency, unsafe.Pointer(&freq)); err != nil {
		return fmt.Errorf("tuner: VIDIOC_S_FREQUENCY: %w", err)
	}
	t.cur = mhz
	return nil
}

func (t *V4L2Tuner) Seek(up bool) (float64, error) {
	var seek v4l2HwFreqSeek
	seek.Type = v4l2TunerRadio
	seek.WrapAround = 1
	if up {
		seek.SeekUpward = 1
	}
	if err := ioctl(t.fd, vidiocSHwFreqSeek, unsafe.Pointer(&seek)); err != nil {
		return 0, fmt.Errorf("tuner: VIDIOC_S_HW_FREQ_SEEK: %w", err)
	}
	f, err := t.readFrequency()
	if err != nil {
		return 0, err
	}
	t.cur = f
	return f, nil
}

// SetVolume mutes (percent==0) or unmutes and scales the tuner's analog
// volume control, mirroring setTunerVolume in the original program.
func (t *V4L2Tuner) SetVolume(percent int) error {
	mute := int32(0)
	if percent == 0 {
		mute = 1
	}
	muteCtrl := v4l2Control{ID: v4l2CIDAudioMute, Value: mute}
	if err := ioctl(t.fd, vidiocSCtrl, unsafe.Pointer(&muteCtrl)); err != nil {
		return fmt.Errorf("tuner: VIDIOC_S_CTRL (mute): %w", err)
	}

	var q v4l2QueryCtrl
	q.ID = v4l2CIDAudioVolume
	if err := ioctl(t.fd, vidiocQueryCtrl, unsafe.Pointer(&q)); err != nil {
		return fmt.Errorf("tuner: VIDIOC_QUERYCTRL (volume): %w", err)
	}
	if percent > 100 {
		percent = 100
	} else if percent < 0 {
		percent = 0
	}
	volCtrl := v4l2Control{
		ID:    v4l2CIDAudioVolume,
		Value: q.Minimum + int32(percent)*(q.Maximum-q.Minimum)/100,
	}
	if err := ioctl(t.fd, vidiocSCtrl, unsafe.Pointer(&volCtrl)); err != nil {
		return fmt.Errorf("tuner: VIDIOC_S_CTRL (volume): %w", err)
	}
	return nil
}

func (t *V4L2Tuner) Close() error {
	return unix.Close(t.fd)
}

func ioctl(fd int, request uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), request, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}
