// Package discovery enumerates candidate radio-tuner and capture
// devices via udev when the caller has not pinned explicit device
// paths. It is best-effort: any failure here is logged by the caller
// and the configured defaults are used instead.
package discovery

import (
	"fmt"
	"strings"

	"github.com/jochenvg/go-udev"
)

// RadioDevice finds a video4linux device node that advertises radio
// tuning capability, preferring /dev/radio0-style nodes in enumeration
// order. Returns "" with no error if none is found.
func RadioDevice() (string, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem("video4linux"); err != nil {
		return "", fmt.Errorf("discovery: match video4linux: %w", err)
	}

	devices, err := e.Devices()
	if err != nil {
		return "", fmt.Errorf("discovery: enumerate video4linux devices: %w", err)
	}

	for _, d := range devices {
		node := d.Devnode()
		if node == "" || !strings.Contains(node, "radio") {
			continue
		}
		if caps := d.PropertyValue("ID_V4L_CAPABILITIES"); caps != "" &&
			!strings.Contains(caps, "radio") {
			continue
		}
		return node, nil
	}
	return "", nil
}

// CaptureDevice finds an ALSA sound card tagged as the default capture
// device, preferring one whose udev properties name it "Music" (the
// teacher stack's own default label) and falling back to the first
// capture-capable card. Returns "" with no error if none is found.
func CaptureDevice() (string, error) {
	u := udev.Udev{}
	e := u.NewEnumerate()
	if err := e.AddMatchSubsystem("sound"); err != nil {
		return "", fmt.Errorf("discovery: match sound: %w", err)
	}

	devices, err := e.Devices()
	if err != nil {
		return "", fmt.Errorf("discovery: enumerate sound devices: %w", err)
	}

	var firstCapture string
	for _, d := range devices {
		id := d.PropertyValue("ID_ID")
		if id == "" {
			continue
		}
		if firstCapture == "" {
			firstCapture = "hw:" + id
		}
		if strings.EqualFold(id, "Music") {
			return "hw:" + id, nil
		}
	}
	return firstCapture, nil
}
