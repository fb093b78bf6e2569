// Package rds decodes the Radio Data System sub-carrier stream: it
// assembles 24-bit blocks into 4-block groups, dispatches on group type,
// and maintains the per-station and per-session state that the broadcast
// metadata describes (program name, radiotext, clock, traffic flags,
// alternative frequencies, EON).
package rds

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/mlang/fmrds/registry"
)

// TunerController is the slice of tuner operations the decoder needs: it
// stamps newly-seen stations with the current frequency and retunes in
// response to keyboard commands. Satisfied structurally by any
// tuner.Controller; kept narrow and local here so this package does not
// need to import the tuner package.
type TunerController interface {
	CurrentFrequency() float64
	MinFrequency() float64
	MaxFrequency() float64
	SetFrequency(mhz float64) error
}

// Command is a keyboard command fed to the decoder from the input loop.
type Command byte

const (
	// CommandNextStation selects the next known station ('n').
	CommandNextStation Command = 'n'
	// CommandTuneUp steps the frequency up by 0.05 MHz ('+').
	CommandTuneUp Command = '+'
	// CommandTuneDown steps the frequency down by 0.05 MHz ('-').
	CommandTuneDown Command = '-'
)

const tuneStepMHz = 0.05

// nextStationToleranceMHz is how close a station's frequency must be to
// the tuner's current frequency to be considered "the current station"
// when computing the circular successor for CommandNextStation.
const nextStationToleranceMHz = 0.09

// eonAFMatchToleranceMHz is the tolerance used when matching a 14A
// variant-5 AF pair's first frequency against the current station.
const eonAFMatchToleranceMHz = 0.04

// Decoder holds all state for one RDS decoding session: the station
// registry, the in-progress group and radiotext buffers, and the tuner
// used to stamp stations and to act on keyboard commands.
type Decoder struct {
	Registry *registry.Registry
	Tuner    TunerController
	Log      *log.Logger

	group         groupBuffer
	prevGroup     [8]byte
	havePrevGroup bool

	errorCount int

	current *registry.ProgramData

	lastEmittedName string
	lastStereo      *bool
	lastTAByStation map[uint16]bool

	afList afListState

	rt *radiotextBuffer
}

// NewDecoder returns a Decoder ready to consume blocks.
func NewDecoder(reg *registry.Registry, t TunerController, logger *log.Logger) *Decoder {
	if logger == nil {
		logger = log.Default()
	}
	return &Decoder{
		Registry:        reg,
		Tuner:           t,
		Log:             logger,
		rt:              newRadiotextBuffer(),
		lastTAByStation: make(map[uint16]bool),
	}
}

// Feed processes one RDS block. It is the unit of work the input loop
// calls for every block read from the tuner; errored blocks are counted
// and discarded, and a complete, non-duplicate group triggers dispatch.
func (d *Decoder) Feed(b Block) {
	if b.Errored() {
		d.errorCount++
		return
	}

	pos := b.Position()
	d.group.put(b)

	switch pos {
	case 0:
		d.handleBlockA(b)
	case 1:
		d.handleBlockB(b)
	}

	if pos == 3 && d.group.complete() {
		if !d.havePrevGroup || d.group.data != d.prevGroup {
			d.dispatch()
			d.prevGroup = d.group.data
			d.havePrevGroup = true
		}
		d.group.reset()
	}
}

// HandleCommand applies a keyboard command from the input loop.
func (d *Decoder) HandleCommand(cmd Command) error {
	switch cmd {
	case CommandNextStation:
		return d.nextStation()
	case CommandTuneUp:
		return d.step(tuneStepMHz)
	case CommandTuneDown:
		return d.step(-tuneStepMHz)
	default:
		return fmt.Errorf("rds: unknown command %q", byte(cmd))
	}
}

func (d *Decoder) step(delta float64) error {
	min, max := d.Tuner.MinFrequency(), d.Tuner.MaxFrequency()
	f := d.Tuner.CurrentFrequency() + delta
	switch {
	case f > max:
		f = min
	case f < min:
		f = max
	}
	return d.Tuner.SetFrequency(f)
}

// nextStation implements the 'n' command: among stations with a known
// frequency at or above the tuner's minimum, select the one circularly
// following the station whose frequency is within
// nextStationToleranceMHz of the current frequency.
func (d *Decoder) nextStation() error {
	stations := d.Registry.Stations()
	min := d.Tuner.MinFrequency()

	var known []*registry.ProgramData
	for _, p := range stations {
		if p.Freq >= min {
			known = append(known, p)
		}
	}
	if len(known) == 0 {
		return fmt.Errorf("rds: no known stations to select from")
	}

	cur := d.Tuner.CurrentFrequency()
	curIdx := -1
	for i, p := range known {
		if abs(p.Freq-cur) <= nextStationToleranceMHz {
			curIdx = i
			break
		}
	}

	nextIdx := 0
	if curIdx >= 0 {
		nextIdx = (curIdx + 1) % len(known)
	}
	return d.Tuner.SetFrequency(known[nextIdx].Freq)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// handleBlockA computes the PI code, looks up or creates the station, and
// stamps it with the tuner's current frequency.
func (d *Decoder) handleBlockA(b Block) {
	pi := b.Word()
	d.current = d.Registry.LookupOrInsert(pi)
	if d.Tuner != nil {
		d.current.Freq = d.Tuner.CurrentFrequency()
	}
}

// handleBlockB extracts the PTY, emitting a program-type line on change.
// The group type is decoded later, in dispatch.
func (d *Decoder) handleBlockB(b Block) {
	if d.current == nil {
		return
	}
	word := b.Word()
	pty := int(word>>5) & 0x1f
	if pty != d.current.ProgramType {
		d.current.ProgramType = pty
		d.Log.Info("program type", "pi", fmt.Sprintf("%04X", d.current.ID), "type", ProgramTypeName(pty))
	}
}

func decodeGroupType(blockBWord uint16) groupType {
	return groupType{
		Family:   int(blockBWord>>12) & 0x0f,
		VersionB: blockBWord&0x0800 != 0,
	}
}

// dispatch is called once per complete, non-duplicate group, and routes
// to the handler for the group's family/version.
func (d *Decoder) dispatch() {
	if d.current == nil {
		return
	}
	blockB := d.group.blockWord(1)
	gt := decodeGroupType(blockB)

	switch {
	case gt.Family == 0 && !gt.VersionB:
		d.dispatch0A()
	case gt.Family == 2 && !gt.VersionB:
		d.dispatch2A()
	case gt.Family == 4 && !gt.VersionB:
		d.dispatch4A()
	case gt.Family == 8 && !gt.VersionB:
		d.dispatch8A()
	case gt.Family == 14 && !gt.VersionB:
		d.dispatch14A()
	default:
		d.Log.Debug("unhandled group type", "type", gt.String())
	}
}

// Decode runs the decoder until ctx is cancelled or blocks is closed,
// feeding every received block and applying every received command.
// This takes the place of the original program's blocking poll loop: Go
// channels and select are the idiomatic equivalent of multiplexing reads
// on two file descriptors with a timeout.
func (d *Decoder) Decode(ctx context.Context, blocks <-chan Block, commands <-chan Command) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case b, ok := <-blocks:
			if !ok {
				return nil
			}
			d.Feed(b)
		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if err := d.HandleCommand(cmd); err != nil {
				d.Log.Warn("command failed", "cmd", string(cmd), "err", err)
			}
		}
	}
}
