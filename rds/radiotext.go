package rds

import "strings"

// radiotextSize is the fixed length of the RDS radiotext (RT) buffer.
const radiotextSize = 64

// radiotextBuffer accumulates a 64-character radiotext message across 2A
// groups, tracking the A/B toggle bit that signals a new message.
type radiotextBuffer struct {
	text    [radiotextSize]byte
	hasAB   bool
	lastAB  bool
}

func newRadiotextBuffer() *radiotextBuffer {
	rt := &radiotextBuffer{}
	rt.reset()
	return rt
}

func (rt *radiotextBuffer) reset() {
	for i := range rt.text {
		rt.text[i] = ' '
	}
}

// write places the bytes of b into the buffer starting at offset, which
// must be a multiple of 4 (block C/D pairs write 4 bytes per segment).
func (rt *radiotextBuffer) write(offset int, b []byte) {
	for i, c := range b {
		if offset+i < len(rt.text) {
			rt.text[offset+i] = c
		}
	}
}

// toggle handles the A/B flag for the current group. If the flag changed
// since the last group, the current buffer is finalized (trailing spaces
// and carriage returns trimmed) and returned along with true; the buffer
// is then reset to spaces. If the flag is unchanged, ("", false) is
// returned and the buffer is left untouched.
func (rt *radiotextBuffer) toggle(ab bool) (finalized string, didFinalize bool) {
	if rt.hasAB && ab == rt.lastAB {
		return "", false
	}

	wasInitialized := rt.hasAB
	rt.hasAB = true
	rt.lastAB = ab

	if !wasInitialized {
		// First group establishes the baseline toggle state; nothing to
		// finalize yet.
		return "", false
	}

	text := strings.TrimRight(string(rt.text[:]), " \r")
	rt.reset()
	return text, true
}
