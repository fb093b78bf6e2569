package rds

import "strconv"

// Block is one 24-bit RDS block record as delivered by the tuner: two
// data bytes plus a status byte whose low 3 bits give the block's
// position (0..3) within its group and whose bit 7 flags an uncorrectable
// error.
type Block struct {
	LSB, MSB byte
	Status   byte
}

// Position returns the block's position (0..3) within its group.
func (b Block) Position() int {
	return int(b.Status & 0x07)
}

// Errored reports whether the block was flagged as uncorrectable.
func (b Block) Errored() bool {
	return b.Status&0x80 != 0
}

// Word returns the block's 16 data bits, MSB first.
func (b Block) Word() uint16 {
	return uint16(b.MSB)<<8 | uint16(b.LSB)
}

// groupType names a family (0..15) and version (A/B) pair.
type groupType struct {
	Family  int
	VersionB bool
}

func (g groupType) String() string {
	v := "A"
	if g.VersionB {
		v = "B"
	}
	return strconv.Itoa(g.Family) + v
}

// groupBuffer assembles the 4 blocks (A,B,C,D) of one RDS group into 8
// bytes, tracking which positions have arrived without error.
type groupBuffer struct {
	data     [8]byte
	received [4]bool
}

func (g *groupBuffer) reset() {
	g.data = [8]byte{}
	g.received = [4]bool{}
}

// put places a successfully-received block into the buffer.
func (g *groupBuffer) put(b Block) {
	pos := b.Position()
	g.data[2*pos] = b.LSB
	g.data[2*pos+1] = b.MSB
	g.received[pos] = true
}

// complete reports whether all four blocks of the current group have
// arrived without error.
func (g *groupBuffer) complete() bool {
	for _, r := range g.received {
		if !r {
			return false
		}
	}
	return true
}

// blockWord returns the 16-bit word for block index i (0=A,...,3=D).
func (g *groupBuffer) blockWord(i int) uint16 {
	return uint16(g.data[2*i+1])<<8 | uint16(g.data[2*i])
}
