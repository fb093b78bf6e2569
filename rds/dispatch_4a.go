package rds

// dispatch4A handles group type 4A: clock-time & date.
//
// Bit layout (per the RDS standard): the 17-bit Modified Julian Date
// spans the low 2 bits of block B (high part) and the high 15 bits of
// block C (middle+low part); the remaining low bit of block C is the
// most significant bit of the 5-bit hour field, whose remaining 4 bits
// are the high nibble of block D. Minute (6 bits) follows in block D,
// then the signed 5-bit local-time offset in half-hour units (sign in
// bit 5, magnitude in bits 4..0).
func (d *Decoder) dispatch4A() {
	blockB := d.group.blockWord(1)
	blockC := d.group.blockWord(2)
	blockD := d.group.blockWord(3)

	mjd := int(blockB&0x03)<<15 | int(blockC>>1)
	hour := int(blockC&0x01)<<4 | int(blockD>>12)&0x0f
	minute := int(blockD>>6) & 0x3f

	offsetField := int(blockD) & 0x3f
	offsetHalfHours := offsetField & 0x1f
	if offsetField&0x20 != 0 {
		offsetHalfHours = -offsetHalfHours
	}

	clock := DecodeClock(mjd, hour, minute, offsetHalfHours)
	d.Log.Info("clock", "pi", piHex(d.current.ID), "time", clock.Format())
}
