package rds

// dispatch2A handles group type 2A: radiotext.
func (d *Decoder) dispatch2A() {
	blockB := d.group.blockWord(1)
	blockC := d.group.blockWord(2)
	blockD := d.group.blockWord(3)

	index := int(blockB & 0x0f)
	ab := blockB&0x10 != 0

	if text, ok := d.rt.toggle(ab); ok && text != "" {
		d.Log.Info("radiotext", "pi", piHex(d.current.ID), "text", text)
	}

	bytes := [4]byte{
		byte(blockC >> 8), byte(blockC),
		byte(blockD >> 8), byte(blockD),
	}
	d.rt.write(4*index, bytes[:])
}
