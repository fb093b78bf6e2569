package rds

// dispatch14A handles group type 14A: Enhanced Other Networks (EON).
func (d *Decoder) dispatch14A() {
	blockB := d.group.blockWord(1)
	blockD := d.group.blockWord(3)

	variant := int(blockB) & 0x0f
	otherPI := blockD

	other := d.Registry.LookupOrInsert(otherPI)

	switch {
	case variant >= 0 && variant <= 3:
		blockC := d.group.blockWord(2)
		cbytes := []byte{byte(blockC >> 8), byte(blockC)}
		offset := 2 * variant
		other.Name[offset] = psChar(cbytes[0])
		other.Name[offset+1] = psChar(cbytes[1])

	case variant == 5:
		blockC := d.group.blockWord(2)
		msb := int(blockC >> 8)
		lsb := int(blockC & 0xff)
		if !isAFFreqCode(msb) || !isAFFreqCode(lsb) {
			return
		}
		f1 := DecodeAltFreq(msb)
		f2 := DecodeAltFreq(lsb)

		// The original program's check here tested the truthiness of the
		// station-name array's address, which is always non-null and so
		// never actually gated anything. The intent is to check whether
		// the other station already has a first name byte recorded.
		if other.Name[0] != 0 && abs(f1-d.current.Freq) <= eonAFMatchToleranceMHz {
			other.Freq = f2
		}

	case variant == 0x0d:
		blockC := d.group.blockWord(2)
		tpOn := blockB&0x10 != 0 // TP-ON flag for the other network
		if tpOn {
			other.TrafficAnnouncement = blockC&0x01 != 0
		}
	}
}
