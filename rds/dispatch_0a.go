package rds

// dispatch0A handles group type 0A: basic tuning & switching information.
func (d *Decoder) dispatch0A() {
	blockB := d.group.blockWord(1)
	blockC := d.group.blockWord(2)
	blockD := d.group.blockWord(3)

	tp := blockB&0x0400 != 0
	ta := blockB&0x0010 != 0
	d.current.TrafficProgram = tp

	if tp && ta != d.current.TrafficAnnouncement {
		d.current.TrafficAnnouncement = ta
		d.Log.Info("traffic announcement", "pi", piHex(d.current.ID), "active", ta)
	} else {
		d.current.TrafficAnnouncement = ta
	}

	segment := int(blockB & 0x03)
	pos := segment << 1
	dbytes := []byte{byte(blockD >> 8), byte(blockD)}
	d.current.Name[pos] = psChar(dbytes[0])
	d.current.Name[pos+1] = psChar(dbytes[1])

	if segment == 3 {
		name := d.current.NameString()
		if name != "        " && name != d.lastEmittedName {
			d.lastEmittedName = name
			d.Log.Info("program service", "pi", piHex(d.current.ID), "name", name)
		}

		stereo := blockB&0x0008 != 0
		if d.lastStereo == nil || *d.lastStereo != stereo {
			s := stereo
			d.lastStereo = &s
			d.Log.Info("stereo", "pi", piHex(d.current.ID), "stereo", stereo)
		}
	}

	d.decodeAFList(blockC)
}

// psChar maps a raw Program Service byte to its printable ASCII form.
// The RDS standard uses plain ASCII here; non-printable bytes (which
// should not occur on a correctly-decoded block) are rendered as a space
// so a corrupted byte never produces control characters in the name.
func psChar(b byte) byte {
	if b < 0x20 || b > 0x7e {
		return ' '
	}
	return b
}

func piHex(pi uint16) string {
	const hexDigits = "0123456789ABCDEF"
	return string([]byte{
		hexDigits[(pi>>12)&0xf],
		hexDigits[(pi>>8)&0xf],
		hexDigits[(pi>>4)&0xf],
		hexDigits[pi&0xf],
	})
}

// afListState tracks an in-progress 0A alternative-frequency list across
// however many blocks it takes to see afListLength entries.
type afListState struct {
	remaining int
	active    bool
}

// decodeAFList consumes the two AF bytes carried in block C of a 0A
// group. A byte in the AF-list-open range starts a new list of the
// declared length; bytes in the AF-frequency range are decoded and
// recorded against the current station as long as a list is open.
func (d *Decoder) decodeAFList(blockC uint16) {
	a := int(blockC >> 8)
	b := int(blockC & 0xff)

	for _, code := range [2]int{a, b} {
		if length, ok := isAFListOpen(code); ok {
			d.afList.active = length > 0
			d.afList.remaining = length
			continue
		}
		if d.afList.active && isAFFreqCode(code) {
			d.current.AddAltFreq(DecodeAltFreq(code))
			d.afList.remaining--
			if d.afList.remaining <= 0 {
				d.afList.active = false
			}
		}
	}
}
