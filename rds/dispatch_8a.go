package rds

// TMCMessage is a decoded single-message TMC event from an 8A group.
type TMCMessage struct {
	Duration string
	Extent   int
	Event    int
	Location int
}

var tmcDurations = [8]string{
	"unknown", "15min", "30min", "1h", "2h", "3h", "4h", "rest-of-day",
}

// dispatch8A handles group type 8A: Traffic Message Channel.
func (d *Decoder) dispatch8A() {
	blockB := d.group.blockWord(1)
	blockC := d.group.blockWord(2)
	blockD := d.group.blockWord(3)

	subType := int(blockB>>3) & 0x03

	if subType != 0 {
		d.Log.Debug("tmc: unsupported sub-type", "subtype", subType)
		return
	}

	duration := int(blockB) & 0x07
	extent := int(blockC>>11) & 0x07
	event := int(blockC) & 0x07ff
	location := int(blockD)

	msg := TMCMessage{
		Duration: tmcDurations[duration],
		Extent:   extent,
		Event:    event,
		Location: location,
	}
	d.Log.Info("traffic message", "pi", piHex(d.current.ID),
		"duration", msg.Duration, "extent", msg.Extent, "event", msg.Event, "location", msg.Location)
}
