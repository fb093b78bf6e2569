package rds

// programTypes is the closed, 30-name RDS Program Type (PTY) table.
// PTY code 1 names table[0], PTY code 2 names table[1], ... PTY code 30
// names table[29]. PTY code 0 means "undefined" and is handled separately
// by callers, never indexed here.
//
// The original C program this package's behaviour is grounded on has a
// missing comma in this table that silently fuses "Religion" and
// "Phone In" into a single entry, shifting every name after it by one.
// This table lists all 30 names distinctly.
var programTypes = [30]string{
	"News",
	"Current affairs",
	"Information",
	"Sport",
	"Education",
	"Drama",
	"Culture",
	"Science",
	"Varied",
	"Pop music",
	"Rock music",
	"Easy listening",
	"Light classical",
	"Serious classical",
	"Other music",
	"Weather",
	"Finance",
	"Children's programmes",
	"Social affairs",
	"Religion",
	"Phone in",
	"Travel",
	"Leisure",
	"Jazz music",
	"Country music",
	"National music",
	"Oldies music",
	"Folk music",
	"Documentary",
	"Alarm test",
}

// ProgramTypeName returns the human-readable name for a 5-bit PTY code.
// Code 0 returns "Unknown"; codes outside [0,30] (not representable by the
// 5-bit field, but defensive for callers constructing a PTY by hand) also
// return "Unknown".
func ProgramTypeName(pty int) string {
	if pty <= 0 || pty > len(programTypes) {
		return "Unknown"
	}
	return programTypes[pty-1]
}
