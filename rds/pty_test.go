package rds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgramTypeNameTableHas30DistinctNames(t *testing.T) {
	seen := map[string]bool{}
	for _, name := range programTypes {
		assert.False(t, seen[name], "duplicate PTY name %q", name)
		seen[name] = true
	}
	assert.Len(t, seen, 30)
}

func TestProgramTypeNameBoundaries(t *testing.T) {
	assert.Equal(t, "Unknown", ProgramTypeName(0))
	assert.Equal(t, "News", ProgramTypeName(1))
	assert.Equal(t, "Pop music", ProgramTypeName(10))
	assert.Equal(t, "Religion", ProgramTypeName(20))
	assert.Equal(t, "Phone in", ProgramTypeName(21))
	assert.Equal(t, "Alarm test", ProgramTypeName(30))
	assert.Equal(t, "Unknown", ProgramTypeName(31))
}
