package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLookupOrInsertCreatesOnMiss(t *testing.T) {
	r := New()

	p := r.LookupOrInsert(0x1234)
	require.NotNil(t, p)
	assert.Equal(t, uint16(0x1234), p.ID)
	assert.Equal(t, 1, r.Len())
}

func TestLookupOrInsertReturnsSameRecordOnHit(t *testing.T) {
	r := New()

	p1 := r.LookupOrInsert(0x1234)
	p1.ProgramType = 10

	p2 := r.LookupOrInsert(0x1234)
	assert.Same(t, p1, p2, "second lookup of the same PI must return the same record")
	assert.Equal(t, 10, p2.ProgramType)
	assert.Equal(t, 1, r.Len(), "no duplicate record should be created")
}

func TestStationsInsertionOrder(t *testing.T) {
	r := New()
	r.LookupOrInsert(0x3000)
	r.LookupOrInsert(0x1000)
	r.LookupOrInsert(0x2000)

	got := r.Stations()
	require.Len(t, got, 3)
	assert.Equal(t, uint16(0x3000), got[0].ID)
	assert.Equal(t, uint16(0x1000), got[1].ID)
	assert.Equal(t, uint16(0x2000), got[2].ID)
}

// TestUniquePIInvariant is the property from the testable-properties section:
// for all PI codes p, at most one ProgramData with id = p exists.
func TestUniquePIInvariant(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		r := New()
		ids := rapid.SliceOfN(rapid.Uint16(), 0, 200).Draw(rt, "ids")

		seen := map[uint16]*ProgramData{}
		for _, id := range ids {
			p := r.LookupOrInsert(id)
			if prev, ok := seen[id]; ok {
				assert.Same(rt, prev, p)
			}
			seen[id] = p
		}

		counts := map[uint16]int{}
		for _, p := range r.Stations() {
			counts[p.ID]++
		}
		for id, n := range counts {
			assert.Equal(rt, 1, n, "PI %04X should appear exactly once", id)
		}
	})
}

func TestNameStringRendersUnwrittenBytesAsSpaces(t *testing.T) {
	p := &ProgramData{}
	p.Name[0] = 'B'
	p.Name[1] = 'B'
	p.Name[2] = 'C'
	assert.Equal(t, "BBC     ", p.NameString())
}

func TestAddAltFreqDeduplicates(t *testing.T) {
	p := &ProgramData{}
	p.AddAltFreq(88.7)
	p.AddAltFreq(88.7)
	p.AddAltFreq(97.2)
	assert.Len(t, p.AltFreqs, 2)
}
