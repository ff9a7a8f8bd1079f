package fridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotMap_OccupyRelease(t *testing.T) {
	m := NewSlotMap(TotalLevels, SectionsPerLevel)

	slot := Slot{Level: 2, Section: 1}
	assert.False(t, m.Occupied(slot))

	m.Occupy(slot)
	assert.True(t, m.Occupied(slot))
	assert.Equal(t, 1, m.Count())

	m.Release(slot)
	assert.False(t, m.Occupied(slot))
	assert.Equal(t, 0, m.Count())
}

func TestSlotMap_OutOfRangeReadsOccupied(t *testing.T) {
	m := NewSlotMap(TotalLevels, SectionsPerLevel)

	assert.True(t, m.Occupied(Slot{Level: -1, Section: 0}))
	assert.True(t, m.Occupied(Slot{Level: 0, Section: SectionsPerLevel}))
	assert.True(t, m.Occupied(Slot{Level: TotalLevels, Section: 0}))
}

func TestSlotMap_FreeSection(t *testing.T) {
	m := NewSlotMap(TotalLevels, SectionsPerLevel)

	assert.Equal(t, 0, m.FreeSection(3))

	m.Occupy(Slot{Level: 3, Section: 0})
	m.Occupy(Slot{Level: 3, Section: 1})
	assert.Equal(t, 2, m.FreeSection(3))

	for sec := 0; sec < SectionsPerLevel; sec++ {
		m.Occupy(Slot{Level: 3, Section: sec})
	}
	assert.Equal(t, -1, m.FreeSection(3))

	assert.Equal(t, -1, m.FreeSection(-1))
	assert.Equal(t, -1, m.FreeSection(TotalLevels))
}

func TestSlotMap_Usage(t *testing.T) {
	m := NewSlotMap(2, 2)
	m.Occupy(Slot{Level: 1, Section: 0})

	usage := m.Usage()
	assert.Equal(t, map[string]map[string]bool{
		"0": {"0": false, "1": false},
		"1": {"0": true, "1": false},
	}, usage)
	assert.Equal(t, 4, m.Capacity())
}
