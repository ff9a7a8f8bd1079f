package fridge

import "strconv"

// Slot addresses a single storage location: a level on the lift and a section
// of the rotating platform.
type Slot struct {
	Level   int `json:"level"`
	Section int `json:"section"`
}

// SlotMap tracks per-slot occupancy. It is owned by the ledger: placements
// and retrievals are the only operations that mutate it, so occupancy and the
// item set can never drift apart.
type SlotMap struct {
	levels   int
	sections int
	occupied [][]bool
}

// NewSlotMap creates an all-free slot map for the given geometry.
func NewSlotMap(levels, sections int) *SlotMap {
	occ := make([][]bool, levels)
	for i := range occ {
		occ[i] = make([]bool, sections)
	}
	return &SlotMap{levels: levels, sections: sections, occupied: occ}
}

// Valid reports whether the slot is within the fridge geometry.
func (m *SlotMap) Valid(s Slot) bool {
	return s.Level >= 0 && s.Level < m.levels && s.Section >= 0 && s.Section < m.sections
}

// Occupied reports whether the slot currently holds an item. Out-of-range
// slots read as occupied so they are never selected.
func (m *SlotMap) Occupied(s Slot) bool {
	if !m.Valid(s) {
		return true
	}
	return m.occupied[s.Level][s.Section]
}

// FreeSection returns the lowest-numbered free section on a level, or -1 if
// the level is full.
func (m *SlotMap) FreeSection(level int) int {
	if level < 0 || level >= m.levels {
		return -1
	}
	for sec := 0; sec < m.sections; sec++ {
		if !m.occupied[level][sec] {
			return sec
		}
	}
	return -1
}

// Occupy marks a slot as holding an item.
func (m *SlotMap) Occupy(s Slot) {
	if m.Valid(s) {
		m.occupied[s.Level][s.Section] = true
	}
}

// Release marks a slot as free.
func (m *SlotMap) Release(s Slot) {
	if m.Valid(s) {
		m.occupied[s.Level][s.Section] = false
	}
}

// Count returns the number of occupied slots.
func (m *SlotMap) Count() int {
	n := 0
	for _, level := range m.occupied {
		for _, taken := range level {
			if taken {
				n++
			}
		}
	}
	return n
}

// Capacity returns the total number of slots.
func (m *SlotMap) Capacity() int {
	return m.levels * m.sections
}

// Usage returns occupancy as level→section→occupied, string-keyed to match
// the persisted ledger layout.
func (m *SlotMap) Usage() map[string]map[string]bool {
	out := make(map[string]map[string]bool, m.levels)
	for level := 0; level < m.levels; level++ {
		row := make(map[string]bool, m.sections)
		for sec := 0; sec < m.sections; sec++ {
			row[strconv.Itoa(sec)] = m.occupied[level][sec]
		}
		out[strconv.Itoa(level)] = row
	}
	return out
}
