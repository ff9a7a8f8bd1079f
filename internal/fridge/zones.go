package fridge

import "fmt"

// Fridge geometry. Five levels of four sections each, matching the physical
// rig: a rotating platform with four quadrants per shelf.
const (
	TotalLevels      = 5
	SectionsPerLevel = 4
)

// ZoneTable maps each fridge level to its fixed temperature. The table is
// static hardware configuration: levels are 0..TotalLevels-1 and the mapping
// never changes at runtime.
type ZoneTable struct {
	temps []int
}

// DefaultZones returns the production zone layout, spanning deep-freeze at
// the bottom to near-room temperature at the top.
func DefaultZones() *ZoneTable {
	return &ZoneTable{temps: []int{-18, -5, 2, 6, 10}}
}

// NewZoneTable builds a zone table from an explicit level→temperature list.
func NewZoneTable(temps []int) *ZoneTable {
	out := make([]int, len(temps))
	copy(out, temps)
	return &ZoneTable{temps: out}
}

// Levels returns the number of configured levels.
func (z *ZoneTable) Levels() int {
	return len(z.temps)
}

// Temperature returns the fixed temperature of a level.
func (z *ZoneTable) Temperature(level int) (int, error) {
	if level < 0 || level >= len(z.temps) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	return z.temps[level], nil
}

// Nearest returns the level whose temperature is closest to target. Ties
// break toward the lower level index; scanning in ascending level order keeps
// the result deterministic.
func (z *ZoneTable) Nearest(target int) int {
	best := 0
	bestDiff := absInt(z.temps[0] - target)
	for level := 1; level < len(z.temps); level++ {
		if diff := absInt(z.temps[level] - target); diff < bestDiff {
			best = level
			bestDiff = diff
		}
	}
	return best
}

// Map returns the table as level→temperature, as served in status payloads.
func (z *ZoneTable) Map() map[int]int {
	out := make(map[int]int, len(z.temps))
	for level, temp := range z.temps {
		out[level] = temp
	}
	return out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
