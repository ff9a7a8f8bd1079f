package fridge

import (
	"fmt"

	"smartfridge/internal/models"
)

// Resolver turns a parsed classification into a concrete, occupancy-valid
// slot. Temperature safety is enforced here rather than trusted from the
// classifier: the target level is always re-derived from the item's optimal
// temperature, and the classifier's suggested level is advisory only.
type Resolver struct {
	zones *ZoneTable
	slots *SlotMap
}

// NewResolver creates a resolver over the given zone table and slot map.
func NewResolver(zones *ZoneTable, slots *SlotMap) *Resolver {
	return &Resolver{zones: zones, slots: slots}
}

// Resolve picks the final slot for the classified item.
//
// The target level is the zone nearest the item's optimal temperature, with a
// tightened re-match pass when the nearest zone is still more than 10°C away.
// The classifier's suggested section is honored when free; otherwise the
// search falls back to any free section on the target level, then to the
// free-capacity level whose temperature is closest to the optimum. When a
// fallback path is taken, a note describing the original vs. final zone is
// appended to the classification's reasoning.
//
// Resolve only reads the slot map. On error nothing has been committed.
func (r *Resolver) Resolve(c *models.ItemClassification) (Slot, error) {
	target := r.zones.Nearest(c.OptimalTemp)

	// Re-match pass: if even the nearest zone is far off, prefer any zone
	// within 5°C of the optimum. Keeps the original target when none exists.
	if temp, err := r.zones.Temperature(target); err == nil && absInt(temp-c.OptimalTemp) > 10 {
		for level := 0; level < r.zones.Levels(); level++ {
			t, _ := r.zones.Temperature(level)
			if absInt(t-c.OptimalTemp) <= 5 {
				target = level
				break
			}
		}
	}

	if c.SuggestedSection < 0 || c.SuggestedSection >= SectionsPerLevel {
		return Slot{}, fmt.Errorf("%w: %d", ErrInvalidSection, c.SuggestedSection)
	}

	// Suggested section on the temperature-correct level.
	want := Slot{Level: target, Section: c.SuggestedSection}
	if !r.slots.Occupied(want) {
		return want, nil
	}

	// Same level, first free section in ascending order.
	if sec := r.slots.FreeSection(target); sec >= 0 {
		appendReasoning(c, fmt.Sprintf("Section %d on level %d was occupied; stored in free section %d of the same zone.",
			c.SuggestedSection, target, sec))
		return Slot{Level: target, Section: sec}, nil
	}

	// Target level is full: among levels with free capacity, pick the one
	// whose zone temperature is closest to the optimum. Scan order breaks
	// ties toward the lower level.
	bestLevel, bestSection := -1, -1
	bestDiff := 0
	for level := 0; level < r.zones.Levels(); level++ {
		sec := r.slots.FreeSection(level)
		if sec < 0 {
			continue
		}
		temp, _ := r.zones.Temperature(level)
		diff := absInt(temp - c.OptimalTemp)
		if bestLevel < 0 || diff < bestDiff {
			bestLevel, bestSection, bestDiff = level, sec, diff
		}
	}
	if bestLevel < 0 {
		return Slot{}, ErrFridgeFull
	}

	targetTemp, _ := r.zones.Temperature(target)
	finalTemp, _ := r.zones.Temperature(bestLevel)
	appendReasoning(c, fmt.Sprintf("Level %d (%d°C) was full; stored on the thermally closest free level %d (%d°C).",
		target, targetTemp, bestLevel, finalTemp))

	return Slot{Level: bestLevel, Section: bestSection}, nil
}

func appendReasoning(c *models.ItemClassification, note string) {
	if c.Reasoning != "" {
		c.Reasoning += " " + note
		return
	}
	c.Reasoning = note
}
