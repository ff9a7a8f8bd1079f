// Package device abstracts the physical storage rig: a lift that moves the
// platform between levels, a turntable that rotates to a section, and an arm
// that fetches or deposits the item at the current position.
package device

import "log"

// Controller is the narrow command interface to the rig. Implementations
// validate argument ranges and return false on invalid input instead of
// failing; the engine only commands slots it has already validated, so a
// false here means a hardware-layer problem.
type Controller interface {
	Lift(level int) bool
	Turn(section int) bool
	Fetch() bool
}

// Simulator is a no-op controller that logs each motion. It stands in for
// the microcontroller-driven rig during development and in tests.
type Simulator struct {
	Levels   int
	Sections int
}

// NewSimulator creates a simulator for the given rig geometry.
func NewSimulator(levels, sections int) *Simulator {
	return &Simulator{Levels: levels, Sections: sections}
}

// Lift raises the platform to the given level.
func (s *Simulator) Lift(level int) bool {
	if level < 0 || level >= s.Levels {
		log.Printf("device: invalid level %d", level)
		return false
	}
	log.Printf("device: reached level %d", level)
	return true
}

// Turn rotates the platform to the given section.
func (s *Simulator) Turn(section int) bool {
	if section < 0 || section >= s.Sections {
		log.Printf("device: invalid section %d", section)
		return false
	}
	log.Printf("device: turned to section %d", section)
	return true
}

// Fetch actuates the arm at the current position.
func (s *Simulator) Fetch() bool {
	log.Printf("device: fetched object")
	return true
}
