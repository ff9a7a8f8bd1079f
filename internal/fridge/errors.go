package fridge

import "errors"

// Closed set of failure kinds for the placement and retrieval flows.
// Callers branch with errors.Is rather than matching message strings.
var (
	// ErrInvalidLevel is returned for a level index outside the zone table.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrInvalidSection is returned when the classifier suggests a section
	// outside [0, sections-per-level). Distinct from a merely occupied slot.
	ErrInvalidSection = errors.New("invalid section")

	// ErrSlotOccupied indicates a placement into an already occupied slot.
	// This is an invariant violation: it cannot happen when placements go
	// through the resolver.
	ErrSlotOccupied = errors.New("slot already occupied")

	// ErrFridgeFull means no free section exists on any level.
	ErrFridgeFull = errors.New("fridge full: no free slot; clear expired items, reorganize, or retrieve unused items")

	// ErrNotFound is returned when retrieving an unknown item id.
	ErrNotFound = errors.New("item not found")

	// ErrClassifierUnavailable means the vision model could not be reached
	// after retries.
	ErrClassifierUnavailable = errors.New("classifier unavailable")

	// ErrClassifierMalformed means the vision model replied but its output
	// contained no parseable JSON object.
	ErrClassifierMalformed = errors.New("classifier response malformed")

	// ErrIncompleteClassification means the classifier JSON was missing a
	// required field.
	ErrIncompleteClassification = errors.New("incomplete classification")
)
