package fridge

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"

	"smartfridge/internal/models"
)

// longTermHorizonDays models "never expires" as a far-future expiry date
// (100 years) instead of a distinct state, so every item carries a concrete
// expiry timestamp.
const longTermHorizonDays = 36500

// Ledger is the aggregate root for stored items and slot occupancy. The whole
// ledger is the unit of persistence: it is read fully on load and rewritten
// fully on every mutation as a single JSON document.
//
// A single mutex guards every read-modify-persist cycle so overlapping HTTP
// requests cannot lose updates.
type Ledger struct {
	mu    sync.Mutex
	path  string
	items map[string]models.InventoryItem
	slots *SlotMap
	now   func() time.Time
}

// ledgerDocument is the on-disk layout of the ledger.
type ledgerDocument struct {
	Items      map[string]models.InventoryItem `json:"items"`
	LevelUsage map[string]map[string]bool      `json:"level_usage"`
	LastUpdate time.Time                       `json:"last_update"`
}

// NewLedger opens the ledger at path, loading existing state from disk. A
// missing or unreadable file is never fatal: the ledger reinitializes empty
// so a bad write can never block a device restart.
func NewLedger(path string) *Ledger {
	l := &Ledger{
		path:  path,
		items: make(map[string]models.InventoryItem),
		slots: NewSlotMap(TotalLevels, SectionsPerLevel),
		now:   time.Now,
	}
	l.load()
	return l
}

// load replaces in-memory state with the persisted document. Corruption is
// treated as "start fresh" and logged, not surfaced.
func (l *Ledger) load() {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("WARNING: ledger file %s unreadable, starting fresh: %v", l.path, err)
		}
		return
	}

	var doc ledgerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("WARNING: ledger file %s corrupt, starting fresh: %v", l.path, err)
		return
	}

	items := make(map[string]models.InventoryItem, len(doc.Items))
	slots := NewSlotMap(TotalLevels, SectionsPerLevel)
	for id, item := range doc.Items {
		items[id] = item
	}
	for levelKey, sections := range doc.LevelUsage {
		level, err := strconv.Atoi(levelKey)
		if err != nil {
			continue
		}
		for sectionKey, taken := range sections {
			sec, err := strconv.Atoi(sectionKey)
			if err != nil || !taken {
				continue
			}
			slots.Occupy(Slot{Level: level, Section: sec})
		}
	}
	l.items = items
	l.slots = slots
}

// persist writes the whole document to disk. Must be called with l.mu held.
func (l *Ledger) persist() error {
	doc := ledgerDocument{
		Items:      l.items,
		LevelUsage: l.slots.Usage(),
		LastUpdate: l.now(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}

// Place commits a resolved item into the given slot, marks the slot occupied
// and persists. It fails with ErrSlotOccupied only when a caller bypassed the
// resolver, which is a bug-class invariant violation.
func (l *Ledger) Place(name string, c models.ItemClassification, slot Slot) (models.InventoryItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.slots.Valid(slot) {
		return models.InventoryItem{}, fmt.Errorf("%w: level %d section %d", ErrInvalidSection, slot.Level, slot.Section)
	}
	if l.slots.Occupied(slot) {
		return models.InventoryItem{}, fmt.Errorf("%w: level %d section %d", ErrSlotOccupied, slot.Level, slot.Section)
	}

	added := l.now()
	days := c.ShelfLifeDays
	if days == models.LongTermSentinel {
		days = longTermHorizonDays
	}

	item := models.InventoryItem{
		ID:            fmt.Sprintf("%s_%s", name, added.Format("20060102_150405")),
		Name:          name,
		Category:      c.Category,
		Level:         slot.Level,
		Section:       slot.Section,
		OptimalTemp:   c.OptimalTemp,
		ShelfLifeDays: c.ShelfLifeDays,
		AddedAt:       added,
		ExpiryAt:      added.AddDate(0, 0, days),
		Reasoning:     c.Reasoning,
	}

	l.items[item.ID] = item
	l.slots.Occupy(slot)
	if err := l.persist(); err != nil {
		return item, err
	}
	return item, nil
}

// Retrieve removes the item, frees its slot, persists and returns the removed
// item so the caller can report it.
func (l *Ledger) Retrieve(itemID string) (models.InventoryItem, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	item, ok := l.items[itemID]
	if !ok {
		return models.InventoryItem{}, fmt.Errorf("%w: %s", ErrNotFound, itemID)
	}

	l.slots.Release(Slot{Level: item.Level, Section: item.Section})
	delete(l.items, itemID)
	if err := l.persist(); err != nil {
		return item, err
	}
	return item, nil
}

// Snapshot returns the derived view of every live item, sorted by id for a
// stable dashboard order. Pure read, no mutation.
func (l *Ledger) Snapshot() []models.DisplayItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	out := make([]models.DisplayItem, 0, len(l.items))
	for id, item := range l.items {
		remaining := int(item.ExpiryAt.Sub(now).Hours() / 24)
		if remaining < 0 {
			remaining = 0
		}
		out = append(out, models.DisplayItem{
			ItemID:        id,
			Name:          item.Name,
			Category:      item.Category,
			Level:         item.Level,
			Section:       item.Section,
			OptimalTemp:   item.OptimalTemp,
			ShelfLifeDays: item.ShelfLifeDays,
			DaysRemaining: remaining,
			IsExpired:     item.ExpiryAt.Before(now),
			AddedAt:       item.AddedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

// Stats buckets the current snapshot for the dashboard header.
func (l *Ledger) Stats() models.InventoryStats {
	stats := models.InventoryStats{}
	for _, item := range l.Snapshot() {
		stats.TotalItems++
		switch {
		case item.LongTerm():
			stats.LongTermItems++
		case item.IsExpired:
			stats.ExpiredItems++
		case item.DaysRemaining <= 2:
			stats.ExpiringSoon++
		default:
			stats.FreshItems++
		}
	}
	return stats
}

// Resolve picks a slot for the classification against current occupancy.
// Holding the ledger mutex across the resolve keeps the chosen slot valid
// until the caller commits it in the same logical operation.
func (l *Ledger) Resolve(zones *ZoneTable, c *models.ItemClassification) (Slot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return NewResolver(zones, l.slots).Resolve(c)
}

// Usage exposes occupancy as served in status payloads.
func (l *Ledger) Usage() map[string]map[string]bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.slots.Usage()
}

// Count returns the number of stored items.
func (l *Ledger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Capacity returns the total number of slots.
func (l *Ledger) Capacity() int {
	return TotalLevels * SectionsPerLevel
}
