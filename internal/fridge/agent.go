package fridge

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"

	"smartfridge/internal/device"
	"smartfridge/internal/models"
	"smartfridge/internal/monitoring"
)

// Classifier is the external vision oracle. Classify returns the model's raw
// item attributes for a photo; Recommend returns model-generated suggestions
// over the current contents. Both are allowed to fail: placement reports the
// failure, recommendations fall back to the local summarizer.
type Classifier interface {
	Classify(ctx context.Context, image []byte, status models.FridgeStatus) (models.RawClassification, error)
	Recommend(ctx context.Context, status models.FridgeStatus) ([]models.Recommendation, error)
}

// Recorder receives an audit record of every completed place and retrieve.
type Recorder interface {
	Record(action, itemID, name string, level, section int) error
}

// PlacementResult reports a completed placement to the caller.
type PlacementResult struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Level     int    `json:"level"`
	Section   int    `json:"section"`
	Message   string `json:"message"`
	Reasoning string `json:"reasoning"`
}

// RetrievalResult reports a completed retrieval to the caller.
type RetrievalResult struct {
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Message  string `json:"message"`
}

// Agent owns the full place/retrieve flow: classification, slot resolution,
// ledger commit, and rig motion. It is the single long-lived service instance
// the process entry point builds and injects into request handlers.
type Agent struct {
	// opMu serializes logical operations end to end, so a resolved slot
	// stays valid until the ledger commits it.
	opMu sync.Mutex

	zones      *ZoneTable
	ledger     *Ledger
	classifier Classifier
	rig        device.Controller
	recorder   Recorder
	monitor    *monitoring.Monitor
}

// NewAgent wires the engine together. recorder may be nil when no audit
// trail is configured.
func NewAgent(zones *ZoneTable, ledger *Ledger, classifier Classifier, rig device.Controller, recorder Recorder, monitor *monitoring.Monitor) *Agent {
	a := &Agent{
		zones:      zones,
		ledger:     ledger,
		classifier: classifier,
		rig:        rig,
		recorder:   recorder,
		monitor:    monitor,
	}
	monitoring.ItemsStored.Set(float64(ledger.Count()))
	return a
}

// Status returns the full inventory view.
func (a *Agent) Status() models.FridgeStatus {
	snapshot := a.ledger.Snapshot()
	return models.FridgeStatus{
		Inventory:         snapshot,
		TotalItems:        len(snapshot),
		TemperatureLevels: a.zones.Map(),
		AvailableSections: a.ledger.Usage(),
		Stats:             a.ledger.Stats(),
	}
}

// PlaceItem runs the full placement flow for an item photo on disk: classify,
// canonicalize, resolve a slot, commit to the ledger, then drive the rig.
func (a *Agent) PlaceItem(ctx context.Context, imagePath string) (PlacementResult, error) {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	image, err := os.ReadFile(imagePath)
	if err != nil {
		return PlacementResult{}, fmt.Errorf("read image: %w", err)
	}

	raw, err := a.classifier.Classify(ctx, image, a.Status())
	if err != nil {
		monitoring.ClassifierFailuresTotal.Inc()
		a.record("place", false)
		return PlacementResult{}, err
	}

	classification := canonicalize(raw)
	slot, err := a.ledger.Resolve(a.zones, &classification)
	if err != nil {
		if isFull(err) {
			monitoring.FridgeFullTotal.Inc()
		}
		a.record("place", false)
		return PlacementResult{}, err
	}

	item, err := a.ledger.Place(classification.DisplayName, classification, slot)
	if err != nil {
		a.record("place", false)
		return PlacementResult{}, err
	}

	// The slot is committed before the rig moves; a motion failure is a
	// hardware-layer problem, reported but not retried here.
	a.moveTo(slot)

	monitoring.PlacementsTotal.Inc()
	monitoring.ItemsStored.Set(float64(a.ledger.Count()))
	a.record("place", true)
	a.audit("place", item.ID, item.Name, item.Level, item.Section)

	return PlacementResult{
		ItemID:    item.ID,
		Name:      item.Name,
		Level:     item.Level,
		Section:   item.Section,
		Message:   fmt.Sprintf("Stored %s on level %d, section %d", item.Name, item.Level, item.Section),
		Reasoning: item.Reasoning,
	}, nil
}

// RetrieveItem moves the rig to the item's slot, fetches it, and removes it
// from the ledger.
func (a *Agent) RetrieveItem(itemID string) (RetrievalResult, error) {
	a.opMu.Lock()
	defer a.opMu.Unlock()

	item, err := a.ledger.Retrieve(itemID)
	if err != nil {
		a.record("retrieve", false)
		return RetrievalResult{}, err
	}

	a.moveTo(Slot{Level: item.Level, Section: item.Section})

	monitoring.RetrievalsTotal.Inc()
	monitoring.ItemsStored.Set(float64(a.ledger.Count()))
	a.record("retrieve", true)
	a.audit("retrieve", item.ID, item.Name, item.Level, item.Section)

	return RetrievalResult{
		ItemID:   item.ID,
		ItemName: item.Name,
		Message:  fmt.Sprintf("Retrieved %s", item.Name),
	}, nil
}

// Recommendations returns model-generated suggestions when the classifier is
// reachable, and the deterministic local summary otherwise.
func (a *Agent) Recommendations(ctx context.Context) []models.Recommendation {
	recs, err := a.classifier.Recommend(ctx, a.Status())
	if err != nil || len(recs) == 0 {
		if err != nil {
			log.Printf("recommender unavailable, using local summary: %v", err)
			monitoring.ClassifierFailuresTotal.Inc()
		}
		return Summarize(a.ledger.Snapshot())
	}
	return recs
}

// TakeOutNext picks the item a physical take-out button press should eject:
// expired items first, then items expiring within two days, then the oldest
// fresh item. Returns ErrNotFound on an empty fridge.
func (a *Agent) TakeOutNext() (RetrievalResult, error) {
	snapshot := a.ledger.Snapshot()
	if len(snapshot) == 0 {
		return RetrievalResult{}, fmt.Errorf("%w: fridge is empty", ErrNotFound)
	}

	var expired, expiring, fresh []models.DisplayItem
	for _, item := range snapshot {
		switch {
		case item.IsExpired && !item.LongTerm():
			expired = append(expired, item)
		case item.DaysRemaining <= expiringSoonDays && !item.LongTerm():
			expiring = append(expiring, item)
		default:
			fresh = append(fresh, item)
		}
	}

	var pick models.DisplayItem
	switch {
	case len(expired) > 0:
		pick = expired[0]
	case len(expiring) > 0:
		pick = expiring[0]
	default:
		sort.Slice(fresh, func(i, j int) bool { return fresh[i].AddedAt.Before(fresh[j].AddedAt) })
		pick = fresh[0]
	}
	return a.RetrieveItem(pick.ItemID)
}

// Capacity returns the total number of slots.
func (a *Agent) Capacity() int {
	return a.ledger.Capacity()
}

// StoredItems returns the number of items currently stored.
func (a *Agent) StoredItems() int {
	return a.ledger.Count()
}

// moveTo drives the rig to a slot and actuates the arm.
func (a *Agent) moveTo(slot Slot) {
	if !a.rig.Lift(slot.Level) || !a.rig.Turn(slot.Section) || !a.rig.Fetch() {
		log.Printf("WARNING: rig motion failed at level %d section %d", slot.Level, slot.Section)
	}
}

func (a *Agent) record(op string, ok bool) {
	if a.monitor != nil {
		a.monitor.RecordOperation(op, ok)
	}
}

func (a *Agent) audit(action, itemID, name string, level, section int) {
	if a.recorder == nil {
		return
	}
	if err := a.recorder.Record(action, itemID, name, level, section); err != nil {
		log.Printf("WARNING: audit record failed: %v", err)
	}
}

// canonicalize runs the raw classification through the defensive parsers.
func canonicalize(raw models.RawClassification) models.ItemClassification {
	c := models.ItemClassification{
		DisplayName:   raw.ItemName,
		OptimalTemp:   ParseTemperature(string(raw.OptimalTemp)),
		ShelfLifeDays: ParseShelfLife(string(raw.ShelfLifeDays)),
		Category:      raw.Category,
		Reasoning:     raw.Reasoning,
	}
	if raw.Level != nil {
		c.SuggestedLevel = int(*raw.Level)
	}
	if raw.Section != nil {
		c.SuggestedSection = int(*raw.Section)
	}
	return c
}

func isFull(err error) bool {
	return errors.Is(err, ErrFridgeFull)
}
