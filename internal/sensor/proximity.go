// Package sensor runs the proximity poller that notices a user approaching
// the fridge. Detection itself (camera, face cascade) lives behind the
// Detector interface; this package only owns cadence, debouncing and
// delivery.
package sensor

import (
	"context"
	"log"
	"sync"
	"time"
)

// Detector reports whether someone is currently within the trigger distance.
// Implementations may block on I/O; the poller never holds a lock across a
// call.
type Detector interface {
	Near() bool
}

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func() bool

// Near calls f.
func (f DetectorFunc) Near() bool { return f() }

// TriggerDetector is a Detector fed by external pushes: the standalone
// face-detection process reports approaches over HTTP, and each report arms
// the detector for one poll.
type TriggerDetector struct {
	mu      sync.Mutex
	pending bool
}

// Trigger arms the detector.
func (t *TriggerDetector) Trigger() {
	t.mu.Lock()
	t.pending = true
	t.mu.Unlock()
}

// Near consumes a pending trigger.
func (t *TriggerDetector) Near() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.pending {
		t.pending = false
		return true
	}
	return false
}

// Event is emitted when a debounced proximity trigger fires.
type Event struct {
	At time.Time
}

// Poller polls a Detector and emits debounced events on a bounded channel.
// Delivery is best-effort: when the consumer lags, events are dropped rather
// than allowed to pile up into a storm.
type Poller struct {
	detector Detector
	interval time.Duration
	cooldown time.Duration
	events   chan Event
	lastFire time.Time
}

// NewPoller creates a poller. interval is the detector polling cadence,
// cooldown the minimum gap between two emitted events.
func NewPoller(detector Detector, interval, cooldown time.Duration) *Poller {
	return &Poller{
		detector: detector,
		interval: interval,
		cooldown: cooldown,
		events:   make(chan Event, 8),
	}
}

// Events returns the channel proximity events are delivered on. It is closed
// when Run returns.
func (p *Poller) Events() <-chan Event {
	return p.events
}

// Run polls until ctx is cancelled. It is meant to be started as a goroutine
// by the process entry point.
func (p *Poller) Run(ctx context.Context) {
	defer close(p.events)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !p.detector.Near() {
				continue
			}
			now := time.Now()
			if now.Sub(p.lastFire) < p.cooldown {
				continue
			}
			p.lastFire = now
			select {
			case p.events <- Event{At: now}:
			default:
				log.Printf("sensor: dropping proximity event, consumer busy")
			}
		}
	}
}
