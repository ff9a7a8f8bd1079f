package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the fridge engine, exposed on the metrics port.
var (
	PlacementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fridge_placements_total",
		Help: "Successful item placements.",
	})
	RetrievalsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fridge_retrievals_total",
		Help: "Successful item retrievals.",
	})
	FridgeFullTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fridge_full_rejections_total",
		Help: "Placements rejected because no slot was free.",
	})
	ClassifierFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fridge_classifier_failures_total",
		Help: "Classification calls that failed after retries or returned unusable output.",
	})
	ItemsStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "fridge_items_stored",
		Help: "Items currently stored in the fridge.",
	})
)

// Monitor collects ad-hoc operational metrics for the dashboard, alongside
// the Prometheus collectors above.
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics))
	for k, v := range m.metrics {
		metrics[k] = v
	}

	// Add system metrics
	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()

	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordOperation records the outcome of a fridge operation, keeping a
// per-operation counter and last-run timestamp.
func (m *Monitor) RecordOperation(op string, ok bool) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	key := op + "_total"
	if !ok {
		key = op + "_failures"
	}
	if n, exists := m.metrics[key].(int); exists {
		m.metrics[key] = n + 1
	} else {
		m.metrics[key] = 1
	}
	m.metrics[op+"_last_run"] = time.Now().Format(time.RFC3339)
}
