package monitoring

import (
	"testing"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	metrics := m.GetMetrics()

	// Check if our metric is present
	value, exists := metrics["test_metric"]
	if !exists {
		t.Fatalf("Expected 'test_metric' to be present in metrics, but it was not")
	}

	// Check value
	if value != 42 {
		t.Errorf("Expected 'test_metric' to be 42, but got %v", value)
	}

	// Check uptime presence
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}

func TestMonitor_RecordOperation(t *testing.T) {
	m := NewMonitor()

	m.RecordOperation("place", true)
	m.RecordOperation("place", true)
	m.RecordOperation("place", false)

	total, exists := m.GetMetric("place_total")
	if !exists {
		t.Fatalf("Expected 'place_total' to be present in metrics, but it was not")
	}
	if total != 2 {
		t.Errorf("Expected 'place_total' to be 2, but got %v", total)
	}

	failures, exists := m.GetMetric("place_failures")
	if !exists {
		t.Fatalf("Expected 'place_failures' to be present in metrics, but it was not")
	}
	if failures != 1 {
		t.Errorf("Expected 'place_failures' to be 1, but got %v", failures)
	}

	// Check last-run timestamp is recorded
	_, exists = m.GetMetric("place_last_run")
	if !exists {
		t.Errorf("Expected 'place_last_run' to be present in metrics, but it was not")
	}
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()

	// Our test metric should be gone, but uptime should still be there
	_, exists := metrics["test_metric"]
	if exists {
		t.Errorf("Expected 'test_metric' to be removed after Reset(), but it was present")
	}

	// Uptime should still be present (it's added on GetMetrics call)
	_, exists = metrics["uptime_seconds"]
	if !exists {
		t.Errorf("Expected 'uptime_seconds' to be present in metrics, but it was not")
	}
}
