package observability

import (
	"testing"
	"time"
)

func TestMetricsSnapshot(t *testing.T) {
	m := NewMetrics()
	m.RecordRequest("/shifts", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/shifts", "GET", 200, 30*time.Millisecond)
	m.RecordError("/shifts", "POST", "FORBIDDEN")

	snap := m.Snapshot()
	if len(snap.Requests) != 1 {
		t.Fatalf("expected one route key, got %d", len(snap.Requests))
	}
	stats := snap.Requests[0]
	if stats.Key != "/shifts|GET|200" || stats.Count != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.AvgLatencyMsec != 20 {
		t.Errorf("avg latency = %v", stats.AvgLatencyMsec)
	}
	if snap.Errors["/shifts|POST|FORBIDDEN"] != 1 {
		t.Errorf("errors = %v", snap.Errors)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	if snap := m.Snapshot(); len(snap.Requests) != 0 {
		t.Error("nil metrics should produce empty snapshot")
	}
}
