package observability

import (
	"fmt"
	"sync"
	"time"
)

// RouteStat accumulates counters for one path/method/status combination.
type RouteStat struct {
	Count         int64 `json:"count"`
	TotalDuration int64 `json:"total_duration_ms"`
}

// Metrics keeps in-process request and error counters. Good enough for a
// single instance; a scrape endpoint exposes the snapshot.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]*RouteStat
	errors   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]*RouteStat),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request and its latency.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := fmt.Sprintf("%s %s %d", method, path, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stat, ok := m.requests[key]
	if !ok {
		stat = &RouteStat{}
		m.requests[key] = stat
	}
	stat.Count++
	stat.TotalDuration += duration.Milliseconds()
}

// RecordError counts a request that ended in a domain error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[fmt.Sprintf("%s %s %s", method, path, code)]++
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() (map[string]RouteStat, map[string]int64) {
	requests := map[string]RouteStat{}
	errors := map[string]int64{}
	if m == nil {
		return requests, errors
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, stat := range m.requests {
		requests[key] = *stat
	}
	for key, count := range m.errors {
		errors[key] = count
	}
	return requests, errors
}
