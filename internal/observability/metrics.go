package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for page serving and the
// outgoing backend calls those pages trigger.
type Metrics struct {
	mu           sync.Mutex
	pageCount    map[string]int64
	backendCount map[string]int64
	errorCount   map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		pageCount:    make(map[string]int64),
		backendCount: make(map[string]int64),
		errorCount:   make(map[string]int64),
	}
}

// RecordPage increments counters for an inbound page request.
func (m *Metrics) RecordPage(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageCount[key]++
}

// RecordBackendCall increments counters for a remote API call.
func (m *Metrics) RecordBackendCall(op string, status int) {
	if m == nil {
		return
	}
	key := op + "|" + strconv.Itoa(status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backendCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// Snapshot copies the current counters, keyed as recorded.
func (m *Metrics) Snapshot() (pages, backend, errors map[string]int64) {
	if m == nil {
		return nil, nil, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	pages = make(map[string]int64, len(m.pageCount))
	for k, v := range m.pageCount {
		pages[k] = v
	}
	backend = make(map[string]int64, len(m.backendCount))
	for k, v := range m.backendCount {
		backend[k] = v
	}
	errors = make(map[string]int64, len(m.errorCount))
	for k, v := range m.errorCount {
		errors[k] = v
	}
	return pages, backend, errors
}
