package observability

import (
	"strconv"
	"sync"
	"time"
)

type requestStat struct {
	count int64
	total time.Duration
}

// Metrics provides basic in-memory request and error counters with latency
// totals per path/method/status.
type Metrics struct {
	mu         sync.Mutex
	requests   map[string]*requestStat
	errorCount map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests:   make(map[string]*requestStat),
		errorCount: make(map[string]int64),
	}
}

// RecordRequest counts a completed request and accumulates its duration.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stat, ok := m.requests[key]
	if !ok {
		stat = &requestStat{}
		m.requests[key] = stat
	}
	stat.count++
	stat.total += duration
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

// RequestStats returns the request count and average latency observed for a
// path/method/status combination.
func (m *Metrics) RequestStats(path, method string, status int) (count int64, avg time.Duration) {
	if m == nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stat, ok := m.requests[pathKey(path, method, status)]
	if !ok || stat.count == 0 {
		return 0, 0
	}
	return stat.count, stat.total / time.Duration(stat.count)
}

// ErrorCount returns how many errors of the given code a route produced.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorCount[path+"|"+method+"|"+code]
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
