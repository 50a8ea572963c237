package scanner

import (
	"sync"
	"time"
)

// Stats is a snapshot of scan performance counters.
type Stats struct {
	TotalScans      int
	AvgScanDuration time.Duration
	LastScanTime    time.Duration
	APICalls        int
	SignalsFound    int
	Errors          int
}

// Tracker accumulates scan performance counters. Safe for concurrent use;
// scan durations are capped at the most recent 100 entries.
type Tracker struct {
	mu        sync.Mutex
	scanTimes []time.Duration
	apiCalls  int
	signals   int
	errors    int
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) RecordScanTime(d time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scanTimes = append(t.scanTimes, d)
	if len(t.scanTimes) > 100 {
		t.scanTimes = t.scanTimes[len(t.scanTimes)-100:]
	}
}

func (t *Tracker) IncrementAPICalls() {
	t.mu.Lock()
	t.apiCalls++
	t.mu.Unlock()
}

func (t *Tracker) IncrementSignals() {
	t.mu.Lock()
	t.signals++
	t.mu.Unlock()
}

func (t *Tracker) IncrementErrors() {
	t.mu.Lock()
	t.errors++
	t.mu.Unlock()
}

func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Stats{
		TotalScans:   len(t.scanTimes),
		APICalls:     t.apiCalls,
		SignalsFound: t.signals,
		Errors:       t.errors,
	}
	if len(t.scanTimes) > 0 {
		var sum time.Duration
		for _, d := range t.scanTimes {
			sum += d
		}
		s.AvgScanDuration = sum / time.Duration(len(t.scanTimes))
		s.LastScanTime = t.scanTimes[len(t.scanTimes)-1]
	}
	return s
}
