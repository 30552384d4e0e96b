// Package analytics tracks cache access statistics: hit/miss/eviction
// counters, a moving average of access latency and a bounded popular-key
// list. Counters live in memory only and reset with the process.
package analytics

import (
	"sync"
	"time"
)

// popularKeyCap bounds the tracked popular-key list.
const popularKeyCap = 20

// emaAlpha weights new samples in the access-time moving average.
const emaAlpha = 0.2

// Snapshot is a point-in-time copy of the tracker state. Hit and miss rates
// are computed on demand, not stored.
type Snapshot struct {
	Hits          int64         `json:"hits"`
	Misses        int64         `json:"misses"`
	Evictions     int64         `json:"evictions"`
	TotalRequests int64         `json:"total_requests"`
	HitRate       float64       `json:"hit_rate"`  // percent
	MissRate      float64       `json:"miss_rate"` // percent
	AvgAccessTime time.Duration `json:"avg_access_time_ns"`
	PopularKeys   []string      `json:"popular_keys"`
}

// Tracker accumulates cache analytics. Safe for concurrent use. Construct
// one per cache store and pass it explicitly; there is no package-level
// singleton.
type Tracker struct {
	mu          sync.Mutex
	hits        int64
	misses      int64
	evictions   int64
	avgAccess   time.Duration
	popularKeys []string
	onChange    []func(Snapshot)
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// RecordHit notes a cache hit for key with its access latency.
func (t *Tracker) RecordHit(key string, elapsed time.Duration) {
	t.mu.Lock()
	t.hits++
	t.observeAccess(elapsed)
	t.touchKey(key)
	t.mu.Unlock()
	t.notify()
}

// RecordMiss notes a cache miss with its access latency.
func (t *Tracker) RecordMiss(elapsed time.Duration) {
	t.mu.Lock()
	t.misses++
	t.observeAccess(elapsed)
	t.mu.Unlock()
	t.notify()
}

// RecordEviction notes n evicted entries.
func (t *Tracker) RecordEviction(n int) {
	t.mu.Lock()
	t.evictions += int64(n)
	t.mu.Unlock()
	t.notify()
}

// OnChange registers a callback invoked with a snapshot after every update.
func (t *Tracker) OnChange(fn func(Snapshot)) {
	t.mu.Lock()
	t.onChange = append(t.onChange, fn)
	t.mu.Unlock()
}

// Snapshot returns the current analytics, computing rates on demand.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Tracker) snapshotLocked() Snapshot {
	total := t.hits + t.misses
	s := Snapshot{
		Hits:          t.hits,
		Misses:        t.misses,
		Evictions:     t.evictions,
		TotalRequests: total,
		AvgAccessTime: t.avgAccess,
		PopularKeys:   append([]string(nil), t.popularKeys...),
	}
	if total > 0 {
		s.HitRate = float64(t.hits) / float64(total) * 100
		s.MissRate = float64(t.misses) / float64(total) * 100
	}
	return s
}

// observeAccess folds a latency sample into the moving average.
func (t *Tracker) observeAccess(elapsed time.Duration) {
	if t.avgAccess == 0 {
		t.avgAccess = elapsed
		return
	}
	t.avgAccess = time.Duration(float64(t.avgAccess)*(1-emaAlpha) + float64(elapsed)*emaAlpha)
}

// touchKey moves key to the front of the popular-key list, trimming to cap.
func (t *Tracker) touchKey(key string) {
	for i, k := range t.popularKeys {
		if k == key {
			copy(t.popularKeys[1:i+1], t.popularKeys[:i])
			t.popularKeys[0] = key
			return
		}
	}
	t.popularKeys = append([]string{key}, t.popularKeys...)
	if len(t.popularKeys) > popularKeyCap {
		t.popularKeys = t.popularKeys[:popularKeyCap]
	}
}

func (t *Tracker) notify() {
	t.mu.Lock()
	callbacks := make([]func(Snapshot), 0, len(t.onChange))
	callbacks = append(callbacks, t.onChange...)
	snap := t.snapshotLocked()
	t.mu.Unlock()
	for _, fn := range callbacks {
		fn(snap)
	}
}
