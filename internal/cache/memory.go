package cache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// memEntry wraps an Entry with its insertion sequence, the LRU tie-breaker.
type memEntry struct {
	entry *Entry
	seq   uint64
}

// MemoryTier is the fast in-process tier: a map guarded by a mutex, with
// strict LRU eviction by LastAccessed and insertion-order tie-breaks.
type MemoryTier struct {
	mu      sync.Mutex
	entries map[string]*memEntry
	bytes   int64
	nextSeq uint64
	cfg     TierConfig
	now     func() time.Time
}

// NewMemoryTier builds a memory tier with the given config; a nil clock
// means time.Now.
func NewMemoryTier(cfg TierConfig, now func() time.Time) *MemoryTier {
	if now == nil {
		now = time.Now
	}
	return &MemoryTier{
		entries: make(map[string]*memEntry),
		cfg:     cfg,
		now:     now,
	}
}

// Name implements Tier.
func (m *MemoryTier) Name() TierName { return TierMemory }

// Config implements Tier.
func (m *MemoryTier) Config() TierConfig { return m.cfg }

// Get implements Tier. Expired entries are purged in place and reported as
// misses.
func (m *MemoryTier) Get(_ context.Context, key string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	me, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	now := m.now()
	if me.entry.Expired(now) {
		m.deleteLocked(key)
		return nil, nil
	}
	me.entry.AccessCount++
	me.entry.LastAccessed = now
	return me.entry.clone(), nil
}

// Set implements Tier. Oversized values that can never fit are rejected
// with a logged warning (the tier stays unchanged, nothing is evicted for
// them).
func (m *MemoryTier) Set(_ context.Context, e *Entry) (int, error) {
	size := int64(e.Size)
	if size > m.cfg.MaxBytes {
		logOversized(TierMemory, e.Key, size, m.cfg.MaxBytes)
		return 0, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// A replace frees the old entry's budget first.
	m.deleteLocked(e.Key)

	evicted := 0
	for (m.bytes+size > m.cfg.MaxBytes || len(m.entries)+1 > m.cfg.MaxEntries) && len(m.entries) > 0 {
		m.evictOldestLocked()
		evicted++
	}

	m.entries[e.Key] = &memEntry{entry: e.clone(), seq: m.nextSeq}
	m.nextSeq++
	m.bytes += size
	return evicted, nil
}

// Remove implements Tier; removing an absent key is a no-op.
func (m *MemoryTier) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteLocked(key)
	return nil
}

// Clear implements Tier.
func (m *MemoryTier) Clear(_ context.Context, f Filter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, me := range m.entries {
		if f.matches(me.entry, now) {
			m.deleteLocked(key)
			removed++
		}
	}
	return removed, nil
}

// Sweep implements Tier, removing every expired entry.
func (m *MemoryTier) Sweep(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for key, me := range m.entries {
		if me.entry.Expired(now) {
			m.deleteLocked(key)
			removed++
		}
	}
	return removed, nil
}

// Len returns the current entry count.
func (m *MemoryTier) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryTier) deleteLocked(key string) {
	if me, ok := m.entries[key]; ok {
		m.bytes -= int64(me.entry.Size)
		delete(m.entries, key)
	}
}

// evictOldestLocked removes the entry with the earliest LastAccessed,
// breaking ties by insertion order.
func (m *MemoryTier) evictOldestLocked() {
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := m.entries[keys[i]], m.entries[keys[j]]
		if !a.entry.LastAccessed.Equal(b.entry.LastAccessed) {
			return a.entry.LastAccessed.Before(b.entry.LastAccessed)
		}
		return a.seq < b.seq
	})
	m.deleteLocked(keys[0])
}
