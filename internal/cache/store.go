package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/Slavigrad/cv-export/internal/analytics"
)

// Store fronts the configured tiers: it owns search order, promotion on
// read, default TTLs and analytics. Construct one Store and pass it to
// whatever needs it; there is no package-level instance.
type Store struct {
	tiers   map[TierName]Tier
	order   []TierName
	tracker *analytics.Tracker
	now     func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) { s.now = now }
}

// WithOrder overrides the default tier search order.
func WithOrder(order ...TierName) StoreOption {
	return func(s *Store) { s.order = order }
}

// NewStore builds a store over the given tiers. Tiers may be a subset of
// the known three; the search order skips missing tiers.
func NewStore(tracker *analytics.Tracker, tiers []Tier, opts ...StoreOption) *Store {
	s := &Store{
		tiers:   make(map[TierName]Tier, len(tiers)),
		order:   DefaultOrder,
		tracker: tracker,
		now:     time.Now,
	}
	for _, t := range tiers {
		s.tiers[t.Name()] = t
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Analytics returns the store's tracker.
func (s *Store) Analytics() *analytics.Tracker { return s.tracker }

// Tier returns a configured tier by name, or nil.
func (s *Store) Tier(name TierName) Tier { return s.tiers[name] }

// Get searches tiers in the given order (the store default when empty) and
// returns the first non-expired value. The hit is promoted into every faster
// tier it was missing from. A failing tier logs a warning and counts as a
// miss for that tier; it never fails the whole read.
func (s *Store) Get(ctx context.Context, key string, order ...TierName) (json.RawMessage, bool) {
	if len(order) == 0 {
		order = s.order
	}
	started := s.now()

	for i, name := range order {
		tier, ok := s.tiers[name]
		if !ok {
			continue
		}
		entry, err := tier.Get(ctx, key)
		if err != nil {
			log.Printf("warning: cache tier %s read failed for %s: %v", name, key, err)
			continue
		}
		if entry == nil {
			continue
		}
		s.promote(ctx, entry, order[:i])
		s.tracker.RecordHit(key, s.now().Sub(started))
		return entry.Value, true
	}

	s.tracker.RecordMiss(s.now().Sub(started))
	return nil, false
}

// GetInto reads a cached value and unmarshals it into dest. The boolean
// reports whether a value was found and decoded.
func (s *Store) GetInto(ctx context.Context, key string, dest any, order ...TierName) bool {
	raw, ok := s.Get(ctx, key, order...)
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Undecodable for the caller's shape: treat as absent and drop it.
		log.Printf("warning: cache entry %s failed to decode, removing: %v", key, err)
		_ = s.Remove(ctx, key)
		return false
	}
	return true
}

// Set serializes value and writes it to the named tier, applying the tier
// default TTL when opts.TTL is zero. Eviction counts feed analytics.
func (s *Store) Set(ctx context.Context, key string, value any, tierName TierName, opts SetOptions) error {
	tier, ok := s.tiers[tierName]
	if !ok {
		return fmt.Errorf("unknown cache tier %q", tierName)
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = tier.Config().DefaultTTL
	}
	now := s.now()
	entry := &Entry{
		Key:          key,
		Value:        data,
		CreatedAt:    now,
		ExpiresAt:    now.Add(ttl),
		Size:         len(data),
		LastAccessed: now,
		Tags:         opts.Tags,
	}

	evicted, err := tier.Set(ctx, entry)
	if evicted > 0 {
		s.tracker.RecordEviction(evicted)
	}
	if err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key from every tier. Idempotent; tier failures are
// logged and do not stop the remaining tiers.
func (s *Store) Remove(ctx context.Context, key string) error {
	var firstErr error
	for _, tier := range s.tiers {
		if err := tier.Remove(ctx, key); err != nil {
			log.Printf("warning: cache tier %s remove failed for %s: %v", tier.Name(), key, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// Clear bulk-removes entries from one tier by filter; the zero filter
// clears the whole tier.
func (s *Store) Clear(ctx context.Context, tierName TierName, f Filter) (int, error) {
	tier, ok := s.tiers[tierName]
	if !ok {
		return 0, fmt.Errorf("unknown cache tier %q", tierName)
	}
	removed, err := tier.Clear(ctx, f)
	if err != nil {
		return removed, fmt.Errorf("cache clear %s: %w", tierName, err)
	}
	return removed, nil
}

// promote copies a hit into the faster tiers it was missed in, preserving
// the entry's remaining lifetime.
func (s *Store) promote(ctx context.Context, entry *Entry, fasterTiers []TierName) {
	for _, name := range fasterTiers {
		tier, ok := s.tiers[name]
		if !ok {
			continue
		}
		evicted, err := tier.Set(ctx, entry.clone())
		if evicted > 0 {
			s.tracker.RecordEviction(evicted)
		}
		if err != nil {
			log.Printf("warning: cache promote to %s failed for %s: %v", name, entry.Key, err)
		}
	}
}
