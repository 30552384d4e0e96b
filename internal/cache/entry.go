// Package cache provides a tiered key-value cache: a fast in-process memory
// tier, a shared short-lived session tier backed by Redis and a durable tier
// backed by PostgreSQL. Reads search tiers fastest-first, promote hits into
// faster tiers and feed an analytics tracker.
package cache

import (
	"encoding/json"
	"time"
)

// TierName identifies a cache tier.
type TierName string

// Known tiers, fastest first.
const (
	TierMemory  TierName = "memory"
	TierSession TierName = "session"
	TierDurable TierName = "durable"
)

// DefaultOrder is the tier search order used when the caller does not
// specify one.
var DefaultOrder = []TierName{TierMemory, TierSession, TierDurable}

// Entry is a single cached value with its bookkeeping. Values are stored
// serialized so every tier shares one representation.
type Entry struct {
	Key          string          `json:"key"`
	Value        json.RawMessage `json:"value"`
	CreatedAt    time.Time       `json:"created_at"`
	ExpiresAt    time.Time       `json:"expires_at"`
	Size         int             `json:"size"`
	AccessCount  int64           `json:"access_count"`
	LastAccessed time.Time       `json:"last_accessed"`
	Tags         []string        `json:"tags,omitempty"`
}

// Expired reports whether the entry is past its expiry at the given time.
func (e *Entry) Expired(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// HasTag reports whether the entry carries the tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (e *Entry) clone() *Entry {
	out := *e
	out.Value = append(json.RawMessage(nil), e.Value...)
	out.Tags = append([]string(nil), e.Tags...)
	return &out
}

// SetOptions customize a Set call. Zero TTL means the tier default.
type SetOptions struct {
	TTL  time.Duration
	Tags []string
}

// Filter selects entries for bulk clearing. Conditions compose with AND;
// the zero Filter matches everything.
type Filter struct {
	Tags      []string
	OlderThan time.Duration
}

// matches reports whether an entry satisfies the filter at the given time.
func (f Filter) matches(e *Entry, now time.Time) bool {
	if f.OlderThan > 0 && now.Sub(e.CreatedAt) <= f.OlderThan {
		return false
	}
	if len(f.Tags) == 0 {
		return true
	}
	for _, tag := range f.Tags {
		if e.HasTag(tag) {
			return true
		}
	}
	return false
}

// TierConfig sets the capacity, TTL and sweep policy of one tier.
// Capacities are independent per tier, never shared.
type TierConfig struct {
	MaxBytes      int64
	MaxEntries    int
	DefaultTTL    time.Duration
	SweepInterval time.Duration
}

// Reference configurations per tier. These are tunable parameters.
var defaultConfigs = map[TierName]TierConfig{
	TierMemory: {
		MaxBytes:      50 << 20,
		MaxEntries:    1000,
		DefaultTTL:    30 * time.Minute,
		SweepInterval: 5 * time.Minute,
	},
	TierSession: {
		MaxBytes:      10 << 20,
		MaxEntries:    200,
		DefaultTTL:    time.Hour,
		SweepInterval: 10 * time.Minute,
	},
	TierDurable: {
		MaxBytes:      100 << 20,
		MaxEntries:    5000,
		DefaultTTL:    24 * time.Hour,
		SweepInterval: 30 * time.Minute,
	},
}

// DefaultConfig returns the reference configuration for a tier.
func DefaultConfig(name TierName) TierConfig {
	return defaultConfigs[name]
}
