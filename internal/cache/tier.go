package cache

import (
	"context"
	"log"
)

// Tier is a single cache backend. Implementations: in-process memory map,
// Redis session store, PostgreSQL durable store. A tier owns its own
// capacity policy; the Store owns ordering, promotion and analytics.
//
// Get returns (nil, nil) on a miss; expired entries count as misses and the
// tier removes them in place. Get bumps AccessCount and LastAccessed.
//
// Set fully replaces any prior entry for the key, evicting least-recently
// accessed entries first (ties broken by insertion order) until the new
// entry fits the tier's byte and entry budgets. It returns how many entries
// were evicted.
// logOversized records a dropped value that exceeds a tier's byte budget.
// The drop is not an error; evicting the whole tier for an unstorable value
// would be worse than skipping it.
func logOversized(name TierName, key string, size, maxBytes int64) {
	log.Printf("warning: cache tier %s dropped oversized entry %s (%d bytes > %d max)", name, key, size, maxBytes)
}

type Tier interface {
	Name() TierName
	Get(ctx context.Context, key string) (*Entry, error)
	Set(ctx context.Context, e *Entry) (evicted int, err error)
	Remove(ctx context.Context, key string) error
	Clear(ctx context.Context, f Filter) (removed int, err error)
	Sweep(ctx context.Context) (removed int, err error)
	Config() TierConfig
}
