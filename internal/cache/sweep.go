package cache

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"
)

// Sweeper runs each tier's expiry sweep on that tier's configured interval.
// Stop it by cancelling the context passed to Run.
type Sweeper struct {
	store *Store
}

// NewSweeper builds a sweeper over a store's tiers.
func NewSweeper(store *Store) *Sweeper {
	return &Sweeper{store: store}
}

// Run blocks until ctx is cancelled, sweeping every tier on its own
// interval. Sweep failures are logged and do not stop the loop.
func (s *Sweeper) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, name := range []TierName{TierMemory, TierSession, TierDurable} {
		tier := s.store.Tier(name)
		if tier == nil {
			continue
		}
		g.Go(func() error {
			s.sweepLoop(ctx, tier)
			return nil
		})
	}
	return g.Wait()
}

func (s *Sweeper) sweepLoop(ctx context.Context, tier Tier) {
	interval := tier.Config().SweepInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := tier.Sweep(ctx)
			if err != nil {
				log.Printf("warning: cache tier %s sweep failed: %v", tier.Name(), err)
				continue
			}
			if removed > 0 {
				log.Printf("cache tier %s sweep removed %d expired entries", tier.Name(), removed)
			}
		}
	}
}
