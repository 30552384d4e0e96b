package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionTier is the shared short-lived tier backed by Redis. Entries are
// stored as JSON envelopes under a key prefix; Redis expiry mirrors the
// entry TTL as a second line of defense, the envelope's ExpiresAt stays
// authoritative.
type SessionTier struct {
	client *redis.Client
	prefix string
	cfg    TierConfig
	now    func() time.Time
}

// NewSessionTier wraps a Redis client. A nil clock means time.Now.
func NewSessionTier(client *redis.Client, prefix string, cfg TierConfig, now func() time.Time) *SessionTier {
	if now == nil {
		now = time.Now
	}
	if prefix == "" {
		prefix = "cvexport:cache:"
	}
	return &SessionTier{client: client, prefix: prefix, cfg: cfg, now: now}
}

// Name implements Tier.
func (s *SessionTier) Name() TierName { return TierSession }

// Config implements Tier.
func (s *SessionTier) Config() TierConfig { return s.cfg }

// Get implements Tier. Entries that fail to decode are treated as absent and
// removed proactively.
func (s *SessionTier) Get(ctx context.Context, key string) (*Entry, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session tier get %s: %w", key, err)
	}

	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		_ = s.client.Del(ctx, s.prefix+key).Err()
		return nil, nil
	}
	now := s.now()
	if e.Expired(now) {
		_ = s.client.Del(ctx, s.prefix+key).Err()
		return nil, nil
	}

	e.AccessCount++
	e.LastAccessed = now
	if updated, err := json.Marshal(&e); err == nil {
		// KeepTTL preserves the remaining Redis expiry.
		_ = s.client.Set(ctx, s.prefix+key, updated, redis.KeepTTL).Err()
	}
	return &e, nil
}

// Set implements Tier, evicting least-recently accessed entries when the
// tier is over its entry or byte budget.
func (s *SessionTier) Set(ctx context.Context, e *Entry) (int, error) {
	if int64(e.Size) > s.cfg.MaxBytes {
		logOversized(TierSession, e.Key, int64(e.Size), s.cfg.MaxBytes)
		return 0, nil
	}

	evicted, err := s.evictForSpace(ctx, int64(e.Size), e.Key)
	if err != nil {
		return evicted, err
	}

	data, err := json.Marshal(e)
	if err != nil {
		return evicted, fmt.Errorf("session tier encode %s: %w", e.Key, err)
	}
	ttl := e.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		ttl = time.Second
	}
	if err := s.client.Set(ctx, s.prefix+e.Key, data, ttl).Err(); err != nil {
		return evicted, fmt.Errorf("session tier set %s: %w", e.Key, err)
	}
	return evicted, nil
}

// Remove implements Tier.
func (s *SessionTier) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("session tier remove %s: %w", key, err)
	}
	return nil
}

// Clear implements Tier.
func (s *SessionTier) Clear(ctx context.Context, f Filter) (int, error) {
	entries, err := s.scanAll(ctx)
	if err != nil {
		return 0, err
	}
	now := s.now()
	removed := 0
	for _, e := range entries {
		if f.matches(e, now) {
			if err := s.client.Del(ctx, s.prefix+e.Key).Err(); err != nil {
				return removed, fmt.Errorf("session tier clear %s: %w", e.Key, err)
			}
			removed++
		}
	}
	return removed, nil
}

// Sweep implements Tier. Redis drops expired keys on its own; the sweep
// covers envelopes whose authoritative expiry ran ahead of the Redis TTL.
func (s *SessionTier) Sweep(ctx context.Context) (int, error) {
	entries, err := s.scanAll(ctx)
	if err != nil {
		return 0, err
	}
	now := s.now()
	removed := 0
	for _, e := range entries {
		if e.Expired(now) {
			if err := s.client.Del(ctx, s.prefix+e.Key).Err(); err != nil {
				return removed, err
			}
			removed++
		}
	}
	return removed, nil
}

// evictForSpace removes oldest-accessed entries until the new entry fits
// both budgets. replaceKey is excluded from the accounting since Set fully
// replaces it.
func (s *SessionTier) evictForSpace(ctx context.Context, size int64, replaceKey string) (int, error) {
	entries, err := s.scanAll(ctx)
	if err != nil {
		return 0, err
	}

	var totalBytes int64
	var candidates []*Entry
	count := 0
	for _, e := range entries {
		if e.Key == replaceKey {
			continue
		}
		totalBytes += int64(e.Size)
		count++
		candidates = append(candidates, e)
	}
	if totalBytes+size <= s.cfg.MaxBytes && count+1 <= s.cfg.MaxEntries {
		return 0, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		if !candidates[i].LastAccessed.Equal(candidates[j].LastAccessed) {
			return candidates[i].LastAccessed.Before(candidates[j].LastAccessed)
		}
		return candidates[i].CreatedAt.Before(candidates[j].CreatedAt)
	})

	evicted := 0
	for _, e := range candidates {
		if totalBytes+size <= s.cfg.MaxBytes && count+1 <= s.cfg.MaxEntries {
			break
		}
		if err := s.client.Del(ctx, s.prefix+e.Key).Err(); err != nil {
			return evicted, fmt.Errorf("session tier evict %s: %w", e.Key, err)
		}
		totalBytes -= int64(e.Size)
		count--
		evicted++
	}
	return evicted, nil
}

// scanAll decodes every envelope under the prefix. Corrupt envelopes are
// deleted as they are found.
func (s *SessionTier) scanAll(ctx context.Context) ([]*Entry, error) {
	var out []*Entry
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		fullKey := iter.Val()
		data, err := s.client.Get(ctx, fullKey).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("session tier scan: %w", err)
		}
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			_ = s.client.Del(ctx, fullKey).Err()
			continue
		}
		out = append(out, &e)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("session tier scan: %w", err)
	}
	return out, nil
}
