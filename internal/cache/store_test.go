package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Slavigrad/cv-export/internal/analytics"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeForTest(t *testing.T, clock *testClock) (*Store, *MemoryTier, *SessionTier) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	memory := NewMemoryTier(TierConfig{MaxBytes: 1 << 20, MaxEntries: 100, DefaultTTL: 30 * time.Minute}, clock.Now)
	session := NewSessionTier(client, "test:", TierConfig{MaxBytes: 1 << 20, MaxEntries: 100, DefaultTTL: time.Hour}, clock.Now)
	store := NewStore(analytics.NewTracker(), []Tier{memory, session}, WithClock(clock.Now), WithOrder(TierMemory, TierSession))
	return store, memory, session
}

type payload struct {
	A int `json:"a"`
}

func TestStore_SetGetRoundTrip(t *testing.T) {
	clock := newTestClock()
	store, _, _ := storeForTest(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", payload{A: 1}, TierMemory, SetOptions{}))

	var got payload
	require.True(t, store.GetInto(ctx, "k", &got))
	assert.Equal(t, 1, got.A)
}

func TestStore_TTLContract(t *testing.T) {
	// set('k', {a:1}, memory, ttl 1s); an immediate get hits; a get after
	// the TTL misses and bumps the miss counter.
	clock := newTestClock()
	store, _, _ := storeForTest(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", payload{A: 1}, TierMemory, SetOptions{TTL: time.Second}))

	var got payload
	require.True(t, store.GetInto(ctx, "k", &got))
	assert.Equal(t, 1, got.A)
	missesBefore := store.Analytics().Snapshot().Misses

	clock.Advance(1001 * time.Millisecond)
	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, missesBefore+1, store.Analytics().Snapshot().Misses)
}

func TestStore_PromotionOnRead(t *testing.T) {
	clock := newTestClock()
	store, memory, _ := storeForTest(t, clock)
	ctx := context.Background()

	// Present only in the slower session tier
	require.NoError(t, store.Set(ctx, "k", payload{A: 7}, TierSession, SetOptions{}))
	assert.Equal(t, 0, memory.Len())

	_, ok := store.Get(ctx, "k")
	require.True(t, ok)

	// The hit was copied up into the memory tier
	assert.Equal(t, 1, memory.Len())
	got, err := memory.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, `{"a":7}`, string(got.Value))
}

func TestStore_AnalyticsObserveHitsAndMisses(t *testing.T) {
	clock := newTestClock()
	store, _, _ := storeForTest(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", payload{A: 1}, TierMemory, SetOptions{}))
	store.Get(ctx, "k")
	store.Get(ctx, "absent")

	snap := store.Analytics().Snapshot()
	assert.Equal(t, int64(1), snap.Hits)
	assert.Equal(t, int64(1), snap.Misses)
	assert.Equal(t, int64(2), snap.TotalRequests)
	assert.Contains(t, snap.PopularKeys, "k")
}

func TestStore_DefaultTTLPerTier(t *testing.T) {
	clock := newTestClock()
	store, memory, _ := storeForTest(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", payload{A: 1}, TierMemory, SetOptions{}))

	got, err := memory.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, clock.Now().Add(30*time.Minute), got.ExpiresAt)
}

func TestStore_RemoveHitsAllTiers(t *testing.T) {
	clock := newTestClock()
	store, memory, session := storeForTest(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", payload{A: 1}, TierMemory, SetOptions{}))
	require.NoError(t, store.Set(ctx, "k", payload{A: 1}, TierSession, SetOptions{}))

	require.NoError(t, store.Remove(ctx, "k"))

	assert.Equal(t, 0, memory.Len())
	got, err := session.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ClearUnknownTierFails(t *testing.T) {
	clock := newTestClock()
	store, _, _ := storeForTest(t, clock)

	_, err := store.Clear(context.Background(), TierDurable, Filter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cache tier")
}

func TestStore_GetIntoRemovesUndecodableEntry(t *testing.T) {
	clock := newTestClock()
	store, memory, _ := storeForTest(t, clock)
	ctx := context.Background()

	// A string value cannot decode into the struct shape
	require.NoError(t, store.Set(ctx, "k", "just a string", TierMemory, SetOptions{}))

	var got payload
	assert.False(t, store.GetInto(ctx, "k", &got))
	assert.Equal(t, 0, memory.Len())
}

func TestStore_LastWriteWins(t *testing.T) {
	clock := newTestClock()
	store, _, _ := storeForTest(t, clock)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", payload{A: 1}, TierMemory, SetOptions{}))
	require.NoError(t, store.Set(ctx, "k", payload{A: 2}, TierMemory, SetOptions{}))

	var got payload
	require.True(t, store.GetInto(ctx, "k", &got))
	assert.Equal(t, 2, got.A)
}
