package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionTierForTest(t *testing.T, cfg TierConfig, clock *testClock) (*SessionTier, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionTier(client, "test:", cfg, clock.Now), mr
}

func TestSessionTier_SetGetRoundTrip(t *testing.T) {
	clock := newTestClock()
	tier, _ := sessionTierForTest(t, TierConfig{MaxBytes: 1 << 20, MaxEntries: 10}, clock)
	ctx := context.Background()

	_, err := tier.Set(ctx, memEntryAt("k", 3, clock, time.Minute))
	require.NoError(t, err)

	got, err := tier.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, `"v"`, string(got.Value))
	assert.Equal(t, int64(1), got.AccessCount)
}

func TestSessionTier_ExpiredEnvelopeIsMissAndPurged(t *testing.T) {
	clock := newTestClock()
	tier, mr := sessionTierForTest(t, TierConfig{MaxBytes: 1 << 20, MaxEntries: 10}, clock)
	ctx := context.Background()

	_, err := tier.Set(ctx, memEntryAt("k", 3, clock, time.Second))
	require.NoError(t, err)

	// The envelope expiry is authoritative even before Redis drops the key
	clock.Advance(2 * time.Second)
	got, err := tier.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("test:k"))
}

func TestSessionTier_CorruptEntryTreatedAsAbsent(t *testing.T) {
	clock := newTestClock()
	tier, mr := sessionTierForTest(t, TierConfig{MaxBytes: 1 << 20, MaxEntries: 10}, clock)
	ctx := context.Background()

	require.NoError(t, mr.Set("test:bad", "{not json"))

	got, err := tier.Get(ctx, "bad")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("test:bad"), "corrupt entry should be removed proactively")
}

func TestSessionTier_EntryBudgetEvictsOldestAccessed(t *testing.T) {
	clock := newTestClock()
	tier, _ := sessionTierForTest(t, TierConfig{MaxBytes: 1 << 20, MaxEntries: 2}, clock)
	ctx := context.Background()

	_, err := tier.Set(ctx, memEntryAt("a", 5, clock, time.Hour))
	require.NoError(t, err)
	clock.Advance(time.Second)
	_, err = tier.Set(ctx, memEntryAt("b", 5, clock, time.Hour))
	require.NoError(t, err)
	clock.Advance(time.Second)

	evicted, err := tier.Set(ctx, memEntryAt("c", 5, clock, time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, evicted)

	got, err := tier.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got, "oldest accessed entry should be evicted")
	got, err = tier.Get(ctx, "b")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSessionTier_ClearByTag(t *testing.T) {
	clock := newTestClock()
	tier, _ := sessionTierForTest(t, TierConfig{MaxBytes: 1 << 20, MaxEntries: 10}, clock)
	ctx := context.Background()

	tagged := memEntryAt("tagged", 5, clock, time.Hour)
	tagged.Tags = []string{"preview"}
	_, err := tier.Set(ctx, tagged)
	require.NoError(t, err)
	_, err = tier.Set(ctx, memEntryAt("plain", 5, clock, time.Hour))
	require.NoError(t, err)

	removed, err := tier.Clear(ctx, Filter{Tags: []string{"preview"}})
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	got, err := tier.Get(ctx, "plain")
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSessionTier_SweepRemovesExpired(t *testing.T) {
	clock := newTestClock()
	tier, _ := sessionTierForTest(t, TierConfig{MaxBytes: 1 << 20, MaxEntries: 10}, clock)
	ctx := context.Background()

	_, err := tier.Set(ctx, memEntryAt("short", 5, clock, time.Second))
	require.NoError(t, err)
	_, err = tier.Set(ctx, memEntryAt("long", 5, clock, time.Hour))
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	removed, err := tier.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
}
