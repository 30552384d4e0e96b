package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSnapshot_RatesComputedOnDemand(t *testing.T) {
	tr := NewTracker()
	tr.RecordHit("a", time.Millisecond)
	tr.RecordHit("b", time.Millisecond)
	tr.RecordMiss(2 * time.Millisecond)

	s := tr.Snapshot()

	assert.Equal(t, int64(2), s.Hits)
	assert.Equal(t, int64(1), s.Misses)
	assert.Equal(t, int64(3), s.TotalRequests)
	assert.InDelta(t, 66.67, s.HitRate, 0.01)
	assert.InDelta(t, 33.33, s.MissRate, 0.01)
}

func TestSnapshot_EmptyTrackerHasZeroRates(t *testing.T) {
	s := NewTracker().Snapshot()

	assert.Zero(t, s.HitRate)
	assert.Zero(t, s.MissRate)
	assert.Zero(t, s.TotalRequests)
}

func TestPopularKeys_MoveToFrontAndBounded(t *testing.T) {
	tr := NewTracker()
	for i := 0; i < 25; i++ {
		tr.RecordHit(string(rune('a'+i)), time.Microsecond)
	}

	s := tr.Snapshot()
	assert.Len(t, s.PopularKeys, 20)

	// Re-accessing an older key moves it to the front
	tr.RecordHit("x", time.Microsecond)
	s = tr.Snapshot()
	assert.Equal(t, "x", s.PopularKeys[0])
	assert.Len(t, s.PopularKeys, 20)
}

func TestAvgAccessTime_MovingAverage(t *testing.T) {
	tr := NewTracker()
	tr.RecordHit("a", 100*time.Millisecond)
	tr.RecordMiss(200 * time.Millisecond)

	s := tr.Snapshot()

	// 100ms seeded, then 0.8*100 + 0.2*200 = 120ms
	assert.Equal(t, 120*time.Millisecond, s.AvgAccessTime)
}

func TestEvictionsAccumulate(t *testing.T) {
	tr := NewTracker()
	tr.RecordEviction(2)
	tr.RecordEviction(3)

	assert.Equal(t, int64(5), tr.Snapshot().Evictions)
}

func TestOnChange_CallbackObservesUpdates(t *testing.T) {
	tr := NewTracker()
	var seen []Snapshot
	tr.OnChange(func(s Snapshot) { seen = append(seen, s) })

	tr.RecordHit("a", time.Microsecond)
	tr.RecordMiss(time.Microsecond)

	assert.Len(t, seen, 2)
	assert.Equal(t, int64(1), seen[1].Misses)
}

func TestOnChange_AllRegisteredCallbacksFire(t *testing.T) {
	tr := NewTracker()
	var first, second int
	tr.OnChange(func(Snapshot) { first++ })
	tr.OnChange(func(Snapshot) { second++ })

	tr.RecordHit("a", time.Microsecond)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
