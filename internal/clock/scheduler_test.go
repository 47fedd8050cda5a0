package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

func newTestWorld() *worldmodel.World {
	w := worldmodel.NewEmpty()
	w.WorldTime = "0001-01-01T00:00:00"
	return w
}

func TestAdvanceFiresCallbacksAtCorrectCadence(t *testing.T) {
	w := newTestWorld()
	var turns, hours, days, completes int
	s := New(w, 10, 6, 24, Callbacks{
		OnTurn:         func(*worldmodel.World) { turns++ },
		OnHour:         func(*worldmodel.World) { hours++ },
		OnDay:          func(*worldmodel.World) { days++ },
		OnTickComplete: func(*worldmodel.World) { completes++ },
	})

	turnsPerDay := uint64(6 * 24)
	s.Advance(turnsPerDay)

	assert.EqualValues(t, turnsPerDay, turns)
	assert.EqualValues(t, 24, hours)
	assert.EqualValues(t, 1, days)
	assert.EqualValues(t, turnsPerDay, completes)
	assert.EqualValues(t, turnsPerDay, w.Turn)
}

func TestAdvanceProgressesWorldTime(t *testing.T) {
	w := newTestWorld()
	s := New(w, 10, 6, 24, Callbacks{})
	s.Advance(6) // 1 hour at 10 minutes/turn
	assert.Equal(t, "0001-01-01T01:00:00", w.WorldTime)
}

func TestCatchUpToReachesTarget(t *testing.T) {
	w := newTestWorld()
	s := New(w, 10, 6, 24, Callbacks{})
	var progressCalls int
	err := s.CatchUpTo("0001-01-02T00:00:00", 0, func(turn uint64) { progressCalls++ })
	require.NoError(t, err)
	assert.Equal(t, "0001-01-02T00:00:00", w.WorldTime)
	assert.Equal(t, uint64(6*24), w.Turn)
	assert.Equal(t, 6*24, progressCalls)
}

func TestCatchUpToHonorsSpeedCap(t *testing.T) {
	w := newTestWorld()
	s := New(w, 10, 6, 24, Callbacks{})
	start := time.Now()
	// 12 turns capped at 100/sec must take at least ~100ms, unlike the
	// effectively-instant uncapped path the other CatchUpTo tests exercise.
	require.NoError(t, s.CatchUpTo("0001-01-01T02:00:00", 100, nil))
	assert.GreaterOrEqual(t, time.Since(start), 100*time.Millisecond)
	assert.EqualValues(t, 12, w.Turn)
}

func TestCatchUpToNoopWhenAlreadyPastTarget(t *testing.T) {
	w := newTestWorld()
	w.WorldTime = "0002-01-01T00:00:00"
	s := New(w, 10, 6, 24, Callbacks{})
	err := s.CatchUpTo("0001-01-01T00:00:00", 0, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, w.Turn)
}

func TestRunRealTimeStopsOnContextCancel(t *testing.T) {
	w := newTestWorld()
	s := New(w, 10, 6, 24, Callbacks{})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	s.RunRealTime(ctx, time.Millisecond, 1.0)
	assert.Greater(t, w.Turn, uint64(0))
}

func TestCatchUpToAndRunRealTimeAgreeOnLogStream(t *testing.T) {
	wA := newTestWorld()
	var logA []uint64
	sA := New(wA, 10, 6, 24, Callbacks{OnTurn: func(w *worldmodel.World) { logA = append(logA, w.Turn) }})
	sA.Advance(12)

	wB := newTestWorld()
	var logB []uint64
	sB := New(wB, 10, 6, 24, Callbacks{OnTurn: func(w *worldmodel.World) { logB = append(logB, w.Turn) }})
	require.NoError(t, sB.CatchUpTo(wA.WorldTime, 0, nil))

	assert.Equal(t, logA, logB)
	assert.Equal(t, wA.WorldTime, wB.WorldTime)
}
