package story

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbutler/war-machine-log/internal/consequence"
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

func newTestThread(w *worldmodel.World, storyType worldmodel.StoryType) *worldmodel.StoryThread {
	t := &worldmodel.StoryThread{
		ID:                "thread-1",
		Title:             "The Test Affair",
		Type:              storyType,
		Phase:             worldmodel.PhaseInciting,
		Tension:           0,
		ActorIDs:          []string{"npc-1"},
		LocationIDs:       []string{"settlement-1"},
		PotentialOutcomes: []string{"decisive victory"},
		Context:           &worldmodel.ThreadContext{},
	}
	w.StoryThreads[t.ID] = t
	return t
}

func TestTickThreadsAdvancesTensionAndPhase(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	q := consequence.New(w)
	r := rng.New("engine-advance")

	thread := newTestThread(w, worldmodel.TypeWar)
	thread.Tension = 4

	for i := 0; i < 200 && thread.Tension == 4; i++ {
		TickThreads(w, r, sink, q)
	}

	assert.GreaterOrEqual(t, thread.Tension, 4.0)
	assert.Equal(t, 5.0, thread.Tension)
	assert.Equal(t, worldmodel.PhaseRising, thread.Phase)
}

func TestTickThreadsResolvesAtMaxTensionAndSchedulesConsequence(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	q := consequence.New(w)
	r := rng.New("engine-resolve")

	thread := newTestThread(w, worldmodel.TypeWar)
	thread.Phase = worldmodel.PhaseClimax
	thread.Tension = 10

	resolve(w, r, thread, sink, q)

	assert.True(t, thread.Resolved)
	assert.Equal(t, worldmodel.PhaseResolution, thread.Phase)
	assert.NotEmpty(t, thread.Resolution)
	require.Equal(t, 1, q.Len())
	assert.Equal(t, worldmodel.ConsequenceSettlementShift, w.ConsequenceQueue[0].Kind)
	assert.Equal(t, "settlement-1", w.ConsequenceQueue[0].TargetID)
}

func TestTickThreadsSkipsResolvedThreadsExceptAftermathTransition(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	q := consequence.New(w)
	r := rng.New("engine-skip")

	thread := newTestThread(w, worldmodel.TypeWar)
	thread.Resolved = true
	thread.Phase = worldmodel.PhaseResolution

	TickThreads(w, r, sink, q)
	assert.Equal(t, worldmodel.PhaseAftermath, thread.Phase)

	TickThreads(w, r, sink, q)
	assert.Equal(t, worldmodel.PhaseAftermath, thread.Phase, "aftermath is terminal, no further transition")
}

func TestPruneThreadsDropsOldResolvedThreads(t *testing.T) {
	w := worldmodel.NewEmpty()
	thread := newTestThread(w, worldmodel.TypeWar)
	thread.Resolved = true
	thread.UpdatedAt = "0001-01-01T00:00:00"

	ageDays := func(stamp string) float64 {
		if stamp == thread.UpdatedAt {
			return 45
		}
		return 0
	}

	PruneThreads(w, ageDays, 30)
	assert.Empty(t, w.StoryThreads)
}

func TestPruneThreadsKeepsUnresolvedRegardlessOfAge(t *testing.T) {
	w := worldmodel.NewEmpty()
	thread := newTestThread(w, worldmodel.TypeWar)
	thread.UpdatedAt = "0001-01-01T00:00:00"

	ageDays := func(string) float64 { return 9999 }

	PruneThreads(w, ageDays, 30)
	assert.Len(t, w.StoryThreads, 1)
}
