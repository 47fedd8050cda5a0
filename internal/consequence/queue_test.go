package consequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

func TestScheduleAndResolveInPriorityOrder(t *testing.T) {
	w := worldmodel.NewEmpty()
	q := New(w)

	var resolved []string
	q.RegisterHandler(worldmodel.ConsequenceFamine, func(w *worldmodel.World, c *worldmodel.Consequence) {
		resolved = append(resolved, "famine:"+c.ID)
	})
	q.RegisterHandler(worldmodel.ConsequencePlague, func(w *worldmodel.World, c *worldmodel.Consequence) {
		resolved = append(resolved, "plague:"+c.ID)
	})

	q.Schedule(&worldmodel.Consequence{ID: "a", Kind: worldmodel.ConsequenceFamine, Priority: 5, TurnsLeft: 0})
	q.Schedule(&worldmodel.Consequence{ID: "b", Kind: worldmodel.ConsequencePlague, Priority: 1, TurnsLeft: 0})
	q.Schedule(&worldmodel.Consequence{ID: "c", Kind: worldmodel.ConsequenceFamine, Priority: 1, TurnsLeft: 0})

	n := q.Tick(10)
	require.Equal(t, 3, n)
	require.Len(t, resolved, 3)
	assert.Equal(t, "famine:a", resolved[0]) // priority 5 drains before priority 1 (higher first)
	assert.Equal(t, "plague:b", resolved[1]) // priority 1, scheduled first among priority-1 ties
	assert.Equal(t, "famine:c", resolved[2])
}

func TestTickRespectsCountdown(t *testing.T) {
	w := worldmodel.NewEmpty()
	q := New(w)
	q.Schedule(&worldmodel.Consequence{ID: "later", Kind: worldmodel.ConsequenceFamine, Priority: 1, TurnsLeft: 2})

	assert.Equal(t, 0, q.Tick(10)) // turnsLeft 2 -> 1
	assert.Equal(t, 1, q.Tick(10)) // turnsLeft 1 -> 0, resolved in the same tick
	assert.Equal(t, 0, q.Tick(10)) // nothing left to resolve
	assert.Equal(t, 0, q.Len())
}

func TestTickBoundsDrainCount(t *testing.T) {
	w := worldmodel.NewEmpty()
	q := New(w)
	for i := 0; i < 50; i++ {
		q.Schedule(&worldmodel.Consequence{ID: "x", Kind: worldmodel.ConsequenceFamine, Priority: 1, TurnsLeft: 0})
	}
	resolved := q.Tick(32)
	assert.Equal(t, 32, resolved)
	assert.Equal(t, 18, q.Len())
}

func TestUnregisteredKindIsDroppedSilently(t *testing.T) {
	w := worldmodel.NewEmpty()
	q := New(w)
	q.Schedule(&worldmodel.Consequence{ID: "unhandled", Kind: worldmodel.ConsequenceNexusFlare, Priority: 1, TurnsLeft: 0})
	assert.NotPanics(t, func() { q.Tick(10) })
	assert.Equal(t, 0, q.Len())
}
