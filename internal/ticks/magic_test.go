package ticks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

func TestTickNexusIncomeGrantsOwnerReputationAndDecaysStability(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("nexus-income")

	owner := &worldmodel.NPC{ID: "npc-1", Name: "Kael", Alive: true}
	w.NPCs[owner.ID] = owner
	n := &worldmodel.Nexus{ID: "nexus-1", Name: "the Whispering Stone", BoundToID: owner.ID, Power: 50, Stability: 100}
	w.Nexuses[n.ID] = n

	TickNexusIncome(w, r, sink)

	assert.Greater(t, owner.Reputation, 0.0)
	assert.Less(t, n.Stability, 100.0)
}

func TestTickNexusIncomeUnbindsWhenOwnerIsDead(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("nexus-unbind")

	owner := &worldmodel.NPC{ID: "npc-1", Name: "Kael", Alive: false}
	w.NPCs[owner.ID] = owner
	n := &worldmodel.Nexus{ID: "nexus-1", Name: "the Whispering Stone", BoundToID: owner.ID, Power: 50, Stability: 100}
	w.Nexuses[n.ID] = n

	TickNexusIncome(w, r, sink)

	assert.Empty(t, n.BoundToID)
}

func TestTickNexusIncomeCanFlareBelowThreshold(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("nexus-flare")

	owner := &worldmodel.NPC{ID: "npc-1", Name: "Kael", Alive: true, HP: 100}
	w.NPCs[owner.ID] = owner
	n := &worldmodel.Nexus{ID: "nexus-1", Name: "the Whispering Stone", BoundToID: owner.ID, Power: 50, Stability: 10}

	flared := false
	for i := 0; i < 500 && !flared; i++ {
		n.Stability = 10
		w.Nexuses[n.ID] = n
		TickNexusIncome(w, r, sink)
		if len(w.Log) > 0 {
			flared = true
		}
	}

	require.True(t, flared)
	assert.Contains(t, w.Log[len(w.Log)-1].Message, "flares")
}

func TestTickSpellcastingEventuallyLearnsSpellForResearchAgendaNPC(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("spellcasting")

	n := &worldmodel.NPC{ID: "npc-1", Name: "Mira", Alive: true, Agenda: &worldmodel.Agenda{Kind: worldmodel.AgendaResearch}}
	w.NPCs[n.ID] = n

	for i := 0; i < 500 && len(n.KnownSpells) == 0; i++ {
		TickSpellcasting(w, r, sink)
	}

	assert.NotEmpty(t, n.KnownSpells)
}

func TestTickSpellcastingSkipsNonResearchAgendas(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("spellcasting-skip")

	n := &worldmodel.NPC{ID: "npc-1", Name: "Mira", Alive: true, Agenda: &worldmodel.Agenda{Kind: worldmodel.AgendaGreed}}
	w.NPCs[n.ID] = n

	for i := 0; i < 200; i++ {
		TickSpellcasting(w, r, sink)
	}

	assert.Empty(t, n.KnownSpells)
}

func TestContainsSpellDetectsMembership(t *testing.T) {
	known := []string{"ember dart", "mending touch"}
	assert.True(t, containsSpell(known, "ember dart"))
	assert.False(t, containsSpell(known, "stone skin"))
}
