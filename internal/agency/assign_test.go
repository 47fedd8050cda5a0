package agency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

func TestAssignAgendasEventuallyGivesIdleNPCAGoal(t *testing.T) {
	w := worldmodel.NewEmpty()
	w.NPCs["npc-1"] = &worldmodel.NPC{ID: "npc-1", Name: "Kael", Alive: true}
	w.NPCs["npc-2"] = &worldmodel.NPC{ID: "npc-2", Name: "Liora", Alive: true}
	r := rng.New("assign-agendas")

	for i := 0; i < 2000 && w.NPCs["npc-1"].Agenda == nil; i++ {
		AssignAgendas(w, r)
	}

	require.NotNil(t, w.NPCs["npc-1"].Agenda, "a 0.01 per-hour chance should fire within 2000 draws")
}

func TestAssignAgendasNeverOverwritesExistingAgenda(t *testing.T) {
	w := worldmodel.NewEmpty()
	w.NPCs["npc-1"] = &worldmodel.NPC{ID: "npc-1", Name: "Kael", Alive: true, Agenda: &worldmodel.Agenda{Kind: worldmodel.AgendaGreed}}
	r := rng.New("assign-no-overwrite")

	for i := 0; i < 100; i++ {
		AssignAgendas(w, r)
	}

	assert.Equal(t, worldmodel.AgendaGreed, w.NPCs["npc-1"].Agenda.Kind)
}

func TestAssignAgendasSkipsDeadNPCs(t *testing.T) {
	w := worldmodel.NewEmpty()
	w.NPCs["npc-dead"] = &worldmodel.NPC{ID: "npc-dead", Name: "Ghost", Alive: false}
	r := rng.New("assign-dead")

	for i := 0; i < 500; i++ {
		AssignAgendas(w, r)
	}

	assert.Nil(t, w.NPCs["npc-dead"].Agenda)
}

func TestHasOperationDetectsInFlightKind(t *testing.T) {
	f := &worldmodel.Faction{ID: "faction-1", ActiveOperations: []worldmodel.Operation{
		{Kind: worldmodel.OpRaid, TargetID: "settlement-1"},
	}}
	assert.True(t, HasOperation(f, worldmodel.OpRaid))
	assert.False(t, HasOperation(f, worldmodel.OpConquest))
}

func TestAssignOperationsRespectsOneInFlightPerKindAndReservesTreasury(t *testing.T) {
	w := worldmodel.NewEmpty()
	f := &worldmodel.Faction{ID: "faction-1", Name: "Banditry", Kind: worldmodel.FactionBanditClan, Treasury: 10000}
	w.Factions["faction-1"] = f
	w.Settlements["settlement-1"] = &worldmodel.Settlement{ID: "settlement-1", Name: "Ashford", FactionID: "faction-other"}
	w.Settlements["settlement-2"] = &worldmodel.Settlement{ID: "settlement-2", Name: "Brackwater", FactionID: "faction-other"}
	r := rng.New("assign-operations")

	for i := 0; i < 500; i++ {
		AssignOperations(w, r)
	}

	require.NotEmpty(t, f.ActiveOperations)
	seen := make(map[worldmodel.OperationKind]int)
	for _, op := range f.ActiveOperations {
		seen[op.Kind]++
	}
	for kind, count := range seen {
		assert.Equal(t, 1, count, "at most one in-flight operation of kind %s", kind)
	}
	assert.Less(t, f.Treasury, 10000.0, "treasury is reserved once an operation is spawned")
}

func TestAssignOperationsSkipsDestroyedFactions(t *testing.T) {
	w := worldmodel.NewEmpty()
	f := &worldmodel.Faction{ID: "faction-1", Kind: worldmodel.FactionBanditClan, Treasury: 10000, Destroyed: true}
	w.Factions["faction-1"] = f
	r := rng.New("assign-destroyed")

	for i := 0; i < 200; i++ {
		AssignOperations(w, r)
	}

	assert.Empty(t, f.ActiveOperations)
}
