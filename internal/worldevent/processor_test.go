package worldevent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

func newTestWorld() *worldmodel.World {
	w := worldmodel.NewEmpty()
	w.WorldTime = "0001-01-01T00:00:00"
	return w
}

func TestProcessRecordsParticipantMemories(t *testing.T) {
	w := newTestWorld()
	r := rng.New("processor-participants")

	w.NPCs["npc-1"] = &worldmodel.NPC{ID: "npc-1", Name: "Kael", Alive: true}
	w.NPCs["npc-2"] = &worldmodel.NPC{ID: "npc-2", Name: "Liora", Alive: true}

	Process(w, r, Event{
		Kind:        KindBetrayal,
		ActorIDs:    []string{"npc-1", "npc-2"},
		Magnitude:   0.5,
		Description: "Kael betrays Liora in the market square.",
	})

	require.Len(t, w.NPCs["npc-1"].Memories, 1)
	require.Len(t, w.NPCs["npc-2"].Memories, 1)
	assert.Equal(t, worldmodel.MemoryBetrayed, w.NPCs["npc-1"].Memories[0].Category)
	assert.Equal(t, "npc-2", w.NPCs["npc-1"].Memories[0].TargetID)
	assert.Equal(t, "npc-1", w.NPCs["npc-2"].Memories[0].TargetID)
}

func TestProcessRecordsWitnessMemoriesAtLocationOnly(t *testing.T) {
	w := newTestWorld()
	r := rng.New("processor-witness")

	w.NPCs["npc-actor"] = &worldmodel.NPC{ID: "npc-actor", Name: "Kael", Alive: true, Location: "settlement-1"}
	w.NPCs["npc-witness"] = &worldmodel.NPC{ID: "npc-witness", Name: "Bystander", Alive: true, Location: "settlement-1"}
	w.NPCs["npc-elsewhere"] = &worldmodel.NPC{ID: "npc-elsewhere", Name: "Far Away", Alive: true, Location: "settlement-2"}
	w.NPCs["npc-dead"] = &worldmodel.NPC{ID: "npc-dead", Name: "Deceased", Alive: false, Location: "settlement-1"}

	Process(w, r, Event{
		Kind:        KindBattle,
		ActorIDs:    []string{"npc-actor"},
		LocationID:  "settlement-1",
		Magnitude:   0.8,
		Description: "A battle rages in the square.",
	})

	assert.Len(t, w.NPCs["npc-witness"].Memories, 1)
	assert.Empty(t, w.NPCs["npc-elsewhere"].Memories)
	assert.Empty(t, w.NPCs["npc-dead"].Memories)
	assert.Empty(t, w.NPCs["npc-actor"].Memories, "the actor gets a participant memory, recorded separately, not a witness one")
}

func TestProcessAdjustsWitnessingFactionReputationDownOnHostileAct(t *testing.T) {
	w := newTestWorld()
	r := rng.New("processor-reputation")

	w.NPCs["npc-actor"] = &worldmodel.NPC{ID: "npc-actor", Name: "Raider", Alive: true, FactionID: "faction-raiders"}
	w.Settlements["settlement-1"] = &worldmodel.Settlement{ID: "settlement-1", Name: "Ashford", FactionID: "faction-locals"}
	w.Factions["faction-locals"] = &worldmodel.Faction{ID: "faction-locals", Name: "Locals"}

	Process(w, r, Event{
		Kind:        KindRaid,
		ActorIDs:    []string{"npc-actor"},
		LocationID:  "settlement-1",
		Magnitude:   0.6,
		Description: "Raiders pillage the town.",
	})

	d := w.Factions["faction-locals"].Dispositions["faction-raiders"]
	assert.Less(t, d.Attitude, 0.0)
}

func TestProcessSkipsReputationWhenUnwitnessed(t *testing.T) {
	w := newTestWorld()
	r := rng.New("processor-unwitnessed")

	w.NPCs["npc-actor"] = &worldmodel.NPC{ID: "npc-actor", Name: "Raider", Alive: true, FactionID: "faction-raiders"}

	Process(w, r, Event{
		Kind:        KindRaid,
		ActorIDs:    []string{"npc-actor"},
		Magnitude:   0.6,
		Description: "A raid happens far from any witness.",
	})

	assert.Empty(t, w.Factions)
}

func TestProcessMaySpawnStoryThreadFromDescription(t *testing.T) {
	w := newTestWorld()
	r := rng.New("processor-thread")

	w.NPCs["npc-1"] = &worldmodel.NPC{ID: "npc-1", Name: "Kael", Alive: true}

	Process(w, r, Event{
		Kind:        KindBetrayal,
		ActorIDs:    []string{"npc-1"},
		Description: "Kael betrays his old companion in a fit of rage.",
	})

	assert.Len(t, w.StoryThreads, 1)
}
