package ticks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbutler/war-machine-log/internal/hexgrid"
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

func newDungeonWorld() (*worldmodel.World, *worldmodel.Party, *worldmodel.Dungeon) {
	w := worldmodel.NewEmpty()
	w.WorldTime = "0001-01-01T00:00:00"
	coord := hexgrid.Coord{Q: 3, R: 4}

	p := &worldmodel.Party{ID: "party-1", Name: "The Vanguard", Location: coord, MemberIDs: []string{"npc-1", "npc-2"}}
	w.Parties[p.ID] = p

	d := &worldmodel.Dungeon{ID: "dungeon-1", Name: "the Sunken Crypt", Coord: coord, Depth: 1000, Danger: 1}
	w.Dungeons[d.ID] = d

	w.NPCs["npc-1"] = &worldmodel.NPC{ID: "npc-1", Name: "Kael", Alive: true, Level: 20, HP: 50}
	w.NPCs["npc-2"] = &worldmodel.NPC{ID: "npc-2", Name: "Liora", Alive: true, Level: 20, HP: 50}
	return w, p, d
}

func TestTickDungeonExplorationAdvancesDepthWhenPartyIsIdleInDungeon(t *testing.T) {
	w, _, d := newDungeonWorld()
	sink := logsink.New(w)
	r := rng.New("dungeon-advance")

	TickDungeonExploration(w, r, sink)

	assert.Equal(t, 1, d.ExploredDepth)
	assert.False(t, d.Cleared)
}

func TestTickDungeonExplorationSkipsTravelingParties(t *testing.T) {
	w, p, d := newDungeonWorld()
	sink := logsink.New(w)
	r := rng.New("dungeon-traveling")
	dest := hexgrid.Coord{Q: 9, R: 9}
	p.Destination = &dest

	TickDungeonExploration(w, r, sink)

	assert.Equal(t, 0, d.ExploredDepth)
}

func TestTickDungeonExplorationClearsWhenFullyExplored(t *testing.T) {
	w, p, d := newDungeonWorld()
	sink := logsink.New(w)
	r := rng.New("dungeon-clear")
	d.Depth = 1
	d.ExploredDepth = 1

	TickDungeonExploration(w, r, sink)

	assert.True(t, d.Cleared)
	require.Len(t, w.Log, 1)
	assert.Contains(t, w.Log[0].Message, p.Name)
}

func TestDungeonAtCoordFindsMatchByCoordinate(t *testing.T) {
	w, _, d := newDungeonWorld()
	found := dungeonAtCoord(w, d.Coord)
	require.NotNil(t, found)
	assert.Equal(t, d.ID, found.ID)

	assert.Nil(t, dungeonAtCoord(w, hexgrid.Coord{Q: 99, R: 99}))
}

func TestRemoveMemberDropsOnlyTarget(t *testing.T) {
	out := removeMember([]string{"a", "b", "c"}, "b")
	assert.Equal(t, []string{"a", "c"}, out)
}

func TestWeakestMemberPicksLowestLevelLivingNPC(t *testing.T) {
	w, p, _ := newDungeonWorld()
	w.NPCs["npc-1"].Level = 5
	w.NPCs["npc-2"].Level = 2
	assert.Equal(t, "npc-2", weakestMember(w, p))
}
