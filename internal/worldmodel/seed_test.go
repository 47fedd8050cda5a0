package worldmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsDeterministic(t *testing.T) {
	cfg := SeedConfig{Seed: "the-known-world", StartWorldTime: "0001-01-01T00:00:00"}
	w1 := Seed(cfg)
	w2 := Seed(cfg)

	require.Equal(t, len(w1.Settlements), len(w2.Settlements))
	require.Equal(t, len(w1.Factions), len(w2.Factions))
	require.Equal(t, len(w1.NPCs), len(w2.NPCs))
	assert.Equal(t, w1.RNGState, w2.RNGState)
	assert.Equal(t, w1.RNGUIDCounter, w2.RNGUIDCounter)

	for id, s1 := range w1.Settlements {
		s2, ok := w2.Settlements[id]
		require.True(t, ok, "settlement id %s missing in second seed", id)
		assert.Equal(t, s1.Name, s2.Name)
		assert.Equal(t, s1.Coord, s2.Coord)
		assert.Equal(t, s1.Population, s2.Population)
	}
}

func TestSeedDifferentSeedsDiverge(t *testing.T) {
	w1 := Seed(SeedConfig{Seed: "alpha", StartWorldTime: "0001-01-01T00:00:00"})
	w2 := Seed(SeedConfig{Seed: "beta", StartWorldTime: "0001-01-01T00:00:00"})
	assert.NotEqual(t, w1.RNGState, w2.RNGState)
}

func TestSeedAssignsEveryNonFactionlessSettlement(t *testing.T) {
	w := Seed(SeedConfig{Seed: "gamma", StartWorldTime: "0001-01-01T00:00:00"})
	require.NotEmpty(t, w.Factions)
	for _, s := range w.Settlements {
		assert.NotEmpty(t, s.FactionID, "settlement %s has no faction", s.Name)
		assert.NotEmpty(t, s.RulerID)
	}
}

func TestSeedRulersAreAlive(t *testing.T) {
	w := Seed(SeedConfig{Seed: "delta", StartWorldTime: "0001-01-01T00:00:00"})
	for _, s := range w.Settlements {
		ruler, ok := w.NPCs[s.RulerID]
		require.True(t, ok)
		assert.True(t, ruler.Alive)
		assert.Equal(t, s.ID, ruler.HomeSettlementID)
	}
}

func TestNormalizeFillsNilMaps(t *testing.T) {
	w := &World{}
	w.Normalize()
	assert.NotNil(t, w.Settlements)
	assert.NotNil(t, w.Factions)
	assert.NotNil(t, w.NPCs)
	assert.NotNil(t, w.Ecology.RegionHealth)
	assert.Equal(t, CurrentSchemaVersion, w.SchemaVersion)
	assert.Equal(t, SeasonSpring, w.Calendar.Season)
	assert.NotEmpty(t, w.Archetype, "an older snapshot missing Archetype should migrate to a default")
}

func TestAppendStampsSequence(t *testing.T) {
	w := NewEmpty()
	w.WorldTime = "0001-01-01T00:00:00"
	w.Append(LogEntry{Category: LogCategorySocial, Message: "first"})
	w.Append(LogEntry{Category: LogCategorySocial, Message: "second"})
	require.Len(t, w.Log, 2)
	assert.Equal(t, uint64(1), w.Log[0].Sequence)
	assert.Equal(t, uint64(2), w.Log[1].Sequence)
}
