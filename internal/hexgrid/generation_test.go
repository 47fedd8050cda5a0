package hexgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerateIsDeterministicForASeed closes the Known gaps note in
// DESIGN.md: two Generate calls with the same GenConfig must produce
// byte-identical terrain, since world seeding depends on this (spec.md's
// determinism invariant extends to everything derived from the seed, not
// just the rng-driven parts).
func TestGenerateIsDeterministicForASeed(t *testing.T) {
	cfg := GenConfig{Radius: 8, Seed: 42, SeaLevel: 0.25, MountainLvl: 0.72}
	g1 := Generate(cfg)
	g2 := Generate(cfg)

	require.Equal(t, g1.Count(), g2.Count())
	for coord, h1 := range g1.Hexes {
		h2 := g2.Get(coord)
		require.NotNil(t, h2, "coord %v missing from second generation", coord)
		assert.Equal(t, h1.Terrain, h2.Terrain)
		assert.Equal(t, h1.Elevation, h2.Elevation)
	}
}

// TestGenerateDifferentSeedsDivergeInTerrain guards against a broken noise
// offset collapsing every seed onto the same map.
func TestGenerateDifferentSeedsDivergeInTerrain(t *testing.T) {
	g1 := Generate(GenConfig{Radius: 8, Seed: 1, SeaLevel: 0.25, MountainLvl: 0.72})
	g2 := Generate(GenConfig{Radius: 8, Seed: 2, SeaLevel: 0.25, MountainLvl: 0.72})

	differs := false
	for coord, h1 := range g1.Hexes {
		if h2 := g2.Get(coord); h2 != nil && h2.Terrain != h1.Terrain {
			differs = true
			break
		}
	}
	assert.True(t, differs, "two different seeds produced identical terrain everywhere")
}

// TestGenerateProducesOnlyHexesWithinRadius checks the radius bound every
// settlement-placement/dungeon-seeding consumer relies on.
func TestGenerateProducesOnlyHexesWithinRadius(t *testing.T) {
	g := Generate(GenConfig{Radius: 6, Seed: 7, SeaLevel: 0.25, MountainLvl: 0.72})
	require.NotZero(t, g.Count())
	for coord := range g.Hexes {
		assert.True(t, g.InBounds(coord), "coord %v outside declared radius", coord)
	}
}

// TestGenerateProducesAMixOfTerrainKinds guards the elevation/rainfall/
// temperature banding in deriveTerrain: a healthy world should have both
// land and ocean, not collapse to one terrain everywhere.
func TestGenerateProducesAMixOfTerrainKinds(t *testing.T) {
	g := Generate(GenConfig{Radius: 16, Seed: 99, SeaLevel: 0.25, MountainLvl: 0.72})

	seen := map[Terrain]bool{}
	for _, h := range g.Hexes {
		seen[h.Terrain] = true
	}
	assert.True(t, len(seen) >= 2, "expected at least two distinct terrain kinds, got %v", seen)
}
