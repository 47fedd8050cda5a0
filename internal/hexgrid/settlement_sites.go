// Settlement site selection — scores land hexes for settlement desirability
// and enforces minimum spacing between tiers. Grounded on the teacher's
// internal/world/settlement_placer.go; the procedural name bank from that
// file is intentionally NOT carried here — spec.md's scope explicitly
// excludes "flavor-text corpora (name banks, ...)" as an external
// collaborator, so naming is the caller's responsibility (see
// worldmodel.NameBank).
package hexgrid

import (
	"math"
	"math/rand"
	"sort"
)

// SettlementSize categorizes settlement scale at seeding time.
type SettlementSize uint8

const (
	SizeVillage SettlementSize = iota
	SizeTown
	SizeCity
)

// SettlementSite is a candidate location chosen for initial settlement
// placement, prior to naming and entity construction.
type SettlementSite struct {
	Coord Coord
	Size  SettlementSize
	Score float64
}

// PlaceSettlements scores every land hex and returns sites for cities,
// towns, and villages, respecting minimum inter-tier spacing.
func PlaceSettlements(g *Grid, seed int64) []SettlementSite {
	gen := rand.New(rand.NewSource(seed + 200))

	type scored struct {
		coord Coord
		score float64
	}
	var candidates []scored
	for coord, hex := range g.Hexes {
		if hex.Terrain == TerrainOcean {
			continue
		}
		if s := settlementScore(g, coord, hex); s > 0 {
			candidates = append(candidates, scored{coord, s})
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	var sites []SettlementSite
	taken := make(map[Coord]bool)
	const minCityDist, minTownDist, minVillageDist = 8, 4, 2

	numCities := 3 + gen.Intn(3)
	for _, c := range candidates {
		if len(sites) >= numCities {
			break
		}
		if tooClose(c.coord, sites, minCityDist) {
			continue
		}
		taken[c.coord] = true
		sites = append(sites, SettlementSite{Coord: c.coord, Size: SizeCity, Score: c.score})
	}

	numTowns := 10 + gen.Intn(11)
	for _, c := range candidates {
		if countBySize(sites, SizeTown) >= numTowns {
			break
		}
		if taken[c.coord] || tooClose(c.coord, sites, minTownDist) {
			continue
		}
		taken[c.coord] = true
		sites = append(sites, SettlementSite{Coord: c.coord, Size: SizeTown, Score: c.score})
	}

	numVillages := 30 + gen.Intn(21)
	for _, c := range candidates {
		if countBySize(sites, SizeVillage) >= numVillages {
			break
		}
		if taken[c.coord] || tooClose(c.coord, sites, minVillageDist) {
			continue
		}
		taken[c.coord] = true
		sites = append(sites, SettlementSite{Coord: c.coord, Size: SizeVillage, Score: c.score})
	}

	return sites
}

func settlementScore(g *Grid, coord Coord, hex *Hex) float64 {
	score := 0.0
	switch hex.Terrain {
	case TerrainPlains:
		score += 3.0
	case TerrainCoast:
		score += 4.0
	case TerrainRiver:
		score += 3.5
	case TerrainForest:
		score += 1.5
	case TerrainDesert, TerrainSwamp, TerrainTundra:
		score += 0.5
	case TerrainMountain:
		score += 0.3
	default:
		return 0
	}

	terrainTypes := make(map[Terrain]bool)
	for _, n := range coord.Neighbors() {
		if nh := g.Get(n); nh != nil && nh.Terrain != TerrainOcean {
			terrainTypes[nh.Terrain] = true
		}
	}
	score += float64(len(terrainTypes)) * 0.3

	for _, n := range coord.Neighbors() {
		nh := g.Get(n)
		if nh == nil {
			continue
		}
		if nh.Terrain == TerrainRiver || nh.Terrain == TerrainCoast {
			score += 0.5
			break
		}
	}

	totalRes := 0.0
	for _, v := range hex.Resources {
		totalRes += v
	}
	score += math.Log1p(totalRes) * 0.2

	return score
}

func tooClose(coord Coord, existing []SettlementSite, minDist int) bool {
	for _, s := range existing {
		if Distance(coord, s.Coord) < minDist {
			return true
		}
	}
	return false
}

func countBySize(sites []SettlementSite, size SettlementSize) int {
	n := 0
	for _, s := range sites {
		if s.Size == size {
			n++
		}
	}
	return n
}

// PopulationForSize returns a seeded initial population for a settlement
// size tier, drawn from the same deterministic generator used for site
// placement.
func PopulationForSize(size SettlementSize, seed int64, index int) uint32 {
	gen := rand.New(rand.NewSource(seed + 300 + int64(index)))
	switch size {
	case SizeCity:
		return 2000 + uint32(gen.Intn(3000))
	case SizeTown:
		return 200 + uint32(gen.Intn(800))
	default:
		return 20 + uint32(gen.Intn(80))
	}
}
