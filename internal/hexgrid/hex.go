// Package hexgrid provides the world's hex tile grid: axial coordinates,
// terrain, resources, and deterministic procedural generation.
//
// Grounded on the teacher's internal/world package (hex.go, map.go,
// generation.go) — the hex/terrain/noise-generation model carries over
// almost unchanged, since spec.md's World entity names "axial coords
// (q,r), terrain enum" directly.
package hexgrid

import "fmt"

// Coord is a position on the hex grid using axial coordinates. The implicit
// third cube coordinate is S = -Q - R.
type Coord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

// MarshalText renders Coord as "q,r" so it can serve as a JSON map key —
// encoding/json requires map keys to be strings or TextMarshalers, and
// Grid.Hexes is keyed by Coord directly to keep lookups allocation-free.
func (c Coord) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%d,%d", c.Q, c.R)), nil
}

// UnmarshalText parses the "q,r" form produced by MarshalText.
func (c *Coord) UnmarshalText(text []byte) error {
	_, err := fmt.Sscanf(string(text), "%d,%d", &c.Q, &c.R)
	return err
}

// Terrain enumerates the fixed set of terrain kinds a hex may have.
type Terrain uint8

const (
	TerrainPlains Terrain = iota
	TerrainForest
	TerrainMountain
	TerrainCoast
	TerrainRiver
	TerrainDesert
	TerrainSwamp
	TerrainTundra
	TerrainOcean
)

// Name returns a human-readable terrain name, for log entries.
func (t Terrain) Name() string {
	switch t {
	case TerrainPlains:
		return "plains"
	case TerrainForest:
		return "forest"
	case TerrainMountain:
		return "mountain"
	case TerrainCoast:
		return "coast"
	case TerrainRiver:
		return "river"
	case TerrainDesert:
		return "desert"
	case TerrainSwamp:
		return "swamp"
	case TerrainTundra:
		return "tundra"
	case TerrainOcean:
		return "ocean"
	default:
		return "unknown"
	}
}

// Resource enumerates terrain-derived resource kinds feeding the ecology and
// trade subsystems.
type Resource uint8

const (
	ResourceGrain Resource = iota
	ResourceTimber
	ResourceIronOre
	ResourceStone
	ResourceFish
	ResourceHerbs
	ResourceGems
	ResourceFurs
	ResourceCoal
	ResourceExotics
)

// Hex is a single tile of the world map. Immutable after creation except
// for Resources (exploitation/regrowth) and Health (land condition).
type Hex struct {
	Coord   Coord   `json:"coord"`
	Terrain Terrain `json:"terrain"`

	Resources map[Resource]float64 `json:"resources"`

	Elevation   float64 `json:"elevation"`
	Rainfall    float64 `json:"rainfall"`
	Temperature float64 `json:"temperature"`

	// SettlementID references a Settlement occupying this hex, if any.
	SettlementID string `json:"settlement_id,omitempty"`
	// DungeonID references a Dungeon rooted at this hex, if any.
	DungeonID string `json:"dungeon_id,omitempty"`

	Health            float64 `json:"health"`
	LastExtractedTurn uint64  `json:"last_extracted_turn"`
}

// neighborDirections are the six axial offsets to adjacent hexes.
var neighborDirections = [6]Coord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// Neighbors returns the six adjacent coordinates.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range neighborDirections {
		out[i] = Coord{Q: c.Q + d.Q, R: c.R + d.R}
	}
	return out
}

// Distance returns the hex distance between two coordinates.
func Distance(a, b Coord) int {
	dq := absInt(a.Q - b.Q)
	dr := absInt(a.R - b.R)
	ds := absInt(a.S() - b.S())
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
