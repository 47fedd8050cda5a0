// World generation using layered simplex noise, grounded on the teacher's
// internal/world/generation.go almost unchanged: the hex/terrain model is
// exactly what spec.md's World entity names, and this is a pure function of
// the world seed (not a probabilistic branch), so reusing math/rand and
// opensimplex internally — seeded deterministically from the world seed —
// does not violate the kernel's determinism invariant: the same seed always
// produces the same grid, and generation runs exactly once, at world
// seeding, never mid-simulation.
package hexgrid

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// GenConfig holds world generation parameters.
type GenConfig struct {
	Radius      int
	Seed        int64
	SeaLevel    float64
	MountainLvl float64
}

// DefaultGenConfig returns the standard world-generation configuration.
func DefaultGenConfig() GenConfig {
	return GenConfig{
		Radius:      22,
		Seed:        0,
		SeaLevel:    0.25,
		MountainLvl: 0.72,
	}
}

// Generate builds a complete hex grid with terrain, resources, coastline,
// and rivers derived from three independent noise layers.
func Generate(cfg GenConfig) *Grid {
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}

	elevNoise := opensimplex.NewNormalized(seed)
	rainNoise := opensimplex.NewNormalized(seed + 1)
	tempNoise := opensimplex.NewNormalized(seed + 2)

	g := NewGrid(cfg.Radius)

	for q := -cfg.Radius; q <= cfg.Radius; q++ {
		for r := -cfg.Radius; r <= cfg.Radius; r++ {
			s := -q - r
			if maxAbs3(q, r, s) > cfg.Radius {
				continue
			}

			coord := Coord{Q: q, R: r}
			x := float64(q) + float64(r)*0.5
			y := float64(r) * math.Sqrt(3.0) / 2.0

			elev := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
			rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)
			temp := octaveNoise(tempNoise, x, y, 3, 0.05, 0.5)

			distFromCenter := math.Sqrt(x*x+y*y) / float64(cfg.Radius)
			edgeFalloff := 1.0 - math.Pow(distFromCenter, 3.5)
			if edgeFalloff < 0 {
				edgeFalloff = 0
			}
			elev *= edgeFalloff

			temp = temp*0.6 + (1.0-math.Abs(y)/float64(cfg.Radius))*0.3 + (1.0-elev)*0.1

			terrain := deriveTerrain(elev, rain, temp, cfg)

			hex := &Hex{
				Coord:       coord,
				Terrain:     terrain,
				Elevation:   elev,
				Rainfall:    rain,
				Temperature: temp,
				Resources:   makeResources(terrain, elev, rain),
				Health:      1.0,
			}
			g.Set(hex)
		}
	}

	markCoastalHexes(g)
	placeRivers(g, seed)

	return g
}

func maxAbs3(a, b, c int) int {
	m := absInt(a)
	if absInt(b) > m {
		m = absInt(b)
	}
	if absInt(c) > m {
		m = absInt(c)
	}
	return m
}

func deriveTerrain(elev, rain, temp float64, cfg GenConfig) Terrain {
	if elev < cfg.SeaLevel {
		return TerrainOcean
	}
	if elev > cfg.MountainLvl {
		return TerrainMountain
	}
	if temp < 0.25 {
		return TerrainTundra
	}
	if rain < 0.25 && temp > 0.5 {
		return TerrainDesert
	}
	if rain > 0.7 && elev < 0.45 {
		return TerrainSwamp
	}
	if rain > 0.45 && elev > 0.45 {
		return TerrainForest
	}
	return TerrainPlains
}

func makeResources(terrain Terrain, elev, rain float64) map[Resource]float64 {
	res := make(map[Resource]float64)
	switch terrain {
	case TerrainPlains:
		res[ResourceGrain] = 80 + rain*40
	case TerrainForest:
		res[ResourceTimber] = 100
		res[ResourceHerbs] = 30
		res[ResourceFurs] = 20
	case TerrainMountain:
		res[ResourceIronOre] = 60 + elev*30
		res[ResourceStone] = 80
		res[ResourceCoal] = 40
		if elev > 0.85 {
			res[ResourceGems] = 10
		}
	case TerrainCoast:
		res[ResourceFish] = 80
	case TerrainRiver:
		res[ResourceFish] = 50
		res[ResourceGrain] = 40
	case TerrainSwamp:
		res[ResourceHerbs] = 60
		res[ResourceExotics] = 5
	case TerrainTundra:
		res[ResourceFurs] = 40
	case TerrainDesert:
		res[ResourceStone] = 30
		if elev > 0.5 {
			res[ResourceGems] = 8
		}
	}
	return res
}

func markCoastalHexes(g *Grid) {
	var toMark []Coord
	for coord, hex := range g.Hexes {
		if hex.Terrain == TerrainOcean {
			continue
		}
		for _, n := range coord.Neighbors() {
			if nh := g.Get(n); nh != nil && nh.Terrain == TerrainOcean {
				toMark = append(toMark, coord)
				break
			}
		}
	}
	for _, coord := range toMark {
		hex := g.Get(coord)
		if (hex.Terrain == TerrainPlains || hex.Terrain == TerrainForest) && hex.Elevation < 0.5 {
			hex.Terrain = TerrainCoast
			hex.Resources = makeResources(TerrainCoast, hex.Elevation, hex.Rainfall)
			if hex.Rainfall > 0.4 {
				hex.Resources[ResourceGrain] = 20
			}
		}
	}
}

func placeRivers(g *Grid, seed int64) {
	gen := rand.New(rand.NewSource(seed + 100))

	var sources []Coord
	for coord, hex := range g.Hexes {
		if hex.Elevation > 0.65 && hex.Terrain != TerrainOcean {
			sources = append(sources, coord)
		}
	}

	numRivers := len(sources) / 8
	if numRivers < 2 {
		numRivers = 2
	}
	if numRivers > 10 {
		numRivers = 10
	}

	gen.Shuffle(len(sources), func(i, j int) { sources[i], sources[j] = sources[j], sources[i] })
	if len(sources) > numRivers {
		sources = sources[:numRivers]
	}

	for _, start := range sources {
		traceRiver(g, start)
	}
}

func traceRiver(g *Grid, start Coord) {
	current := start
	visited := make(map[Coord]bool)
	const maxSteps = 50

	for step := 0; step < maxSteps; step++ {
		visited[current] = true
		hex := g.Get(current)
		if hex == nil || hex.Terrain == TerrainOcean {
			break
		}

		if hex.Terrain != TerrainMountain && hex.Terrain != TerrainCoast {
			hex.Terrain = TerrainRiver
			hex.Resources[ResourceFish] = 50
			hex.Resources[ResourceGrain] += 20
		}

		var best *Coord
		bestElev := hex.Elevation
		for _, n := range current.Neighbors() {
			if visited[n] {
				continue
			}
			nh := g.Get(n)
			if nh == nil || nh.Elevation >= bestElev {
				continue
			}
			bestElev = nh.Elevation
			c := n
			best = &c
		}
		if best == nil {
			break
		}
		current = *best
	}
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
