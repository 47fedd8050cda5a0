package worldmodel

import (
	"fmt"

	"github.com/mbutler/war-machine-log/internal/hexgrid"
	"github.com/mbutler/war-machine-log/internal/rng"
)

// SeedConfig controls initial world construction.
type SeedConfig struct {
	Seed           string
	GenConfig      hexgrid.GenConfig
	StartWorldTime string
	Names          NameBank
}

// npcClasses and factionKinds are small closed tables driving seeding
// variety; grounded on the teacher's internal/agents/spawner.go archetype
// roster.
var npcClasses = []string{"fighter", "thief", "magic-user", "cleric", "dwarf", "elf", "halfling"}
var factionKinds = []FactionKind{FactionKingdom, FactionCityState, FactionGuildState, FactionCult, FactionBanditClan, FactionTheocracy}

// worldArchetypes is the fixed preset pool Seed draws from for World.
// Archetype, spec.md §3's flavor field describing the shape of a freshly
// seeded world (frontier expansion vs. an old, settled realm vs. one
// recovering from catastrophe). Purely descriptive text, grounded on the
// teacher's internal/agents/spawner.go fixed-roster-pick pattern.
var worldArchetypes = []string{
	"the Sundered Marches",
	"the Old Kingdoms",
	"the Frontier Reaches",
	"the Shattered Concord",
	"the Long Peace",
	"the Age of Rebuilding",
}

// Seed builds a brand-new World: generates the hex grid, places
// settlements, assigns factions and rulers, and populates a starting NPC
// roster. Everything here draws from a single rng.Source seeded from
// cfg.Seed, so two Seed calls with the same SeedConfig produce byte-
// identical Worlds (modulo the RNGState snapshot, which is itself
// deterministic).
func Seed(cfg SeedConfig) *World {
	if cfg.Names == nil {
		cfg.Names = DefaultNameBank{}
	}
	w := NewEmpty()
	w.Seed = cfg.Seed
	w.WorldTime = cfg.StartWorldTime
	w.Calendar = Calendar{Day: 1, Season: SeasonSpring, Weather: WeatherClear}

	r := rng.New(cfg.Seed)
	w.Archetype = rng.Pick(r, worldArchetypes)

	genCfg := cfg.GenConfig
	if genCfg.Radius == 0 {
		genCfg = hexgrid.DefaultGenConfig()
	}
	// Grid generation is a pure function of a numeric seed derived from the
	// string seed, not of the shared rng.Source sequence — see
	// hexgrid/generation.go's package doc for why this still satisfies
	// determinism.
	numericSeed := int64(r.Next() * 1e9)
	genCfg.Seed = numericSeed
	w.Grid = hexgrid.Generate(genCfg)

	sites := hexgrid.PlaceSettlements(w.Grid, numericSeed)

	for i, site := range sites {
		id := r.UID("settlement")
		name := cfg.Names.SettlementName(r, site.Size)
		settlement := &Settlement{
			ID:         id,
			Name:       name,
			Coord:      site.Coord,
			Size:       site.Size,
			Population: hexgrid.PopulationForSize(site.Size, numericSeed, i),
			Prosperity: 40 + r.Next()*30,
			Unrest:     r.Next() * 10,
			Defense:    10 + r.Next()*20,
			Governance: Governance{
				Form:     pickGovernance(r),
				TaxRate:  0.05 + r.Next()*0.1,
				LawLevel: 0.4 + r.Next()*0.4,
			},
			FoundedAt: w.WorldTime,
		}
		w.Settlements[id] = settlement

		hex := w.Grid.Get(site.Coord)
		if hex != nil {
			hex.SettlementID = id
		}
	}

	seedFactions(w, r, cfg.Names)
	seedStartingNPCs(w, r, cfg.Names)
	seedDungeons(w, r)
	seedNexuses(w, r, cfg.Names)
	seedParties(w, r, cfg.Names)
	seedAntagonists(w, r, cfg.Names)
	seedMercenaries(w, r, cfg.Names)

	state := r.State()
	w.RNGState = state
	w.RNGUIDCounter = r.UIDCounter()

	return w
}

func pickGovernance(r *rng.Source) GovernanceForm {
	forms := []GovernanceForm{GovernanceMonarchy, GovernanceCouncil, GovernanceTheocracy}
	return rng.Pick(r, forms)
}

// seedFactions assigns every city-tier settlement as a faction capital and
// distributes nearby towns/villages into its territory, grounded on the
// teacher's internal/social faction-assignment pass.
func seedFactions(w *World, r *rng.Source, names NameBank) {
	var capitals []*Settlement
	for _, s := range w.Settlements {
		if s.Size == hexgrid.SizeCity {
			capitals = append(capitals, s)
		}
	}

	for _, cap := range capitals {
		kind := rng.Pick(r, factionKinds)
		id := r.UID("faction")
		f := &Faction{
			ID:           id,
			Name:         names.FactionName(r, kind),
			Kind:         kind,
			CapitalID:    cap.ID,
			TerritoryIDs: []string{cap.ID},
			Treasury:     500 + r.Next()*2000,
			Military:     20 + r.Next()*50,
			Influence:    10 + r.Next()*30,
			Dispositions: make(map[string]Disposition),
		}
		w.Factions[id] = f
		cap.FactionID = id
	}

	for _, s := range w.Settlements {
		if s.FactionID != "" {
			continue
		}
		nearest := nearestCapital(w, s, capitals)
		if nearest == nil {
			continue
		}
		s.FactionID = nearest.FactionID
		f := w.Factions[nearest.FactionID]
		f.TerritoryIDs = append(f.TerritoryIDs, s.ID)
	}

	for _, a := range w.Factions {
		for _, b := range w.Factions {
			if a.ID == b.ID {
				continue
			}
			if _, ok := a.Dispositions[b.ID]; !ok {
				a.Dispositions[b.ID] = Disposition{Attitude: r.Next()*2 - 1}
			}
		}
	}
}

func nearestCapital(w *World, s *Settlement, capitals []*Settlement) *Settlement {
	var best *Settlement
	bestDist := -1
	for _, c := range capitals {
		d := hexgrid.Distance(s.Coord, c.Coord)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}

// seedStartingNPCs populates a small roster per settlement (a ruler, plus a
// handful of notables), grounded on the teacher's internal/agents/spawner.go.
func seedStartingNPCs(w *World, r *rng.Source, names NameBank) {
	for _, s := range w.Settlements {
		rulerID := r.UID("npc")
		ruler := &NPC{
			ID:               rulerID,
			Name:             names.NPCName(r),
			Role:             "ruler",
			HomeSettlementID: s.ID,
			Location:         s.ID,
			Reputation:       50 + r.Next()*30,
			Alive:            true,
			Level:            5 + r.Int(5),
			Class:            rng.Pick(r, npcClasses),
			FactionID:        s.FactionID,
		}
		ruler.MaxHP = 10 + ruler.Level*4
		ruler.HP = ruler.MaxHP
		w.NPCs[rulerID] = ruler
		s.RulerID = rulerID

		notables := 2 + r.Int(3)
		for i := 0; i < notables; i++ {
			id := r.UID("npc")
			n := &NPC{
				ID:               id,
				Name:             names.NPCName(r),
				Role:             fmt.Sprintf("notable-%d", i),
				HomeSettlementID: s.ID,
				Location:         s.ID,
				Reputation:       r.Next() * 50,
				Alive:            true,
				Level:            1 + r.Int(6),
				Class:            rng.Pick(r, npcClasses),
				FactionID:        s.FactionID,
			}
			n.MaxHP = 6 + n.Level*3
			n.HP = n.MaxHP
			w.NPCs[id] = n
		}
	}
}

// randomUnoccupiedHex returns a random hex with no settlement and no
// dungeon already rooted on it, or nil if the grid has none left.
func randomUnoccupiedHex(w *World, r *rng.Source) *hexgrid.Hex {
	var candidates []*hexgrid.Hex
	for _, h := range w.Grid.Hexes {
		if h.Terrain == hexgrid.TerrainOcean {
			continue
		}
		if h.SettlementID == "" && h.DungeonID == "" {
			candidates = append(candidates, h)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return rng.Pick(r, candidates)
}

// seedDungeons scatters a handful of explorable sites across the grid,
// sized by distance from the nearest settlement so frontier dungeons skew
// more dangerous. Grounded on the teacher's internal/world hex-resource
// placement pass, generalized to the spec's Dungeon entity.
func seedDungeons(w *World, r *rng.Source) {
	count := 3 + r.Int(5)
	names := []string{
		"the Sunken Crypt", "the Hollow Tower", "the Serpent's Maw",
		"the Forgotten Barrow", "the Glass Labyrinth", "the Bone Orchard",
		"the Drowned Shrine", "the Cinder Vault",
	}
	for i := 0; i < count; i++ {
		hex := randomUnoccupiedHex(w, r)
		if hex == nil {
			return
		}
		id := r.UID("dungeon")
		hex.DungeonID = id
		w.Dungeons[id] = &Dungeon{
			ID:            id,
			Name:          rng.Pick(r, names),
			Coord:         hex.Coord,
			Depth:         3 + r.Int(10),
			Danger:        10 + r.Next()*40,
			TreasureValue: 100 + r.Next()*900,
		}
	}
}

// seedNexuses places a small, fixed number of unclaimed magical sites —
// spec.md §3 calls these "seeded fixed". Grounded on the teacher's
// internal/phi mystical-field concept (see DESIGN.md).
func seedNexuses(w *World, r *rng.Source, names NameBank) {
	count := 2 + r.Int(3)
	nexusWords := []string{"Wellspring", "Confluence", "Font", "Rift", "Hollow"}
	for i := 0; i < count; i++ {
		hex := randomUnoccupiedHex(w, r)
		if hex == nil {
			return
		}
		id := r.UID("nexus")
		w.Nexuses[id] = &Nexus{
			ID:        id,
			Name:      "the " + rng.Pick(r, nexusWords) + " of " + rng.Pick(r, defaultGivenNames),
			Coord:     hex.Coord,
			Power:     20 + r.Next()*60,
			Stability: 60 + r.Next()*40,
		}
	}
}

// seedParties seeds a small roster of adventuring parties drawn from the
// already-seeded NPC pool, grounded on the teacher's internal/agents
// spawner grouping pass generalized into the id-referenced Party entity.
func seedParties(w *World, r *rng.Source, names NameBank) {
	var pool []*NPC
	for _, n := range w.NPCs {
		if n.Alive && n.Role != "ruler" {
			pool = append(pool, n)
		}
	}
	if len(pool) == 0 {
		return
	}
	rng.Shuffle(r, pool)

	partyCount := 2 + r.Int(4)
	i := 0
	for p := 0; p < partyCount && i < len(pool); p++ {
		size := 1 + r.Int(3)
		var members []string
		for m := 0; m < size && i < len(pool); m++ {
			members = append(members, pool[i].ID)
			i++
		}
		if len(members) == 0 {
			continue
		}
		leader := w.NPCs[members[0]]
		id := r.UID("party")
		w.Parties[id] = &Party{
			ID:        id,
			Name:      leader.Name + "'s Company",
			MemberIDs: members,
			LeaderID:  leader.ID,
			Location:  coordForLocation(w, leader.Location),
			Gold:      20 + r.Next()*80,
		}
	}
}

// coordForLocation resolves an NPC's Location (a settlement id) to a hex
// coordinate for the owning Party, defaulting to the grid origin if the
// settlement cannot be found.
func coordForLocation(w *World, settlementID string) hexgrid.Coord {
	if s, ok := w.Settlements[settlementID]; ok {
		return s.Coord
	}
	return hexgrid.Coord{}
}

// seedAntagonists designates a small number of seeded NPCs as villains,
// grounded on the teacher's internal/engine/perpetuation.go villain
// roster.
func seedAntagonists(w *World, r *rng.Source, names NameBank) {
	var pool []*NPC
	for _, n := range w.NPCs {
		if n.Alive && n.Role != "ruler" {
			pool = append(pool, n)
		}
	}
	if len(pool) == 0 {
		return
	}
	rng.Shuffle(r, pool)
	count := 1 + r.Int(2)
	for i := 0; i < count && i < len(pool); i++ {
		n := pool[i]
		n.Role = "antagonist"
		id := r.UID("antagonist")
		w.Antagonists[id] = &Antagonist{
			ID:        id,
			NPCID:     n.ID,
			Notoriety: 10 + r.Next()*30,
			LastSeen:  w.WorldTime,
		}
	}
}

// seedMercenaries populates a small hireable roster, grounded on the
// teacher's internal/agents/spawner.go roster-generation pattern.
func seedMercenaries(w *World, r *rng.Source, names NameBank) {
	count := 2 + r.Int(4)
	for i := 0; i < count; i++ {
		leaderID := r.UID("npc")
		leader := &NPC{
			ID:    leaderID,
			Name:  names.NPCName(r),
			Role:  "mercenary-captain",
			Alive: true,
			Level: 2 + r.Int(6),
			Class: rng.Pick(r, npcClasses),
		}
		leader.MaxHP = 8 + leader.Level*4
		leader.HP = leader.MaxHP
		w.NPCs[leaderID] = leader

		id := r.UID("mercenary")
		w.Mercenaries[id] = &Mercenary{
			ID:        id,
			Name:      leader.Name + "'s Company",
			LeaderID:  leaderID,
			Strength:  20 + r.Next()*60,
			Price:     50 + r.Next()*200,
			Available: true,
		}
	}
}
