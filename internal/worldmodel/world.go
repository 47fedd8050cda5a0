package worldmodel

import (
	"time"

	"github.com/mbutler/war-machine-log/internal/hexgrid"
)

// World is the single persisted document: every entity family lives as a
// flat top-level field, mirroring the teacher's internal/engine.Simulation
// struct's all-state-on-one-struct shape (the teacher kept state in one
// struct backed by SQLite tables; here the whole struct round-trips to a
// single world.json file per spec.md's persistence requirement).
type World struct {
	SchemaVersion int    `json:"schemaVersion"`
	Seed          string `json:"seed"`

	// Archetype is the thematic preset chosen at seeding (spec.md §3's
	// World essential field), purely flavor: it never gates subsystem
	// behavior, only the genesis log kernel.EmitGenesis writes.
	Archetype string `json:"archetype"`

	WorldTime string   `json:"worldTime"` // ISO-ish, advances by turnMinutes
	Turn      uint64   `json:"turn"`
	Calendar  Calendar `json:"calendar"`

	// LastRealTickAt is the real wall-clock instant (RFC3339) the last turn
	// was processed, distinct from WorldTime's in-fiction clock. A fresh
	// seed or a snapshot loaded with this field blank is stamped with "now"
	// by kernel.New; cmd/worldsim uses it to size a startup catch-up run to
	// actual elapsed downtime instead of a fixed window.
	LastRealTickAt string `json:"lastRealTickAt"`

	Grid *hexgrid.Grid `json:"grid"`

	Settlements  map[string]*Settlement  `json:"settlements"`
	Factions     map[string]*Faction     `json:"factions"`
	NPCs         map[string]*NPC         `json:"npcs"`
	Parties      map[string]*Party       `json:"parties"`
	Armies       map[string]*Army        `json:"armies"`
	Strongholds  map[string]*Stronghold  `json:"strongholds"`
	Nexuses      map[string]*Nexus       `json:"nexuses"`
	Dungeons     map[string]*Dungeon     `json:"dungeons"`
	Caravans     map[string]*Caravan     `json:"caravans"`
	Rumors       map[string]*Rumor       `json:"rumors"`
	Mercenaries  map[string]*Mercenary   `json:"mercenaries"`
	StoryThreads map[string]*StoryThread `json:"storyThreads"`
	Antagonists  map[string]*Antagonist  `json:"antagonists"`

	Bloodlines  map[string]*Bloodline     `json:"bloodlines"`
	Retainers   map[string]*Retainer      `json:"retainers"`
	Treasures   map[string]*TreasureHoard `json:"treasures"`
	NavalUnits  map[string]*NavalUnit     `json:"navalUnits"`
	Ecology     EcologyState              `json:"ecology"`
	Pregnancies map[string]*Pregnancy     `json:"pregnancies"`

	// RetainerCandidateIDs lists NPC ids currently available for hire as
	// retainers; an id is removed the moment it is hired (spec.md §3
	// invariant: "a retainer is hired at most once").
	RetainerCandidateIDs []string `json:"retainerCandidateIds"`

	ConsequenceQueue []*Consequence `json:"consequenceQueue"`
	Log              []LogEntry     `json:"log"`

	LogSequence         uint64 `json:"logSequence"`
	ConsequenceSequence uint64 `json:"consequenceSequence"`

	RNGState      [4]uint64 `json:"rngState"`
	RNGUIDCounter uint64    `json:"rngUidCounter"`
}

// CurrentSchemaVersion is bumped whenever World's on-disk shape changes in
// a way Normalize must backfill for.
const CurrentSchemaVersion = 1

// NewEmpty returns a World with every map initialized, ready for seeding.
func NewEmpty() *World {
	return &World{
		SchemaVersion: CurrentSchemaVersion,
		Settlements:   make(map[string]*Settlement),
		Factions:      make(map[string]*Faction),
		NPCs:          make(map[string]*NPC),
		Parties:       make(map[string]*Party),
		Armies:        make(map[string]*Army),
		Strongholds:   make(map[string]*Stronghold),
		Nexuses:       make(map[string]*Nexus),
		Dungeons:      make(map[string]*Dungeon),
		Caravans:      make(map[string]*Caravan),
		Rumors:        make(map[string]*Rumor),
		Mercenaries:   make(map[string]*Mercenary),
		StoryThreads:  make(map[string]*StoryThread),
		Antagonists:   make(map[string]*Antagonist),
		Bloodlines:    make(map[string]*Bloodline),
		Retainers:     make(map[string]*Retainer),
		Treasures:     make(map[string]*TreasureHoard),
		NavalUnits:    make(map[string]*NavalUnit),
		Pregnancies:   make(map[string]*Pregnancy),
		Ecology: EcologyState{
			RegionHealth:  make(map[string]float64),
			WildlifeLevel: make(map[string]float64),
		},
	}
}

// NextLogSequence increments and returns the log sequence counter.
func (w *World) NextLogSequence() uint64 {
	w.LogSequence++
	return w.LogSequence
}

// NextConsequenceSequence increments and returns the consequence sequence
// counter, used to break priority ties FIFO.
func (w *World) NextConsequenceSequence() uint64 {
	w.ConsequenceSequence++
	return w.ConsequenceSequence
}

// Append adds a log entry, stamping it with the next sequence number, the
// current world time, the real wall-clock instant of emission, and the
// world's seed (spec's persisted log fields). RealTime is the one place
// this otherwise wall-clock-free package reads the system clock; scenario
// replays compare log streams with RealTime ignored for exactly this
// reason.
func (w *World) Append(entry LogEntry) {
	entry.Sequence = w.NextLogSequence()
	entry.WorldTime = w.WorldTime
	entry.RealTime = time.Now().UTC().Format(time.RFC3339Nano)
	entry.Seed = w.Seed
	w.Log = append(w.Log, entry)
}
