package worldmodel

// EcologyState tracks regional wildlife/land-health aggregates consumed by
// the ecology tick. Grounded on the teacher's internal/world land Health
// field, widened into its own sub-document so the ecology subsystem has a
// single place to read/write regional state instead of walking every hex.
type EcologyState struct {
	RegionHealth  map[string]float64 `json:"regionHealth"`  // keyed by region/settlement id
	WildlifeLevel map[string]float64 `json:"wildlifeLevel"` // keyed by region/settlement id
	Overharvested []string           `json:"overharvested,omitempty"`
}

// Bloodline is a recorded NPC family lineage, distinct from an individual
// NPC's DynastyFields — this is the family-level record (name, seat,
// founding date) that persists across generations.
type Bloodline struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	FounderID string   `json:"founderId"`
	SeatID    string   `json:"seatId,omitempty"` // settlement or stronghold id
	MemberIDs []string `json:"memberIds"`
	Extinct   bool     `json:"extinct,omitempty"`
}

// Pregnancy tracks a single in-progress gestation. spec.md §3 invariant:
// at most one ongoing pregnancy per mother; DueDate is always exactly 270
// world-days after ConceivedAt.
type Pregnancy struct {
	ID          string `json:"id"`
	MotherID    string `json:"motherId"`
	FatherID    string `json:"fatherId,omitempty"`
	ConceivedAt string `json:"conceivedAt"`
	DueDate     string `json:"dueDate"`
}

// Retainer is a personal follower bound to an NPC (bodyguard, steward,
// apprentice) distinct from party membership. Grounded on the teacher's
// internal/agents/needs.go follower-need satisfaction logic.
type Retainer struct {
	ID       string `json:"id"`
	NPCID    string `json:"npcId"`    // the retainer themself
	LordID   string `json:"lordId"`   // who they serve
	Role     string `json:"role"`
	Loyalty  float64 `json:"loyalty"`
}

// TreasureHoard is an accumulated store of wealth attached to a settlement,
// stronghold, or dungeon, drawn down by raids/taxation and built up by
// production.
type TreasureHoard struct {
	ID       string  `json:"id"`
	OwnerID  string  `json:"ownerId"` // settlement, stronghold, or dungeon id
	Gold     float64 `json:"gold"`
	Gems     float64 `json:"gems"`
	Artifacts []string `json:"artifacts,omitempty"`
}

// NavalUnit is a ship or fleet owned by a faction or settlement, advanced
// on the Hour cadence for sinking risk at sea and the Day cadence for
// strength recovery while docked.
type NavalUnit struct {
	ID        string  `json:"id"`
	OwnerID   string  `json:"ownerId"` // faction or settlement id
	Strength  float64 `json:"strength"`
	Location  string  `json:"location"` // coastal settlement id or "at-sea"
	Sunk      bool    `json:"sunk,omitempty"`
}

// Season is the closed set of calendar seasons driving the weather tick.
type Season string

const (
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Weather is the closed set of daily weather conditions.
type Weather string

const (
	WeatherClear  Weather = "clear"
	WeatherRain   Weather = "rain"
	WeatherStorm  Weather = "storm"
	WeatherSnow   Weather = "snow"
	WeatherDrought Weather = "drought"
	WeatherFog    Weather = "fog"
)

// Calendar tracks the deterministic day/season/weather cycle. Grounded on
// the teacher's internal/engine/seasons.go, reimplemented without the
// dropped internal/weather HTTP client — season and weather are derived
// from world time and the shared RNG only (see SPEC_FULL.md §1 on dropping
// network collaborators).
type Calendar struct {
	Day     int     `json:"day"`    // day-of-year, 1-360 (4 seasons x 90 days)
	Season  Season  `json:"season"`
	Weather Weather `json:"weather"`
}
