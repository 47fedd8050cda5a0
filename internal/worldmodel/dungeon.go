package worldmodel

import "github.com/mbutler/war-machine-log/internal/hexgrid"

// Dungeon is an explorable hazard site: a ruin, lair, or tomb. Parties
// exploring a dungeon advance its ExploredDepth on the Turn cadence.
// Grounded on the teacher's internal/agents need-driven exploration
// behavior in behavior.go, given its own entity per spec.md §3.
type Dungeon struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Coord         hexgrid.Coord `json:"coord"`
	Depth         int           `json:"depth"`
	ExploredDepth int           `json:"exploredDepth"`
	Danger        float64       `json:"danger"`
	TreasureValue float64       `json:"treasureValue"`
	Cleared       bool          `json:"cleared,omitempty"`
	OccupantID    string        `json:"occupantId,omitempty"` // antagonist or monster faction, if any
}
