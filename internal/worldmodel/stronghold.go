package worldmodel

import "github.com/mbutler/war-machine-log/internal/hexgrid"

// Stronghold is a fortress, tower, or keep built and owned by an NPC who
// completed a "stronghold" Agenda. Grounded on the teacher's
// internal/engine/settlement_lifecycle.go construction-timer pattern.
type Stronghold struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	OwnerID  string        `json:"ownerId"`
	Coord    hexgrid.Coord `json:"coord"`
	Level    int           `json:"level"`
	Garrison float64       `json:"garrison"`
	Treasure float64       `json:"treasure"`
	BuiltAt  string        `json:"builtAt"`
	Ruined   bool          `json:"ruined,omitempty"`
}

// Nexus is a locus of magical power an NPC may bind to via a "nexus"
// Agenda, yielding a recurring income/power stream. Grounded on the
// teacher's internal/phi mystical-field concept, generalized away from
// golden-ratio flavor into a plain magical-site entity fitting a BECMI-style
// fantasy world (see DESIGN.md for the phi-package drop rationale).
type Nexus struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Coord     hexgrid.Coord `json:"coord"`
	BoundToID string        `json:"boundToId,omitempty"` // NPC id, empty if unclaimed
	Power     float64       `json:"power"`
	Stability float64       `json:"stability"` // decays if untended; triggers consequences below threshold
}
