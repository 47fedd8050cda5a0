package worldmodel

import "github.com/mbutler/war-machine-log/internal/hexgrid"

// Army is a faction-raised military force capable of marching between
// settlements and engaging other armies. Grounded on the teacher's
// internal/engine/factions.go raid/conquest machinery, pulled out into its
// own entity since spec.md's Agency/Operations module treats armies as
// first-class, addressable by id from Operation.TargetID.
type Army struct {
	ID        string        `json:"id"`
	FactionID string        `json:"factionId"`
	Strength  float64       `json:"strength"`
	Morale    float64       `json:"morale"`
	Location  hexgrid.Coord `json:"location"`

	Destination *hexgrid.Coord `json:"destination,omitempty"`
	MarchETA    int            `json:"marchEta,omitempty"` // hours remaining

	CommanderID string `json:"commanderId,omitempty"`
	Disbanded   bool   `json:"disbanded,omitempty"`
}
