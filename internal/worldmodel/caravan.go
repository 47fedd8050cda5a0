package worldmodel

import "github.com/mbutler/war-machine-log/internal/hexgrid"

// Caravan is a scheduled trade run between two settlements, spawned on the
// Day cadence and advanced on the Hour cadence. Grounded on the teacher's
// internal/engine/market.go trade-route logic.
type Caravan struct {
	ID          string        `json:"id"`
	OriginID    string        `json:"originId"`
	DestID      string        `json:"destId"`
	Location    hexgrid.Coord `json:"location"`
	Goods       map[string]float64 `json:"goods"`
	Value       float64       `json:"value"`
	ETA         int           `json:"eta"` // hours remaining
	Raided      bool          `json:"raided,omitempty"`
	Delivered   bool          `json:"delivered,omitempty"`
	OwnerID     string        `json:"ownerId,omitempty"` // merchant NPC or guild
}
