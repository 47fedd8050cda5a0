package worldmodel

// Mercenary is a hireable NPC-backed company available for contract work:
// caravan guarding, settlement defense, dungeon clearing. Grounded on the
// teacher's internal/agents/spawner.go roster-generation pattern.
type Mercenary struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	LeaderID   string  `json:"leaderId"` // NPC id
	Strength   float64 `json:"strength"`
	Price      float64 `json:"price"`
	ContractID string  `json:"contractId,omitempty"` // quest/caravan/settlement id, if hired
	Available  bool    `json:"available"`
}
