package worldmodel

import "github.com/mbutler/war-machine-log/internal/hexgrid"

// Settlement is a populated place: village, town, or city. Grounded on the
// teacher's internal/social.Settlement, generalized from the teacher's
// fixed tier constants to hexgrid.SettlementSize and given explicit
// closed sub-records (Governance, Guilds) instead of loose fields.
type Settlement struct {
	ID     string                  `json:"id"`
	Name   string                  `json:"name"`
	Coord  hexgrid.Coord           `json:"coord"`
	Size   hexgrid.SettlementSize  `json:"size"`

	Population uint32 `json:"population"`
	Prosperity float64 `json:"prosperity"` // 0..100
	Unrest     float64 `json:"unrest"`     // 0..100
	Defense    float64 `json:"defense"`

	// Mood is the settlement's collective disposition, per spec.md §3
	// ("mood (−5..5)"), nudged by the town-beat and consequence-analyzer
	// ticks on battles, weddings, and scandals.
	Mood float64 `json:"mood"`

	// Supply is per-good stock level on the spec's −3..4 scale (shortage to
	// glut), consumed by the trade and town-beat ticks. PriceTrend tracks
	// each good's recent price direction for the same ticks to narrate.
	Supply     map[string]int     `json:"supply,omitempty"`
	PriceTrend map[string]float64 `json:"priceTrend,omitempty"`

	FactionID string `json:"factionId,omitempty"`
	RulerID   string `json:"rulerId,omitempty"`

	Governance Governance `json:"governance"`

	Market   *Market   `json:"market,omitempty"`
	Guilds   []Guild   `json:"guilds,omitempty"`

	Flags SettlementFlags `json:"flags"`

	FoundedAt string `json:"foundedAt"`
	Destroyed bool   `json:"destroyed,omitempty"`
}

// SettlementFlags collects the boolean/scalar status markers spec.md §3
// lists alongside Settlement: {isPort, contested, controlledBy, disease,
// prosperity, safety, unrest, ruler}. Prosperity, unrest, and ruler already
// have dedicated Settlement fields (Prosperity, Unrest, RulerID); the
// remainder live here since they are genuinely boolean/occasional rather
// than always-present scalars.
type SettlementFlags struct {
	IsPort     bool    `json:"isPort,omitempty"`
	Contested  bool    `json:"contested,omitempty"`
	Disease    float64 `json:"disease,omitempty"` // 0..1 infection severity, 0 = healthy
	Safety     float64 `json:"safety"`             // 0..100, patrol/garrison coverage
}

// GovernanceForm is the closed set of settlement rule structures.
type GovernanceForm string

const (
	GovernanceMonarchy  GovernanceForm = "monarchy"
	GovernanceCouncil   GovernanceForm = "council"
	GovernanceTheocracy GovernanceForm = "theocracy"
	GovernanceAnarchy   GovernanceForm = "anarchy"
	GovernanceOccupied  GovernanceForm = "occupied"
)

// Governance captures a settlement's civic structure and taxation.
type Governance struct {
	Form       GovernanceForm `json:"form"`
	TaxRate    float64        `json:"taxRate"`
	Corruption float64        `json:"corruption"`
	LawLevel   float64        `json:"lawLevel"`
}

// Market tracks a settlement's goods economy. Grounded on the teacher's
// internal/economy/goods.go table-driven good-price model.
type Market struct {
	Prices map[string]float64 `json:"prices"`
	Stock  map[string]float64 `json:"stock"`
}

// Guild is a professional/trade organization headquartered at a
// settlement.
type Guild struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Trade    string `json:"trade"`
	MemberIDs []string `json:"memberIds,omitempty"`
	Influence float64 `json:"influence"`
}
