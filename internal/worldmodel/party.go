package worldmodel

import "github.com/mbutler/war-machine-log/internal/hexgrid"

// Party is a traveling group of NPCs referenced by id — never embedded —
// so a member leaving one party and joining another is a slice edit, not a
// copy. Grounded on the teacher's internal/agents party-adjacent grouping
// logic in spawner.go, rebuilt as its own entity per spec.md's explicit
// "Parties reference NPCs by id" invariant.
type Party struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	MemberIDs []string      `json:"memberIds"`
	LeaderID  string        `json:"leaderId"`
	Location  hexgrid.Coord `json:"location"`

	Destination *hexgrid.Coord `json:"destination,omitempty"`
	TravelETA   int            `json:"travelEta,omitempty"` // hours remaining

	Gold    float64 `json:"gold"`
	Renown  float64 `json:"renown"`

	Agenda   *PartyAgenda `json:"agenda,omitempty"`
	QuestLog []Quest      `json:"questLog,omitempty"`

	Disbanded bool `json:"disbanded,omitempty"`
}

// PartyAgendaKind is the closed set of party-level long-running goals.
type PartyAgendaKind string

const (
	PartyAgendaVendetta            PartyAgendaKind = "vendetta"
	PartyAgendaAntagonistPursuit   PartyAgendaKind = "antagonist-pursuit"
)

// PartyAgenda is a party's active long-term goal.
type PartyAgenda struct {
	Kind     PartyAgendaKind `json:"kind"`
	TargetID string          `json:"targetId,omitempty"`
	Progress float64         `json:"progress"`
}

// QuestStatus is the closed set of quest lifecycle states.
type QuestStatus string

const (
	QuestOpen      QuestStatus = "open"
	QuestCompleted QuestStatus = "completed"
	QuestFailed    QuestStatus = "failed"
	QuestAbandoned QuestStatus = "abandoned"
)

// Quest is a single entry in a party's quest log.
type Quest struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	Status      QuestStatus `json:"status"`
	TargetID    string      `json:"targetId,omitempty"`
	AssignedAt  string      `json:"assignedAt"`
}
