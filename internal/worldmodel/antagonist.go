package worldmodel

// Antagonist marks an NPC as the opposing force of one or more
// StoryThreads/Party vendettas, tracked separately from the NPC record so
// "is this NPC currently a villain" survives NPC death/resurrection story
// beats without overloading NPC.Role. Grounded on the teacher's
// internal/engine/perpetuation.go villain-escalation logic.
type Antagonist struct {
	ID          string   `json:"id"`
	NPCID       string   `json:"npcId"`
	ThreadIDs   []string `json:"threadIds,omitempty"`
	Notoriety   float64  `json:"notoriety"`
	Defeated    bool     `json:"defeated,omitempty"`
	DefeatedBy  string   `json:"defeatedBy,omitempty"` // party id

	// LastSeen is the world-day this antagonist's NPC last appeared in a
	// log entry or operation. The daily pruning tick (spec.md §4.12) retires
	// antagonists whose LastSeen is more than 90 world-days in the past.
	LastSeen string `json:"lastSeen,omitempty"`
}
