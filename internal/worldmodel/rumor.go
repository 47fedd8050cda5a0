package worldmodel

// Rumor is a piece of information propagating between settlements,
// gaining or losing Accuracy as it spreads. Grounded on the teacher's
// internal/engine/relationships.go gossip-propagation pattern.
type Rumor struct {
	ID           string   `json:"id"`
	Content      string   `json:"content"`
	SubjectID    string   `json:"subjectId,omitempty"`
	OriginID     string   `json:"originId"` // settlement id where it started
	KnownAtIDs   []string `json:"knownAtIds"` // settlement ids it has reached
	Accuracy     float64  `json:"accuracy"` // 0..1, drifts as it spreads
	Age          int      `json:"age"`      // hours since creation
	Stale        bool     `json:"stale,omitempty"`
}
