package consequence

import (
	"strings"

	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// Analyze implements the Consequence Analyzer (§4.10): given a log entry it
// enqueues zero or more deferred consequences via q, with fixed keyword
// weights and the shared rng supplying every probabilistic decision, per
// spec.md's "explicitly probabilistic and MUST be seeded via the shared
// rng". Grounded on the Gardener's diagnostic posture
// (internal/gardener/decide.go's threshold-driven catalog), reimplemented
// deterministically.
func Analyze(w *worldmodel.World, r *rng.Source, q *Queue, entry worldmodel.LogEntry) {
	msg := strings.ToLower(entry.Message)

	analyzeSettlementMood(w, r, q, entry, msg)
	analyzeRelationshipShift(w, r, q, entry, msg)
	analyzeHunterArrival(w, r, q, entry, msg)
}

// moodKeywords maps a keyword to the settlement-mood delta spec.md §4.10
// calls out ("battles/weddings/scandals near a named settlement").
var moodKeywords = map[string]float64{
	"battle": -1.5, "raid": -1.5, "pillage": -1, "conquers": -1,
	"wedding": 1, "weds": 1, "festival": 0.5,
	"scandal": -1, "plague": -1, "famine": -1,
	"relief": 1, "victory": 1,
}

func analyzeSettlementMood(w *worldmodel.World, r *rng.Source, q *Queue, entry worldmodel.LogEntry, msg string) {
	if len(entry.LocationIDs) == 0 {
		return
	}
	var delta float64
	matched := false
	for kw, d := range moodKeywords {
		if strings.Contains(msg, kw) {
			delta += d
			matched = true
		}
	}
	if !matched || !r.Chance(0.6) {
		return
	}
	q.Schedule(&worldmodel.Consequence{
		ID:        r.UID("consequence"),
		Kind:      worldmodel.ConsequenceSettlementShift,
		Priority:  3,
		TurnsLeft: 1 + r.Int(12),
		TargetID:  entry.LocationIDs[0],
		Payload:   map[string]float64{"mood": delta},
		CreatedAt: w.WorldTime,
	})
}

// relationshipKeywords flag entries describing a two-actor social event:
// betrayal/rescue/romance shift the pair's relationship sentiment per
// spec.md §4.10.
var relationshipKeywords = map[string]float64{
	"betrays": -0.6, "revenge": -0.6, "rescues": 0.5, "saves": 0.5,
	"weds": 0.8, "courts": 0.4,
}

func analyzeRelationshipShift(w *worldmodel.World, r *rng.Source, q *Queue, entry worldmodel.LogEntry, msg string) {
	if len(entry.ActorIDs) < 2 {
		return
	}
	var delta float64
	matched := false
	for kw, d := range relationshipKeywords {
		if strings.Contains(msg, kw) {
			delta += d
			matched = true
		}
	}
	if !matched {
		return
	}
	q.Schedule(&worldmodel.Consequence{
		ID:          r.UID("consequence"),
		Kind:        worldmodel.ConsequenceRelationship,
		Priority:    2,
		TurnsLeft:   1,
		TargetID:    entry.ActorIDs[0],
		SecondaryID: entry.ActorIDs[1],
		Payload:     map[string]float64{"delta": delta},
		CreatedAt:   w.WorldTime,
	})
}

// analyzeHunterArrival spawns a delayed hunter-arrival consequence when a
// pursuit-flavored entry names a destination, per spec.md §4.10 "Spawn
// delayed events (e.g., a hunter arriving at a location 12-36 hours
// later)".
func analyzeHunterArrival(w *worldmodel.World, r *rng.Source, q *Queue, entry worldmodel.LogEntry, msg string) {
	if !strings.Contains(msg, "pursuit") && !strings.Contains(msg, "hunts down") {
		return
	}
	if len(entry.ActorIDs) == 0 || len(entry.LocationIDs) == 0 {
		return
	}
	hours := 12 + r.Int(25)
	q.Schedule(&worldmodel.Consequence{
		ID:          r.UID("consequence"),
		Kind:        worldmodel.ConsequenceHunterArrival,
		Priority:    5,
		TurnsLeft:   hours * 6, // hours -> turns at turnMinutes=10
		TargetID:    entry.LocationIDs[0],
		SecondaryID: entry.ActorIDs[0],
		CreatedAt:   w.WorldTime,
	})
}
