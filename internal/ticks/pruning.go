package ticks

import (
	"time"

	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/story"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

const timeLayout = "2006-01-02T15:04:05"

// worldTimeAgeDays parses a stamp in the scheduler's ISO-ish WorldTime
// layout against now and returns the age in fractional world-days, or 0 if
// the stamp is empty or unparsable (treated as fresh rather than
// immediately eligible for pruning).
func worldTimeAgeDays(now time.Time) func(string) float64 {
	return func(stamp string) float64 {
		if stamp == "" {
			return 0
		}
		t, err := time.Parse(timeLayout, stamp)
		if err != nil {
			return 0
		}
		return now.Sub(t).Hours() / 24
	}
}

// maxResolvedThreadAgeDays, maxAntagonistIdleDays, maxStaleNPCIdleDays,
// maxDistantFameCap, maxRumorAgeHours are the pruning thresholds spec.md
// §4.12 names.
const (
	maxResolvedThreadAgeDays = 30.0
	maxAntagonistIdleDays    = 90.0
	maxStaleNPCIdleDays      = 90.0
	staleNPCFameCeiling      = 10.0
	staleNPCMemoryCeiling    = 5
	maxRumorAgeHours         = 24 * 14
)

// TickPrune runs once per Day (spec.md §4.12 "Tick-complete" cadence, bound
// to the Day boundary rather than every turn to keep pruning cheap):
// resolved story threads older than 30 world-days are dropped, defeated
// antagonists and those unseen for 90 world-days retire, dead NPCs with low
// fame/memory who died more than 90 world-days ago are forgotten, and stale
// rumors are marked.
// Grounded on the teacher's Simulation.TickWeek event-trim pattern in
// internal/engine/simulation.go.
func TickPrune(w *worldmodel.World, sink *logsink.Sink) {
	now, err := time.Parse(timeLayout, w.WorldTime)
	if err != nil {
		return
	}
	ageDays := worldTimeAgeDays(now)

	story.PruneThreads(w, ageDays, maxResolvedThreadAgeDays)
	pruneAntagonists(w, ageDays)
	pruneStaleNPCs(w, ageDays)
	pruneRumors(w)
	sink.Prune(20000)
}

func pruneAntagonists(w *worldmodel.World, ageDays func(string) float64) {
	for id, a := range w.Antagonists {
		if !a.Defeated && ageDays(a.LastSeen) <= maxAntagonistIdleDays {
			continue
		}
		delete(w.Antagonists, id)
	}
}

func pruneStaleNPCs(w *worldmodel.World, ageDays func(string) float64) {
	for id, n := range w.NPCs {
		if n.Alive || n.Fame > staleNPCFameCeiling || len(n.Memories) > staleNPCMemoryCeiling {
			continue
		}
		if ageDays(n.DiedAt) <= maxStaleNPCIdleDays {
			continue
		}
		delete(w.NPCs, id)
	}
}

func pruneRumors(w *worldmodel.World) {
	for id, rm := range w.Rumors {
		if rm.Age > maxRumorAgeHours {
			rm.Stale = true
		}
		if rm.Stale && rm.Accuracy < 0.1 {
			delete(w.Rumors, id)
		}
	}
}
