// Package worldevent implements the World Event Processor (§4.9): the
// central function that turns a significant discrete happening (death,
// battle, raid, betrayal, rescue, ...) into witness memories, faction
// reputation shifts, and (optionally) a new story thread. Grounded on the
// teacher's Simulation.createSettlementMemories and the witness loop in
// TickMinute's death handling, generalized from "Tier 2 agents only" (the
// teacher's LLM-cognition gate) to "all alive NPCs with nonzero memory
// capacity" since this redesign has no cognition-tier gate to reuse.
package worldevent

import (
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/story"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// Kind is the closed set of significant happenings the processor handles.
type Kind string

const (
	KindDeath        Kind = "death"
	KindBattle       Kind = "battle"
	KindRaid         Kind = "raid"
	KindBetrayal     Kind = "betrayal"
	KindRescue       Kind = "rescue"
	KindAssassination Kind = "assassination"
	KindWedding      Kind = "wedding"
)

// memoryCategories maps an event Kind to the MemoryCategory witnesses and
// participants record.
var memoryCategories = map[Kind]worldmodel.MemoryCategory{
	KindDeath:         worldmodel.MemoryLostLovedOne,
	KindBattle:        worldmodel.MemoryWitnessedViolence,
	KindRaid:          worldmodel.MemoryWronged,
	KindBetrayal:      worldmodel.MemoryBetrayed,
	KindRescue:        worldmodel.MemoryWasSaved,
	KindAssassination: worldmodel.MemoryCommittedViolence,
	KindWedding:       worldmodel.MemoryTriumphed,
}

// Event describes one significant happening for the processor to digest.
type Event struct {
	Kind        Kind
	ActorIDs    []string // primary participants, e.g. [perpetrator, victim]
	LocationID  string   // settlement id, for witness lookup and reputation
	Magnitude   float64  // 0..1, scales memory intensity and reputation delta
	Description string   // short human-readable summary, used as the classifier input
}

// Process records witness memories, adjusts faction reputations, and may
// spawn a story thread for ev. It does not emit a log entry itself — the
// call site already did, per spec.md §4.9 ("Follow-up logs at the call
// site").
func Process(w *worldmodel.World, r *rng.Source, ev Event) {
	category, ok := memoryCategories[ev.Kind]
	if !ok {
		category = worldmodel.MemoryWronged
	}

	recordParticipantMemories(w, ev, category)
	recordWitnessMemories(w, ev, category)
	adjustFactionReputation(w, ev)
	maybeSpawnThread(w, r, ev)
}

func recordParticipantMemories(w *worldmodel.World, ev Event, category worldmodel.MemoryCategory) {
	for i, id := range ev.ActorIDs {
		n, ok := w.NPCs[id]
		if !ok {
			continue
		}
		var target string
		for j, other := range ev.ActorIDs {
			if j != i {
				target = other
				break
			}
		}
		n.Memories = append(n.Memories, worldmodel.Memory{
			Category:  category,
			TargetID:  target,
			Content:   ev.Description,
			Intensity: 3 + ev.Magnitude*7,
			WorldTime: w.WorldTime,
		})
	}
}

// recordWitnessMemories gives every other alive NPC at the event's
// location a lower-intensity witnessed-violence-style memory, per spec.md
// §4.9 "witnesses' memories (append an entry with category, target,
// intensity proportional to magnitude and proximity)".
func recordWitnessMemories(w *worldmodel.World, ev Event, category worldmodel.MemoryCategory) {
	if ev.LocationID == "" {
		return
	}
	isActor := make(map[string]bool, len(ev.ActorIDs))
	for _, id := range ev.ActorIDs {
		isActor[id] = true
	}
	for _, n := range w.NPCs {
		if !n.Alive || isActor[n.ID] || n.Location != ev.LocationID {
			continue
		}
		n.Memories = append(n.Memories, worldmodel.Memory{
			Category:  worldmodel.MemoryWitnessedViolence,
			Content:   ev.Description,
			Intensity: 1 + ev.Magnitude*3,
			WorldTime: w.WorldTime,
		})
	}
}

// adjustFactionReputation nudges the attitude every faction with a
// witnessing presence at ev.LocationID holds toward the acting NPC's
// faction, per spec.md §4.9 "Faction reputation adjustments per
// witnessed/unwitnessed rules": unwitnessed (no LocationID) events skip
// this step entirely.
func adjustFactionReputation(w *worldmodel.World, ev Event) {
	if ev.LocationID == "" || len(ev.ActorIDs) == 0 {
		return
	}
	actor, ok := w.NPCs[ev.ActorIDs[0]]
	if !ok || actor.FactionID == "" {
		return
	}
	settlement, ok := w.Settlements[ev.LocationID]
	if !ok || settlement.FactionID == "" || settlement.FactionID == actor.FactionID {
		return
	}
	witness, ok := w.Factions[settlement.FactionID]
	if !ok {
		return
	}
	delta := -0.1 * ev.Magnitude
	if ev.Kind == KindRescue || ev.Kind == KindWedding {
		delta = 0.1 * ev.Magnitude
	}
	if witness.Dispositions == nil {
		witness.Dispositions = make(map[string]worldmodel.Disposition)
	}
	d := witness.Dispositions[actor.FactionID]
	d.Attitude += delta
	if d.Attitude > 1 {
		d.Attitude = 1
	}
	if d.Attitude < -1 {
		d.Attitude = -1
	}
	witness.Dispositions[actor.FactionID] = d
}

// maybeSpawnThread runs the event's description through the Story
// Classifier so major world events, not just their log entries, can seed
// narrative threads even when the caller's log message alone wouldn't have
// matched a keyword (e.g. structured events raised without a matching
// log line).
func maybeSpawnThread(w *worldmodel.World, r *rng.Source, ev Event) {
	if ev.Description == "" {
		return
	}
	story.Classify(w, r, worldmodel.LogEntry{
		Message:     ev.Description,
		ActorIDs:    ev.ActorIDs,
		LocationIDs: nonEmpty(ev.LocationID),
	})
}

func nonEmpty(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}
