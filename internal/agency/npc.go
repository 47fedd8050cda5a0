// Package agency drives NPC, Party, and Faction self-directed behavior:
// long-running agendas, vendettas, and operations that advance a step each
// Hour tick. Grounded on the teacher's internal/agents/behavior.go
// priority-dispatch pattern (each agent evaluates its needs/goals and picks
// one action per tick) and internal/engine/factions.go's faction-level
// bookkeeping.
package agency

import (
	"github.com/mbutler/war-machine-log/internal/consequence"
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// agendaHandler advances one NPC's agenda by one Hour tick.
type agendaHandler func(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue, n *worldmodel.NPC)

var agendaHandlers = map[worldmodel.AgendaKind]agendaHandler{
	worldmodel.AgendaRevenge:    advanceRevenge,
	worldmodel.AgendaAmbition:   advanceAmbition,
	worldmodel.AgendaProtection: advanceProtection,
	worldmodel.AgendaGreed:      advanceGreed,
	worldmodel.AgendaResearch:   advanceResearch,
	worldmodel.AgendaNexus:      advanceNexus,
	worldmodel.AgendaStronghold: advanceStronghold,
	worldmodel.AgendaRomance:    advanceRomance,
	worldmodel.AgendaBetrayal:   advanceBetrayal,
}

// progressStep is the deterministic per-tick progress gain, scaled by a
// small rng jitter so agendas of the same kind don't complete in lockstep.
func progressStep(r *rng.Source, base float64) float64 {
	return base + r.Next()*base*0.5
}

// TickNPCAgendas advances every living NPC's Agenda by one Hour tick,
// dispatching to the handler for its Kind. NPCs with no Agenda are
// skipped — agenda assignment itself is a separate, rarer process (see
// AssignAgendas).
func TickNPCAgendas(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue) {
	for _, n := range w.NPCs {
		if !n.Alive || n.Agenda == nil {
			continue
		}
		if handler, ok := agendaHandlers[n.Agenda.Kind]; ok {
			handler(w, r, sink, q, n)
		}
	}
}

// advanceRevenge follows spec.md's three revenge cases: a co-located target
// triggers a confrontation attempt; an absent target (dead or missing)
// erodes the grudge's priority until it's abandoned; an elsewhere target
// gives a small chance of committing to pursuit via a delayed
// hunter-arrival consequence.
func advanceRevenge(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue, n *worldmodel.NPC) {
	target := w.NPCs[n.Agenda.TargetID]
	if target == nil || !target.Alive {
		n.Agenda.Priority--
		if n.Agenda.Priority <= 0 {
			n.Agenda = nil
		}
		return
	}

	if target.Location == n.Location {
		n.Agenda.Progress += progressStep(r, 2.0)
		if n.Agenda.Progress >= 100 {
			if r.Chance(0.6) {
				target.Alive = false
				target.DiedAt = w.WorldTime
				sink.Emit(worldmodel.LogEntry{
					Category: worldmodel.LogCategorySocial,
					Message:  n.Name + " exacts revenge upon " + target.Name + ".",
					ActorIDs: []string{n.ID, target.ID},
				})
				n.Agenda = nil
			} else {
				n.Agenda.Progress = 0
			}
		}
		return
	}

	if q != nil && r.Chance(0.02) {
		q.Schedule(&worldmodel.Consequence{
			ID:          r.UID("consequence"),
			Kind:        worldmodel.ConsequenceHunterArrival,
			Priority:    5,
			TurnsLeft:   12 + r.Int(48),
			TargetID:    target.Location,
			SecondaryID: n.ID,
			CreatedAt:   w.WorldTime,
		})
		n.Agenda = nil
	}
}

// advanceAmbition follows spec.md's ambition variant: an NPC seeks to seize
// rulership of its home settlement once unruled and fame-qualified;
// otherwise it keeps accumulating fame toward that threshold.
const ambitionFameThreshold = 20.0

func advanceAmbition(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue, n *worldmodel.NPC) {
	s, hasHome := w.Settlements[n.HomeSettlementID]
	if hasHome && s.RulerID == "" && n.Fame >= ambitionFameThreshold {
		s.RulerID = n.ID
		n.Role = "ruler"
		sink.Emit(worldmodel.LogEntry{
			Category:    worldmodel.LogCategoryPolitical,
			Message:     n.Name + " seizes rulership of " + s.Name + ".",
			ActorIDs:    []string{n.ID},
			LocationIDs: []string{s.ID},
		})
		n.Agenda = nil
		return
	}
	n.Fame += progressStep(r, 1.0)
	n.Agenda.Progress = n.Fame
}

func advanceProtection(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue, n *worldmodel.NPC) {
	n.Agenda.Progress += progressStep(r, 1.5)
	if target, ok := w.Settlements[n.Agenda.TargetID]; ok {
		target.Defense += 0.2
	}
	if n.Agenda.Progress >= 100 {
		n.Agenda.Progress = 0 // protection is an ongoing stance, not a one-shot
	}
}

// advanceGreed follows the theft variant, per spec.md's greed agenda: on
// completion there's a small chance of a theft that raises the NPC's home
// settlement's unrest rather than a guaranteed personal payout.
func advanceGreed(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue, n *worldmodel.NPC) {
	n.Agenda.Progress += progressStep(r, 3.0)
	if n.Agenda.Progress >= 100 {
		if r.Next() < 0.3 {
			if s, ok := w.Settlements[n.HomeSettlementID]; ok {
				s.Unrest += 5 + r.Next()*10
				if s.Unrest > 100 {
					s.Unrest = 100
				}
				sink.Emit(worldmodel.LogEntry{
					Category:    worldmodel.LogCategoryEconomic,
					Message:     n.Name + "'s theft leaves " + s.Name + " seething.",
					ActorIDs:    []string{n.ID},
					LocationIDs: []string{s.ID},
				})
			}
		}
		n.Agenda = nil
	}
}

func advanceResearch(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue, n *worldmodel.NPC) {
	n.Agenda.Progress += progressStep(r, 1.2)
	if n.Agenda.Progress >= 100 {
		spellID := r.UID("spell")
		n.KnownSpells = append(n.KnownSpells, spellID)
		sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategoryMystical,
			Message:  n.Name + " completes years of arcane research.",
			ActorIDs: []string{n.ID},
		})
		n.Agenda = nil
	}
}

func advanceNexus(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue, n *worldmodel.NPC) {
	n.Agenda.Progress += progressStep(r, 1.0)
	if n.Agenda.Progress >= 100 {
		nexus, ok := w.Nexuses[n.Agenda.TargetID]
		if ok && nexus.BoundToID == "" {
			nexus.BoundToID = n.ID
			n.BoundNexusID = nexus.ID
			sink.Emit(worldmodel.LogEntry{
				Category: worldmodel.LogCategoryMystical,
				Message:  n.Name + " binds themself to the " + nexus.Name + ".",
				ActorIDs: []string{n.ID}, LocationIDs: []string{nexus.ID},
			})
		}
		n.Agenda = nil
	}
}

func advanceStronghold(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue, n *worldmodel.NPC) {
	n.Agenda.Progress += progressStep(r, 0.8)
	if n.Agenda.Progress >= 100 {
		id := r.UID("stronghold")
		w.Strongholds[id] = &worldmodel.Stronghold{
			ID: id, Name: n.Name + "'s Keep", OwnerID: n.ID,
			Level: 1, Garrison: 10, BuiltAt: w.WorldTime,
		}
		n.StrongholdID = id
		sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategoryPolitical,
			Message:  n.Name + " completes construction of a stronghold.",
			ActorIDs: []string{n.ID}, LocationIDs: []string{id},
		})
		n.Agenda = nil
	}
}

func advanceRomance(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue, n *worldmodel.NPC) {
	n.Agenda.Progress += progressStep(r, 2.5)
	if n.Agenda.Progress >= 100 {
		target := w.NPCs[n.Agenda.TargetID]
		if target != nil && target.Alive {
			if n.Dynasty == nil {
				n.Dynasty = &worldmodel.DynastyFields{BirthDate: w.WorldTime, Health: 1.0}
			}
			if target.Dynasty == nil {
				target.Dynasty = &worldmodel.DynastyFields{BirthDate: w.WorldTime, Health: 1.0}
			}
			n.Dynasty.SpouseID = target.ID
			target.Dynasty.SpouseID = n.ID
			sink.Emit(worldmodel.LogEntry{
				Category: worldmodel.LogCategorySocial,
				Message:  n.Name + " weds " + target.Name + ".",
				ActorIDs: []string{n.ID, target.ID},
			})
		}
		n.Agenda = nil
	}
}

func advanceBetrayal(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue, n *worldmodel.NPC) {
	n.Agenda.Progress += progressStep(r, 2.0)
	if n.Agenda.Progress >= 100 {
		target := w.NPCs[n.Agenda.TargetID]
		if target != nil {
			n.Relationships = append(n.Relationships, worldmodel.Relationship{
				TargetID: target.ID, Sentiment: -1, Trust: 0,
			})
			sink.Emit(worldmodel.LogEntry{
				Category: worldmodel.LogCategoryPolitical,
				Message:  n.Name + " betrays " + target.Name + ".",
				ActorIDs: []string{n.ID, target.ID},
			})
		}
		n.Agenda = nil
	}
}
