package ticks

import (
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// diseaseSpreadChance is the per-hour chance an infected settlement's
// Disease severity climbs, per spec.md §3's SettlementFlags.Disease field.
const diseaseSpreadChance = 0.2

// diseaseOutbreakChance is the small base per-hour chance a healthy
// settlement contracts a new outbreak, raised up to double as Safety falls.
const diseaseOutbreakChance = 0.002

// TickDisease advances, once per Hour, settlement disease severity:
// existing outbreaks may worsen or burn out, and new outbreaks may ignite
// at any healthy settlement, more readily where safety is poor. Grounded on SPEC_FULL.md §4.6; the
// teacher had no disease model, built directly from the
// SettlementFlags.Disease field spec.md §3 names.
func TickDisease(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, s := range w.Settlements {
		if s.Destroyed {
			continue
		}
		if s.Flags.Disease > 0 {
			advanceOutbreak(w, r, sink, s)
			continue
		}
		risk := diseaseOutbreakChance * (1 + (100-s.Flags.Safety)/100)
		if r.Chance(risk) {
			s.Flags.Disease = 0.1 + r.Next()*0.2
			sink.Emit(worldmodel.LogEntry{
				Category:    worldmodel.LogCategoryDisaster,
				Message:     "Plague breaks out in " + s.Name + ".",
				LocationIDs: []string{s.ID},
			})
		}
	}
}

func advanceOutbreak(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, s *worldmodel.Settlement) {
	if r.Chance(0.3) {
		s.Flags.Disease -= 0.1
		if s.Flags.Disease <= 0 {
			s.Flags.Disease = 0
			sink.Emit(worldmodel.LogEntry{
				Category:    worldmodel.LogCategoryDisaster,
				Message:     "The plague in " + s.Name + " runs its course.",
				LocationIDs: []string{s.ID},
			})
		}
		return
	}
	if !r.Chance(diseaseSpreadChance) {
		return
	}
	s.Flags.Disease += 0.05
	if s.Flags.Disease > 1 {
		s.Flags.Disease = 1
	}
	toll := uint32(float64(s.Population) * s.Flags.Disease * 0.001)
	if toll > s.Population {
		toll = s.Population
	}
	s.Population -= toll
	s.Mood -= 0.2
}

// TickMercenaryContracts advances, once per Hour, outstanding mercenary
// contracts: a small chance each resolves (freeing the company) per
// spec.md §3's Mercenary.ContractID/Available fields. Grounded on the
// teacher's internal/agents/spawner.go roster-generation pattern.
func TickMercenaryContracts(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, m := range w.Mercenaries {
		if m.Available || m.ContractID == "" {
			continue
		}
		if !r.Chance(0.1) {
			continue
		}
		m.ContractID = ""
		m.Available = true
		sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategoryEconomic,
			Message:  m.Name + " completes their contract and returns to the market.",
		})
	}
}

// TickDiplomacy advances, once per Hour, a small chance of a random
// Disposition shift between every pair of non-destroyed factions,
// modeling ambient drift independent of the Agency engine's explicit
// marriage-alliance/inquisition operations. Grounded on the teacher's
// internal/social relationship-decay pattern, generalized to factions.
func TickDiplomacy(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	ids := factionIDs(w)
	for i, aID := range ids {
		for _, bID := range ids[i+1:] {
			if !r.Chance(0.01) {
				continue
			}
			driftDisposition(w, r, aID, bID)
		}
	}
}

func factionIDs(w *worldmodel.World) []string {
	ids := make([]string, 0, len(w.Factions))
	for id, f := range w.Factions {
		if !f.Destroyed {
			ids = append(ids, id)
		}
	}
	return ids
}

func driftDisposition(w *worldmodel.World, r *rng.Source, aID, bID string) {
	a := w.Factions[aID]
	delta := (r.Next() - 0.5) * 0.05
	if a.Dispositions == nil {
		a.Dispositions = make(map[string]worldmodel.Disposition)
	}
	d := a.Dispositions[bID]
	d.Attitude += delta
	if d.Attitude > 1 {
		d.Attitude = 1
	}
	if d.Attitude < -1 {
		d.Attitude = -1
	}
	a.Dispositions[bID] = d
}

// TickRetainers advances, once per Hour, a small chance of loyalty drift
// for every bound Retainer, per spec.md §3's Retainer.Loyalty field.
// Grounded on the teacher's internal/agents/needs.go follower-need
// satisfaction logic.
func TickRetainers(w *worldmodel.World, r *rng.Source) {
	for _, ret := range w.Retainers {
		if !r.Chance(0.15) {
			continue
		}
		lord, ok := w.NPCs[ret.LordID]
		drift := (r.Next() - 0.45) * 0.1
		if ok && !lord.Alive {
			drift -= 0.3
		}
		ret.Loyalty += drift
		if ret.Loyalty > 1 {
			ret.Loyalty = 1
		}
		if ret.Loyalty < 0 {
			ret.Loyalty = 0
		}
	}
}

// TickRumors advances, once per Hour, every unstale Rumor: its Age climbs,
// its Accuracy drifts downward as it garbles in transit, and it has a small
// chance of reaching one more settlement, picked at random from all
// settlements (adjacency is not considered). Grounded on the teacher's internal/engine/relationships.go
// gossip-propagation pattern.
func TickRumors(w *worldmodel.World, r *rng.Source) {
	for _, rm := range w.Rumors {
		if rm.Stale {
			continue
		}
		rm.Age++
		rm.Accuracy -= 0.002
		if rm.Accuracy < 0 {
			rm.Accuracy = 0
		}
		if !r.Chance(0.05) {
			continue
		}
		candidates := settlementIDs(w)
		if len(candidates) == 0 {
			continue
		}
		next := rng.Pick(r, candidates)
		if !containsStr(rm.KnownAtIDs, next) {
			rm.KnownAtIDs = append(rm.KnownAtIDs, next)
		}
	}
}

// TickGuilds advances, once per Hour, a small chance of influence drift for
// every settlement's guilds, scaled by the settlement's prosperity.
// Grounded on SPEC_FULL.md §4.6; the teacher's internal/social.Settlement
// had no guild concept, built from the Guild sub-record spec.md §3 names.
func TickGuilds(w *worldmodel.World, r *rng.Source) {
	for _, s := range w.Settlements {
		if s.Destroyed || len(s.Guilds) == 0 {
			continue
		}
		for i := range s.Guilds {
			g := &s.Guilds[i]
			if !r.Chance(0.1) {
				continue
			}
			delta := (s.Prosperity - 50) / 2000
			g.Influence += delta + (r.Next()-0.5)*0.01
			if g.Influence < 0 {
				g.Influence = 0
			}
			if g.Influence > 1 {
				g.Influence = 1
			}
		}
	}
}
