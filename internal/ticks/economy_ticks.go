package ticks

import (
	"github.com/mbutler/war-machine-log/internal/economy"
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// applyDeliveryDelta lifts the destination settlement's supply of good by
// one step on caravan delivery, per spec.md's supply/price model.
func applyDeliveryDelta(dest *worldmodel.Settlement, good string) {
	economy.ApplyDelta(dest, good, 1)
}

// caravanSpawnChance is the per-settlement-pair daily chance a new trade
// caravan departs, per spec.md §4.6's Day cadence "Trade caravan spawning".
const caravanSpawnChance = 0.15

// TickCaravanSpawn considers, once per Day, every pair of settlements
// (regardless of faction or disposition) and may spawn a new Caravan
// between them. Grounded on SPEC_FULL.md §4.6 / the teacher's
// internal/economy/goods.go trade-route concept.
func TickCaravanSpawn(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	ids := settlementIDs(w)
	for i, originID := range ids {
		for _, destID := range ids[i+1:] {
			if !r.Chance(caravanSpawnChance) {
				continue
			}
			spawnCaravan(w, r, sink, originID, destID)
		}
	}
}

func settlementIDs(w *worldmodel.World) []string {
	ids := make([]string, 0, len(w.Settlements))
	for id := range w.Settlements {
		ids = append(ids, id)
	}
	return ids
}

func spawnCaravan(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, originID, destID string) {
	origin, ok := w.Settlements[originID]
	if !ok || origin.Destroyed {
		return
	}
	dest, ok := w.Settlements[destID]
	if !ok || dest.Destroyed {
		return
	}
	good := rng.Pick(r, economy.Goods)
	c := &worldmodel.Caravan{
		ID:       r.UID("caravan"),
		OriginID: originID,
		DestID:   destID,
		Location: origin.Coord,
		Goods:    map[string]float64{good: 10 + r.Next()*20},
		Value:    50 + r.Next()*200,
		ETA:      4 + r.Int(20),
	}
	w.Caravans[c.ID] = c
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryEconomic,
		Message:     "A caravan departs " + origin.Name + " bound for " + dest.Name + ".",
		LocationIDs: []string{originID, destID},
	})
}

// townBeatTemplates are flavor log lines spec.md §4.6 calls "town beats":
// small, non-mechanical slice-of-life flavor emitted at most once per
// settlement per Day (on a townBeatChance roll), independent of the Story
// Engine.
var townBeatTemplates = []string{
	" holds a modest market day.",
	" sees a minor dispute settled at the town hall.",
	" repairs a stretch of road after last season's wear.",
	" welcomes a traveling entertainer.",
	" quietly buries its dead.",
}

// townBeatChance is the per-settlement daily chance of a beat firing.
const townBeatChance = 0.25

// TickTownBeats emits, once per Day, a small ambient flavor log for a
// fraction of settlements, per spec.md §4.6.
func TickTownBeats(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, s := range w.Settlements {
		if s.Destroyed || !r.Chance(townBeatChance) {
			continue
		}
		sink.Emit(worldmodel.LogEntry{
			Category:    worldmodel.LogCategorySocial,
			Message:     s.Name + rng.Pick(r, townBeatTemplates),
			LocationIDs: []string{s.ID},
		})
	}
}

// TickDomainTaxation collects, once per Day, each settlement's tax revenue
// into its controlling faction's treasury at Governance.TaxRate, shaped by
// corruption loss. Grounded on SPEC_FULL.md §4.6 / the teacher's
// internal/social.Settlement governance fields.
func TickDomainTaxation(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, s := range w.Settlements {
		if s.Destroyed || s.FactionID == "" {
			continue
		}
		f, ok := w.Factions[s.FactionID]
		if !ok || f.Destroyed {
			continue
		}
		base := float64(s.Population) * 0.002 * s.Governance.TaxRate
		lost := base * s.Governance.Corruption
		collected := base - lost
		if collected <= 0 {
			continue
		}
		f.Treasury += collected
		s.Unrest += s.Governance.TaxRate * 2
		if s.Unrest > 100 {
			s.Unrest = 100
		}
	}
}
