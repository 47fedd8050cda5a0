package ticks

import (
	"github.com/mbutler/war-machine-log/internal/hexgrid"
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// TickTravel advances, once per Hour, every party and army with a pending
// Destination one step closer, resolving ETA to zero into arrival and
// rolling a small chance of a random encounter each hour in transit.
// Grounded on SPEC_FULL.md §4.6; no direct teacher analog for party travel
// specifically, generalized from the teacher's army-marching cadence in
// internal/engine/factions.go.
func TickTravel(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, p := range w.Parties {
		if p.Disbanded || p.Destination == nil {
			continue
		}
		advancePartyTravel(w, r, sink, p)
	}
	for _, a := range w.Armies {
		if a.Disbanded || a.Destination == nil {
			continue
		}
		advanceArmyMarch(w, r, sink, a)
	}
}

func advancePartyTravel(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, p *worldmodel.Party) {
	p.TravelETA--
	if p.TravelETA > 0 {
		maybeEncounter(w, r, sink, p)
		return
	}
	p.Location = *p.Destination
	p.Destination = nil
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryExploration,
		Message:     p.Name + " arrives at their destination.",
		ActorIDs:    append([]string{p.ID}, p.MemberIDs...),
	})
}

// maybeEncounter rolls a small per-hour chance of a random encounter for a
// traveling party, scaled by the terrain danger of their current hex.
func maybeEncounter(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, p *worldmodel.Party) {
	hex := w.Grid.Get(p.Location)
	danger := 0.03
	if hex != nil && (hex.Terrain == hexgrid.TerrainMountain || hex.Terrain == hexgrid.TerrainSwamp) {
		danger = 0.06
	}
	if !r.Chance(danger) {
		return
	}
	victimID := weakestMember(w, p)
	if victimID == "" {
		sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategoryExploration,
			Message:  p.Name + " fends off a wandering threat on the road.",
			ActorIDs: []string{p.ID},
		})
		return
	}
	if r.Chance(0.3) {
		if n, ok := w.NPCs[victimID]; ok {
			n.HP -= 1 + r.Int(4)
			if n.HP <= 0 {
				n.Alive = false
				n.DiedAt = w.WorldTime
				p.MemberIDs = removeMember(p.MemberIDs, victimID)
			}
		}
		sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategoryExploration,
			Message:  p.Name + " is waylaid on the road.",
			ActorIDs: []string{p.ID, victimID},
		})
	}
}

func advanceArmyMarch(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, a *worldmodel.Army) {
	a.MarchETA--
	if a.MarchETA > 0 {
		return
	}
	a.Location = *a.Destination
	a.Destination = nil
	sink.Emit(worldmodel.LogEntry{
		Category: worldmodel.LogCategoryMilitary,
		Message:  "An army of " + a.FactionID + " completes its march.",
	})
}

// TickCaravans advances, once per Hour, every in-transit Caravan and
// resolves raid risk from the origin settlement's unrest. Grounded on
// SPEC_FULL.md §4.6, the teacher's internal/economy/goods.go trade-route
// concept generalized into a scheduled entity with its own ETA countdown.
func TickCaravans(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, c := range w.Caravans {
		if c.Delivered || c.Raided {
			continue
		}
		if r.Chance(caravanRaidChance(w, c)) {
			c.Raided = true
			sink.Emit(worldmodel.LogEntry{
				Category:    worldmodel.LogCategoryEconomic,
				Message:     "A caravan bound for " + c.DestID + " is raided.",
				LocationIDs: []string{c.OriginID, c.DestID},
			})
			continue
		}
		c.ETA--
		if c.ETA > 0 {
			continue
		}
		c.Delivered = true
		deliverCaravan(w, c)
		sink.Emit(worldmodel.LogEntry{
			Category:    worldmodel.LogCategoryEconomic,
			Message:     "A caravan arrives at its destination.",
			LocationIDs: []string{c.OriginID, c.DestID},
		})
	}
}

func caravanRaidChance(w *worldmodel.World, c *worldmodel.Caravan) float64 {
	base := 0.01
	if origin, ok := w.Settlements[c.OriginID]; ok {
		base += origin.Unrest / 2000
	}
	return base
}

func deliverCaravan(w *worldmodel.World, c *worldmodel.Caravan) {
	dest, ok := w.Settlements[c.DestID]
	if !ok {
		return
	}
	for good := range c.Goods {
		applyDeliveryDelta(dest, good)
	}
}
