package ticks

import (
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// TickEcology advances, once per Hour, each tracked region's health and
// wildlife level toward or away from equilibrium, and records regions as
// overharvested once wildlife falls too low. Grounded on the teacher's
// internal/world land-Health field, generalized into the dedicated
// EcologyState sub-document.
func TickEcology(w *worldmodel.World, r *rng.Source) {
	eco := &w.Ecology
	for region, health := range eco.RegionHealth {
		recovery := (80 - health) * 0.001
		eco.RegionHealth[region] = clamp(health+recovery+(r.Next()-0.5)*0.2, 0, 100)
	}
	for region, level := range eco.WildlifeLevel {
		recovery := (60 - level) * 0.002
		next := clamp(level+recovery+(r.Next()-0.5)*0.3, 0, 100)
		eco.WildlifeLevel[region] = next
		if next < 15 && !containsStr(eco.Overharvested, region) {
			eco.Overharvested = append(eco.Overharvested, region)
		} else if next >= 15 {
			eco.Overharvested = removeStr(eco.Overharvested, region)
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func containsStr(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

func removeStr(ss []string, s string) []string {
	out := ss[:0]
	for _, x := range ss {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}

// agingStepPerHour is the base amount a dynasty-bearing NPC's
// DynastyFields.Health decays by ambient aging each hour (scaled by a
// random factor of 1-2), per spec.md §3's dynasty fields. Aging accrues in
// small fractional steps on the Hour cadence rather than once per day.
const agingStepPerHour = 0.002

// TickDynastyAging advances, once per Hour, the Health of every NPC
// carrying DynastyFields, and marks an NPC dead of old age once Health
// reaches zero. Bloodline records are not touched. Grounded on the
// teacher's internal/agents aging-adjacent need decay, generalized to the
// DynastyFields sub-record.
func TickDynastyAging(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, n := range w.NPCs {
		if !n.Alive || n.Dynasty == nil {
			continue
		}
		n.Dynasty.Health -= agingStepPerHour * (1 + r.Next())
		if n.Dynasty.Health <= 0 {
			n.Alive = false
			n.DiedAt = w.WorldTime
			sink.Emit(worldmodel.LogEntry{
				Category: worldmodel.LogCategorySocial,
				Message:  n.Name + " dies of old age.",
				ActorIDs: []string{n.ID},
			})
		}
	}
}

// TickTreasureEffects advances, once per Hour, a small chance that a
// TreasureHoard holding at least 500 gold attracts a rumor of its location, per spec.md
// §3's TreasureHoard entity. Grounded on SPEC_FULL.md §4.6; no direct
// teacher analog for hoards specifically.
func TickTreasureEffects(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, t := range w.Treasures {
		if t.Gold < 500 || !r.Chance(0.01) {
			continue
		}
		rum := &worldmodel.Rumor{
			ID:         r.UID("rumor"),
			Content:    "whispers of a hidden hoard",
			SubjectID:  t.ID,
			OriginID:   t.OwnerID,
			KnownAtIDs: []string{t.OwnerID},
			Accuracy:   0.4 + r.Next()*0.3,
		}
		w.Rumors[rum.ID] = rum
		sink.Emit(worldmodel.LogEntry{
			Category:    worldmodel.LogCategoryEconomic,
			Message:     "Rumor spreads of a hidden hoard near " + t.OwnerID + ".",
			LocationIDs: []string{t.OwnerID},
		})
	}
}

// TickNaval advances, once per Hour, every NavalUnit not currently sunk:
// a unit at sea has a small chance of sinking. Units are not moved; a
// unit's Location changes only outside this tick. Grounded on SPEC_FULL.md
// §4.6; no direct teacher analog for naval units.
func TickNaval(w *worldmodel.World, r *rng.Source) {
	for _, u := range w.NavalUnits {
		if u.Sunk || u.Location != "at-sea" {
			continue
		}
		if r.Chance(0.005) {
			u.Sunk = true
			u.Strength = 0
		}
	}
}

// TickNavalDaily resolves, once per Day, ambient upkeep for every NavalUnit
// stationed at a settlement: a small strength recovery while docked.
// Grounded on SPEC_FULL.md §4.6.
func TickNavalDaily(w *worldmodel.World, r *rng.Source) {
	for _, u := range w.NavalUnits {
		if u.Sunk || u.Location == "at-sea" {
			continue
		}
		u.Strength += 1 + r.Next()*2
	}
}
