package ticks

import (
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// xpForNextLevel is the stand-in level-threshold table: spec.md treats the
// BECMI XP/level tables as an external, static lookup outside this
// simulation's scope, so a simple quadratic curve substitutes for the real
// ruleset's numbers without pretending to reproduce them.
func xpForNextLevel(level int) int {
	return 1000 * level * level
}

// TickLevelUps advances, once per Hour, every living NPC whose accumulated
// XP crosses its current level's threshold, raising Level and MaxHP.
// Grounded on SPEC_FULL.md §4.6; no direct teacher analog (the teacher had
// no level concept), built from the NPC.XP/Level fields spec.md §3 names.
func TickLevelUps(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, n := range w.NPCs {
		if !n.Alive {
			continue
		}
		for n.XP >= xpForNextLevel(n.Level) {
			n.Level++
			gain := 4 + r.Int(6)
			n.MaxHP += gain
			n.HP += gain
			sink.Emit(worldmodel.LogEntry{
				Category: worldmodel.LogCategorySocial,
				Message:  n.Name + " reaches level " + itoa(n.Level) + ".",
				ActorIDs: []string{n.ID},
			})
		}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// armyRaiseChance is the small per-hour chance a faction with treasury to
// spare raises a new army, per spec.md §4.7's faction-operations model
// generalized to standing-army upkeep outside any single operation.
const armyRaiseChance = 0.01

// TickArmies advances, once per Hour, faction army-raising (funded from
// treasury) and the marching of any army already en route (delegated to
// TickTravel, which handles both parties and armies uniformly). Grounded
// on the teacher's internal/engine/factions.go raid/conquest machinery.
func TickArmies(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, f := range w.Factions {
		if f.Destroyed || f.Treasury < 500 || f.CapitalID == "" {
			continue
		}
		if !r.Chance(armyRaiseChance) {
			continue
		}
		capital, ok := w.Settlements[f.CapitalID]
		if !ok {
			continue
		}
		cost := 300 + r.Next()*400
		f.Treasury -= cost
		a := &worldmodel.Army{
			ID:        r.UID("army"),
			FactionID: f.ID,
			Strength:  cost / 5,
			Morale:    7 + r.Next()*4, // spec.md §8 invariant: morale in [0,12]
			Location:  capital.Coord,
		}
		w.Armies[a.ID] = a
		f.Military += a.Strength
		sink.Emit(worldmodel.LogEntry{
			Category:    worldmodel.LogCategoryMilitary,
			Message:     f.Name + " raises a new army at " + capital.Name + ".",
			LocationIDs: []string{capital.ID},
		})
	}
}
