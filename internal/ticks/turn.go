// Package ticks implements the Turn/Hour/Day cadence subsystem ticks
// spec.md §4.6 catalogs: each function has the shape
// tickX(world, rng, ...) -> logs emitted via sink, following the shared
// Subsystem Tick Contract (deterministic, idempotent-when-idle, no
// wall-clock work, skip-and-warn on precondition failure). Grounded
// file-by-file on SPEC_FULL.md §4.6's teacher-grounding table.
package ticks

import (
	"github.com/mbutler/war-machine-log/internal/hexgrid"
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// roomKinds is the closed set a dungeon room resolves to on exploration.
var roomKinds = []string{"empty", "lair", "treasure", "trap", "shrine", "passage"}

// TickDungeonExploration advances, once per Turn, every idle party located
// in a dungeon by one room: rooms resolve to a kind under rng, treasure
// found updates the dungeon's TreasureValue drawdown, and encounters spawn
// from the dungeon's danger rating. No direct teacher analog exists for
// dungeon crawling (SPEC_FULL.md §4.6 table); grounded on the generic
// hex/dungeon model in internal/world/hex.go generalized to a turn-cadence
// exploration loop.
func TickDungeonExploration(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, p := range w.Parties {
		if p.Disbanded || p.Destination != nil {
			continue
		}
		dungeon := dungeonAtCoord(w, p.Location)
		if dungeon == nil || dungeon.Cleared {
			continue
		}
		exploreRoom(w, r, sink, p, dungeon)
	}
}

// dungeonAtCoord finds the dungeon rooted at coord, if any.
func dungeonAtCoord(w *worldmodel.World, coord hexgrid.Coord) *worldmodel.Dungeon {
	for _, d := range w.Dungeons {
		if d.Coord == coord {
			return d
		}
	}
	return nil
}

func exploreRoom(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, p *worldmodel.Party, d *worldmodel.Dungeon) {
	if d.ExploredDepth >= d.Depth {
		d.Cleared = true
		sink.Emit(worldmodel.LogEntry{
			Category:    worldmodel.LogCategoryExploration,
			Message:     p.Name + " has fully explored " + d.Name + ".",
			ActorIDs:    append([]string{p.ID}, p.MemberIDs...),
			LocationIDs: []string{d.ID},
		})
		return
	}

	d.ExploredDepth++
	room := rng.Pick(r, roomKinds)

	switch room {
	case "treasure":
		take := d.TreasureValue * (0.1 + r.Next()*0.2)
		d.TreasureValue -= take
		p.Gold += take
		sink.Emit(worldmodel.LogEntry{
			Category:    worldmodel.LogCategoryExploration,
			Message:     p.Name + " uncovers treasure within " + d.Name + ".",
			ActorIDs:    append([]string{p.ID}, p.MemberIDs...),
			LocationIDs: []string{d.ID},
		})
	case "lair":
		resolveLairEncounter(w, r, sink, p, d)
	case "trap":
		resolveTrap(w, r, sink, p, d)
	default:
		// empty/shrine/passage rooms pass without incident; no log per
		// room to avoid flooding the chronicle with routine footsteps.
	}
}

func resolveLairEncounter(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, p *worldmodel.Party, d *worldmodel.Dungeon) {
	partyStrength := partyPower(w, p)
	monsterStrength := d.Danger * (0.8 + r.Next()*0.4)

	if partyStrength >= monsterStrength {
		sink.Emit(worldmodel.LogEntry{
			Category:    worldmodel.LogCategoryExploration,
			Message:     p.Name + " clears a lair within " + d.Name + ".",
			ActorIDs:    append([]string{p.ID}, p.MemberIDs...),
			LocationIDs: []string{d.ID},
		})
		p.Renown += 3
		return
	}

	// Outmatched: the weakest member falls.
	if len(p.MemberIDs) == 0 {
		return
	}
	victimID := weakestMember(w, p)
	if victimID == "" {
		return
	}
	if n, ok := w.NPCs[victimID]; ok {
		n.Alive = false
		n.DiedAt = w.WorldTime
	}
	p.MemberIDs = removeMember(p.MemberIDs, victimID)
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryExploration,
		Message:     p.Name + " is ambushed in " + d.Name + " and loses a companion.",
		ActorIDs:    []string{p.ID, victimID},
		LocationIDs: []string{d.ID},
	})
}

func resolveTrap(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, p *worldmodel.Party, d *worldmodel.Dungeon) {
	if !r.Chance(0.3) {
		return
	}
	victimID := weakestMember(w, p)
	if victimID == "" {
		return
	}
	n := w.NPCs[victimID]
	if n == nil {
		return
	}
	n.HP -= 2 + r.Int(6)
	if n.HP <= 0 {
		n.Alive = false
		n.DiedAt = w.WorldTime
		p.MemberIDs = removeMember(p.MemberIDs, victimID)
	}
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryExploration,
		Message:     p.Name + " triggers a trap in " + d.Name + ".",
		ActorIDs:    []string{p.ID, victimID},
		LocationIDs: []string{d.ID},
	})
}

func partyPower(w *worldmodel.World, p *worldmodel.Party) float64 {
	total := 0.0
	for _, id := range p.MemberIDs {
		if n, ok := w.NPCs[id]; ok && n.Alive {
			total += float64(n.Level) * 10
		}
	}
	return total
}

func weakestMember(w *worldmodel.World, p *worldmodel.Party) string {
	var weakestID string
	weakestLevel := -1
	for _, id := range p.MemberIDs {
		n, ok := w.NPCs[id]
		if !ok || !n.Alive {
			continue
		}
		if weakestLevel < 0 || n.Level < weakestLevel {
			weakestLevel = n.Level
			weakestID = id
		}
	}
	return weakestID
}

func removeMember(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
