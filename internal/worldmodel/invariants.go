package worldmodel

import (
	"fmt"
	"time"
)

// worldTimeLayout mirrors the layout used by internal/clock and
// internal/ticks; duplicated locally rather than imported since neither
// package is a dependency of worldmodel.
const worldTimeLayout = "2006-01-02T15:04:05"

func parseWorldTime(s string) (time.Time, bool) {
	t, err := time.Parse(worldTimeLayout, s)
	return t, err == nil
}

// CheckInvariants re-validates the quantified invariants spec.md §8 requires
// to hold after every tick, returning one message per violation found (nil
// when the World is consistent). It exists for the stress harness
// (internal/kernel's long-run test) and is not called on the hot tick path:
// subsystems already enforce these invariants as they mutate, so this is a
// belt-and-suspenders audit, not a correctness dependency.
func (w *World) CheckInvariants() []string {
	var problems []string

	for id, n := range w.NPCs {
		if n.Dynasty != nil && n.Dynasty.SpouseID != "" {
			spouse, ok := w.NPCs[n.Dynasty.SpouseID]
			if !ok {
				problems = append(problems, fmt.Sprintf("npc %s spouseId %s does not exist", id, n.Dynasty.SpouseID))
			} else if spouse.Alive {
				if spouse.Dynasty == nil || spouse.Dynasty.SpouseID != id {
					problems = append(problems, fmt.Sprintf("npc %s and spouse %s disagree on marriage", id, n.Dynasty.SpouseID))
				}
			} else if !n.Dynasty.Widowed {
				problems = append(problems, fmt.Sprintf("npc %s spouse %s is dead but npc is not marked widowed", id, n.Dynasty.SpouseID))
			}
		}
		if !n.Alive && n.Location == "" {
			problems = append(problems, fmt.Sprintf("dead npc %s has no final location", id))
		}
	}

	for id, p := range w.Pregnancies {
		start, okStart := parseWorldTime(p.ConceivedAt)
		due, okDue := parseWorldTime(p.DueDate)
		if okStart && okDue {
			if due.Sub(start).Hours() != 270*24 {
				problems = append(problems, fmt.Sprintf("pregnancy %s dueDate is not conceivedAt+270 days", id))
			}
		}
	}
	motherSeen := make(map[string]string)
	for id, p := range w.Pregnancies {
		if prior, ok := motherSeen[p.MotherID]; ok {
			problems = append(problems, fmt.Sprintf("mother %s has two concurrent pregnancies (%s, %s)", p.MotherID, prior, id))
		}
		motherSeen[p.MotherID] = id
	}

	hired := make(map[string]bool)
	for id, r := range w.Retainers {
		if r.LordID == "" {
			continue
		}
		if _, okNPC := w.NPCs[r.LordID]; !okNPC {
			if _, okParty := w.Parties[r.LordID]; !okParty {
				problems = append(problems, fmt.Sprintf("retainer %s employerId %s does not exist", id, r.LordID))
			}
		}
		hired[r.NPCID] = true
	}
	for _, candidateID := range w.RetainerCandidateIDs {
		if hired[candidateID] {
			problems = append(problems, fmt.Sprintf("hired retainer %s still listed as a hire candidate", candidateID))
		}
	}

	for id, a := range w.Armies {
		if a.Strength < 0 {
			problems = append(problems, fmt.Sprintf("army %s has negative strength %f", id, a.Strength))
		}
		if a.Morale < 0 || a.Morale > 12 {
			problems = append(problems, fmt.Sprintf("army %s morale %f out of [0,12]", id, a.Morale))
		}
	}

	unresolved := 0
	for id, t := range w.StoryThreads {
		if t.Resolved && t.Resolution == "" {
			problems = append(problems, fmt.Sprintf("story thread %s marked resolved with no resolution", id))
		}
		if !t.Resolved {
			unresolved++
		}
	}
	if unresolved > unresolvedThreadCap {
		problems = append(problems, fmt.Sprintf("unresolved story thread count %d exceeds cap %d", unresolved, unresolvedThreadCap))
	}

	return problems
}

// unresolvedThreadCap mirrors story.MaxUnresolvedThreads; duplicated here
// (rather than imported) to keep worldmodel free of a dependency on the
// story package, which itself depends on worldmodel.
const unresolvedThreadCap = 8
