package story

import (
	"github.com/mbutler/war-machine-log/internal/consequence"
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// beatChance is the small per-hour probability a living thread advances,
// per spec.md §4.8 ("with small probability").
const beatChance = 0.2

// resolveFromClimaxChance is the small chance an in-climax thread resolves
// even without hitting tension 10, per spec.md §4.8.
const resolveFromClimaxChance = 0.1

// TickThreads advances every unresolved StoryThread by one Hour tick: with
// small probability it gains a contextual beat and +1 tension, crosses
// phase thresholds, and may resolve. Grounded on SPEC_FULL.md §4.8; no
// direct teacher analog (see DESIGN.md).
func TickThreads(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, q *consequence.Queue) {
	for _, t := range w.StoryThreads {
		if t.Resolved {
			if t.Phase == worldmodel.PhaseResolution {
				t.Phase = worldmodel.PhaseAftermath
			}
			continue
		}
		if !r.Chance(beatChance) {
			continue
		}
		advanceBeat(w, r, t)
		advancePhase(w, r, t, sink, q)
	}
}

func advanceBeat(w *worldmodel.World, r *rng.Source, t *worldmodel.StoryThread) {
	family := t.Type.Family()
	pool := beatTemplates[family]
	if len(pool) == 0 {
		return
	}
	hunter, target := actorNames(w, t.ActorIDs)
	place := locationName(w, t.LocationIDs)
	beat := fillTemplate(rng.Pick(r, pool), hunter, target, place)

	if t.Context != nil {
		beat = appendContextFragment(r, t, beat)
	}

	t.Beats = append(t.Beats, beat)
	t.UpdatedAt = w.WorldTime
	t.Tension += 1
}

// appendContextFragment optionally tacks on a motivation-, theme-, or
// relationship-derived fragment per spec.md §4.8.
func appendContextFragment(r *rng.Source, t *worldmodel.StoryThread, beat string) string {
	if !r.Chance(0.4) {
		return beat
	}
	ctx := t.Context
	switch {
	case len(ctx.Relationships) > 0 && r.Chance(0.33):
		for _, descriptor := range ctx.Relationships {
			return beat + " Their bond remains " + descriptor + "."
		}
	case len(ctx.Motivations) > 0 && r.Chance(0.5):
		for actorID, motivation := range ctx.Motivations {
			_ = actorID
			return beat + " Driven still by " + motivation + "."
		}
	case len(ctx.Themes) > 0:
		return beat + " The theme of " + ctx.Themes[0] + " deepens."
	}
	return beat
}

// advancePhase applies spec.md §4.8's threshold state machine and, on
// resolution, picks an outcome and enqueues a settlement-change
// consequence sized by the outcome's sentiment.
func advancePhase(w *worldmodel.World, r *rng.Source, t *worldmodel.StoryThread, sink *logsink.Sink, q *consequence.Queue) {
	switch t.Phase {
	case worldmodel.PhaseInciting:
		if t.Tension >= 5 {
			t.Phase = worldmodel.PhaseRising
		}
	case worldmodel.PhaseRising:
		if t.Tension >= 8 {
			t.Phase = worldmodel.PhaseClimax
		}
	case worldmodel.PhaseClimax:
		if t.Tension >= 10 || r.Chance(resolveFromClimaxChance) {
			resolve(w, r, t, sink, q)
		}
	}
}

func resolve(w *worldmodel.World, r *rng.Source, t *worldmodel.StoryThread, sink *logsink.Sink, q *consequence.Queue) {
	outcome := "an uncertain end"
	if len(t.PotentialOutcomes) > 0 {
		outcome = rng.Pick(r, t.PotentialOutcomes)
	}
	t.Resolution = outcome
	t.Resolved = true
	t.Phase = worldmodel.PhaseResolution
	t.UpdatedAt = w.WorldTime

	sink.Emit(worldmodel.LogEntry{
		Category:    familyLogCategory(t.Type.Family()),
		Message:     t.Title + " concludes: " + outcome + ".",
		ActorIDs:    t.ActorIDs,
		LocationIDs: t.LocationIDs,
		ThreadID:    t.ID,
	})

	magnitude := outcomeMagnitude(outcome)
	if len(t.LocationIDs) > 0 {
		q.Schedule(&worldmodel.Consequence{
			ID:        r.UID("consequence"),
			Kind:      worldmodel.ConsequenceSettlementShift,
			Priority:  4,
			TurnsLeft: 1 + r.Int(6),
			TargetID:  t.LocationIDs[0],
			Payload:   map[string]float64{"mood": magnitude},
			CreatedAt: w.WorldTime,
		})
	}
}

// outcomeMagnitude gives a rough positive/negative weight to an outcome
// string for the settlement-mood consequence; good-sounding outcomes lift
// mood, grim ones depress it.
func outcomeMagnitude(outcome string) float64 {
	positive := []string{"victory", "boon", "joyous", "arrives", "fades", "forged", "reconciliation", "exposed"}
	for _, p := range positive {
		if containsWord(outcome, p) {
			return 1
		}
	}
	return -1
}

func containsWord(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}

func familyLogCategory(f worldmodel.ThreadFamily) worldmodel.LogCategory {
	switch f {
	case worldmodel.FamilyConflict:
		return worldmodel.LogCategoryMilitary
	case worldmodel.FamilyDiscovery:
		return worldmodel.LogCategoryExploration
	case worldmodel.FamilySocial:
		return worldmodel.LogCategorySocial
	case worldmodel.FamilySurvival:
		return worldmodel.LogCategoryDisaster
	case worldmodel.FamilyIntrigue:
		return worldmodel.LogCategoryPolitical
	case worldmodel.FamilySupernatural:
		return worldmodel.LogCategoryMystical
	default:
		return worldmodel.LogCategorySocial
	}
}

// PruneThreads removes resolved threads whose last update is more than
// maxAgeDays world-days old, per spec.md §4.12. ageDays receives a
// thread's UpdatedAt and returns its age in days; the kernel supplies this
// since only it knows the calendar/world-time parsing convention.
func PruneThreads(w *worldmodel.World, ageDays func(worldTime string) float64, maxAgeDays float64) {
	for id, t := range w.StoryThreads {
		if !t.Resolved {
			continue
		}
		if ageDays(t.UpdatedAt) > maxAgeDays {
			delete(w.StoryThreads, id)
		}
	}
}
