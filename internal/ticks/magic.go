package ticks

import (
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// nexusDecayPerHour is the Stability a bound Nexus loses every Hour, per
// spec.md §3's "decays if untended" note on Nexus.Stability.
const nexusDecayPerHour = 0.3

// nexusFlareThreshold is the Stability floor below which an untended Nexus
// risks a flare consequence.
const nexusFlareThreshold = 20.0

// TickNexusIncome advances, once per Hour, every bound Nexus: its owner
// gains Reputation equal to 1% of the Nexus's Power and its Stability
// decays, spiking a flare event below threshold. Grounded on SPEC_FULL.md §4.6; the
// teacher's internal/phi mystical-field concept generalized to a plain
// magical-site entity (see DESIGN.md for why phi's golden-ratio math was
// dropped rather than the mystical-site concept itself).
func TickNexusIncome(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, n := range w.Nexuses {
		if n.BoundToID == "" {
			continue
		}
		owner, ok := w.NPCs[n.BoundToID]
		if !ok || !owner.Alive {
			n.BoundToID = ""
			continue
		}
		owner.Reputation += n.Power * 0.01

		n.Stability -= nexusDecayPerHour
		if n.Stability < 0 {
			n.Stability = 0
		}
		if n.Stability < nexusFlareThreshold && r.Chance(0.05) {
			flare := n.Power * (0.5 + r.Next())
			owner.HP -= int(flare / 10)
			sink.Emit(worldmodel.LogEntry{
				Category: worldmodel.LogCategoryMystical,
				Message:  n.Name + " flares unstably, scorching " + owner.Name + ".",
				ActorIDs: []string{owner.ID},
			})
			n.Stability += 15
		}
	}
}

// TickSpellcasting advances, once per Hour, research-agenda NPCs who roll a
// small chance of learning a new spell from the candidate pool, per
// spec.md §4.7's Agenda "research" progression. Grounded on
// internal/agency/npc.go's progress-to-100 pattern, specialized for the
// research kind's KnownSpells side effect.
func TickSpellcasting(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, n := range w.NPCs {
		if !n.Alive || n.Agenda == nil || n.Agenda.Kind != worldmodel.AgendaResearch {
			continue
		}
		if !r.Chance(0.08) {
			continue
		}
		spell := rng.Pick(r, spellPool)
		if containsSpell(n.KnownSpells, spell) {
			continue
		}
		n.KnownSpells = append(n.KnownSpells, spell)
		sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategoryMystical,
			Message:  n.Name + " masters the spell " + spell + ".",
			ActorIDs: []string{n.ID},
		})
	}
}

var spellPool = []string{
	"ember dart", "silent step", "ward of thorns", "mending touch",
	"chain lightning", "veil of shadow", "stone skin", "far speech",
}

func containsSpell(known []string, spell string) bool {
	for _, s := range known {
		if s == spell {
			return true
		}
	}
	return false
}
