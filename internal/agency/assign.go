package agency

import (
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// agendaPool is the closed set of agenda kinds an idle NPC may pick up,
// grounded on spec.md §4.7's catalog.
var agendaPool = []worldmodel.AgendaKind{
	worldmodel.AgendaRevenge, worldmodel.AgendaAmbition, worldmodel.AgendaProtection,
	worldmodel.AgendaGreed, worldmodel.AgendaResearch, worldmodel.AgendaRomance,
	worldmodel.AgendaBetrayal,
}

// AssignAgendas gives agenda-less living NPCs a small per-hour chance of
// picking up a new long-term goal, per spec.md §4.7 ("each alive NPC with
// agendas acts with small probability per hour" — assignment itself is the
// rarer, separate process TickNPCAgendas's doc comment refers to).
// Nexus/stronghold agendas are handled separately by AssignAdvancedAgendas
// since they require level gates the generic pool doesn't enforce.
func AssignAgendas(w *worldmodel.World, r *rng.Source) {
	for _, n := range w.NPCs {
		if !n.Alive || n.Agenda != nil {
			continue
		}
		if !r.Chance(0.01) {
			continue
		}
		kind := rng.Pick(r, agendaPool)
		n.Agenda = newAgenda(w, r, n, kind)
	}
	AssignAdvancedAgendas(w, r)
}

// AssignAdvancedAgendas grants the nexus agenda to high-level casters and
// the stronghold agenda to level-9+ NPCs, per spec.md §4.7's level gates on
// "research... high-level casters may spawn a nexus agenda" and
// "stronghold: for level-9+ only".
func AssignAdvancedAgendas(w *worldmodel.World, r *rng.Source) {
	for _, n := range w.NPCs {
		if !n.Alive || n.Agenda != nil {
			continue
		}
		if n.Level >= 9 && n.StrongholdID == "" && r.Chance(0.005) {
			n.Agenda = &worldmodel.Agenda{Kind: worldmodel.AgendaStronghold, Priority: 5}
			continue
		}
		if isCasterClass(n.Class) && n.Level >= 7 && n.BoundNexusID == "" && r.Chance(0.005) {
			if target := pickUnboundNexus(w, r); target != "" {
				n.Agenda = &worldmodel.Agenda{Kind: worldmodel.AgendaNexus, TargetID: target, Priority: 5}
			}
		}
	}
}

func isCasterClass(class string) bool {
	return class == "magic-user" || class == "cleric" || class == "elf"
}

func pickUnboundNexus(w *worldmodel.World, r *rng.Source) string {
	var ids []string
	for id, n := range w.Nexuses {
		if n.BoundToID == "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return ""
	}
	return rng.Pick(r, ids)
}

func newAgenda(w *worldmodel.World, r *rng.Source, n *worldmodel.NPC, kind worldmodel.AgendaKind) *worldmodel.Agenda {
	a := &worldmodel.Agenda{Kind: kind, Priority: 1 + r.Int(5)}
	switch kind {
	case worldmodel.AgendaRevenge, worldmodel.AgendaBetrayal:
		if target := pickOtherLivingNPC(w, r, n.ID); target != "" {
			a.TargetID = target
		}
	case worldmodel.AgendaRomance:
		if target := pickOtherLivingNPC(w, r, n.ID); target != "" {
			a.TargetID = target
		}
	case worldmodel.AgendaProtection:
		if n.HomeSettlementID != "" {
			a.TargetID = n.HomeSettlementID
		}
	}
	return a
}

func pickOtherLivingNPC(w *worldmodel.World, r *rng.Source, excludeID string) string {
	var ids []string
	for id, n := range w.NPCs {
		if id != excludeID && n.Alive {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return ""
	}
	return rng.Pick(r, ids)
}

// operationFocus maps a faction's Kind to the spec.md §4.7 focus category
// gating which operations it spawns: "pious -> crusade/inquisition,
// martial -> blockade/assassination, trade -> embargo/relief".
func operationFocus(kind worldmodel.FactionKind) string {
	switch kind {
	case worldmodel.FactionTheocracy, worldmodel.FactionCult:
		return "pious"
	case worldmodel.FactionBanditClan:
		return "martial"
	case worldmodel.FactionGuildState:
		return "trade"
	default:
		return "martial"
	}
}

var focusOperations = map[string][]worldmodel.OperationKind{
	"pious":  {worldmodel.OpCrusade, worldmodel.OpInquisition, worldmodel.OpPropaganda},
	"martial": {worldmodel.OpBlockade, worldmodel.OpAssassination, worldmodel.OpRaid, worldmodel.OpConquest},
	"trade":  {worldmodel.OpTradeEmbargo, worldmodel.OpRelief, worldmodel.OpResourceGrab, worldmodel.OpExpansion},
}

// AssignOperations lets every undestroyed faction spawn at most one new
// operation per Day tick, gated by focus and by the "at most one in-flight
// operation per kind" invariant §4.7 states. Resources are reserved (not
// returned on failure) per the policy clause.
func AssignOperations(w *worldmodel.World, r *rng.Source) {
	for _, f := range w.Factions {
		if f.Destroyed || !r.Chance(0.15) {
			continue
		}
		focus := operationFocus(f.Kind)
		candidates := focusOperations[focus]
		if len(candidates) == 0 {
			continue
		}
		kind := rng.Pick(r, candidates)
		if HasOperation(f, kind) {
			continue
		}
		target := pickOperationTarget(w, r, f, kind)
		if target == "" {
			continue
		}
		cost := 30 + r.Next()*70
		if f.Treasury < cost {
			continue
		}
		f.Treasury -= cost
		f.ActiveOperations = append(f.ActiveOperations, worldmodel.Operation{
			ID:            r.UID("op"),
			Kind:          kind,
			TargetID:      target,
			StartedAt:     w.WorldTime,
			TurnsLeft:     6 + r.Int(18), // world-hours, per spec.md §4.7 "fixed completion delay"
			SuccessChance: successChance(f, kind, secretKinds[kind]),
			Secret:        secretKinds[kind],
		})
	}
}

// secretKinds marks operation kinds spec.md's "secret flag" treats as
// covert by nature — the ones that would tip off a target if broadcast.
var secretKinds = map[worldmodel.OperationKind]bool{
	worldmodel.OpAssassination: true,
	worldmodel.OpInquisition:   true,
}

// successChance derives an operation's odds from faction power (Military,
// normalized against a nominal baseline) and a standing casus belli bonus,
// per spec.md §4.7, clamped to a sane 5%-95% band.
func successChance(f *worldmodel.Faction, kind worldmodel.OperationKind, secret bool) float64 {
	chance := 0.4 + f.Military/200
	if f.CasusBelli != "" {
		chance += 0.15
	}
	if secret {
		chance -= 0.1
	}
	if chance < 0.05 {
		chance = 0.05
	}
	if chance > 0.95 {
		chance = 0.95
	}
	return chance
}

func pickOperationTarget(w *worldmodel.World, r *rng.Source, f *worldmodel.Faction, kind worldmodel.OperationKind) string {
	switch kind {
	case worldmodel.OpAssassination:
		var ids []string
		for id, n := range w.NPCs {
			if n.Alive && n.FactionID != f.ID {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return ""
		}
		return rng.Pick(r, ids)
	case worldmodel.OpTradeEmbargo, worldmodel.OpCrusade, worldmodel.OpMarriageAlliance:
		var ids []string
		for id := range f.Dispositions {
			if other, ok := w.Factions[id]; ok && !other.Destroyed {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return ""
		}
		return rng.Pick(r, ids)
	case worldmodel.OpExpansion:
		var ids []string
		for id, s := range w.Settlements {
			if s.FactionID == "" && !s.Destroyed {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return ""
		}
		return rng.Pick(r, ids)
	default:
		var ids []string
		for id, s := range w.Settlements {
			if s.FactionID != f.ID && !s.Destroyed {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return ""
		}
		return rng.Pick(r, ids)
	}
}
