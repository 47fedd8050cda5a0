package agency

import (
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// operationStep is the deterministic per-tick progress gain for faction
// operations, mirroring progressStep but scaled for the faction cadence
// (operations advance once per Hour tick).
func operationStep(r *rng.Source, base float64) float64 {
	return base + r.Next()*base*0.4
}

// TickFactionOperations advances every faction's in-flight operations by
// one Hour tick, enforcing the invariant that at most one operation of a
// given OperationKind is in flight per faction — AssignOperations is the
// only place new operations are appended, and it checks for an existing
// in-flight operation of the same kind first. Grounded on the teacher's
// internal/engine/factions.go faction-tick loop, generalized from the
// teacher's untyped string-keyed action map to the closed OperationKind
// enum.
func TickFactionOperations(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, f := range w.Factions {
		if f.Destroyed || len(f.ActiveOperations) == 0 {
			continue
		}
		kept := f.ActiveOperations[:0]
		for i := range f.ActiveOperations {
			op := &f.ActiveOperations[i]
			if resolveOperation(w, r, sink, f, op) {
				continue // completed, drop from active list
			}
			kept = append(kept, *op)
		}
		f.ActiveOperations = kept
	}
}

// resolveOperation advances op by one step and returns true if it has
// completed (and should be removed from the faction's active list).
func resolveOperation(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) bool {
	op.Progress += operationStep(r, 8.0)
	if op.TurnsLeft > 0 {
		op.TurnsLeft--
	}
	if op.Progress < 100 && op.TurnsLeft > 0 {
		return false
	}

	chance := op.SuccessChance
	if chance == 0 {
		chance = 0.5 // legacy operations persisted before SuccessChance was tracked
	}
	if !r.Chance(chance) {
		sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategoryPolitical,
			Message:  f.Name + "'s " + string(op.Kind) + " operation fails.",
			ActorIDs: []string{f.ID},
		})
		return true
	}

	switch op.Kind {
	case worldmodel.OpRaid:
		resolveRaid(w, r, sink, f, op)
	case worldmodel.OpExpansion:
		resolveExpansion(w, r, sink, f, op)
	case worldmodel.OpConquest:
		resolveConquest(w, r, sink, f, op)
	case worldmodel.OpResourceGrab:
		resolveResourceGrab(w, r, sink, f, op)
	case worldmodel.OpTradeEmbargo:
		resolveTradeEmbargo(w, r, sink, f, op)
	case worldmodel.OpCrusade:
		resolveCrusade(w, r, sink, f, op)
	case worldmodel.OpPropaganda:
		resolvePropaganda(w, r, sink, f, op)
	case worldmodel.OpAssassination:
		resolveAssassination(w, r, sink, f, op)
	case worldmodel.OpMarriageAlliance:
		resolveMarriageAlliance(w, r, sink, f, op)
	case worldmodel.OpInquisition:
		resolveInquisition(w, r, sink, f, op)
	case worldmodel.OpBlockade:
		resolveBlockade(w, r, sink, f, op)
	case worldmodel.OpRelief:
		resolveRelief(w, r, sink, f, op)
	}
	return true
}

// HasOperation reports whether f already has an in-flight operation of
// kind — callers (the operation-assignment tick) must check this before
// appending a new one.
func HasOperation(f *worldmodel.Faction, kind worldmodel.OperationKind) bool {
	for _, op := range f.ActiveOperations {
		if op.Kind == kind {
			return true
		}
	}
	return false
}

func resolveRaid(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.Settlements[op.TargetID]
	if !ok || target.Destroyed {
		return
	}
	loss := 5 + r.Next()*15
	target.Defense -= loss * 0.5
	if target.Defense < 0 {
		target.Defense = 0
	}
	f.Treasury += loss
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryMilitary,
		Message:     f.Name + " raiders pillage " + target.Name + ".",
		ActorIDs:    []string{f.ID},
		LocationIDs: []string{target.ID},
	})
}

func resolveExpansion(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.Settlements[op.TargetID]
	if !ok || target.FactionID != "" {
		return
	}
	target.FactionID = f.ID
	f.TerritoryIDs = append(f.TerritoryIDs, target.ID)
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryPolitical,
		Message:     f.Name + " extends its rule to " + target.Name + ".",
		ActorIDs:    []string{f.ID},
		LocationIDs: []string{target.ID},
	})
}

func resolveConquest(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.Settlements[op.TargetID]
	if !ok || target.FactionID == f.ID {
		return
	}
	prevOwner := target.FactionID
	target.FactionID = f.ID
	f.TerritoryIDs = append(f.TerritoryIDs, target.ID)
	if owner, ok := w.Factions[prevOwner]; ok {
		owner.TerritoryIDs = removeID(owner.TerritoryIDs, target.ID)
		setDisposition(f, prevOwner, -1, true)
		setDisposition(owner, f.ID, -1, true)
	}
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryMilitary,
		Message:     f.Name + " conquers " + target.Name + ".",
		ActorIDs:    []string{f.ID},
		LocationIDs: []string{target.ID},
	})
}

func resolveResourceGrab(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.Settlements[op.TargetID]
	if !ok {
		return
	}
	for good := range target.Supply {
		target.Supply[good]--
	}
	gain := 20 + r.Next()*40
	f.Treasury += gain
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryEconomic,
		Message:     f.Name + " strips " + target.Name + " of its stockpiles.",
		ActorIDs:    []string{f.ID},
		LocationIDs: []string{target.ID},
	})
}

func resolveTradeEmbargo(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.Factions[op.TargetID]
	if !ok {
		return
	}
	target.Treasury *= 0.9
	setDisposition(f, target.ID, -0.2, false)
	sink.Emit(worldmodel.LogEntry{
		Category: worldmodel.LogCategoryEconomic,
		Message:  f.Name + " imposes a trade embargo on " + target.Name + ".",
		ActorIDs: []string{f.ID, target.ID},
	})
}

func resolveCrusade(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.Factions[op.TargetID]
	if !ok {
		return
	}
	setDisposition(f, target.ID, -1, true)
	setDisposition(target, f.ID, -1, true)
	f.Military *= 0.85
	target.Military *= 0.8
	sink.Emit(worldmodel.LogEntry{
		Category: worldmodel.LogCategoryMilitary,
		Message:  f.Name + " launches a crusade against " + target.Name + ".",
		ActorIDs: []string{f.ID, target.ID},
	})
}

func resolvePropaganda(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.Settlements[op.TargetID]
	if !ok {
		return
	}
	target.Unrest += 5
	f.Influence += 2
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryPolitical,
		Message:     f.Name + " agents spread dissent in " + target.Name + ".",
		ActorIDs:    []string{f.ID},
		LocationIDs: []string{target.ID},
	})
}

func resolveAssassination(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.NPCs[op.TargetID]
	if !ok || !target.Alive {
		return
	}
	target.Alive = false
	target.DiedAt = w.WorldTime
	sink.Emit(worldmodel.LogEntry{
		Category: worldmodel.LogCategoryPolitical,
		Message:  f.Name + " agents assassinate " + target.Name + ".",
		ActorIDs: []string{f.ID, target.ID},
	})
}

func resolveMarriageAlliance(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.Factions[op.TargetID]
	if !ok {
		return
	}
	setDisposition(f, target.ID, 0.6, false)
	setDisposition(target, f.ID, 0.6, false)
	if d := f.Dispositions[target.ID]; d.Attitude > 0.5 {
		d.Treaty = "alliance"
		f.Dispositions[target.ID] = d
	}
	if d := target.Dispositions[f.ID]; d.Attitude > 0.5 {
		d.Treaty = "alliance"
		target.Dispositions[f.ID] = d
	}
	sink.Emit(worldmodel.LogEntry{
		Category: worldmodel.LogCategoryPolitical,
		Message:  f.Name + " seals a marriage alliance with " + target.Name + ".",
		ActorIDs: []string{f.ID, target.ID},
	})
}

func resolveInquisition(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.Settlements[op.TargetID]
	if !ok {
		return
	}
	target.Unrest -= 2
	target.Flags.Safety += 5
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryPolitical,
		Message:     f.Name + " conducts an inquisition in " + target.Name + ".",
		ActorIDs:    []string{f.ID},
		LocationIDs: []string{target.ID},
	})
}

func resolveBlockade(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.Settlements[op.TargetID]
	if !ok {
		return
	}
	for good := range target.Supply {
		target.Supply[good]--
	}
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryMilitary,
		Message:     f.Name + " blockades " + target.Name + ".",
		ActorIDs:    []string{f.ID},
		LocationIDs: []string{target.ID},
	})
}

func resolveRelief(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, f *worldmodel.Faction, op *worldmodel.Operation) {
	target, ok := w.Settlements[op.TargetID]
	if !ok {
		return
	}
	target.Mood += 1
	target.Flags.Disease *= 0.5
	f.Treasury -= 20
	sink.Emit(worldmodel.LogEntry{
		Category:    worldmodel.LogCategoryEconomic,
		Message:     f.Name + " sends relief to " + target.Name + ".",
		ActorIDs:    []string{f.ID},
		LocationIDs: []string{target.ID},
	})
}

func setDisposition(f *worldmodel.Faction, otherID string, attitudeDelta float64, atWar bool) {
	if f.Dispositions == nil {
		f.Dispositions = make(map[string]worldmodel.Disposition)
	}
	d := f.Dispositions[otherID]
	d.Attitude += attitudeDelta
	if d.Attitude > 1 {
		d.Attitude = 1
	}
	if d.Attitude < -1 {
		d.Attitude = -1
	}
	if atWar {
		d.AtWar = true
	}
	f.Dispositions[otherID] = d
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
