package agency

import (
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// TickPartyAgendas advances every non-disbanded party's Agenda by one Hour
// tick. Grounded on the teacher's internal/agents/spawner.go grouping
// logic, generalized to the Party entity's own Agenda/QuestLog fields.
func TickPartyAgendas(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, p := range w.Parties {
		if p.Disbanded || p.Agenda == nil {
			continue
		}
		switch p.Agenda.Kind {
		case worldmodel.PartyAgendaVendetta:
			advanceVendetta(w, r, sink, p)
		case worldmodel.PartyAgendaAntagonistPursuit:
			advanceAntagonistPursuit(w, r, sink, p)
		}
	}
}

func advanceVendetta(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, p *worldmodel.Party) {
	p.Agenda.Progress += progressStep(r, 2.0)
	if p.Agenda.Progress < 100 {
		return
	}
	target := w.NPCs[p.Agenda.TargetID]
	if target != nil && target.Alive {
		target.Alive = false
		target.DiedAt = w.WorldTime
		p.Renown += 5
		sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategorySocial,
			Message:  p.Name + " settles their vendetta against " + target.Name + ".",
			ActorIDs: append([]string{target.ID, p.ID}, p.MemberIDs...),
		})
	}
	p.Agenda = nil
}

func advanceAntagonistPursuit(w *worldmodel.World, r *rng.Source, sink *logsink.Sink, p *worldmodel.Party) {
	p.Agenda.Progress += progressStep(r, 1.5)
	if p.Agenda.Progress < 100 {
		return
	}
	ant := w.Antagonists[p.Agenda.TargetID]
	if ant != nil && !ant.Defeated {
		ant.Defeated = true
		ant.DefeatedBy = p.ID
		p.Renown += 15
		npc := w.NPCs[ant.NPCID]
		name := ant.NPCID
		if npc != nil {
			name = npc.Name
			npc.Alive = false
			npc.DiedAt = w.WorldTime
		}
		sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategoryPolitical,
			Message:  p.Name + " brings down the antagonist " + name + ".",
			ActorIDs: append([]string{p.ID}, p.MemberIDs...),
		})
	}
	p.Agenda = nil
}
