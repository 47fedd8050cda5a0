// Package kernel wires the Scheduler's turn/hour/day callbacks to every
// subsystem tick, the Consequence Queue's handlers, and the Story/World
// Event pipeline that consumes the log sink's fan-out. Grounded on the
// teacher's cmd/worldsim/main.go top-level wiring (it built a
// *engine.Engine directly in main; here the equivalent assembly is pulled
// into its own package so cmd/worldsim stays a thin entry point) and the
// Simulation.TickMinute/TickHour/TickWeek cadence dispatch order.
package kernel

import (
	"context"
	"fmt"
	"time"

	"github.com/mbutler/war-machine-log/internal/agency"
	"github.com/mbutler/war-machine-log/internal/clock"
	"github.com/mbutler/war-machine-log/internal/consequence"
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/story"
	"github.com/mbutler/war-machine-log/internal/ticks"
	"github.com/mbutler/war-machine-log/internal/worldevent"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
	"github.com/mbutler/war-machine-log/internal/worldstore"
)

// maxConsequenceDrainPerHour bounds how many deferred consequences a single
// Hour tick resolves, per spec.md's bounded-fairness invariant.
const maxConsequenceDrainPerHour = 32

// Kernel owns the live World, its shared rng.Source, and every collaborator
// the tick callbacks close over. Exactly one Kernel exists per running
// simulation process.
type Kernel struct {
	World *worldmodel.World
	RNG   *rng.Source
	Sink  *logsink.Sink
	Queue *consequence.Queue
	Sched *clock.Scheduler
	Store *worldstore.Store
}

// New assembles a Kernel around an already-loaded-or-seeded World: restores
// the shared rng.Source from the World's persisted state, wires the log
// sink's subscribers (story classifier, consequence analyzer), registers
// every consequence handler, and builds the Scheduler with the full
// turn/hour/day callback dispatch table.
func New(w *worldmodel.World, store *worldstore.Store, turnMinutes, hourTurns, dayHours int) *Kernel {
	k := &Kernel{
		World: w,
		RNG:   rng.Restore(w.RNGState, w.RNGUIDCounter),
		Sink:  logsink.New(w),
		Store: store,
	}
	if w.LastRealTickAt == "" {
		w.LastRealTickAt = time.Now().UTC().Format(time.RFC3339)
	}

	k.Queue = consequence.New(w)
	k.registerConsequenceHandlers()

	k.Sink.Subscribe(func(entry worldmodel.LogEntry) {
		story.Classify(w, k.RNG, entry)
	})
	k.Sink.Subscribe(func(entry worldmodel.LogEntry) {
		consequence.Analyze(w, k.RNG, k.Queue, entry)
	})

	k.Sched = clock.New(w, turnMinutes, hourTurns, dayHours, clock.Callbacks{
		OnTurn:         k.onTurn,
		OnHour:         k.onHour,
		OnDay:          k.onDay,
		OnTickComplete: k.onTickComplete,
	})
	return k
}

// EmitGenesis writes the World's opening chronicle entries: one System log
// announcing the Archetype, and one Social log per settlement "stirring to
// life", per spec.md §8 scenario A. It is a no-op if the World already has
// log entries (a loaded, already-running world), so it is safe to call
// unconditionally right after New.
func (k *Kernel) EmitGenesis() {
	if len(k.World.Log) > 0 {
		return
	}
	k.Sink.Emit(worldmodel.LogEntry{
		Category: worldmodel.LogCategorySystem,
		Message:  "The chronicle begins: " + k.World.Archetype,
	})
	for _, s := range k.World.Settlements {
		k.Sink.Emit(worldmodel.LogEntry{
			Category:    worldmodel.LogCategorySocial,
			Message:     s.Name + " stirs to life.",
			LocationIDs: []string{s.ID},
		})
	}
}

// recoverTick runs fn and converts any panic into a System-category log
// naming which subsystem faulted, per spec.md §7 ("Uncaught exceptions in
// any subsystem are caught at the tick dispatch boundary, converted to
// system-warning logs, and the tick proceeds"). Every subsystem call in
// onTurn/onHour/onDay goes through this single dispatch-boundary helper
// rather than each subsystem handling its own panics, so the recovery
// policy lives in exactly one place.
func (k *Kernel) recoverTick(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			k.Sink.Emit(worldmodel.LogEntry{
				Category: worldmodel.LogCategorySystem,
				Message:  fmt.Sprintf("subsystem %q faulted and was skipped this tick: %v", name, r),
			})
		}
	}()
	fn()
}

// onTurn runs every Turn, the scheduler's finest cadence: dungeon
// exploration is the one subsystem spec.md §4.6 pins to this frequency.
func (k *Kernel) onTurn(w *worldmodel.World) {
	k.recoverTick("dungeon-exploration", func() { ticks.TickDungeonExploration(w, k.RNG, k.Sink) })
}

// onHour runs every hourTurns-th turn, dispatching the bulk of the
// simulation's subsystems in a fixed order: the world ticks first, then
// NPC/party/faction agency, then story threads.
func (k *Kernel) onHour(w *worldmodel.World) {
	k.recoverTick("external-edit-check", func() { k.checkExternalEdit(w) })
	k.recoverTick("travel", func() { ticks.TickTravel(w, k.RNG, k.Sink) })
	k.recoverTick("caravans", func() { ticks.TickCaravans(w, k.RNG, k.Sink) })
	k.recoverTick("consequences", func() { k.Queue.Tick(maxConsequenceDrainPerHour) })
	k.recoverTick("nexus-income", func() { ticks.TickNexusIncome(w, k.RNG, k.Sink) })
	k.recoverTick("spellcasting", func() { ticks.TickSpellcasting(w, k.RNG, k.Sink) })
	k.recoverTick("level-ups", func() { ticks.TickLevelUps(w, k.RNG, k.Sink) })
	k.recoverTick("armies", func() { ticks.TickArmies(w, k.RNG, k.Sink) })
	k.recoverTick("disease", func() { ticks.TickDisease(w, k.RNG, k.Sink) })
	k.recoverTick("mercenary-contracts", func() { ticks.TickMercenaryContracts(w, k.RNG, k.Sink) })
	k.recoverTick("diplomacy", func() { ticks.TickDiplomacy(w, k.RNG, k.Sink) })
	k.recoverTick("retainers", func() { ticks.TickRetainers(w, k.RNG) })
	k.recoverTick("rumors", func() { ticks.TickRumors(w, k.RNG) })
	k.recoverTick("guilds", func() { ticks.TickGuilds(w, k.RNG) })
	k.recoverTick("ecology", func() { ticks.TickEcology(w, k.RNG) })
	k.recoverTick("dynasty-aging", func() { ticks.TickDynastyAging(w, k.RNG, k.Sink) })
	k.recoverTick("treasure-effects", func() { ticks.TickTreasureEffects(w, k.RNG, k.Sink) })
	k.recoverTick("naval", func() { ticks.TickNaval(w, k.RNG) })

	k.recoverTick("npc-agendas", func() { agency.TickNPCAgendas(w, k.RNG, k.Sink, k.Queue) })
	k.recoverTick("party-agendas", func() { agency.TickPartyAgendas(w, k.RNG, k.Sink) })
	k.recoverTick("faction-operations", func() { agency.TickFactionOperations(w, k.RNG, k.Sink) })
	k.recoverTick("agenda-assignment", func() { agency.AssignAgendas(w, k.RNG) })

	k.recoverTick("story-threads", func() { story.TickThreads(w, k.RNG, k.Sink, k.Queue) })
}

// checkExternalEdit polls the world file's mtime before the rest of the
// hour tick runs and, if another process touched it out of band, reloads
// and reinitializes in place: w's fields are overwritten from the reloaded
// document (every existing holder of the *World pointer — Sink, Queue,
// Sched — observes the replacement automatically since none of them copy
// the struct) and the rng.Source is rebuilt from the reloaded persisted
// state. Per spec.md §5, this runs at the start of the tick, never
// mid-tick.
func (k *Kernel) checkExternalEdit(w *worldmodel.World) {
	if k.Store == nil {
		return
	}
	modified, err := k.Store.ExternallyModified()
	if err != nil {
		k.Sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategorySystem,
			Message:  "external edit check failed: " + err.Error(),
		})
		return
	}
	if !modified {
		return
	}
	reloaded, err := k.Store.Load()
	if err != nil {
		k.Sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategorySystem,
			Message:  "world.json changed externally but reload failed: " + err.Error(),
		})
		return
	}
	*w = *reloaded
	k.RNG = rng.Restore(w.RNGState, w.RNGUIDCounter)
	k.Sink.Emit(worldmodel.LogEntry{
		Category: worldmodel.LogCategorySystem,
		Message:  "world.json was modified externally; reloaded and resumed from the new document",
	})
}

// onDay runs every dayHours-th hour: calendar advance happens first since
// several of the remaining day ticks (town beats, legendary spikes) are
// flavor text that reads naturally dated to the just-advanced calendar.
func (k *Kernel) onDay(w *worldmodel.World) {
	k.recoverTick("calendar", func() { ticks.TickCalendar(w, k.RNG, k.Sink) })
	k.recoverTick("caravan-spawn", func() { ticks.TickCaravanSpawn(w, k.RNG, k.Sink) })
	k.recoverTick("town-beats", func() { ticks.TickTownBeats(w, k.RNG, k.Sink) })
	k.recoverTick("domain-taxation", func() { ticks.TickDomainTaxation(w, k.RNG, k.Sink) })
	k.recoverTick("legendary-spikes", func() { ticks.TickLegendarySpikes(w, k.RNG, k.Sink) })
	k.recoverTick("naval-daily", func() { ticks.TickNavalDaily(w, k.RNG) })

	k.recoverTick("operation-assignment", func() { agency.AssignOperations(w, k.RNG) })

	k.recoverTick("pruning", func() { ticks.TickPrune(w, k.Sink) })
}

// onTickComplete runs after every single turn regardless of cadence: it
// snapshots the rng's consumption state into the World so a process
// restart resumes determinism exactly where it left off (spec.md's catch-
// up/real-time parity invariant).
func (k *Kernel) onTickComplete(w *worldmodel.World) {
	w.RNGState = k.RNG.State()
	w.RNGUIDCounter = k.RNG.UIDCounter()
	w.LastRealTickAt = time.Now().UTC().Format(time.RFC3339)
}

// registerConsequenceHandlers binds resolution functions for every
// ConsequenceKind the analyzer/story-engine pipeline schedules. Kinds the
// Agency engine's own direct-effect operations already resolve in place
// (famine/plague/uprising/succession/monster-raid/trade-boom/nexus-flare/
// army-arrival/spawn-event) have no handler here by design — those are
// either unused placeholders reserved for future direct scheduling or are
// resolved synchronously at their point of origin; see DESIGN.md.
func (k *Kernel) registerConsequenceHandlers() {
	k.Queue.RegisterHandler(worldmodel.ConsequenceSettlementShift, handleSettlementShift)
	k.Queue.RegisterHandler(worldmodel.ConsequenceRelationship, handleRelationshipShift)
	k.Queue.RegisterHandler(worldmodel.ConsequenceHunterArrival, func(w *worldmodel.World, c *worldmodel.Consequence) {
		k.handleHunterArrival(w, c)
	})
}

func handleSettlementShift(w *worldmodel.World, c *worldmodel.Consequence) {
	s, ok := w.Settlements[c.TargetID]
	if !ok {
		return
	}
	s.Mood += c.Payload["mood"]
	if s.Mood > 5 {
		s.Mood = 5
	}
	if s.Mood < -5 {
		s.Mood = -5
	}
}

func handleRelationshipShift(w *worldmodel.World, c *worldmodel.Consequence) {
	applyRelationshipDelta(w, c.TargetID, c.SecondaryID, c.Payload["delta"])
	applyRelationshipDelta(w, c.SecondaryID, c.TargetID, c.Payload["delta"])
}

func applyRelationshipDelta(w *worldmodel.World, fromID, toID string, delta float64) {
	n, ok := w.NPCs[fromID]
	if !ok {
		return
	}
	for i := range n.Relationships {
		if n.Relationships[i].TargetID == toID {
			n.Relationships[i].Sentiment = clampSentiment(n.Relationships[i].Sentiment + delta)
			return
		}
	}
	n.Relationships = append(n.Relationships, worldmodel.Relationship{
		TargetID:  toID,
		Sentiment: clampSentiment(delta),
		Trust:     0.5,
	})
}

func clampSentiment(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// handleHunterArrival fires the delayed-pursuit payoff the consequence
// analyzer schedules: the hunter NPC (SecondaryID) is moved straight to the
// TargetID settlement and the arrival is run through the World Event
// Processor there. No party travel is involved.
func (k *Kernel) handleHunterArrival(w *worldmodel.World, c *worldmodel.Consequence) {
	hunter, ok := w.NPCs[c.SecondaryID]
	if !ok || !hunter.Alive {
		return
	}
	dest, ok := w.Settlements[c.TargetID]
	if !ok {
		return
	}
	hunter.Location = dest.ID
	worldevent.Process(w, k.RNG, worldevent.Event{
		Kind:        worldevent.KindBetrayal,
		ActorIDs:    []string{hunter.ID},
		LocationID:  dest.ID,
		Magnitude:   0.4,
		Description: hunter.Name + " arrives, hunting a quarry long fled.",
	})
}

// RunCatchUp advances the Kernel's World to target, persisting a snapshot
// via Store once done. speed <= 0 runs flat out with no wall-clock delay;
// speed > 0 caps throughput at that many ticks per real-second. onProgress
// may be nil.
func (k *Kernel) RunCatchUp(target string, speed float64, onProgress func(turn uint64)) error {
	if err := k.Sched.CatchUpTo(target, speed, onProgress); err != nil {
		return err
	}
	return k.Store.Save(k.World)
}

// RunRealTime advances the Kernel's World in real time at speed until ctx
// is canceled, then persists a single snapshot via Store. No snapshot is
// written while the run is in progress.
func (k *Kernel) RunRealTime(ctx context.Context, turnInterval time.Duration, speed float64) error {
	k.Sched.RunRealTime(ctx, turnInterval, speed)
	return k.Store.Save(k.World)
}
