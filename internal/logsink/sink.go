// Package logsink appends entries to the world chronicle and fans each one
// out to registered subscribers (story classifier, consequence analyzer).
// Grounded on the teacher's internal/engine/simulation.go EmitEvent/
// Subscribe pattern.
package logsink

import "github.com/mbutler/war-machine-log/internal/worldmodel"

// Subscriber receives every log entry as it is appended, in order.
type Subscriber func(entry worldmodel.LogEntry)

// Sink appends entries to a World's Log and notifies subscribers.
type Sink struct {
	world       *worldmodel.World
	subscribers []Subscriber
}

// New returns a Sink writing into w.
func New(w *worldmodel.World) *Sink {
	return &Sink{world: w}
}

// Subscribe registers fn to be called with every future log entry.
func (s *Sink) Subscribe(fn Subscriber) {
	s.subscribers = append(s.subscribers, fn)
}

// Emit appends entry to the world log, stamping sequence/time, then
// notifies subscribers with the stamped copy — unless entry is a System or
// Weather log, per spec.md §4.4 ("After appending a non-system, non-weather
// entry the sink MUST invoke the Story Classifier... and the Consequence
// Analyzer"). System/weather entries are chronicle-only: flavor and
// diagnostics, never story seeds or consequence triggers.
func (s *Sink) Emit(entry worldmodel.LogEntry) {
	s.world.Append(entry)
	stamped := s.world.Log[len(s.world.Log)-1]
	if entry.Category == worldmodel.LogCategorySystem || entry.Category == worldmodel.LogCategoryWeather {
		return
	}
	for _, sub := range s.subscribers {
		sub(stamped)
	}
}

// Prune drops the oldest log entries beyond keep, grounded on the
// teacher's TickWeek event-trim pattern in internal/engine/simulation.go.
// Story threads referencing pruned entries are unaffected since threads
// store actor/location ids, not log indices.
func (s *Sink) Prune(keep int) {
	if len(s.world.Log) <= keep {
		return
	}
	drop := len(s.world.Log) - keep
	s.world.Log = append([]worldmodel.LogEntry(nil), s.world.Log[drop:]...)
}
