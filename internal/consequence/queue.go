// Package consequence implements the world's deferred-effect queue: a
// priority (1-9, higher fires first) plus a turns-until-resolution
// countdown, drained with bounded fairness so no single hour tick can
// starve the rest of the simulation. Grounded on the teacher's
// ActiveBoosts/CleanExpiredBoosts expiry-tracking pattern in
// internal/engine/simulation.go, generalized into a real priority queue
// since spec.md requires priority-then-FIFO drain order rather than the
// teacher's simple expiry-time sweep.
package consequence

import (
	"container/heap"

	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// Handler resolves one Consequence once its countdown reaches zero.
type Handler func(w *worldmodel.World, c *worldmodel.Consequence)

// Queue wraps a worldmodel.World's ConsequenceQueue slice with heap
// semantics: priority descending, then Sequence ascending (FIFO) for ties.
type Queue struct {
	world    *worldmodel.World
	handlers map[worldmodel.ConsequenceKind]Handler
}

// New returns a Queue operating on w.ConsequenceQueue in place.
func New(w *worldmodel.World) *Queue {
	q := &Queue{world: w, handlers: make(map[worldmodel.ConsequenceKind]Handler)}
	heap.Init((*heapView)(w))
	return q
}

// RegisterHandler binds a resolution function for kind. Unregistered kinds
// are dropped silently when they fire (logged by the caller if desired).
func (q *Queue) RegisterHandler(kind worldmodel.ConsequenceKind, fn Handler) {
	q.handlers[kind] = fn
}

// Schedule enqueues a new consequence, stamping its Sequence for
// tie-breaking.
func (q *Queue) Schedule(c *worldmodel.Consequence) {
	c.Sequence = q.world.NextConsequenceSequence()
	heap.Push((*heapView)(q.world), c)
}

// Tick decrements every pending consequence's countdown by one turn, then
// drains and resolves up to maxDrain consequences whose countdown has
// reached zero, in priority-then-FIFO order. Returns the number resolved.
// The cap keeps a single hour tick from processing an unbounded backlog
// (spec.md bounded-fairness invariant, ~32 per hour tick).
func (q *Queue) Tick(maxDrain int) int {
	for _, c := range q.world.ConsequenceQueue {
		if c.TurnsLeft > 0 {
			c.TurnsLeft--
		}
	}
	heap.Init((*heapView)(q.world))

	resolved := 0
	for resolved < maxDrain && len(q.world.ConsequenceQueue) > 0 {
		top := q.world.ConsequenceQueue[0]
		if top.TurnsLeft > 0 {
			break
		}
		c := heap.Pop((*heapView)(q.world)).(*worldmodel.Consequence)
		if fn, ok := q.handlers[c.Kind]; ok {
			fn(q.world, c)
		}
		resolved++
	}
	return resolved
}

// Len reports how many consequences are currently pending.
func (q *Queue) Len() int {
	return len(q.world.ConsequenceQueue)
}

// heapView adapts World.ConsequenceQueue to container/heap.Interface
// without copying the backing slice.
type heapView worldmodel.World

func (h *heapView) Len() int { return len(h.ConsequenceQueue) }

func (h *heapView) Less(i, j int) bool {
	a, b := h.ConsequenceQueue[i], h.ConsequenceQueue[j]
	if a.Priority != b.Priority {
		return a.Priority > b.Priority // higher priority drains first (spec.md §4.5)
	}
	return a.Sequence < b.Sequence
}

func (h *heapView) Swap(i, j int) {
	h.ConsequenceQueue[i], h.ConsequenceQueue[j] = h.ConsequenceQueue[j], h.ConsequenceQueue[i]
}

func (h *heapView) Push(x any) {
	h.ConsequenceQueue = append(h.ConsequenceQueue, x.(*worldmodel.Consequence))
}

func (h *heapView) Pop() any {
	old := h.ConsequenceQueue
	n := len(old)
	item := old[n-1]
	h.ConsequenceQueue = old[:n-1]
	return item
}
