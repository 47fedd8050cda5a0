package worldmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckInvariantsCleanOnFreshSeed(t *testing.T) {
	w := Seed(SeedConfig{Seed: "invariants-fresh", StartWorldTime: "0001-01-01T00:00:00"})
	assert.Empty(t, w.CheckInvariants())
}

func TestCheckInvariantsCatchesDanglingSpouse(t *testing.T) {
	w := NewEmpty()
	w.NPCs["a"] = &NPC{ID: "a", Alive: true, Location: "s1", Dynasty: &DynastyFields{SpouseID: "ghost"}}
	problems := w.CheckInvariants()
	assert.NotEmpty(t, problems)
}

func TestCheckInvariantsCatchesUnflaggedWidow(t *testing.T) {
	w := NewEmpty()
	w.NPCs["a"] = &NPC{ID: "a", Alive: true, Location: "s1", Dynasty: &DynastyFields{SpouseID: "b"}}
	w.NPCs["b"] = &NPC{ID: "b", Alive: false, Location: "s1", Dynasty: &DynastyFields{SpouseID: "a"}}
	problems := w.CheckInvariants()
	assert.NotEmpty(t, problems)
}

func TestCheckInvariantsCatchesOverlappingPregnancies(t *testing.T) {
	w := NewEmpty()
	w.Pregnancies["p1"] = &Pregnancy{ID: "p1", MotherID: "mom", ConceivedAt: "0001-01-01T00:00:00", DueDate: "0001-09-28T00:00:00"}
	w.Pregnancies["p2"] = &Pregnancy{ID: "p2", MotherID: "mom", ConceivedAt: "0001-02-01T00:00:00", DueDate: "0001-10-28T00:00:00"}
	problems := w.CheckInvariants()
	assert.NotEmpty(t, problems)
}

func TestCheckInvariantsCatchesDanglingRetainerEmployer(t *testing.T) {
	w := NewEmpty()
	w.Retainers["r1"] = &Retainer{ID: "r1", NPCID: "n1", LordID: "nobody"}
	problems := w.CheckInvariants()
	assert.NotEmpty(t, problems)
}

func TestCheckInvariantsCatchesNegativeArmyStrength(t *testing.T) {
	w := NewEmpty()
	w.Armies["a1"] = &Army{ID: "a1", Strength: -5, Morale: 5}
	problems := w.CheckInvariants()
	assert.NotEmpty(t, problems)
}

func TestCheckInvariantsCatchesResolvedThreadWithoutResolution(t *testing.T) {
	w := NewEmpty()
	w.StoryThreads["t1"] = &StoryThread{ID: "t1", Resolved: true}
	problems := w.CheckInvariants()
	assert.NotEmpty(t, problems)
}

func TestCheckInvariantsCatchesUnresolvedThreadCapBreach(t *testing.T) {
	w := NewEmpty()
	for i := 0; i < unresolvedThreadCap+1; i++ {
		id := string(rune('a' + i))
		w.StoryThreads[id] = &StoryThread{ID: id}
	}
	problems := w.CheckInvariants()
	assert.NotEmpty(t, problems)
}
