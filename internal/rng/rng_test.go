package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbutler/war-machine-log/internal/rng"
)

func TestDeterministicGivenSeed(t *testing.T) {
	a := rng.New("alpha")
	b := rng.New("alpha")

	for i := 0; i < 1000; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := rng.New("alpha")
	b := rng.New("beta")

	same := true
	for i := 0; i < 32; i++ {
		if a.Next() != b.Next() {
			same = false
			break
		}
	}
	assert.False(t, same, "different seeds should diverge within 32 draws")
}

func TestIntBounds(t *testing.T) {
	r := rng.New("bounds")
	for i := 0; i < 10000; i++ {
		n := r.Int(7)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 7)
	}
}

func TestPickEmptyPanics(t *testing.T) {
	r := rng.New("empty")
	assert.Panics(t, func() {
		rng.Pick(r, []int{})
	})
}

func TestShuffleIsPermutation(t *testing.T) {
	r := rng.New("shuffle")
	seq := []int{1, 2, 3, 4, 5, 6, 7, 8}
	original := append([]int(nil), seq...)
	rng.Shuffle(r, seq)

	assert.ElementsMatch(t, original, seq)
}

func TestUIDUnique(t *testing.T) {
	r := rng.New("uid")
	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		id := r.UID("npc")
		require.False(t, seen[id], "duplicate uid: %s", id)
		seen[id] = true
	}
}

func TestChanceBoundaries(t *testing.T) {
	r := rng.New("chance")
	assert.False(t, r.Chance(0))
	assert.True(t, r.Chance(1))
}

func TestRestoreContinuesSequence(t *testing.T) {
	r := rng.New("continuity")
	for i := 0; i < 50; i++ {
		r.Next()
	}
	state := r.State()
	counter := r.UIDCounter()

	restored := rng.Restore(state, counter)
	for i := 0; i < 20; i++ {
		assert.Equal(t, r.Next(), restored.Next())
	}
}
