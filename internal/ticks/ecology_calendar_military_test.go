package ticks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

func TestTickEcologyFlagsOverharvestedWhenWildlifeDrops(t *testing.T) {
	w := worldmodel.NewEmpty()
	w.Ecology.WildlifeLevel["region-1"] = 5
	r := rng.New("ecology-overharvest")

	for i := 0; i < 50; i++ {
		TickEcology(w, r)
	}

	assert.Contains(t, w.Ecology.Overharvested, "region-1")
}

func TestTickEcologyClampsRegionHealthToRange(t *testing.T) {
	w := worldmodel.NewEmpty()
	w.Ecology.RegionHealth["region-1"] = 99
	r := rng.New("ecology-clamp")

	for i := 0; i < 200; i++ {
		TickEcology(w, r)
		h := w.Ecology.RegionHealth["region-1"]
		require.GreaterOrEqual(t, h, 0.0)
		require.LessOrEqual(t, h, 100.0)
	}
}

func TestTickDynastyAgingKillsNPCWhenHealthDepletes(t *testing.T) {
	w := worldmodel.NewEmpty()
	w.WorldTime = "0001-01-01T00:00:00"
	sink := logsink.New(w)
	r := rng.New("dynasty-aging")

	n := &worldmodel.NPC{ID: "npc-1", Name: "Elder Kael", Alive: true, Dynasty: &worldmodel.DynastyFields{Health: 0.001}}
	w.NPCs[n.ID] = n

	TickDynastyAging(w, r, sink)

	assert.False(t, n.Alive)
	assert.Equal(t, w.WorldTime, n.DiedAt)
}

func TestTickCalendarWrapsDayAndAdvancesSeason(t *testing.T) {
	w := worldmodel.NewEmpty()
	w.Calendar.Day = 360
	sink := logsink.New(w)
	r := rng.New("calendar-wrap")

	TickCalendar(w, r, sink)

	assert.Equal(t, 1, w.Calendar.Day)
	assert.Equal(t, worldmodel.SeasonSpring, w.Calendar.Season)
}

func TestTickCalendarEmitsLogOnlyWhenSeasonChanges(t *testing.T) {
	w := worldmodel.NewEmpty()
	w.Calendar.Day = 89
	w.Calendar.Season = worldmodel.SeasonSpring
	sink := logsink.New(w)
	r := rng.New("calendar-no-change")

	TickCalendar(w, r, sink)
	assert.Empty(t, w.Log, "day 90 is still spring, no season-change log")

	TickCalendar(w, r, sink)
	assert.Len(t, w.Log, 1, "day 91 crosses into summer")
}

func TestTickLevelUpsRaisesLevelWhenXPCrossesThreshold(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("level-up")

	n := &worldmodel.NPC{ID: "npc-1", Name: "Kael", Alive: true, Level: 1, XP: 1000, MaxHP: 10, HP: 10}
	w.NPCs[n.ID] = n

	TickLevelUps(w, r, sink)

	assert.Equal(t, 2, n.Level)
	assert.Greater(t, n.MaxHP, 10)
	require.Len(t, w.Log, 1)
}

func TestTickLevelUpsHandlesMultipleLevelsInOneTick(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("level-up-multi")

	n := &worldmodel.NPC{ID: "npc-1", Name: "Kael", Alive: true, Level: 1, XP: 9000000}
	w.NPCs[n.ID] = n

	TickLevelUps(w, r, sink)

	assert.Greater(t, n.Level, 2)
}

func TestItoaFormatsIntegers(t *testing.T) {
	assert.Equal(t, "0", itoa(0))
	assert.Equal(t, "42", itoa(42))
	assert.Equal(t, "-7", itoa(-7))
}

func TestTickArmiesRaisesArmyFromTreasuryAtCapital(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("armies-raise")

	capital := &worldmodel.Settlement{ID: "settlement-1", Name: "Ashford"}
	w.Settlements[capital.ID] = capital
	f := &worldmodel.Faction{ID: "faction-1", Name: "Crown", Treasury: 100000, CapitalID: capital.ID}
	w.Factions[f.ID] = f

	for i := 0; i < 500 && len(w.Armies) == 0; i++ {
		TickArmies(w, r, sink)
	}

	require.NotEmpty(t, w.Armies)
	assert.Less(t, f.Treasury, 100000.0)
}

func TestTickArmiesSkipsFactionsWithoutCapitalOrFunds(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("armies-skip")

	f := &worldmodel.Faction{ID: "faction-1", Name: "Paupers", Treasury: 10}
	w.Factions[f.ID] = f

	for i := 0; i < 500; i++ {
		TickArmies(w, r, sink)
	}

	assert.Empty(t, w.Armies)
}
