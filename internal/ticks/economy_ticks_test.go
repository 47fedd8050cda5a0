package ticks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbutler/war-machine-log/internal/hexgrid"
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

func TestTickCaravanSpawnEventuallyCreatesCaravanBetweenSettlements(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("caravan-spawn")

	w.Settlements["settlement-1"] = &worldmodel.Settlement{ID: "settlement-1", Name: "Ashford", Coord: hexgrid.Coord{Q: 0, R: 0}}
	w.Settlements["settlement-2"] = &worldmodel.Settlement{ID: "settlement-2", Name: "Brackwater", Coord: hexgrid.Coord{Q: 1, R: 1}}

	for i := 0; i < 100 && len(w.Caravans) == 0; i++ {
		TickCaravanSpawn(w, r, sink)
	}

	require.NotEmpty(t, w.Caravans)
}

func TestTickCaravanSpawnSkipsDestroyedSettlements(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("caravan-spawn-destroyed")

	w.Settlements["settlement-1"] = &worldmodel.Settlement{ID: "settlement-1", Name: "Ashford", Destroyed: true}
	w.Settlements["settlement-2"] = &worldmodel.Settlement{ID: "settlement-2", Name: "Brackwater", Destroyed: true}

	for i := 0; i < 100; i++ {
		TickCaravanSpawn(w, r, sink)
	}

	assert.Empty(t, w.Caravans)
}

func TestTickTownBeatsEventuallyEmitsFlavorLog(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("town-beats")

	s := &worldmodel.Settlement{ID: "settlement-1", Name: "Ashford"}
	w.Settlements[s.ID] = s

	for i := 0; i < 100 && len(w.Log) == 0; i++ {
		TickTownBeats(w, r, sink)
	}

	require.NotEmpty(t, w.Log)
	assert.Contains(t, w.Log[0].Message, s.Name)
}

func TestTickTownBeatsSkipsDestroyedSettlements(t *testing.T) {
	w := worldmodel.NewEmpty()
	sink := logsink.New(w)
	r := rng.New("town-beats-destroyed")

	s := &worldmodel.Settlement{ID: "settlement-1", Name: "Ashford", Destroyed: true}
	w.Settlements[s.ID] = s

	for i := 0; i < 100; i++ {
		TickTownBeats(w, r, sink)
	}

	assert.Empty(t, w.Log)
}
