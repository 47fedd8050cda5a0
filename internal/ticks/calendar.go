package ticks

import (
	"github.com/mbutler/war-machine-log/internal/logsink"
	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// seasonLength is the number of calendar days per season, per the
// Calendar.Day doc comment's 4x90 = 360-day year.
const seasonLength = 90

var seasonOrder = []worldmodel.Season{
	worldmodel.SeasonSpring, worldmodel.SeasonSummer,
	worldmodel.SeasonAutumn, worldmodel.SeasonWinter,
}

// weatherWeights gives each season's weather distribution, drawn with
// rng.WeightedPick. Grounded on the teacher's internal/engine/seasons.go
// season-weather table, reimplemented without the dropped HTTP weather
// client (see SPEC_FULL.md §1 / DESIGN.md).
var weatherWeights = map[worldmodel.Season]map[string]float64{
	worldmodel.SeasonSpring: {"clear": 0.4, "rain": 0.35, "storm": 0.1, "fog": 0.15},
	worldmodel.SeasonSummer: {"clear": 0.55, "rain": 0.15, "storm": 0.15, "drought": 0.15},
	worldmodel.SeasonAutumn: {"clear": 0.35, "rain": 0.3, "storm": 0.15, "fog": 0.2},
	worldmodel.SeasonWinter: {"clear": 0.3, "snow": 0.45, "storm": 0.15, "fog": 0.1},
}

var weatherByName = map[string]worldmodel.Weather{
	"clear": worldmodel.WeatherClear, "rain": worldmodel.WeatherRain,
	"storm": worldmodel.WeatherStorm, "snow": worldmodel.WeatherSnow,
	"drought": worldmodel.WeatherDrought, "fog": worldmodel.WeatherFog,
}

// TickCalendar advances, once per Day, the world's Calendar: Day increments
// and wraps at 360, Season derives from Day, and Weather is redrawn from
// the season's weighted table via the shared rng. Grounded on the
// teacher's internal/engine/seasons.go calendar-advance function.
func TickCalendar(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	cal := &w.Calendar
	cal.Day++
	if cal.Day > 360 {
		cal.Day = 1
	}
	seasonIdx := (cal.Day - 1) / seasonLength
	if seasonIdx >= len(seasonOrder) {
		seasonIdx = len(seasonOrder) - 1
	}
	newSeason := seasonOrder[seasonIdx]
	seasonChanged := newSeason != cal.Season
	cal.Season = newSeason

	weights := weatherWeights[cal.Season]
	name, err := rng.WeightedPick(r, weights)
	if err == nil {
		cal.Weather = weatherByName[name]
	}

	if seasonChanged {
		sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategoryWeather,
			Message:  "The season turns to " + string(cal.Season) + ".",
		})
	}
}

// legendarySpikeChance is the small daily chance a high-fame NPC's renown
// produces a legendary-tier story beat, per spec.md §4.6's "Legendary
// spikes" Day-cadence item.
const legendarySpikeChance = 0.02

// legendaryFameThreshold is the Fame an NPC must clear to be eligible.
const legendaryFameThreshold = 80.0

// TickLegendarySpikes considers, once per Day, every NPC whose Fame has
// crossed the legendary threshold for a rare legendary beat: a Social log
// naming the NPC and a +2 Fame bump. Grounded on the teacher's
// internal/engine/perpetuation.go villain/hero-escalation logic,
// generalized to any sufficiently famous NPC rather than just antagonists.
func TickLegendarySpikes(w *worldmodel.World, r *rng.Source, sink *logsink.Sink) {
	for _, n := range w.NPCs {
		if !n.Alive || n.Fame < legendaryFameThreshold {
			continue
		}
		if !r.Chance(legendarySpikeChance) {
			continue
		}
		sink.Emit(worldmodel.LogEntry{
			Category: worldmodel.LogCategorySocial,
			Message:  "Bards across the realm sing anew of " + n.Name + "'s deeds.",
			ActorIDs: []string{n.ID},
		})
		n.Fame += 2
	}
}
