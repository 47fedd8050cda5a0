package worldmodel

// Normalize fills zero-value/missing fields on a loaded World so that a
// world.json written by an older schema version still loads cleanly.
// Grounded on the teacher's persistence layer's tolerant-of-missing-columns
// posture (sqlx struct scanning left unset columns at their Go zero value);
// here the same tolerance is made explicit since JSON decoding already
// leaves absent maps nil.
func (w *World) Normalize() {
	if w.Settlements == nil {
		w.Settlements = make(map[string]*Settlement)
	}
	if w.Factions == nil {
		w.Factions = make(map[string]*Faction)
	}
	if w.NPCs == nil {
		w.NPCs = make(map[string]*NPC)
	}
	if w.Parties == nil {
		w.Parties = make(map[string]*Party)
	}
	if w.Armies == nil {
		w.Armies = make(map[string]*Army)
	}
	if w.Strongholds == nil {
		w.Strongholds = make(map[string]*Stronghold)
	}
	if w.Nexuses == nil {
		w.Nexuses = make(map[string]*Nexus)
	}
	if w.Dungeons == nil {
		w.Dungeons = make(map[string]*Dungeon)
	}
	if w.Caravans == nil {
		w.Caravans = make(map[string]*Caravan)
	}
	if w.Rumors == nil {
		w.Rumors = make(map[string]*Rumor)
	}
	if w.Mercenaries == nil {
		w.Mercenaries = make(map[string]*Mercenary)
	}
	if w.StoryThreads == nil {
		w.StoryThreads = make(map[string]*StoryThread)
	}
	if w.Antagonists == nil {
		w.Antagonists = make(map[string]*Antagonist)
	}
	if w.Bloodlines == nil {
		w.Bloodlines = make(map[string]*Bloodline)
	}
	if w.Retainers == nil {
		w.Retainers = make(map[string]*Retainer)
	}
	if w.Treasures == nil {
		w.Treasures = make(map[string]*TreasureHoard)
	}
	if w.NavalUnits == nil {
		w.NavalUnits = make(map[string]*NavalUnit)
	}
	if w.Ecology.RegionHealth == nil {
		w.Ecology.RegionHealth = make(map[string]float64)
	}
	if w.Ecology.WildlifeLevel == nil {
		w.Ecology.WildlifeLevel = make(map[string]float64)
	}
	if w.SchemaVersion == 0 {
		w.SchemaVersion = CurrentSchemaVersion
	}
	if w.Calendar.Season == "" {
		w.Calendar.Season = SeasonSpring
	}
	if w.Calendar.Weather == "" {
		w.Calendar.Weather = WeatherClear
	}
	if w.Pregnancies == nil {
		w.Pregnancies = make(map[string]*Pregnancy)
	}
	if w.RetainerCandidateIDs == nil {
		w.RetainerCandidateIDs = []string{}
	}
	if w.Archetype == "" {
		w.Archetype = worldArchetypes[0]
	}
	for _, s := range w.Settlements {
		if s.Supply == nil {
			s.Supply = make(map[string]int)
		}
		if s.PriceTrend == nil {
			s.PriceTrend = make(map[string]float64)
		}
		if s.Market == nil {
			s.Market = &Market{Prices: make(map[string]float64), Stock: make(map[string]float64)}
		}
	}
}
