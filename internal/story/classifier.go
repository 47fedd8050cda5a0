package story

import (
	"strings"

	"github.com/mbutler/war-machine-log/internal/rng"
	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// MaxUnresolvedThreads caps the global pool of unresolved story threads per
// spec.md §4.11 ("If the global count of unresolved threads exceeds a cap
// (default 8), never spawn") and testable property 8.
const MaxUnresolvedThreads = 8

// keywordTable maps each StoryType to the keywords that route a log entry
// to it; matching is case-insensitive substring search over the entry's
// Message, per spec.md §4.11 ("keyword-based over summary and details").
var keywordTable = map[worldmodel.StoryType][]string{
	worldmodel.TypeWar:              {"war", "invades", "invasion"},
	worldmodel.TypeFeud:             {"feud", "vendetta", "grudge", "exacts revenge"},
	worldmodel.TypeRaidCampaign:      {"raid", "pillage", "raiders"},
	worldmodel.TypeSiege:            {"siege", "besiege"},
	worldmodel.TypeRebellion:        {"rebellion", "revolt", "uprising"},
	worldmodel.TypeDuel:             {"duel", "challenges"},
	worldmodel.TypeMercenaryContract: {"mercenary", "contract", "hired"},

	worldmodel.TypeAncientRuins:      {"ruins", "ancient"},
	worldmodel.TypeLostArtifact:      {"artifact", "relic"},
	worldmodel.TypeNewLand:           {"uncharted", "new land", "discovers land"},
	worldmodel.TypeMonsterSighting:   {"sighting", "spotted", "beast"},
	worldmodel.TypeForbiddenKnowledge: {"forbidden", "heresy", "occult"},
	worldmodel.TypeProphecy:          {"prophecy", "omen", "foretold"},

	worldmodel.TypeCourtship:  {"courts", "courtship", "suitor"},
	worldmodel.TypeMarriage:   {"weds", "wedding", "marries"},
	worldmodel.TypeRivalry:    {"rivalry", "rival"},
	worldmodel.TypeScandal:    {"scandal", "disgrace"},
	worldmodel.TypeSuccession: {"succession", "heir", "inherits"},
	worldmodel.TypeFamilyFeud: {"family feud", "bloodline dispute"},
	worldmodel.TypePatronage:  {"patron", "sponsors"},

	worldmodel.TypeFamine:             {"famine", "starvation", "crop failure"},
	worldmodel.TypePlague:             {"plague", "disease", "pestilence"},
	worldmodel.TypeExodus:             {"exodus", "flee", "refugees"},
	worldmodel.TypeDisasterRecovery:   {"disaster", "rebuilding"},
	worldmodel.TypeMonsterInfestation: {"infestation", "swarm", "lair"},
	worldmodel.TypeWildernessOrdeal:   {"lost in the wilds", "stranded"},

	worldmodel.TypeConspiracy:  {"theft", "conspiracy", "plot"},
	worldmodel.TypeHeist:       {"heist", "robbery", "stolen"},
	worldmodel.TypeEspionage:   {"spy", "espionage", "infiltrate"},
	worldmodel.TypeBlackmail:   {"blackmail", "extortion"},
	worldmodel.TypeCoup:        {"coup", "usurps", "overthrows"},
	worldmodel.TypeSmuggling:   {"smuggling", "contraband"},
	worldmodel.TypeDoubleAgent: {"double agent", "betrays their own", "betrays"},

	worldmodel.TypeHaunting:        {"haunt", "ghost", "specter"},
	worldmodel.TypeCurse:           {"curse", "cursed"},
	worldmodel.TypeNexusAwakening:  {"nexus", "ritual", "binds themself"},
	worldmodel.TypeDivineOmen:      {"divine", "blessing", "miracle"},
	worldmodel.TypePlanarIncursion: {"portal", "planar", "rift tears"},
	worldmodel.TypeUndeadUprising:  {"undead", "risen dead", "necromancy"},
}

// Classify inspects entry and either spawns a new StoryThread, appends a
// beat to an existing similar one, or does nothing. Returns the spawned
// thread, or nil if entry matched nothing, the cap was hit, or it merged
// into an existing thread.
func Classify(w *worldmodel.World, r *rng.Source, entry worldmodel.LogEntry) *worldmodel.StoryThread {
	storyType, ok := classifyType(entry)
	if !ok {
		return nil
	}

	if existing := findSimilarThread(w, storyType, entry.ActorIDs); existing != nil {
		appendBeat(w, existing, entry)
		return nil
	}

	if unresolvedCount(w) >= MaxUnresolvedThreads {
		return nil
	}

	return spawnThread(w, r, storyType, entry)
}

func classifyType(entry worldmodel.LogEntry) (worldmodel.StoryType, bool) {
	msg := strings.ToLower(entry.Message)
	for _, t := range worldmodel.AllStoryTypes() {
		for _, kw := range keywordTable[t] {
			if strings.Contains(msg, kw) {
				return t, true
			}
		}
	}
	return "", false
}

func unresolvedCount(w *worldmodel.World) int {
	n := 0
	for _, t := range w.StoryThreads {
		if !t.Resolved {
			n++
		}
	}
	return n
}

// findSimilarThread returns an unresolved thread of the same type sharing
// at least one actor with entry, per spec.md §4.11's merge rule.
func findSimilarThread(w *worldmodel.World, storyType worldmodel.StoryType, actorIDs []string) *worldmodel.StoryThread {
	for _, t := range w.StoryThreads {
		if t.Resolved || t.Type != storyType {
			continue
		}
		if sharesActor(t.ActorIDs, actorIDs) {
			return t
		}
	}
	return nil
}

func sharesActor(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func appendBeat(w *worldmodel.World, t *worldmodel.StoryThread, entry worldmodel.LogEntry) {
	t.Beats = append(t.Beats, entry.Message)
	t.UpdatedAt = w.WorldTime
	t.Tension += 1
	for _, id := range entry.ActorIDs {
		if !contains(t.ActorIDs, id) {
			t.ActorIDs = append(t.ActorIDs, id)
		}
	}
}

func contains(s []string, v string) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func spawnThread(w *worldmodel.World, r *rng.Source, storyType worldmodel.StoryType, entry worldmodel.LogEntry) *worldmodel.StoryThread {
	family := storyType.Family()

	hunter, target := actorNames(w, entry.ActorIDs)
	place := locationName(w, entry.LocationIDs)

	title := fillTemplate(titleTemplates[family], hunter, target, place)
	outcomes := append([]string(nil), outcomesByFamily[family]...)

	ctx := &worldmodel.ThreadContext{
		Themes:      []string{string(family), string(storyType)},
		Motivations: make(map[string]string),
	}
	for _, id := range entry.ActorIDs {
		ctx.Motivations[id] = rng.Pick(r, motivationPool)
	}
	if len(entry.ActorIDs) >= 2 {
		key := entry.ActorIDs[0] + "|" + entry.ActorIDs[1]
		ctx.Relationships = map[string]string{key: "entangled"}
	}
	ctx.KeyLocations = append([]string(nil), entry.LocationIDs...)

	t := &worldmodel.StoryThread{
		ID:                r.UID("thread"),
		Title:             title,
		Summary:           entry.Message,
		Type:              storyType,
		Phase:             worldmodel.PhaseInciting,
		Tension:           1,
		ActorIDs:          append([]string(nil), entry.ActorIDs...),
		LocationIDs:       append([]string(nil), entry.LocationIDs...),
		PotentialOutcomes: outcomes,
		Context:           ctx,
		StartedAt:         w.WorldTime,
		UpdatedAt:         w.WorldTime,
		BranchingState:    "open",
	}
	w.StoryThreads[t.ID] = t
	return t
}

func actorNames(w *worldmodel.World, actorIDs []string) (hunter, target string) {
	hunter, target = "someone", "another"
	if len(actorIDs) > 0 {
		hunter = resolveName(w, actorIDs[0])
	}
	if len(actorIDs) > 1 {
		target = resolveName(w, actorIDs[1])
	}
	return hunter, target
}

func locationName(w *worldmodel.World, locationIDs []string) string {
	if len(locationIDs) == 0 {
		return "the realm"
	}
	return resolveName(w, locationIDs[0])
}

// resolveName looks id up across every named entity family, falling back
// to the raw id if none match.
func resolveName(w *worldmodel.World, id string) string {
	if n, ok := w.NPCs[id]; ok {
		return n.Name
	}
	if s, ok := w.Settlements[id]; ok {
		return s.Name
	}
	if f, ok := w.Factions[id]; ok {
		return f.Name
	}
	if p, ok := w.Parties[id]; ok {
		return p.Name
	}
	return id
}
