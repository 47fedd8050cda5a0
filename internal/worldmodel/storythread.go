package worldmodel

// StoryPhase is the closed state machine every StoryThread progresses
// through. Grounded on the teacher's internal/engine/perpetuation.go
// narrative-arc bookkeeping, generalized into an explicit phase enum
// instead of the teacher's implicit tension-counter-only model.
type StoryPhase string

const (
	PhaseInciting   StoryPhase = "inciting"
	PhaseRising     StoryPhase = "rising"
	PhaseClimax     StoryPhase = "climax"
	PhaseResolution StoryPhase = "resolution"
	PhaseAftermath  StoryPhase = "aftermath"
)

// ThreadFamily groups the 39-member StoryType enum into the six families
// spec.md §4.11 names; it is derived from StoryType (see Family()), never
// stored independently, so there is exactly one place a type belongs to a
// family.
type ThreadFamily string

const (
	FamilyConflict     ThreadFamily = "conflict"
	FamilyDiscovery    ThreadFamily = "discovery"
	FamilySocial       ThreadFamily = "social"
	FamilySurvival     ThreadFamily = "survival"
	FamilyIntrigue     ThreadFamily = "intrigue"
	FamilySupernatural ThreadFamily = "supernatural"
)

// StoryType is the closed 39-member classification the Story Classifier
// assigns from a triggering log entry's keywords, per spec.md §4.11.
type StoryType string

const (
	// Conflict
	TypeWar              StoryType = "war"
	TypeFeud             StoryType = "feud"
	TypeRaidCampaign      StoryType = "raid-campaign"
	TypeSiege            StoryType = "siege"
	TypeRebellion        StoryType = "rebellion"
	TypeDuel             StoryType = "duel"
	TypeMercenaryContract StoryType = "mercenary-contract"

	// Discovery
	TypeAncientRuins      StoryType = "ancient-ruins"
	TypeLostArtifact      StoryType = "lost-artifact"
	TypeNewLand           StoryType = "new-land"
	TypeMonsterSighting   StoryType = "monster-sighting"
	TypeForbiddenKnowledge StoryType = "forbidden-knowledge"
	TypeProphecy          StoryType = "prophecy"

	// Social
	TypeCourtship   StoryType = "courtship"
	TypeMarriage    StoryType = "marriage"
	TypeRivalry     StoryType = "rivalry"
	TypeScandal     StoryType = "scandal"
	TypeSuccession  StoryType = "succession"
	TypeFamilyFeud  StoryType = "family-feud"
	TypePatronage   StoryType = "patronage"

	// Survival
	TypeFamine             StoryType = "famine"
	TypePlague             StoryType = "plague"
	TypeExodus             StoryType = "exodus"
	TypeDisasterRecovery   StoryType = "disaster-recovery"
	TypeMonsterInfestation StoryType = "monster-infestation"
	TypeWildernessOrdeal   StoryType = "wilderness-ordeal"

	// Intrigue
	TypeConspiracy  StoryType = "conspiracy"
	TypeHeist       StoryType = "heist"
	TypeEspionage   StoryType = "espionage"
	TypeBlackmail   StoryType = "blackmail"
	TypeCoup        StoryType = "coup"
	TypeSmuggling   StoryType = "smuggling-ring"
	TypeDoubleAgent StoryType = "double-agent"

	// Supernatural
	TypeHaunting         StoryType = "haunting"
	TypeCurse            StoryType = "curse"
	TypeNexusAwakening   StoryType = "nexus-awakening"
	TypeDivineOmen       StoryType = "divine-omen"
	TypePlanarIncursion  StoryType = "planar-incursion"
	TypeUndeadUprising   StoryType = "undead-uprising"
)

// threadFamilies maps every StoryType to its ThreadFamily, the single
// source of truth Family() reads from.
var threadFamilies = map[StoryType]ThreadFamily{
	TypeWar: FamilyConflict, TypeFeud: FamilyConflict, TypeRaidCampaign: FamilyConflict,
	TypeSiege: FamilyConflict, TypeRebellion: FamilyConflict, TypeDuel: FamilyConflict,
	TypeMercenaryContract: FamilyConflict,

	TypeAncientRuins: FamilyDiscovery, TypeLostArtifact: FamilyDiscovery, TypeNewLand: FamilyDiscovery,
	TypeMonsterSighting: FamilyDiscovery, TypeForbiddenKnowledge: FamilyDiscovery, TypeProphecy: FamilyDiscovery,

	TypeCourtship: FamilySocial, TypeMarriage: FamilySocial, TypeRivalry: FamilySocial,
	TypeScandal: FamilySocial, TypeSuccession: FamilySocial, TypeFamilyFeud: FamilySocial,
	TypePatronage: FamilySocial,

	TypeFamine: FamilySurvival, TypePlague: FamilySurvival, TypeExodus: FamilySurvival,
	TypeDisasterRecovery: FamilySurvival, TypeMonsterInfestation: FamilySurvival,
	TypeWildernessOrdeal: FamilySurvival,

	TypeConspiracy: FamilyIntrigue, TypeHeist: FamilyIntrigue, TypeEspionage: FamilyIntrigue,
	TypeBlackmail: FamilyIntrigue, TypeCoup: FamilyIntrigue, TypeSmuggling: FamilyIntrigue,
	TypeDoubleAgent: FamilyIntrigue,

	TypeHaunting: FamilySupernatural, TypeCurse: FamilySupernatural, TypeNexusAwakening: FamilySupernatural,
	TypeDivineOmen: FamilySupernatural, TypePlanarIncursion: FamilySupernatural,
	TypeUndeadUprising: FamilySupernatural,
}

// Family returns t's classification family, or "" if t is unrecognized.
func (t StoryType) Family() ThreadFamily {
	return threadFamilies[t]
}

// AllStoryTypes returns every closed StoryType value in declaration order,
// for classifier keyword-table construction and tests. The order is fixed
// so that when a message matches keywords of several types, the earliest
// declared type wins on every run.
func AllStoryTypes() []StoryType {
	return []StoryType{
		TypeWar, TypeFeud, TypeRaidCampaign, TypeSiege, TypeRebellion, TypeDuel, TypeMercenaryContract,
		TypeAncientRuins, TypeLostArtifact, TypeNewLand, TypeMonsterSighting, TypeForbiddenKnowledge, TypeProphecy,
		TypeCourtship, TypeMarriage, TypeRivalry, TypeScandal, TypeSuccession, TypeFamilyFeud, TypePatronage,
		TypeFamine, TypePlague, TypeExodus, TypeDisasterRecovery, TypeMonsterInfestation, TypeWildernessOrdeal,
		TypeConspiracy, TypeHeist, TypeEspionage, TypeBlackmail, TypeCoup, TypeSmuggling, TypeDoubleAgent,
		TypeHaunting, TypeCurse, TypeNexusAwakening, TypeDivineOmen, TypePlanarIncursion, TypeUndeadUprising,
	}
}

// StoryThread is a persistent narrative arc: a war, a feud, a mystery. It
// advances phases as Tension crosses thresholds and spawns contextual beat
// logs naming its actors and locations.
type StoryThread struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Summary string    `json:"summary"`
	Type    StoryType `json:"type"`

	Phase StoryPhase `json:"phase"`

	// Tension drives phase transitions on spec.md §4.8's thresholds: ≥5
	// inciting→rising, ≥8 rising→climax, =10 (or climax + small chance)
	// triggers resolution. Kept on a 0..10 scale per spec.md.
	Tension float64 `json:"tension"`

	ActorIDs    []string `json:"actorIds,omitempty"`    // NPC/faction/party ids
	LocationIDs []string `json:"locationIds,omitempty"` // settlement ids

	Beats             []string `json:"beats,omitempty"`
	PotentialOutcomes []string `json:"potentialOutcomes,omitempty"`
	Resolution        string   `json:"resolution,omitempty"`
	BranchingState    string   `json:"branchingState,omitempty"`

	Context *ThreadContext `json:"context,omitempty"`

	StartedAt string `json:"startedAt"`
	UpdatedAt string `json:"updatedAt"`
	Resolved  bool   `json:"resolved,omitempty"`
}

// ThreadContext carries the optional narrative-flavor sub-structure the
// classifier attaches at spawn time: themes keyed on thread type, each
// actor's assigned motivation, and relationship descriptors between pairs
// of actors. The story-progression tick draws from these when composing
// beats (spec.md §4.8's "optionally appending a motivation-, theme-, or
// relationship-derived fragment").
type ThreadContext struct {
	Themes        []string          `json:"themes,omitempty"`
	Motivations   map[string]string `json:"motivations,omitempty"`   // actorId -> motivation
	Relationships map[string]string `json:"relationships,omitempty"` // "actorA|actorB" -> descriptor
	KeyLocations  []string          `json:"keyLocations,omitempty"`
}
