// Package story implements the Story Classifier (§4.11) and Story Thread
// Engine (§4.8): turning individual log entries into persistent narrative
// arcs, and advancing those arcs hour by hour toward resolution. Grounded
// on the teacher's Simulation.processRandomEvents fixed-string-table
// selection pattern (internal/engine/simulation.go), generalized to actor/
// location name substitution — see Design Note "Prose templates" and
// SPEC_FULL.md §4.8.
package story

import (
	"strings"

	"github.com/mbutler/war-machine-log/internal/worldmodel"
)

// titleTemplates gives each family a title shape with "hunter"/"target"/
// "place" placeholders the classifier fills from the triggering entry's
// actors/location.
var titleTemplates = map[worldmodel.ThreadFamily]string{
	worldmodel.FamilyConflict:     "The War for {place}",
	worldmodel.FamilyDiscovery:    "The {place} Discovery",
	worldmodel.FamilySocial:       "The {hunter} Affair",
	worldmodel.FamilySurvival:     "The {place} Ordeal",
	worldmodel.FamilyIntrigue:     "The {hunter} Conspiracy",
	worldmodel.FamilySupernatural: "The {place} Omen",
}

// outcomesByFamily lists the potential resolutions a thread of each family
// may settle into; the resolver (engine.go) picks one at random when
// tension reaches its resolution threshold.
var outcomesByFamily = map[worldmodel.ThreadFamily][]string{
	worldmodel.FamilyConflict:     {"decisive victory", "bitter stalemate", "costly defeat", "negotiated truce"},
	worldmodel.FamilyDiscovery:    {"a boon to the finder", "a curse in disguise", "lost to rivals", "hidden away"},
	worldmodel.FamilySocial:       {"a joyous union", "a public scandal", "quiet reconciliation", "lasting rift"},
	worldmodel.FamilySurvival:     {"the crisis passes", "many are lost", "outside aid arrives", "the land is scarred"},
	worldmodel.FamilyIntrigue:     {"the plot is exposed", "the plot succeeds", "betrayal within", "an uneasy silence"},
	worldmodel.FamilySupernatural: {"the omen fades", "the omen is fulfilled", "a binding is forged", "the unknown lingers"},
}

// beatTemplates are generic per-family progression lines with {hunter},
// {target}, and {place} role-word placeholders, per spec.md §4.8's
// "starting from a generic progression-beat template... substituting actor
// names where generic role-words appear".
var beatTemplates = map[worldmodel.ThreadFamily][]string{
	worldmodel.FamilyConflict: {
		"{hunter} musters forces against {target}.",
		"Skirmishes flare between {hunter} and {target}.",
		"{place} braces for what is coming.",
	},
	worldmodel.FamilyDiscovery: {
		"{hunter} pores over what was found near {place}.",
		"Word of the discovery spreads beyond {place}.",
		"{hunter} seeks out {target} to make sense of it.",
	},
	worldmodel.FamilySocial: {
		"{hunter} and {target} are seen together once more.",
		"Talk in {place} turns to {hunter}.",
		"{hunter} sends word to {target}.",
	},
	worldmodel.FamilySurvival: {
		"Conditions in {place} worsen.",
		"{hunter} organizes what relief can be found.",
		"{target} pleads for aid on behalf of {place}.",
	},
	worldmodel.FamilyIntrigue: {
		"{hunter} moves carefully against {target}.",
		"A loose thread draws attention in {place}.",
		"{target} grows suspicious of {hunter}.",
	},
	worldmodel.FamilySupernatural: {
		"Strange signs are reported near {place}.",
		"{hunter} seeks to understand what stirs in {place}.",
		"{target} is marked by what happened.",
	},
}

// motivationPool is the fixed set the classifier draws from when assigning
// an actor a motivation at spawn time (spec.md §4.11 "actor motivations
// from a fixed pool").
var motivationPool = []string{
	"duty", "greed", "love", "fear", "vengeance", "curiosity", "faith", "pride", "survival",
}

// fillTemplate substitutes {hunter}, {target}, and {place} placeholders.
func fillTemplate(tpl, hunter, target, place string) string {
	r := strings.NewReplacer("{hunter}", hunter, "{target}", target, "{place}", place)
	return collapseTheThe(r.Replace(tpl))
}

// collapseTheThe fixes the "The The X" duplication spec.md §4.11 calls out
// when a title template and a substituted name both start with "The".
func collapseTheThe(s string) string {
	return strings.Replace(s, "The The ", "The ", 1)
}
