package worldmodel

import (
	"github.com/mbutler/war-machine-log/internal/hexgrid"
	"github.com/mbutler/war-machine-log/internal/rng"
)

// NameBank supplies names for newly-seeded entities. spec.md's scope
// explicitly excludes "flavor-text corpora (name banks, prose snippets,
// family mottos)" as an external collaborator, so this package depends
// only on the interface: callers (cmd/<entry point>, seeding code) provide
// a concrete NameBank. A minimal deterministic table-backed implementation
// is supplied here as the default so the module seeds a complete world
// without a separate data file, but it is swappable.
type NameBank interface {
	SettlementName(r *rng.Source, size hexgrid.SettlementSize) string
	NPCName(r *rng.Source) string
	FactionName(r *rng.Source, kind FactionKind) string
}

// defaultSettlementNames, defaultGivenNames, defaultSurnames, and
// defaultFactionWords are small deterministic tables used by
// DefaultNameBank. They are flavor data, not logic — intentionally short.
var (
	defaultSettlementNames = []string{
		"Ashford", "Brackwater", "Caldermoor", "Dunmire", "Everfall",
		"Frosthollow", "Greywatch", "Hallowmere", "Ironvale", "Juniper Reach",
		"Kingsford", "Lowbridge", "Millhaven", "Nightshade", "Oakenhold",
		"Pinevale", "Quarrymoor", "Ravensgate", "Stonebrook", "Thornwick",
	}
	defaultGivenNames = []string{
		"Aldric", "Branwen", "Cedric", "Dahlia", "Edrin", "Faye", "Gareth",
		"Helga", "Ivo", "Jessamine", "Kael", "Liora", "Merek", "Nadia",
		"Osric", "Perrin", "Quenna", "Roderick", "Sable", "Torvin",
	}
	defaultSurnames = []string{
		"Ashbourne", "Blackwood", "Carrow", "Dunmore", "Eastwick",
		"Fenwick", "Grimshaw", "Hollowell", "Ivorstone", "Jarsdale",
	}
	defaultFactionWords = []string{
		"Crown", "Concord", "Compact", "Dominion", "League", "Covenant",
		"Order", "Circle", "Syndicate", "Warband",
	}
)

// DefaultNameBank is the built-in NameBank implementation.
type DefaultNameBank struct{}

func (DefaultNameBank) SettlementName(r *rng.Source, _ hexgrid.SettlementSize) string {
	return rng.Pick(r, defaultSettlementNames)
}

func (DefaultNameBank) NPCName(r *rng.Source) string {
	return rng.Pick(r, defaultGivenNames) + " " + rng.Pick(r, defaultSurnames)
}

func (DefaultNameBank) FactionName(r *rng.Source, kind FactionKind) string {
	word := rng.Pick(r, defaultFactionWords)
	switch kind {
	case FactionKingdom:
		return "Kingdom of the " + word
	case FactionCult:
		return "Cult of the " + word
	case FactionBanditClan:
		return word + " Raiders"
	default:
		return word + " " + string(kind)
	}
}
