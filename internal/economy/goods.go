// Package economy prices the fixed catalog of tradeable goods that flow
// between settlements. Grounded on the teacher's internal/economy/goods.go
// supply/demand MarketEntry model; generalized from the teacher's
// per-agent float64 supply/demand pools to spec.md §3's settlement-level
// integer Supply scale (−3..4) and kept independent of the teacher's phi
// conjugate-field math (see DESIGN.md for why phi was dropped).
package economy

import "github.com/mbutler/war-machine-log/internal/worldmodel"

// Goods is the closed catalog of tradeable goods, trimmed from the
// teacher's 15-good list to the eight that the trade, caravan, and
// town-beat ticks actually move.
var Goods = []string{
	"grain", "timber", "ore", "tools", "weapons", "cloth", "herbs", "luxuries",
}

// basePrices gives each good's production-cost floor in gold pieces.
var basePrices = map[string]float64{
	"grain":    2,
	"timber":   3,
	"ore":      4,
	"tools":    10,
	"weapons":  15,
	"cloth":    8,
	"herbs":    5,
	"luxuries": 25,
}

// BasePrice returns a good's floor price, or a fixed fallback of 8 if good
// is unrecognized (e.g. loaded from an older snapshot with custom goods).
func BasePrice(good string) float64 {
	if p, ok := basePrices[good]; ok {
		return p
	}
	return 8
}

// EnsureMarket lazily initializes a settlement's Supply/PriceTrend maps and
// Market so seeded and migrated worlds alike always have every good
// represented at a neutral level.
func EnsureMarket(s *worldmodel.Settlement) {
	if s.Supply == nil {
		s.Supply = make(map[string]int, len(Goods))
	}
	if s.PriceTrend == nil {
		s.PriceTrend = make(map[string]float64, len(Goods))
	}
	if s.Market == nil {
		s.Market = &worldmodel.Market{Prices: make(map[string]float64), Stock: make(map[string]float64)}
	}
	for _, g := range Goods {
		if _, ok := s.Supply[g]; !ok {
			s.Supply[g] = 0
		}
		if _, ok := s.Market.Prices[g]; !ok {
			s.Market.Prices[g] = BasePrice(g)
		}
	}
}

// ResolvePrice computes a good's current price from its base price and the
// settlement's Supply level: each point of supply below 0 (shortage) lifts
// price, each point above 0 (glut) depresses it, floored and ceilinged so
// extreme shortages/gluts stay within an order of magnitude of base.
func ResolvePrice(good string, supply int) float64 {
	base := BasePrice(good)
	price := base * (1.0 - 0.12*float64(supply))
	floor := base * 0.35
	ceiling := base * 3.0
	if price < floor {
		price = floor
	}
	if price > ceiling {
		price = ceiling
	}
	return price
}

// ApplyDelta adjusts a settlement's supply for good by delta, clamped to
// the spec's −3..4 scale, and refreshes the derived price/trend.
func ApplyDelta(s *worldmodel.Settlement, good string, delta int) {
	EnsureMarket(s)
	prev := s.Market.Prices[good]
	s.Supply[good] += delta
	if s.Supply[good] < -3 {
		s.Supply[good] = -3
	}
	if s.Supply[good] > 4 {
		s.Supply[good] = 4
	}
	next := ResolvePrice(good, s.Supply[good])
	s.Market.Prices[good] = next
	s.PriceTrend[good] = next - prev
}
