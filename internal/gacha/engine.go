// Package gacha implements banner pulls: rarity rolls against the
// banner rate table, the per-(player, banner) pity floor, and featured
// rate-up. The engine is pure; pity counters and pull history live in
// a PityStore and HistoryStore so the service can back them with redis
// or the database.
package gacha

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/ngoa-long/tamquoc/backend/internal/catalog"
)

// HistoryCap bounds the per-player pull history.
const HistoryCap = 500

// RollResult is one resolved pull before ownership effects.
type RollResult struct {
	HeroTemplateID string `json:"hero_template_id"`
	Rarity         int    `json:"rarity"`
	WasPity        bool   `json:"was_pity"`
	IsFeatured     bool   `json:"is_featured"`
	NewPity        int    `json:"new_pity"`
}

// Engine resolves pulls. The RNG is injected per pull sequence so
// results are reproducible.
type Engine struct{}

// NewEngine returns a gacha engine.
func NewEngine() *Engine { return &Engine{} }

// Roll resolves a single pull given the current pity counter.
//
// At pity >= threshold-1 the rarity is forced to 5 and the counter
// resets; otherwise the rarity is the smallest r whose cumulative rate
// covers a uniform(0,100) roll. A 5-star on a featured banner goes to
// the featured hero with probability featured_rate_up/100.
func (e *Engine) Roll(banner *catalog.Banner, pity int, rng *rand.Rand) (RollResult, error) {
	var rarity int
	wasPity := false
	if pity >= banner.PityThreshold-1 {
		rarity = 5
		wasPity = true
	} else {
		rarity = rollRarity(banner.Rates, rng)
	}

	pool, ok := banner.Pools[rarity]
	if !ok || len(pool) == 0 {
		return RollResult{}, fmt.Errorf("banner %s has no pool for rarity %d", banner.ID, rarity)
	}

	heroID := ""
	isFeatured := false
	if rarity == 5 && banner.FeaturedHeroID != "" {
		if rng.Float64()*100 < float64(banner.FeaturedRateUp) {
			heroID = banner.FeaturedHeroID
			isFeatured = true
		}
	}
	if heroID == "" {
		heroID = pool[rng.Intn(len(pool))]
		isFeatured = heroID == banner.FeaturedHeroID
	}

	newPity := pity + 1
	if rarity == 5 {
		newPity = 0
	}

	return RollResult{
		HeroTemplateID: heroID,
		Rarity:         rarity,
		WasPity:        wasPity,
		IsFeatured:     isFeatured,
		NewPity:        newPity,
	}, nil
}

// RollMulti resolves count consecutive pulls, threading the pity
// counter through the sequence.
func (e *Engine) RollMulti(banner *catalog.Banner, pity, count int, rng *rand.Rand) ([]RollResult, error) {
	results := make([]RollResult, 0, count)
	for i := 0; i < count; i++ {
		res, err := e.Roll(banner, pity, rng)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
		pity = res.NewPity
	}
	return results, nil
}

// Cost returns the gem price for a pull of the given count. Only
// counts of 1 and 10 are sold.
func Cost(banner *catalog.Banner, count int) (int, error) {
	switch count {
	case 1:
		return banner.CostSingle, nil
	case 10:
		return banner.CostMulti, nil
	}
	return 0, fmt.Errorf("invalid pull count %d", count)
}

// rollRarity picks the smallest rarity whose cumulative rate covers the
// roll, iterating rarities in ascending order for a stable mapping.
func rollRarity(rates map[int]int, rng *rand.Rand) int {
	rarities := make([]int, 0, len(rates))
	for r := range rates {
		rarities = append(rarities, r)
	}
	sort.Ints(rarities)

	roll := rng.Float64() * 100
	cumulative := 0
	for _, r := range rarities {
		cumulative += rates[r]
		if roll < float64(cumulative) {
			return r
		}
	}
	// Rates sum to 100; rounding on the last bucket lands here.
	return rarities[len(rarities)-1]
}
