// Package services implements the domain services: account and wallet,
// hero/equipment/team progression, story gating, battles, and gacha.
// Each mutating call scopes a transaction and holds the per-player
// critical section for its duration, so mutations on one account never
// interleave.
package services

import (
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/catalog"
	"github.com/ngoa-long/tamquoc/backend/internal/game"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

// keyedMutex serializes work per string key (player id, battle id).
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*lockEntry)}
}

// Lock acquires the key's mutex and returns its unlock func.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &lockEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// parseID validates a uuid path parameter.
func parseID(raw, resource string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.Validation("invalid %s id %q", resource, raw)
	}
	return id, nil
}

// hydrateHero builds a battle hero from a persisted row and its
// catalog template, folding equipped gear into the stats.
func hydrateHero(db *gorm.DB, cat *catalog.Catalog, row *models.PlayerHero, pos game.GridPosition) (*game.Hero, error) {
	tpl, ok := cat.Hero(row.TemplateID)
	if !ok {
		return nil, apperrors.NotFound("hero template", row.TemplateID)
	}

	stats := game.StatsFromMap(row.Stats)
	if stats == (game.HexagonStats{}) {
		stats = tpl.BaseStats
	}

	hero := game.NewHero(row.ID.String(), row.TemplateID, tpl.Name, tpl.Element, pos, stats, tpl.Rarity)
	hero.Level = row.Level
	hero.Exp = row.Exp
	hero.Stars = row.Stars
	hero.AscensionLevel = row.AscensionLevel
	hero.AwakeningLevel = row.AwakeningLevel
	hero.GrowthRates = tpl.GrowthRates
	hero.IsLocked = row.IsLocked
	hero.IsFavorite = row.IsFavorite
	hero.Skills = append([]string(nil), tpl.SkillIDs...)

	// Equipped gear adds its total stats.
	for slot, ref := range map[game.EquipmentType]*uuid.UUID{
		game.EquipmentWeapon:    row.WeaponID,
		game.EquipmentArmor:     row.ArmorID,
		game.EquipmentAccessory: row.AccessoryID,
		game.EquipmentRelic:     row.RelicID,
	} {
		if ref == nil {
			continue
		}
		hero.SetEquipmentSlot(slot, ref.String())
		var piece models.PlayerEquipment
		if err := db.First(&piece, "id = ?", *ref).Error; err != nil {
			continue
		}
		eqTpl, ok := cat.Equipment(piece.TemplateID)
		if !ok {
			continue
		}
		total := eqTpl.BaseStats.Add(game.StatsFromMap(piece.BonusStats))
		hero.Stats = hero.Stats.Add(total)
	}
	hero.CurrentHP = hero.Stats.HP

	return hero, nil
}

// computeStats replays the growth curve from the template's base stats
// to the hero's level, then applies the awakening boost.
func computeStats(tpl *catalog.HeroTemplate, level, awakening int) game.HexagonStats {
	stats := tpl.BaseStats.ApplyGrowth(tpl.GrowthRates, level-1)
	if awakening > 0 {
		stats = stats.Multiply(1 + 0.1*float64(awakening))
	}
	return stats
}
