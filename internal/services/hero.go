package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/catalog"
	"github.com/ngoa-long/tamquoc/backend/internal/game"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

// ExpPerItem is the default experience of one exp item.
const ExpPerItem = 100

// HeroFilter narrows hero listings.
type HeroFilter struct {
	Element string
	Rarity  int
	Page    int
	PerPage int
}

// HeroList is a paginated roster page.
type HeroList struct {
	Heroes  []models.PlayerHero `json:"heroes"`
	Total   int64               `json:"total"`
	Page    int                 `json:"page"`
	PerPage int                 `json:"per_page"`
}

// LevelUpOutcome reports a level-up call.
type LevelUpOutcome struct {
	Hero       *models.PlayerHero `json:"hero"`
	OldLevel   int                `json:"old_level"`
	NewLevel   int                `json:"new_level"`
	ExpGained  int                `json:"exp_gained"`
	AtLevelCap bool               `json:"at_level_cap"`
}

// HeroService owns hero progression.
type HeroService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	locks   *keyedMutex
}

// NewHeroService builds a hero service.
func NewHeroService(db *gorm.DB, cat *catalog.Catalog) *HeroService {
	return &HeroService{db: db, catalog: cat, locks: newKeyedMutex()}
}

// List pages through a player's roster with optional element and
// rarity filters.
func (s *HeroService) List(ctx context.Context, playerID uuid.UUID, filter HeroFilter) (*HeroList, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	q := s.db.WithContext(ctx).Model(&models.PlayerHero{}).Where("player_id = ?", playerID)
	if filter.Element != "" {
		q = q.Joins("JOIN hero_templates ON hero_templates.id = player_heros.template_id").
			Where("hero_templates.element = ?", filter.Element)
	}
	if filter.Rarity > 0 {
		if filter.Element == "" {
			q = q.Joins("JOIN hero_templates ON hero_templates.id = player_heros.template_id")
		}
		q = q.Where("hero_templates.rarity = ?", filter.Rarity)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperrors.Internal(err)
	}

	var heroes []models.PlayerHero
	err := q.Order("player_heros.created_at DESC").
		Offset((filter.Page - 1) * filter.PerPage).
		Limit(filter.PerPage).
		Find(&heroes).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &HeroList{Heroes: heroes, Total: total, Page: filter.Page, PerPage: filter.PerPage}, nil
}

// Get loads one owned hero.
func (s *HeroService) Get(ctx context.Context, playerID, heroID uuid.UUID) (*models.PlayerHero, error) {
	var hero models.PlayerHero
	err := s.db.WithContext(ctx).First(&hero, "id = ? AND player_id = ?", heroID, playerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("hero", heroID.String())
		}
		return nil, apperrors.Internal(err)
	}
	return &hero, nil
}

// LevelUp consumes exp items, replays the gain-exp loop and recomputes
// stats at the new level.
func (s *HeroService) LevelUp(ctx context.Context, playerID, heroID uuid.UUID, expItems int) (*LevelUpOutcome, error) {
	if expItems < 0 {
		return nil, apperrors.Validation("exp_items must be non-negative")
	}
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var outcome *LevelUpOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, tpl, err := s.load(tx, playerID, heroID)
		if err != nil {
			return err
		}

		hero := rowToGameHero(row, tpl)
		if row.Level >= hero.MaxLevel() && expItems > 0 {
			return apperrors.New("hero_max_level", "hero is at the level cap for its ascension", 400).
				WithDetail("level", row.Level)
		}

		expGained := expItems * ExpPerItem
		res := hero.GainExp(expGained)

		row.Level = hero.Level
		row.Exp = hero.Exp
		row.Stats = models.IntMap(computeStats(tpl, hero.Level, row.AwakeningLevel).ToMap())
		if err := tx.Save(row).Error; err != nil {
			return apperrors.Internal(err)
		}

		outcome = &LevelUpOutcome{
			Hero:       row,
			OldLevel:   res.OldLevel,
			NewLevel:   res.NewLevel,
			ExpGained:  expGained,
			AtLevelCap: hero.Level >= hero.MaxLevel(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// Ascend raises the level cap by 10 when the level gate is met.
func (s *HeroService) Ascend(ctx context.Context, playerID, heroID uuid.UUID) (*models.PlayerHero, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var out *models.PlayerHero
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, tpl, err := s.load(tx, playerID, heroID)
		if err != nil {
			return err
		}
		hero := rowToGameHero(row, tpl)
		if !hero.CanAscend() {
			return apperrors.New("hero_cannot_ascend", "ascension requirements not met", 400).
				WithDetail("required_level", hero.AscensionRequirement()).
				WithDetail("level", row.Level)
		}
		row.AscensionLevel++
		if err := tx.Save(row).Error; err != nil {
			return apperrors.Internal(err)
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Awaken grants the 10%-per-level stat boost.
func (s *HeroService) Awaken(ctx context.Context, playerID, heroID uuid.UUID) (*models.PlayerHero, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var out *models.PlayerHero
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, tpl, err := s.load(tx, playerID, heroID)
		if err != nil {
			return err
		}
		if row.AwakeningLevel >= game.MaxAwakening {
			return apperrors.New("hero_max_awakening", "hero is fully awakened", 400)
		}
		row.AwakeningLevel++
		row.Stats = models.IntMap(computeStats(tpl, row.Level, row.AwakeningLevel).ToMap())
		if err := tx.Save(row).Error; err != nil {
			return apperrors.Internal(err)
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Equip places an owned piece in a slot, displacing any prior item.
func (s *HeroService) Equip(ctx context.Context, playerID, heroID, equipmentID uuid.UUID, slot game.EquipmentType) (*models.PlayerHero, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var out *models.PlayerHero
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, tpl, err := s.load(tx, playerID, heroID)
		if err != nil {
			return err
		}

		var piece models.PlayerEquipment
		if err := tx.First(&piece, "id = ? AND player_id = ?", equipmentID, playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("equipment", equipmentID.String())
			}
			return apperrors.Internal(err)
		}
		eqTpl, ok := s.catalog.Equipment(piece.TemplateID)
		if !ok {
			return apperrors.NotFound("equipment template", piece.TemplateID)
		}
		if eqTpl.Type != slot {
			return apperrors.Validation("equipment %s is a %s, not a %s", eqTpl.Name, eqTpl.Type, slot)
		}
		if row.Level < eqTpl.RequiredLevel {
			return apperrors.New("equipment_requirements", "hero level too low for this equipment", 400).
				WithDetail("required_level", eqTpl.RequiredLevel)
		}
		if eqTpl.RequiredElement != "" && eqTpl.RequiredElement != tpl.Element {
			return apperrors.New("equipment_requirements", "hero element does not match this equipment", 400).
				WithDetail("required_element", string(eqTpl.RequiredElement))
		}

		// Displace the current occupant of the slot.
		if prev := slotRef(row, slot); prev != nil {
			if err := tx.Model(&models.PlayerEquipment{}).
				Where("id = ?", *prev).
				Update("equipped_by_id", nil).Error; err != nil {
				return apperrors.Internal(err)
			}
		}
		// Pull the piece off whoever held it.
		if piece.EquippedByID != nil && *piece.EquippedByID != heroID {
			if err := clearSlotByEquipment(tx, *piece.EquippedByID, piece.ID); err != nil {
				return err
			}
		}

		setSlotRef(row, slot, &piece.ID)
		piece.EquippedByID = &row.ID
		if err := tx.Save(row).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Save(&piece).Error; err != nil {
			return apperrors.Internal(err)
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Unequip clears a slot.
func (s *HeroService) Unequip(ctx context.Context, playerID, heroID uuid.UUID, slot game.EquipmentType) (*models.PlayerHero, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var out *models.PlayerHero
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, _, err := s.load(tx, playerID, heroID)
		if err != nil {
			return err
		}
		ref := slotRef(row, slot)
		if ref == nil {
			return apperrors.Validation("slot %s is empty", slot)
		}
		if err := tx.Model(&models.PlayerEquipment{}).
			Where("id = ?", *ref).
			Update("equipped_by_id", nil).Error; err != nil {
			return apperrors.Internal(err)
		}
		setSlotRef(row, slot, nil)
		if err := tx.Save(row).Error; err != nil {
			return apperrors.Internal(err)
		}
		out = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *HeroService) load(tx *gorm.DB, playerID, heroID uuid.UUID) (*models.PlayerHero, *catalog.HeroTemplate, error) {
	var row models.PlayerHero
	if err := tx.First(&row, "id = ? AND player_id = ?", heroID, playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.NotFound("hero", heroID.String())
		}
		return nil, nil, apperrors.Internal(err)
	}
	tpl, ok := s.catalog.Hero(row.TemplateID)
	if !ok {
		return nil, nil, apperrors.NotFound("hero template", row.TemplateID)
	}
	return &row, tpl, nil
}

// rowToGameHero builds a progression-only hero; position and equipment
// do not matter here.
func rowToGameHero(row *models.PlayerHero, tpl *catalog.HeroTemplate) *game.Hero {
	stats := game.StatsFromMap(row.Stats)
	if stats == (game.HexagonStats{}) {
		stats = tpl.BaseStats
	}
	hero := game.NewHero(row.ID.String(), row.TemplateID, tpl.Name, tpl.Element, game.GridPosition{}, stats, tpl.Rarity)
	hero.Level = row.Level
	hero.Exp = row.Exp
	hero.Stars = row.Stars
	hero.AscensionLevel = row.AscensionLevel
	hero.AwakeningLevel = row.AwakeningLevel
	hero.GrowthRates = tpl.GrowthRates
	return hero
}

func slotRef(row *models.PlayerHero, slot game.EquipmentType) *uuid.UUID {
	switch slot {
	case game.EquipmentWeapon:
		return row.WeaponID
	case game.EquipmentArmor:
		return row.ArmorID
	case game.EquipmentAccessory:
		return row.AccessoryID
	case game.EquipmentRelic:
		return row.RelicID
	}
	return nil
}

func setSlotRef(row *models.PlayerHero, slot game.EquipmentType, id *uuid.UUID) {
	switch slot {
	case game.EquipmentWeapon:
		row.WeaponID = id
	case game.EquipmentArmor:
		row.ArmorID = id
	case game.EquipmentAccessory:
		row.AccessoryID = id
	case game.EquipmentRelic:
		row.RelicID = id
	}
}

func clearSlotByEquipment(tx *gorm.DB, heroID, equipmentID uuid.UUID) error {
	var other models.PlayerHero
	if err := tx.First(&other, "id = ?", heroID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperrors.Internal(err)
	}
	for _, slot := range []game.EquipmentType{game.EquipmentWeapon, game.EquipmentArmor, game.EquipmentAccessory, game.EquipmentRelic} {
		if ref := slotRef(&other, slot); ref != nil && *ref == equipmentID {
			setSlotRef(&other, slot, nil)
		}
	}
	if err := tx.Save(&other).Error; err != nil {
		return apperrors.Internal(err)
	}
	return nil
}
