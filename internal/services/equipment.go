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

// EnhanceOutcome reports an enhancement.
type EnhanceOutcome struct {
	Equipment   *models.PlayerEquipment `json:"equipment"`
	NewLevel    int                     `json:"new_level"`
	GoldSpent   int                     `json:"gold_spent"`
	StatsGained map[string]int          `json:"stats_gained"`
}

// FuseOutcome reports a fusion.
type FuseOutcome struct {
	Consumed []uuid.UUID             `json:"consumed"`
	Result   *models.PlayerEquipment `json:"result"`
}

// EquipmentService owns gear enhancement and fusion.
type EquipmentService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	players *PlayerService
	locks   *keyedMutex
}

// NewEquipmentService builds an equipment service.
func NewEquipmentService(db *gorm.DB, cat *catalog.Catalog, players *PlayerService) *EquipmentService {
	return &EquipmentService{db: db, catalog: cat, players: players, locks: newKeyedMutex()}
}

// List returns the player's inventory.
func (s *EquipmentService) List(ctx context.Context, playerID uuid.UUID) ([]models.PlayerEquipment, error) {
	var items []models.PlayerEquipment
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return items, nil
}

// Get loads one owned piece.
func (s *EquipmentService) Get(ctx context.Context, playerID, equipmentID uuid.UUID) (*models.PlayerEquipment, error) {
	var piece models.PlayerEquipment
	err := s.db.WithContext(ctx).First(&piece, "id = ? AND player_id = ?", equipmentID, playerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("equipment", equipmentID.String())
		}
		return nil, apperrors.Internal(err)
	}
	return &piece, nil
}

// Enhance raises a piece one level, debiting the catalog-driven gold
// cost.
func (s *EquipmentService) Enhance(ctx context.Context, playerID, equipmentID uuid.UUID) (*EnhanceOutcome, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var outcome *EnhanceOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var piece models.PlayerEquipment
		if err := tx.First(&piece, "id = ? AND player_id = ?", equipmentID, playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("equipment", equipmentID.String())
			}
			return apperrors.Internal(err)
		}
		tpl, ok := s.catalog.Equipment(piece.TemplateID)
		if !ok {
			return apperrors.NotFound("equipment template", piece.TemplateID)
		}

		eq := rowToGameEquipment(&piece, tpl)
		if !eq.CanEnhance() {
			return apperrors.New("equipment_max_level", "equipment is at its rarity's level cap", 400).
				WithDetail("max_level", eq.MaxLevel())
		}

		cost := eq.EnhanceCost()
		var player models.Player
		if err := tx.First(&player, "id = ?", playerID).Error; err != nil {
			return apperrors.Internal(err)
		}
		if player.Gold < cost {
			return apperrors.InsufficientFunds("gold", cost, player.Gold)
		}
		player.Gold -= cost

		res := eq.Enhance()
		piece.Level = res.NewLevel
		piece.BonusStats = models.IntMap(eq.BonusStats.ToMap())

		if err := tx.Save(&player).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Save(&piece).Error; err != nil {
			return apperrors.Internal(err)
		}

		outcome = &EnhanceOutcome{
			Equipment:   &piece,
			NewLevel:    res.NewLevel,
			GoldSpent:   cost,
			StatsGained: res.StatsGained.ToMap(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// Fuse consumes two or more owned pieces and produces one piece whose
// rarity is one grade above the best input. The result rolls from the
// catalog templates of that rarity, seeded by the first input's type.
func (s *EquipmentService) Fuse(ctx context.Context, playerID uuid.UUID, equipmentIDs []uuid.UUID) (*FuseOutcome, error) {
	if len(equipmentIDs) < 2 {
		return nil, apperrors.Validation("fusion requires at least 2 equipment pieces")
	}
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var outcome *FuseOutcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inputs []models.PlayerEquipment
		if err := tx.Where("id IN ? AND player_id = ?", equipmentIDs, playerID).
			Find(&inputs).Error; err != nil {
			return apperrors.Internal(err)
		}
		if len(inputs) != len(equipmentIDs) {
			return apperrors.NotFound("equipment", "one or more fusion inputs")
		}

		bestRarity := game.RarityCommon
		for _, piece := range inputs {
			if piece.EquippedByID != nil {
				return apperrors.Validation("cannot fuse equipped gear")
			}
			if piece.IsLocked {
				return apperrors.Validation("cannot fuse locked gear")
			}
			tpl, ok := s.catalog.Equipment(piece.TemplateID)
			if !ok {
				return apperrors.NotFound("equipment template", piece.TemplateID)
			}
			if rarityRank(tpl.Rarity) > rarityRank(bestRarity) {
				bestRarity = tpl.Rarity
			}
		}

		firstTpl, _ := s.catalog.Equipment(inputs[0].TemplateID)
		resultTpl := s.pickFusionResult(firstTpl.Type, nextRarity(bestRarity))
		if resultTpl == nil {
			return apperrors.New("equipment_fusion", "no fusion result available for these inputs", 400)
		}

		if err := tx.Where("id IN ?", equipmentIDs).
			Delete(&models.PlayerEquipment{}).Error; err != nil {
			return apperrors.Internal(err)
		}

		result := models.PlayerEquipment{
			PlayerID:   playerID,
			TemplateID: resultTpl.ID,
			Level:      1,
		}
		if err := tx.Create(&result).Error; err != nil {
			return apperrors.Internal(err)
		}

		outcome = &FuseOutcome{Consumed: equipmentIDs, Result: &result}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// pickFusionResult prefers a template matching the seed type at the
// target rarity, falling back to any template of that rarity, then one
// grade lower.
func (s *EquipmentService) pickFusionResult(seedType game.EquipmentType, rarity game.Rarity) *catalog.EquipmentTemplate {
	for _, r := range []game.Rarity{rarity, prevRarity(rarity)} {
		var fallback *catalog.EquipmentTemplate
		for _, tpl := range s.catalog.EquipmentTemplates() {
			if tpl.Rarity != r {
				continue
			}
			if tpl.Type == seedType {
				return tpl
			}
			if fallback == nil {
				fallback = tpl
			}
		}
		if fallback != nil {
			return fallback
		}
	}
	return nil
}

var rarityOrder = []game.Rarity{
	game.RarityCommon, game.RarityRare, game.RarityEpic, game.RarityLegendary, game.RarityMythic,
}

func rarityRank(r game.Rarity) int {
	for i, candidate := range rarityOrder {
		if candidate == r {
			return i
		}
	}
	return 0
}

func nextRarity(r game.Rarity) game.Rarity {
	rank := rarityRank(r)
	if rank+1 < len(rarityOrder) {
		return rarityOrder[rank+1]
	}
	return r
}

func prevRarity(r game.Rarity) game.Rarity {
	rank := rarityRank(r)
	if rank > 0 {
		return rarityOrder[rank-1]
	}
	return r
}

func rowToGameEquipment(row *models.PlayerEquipment, tpl *catalog.EquipmentTemplate) *game.Equipment {
	return &game.Equipment{
		ID:         row.ID.String(),
		TemplateID: tpl.ID,
		Name:       tpl.Name,
		Type:       tpl.Type,
		Rarity:     tpl.Rarity,
		Level:      row.Level,
		BaseStats:  tpl.BaseStats,
		BonusStats: game.StatsFromMap(row.BonusStats),
		SetID:      tpl.SetID,
		IsLocked:   row.IsLocked,
	}
}
