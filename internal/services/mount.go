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

// Training grants a fixed bond and exp packet per session.
const (
	mountTrainGoldCost   = 200
	mountTrainBondPoints = 25
	mountTrainExp        = 50
)

// MountView is an owned mount with its live derived state.
type MountView struct {
	Mount          *models.PlayerMount `json:"mount"`
	Name           string              `json:"name"`
	Type           game.MountType      `json:"type"`
	Rarity         int                 `json:"rarity"`
	Element        game.Element        `json:"element,omitempty"`
	EffectiveStats game.HexagonStats   `json:"effective_stats"`
	TeamBonuses    []game.TeamBonus    `json:"team_bonuses,omitempty"`
	CanEvolve      bool                `json:"can_evolve"`
}

// MountService owns mount progression and rider assignment.
type MountService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	players *PlayerService
	locks   *keyedMutex
}

// NewMountService builds a mount service.
func NewMountService(db *gorm.DB, cat *catalog.Catalog, players *PlayerService) *MountService {
	return &MountService{db: db, catalog: cat, players: players, locks: newKeyedMutex()}
}

// List returns the player's stable.
func (s *MountService) List(ctx context.Context, playerID uuid.UUID) ([]MountView, error) {
	var rows []models.PlayerMount
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	out := make([]MountView, 0, len(rows))
	for i := range rows {
		view, err := s.view(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *view)
	}
	return out, nil
}

// Get returns one owned mount.
func (s *MountService) Get(ctx context.Context, playerID, mountID uuid.UUID) (*MountView, error) {
	row, err := s.load(s.db.WithContext(ctx), playerID, mountID)
	if err != nil {
		return nil, err
	}
	return s.view(row)
}

// Train spends gold on a training session, granting bond points and exp.
func (s *MountService) Train(ctx context.Context, playerID, mountID uuid.UUID) (*MountView, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	row, err := s.load(s.db.WithContext(ctx), playerID, mountID)
	if err != nil {
		return nil, err
	}
	tpl, ok := s.catalog.Mount(row.TemplateID)
	if !ok {
		return nil, apperrors.NotFound("mount template", row.TemplateID)
	}

	if _, err := s.players.Apply(ctx, playerID, ResourceDelta{Gold: -mountTrainGoldCost}); err != nil {
		return nil, err
	}

	mount := tpl.Instantiate(row.ID.String(), row.Level, row.BondLevel, row.BondPoints)
	mount.AddBondPoints(mountTrainBondPoints)

	row.BondLevel = mount.BondLevel
	row.BondPoints = mount.BondPoints
	row.Exp += mountTrainExp
	for row.Exp >= row.Level*100 {
		row.Exp -= row.Level * 100
		row.Level++
	}
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.view(row)
}

// Evolve advances a dragon to its next evolution stage.
func (s *MountService) Evolve(ctx context.Context, playerID, mountID uuid.UUID) (*MountView, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	row, err := s.load(s.db.WithContext(ctx), playerID, mountID)
	if err != nil {
		return nil, err
	}
	tpl, ok := s.catalog.Mount(row.TemplateID)
	if !ok {
		return nil, apperrors.NotFound("mount template", row.TemplateID)
	}
	if tpl.Type != game.MountDragon {
		return nil, apperrors.Validation("mount %s is not a dragon", row.ID)
	}

	dragon := s.dragon(tpl, row)
	if !dragon.Evolve() {
		return nil, apperrors.Validation("mount %s cannot evolve yet", row.ID).
			WithDetail("level", row.Level).
			WithDetail("evolution_stage", row.EvolutionStage)
	}
	row.EvolutionStage = dragon.EvolutionStage
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return s.view(row)
}

// Assign mounts a hero. A mount carries one rider, so any other hero
// riding it is dismounted first.
func (s *MountService) Assign(ctx context.Context, playerID, heroID, mountID uuid.UUID) (*models.PlayerHero, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var hero models.PlayerHero
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&hero, "id = ? AND player_id = ?", heroID, playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("hero", heroID.String())
			}
			return apperrors.Internal(err)
		}
		if _, err := s.load(tx, playerID, mountID); err != nil {
			return err
		}
		err := tx.Model(&models.PlayerHero{}).
			Where("player_id = ? AND mount_id = ?", playerID, mountID).
			Update("mount_id", nil).Error
		if err != nil {
			return apperrors.Internal(err)
		}
		hero.MountID = &mountID
		if err := tx.Save(&hero).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &hero, nil
}

// Unassign dismounts a hero.
func (s *MountService) Unassign(ctx context.Context, playerID, heroID uuid.UUID) (*models.PlayerHero, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var hero models.PlayerHero
	err := s.db.WithContext(ctx).First(&hero, "id = ? AND player_id = ?", heroID, playerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("hero", heroID.String())
		}
		return nil, apperrors.Internal(err)
	}
	hero.MountID = nil
	if err := s.db.WithContext(ctx).Save(&hero).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return &hero, nil
}

func (s *MountService) load(tx *gorm.DB, playerID, mountID uuid.UUID) (*models.PlayerMount, error) {
	var row models.PlayerMount
	err := tx.First(&row, "id = ? AND player_id = ?", mountID, playerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("mount", mountID.String())
		}
		return nil, apperrors.Internal(err)
	}
	return &row, nil
}

func (s *MountService) view(row *models.PlayerMount) (*MountView, error) {
	tpl, ok := s.catalog.Mount(row.TemplateID)
	if !ok {
		return nil, apperrors.NotFound("mount template", row.TemplateID)
	}
	view := &MountView{
		Mount:  row,
		Name:   tpl.Name,
		Type:   tpl.Type,
		Rarity: tpl.Rarity,
	}
	if tpl.Type == game.MountDragon {
		dragon := s.dragon(tpl, row)
		view.Element = tpl.Element
		view.EffectiveStats = dragon.EffectiveStats()
		view.TeamBonuses = dragon.ScaledTeamBonuses()
		view.CanEvolve = dragon.CanEvolve()
	} else {
		mount := tpl.Instantiate(row.ID.String(), row.Level, row.BondLevel, row.BondPoints)
		view.EffectiveStats = mount.EffectiveStats()
		view.TeamBonuses = mount.ScaledTeamBonuses()
	}
	return view, nil
}

// dragon hydrates a dragon, folding already-reached evolution bonuses
// into the base stats.
func (s *MountService) dragon(tpl *catalog.MountTemplate, row *models.PlayerMount) *game.Dragon {
	d := &game.Dragon{
		Mount:          *tpl.Instantiate(row.ID.String(), row.Level, row.BondLevel, row.BondPoints),
		Element:        tpl.Element,
		AwakeningLevel: row.AwakeningLevel,
		EvolutionStage: row.EvolutionStage,
		Evolutions:     tpl.Evolutions,
	}
	for _, stage := range tpl.Evolutions {
		if stage.Stage <= row.EvolutionStage {
			d.BaseStats = d.BaseStats.Add(stage.StatBonus)
		}
	}
	return d
}
