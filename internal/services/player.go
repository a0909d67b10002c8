package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/config"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

// ResourceDelta is a wallet mutation. Positive credits, negative debits.
type ResourceDelta struct {
	Gold    int `json:"gold"`
	Gems    int `json:"gems"`
	Stamina int `json:"stamina"`
}

// Resources is a wallet snapshot.
type Resources struct {
	Gold       int `json:"gold"`
	Gems       int `json:"gems"`
	Stamina    int `json:"stamina"`
	MaxStamina int `json:"max_stamina"`
}

// PlayerService owns accounts and wallets.
type PlayerService struct {
	db    *gorm.DB
	game  config.GameConfig
	locks *keyedMutex
}

// NewPlayerService builds a player service.
func NewPlayerService(db *gorm.DB, gameCfg config.GameConfig) *PlayerService {
	return &PlayerService{db: db, game: gameCfg, locks: newKeyedMutex()}
}

// Get loads a player, applying pending stamina regen.
func (s *PlayerService) Get(ctx context.Context, playerID uuid.UUID) (*models.Player, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var player models.Player
	if err := s.db.WithContext(ctx).First(&player, "id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("player", playerID.String())
		}
		return nil, apperrors.Internal(err)
	}

	if gained := player.RegenStamina(time.Now().UTC(), s.game.StaminaRegenInterval, s.game.StaminaPerInterval); gained > 0 {
		if err := s.db.WithContext(ctx).Save(&player).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
	}
	return &player, nil
}

// GetResources returns the wallet snapshot.
func (s *PlayerService) GetResources(ctx context.Context, playerID uuid.UUID) (*Resources, error) {
	player, err := s.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return &Resources{
		Gold:       player.Gold,
		Gems:       player.Gems,
		Stamina:    player.Stamina,
		MaxStamina: player.MaxStamina,
	}, nil
}

// Apply mutates the wallet atomically. A debit that would drive any
// component negative fails naming that component; credits never
// saturate except stamina at max_stamina.
func (s *PlayerService) Apply(ctx context.Context, playerID uuid.UUID, delta ResourceDelta) (*Resources, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var out *Resources
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.First(&player, "id = ?", playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("player", playerID.String())
			}
			return apperrors.Internal(err)
		}

		if delta.Gold < 0 && player.Gold+delta.Gold < 0 {
			return apperrors.InsufficientFunds("gold", -delta.Gold, player.Gold)
		}
		if delta.Gems < 0 && player.Gems+delta.Gems < 0 {
			return apperrors.InsufficientFunds("gems", -delta.Gems, player.Gems)
		}
		if delta.Stamina < 0 && player.Stamina+delta.Stamina < 0 {
			return apperrors.InsufficientStamina(-delta.Stamina, player.Stamina)
		}

		player.Gold += delta.Gold
		player.Gems += delta.Gems
		player.Stamina += delta.Stamina
		if player.Stamina > player.MaxStamina {
			player.Stamina = player.MaxStamina
		}

		if err := tx.Save(&player).Error; err != nil {
			return apperrors.Internal(err)
		}
		out = &Resources{
			Gold:       player.Gold,
			Gems:       player.Gems,
			Stamina:    player.Stamina,
			MaxStamina: player.MaxStamina,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// WithAccount loads the player row, runs fn against it inside one
// transaction while holding the player's lock, and persists the row.
// Mutations that touch the wallet together with other tables go through
// it so they commit or fail as a unit.
func (s *PlayerService) WithAccount(ctx context.Context, playerID uuid.UUID, fn func(tx *gorm.DB, player *models.Player) error) error {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var player models.Player
		if err := tx.First(&player, "id = ?", playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("player", playerID.String())
			}
			return apperrors.Internal(err)
		}
		if err := fn(tx, &player); err != nil {
			return err
		}
		if err := tx.Save(&player).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

// ProfileUpdate carries the editable profile fields; nil leaves a field
// unchanged.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty"`
	AvatarID    *string `json:"avatar_id,omitempty"`
}

// UpdateProfile edits display name and avatar.
func (s *PlayerService) UpdateProfile(ctx context.Context, playerID uuid.UUID, update ProfileUpdate) (*models.Player, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	if update.DisplayName != nil && len(*update.DisplayName) > 64 {
		return nil, apperrors.Validation("display name must be at most 64 characters")
	}
	if update.AvatarID != nil && len(*update.AvatarID) > 64 {
		return nil, apperrors.Validation("avatar id must be at most 64 characters")
	}

	var player models.Player
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&player, "id = ?", playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("player", playerID.String())
			}
			return apperrors.Internal(err)
		}
		if update.DisplayName != nil {
			player.DisplayName = *update.DisplayName
		}
		if update.AvatarID != nil {
			player.AvatarID = *update.AvatarID
		}
		if err := tx.Save(&player).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &player, nil
}

// Statistics is the account-wide progress summary.
type Statistics struct {
	HeroesOwned    int64 `json:"heroes_owned"`
	EquipmentOwned int64 `json:"equipment_owned"`
	MountsOwned    int64 `json:"mounts_owned"`
	Teams          int64 `json:"teams"`
	StagesCleared  int64 `json:"stages_cleared"`
	TotalStars     int64 `json:"total_stars"`
	BattlesFought  int64 `json:"battles_fought"`
	BattlesWon     int64 `json:"battles_won"`
	GachaPulls     int64 `json:"gacha_pulls"`
}

// GetStatistics aggregates the account's collection and battle counters.
func (s *PlayerService) GetStatistics(ctx context.Context, playerID uuid.UUID) (*Statistics, error) {
	db := s.db.WithContext(ctx)
	stats := &Statistics{}

	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.PlayerHero{}, &stats.HeroesOwned},
		{&models.PlayerEquipment{}, &stats.EquipmentOwned},
		{&models.PlayerMount{}, &stats.MountsOwned},
		{&models.Team{}, &stats.Teams},
		{&models.StageProgress{}, &stats.StagesCleared},
		{&models.BattleRecord{}, &stats.BattlesFought},
		{&models.GachaRecord{}, &stats.GachaPulls},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Where("player_id = ?", playerID).Count(c.dest).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
	}

	err := db.Model(&models.BattleRecord{}).
		Where("player_id = ? AND result = ?", playerID, "victory").
		Count(&stats.BattlesWon).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	err = db.Model(&models.StageProgress{}).
		Where("player_id = ?", playerID).
		Select("COALESCE(SUM(best_stars), 0)").
		Scan(&stats.TotalStars).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return stats, nil
}

// AddExp grants account experience, leveling at 1000 exp per level.
func (s *PlayerService) AddExp(ctx context.Context, playerID uuid.UUID, exp int) (*models.Player, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var player models.Player
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&player, "id = ?", playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("player", playerID.String())
			}
			return apperrors.Internal(err)
		}
		player.Exp += exp
		for player.Exp >= player.Level*1000 {
			player.Exp -= player.Level * 1000
			player.Level++
		}
		if err := tx.Save(&player).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &player, nil
}
