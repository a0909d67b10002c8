package services

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/catalog"
	"github.com/ngoa-long/tamquoc/backend/internal/gacha"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

// PullResultItem is one pull as returned to the client.
type PullResultItem struct {
	HeroTemplateID string `json:"hero_template_id"`
	Rarity         int    `json:"rarity"`
	IsNew          bool   `json:"is_new"`
	WasPity        bool   `json:"was_pity"`
	IsFeatured     bool   `json:"is_featured"`
	PlayerHeroID   string `json:"player_hero_id,omitempty"`
}

// PullOutcome reports a completed pull batch.
type PullOutcome struct {
	BannerID  string           `json:"banner_id"`
	Results   []PullResultItem `json:"results"`
	GemsSpent int              `json:"gems_spent"`
	NewPity   int              `json:"new_pity"`
	Resources *Resources       `json:"resources"`
}

// GachaService owns banner pulls: charging gems, rolling, granting
// heroes and keeping pity and history.
type GachaService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	players *PlayerService
	engine  *gacha.Engine
	pity    gacha.PityStore
	history gacha.HistoryStore
	locks   *keyedMutex
}

// NewGachaService builds a gacha service on the given pity and history
// backends.
func NewGachaService(db *gorm.DB, cat *catalog.Catalog, players *PlayerService, pity gacha.PityStore, history gacha.HistoryStore) *GachaService {
	return &GachaService{
		db:      db,
		catalog: cat,
		players: players,
		engine:  gacha.NewEngine(),
		pity:    pity,
		history: history,
		locks:   newKeyedMutex(),
	}
}

// Banners lists the available banners.
func (s *GachaService) Banners(ctx context.Context) []*catalog.Banner {
	return s.catalog.Banners()
}

// Pity returns the player's pity counter on a banner.
func (s *GachaService) Pity(ctx context.Context, playerID uuid.UUID, bannerID string) (int, error) {
	if _, ok := s.catalog.Banner(bannerID); !ok {
		return 0, apperrors.NotFound("banner", bannerID)
	}
	pity, err := s.pity.Get(ctx, playerID.String(), bannerID)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return pity, nil
}

// History lists the player's pull history, newest first.
func (s *GachaService) History(ctx context.Context, playerID uuid.UUID, limit int) ([]gacha.HistoryEntry, error) {
	entries, err := s.history.List(ctx, playerID.String(), limit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return entries, nil
}

// Pull charges gems up front, rolls count pulls threading the pity
// counter, grants the heroes, and records history. Counts of 1 and 10
// are sold.
func (s *GachaService) Pull(ctx context.Context, playerID uuid.UUID, bannerID string, count int) (*PullOutcome, error) {
	banner, ok := s.catalog.Banner(bannerID)
	if !ok {
		return nil, apperrors.NotFound("banner", bannerID)
	}
	cost, err := gacha.Cost(banner, count)
	if err != nil {
		return nil, apperrors.Validation("pull count must be 1 or 10")
	}

	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	pity, err := s.pity.Get(ctx, playerID.String(), bannerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	resources, err := s.players.Apply(ctx, playerID, ResourceDelta{Gems: -cost})
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rolls, err := s.engine.RollMulti(banner, pity, count, rng)
	if err != nil {
		// Content bug; put the gems back.
		_, _ = s.players.Apply(ctx, playerID, ResourceDelta{Gems: cost})
		return nil, apperrors.Internal(err)
	}

	outcome := &PullOutcome{
		BannerID:  bannerID,
		GemsSpent: cost,
		Resources: resources,
	}
	now := time.Now().UTC()
	entries := make([]gacha.HistoryEntry, 0, count)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, roll := range rolls {
			tpl, ok := s.catalog.Hero(roll.HeroTemplateID)
			if !ok {
				return apperrors.NotFound("hero template", roll.HeroTemplateID)
			}

			var owned int64
			if err := tx.Model(&models.PlayerHero{}).
				Where("player_id = ? AND template_id = ?", playerID, roll.HeroTemplateID).
				Count(&owned).Error; err != nil {
				return apperrors.Internal(err)
			}
			isNew := owned == 0

			hero := models.PlayerHero{
				PlayerID:   playerID,
				TemplateID: tpl.ID,
				Level:      1,
				Stars:      tpl.Rarity,
				Stats:      models.IntMap(tpl.BaseStats.ToMap()),
			}
			if err := tx.Create(&hero).Error; err != nil {
				return apperrors.Internal(err)
			}

			record := models.GachaRecord{
				PlayerID:       playerID,
				BannerID:       bannerID,
				HeroTemplateID: roll.HeroTemplateID,
				Rarity:         roll.Rarity,
				IsNew:          isNew,
				WasPity:        roll.WasPity,
			}
			if err := tx.Create(&record).Error; err != nil {
				return apperrors.Internal(err)
			}

			outcome.Results = append(outcome.Results, PullResultItem{
				HeroTemplateID: roll.HeroTemplateID,
				Rarity:         roll.Rarity,
				IsNew:          isNew,
				WasPity:        roll.WasPity,
				IsFeatured:     roll.IsFeatured,
				PlayerHeroID:   hero.ID.String(),
			})
			entries = append(entries, gacha.HistoryEntry{
				BannerID:       bannerID,
				HeroTemplateID: roll.HeroTemplateID,
				Rarity:         roll.Rarity,
				IsNew:          isNew,
				WasPity:        roll.WasPity,
				PulledAt:       now,
			})
		}
		return s.pruneRecords(tx, playerID)
	})
	if err != nil {
		return nil, err
	}

	outcome.NewPity = rolls[len(rolls)-1].NewPity
	if err := s.pity.Set(ctx, playerID.String(), bannerID, outcome.NewPity); err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.history.Append(ctx, playerID.String(), entries); err != nil {
		return nil, apperrors.Internal(err)
	}
	return outcome, nil
}

// DBPityStore keeps pity counters in the database, the fallback when
// redis is not configured.
type DBPityStore struct {
	db *gorm.DB
}

// NewDBPityStore wraps the database as a gacha.PityStore.
func NewDBPityStore(db *gorm.DB) *DBPityStore {
	return &DBPityStore{db: db}
}

func (s *DBPityStore) Get(ctx context.Context, playerID, bannerID string) (int, error) {
	var row models.PityState
	err := s.db.WithContext(ctx).
		First(&row, "player_id = ? AND banner_id = ?", playerID, bannerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Counter, nil
}

func (s *DBPityStore) Set(ctx context.Context, playerID, bannerID string, value int) error {
	id, err := uuid.Parse(playerID)
	if err != nil {
		return err
	}
	row := models.PityState{PlayerID: id, BannerID: bannerID, Counter: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "banner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"counter", "updated_at"}),
	}).Create(&row).Error
}

// pruneRecords drops gacha records beyond the history cap, oldest
// first.
func (s *GachaService) pruneRecords(tx *gorm.DB, playerID uuid.UUID) error {
	var stale []uuid.UUID
	err := tx.Model(&models.GachaRecord{}).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Offset(gacha.HistoryCap).
		Limit(gacha.HistoryCap).
		Pluck("id", &stale).Error
	if err != nil {
		return apperrors.Internal(err)
	}
	if len(stale) > 0 {
		if err := tx.Where("id IN ?", stale).Delete(&models.GachaRecord{}).Error; err != nil {
			return apperrors.Internal(err)
		}
	}
	return nil
}
