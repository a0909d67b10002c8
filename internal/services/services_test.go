package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ngoa-long/tamquoc/backend/internal/auth"
	"github.com/ngoa-long/tamquoc/backend/internal/catalog"
	"github.com/ngoa-long/tamquoc/backend/internal/config"
	"github.com/ngoa-long/tamquoc/backend/internal/database"
	"github.com/ngoa-long/tamquoc/backend/internal/gacha"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
	"github.com/ngoa-long/tamquoc/backend/internal/session"
)

var playerSeq atomic.Int64

type testEnv struct {
	db  *gorm.DB
	cat *catalog.Catalog

	auth      *AuthService
	players   *PlayerService
	heroes    *HeroService
	teams     *TeamService
	equipment *EquipmentService
	mounts    *MountService
	story     *StoryService
	battles   *BattleService
	gacha     *GachaService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.OpenTest()
	require.NoError(t, err)

	cat := catalog.MustDefault()
	require.NoError(t, catalog.SeedDatabase(db, cat))

	gameCfg := config.GameConfig{
		StaminaRegenInterval: 5 * time.Minute,
		StaminaPerInterval:   1,
		BattleSessionTTL:     time.Hour,
	}
	tokens := auth.NewManager(config.AuthConfig{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		BcryptCost:      4,
	})

	players := NewPlayerService(db, gameCfg)
	story := NewStoryService(db, cat, players)
	sessions := session.NewStore(time.Hour)

	return &testEnv{
		db:        db,
		cat:       cat,
		auth:      NewAuthService(db, tokens, cat),
		players:   players,
		heroes:    NewHeroService(db, cat),
		teams:     NewTeamService(db, cat),
		equipment: NewEquipmentService(db, cat, players),
		mounts:    NewMountService(db, cat, players),
		story:     story,
		battles:   NewBattleService(db, cat, players, story, sessions),
		gacha:     NewGachaService(db, cat, players, gacha.NewMemoryPityStore(), gacha.NewMemoryHistoryStore()),
	}
}

// newPlayer registers a fresh account with the starter roster and
// default team.
func newPlayer(t *testing.T, env *testEnv) *models.Player {
	t.Helper()
	n := playerSeq.Add(1)
	result, err := env.auth.Register(context.Background(),
		fmt.Sprintf("player_%d_%d", time.Now().UnixNano(), n),
		fmt.Sprintf("p%d_%d@example.com", time.Now().UnixNano(), n),
		"password123")
	require.NoError(t, err)
	return result.Player
}

func starterHero(t *testing.T, env *testEnv, player *models.Player) *models.PlayerHero {
	t.Helper()
	var hero models.PlayerHero
	err := env.db.First(&hero, "player_id = ? AND template_id = ?", player.ID, "quan_binh").Error
	require.NoError(t, err)
	return &hero
}

func defaultTeam(t *testing.T, env *testEnv, player *models.Player) *models.Team {
	t.Helper()
	var team models.Team
	err := env.db.Preload("Members").First(&team, "player_id = ? AND is_default = ?", player.ID, true).Error
	require.NoError(t, err)
	return &team
}
