package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/game"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

func starterMountRow(t *testing.T, env *testEnv, player *models.Player) *models.PlayerMount {
	t.Helper()
	var row models.PlayerMount
	err := env.db.First(&row, "player_id = ? AND template_id = ?", player.ID, "chien_ma").Error
	require.NoError(t, err)
	return &row
}

func TestStarterMountGranted(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)

	mounts, err := env.mounts.List(context.Background(), player.ID)
	require.NoError(t, err)
	require.Len(t, mounts, 1)
	assert.Equal(t, "Chiến Mã", mounts[0].Name)
	assert.Equal(t, game.MountHorse, mounts[0].Type)
	// Level 1, bond 1: no scaling yet.
	assert.Equal(t, 15, mounts[0].EffectiveStats.SPD)
}

func TestMountTrainDebitsGoldAndBuildsBond(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	row := starterMountRow(t, env, player)
	ctx := context.Background()

	view, err := env.mounts.Train(ctx, player.ID, row.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, view.Mount.BondPoints)
	assert.Equal(t, 1, view.Mount.BondLevel)
	assert.Equal(t, 50, view.Mount.Exp)

	after, err := env.players.Get(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, player.Gold-200, after.Gold)

	// Three more sessions close the first bond level.
	for i := 0; i < 3; i++ {
		view, err = env.mounts.Train(ctx, player.ID, row.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, view.Mount.BondLevel)
	assert.Equal(t, 0, view.Mount.BondPoints)
	// 200 exp total: level 2 costs 100, the rest sits below the
	// 200-exp gate for level 3.
	assert.Equal(t, 2, view.Mount.Level)
	assert.Equal(t, 100, view.Mount.Exp)
}

func TestMountAssignIsExclusive(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	row := starterMountRow(t, env, player)
	ctx := context.Background()

	var first, second models.PlayerHero
	require.NoError(t, env.db.First(&first, "player_id = ? AND template_id = ?", player.ID, "quan_binh").Error)
	require.NoError(t, env.db.First(&second, "player_id = ? AND template_id = ?", player.ID, "dan_binh").Error)

	hero, err := env.mounts.Assign(ctx, player.ID, first.ID, row.ID)
	require.NoError(t, err)
	require.NotNil(t, hero.MountID)
	assert.Equal(t, row.ID, *hero.MountID)

	// Reassigning to another hero dismounts the first.
	hero, err = env.mounts.Assign(ctx, player.ID, second.ID, row.ID)
	require.NoError(t, err)
	require.NotNil(t, hero.MountID)

	require.NoError(t, env.db.First(&first, "id = ?", first.ID).Error)
	assert.Nil(t, first.MountID)

	hero, err = env.mounts.Unassign(ctx, player.ID, second.ID)
	require.NoError(t, err)
	assert.Nil(t, hero.MountID)
}

func TestMountEvolveRejectsHorses(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	row := starterMountRow(t, env, player)

	_, err := env.mounts.Evolve(context.Background(), player.ID, row.ID)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestDragonEvolvesAtLevelGate(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	dragon := models.PlayerMount{
		PlayerID:   player.ID,
		TemplateID: "thanh_long",
		Level:      20,
		BondLevel:  1,
	}
	require.NoError(t, env.db.Create(&dragon).Error)

	view, err := env.mounts.Get(ctx, player.ID, dragon.ID)
	require.NoError(t, err)
	assert.True(t, view.CanEvolve)

	view, err = env.mounts.Evolve(ctx, player.ID, dragon.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Mount.EvolutionStage)
	// Stage 1 folds its stat bonus into the dragon's base line.
	assert.GreaterOrEqual(t, view.EffectiveStats.HP, 800)

	// Stage 2 needs level 40.
	_, err = env.mounts.Evolve(ctx, player.ID, dragon.ID)
	require.Error(t, err)
}
