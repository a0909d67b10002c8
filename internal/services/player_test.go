package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

func TestPlayerApplyCreditsAndDebits(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	res, err := env.players.Apply(ctx, player.ID, ResourceDelta{Gold: 1000, Gems: -100})
	require.NoError(t, err)
	assert.Equal(t, player.Gold+1000, res.Gold)
	assert.Equal(t, player.Gems-100, res.Gems)
}

func TestPlayerApplyNamesShortCurrency(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	_, err := env.players.Apply(ctx, player.ID, ResourceDelta{Gems: -(player.Gems + 1)})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInsufficientFunds, appErr.Code)
	assert.Equal(t, "gems", appErr.Details["currency"])

	// The failed debit must not have touched the wallet.
	after, err := env.players.Get(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, player.Gems, after.Gems)
}

func TestPlayerApplyStaminaClampsAtMax(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	res, err := env.players.Apply(ctx, player.ID, ResourceDelta{Stamina: 9999})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMaxStamina, res.Stamina)
}

func TestPlayerApplyInsufficientStamina(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	_, err := env.players.Apply(ctx, player.ID, ResourceDelta{Stamina: -(player.Stamina + 1)})
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInsufficientStamina, appErr.Code)
}

func TestPlayerAddExpLevels(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	// 1000 to reach level 2, 2000 more for level 3, 500 left over.
	updated, err := env.players.AddExp(ctx, player.ID, 3500)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Level)
	assert.Equal(t, 500, updated.Exp)
}

func TestRegisterGrantsStarterPackage(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)

	assert.Equal(t, 5000, player.Gold)
	assert.Equal(t, 1600, player.Gems)

	var heroCount int64
	require.NoError(t, env.db.Model(&models.PlayerHero{}).
		Where("player_id = ?", player.ID).Count(&heroCount).Error)
	assert.EqualValues(t, 2, heroCount)

	team := defaultTeam(t, env, player)
	assert.True(t, team.IsDefault)
	assert.Equal(t, 1, team.SlotNumber)

	var mountCount int64
	require.NoError(t, env.db.Model(&models.PlayerMount{}).
		Where("player_id = ?", player.ID).Count(&mountCount).Error)
	assert.EqualValues(t, 1, mountCount)
}

func TestPlayerUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	name := "Ngụy Vương"
	avatar := "avatar_tao_thao"
	updated, err := env.players.UpdateProfile(ctx, player.ID, ProfileUpdate{
		DisplayName: &name,
		AvatarID:    &avatar,
	})
	require.NoError(t, err)
	assert.Equal(t, name, updated.DisplayName)
	assert.Equal(t, avatar, updated.AvatarID)

	// A nil field leaves the previous value alone.
	newName := "Hán Tướng"
	updated, err = env.players.UpdateProfile(ctx, player.ID, ProfileUpdate{DisplayName: &newName})
	require.NoError(t, err)
	assert.Equal(t, newName, updated.DisplayName)
	assert.Equal(t, avatar, updated.AvatarID)
}

func TestPlayerStatisticsCountsCollection(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)

	stats, err := env.players.GetStatistics(context.Background(), player.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.HeroesOwned)
	assert.EqualValues(t, 1, stats.MountsOwned)
	assert.EqualValues(t, 1, stats.Teams)
	assert.Zero(t, stats.BattlesFought)
	assert.Zero(t, stats.StagesCleared)
}
