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

func TestGachaPullChargesAndGrants(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	outcome, err := env.gacha.Pull(ctx, player.ID, "standard", 10)
	require.NoError(t, err)
	assert.Equal(t, 1440, outcome.GemsSpent)
	assert.Equal(t, player.Gems-1440, outcome.Resources.Gems)
	require.Len(t, outcome.Results, 10)

	// Ten fresh hero rows on top of the two starters.
	var count int64
	require.NoError(t, env.db.Model(&models.PlayerHero{}).
		Where("player_id = ?", player.ID).Count(&count).Error)
	assert.EqualValues(t, 12, count)

	var records int64
	require.NoError(t, env.db.Model(&models.GachaRecord{}).
		Where("player_id = ?", player.ID).Count(&records).Error)
	assert.EqualValues(t, 10, records)

	history, err := env.gacha.History(ctx, player.ID, 50)
	require.NoError(t, err)
	assert.Len(t, history, 10)
}

func TestGachaPullRejectsBadCount(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)

	_, err := env.gacha.Pull(context.Background(), player.ID, "standard", 5)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestGachaPullInsufficientGems(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	// Starter wallet covers one ten-pull and one single, not two tens.
	_, err := env.gacha.Pull(ctx, player.ID, "standard", 10)
	require.NoError(t, err)

	_, err = env.gacha.Pull(ctx, player.ID, "standard", 10)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInsufficientFunds, appErr.Code)
	assert.Equal(t, "gems", appErr.Details["currency"])
}

func TestGachaPityCounterAdvances(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	before, err := env.gacha.Pity(ctx, player.ID, "standard")
	require.NoError(t, err)
	assert.Zero(t, before)

	outcome, err := env.gacha.Pull(ctx, player.ID, "standard", 1)
	require.NoError(t, err)

	after, err := env.gacha.Pity(ctx, player.ID, "standard")
	require.NoError(t, err)
	assert.Equal(t, outcome.NewPity, after)

	if outcome.Results[0].Rarity == 5 {
		assert.Zero(t, after)
	} else {
		assert.Equal(t, 1, after)
	}
}

func TestGachaIsNewOnlyOnFirstCopy(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	outcome, err := env.gacha.Pull(ctx, player.ID, "standard", 10)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, res := range outcome.Results {
		if seen[res.HeroTemplateID] {
			assert.False(t, res.IsNew, "duplicate %s flagged new", res.HeroTemplateID)
		}
		seen[res.HeroTemplateID] = true
	}
}

func TestGachaUnknownBanner(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)

	_, err := env.gacha.Pull(context.Background(), player.ID, "khong_co", 1)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
