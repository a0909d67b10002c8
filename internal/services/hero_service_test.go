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

func TestHeroLevelUpRecomputesStats(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	hero := starterHero(t, env, player)
	ctx := context.Background()

	// 100 exp per item; level 1 needs 100 exp, so one item levels once.
	outcome, err := env.heroes.LevelUp(ctx, player.ID, hero.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.OldLevel)
	assert.Equal(t, 2, outcome.NewLevel)
	assert.Greater(t, outcome.Hero.Stats["ATK"], hero.Stats["ATK"])
}

func TestHeroAscendRequiresLevelGate(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	hero := starterHero(t, env, player)
	ctx := context.Background()

	_, err := env.heroes.Ascend(ctx, player.ID, hero.ID)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "hero_cannot_ascend", appErr.Code)
}

func TestHeroEquipUnequipRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	hero := starterHero(t, env, player)
	ctx := context.Background()

	sword := models.PlayerEquipment{PlayerID: player.ID, TemplateID: "iron_sword", Level: 1}
	require.NoError(t, env.db.Create(&sword).Error)

	updated, err := env.heroes.Equip(ctx, player.ID, hero.ID, sword.ID, game.EquipmentWeapon)
	require.NoError(t, err)
	require.NotNil(t, updated.WeaponID)
	assert.Equal(t, sword.ID, *updated.WeaponID)

	var piece models.PlayerEquipment
	require.NoError(t, env.db.First(&piece, "id = ?", sword.ID).Error)
	require.NotNil(t, piece.EquippedByID)
	assert.Equal(t, hero.ID, *piece.EquippedByID)

	updated, err = env.heroes.Unequip(ctx, player.ID, hero.ID, game.EquipmentWeapon)
	require.NoError(t, err)
	assert.Nil(t, updated.WeaponID)

	var after models.PlayerEquipment
	require.NoError(t, env.db.First(&after, "id = ?", sword.ID).Error)
	assert.Nil(t, after.EquippedByID)
}

func TestHeroEquipRejectsWrongSlot(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	hero := starterHero(t, env, player)
	ctx := context.Background()

	armor := models.PlayerEquipment{PlayerID: player.ID, TemplateID: "leather_armor", Level: 1}
	require.NoError(t, env.db.Create(&armor).Error)

	_, err := env.heroes.Equip(ctx, player.ID, hero.ID, armor.ID, game.EquipmentWeapon)
	require.Error(t, err)

	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestHeroEquipStealsFromOtherHero(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	var first, second models.PlayerHero
	require.NoError(t, env.db.First(&first, "player_id = ? AND template_id = ?", player.ID, "quan_binh").Error)
	require.NoError(t, env.db.First(&second, "player_id = ? AND template_id = ?", player.ID, "dan_binh").Error)

	sword := models.PlayerEquipment{PlayerID: player.ID, TemplateID: "iron_sword", Level: 1}
	require.NoError(t, env.db.Create(&sword).Error)

	_, err := env.heroes.Equip(ctx, player.ID, first.ID, sword.ID, game.EquipmentWeapon)
	require.NoError(t, err)
	_, err = env.heroes.Equip(ctx, player.ID, second.ID, sword.ID, game.EquipmentWeapon)
	require.NoError(t, err)

	require.NoError(t, env.db.First(&first, "id = ?", first.ID).Error)
	assert.Nil(t, first.WeaponID)

	var piece models.PlayerEquipment
	require.NoError(t, env.db.First(&piece, "id = ?", sword.ID).Error)
	require.NotNil(t, piece.EquippedByID)
	assert.Equal(t, second.ID, *piece.EquippedByID)
}

func TestHeroListFiltersByElement(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	// Starters: quan_binh (KIM), dan_binh (MOC).
	list, err := env.heroes.List(ctx, player.ID, HeroFilter{Element: "KIM"})
	require.NoError(t, err)
	require.Len(t, list.Heroes, 1)
	assert.Equal(t, "quan_binh", list.Heroes[0].TemplateID)
}
