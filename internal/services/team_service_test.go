package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

func TestTeamAddMemberInvariants(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	team := defaultTeam(t, env, player)
	ctx := context.Background()

	var first, second models.PlayerHero
	require.NoError(t, env.db.First(&first, "player_id = ? AND template_id = ?", player.ID, "quan_binh").Error)
	require.NoError(t, env.db.First(&second, "player_id = ? AND template_id = ?", player.ID, "dan_binh").Error)

	updated, err := env.teams.AddMember(ctx, player.ID, team.ID, first.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, updated.Members, 1)

	// Same hero twice.
	_, err = env.teams.AddMember(ctx, player.ID, team.ID, first.ID, 1, 1)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)

	// Same position twice.
	_, err = env.teams.AddMember(ctx, player.ID, team.ID, second.ID, 0, 0)
	require.Error(t, err)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)

	// Off-grid position.
	_, err = env.teams.AddMember(ctx, player.ID, team.ID, second.ID, 3, 0)
	require.Error(t, err)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	updated, err = env.teams.AddMember(ctx, player.ID, team.ID, second.ID, 1, 0)
	require.NoError(t, err)
	assert.Len(t, updated.Members, 2)

	updated, err = env.teams.RemoveMember(ctx, player.ID, team.ID, second.ID)
	require.NoError(t, err)
	assert.Len(t, updated.Members, 1)
}

func TestTeamMoveMember(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	team := defaultTeam(t, env, player)
	ctx := context.Background()

	var first, second models.PlayerHero
	require.NoError(t, env.db.First(&first, "player_id = ? AND template_id = ?", player.ID, "quan_binh").Error)
	require.NoError(t, env.db.First(&second, "player_id = ? AND template_id = ?", player.ID, "dan_binh").Error)

	_, err := env.teams.AddMember(ctx, player.ID, team.ID, first.ID, 0, 0)
	require.NoError(t, err)
	_, err = env.teams.AddMember(ctx, player.ID, team.ID, second.ID, 1, 0)
	require.NoError(t, err)

	updated, err := env.teams.MoveMember(ctx, player.ID, team.ID, first.ID, 2, 2)
	require.NoError(t, err)
	for _, m := range updated.Members {
		if m.HeroID == first.ID {
			assert.Equal(t, 2, m.PosX)
			assert.Equal(t, 2, m.PosY)
		}
	}

	// Moving onto an occupied cell fails.
	_, err = env.teams.MoveMember(ctx, player.ID, team.ID, first.ID, 1, 0)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)

	// Heroes not on the team cannot be moved.
	_, err = env.teams.MoveMember(ctx, player.ID, team.ID, uuid.New(), 2, 0)
	require.Error(t, err)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestFormationsListed(t *testing.T) {
	env := newTestEnv(t)
	formations := env.teams.Formations()
	require.NotEmpty(t, formations)

	ids := make([]string, 0, len(formations))
	for _, f := range formations {
		ids = append(ids, f.ID)
	}
	assert.Contains(t, ids, "ngu_hanh_tran")
}

func TestTeamDefaultCannotBeDeleted(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	team := defaultTeam(t, env, player)

	err := env.teams.Delete(context.Background(), player.ID, team.ID)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "team_default", appErr.Code)
}

func TestTeamPerPlayerCap(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	// One default team exists; nine more reach the cap of ten.
	for i := 0; i < 9; i++ {
		_, err := env.teams.Create(ctx, player.ID, fmt.Sprintf("Đội %d", i+2))
		require.NoError(t, err)
	}
	_, err := env.teams.Create(ctx, player.ID, "Một đội quá nhiều")
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "team_limit", appErr.Code)
}

func TestTeamUpdateFormationValidated(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	team := defaultTeam(t, env, player)
	ctx := context.Background()

	bad := "khong_ton_tai"
	_, err := env.teams.Update(ctx, player.ID, team.ID, nil, &bad)
	require.Error(t, err)

	good := "ngu_hanh_tran"
	updated, err := env.teams.Update(ctx, player.ID, team.ID, nil, &good)
	require.NoError(t, err)
	assert.Equal(t, good, updated.FormationID)
}

func TestTeamDeleteRemovesMembers(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	ctx := context.Background()

	team, err := env.teams.Create(ctx, player.ID, "Đội phụ")
	require.NoError(t, err)

	hero := starterHero(t, env, player)
	_, err = env.teams.AddMember(ctx, player.ID, team.ID, hero.ID, 0, 0)
	require.NoError(t, err)

	require.NoError(t, env.teams.Delete(ctx, player.ID, team.ID))

	var count int64
	require.NoError(t, env.db.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&count).Error)
	assert.Zero(t, count)
}
