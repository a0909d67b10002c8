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

// readyTeam puts both starters on the default team's front row.
func readyTeam(t *testing.T, env *testEnv, player *models.Player) *models.Team {
	t.Helper()
	team := defaultTeam(t, env, player)
	ctx := context.Background()

	var first, second models.PlayerHero
	require.NoError(t, env.db.First(&first, "player_id = ? AND template_id = ?", player.ID, "quan_binh").Error)
	require.NoError(t, env.db.First(&second, "player_id = ? AND template_id = ?", player.ID, "dan_binh").Error)

	_, err := env.teams.AddMember(ctx, player.ID, team.ID, first.ID, 0, 0)
	require.NoError(t, err)
	_, err = env.teams.AddMember(ctx, player.ID, team.ID, second.ID, 1, 0)
	require.NoError(t, err)
	return team
}

func firstLivingEnemy(t *testing.T, snap *BattleSnapshot) string {
	t.Helper()
	for _, e := range snap.Enemies {
		if e.IsAlive {
			return e.ID
		}
	}
	t.Fatal("no living enemy")
	return ""
}

func TestBattleStartRequiresMembers(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	team := defaultTeam(t, env, player)

	_, err := env.battles.Start(context.Background(), player.ID, team.ID, "stage_1_1")
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}

func TestBattleStartDebitsStaminaAndBlocksSecond(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	team := readyTeam(t, env, player)
	ctx := context.Background()

	snap, err := env.battles.Start(ctx, player.ID, team.ID, "stage_1_1")
	require.NoError(t, err)
	assert.Equal(t, "stage_1_1", snap.StageID)
	assert.Len(t, snap.Heroes, 2)
	assert.Len(t, snap.Enemies, 3)

	after, err := env.players.Get(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, player.Stamina-10, after.Stamina)

	_, err = env.battles.Start(ctx, player.ID, team.ID, "stage_1_1")
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeBattleState, appErr.Code)

	active, err := env.battles.Active(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, active.ID)
}

func TestBattleRetreatRecordsAndFrees(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	team := readyTeam(t, env, player)
	ctx := context.Background()

	snap, err := env.battles.Start(ctx, player.ID, team.ID, "stage_1_1")
	require.NoError(t, err)

	outcome, err := env.battles.Retreat(ctx, player.ID, snap.ID)
	require.NoError(t, err)
	assert.True(t, outcome.Ended)
	assert.Equal(t, game.ResultRetreat, outcome.Result)
	assert.Nil(t, outcome.Rewards)

	records, err := env.battles.History(ctx, player.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "retreat", records[0].Result)

	// The slot is free again.
	_, err = env.battles.Start(ctx, player.ID, team.ID, "stage_1_1")
	require.NoError(t, err)
}

func TestBattleStateRejectsOtherPlayers(t *testing.T) {
	env := newTestEnv(t)
	owner := newPlayer(t, env)
	intruder := newPlayer(t, env)
	team := readyTeam(t, env, owner)
	ctx := context.Background()

	snap, err := env.battles.Start(ctx, owner.ID, team.ID, "stage_1_1")
	require.NoError(t, err)

	_, err = env.battles.State(ctx, intruder.ID, snap.ID)
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestBattlePlaysToCompletion(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	team := readyTeam(t, env, player)
	ctx := context.Background()

	snap, err := env.battles.Start(ctx, player.ID, team.ID, "stage_1_1")
	require.NoError(t, err)

	var final *ActionOutcome
	for i := 0; i < 400; i++ {
		require.True(t, snap.IsPlayerTurn, "expected player turn, state %s", snap.State)
		outcome, err := env.battles.Act(ctx, player.ID, snap.ID, ActionRequest{
			Type:      "attack",
			TargetIDs: []string{firstLivingEnemy(t, snap)},
		})
		require.NoError(t, err)
		snap = outcome.Battle
		if outcome.Ended {
			final = outcome
			break
		}
	}
	require.NotNil(t, final, "battle never finished")
	assert.Contains(t, []game.BattleResult{game.ResultVictory, game.ResultDefeat}, final.Result)

	if final.Result == game.ResultVictory {
		require.NotNil(t, final.Rewards)
		assert.GreaterOrEqual(t, final.Rewards.Stars, 1)
		require.NotNil(t, final.Clear)
		assert.True(t, final.Clear.FirstClear)

		after, err := env.players.Get(ctx, player.ID)
		require.NoError(t, err)
		// Enemy gold plus the first-clear payout.
		assert.Greater(t, after.Gold, player.Gold)

		var progress models.StageProgress
		require.NoError(t, env.db.First(&progress,
			"player_id = ? AND stage_id = ?", player.ID, "stage_1_1").Error)
		assert.Equal(t, 1, progress.ClearCount)
	}

	records, err := env.battles.History(ctx, player.ID, 10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, string(final.Result), records[0].Result)

	// Session is gone either way.
	_, err = env.battles.Active(ctx, player.ID)
	require.Error(t, err)
}

func TestBattleActValidatesInput(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	team := readyTeam(t, env, player)
	ctx := context.Background()

	snap, err := env.battles.Start(ctx, player.ID, team.ID, "stage_1_1")
	require.NoError(t, err)

	_, err = env.battles.Act(ctx, player.ID, snap.ID, ActionRequest{Type: "dance"})
	require.Error(t, err)

	_, err = env.battles.Act(ctx, player.ID, snap.ID, ActionRequest{Type: "attack"})
	require.Error(t, err)

	_, err = env.battles.Act(ctx, player.ID, "khong-ton-tai", ActionRequest{Type: "attack", TargetIDs: []string{"x"}})
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestBattleActRejectsUnownedSkill(t *testing.T) {
	env := newTestEnv(t)
	player := newPlayer(t, env)
	team := readyTeam(t, env, player)
	ctx := context.Background()

	snap, err := env.battles.Start(ctx, player.ID, team.ID, "stage_1_1")
	require.NoError(t, err)
	target := firstLivingEnemy(t, snap)

	// A skill id the acting hero does not own is refused before any
	// damage or mana is resolved.
	_, err = env.battles.Act(ctx, player.ID, snap.ID, ActionRequest{
		Type:      "skill",
		SkillID:   "thien_ha_vo_song",
		TargetIDs: []string{target},
	})
	require.Error(t, err)
	var appErr *apperrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	// Heals go through the same ownership check.
	_, err = env.battles.Act(ctx, player.ID, snap.ID, ActionRequest{
		Type:      "heal",
		SkillID:   "thien_ha_vo_song",
		TargetIDs: []string{snap.Heroes[0].ID},
	})
	require.Error(t, err)
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	state, err := env.battles.State(ctx, player.ID, snap.ID)
	require.NoError(t, err)
	assert.True(t, state.IsPlayerTurn)
	for i, e := range state.Enemies {
		assert.Equal(t, snap.Enemies[i].CurrentHP, e.CurrentHP)
	}
}
