package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/catalog"
	"github.com/ngoa-long/tamquoc/backend/internal/game"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
	"github.com/ngoa-long/tamquoc/backend/internal/session"
)

// Caps the enemy turn loop so a stalled battle cannot spin forever.
const maxAITurnsPerAction = 50

// CombatantView is one unit's client-facing battle state.
type CombatantView struct {
	ID         string       `json:"id"`
	TemplateID string       `json:"template_id"`
	Name       string       `json:"name"`
	Element    game.Element `json:"element"`
	Position   struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"position"`
	CurrentHP   int  `json:"current_hp"`
	MaxHP       int  `json:"max_hp"`
	CurrentMana int  `json:"current_mana"`
	IsAlive     bool `json:"is_alive"`
	IsBoss      bool `json:"is_boss,omitempty"`
	Phase       int  `json:"phase,omitempty"`
}

// BattleSnapshot is the client-facing battle state.
type BattleSnapshot struct {
	ID             string              `json:"id"`
	StageID        string              `json:"stage_id"`
	State          game.BattleState    `json:"state"`
	TurnNumber     int                 `json:"turn_number"`
	IsPlayerTurn   bool                `json:"is_player_turn"`
	CurrentActorID string              `json:"current_actor_id,omitempty"`
	Heroes         []CombatantView     `json:"heroes"`
	Enemies        []CombatantView     `json:"enemies"`
	ActionLog      []game.BattleAction `json:"action_log,omitempty"`
}

// ActionRequest is one player action inside a battle.
type ActionRequest struct {
	Type      string   `json:"type"` // attack, skill, heal
	SkillID   string   `json:"skill_id,omitempty"`
	TargetIDs []string `json:"target_ids"`
}

// ActionOutcome reports a resolved action plus any enemy turns taken
// before control returns to the player, and the terminal payout when
// the action ended the battle.
type ActionOutcome struct {
	Attack  *game.AttackResult `json:"attack,omitempty"`
	Skill   *game.SkillResult  `json:"skill,omitempty"`
	Battle  *BattleSnapshot    `json:"battle"`
	Ended   bool               `json:"ended"`
	Result  game.BattleResult  `json:"result,omitempty"`
	Rewards *game.Rewards      `json:"rewards,omitempty"`
	Clear   *ClearOutcome      `json:"clear,omitempty"`
}

// BattleService drives battles end to end: access and stamina on start,
// action resolution and AI turns in the middle, rewards and history on
// finish.
type BattleService struct {
	db       *gorm.DB
	catalog  *catalog.Catalog
	players  *PlayerService
	story    *StoryService
	sessions *session.Store
	engine   *game.Engine
}

// NewBattleService builds a battle service.
func NewBattleService(db *gorm.DB, cat *catalog.Catalog, players *PlayerService, story *StoryService, sessions *session.Store) *BattleService {
	return &BattleService{
		db:       db,
		catalog:  cat,
		players:  players,
		story:    story,
		sessions: sessions,
		engine:   game.NewEngine(),
	}
}

// Start opens a battle on a stage with a team, debiting the stage's
// stamina cost. One active battle per player.
func (s *BattleService) Start(ctx context.Context, playerID, teamID uuid.UUID, stageID string) (*BattleSnapshot, error) {
	if id, ok := s.sessions.ActiveBattleID(playerID.String()); ok {
		return nil, apperrors.BattleState("player already has an active battle").
			WithDetail("battle_id", id)
	}

	stage, err := s.story.CheckAccess(ctx, playerID, stageID)
	if err != nil {
		return nil, err
	}

	var team models.Team
	err = s.db.WithContext(ctx).Preload("Members").
		First(&team, "id = ? AND player_id = ?", teamID, playerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("team", teamID.String())
		}
		return nil, apperrors.Internal(err)
	}
	if len(team.Members) == 0 {
		return nil, apperrors.Validation("team has no members")
	}

	heroes, heroSkills, err := s.loadHeroes(ctx, &team)
	if err != nil {
		return nil, err
	}
	enemies, enemySkills, err := s.spawnEnemies(stage)
	if err != nil {
		return nil, err
	}

	if _, err := s.players.Apply(ctx, playerID, ResourceDelta{Stamina: -stage.StaminaCost}); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	battle := s.engine.StartBattle(uuid.New().String(), playerID.String(), stageID, heroes, enemies, rng)
	for id, skills := range heroSkills {
		battle.RegisterSkills(id, skills)
	}
	for id, skills := range enemySkills {
		battle.RegisterSkills(id, skills)
	}

	if err := s.sessions.Put(battle); err != nil {
		// Refund the stamina; the session slot was taken after all.
		_, _ = s.players.Apply(ctx, playerID, ResourceDelta{Stamina: stage.StaminaCost})
		return nil, apperrors.BattleState("player already has an active battle")
	}

	// A fast enemy may open the battle.
	s.runEnemyTurns(battle)
	if result := s.engine.CheckEnd(battle); result != "" {
		battle.End(result)
	}

	snap := snapshot(battle)
	return snap, nil
}

// State returns the live battle snapshot.
func (s *BattleService) State(ctx context.Context, playerID uuid.UUID, battleID string) (*BattleSnapshot, error) {
	var snap *BattleSnapshot
	err := s.sessions.View(battleID, func(b *game.Battle) error {
		if b.PlayerID != playerID.String() {
			return apperrors.Forbidden("battle belongs to another player")
		}
		snap = snapshot(b)
		return nil
	})
	if err != nil {
		return nil, s.mapSessionErr(err, battleID)
	}
	return snap, nil
}

// Active returns the player's live battle snapshot, if any.
func (s *BattleService) Active(ctx context.Context, playerID uuid.UUID) (*BattleSnapshot, error) {
	id, ok := s.sessions.ActiveBattleID(playerID.String())
	if !ok {
		return nil, apperrors.NotFound("active battle", "")
	}
	return s.State(ctx, playerID, id)
}

// Act resolves one player action, then plays enemy turns until control
// returns to the player or the battle ends. A finished battle pays out
// and leaves the session store before Act returns.
func (s *BattleService) Act(ctx context.Context, playerID uuid.UUID, battleID string, req ActionRequest) (*ActionOutcome, error) {
	outcome := &ActionOutcome{}

	err := s.sessions.Update(battleID, func(b *game.Battle) error {
		if b.PlayerID != playerID.String() {
			return apperrors.Forbidden("battle belongs to another player")
		}
		if b.IsEnded() {
			return apperrors.BattleState("battle has ended")
		}
		if !b.IsPlayerTurn() {
			return apperrors.BattleState("not the player's turn")
		}
		actor := b.CurrentActor()
		if actor == nil {
			return apperrors.BattleState("no combatant can act")
		}

		switch req.Type {
		case "attack":
			if len(req.TargetIDs) != 1 {
				return apperrors.Validation("attack takes exactly one target")
			}
			res, err := s.engine.ExecuteAttack(b, actor.Char().ID, req.TargetIDs[0], 1.0)
			if err != nil {
				return mapEngineErr(err)
			}
			outcome.Attack = res
		case "skill":
			if req.SkillID == "" {
				return apperrors.Validation("skill_id is required")
			}
			res, err := s.engine.ExecuteSkill(b, actor.Char().ID, req.SkillID, req.TargetIDs)
			if err != nil {
				return mapEngineErr(err)
			}
			outcome.Skill = res
		case "heal":
			if req.SkillID == "" {
				return apperrors.Validation("skill_id is required")
			}
			res, err := s.engine.ExecuteHeal(b, actor.Char().ID, req.SkillID, req.TargetIDs)
			if err != nil {
				return mapEngineErr(err)
			}
			outcome.Skill = res
		default:
			return apperrors.Validation("unknown action type %q", req.Type)
		}

		if result := s.engine.CheckEnd(b); result != "" {
			b.End(result)
		} else {
			s.engine.AdvanceTurn(b)
			s.runEnemyTurns(b)
			if result := s.engine.CheckEnd(b); result != "" {
				b.End(result)
			}
		}

		outcome.Battle = snapshot(b)
		if b.IsEnded() {
			outcome.Ended = true
			outcome.Result = stateResult(b.State)
			if b.State == game.StateVictory {
				rewards := s.engine.CalculateRewards(b)
				outcome.Rewards = &rewards
			}
		}
		return nil
	})
	if err != nil {
		return nil, s.mapSessionErr(err, battleID)
	}

	if outcome.Ended {
		if err := s.finalize(ctx, playerID, battleID, outcome); err != nil {
			return nil, err
		}
	}
	return outcome, nil
}

// Retreat concedes the battle. Stamina is not refunded.
func (s *BattleService) Retreat(ctx context.Context, playerID uuid.UUID, battleID string) (*ActionOutcome, error) {
	outcome := &ActionOutcome{Ended: true, Result: game.ResultRetreat}

	err := s.sessions.Update(battleID, func(b *game.Battle) error {
		if b.PlayerID != playerID.String() {
			return apperrors.Forbidden("battle belongs to another player")
		}
		if b.IsEnded() {
			return apperrors.BattleState("battle has ended")
		}
		b.End(game.ResultRetreat)
		outcome.Battle = snapshot(b)
		return nil
	})
	if err != nil {
		return nil, s.mapSessionErr(err, battleID)
	}

	if err := s.finalize(ctx, playerID, battleID, outcome); err != nil {
		return nil, err
	}
	return outcome, nil
}

// History lists the player's battle records, newest first.
func (s *BattleService) History(ctx context.Context, playerID uuid.UUID, limit int) ([]models.BattleRecord, error) {
	if limit <= 0 || limit > game.BattleHistoryCap {
		limit = game.BattleHistoryCap
	}
	var records []models.BattleRecord
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return records, nil
}

// finalize pays out and records a finished battle, then drops its
// session.
func (s *BattleService) finalize(ctx context.Context, playerID uuid.UUID, battleID string, outcome *ActionOutcome) error {
	record := models.BattleRecord{
		PlayerID: playerID,
		StageID:  outcome.Battle.StageID,
		Result:   string(outcome.Result),
		TurnCount: outcome.Battle.TurnNumber,
	}

	if outcome.Result == game.ResultVictory && outcome.Rewards != nil {
		if _, err := s.players.Apply(ctx, playerID, ResourceDelta{Gold: outcome.Rewards.Gold}); err != nil {
			return err
		}
		if _, err := s.players.AddExp(ctx, playerID, outcome.Rewards.Exp); err != nil {
			return err
		}
		clear, err := s.story.RecordClear(ctx, playerID, outcome.Battle.StageID, outcome.Rewards.Stars)
		if err != nil {
			return err
		}
		outcome.Clear = clear
		record.Stars = outcome.Rewards.Stars
		record.Rewards = models.IntMap{
			"gold": outcome.Rewards.Gold,
			"exp":  outcome.Rewards.Exp,
		}
	}

	if err := s.recordBattle(ctx, &record); err != nil {
		return err
	}
	s.sessions.Remove(battleID)
	return nil
}

// recordBattle inserts a history row and prunes the oldest rows beyond
// the cap.
func (s *BattleService) recordBattle(ctx context.Context, record *models.BattleRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return apperrors.Internal(err)
		}
		var stale []uuid.UUID
		err := tx.Model(&models.BattleRecord{}).
			Where("player_id = ?", record.PlayerID).
			Order("created_at DESC").
			Offset(game.BattleHistoryCap).
			Limit(game.BattleHistoryCap).
			Pluck("id", &stale).Error
		if err != nil {
			return apperrors.Internal(err)
		}
		if len(stale) > 0 {
			if err := tx.Where("id IN ?", stale).Delete(&models.BattleRecord{}).Error; err != nil {
				return apperrors.Internal(err)
			}
		}
		return nil
	})
}

// runEnemyTurns plays AI actors until a player turn, the end of the
// battle, or the safety cap.
func (s *BattleService) runEnemyTurns(b *game.Battle) {
	for i := 0; i < maxAITurnsPerAction; i++ {
		if b.IsEnded() || b.IsPlayerTurn() {
			return
		}
		actor := b.CurrentActor()
		if actor == nil {
			return
		}
		enemy, ok := actor.(game.EnemyUnit)
		if !ok {
			return
		}

		action := s.engine.AIChooseAction(b, enemy)
		switch action.Type {
		case "attack":
			_, _ = s.engine.ExecuteAttack(b, actor.Char().ID, action.TargetIDs[0], 1.0)
		case "skill":
			if _, err := s.engine.ExecuteSkill(b, actor.Char().ID, action.SkillID, action.TargetIDs); err != nil {
				_, _ = s.engine.ExecuteAttack(b, actor.Char().ID, action.TargetIDs[0], 1.0)
			}
		}

		if result := s.engine.CheckEnd(b); result != "" {
			b.End(result)
			return
		}
		s.engine.AdvanceTurn(b)
	}
}

// loadHeroes hydrates the team's heroes and their live skills.
func (s *BattleService) loadHeroes(ctx context.Context, team *models.Team) ([]*game.Hero, map[string][]*game.Skill, error) {
	db := s.db.WithContext(ctx)
	heroes := make([]*game.Hero, 0, len(team.Members))
	skills := make(map[string][]*game.Skill, len(team.Members))

	for _, m := range team.Members {
		var row models.PlayerHero
		if err := db.First(&row, "id = ?", m.HeroID).Error; err != nil {
			return nil, nil, apperrors.Internal(err)
		}
		pos, err := game.NewGridPosition(m.PosX, m.PosY)
		if err != nil {
			return nil, nil, apperrors.Internal(err)
		}
		hero, err := hydrateHero(db, s.catalog, &row, pos)
		if err != nil {
			return nil, nil, err
		}
		heroes = append(heroes, hero)

		levels := map[string]int{}
		var learned []models.HeroSkill
		if err := db.Where("player_hero_id = ?", row.ID).Find(&learned).Error; err == nil {
			for _, hs := range learned {
				levels[hs.SkillTemplateID] = hs.Level
			}
		}
		skills[hero.ID] = s.instantiateSkills(hero.Skills, levels)
	}
	return heroes, skills, nil
}

// spawnEnemies builds the stage's enemies on the enemy grid, row-major.
func (s *BattleService) spawnEnemies(stage *catalog.Stage) ([]game.EnemyUnit, map[string][]*game.Skill, error) {
	enemies := make([]game.EnemyUnit, 0, len(stage.EnemyIDs))
	skills := make(map[string][]*game.Skill, len(stage.EnemyIDs))

	for i, templateID := range stage.EnemyIDs {
		tpl, ok := s.catalog.Enemy(templateID)
		if !ok {
			return nil, nil, apperrors.NotFound("enemy template", templateID)
		}
		pos, err := game.NewGridPosition(i%game.GridSize, i/game.GridSize)
		if err != nil {
			return nil, nil, apperrors.Validation("stage %s has too many enemies", stage.ID)
		}
		id := fmt.Sprintf("%s_%d", templateID, i)
		enemy := tpl.Spawn(id, pos)
		enemies = append(enemies, enemy)
		skills[id] = s.instantiateSkills(tpl.SkillIDs, nil)
	}
	return enemies, skills, nil
}

func (s *BattleService) instantiateSkills(ids []string, levels map[string]int) []*game.Skill {
	out := make([]*game.Skill, 0, len(ids))
	for _, id := range ids {
		tpl, ok := s.catalog.Skill(id)
		if !ok {
			continue
		}
		level := 1
		if lv, ok := levels[id]; ok && lv > 0 {
			level = lv
		}
		out = append(out, tpl.Instantiate(level))
	}
	return out
}

func (s *BattleService) mapSessionErr(err error, battleID string) error {
	if errors.Is(err, session.ErrBattleNotFound) {
		return apperrors.NotFound("battle", battleID)
	}
	return apperrors.From(err)
}

func mapEngineErr(err error) error {
	switch {
	case errors.Is(err, game.ErrCharacterNotFound):
		return apperrors.Validation("character not found in battle")
	case errors.Is(err, game.ErrTargetDead),
		errors.Is(err, game.ErrCasterDead),
		errors.Is(err, game.ErrCasterCannotAct),
		errors.Is(err, game.ErrSkillNotReady),
		errors.Is(err, game.ErrBattleEnded):
		return apperrors.BattleState(err.Error())
	case errors.Is(err, game.ErrSkillUnknown):
		return apperrors.Validation("skill is not available to the acting character")
	case errors.Is(err, game.ErrInvalidTargets):
		return apperrors.Validation("targets do not match the skill's target type")
	default:
		return apperrors.BattleState(err.Error())
	}
}

func stateResult(state game.BattleState) game.BattleResult {
	switch state {
	case game.StateVictory:
		return game.ResultVictory
	case game.StateRetreat:
		return game.ResultRetreat
	default:
		return game.ResultDefeat
	}
}

// snapshot renders a battle for the client.
func snapshot(b *game.Battle) *BattleSnapshot {
	snap := &BattleSnapshot{
		ID:           b.ID,
		StageID:      b.StageID,
		State:        b.State,
		TurnNumber:   b.TurnNumber,
		IsPlayerTurn: b.IsPlayerTurn(),
		ActionLog:    b.ActionLog,
	}
	if actor := b.CurrentActor(); actor != nil {
		snap.CurrentActorID = actor.Char().ID
	}
	for _, h := range b.PlayerTeam {
		snap.Heroes = append(snap.Heroes, combatantView(h))
	}
	for _, e := range b.EnemyTeam {
		view := combatantView(e)
		if boss, ok := e.(*game.Boss); ok {
			view.IsBoss = true
			view.Phase = boss.CurrentPhase
		}
		snap.Enemies = append(snap.Enemies, view)
	}
	return snap
}

func combatantView(c game.Combatant) CombatantView {
	ch := c.Char()
	view := CombatantView{
		ID:          ch.ID,
		Name:        ch.Name,
		Element:     ch.Element,
		CurrentHP:   ch.CurrentHP,
		MaxHP:       ch.Stats.HP,
		CurrentMana: ch.CurrentMana,
		IsAlive:     ch.IsAlive(),
	}
	view.Position.X = ch.Position.X
	view.Position.Y = ch.Position.Y
	switch v := c.(type) {
	case *game.Hero:
		view.TemplateID = v.TemplateID
	case *game.Boss:
		view.TemplateID = v.TemplateID
	case *game.Enemy:
		view.TemplateID = v.TemplateID
	}
	return view
}
