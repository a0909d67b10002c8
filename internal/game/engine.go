package game

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
)

// Engine errors surfaced to the battle service. Engine steps are
// all-or-nothing: on error the battle state is unchanged.
var (
	ErrCharacterNotFound = errors.New("character not found in battle")
	ErrTargetDead        = errors.New("target is already dead")
	ErrCasterDead        = errors.New("caster is dead")
	ErrCasterCannotAct   = errors.New("caster cannot act")
	ErrSkillUnknown      = errors.New("skill is not available to the caster")
	ErrSkillNotReady     = errors.New("skill is on cooldown")
	ErrInvalidTargets    = errors.New("targets do not match skill target type")
	ErrBattleEnded       = errors.New("battle has ended")
)

// AttackResult reports a resolved attack.
type AttackResult struct {
	Damage            int     `json:"damage"`
	IsCrit            bool    `json:"is_crit"`
	ElementMultiplier float64 `json:"element_multiplier"`
	TargetHP          int     `json:"target_hp"`
	TargetDied        bool    `json:"target_died"`
}

// TargetOutcome is one target's share of a skill or heal result.
type TargetOutcome struct {
	TargetID   string `json:"target_id"`
	Damage     int    `json:"damage,omitempty"`
	Heal       int    `json:"heal,omitempty"`
	IsCrit     bool   `json:"is_crit,omitempty"`
	TargetDied bool   `json:"target_died,omitempty"`
	NewHP      int    `json:"new_hp"`
}

// SkillResult reports a resolved skill cast.
type SkillResult struct {
	SkillID       string          `json:"skill_id"`
	ManaCost      int             `json:"mana_cost"`
	RemainingMana int             `json:"remaining_mana"`
	Targets       []TargetOutcome `json:"targets"`
}

// TurnResult reports advancing the battle by one actor.
type TurnResult struct {
	OldTurn        int    `json:"old_turn"`
	NewTurn        int    `json:"new_turn"`
	NewRound       bool   `json:"new_round"`
	CurrentActorID string `json:"current_actor_id,omitempty"`
	IsPlayerTurn   bool   `json:"is_player_turn"`
}

// RewardDrop is one item rolled from a drop table.
type RewardDrop struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// Rewards is the payout of a finished battle.
type Rewards struct {
	Exp   int          `json:"exp"`
	Gold  int          `json:"gold"`
	Drops []RewardDrop `json:"drops"`
	Stars int          `json:"stars"`
}

// AIAction is an action chosen for an enemy.
type AIAction struct {
	Type      string   `json:"type"` // "attack", "skill", "pass"
	SkillID   string   `json:"skill_id,omitempty"`
	TargetIDs []string `json:"target_ids,omitempty"`
}

// Engine resolves battle actions. It is stateless: all mutable state
// lives on the Battle, including the RNG, so resolution is
// deterministic per battle seed.
type Engine struct{}

// NewEngine returns a battle engine.
func NewEngine() *Engine { return &Engine{} }

// StartBattle builds a new battle and processes the first turn start.
func (en *Engine) StartBattle(id, playerID, stageID string, heroes []*Hero, enemies []EnemyUnit, rng *rand.Rand) *Battle {
	b := NewBattle(id, playerID, stageID, heroes, enemies, rng)
	en.processTurnStart(b)
	return b
}

// rollCrit draws the crit roll: success below min(1, crit/100).
func (en *Engine) rollCrit(b *Battle, crit int) bool {
	chance := math.Min(1, float64(crit)/100)
	return b.rng.Float64() < chance
}

// damage computes max(1, floor((ATK*mult - DEF*0.5) * element * crit)).
func damage(atk, def int, skillMult, elementMult float64, isCrit bool, critStat int) int {
	raw := float64(atk)*skillMult - float64(def)*0.5
	critMult := 1.0
	if isCrit {
		critMult = 1 + float64(critStat)/100
	}
	total := int(math.Floor(raw * elementMult * critMult))
	return max(1, total)
}

// ExecuteAttack resolves a basic attack from attacker to target.
func (en *Engine) ExecuteAttack(b *Battle, attackerID, targetID string, skillMultiplier float64) (*AttackResult, error) {
	if b.IsEnded() {
		return nil, ErrBattleEnded
	}
	attacker := b.CharacterByID(attackerID)
	target := b.CharacterByID(targetID)
	if attacker == nil || target == nil {
		return nil, ErrCharacterNotFound
	}
	if !attacker.Char().IsAlive() {
		return nil, ErrCasterDead
	}
	if !attacker.Char().CanAct() {
		return nil, ErrCasterCannotAct
	}
	if !target.Char().IsAlive() {
		return nil, ErrTargetDead
	}

	elementMult := attacker.Char().Element.Multiplier(target.Char().Element)
	isCrit := en.rollCrit(b, attacker.Char().Stats.CRIT)
	dmg := damage(attacker.EffectiveATK(), target.EffectiveDEF(), skillMultiplier, elementMult, isCrit, attacker.Char().Stats.CRIT)

	result := target.Char().TakeDamage(dmg)
	en.afterDamage(b, target)

	b.Log(BattleAction{
		Type:        "attack",
		ActorID:     attackerID,
		TargetIDs:   []string{targetID},
		Damage:      dmg,
		IsCrit:      isCrit,
		ElementMult: elementMult,
		TargetDied:  result.IsDead,
	})

	return &AttackResult{
		Damage:            dmg,
		IsCrit:            isCrit,
		ElementMultiplier: elementMult,
		TargetHP:          target.Char().CurrentHP,
		TargetDied:        result.IsDead,
	}, nil
}

// ExecuteSkill resolves a skill cast. The caster must hold a registered
// live skill instance for skillID; its readiness, target typing, side
// and cost are enforced and its cooldown triggered. Validation runs
// before any mutation.
func (en *Engine) ExecuteSkill(b *Battle, casterID, skillID string, targetIDs []string) (*SkillResult, error) {
	if b.IsEnded() {
		return nil, ErrBattleEnded
	}
	caster := b.CharacterByID(casterID)
	if caster == nil {
		return nil, ErrCharacterNotFound
	}
	if !caster.Char().IsAlive() {
		return nil, ErrCasterDead
	}
	if !caster.Char().CanAct() {
		return nil, ErrCasterCannotAct
	}

	skill := b.SkillFor(casterID, skillID)
	if skill == nil || skill.IsPassive {
		return nil, ErrSkillUnknown
	}
	if !skill.IsReady() {
		return nil, ErrSkillNotReady
	}
	if !skill.ValidTargetCount(len(targetIDs)) {
		return nil, ErrInvalidTargets
	}
	if err := en.checkTargetSides(b, casterID, skill.TargetType, targetIDs); err != nil {
		return nil, err
	}
	manaCost := skill.ManaCost
	skillMultiplier := skill.EffectiveMultiplier()

	if caster.Char().CurrentMana < manaCost {
		return nil, fmt.Errorf("insufficient mana: have %d, need %d", caster.Char().CurrentMana, manaCost)
	}

	// Validation done; mutate.
	_ = caster.Char().UseMana(manaCost)
	skill.TriggerCooldown()

	var outcomes []TargetOutcome
	for _, targetID := range targetIDs {
		target := b.CharacterByID(targetID)
		if target == nil || !target.Char().IsAlive() {
			continue
		}
		outcome := TargetOutcome{TargetID: targetID}
		switch skill.Type {
		case SkillHeal:
			amount := int(math.Floor(float64(target.Char().Stats.HP) * skillMultiplier))
			res := target.Char().Heal(amount)
			outcome.Heal = res.ActualHeal
		case SkillBuff:
			target.Char().AddStatusEffect(buffEffect(skill, casterID))
		case SkillDebuff:
			target.Char().AddStatusEffect(debuffEffect(skill, casterID))
		default:
			elementMult := caster.Char().Element.Multiplier(target.Char().Element)
			if skill.Element != "" {
				elementMult = skill.Element.Multiplier(target.Char().Element)
			}
			isCrit := en.rollCrit(b, caster.Char().Stats.CRIT)
			dmg := damage(caster.EffectiveATK(), target.EffectiveDEF(), skillMultiplier, elementMult, isCrit, caster.Char().Stats.CRIT)
			res := target.Char().TakeDamage(dmg)
			en.afterDamage(b, target)
			outcome.Damage = dmg
			outcome.IsCrit = isCrit
			outcome.TargetDied = res.IsDead
		}
		outcome.NewHP = target.Char().CurrentHP
		outcomes = append(outcomes, outcome)
	}

	b.Log(BattleAction{
		Type:      "skill",
		ActorID:   casterID,
		SkillID:   skillID,
		TargetIDs: targetIDs,
	})

	return &SkillResult{
		SkillID:       skillID,
		ManaCost:      manaCost,
		RemainingMana: caster.Char().CurrentMana,
		Targets:       outcomes,
	}, nil
}

// ExecuteHeal resolves a percent-of-max-HP heal. The caster must hold a
// registered heal skill for skillID; readiness, targeting and mana are
// enforced like any other cast.
func (en *Engine) ExecuteHeal(b *Battle, casterID, skillID string, targetIDs []string) (*SkillResult, error) {
	if b.IsEnded() {
		return nil, ErrBattleEnded
	}
	caster := b.CharacterByID(casterID)
	if caster == nil {
		return nil, ErrCharacterNotFound
	}
	if !caster.Char().IsAlive() {
		return nil, ErrCasterDead
	}
	if !caster.Char().CanAct() {
		return nil, ErrCasterCannotAct
	}

	skill := b.SkillFor(casterID, skillID)
	if skill == nil || skill.Type != SkillHeal || skill.IsPassive {
		return nil, ErrSkillUnknown
	}
	if !skill.IsReady() {
		return nil, ErrSkillNotReady
	}
	if !skill.ValidTargetCount(len(targetIDs)) {
		return nil, ErrInvalidTargets
	}
	if err := en.checkTargetSides(b, casterID, skill.TargetType, targetIDs); err != nil {
		return nil, err
	}
	manaCost := skill.ManaCost
	if caster.Char().CurrentMana < manaCost {
		return nil, fmt.Errorf("insufficient mana: have %d, need %d", caster.Char().CurrentMana, manaCost)
	}
	_ = caster.Char().UseMana(manaCost)
	skill.TriggerCooldown()

	healMultiplier := skill.EffectiveMultiplier()
	var outcomes []TargetOutcome
	for _, targetID := range targetIDs {
		target := b.CharacterByID(targetID)
		if target == nil || !target.Char().IsAlive() {
			continue
		}
		amount := int(math.Floor(float64(target.Char().Stats.HP) * healMultiplier))
		res := target.Char().Heal(amount)
		outcomes = append(outcomes, TargetOutcome{
			TargetID: targetID,
			Heal:     res.ActualHeal,
			NewHP:    target.Char().CurrentHP,
		})
	}

	b.Log(BattleAction{
		Type:      "heal",
		ActorID:   casterID,
		SkillID:   skillID,
		TargetIDs: targetIDs,
	})

	return &SkillResult{
		SkillID:       skillID,
		ManaCost:      manaCost,
		RemainingMana: caster.Char().CurrentMana,
		Targets:       outcomes,
	}, nil
}

// AdvanceTurn moves to the next actor and processes its turn start.
func (en *Engine) AdvanceTurn(b *Battle) *TurnResult {
	old := b.TurnNumber
	newRound := b.AdvanceActor()
	en.processTurnStart(b)

	result := &TurnResult{
		OldTurn:      old,
		NewTurn:      b.TurnNumber,
		NewRound:     newRound,
		IsPlayerTurn: b.IsPlayerTurn(),
	}
	if actor := b.CurrentActor(); actor != nil {
		result.CurrentActorID = actor.Char().ID
	}
	return result
}

// processTurnStart runs the fixed turn-start sequence:
// boss phase check, field-wide DOT/HOT ticks, cooldown ticks, then the
// mana grant for the current actor.
func (en *Engine) processTurnStart(b *Battle) {
	for _, e := range b.EnemyTeam {
		if boss, ok := e.(*Boss); ok && boss.IsAlive() {
			boss.CheckPhaseTransition()
		}
	}

	for _, c := range b.allCombatants() {
		ch := c.Char()
		if !ch.IsAlive() {
			continue
		}
		for _, eff := range ch.StatusEffects {
			if dot := eff.TickDamage(); dot > 0 {
				ch.TakeDamage(dot)
			}
			if hot := eff.TickHeal(); hot > 0 {
				ch.Heal(hot)
			}
			eff.ReduceDuration()
		}
		ch.RemoveExpiredEffects()
	}
	b.DropDead()

	for _, skills := range b.SkillStates {
		for _, s := range skills {
			s.ReduceCooldown(1)
		}
	}

	if actor := b.CurrentActor(); actor != nil {
		actor.Char().GainMana(b.ManaPerTurn)
	}
}

// afterDamage keeps the turn order and boss phases consistent after a
// hit lands.
func (en *Engine) afterDamage(b *Battle, target Combatant) {
	if boss, ok := target.(*Boss); ok && boss.IsAlive() {
		boss.CheckPhaseTransition()
	}
	if !target.Char().IsAlive() {
		b.DropDead()
	}
}

// CheckEnd returns the terminal result once a side is wiped, or empty
// while the battle continues.
func (en *Engine) CheckEnd(b *Battle) BattleResult {
	if len(b.LivingEnemies()) == 0 {
		return ResultVictory
	}
	if len(b.LivingHeroes()) == 0 {
		return ResultDefeat
	}
	return ""
}

// CalculateRewards sums enemy rewards, rolls the drop tables against
// the battle RNG, and rates the victory.
func (en *Engine) CalculateRewards(b *Battle) Rewards {
	rewards := Rewards{}
	for _, e := range b.EnemyTeam {
		rewards.Exp += e.RewardExp()
		rewards.Gold += e.RewardGold()
		for _, drop := range e.Drops() {
			if b.rng.Float64() < drop.Probability {
				qty := drop.Quantity
				if qty == 0 {
					qty = 1
				}
				rewards.Drops = append(rewards.Drops, RewardDrop{ItemID: drop.ItemID, Quantity: qty})
			}
		}
	}
	rewards.Stars = en.starRating(b)
	return rewards
}

// starRating is 3 minus a star per dead hero, floored at 1 on victory.
func (en *Engine) starRating(b *Battle) int {
	if b.State != StateVictory {
		return 0
	}
	stars := 3
	for _, h := range b.PlayerTeam {
		if !h.IsAlive() {
			stars--
		}
	}
	return max(1, stars)
}

// AIChooseAction picks an enemy's action. With no skills or under 50
// mana the enemy basic-attacks the lowest-HP living hero; otherwise it
// rolls its behavior's skill chance and casts the first ready skill.
// Deterministic given the battle RNG.
func (en *Engine) AIChooseAction(b *Battle, enemy EnemyUnit) AIAction {
	heroes := b.LivingHeroes()
	if len(heroes) == 0 {
		return AIAction{Type: "pass"}
	}
	target := lowestHPHero(heroes)

	ch := enemy.Char()
	if len(ch.Skills) == 0 || ch.CurrentMana < 50 {
		return AIAction{Type: "attack", TargetIDs: []string{target.ID}}
	}

	if b.rng.Float64() < enemy.SkillChance() {
		if skill := firstReadySkill(b, ch); skill != nil {
			targets := []string{target.ID}
			if skill.TargetType == TargetAllEnemies || skill.TargetType == TargetAOE {
				targets = targets[:0]
				for _, h := range heroes {
					targets = append(targets, h.ID)
				}
			}
			return AIAction{Type: "skill", SkillID: skill.ID, TargetIDs: targets}
		}
	}
	return AIAction{Type: "attack", TargetIDs: []string{target.ID}}
}

// lowestHPHero breaks HP ties by grid position (row-major), then id.
func lowestHPHero(heroes []*Hero) *Hero {
	sorted := make([]*Hero, len(heroes))
	copy(sorted, heroes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.CurrentHP != b.CurrentHP {
			return a.CurrentHP < b.CurrentHP
		}
		if a.Position.Y != b.Position.Y {
			return a.Position.Y < b.Position.Y
		}
		if a.Position.X != b.Position.X {
			return a.Position.X < b.Position.X
		}
		return a.ID < b.ID
	})
	return sorted[0]
}

func firstReadySkill(b *Battle, ch *Character) *Skill {
	for _, skillID := range ch.Skills {
		if s := b.SkillFor(ch.ID, skillID); s != nil && s.IsReady() && !s.IsPassive {
			return s
		}
	}
	return nil
}

// checkTargetSides verifies each target sits on the side the skill's
// target type demands, relative to the caster.
func (en *Engine) checkTargetSides(b *Battle, casterID string, targetType TargetType, targetIDs []string) error {
	casterIsHero := false
	for _, h := range b.PlayerTeam {
		if h.ID == casterID {
			casterIsHero = true
			break
		}
	}
	wantAlly := targetType == TargetSelf || targetType == TargetSingleAlly || targetType == TargetAllAllies
	wantEnemy := targetType == TargetSingleEnemy || targetType == TargetAllEnemies

	for _, id := range targetIDs {
		if targetType == TargetSelf && id != casterID {
			return ErrInvalidTargets
		}
		targetIsHero := false
		for _, h := range b.PlayerTeam {
			if h.ID == id {
				targetIsHero = true
				break
			}
		}
		sameSide := targetIsHero == casterIsHero
		if wantAlly && !sameSide {
			return ErrInvalidTargets
		}
		if wantEnemy && sameSide {
			return ErrInvalidTargets
		}
	}
	return nil
}

func buffEffect(skill *Skill, sourceID string) *StatusEffect {
	eff := NewStatusEffect(skill.ID, skill.Name, EffectBuff, max(1, skill.Duration))
	eff.StatModifiers = skill.BuffStats
	eff.SourceID = sourceID
	return eff
}

func debuffEffect(skill *Skill, sourceID string) *StatusEffect {
	eff := NewStatusEffect(skill.ID, skill.Name, EffectDebuff, max(1, skill.Duration))
	mods := make(map[string]float64, len(skill.DebuffEffects))
	for stat, v := range skill.DebuffEffects {
		mods[stat] = -v
	}
	eff.StatModifiers = mods
	eff.SourceID = sourceID
	return eff
}
