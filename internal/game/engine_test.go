package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHero(id string, element Element, x, y, hp, atk, def, spd int) *Hero {
	pos, _ := NewGridPosition(x, y)
	return NewHero(id, "tpl-"+id, "Hero "+id, element, pos, HexagonStats{
		HP: hp, ATK: atk, DEF: def, SPD: spd, CRIT: 0, DEX: 10,
	}, 3)
}

func testEnemy(id string, element Element, x, y, hp, atk, def, spd int) *Enemy {
	pos, _ := NewGridPosition(x, y)
	e := NewEnemy(id, "tpl-"+id, "Enemy "+id, element, pos, HexagonStats{
		HP: hp, ATK: atk, DEF: def, SPD: spd, CRIT: 0, DEX: 10,
	})
	e.ExpReward = 50
	e.GoldReward = 100
	return e
}

func testBattle(heroes []*Hero, enemies []EnemyUnit) *Battle {
	return NewBattle("battle-1", "player-1", "stage-1-1", heroes, enemies, rand.New(rand.NewSource(42)))
}

func TestTurnOrderBySpeed(t *testing.T) {
	a := testHero("a", ElementKim, 0, 0, 500, 100, 40, 150)
	b := testHero("b", ElementMoc, 1, 0, 500, 100, 40, 90)
	c := testEnemy("c", ElementThuy, 2, 2, 500, 100, 40, 100)

	battle := testBattle([]*Hero{a, b}, []EnemyUnit{c})

	order := battle.TurnOrder()
	require.Len(t, order, 3)
	assert.Equal(t, "a", order[0].Char().ID)
	assert.Equal(t, "c", order[1].Char().ID)
	assert.Equal(t, "b", order[2].Char().ID)
}

func TestTurnOrderStableOnEqualSpeed(t *testing.T) {
	a := testHero("a", ElementKim, 0, 0, 500, 100, 40, 100)
	b := testHero("b", ElementMoc, 1, 0, 500, 100, 40, 100)
	battle := testBattle([]*Hero{a, b}, []EnemyUnit{testEnemy("e", ElementThuy, 2, 2, 500, 100, 40, 100)})

	order := battle.TurnOrder()
	assert.Equal(t, "a", order[0].Char().ID)
	assert.Equal(t, "b", order[1].Char().ID)
	assert.Equal(t, "e", order[2].Char().ID)
}

func TestExecuteAttackNeutral(t *testing.T) {
	attacker := testHero("atk", ElementKim, 0, 0, 500, 100, 10, 120)
	target := testEnemy("def", ElementKim, 2, 2, 500, 50, 40, 80)
	battle := testBattle([]*Hero{attacker}, []EnemyUnit{target})
	en := NewEngine()

	res, err := en.ExecuteAttack(battle, "atk", "def", 1.0)
	require.NoError(t, err)

	// (100*1.0 - 40*0.5) * 1.0 * 1.0 = 80
	assert.Equal(t, 80, res.Damage)
	assert.False(t, res.IsCrit)
	assert.Equal(t, 1.0, res.ElementMultiplier)
	assert.Equal(t, 420, res.TargetHP)
	assert.False(t, res.TargetDied)
}

func TestExecuteAttackElementAdvantage(t *testing.T) {
	attacker := testHero("atk", ElementKim, 0, 0, 500, 100, 10, 120)
	target := testEnemy("def", ElementMoc, 2, 2, 500, 50, 40, 80)
	battle := testBattle([]*Hero{attacker}, []EnemyUnit{target})
	en := NewEngine()

	res, err := en.ExecuteAttack(battle, "atk", "def", 1.0)
	require.NoError(t, err)

	// Kim conquers Moc: (100 - 20) * 1.5 = 120.
	assert.Equal(t, 120, res.Damage)
	assert.Equal(t, 1.5, res.ElementMultiplier)
}

func TestExecuteAttackElementDisadvantage(t *testing.T) {
	attacker := testHero("atk", ElementMoc, 0, 0, 500, 100, 10, 120)
	target := testEnemy("def", ElementKim, 2, 2, 500, 50, 40, 80)
	battle := testBattle([]*Hero{attacker}, []EnemyUnit{target})
	en := NewEngine()

	res, err := en.ExecuteAttack(battle, "atk", "def", 1.0)
	require.NoError(t, err)

	// floor(80 * 0.7) = 56
	assert.Equal(t, 56, res.Damage)
	assert.Equal(t, 0.7, res.ElementMultiplier)
}

func TestExecuteAttackMinimumDamage(t *testing.T) {
	attacker := testHero("atk", ElementKim, 0, 0, 500, 10, 10, 120)
	target := testEnemy("def", ElementKim, 2, 2, 500, 50, 1000, 80)
	battle := testBattle([]*Hero{attacker}, []EnemyUnit{target})
	en := NewEngine()

	res, err := en.ExecuteAttack(battle, "atk", "def", 1.0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Damage)
}

func TestExecuteAttackDeadTarget(t *testing.T) {
	attacker := testHero("atk", ElementKim, 0, 0, 500, 100, 10, 120)
	target := testEnemy("def", ElementKim, 2, 2, 500, 50, 40, 80)
	battle := testBattle([]*Hero{attacker}, []EnemyUnit{target})
	target.CurrentHP = 0

	_, err := NewEngine().ExecuteAttack(battle, "atk", "def", 1.0)
	assert.ErrorIs(t, err, ErrTargetDead)
}

func TestExecuteAttackLethalEndsTargetTurnOrder(t *testing.T) {
	attacker := testHero("atk", ElementKim, 0, 0, 500, 100, 10, 120)
	target := testEnemy("def", ElementKim, 2, 2, 60, 50, 40, 80)
	battle := testBattle([]*Hero{attacker}, []EnemyUnit{target})
	en := NewEngine()

	res, err := en.ExecuteAttack(battle, "atk", "def", 1.0)
	require.NoError(t, err)
	assert.True(t, res.TargetDied)
	assert.Len(t, battle.TurnOrder(), 1)
	assert.Equal(t, ResultVictory, en.CheckEnd(battle))
}

func TestExecuteSkillSpendsManaAndCooldown(t *testing.T) {
	caster := testHero("atk", ElementKim, 0, 0, 500, 100, 10, 120)
	caster.Skills = []string{"slash"}
	target := testEnemy("def", ElementKim, 2, 2, 500, 50, 40, 80)
	battle := testBattle([]*Hero{caster}, []EnemyUnit{target})
	battle.RegisterSkills("atk", []*Skill{{
		ID: "slash", Name: "Slash", ManaCost: 30, Cooldown: 2, Level: 1,
		Type: SkillDamage, TargetType: TargetSingleEnemy, DamageMultiplier: 2.0,
	}})
	caster.CurrentMana = 50
	en := NewEngine()

	res, err := en.ExecuteSkill(battle, "atk", "slash", []string{"def"})
	require.NoError(t, err)

	assert.Equal(t, 30, res.ManaCost)
	assert.Equal(t, 20, res.RemainingMana)
	require.Len(t, res.Targets, 1)
	// (100*2.0 - 20) * 1.0 = 180
	assert.Equal(t, 180, res.Targets[0].Damage)

	skill := battle.SkillFor("atk", "slash")
	assert.Equal(t, 2, skill.CurrentCooldown)

	_, err = en.ExecuteSkill(battle, "atk", "slash", []string{"def"})
	assert.ErrorIs(t, err, ErrSkillNotReady)
}

func TestExecuteSkillRejectsUnownedSkill(t *testing.T) {
	caster := testHero("atk", ElementKim, 0, 0, 500, 100, 10, 120)
	e1 := testEnemy("e1", ElementKim, 2, 0, 500, 50, 40, 80)
	e2 := testEnemy("e2", ElementKim, 2, 1, 500, 50, 40, 80)
	battle := testBattle([]*Hero{caster}, []EnemyUnit{e1, e2})
	caster.CurrentMana = 20

	_, err := NewEngine().ExecuteSkill(battle, "atk", "khong_co_skill", []string{"e1", "e2"})
	assert.ErrorIs(t, err, ErrSkillUnknown)

	// Rejected before any mutation.
	assert.Equal(t, 500, e1.CurrentHP)
	assert.Equal(t, 500, e2.CurrentHP)
	assert.Equal(t, 20, caster.CurrentMana)

	// A skill registered to someone else is just as unavailable.
	battle.RegisterSkills("e1", []*Skill{{
		ID: "smash", ManaCost: 0, Type: SkillDamage, TargetType: TargetSingleEnemy, DamageMultiplier: 2.0, Level: 1,
	}})
	_, err = NewEngine().ExecuteSkill(battle, "atk", "smash", []string{"e1"})
	assert.ErrorIs(t, err, ErrSkillUnknown)
}

func TestExecuteSkillRejectsPassives(t *testing.T) {
	caster := testHero("atk", ElementKim, 0, 0, 500, 100, 10, 120)
	target := testEnemy("def", ElementKim, 2, 2, 500, 50, 40, 80)
	battle := testBattle([]*Hero{caster}, []EnemyUnit{target})
	battle.RegisterSkills("atk", []*Skill{{
		ID: "iron_will", Type: SkillBuff, TargetType: TargetSelf, IsPassive: true, Level: 1,
	}})

	_, err := NewEngine().ExecuteSkill(battle, "atk", "iron_will", []string{"atk"})
	assert.ErrorIs(t, err, ErrSkillUnknown)
}

func TestExecuteSkillInsufficientMana(t *testing.T) {
	caster := testHero("atk", ElementKim, 0, 0, 500, 100, 10, 120)
	target := testEnemy("def", ElementKim, 2, 2, 500, 50, 40, 80)
	battle := testBattle([]*Hero{caster}, []EnemyUnit{target})
	battle.RegisterSkills("atk", []*Skill{{
		ID: "slash", ManaCost: 30, Type: SkillDamage, TargetType: TargetSingleEnemy, DamageMultiplier: 2.0, Level: 1,
	}})
	caster.CurrentMana = 10

	_, err := NewEngine().ExecuteSkill(battle, "atk", "slash", []string{"def"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient mana")
	// Validation failed before mutation.
	assert.Equal(t, 10, caster.CurrentMana)
	assert.True(t, battle.SkillFor("atk", "slash").IsReady())
}

func TestExecuteSkillTargetSideMismatch(t *testing.T) {
	caster := testHero("atk", ElementKim, 0, 0, 500, 100, 10, 120)
	ally := testHero("ally", ElementMoc, 1, 0, 500, 100, 10, 110)
	target := testEnemy("def", ElementKim, 2, 2, 500, 50, 40, 80)
	battle := testBattle([]*Hero{caster, ally}, []EnemyUnit{target})
	battle.RegisterSkills("atk", []*Skill{{
		ID: "slash", ManaCost: 0, Type: SkillDamage, TargetType: TargetSingleEnemy, DamageMultiplier: 2.0, Level: 1,
	}})

	_, err := NewEngine().ExecuteSkill(battle, "atk", "slash", []string{"ally"})
	assert.ErrorIs(t, err, ErrInvalidTargets)
}

func TestExecuteSkillBuffAppliesEffect(t *testing.T) {
	caster := testHero("sup", ElementTho, 0, 0, 500, 80, 10, 120)
	target := testEnemy("def", ElementKim, 2, 2, 500, 50, 40, 80)
	battle := testBattle([]*Hero{caster}, []EnemyUnit{target})
	battle.RegisterSkills("sup", []*Skill{{
		ID: "war_drums", Name: "War Drums", ManaCost: 20, Type: SkillBuff,
		TargetType: TargetSelf, BuffStats: map[string]float64{"atk": 0.3}, Duration: 2, Level: 1,
	}})
	caster.CurrentMana = 40

	_, err := NewEngine().ExecuteSkill(battle, "sup", "war_drums", []string{"sup"})
	require.NoError(t, err)

	require.Len(t, caster.StatusEffects, 1)
	assert.Equal(t, EffectBuff, caster.StatusEffects[0].Type)
	assert.Equal(t, 104, caster.EffectiveATK()) // 80 * 1.3
}

func TestExecuteHealClampsAtMaxHP(t *testing.T) {
	healer := testHero("sup", ElementTho, 0, 0, 500, 80, 10, 120)
	wounded := testHero("tank", ElementTho, 1, 0, 1000, 60, 50, 90)
	wounded.CurrentHP = 950
	battle := testBattle([]*Hero{healer, wounded}, []EnemyUnit{testEnemy("e", ElementKim, 2, 2, 500, 50, 40, 80)})
	battle.RegisterSkills("sup", []*Skill{{
		ID: "mend", ManaCost: 20, Type: SkillHeal, TargetType: TargetSingleAlly, HealMultiplier: 0.2, Level: 1,
	}})
	healer.CurrentMana = 50

	res, err := NewEngine().ExecuteHeal(battle, "sup", "mend", []string{"tank"})
	require.NoError(t, err)

	require.Len(t, res.Targets, 1)
	// 20% of 1000 is 200, clamped to the 50 missing.
	assert.Equal(t, 50, res.Targets[0].Heal)
	assert.Equal(t, 1000, wounded.CurrentHP)
	assert.Equal(t, 30, res.RemainingMana)
}

func TestExecuteHealRequiresOwnedHealSkill(t *testing.T) {
	healer := testHero("sup", ElementTho, 0, 0, 500, 80, 10, 120)
	target := testEnemy("e", ElementKim, 2, 2, 500, 50, 40, 80)
	battle := testBattle([]*Hero{healer}, []EnemyUnit{target})
	battle.RegisterSkills("sup", []*Skill{{
		ID: "slash", ManaCost: 10, Type: SkillDamage, TargetType: TargetSingleEnemy, DamageMultiplier: 1.5, Level: 1,
	}})
	healer.CurrentMana = 50

	en := NewEngine()
	_, err := en.ExecuteHeal(battle, "sup", "mend", []string{"sup"})
	assert.ErrorIs(t, err, ErrSkillUnknown)

	// A damage skill cannot be cast through the heal path.
	_, err = en.ExecuteHeal(battle, "sup", "slash", []string{"sup"})
	assert.ErrorIs(t, err, ErrSkillUnknown)
	assert.Equal(t, 50, healer.CurrentMana)
}

func TestAdvanceTurnGrantsManaAndTicksCooldowns(t *testing.T) {
	fast := testHero("fast", ElementKim, 0, 0, 500, 100, 10, 150)
	slow := testHero("slow", ElementMoc, 1, 0, 500, 100, 10, 90)
	enemy := testEnemy("e", ElementThuy, 2, 2, 500, 50, 40, 100)
	battle := testBattle([]*Hero{fast, slow}, []EnemyUnit{enemy})
	battle.RegisterSkills("fast", []*Skill{{ID: "s", Cooldown: 3, CurrentCooldown: 3, Type: SkillDamage, Level: 1, TargetType: TargetSingleEnemy}})
	en := NewEngine()

	en.processTurnStart(battle) // fast acts first
	assert.Equal(t, DefaultManaPerTurn, fast.CurrentMana)
	assert.Equal(t, 2, battle.SkillFor("fast", "s").CurrentCooldown)

	res := en.AdvanceTurn(battle)
	assert.False(t, res.NewRound)
	assert.Equal(t, "e", res.CurrentActorID)
	assert.Equal(t, DefaultManaPerTurn, enemy.CurrentMana)

	en.AdvanceTurn(battle) // slow
	res = en.AdvanceTurn(battle)
	assert.True(t, res.NewRound)
	assert.Equal(t, 2, battle.TurnNumber)
	// fast acted again: mana accrues, cooldown ran out.
	assert.Equal(t, 2*DefaultManaPerTurn, fast.CurrentMana)
	assert.Equal(t, 0, battle.SkillFor("fast", "s").CurrentCooldown)
}

func TestTurnStartTicksDotBeforeActing(t *testing.T) {
	hero := testHero("h", ElementKim, 0, 0, 500, 100, 10, 150)
	enemy := testEnemy("e", ElementThuy, 2, 2, 500, 50, 40, 100)
	battle := testBattle([]*Hero{hero}, []EnemyUnit{enemy})

	poison := NewStatusEffect("poison", "Poison", EffectDOT, 2)
	poison.DamagePerTurn = 30
	hero.AddStatusEffect(poison)

	en := NewEngine()
	en.processTurnStart(battle)
	assert.Equal(t, 470, hero.CurrentHP)
	assert.Equal(t, 1, poison.Duration)

	en.processTurnStart(battle)
	assert.Equal(t, 440, hero.CurrentHP)
	assert.Empty(t, hero.StatusEffects)
}

func TestBossPhaseTransitionDuringBattle(t *testing.T) {
	hero := testHero("h", ElementKim, 0, 0, 2000, 600, 10, 150)
	pos, _ := NewGridPosition(1, 1)
	boss := NewBoss("boss", "tpl-boss", "Lữ Bố", ElementThuy, pos, HexagonStats{
		HP: 1000, ATK: 100, DEF: 0, SPD: 80, CRIT: 0, DEX: 10,
	})
	boss.Phases = []BossPhase{
		{PhaseNumber: 1, HPThreshold: 1.0},
		{PhaseNumber: 2, HPThreshold: 0.5, StatModifiers: map[string]float64{"atk": 1.5}},
	}
	battle := testBattle([]*Hero{hero}, []EnemyUnit{boss})
	en := NewEngine()

	// Kim neither conquers nor is conquered by Thủy, so the hit lands
	// at 600 * 1.0 and drops the boss to 40%.
	res, err := en.ExecuteAttack(battle, "h", "boss", 1.0)
	require.NoError(t, err)
	assert.Equal(t, 600, res.Damage)

	assert.Equal(t, 2, boss.CurrentPhase)
	assert.Equal(t, 150, boss.EffectiveATK())
}

func TestCalculateRewardsVictory(t *testing.T) {
	hero := testHero("h", ElementKim, 0, 0, 500, 100, 10, 150)
	e1 := testEnemy("e1", ElementMoc, 2, 0, 100, 50, 40, 80)
	e2 := testEnemy("e2", ElementMoc, 2, 1, 100, 50, 40, 80)
	e1.ExpReward, e1.GoldReward = 40, 80
	e2.ExpReward, e2.GoldReward = 60, 120
	e1.DropTable = []DropEntry{{ItemID: "iron_sword", Quantity: 1, Probability: 1.0}}
	e2.DropTable = []DropEntry{{ItemID: "never", Quantity: 1, Probability: 0.0}}

	battle := testBattle([]*Hero{hero}, []EnemyUnit{e1, e2})
	battle.End(ResultVictory)
	en := NewEngine()

	rewards := en.CalculateRewards(battle)
	assert.Equal(t, 100, rewards.Exp)
	assert.Equal(t, 200, rewards.Gold)
	assert.Equal(t, 3, rewards.Stars)
	require.Len(t, rewards.Drops, 1)
	assert.Equal(t, "iron_sword", rewards.Drops[0].ItemID)
}

func TestStarRatingLosesStarPerDeadHero(t *testing.T) {
	heroes := []*Hero{
		testHero("a", ElementKim, 0, 0, 500, 100, 10, 150),
		testHero("b", ElementMoc, 1, 0, 500, 100, 10, 140),
		testHero("c", ElementThuy, 2, 0, 500, 100, 10, 130),
	}
	heroes[1].CurrentHP = 0
	heroes[2].CurrentHP = 0
	battle := testBattle(heroes, []EnemyUnit{testEnemy("e", ElementHoa, 2, 2, 100, 50, 40, 80)})
	battle.End(ResultVictory)

	assert.Equal(t, 1, NewEngine().starRating(battle))

	battle.State = StateDefeat
	assert.Equal(t, 0, NewEngine().starRating(battle))
}

func TestAIAttacksLowestHPHeroWithoutMana(t *testing.T) {
	a := testHero("a", ElementKim, 0, 0, 500, 100, 10, 150)
	b := testHero("b", ElementMoc, 1, 0, 500, 100, 10, 140)
	b.CurrentHP = 120
	enemy := testEnemy("e", ElementHoa, 2, 2, 500, 50, 40, 80)
	enemy.Skills = []string{"smash"}
	enemy.CurrentMana = 30
	battle := testBattle([]*Hero{a, b}, []EnemyUnit{enemy})

	action := NewEngine().AIChooseAction(battle, enemy)
	assert.Equal(t, "attack", action.Type)
	assert.Equal(t, []string{"b"}, action.TargetIDs)
}

func TestAIUsesSkillWhenRollSucceeds(t *testing.T) {
	hero := testHero("a", ElementKim, 0, 0, 500, 100, 10, 150)
	enemy := testEnemy("e", ElementHoa, 2, 2, 500, 50, 40, 80)
	enemy.Skills = []string{"smash"}
	enemy.Behavior = BehaviorSupport // 0.7 skill chance
	enemy.CurrentMana = 80
	battle := testBattle([]*Hero{hero}, []EnemyUnit{enemy})
	battle.RegisterSkills("e", []*Skill{{ID: "smash", ManaCost: 50, Type: SkillDamage, TargetType: TargetSingleEnemy, DamageMultiplier: 1.5, Level: 1}})

	// Walk the seeded RNG until a roll lands under 0.7; the choice is a
	// pure function of battle state and RNG position.
	for i := 0; i < 20; i++ {
		action := NewEngine().AIChooseAction(battle, enemy)
		if action.Type == "skill" {
			assert.Equal(t, "smash", action.SkillID)
			assert.Equal(t, []string{"a"}, action.TargetIDs)
			return
		}
		assert.Equal(t, "attack", action.Type)
	}
	t.Fatal("AI never chose a skill over 20 rolls at 0.7 chance")
}

func TestAIPassesWithNoLivingHeroes(t *testing.T) {
	hero := testHero("a", ElementKim, 0, 0, 500, 100, 10, 150)
	hero.CurrentHP = 0
	enemy := testEnemy("e", ElementHoa, 2, 2, 500, 50, 40, 80)
	battle := testBattle([]*Hero{hero}, []EnemyUnit{enemy})

	action := NewEngine().AIChooseAction(battle, enemy)
	assert.Equal(t, "pass", action.Type)
}

func TestCheckEndDefeat(t *testing.T) {
	hero := testHero("a", ElementKim, 0, 0, 500, 100, 10, 150)
	hero.CurrentHP = 0
	battle := testBattle([]*Hero{hero}, []EnemyUnit{testEnemy("e", ElementHoa, 2, 2, 500, 50, 40, 80)})

	assert.Equal(t, ResultDefeat, NewEngine().CheckEnd(battle))
}

func TestDeterministicBattleWithSameSeed(t *testing.T) {
	run := func() int {
		attacker := testHero("atk", ElementKim, 0, 0, 500, 100, 10, 120)
		attacker.Stats.CRIT = 50
		target := testEnemy("def", ElementKim, 2, 2, 5000, 50, 40, 80)
		battle := NewBattle("b", "p", "s", []*Hero{attacker}, []EnemyUnit{target}, rand.New(rand.NewSource(7)))
		total := 0
		for i := 0; i < 10; i++ {
			res, err := NewEngine().ExecuteAttack(battle, "atk", "def", 1.0)
			require.NoError(t, err)
			total += res.Damage
		}
		return total
	}
	assert.Equal(t, run(), run())
}
