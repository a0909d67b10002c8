package game

import (
	"math/rand"
	"sort"
)

// BattleState is the lifecycle state of a battle.
type BattleState string

const (
	StatePreparing  BattleState = "preparing"
	StateInProgress BattleState = "in_progress"
	StateVictory    BattleState = "victory"
	StateDefeat     BattleState = "defeat"
	StateRetreat    BattleState = "retreat"
)

// BattleResult is a terminal battle outcome.
type BattleResult string

const (
	ResultVictory BattleResult = "victory"
	ResultDefeat  BattleResult = "defeat"
	ResultRetreat BattleResult = "retreat"
)

// DefaultManaPerTurn is granted to the acting character each turn.
const DefaultManaPerTurn = 20

// BattleHistoryCap bounds the per-player battle history.
const BattleHistoryCap = 100

// Combatant is any unit that can take part in a battle. Hero, Enemy
// and Boss satisfy it through the embedded Character; Boss overrides
// the effective stats to fold in phase modifiers.
type Combatant interface {
	Char() *Character
	EffectiveATK() int
	EffectiveDEF() int
	EffectiveSPD() int
}

// Char returns the character itself, satisfying Combatant via embedding.
func (c *Character) Char() *Character { return c }

// EnemyUnit is a Combatant on the enemy side carrying rewards.
// *Enemy and *Boss both satisfy it.
type EnemyUnit interface {
	Combatant
	RewardExp() int
	RewardGold() int
	Drops() []DropEntry
	SkillChance() float64
}

// RewardExp returns the exp granted for defeating the enemy.
func (e *Enemy) RewardExp() int { return e.ExpReward }

// RewardGold returns the gold granted for defeating the enemy.
func (e *Enemy) RewardGold() int { return e.GoldReward }

// Drops returns the enemy's drop table.
func (e *Enemy) Drops() []DropEntry { return e.DropTable }

// BattleAction is one entry of a battle's action log.
type BattleAction struct {
	Turn       int      `json:"turn"`
	Type       string   `json:"type"`
	ActorID    string   `json:"actor_id"`
	TargetIDs  []string `json:"target_ids,omitempty"`
	SkillID    string   `json:"skill_id,omitempty"`
	Damage     int      `json:"damage,omitempty"`
	Heal       int      `json:"heal,omitempty"`
	IsCrit     bool     `json:"is_crit,omitempty"`
	ElementMult float64 `json:"element_multiplier,omitempty"`
	TargetDied bool     `json:"target_died,omitempty"`
}

// Battle is the per-session combat state. It owns its RNG: given the
// same seed and action sequence the battle resolves identically.
type Battle struct {
	ID       string `json:"id"`
	PlayerID string `json:"player_id"`
	StageID  string `json:"stage_id"`

	PlayerTeam []*Hero     `json:"player_team"`
	EnemyTeam  []EnemyUnit `json:"enemy_team"`

	State       BattleState `json:"state"`
	TurnNumber  int         `json:"turn_number"`
	ManaPerTurn int         `json:"mana_per_turn"`
	Weather     string      `json:"weather,omitempty"`

	ActionLog []BattleAction `json:"action_log"`

	turnOrder    []Combatant
	currentIndex int

	// SkillStates holds per-battle live skill instances keyed by
	// character id. Cooldowns tick here.
	SkillStates map[string][]*Skill `json:"-"`

	rng *rand.Rand
}

// NewBattle builds an in-progress battle with a computed turn order.
func NewBattle(id, playerID, stageID string, heroes []*Hero, enemies []EnemyUnit, rng *rand.Rand) *Battle {
	b := &Battle{
		ID:          id,
		PlayerID:    playerID,
		StageID:     stageID,
		PlayerTeam:  heroes,
		EnemyTeam:   enemies,
		State:       StateInProgress,
		TurnNumber:  1,
		ManaPerTurn: DefaultManaPerTurn,
		SkillStates: make(map[string][]*Skill),
		rng:         rng,
	}
	b.CalculateTurnOrder()
	return b
}

// RNG exposes the battle-owned random source.
func (b *Battle) RNG() *rand.Rand { return b.rng }

// SetRNG installs the battle's random source, used when rebuilding a
// battle from a snapshot.
func (b *Battle) SetRNG(rng *rand.Rand) { b.rng = rng }

// RegisterSkills attaches live skill instances for a character.
func (b *Battle) RegisterSkills(characterID string, skills []*Skill) {
	b.SkillStates[characterID] = skills
}

// SkillFor looks up a character's live skill instance.
func (b *Battle) SkillFor(characterID, skillID string) *Skill {
	for _, s := range b.SkillStates[characterID] {
		if s.ID == skillID {
			return s
		}
	}
	return nil
}

// allCombatants lists both sides, player team first.
func (b *Battle) allCombatants() []Combatant {
	out := make([]Combatant, 0, len(b.PlayerTeam)+len(b.EnemyTeam))
	for _, h := range b.PlayerTeam {
		out = append(out, h)
	}
	for _, e := range b.EnemyTeam {
		out = append(out, e)
	}
	return out
}

// CalculateTurnOrder sorts the living combatants by descending speed.
// The sort is stable so equal speeds keep team order.
func (b *Battle) CalculateTurnOrder() []Combatant {
	var living []Combatant
	for _, c := range b.allCombatants() {
		if c.Char().IsAlive() {
			living = append(living, c)
		}
	}
	sort.SliceStable(living, func(i, j int) bool {
		return living[i].EffectiveSPD() > living[j].EffectiveSPD()
	})
	b.turnOrder = living
	return living
}

// TurnOrder returns the current round's order.
func (b *Battle) TurnOrder() []Combatant { return b.turnOrder }

// CurrentActor returns the combatant whose turn it is, or nil when
// nobody is left.
func (b *Battle) CurrentActor() Combatant {
	if len(b.turnOrder) == 0 || b.currentIndex >= len(b.turnOrder) {
		return nil
	}
	return b.turnOrder[b.currentIndex]
}

// IsPlayerTurn reports whether the current actor is a hero.
func (b *Battle) IsPlayerTurn() bool {
	current := b.CurrentActor()
	if current == nil {
		return false
	}
	for _, h := range b.PlayerTeam {
		if h.ID == current.Char().ID {
			return true
		}
	}
	return false
}

// AdvanceActor moves to the next combatant. Wrapping starts a new
// round: the turn number increments and the order is recomputed over
// the living. Reports whether a new round began.
func (b *Battle) AdvanceActor() bool {
	b.currentIndex++
	if b.currentIndex >= len(b.turnOrder) {
		b.currentIndex = 0
		b.TurnNumber++
		b.CalculateTurnOrder()
		return true
	}
	return false
}

// DropDead removes dead combatants from the turn order immediately,
// resetting the index when it would run past the end.
func (b *Battle) DropDead() {
	kept := b.turnOrder[:0]
	for _, c := range b.turnOrder {
		if c.Char().IsAlive() {
			kept = append(kept, c)
		}
	}
	b.turnOrder = kept
	if b.currentIndex >= len(b.turnOrder) {
		b.currentIndex = 0
	}
}

// CharacterByID finds a combatant on either side.
func (b *Battle) CharacterByID(id string) Combatant {
	for _, c := range b.allCombatants() {
		if c.Char().ID == id {
			return c
		}
	}
	return nil
}

// LivingHeroes lists the heroes still standing, in team order.
func (b *Battle) LivingHeroes() []*Hero {
	var out []*Hero
	for _, h := range b.PlayerTeam {
		if h.IsAlive() {
			out = append(out, h)
		}
	}
	return out
}

// LivingEnemies lists the enemies still standing.
func (b *Battle) LivingEnemies() []EnemyUnit {
	var out []EnemyUnit
	for _, e := range b.EnemyTeam {
		if e.Char().IsAlive() {
			out = append(out, e)
		}
	}
	return out
}

// IsEnded reports whether the battle reached a terminal state.
func (b *Battle) IsEnded() bool {
	switch b.State {
	case StateVictory, StateDefeat, StateRetreat:
		return true
	}
	return false
}

// End transitions the battle into the terminal state for result.
func (b *Battle) End(result BattleResult) {
	switch result {
	case ResultVictory:
		b.State = StateVictory
	case ResultRetreat:
		b.State = StateRetreat
	default:
		b.State = StateDefeat
	}
}

// Log appends an action, stamping the current turn.
func (b *Battle) Log(action BattleAction) {
	action.Turn = b.TurnNumber
	b.ActionLog = append(b.ActionLog, action)
}
