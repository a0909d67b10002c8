package game

// EnemyBehavior is the AI pattern driving an enemy's action choices.
type EnemyBehavior string

const (
	BehaviorAggressive EnemyBehavior = "aggressive"
	BehaviorDefensive  EnemyBehavior = "defensive"
	BehaviorBalanced   EnemyBehavior = "balanced"
	BehaviorSupport    EnemyBehavior = "support"
	BehaviorBerserker  EnemyBehavior = "berserker"
)

// skillChance is the per-behavior probability of preferring a skill
// over a basic attack when one is castable.
var skillChance = map[EnemyBehavior]float64{
	BehaviorAggressive: 0.6,
	BehaviorDefensive:  0.4,
	BehaviorBalanced:   0.5,
	BehaviorSupport:    0.7,
	BehaviorBerserker:  0.3,
}

// DropEntry is one row of an enemy's drop table.
type DropEntry struct {
	ItemID      string  `json:"item_id"`
	Quantity    int     `json:"quantity"`
	Probability float64 `json:"probability"` // 0..1
}

// Enemy is an AI-controlled combat unit with rewards attached.
type Enemy struct {
	Character

	TemplateID string        `json:"template_id"`
	Behavior   EnemyBehavior `json:"behavior"`
	Difficulty int           `json:"difficulty"` // 1-10

	ExpReward  int         `json:"exp_reward"`
	GoldReward int         `json:"gold_reward"`
	DropTable  []DropEntry `json:"drop_table,omitempty"`
}

// NewEnemy builds an enemy at full HP.
func NewEnemy(id, templateID, name string, element Element, pos GridPosition, stats HexagonStats) *Enemy {
	return &Enemy{
		Character:  NewCharacter(id, name, element, pos, stats),
		TemplateID: templateID,
		Behavior:   BehaviorBalanced,
		Difficulty: 1,
	}
}

// PowerRating scales total stats by the difficulty multiplier.
func (e *Enemy) PowerRating() int {
	mult := 1 + float64(e.Difficulty-1)*0.2
	return int(float64(e.Stats.TotalPower()) * mult)
}

// SkillChance returns the behavior's skill-use probability.
func (e *Enemy) SkillChance() float64 {
	if p, ok := skillChance[e.Behavior]; ok {
		return p
	}
	return 0.5
}
