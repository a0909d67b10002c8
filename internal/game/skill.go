package game

// SkillType classifies what an active skill does.
type SkillType string

const (
	SkillDamage SkillType = "damage"
	SkillHeal   SkillType = "heal"
	SkillBuff   SkillType = "buff"
	SkillDebuff SkillType = "debuff"
)

// TargetType describes who a skill may target.
type TargetType string

const (
	TargetSelf        TargetType = "self"
	TargetSingleAlly  TargetType = "single_ally"
	TargetSingleEnemy TargetType = "single_enemy"
	TargetAllAllies   TargetType = "all_allies"
	TargetAllEnemies  TargetType = "all_enemies"
	TargetAOE         TargetType = "aoe"
)

// Skill is an active combat skill. Passives carry zero mana cost and
// cooldown; ultimates are actives with a gauge cost and animation.
type Skill struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	ManaCost        int `json:"mana_cost"`
	Cooldown        int `json:"cooldown"`
	CurrentCooldown int `json:"current_cooldown"`
	Level           int `json:"level"`
	MaxLevel        int `json:"max_level"`

	Type       SkillType  `json:"type"`
	TargetType TargetType `json:"target_type"`
	Element    Element    `json:"element,omitempty"`

	DamageMultiplier float64 `json:"damage_multiplier,omitempty"`
	HealMultiplier   float64 `json:"heal_multiplier,omitempty"`

	BuffStats     map[string]float64 `json:"buff_stats,omitempty"`
	DebuffEffects map[string]float64 `json:"debuff_effects,omitempty"`
	AOERange      int                `json:"aoe_range,omitempty"`
	Duration      int                `json:"duration,omitempty"`

	// Passive fields.
	IsPassive        bool               `json:"is_passive,omitempty"`
	TriggerCondition string             `json:"trigger_condition,omitempty"`
	StatBonuses      map[string]int     `json:"stat_bonuses,omitempty"`

	// Ultimate fields.
	IsUltimate        bool   `json:"is_ultimate,omitempty"`
	UltimateGaugeCost int    `json:"ultimate_gauge_cost,omitempty"`
	AnimationID       string `json:"animation_id,omitempty"`
}

// IsReady reports whether the skill is off cooldown.
func (s *Skill) IsReady() bool {
	return s.CurrentCooldown == 0
}

// TriggerCooldown puts the skill on cooldown after use.
func (s *Skill) TriggerCooldown() {
	s.CurrentCooldown = s.Cooldown
}

// ReduceCooldown ticks the cooldown down, clamping at 0.
func (s *Skill) ReduceCooldown(amount int) {
	s.CurrentCooldown = max(0, s.CurrentCooldown-amount)
}

// EffectiveMultiplier scales the damage or heal multiplier by level.
func (s *Skill) EffectiveMultiplier() float64 {
	switch s.Type {
	case SkillDamage:
		return s.DamageMultiplier + float64(s.Level-1)*0.05
	case SkillHeal:
		return s.HealMultiplier + float64(s.Level-1)*0.03
	}
	return 1.0
}

// ValidTargetCount reports whether n targets fits the target type.
func (s *Skill) ValidTargetCount(n int) bool {
	switch s.TargetType {
	case TargetSelf, TargetSingleAlly, TargetSingleEnemy:
		return n == 1
	case TargetAllAllies, TargetAllEnemies, TargetAOE:
		return n >= 1
	}
	return false
}
