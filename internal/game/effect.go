package game

// StatusEffectType classifies a status effect.
type StatusEffectType string

const (
	EffectBuff         StatusEffectType = "buff"
	EffectDebuff       StatusEffectType = "debuff"
	EffectDOT          StatusEffectType = "dot"
	EffectHOT          StatusEffectType = "hot"
	EffectCrowdControl StatusEffectType = "cc"
	EffectShield       StatusEffectType = "shield"
)

// StatusEffect is a timed effect attached to a character: stat buffs and
// debuffs, damage/heal over time, crowd control, and damage-absorbing
// shields. Durations count down once per round.
type StatusEffect struct {
	ID   string           `json:"id"`
	Name string           `json:"name"`
	Type StatusEffectType `json:"type"`
	// Duration is the number of remaining rounds.
	Duration int `json:"duration"`

	// StatModifiers maps stat name to a fractional modifier,
	// e.g. {"atk": 0.2} for +20%.
	StatModifiers map[string]float64 `json:"stat_modifiers,omitempty"`

	DamagePerTurn int `json:"damage_per_turn,omitempty"`
	HealPerTurn   int `json:"heal_per_turn,omitempty"`

	PreventsAction bool `json:"prevents_action,omitempty"`
	ShieldAmount   int  `json:"shield_amount,omitempty"`

	IsStackable   bool `json:"is_stackable,omitempty"`
	MaxStacks     int  `json:"max_stacks,omitempty"`
	CurrentStacks int  `json:"current_stacks"`

	SourceID string `json:"source_id,omitempty"`
}

// NewStatusEffect builds an effect with one stack.
func NewStatusEffect(id, name string, typ StatusEffectType, duration int) *StatusEffect {
	return &StatusEffect{
		ID:            id,
		Name:          name,
		Type:          typ,
		Duration:      duration,
		MaxStacks:     1,
		CurrentStacks: 1,
	}
}

// ReduceDuration ticks the effect down one round, clamping at 0.
func (e *StatusEffect) ReduceDuration() {
	if e.Duration > 0 {
		e.Duration--
	}
}

// IsExpired reports whether the effect should be removed.
func (e *StatusEffect) IsExpired() bool {
	return e.Duration <= 0
}

// IsPositive reports whether the effect benefits its holder.
func (e *StatusEffect) IsPositive() bool {
	switch e.Type {
	case EffectBuff, EffectHOT, EffectShield:
		return true
	}
	return false
}

// AddStack adds a stack, up to MaxStacks. Returns false when the effect
// is not stackable or already at cap.
func (e *StatusEffect) AddStack() bool {
	if !e.IsStackable || e.CurrentStacks >= e.MaxStacks {
		return false
	}
	e.CurrentStacks++
	return true
}

// Refresh resets the remaining duration.
func (e *StatusEffect) Refresh(duration int) {
	e.Duration = duration
}

// TickDamage returns the DOT damage for one round, scaled by stacks.
func (e *StatusEffect) TickDamage() int {
	if e.Type != EffectDOT {
		return 0
	}
	return e.DamagePerTurn * e.CurrentStacks
}

// TickHeal returns the HOT healing for one round, scaled by stacks.
func (e *StatusEffect) TickHeal() int {
	if e.Type != EffectHOT {
		return 0
	}
	return e.HealPerTurn * e.CurrentStacks
}

// StatModifier returns the modifier for a stat, scaled by stacks when
// the effect stacks.
func (e *StatusEffect) StatModifier(stat string) float64 {
	mod := e.StatModifiers[stat]
	if e.IsStackable {
		return mod * float64(e.CurrentStacks)
	}
	return mod
}

// Absorb consumes shield capacity against incoming damage and returns
// the damage that passes through. Non-shield effects absorb nothing.
func (e *StatusEffect) Absorb(damage int) int {
	if e.Type != EffectShield || damage <= 0 {
		return damage
	}
	absorbed := min(e.ShieldAmount, damage)
	e.ShieldAmount -= absorbed
	return damage - absorbed
}
