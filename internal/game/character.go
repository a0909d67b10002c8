package game

import "fmt"

// MaxMana is the mana cap shared by every combat entity.
const MaxMana = 100

// DamageResult reports the outcome of applying damage.
type DamageResult struct {
	DamageTaken int  `json:"damage_taken"`
	IsDead      bool `json:"is_dead"`
}

// HealResult reports the HP actually restored.
type HealResult struct {
	ActualHeal int `json:"actual_heal"`
}

// Character is the combat entity common to heroes, enemies and bosses.
// Hero, Enemy and Boss embed it and add their own progression or AI data.
type Character struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Element  Element      `json:"element"`
	Position GridPosition `json:"position"`
	Stats    HexagonStats `json:"stats"`

	CurrentHP   int `json:"current_hp"`
	CurrentMana int `json:"current_mana"`
	MaxManaCap  int `json:"max_mana"`

	// Skills are skill template ids; live skill state sits on the battle.
	Skills        []string        `json:"skills"`
	StatusEffects []*StatusEffect `json:"status_effects"`
}

// NewCharacter builds a character at full HP and zero mana.
func NewCharacter(id, name string, element Element, pos GridPosition, stats HexagonStats) Character {
	return Character{
		ID:         id,
		Name:       name,
		Element:    element,
		Position:   pos,
		Stats:      stats,
		CurrentHP:  stats.HP,
		MaxManaCap: MaxMana,
	}
}

// IsAlive reports whether the character still has HP.
func (c *Character) IsAlive() bool {
	return c.CurrentHP > 0
}

// TakeDamage applies damage, routing it through shields in insertion
// order first, then clamps HP at 0. It reports the HP actually lost and
// whether the hit was lethal.
func (c *Character) TakeDamage(damage int) DamageResult {
	remaining := damage
	for _, eff := range c.StatusEffects {
		remaining = eff.Absorb(remaining)
		if remaining == 0 {
			break
		}
	}
	actual := min(remaining, c.CurrentHP)
	c.CurrentHP -= actual
	return DamageResult{DamageTaken: actual, IsDead: c.CurrentHP <= 0}
}

// Heal restores HP, clamping at max, and reports the amount restored.
func (c *Character) Heal(amount int) HealResult {
	actual := min(amount, c.Stats.HP-c.CurrentHP)
	c.CurrentHP += actual
	return HealResult{ActualHeal: actual}
}

// GainMana grants mana, clamping at the cap.
func (c *Character) GainMana(amount int) {
	c.CurrentMana = min(c.MaxManaCap, c.CurrentMana+amount)
}

// UseMana spends mana, failing without mutation when short.
func (c *Character) UseMana(amount int) error {
	if amount > c.CurrentMana {
		return fmt.Errorf("insufficient mana: have %d, need %d", c.CurrentMana, amount)
	}
	c.CurrentMana -= amount
	return nil
}

// CanAct reports whether the character is free of action-preventing
// crowd control.
func (c *Character) CanAct() bool {
	for _, eff := range c.StatusEffects {
		if eff.PreventsAction && !eff.IsExpired() {
			return false
		}
	}
	return true
}

// AddStatusEffect pushes an effect, applying stacking rules: a matching
// stackable effect gains a stack and refreshes its duration, a matching
// non-stackable effect is replaced.
func (c *Character) AddStatusEffect(effect *StatusEffect) {
	for i, existing := range c.StatusEffects {
		if existing.ID != effect.ID {
			continue
		}
		if existing.IsStackable {
			existing.AddStack()
			existing.Refresh(effect.Duration)
		} else {
			c.StatusEffects[i] = effect
		}
		return
	}
	c.StatusEffects = append(c.StatusEffects, effect)
}

// RemoveExpiredEffects drops effects whose duration has run out and
// shields with no capacity left.
func (c *Character) RemoveExpiredEffects() {
	kept := c.StatusEffects[:0]
	for _, eff := range c.StatusEffects {
		if eff.IsExpired() {
			continue
		}
		if eff.Type == EffectShield && eff.ShieldAmount <= 0 {
			continue
		}
		kept = append(kept, eff)
	}
	c.StatusEffects = kept
}

// EffectiveStat returns a base stat with buff/debuff modifiers applied
// multiplicatively.
func (c *Character) EffectiveStat(stat string, base int) int {
	mod := 1.0
	for _, eff := range c.StatusEffects {
		if eff.Type == EffectBuff || eff.Type == EffectDebuff {
			mod += eff.StatModifier(stat)
		}
	}
	return int(float64(base) * mod)
}

// EffectiveATK is the attack stat after status modifiers.
func (c *Character) EffectiveATK() int { return c.EffectiveStat("atk", c.Stats.ATK) }

// EffectiveDEF is the defense stat after status modifiers.
func (c *Character) EffectiveDEF() int { return c.EffectiveStat("def", c.Stats.DEF) }

// EffectiveSPD is the speed stat after status modifiers.
func (c *Character) EffectiveSPD() int { return c.EffectiveStat("spd", c.Stats.SPD) }
