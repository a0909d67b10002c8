package game

// MythicalTier marks the Thiên Giới boss tiers.
type MythicalTier string

const (
	TierTuLinh     MythicalTier = "tu_linh"
	TierThienVuong MythicalTier = "thien_vuong"
	TierThuongCo   MythicalTier = "thuong_co"
	TierHonDon     MythicalTier = "hon_don"
)

var tierPowerMultiplier = map[MythicalTier]float64{
	TierTuLinh:     2.0,
	TierThienVuong: 3.0,
	TierThuongCo:   4.0,
	TierHonDon:     5.0,
}

// BossPhase is an HP-threshold-gated boss mode. Entering it merges its
// stat modifiers and appends its skills.
type BossPhase struct {
	PhaseNumber   int                `json:"phase_number"`
	HPThreshold   float64            `json:"hp_threshold"` // 1.0 = 100%
	Name          string             `json:"name,omitempty"`
	StatModifiers map[string]float64 `json:"stat_modifiers,omitempty"`
	NewSkills     []string           `json:"new_skills,omitempty"`
}

// Boss is a multi-phase enemy. Phase transitions are monotonic: the
// boss moves to the highest phase whose threshold its HP fraction has
// crossed, never backwards.
type Boss struct {
	Enemy

	Title        string       `json:"title,omitempty"`
	Phases       []BossPhase  `json:"phases"`
	CurrentPhase int          `json:"current_phase"`
	MythicalTier MythicalTier `json:"mythical_tier,omitempty"`

	Immunities map[string]bool `json:"immunities"`
}

// NewBoss builds a boss in phase 1 with the default immunity set.
func NewBoss(id, templateID, name string, element Element, pos GridPosition, stats HexagonStats) *Boss {
	b := &Boss{
		Enemy:        *NewEnemy(id, templateID, name, element, pos, stats),
		CurrentPhase: 1,
		Immunities:   map[string]bool{"instant_death": true, "charm": true},
	}
	b.Difficulty = 5
	if b.MythicalTier == TierHonDon {
		b.Behavior = BehaviorBerserker
	}
	return b
}

// CheckPhaseTransition advances to the highest phase whose HP threshold
// is met and that lies past the current one. It reports whether a
// transition happened.
func (b *Boss) CheckPhaseTransition() bool {
	if len(b.Phases) == 0 || b.Stats.HP == 0 {
		return false
	}
	fraction := float64(b.CurrentHP) / float64(b.Stats.HP)

	var target *BossPhase
	for i := range b.Phases {
		phase := &b.Phases[i]
		if fraction > phase.HPThreshold || phase.PhaseNumber <= b.CurrentPhase {
			continue
		}
		if target == nil || phase.PhaseNumber > target.PhaseNumber {
			target = phase
		}
	}
	if target == nil {
		return false
	}

	b.CurrentPhase = target.PhaseNumber
	for _, skillID := range target.NewSkills {
		if !contains(b.Skills, skillID) {
			b.Skills = append(b.Skills, skillID)
		}
	}
	return true
}

// Phase returns the active phase definition, if one exists.
func (b *Boss) Phase() *BossPhase {
	for i := range b.Phases {
		if b.Phases[i].PhaseNumber == b.CurrentPhase {
			return &b.Phases[i]
		}
	}
	return nil
}

func (b *Boss) phaseModifier(stat string) float64 {
	if phase := b.Phase(); phase != nil {
		if mod, ok := phase.StatModifiers[stat]; ok {
			return mod
		}
	}
	return 1.0
}

// EffectiveATK applies the phase modifier on top of status effects.
func (b *Boss) EffectiveATK() int {
	return int(float64(b.Character.EffectiveATK()) * b.phaseModifier("atk"))
}

// EffectiveSPD applies the phase modifier on top of status effects.
func (b *Boss) EffectiveSPD() int {
	return int(float64(b.Character.EffectiveSPD()) * b.phaseModifier("spd"))
}

// EffectiveDEF applies the phase modifier on top of status effects.
func (b *Boss) EffectiveDEF() int {
	return int(float64(b.Character.EffectiveDEF()) * b.phaseModifier("def"))
}

// PowerRating scales the enemy rating by the mythical tier multiplier.
func (b *Boss) PowerRating() int {
	base := b.Enemy.PowerRating()
	if mult, ok := tierPowerMultiplier[b.MythicalTier]; ok {
		return int(float64(base) * mult)
	}
	return base
}

// IsImmuneTo reports whether the boss ignores an effect kind.
func (b *Boss) IsImmuneTo(effect string) bool {
	return b.Immunities[effect]
}

// DisplayName is the name with the title appended when present.
func (b *Boss) DisplayName() string {
	if b.Title != "" {
		return b.Name + " - " + b.Title
	}
	return b.Name
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
