package game

// MountType distinguishes ordinary mounts from dragons.
type MountType string

const (
	MountHorse    MountType = "horse"
	MountDragon   MountType = "dragon"
	MountMythical MountType = "mythical"
)

// MaxBondLevel caps rider bond.
const MaxBondLevel = 10

// BonusKind tags a team bonus value as flat or percent.
type BonusKind string

const (
	BonusFlat    BonusKind = "flat"
	BonusPercent BonusKind = "percent"
)

// TeamBonus is one stat bonus a mount grants the whole team.
type TeamBonus struct {
	Stat  string    `json:"stat"`
	Value float64   `json:"value"`
	Kind  BonusKind `json:"kind"`
}

// EvolutionStage is one step of a dragon's evolution line.
type EvolutionStage struct {
	Stage     int          `json:"stage"`
	Name      string       `json:"name"`
	LevelReq  int          `json:"level_req"`
	StatBonus HexagonStats `json:"stat_bonus"`
}

// Mount is a rideable companion whose stats scale with level and bond.
type Mount struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"template_id"`
	Name       string    `json:"name"`
	Type       MountType `json:"type"`
	Rarity     int       `json:"rarity"`

	Level      int `json:"level"`
	Exp        int `json:"exp"`
	BondLevel  int `json:"bond_level"`
	BondPoints int `json:"bond_points"`

	BaseStats   HexagonStats `json:"base_stats"`
	TeamBonuses []TeamBonus  `json:"team_bonuses,omitempty"`
}

// EffectiveStats applies level and bond scaling:
// base * (1 + 0.1*(level-1)) * (1 + 0.05*(bond-1)).
func (m *Mount) EffectiveStats() HexagonStats {
	levelMult := 1 + float64(m.Level-1)*0.1
	bondMult := 1 + float64(m.BondLevel-1)*0.05
	return m.BaseStats.Multiply(levelMult * bondMult)
}

// AddBondPoints accumulates bond, leveling at 100 points per level and
// capping at MaxBondLevel. Reports whether a bond level was gained.
func (m *Mount) AddBondPoints(points int) bool {
	if m.BondLevel >= MaxBondLevel {
		return false
	}
	m.BondPoints += points
	leveled := false
	for m.BondPoints >= 100 && m.BondLevel < MaxBondLevel {
		m.BondPoints -= 100
		m.BondLevel++
		leveled = true
	}
	return leveled
}

// ScaledTeamBonuses returns the team bonuses with 5%-per-level scaling
// applied to their values.
func (m *Mount) ScaledTeamBonuses() []TeamBonus {
	mult := 1 + float64(m.Level-1)*0.05
	out := make([]TeamBonus, len(m.TeamBonuses))
	for i, b := range m.TeamBonuses {
		out[i] = TeamBonus{Stat: b.Stat, Value: b.Value * mult, Kind: b.Kind}
	}
	return out
}

// Dragon is a mount with an element affinity, awakening and an
// evolution line.
type Dragon struct {
	Mount

	Element        Element          `json:"element"`
	AwakeningLevel int              `json:"awakening_level"`
	EvolutionStage int              `json:"evolution_stage"`
	Evolutions     []EvolutionStage `json:"evolutions,omitempty"`
}

// ElementBuff is the fractional buff the dragon grants to same-element
// heroes: 0.1 + 0.05 per awakening level.
func (d *Dragon) ElementBuff() float64 {
	return 0.1 + 0.05*float64(d.AwakeningLevel)
}

// CanEvolve reports whether the next evolution stage's level gate is met.
func (d *Dragon) CanEvolve() bool {
	next := d.nextEvolution()
	return next != nil && d.Level >= next.LevelReq
}

// Evolve advances to the next stage when eligible, merging its stat
// bonus into the base stats.
func (d *Dragon) Evolve() bool {
	next := d.nextEvolution()
	if next == nil || d.Level < next.LevelReq {
		return false
	}
	d.EvolutionStage = next.Stage
	d.BaseStats = d.BaseStats.Add(next.StatBonus)
	return true
}

func (d *Dragon) nextEvolution() *EvolutionStage {
	for i := range d.Evolutions {
		if d.Evolutions[i].Stage == d.EvolutionStage+1 {
			return &d.Evolutions[i]
		}
	}
	return nil
}
