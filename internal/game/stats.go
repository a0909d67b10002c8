package game

// HexagonStats is the immutable six-dimensional stat block (Lục Giác)
// shared by every combat entity. All arithmetic returns new values.
type HexagonStats struct {
	HP   int `json:"hp"`
	ATK  int `json:"atk"`
	DEF  int `json:"def"`
	SPD  int `json:"spd"`
	CRIT int `json:"crit"`
	DEX  int `json:"dex"`
}

// DefaultStats returns the baseline stat block used when a template
// omits stats.
func DefaultStats() HexagonStats {
	return HexagonStats{HP: 100, ATK: 10, DEF: 5, SPD: 100, CRIT: 5, DEX: 10}
}

// TotalPower is the componentwise sum of all six stats.
func (s HexagonStats) TotalPower() int {
	return s.HP + s.ATK + s.DEF + s.SPD + s.CRIT + s.DEX
}

// Add returns the componentwise sum of s and other.
func (s HexagonStats) Add(other HexagonStats) HexagonStats {
	return HexagonStats{
		HP:   s.HP + other.HP,
		ATK:  s.ATK + other.ATK,
		DEF:  s.DEF + other.DEF,
		SPD:  s.SPD + other.SPD,
		CRIT: s.CRIT + other.CRIT,
		DEX:  s.DEX + other.DEX,
	}
}

// Multiply scales every stat by factor, truncating to integers.
func (s HexagonStats) Multiply(factor float64) HexagonStats {
	return HexagonStats{
		HP:   int(float64(s.HP) * factor),
		ATK:  int(float64(s.ATK) * factor),
		DEF:  int(float64(s.DEF) * factor),
		SPD:  int(float64(s.SPD) * factor),
		CRIT: int(float64(s.CRIT) * factor),
		DEX:  int(float64(s.DEX) * factor),
	}
}

// ToMap converts to the uppercase-keyed map used by the catalog data format.
func (s HexagonStats) ToMap() map[string]int {
	return map[string]int{
		"HP": s.HP, "ATK": s.ATK, "DEF": s.DEF,
		"SPD": s.SPD, "CRIT": s.CRIT, "DEX": s.DEX,
	}
}

// StatsFromMap builds a stat block from the uppercase-keyed map format.
// Missing keys fall back to the defaults.
func StatsFromMap(data map[string]int) HexagonStats {
	s := DefaultStats()
	if v, ok := data["HP"]; ok {
		s.HP = v
	}
	if v, ok := data["ATK"]; ok {
		s.ATK = v
	}
	if v, ok := data["DEF"]; ok {
		s.DEF = v
	}
	if v, ok := data["SPD"]; ok {
		s.SPD = v
	}
	if v, ok := data["CRIT"]; ok {
		s.CRIT = v
	}
	if v, ok := data["DEX"]; ok {
		s.DEX = v
	}
	return s
}

// ApplyGrowth adds floor(growth * levels) per stat, used on level-up.
func (s HexagonStats) ApplyGrowth(growth map[string]float64, levels int) HexagonStats {
	if levels <= 0 || len(growth) == 0 {
		return s
	}
	delta := HexagonStats{
		HP:   int(growth["hp"] * float64(levels)),
		ATK:  int(growth["atk"] * float64(levels)),
		DEF:  int(growth["def"] * float64(levels)),
		SPD:  int(growth["spd"] * float64(levels)),
		CRIT: int(growth["crit"] * float64(levels)),
		DEX:  int(growth["dex"] * float64(levels)),
	}
	return s.Add(delta)
}
