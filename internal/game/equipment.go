package game

// EquipmentType is the slot an item occupies.
type EquipmentType string

const (
	EquipmentWeapon    EquipmentType = "weapon"
	EquipmentArmor     EquipmentType = "armor"
	EquipmentAccessory EquipmentType = "accessory"
	EquipmentRelic     EquipmentType = "relic"
)

// Rarity grades equipment.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

var rarityMaxLevel = map[Rarity]int{
	RarityCommon:    10,
	RarityRare:      15,
	RarityEpic:      20,
	RarityLegendary: 25,
	RarityMythic:    30,
}

var rarityPowerMultiplier = map[Rarity]float64{
	RarityCommon:    1.0,
	RarityRare:      1.2,
	RarityEpic:      1.5,
	RarityLegendary: 2.0,
	RarityMythic:    2.5,
}

// EnhanceResult reports an enhancement attempt.
type EnhanceResult struct {
	Success     bool         `json:"success"`
	NewLevel    int          `json:"new_level"`
	StatsGained HexagonStats `json:"stats_gained"`
}

// Equipment is an owned gear piece. Base stats come from the template;
// bonus stats accrue from enhancement.
type Equipment struct {
	ID         string        `json:"id"`
	TemplateID string        `json:"template_id"`
	Name       string        `json:"name"`
	Type       EquipmentType `json:"type"`
	Rarity     Rarity        `json:"rarity"`
	Level      int           `json:"level"`

	BaseStats  HexagonStats `json:"base_stats"`
	BonusStats HexagonStats `json:"bonus_stats"`

	SetID        string `json:"set_id,omitempty"`
	UniqueEffect string `json:"unique_effect,omitempty"`

	RequiredLevel   int     `json:"required_level"`
	RequiredElement Element `json:"required_element,omitempty"`

	EquippedBy string `json:"equipped_by,omitempty"`
	IsLocked   bool   `json:"is_locked"`
}

// MaxLevelForRarity returns the enhancement cap for a rarity grade.
func MaxLevelForRarity(r Rarity) int {
	if lvl, ok := rarityMaxLevel[r]; ok {
		return lvl
	}
	return 10
}

// MaxLevel is the enhancement cap for this piece.
func (e *Equipment) MaxLevel() int {
	return MaxLevelForRarity(e.Rarity)
}

// CanEnhance reports whether another enhancement level is available.
func (e *Equipment) CanEnhance() bool {
	return e.Level < e.MaxLevel()
}

// EnhanceCost is the gold cost of the next enhancement.
func (e *Equipment) EnhanceCost() int {
	return e.Level * 100
}

// Enhance raises the level by one, adding floor(0.1 * base) to each
// bonus stat. Fails without mutation at the rarity cap.
func (e *Equipment) Enhance() EnhanceResult {
	if !e.CanEnhance() {
		return EnhanceResult{Success: false, NewLevel: e.Level}
	}
	e.Level++
	gained := e.BaseStats.Multiply(0.1)
	e.BonusStats = e.BonusStats.Add(gained)
	return EnhanceResult{Success: true, NewLevel: e.Level, StatsGained: gained}
}

// TotalStats is base plus enhancement bonuses.
func (e *Equipment) TotalStats() HexagonStats {
	return e.BaseStats.Add(e.BonusStats)
}

// PowerRating scales total stats by the rarity multiplier.
func (e *Equipment) PowerRating() int {
	mult, ok := rarityPowerMultiplier[e.Rarity]
	if !ok {
		mult = 1.0
	}
	return int(float64(e.TotalStats().TotalPower()) * mult)
}
