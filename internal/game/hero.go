package game

// Hero progression constants.
const (
	BaseMaxLevel      = 20
	LevelsPerAscension = 10
	MaxAscension      = 6
	MaxAwakening      = 6
	MaxStars          = 6
)

// ascensionLevelReq maps ascension level to the hero level required to
// ascend again.
var ascensionLevelReq = [MaxAscension]int{20, 30, 40, 50, 60, 70}

// expTable overrides the required-exp curve for the first levels; past
// the table the 100 + 50*level formula applies.
var expTable = map[int]int{
	1: 100, 2: 150, 3: 200, 4: 250, 5: 300,
	6: 400, 7: 500, 8: 600, 9: 700, 10: 800,
}

// LevelUpResult reports the outcome of gaining experience.
type LevelUpResult struct {
	LeveledUp    bool `json:"leveled_up"`
	OldLevel     int  `json:"old_level"`
	NewLevel     int  `json:"new_level"`
	ExpRemaining int  `json:"exp_remaining"`
}

// Hero is a player-owned character with the full progression surface:
// level/exp, stars, ascension, awakening, equipment slots and a mount.
type Hero struct {
	Character

	TemplateID     string `json:"template_id"`
	Rarity         int    `json:"rarity"` // base rarity 1-6
	Level          int    `json:"level"`
	Exp            int    `json:"exp"`
	Stars          int    `json:"stars"`
	AscensionLevel int    `json:"ascension_level"`
	AwakeningLevel int    `json:"awakening_level"`

	WeaponID    string `json:"weapon_id,omitempty"`
	ArmorID     string `json:"armor_id,omitempty"`
	AccessoryID string `json:"accessory_id,omitempty"`
	RelicID     string `json:"relic_id,omitempty"`
	MountID     string `json:"mount_id,omitempty"`

	GrowthRates map[string]float64 `json:"growth_rates,omitempty"`

	IsLocked   bool `json:"is_locked"`
	IsFavorite bool `json:"is_favorite"`
}

// NewHero builds a level-1 hero from a template's element and stats.
func NewHero(id, templateID, name string, element Element, pos GridPosition, stats HexagonStats, rarity int) *Hero {
	return &Hero{
		Character:  NewCharacter(id, name, element, pos, stats),
		TemplateID: templateID,
		Rarity:     rarity,
		Level:      1,
		Stars:      1,
	}
}

// RequiredExp returns the experience needed to advance past level.
func RequiredExp(level int) int {
	if exp, ok := expTable[level]; ok {
		return exp
	}
	return 100 + level*50
}

// MaxLevel is the level cap at the current ascension.
func (h *Hero) MaxLevel() int {
	return BaseMaxLevel + h.AscensionLevel*LevelsPerAscension
}

// GainExp adds experience and resolves level-ups against the curve,
// stopping at the ascension-gated cap. Growth rates apply per level.
func (h *Hero) GainExp(amount int) LevelUpResult {
	old := h.Level
	h.Exp += amount
	for h.Level < h.MaxLevel() && h.Exp >= RequiredExp(h.Level) {
		h.Exp -= RequiredExp(h.Level)
		h.Level++
		h.Stats = h.Stats.ApplyGrowth(h.GrowthRates, 1)
	}
	return LevelUpResult{
		LeveledUp:    h.Level > old,
		OldLevel:     old,
		NewLevel:     h.Level,
		ExpRemaining: h.Exp,
	}
}

// CanAscend reports whether the hero meets the next ascension gate.
func (h *Hero) CanAscend() bool {
	if h.AscensionLevel >= MaxAscension {
		return false
	}
	return h.Level >= h.AscensionRequirement()
}

// AscensionRequirement returns the level needed for the next ascension.
func (h *Hero) AscensionRequirement() int {
	if h.AscensionLevel >= MaxAscension {
		return 80
	}
	return ascensionLevelReq[h.AscensionLevel]
}

// TotalPower is the hero power rating:
// round(base * level mult * star mult) + flat ascension/awakening bonuses.
func (h *Hero) TotalPower() int {
	base := float64(h.Stats.TotalPower())
	levelMult := 1 + float64(h.Level-1)*0.05
	starMult := 1 + float64(h.Stars-1)*0.2
	return int(base*levelMult*starMult+0.5) + h.AscensionLevel*100 + h.AwakeningLevel*150
}

// EquipmentInSlot returns the equipment id occupying a slot, if any.
func (h *Hero) EquipmentInSlot(slot EquipmentType) string {
	switch slot {
	case EquipmentWeapon:
		return h.WeaponID
	case EquipmentArmor:
		return h.ArmorID
	case EquipmentAccessory:
		return h.AccessoryID
	case EquipmentRelic:
		return h.RelicID
	}
	return ""
}

// SetEquipmentSlot writes a slot reference; empty clears it.
func (h *Hero) SetEquipmentSlot(slot EquipmentType, equipmentID string) {
	switch slot {
	case EquipmentWeapon:
		h.WeaponID = equipmentID
	case EquipmentArmor:
		h.ArmorID = equipmentID
	case EquipmentAccessory:
		h.AccessoryID = equipmentID
	case EquipmentRelic:
		h.RelicID = equipmentID
	}
}
