package catalog

import "github.com/ngoa-long/tamquoc/backend/internal/game"

// MountTemplate defines a mount or dragon companion.
type MountTemplate struct {
	ID      string
	Name    string
	Type    game.MountType
	Rarity  int
	Element game.Element // dragons only

	BaseStats   game.HexagonStats
	TeamBonuses []game.TeamBonus
	Evolutions  []game.EvolutionStage
}

// Instantiate stamps a live mount from a persisted row's progression.
func (t *MountTemplate) Instantiate(id string, level, bondLevel, bondPoints int) *game.Mount {
	if level < 1 {
		level = 1
	}
	if bondLevel < 1 {
		bondLevel = 1
	}
	return &game.Mount{
		ID:          id,
		TemplateID:  t.ID,
		Name:        t.Name,
		Type:        t.Type,
		Rarity:      t.Rarity,
		Level:       level,
		BondLevel:   bondLevel,
		BondPoints:  bondPoints,
		BaseStats:   t.BaseStats,
		TeamBonuses: t.TeamBonuses,
	}
}

func mountTemplates() []*MountTemplate {
	return []*MountTemplate{
		{
			ID: "chien_ma", Name: "Chiến Mã",
			Type: game.MountHorse, Rarity: 2,
			BaseStats: game.HexagonStats{HP: 100, ATK: 10, DEF: 10, SPD: 15, CRIT: 0, DEX: 5},
			TeamBonuses: []game.TeamBonus{
				{Stat: "spd", Value: 5, Kind: game.BonusFlat},
			},
		},
		{
			ID: "xich_tho", Name: "Xích Thố",
			Type: game.MountHorse, Rarity: 4,
			BaseStats: game.HexagonStats{HP: 250, ATK: 40, DEF: 25, SPD: 40, CRIT: 5, DEX: 15},
			TeamBonuses: []game.TeamBonus{
				{Stat: "spd", Value: 15, Kind: game.BonusFlat},
				{Stat: "atk", Value: 5, Kind: game.BonusPercent},
			},
		},
		{
			ID: "thanh_long", Name: "Thanh Long",
			Type: game.MountDragon, Rarity: 5, Element: game.ElementMoc,
			BaseStats: game.HexagonStats{HP: 500, ATK: 80, DEF: 60, SPD: 30, CRIT: 10, DEX: 20},
			TeamBonuses: []game.TeamBonus{
				{Stat: "atk", Value: 10, Kind: game.BonusPercent},
				{Stat: "hp", Value: 8, Kind: game.BonusPercent},
			},
			Evolutions: []game.EvolutionStage{
				{Stage: 1, Name: "Thanh Long Trưởng Thành", LevelReq: 20,
					StatBonus: game.HexagonStats{HP: 300, ATK: 50, DEF: 30, SPD: 10, CRIT: 5, DEX: 10}},
				{Stage: 2, Name: "Thanh Long Thần Thú", LevelReq: 40,
					StatBonus: game.HexagonStats{HP: 600, ATK: 100, DEF: 60, SPD: 20, CRIT: 10, DEX: 20}},
			},
		},
	}
}
