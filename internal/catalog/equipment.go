package catalog

import "github.com/ngoa-long/tamquoc/backend/internal/game"

func equipmentSets() []*EquipmentSet {
	return []*EquipmentSet{
		{
			ID: "ngu_ho_tuong", Name: "Ngũ Hổ Tướng",
			Bonuses: map[int]game.HexagonStats{
				2: {ATK: 30},
				4: {ATK: 60, CRIT: 10},
			},
		},
		{
			ID: "thiet_ky", Name: "Thiết Kỵ",
			Bonuses: map[int]game.HexagonStats{
				2: {DEF: 40},
				4: {DEF: 80, HP: 200},
			},
		},
	}
}

func equipmentTemplates() []*EquipmentTemplate {
	return []*EquipmentTemplate{
		{
			ID: "thanh_long_dao", Name: "Thanh Long Yểm Nguyệt Đao",
			Type: game.EquipmentWeapon, Rarity: game.RarityLegendary,
			BaseStats:       game.HexagonStats{ATK: 120, CRIT: 15},
			SetID:           "ngu_ho_tuong",
			UniqueEffect:    "long_tran_hao_boost",
			RequiredLevel:   30,
			RequiredElement: game.ElementKim,
		},
		{
			ID: "xa_mau", Name: "Trượng Bát Xà Mâu",
			Type: game.EquipmentWeapon, Rarity: game.RarityLegendary,
			BaseStats:     game.HexagonStats{ATK: 110, SPD: 10, CRIT: 12},
			SetID:         "ngu_ho_tuong",
			RequiredLevel: 30,
		},
		{
			ID: "iron_sword", Name: "Thiết Kiếm",
			Type: game.EquipmentWeapon, Rarity: game.RarityCommon,
			BaseStats:     game.HexagonStats{ATK: 25},
			RequiredLevel: 1,
		},
		{
			ID: "steel_sword", Name: "Cương Kiếm",
			Type: game.EquipmentWeapon, Rarity: game.RarityRare,
			BaseStats:     game.HexagonStats{ATK: 50, CRIT: 5},
			RequiredLevel: 10,
		},
		{
			ID: "leather_armor", Name: "Bì Giáp",
			Type: game.EquipmentArmor, Rarity: game.RarityCommon,
			BaseStats:     game.HexagonStats{HP: 100, DEF: 20},
			RequiredLevel: 1,
		},
		{
			ID: "iron_armor", Name: "Thiết Giáp",
			Type: game.EquipmentArmor, Rarity: game.RarityRare,
			BaseStats:     game.HexagonStats{HP: 220, DEF: 45},
			SetID:         "thiet_ky",
			RequiredLevel: 10,
		},
		{
			ID: "war_horse_saddle", Name: "Yên Chiến Mã",
			Type: game.EquipmentAccessory, Rarity: game.RarityEpic,
			BaseStats:     game.HexagonStats{SPD: 25, DEX: 10},
			SetID:         "thiet_ky",
			RequiredLevel: 20,
		},
		{
			ID: "jade_pendant", Name: "Ngọc Bội",
			Type: game.EquipmentAccessory, Rarity: game.RarityRare,
			BaseStats:     game.HexagonStats{HP: 80, DEX: 12},
			RequiredLevel: 5,
		},
		{
			ID: "yellow_turban_relic", Name: "Thái Bình Yêu Thuật",
			Type: game.EquipmentRelic, Rarity: game.RarityEpic,
			BaseStats:     game.HexagonStats{ATK: 35, CRIT: 8, DEX: 8},
			RequiredLevel: 15,
		},
	}
}
