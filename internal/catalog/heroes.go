package catalog

import "github.com/ngoa-long/tamquoc/backend/internal/game"

// heroTemplates returns the built-in hero roster. Stat spreads follow
// the element archetypes: Kim favors ATK, Mộc HP, Thủy SPD/DEX, Hỏa
// CRIT, Thổ DEF.
func heroTemplates() []*HeroTemplate {
	return []*HeroTemplate{
		// Thục Hán
		{
			ID: "luu_bi", Name: "Lưu Bị", Title: "Hoàng Đế Thục Hán",
			Element: game.ElementMoc, Rarity: 5,
			BaseStats:   game.HexagonStats{HP: 1300, ATK: 85, DEF: 80, SPD: 90, CRIT: 10, DEX: 15},
			GrowthRates: map[string]float64{"HP": 15, "ATK": 5, "DEF": 6, "SPD": 4, "CRIT": 1, "DEX": 2},
			SkillIDs:    []string{"basic_attack", "nhan_duc"},
			Lore:        "Nhân từ đức độ, lãnh đạo Ngũ Hổ Tướng.",
		},
		{
			ID: "quan_vu", Name: "Quan Vũ", Title: "Võ Thánh",
			Element: game.ElementKim, Rarity: 5,
			BaseStats:   game.HexagonStats{HP: 1100, ATK: 130, DEF: 70, SPD: 95, CRIT: 18, DEX: 20},
			GrowthRates: map[string]float64{"HP": 8, "ATK": 12, "DEF": 4, "SPD": 5, "CRIT": 2, "DEX": 3},
			SkillIDs:    []string{"basic_attack", "long_tran_hao"},
			Lore:        "Sử dụng Thanh Long Yểm Nguyệt Đao, nghĩa khí ngút trời.",
		},
		{
			ID: "truong_phi", Name: "Trương Phi", Title: "Yến Nhân Dực Đức",
			Element: game.ElementHoa, Rarity: 5,
			BaseStats:   game.HexagonStats{HP: 950, ATK: 125, DEF: 55, SPD: 100, CRIT: 25, DEX: 18},
			GrowthRates: map[string]float64{"HP": 6, "ATK": 10, "DEF": 3, "SPD": 6, "CRIT": 4, "DEX": 2},
			SkillIDs:    []string{"basic_attack", "truong_ba_xa_mau"},
		},
		{
			ID: "gia_cat_luong", Name: "Gia Cát Lượng", Title: "Ngọa Long",
			Element: game.ElementThuy, Rarity: 5,
			BaseStats:   game.HexagonStats{HP: 900, ATK: 90, DEF: 60, SPD: 115, CRIT: 12, DEX: 30},
			GrowthRates: map[string]float64{"HP": 5, "ATK": 6, "DEF": 3, "SPD": 10, "CRIT": 2, "DEX": 5},
			SkillIDs:    []string{"basic_attack", "thien_khi", "bat_quai_tran"},
		},
		{
			ID: "trieu_van", Name: "Triệu Vân", Title: "Thường Thắng Tướng Quân",
			Element: game.ElementTho, Rarity: 5,
			BaseStats:   game.HexagonStats{HP: 1150, ATK: 105, DEF: 95, SPD: 85, CRIT: 15, DEX: 22},
			GrowthRates: map[string]float64{"HP": 10, "ATK": 7, "DEF": 8, "SPD": 4, "CRIT": 2, "DEX": 3},
			SkillIDs:    []string{"basic_attack", "thich_tho_trung_thien"},
		},
		// Ngụy
		{
			ID: "tao_thao", Name: "Tào Tháo", Title: "Ngụy Vũ Đế",
			Element: game.ElementThuy, Rarity: 5,
			BaseStats:   game.HexagonStats{HP: 1000, ATK: 100, DEF: 75, SPD: 110, CRIT: 15, DEX: 25},
			GrowthRates: map[string]float64{"HP": 7, "ATK": 7, "DEF": 5, "SPD": 8, "CRIT": 2, "DEX": 4},
			SkillIDs:    []string{"basic_attack", "quan_thao_kinh_luoc"},
		},
		{
			ID: "ha_hau_don", Name: "Hạ Hầu Đôn", Title: "Độc Nhãn Tướng Quân",
			Element: game.ElementKim, Rarity: 4,
			BaseStats:   game.HexagonStats{HP: 1050, ATK: 120, DEF: 75, SPD: 90, CRIT: 16, DEX: 18},
			GrowthRates: map[string]float64{"HP": 8, "ATK": 10, "DEF": 5, "SPD": 5, "CRIT": 2, "DEX": 2},
			SkillIDs:    []string{"basic_attack", "do_nhat_ngan_kim"},
		},
		// Đông Ngô
		{
			ID: "ton_quyen", Name: "Tôn Quyền", Title: "Đông Ngô Đại Đế",
			Element: game.ElementMoc, Rarity: 5,
			BaseStats:   game.HexagonStats{HP: 1200, ATK: 90, DEF: 85, SPD: 95, CRIT: 12, DEX: 18},
			GrowthRates: map[string]float64{"HP": 12, "ATK": 6, "DEF": 7, "SPD": 5, "CRIT": 2, "DEX": 3},
			SkillIDs:    []string{"basic_attack", "dong_ngo_chinh_phuc"},
		},
		{
			ID: "chu_du", Name: "Chu Du", Title: "Chu Công Cẩn",
			Element: game.ElementHoa, Rarity: 5,
			BaseStats:   game.HexagonStats{HP: 880, ATK: 95, DEF: 55, SPD: 105, CRIT: 22, DEX: 25},
			GrowthRates: map[string]float64{"HP": 5, "ATK": 7, "DEF": 3, "SPD": 7, "CRIT": 4, "DEX": 4},
			SkillIDs:    []string{"basic_attack", "xich_bich_dai_chien"},
		},
		// Độc lập
		{
			ID: "la_bo", Name: "Lã Bố", Title: "Thiên Hạ Vô Song",
			Element: game.ElementHoa, Rarity: 5,
			BaseStats:   game.HexagonStats{HP: 900, ATK: 145, DEF: 50, SPD: 110, CRIT: 28, DEX: 22},
			GrowthRates: map[string]float64{"HP": 5, "ATK": 14, "DEF": 2, "SPD": 7, "CRIT": 5, "DEX": 3},
			SkillIDs:    []string{"basic_attack", "phuong_thien_hoat_kich"},
		},
		{
			ID: "dieu_thuyen", Name: "Điêu Thuyền", Title: "Bế Nguyệt",
			Element: game.ElementThuy, Rarity: 4,
			BaseStats:   game.HexagonStats{HP: 850, ATK: 70, DEF: 50, SPD: 120, CRIT: 10, DEX: 35},
			GrowthRates: map[string]float64{"HP": 5, "ATK": 4, "DEF": 3, "SPD": 10, "CRIT": 1, "DEX": 6},
			SkillIDs:    []string{"basic_attack", "bi_nguyet_tu_hoa"},
		},
		{
			ID: "ma_sieu", Name: "Mã Siêu", Title: "Cẩm Mã Siêu",
			Element: game.ElementTho, Rarity: 5,
			BaseStats:   game.HexagonStats{HP: 1100, ATK: 115, DEF: 90, SPD: 88, CRIT: 18, DEX: 20},
			GrowthRates: map[string]float64{"HP": 9, "ATK": 9, "DEF": 8, "SPD": 4, "CRIT": 2, "DEX": 3},
			SkillIDs:    []string{"basic_attack", "tay_luong_thiet_ky"},
		},
		{
			ID: "hoang_trung", Name: "Hoàng Trung", Title: "Lão Tướng",
			Element: game.ElementKim, Rarity: 4,
			BaseStats:   game.HexagonStats{HP: 980, ATK: 125, DEF: 65, SPD: 92, CRIT: 22, DEX: 25},
			GrowthRates: map[string]float64{"HP": 7, "ATK": 11, "DEF": 4, "SPD": 5, "CRIT": 3, "DEX": 3},
			SkillIDs:    []string{"basic_attack", "bach_phat_bach_trung"},
		},
		{
			ID: "truong_liao", Name: "Trương Liêu", Title: "Uy Chấn Tiêu Dao",
			Element: game.ElementKim, Rarity: 4,
			BaseStats:   game.HexagonStats{HP: 1020, ATK: 118, DEF: 72, SPD: 96, CRIT: 17, DEX: 19},
			GrowthRates: map[string]float64{"HP": 8, "ATK": 10, "DEF": 5, "SPD": 5, "CRIT": 2, "DEX": 2},
			SkillIDs:    []string{"basic_attack", "manh_ho_xung_phong"},
		},
		{
			ID: "cam_ninh", Name: "Cam Ninh", Title: "Cẩm Phàm Tặc",
			Element: game.ElementThuy, Rarity: 4,
			BaseStats:   game.HexagonStats{HP: 940, ATK: 110, DEF: 60, SPD: 112, CRIT: 20, DEX: 24},
			GrowthRates: map[string]float64{"HP": 6, "ATK": 9, "DEF": 4, "SPD": 8, "CRIT": 3, "DEX": 3},
			SkillIDs:    []string{"basic_attack", "manh_ho_xung_phong"},
		},
		// Binh lính 3 sao
		{
			ID: "quan_binh", Name: "Quan Binh",
			Element: game.ElementKim, Rarity: 3,
			BaseStats:   game.HexagonStats{HP: 800, ATK: 80, DEF: 55, SPD: 85, CRIT: 8, DEX: 12},
			GrowthRates: map[string]float64{"HP": 6, "ATK": 6, "DEF": 4, "SPD": 3, "CRIT": 1, "DEX": 1},
			SkillIDs:    []string{"basic_attack"},
		},
		{
			ID: "hoang_can_binh", Name: "Hoàng Cân Binh",
			Element: game.ElementTho, Rarity: 3,
			BaseStats:   game.HexagonStats{HP: 850, ATK: 70, DEF: 65, SPD: 78, CRIT: 6, DEX: 10},
			GrowthRates: map[string]float64{"HP": 7, "ATK": 5, "DEF": 5, "SPD": 2, "CRIT": 1, "DEX": 1},
			SkillIDs:    []string{"basic_attack"},
		},
		{
			ID: "dan_binh", Name: "Dân Binh",
			Element: game.ElementMoc, Rarity: 3,
			BaseStats:   game.HexagonStats{HP: 820, ATK: 72, DEF: 58, SPD: 82, CRIT: 7, DEX: 11},
			GrowthRates: map[string]float64{"HP": 6, "ATK": 5, "DEF": 4, "SPD": 3, "CRIT": 1, "DEX": 1},
			SkillIDs:    []string{"basic_attack"},
		},
	}
}
