package catalog

import "github.com/ngoa-long/tamquoc/backend/internal/game"

func banners() []*Banner {
	threeStarPool := []string{"quan_binh", "hoang_can_binh", "dan_binh"}
	fourStarPool := []string{"truong_liao", "ha_hau_don", "dieu_thuyen", "hoang_trung", "cam_ninh"}
	fiveStarPool := []string{"quan_vu", "truong_phi", "trieu_van", "luu_bi", "gia_cat_luong"}

	return []*Banner{
		{
			ID: "standard", Name: "Banner Tiêu Chuẩn",
			Rates:      map[int]int{3: 80, 4: 18, 5: 2},
			CostSingle: 160, CostMulti: 1440,
			PityThreshold: 90,
			Pools: map[int][]string{
				3: threeStarPool,
				4: fourStarPool,
				5: fiveStarPool,
			},
		},
		{
			ID: "limited_quan_vu", Name: "Banner Quan Vũ",
			Rates:      map[int]int{3: 75, 4: 20, 5: 5},
			CostSingle: 160, CostMulti: 1440,
			PityThreshold:  80,
			FeaturedHeroID: "quan_vu", FeaturedRateUp: 50,
			Pools: map[int][]string{
				3: threeStarPool,
				4: fourStarPool,
				5: fiveStarPool,
			},
		},
	}
}

func formations() []*game.Formation {
	return []*game.Formation{
		{
			ID: "ngu_hanh_tran", Name: "Ngũ Hành Trận",
			Description:      "Đủ năm hệ Ngũ Hành, tương sinh tương khắc.",
			RequiredElements: 5, MinMembers: 5,
			Bonuses: []game.FormationBonus{
				{Stat: "all", Value: 10, Kind: game.BonusPercent},
			},
		},
		{
			ID: "long_dang_ho_khieu", Name: "Long Đằng Hổ Khiếu",
			Description:    "Quan Vũ và Trương Phi song kiếm hợp bích.",
			RequiredHeroes: []string{"quan_vu", "truong_phi"}, MinMembers: 2,
			Bonuses: []game.FormationBonus{
				{Stat: "atk", Value: 15, Kind: game.BonusPercent},
				{Stat: "crit", Value: 5, Kind: game.BonusFlat},
			},
		},
	}
}
