package catalog

import "github.com/ngoa-long/tamquoc/backend/internal/game"

func enemyTemplates() []*EnemyTemplate {
	return []*EnemyTemplate{
		{
			ID: "hoang_can_linh", Name: "Hoàng Cân Lính",
			Element:  game.ElementTho,
			Behavior: game.BehaviorBalanced, Difficulty: 1,
			BaseStats: game.HexagonStats{HP: 400, ATK: 45, DEF: 30, SPD: 70, CRIT: 5, DEX: 8},
			SkillIDs:  []string{"loan_chien"},
			ExpReward: 50, GoldReward: 100,
			DropTable: []game.DropEntry{
				{ItemID: "exp_potion_small", Quantity: 1, Probability: 0.3},
			},
		},
		{
			ID: "hoang_can_cung_thu", Name: "Hoàng Cân Cung Thủ",
			Element:  game.ElementKim,
			Behavior: game.BehaviorAggressive, Difficulty: 2,
			BaseStats: game.HexagonStats{HP: 350, ATK: 60, DEF: 22, SPD: 85, CRIT: 10, DEX: 14},
			SkillIDs:  []string{"loan_chien"},
			ExpReward: 60, GoldReward: 120,
			DropTable: []game.DropEntry{
				{ItemID: "iron_ore", Quantity: 2, Probability: 0.25},
			},
		},
		{
			ID: "phan_quan_tuong", Name: "Phản Quân Tướng",
			Element:  game.ElementHoa,
			Behavior: game.BehaviorAggressive, Difficulty: 3,
			BaseStats: game.HexagonStats{HP: 700, ATK: 75, DEF: 45, SPD: 88, CRIT: 12, DEX: 12},
			SkillIDs:  []string{"loan_chien"},
			ExpReward: 90, GoldReward: 180,
			DropTable: []game.DropEntry{
				{ItemID: "gold_pouch", Quantity: 1, Probability: 0.2},
			},
		},
		{
			ID: "truong_giac", Name: "Trương Giác", Title: "Thiên Công Tướng Quân",
			Element: game.ElementTho,
			IsBoss:  true, Behavior: game.BehaviorSupport,
			BaseStats: game.HexagonStats{HP: 2500, ATK: 95, DEF: 60, SPD: 82, CRIT: 10, DEX: 15},
			SkillIDs:  []string{"thien_cong_phu_chu"},
			Phases: []game.BossPhase{
				{PhaseNumber: 1, HPThreshold: 1.0, Name: "Thái Bình Đạo"},
				{
					PhaseNumber: 2, HPThreshold: 0.5, Name: "Thiên Công Phẫn Nộ",
					StatModifiers: map[string]float64{"atk": 1.5},
					NewSkills:     []string{"loan_chien"},
				},
			},
			ExpReward: 300, GoldReward: 600,
			DropTable: []game.DropEntry{
				{ItemID: "yellow_turban_relic", Quantity: 1, Probability: 0.5},
			},
		},
		{
			ID: "dong_trac_ve_binh", Name: "Đổng Trác Vệ Binh",
			Element:  game.ElementKim,
			Behavior: game.BehaviorDefensive, Difficulty: 3,
			BaseStats: game.HexagonStats{HP: 800, ATK: 70, DEF: 65, SPD: 75, CRIT: 8, DEX: 10},
			SkillIDs:  []string{"loan_chien"},
			ExpReward: 100, GoldReward: 200,
		},
	}
}

func chapters() []Chapter {
	return []Chapter{
		{
			ID: "chapter_1", Number: 1,
			Name:        "Khởi Nghĩa Hoàng Cân",
			Description: "Loạn Hoàng Cân nổi dậy, thiên hạ đại loạn.",
			Stages: []Stage{
				{
					ID: "stage_1_1", ChapterID: "chapter_1", Number: 1,
					Name:        "Hoàng Cân Chi Loạn",
					StaminaCost: 10, RecommendedPower: 1000,
					EnemyIDs:          []string{"hoang_can_linh", "hoang_can_linh", "hoang_can_cung_thu"},
					FirstClearRewards: map[string]int{"gold": 500, "gems": 10, "exp": 100},
					RepeatRewards:     map[string]int{"gold": 100, "exp": 50},
				},
				{
					ID: "stage_1_2", ChapterID: "chapter_1", Number: 2,
					Name:        "Tiêu Diệt Phản Quân",
					StaminaCost: 10, RecommendedPower: 1500,
					EnemyIDs:          []string{"hoang_can_linh", "hoang_can_cung_thu", "phan_quan_tuong"},
					FirstClearRewards: map[string]int{"gold": 1000, "gems": 20, "exp": 200},
					RepeatRewards:     map[string]int{"gold": 200, "exp": 100},
				},
				{
					ID: "stage_1_3", ChapterID: "chapter_1", Number: 3,
					Name:        "Đối Đầu Trương Giác",
					StaminaCost: 15, RecommendedPower: 2000, IsBossStage: true,
					EnemyIDs:          []string{"truong_giac"},
					FirstClearRewards: map[string]int{"gold": 1500, "gems": 30, "exp": 300},
					RepeatRewards:     map[string]int{"gold": 300, "exp": 150},
				},
			},
		},
		{
			ID: "chapter_2", Number: 2,
			Name:        "Đổng Trác Loạn Kinh",
			Description: "Đổng Trác kiểm soát triều đình.",
			Stages: []Stage{
				{
					ID: "stage_2_1", ChapterID: "chapter_2", Number: 1,
					Name:        "Kinh Thành Hỗn Loạn",
					StaminaCost: 12, RecommendedPower: 2500,
					EnemyIDs:          []string{"dong_trac_ve_binh", "dong_trac_ve_binh", "phan_quan_tuong"},
					FirstClearRewards: map[string]int{"gold": 1500, "gems": 30, "exp": 300},
					RepeatRewards:     map[string]int{"gold": 300, "exp": 150},
				},
			},
		},
	}
}
