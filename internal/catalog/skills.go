package catalog

import "github.com/ngoa-long/tamquoc/backend/internal/game"

func skillTemplates() []*SkillTemplate {
	return []*SkillTemplate{
		{
			ID: "basic_attack", Name: "Đánh Thường",
			Description: "Tấn công cơ bản gây sát thương vật lý.",
			Type:        game.SkillDamage, TargetType: game.TargetSingleEnemy,
			ManaCost: 0, Cooldown: 0, MaxLevel: 1,
			DamageMultiplier: 1.0,
		},

		// Đơn mục tiêu
		{
			ID: "manh_ho_xung_phong", Name: "Mãnh Hổ Xung Phong",
			Description: "Xông vào địch như mãnh hổ, gây sát thương lớn cho một mục tiêu.",
			Type:        game.SkillDamage, TargetType: game.TargetSingleEnemy,
			ManaCost: 50, Cooldown: 2, MaxLevel: 10,
			DamageMultiplier: 1.8,
		},
		{
			ID: "phuong_thien_hoat_kich", Name: "Phương Thiên Hoạt Kích",
			Description: "Múa kích tung hoành, gây sát thương chí mạng cho một mục tiêu.",
			Type:        game.SkillDamage, TargetType: game.TargetSingleEnemy,
			Element:  game.ElementHoa,
			ManaCost: 80, Cooldown: 3, MaxLevel: 10,
			DamageMultiplier: 2.5,
		},
		{
			ID: "bach_phat_bach_trung", Name: "Bách Phát Bách Trúng",
			Description: "Bắn tên chính xác, luôn trúng yếu huyệt địch.",
			Type:        game.SkillDamage, TargetType: game.TargetSingleEnemy,
			Element:  game.ElementKim,
			ManaCost: 60, Cooldown: 2, MaxLevel: 10,
			DamageMultiplier: 2.0,
		},
		{
			ID: "do_nhat_ngan_kim", Name: "Độ Nhất Ngạn Kim",
			Description: "Đao pháp sắc bén, cắt ngang thép gai.",
			Type:        game.SkillDamage, TargetType: game.TargetSingleEnemy,
			Element:  game.ElementKim,
			ManaCost: 55, Cooldown: 2, MaxLevel: 10,
			DamageMultiplier: 1.9,
		},
		{
			ID: "thich_tho_trung_thien", Name: "Thích Thổ Trùng Thiên",
			Description: "Đâm thương trấn thổ, gây sát thương và tăng phòng ngự bản thân.",
			Type:        game.SkillDamage, TargetType: game.TargetSingleEnemy,
			Element:  game.ElementTho,
			ManaCost: 60, Cooldown: 2, MaxLevel: 10,
			DamageMultiplier: 1.7,
		},
		{
			ID: "quan_thao_kinh_luoc", Name: "Quân Tào Kinh Lược",
			Description: "Mưu lược thao túng chiến trường, gây sát thương thủy hệ.",
			Type:        game.SkillDamage, TargetType: game.TargetSingleEnemy,
			Element:  game.ElementThuy,
			ManaCost: 65, Cooldown: 2, MaxLevel: 10,
			DamageMultiplier: 1.8,
		},
		{
			ID: "dong_ngo_chinh_phuc", Name: "Đông Ngô Chinh Phục",
			Description: "Hiệu triệu giang đông, gây sát thương mộc hệ.",
			Type:        game.SkillDamage, TargetType: game.TargetSingleEnemy,
			Element:  game.ElementMoc,
			ManaCost: 60, Cooldown: 2, MaxLevel: 10,
			DamageMultiplier: 1.7,
		},

		// Diện rộng
		{
			ID: "long_tran_hao", Name: "Long Trần Hào",
			Description: "Múa đao Thanh Long, gây sát thương diện rộng.",
			Type:        game.SkillDamage, TargetType: game.TargetAllEnemies,
			Element:  game.ElementKim,
			ManaCost: 100, Cooldown: 3, MaxLevel: 10,
			DamageMultiplier: 1.5, AOERange: 1,
		},
		{
			ID: "truong_ba_xa_mau", Name: "Trương Bá Xà Mâu",
			Description: "Xà Mâu quét ngang, gây sát thương và hỗn loạn địch.",
			Type:        game.SkillDamage, TargetType: game.TargetAllEnemies,
			Element:  game.ElementHoa,
			ManaCost: 90, Cooldown: 3, MaxLevel: 10,
			DamageMultiplier: 1.4, AOERange: 1,
		},
		{
			ID: "xich_bich_dai_chien", Name: "Xích Bích Đại Chiến",
			Description: "Ngọn lửa Xích Bích thiêu đốt toàn bộ địch.",
			Type:        game.SkillDamage, TargetType: game.TargetAllEnemies,
			Element:  game.ElementHoa,
			ManaCost: 120, Cooldown: 4, MaxLevel: 10,
			DamageMultiplier: 1.8, AOERange: 2,
		},
		{
			ID: "bat_quai_tran", Name: "Bát Quái Trận",
			Description: "Bày trận bát quái, gây sát thương và làm chậm địch.",
			Type:        game.SkillDamage, TargetType: game.TargetAllEnemies,
			Element:  game.ElementThuy,
			ManaCost: 80, Cooldown: 3, MaxLevel: 10,
			DamageMultiplier: 1.3, AOERange: 1,
			DebuffEffects: map[string]float64{"spd": 0.2}, Duration: 2,
		},
		{
			ID: "tay_luong_thiet_ky", Name: "Tây Lương Thiết Kỵ",
			Description: "Xung phong thiết kỵ, gây sát thương và đẩy lùi địch.",
			Type:        game.SkillDamage, TargetType: game.TargetAllEnemies,
			Element:  game.ElementTho,
			ManaCost: 85, Cooldown: 3, MaxLevel: 10,
			DamageMultiplier: 1.4, AOERange: 1,
		},

		// Hồi phục và hỗ trợ
		{
			ID: "thien_khi", Name: "Thiên Khí",
			Description: "Thu hồi thiên khí, hồi phục HP cho đồng đội.",
			Type:        game.SkillHeal, TargetType: game.TargetAllAllies,
			Element:  game.ElementThuy,
			ManaCost: 80, Cooldown: 2, MaxLevel: 10,
			HealMultiplier: 0.3,
		},
		{
			ID: "nhan_duc", Name: "Nhân Đức",
			Description: "Đức độ lan tỏa, hồi phục HP và tăng sĩ khí.",
			Type:        game.SkillHeal, TargetType: game.TargetAllAllies,
			Element:  game.ElementMoc,
			ManaCost: 70, Cooldown: 3, MaxLevel: 10,
			HealMultiplier: 0.25,
			BuffStats:      map[string]float64{"atk": 0.1}, Duration: 2,
		},
		{
			ID: "bi_nguyet_tu_hoa", Name: "Bế Nguyệt Tu Hoa",
			Description: "Mê hoặc địch, giảm sức tấn công toàn bộ kẻ thù.",
			Type:        game.SkillDebuff, TargetType: game.TargetAllEnemies,
			Element:  game.ElementThuy,
			ManaCost: 75, Cooldown: 3, MaxLevel: 10,
			DebuffEffects: map[string]float64{"atk": 0.2}, Duration: 2,
		},

		// Kỹ năng địch
		{
			ID: "loan_chien", Name: "Loạn Chiến",
			Description: "Đánh hội đồng vào một mục tiêu.",
			Type:        game.SkillDamage, TargetType: game.TargetSingleEnemy,
			ManaCost: 50, Cooldown: 2, MaxLevel: 10,
			DamageMultiplier: 1.5,
		},
		{
			ID: "thien_cong_phu_chu", Name: "Thiên Công Phù Chú",
			Description: "Bùa chú Thái Bình Đạo, gây sát thương diện rộng.",
			Type:        game.SkillDamage, TargetType: game.TargetAllEnemies,
			Element:  game.ElementTho,
			ManaCost: 90, Cooldown: 3, MaxLevel: 10,
			DamageMultiplier: 1.4, AOERange: 1,
		},
	}
}
