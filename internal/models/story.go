package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Chapter is catalog data: an ordered story chapter.
type Chapter struct {
	ID          string `gorm:"primary_key" json:"id"` // slug, e.g. "chapter_1"
	Number      int    `gorm:"uniqueIndex;not null" json:"number"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Stages []Stage `gorm:"foreignKey:ChapterID" json:"stages,omitempty"`
}

// Stage is catalog data: one battle node inside a chapter.
type Stage struct {
	ID        string `gorm:"primary_key" json:"id"` // slug, e.g. "stage_1_3"
	ChapterID string `gorm:"index;not null" json:"chapter_id"`
	Number    int    `gorm:"not null" json:"number"`
	Name      string `gorm:"not null" json:"name"`

	StaminaCost      int         `gorm:"default:6" json:"stamina_cost"`
	RecommendedPower int         `json:"recommended_power"`
	EnemyIDs         StringSlice `gorm:"type:text" json:"enemy_ids"`
	IsBossStage      bool        `gorm:"default:false" json:"is_boss_stage"`

	FirstClearRewards IntMap `gorm:"type:text" json:"first_clear_rewards"`
	RepeatRewards     IntMap `gorm:"type:text" json:"repeat_rewards"`
}

// EnemyTemplate is catalog data a battle enemy is spawned from. Boss
// stages reference templates with phase definitions.
type EnemyTemplate struct {
	ID      string `gorm:"primary_key" json:"id"` // slug
	Name    string `gorm:"not null" json:"name"`
	Title   string `json:"title,omitempty"`
	Element string `gorm:"not null" json:"element"`

	Behavior   string `gorm:"default:balanced" json:"behavior"`
	Difficulty int    `gorm:"default:1" json:"difficulty"`
	IsBoss     bool   `gorm:"default:false" json:"is_boss"`

	BaseStats IntMap      `gorm:"type:text" json:"base_stats"`
	SkillIDs  StringSlice `gorm:"type:text" json:"skill_ids"`

	// Phases holds boss phase definitions as raw JSON, empty for
	// ordinary enemies.
	Phases JSONMap `gorm:"type:text" json:"phases,omitempty"`

	ExpReward  int     `json:"exp_reward"`
	GoldReward int     `json:"gold_reward"`
	DropTable  JSONMap `gorm:"type:text" json:"drop_table,omitempty"`
}

// StageProgress tracks a player's clears of one stage.
type StageProgress struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PlayerID uuid.UUID `gorm:"type:uuid;index:idx_stage_progress,unique;not null" json:"player_id"`
	StageID  string    `gorm:"index:idx_stage_progress,unique;not null" json:"stage_id"`

	BestStars      int        `gorm:"default:0" json:"best_stars"`
	ClearCount     int        `gorm:"default:0" json:"clear_count"`
	FirstClearedAt *time.Time `json:"first_cleared_at,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (s *StageProgress) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BattleRecord is one battle history entry. Per player the history is
// capped; the oldest rows beyond the cap are pruned on insert.
type BattleRecord struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PlayerID uuid.UUID `gorm:"type:uuid;index;not null" json:"player_id"`
	StageID  string    `gorm:"index;not null" json:"stage_id"`

	Result    string `gorm:"not null" json:"result"` // victory, defeat, retreat
	Stars     int    `json:"stars"`
	TurnCount int    `json:"turn_count"`
	Rewards   IntMap `gorm:"type:text" json:"rewards,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (b *BattleRecord) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// GachaRecord is one pull history entry, capped per player like battle
// records.
type GachaRecord struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PlayerID uuid.UUID `gorm:"type:uuid;index;not null" json:"player_id"`
	BannerID string    `gorm:"index;not null" json:"banner_id"`

	HeroTemplateID string `gorm:"not null" json:"hero_template_id"`
	Rarity         int    `json:"rarity"`
	IsNew          bool   `json:"is_new"`
	WasPity        bool   `json:"was_pity"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (g *GachaRecord) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
