package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HeroTemplate is catalog data: the definition a pulled or granted hero
// is instantiated from.
type HeroTemplate struct {
	ID      string `gorm:"primary_key" json:"id"` // slug, e.g. "quan_vu"
	Name    string `gorm:"not null" json:"name"`
	Title   string `json:"title,omitempty"`
	Element string `gorm:"not null;index" json:"element"`
	Rarity  int    `gorm:"not null;index" json:"rarity"` // 1-5 stars at pull

	BaseStats   IntMap      `gorm:"type:text" json:"base_stats"`
	GrowthRates FloatMap    `gorm:"type:text" json:"growth_rates"`
	SkillIDs    StringSlice `gorm:"type:text" json:"skill_ids"`

	Lore string `gorm:"type:text" json:"lore,omitempty"`
}

// PlayerHero is an owned hero instance with its progression state.
type PlayerHero struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PlayerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"player_id"`
	TemplateID string    `gorm:"index;not null" json:"template_id"`

	Level          int `gorm:"default:1" json:"level"`
	Exp            int `gorm:"default:0" json:"exp"`
	Stars          int `gorm:"default:1" json:"stars"`
	AscensionLevel int `gorm:"default:0" json:"ascension_level"`
	AwakeningLevel int `gorm:"default:0" json:"awakening_level"`

	// Current stats after growth, denormalized to avoid replaying the
	// level curve on every read.
	Stats IntMap `gorm:"type:text" json:"stats"`

	WeaponID    *uuid.UUID `gorm:"type:uuid" json:"weapon_id,omitempty"`
	ArmorID     *uuid.UUID `gorm:"type:uuid" json:"armor_id,omitempty"`
	AccessoryID *uuid.UUID `gorm:"type:uuid" json:"accessory_id,omitempty"`
	RelicID     *uuid.UUID `gorm:"type:uuid" json:"relic_id,omitempty"`
	MountID     *uuid.UUID `gorm:"type:uuid" json:"mount_id,omitempty"`

	IsLocked   bool `gorm:"default:false" json:"is_locked"`
	IsFavorite bool `gorm:"default:false" json:"is_favorite"`

	Template *HeroTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *PlayerHero) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// SkillTemplate is catalog data for a skill.
type SkillTemplate struct {
	ID          string `gorm:"primary_key" json:"id"` // slug
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Type       string `gorm:"not null" json:"type"` // damage, heal, buff, debuff
	TargetType string `gorm:"not null" json:"target_type"`
	Element    string `json:"element,omitempty"`

	ManaCost int `json:"mana_cost"`
	Cooldown int `json:"cooldown"`
	MaxLevel int `gorm:"default:10" json:"max_level"`

	DamageMultiplier float64  `json:"damage_multiplier,omitempty"`
	HealMultiplier   float64  `json:"heal_multiplier,omitempty"`
	BuffStats        FloatMap `gorm:"type:text" json:"buff_stats,omitempty"`
	DebuffEffects    FloatMap `gorm:"type:text" json:"debuff_effects,omitempty"`
	Duration         int      `json:"duration,omitempty"`

	IsPassive  bool `gorm:"default:false" json:"is_passive"`
	IsUltimate bool `gorm:"default:false" json:"is_ultimate"`
}

// HeroSkill is an owned hero's learned skill level.
type HeroSkill struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PlayerHeroID    uuid.UUID `gorm:"type:uuid;index:idx_hero_skill,unique;not null" json:"player_hero_id"`
	SkillTemplateID string    `gorm:"index:idx_hero_skill,unique;not null" json:"skill_template_id"`
	Level           int       `gorm:"default:1" json:"level"`

	Template *SkillTemplate `gorm:"foreignKey:SkillTemplateID" json:"template,omitempty"`
}

func (s *HeroSkill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
