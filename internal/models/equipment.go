package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EquipmentSet is catalog data: a named set granting bonuses at piece
// thresholds.
type EquipmentSet struct {
	ID   string `gorm:"primary_key" json:"id"` // slug
	Name string `gorm:"not null" json:"name"`

	// Bonuses maps piece count ("2", "4") to stat bonuses.
	Bonuses JSONMap `gorm:"type:text" json:"bonuses"`
}

// EquipmentTemplate is catalog data an owned piece is stamped from.
type EquipmentTemplate struct {
	ID     string `gorm:"primary_key" json:"id"` // slug
	Name   string `gorm:"not null" json:"name"`
	Type   string `gorm:"not null;index" json:"type"` // weapon, armor, accessory, relic
	Rarity string `gorm:"not null;index" json:"rarity"`

	BaseStats IntMap `gorm:"type:text" json:"base_stats"`

	SetID        *string `gorm:"index" json:"set_id,omitempty"`
	UniqueEffect string  `json:"unique_effect,omitempty"`

	RequiredLevel   int    `gorm:"default:1" json:"required_level"`
	RequiredElement string `json:"required_element,omitempty"`

	Set *EquipmentSet `gorm:"foreignKey:SetID" json:"set,omitempty"`
}

// PlayerEquipment is an owned gear piece.
type PlayerEquipment struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PlayerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"player_id"`
	TemplateID string    `gorm:"index;not null" json:"template_id"`

	Level      int    `gorm:"default:1" json:"level"`
	BonusStats IntMap `gorm:"type:text" json:"bonus_stats"`

	EquippedByID *uuid.UUID `gorm:"type:uuid;index" json:"equipped_by_id,omitempty"`
	IsLocked     bool       `gorm:"default:false" json:"is_locked"`

	Template *EquipmentTemplate `gorm:"foreignKey:TemplateID" json:"template,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *PlayerEquipment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// MountTemplate is catalog data an owned mount is stamped from.
type MountTemplate struct {
	ID      string `gorm:"primary_key" json:"id"` // slug
	Name    string `gorm:"not null" json:"name"`
	Type    string `gorm:"not null;index" json:"type"` // horse, dragon, mythical
	Rarity  int    `gorm:"not null" json:"rarity"`
	Element string `json:"element,omitempty"`

	BaseStats   IntMap  `gorm:"type:text" json:"base_stats"`
	TeamBonuses JSONMap `gorm:"type:text" json:"team_bonuses,omitempty"`
	Evolutions  JSONMap `gorm:"type:text" json:"evolutions,omitempty"`
}

// PlayerMount is an owned mount or dragon.
type PlayerMount struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PlayerID   uuid.UUID `gorm:"type:uuid;index;not null" json:"player_id"`
	TemplateID string    `gorm:"index;not null" json:"template_id"`

	Level          int `gorm:"default:1" json:"level"`
	Exp            int `gorm:"default:0" json:"exp"`
	BondLevel      int `gorm:"default:1" json:"bond_level"`
	BondPoints     int `gorm:"default:0" json:"bond_points"`
	AwakeningLevel int `gorm:"default:0" json:"awakening_level"`
	EvolutionStage int `gorm:"default:0" json:"evolution_stage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *PlayerMount) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
