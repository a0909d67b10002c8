package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Team is a saved hero composition. Every player keeps at least one
// default team, which cannot be deleted.
type Team struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PlayerID uuid.UUID `gorm:"type:uuid;index:idx_team_slot,unique;not null" json:"player_id"`

	Name        string `gorm:"not null;size:32" json:"name"`
	SlotNumber  int    `gorm:"index:idx_team_slot,unique;not null" json:"slot_number"`
	FormationID string `json:"formation_id,omitempty"`
	IsDefault   bool   `gorm:"default:false" json:"is_default"`

	Members []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"members,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TeamMember places one hero on the 3x3 grid. The unique indexes keep
// a hero and a position from appearing twice on the same team.
type TeamMember struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TeamID uuid.UUID `gorm:"type:uuid;index:idx_team_hero,unique;index:idx_team_pos,unique;not null" json:"team_id"`
	HeroID uuid.UUID `gorm:"type:uuid;index:idx_team_hero,unique;not null" json:"hero_id"`

	PosX int `gorm:"index:idx_team_pos,unique;not null" json:"pos_x"`
	PosY int `gorm:"index:idx_team_pos,unique;not null" json:"pos_y"`

	Hero *PlayerHero `gorm:"foreignKey:HeroID" json:"hero,omitempty"`
}

func (m *TeamMember) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
