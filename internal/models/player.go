// Package models holds the GORM persistence models. Catalog tables
// (templates, chapters, stages, banners) use stable string slugs as
// primary keys; player-owned rows use generated UUIDs.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Player account and wallet constants.
const (
	DefaultMaxStamina = 120
	DefaultStamina    = 120
)

// Player is an account with its wallet and stamina pool.
type Player struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null;size:32" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`

	DisplayName string `gorm:"size:64" json:"display_name,omitempty"`
	AvatarID    string `gorm:"size:64" json:"avatar_id,omitempty"`

	Level int `gorm:"default:1" json:"level"`
	Exp   int `gorm:"default:0" json:"exp"`

	Gold int `gorm:"default:0" json:"gold"`
	Gems int `gorm:"default:0" json:"gems"`

	Stamina          int       `gorm:"default:120" json:"stamina"`
	MaxStamina       int       `gorm:"default:120" json:"max_stamina"`
	StaminaUpdatedAt time.Time `json:"stamina_updated_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Player) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.StaminaUpdatedAt.IsZero() {
		p.StaminaUpdatedAt = time.Now().UTC()
	}
	return nil
}

// RegenStamina applies time-based stamina regen up to the cap and
// advances the accounting timestamp. Returns the stamina gained.
func (p *Player) RegenStamina(now time.Time, interval time.Duration, perInterval int) int {
	if p.Stamina >= p.MaxStamina || interval <= 0 {
		p.StaminaUpdatedAt = now
		return 0
	}
	elapsed := now.Sub(p.StaminaUpdatedAt)
	ticks := int(elapsed / interval)
	if ticks <= 0 {
		return 0
	}
	gained := min(ticks*perInterval, p.MaxStamina-p.Stamina)
	p.Stamina += gained
	p.StaminaUpdatedAt = p.StaminaUpdatedAt.Add(time.Duration(ticks) * interval)
	return gained
}

// PityState persists a player's pity counter per banner, the database
// fallback when redis is not configured.
type PityState struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PlayerID uuid.UUID `gorm:"type:uuid;index:idx_pity_player_banner,unique;not null" json:"player_id"`
	BannerID string    `gorm:"index:idx_pity_player_banner,unique;not null" json:"banner_id"`
	Counter  int       `gorm:"default:0" json:"counter"`

	UpdatedAt time.Time `json:"updated_at"`
}

func (p *PityState) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
