package services

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/auth"
	"github.com/ngoa-long/tamquoc/backend/internal/catalog"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

// starter roster granted at registration.
var starterHeroes = []string{"quan_binh", "dan_binh"}

const starterMount = "chien_ma"

// Starter wallet.
const (
	starterGold = 5000
	starterGems = 1600
)

// RegisterResult is the created account plus its first token pair.
type RegisterResult struct {
	Player *models.Player  `json:"player"`
	Tokens *auth.TokenPair `json:"tokens"`
}

// AuthService handles registration, login and token refresh.
type AuthService struct {
	db      *gorm.DB
	tokens  *auth.Manager
	catalog *catalog.Catalog
}

// NewAuthService builds an auth service.
func NewAuthService(db *gorm.DB, tokens *auth.Manager, cat *catalog.Catalog) *AuthService {
	return &AuthService{db: db, tokens: tokens, catalog: cat}
}

// Register creates an account with the starter wallet, roster and
// default team.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*RegisterResult, error) {
	if !usernameRe.MatchString(username) {
		return nil, apperrors.Validation("username must be 3-32 characters of letters, digits or underscore")
	}
	if len(password) < 8 {
		return nil, apperrors.Validation("password must be at least 8 characters")
	}
	if email == "" {
		return nil, apperrors.Validation("email is required")
	}

	hash, err := s.tokens.HashPassword(password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	player := models.Player{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Level:        1,
		Gold:         starterGold,
		Gems:         starterGems,
		Stamina:      models.DefaultStamina,
		MaxStamina:   models.DefaultMaxStamina,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Player{}).
			Where("username = ? OR email = ?", username, email).
			Count(&count).Error; err != nil {
			return apperrors.Internal(err)
		}
		if count > 0 {
			return apperrors.Conflict("username or email already registered")
		}
		if err := tx.Create(&player).Error; err != nil {
			return apperrors.Internal(err)
		}

		for _, templateID := range starterHeroes {
			tpl, ok := s.catalog.Hero(templateID)
			if !ok {
				continue
			}
			hero := models.PlayerHero{
				PlayerID:   player.ID,
				TemplateID: tpl.ID,
				Level:      1,
				Stars:      1,
				Stats:      models.IntMap(tpl.BaseStats.ToMap()),
			}
			if err := tx.Create(&hero).Error; err != nil {
				return apperrors.Internal(err)
			}
		}

		if _, ok := s.catalog.Mount(starterMount); ok {
			mount := models.PlayerMount{
				PlayerID:   player.ID,
				TemplateID: starterMount,
				Level:      1,
				BondLevel:  1,
			}
			if err := tx.Create(&mount).Error; err != nil {
				return apperrors.Internal(err)
			}
		}

		team := models.Team{
			PlayerID:   player.ID,
			Name:       "Đội Hình 1",
			SlotNumber: 1,
			IsDefault:  true,
		}
		if err := tx.Create(&team).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	pair, err := s.tokens.IssuePair(player.ID.String(), player.Username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &RegisterResult{Player: &player, Tokens: pair}, nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*auth.TokenPair, *models.Player, error) {
	var player models.Player
	err := s.db.WithContext(ctx).
		First(&player, "username = ? OR email = ?", username, username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, nil, apperrors.Internal(err)
	}
	if !s.tokens.CheckPassword(player.PasswordHash, password) {
		return nil, nil, apperrors.Unauthorized("invalid credentials")
	}

	pair, err := s.tokens.IssuePair(player.ID.String(), player.Username)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	return pair, &player, nil
}

// Refresh trades a valid refresh token for a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return nil, apperrors.Unauthorized("refresh token expired")
		}
		return nil, apperrors.Unauthorized("invalid refresh token")
	}

	playerID, err := uuid.Parse(claims.PlayerID)
	if err != nil {
		return nil, apperrors.Unauthorized("invalid refresh token")
	}
	var player models.Player
	if err := s.db.WithContext(ctx).First(&player, "id = ?", playerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("account no longer exists")
		}
		return nil, apperrors.Internal(err)
	}

	pair, err := s.tokens.IssuePair(player.ID.String(), player.Username)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return pair, nil
}
