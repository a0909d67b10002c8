package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/catalog"
	"github.com/ngoa-long/tamquoc/backend/internal/game"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

// TeamService owns team composition.
type TeamService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	locks   *keyedMutex
}

// NewTeamService builds a team service.
func NewTeamService(db *gorm.DB, cat *catalog.Catalog) *TeamService {
	return &TeamService{db: db, catalog: cat, locks: newKeyedMutex()}
}

// List returns the player's teams with members.
func (s *TeamService) List(ctx context.Context, playerID uuid.UUID) ([]models.Team, error) {
	var teams []models.Team
	err := s.db.WithContext(ctx).
		Preload("Members").
		Where("player_id = ?", playerID).
		Order("slot_number").
		Find(&teams).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return teams, nil
}

// Get loads one team with members.
func (s *TeamService) Get(ctx context.Context, playerID, teamID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := s.db.WithContext(ctx).
		Preload("Members").
		First(&team, "id = ? AND player_id = ?", teamID, playerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("team", teamID.String())
		}
		return nil, apperrors.Internal(err)
	}
	return &team, nil
}

// Create adds a team in the next free slot, up to the per-player cap.
func (s *TeamService) Create(ctx context.Context, playerID uuid.UUID, name string) (*models.Team, error) {
	if name == "" {
		return nil, apperrors.Validation("team name is required")
	}
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var team models.Team
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Team{}).Where("player_id = ?", playerID).Count(&count).Error; err != nil {
			return apperrors.Internal(err)
		}
		if count >= game.MaxTeamsPerPlayer {
			return apperrors.New("team_limit", "team limit reached", 400).
				WithDetail("max_teams", game.MaxTeamsPerPlayer)
		}

		var maxSlot int
		if err := tx.Model(&models.Team{}).
			Where("player_id = ?", playerID).
			Select("COALESCE(MAX(slot_number), 0)").
			Scan(&maxSlot).Error; err != nil {
			return apperrors.Internal(err)
		}

		team = models.Team{
			PlayerID:   playerID,
			Name:       name,
			SlotNumber: maxSlot + 1,
		}
		if err := tx.Create(&team).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// Update renames a team or changes its formation.
func (s *TeamService) Update(ctx context.Context, playerID, teamID uuid.UUID, name, formationID *string) (*models.Team, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	team, err := s.Get(ctx, playerID, teamID)
	if err != nil {
		return nil, err
	}
	if name != nil {
		if *name == "" {
			return nil, apperrors.Validation("team name is required")
		}
		team.Name = *name
	}
	if formationID != nil {
		if *formationID != "" {
			if _, ok := s.catalog.Formation(*formationID); !ok {
				return nil, apperrors.NotFound("formation", *formationID)
			}
		}
		team.FormationID = *formationID
	}
	if err := s.db.WithContext(ctx).Save(team).Error; err != nil {
		return nil, apperrors.Internal(err)
	}
	return team, nil
}

// Delete removes a non-default team and its members.
func (s *TeamService) Delete(ctx context.Context, playerID, teamID uuid.UUID) error {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	team, err := s.Get(ctx, playerID, teamID)
	if err != nil {
		return err
	}
	if team.IsDefault {
		return apperrors.New("team_default", "the default team cannot be deleted", 400)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamMember{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		if err := tx.Delete(team).Error; err != nil {
			return apperrors.Internal(err)
		}
		return nil
	})
}

// AddMember places an owned hero on the grid, enforcing the size,
// unique-hero and unique-position invariants. On violation nothing
// changes.
func (s *TeamService) AddMember(ctx context.Context, playerID, teamID, heroID uuid.UUID, x, y int) (*models.Team, error) {
	pos, err := game.NewGridPosition(x, y)
	if err != nil {
		return nil, apperrors.Validation("invalid grid position (%d, %d)", x, y)
	}
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var out *models.Team
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := s.lockTeam(tx, playerID, teamID)
		if err != nil {
			return err
		}
		var hero models.PlayerHero
		if err := tx.First(&hero, "id = ? AND player_id = ?", heroID, playerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("hero", heroID.String())
			}
			return apperrors.Internal(err)
		}

		if len(team.Members) >= game.MaxTeamMembers {
			return apperrors.New("team_full", "team already has five members", 400)
		}
		for _, m := range team.Members {
			if m.HeroID == heroID {
				return apperrors.Conflict("hero is already in this team")
			}
			if m.PosX == pos.X && m.PosY == pos.Y {
				return apperrors.Conflict("position is already occupied")
			}
		}

		member := models.TeamMember{TeamID: teamID, HeroID: heroID, PosX: pos.X, PosY: pos.Y}
		if err := tx.Create(&member).Error; err != nil {
			return apperrors.Internal(err)
		}
		team.Members = append(team.Members, member)
		out = team
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MoveMember relocates a hero already on the team to a free cell.
func (s *TeamService) MoveMember(ctx context.Context, playerID, teamID, heroID uuid.UUID, x, y int) (*models.Team, error) {
	pos, err := game.NewGridPosition(x, y)
	if err != nil {
		return nil, apperrors.Validation("invalid grid position (%d, %d)", x, y)
	}
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var out *models.Team
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := s.lockTeam(tx, playerID, teamID)
		if err != nil {
			return err
		}
		var member *models.TeamMember
		for i := range team.Members {
			m := &team.Members[i]
			if m.HeroID == heroID {
				member = m
				continue
			}
			if m.PosX == pos.X && m.PosY == pos.Y {
				return apperrors.Conflict("position is already occupied")
			}
		}
		if member == nil {
			return apperrors.NotFound("team member", heroID.String())
		}
		member.PosX = pos.X
		member.PosY = pos.Y
		if err := tx.Save(member).Error; err != nil {
			return apperrors.Internal(err)
		}
		out = team
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Formations lists the formation catalog.
func (s *TeamService) Formations() []*game.Formation {
	return s.catalog.Formations()
}

// RemoveMember drops a hero from the team.
func (s *TeamService) RemoveMember(ctx context.Context, playerID, teamID, heroID uuid.UUID) (*models.Team, error) {
	unlock := s.locks.Lock(playerID.String())
	defer unlock()

	var out *models.Team
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		team, err := s.lockTeam(tx, playerID, teamID)
		if err != nil {
			return err
		}
		found := false
		for _, m := range team.Members {
			if m.HeroID == heroID {
				found = true
				break
			}
		}
		if !found {
			return apperrors.NotFound("team member", heroID.String())
		}
		if err := tx.Where("team_id = ? AND hero_id = ?", teamID, heroID).
			Delete(&models.TeamMember{}).Error; err != nil {
			return apperrors.Internal(err)
		}
		reloaded, err := s.lockTeam(tx, playerID, teamID)
		if err != nil {
			return err
		}
		out = reloaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Power computes a team's power including synergy and formation bonus.
func (s *TeamService) Power(ctx context.Context, playerID, teamID uuid.UUID) (int, error) {
	team, err := s.Get(ctx, playerID, teamID)
	if err != nil {
		return 0, err
	}
	assembled, err := s.assemble(s.db.WithContext(ctx), team)
	if err != nil {
		return 0, err
	}
	return assembled.TotalPower(), nil
}

// assemble hydrates a persisted team into the battle-domain Team.
func (s *TeamService) assemble(db *gorm.DB, team *models.Team) (*game.Team, error) {
	out := &game.Team{
		ID:         team.ID.String(),
		PlayerID:   team.PlayerID.String(),
		Name:       team.Name,
		SlotNumber: team.SlotNumber,
		IsDefault:  team.IsDefault,
	}
	if team.FormationID != "" {
		if f, ok := s.catalog.Formation(team.FormationID); ok {
			out.Formation = f
		}
	}
	for _, m := range team.Members {
		var row models.PlayerHero
		if err := db.First(&row, "id = ?", m.HeroID).Error; err != nil {
			return nil, apperrors.Internal(err)
		}
		pos, err := game.NewGridPosition(m.PosX, m.PosY)
		if err != nil {
			return nil, apperrors.Internal(err)
		}
		hero, err := hydrateHero(db, s.catalog, &row, pos)
		if err != nil {
			return nil, err
		}
		if err := out.AddMember(hero, pos); err != nil {
			return nil, apperrors.Internal(err)
		}
	}
	return out, nil
}

func (s *TeamService) lockTeam(tx *gorm.DB, playerID, teamID uuid.UUID) (*models.Team, error) {
	var team models.Team
	err := tx.Preload("Members").First(&team, "id = ? AND player_id = ?", teamID, playerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("team", teamID.String())
		}
		return nil, apperrors.Internal(err)
	}
	return &team, nil
}
