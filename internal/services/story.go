package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ngoa-long/tamquoc/backend/internal/apperrors"
	"github.com/ngoa-long/tamquoc/backend/internal/catalog"
	"github.com/ngoa-long/tamquoc/backend/internal/models"
)

// StageView is a stage plus the caller's unlock and progress state.
type StageView struct {
	Stage      *catalog.Stage `json:"stage"`
	IsUnlocked bool           `json:"is_unlocked"`
	BestStars  int            `json:"best_stars"`
	ClearCount int            `json:"clear_count"`
}

// ChapterView is a chapter plus per-stage state.
type ChapterView struct {
	ID          string      `json:"id"`
	Number      int         `json:"number"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	IsUnlocked  bool        `json:"is_unlocked"`
	Stages      []StageView `json:"stages"`
}

// ClearOutcome reports a stage clear.
type ClearOutcome struct {
	Progress     *models.StageProgress `json:"progress"`
	FirstClear   bool                  `json:"first_clear"`
	Rewards      map[string]int        `json:"rewards"`
	StarsAwarded int                   `json:"stars_awarded"`
}

// StoryService owns campaign gating and clear bookkeeping.
type StoryService struct {
	db      *gorm.DB
	catalog *catalog.Catalog
	players *PlayerService
}

// NewStoryService builds a story service.
func NewStoryService(db *gorm.DB, cat *catalog.Catalog, players *PlayerService) *StoryService {
	return &StoryService{db: db, catalog: cat, players: players}
}

// Chapters lists the campaign with the caller's unlock and clear state.
func (s *StoryService) Chapters(ctx context.Context, playerID uuid.UUID) ([]ChapterView, error) {
	progress, err := s.progressMap(ctx, playerID)
	if err != nil {
		return nil, err
	}

	chapters := s.catalog.Chapters()
	out := make([]ChapterView, 0, len(chapters))
	for i := range chapters {
		ch := &chapters[i]
		view := ChapterView{
			ID:          ch.ID,
			Number:      ch.Number,
			Name:        ch.Name,
			Description: ch.Description,
			IsUnlocked:  s.chapterUnlocked(ch, progress),
		}
		for j := range ch.Stages {
			stage := &ch.Stages[j]
			sv := StageView{
				Stage:      stage,
				IsUnlocked: view.IsUnlocked && s.stageUnlocked(stage, progress),
			}
			if p, ok := progress[stage.ID]; ok {
				sv.BestStars = p.BestStars
				sv.ClearCount = p.ClearCount
			}
			view.Stages = append(view.Stages, sv)
		}
		out = append(out, view)
	}
	return out, nil
}

// Chapter returns one chapter with the caller's state.
func (s *StoryService) Chapter(ctx context.Context, playerID uuid.UUID, chapterID string) (*ChapterView, error) {
	if _, ok := s.catalog.Chapter(chapterID); !ok {
		return nil, apperrors.NotFound("chapter", chapterID)
	}
	chapters, err := s.Chapters(ctx, playerID)
	if err != nil {
		return nil, err
	}
	for i := range chapters {
		if chapters[i].ID == chapterID {
			return &chapters[i], nil
		}
	}
	return nil, apperrors.NotFound("chapter", chapterID)
}

// Stage returns one stage with the caller's state.
func (s *StoryService) Stage(ctx context.Context, playerID uuid.UUID, stageID string) (*StageView, error) {
	stage, ok := s.catalog.Stage(stageID)
	if !ok {
		return nil, apperrors.NotFound("stage", stageID)
	}
	progress, err := s.progressMap(ctx, playerID)
	if err != nil {
		return nil, err
	}
	chapter, _ := s.catalog.Chapter(stage.ChapterID)
	view := &StageView{
		Stage:      stage,
		IsUnlocked: s.chapterUnlocked(chapter, progress) && s.stageUnlocked(stage, progress),
	}
	if p, ok := progress[stageID]; ok {
		view.BestStars = p.BestStars
		view.ClearCount = p.ClearCount
	}
	return view, nil
}

// Progress returns the caller's per-stage progress rows.
func (s *StoryService) Progress(ctx context.Context, playerID uuid.UUID) ([]models.StageProgress, error) {
	var rows []models.StageProgress
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("stage_id").
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return rows, nil
}

// CheckAccess verifies the stage exists and is unlocked for the player.
func (s *StoryService) CheckAccess(ctx context.Context, playerID uuid.UUID, stageID string) (*catalog.Stage, error) {
	stage, ok := s.catalog.Stage(stageID)
	if !ok {
		return nil, apperrors.NotFound("stage", stageID)
	}
	progress, err := s.progressMap(ctx, playerID)
	if err != nil {
		return nil, err
	}
	chapter, _ := s.catalog.Chapter(stage.ChapterID)
	if !s.chapterUnlocked(chapter, progress) || !s.stageUnlocked(stage, progress) {
		return nil, apperrors.StageLocked(stageID)
	}
	return stage, nil
}

// RecordClear applies a victorious clear: first-clear rewards the first
// time, repeat rewards afterwards, and monotone best-star tracking.
func (s *StoryService) RecordClear(ctx context.Context, playerID uuid.UUID, stageID string, stars int) (*ClearOutcome, error) {
	stage, ok := s.catalog.Stage(stageID)
	if !ok {
		return nil, apperrors.NotFound("stage", stageID)
	}
	if stars < 0 {
		stars = 0
	}
	if stars > 3 {
		stars = 3
	}

	// Progress upsert and reward credit share the player's critical
	// section and transaction: either the clear pays out in full or
	// nothing is recorded.
	var outcome *ClearOutcome
	err := s.players.WithAccount(ctx, playerID, func(tx *gorm.DB, player *models.Player) error {
		var progress models.StageProgress
		err := tx.Where("player_id = ? AND stage_id = ?", playerID, stageID).
			First(&progress).Error
		firstClear := false
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			firstClear = true
			now := time.Now().UTC()
			progress = models.StageProgress{
				PlayerID:       playerID,
				StageID:        stageID,
				FirstClearedAt: &now,
			}
		case err != nil:
			return apperrors.Internal(err)
		}

		progress.ClearCount++
		if stars > progress.BestStars {
			progress.BestStars = stars
		}
		if err := tx.Save(&progress).Error; err != nil {
			return apperrors.Internal(err)
		}

		rewards := stage.RepeatRewards
		if firstClear {
			rewards = stage.FirstClearRewards
		}

		player.Gold += rewards["gold"]
		player.Gems += rewards["gems"]
		player.Exp += rewards["exp"]
		for player.Exp >= player.Level*1000 {
			player.Exp -= player.Level * 1000
			player.Level++
		}

		outcome = &ClearOutcome{
			Progress:     &progress,
			FirstClear:   firstClear,
			Rewards:      rewards,
			StarsAwarded: stars,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// chapterUnlocked: chapter 1 always, later chapters once every stage of
// the previous chapter is cleared.
func (s *StoryService) chapterUnlocked(ch *catalog.Chapter, progress map[string]*models.StageProgress) bool {
	if ch == nil {
		return false
	}
	prev := s.catalog.PrevChapter(ch)
	if prev == nil {
		return true
	}
	for i := range prev.Stages {
		p, ok := progress[prev.Stages[i].ID]
		if !ok || p.ClearCount == 0 {
			return false
		}
	}
	return true
}

// stageUnlocked: first stage of a chapter, or the previous stage is
// cleared.
func (s *StoryService) stageUnlocked(stage *catalog.Stage, progress map[string]*models.StageProgress) bool {
	prev := s.catalog.PrevStage(stage)
	if prev == nil {
		return true
	}
	p, ok := progress[prev.ID]
	return ok && p.ClearCount > 0
}

func (s *StoryService) progressMap(ctx context.Context, playerID uuid.UUID) (map[string]*models.StageProgress, error) {
	var rows []models.StageProgress
	err := s.db.WithContext(ctx).Where("player_id = ?", playerID).Find(&rows).Error
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	out := make(map[string]*models.StageProgress, len(rows))
	for i := range rows {
		out[rows[i].StageID] = &rows[i]
	}
	return out, nil
}
