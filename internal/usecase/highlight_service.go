package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/peaks-baseball/internal/domain/highlight"
	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
)

type HighlightInput struct {
	PlayerID        *int64
	Title           *string
	Description     *string
	VideoURL        *string
	ThumbnailURL    *string
	DurationSeconds *int
	HighlightDate   *time.Time
}

type HighlightService struct {
	highlightRepo highlight.Repository
	playerRepo    player.Repository
	logger        *logging.Logger
}

func NewHighlightService(highlightRepo highlight.Repository, playerRepo player.Repository, logger *logging.Logger) *HighlightService {
	if logger == nil {
		logger = logging.Default()
	}

	return &HighlightService{
		highlightRepo: highlightRepo,
		playerRepo:    playerRepo,
		logger:        logger,
	}
}

// List returns highlights newest first, optionally for one player.
func (s *HighlightService) List(ctx context.Context, playerID int64, limit int) ([]highlight.Highlight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.List")
	defer span.End()

	if playerID < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: filters must be positive", ErrInvalidInput)
	}

	items, err := s.highlightRepo.List(ctx, highlight.Filter{PlayerID: playerID, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list highlights: %w", err)
	}
	return items, nil
}

func (s *HighlightService) ListByPlayer(ctx context.Context, playerID int64) ([]highlight.Highlight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.ListByPlayer")
	defer span.End()

	if err := s.ensurePlayer(ctx, playerID); err != nil {
		return nil, err
	}
	return s.List(ctx, playerID, 0)
}

func (s *HighlightService) Get(ctx context.Context, id int64) (highlight.Highlight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.Get")
	defer span.End()

	return s.mustGet(ctx, id)
}

func (s *HighlightService) Create(ctx context.Context, input HighlightInput) (highlight.Highlight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.Create")
	defer span.End()

	item := applyHighlightInput(highlight.Highlight{}, input)
	if err := item.Validate(); err != nil {
		return highlight.Highlight{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.ensurePlayer(ctx, item.PlayerID); err != nil {
		return highlight.Highlight{}, err
	}

	created, err := s.highlightRepo.Create(ctx, item)
	if err != nil {
		return highlight.Highlight{}, fmt.Errorf("create highlight: %w", err)
	}

	s.logger.InfoContext(ctx, "highlight created", "highlight_id", created.ID, "player_id", created.PlayerID)
	return created, nil
}

func (s *HighlightService) Update(ctx context.Context, id int64, input HighlightInput) (highlight.Highlight, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.Update")
	defer span.End()

	current, err := s.mustGet(ctx, id)
	if err != nil {
		return highlight.Highlight{}, err
	}

	item := applyHighlightInput(current, input)
	if err := item.Validate(); err != nil {
		return highlight.Highlight{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if item.PlayerID != current.PlayerID {
		if err := s.ensurePlayer(ctx, item.PlayerID); err != nil {
			return highlight.Highlight{}, err
		}
	}

	updated, err := s.highlightRepo.Update(ctx, item)
	if err != nil {
		return highlight.Highlight{}, fmt.Errorf("update highlight: %w", err)
	}
	return updated, nil
}

func (s *HighlightService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.HighlightService.Delete")
	defer span.End()

	if id <= 0 {
		return fmt.Errorf("%w: highlight id is required", ErrInvalidInput)
	}

	deleted, err := s.highlightRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete highlight: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: highlight=%d", ErrNotFound, id)
	}
	return nil
}

func (s *HighlightService) mustGet(ctx context.Context, id int64) (highlight.Highlight, error) {
	if id <= 0 {
		return highlight.Highlight{}, fmt.Errorf("%w: highlight id is required", ErrInvalidInput)
	}

	item, exists, err := s.highlightRepo.GetByID(ctx, id)
	if err != nil {
		return highlight.Highlight{}, fmt.Errorf("get highlight: %w", err)
	}
	if !exists {
		return highlight.Highlight{}, fmt.Errorf("%w: highlight=%d", ErrNotFound, id)
	}
	return item, nil
}

func (s *HighlightService) ensurePlayer(ctx context.Context, playerID int64) error {
	if playerID <= 0 {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	_, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
	}
	return nil
}

func applyHighlightInput(item highlight.Highlight, input HighlightInput) highlight.Highlight {
	if input.PlayerID != nil {
		item.PlayerID = *input.PlayerID
	}
	if input.Title != nil {
		item.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		item.Description = *input.Description
	}
	if input.VideoURL != nil {
		item.VideoURL = strings.TrimSpace(*input.VideoURL)
	}
	if input.ThumbnailURL != nil {
		item.ThumbnailURL = strings.TrimSpace(*input.ThumbnailURL)
	}
	if input.DurationSeconds != nil {
		item.DurationSeconds = input.DurationSeconds
	}
	if input.HighlightDate != nil {
		item.HighlightDate = input.HighlightDate
	}
	return item
}
