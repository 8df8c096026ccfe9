package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
)

// GameInput carries game fields from a create or update request. Nil fields
// are left untouched on update.
type GameInput struct {
	Opponent      *string
	GameDate      *time.Time
	Season        *int
	HomeTeam      *bool
	TeamScore     *int
	OpponentScore *int
	Notes         *string
	Location      *string
}

type GameService struct {
	gameRepo game.Repository
	logger   *logging.Logger
}

func NewGameService(gameRepo game.Repository, logger *logging.Logger) *GameService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GameService{
		gameRepo: gameRepo,
		logger:   logger,
	}
}

// List returns games newest first. Season 0 lists every season.
func (s *GameService) List(ctx context.Context, season int) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.List")
	defer span.End()

	if season < 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	items, err := s.gameRepo.List(ctx, game.Filter{Season: season})
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return items, nil
}

func (s *GameService) Get(ctx context.Context, id int64) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Get")
	defer span.End()

	return s.mustGet(ctx, id)
}

// Create stores a game. A missing season is taken from the game date.
func (s *GameService) Create(ctx context.Context, input GameInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Create")
	defer span.End()

	item := applyGameInput(game.Game{}, input)
	if input.Season == nil && !item.GameDate.IsZero() {
		item.Season = item.GameDate.Year()
	}
	if err := item.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.gameRepo.Create(ctx, item)
	if err != nil {
		return game.Game{}, fmt.Errorf("create game: %w", err)
	}

	s.logger.InfoContext(ctx, "game created", "game_id", created.ID, "opponent", created.Opponent, "season", created.Season)
	return created, nil
}

func (s *GameService) Update(ctx context.Context, id int64, input GameInput) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Update")
	defer span.End()

	current, err := s.mustGet(ctx, id)
	if err != nil {
		return game.Game{}, err
	}

	item := applyGameInput(current, input)
	if err := item.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.gameRepo.Update(ctx, item)
	if err != nil {
		return game.Game{}, fmt.Errorf("update game: %w", err)
	}
	return updated, nil
}

// Delete removes a game and every stat line recorded for it.
func (s *GameService) Delete(ctx context.Context, id int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Delete")
	defer span.End()

	if id <= 0 {
		return fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	deleted, err := s.gameRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: game=%d", ErrNotFound, id)
	}

	s.logger.InfoContext(ctx, "game deleted", "game_id", id)
	return nil
}

func (s *GameService) mustGet(ctx context.Context, id int64) (game.Game, error) {
	if id <= 0 {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}

	item, exists, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return game.Game{}, fmt.Errorf("%w: game=%d", ErrNotFound, id)
	}
	return item, nil
}

func applyGameInput(item game.Game, input GameInput) game.Game {
	if input.Opponent != nil {
		item.Opponent = strings.TrimSpace(*input.Opponent)
	}
	if input.GameDate != nil {
		item.GameDate = *input.GameDate
	}
	if input.Season != nil {
		item.Season = *input.Season
	}
	if input.HomeTeam != nil {
		item.HomeTeam = *input.HomeTeam
	}
	if input.TeamScore != nil {
		item.TeamScore = input.TeamScore
	}
	if input.OpponentScore != nil {
		item.OpponentScore = input.OpponentScore
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}
	if input.Location != nil {
		item.Location = strings.TrimSpace(*input.Location)
	}
	return item
}
