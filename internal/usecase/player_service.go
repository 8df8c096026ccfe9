package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/peaks-baseball/internal/domain/highlight"
	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

const recentHighlightsLimit = 5

// PlayerInput carries player fields from a create or update request. Nil
// fields are left untouched on update.
type PlayerInput struct {
	FirstName    *string
	LastName     *string
	JerseyNumber *int
	Position     *string
	Bio          *string
	HeightInches *int
	WeightLbs    *int
	BirthDate    *time.Time
	PhotoURL     *string
	Active       *bool
}

// PlayerDetail is a player with the current season summary and highlights.
type PlayerDetail struct {
	Player           player.Player
	Season           int
	SeasonSummary    *PlayerTotals
	SeasonLines      []StatEntry
	Highlights       []highlight.Highlight
	RecentHighlights []highlight.Highlight
}

type PlayerService struct {
	playerRepo    player.Repository
	highlightRepo highlight.Repository
	stats         *StatService
	logger        *logging.Logger
	now           func() time.Time
}

func NewPlayerService(
	playerRepo player.Repository,
	highlightRepo highlight.Repository,
	stats *StatService,
	logger *logging.Logger,
) *PlayerService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PlayerService{
		playerRepo:    playerRepo,
		highlightRepo: highlightRepo,
		stats:         stats,
		logger:        logger,
		now:           time.Now,
	}
}

func (s *PlayerService) ListActive(ctx context.Context, position string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListActive")
	defer span.End()

	filter := player.Filter{ActiveOnly: true}
	if strings.TrimSpace(position) != "" {
		p, ok := player.ParsePosition(position)
		if !ok {
			return nil, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, position)
		}
		filter.Position = p
	}

	items, err := s.playerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list active players: %w", err)
	}
	return items, nil
}

func (s *PlayerService) ListAll(ctx context.Context) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListAll")
	defer span.End()

	items, err := s.playerRepo.List(ctx, player.Filter{})
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	return s.mustGet(ctx, id)
}

func (s *PlayerService) Create(ctx context.Context, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	item := applyPlayerInput(player.Player{Active: true}, input)
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.playerRepo.Create(ctx, item)
	if err != nil {
		return player.Player{}, translatePlayerWriteErr(err, item.JerseyNumber)
	}

	s.logger.InfoContext(ctx, "player created", "player_id", created.ID, "jersey_number", created.JerseyNumber)
	return created, nil
}

func (s *PlayerService) Update(ctx context.Context, id int64, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	current, err := s.mustGet(ctx, id)
	if err != nil {
		return player.Player{}, err
	}

	item := applyPlayerInput(current, input)
	if err := item.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, err := s.playerRepo.Update(ctx, item)
	if err != nil {
		return player.Player{}, translatePlayerWriteErr(err, item.JerseyNumber)
	}
	return updated, nil
}

// Deactivate hides a player from the roster while keeping their history.
func (s *PlayerService) Deactivate(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Deactivate")
	defer span.End()

	return s.setActive(ctx, id, false)
}

func (s *PlayerService) Reactivate(ctx context.Context, id int64) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Reactivate")
	defer span.End()

	return s.setActive(ctx, id, true)
}

func (s *PlayerService) setActive(ctx context.Context, id int64, active bool) (player.Player, error) {
	if id <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.SetActive(ctx, id, active)
	if err != nil {
		return player.Player{}, fmt.Errorf("set player active=%t: %w", active, err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}

	s.logger.InfoContext(ctx, "player active flag changed", "player_id", id, "active", active)
	return item, nil
}

// Detail loads the current season summary, season lines and highlights
// concurrently.
func (s *PlayerService) Detail(ctx context.Context, id int64) (PlayerDetail, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Detail")
	defer span.End()

	item, err := s.mustGet(ctx, id)
	if err != nil {
		return PlayerDetail{}, err
	}

	out := PlayerDetail{
		Player: item,
		Season: s.now().Year(),
	}

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		totals, err := s.stats.playerTotals(ctx, item, out.Season)
		if err != nil {
			return err
		}
		if totals.GamesPlayed > 0 {
			out.SeasonSummary = &totals
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		lines, err := s.stats.listEntries(ctx, statFilterFor(item.ID, out.Season))
		if err != nil {
			return err
		}
		out.SeasonLines = lines
		return nil
	})
	p.Go(func(ctx context.Context) error {
		items, err := s.highlightRepo.List(ctx, highlight.Filter{PlayerID: item.ID})
		if err != nil {
			return fmt.Errorf("list player highlights: %w", err)
		}
		out.Highlights = items
		return nil
	})
	if err := p.Wait(); err != nil {
		return PlayerDetail{}, err
	}

	recent := out.Highlights
	if len(recent) > recentHighlightsLimit {
		recent = recent[:recentHighlightsLimit]
	}
	out.RecentHighlights = recent

	return out, nil
}

func (s *PlayerService) mustGet(ctx context.Context, id int64) (player.Player, error) {
	if id <= 0 {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%d", ErrNotFound, id)
	}
	return item, nil
}

func applyPlayerInput(item player.Player, input PlayerInput) player.Player {
	if input.FirstName != nil {
		item.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		item.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.JerseyNumber != nil {
		item.JerseyNumber = *input.JerseyNumber
	}
	if input.Position != nil {
		if p, ok := player.ParsePosition(*input.Position); ok {
			item.Position = p
		} else {
			item.Position = player.Position(strings.TrimSpace(*input.Position))
		}
	}
	if input.Bio != nil {
		item.Bio = *input.Bio
	}
	if input.HeightInches != nil {
		item.HeightInches = input.HeightInches
	}
	if input.WeightLbs != nil {
		item.WeightLbs = input.WeightLbs
	}
	if input.BirthDate != nil {
		item.BirthDate = input.BirthDate
	}
	if input.PhotoURL != nil {
		item.PhotoURL = strings.TrimSpace(*input.PhotoURL)
	}
	if input.Active != nil {
		item.Active = *input.Active
	}
	return item
}

func translatePlayerWriteErr(err error, jersey int) error {
	if errors.Is(err, player.ErrDuplicateJersey) {
		return fmt.Errorf("%w: jersey number %d is already taken", ErrConflict, jersey)
	}
	return fmt.Errorf("save player: %w", err)
}
