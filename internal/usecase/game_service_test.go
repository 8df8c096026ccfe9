package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
	"github.com/riskibarqy/peaks-baseball/internal/infrastructure/repository/memory"
	gamemock "github.com/riskibarqy/peaks-baseball/internal/mocks/domain/game"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func TestGameService_Create_DefaultsSeasonFromDateUsingMockery(t *testing.T) {
	t.Parallel()

	gameRepo := gamemock.NewRepository(t)
	service := NewGameService(gameRepo, logging.NewNop())
	date := time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC)

	gameRepo.
		On("Create", mock.Anything, mock.MatchedBy(func(g game.Game) bool {
			return g.Season == 2024 && g.Opponent == "Hawks"
		})).
		Return(game.Game{ID: 1, Opponent: "Hawks", GameDate: date, Season: 2024}, nil).
		Once()

	got, err := service.Create(context.Background(), GameInput{
		Opponent: stringPtr(" Hawks "),
		GameDate: &date,
	})
	if err != nil {
		t.Fatalf("create game: %v", err)
	}
	if got.Season != 2024 {
		t.Fatalf("unexpected season: got=%d want=2024", got.Season)
	}
}

func TestGameService_Create_Validation(t *testing.T) {
	t.Parallel()

	service := NewGameService(gamemock.NewRepository(t), logging.NewNop())
	date := time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input GameInput
	}{
		{name: "missing opponent", input: GameInput{GameDate: &date}},
		{name: "missing date", input: GameInput{Opponent: stringPtr("Hawks")}},
		{name: "negative score", input: GameInput{Opponent: stringPtr("Hawks"), GameDate: &date, TeamScore: intPtr(-1)}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), tc.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestGameService_ListAndUpdate(t *testing.T) {
	t.Parallel()

	db := memory.NewDatabase()
	memory.Seed(db, testSeason)
	service := NewGameService(memory.NewGameRepository(db), logging.NewNop())

	items, err := service.List(t.Context(), testSeason)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("unexpected game count: got=%d want=3", len(items))
	}
	if !items[0].GameDate.After(items[2].GameDate) {
		t.Fatalf("expected newest game first")
	}

	other, err := service.List(t.Context(), testSeason-1)
	if err != nil {
		t.Fatalf("list other season: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected no games in other season, got %d", len(other))
	}

	updated, err := service.Update(t.Context(), 3, GameInput{TeamScore: intPtr(5), OpponentScore: intPtr(5)})
	if err != nil {
		t.Fatalf("update game: %v", err)
	}
	if updated.Result() != game.ResultTie {
		t.Fatalf("unexpected result: got=%s want=T", updated.Result())
	}
	if updated.Opponent != "Greeley Hawks" {
		t.Fatalf("expected untouched opponent, got %q", updated.Opponent)
	}

	if err := service.Delete(t.Context(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
