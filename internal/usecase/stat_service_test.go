package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	"github.com/riskibarqy/peaks-baseball/internal/domain/statline"
	"github.com/riskibarqy/peaks-baseball/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
)

const testSeason = 2025

type statFixture struct {
	db      *memory.Database
	players *memory.PlayerRepository
	games   *memory.GameRepository
	stats   *StatService
}

func newStatFixture(t *testing.T) statFixture {
	t.Helper()

	db := memory.NewDatabase()
	memory.Seed(db, testSeason)

	players := memory.NewPlayerRepository(db)
	games := memory.NewGameRepository(db)
	svc := NewStatService(memory.NewStatRepository(db), players, games, 3, logging.NewNop())
	svc.now = func() time.Time { return time.Date(testSeason, time.June, 1, 0, 0, 0, 0, time.UTC) }

	return statFixture{db: db, players: players, games: games, stats: svc}
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestStatService_Create_ComputesTotalBasesAndRates(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	// game 3 has no lines in the seed data.
	entry, err := f.stats.Create(t.Context(), CreateStatInput{
		PlayerID: 1,
		GameID:   3,
		Line: statline.Optional{
			AtBats:   intPtr(4),
			Hits:     intPtr(2),
			Doubles:  intPtr(1),
			Walks:    intPtr(1),
			HomeRuns: intPtr(0),
		},
	})
	if err != nil {
		t.Fatalf("create stat: %v", err)
	}

	if entry.Stat.Line.TotalBases != 3 {
		t.Fatalf("unexpected total bases: got=%d want=3", entry.Stat.Line.TotalBases)
	}
	if entry.Derived.BattingAverage != 0.5 {
		t.Fatalf("unexpected batting average: got=%v want=0.5", entry.Derived.BattingAverage)
	}
	if entry.Derived.OnBasePercentage != 0.6 {
		t.Fatalf("unexpected obp: got=%v want=0.6", entry.Derived.OnBasePercentage)
	}
	if entry.Derived.OPS != 1.35 {
		t.Fatalf("unexpected ops: got=%v want=1.35", entry.Derived.OPS)
	}
	if entry.Player.ID != 1 || entry.Game.ID != 3 {
		t.Fatalf("unexpected hydration: player=%d game=%d", entry.Player.ID, entry.Game.ID)
	}
}

func TestStatService_Create_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input CreateStatInput
		want  error
	}{
		{name: "duplicate line", input: CreateStatInput{PlayerID: 1, GameID: 1}, want: ErrConflict},
		{name: "unknown player", input: CreateStatInput{PlayerID: 999, GameID: 1}, want: ErrNotFound},
		{name: "unknown game", input: CreateStatInput{PlayerID: 1, GameID: 999}, want: ErrNotFound},
		{name: "missing player", input: CreateStatInput{GameID: 1}, want: ErrInvalidInput},
		{name: "negative hits", input: CreateStatInput{PlayerID: 1, GameID: 3, Line: statline.Optional{Hits: intPtr(-1)}}, want: ErrInvalidInput},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newStatFixture(t)

			_, err := f.stats.Create(t.Context(), tc.input)
			if !errors.Is(err, tc.want) {
				t.Fatalf("unexpected error: got=%v want=%v", err, tc.want)
			}
		})
	}
}

func TestStatService_Update_RecomputesTotalBases(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	// stat 1: ab 4, h 2, 2b 1 in the seed data.
	entry, err := f.stats.Update(t.Context(), 1, UpdateStatInput{
		Line: statline.Optional{HomeRuns: intPtr(1)},
	})
	if err != nil {
		t.Fatalf("update stat: %v", err)
	}

	if entry.Stat.Line.AtBats != 4 || entry.Stat.Line.Hits != 2 {
		t.Fatalf("expected untouched fields to survive: %+v", entry.Stat.Line)
	}
	if entry.Stat.Line.TotalBases != 6 {
		t.Fatalf("unexpected total bases: got=%d want=6", entry.Stat.Line.TotalBases)
	}
}

func TestStatService_Update_MovingOntoExistingLineConflicts(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	gameID := int64(2)
	// stat 1 belongs to player 1 in game 1; player 1 already has a line in game 2.
	_, err := f.stats.Update(t.Context(), 1, UpdateStatInput{GameID: &gameID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestStatService_Delete(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	if err := f.stats.Delete(t.Context(), 1); err != nil {
		t.Fatalf("delete stat: %v", err)
	}
	if err := f.stats.Delete(t.Context(), 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestStatService_GameBoxScore_OrdersByJerseyWithTeamTotal(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	box, err := f.stats.GameBoxScore(t.Context(), 1)
	if err != nil {
		t.Fatalf("box score: %v", err)
	}

	if len(box.Entries) != 5 {
		t.Fatalf("unexpected entry count: got=%d want=5", len(box.Entries))
	}
	for i := 1; i < len(box.Entries); i++ {
		if box.Entries[i-1].Player.JerseyNumber > box.Entries[i].Player.JerseyNumber {
			t.Fatalf("entries not in jersey order at %d", i)
		}
	}
	if box.Totals.AtBats != 11 || box.Totals.Hits != 4 {
		t.Fatalf("unexpected team batting totals: ab=%d h=%d", box.Totals.AtBats, box.Totals.Hits)
	}
	if box.Totals.InningsPitched != 9 {
		t.Fatalf("unexpected team innings: got=%v want=9", box.Totals.InningsPitched)
	}
	if box.Derived.ERA != 3 {
		t.Fatalf("unexpected team era: got=%v want=3", box.Derived.ERA)
	}
}

func TestStatService_GameLog_NewestFirst(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	log, err := f.stats.GameLog(t.Context(), 2)
	if err != nil {
		t.Fatalf("game log: %v", err)
	}
	if len(log) != 2 {
		t.Fatalf("unexpected line count: got=%d want=2", len(log))
	}
	if !log[0].Game.GameDate.After(log[1].Game.GameDate) {
		t.Fatalf("expected newest game first")
	}

	if _, err := f.stats.GameLog(t.Context(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
}

func TestStatService_PlayerSeasonStats_SnapsInnings(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	// player 5 pitched 3.0 and 5.1 innings.
	totals, err := f.stats.PlayerSeasonStats(t.Context(), 5, testSeason)
	if err != nil {
		t.Fatalf("player season stats: %v", err)
	}
	if totals.GamesPlayed != 2 {
		t.Fatalf("unexpected games played: got=%d want=2", totals.GamesPlayed)
	}
	if totals.Line.InningsPitched != 8.1 {
		t.Fatalf("unexpected innings: got=%v want=8.1", totals.Line.InningsPitched)
	}
	if totals.Line.StrikeoutsPitched != 10 {
		t.Fatalf("unexpected strikeouts: got=%d want=10", totals.Line.StrikeoutsPitched)
	}

	empty, err := f.stats.PlayerSeasonStats(t.Context(), 5, testSeason-1)
	if err != nil {
		t.Fatalf("player season stats for empty season: %v", err)
	}
	if empty.GamesPlayed != 0 || empty.Derived.ERA != 0 {
		t.Fatalf("expected zero totals, got %+v", empty)
	}
}

func TestStatService_RosterStats_IncludesPlayersWithoutLines(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	rookie, err := f.players.Create(t.Context(), player.Player{
		FirstName:    "Rook",
		LastName:     "Ie",
		JerseyNumber: 1,
		Position:     player.PositionRightField,
		Active:       true,
	})
	if err != nil {
		t.Fatalf("create rookie: %v", err)
	}

	rows, err := f.stats.RosterStats(t.Context(), 0)
	if err != nil {
		t.Fatalf("roster stats: %v", err)
	}

	// six active seeded players plus the rookie; player 7 is inactive.
	if len(rows) != 7 {
		t.Fatalf("unexpected row count: got=%d want=7", len(rows))
	}
	if rows[0].Player.ID != rookie.ID {
		t.Fatalf("expected rookie with jersey 1 first, got player=%d", rows[0].Player.ID)
	}
	if rows[0].GamesPlayed != 0 || rows[0].Line.AtBats != 0 {
		t.Fatalf("expected zero line for rookie, got %+v", rows[0])
	}
	for _, row := range rows {
		if !row.Player.Active {
			t.Fatalf("inactive player %d in roster stats", row.Player.ID)
		}
	}
}

func TestStatService_SeasonStats_Leaders(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	got, err := f.stats.SeasonStats(t.Context(), 0)
	if err != nil {
		t.Fatalf("season stats: %v", err)
	}

	if got.Season != testSeason {
		t.Fatalf("unexpected default season: got=%d want=%d", got.Season, testSeason)
	}

	// players 1 and 2 both have 3 hits; jersey 2 beats jersey 7.
	if len(got.BattingLeaders) != 4 {
		t.Fatalf("unexpected batting leader count: got=%d want=4", len(got.BattingLeaders))
	}
	if got.BattingLeaders[0].Player.ID != 1 || got.BattingLeaders[1].Player.ID != 2 {
		t.Fatalf("unexpected batting leaders order: %d, %d", got.BattingLeaders[0].Player.ID, got.BattingLeaders[1].Player.ID)
	}

	if len(got.PitchingLeaders) != 2 {
		t.Fatalf("unexpected pitching leader count: got=%d want=2", len(got.PitchingLeaders))
	}
	if got.PitchingLeaders[0].Player.ID != 5 {
		t.Fatalf("expected player 5 to lead strikeouts, got %d", got.PitchingLeaders[0].Player.ID)
	}
}

func TestBattingLeaders_LimitsToTen(t *testing.T) {
	t.Parallel()

	rows := make([]PlayerTotals, 0, 12)
	for i := 0; i < 12; i++ {
		rows = append(rows, PlayerTotals{
			Player: player.Player{ID: int64(i + 1), JerseyNumber: i},
			Line:   statline.Line{AtBats: 10, Hits: i},
		})
	}

	got := battingLeaders(rows, seasonLeadersLimit)
	if len(got) != 10 {
		t.Fatalf("unexpected leader count: got=%d want=10", len(got))
	}
	if got[0].Line.Hits != 11 {
		t.Fatalf("unexpected top hits: got=%d want=11", got[0].Line.Hits)
	}
}

func TestStatService_BatchCreate_PartialSuccessKeepsInputOrder(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	result, err := f.stats.BatchCreate(t.Context(), 3, []BatchLineInput{
		{PlayerID: 1, Line: statline.Optional{AtBats: intPtr(3), Hits: intPtr(1)}},
		{PlayerID: 999, Line: statline.Optional{AtBats: intPtr(2)}},
		{PlayerID: 4, Line: statline.Optional{InningsPitched: floatPtr(7), StrikeoutsPitched: intPtr(9)}},
	})
	if err != nil {
		t.Fatalf("batch create: %v", err)
	}

	if result.SuccessCount != 2 || result.FailedCount != 1 {
		t.Fatalf("unexpected counts: success=%d failed=%d", result.SuccessCount, result.FailedCount)
	}
	wantOrder := []int64{1, 999, 4}
	for i, want := range wantOrder {
		if result.Lines[i].PlayerID != want {
			t.Fatalf("unexpected order at %d: got=%d want=%d", i, result.Lines[i].PlayerID, want)
		}
	}
	if result.Lines[1].Status != BatchLineFailed || result.Lines[1].Message == "" {
		t.Fatalf("expected failure details for unknown player, got %+v", result.Lines[1])
	}
	if result.Lines[2].Entry == nil || result.Lines[2].Entry.Derived.ERA != 0 {
		t.Fatalf("unexpected pitching entry: %+v", result.Lines[2].Entry)
	}
}

func TestStatService_BatchCreate_RejectsBadInput(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	if _, err := f.stats.BatchCreate(t.Context(), 3, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}
	if _, err := f.stats.BatchCreate(t.Context(), 3, []BatchLineInput{{PlayerID: 1}, {PlayerID: 1}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate player, got %v", err)
	}
	if _, err := f.stats.BatchCreate(t.Context(), 999, []BatchLineInput{{PlayerID: 1}}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown game, got %v", err)
	}
}

func TestStatService_GameDeleteCascades(t *testing.T) {
	t.Parallel()
	f := newStatFixture(t)

	games := NewGameService(f.games, logging.NewNop())
	if err := games.Delete(t.Context(), 1); err != nil {
		t.Fatalf("delete game: %v", err)
	}

	lines, err := f.stats.List(t.Context(), StatFilter{GameID: 1})
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected lines of deleted game to be removed, got %d", len(lines))
	}
	if _, err := f.games.List(t.Context(), game.Filter{}); err != nil {
		t.Fatalf("list games: %v", err)
	}
}
