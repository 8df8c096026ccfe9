package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	"github.com/riskibarqy/peaks-baseball/internal/domain/playerstats"
	"github.com/riskibarqy/peaks-baseball/internal/domain/statline"
	"github.com/riskibarqy/peaks-baseball/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/peaks-baseball/internal/mocks/domain/player"
	basecache "github.com/riskibarqy/peaks-baseball/internal/platform/cache"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func newTestStore() *basecache.Store {
	return basecache.NewStore(basecache.NewMemoryBackend(), time.Minute, logging.NewNop())
}

func TestPlayerRepository_GetByIDHitsNextOnce(t *testing.T) {
	t.Parallel()

	next := playermock.NewRepository(t)
	repo := NewPlayerRepository(next, newTestStore())

	next.
		On("GetByID", mock.Anything, int64(7)).
		Return(player.Player{ID: 7, FirstName: "Dylan", JerseyNumber: 7}, true, nil).
		Once()

	for i := 0; i < 3; i++ {
		got, exists, err := repo.GetByID(context.Background(), 7)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if !exists || got.FirstName != "Dylan" {
			t.Fatalf("unexpected cached player: exists=%v player=%+v", exists, got)
		}
	}
}

func TestPlayerRepository_CachesMisses(t *testing.T) {
	t.Parallel()

	next := playermock.NewRepository(t)
	repo := NewPlayerRepository(next, newTestStore())

	next.
		On("GetByID", mock.Anything, int64(99)).
		Return(player.Player{}, false, nil).
		Once()

	for i := 0; i < 2; i++ {
		_, exists, err := repo.GetByID(context.Background(), 99)
		if err != nil {
			t.Fatalf("get by id: %v", err)
		}
		if exists {
			t.Fatalf("expected miss")
		}
	}
}

func TestPlayerRepository_WriteInvalidates(t *testing.T) {
	t.Parallel()

	db := memory.NewDatabase()
	memory.Seed(db, 2025)
	repo := NewPlayerRepository(memory.NewPlayerRepository(db), newTestStore())
	ctx := context.Background()

	before, err := repo.List(ctx, player.Filter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, _, err := repo.SetActive(ctx, before[0].ID, false); err != nil {
		t.Fatalf("set active: %v", err)
	}
	after, err := repo.List(ctx, player.Filter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("list after write: %v", err)
	}
	if len(after) != len(before)-1 {
		t.Fatalf("expected stale list to be dropped: before=%d after=%d", len(before), len(after))
	}
}

func TestStatRepository_TotalsInvalidatedByGameDelete(t *testing.T) {
	t.Parallel()

	db := memory.NewDatabase()
	memory.Seed(db, 2025)
	store := newTestStore()
	stats := NewStatRepository(memory.NewStatRepository(db), store)
	games := NewGameRepository(memory.NewGameRepository(db), store)
	ctx := context.Background()

	filter := playerstats.TotalsFilter{Season: 2025, PlayerIDs: []int64{1}}
	before, err := stats.ListTotals(ctx, filter)
	if err != nil {
		t.Fatalf("list totals: %v", err)
	}
	if len(before) != 1 || before[0].GamesPlayed != 2 {
		t.Fatalf("unexpected totals: %+v", before)
	}

	if _, err := games.Delete(ctx, 1); err != nil {
		t.Fatalf("delete game: %v", err)
	}

	after, err := stats.ListTotals(ctx, filter)
	if err != nil {
		t.Fatalf("list totals after delete: %v", err)
	}
	if len(after) != 1 || after[0].GamesPlayed != 1 {
		t.Fatalf("expected totals to drop the deleted game: %+v", after)
	}
}

func TestStatRepository_CreateInvalidatesTotals(t *testing.T) {
	t.Parallel()

	db := memory.NewDatabase()
	memory.Seed(db, 2025)
	stats := NewStatRepository(memory.NewStatRepository(db), newTestStore())
	ctx := context.Background()

	filter := playerstats.TotalsFilter{Season: 2025}
	if _, err := stats.ListTotals(ctx, filter); err != nil {
		t.Fatalf("list totals: %v", err)
	}

	if _, err := stats.Create(ctx, playerstats.Stat{PlayerID: 1, GameID: 3, Line: statline.Line{AtBats: 5, Hits: 5, TotalBases: 5}}); err != nil {
		t.Fatalf("create stat: %v", err)
	}

	after, err := stats.ListTotals(ctx, filter)
	if err != nil {
		t.Fatalf("list totals after create: %v", err)
	}
	for _, row := range after {
		if row.PlayerID == 1 && row.Line.Hits != 8 {
			t.Fatalf("expected refreshed hits=8, got %d", row.Line.Hits)
		}
	}
}

func TestTotalsKey_SortsPlayerIDs(t *testing.T) {
	t.Parallel()

	a := totalsKey(playerstats.TotalsFilter{Season: 2025, PlayerIDs: []int64{3, 1, 2}})
	b := totalsKey(playerstats.TotalsFilter{Season: 2025, PlayerIDs: []int64{1, 2, 3}})
	if a != b || a != "stats:totals:2025:1,2,3" {
		t.Fatalf("unexpected keys: %s vs %s", a, b)
	}
}
