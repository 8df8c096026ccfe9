package playerstats

import "context"

// Filter narrows List results. Zero values disable a filter.
type Filter struct {
	PlayerID int64
	GameID   int64
	Season   int
}

// TotalsFilter narrows ListTotals. An empty PlayerIDs means every player.
type TotalsFilter struct {
	Season    int
	PlayerIDs []int64
}

type Repository interface {
	// List orders lines by game date, newest first.
	List(ctx context.Context, filter Filter) ([]Stat, error)
	GetByID(ctx context.Context, id int64) (Stat, bool, error)
	Create(ctx context.Context, item Stat) (Stat, error)
	Update(ctx context.Context, item Stat) (Stat, error)
	Delete(ctx context.Context, id int64) (bool, error)
	// ListTotals returns one row per player that has at least one line.
	ListTotals(ctx context.Context, filter TotalsFilter) ([]Totals, error)
}
