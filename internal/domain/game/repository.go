package game

import "context"

// Filter narrows List results; a zero Season means every season.
type Filter struct {
	Season int
}

// Repository describes game persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Game, error)
	GetByID(ctx context.Context, id int64) (Game, bool, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Game, error)
	Create(ctx context.Context, item Game) (Game, error)
	Update(ctx context.Context, item Game) (Game, error)
	// Delete removes the game together with its stat lines.
	Delete(ctx context.Context, id int64) (bool, error)
}
