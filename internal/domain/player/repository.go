package player

import "context"

// Filter narrows List results. The zero value returns every player.
type Filter struct {
	ActiveOnly bool
	Position   Position
}

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Player, error)
	GetByID(ctx context.Context, id int64) (Player, bool, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Player, error)
	Create(ctx context.Context, item Player) (Player, error)
	Update(ctx context.Context, item Player) (Player, error)
	SetActive(ctx context.Context, id int64, active bool) (Player, bool, error)
}
