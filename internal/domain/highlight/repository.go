package highlight

import "context"

// Filter narrows List results. Zero values disable a filter.
type Filter struct {
	PlayerID int64
	Limit    int
}

// Repository describes highlight persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Highlight, error)
	GetByID(ctx context.Context, id int64) (Highlight, bool, error)
	Create(ctx context.Context, item Highlight) (Highlight, error)
	Update(ctx context.Context, item Highlight) (Highlight, error)
	Delete(ctx context.Context, id int64) (bool, error)
}
