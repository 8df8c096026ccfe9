package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/peaks-baseball/internal/domain/highlight"
)

type HighlightRepository struct {
	db *Database
}

func NewHighlightRepository(db *Database) *HighlightRepository {
	return &HighlightRepository{db: db}
}

func (r *HighlightRepository) List(_ context.Context, filter highlight.Filter) ([]highlight.Highlight, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]highlight.Highlight, 0, len(r.db.highlights))
	for _, h := range r.db.highlights {
		if filter.PlayerID > 0 && h.PlayerID != filter.PlayerID {
			continue
		}
		out = append(out, cloneHighlight(h))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (r *HighlightRepository) GetByID(_ context.Context, id int64) (highlight.Highlight, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	h, ok := r.db.highlights[id]
	if !ok {
		return highlight.Highlight{}, false, nil
	}
	return cloneHighlight(h), true, nil
}

func (r *HighlightRepository) Create(_ context.Context, item highlight.Highlight) (highlight.Highlight, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.players[item.PlayerID]; !ok {
		return highlight.Highlight{}, errRowNotFound("player", item.PlayerID)
	}

	r.db.highlightSeq++
	now := r.db.now()
	item.ID = r.db.highlightSeq
	item.CreatedAt = now
	item.UpdatedAt = now
	r.db.highlights[item.ID] = cloneHighlight(item)

	return cloneHighlight(item), nil
}

func (r *HighlightRepository) Update(_ context.Context, item highlight.Highlight) (highlight.Highlight, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.highlights[item.ID]
	if !ok {
		return highlight.Highlight{}, errRowNotFound("highlight", item.ID)
	}
	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = r.db.now()
	r.db.highlights[item.ID] = cloneHighlight(item)

	return cloneHighlight(item), nil
}

func (r *HighlightRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.highlights[id]; !ok {
		return false, nil
	}
	delete(r.db.highlights, id)
	return true, nil
}
