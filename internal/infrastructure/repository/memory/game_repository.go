package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
)

type GameRepository struct {
	db *Database
}

func NewGameRepository(db *Database) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(_ context.Context, filter game.Filter) ([]game.Game, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]game.Game, 0, len(r.db.games))
	for _, g := range r.db.games {
		if filter.Season > 0 && g.Season != filter.Season {
			continue
		}
		out = append(out, cloneGame(g))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GameDate.Equal(out[j].GameDate) {
			return out[i].GameDate.After(out[j].GameDate)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *GameRepository) GetByID(_ context.Context, id int64) (game.Game, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	g, ok := r.db.games[id]
	if !ok {
		return game.Game{}, false, nil
	}
	return cloneGame(g), true, nil
}

func (r *GameRepository) GetByIDs(_ context.Context, ids []int64) ([]game.Game, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]game.Game, 0, len(ids))
	for _, id := range ids {
		if g, ok := r.db.games[id]; ok {
			out = append(out, cloneGame(g))
		}
	}
	return out, nil
}

func (r *GameRepository) Create(_ context.Context, item game.Game) (game.Game, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.gameSeq++
	now := r.db.now()
	item.ID = r.db.gameSeq
	item.CreatedAt = now
	item.UpdatedAt = now
	r.db.games[item.ID] = cloneGame(item)

	return cloneGame(item), nil
}

func (r *GameRepository) Update(_ context.Context, item game.Game) (game.Game, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.games[item.ID]
	if !ok {
		return game.Game{}, errRowNotFound("game", item.ID)
	}
	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = r.db.now()
	r.db.games[item.ID] = cloneGame(item)

	return cloneGame(item), nil
}

// Delete drops the game and its stat lines.
func (r *GameRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.games[id]; !ok {
		return false, nil
	}
	delete(r.db.games, id)
	for statID, s := range r.db.stats {
		if s.GameID == id {
			delete(r.db.stats, statID)
		}
	}
	return true, nil
}
