package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
)

type PlayerRepository struct {
	db *Database
}

func NewPlayerRepository(db *Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(_ context.Context, filter player.Filter) ([]player.Player, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]player.Player, 0, len(r.db.players))
	for _, p := range r.db.players {
		if filter.ActiveOnly && !p.Active {
			continue
		}
		if filter.Position != "" && p.Position != filter.Position {
			continue
		}
		out = append(out, clonePlayer(p))
	}
	sortPlayers(out)

	return out, nil
}

func (r *PlayerRepository) GetByID(_ context.Context, id int64) (player.Player, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.players[id]
	if !ok {
		return player.Player{}, false, nil
	}
	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, ids []int64) ([]player.Player, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := r.db.players[id]
		if !ok {
			continue
		}
		out = append(out, clonePlayer(p))
	}
	return out, nil
}

func (r *PlayerRepository) Create(_ context.Context, item player.Player) (player.Player, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.jerseyTakenLocked(item.JerseyNumber, 0) {
		return player.Player{}, player.ErrDuplicateJersey
	}

	r.db.playerSeq++
	now := r.db.now()
	item.ID = r.db.playerSeq
	item.CreatedAt = now
	item.UpdatedAt = now
	r.db.players[item.ID] = clonePlayer(item)

	return clonePlayer(item), nil
}

func (r *PlayerRepository) Update(_ context.Context, item player.Player) (player.Player, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.players[item.ID]
	if !ok {
		return player.Player{}, errRowNotFound("player", item.ID)
	}
	if r.jerseyTakenLocked(item.JerseyNumber, item.ID) {
		return player.Player{}, player.ErrDuplicateJersey
	}

	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = r.db.now()
	r.db.players[item.ID] = clonePlayer(item)

	return clonePlayer(item), nil
}

func (r *PlayerRepository) SetActive(_ context.Context, id int64, active bool) (player.Player, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	p, ok := r.db.players[id]
	if !ok {
		return player.Player{}, false, nil
	}
	p.Active = active
	p.UpdatedAt = r.db.now()
	r.db.players[id] = p

	return clonePlayer(p), true, nil
}

func (r *PlayerRepository) jerseyTakenLocked(jersey int, exceptID int64) bool {
	for _, p := range r.db.players {
		if p.ID != exceptID && p.JerseyNumber == jersey {
			return true
		}
	}
	return false
}

func sortPlayers(items []player.Player) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].JerseyNumber != items[j].JerseyNumber {
			return items[i].JerseyNumber < items[j].JerseyNumber
		}
		return items[i].ID < items[j].ID
	})
}
