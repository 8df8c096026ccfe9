package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/peaks-baseball/internal/domain/playerstats"
	"github.com/riskibarqy/peaks-baseball/internal/domain/statline"
)

type StatRepository struct {
	db *Database
}

func NewStatRepository(db *Database) *StatRepository {
	return &StatRepository{db: db}
}

func (r *StatRepository) List(_ context.Context, filter playerstats.Filter) ([]playerstats.Stat, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]playerstats.Stat, 0)
	for _, s := range r.db.stats {
		if filter.PlayerID > 0 && s.PlayerID != filter.PlayerID {
			continue
		}
		if filter.GameID > 0 && s.GameID != filter.GameID {
			continue
		}
		if filter.Season > 0 && r.db.games[s.GameID].Season != filter.Season {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		di, dj := r.db.games[out[i].GameID].GameDate, r.db.games[out[j].GameID].GameDate
		if !di.Equal(dj) {
			return di.After(dj)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

func (r *StatRepository) GetByID(_ context.Context, id int64) (playerstats.Stat, bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.stats[id]
	return s, ok, nil
}

func (r *StatRepository) Create(_ context.Context, item playerstats.Stat) (playerstats.Stat, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if err := r.checkRefsLocked(item); err != nil {
		return playerstats.Stat{}, err
	}

	r.db.statSeq++
	now := r.db.now()
	item.ID = r.db.statSeq
	item.CreatedAt = now
	item.UpdatedAt = now
	r.db.stats[item.ID] = item

	return item, nil
}

func (r *StatRepository) Update(_ context.Context, item playerstats.Stat) (playerstats.Stat, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	current, ok := r.db.stats[item.ID]
	if !ok {
		return playerstats.Stat{}, errRowNotFound("stat", item.ID)
	}
	if err := r.checkRefsLocked(item); err != nil {
		return playerstats.Stat{}, err
	}

	item.CreatedAt = current.CreatedAt
	item.UpdatedAt = r.db.now()
	r.db.stats[item.ID] = item

	return item, nil
}

func (r *StatRepository) Delete(_ context.Context, id int64) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.stats[id]; !ok {
		return false, nil
	}
	delete(r.db.stats, id)
	return true, nil
}

func (r *StatRepository) ListTotals(_ context.Context, filter playerstats.TotalsFilter) ([]playerstats.Totals, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var allowed map[int64]struct{}
	if len(filter.PlayerIDs) > 0 {
		allowed = make(map[int64]struct{}, len(filter.PlayerIDs))
		for _, id := range filter.PlayerIDs {
			allowed[id] = struct{}{}
		}
	}

	linesByPlayer := make(map[int64][]statline.Line)
	for _, s := range r.db.stats {
		if allowed != nil {
			if _, ok := allowed[s.PlayerID]; !ok {
				continue
			}
		}
		if filter.Season > 0 && r.db.games[s.GameID].Season != filter.Season {
			continue
		}
		linesByPlayer[s.PlayerID] = append(linesByPlayer[s.PlayerID], s.Line)
	}

	out := make([]playerstats.Totals, 0, len(linesByPlayer))
	for playerID, lines := range linesByPlayer {
		out = append(out, playerstats.Totals{
			PlayerID:    playerID,
			GamesPlayed: len(lines),
			Line:        statline.Sum(lines...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out, nil
}

func (r *StatRepository) checkRefsLocked(item playerstats.Stat) error {
	if _, ok := r.db.players[item.PlayerID]; !ok {
		return errRowNotFound("player", item.PlayerID)
	}
	if _, ok := r.db.games[item.GameID]; !ok {
		return errRowNotFound("game", item.GameID)
	}
	for _, s := range r.db.stats {
		if s.ID != item.ID && s.PlayerID == item.PlayerID && s.GameID == item.GameID {
			return playerstats.ErrDuplicateLine
		}
	}
	return nil
}
