package cache

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	"github.com/riskibarqy/peaks-baseball/internal/domain/playerstats"
	basecache "github.com/riskibarqy/peaks-baseball/internal/platform/cache"
)

const (
	playerKeyPrefix = "player:"
	gameKeyPrefix   = "game:"
	statsKeyPrefix  = "stats:"
)

type cachedByID[T any] struct {
	Value  T    `json:"value"`
	Exists bool `json:"exists"`
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	key := playerKeyPrefix + "list:" + strconv.FormatBool(filter.ActiveOnly) + ":" + string(filter.Position)
	return basecache.GetOrLoad(ctx, r.cache, key, func(ctx context.Context) ([]player.Player, error) {
		return r.next.List(ctx, filter)
	})
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	key := playerKeyPrefix + "id:" + strconv.FormatInt(id, 10)
	cached, err := basecache.GetOrLoad(ctx, r.cache, key, func(ctx context.Context) (cachedByID[player.Player], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedByID[player.Player]{}, err
		}
		return cachedByID[player.Player]{Value: item, Exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}
	return cached.Value, cached.Exists, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []int64) ([]player.Player, error) {
	return r.next.GetByIDs(ctx, ids)
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) (player.Player, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return player.Player{}, err
	}
	r.cache.InvalidatePrefix(ctx, playerKeyPrefix)
	return created, nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) (player.Player, error) {
	updated, err := r.next.Update(ctx, item)
	if err != nil {
		return player.Player{}, err
	}
	r.cache.InvalidatePrefix(ctx, playerKeyPrefix)
	return updated, nil
}

func (r *PlayerRepository) SetActive(ctx context.Context, id int64, active bool) (player.Player, bool, error) {
	item, exists, err := r.next.SetActive(ctx, id, active)
	if err != nil {
		return player.Player{}, false, err
	}
	if exists {
		r.cache.InvalidatePrefix(ctx, playerKeyPrefix)
	}
	return item, exists, nil
}

type GameRepository struct {
	next  game.Repository
	cache *basecache.Store
}

func NewGameRepository(next game.Repository, cache *basecache.Store) *GameRepository {
	return &GameRepository{next: next, cache: cache}
}

func (r *GameRepository) List(ctx context.Context, filter game.Filter) ([]game.Game, error) {
	key := gameKeyPrefix + "list:" + strconv.Itoa(filter.Season)
	return basecache.GetOrLoad(ctx, r.cache, key, func(ctx context.Context) ([]game.Game, error) {
		return r.next.List(ctx, filter)
	})
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (game.Game, bool, error) {
	key := gameKeyPrefix + "id:" + strconv.FormatInt(id, 10)
	cached, err := basecache.GetOrLoad(ctx, r.cache, key, func(ctx context.Context) (cachedByID[game.Game], error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return cachedByID[game.Game]{}, err
		}
		return cachedByID[game.Game]{Value: item, Exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}
	return cached.Value, cached.Exists, nil
}

func (r *GameRepository) GetByIDs(ctx context.Context, ids []int64) ([]game.Game, error) {
	return r.next.GetByIDs(ctx, ids)
}

func (r *GameRepository) Create(ctx context.Context, item game.Game) (game.Game, error) {
	created, err := r.next.Create(ctx, item)
	if err != nil {
		return game.Game{}, err
	}
	r.cache.InvalidatePrefix(ctx, gameKeyPrefix)
	return created, nil
}

// Update also drops stat totals since a season change moves lines between
// seasons.
func (r *GameRepository) Update(ctx context.Context, item game.Game) (game.Game, error) {
	updated, err := r.next.Update(ctx, item)
	if err != nil {
		return game.Game{}, err
	}
	r.cache.InvalidatePrefix(ctx, gameKeyPrefix)
	r.cache.InvalidatePrefix(ctx, statsKeyPrefix)
	return updated, nil
}

func (r *GameRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.next.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		r.cache.InvalidatePrefix(ctx, gameKeyPrefix)
		r.cache.InvalidatePrefix(ctx, statsKeyPrefix)
	}
	return deleted, nil
}

// StatRepository caches aggregate totals only; line reads go straight
// through.
type StatRepository struct {
	playerstats.Repository
	cache *basecache.Store
}

func NewStatRepository(next playerstats.Repository, cache *basecache.Store) *StatRepository {
	return &StatRepository{Repository: next, cache: cache}
}

func (r *StatRepository) ListTotals(ctx context.Context, filter playerstats.TotalsFilter) ([]playerstats.Totals, error) {
	return basecache.GetOrLoad(ctx, r.cache, totalsKey(filter), func(ctx context.Context) ([]playerstats.Totals, error) {
		return r.Repository.ListTotals(ctx, filter)
	})
}

func (r *StatRepository) Create(ctx context.Context, item playerstats.Stat) (playerstats.Stat, error) {
	created, err := r.Repository.Create(ctx, item)
	if err != nil {
		return playerstats.Stat{}, err
	}
	r.cache.InvalidatePrefix(ctx, statsKeyPrefix)
	return created, nil
}

func (r *StatRepository) Update(ctx context.Context, item playerstats.Stat) (playerstats.Stat, error) {
	updated, err := r.Repository.Update(ctx, item)
	if err != nil {
		return playerstats.Stat{}, err
	}
	r.cache.InvalidatePrefix(ctx, statsKeyPrefix)
	return updated, nil
}

func (r *StatRepository) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := r.Repository.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		r.cache.InvalidatePrefix(ctx, statsKeyPrefix)
	}
	return deleted, nil
}

func totalsKey(filter playerstats.TotalsFilter) string {
	ids := append([]int64(nil), filter.PlayerIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return statsKeyPrefix + "totals:" + strconv.Itoa(filter.Season) + ":" + strings.Join(parts, ",")
}
