package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/peaks-baseball/internal/config"
	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
	"github.com/riskibarqy/peaks-baseball/internal/domain/highlight"
	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	"github.com/riskibarqy/peaks-baseball/internal/domain/playerstats"
	cacherepo "github.com/riskibarqy/peaks-baseball/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/peaks-baseball/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/peaks-baseball/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/peaks-baseball/internal/platform/cache"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
)

type repositories struct {
	players    player.Repository
	games      game.Repository
	stats      playerstats.Repository
	highlights highlight.Repository
	close      func()
}

func openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		db := memory.NewDatabase()
		memory.Seed(db, cfg.SeedSeason)
		logger.Info("using in-memory storage", "seed_season", cfg.SeedSeason)
		return repositories{
			players:    memory.NewPlayerRepository(db),
			games:      memory.NewGameRepository(db),
			stats:      memory.NewStatRepository(db),
			highlights: memory.NewHighlightRepository(db),
			close:      func() {},
		}, nil
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		if cfg.DBBootstrapSeed {
			if err := postgres.BootstrapSeed(ctx, db, cfg.SeedSeason); err != nil {
				_ = db.Close()
				return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
			}
			logger.Info("database bootstrap seed checked", "seed_season", cfg.SeedSeason)
		}
		return postgresRepositories(db, logger), nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage %q", cfg.Storage)
	}
}

func postgresRepositories(db *sqlx.DB, logger *logging.Logger) repositories {
	return repositories{
		players:    postgres.NewPlayerRepository(db),
		games:      postgres.NewGameRepository(db),
		stats:      postgres.NewStatRepository(db),
		highlights: postgres.NewHighlightRepository(db),
		close: func() {
			if err := db.Close(); err != nil {
				logger.Warn("close database", "error", err)
			}
		},
	}
}

// withCache wraps the read-heavy repositories. Highlights are served
// directly since their listings are already bounded by a limit.
func (r repositories) withCache(store *basecache.Store) repositories {
	r.players = cacherepo.NewPlayerRepository(r.players, store)
	r.games = cacherepo.NewGameRepository(r.games, store)
	r.stats = cacherepo.NewStatRepository(r.stats, store)
	return r
}
