package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/peaks-baseball/internal/config"
	"github.com/riskibarqy/peaks-baseball/internal/interfaces/httpapi"
	"github.com/riskibarqy/peaks-baseball/internal/platform/logging"
	"github.com/riskibarqy/peaks-baseball/internal/usecase"
)

// NewHTTPServer builds the repositories, services and router for cfg. The
// returned cleanup releases database and cache connections and must run
// after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	store, closeCache, err := openCacheStore(ctx, cfg, logger)
	if err != nil {
		repos.close()
		return nil, nil, err
	}
	if store != nil {
		repos = repos.withCache(store)
	}

	cleanup := func() {
		closeCache()
		repos.close()
	}

	statSvc := usecase.NewStatService(repos.stats, repos.players, repos.games, cfg.StatsBatchWorkers, logger)
	playerSvc := usecase.NewPlayerService(repos.players, repos.highlights, statSvc, logger)
	gameSvc := usecase.NewGameService(repos.games, logger)
	highlightSvc := usecase.NewHighlightService(repos.highlights, repos.players, logger)

	handler := httpapi.NewHandler(playerSvc, gameSvc, statSvc, highlightSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AdminToken:         cfg.AdminToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("http server configured",
		"addr", cfg.HTTPAddr,
		"storage", cfg.Storage,
		"cache_enabled", store != nil,
		"swagger_enabled", cfg.SwaggerEnabled,
	)

	return server, cleanup, nil
}
