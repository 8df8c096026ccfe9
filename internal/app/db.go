package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/peaks-baseball/internal/config"
	"github.com/riskibarqy/peaks-baseball/internal/platform/pgdsn"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	dbPingTimeout      = 5 * time.Second
	maxTracedStatement = 512
)

// openDB connects through otelsqlx so every query becomes a span carrying
// the normalized statement text.
func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := cfg.DBURL
	if cfg.DBDisablePreparedBinary {
		dsn = pgdsn.DisableBinaryResults(dsn)
	}

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(pgdsn.Database(dsn)),
		otelsql.WithQueryFormatter(traceStatement),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxOpenConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// traceStatement collapses whitespace so multi-line queries read as one
// span attribute, cut at maxTracedStatement bytes.
func traceStatement(query string) string {
	flat := strings.Join(strings.Fields(query), " ")
	if len(flat) > maxTracedStatement {
		return flat[:maxTracedStatement] + "..."
	}
	return flat
}
