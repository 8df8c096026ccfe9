package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/peaks-baseball/internal/domain/playerstats"
	"github.com/riskibarqy/peaks-baseball/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/peaks-baseball/internal/platform/querybuilder"
)

// BootstrapSeed loads the demo roster into an empty database. It is a no-op
// once any player exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, season int) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	playerIDs := make([]int64, 0)
	for _, p := range memory.SeedPlayers() {
		id, err := insertReturningID(ctx, tx, "players", newPlayerWriteModel(p))
		if err != nil {
			return fmt.Errorf("seed player jersey=%d: %w", p.JerseyNumber, err)
		}
		playerIDs = append(playerIDs, id)
	}

	gameIDs := make([]int64, 0)
	for _, g := range memory.SeedGames(season) {
		id, err := insertReturningID(ctx, tx, "games", newGameWriteModel(g))
		if err != nil {
			return fmt.Errorf("seed game opponent=%s: %w", g.Opponent, err)
		}
		gameIDs = append(gameIDs, id)
	}

	for _, l := range memory.SeedStatLines() {
		model := newStatWriteModel(playerstats.Stat{
			PlayerID: playerIDs[l.PlayerIndex-1],
			GameID:   gameIDs[l.GameIndex-1],
			Line:     l.Line,
		})
		if _, err := insertReturningID(ctx, tx, statsTable, model); err != nil {
			return fmt.Errorf("seed stat line: %w", err)
		}
	}

	for _, h := range memory.SeedHighlights() {
		h.PlayerID = playerIDs[h.PlayerID-1]
		if _, err := insertReturningID(ctx, tx, "highlights", newHighlightWriteModel(h)); err != nil {
			return fmt.Errorf("seed highlight: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

func insertReturningID(ctx context.Context, tx *sqlx.Tx, table string, model any) (int64, error) {
	query, args, err := qb.InsertModel(table, model, "RETURNING id")
	if err != nil {
		return 0, fmt.Errorf("build insert %s query: %w", table, err)
	}

	var id int64
	if err := tx.GetContext(ctx, &id, query, args...); err != nil {
		return 0, fmt.Errorf("insert %s: %w", table, err)
	}
	return id, nil
}
