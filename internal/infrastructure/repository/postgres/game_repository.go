package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/peaks-baseball/internal/domain/game"
	qb "github.com/riskibarqy/peaks-baseball/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

var gameSelectColumns = []string{
	"id",
	"opponent",
	"game_date",
	"season",
	"home_team",
	"team_score",
	"opponent_score",
	"notes",
	"location",
	"created_at",
	"updated_at",
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) List(ctx context.Context, filter game.Filter) ([]game.Game, error) {
	b := qb.Select(gameSelectColumns...).From("games")
	if filter.Season > 0 {
		b.Where(qb.Eq("season", filter.Season))
	}
	query, args, err := b.OrderBy("game_date DESC", "id DESC").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}

	return gamesFromRows(rows), nil
}

func (r *GameRepository) GetByID(ctx context.Context, id int64) (game.Game, bool, error) {
	query, args, err := qb.Select(gameSelectColumns...).From("games").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game by id query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *GameRepository) GetByIDs(ctx context.Context, ids []int64) ([]game.Game, error) {
	if len(ids) == 0 {
		return []game.Game{}, nil
	}

	query, args, err := qb.Select(gameSelectColumns...).From("games").
		Where(qb.In("id", int64SliceToAny(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games by ids query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by ids: %w", err)
	}

	return gamesFromRows(rows), nil
}

func (r *GameRepository) Create(ctx context.Context, item game.Game) (game.Game, error) {
	query, args, err := qb.InsertModel("games", newGameWriteModel(item), returningColumns(gameSelectColumns))
	if err != nil {
		return game.Game{}, fmt.Errorf("build insert game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return game.Game{}, fmt.Errorf("insert game: %w", err)
	}

	return row.toDomain(), nil
}

func (r *GameRepository) Update(ctx context.Context, item game.Game) (game.Game, error) {
	query, args, err := qb.UpdateModel("games", newGameWriteModel(item), returningColumns(gameSelectColumns), qb.Eq("id", item.ID))
	if err != nil {
		return game.Game{}, fmt.Errorf("build update game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return game.Game{}, fmt.Errorf("update game: %w", err)
	}

	return row.toDomain(), nil
}

// Delete relies on ON DELETE CASCADE to drop the game's stat lines.
func (r *GameRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.DeleteFrom("games").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete game query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete game: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete game rows affected: %w", err)
	}

	return affected > 0, nil
}

func gamesFromRows(rows []gameTableModel) []game.Game {
	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
