package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/peaks-baseball/internal/domain/player"
	qb "github.com/riskibarqy/peaks-baseball/internal/platform/querybuilder"
)

const playersJerseyConstraint = "players_jersey_number_key"

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"first_name",
	"last_name",
	"jersey_number",
	"position",
	"bio",
	"height_inches",
	"weight_lbs",
	"birth_date",
	"active",
	"photo_url",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) List(ctx context.Context, filter player.Filter) ([]player.Player, error) {
	b := qb.Select(playerSelectColumns...).From("players")
	if filter.ActiveOnly {
		b.Where(qb.Eq("active", true))
	}
	if filter.Position != "" {
		b.Where(qb.Eq("position", string(filter.Position)))
	}
	query, args, err := b.OrderBy("jersey_number", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) GetByID(ctx context.Context, id int64) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player by id query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, ids []int64) ([]player.Player, error) {
	if len(ids) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.In("id", int64SliceToAny(ids))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) Create(ctx context.Context, item player.Player) (player.Player, error) {
	query, args, err := qb.InsertModel("players", newPlayerWriteModel(item), returningColumns(playerSelectColumns))
	if err != nil {
		return player.Player{}, fmt.Errorf("build insert player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("insert player: %w", translateWriteErr(err, playersJerseyConstraint, player.ErrDuplicateJersey))
	}

	return row.toDomain(), nil
}

func (r *PlayerRepository) Update(ctx context.Context, item player.Player) (player.Player, error) {
	query, args, err := qb.UpdateModel("players", newPlayerWriteModel(item), returningColumns(playerSelectColumns), qb.Eq("id", item.ID))
	if err != nil {
		return player.Player{}, fmt.Errorf("build update player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", translateWriteErr(err, playersJerseyConstraint, player.ErrDuplicateJersey))
	}

	return row.toDomain(), nil
}

func (r *PlayerRepository) SetActive(ctx context.Context, id int64, active bool) (player.Player, bool, error) {
	query, args, err := qb.Update("players").
		Set("active", active).
		SetRaw("updated_at", "NOW()").
		Where(qb.Eq("id", id)).
		Suffix(returningColumns(playerSelectColumns)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build set player active query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("set player active: %w", err)
	}

	return row.toDomain(), true, nil
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func returningColumns(cols []string) string {
	return "RETURNING " + strings.Join(cols, ", ")
}
