package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/peaks-baseball/internal/domain/highlight"
	qb "github.com/riskibarqy/peaks-baseball/internal/platform/querybuilder"
)

type HighlightRepository struct {
	db *sqlx.DB
}

var highlightSelectColumns = []string{
	"id",
	"player_id",
	"title",
	"description",
	"video_url",
	"thumbnail_url",
	"duration_seconds",
	"highlight_date",
	"created_at",
	"updated_at",
}

func NewHighlightRepository(db *sqlx.DB) *HighlightRepository {
	return &HighlightRepository{db: db}
}

func (r *HighlightRepository) List(ctx context.Context, filter highlight.Filter) ([]highlight.Highlight, error) {
	b := qb.Select(highlightSelectColumns...).From("highlights")
	if filter.PlayerID > 0 {
		b.Where(qb.Eq("player_id", filter.PlayerID))
	}
	query, args, err := b.OrderBy("created_at DESC", "id DESC").Limit(filter.Limit).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select highlights query: %w", err)
	}

	var rows []highlightTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select highlights: %w", err)
	}

	out := make([]highlight.Highlight, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *HighlightRepository) GetByID(ctx context.Context, id int64) (highlight.Highlight, bool, error) {
	query, args, err := qb.Select(highlightSelectColumns...).From("highlights").
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return highlight.Highlight{}, false, fmt.Errorf("build select highlight by id query: %w", err)
	}

	var row highlightTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return highlight.Highlight{}, false, nil
		}
		return highlight.Highlight{}, false, fmt.Errorf("select highlight by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *HighlightRepository) Create(ctx context.Context, item highlight.Highlight) (highlight.Highlight, error) {
	query, args, err := qb.InsertModel("highlights", newHighlightWriteModel(item), returningColumns(highlightSelectColumns))
	if err != nil {
		return highlight.Highlight{}, fmt.Errorf("build insert highlight query: %w", err)
	}

	var row highlightTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return highlight.Highlight{}, fmt.Errorf("insert highlight: %w", translateWriteErr(err, "", nil))
	}

	return row.toDomain(), nil
}

func (r *HighlightRepository) Update(ctx context.Context, item highlight.Highlight) (highlight.Highlight, error) {
	query, args, err := qb.UpdateModel("highlights", newHighlightWriteModel(item), returningColumns(highlightSelectColumns), qb.Eq("id", item.ID))
	if err != nil {
		return highlight.Highlight{}, fmt.Errorf("build update highlight query: %w", err)
	}

	var row highlightTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return highlight.Highlight{}, fmt.Errorf("update highlight: %w", translateWriteErr(err, "", nil))
	}

	return row.toDomain(), nil
}

func (r *HighlightRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.DeleteFrom("highlights").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete highlight query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete highlight: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete highlight rows affected: %w", err)
	}

	return affected > 0, nil
}
