package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/peaks-baseball/internal/domain/playerstats"
	"github.com/riskibarqy/peaks-baseball/internal/domain/statline"
	qb "github.com/riskibarqy/peaks-baseball/internal/platform/querybuilder"
)

const (
	statsTable                = "player_game_stats"
	statsPlayerGameConstraint = "player_game_stats_player_id_game_id_key"
	statsJoinGames            = "player_game_stats s JOIN games g ON g.id = s.game_id"
)

type StatRepository struct {
	db *sqlx.DB
}

var statSelectColumns = append(append([]string{"id", "player_id", "game_id"}, statLineColumns...), "created_at", "updated_at")

func NewStatRepository(db *sqlx.DB) *StatRepository {
	return &StatRepository{db: db}
}

func (r *StatRepository) List(ctx context.Context, filter playerstats.Filter) ([]playerstats.Stat, error) {
	b := qb.Select(prefixColumns("s", statSelectColumns)...).From(statsJoinGames)
	if filter.PlayerID > 0 {
		b.Where(qb.Eq("s.player_id", filter.PlayerID))
	}
	if filter.GameID > 0 {
		b.Where(qb.Eq("s.game_id", filter.GameID))
	}
	if filter.Season > 0 {
		b.Where(qb.Eq("g.season", filter.Season))
	}
	query, args, err := b.OrderBy("g.game_date DESC", "s.id DESC").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stats query: %w", err)
	}

	var rows []statTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stats: %w", err)
	}

	out := make([]playerstats.Stat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *StatRepository) GetByID(ctx context.Context, id int64) (playerstats.Stat, bool, error) {
	query, args, err := qb.Select(statSelectColumns...).From(statsTable).
		Where(qb.Eq("id", id)).
		Limit(1).
		ToSQL()
	if err != nil {
		return playerstats.Stat{}, false, fmt.Errorf("build select stat by id query: %w", err)
	}

	var row statTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return playerstats.Stat{}, false, nil
		}
		return playerstats.Stat{}, false, fmt.Errorf("select stat by id: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *StatRepository) Create(ctx context.Context, item playerstats.Stat) (playerstats.Stat, error) {
	query, args, err := qb.InsertModel(statsTable, newStatWriteModel(item), returningColumns(statSelectColumns))
	if err != nil {
		return playerstats.Stat{}, fmt.Errorf("build insert stat query: %w", err)
	}

	var row statTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return playerstats.Stat{}, fmt.Errorf("insert stat: %w", translateStatWriteErr(err))
	}

	return row.toDomain(), nil
}

func (r *StatRepository) Update(ctx context.Context, item playerstats.Stat) (playerstats.Stat, error) {
	query, args, err := qb.UpdateModel(statsTable, newStatWriteModel(item), returningColumns(statSelectColumns), qb.Eq("id", item.ID))
	if err != nil {
		return playerstats.Stat{}, fmt.Errorf("build update stat query: %w", err)
	}

	var row statTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return playerstats.Stat{}, fmt.Errorf("update stat: %w", translateStatWriteErr(err))
	}

	return row.toDomain(), nil
}

func (r *StatRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query, args, err := qb.DeleteFrom(statsTable).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return false, fmt.Errorf("build delete stat query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete stat: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete stat rows affected: %w", err)
	}

	return affected > 0, nil
}

// ListTotals sums the stored columns per player, including total_bases,
// then snaps the innings sum to tenths.
func (r *StatRepository) ListTotals(ctx context.Context, filter playerstats.TotalsFilter) ([]playerstats.Totals, error) {
	query, args, err := buildTotalsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build select stat totals query: %w", err)
	}

	var rows []statTotalsModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stat totals: %w", err)
	}

	out := make([]playerstats.Totals, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerstats.Totals{
			PlayerID:    row.PlayerID,
			GamesPlayed: row.GamesPlayed,
			Line:        statline.Sum(row.statLineModel.toDomain()),
		})
	}
	return out, nil
}

func buildTotalsQuery(filter playerstats.TotalsFilter) (string, []any, error) {
	cols := make([]string, 0, len(statLineColumns)+2)
	cols = append(cols, "s.player_id", "COUNT(*) AS games_played")
	for _, col := range statLineColumns {
		cols = append(cols, fmt.Sprintf("COALESCE(SUM(s.%s), 0) AS %s", col, col))
	}

	b := qb.Select(cols...).From(statsJoinGames)
	if filter.Season > 0 {
		b.Where(qb.Eq("g.season", filter.Season))
	}
	if len(filter.PlayerIDs) > 0 {
		b.Where(qb.In("s.player_id", int64SliceToAny(filter.PlayerIDs)))
	}
	return b.GroupBy("s.player_id").OrderBy("s.player_id").ToSQL()
}

func newStatWriteModel(item playerstats.Stat) statWriteModel {
	return statWriteModel{
		PlayerID:      item.PlayerID,
		GameID:        item.GameID,
		statLineModel: newStatLineModel(item.Line),
	}
}

func translateStatWriteErr(err error) error {
	return translateRangeErr(err, playerstats.ErrValueOutOfRange, statsPlayerGameConstraint, playerstats.ErrDuplicateLine)
}
