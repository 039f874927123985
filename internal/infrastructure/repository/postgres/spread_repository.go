package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type SpreadRepository struct {
	db *sqlx.DB
}

func NewSpreadRepository(db *sqlx.DB) *SpreadRepository {
	return &SpreadRepository{db: db}
}

func (r *SpreadRepository) GetForGameTeam(ctx context.Context, gameID, teamID int64, bookmaker string) (odds.Spread, bool, error) {
	query, args, err := qb.Select("*").From("spreads").
		Where(
			qb.Eq("game_id", gameID),
			qb.Eq("team_id", teamID),
			qb.Expr("LOWER(bookmaker) = LOWER(?)", bookmaker),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return odds.Spread{}, false, fmt.Errorf("build select spread query: %w", err)
	}

	var row spreadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return odds.Spread{}, false, nil
		}
		return odds.Spread{}, false, fmt.Errorf("select spread: %w", err)
	}

	return mapSpreadRow(row), true, nil
}

func (r *SpreadRepository) ListByGame(ctx context.Context, gameID int64) ([]odds.Spread, error) {
	query, args, err := qb.Select("*").From("spreads").
		Where(qb.Eq("game_id", gameID)).
		OrderBy("bookmaker", "team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select game spreads query: %w", err)
	}

	var rows []spreadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select spreads by game: %w", err)
	}

	out := make([]odds.Spread, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapSpreadRow(row))
	}

	return out, nil
}

func (r *SpreadRepository) Upsert(ctx context.Context, item odds.Spread) (odds.Spread, error) {
	insertModel := spreadInsertModel{
		GameID:    item.GameID,
		TeamID:    item.TeamID,
		Bookmaker: item.Bookmaker,
		Value:     item.Value,
	}
	query, args, err := qb.InsertModel("spreads", insertModel, `ON CONFLICT (game_id, team_id, bookmaker)
DO UPDATE SET
    value = EXCLUDED.value,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return odds.Spread{}, fmt.Errorf("build upsert spread query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return odds.Spread{}, fmt.Errorf("upsert spread: %w", err)
	}

	return item, nil
}

func mapSpreadRow(row spreadTableModel) odds.Spread {
	return odds.Spread{
		ID:        row.ID,
		GameID:    row.GameID,
		TeamID:    row.TeamID,
		Bookmaker: row.Bookmaker,
		Value:     row.Value,
	}
}
