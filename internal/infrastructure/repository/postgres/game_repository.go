package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/game"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID int64) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("id", gameID)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by id: %w", err)
	}

	return mapGameRow(row), true, nil
}

func (r *GameRepository) ListByIDs(ctx context.Context, gameIDs []int64) ([]game.Game, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(gameIDs))
	for _, id := range gameIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("games").
		Where(qb.In("id", values)).
		OrderBy("start_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by ids: %w", err)
	}

	return mapGameRows(rows), nil
}

func (r *GameRepository) ListByWeek(ctx context.Context, weekID int64) ([]game.Game, error) {
	query, args, err := qb.Select("*").From("games").
		Where(qb.Eq("week_id", weekID)).
		OrderBy("start_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select week games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games by week: %w", err)
	}

	return mapGameRows(rows), nil
}

func (r *GameRepository) FindByMatchup(ctx context.Context, seasonID, homeTeamID, awayTeamID int64, startDate time.Time) (game.Game, bool, error) {
	query, args, err := qb.Select("*").From("games").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("home_team_id", homeTeamID),
			qb.Eq("away_team_id", awayTeamID),
			qb.Expr("start_date::date = ?::date", startDate),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build select matchup query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("select game by matchup: %w", err)
	}

	return mapGameRow(row), true, nil
}

func (r *GameRepository) Upsert(ctx context.Context, item game.Game) (game.Game, error) {
	insertModel := gameInsertModel{
		SeasonID:   item.SeasonID,
		WeekID:     item.WeekID,
		HomeTeamID: item.HomeTeamID,
		AwayTeamID: item.AwayTeamID,
		StartDate:  item.StartDate,
		StartTime:  item.StartTime,
	}
	query, args, err := qb.InsertModel("games", insertModel, `ON CONFLICT (season_id, week_id, home_team_id, away_team_id)
DO UPDATE SET
    start_date = EXCLUDED.start_date,
    start_time = EXCLUDED.start_time,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return game.Game{}, fmt.Errorf("build upsert game query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return game.Game{}, fmt.Errorf("upsert game: %w", err)
	}

	return item, nil
}

func mapGameRow(row gameTableModel) game.Game {
	return game.Game{
		ID:         row.ID,
		SeasonID:   row.SeasonID,
		WeekID:     row.WeekID,
		HomeTeamID: row.HomeTeamID,
		AwayTeamID: row.AwayTeamID,
		StartDate:  row.StartDate,
		StartTime:  row.StartTime,
	}
}

func mapGameRows(rows []gameTableModel) []game.Game {
	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapGameRow(row))
	}
	return out
}
