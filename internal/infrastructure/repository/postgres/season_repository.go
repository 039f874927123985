package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/season"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByYear(ctx context.Context, year int) (season.Season, bool, error) {
	query, args, err := qb.Select("*").From("seasons").
		Where(qb.Eq("year", year)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build select season query: %w", err)
	}

	var row seasonTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Season{}, false, nil
		}
		return season.Season{}, false, fmt.Errorf("select season by year: %w", err)
	}

	return season.Season{ID: row.ID, Year: row.Year}, true, nil
}

func (r *SeasonRepository) GetWeek(ctx context.Context, seasonID int64, number int) (season.Week, bool, error) {
	query, args, err := qb.Select("*").From("weeks").
		Where(
			qb.Eq("season_id", seasonID),
			qb.Eq("week_number", number),
		).
		ToSQL()
	if err != nil {
		return season.Week{}, false, fmt.Errorf("build select week query: %w", err)
	}

	var row weekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return season.Week{}, false, nil
		}
		return season.Week{}, false, fmt.Errorf("select week: %w", err)
	}

	return mapWeekRow(row), true, nil
}

func (r *SeasonRepository) ListWeeks(ctx context.Context, seasonID int64) ([]season.Week, error) {
	query, args, err := qb.Select("*").From("weeks").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("week_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weeks query: %w", err)
	}

	var rows []weekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weeks: %w", err)
	}

	out := make([]season.Week, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapWeekRow(row))
	}

	return out, nil
}

func (r *SeasonRepository) UpsertSeason(ctx context.Context, item season.Season) (season.Season, error) {
	query, args, err := qb.InsertModel("seasons", seasonInsertModel{Year: item.Year}, `ON CONFLICT (year)
DO UPDATE SET updated_at = NOW()
RETURNING id`)
	if err != nil {
		return season.Season{}, fmt.Errorf("build upsert season query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return season.Season{}, fmt.Errorf("upsert season: %w", err)
	}

	return item, nil
}

func (r *SeasonRepository) UpsertWeek(ctx context.Context, item season.Week) (season.Week, error) {
	insertModel := weekInsertModel{
		SeasonID:  item.SeasonID,
		Number:    item.Number,
		StartDate: item.StartDate,
		EndDate:   item.EndDate,
	}
	query, args, err := qb.InsertModel("weeks", insertModel, `ON CONFLICT (season_id, week_number)
DO UPDATE SET
    start_date = EXCLUDED.start_date,
    end_date = EXCLUDED.end_date,
    updated_at = NOW()
RETURNING id`)
	if err != nil {
		return season.Week{}, fmt.Errorf("build upsert week query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&item.ID); err != nil {
		return season.Week{}, fmt.Errorf("upsert week: %w", err)
	}

	return item, nil
}

func mapWeekRow(row weekTableModel) season.Week {
	return season.Week{
		ID:        row.ID,
		SeasonID:  row.SeasonID,
		Number:    row.Number,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
	}
}
