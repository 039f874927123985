package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/pickem-league/internal/domain/game"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) GetResult(ctx context.Context, gameID int64) (game.Result, bool, error) {
	query, args, err := qb.Select("*").From("game_results").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return game.Result{}, false, fmt.Errorf("build select result query: %w", err)
	}

	var row gameResultTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Result{}, false, nil
		}
		return game.Result{}, false, fmt.Errorf("select game result: %w", err)
	}

	return game.Result{GameID: row.GameID, HomeScore: row.HomeScore, AwayScore: row.AwayScore}, true, nil
}

func (r *ResultRepository) UpsertResult(ctx context.Context, item game.Result) error {
	insertModel := gameResultInsertModel{
		GameID:    item.GameID,
		HomeScore: item.HomeScore,
		AwayScore: item.AwayScore,
	}
	query, args, err := qb.InsertModel("game_results", insertModel, `ON CONFLICT (game_id)
DO UPDATE SET
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert result query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert game result: %w", err)
	}

	return nil
}

// ReplaceTeamResults rewrites the per-team rows of the games covered by
// items inside one transaction, so regrading a game never leaves a
// half-updated pair behind.
func (r *ResultRepository) ReplaceTeamResults(ctx context.Context, items []game.TeamResult) error {
	if len(items) == 0 {
		return nil
	}

	gameIDs := make([]int64, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.GameID]; ok {
			continue
		}
		seen[item.GameID] = struct{}{}
		gameIDs = append(gameIDs, item.GameID)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace team results tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const deleteQuery = `DELETE FROM team_results WHERE game_id = ANY($1)`
	if _, err := tx.ExecContext(ctx, deleteQuery, pq.Array(gameIDs)); err != nil {
		return fmt.Errorf("delete team results: %w", err)
	}

	for _, item := range items {
		insertModel := teamResultInsertModel{
			GameID:        item.GameID,
			SeasonID:      item.SeasonID,
			TeamID:        item.TeamID,
			Home:          item.Home,
			Win:           item.Win,
			Cover:         item.Cover,
			PointsScored:  item.PointsScored,
			PointsAllowed: item.PointsAllowed,
		}
		query, args, err := qb.InsertModel("team_results", insertModel, "")
		if err != nil {
			return fmt.Errorf("build insert team result query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert team result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace team results tx: %w", err)
	}

	return nil
}

func (r *ResultRepository) ListTeamRecords(ctx context.Context, seasonID int64) ([]game.TeamRecord, error) {
	query, args, err := qb.Select(
		"team_id",
		"COUNT(*) AS games",
		"COUNT(*) FILTER (WHERE win) AS wins",
		"COUNT(*) FILTER (WHERE cover) AS covers",
	).
		From("team_results").
		Where(qb.Eq("season_id", seasonID)).
		GroupBy("team_id").
		OrderBy("team_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team records query: %w", err)
	}

	var rows []teamRecordRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team records: %w", err)
	}

	out := make([]game.TeamRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, game.TeamRecord{
			TeamID: row.TeamID,
			Games:  row.Games,
			Wins:   row.Wins,
			Covers: row.Covers,
		})
	}

	return out, nil
}
