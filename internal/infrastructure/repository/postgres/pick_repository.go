package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

const pickResultRowColumns = `
    a.username AS username,
    w.week_number AS week_number,
    p.game_id AS game_id,
    p.team_id AS picked_team_id,
    pt.city || ' ' || pt.name AS picked_team_name,
    ot.city || ' ' || ot.name AS opponent_name,
    p.confidence AS confidence,
    p.spread_value AS spread_value,
    CASE WHEN p.team_id = g.home_team_id THEN gr.home_score ELSE gr.away_score END AS picked_score,
    CASE WHEN p.team_id = g.home_team_id THEN gr.away_score ELSE gr.home_score END AS opponent_score`

const pickResultRowJoins = `
FROM picks p
JOIN accounts a ON a.id = p.account_id
JOIN games g ON g.id = p.game_id
JOIN weeks w ON w.id = g.week_id
JOIN teams pt ON pt.id = p.team_id
JOIN teams ot ON ot.id = CASE WHEN p.team_id = g.home_team_id THEN g.away_team_id ELSE g.home_team_id END
LEFT JOIN game_results gr ON gr.game_id = p.game_id`

const listWeekResultRowsQuery = `SELECT` + pickResultRowColumns + pickResultRowJoins + `
WHERE g.season_id = $1 AND w.week_number = $2
ORDER BY w.week_number, LOWER(a.username), p.game_id`

const listSeasonResultRowsQuery = `SELECT` + pickResultRowColumns + pickResultRowJoins + `
WHERE g.season_id = $1 AND ($2 <= 0 OR w.week_number <= $2)
ORDER BY w.week_number, LOWER(a.username), p.game_id`

const lockWeekPicksQuery = `SELECT p.*
FROM picks p
JOIN games g ON g.id = p.game_id
WHERE p.account_id = $1 AND g.week_id = $2
ORDER BY p.game_id
FOR UPDATE OF p`

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func (r *PickRepository) ListForWeek(ctx context.Context, accountID, weekID int64) ([]pick.Pick, error) {
	query, args, err := qb.Select("p.*").From("picks p").
		Join("games g", "g.id = p.game_id").
		Where(
			qb.Eq("p.account_id", accountID),
			qb.Eq("g.week_id", weekID),
		).
		OrderBy("p.game_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select week picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select picks by week: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPickRow(row))
	}

	return out, nil
}

// ReplaceForWeek reconciles one account's sheet for one week inside a
// transaction. Current rows are locked with FOR UPDATE so concurrent
// submits for the same sheet serialize instead of interleaving.
func (r *PickRepository) ReplaceForWeek(ctx context.Context, accountID, weekID int64, items []pick.Pick) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace picks tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing []pickTableModel
	if err := tx.SelectContext(ctx, &existing, lockWeekPicksQuery, accountID, weekID); err != nil {
		return fmt.Errorf("lock current picks: %w", err)
	}

	incoming := make(map[int64]pick.Pick, len(items))
	for _, item := range items {
		incoming[item.GameID] = item
	}

	var deleteIDs []int64
	skipGameIDs := make(map[int64]struct{})
	for _, row := range existing {
		item, ok := incoming[row.GameID]
		if !ok {
			if row.Status == string(pick.StatusLocked) {
				return fmt.Errorf("drop pick for game %d: %w", row.GameID, pick.ErrLocked)
			}
			deleteIDs = append(deleteIDs, row.ID)
			continue
		}
		if row.Status == string(pick.StatusLocked) {
			if item.TeamID != row.TeamID || item.Confidence != row.Confidence {
				return fmt.Errorf("change pick for game %d: %w", row.GameID, pick.ErrLocked)
			}
			skipGameIDs[row.GameID] = struct{}{}
		}
	}

	if len(deleteIDs) > 0 {
		const deleteQuery = `DELETE FROM picks WHERE id = ANY($1)`
		if _, err := tx.ExecContext(ctx, deleteQuery, pq.Array(deleteIDs)); err != nil {
			return fmt.Errorf("delete dropped picks: %w", err)
		}
	}

	for _, item := range items {
		if _, ok := skipGameIDs[item.GameID]; ok {
			continue
		}
		insertModel := pickInsertModel{
			AccountID:   accountID,
			GameID:      item.GameID,
			TeamID:      item.TeamID,
			Confidence:  item.Confidence,
			SpreadValue: item.SpreadValue,
			Status:      string(item.Status),
		}
		query, args, err := qb.InsertModel("picks", insertModel, `ON CONFLICT (account_id, game_id)
DO UPDATE SET
    team_id = EXCLUDED.team_id,
    confidence = EXCLUDED.confidence,
    spread_value = EXCLUDED.spread_value,
    status = EXCLUDED.status,
    updated_at = NOW()`)
		if err != nil {
			return fmt.Errorf("build upsert pick query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert pick: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace picks tx: %w", err)
	}

	return nil
}

func (r *PickRepository) LockByGame(ctx context.Context, gameID int64) error {
	query, args, err := qb.Update("picks").
		Set("status", string(pick.StatusLocked)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("game_id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock picks query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("lock picks by game: %w", err)
	}

	return nil
}

func (r *PickRepository) ListWeekResultRows(ctx context.Context, seasonID int64, weekNumber int) ([]pick.ResultRow, error) {
	var rows []pickResultRowModel
	if err := r.db.SelectContext(ctx, &rows, listWeekResultRowsQuery, seasonID, weekNumber); err != nil {
		return nil, fmt.Errorf("select week result rows: %w", err)
	}

	return mapPickResultRows(rows), nil
}

func (r *PickRepository) ListSeasonResultRows(ctx context.Context, seasonID int64, throughWeek int) ([]pick.ResultRow, error) {
	var rows []pickResultRowModel
	if err := r.db.SelectContext(ctx, &rows, listSeasonResultRowsQuery, seasonID, throughWeek); err != nil {
		return nil, fmt.Errorf("select season result rows: %w", err)
	}

	return mapPickResultRows(rows), nil
}

func mapPickRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		ID:          row.ID,
		AccountID:   row.AccountID,
		GameID:      row.GameID,
		TeamID:      row.TeamID,
		Confidence:  row.Confidence,
		SpreadValue: row.SpreadValue,
		Status:      pick.Status(row.Status),
	}
}

func mapPickResultRows(rows []pickResultRowModel) []pick.ResultRow {
	out := make([]pick.ResultRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, pick.ResultRow{
			Username:       row.Username,
			WeekNumber:     row.WeekNumber,
			GameID:         row.GameID,
			PickedTeamID:   row.PickedTeamID,
			PickedTeamName: row.PickedTeamName,
			OpponentName:   row.OpponentName,
			Confidence:     row.Confidence,
			SpreadValue:    row.SpreadValue,
			PickedScore:    row.PickedScore,
			OpponentScore:  row.OpponentScore,
		})
	}
	return out
}
