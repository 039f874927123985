package postgres

import "time"

type pickTableModel struct {
	ID          int64     `db:"id"`
	AccountID   int64     `db:"account_id"`
	GameID      int64     `db:"game_id"`
	TeamID      int64     `db:"team_id"`
	Confidence  int       `db:"confidence"`
	SpreadValue float64   `db:"spread_value"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type pickInsertModel struct {
	AccountID   int64   `db:"account_id"`
	GameID      int64   `db:"game_id"`
	TeamID      int64   `db:"team_id"`
	Confidence  int     `db:"confidence"`
	SpreadValue float64 `db:"spread_value"`
	Status      string  `db:"status"`
}

type pickResultRowModel struct {
	Username       string  `db:"username"`
	WeekNumber     int     `db:"week_number"`
	GameID         int64   `db:"game_id"`
	PickedTeamID   int64   `db:"picked_team_id"`
	PickedTeamName string  `db:"picked_team_name"`
	OpponentName   string  `db:"opponent_name"`
	Confidence     int     `db:"confidence"`
	SpreadValue    float64 `db:"spread_value"`
	PickedScore    *int    `db:"picked_score"`
	OpponentScore  *int    `db:"opponent_score"`
}
