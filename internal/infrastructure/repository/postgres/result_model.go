package postgres

import "time"

type gameResultTableModel struct {
	GameID    int64     `db:"game_id"`
	HomeScore int       `db:"home_score"`
	AwayScore int       `db:"away_score"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type gameResultInsertModel struct {
	GameID    int64 `db:"game_id"`
	HomeScore int   `db:"home_score"`
	AwayScore int   `db:"away_score"`
}

type teamResultInsertModel struct {
	GameID        int64 `db:"game_id"`
	SeasonID      int64 `db:"season_id"`
	TeamID        int64 `db:"team_id"`
	Home          bool  `db:"home"`
	Win           bool  `db:"win"`
	Cover         bool  `db:"cover"`
	PointsScored  int   `db:"points_scored"`
	PointsAllowed int   `db:"points_allowed"`
}

type teamRecordRowModel struct {
	TeamID int64 `db:"team_id"`
	Games  int   `db:"games"`
	Wins   int   `db:"wins"`
	Covers int   `db:"covers"`
}
