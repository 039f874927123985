package postgres

import "time"

type gameTableModel struct {
	ID         int64     `db:"id"`
	SeasonID   int64     `db:"season_id"`
	WeekID     int64     `db:"week_id"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	StartDate  time.Time `db:"start_date"`
	StartTime  string    `db:"start_time"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type gameInsertModel struct {
	SeasonID   int64     `db:"season_id"`
	WeekID     int64     `db:"week_id"`
	HomeTeamID int64     `db:"home_team_id"`
	AwayTeamID int64     `db:"away_team_id"`
	StartDate  time.Time `db:"start_date"`
	StartTime  string    `db:"start_time"`
}
