package postgres

import "time"

type spreadTableModel struct {
	ID        int64     `db:"id"`
	GameID    int64     `db:"game_id"`
	TeamID    int64     `db:"team_id"`
	Bookmaker string    `db:"bookmaker"`
	Value     float64   `db:"value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type spreadInsertModel struct {
	GameID    int64   `db:"game_id"`
	TeamID    int64   `db:"team_id"`
	Bookmaker string  `db:"bookmaker"`
	Value     float64 `db:"value"`
}
