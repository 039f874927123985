package postgres

import "time"

type seasonTableModel struct {
	ID        int64     `db:"id"`
	Year      int       `db:"year"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type seasonInsertModel struct {
	Year int `db:"year"`
}

type weekTableModel struct {
	ID        int64     `db:"id"`
	SeasonID  int64     `db:"season_id"`
	Number    int       `db:"week_number"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type weekInsertModel struct {
	SeasonID  int64     `db:"season_id"`
	Number    int       `db:"week_number"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
}
