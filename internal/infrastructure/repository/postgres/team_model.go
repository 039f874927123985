package postgres

import "time"

type teamTableModel struct {
	ID             int64     `db:"id"`
	Name           string    `db:"name"`
	City           string    `db:"city"`
	Abbreviation   string    `db:"abbreviation"`
	Thumbnail      string    `db:"thumbnail"`
	PrimaryColor   string    `db:"primary_color"`
	SecondaryColor string    `db:"secondary_color"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	Name           string `db:"name"`
	City           string `db:"city"`
	Abbreviation   string `db:"abbreviation"`
	Thumbnail      string `db:"thumbnail"`
	PrimaryColor   string `db:"primary_color"`
	SecondaryColor string `db:"secondary_color"`
}
