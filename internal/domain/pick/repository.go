package pick

import "context"

// ResultRow is one scored-pick join row: a pick together with the names
// and final scores needed to grade it. Scores are nil while the game is
// still in progress or unplayed.
type ResultRow struct {
	Username       string
	WeekNumber     int
	GameID         int64
	PickedTeamID   int64
	PickedTeamName string
	OpponentName   string
	Confidence     int
	SpreadValue    float64
	PickedScore    *int
	OpponentScore  *int
}

// Repository describes pick persistence needs from use cases.
type Repository interface {
	ListForWeek(ctx context.Context, accountID, weekID int64) ([]Pick, error)
	// ReplaceForWeek atomically reconciles the account's sheet for one week:
	// existing picks absent from items are deleted, then every item is
	// inserted or updated on its (account, game) key. A batch that would
	// delete or alter a locked pick fails whole with ErrLocked; an item
	// identical to its locked row is kept as is.
	ReplaceForWeek(ctx context.Context, accountID, weekID int64, items []Pick) error
	LockByGame(ctx context.Context, gameID int64) error
	ListWeekResultRows(ctx context.Context, seasonID int64, weekNumber int) ([]ResultRow, error)
	ListSeasonResultRows(ctx context.Context, seasonID int64, throughWeek int) ([]ResultRow, error)
}
