package odds

import "context"

// Repository describes spread persistence needs from use cases.
type Repository interface {
	GetForGameTeam(ctx context.Context, gameID, teamID int64, bookmaker string) (Spread, bool, error)
	ListByGame(ctx context.Context, gameID int64) ([]Spread, error)
	Upsert(ctx context.Context, item Spread) (Spread, error)
}
