package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Team, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
	GetByFullName(ctx context.Context, city, name string) (Team, bool, error)
	Upsert(ctx context.Context, item Team) (Team, error)
}
