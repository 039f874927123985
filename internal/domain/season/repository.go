package season

import "context"

// Repository describes season and week persistence needs from use cases.
type Repository interface {
	GetByYear(ctx context.Context, year int) (Season, bool, error)
	GetWeek(ctx context.Context, seasonID int64, number int) (Week, bool, error)
	ListWeeks(ctx context.Context, seasonID int64) ([]Week, error)
	UpsertSeason(ctx context.Context, item Season) (Season, error)
	UpsertWeek(ctx context.Context, item Week) (Week, error)
}
