package game

import (
	"context"
	"time"
)

// Repository describes game persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, gameID int64) (Game, bool, error)
	ListByIDs(ctx context.Context, gameIDs []int64) ([]Game, error)
	ListByWeek(ctx context.Context, weekID int64) ([]Game, error)
	FindByMatchup(ctx context.Context, seasonID, homeTeamID, awayTeamID int64, startDate time.Time) (Game, bool, error)
	Upsert(ctx context.Context, item Game) (Game, error)
}

// MatchupRepository serves the joined week view. Only games carrying a
// spread from the requested bookmaker are returned.
type MatchupRepository interface {
	ListMatchups(ctx context.Context, weekID int64, bookmaker string) ([]MatchupRow, error)
}

// ResultRepository persists final scores and the per-team rows derived from them.
type ResultRepository interface {
	GetResult(ctx context.Context, gameID int64) (Result, bool, error)
	UpsertResult(ctx context.Context, item Result) error
	ReplaceTeamResults(ctx context.Context, items []TeamResult) error
	ListTeamRecords(ctx context.Context, seasonID int64) ([]TeamRecord, error)
}
