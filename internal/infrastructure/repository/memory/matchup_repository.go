package memory

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
)

// MatchupRepository assembles the joined week view from its sibling
// repositories. Games without a line from the requested bookmaker are
// skipped, matching the SQL inner join.
type MatchupRepository struct {
	seasons *SeasonRepository
	teams   *TeamRepository
	games   *GameRepository
	spreads *SpreadRepository
	results *ResultRepository
}

func NewMatchupRepository(
	seasons *SeasonRepository,
	teams *TeamRepository,
	games *GameRepository,
	spreads *SpreadRepository,
	results *ResultRepository,
) *MatchupRepository {
	return &MatchupRepository{
		seasons: seasons,
		teams:   teams,
		games:   games,
		spreads: spreads,
		results: results,
	}
}

func (r *MatchupRepository) ListMatchups(ctx context.Context, weekID int64, bookmaker string) ([]game.MatchupRow, error) {
	week, ok := r.seasons.weekByID(weekID)
	if !ok {
		return []game.MatchupRow{}, nil
	}

	games, err := r.games.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, err
	}

	rows := make([]game.MatchupRow, 0, len(games))
	for _, gameRow := range games {
		homeSpread, homeOK, _ := r.spreads.GetForGameTeam(ctx, gameRow.ID, gameRow.HomeTeamID, bookmaker)
		awaySpread, awayOK, _ := r.spreads.GetForGameTeam(ctx, gameRow.ID, gameRow.AwayTeamID, bookmaker)
		if !homeOK || !awayOK {
			continue
		}

		home, _, _ := r.teams.GetByID(ctx, gameRow.HomeTeamID)
		away, _, _ := r.teams.GetByID(ctx, gameRow.AwayTeamID)

		row := game.MatchupRow{
			GameID:     gameRow.ID,
			WeekNumber: week.Number,
			StartDate:  gameRow.StartDate,
			StartTime:  gameRow.StartTime,
			Home:       home,
			Away:       away,
			HomeSpread: homeSpread.Value,
			AwaySpread: awaySpread.Value,
		}
		if result, done, _ := r.results.GetResult(ctx, gameRow.ID); done {
			homeScore, awayScore := result.HomeScore, result.AwayScore
			row.HomeScore = &homeScore
			row.AwayScore = &awayScore
		}
		rows = append(rows, row)
	}

	return rows, nil
}
