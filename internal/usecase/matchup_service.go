package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/season"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
)

// MatchupTeam is one side of a matchup with its posted line, season
// records and final score when the game has concluded.
type MatchupTeam struct {
	Team      team.Team
	Spread    float64
	Score     *int
	Wins      int
	Losses    int
	Covers    int
	NotCovers int
}

type Matchup struct {
	GameID     int64
	WeekNumber int
	StartDate  time.Time
	StartTime  string
	Home       MatchupTeam
	Away       MatchupTeam
	Final      bool
}

type MatchupService struct {
	seasonRepo       season.Repository
	matchupRepo      game.MatchupRepository
	resultRepo       game.ResultRepository
	defaultBookmaker string
}

func NewMatchupService(
	seasonRepo season.Repository,
	matchupRepo game.MatchupRepository,
	resultRepo game.ResultRepository,
	defaultBookmaker string,
) *MatchupService {
	return &MatchupService{
		seasonRepo:       seasonRepo,
		matchupRepo:      matchupRepo,
		resultRepo:       resultRepo,
		defaultBookmaker: defaultBookmaker,
	}
}

// ListMatchups returns the week's games that carry a spread from the
// requested bookmaker, ordered as stored. Games without a line from
// that bookmaker are omitted.
func (s *MatchupService) ListMatchups(ctx context.Context, year, weekNumber int, bookmaker string) ([]Matchup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchupService.ListMatchups")
	defer span.End()

	bookmaker = strings.TrimSpace(bookmaker)
	if bookmaker == "" {
		bookmaker = s.defaultBookmaker
	}

	seasonRow, week, err := resolveWeek(ctx, s.seasonRepo, year, weekNumber)
	if err != nil {
		return nil, err
	}

	rows, err := s.matchupRepo.ListMatchups(ctx, week.ID, bookmaker)
	if err != nil {
		return nil, fmt.Errorf("list matchups: %w", err)
	}

	records, err := s.resultRepo.ListTeamRecords(ctx, seasonRow.ID)
	if err != nil {
		return nil, fmt.Errorf("list team records: %w", err)
	}
	recordsByTeam := make(map[int64]game.TeamRecord, len(records))
	for _, record := range records {
		recordsByTeam[record.TeamID] = record
	}

	matchups := make([]Matchup, 0, len(rows))
	for _, row := range rows {
		matchups = append(matchups, Matchup{
			GameID:     row.GameID,
			WeekNumber: row.WeekNumber,
			StartDate:  row.StartDate,
			StartTime:  row.StartTime,
			Home:       buildMatchupTeam(row.Home, row.HomeSpread, row.HomeScore, recordsByTeam),
			Away:       buildMatchupTeam(row.Away, row.AwaySpread, row.AwayScore, recordsByTeam),
			Final:      row.HomeScore != nil && row.AwayScore != nil,
		})
	}

	return matchups, nil
}

func buildMatchupTeam(t team.Team, spread float64, score *int, records map[int64]game.TeamRecord) MatchupTeam {
	record := records[t.ID]
	return MatchupTeam{
		Team:      t,
		Spread:    spread,
		Score:     score,
		Wins:      record.Wins,
		Losses:    record.Games - record.Wins,
		Covers:    record.Covers,
		NotCovers: record.Games - record.Covers,
	}
}

func resolveWeek(ctx context.Context, repo season.Repository, year, weekNumber int) (season.Season, season.Week, error) {
	if year <= 0 {
		return season.Season{}, season.Week{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if weekNumber <= 0 {
		return season.Season{}, season.Week{}, fmt.Errorf("%w: week number is required", ErrInvalidInput)
	}

	seasonRow, exists, err := repo.GetByYear(ctx, year)
	if err != nil {
		return season.Season{}, season.Week{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, season.Week{}, fmt.Errorf("%w: season=%d", ErrNotFound, year)
	}

	week, exists, err := repo.GetWeek(ctx, seasonRow.ID, weekNumber)
	if err != nil {
		return season.Season{}, season.Week{}, fmt.Errorf("get week: %w", err)
	}
	if !exists {
		return season.Season{}, season.Week{}, fmt.Errorf("%w: season=%d week=%d", ErrNotFound, year, weekNumber)
	}

	return seasonRow, week, nil
}
