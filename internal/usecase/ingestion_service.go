package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/scoring"
	"github.com/riskibarqy/pickem-league/internal/domain/season"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
)

// ScheduleGameInput is one game row of a schedule upload.
type ScheduleGameInput struct {
	HomeTeamID int64
	AwayTeamID int64
	StartDate  time.Time
	StartTime  string
}

// ScheduleInput is one week's schedule upload.
type ScheduleInput struct {
	Year       int
	WeekNumber int
	WeekStart  time.Time
	WeekEnd    time.Time
	Games      []ScheduleGameInput
}

type IngestionService struct {
	seasonRepo         season.Repository
	teamRepo           team.Repository
	gameRepo           game.Repository
	resultRepo         game.ResultRepository
	oddsRepo           odds.Repository
	pickRepo           pick.Repository
	referenceBookmaker string
}

func NewIngestionService(
	seasonRepo season.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	resultRepo game.ResultRepository,
	oddsRepo odds.Repository,
	pickRepo pick.Repository,
	referenceBookmaker string,
) *IngestionService {
	return &IngestionService{
		seasonRepo:         seasonRepo,
		teamRepo:           teamRepo,
		gameRepo:           gameRepo,
		resultRepo:         resultRepo,
		oddsRepo:           oddsRepo,
		pickRepo:           pickRepo,
		referenceBookmaker: referenceBookmaker,
	}
}

func (s *IngestionService) UpsertTeams(ctx context.Context, items []team.Team) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.UpsertTeams")
	defer span.End()

	if len(items) == 0 {
		return fmt.Errorf("%w: teams are required", ErrInvalidInput)
	}
	for idx := range items {
		items[idx].Name = strings.TrimSpace(items[idx].Name)
		items[idx].City = strings.TrimSpace(items[idx].City)
		items[idx].Abbreviation = strings.TrimSpace(items[idx].Abbreviation)
		if items[idx].Name == "" || items[idx].City == "" {
			return fmt.Errorf("%w: team name and city are required", ErrInvalidInput)
		}
	}

	for _, item := range items {
		if _, err := s.teamRepo.Upsert(ctx, item); err != nil {
			return fmt.Errorf("upsert team: %w", err)
		}
	}
	return nil
}

// UpsertSchedule stores one week's schedule: the season and week rows
// plus every game, keyed on (season, week, home, away) so repeated
// uploads converge on the same rows.
func (s *IngestionService) UpsertSchedule(ctx context.Context, input ScheduleInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.UpsertSchedule")
	defer span.End()

	if input.Year <= 0 {
		return fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if input.WeekNumber <= 0 {
		return fmt.Errorf("%w: week number is required", ErrInvalidInput)
	}
	if len(input.Games) == 0 {
		return fmt.Errorf("%w: games are required", ErrInvalidInput)
	}

	seasonRow, exists, err := s.seasonRepo.GetByYear(ctx, input.Year)
	if err != nil {
		return fmt.Errorf("get season: %w", err)
	}
	if !exists {
		seasonRow, err = s.seasonRepo.UpsertSeason(ctx, season.Season{Year: input.Year})
		if err != nil {
			return fmt.Errorf("upsert season: %w", err)
		}
	}

	week, err := s.seasonRepo.UpsertWeek(ctx, season.Week{
		SeasonID:  seasonRow.ID,
		Number:    input.WeekNumber,
		StartDate: input.WeekStart,
		EndDate:   input.WeekEnd,
	})
	if err != nil {
		return fmt.Errorf("upsert week: %w", err)
	}

	for _, item := range input.Games {
		row := game.Game{
			SeasonID:   seasonRow.ID,
			WeekID:     week.ID,
			HomeTeamID: item.HomeTeamID,
			AwayTeamID: item.AwayTeamID,
			StartDate:  item.StartDate,
			StartTime:  strings.TrimSpace(item.StartTime),
		}
		if err := row.Validate(); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		if _, err := s.gameRepo.Upsert(ctx, row); err != nil {
			return fmt.Errorf("upsert game: %w", err)
		}
	}

	return nil
}

// RecordResult stores a final score, rewrites both team result rows and
// locks every pick on the game. The cover flag on each side is graded
// against the reference bookmaker's stored spread; a push does not
// count as a cover.
func (s *IngestionService) RecordResult(ctx context.Context, gameID int64, homeScore, awayScore int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.RecordResult")
	defer span.End()

	result := game.Result{GameID: gameID, HomeScore: homeScore, AwayScore: awayScore}
	if err := result.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	gameRow, exists, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return fmt.Errorf("get game: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: game=%d", ErrNotFound, gameID)
	}

	if err := s.resultRepo.UpsertResult(ctx, result); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}

	teamResults := []game.TeamResult{
		s.buildTeamResult(ctx, gameRow, gameRow.HomeTeamID, true, homeScore, awayScore),
		s.buildTeamResult(ctx, gameRow, gameRow.AwayTeamID, false, awayScore, homeScore),
	}
	if err := s.resultRepo.ReplaceTeamResults(ctx, teamResults); err != nil {
		return fmt.Errorf("replace team results: %w", err)
	}

	if err := s.pickRepo.LockByGame(ctx, gameID); err != nil {
		return fmt.Errorf("lock picks: %w", err)
	}

	return nil
}

func (s *IngestionService) buildTeamResult(ctx context.Context, gameRow game.Game, teamID int64, home bool, scored, allowed int) game.TeamResult {
	cover := false
	spread, exists, err := s.oddsRepo.GetForGameTeam(ctx, gameRow.ID, teamID, s.referenceBookmaker)
	if err == nil && exists {
		cover = scoring.Classify(scored, spread.Value, allowed) == scoring.OutcomeCovered
	}

	return game.TeamResult{
		GameID:        gameRow.ID,
		SeasonID:      gameRow.SeasonID,
		TeamID:        teamID,
		Home:          home,
		Win:           scored > allowed,
		Cover:         cover,
		PointsScored:  scored,
		PointsAllowed: allowed,
	}
}
