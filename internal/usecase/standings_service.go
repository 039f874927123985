package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/scoring"
	"github.com/riskibarqy/pickem-league/internal/domain/season"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

const defaultHistoryWorkers = 10

// StandingRow is one user's cumulative line in the season standings.
type StandingRow struct {
	Rank     int
	Username string
	Points   float64
	Correct  int
	Total    int
	Pct      float64
}

// UserStandingsHistory carries one user's week-by-week standings series.
// All slices are index-aligned and only hold entries for weeks where the
// user had scored picks.
type UserStandingsHistory struct {
	Username string
	Weeks    []int
	Ranks    []int
	Scores   []float64
	Pcts     []float64
}

type StandingsService struct {
	seasonRepo     season.Repository
	pickRepo       pick.Repository
	logger         *logging.Logger
	historyWorkers int
}

func NewStandingsService(
	seasonRepo season.Repository,
	pickRepo pick.Repository,
	logger *logging.Logger,
	historyWorkers int,
) *StandingsService {
	if historyWorkers <= 0 {
		historyWorkers = defaultHistoryWorkers
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &StandingsService{
		seasonRepo:     seasonRepo,
		pickRepo:       pickRepo,
		logger:         logger,
		historyWorkers: historyWorkers,
	}
}

// Standings returns cumulative season standings over weeks up to and
// including throughWeek. throughWeek 0 means the whole season.
func (s *StandingsService) Standings(ctx context.Context, year, throughWeek int) ([]StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Standings")
	defer span.End()

	seasonRow, err := s.resolveSeason(ctx, year, throughWeek)
	if err != nil {
		return nil, err
	}

	return s.computeStandings(ctx, seasonRow.ID, throughWeek)
}

// StandingsHistory recomputes standings once per week on a bounded
// worker pool and folds the snapshots into per-user series. A week that
// fails to compute logs a warning and contributes nothing.
func (s *StandingsService) StandingsHistory(ctx context.Context, year, throughWeek int) ([]UserStandingsHistory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.StandingsHistory")
	defer span.End()

	seasonRow, err := s.resolveSeason(ctx, year, throughWeek)
	if err != nil {
		return nil, err
	}

	lastWeek := throughWeek
	if lastWeek <= 0 {
		weeks, err := s.seasonRepo.ListWeeks(ctx, seasonRow.ID)
		if err != nil {
			return nil, fmt.Errorf("list weeks: %w", err)
		}
		for _, week := range weeks {
			if week.Number > lastWeek {
				lastWeek = week.Number
			}
		}
	}
	if lastWeek == 0 {
		return []UserStandingsHistory{}, nil
	}

	type weekStandings struct {
		week int
		rows []StandingRow
	}

	snapshots := make(chan weekStandings, lastWeek)

	pool, err := ants.NewPool(s.historyWorkers)
	if err != nil {
		return nil, fmt.Errorf("create standings history pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for weekNumber := 1; weekNumber <= lastWeek; weekNumber++ {
		weekNumber := weekNumber
		workers.Add(1)
		submitErr := pool.Submit(func() {
			defer workers.Done()

			rows, err := s.computeStandings(ctx, seasonRow.ID, weekNumber)
			if err != nil {
				s.logger.WarnContext(ctx, "standings history week failed",
					"season", year,
					"week", weekNumber,
					"error", err.Error(),
				)
				snapshots <- weekStandings{week: weekNumber}
				return
			}
			snapshots <- weekStandings{week: weekNumber, rows: rows}
		})
		if submitErr != nil {
			workers.Done()
			snapshots <- weekStandings{week: weekNumber}
		}
	}

	workers.Wait()
	close(snapshots)

	collected := make([]weekStandings, 0, lastWeek)
	for snapshot := range snapshots {
		collected = append(collected, snapshot)
	}
	sort.SliceStable(collected, func(i, j int) bool {
		return collected[i].week < collected[j].week
	})

	order := make([]string, 0)
	series := make(map[string]*UserStandingsHistory)
	for _, snapshot := range collected {
		for _, row := range snapshot.rows {
			entry, ok := series[row.Username]
			if !ok {
				entry = &UserStandingsHistory{Username: row.Username}
				series[row.Username] = entry
				order = append(order, row.Username)
			}
			entry.Weeks = append(entry.Weeks, snapshot.week)
			entry.Ranks = append(entry.Ranks, row.Rank)
			entry.Scores = append(entry.Scores, row.Points)
			entry.Pcts = append(entry.Pcts, row.Pct)
		}
	}

	history := make([]UserStandingsHistory, 0, len(order))
	for _, username := range order {
		history = append(history, *series[username])
	}

	return history, nil
}

func (s *StandingsService) computeStandings(ctx context.Context, seasonID int64, throughWeek int) ([]StandingRow, error) {
	rows, err := s.pickRepo.ListSeasonResultRows(ctx, seasonID, throughWeek)
	if err != nil {
		return nil, fmt.Errorf("list season result rows: %w", err)
	}

	order := make([]string, 0)
	grouped := make(map[string]*StandingRow)
	for _, row := range rows {
		if row.PickedScore == nil || row.OpponentScore == nil {
			continue
		}

		entry, ok := grouped[row.Username]
		if !ok {
			entry = &StandingRow{Username: row.Username}
			grouped[row.Username] = entry
			order = append(order, row.Username)
		}

		outcome := scoring.Classify(*row.PickedScore, row.SpreadValue, *row.OpponentScore)
		entry.Points += scoring.Points(row.Confidence, outcome)
		entry.Total++
		if outcome.Correct() {
			entry.Correct++
		}
	}

	standings := make([]StandingRow, 0, len(order))
	for _, username := range order {
		entry := *grouped[username]
		if entry.Total > 0 {
			entry.Pct = float64(entry.Correct) / float64(entry.Total)
		}
		standings = append(standings, entry)
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings, nil
}

func (s *StandingsService) resolveSeason(ctx context.Context, year, throughWeek int) (season.Season, error) {
	if year <= 0 {
		return season.Season{}, fmt.Errorf("%w: year is required", ErrInvalidInput)
	}
	if throughWeek < 0 {
		return season.Season{}, fmt.Errorf("%w: through week must not be negative", ErrInvalidInput)
	}

	seasonRow, exists, err := s.seasonRepo.GetByYear(ctx, year)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return season.Season{}, fmt.Errorf("%w: season=%d", ErrNotFound, year)
	}

	return seasonRow, nil
}
