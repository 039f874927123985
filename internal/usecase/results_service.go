package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/scoring"
	"github.com/riskibarqy/pickem-league/internal/domain/season"
)

// PickResult is one graded pick inside a user's week line.
type PickResult struct {
	GameID        int64
	PickedTeamID  int64
	PickedTeam    string
	Opponent      string
	Confidence    int
	SpreadValue   float64
	PickedScore   *int
	OpponentScore *int
	Outcome       scoring.Outcome
	Points        float64
}

// UserWeekResult is one user's graded sheet for a week, ranked against
// the rest of the field.
type UserWeekResult struct {
	Rank     int
	Username string
	Points   float64
	Correct  int
	Total    int
	Picks    []PickResult
}

type ResultsService struct {
	seasonRepo season.Repository
	pickRepo   pick.Repository
}

func NewResultsService(seasonRepo season.Repository, pickRepo pick.Repository) *ResultsService {
	return &ResultsService{
		seasonRepo: seasonRepo,
		pickRepo:   pickRepo,
	}
}

// WeekResults grades every pick of the week for concluded games, groups
// the picks per user and ranks users by total points descending. Picks on
// games without a final score are left out entirely. Ties keep their
// encounter order and ranks run strictly 1..N. A non-empty username
// narrows the response to that user after ranking.
func (s *ResultsService) WeekResults(ctx context.Context, year, weekNumber int, username string) ([]UserWeekResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.WeekResults")
	defer span.End()

	seasonRow, _, err := resolveWeek(ctx, s.seasonRepo, year, weekNumber)
	if err != nil {
		return nil, err
	}

	rows, err := s.pickRepo.ListWeekResultRows(ctx, seasonRow.ID, weekNumber)
	if err != nil {
		return nil, fmt.Errorf("list week result rows: %w", err)
	}

	results := rankResultRows(rows)

	username = strings.TrimSpace(username)
	if username == "" {
		return results, nil
	}

	for _, result := range results {
		if strings.EqualFold(result.Username, username) {
			return []UserWeekResult{result}, nil
		}
	}

	return nil, fmt.Errorf("%w: user=%s week=%d", ErrNotFound, username, weekNumber)
}

// SeasonResults grades every pick from week 1 through the given week and
// ranks the cumulative totals the same way WeekResults ranks a single
// week. Per-pick detail spans all counted weeks.
func (s *ResultsService) SeasonResults(ctx context.Context, year, throughWeek int, username string) ([]UserWeekResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ResultsService.SeasonResults")
	defer span.End()

	seasonRow, _, err := resolveWeek(ctx, s.seasonRepo, year, throughWeek)
	if err != nil {
		return nil, err
	}

	rows, err := s.pickRepo.ListSeasonResultRows(ctx, seasonRow.ID, throughWeek)
	if err != nil {
		return nil, fmt.Errorf("list season result rows: %w", err)
	}

	results := rankResultRows(rows)

	username = strings.TrimSpace(username)
	if username == "" {
		return results, nil
	}

	for _, result := range results {
		if strings.EqualFold(result.Username, username) {
			return []UserWeekResult{result}, nil
		}
	}

	return nil, fmt.Errorf("%w: user=%s through week=%d", ErrNotFound, username, throughWeek)
}

func rankResultRows(rows []pick.ResultRow) []UserWeekResult {
	order := make([]string, 0)
	grouped := make(map[string]*UserWeekResult)

	for _, row := range rows {
		if row.PickedScore == nil || row.OpponentScore == nil {
			continue
		}

		entry, ok := grouped[row.Username]
		if !ok {
			entry = &UserWeekResult{Username: row.Username}
			grouped[row.Username] = entry
			order = append(order, row.Username)
		}

		graded := gradeResultRow(row)
		entry.Picks = append(entry.Picks, graded)
		entry.Points += graded.Points
		entry.Total++
		if graded.Outcome.Correct() {
			entry.Correct++
		}
	}

	results := make([]UserWeekResult, 0, len(order))
	for _, username := range order {
		results = append(results, *grouped[username])
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Points > results[j].Points
	})
	for i := range results {
		results[i].Rank = i + 1
	}

	return results
}

func gradeResultRow(row pick.ResultRow) PickResult {
	outcome := scoring.OutcomePending
	points := 0.0
	if row.PickedScore != nil && row.OpponentScore != nil {
		outcome = scoring.Classify(*row.PickedScore, row.SpreadValue, *row.OpponentScore)
		points = scoring.Points(row.Confidence, outcome)
	}

	return PickResult{
		GameID:        row.GameID,
		PickedTeamID:  row.PickedTeamID,
		PickedTeam:    row.PickedTeamName,
		Opponent:      row.OpponentName,
		Confidence:    row.Confidence,
		SpreadValue:   row.SpreadValue,
		PickedScore:   row.PickedScore,
		OpponentScore: row.OpponentScore,
		Outcome:       outcome,
		Points:        points,
	}
}
