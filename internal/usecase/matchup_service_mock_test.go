package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/season"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
)

type seasonRepoMock struct {
	mock.Mock
}

func (m *seasonRepoMock) GetByYear(ctx context.Context, year int) (season.Season, bool, error) {
	args := m.Called(ctx, year)
	return args.Get(0).(season.Season), args.Bool(1), args.Error(2)
}

func (m *seasonRepoMock) GetWeek(ctx context.Context, seasonID int64, number int) (season.Week, bool, error) {
	args := m.Called(ctx, seasonID, number)
	return args.Get(0).(season.Week), args.Bool(1), args.Error(2)
}

func (m *seasonRepoMock) ListWeeks(ctx context.Context, seasonID int64) ([]season.Week, error) {
	args := m.Called(ctx, seasonID)
	return args.Get(0).([]season.Week), args.Error(1)
}

func (m *seasonRepoMock) UpsertSeason(ctx context.Context, item season.Season) (season.Season, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(season.Season), args.Error(1)
}

func (m *seasonRepoMock) UpsertWeek(ctx context.Context, item season.Week) (season.Week, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(season.Week), args.Error(1)
}

type matchupRepoMock struct {
	mock.Mock
}

func (m *matchupRepoMock) ListMatchups(ctx context.Context, weekID int64, bookmaker string) ([]game.MatchupRow, error) {
	args := m.Called(ctx, weekID, bookmaker)
	if rows := args.Get(0); rows != nil {
		return rows.([]game.MatchupRow), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestMatchupService_ListMatchups_DefaultsBookmaker(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := &seasonRepoMock{}
	matchupRepo := &matchupRepoMock{}
	resultRepo := memory.NewResultRepository()

	seasonRepo.
		On("GetByYear", ctx, 2025).
		Return(season.Season{ID: 1, Year: 2025}, true, nil).
		Once()
	seasonRepo.
		On("GetWeek", ctx, int64(1), 3).
		Return(season.Week{ID: 30, SeasonID: 1, Number: 3}, true, nil).
		Once()
	matchupRepo.
		On("ListMatchups", ctx, int64(30), testBookmaker).
		Return([]game.MatchupRow{}, nil).
		Once()

	service := NewMatchupService(seasonRepo, matchupRepo, resultRepo, testBookmaker)
	got, err := service.ListMatchups(ctx, 2025, 3, "  ")
	if err != nil {
		t.Fatalf("list matchups: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no matchups, got %d", len(got))
	}
	seasonRepo.AssertExpectations(t)
	matchupRepo.AssertExpectations(t)
}

func TestMatchupService_ListMatchups_RepoErrorPropagates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	seasonRepo := &seasonRepoMock{}
	matchupRepo := &matchupRepoMock{}
	resultRepo := memory.NewResultRepository()
	repoErr := errors.New("connection reset")

	seasonRepo.
		On("GetByYear", ctx, 2025).
		Return(season.Season{ID: 1, Year: 2025}, true, nil).
		Once()
	seasonRepo.
		On("GetWeek", ctx, int64(1), 3).
		Return(season.Week{ID: 30, SeasonID: 1, Number: 3}, true, nil).
		Once()
	matchupRepo.
		On("ListMatchups", ctx, int64(30), testBookmaker).
		Return(nil, repoErr).
		Once()

	service := NewMatchupService(seasonRepo, matchupRepo, resultRepo, testBookmaker)
	_, err := service.ListMatchups(ctx, 2025, 3, "")
	if !errors.Is(err, repoErr) {
		t.Fatalf("expected repository error, got %v", err)
	}
	seasonRepo.AssertExpectations(t)
	matchupRepo.AssertExpectations(t)
}
