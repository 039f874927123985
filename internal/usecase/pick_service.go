package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/account"
	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/season"
)

// PickEntry is one requested selection inside a sheet submission.
type PickEntry struct {
	GameID     int64
	TeamID     int64
	Confidence int
}

// PickSheet is one account's sheet for a week together with its derived status.
type PickSheet struct {
	WeekNumber int
	Status     pick.Status
	Picks      []pick.Pick
}

type PickService struct {
	seasonRepo       season.Repository
	gameRepo         game.Repository
	oddsRepo         odds.Repository
	pickRepo         pick.Repository
	accountRepo      account.Repository
	defaultBookmaker string
}

func NewPickService(
	seasonRepo season.Repository,
	gameRepo game.Repository,
	oddsRepo odds.Repository,
	pickRepo pick.Repository,
	accountRepo account.Repository,
	defaultBookmaker string,
) *PickService {
	return &PickService{
		seasonRepo:       seasonRepo,
		gameRepo:         gameRepo,
		oddsRepo:         oddsRepo,
		pickRepo:         pickRepo,
		accountRepo:      accountRepo,
		defaultBookmaker: defaultBookmaker,
	}
}

// SubmitPicks replaces the caller's sheet for the week with the given
// batch. Submitting the same batch twice yields the same stored sheet.
// A batch that would delete or rewrite a locked pick is rejected whole.
func (s *PickService) SubmitPicks(ctx context.Context, principal account.Principal, year, weekNumber int, entries []PickEntry) (PickSheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SubmitPicks")
	defer span.End()

	if len(entries) == 0 {
		return PickSheet{}, fmt.Errorf("%w: batch must contain at least one pick", ErrInvalidInput)
	}
	if len(entries) > pick.SubmittedThreshold {
		return PickSheet{}, fmt.Errorf("%w: batch has %d picks, at most %d are allowed", ErrInvalidInput, len(entries), pick.SubmittedThreshold)
	}

	caller, err := s.resolveAccount(ctx, principal)
	if err != nil {
		return PickSheet{}, err
	}

	_, week, err := resolveWeek(ctx, s.seasonRepo, year, weekNumber)
	if err != nil {
		return PickSheet{}, err
	}

	seen := make(map[int64]struct{}, len(entries))
	for _, entry := range entries {
		if _, dup := seen[entry.GameID]; dup {
			return PickSheet{}, fmt.Errorf("%w: game %d appears more than once in the batch", ErrInvalidInput, entry.GameID)
		}
		seen[entry.GameID] = struct{}{}
	}

	status := pick.BatchStatus(len(entries))
	items := make([]pick.Pick, 0, len(entries))
	for _, entry := range entries {
		gameRow, exists, err := s.gameRepo.GetByID(ctx, entry.GameID)
		if err != nil {
			return PickSheet{}, fmt.Errorf("get game: %w", err)
		}
		if !exists {
			return PickSheet{}, fmt.Errorf("%w: game %d does not exist", ErrInvalidInput, entry.GameID)
		}
		if gameRow.WeekID != week.ID {
			return PickSheet{}, fmt.Errorf("%w: game %d is not scheduled in season %d week %d", ErrInvalidInput, entry.GameID, year, weekNumber)
		}
		if !gameRow.Includes(entry.TeamID) {
			return PickSheet{}, fmt.Errorf("%w: team %d does not play in game %d", ErrInvalidInput, entry.TeamID, entry.GameID)
		}

		spread, exists, err := s.oddsRepo.GetForGameTeam(ctx, entry.GameID, entry.TeamID, s.defaultBookmaker)
		if err != nil {
			return PickSheet{}, fmt.Errorf("get spread: %w", err)
		}
		if !exists {
			return PickSheet{}, fmt.Errorf("%w: no posted spread for team %d in game %d", ErrInvalidInput, entry.TeamID, entry.GameID)
		}

		item := pick.Pick{
			AccountID:   caller.ID,
			GameID:      entry.GameID,
			TeamID:      entry.TeamID,
			Confidence:  entry.Confidence,
			SpreadValue: spread.Value,
			Status:      status,
		}
		if err := item.Validate(); err != nil {
			return PickSheet{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
		}
		items = append(items, item)
	}

	if err := s.pickRepo.ReplaceForWeek(ctx, caller.ID, week.ID, items); err != nil {
		if errors.Is(err, pick.ErrLocked) {
			return PickSheet{}, fmt.Errorf("%w: sheet contains locked picks", ErrConflict)
		}
		return PickSheet{}, fmt.Errorf("replace picks: %w", err)
	}

	return s.loadSheet(ctx, caller.ID, week.ID, weekNumber)
}

// GetWeekPicks returns the caller's stored sheet for the week.
func (s *PickService) GetWeekPicks(ctx context.Context, principal account.Principal, year, weekNumber int) (PickSheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.GetWeekPicks")
	defer span.End()

	caller, err := s.resolveAccount(ctx, principal)
	if err != nil {
		return PickSheet{}, err
	}

	_, week, err := resolveWeek(ctx, s.seasonRepo, year, weekNumber)
	if err != nil {
		return PickSheet{}, err
	}

	return s.loadSheet(ctx, caller.ID, week.ID, weekNumber)
}

func (s *PickService) loadSheet(ctx context.Context, accountID, weekID int64, weekNumber int) (PickSheet, error) {
	picks, err := s.pickRepo.ListForWeek(ctx, accountID, weekID)
	if err != nil {
		return PickSheet{}, fmt.Errorf("list picks: %w", err)
	}

	return PickSheet{
		WeekNumber: weekNumber,
		Status:     pick.SheetStatus(len(picks)),
		Picks:      picks,
	}, nil
}

func (s *PickService) resolveAccount(ctx context.Context, principal account.Principal) (account.Account, error) {
	username := strings.TrimSpace(principal.Username)
	if username == "" {
		return account.Account{}, fmt.Errorf("%w: principal has no username", ErrUnauthorized)
	}

	caller, exists, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return account.Account{}, fmt.Errorf("get account: %w", err)
	}
	if !exists {
		return account.Account{}, fmt.Errorf("%w: account %s is not registered", ErrUnauthorized, username)
	}

	return caller, nil
}
