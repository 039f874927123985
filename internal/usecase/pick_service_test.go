package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

func newPickService(env *testEnv) *PickService {
	return NewPickService(env.seasons, env.games, env.spreads, env.picks, env.accounts, testBookmaker)
}

func TestPickService_SubmitPicks_SavesSheetWithSpreadSnapshot(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)

	sheet, err := svc.SubmitPicks(context.Background(), principalFor(env.alice), 2025, 1, []PickEntry{
		{GameID: env.gameKC.ID, TeamID: env.gameKC.HomeTeamID, Confidence: 5},
		{GameID: env.gamePH.ID, TeamID: env.gamePH.AwayTeamID, Confidence: 3},
	})
	if err != nil {
		t.Fatalf("submit picks: %v", err)
	}

	if sheet.Status != pick.StatusSaved {
		t.Fatalf("expected status SAVED for 2 picks, got %s", sheet.Status)
	}
	if len(sheet.Picks) != 2 {
		t.Fatalf("expected 2 picks, got %d", len(sheet.Picks))
	}
	if sheet.Picks[0].SpreadValue != -2.5 {
		t.Fatalf("expected spread snapshot -2.5, got %v", sheet.Picks[0].SpreadValue)
	}
	if sheet.Picks[1].SpreadValue != 3 {
		t.Fatalf("expected spread snapshot 3, got %v", sheet.Picks[1].SpreadValue)
	}
}

func TestPickService_SubmitPicks_Idempotent(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)
	entries := []PickEntry{{GameID: env.gameKC.ID, TeamID: env.gameKC.HomeTeamID, Confidence: 4}}

	first, err := svc.SubmitPicks(context.Background(), principalFor(env.alice), 2025, 1, entries)
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	second, err := svc.SubmitPicks(context.Background(), principalFor(env.alice), 2025, 1, entries)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if len(first.Picks) != 1 || len(second.Picks) != 1 {
		t.Fatalf("expected 1 pick on both submits, got %d and %d", len(first.Picks), len(second.Picks))
	}
	if first.Picks[0].ID != second.Picks[0].ID {
		t.Fatalf("resubmission must keep the stored row, got ids %d and %d", first.Picks[0].ID, second.Picks[0].ID)
	}
}

func TestPickService_SubmitPicks_ReplacesDroppedPicks(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)
	principal := principalFor(env.alice)

	_, err := svc.SubmitPicks(context.Background(), principal, 2025, 1, []PickEntry{
		{GameID: env.gameKC.ID, TeamID: env.gameKC.HomeTeamID, Confidence: 4},
		{GameID: env.gamePH.ID, TeamID: env.gamePH.HomeTeamID, Confidence: 2},
	})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}

	sheet, err := svc.SubmitPicks(context.Background(), principal, 2025, 1, []PickEntry{
		{GameID: env.gamePH.ID, TeamID: env.gamePH.AwayTeamID, Confidence: 1},
	})
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}

	if len(sheet.Picks) != 1 {
		t.Fatalf("expected dropped pick to be deleted, got %d picks", len(sheet.Picks))
	}
	if sheet.Picks[0].TeamID != env.gamePH.AwayTeamID || sheet.Picks[0].Confidence != 1 {
		t.Fatalf("expected rewritten pick, got %+v", sheet.Picks[0])
	}
}

func TestPickService_SubmitPicks_SubmittedAtThreshold(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)

	// Five games are needed to cross the SUBMITTED threshold.
	entries := []PickEntry{
		{GameID: env.gameKC.ID, TeamID: env.gameKC.HomeTeamID, Confidence: 5},
		{GameID: env.gamePH.ID, TeamID: env.gamePH.HomeTeamID, Confidence: 4},
	}
	pairings := [][2]int64{{2, 3}, {4, 1}, {3, 2}}
	for i, pairing := range pairings {
		gameRow := env.seedExtraGame(t, env.week.ID, pairing[0], pairing[1])
		entries = append(entries, PickEntry{GameID: gameRow.ID, TeamID: gameRow.HomeTeamID, Confidence: i + 1})
	}

	sheet, err := svc.SubmitPicks(context.Background(), principalFor(env.alice), 2025, 1, entries)
	if err != nil {
		t.Fatalf("submit picks: %v", err)
	}
	if sheet.Status != pick.StatusSubmitted {
		t.Fatalf("expected status SUBMITTED for 5 picks, got %s", sheet.Status)
	}
}

func TestPickService_SubmitPicks_RejectsDuplicateGame(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)

	_, err := svc.SubmitPicks(context.Background(), principalFor(env.alice), 2025, 1, []PickEntry{
		{GameID: env.gameKC.ID, TeamID: env.gameKC.HomeTeamID, Confidence: 3},
		{GameID: env.gameKC.ID, TeamID: env.gameKC.AwayTeamID, Confidence: 2},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicate game, got %v", err)
	}
}

func TestPickService_SubmitPicks_RejectsForeignTeam(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)

	_, err := svc.SubmitPicks(context.Background(), principalFor(env.alice), 2025, 1, []PickEntry{
		{GameID: env.gameKC.ID, TeamID: env.gamePH.HomeTeamID, Confidence: 3},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for team outside the game, got %v", err)
	}
}

func TestPickService_SubmitPicks_RejectsConfidenceOutOfRange(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)

	_, err := svc.SubmitPicks(context.Background(), principalFor(env.alice), 2025, 1, []PickEntry{
		{GameID: env.gameKC.ID, TeamID: env.gameKC.HomeTeamID, Confidence: 6},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for confidence 6, got %v", err)
	}
}

func TestPickService_SubmitPicks_LockedPickAbortsBatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)
	principal := principalFor(env.alice)

	_, err := svc.SubmitPicks(context.Background(), principal, 2025, 1, []PickEntry{
		{GameID: env.gameKC.ID, TeamID: env.gameKC.HomeTeamID, Confidence: 4},
		{GameID: env.gamePH.ID, TeamID: env.gamePH.HomeTeamID, Confidence: 2},
	})
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if err := env.picks.LockByGame(context.Background(), env.gameKC.ID); err != nil {
		t.Fatalf("lock picks: %v", err)
	}

	// Dropping the locked pick must fail and leave the sheet untouched.
	_, err = svc.SubmitPicks(context.Background(), principal, 2025, 1, []PickEntry{
		{GameID: env.gamePH.ID, TeamID: env.gamePH.AwayTeamID, Confidence: 5},
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for locked pick, got %v", err)
	}

	sheet, err := svc.GetWeekPicks(context.Background(), principal, 2025, 1)
	if err != nil {
		t.Fatalf("get week picks: %v", err)
	}
	if len(sheet.Picks) != 2 {
		t.Fatalf("expected sheet unchanged after aborted batch, got %d picks", len(sheet.Picks))
	}
	if sheet.Picks[1].TeamID != env.gamePH.HomeTeamID || sheet.Picks[1].Confidence != 2 {
		t.Fatalf("expected original pick kept, got %+v", sheet.Picks[1])
	}
}

func TestPickService_GetWeekPicks_SheetStatus(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)
	principal := principalFor(env.bob)

	sheet, err := svc.GetWeekPicks(context.Background(), principal, 2025, 1)
	if err != nil {
		t.Fatalf("get week picks: %v", err)
	}
	if sheet.Status != pick.StatusNew {
		t.Fatalf("expected NEW for empty sheet, got %s", sheet.Status)
	}

	if _, err := svc.SubmitPicks(context.Background(), principal, 2025, 1, []PickEntry{
		{GameID: env.gameKC.ID, TeamID: env.gameKC.AwayTeamID, Confidence: 2},
	}); err != nil {
		t.Fatalf("submit picks: %v", err)
	}

	sheet, err = svc.GetWeekPicks(context.Background(), principal, 2025, 1)
	if err != nil {
		t.Fatalf("get week picks: %v", err)
	}
	if sheet.Status != pick.StatusSaved {
		t.Fatalf("expected SAVED for partial sheet, got %s", sheet.Status)
	}
}

func TestPickService_SubmitPicks_UnknownSeason(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)

	_, err := svc.SubmitPicks(context.Background(), principalFor(env.alice), 1999, 1, []PickEntry{
		{GameID: env.gameKC.ID, TeamID: env.gameKC.HomeTeamID, Confidence: 1},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown season, got %v", err)
	}
}

func TestPickService_SubmitPicks_RejectsEmptyBatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)

	_, err := svc.SubmitPicks(context.Background(), principalFor(env.alice), 2025, 1, nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty batch, got %v", err)
	}
}

func TestPickService_SubmitPicks_RejectsOversizedBatch(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)
	principal := principalFor(env.alice)

	// Six otherwise valid picks, one over the sheet limit.
	entries := []PickEntry{
		{GameID: env.gameKC.ID, TeamID: env.gameKC.HomeTeamID, Confidence: 5},
		{GameID: env.gamePH.ID, TeamID: env.gamePH.HomeTeamID, Confidence: 4},
	}
	pairings := [][2]int64{{2, 3}, {4, 1}, {3, 2}, {1, 4}}
	for i, pairing := range pairings {
		gameRow := env.seedExtraGame(t, env.week.ID, pairing[0], pairing[1])
		entries = append(entries, PickEntry{GameID: gameRow.ID, TeamID: gameRow.HomeTeamID, Confidence: i + 1})
	}

	_, err := svc.SubmitPicks(context.Background(), principal, 2025, 1, entries)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for 6-pick batch, got %v", err)
	}

	sheet, err := svc.GetWeekPicks(context.Background(), principal, 2025, 1)
	if err != nil {
		t.Fatalf("get week picks: %v", err)
	}
	if len(sheet.Picks) != 0 || sheet.Status != pick.StatusNew {
		t.Fatalf("rejected batch must not persist, got %d picks with status %s", len(sheet.Picks), sheet.Status)
	}
}

func TestPickService_SubmitPicks_RejectsUnknownGame(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)

	_, err := svc.SubmitPicks(context.Background(), principalFor(env.alice), 2025, 1, []PickEntry{
		{GameID: 9999, TeamID: env.gameKC.HomeTeamID, Confidence: 3},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown game, got %v", err)
	}
	if !strings.Contains(err.Error(), "does not exist") {
		t.Fatalf("expected the error to name the missing game, got %v", err)
	}
}

func TestPickService_SubmitPicks_RejectsGameFromAnotherWeek(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newPickService(env)

	week2 := env.addWeek(t, 2)
	gameW2 := env.seedExtraGame(t, week2.ID, 2, 4)

	_, err := svc.SubmitPicks(context.Background(), principalFor(env.alice), 2025, 1, []PickEntry{
		{GameID: gameW2.ID, TeamID: gameW2.HomeTeamID, Confidence: 3},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for cross-week game, got %v", err)
	}
	if !strings.Contains(err.Error(), "season 2025 week 1") {
		t.Fatalf("expected the error to name the expected season and week, got %v", err)
	}
}
