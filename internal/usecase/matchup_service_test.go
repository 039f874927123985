package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/pickem-league/internal/domain/odds"
)

func newMatchupService(env *testEnv) *MatchupService {
	return NewMatchupService(env.seasons, env.matchups, env.results, testBookmaker)
}

func TestMatchupService_ListMatchups_JoinsSpreadsAndScores(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	recordScore(t, env, env.gameKC, 27, 20)

	svc := newMatchupService(env)
	matchups, err := svc.ListMatchups(context.Background(), 2025, 1, "")
	if err != nil {
		t.Fatalf("list matchups: %v", err)
	}

	if len(matchups) != 2 {
		t.Fatalf("expected 2 matchups, got %d", len(matchups))
	}

	kc := matchups[0]
	if kc.GameID != env.gameKC.ID {
		t.Fatalf("expected earliest game first, got game %d", kc.GameID)
	}
	if kc.Home.Team.Name != "Chiefs" || kc.Away.Team.Name != "Bills" {
		t.Fatalf("unexpected teams: %s vs %s", kc.Home.Team.Name, kc.Away.Team.Name)
	}
	if kc.Home.Spread != -2.5 || kc.Away.Spread != 2.5 {
		t.Fatalf("unexpected spreads: %v / %v", kc.Home.Spread, kc.Away.Spread)
	}
	if !kc.Final || kc.Home.Score == nil || *kc.Home.Score != 27 {
		t.Fatalf("expected final score on concluded game, got %+v", kc)
	}

	ph := matchups[1]
	if ph.Final || ph.Home.Score != nil {
		t.Fatalf("expected unplayed game without score, got %+v", ph)
	}
}

func TestMatchupService_ListMatchups_OmitsGamesWithoutBookmakerLine(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	// A line from another book only must not surface the game.
	gameRow := env.seedExtraGame(t, env.week.ID, 2, 3)
	if _, err := env.spreads.Upsert(context.Background(), odds.Spread{
		GameID:    gameRow.ID,
		TeamID:    gameRow.HomeTeamID,
		Bookmaker: "FanDuel",
		Value:     -4,
	}); err != nil {
		t.Fatalf("seed spread: %v", err)
	}

	svc := newMatchupService(env)
	matchups, err := svc.ListMatchups(context.Background(), 2025, 1, "FanDuel")
	if err != nil {
		t.Fatalf("list matchups: %v", err)
	}
	if len(matchups) != 0 {
		t.Fatalf("expected no matchups with a one-sided FanDuel line, got %d", len(matchups))
	}

	matchups, err = svc.ListMatchups(context.Background(), 2025, 1, testBookmaker)
	if err != nil {
		t.Fatalf("list matchups: %v", err)
	}
	if len(matchups) != 3 {
		t.Fatalf("expected 3 matchups for the reference book, got %d", len(matchups))
	}
}

func TestMatchupService_ListMatchups_RecordsFromTeamResults(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newMatchupService(env)

	ingest := NewIngestionService(env.seasons, env.teams, env.games, env.results, env.spreads, env.picks, testBookmaker)
	if err := ingest.RecordResult(context.Background(), env.gameKC.ID, 27, 20); err != nil {
		t.Fatalf("record result: %v", err)
	}

	matchups, err := svc.ListMatchups(context.Background(), 2025, 1, "")
	if err != nil {
		t.Fatalf("list matchups: %v", err)
	}

	kc := matchups[0].Home
	if kc.Wins != 1 || kc.Losses != 0 {
		t.Fatalf("expected 1-0 record, got %d-%d", kc.Wins, kc.Losses)
	}
	if kc.Covers != 1 || kc.NotCovers != 0 {
		t.Fatalf("expected 1-0 against the spread, got %d-%d", kc.Covers, kc.NotCovers)
	}
	buf := matchups[0].Away
	if buf.Wins != 0 || buf.Losses != 1 || buf.Covers != 0 || buf.NotCovers != 1 {
		t.Fatalf("unexpected away record: %+v", buf)
	}
}

func TestMatchupService_ListMatchups_UnknownWeek(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newMatchupService(env)

	_, err := svc.ListMatchups(context.Background(), 2025, 7, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
