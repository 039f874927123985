package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type stubOddsFeed struct {
	events []ExternalOddsEvent
	err    error
}

func (s *stubOddsFeed) FetchSpreads(_ context.Context) ([]ExternalOddsEvent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.events, nil
}

func newOddsSyncService(env *testEnv, provider OddsFeedProvider) *OddsSyncService {
	return NewOddsSyncService(provider, env.seasons, env.teams, env.games, env.spreads, logging.NewNop(), 4)
}

func spreadEvent(externalID string, commence time.Time, home, away string, homePoint float64) ExternalOddsEvent {
	return ExternalOddsEvent{
		ExternalID:   externalID,
		CommenceTime: commence,
		HomeTeam:     home,
		AwayTeam:     away,
		Bookmakers: []ExternalOddsBookmaker{
			{
				Key:   "fanduel",
				Title: "FanDuel",
				Markets: []ExternalOddsMarket{
					{
						Key: "spreads",
						Outcomes: []ExternalOddsOutcome{
							{Name: home, Point: homePoint},
							{Name: away, Point: -homePoint},
						},
					},
					{
						Key: "h2h",
						Outcomes: []ExternalOddsOutcome{
							{Name: home, Point: -150},
						},
					},
				},
			},
		},
	}
}

func TestOddsSyncService_RefreshWeek_StoresMatchedSpreads(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	// 2025-09-05 00:20 UTC is still 2025-09-04 in New York, matching the
	// stored start date of the Thursday game.
	commence := time.Date(2025, 9, 5, 0, 20, 0, 0, time.UTC)
	feed := &stubOddsFeed{events: []ExternalOddsEvent{
		spreadEvent("evt-1", commence, "Kansas City Chiefs", "Buffalo Bills", -3.5),
	}}

	svc := newOddsSyncService(env, feed)
	report, err := svc.RefreshWeek(context.Background(), 2025, 1)
	if err != nil {
		t.Fatalf("refresh week: %v", err)
	}

	if report.EventsSeen != 1 || report.EventsMatched != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.SpreadsUpserted != 2 {
		t.Fatalf("expected both sides stored, got %d", report.SpreadsUpserted)
	}

	stored, exists, err := env.spreads.GetForGameTeam(context.Background(), env.gameKC.ID, env.gameKC.HomeTeamID, "FanDuel")
	if err != nil || !exists {
		t.Fatalf("expected stored FanDuel line, exists=%v err=%v", exists, err)
	}
	if stored.Value != -3.5 {
		t.Fatalf("unexpected stored value: %v", stored.Value)
	}
}

func TestOddsSyncService_RefreshWeek_SkipsUnknownTeamsAndOtherDates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	feed := &stubOddsFeed{events: []ExternalOddsEvent{
		spreadEvent("evt-1", time.Date(2025, 9, 5, 0, 20, 0, 0, time.UTC), "London Monarchs", "Buffalo Bills", -1),
		spreadEvent("evt-2", time.Date(2025, 12, 25, 18, 0, 0, 0, time.UTC), "Kansas City Chiefs", "Buffalo Bills", -1),
	}}

	svc := newOddsSyncService(env, feed)
	report, err := svc.RefreshWeek(context.Background(), 2025, 1)
	if err != nil {
		t.Fatalf("refresh week: %v", err)
	}

	if report.EventsSeen != 2 || report.EventsMatched != 0 || report.SpreadsUpserted != 0 {
		t.Fatalf("expected nothing matched, got %+v", report)
	}
}

func TestOddsSyncService_RefreshWeek_FeedFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	feed := &stubOddsFeed{err: errors.New("upstream down")}

	svc := newOddsSyncService(env, feed)
	if _, err := svc.RefreshWeek(context.Background(), 2025, 1); err == nil {
		t.Fatal("expected error from failing feed")
	}
}

func TestOddsSyncService_RefreshWeek_NoProvider(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	svc := newOddsSyncService(env, nil)

	_, err := svc.RefreshWeek(context.Background(), 2025, 1)
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
