package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/domain/season"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

// OddsFeedProvider fetches the current spread market from the upstream
// odds aggregator.
type OddsFeedProvider interface {
	FetchSpreads(ctx context.Context) ([]ExternalOddsEvent, error)
}

type ExternalOddsEvent struct {
	ExternalID   string
	CommenceTime time.Time
	HomeTeam     string
	AwayTeam     string
	Bookmakers   []ExternalOddsBookmaker
}

type ExternalOddsBookmaker struct {
	Key     string
	Title   string
	Markets []ExternalOddsMarket
}

type ExternalOddsMarket struct {
	Key      string
	Outcomes []ExternalOddsOutcome
}

type ExternalOddsOutcome struct {
	Name  string
	Point float64
}

// OddsSyncReport summarizes one refresh run.
type OddsSyncReport struct {
	EventsSeen      int
	EventsMatched   int
	SpreadsUpserted int
}

const spreadsMarketKey = "spreads"

type OddsSyncService struct {
	provider   OddsFeedProvider
	seasonRepo season.Repository
	teamRepo   team.Repository
	gameRepo   game.Repository
	oddsRepo   odds.Repository
	logger     *logging.Logger
	workers    int
}

func NewOddsSyncService(
	provider OddsFeedProvider,
	seasonRepo season.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	oddsRepo odds.Repository,
	logger *logging.Logger,
	workers int,
) *OddsSyncService {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	return &OddsSyncService{
		provider:   provider,
		seasonRepo: seasonRepo,
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		oddsRepo:   oddsRepo,
		logger:     logger,
		workers:    workers,
	}
}

// RefreshWeek pulls the upstream spread market and stores every line it
// can match to one of the week's games. Events the feed carries for
// other weeks or unknown teams are counted and skipped, not failed.
func (s *OddsSyncService) RefreshWeek(ctx context.Context, year, weekNumber int) (OddsSyncReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsSyncService.RefreshWeek")
	defer span.End()

	if s.provider == nil {
		return OddsSyncReport{}, fmt.Errorf("%w: odds feed is not configured", ErrDependencyUnavailable)
	}

	_, week, err := resolveWeek(ctx, s.seasonRepo, year, weekNumber)
	if err != nil {
		return OddsSyncReport{}, err
	}

	events, err := s.provider.FetchSpreads(ctx)
	if err != nil {
		return OddsSyncReport{}, fmt.Errorf("fetch spreads: %w", err)
	}

	games, err := s.gameRepo.ListByWeek(ctx, week.ID)
	if err != nil {
		return OddsSyncReport{}, fmt.Errorf("list week games: %w", err)
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return OddsSyncReport{}, fmt.Errorf("list teams: %w", err)
	}

	teamsByFullName := make(map[string]team.Team, len(teams))
	for _, item := range teams {
		teamsByFullName[strings.ToLower(item.FullName())] = item
	}
	gamesByPairing := make(map[string]game.Game, len(games))
	for _, item := range games {
		gamesByPairing[gamePairingKey(item.HomeTeamID, item.AwayTeamID, item.StartDate)] = item
	}

	eastern, err := time.LoadLocation("America/New_York")
	if err != nil {
		return OddsSyncReport{}, fmt.Errorf("load eastern timezone: %w", err)
	}

	report := OddsSyncReport{EventsSeen: len(events)}
	var mu sync.Mutex

	workers := pool.New().WithMaxGoroutines(s.workers).WithContext(ctx)
	for _, event := range events {
		event := event
		workers.Go(func(ctx context.Context) error {
			home, homeOK := teamsByFullName[strings.ToLower(strings.TrimSpace(event.HomeTeam))]
			away, awayOK := teamsByFullName[strings.ToLower(strings.TrimSpace(event.AwayTeam))]
			if !homeOK || !awayOK {
				s.logger.WarnContext(ctx, "odds event names unknown team",
					"event", event.ExternalID,
					"home", event.HomeTeam,
					"away", event.AwayTeam,
				)
				return nil
			}

			gameRow, ok := gamesByPairing[gamePairingKey(home.ID, away.ID, event.CommenceTime.In(eastern))]
			if !ok {
				return nil
			}

			upserted, err := s.storeEventSpreads(ctx, gameRow, home.ID, away.ID, event)
			if err != nil {
				return err
			}

			mu.Lock()
			report.EventsMatched++
			report.SpreadsUpserted += upserted
			mu.Unlock()
			return nil
		})
	}
	if err := workers.Wait(); err != nil {
		return OddsSyncReport{}, fmt.Errorf("refresh odds: %w", err)
	}

	return report, nil
}

func (s *OddsSyncService) storeEventSpreads(ctx context.Context, gameRow game.Game, homeTeamID, awayTeamID int64, event ExternalOddsEvent) (int, error) {
	upserted := 0
	for _, bookmaker := range event.Bookmakers {
		title := strings.TrimSpace(bookmaker.Title)
		if title == "" {
			title = strings.TrimSpace(bookmaker.Key)
		}
		for _, market := range bookmaker.Markets {
			if market.Key != spreadsMarketKey {
				continue
			}
			for _, outcome := range market.Outcomes {
				teamID := int64(0)
				switch strings.ToLower(strings.TrimSpace(outcome.Name)) {
				case strings.ToLower(strings.TrimSpace(event.HomeTeam)):
					teamID = homeTeamID
				case strings.ToLower(strings.TrimSpace(event.AwayTeam)):
					teamID = awayTeamID
				default:
					continue
				}

				if _, err := s.oddsRepo.Upsert(ctx, odds.Spread{
					GameID:    gameRow.ID,
					TeamID:    teamID,
					Bookmaker: title,
					Value:     outcome.Point,
				}); err != nil {
					return upserted, fmt.Errorf("upsert spread: %w", err)
				}
				upserted++
			}
		}
	}

	return upserted, nil
}

// gamePairingKey keys a game on its teams and eastern-time calendar
// date, which is how upstream events are matched to stored games.
func gamePairingKey(homeTeamID, awayTeamID int64, date time.Time) string {
	return fmt.Sprintf("%d:%d:%s", homeTeamID, awayTeamID, date.Format("2006-01-02"))
}
