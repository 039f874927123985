package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/account"
	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/domain/season"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
)

const testBookmaker = "DraftKings"

type testEnv struct {
	seasons  *memory.SeasonRepository
	teams    *memory.TeamRepository
	games    *memory.GameRepository
	results  *memory.ResultRepository
	spreads  *memory.SpreadRepository
	accounts *memory.AccountRepository
	picks    *memory.PickRepository
	matchups *memory.MatchupRepository

	season season.Season
	week   season.Week
	gameKC game.Game
	gamePH game.Game
	alice  account.Account
	bob    account.Account
}

// newTestEnv seeds a 2025 season with one week of two games carrying
// DraftKings lines, plus two registered accounts.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	env := &testEnv{
		seasons:  memory.NewSeasonRepository(),
		teams:    memory.NewTeamRepository(nil),
		games:    memory.NewGameRepository(),
		results:  memory.NewResultRepository(),
		spreads:  memory.NewSpreadRepository(),
		accounts: memory.NewAccountRepository(),
	}
	env.picks = memory.NewPickRepository(env.seasons, env.teams, env.games, env.results, env.accounts)
	env.matchups = memory.NewMatchupRepository(env.seasons, env.teams, env.games, env.spreads, env.results)

	var err error
	env.season, err = env.seasons.UpsertSeason(ctx, season.Season{Year: 2025})
	if err != nil {
		t.Fatalf("seed season: %v", err)
	}
	env.week, err = env.seasons.UpsertWeek(ctx, season.Week{
		SeasonID:  env.season.ID,
		Number:    1,
		StartDate: time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed week: %v", err)
	}

	teams := []team.Team{
		{City: "Kansas City", Name: "Chiefs", Abbreviation: "KC"},
		{City: "Buffalo", Name: "Bills", Abbreviation: "BUF"},
		{City: "Philadelphia", Name: "Eagles", Abbreviation: "PHI"},
		{City: "Dallas", Name: "Cowboys", Abbreviation: "DAL"},
	}
	seeded := make([]team.Team, 0, len(teams))
	for _, item := range teams {
		stored, err := env.teams.Upsert(ctx, item)
		if err != nil {
			t.Fatalf("seed team %s: %v", item.Name, err)
		}
		seeded = append(seeded, stored)
	}

	env.gameKC, err = env.games.Upsert(ctx, game.Game{
		SeasonID:   env.season.ID,
		WeekID:     env.week.ID,
		HomeTeamID: seeded[0].ID,
		AwayTeamID: seeded[1].ID,
		StartDate:  time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC),
		StartTime:  "8:20 PM",
	})
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}
	env.gamePH, err = env.games.Upsert(ctx, game.Game{
		SeasonID:   env.season.ID,
		WeekID:     env.week.ID,
		HomeTeamID: seeded[2].ID,
		AwayTeamID: seeded[3].ID,
		StartDate:  time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:  "1:00 PM",
	})
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}

	env.seedSpread(t, env.gameKC, seeded[0].ID, -2.5)
	env.seedSpread(t, env.gameKC, seeded[1].ID, 2.5)
	env.seedSpread(t, env.gamePH, seeded[2].ID, -3)
	env.seedSpread(t, env.gamePH, seeded[3].ID, 3)

	env.alice, err = env.accounts.Upsert(ctx, account.Account{Username: "alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
	env.bob, err = env.accounts.Upsert(ctx, account.Account{Username: "bob", Email: "bob@example.com"})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	return env
}

func (env *testEnv) seedSpread(t *testing.T, gameRow game.Game, teamID int64, value float64) {
	t.Helper()
	_, err := env.spreads.Upsert(context.Background(), odds.Spread{
		GameID:    gameRow.ID,
		TeamID:    teamID,
		Bookmaker: testBookmaker,
		Value:     value,
	})
	if err != nil {
		t.Fatalf("seed spread: %v", err)
	}
}

func (env *testEnv) seedExtraGame(t *testing.T, weekID, homeTeamID, awayTeamID int64) game.Game {
	t.Helper()
	gameRow, err := env.games.Upsert(context.Background(), game.Game{
		SeasonID:   env.season.ID,
		WeekID:     weekID,
		HomeTeamID: homeTeamID,
		AwayTeamID: awayTeamID,
		StartDate:  time.Date(2025, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:  "4:25 PM",
	})
	if err != nil {
		t.Fatalf("seed extra game: %v", err)
	}
	env.seedSpread(t, gameRow, homeTeamID, -1.5)
	env.seedSpread(t, gameRow, awayTeamID, 1.5)

	return gameRow
}

func (env *testEnv) addWeek(t *testing.T, number int) season.Week {
	t.Helper()
	week, err := env.seasons.UpsertWeek(context.Background(), season.Week{
		SeasonID:  env.season.ID,
		Number:    number,
		StartDate: time.Date(2025, 9, 4+7*(number-1), 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 9, 8+7*(number-1), 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed week %d: %v", number, err)
	}

	return week
}

func principalFor(acct account.Account) account.Principal {
	return account.Principal{Subject: acct.PublicID, Username: acct.Username, Email: acct.Email}
}
