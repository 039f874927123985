package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
)

type GameRepository struct {
	mu     sync.RWMutex
	games  []game.Game
	nextID int64
}

func NewGameRepository() *GameRepository {
	return &GameRepository{nextID: 1}
}

func (r *GameRepository) GetByID(_ context.Context, gameID int64) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.games {
		if item.ID == gameID {
			return item, true, nil
		}
	}

	return game.Game{}, false, nil
}

func (r *GameRepository) ListByIDs(_ context.Context, gameIDs []int64) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = struct{}{}
	}

	out := make([]game.Game, 0, len(gameIDs))
	for _, item := range r.games {
		if _, ok := wanted[item.ID]; ok {
			out = append(out, item)
		}
	}
	sortGames(out)

	return out, nil
}

func (r *GameRepository) ListByWeek(_ context.Context, weekID int64) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, item := range r.games {
		if item.WeekID == weekID {
			out = append(out, item)
		}
	}
	sortGames(out)

	return out, nil
}

func (r *GameRepository) FindByMatchup(_ context.Context, seasonID, homeTeamID, awayTeamID int64, startDate time.Time) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.games {
		if item.SeasonID == seasonID &&
			item.HomeTeamID == homeTeamID &&
			item.AwayTeamID == awayTeamID &&
			sameDay(item.StartDate, startDate) {
			return item, true, nil
		}
	}

	return game.Game{}, false, nil
}

func (r *GameRepository) Upsert(_ context.Context, item game.Game) (game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.games {
		if r.games[idx].SeasonID == item.SeasonID &&
			r.games[idx].WeekID == item.WeekID &&
			r.games[idx].HomeTeamID == item.HomeTeamID &&
			r.games[idx].AwayTeamID == item.AwayTeamID {
			item.ID = r.games[idx].ID
			r.games[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.games = append(r.games, item)

	return item, nil
}

func sortGames(items []game.Game) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].StartDate.Equal(items[j].StartDate) {
			return items[i].StartDate.Before(items[j].StartDate)
		}
		return items[i].ID < items[j].ID
	})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
