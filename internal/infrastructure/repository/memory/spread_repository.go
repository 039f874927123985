package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/odds"
)

type SpreadRepository struct {
	mu      sync.RWMutex
	spreads []odds.Spread
	nextID  int64
}

func NewSpreadRepository() *SpreadRepository {
	return &SpreadRepository{nextID: 1}
}

func (r *SpreadRepository) GetForGameTeam(_ context.Context, gameID, teamID int64, bookmaker string) (odds.Spread, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.spreads {
		if item.GameID == gameID && item.TeamID == teamID && strings.EqualFold(item.Bookmaker, bookmaker) {
			return item, true, nil
		}
	}

	return odds.Spread{}, false, nil
}

func (r *SpreadRepository) ListByGame(_ context.Context, gameID int64) ([]odds.Spread, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]odds.Spread, 0)
	for _, item := range r.spreads {
		if item.GameID == gameID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bookmaker != out[j].Bookmaker {
			return out[i].Bookmaker < out[j].Bookmaker
		}
		return out[i].TeamID < out[j].TeamID
	})

	return out, nil
}

func (r *SpreadRepository) Upsert(_ context.Context, item odds.Spread) (odds.Spread, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.spreads {
		if r.spreads[idx].GameID == item.GameID &&
			r.spreads[idx].TeamID == item.TeamID &&
			strings.EqualFold(r.spreads[idx].Bookmaker, item.Bookmaker) {
			item.ID = r.spreads[idx].ID
			r.spreads[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.spreads = append(r.spreads, item)

	return item, nil
}
