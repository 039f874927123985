package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/season"
)

type SeasonRepository struct {
	mu           sync.RWMutex
	seasons      []season.Season
	weeks        []season.Week
	nextSeasonID int64
	nextWeekID   int64
}

func NewSeasonRepository() *SeasonRepository {
	return &SeasonRepository{nextSeasonID: 1, nextWeekID: 1}
}

func (r *SeasonRepository) GetByYear(_ context.Context, year int) (season.Season, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.seasons {
		if item.Year == year {
			return item, true, nil
		}
	}

	return season.Season{}, false, nil
}

func (r *SeasonRepository) GetWeek(_ context.Context, seasonID int64, number int) (season.Week, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.weeks {
		if item.SeasonID == seasonID && item.Number == number {
			return item, true, nil
		}
	}

	return season.Week{}, false, nil
}

func (r *SeasonRepository) ListWeeks(_ context.Context, seasonID int64) ([]season.Week, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]season.Week, 0)
	for _, item := range r.weeks {
		if item.SeasonID == seasonID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })

	return out, nil
}

func (r *SeasonRepository) UpsertSeason(_ context.Context, item season.Season) (season.Season, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.seasons {
		if r.seasons[idx].Year == item.Year {
			item.ID = r.seasons[idx].ID
			r.seasons[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextSeasonID
	r.nextSeasonID++
	r.seasons = append(r.seasons, item)

	return item, nil
}

func (r *SeasonRepository) UpsertWeek(_ context.Context, item season.Week) (season.Week, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.weeks {
		if r.weeks[idx].SeasonID == item.SeasonID && r.weeks[idx].Number == item.Number {
			item.ID = r.weeks[idx].ID
			r.weeks[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextWeekID
	r.nextWeekID++
	r.weeks = append(r.weeks, item)

	return item, nil
}

func (r *SeasonRepository) weekByID(weekID int64) (season.Week, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.weeks {
		if item.ID == weekID {
			return item, true
		}
	}

	return season.Week{}, false
}
