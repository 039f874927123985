package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
)

type ResultRepository struct {
	mu          sync.RWMutex
	results     map[int64]game.Result
	teamResults map[string]game.TeamResult
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{
		results:     make(map[int64]game.Result),
		teamResults: make(map[string]game.TeamResult),
	}
}

func (r *ResultRepository) GetResult(_ context.Context, gameID int64) (game.Result, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result, ok := r.results[gameID]
	return result, ok, nil
}

func (r *ResultRepository) UpsertResult(_ context.Context, item game.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.results[item.GameID] = item
	return nil
}

func (r *ResultRepository) ReplaceTeamResults(_ context.Context, items []game.TeamResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		r.teamResults[teamResultKey(item.GameID, item.TeamID)] = item
	}
	return nil
}

func (r *ResultRepository) ListTeamRecords(_ context.Context, seasonID int64) ([]game.TeamRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recordsByTeam := make(map[int64]*game.TeamRecord)
	for _, item := range r.teamResults {
		if item.SeasonID != seasonID {
			continue
		}
		record, ok := recordsByTeam[item.TeamID]
		if !ok {
			record = &game.TeamRecord{TeamID: item.TeamID}
			recordsByTeam[item.TeamID] = record
		}
		record.Games++
		if item.Win {
			record.Wins++
		}
		if item.Cover {
			record.Covers++
		}
	}

	out := make([]game.TeamRecord, 0, len(recordsByTeam))
	for _, record := range recordsByTeam {
		out = append(out, *record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })

	return out, nil
}

func teamResultKey(gameID, teamID int64) string {
	return fmt.Sprintf("%d:%d", gameID, teamID)
}
