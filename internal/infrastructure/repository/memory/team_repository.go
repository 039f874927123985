package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	teams  []team.Team
	nextID int64
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	repo := &TeamRepository{nextID: 1}
	for _, item := range teams {
		if item.ID >= repo.nextID {
			repo.nextID = item.ID + 1
		}
		repo.teams = append(repo.teams, item)
	}

	return repo
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, len(r.teams))
	copy(out, r.teams)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID int64) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teams {
		if item.ID == teamID {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) GetByFullName(_ context.Context, city, name string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.teams {
		if strings.EqualFold(item.City, city) && strings.EqualFold(item.Name, name) {
			return item, true, nil
		}
	}

	return team.Team{}, false, nil
}

func (r *TeamRepository) Upsert(_ context.Context, item team.Team) (team.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.teams {
		if strings.EqualFold(r.teams[idx].City, item.City) && strings.EqualFold(r.teams[idx].Name, item.Name) {
			item.ID = r.teams[idx].ID
			r.teams[idx] = item
			return item, nil
		}
	}

	item.ID = r.nextID
	r.nextID++
	r.teams = append(r.teams, item)

	return item, nil
}
