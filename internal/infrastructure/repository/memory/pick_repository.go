package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

// PickRepository keeps picks in memory and answers the scored-row joins
// by walking its sibling repositories.
type PickRepository struct {
	mu     sync.RWMutex
	picks  []pick.Pick
	nextID int64

	seasons  *SeasonRepository
	teams    *TeamRepository
	games    *GameRepository
	results  *ResultRepository
	accounts *AccountRepository
}

func NewPickRepository(
	seasons *SeasonRepository,
	teams *TeamRepository,
	games *GameRepository,
	results *ResultRepository,
	accounts *AccountRepository,
) *PickRepository {
	return &PickRepository{
		nextID:   1,
		seasons:  seasons,
		teams:    teams,
		games:    games,
		results:  results,
		accounts: accounts,
	}
}

func (r *PickRepository) ListForWeek(ctx context.Context, accountID, weekID int64) ([]pick.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, item := range r.picks {
		if item.AccountID != accountID {
			continue
		}
		gameRow, exists, _ := r.games.GetByID(ctx, item.GameID)
		if !exists || gameRow.WeekID != weekID {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })

	return out, nil
}

func (r *PickRepository) ReplaceForWeek(ctx context.Context, accountID, weekID int64, items []pick.Pick) error {
	existing, err := r.ListForWeek(ctx, accountID, weekID)
	if err != nil {
		return err
	}

	incoming := make(map[int64]pick.Pick, len(items))
	for _, item := range items {
		incoming[item.GameID] = item
	}

	for _, current := range existing {
		if current.Status != pick.StatusLocked {
			continue
		}
		replacement, ok := incoming[current.GameID]
		if !ok {
			return pick.ErrLocked
		}
		if replacement.TeamID != current.TeamID || replacement.Confidence != current.Confidence {
			return pick.ErrLocked
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.picks[:0]
	for _, item := range r.picks {
		if item.AccountID != accountID {
			kept = append(kept, item)
			continue
		}
		gameRow, exists, _ := r.games.GetByID(ctx, item.GameID)
		if !exists || gameRow.WeekID != weekID {
			kept = append(kept, item)
			continue
		}
		if item.Status == pick.StatusLocked {
			kept = append(kept, item)
			delete(incoming, item.GameID)
			continue
		}
		replacement, ok := incoming[item.GameID]
		if !ok {
			continue
		}
		replacement.ID = item.ID
		kept = append(kept, replacement)
		delete(incoming, item.GameID)
	}
	r.picks = kept

	for _, item := range items {
		replacement, ok := incoming[item.GameID]
		if !ok {
			continue
		}
		replacement.ID = r.nextID
		r.nextID++
		r.picks = append(r.picks, replacement)
	}

	return nil
}

func (r *PickRepository) LockByGame(_ context.Context, gameID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for idx := range r.picks {
		if r.picks[idx].GameID == gameID {
			r.picks[idx].Status = pick.StatusLocked
		}
	}

	return nil
}

func (r *PickRepository) ListWeekResultRows(ctx context.Context, seasonID int64, weekNumber int) ([]pick.ResultRow, error) {
	week, exists, err := r.seasons.GetWeek(ctx, seasonID, weekNumber)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []pick.ResultRow{}, nil
	}

	return r.resultRows(ctx, func(gameRow game.Game, _ int) bool {
		return gameRow.WeekID == week.ID
	})
}

func (r *PickRepository) ListSeasonResultRows(ctx context.Context, seasonID int64, throughWeek int) ([]pick.ResultRow, error) {
	return r.resultRows(ctx, func(gameRow game.Game, weekNumber int) bool {
		if gameRow.SeasonID != seasonID {
			return false
		}
		return throughWeek <= 0 || weekNumber <= throughWeek
	})
}

func (r *PickRepository) resultRows(ctx context.Context, include func(game.Game, int) bool) ([]pick.ResultRow, error) {
	r.mu.RLock()
	picks := make([]pick.Pick, len(r.picks))
	copy(picks, r.picks)
	r.mu.RUnlock()

	rows := make([]pick.ResultRow, 0, len(picks))
	for _, item := range picks {
		gameRow, exists, err := r.games.GetByID(ctx, item.GameID)
		if err != nil || !exists {
			continue
		}
		week, ok := r.seasons.weekByID(gameRow.WeekID)
		if !ok {
			continue
		}
		if !include(gameRow, week.Number) {
			continue
		}

		opponentID := gameRow.HomeTeamID
		if item.TeamID == gameRow.HomeTeamID {
			opponentID = gameRow.AwayTeamID
		}
		picked, _, _ := r.teams.GetByID(ctx, item.TeamID)
		opponent, _, _ := r.teams.GetByID(ctx, opponentID)

		row := pick.ResultRow{
			Username:       r.usernameByID(ctx, item.AccountID),
			WeekNumber:     week.Number,
			GameID:         item.GameID,
			PickedTeamID:   item.TeamID,
			PickedTeamName: picked.FullName(),
			OpponentName:   opponent.FullName(),
			Confidence:     item.Confidence,
			SpreadValue:    item.SpreadValue,
		}
		if result, done, _ := r.results.GetResult(ctx, item.GameID); done {
			pickedScore, opponentScore := result.HomeScore, result.AwayScore
			if item.TeamID == gameRow.AwayTeamID {
				pickedScore, opponentScore = result.AwayScore, result.HomeScore
			}
			row.PickedScore = &pickedScore
			row.OpponentScore = &opponentScore
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].WeekNumber != rows[j].WeekNumber {
			return rows[i].WeekNumber < rows[j].WeekNumber
		}
		if !strings.EqualFold(rows[i].Username, rows[j].Username) {
			return strings.ToLower(rows[i].Username) < strings.ToLower(rows[j].Username)
		}
		return rows[i].GameID < rows[j].GameID
	})

	return rows, nil
}

func (r *PickRepository) usernameByID(_ context.Context, accountID int64) string {
	r.accounts.mu.RLock()
	defer r.accounts.mu.RUnlock()

	for _, item := range r.accounts.accounts {
		if item.ID == accountID {
			return item.Username
		}
	}

	return ""
}
