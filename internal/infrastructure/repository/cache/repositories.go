package cache

import (
	"context"
	"strconv"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
	basecache "github.com/riskibarqy/pickem-league/internal/platform/cache"
)

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	key := "team:id:" + strconv.FormatInt(teamID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) GetByFullName(ctx context.Context, city, name string) (team.Team, bool, error) {
	key := "team:name:" + strings.ToLower(city) + ":" + strings.ToLower(name)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByFullName(ctx, city, name)
		if err != nil {
			return nil, err
		}
		return cachedTeam{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeam)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) (team.Team, error) {
	stored, err := r.next.Upsert(ctx, item)
	if err != nil {
		return team.Team{}, err
	}

	r.cache.DeletePrefix(ctx, "team:")
	r.cache.DeletePrefix(ctx, matchupKeyPrefix)
	return stored, nil
}

type cachedTeam struct {
	value  team.Team
	exists bool
}

const matchupKeyPrefix = "matchup:"

type MatchupRepository struct {
	next  game.MatchupRepository
	cache *basecache.Store
}

func NewMatchupRepository(next game.MatchupRepository, cache *basecache.Store) *MatchupRepository {
	return &MatchupRepository{next: next, cache: cache}
}

func (r *MatchupRepository) ListMatchups(ctx context.Context, weekID int64, bookmaker string) ([]game.MatchupRow, error) {
	key := matchupKey(weekID, bookmaker)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListMatchups(ctx, weekID, bookmaker)
		if err != nil {
			return nil, err
		}
		return append([]game.MatchupRow(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.MatchupRow)
	return append([]game.MatchupRow(nil), items...), nil
}

func matchupKey(weekID int64, bookmaker string) string {
	return matchupKeyPrefix + "week:" + strconv.FormatInt(weekID, 10) + ":book:" + strings.ToLower(bookmaker)
}

// SpreadRepository caches spread lookups and drops matchup views when a
// line moves.
type SpreadRepository struct {
	next  odds.Repository
	cache *basecache.Store
}

func NewSpreadRepository(next odds.Repository, cache *basecache.Store) *SpreadRepository {
	return &SpreadRepository{next: next, cache: cache}
}

func (r *SpreadRepository) GetForGameTeam(ctx context.Context, gameID, teamID int64, bookmaker string) (odds.Spread, bool, error) {
	key := spreadKey(gameID, teamID, bookmaker)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetForGameTeam(ctx, gameID, teamID, bookmaker)
		if err != nil {
			return nil, err
		}
		return cachedSpread{value: item, exists: exists}, nil
	})
	if err != nil {
		return odds.Spread{}, false, err
	}

	cached, _ := v.(cachedSpread)
	return cached.value, cached.exists, nil
}

func (r *SpreadRepository) ListByGame(ctx context.Context, gameID int64) ([]odds.Spread, error) {
	key := "spread:game:" + strconv.FormatInt(gameID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByGame(ctx, gameID)
		if err != nil {
			return nil, err
		}
		return append([]odds.Spread(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]odds.Spread)
	return append([]odds.Spread(nil), items...), nil
}

func (r *SpreadRepository) Upsert(ctx context.Context, item odds.Spread) (odds.Spread, error) {
	stored, err := r.next.Upsert(ctx, item)
	if err != nil {
		return odds.Spread{}, err
	}

	r.cache.DeletePrefix(ctx, "spread:")
	r.cache.DeletePrefix(ctx, matchupKeyPrefix)
	return stored, nil
}

type cachedSpread struct {
	value  odds.Spread
	exists bool
}

func spreadKey(gameID, teamID int64, bookmaker string) string {
	return "spread:line:" + strconv.FormatInt(gameID, 10) + ":" + strconv.FormatInt(teamID, 10) + ":" + strings.ToLower(bookmaker)
}

// ResultRepository invalidates matchup views and season records when a
// final score lands.
type ResultRepository struct {
	next  game.ResultRepository
	cache *basecache.Store
}

func NewResultRepository(next game.ResultRepository, cache *basecache.Store) *ResultRepository {
	return &ResultRepository{next: next, cache: cache}
}

func (r *ResultRepository) GetResult(ctx context.Context, gameID int64) (game.Result, bool, error) {
	return r.next.GetResult(ctx, gameID)
}

func (r *ResultRepository) UpsertResult(ctx context.Context, item game.Result) error {
	if err := r.next.UpsertResult(ctx, item); err != nil {
		return err
	}

	r.cache.DeletePrefix(ctx, matchupKeyPrefix)
	return nil
}

func (r *ResultRepository) ReplaceTeamResults(ctx context.Context, items []game.TeamResult) error {
	if err := r.next.ReplaceTeamResults(ctx, items); err != nil {
		return err
	}

	r.cache.DeletePrefix(ctx, "record:")
	r.cache.DeletePrefix(ctx, matchupKeyPrefix)
	return nil
}

func (r *ResultRepository) ListTeamRecords(ctx context.Context, seasonID int64) ([]game.TeamRecord, error) {
	key := "record:season:" + strconv.FormatInt(seasonID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListTeamRecords(ctx, seasonID)
		if err != nil {
			return nil, err
		}
		return append([]game.TeamRecord(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]game.TeamRecord)
	return append([]game.TeamRecord(nil), items...), nil
}
