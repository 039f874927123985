package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/pickem-league/external/oddsfeed"
	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/domain/account"
	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/odds"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/season"
	"github.com/riskibarqy/pickem-league/internal/domain/team"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/account/gatekeeper"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pickem-league/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

// repositories bundles every persistence port the services depend on,
// so the postgres and in-memory wirings stay interchangeable.
type repositories struct {
	seasons  season.Repository
	teams    team.Repository
	games    game.Repository
	matchups game.MatchupRepository
	results  game.ResultRepository
	spreads  odds.Repository
	picks    pick.Repository
	accounts account.Repository
}

// NewHTTPServer wires repositories, external clients, services, and the
// HTTP router into a ready-to-run server.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http addr cannot be empty")
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	verifier := gatekeeper.NewClient(gatekeeper.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.GatekeeperTimeout},
		BaseURL:        cfg.GatekeeperBaseURL,
		IntrospectPath: cfg.GatekeeperIntrospectPath,
		AdminKey:       cfg.GatekeeperAdminKey,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatekeeperCircuitEnabled,
			FailureThreshold: cfg.GatekeeperCircuitFailureCount,
			OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenMax,
		},
	}, repos.accounts)

	var oddsProvider usecase.OddsFeedProvider
	if cfg.OddsFeedEnabled {
		oddsProvider = oddsfeed.NewClient(oddsfeed.ClientConfig{
			BaseURL:    cfg.OddsFeedBaseURL,
			APIKey:     cfg.OddsFeedAPIKey,
			Regions:    cfg.OddsFeedRegions,
			Markets:    cfg.OddsFeedMarkets,
			Timeout:    cfg.OddsFeedTimeout,
			MaxRetries: cfg.OddsFeedMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.OddsFeedCircuitEnabled,
				FailureThreshold: cfg.OddsFeedCircuitFailureCount,
				OpenTimeout:      cfg.OddsFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.OddsFeedCircuitHalfOpenMaxReq,
			},
		})
	} else {
		logger.Info("odds feed disabled", "reason", "ODDSFEED_ENABLED=false")
	}

	matchupService := usecase.NewMatchupService(repos.seasons, repos.matchups, repos.results, cfg.ReferenceBookmaker)
	pickService := usecase.NewPickService(repos.seasons, repos.games, repos.spreads, repos.picks, repos.accounts, cfg.ReferenceBookmaker)
	resultsService := usecase.NewResultsService(repos.seasons, repos.picks)
	standingsService := usecase.NewStandingsService(repos.seasons, repos.picks, logger, cfg.StandingsHistoryWorkers)
	ingestionService := usecase.NewIngestionService(repos.seasons, repos.teams, repos.games, repos.results, repos.spreads, repos.picks, cfg.ReferenceBookmaker)
	oddsSyncService := usecase.NewOddsSyncService(oddsProvider, repos.seasons, repos.teams, repos.games, repos.spreads, logger, cfg.OddsFeedSyncWorkers)

	handler := httpapi.NewHandler(
		matchupService,
		pickService,
		resultsService,
		standingsService,
		ingestionService,
		oddsSyncService,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	dbURL := strings.TrimSpace(cfg.DBURL)
	if dbURL == "" || dbURL == "memory" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty or set to memory")
		return buildMemoryRepositories(), nil
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return repositories{}, err
	}

	repos := repositories{
		seasons:  postgres.NewSeasonRepository(db),
		teams:    postgres.NewTeamRepository(db),
		games:    postgres.NewGameRepository(db),
		matchups: postgres.NewMatchupRepository(db),
		results:  postgres.NewResultRepository(db),
		spreads:  postgres.NewSpreadRepository(db),
		picks:    postgres.NewPickRepository(db),
		accounts: postgres.NewAccountRepository(db, id.NewRandomGenerator()),
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cache.NewTeamRepository(repos.teams, store)
		repos.matchups = cache.NewMatchupRepository(repos.matchups, store)
		repos.spreads = cache.NewSpreadRepository(repos.spreads, store)
		repos.results = cache.NewResultRepository(repos.results, store)
		logger.Info("repository cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return repos, nil
}

func buildMemoryRepositories() repositories {
	seasons := memory.NewSeasonRepository()
	teams := memory.NewTeamRepository(memory.SeedTeams())
	games := memory.NewGameRepository()
	results := memory.NewResultRepository()
	spreads := memory.NewSpreadRepository()
	accounts := memory.NewAccountRepository()

	return repositories{
		seasons:  seasons,
		teams:    teams,
		games:    games,
		matchups: memory.NewMatchupRepository(seasons, teams, games, spreads, results),
		results:  results,
		spreads:  spreads,
		picks:    memory.NewPickRepository(seasons, teams, games, results, accounts),
		accounts: accounts,
	}
}

func openDatabase(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	return db, nil
}
