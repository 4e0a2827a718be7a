package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/swiss-tournament/internal/config"
	"github.com/riskibarqy/swiss-tournament/internal/domain/match"
	"github.com/riskibarqy/swiss-tournament/internal/domain/player"
	"github.com/riskibarqy/swiss-tournament/internal/domain/tournament"
	cacherepo "github.com/riskibarqy/swiss-tournament/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/swiss-tournament/internal/infrastructure/repository/guarded"
	"github.com/riskibarqy/swiss-tournament/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/swiss-tournament/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/swiss-tournament/internal/interfaces/httpapi"
	"github.com/riskibarqy/swiss-tournament/internal/platform/cache"
	"github.com/riskibarqy/swiss-tournament/internal/platform/logging"
	"github.com/riskibarqy/swiss-tournament/internal/platform/resilience"
	"github.com/riskibarqy/swiss-tournament/internal/usecase"
)

type repositories struct {
	players     player.Repository
	tournaments tournament.Repository
	matches     match.Repository
}

// NewHTTPServer wires storage, services and the router. The returned cleanup
// releases storage resources and must be called after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, cleanup, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	repos = decorateRepositories(cfg, repos, logger)

	playerSvc := usecase.NewPlayerService(repos.players)
	tournamentSvc := usecase.NewTournamentService(repos.tournaments, repos.players, repos.matches, logger)
	standingSvc := usecase.NewStandingService(repos.tournaments, repos.matches, cfg.StandingsBatchWorkers, logger)
	pairingSvc := usecase.NewPairingService(repos.tournaments, repos.matches, logger)

	handler := httpapi.NewHandler(playerSvc, tournamentSvc, standingSvc, pairingSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if cfg.StorageSeedDemo {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, nil, fmt.Errorf("seed demo data: %w", err)
			}
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", dbNameFromURL(cfg.DBURL), "seeded", cfg.StorageSeedDemo)

		return repositories{
			players:     postgres.NewPlayerRepository(db),
			tournaments: postgres.NewTournamentRepository(db),
			matches:     postgres.NewMatchRepository(db),
		}, db.Close, nil
	case config.StorageMemory, "":
		var (
			players     *memory.PlayerRepository
			tournaments *memory.TournamentRepository
			matches     *memory.MatchRepository
		)
		if cfg.StorageSeedDemo {
			players, tournaments, matches = memory.NewSeededStore()
		} else {
			players = memory.NewPlayerRepository(nil)
			tournaments = memory.NewTournamentRepository(players, nil)
			matches = memory.NewMatchRepository(nil)
		}
		logger.Info("storage ready", "driver", config.StorageMemory, "seeded", cfg.StorageSeedDemo)

		return repositories{players: players, tournaments: tournaments, matches: matches}, noop, nil
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// decorateRepositories stacks the read cache over the circuit breaker, so
// cache hits never count against the breaker.
func decorateRepositories(cfg config.Config, repos repositories, logger *logging.Logger) repositories {
	if cfg.StorageCircuitEnabled {
		breaker := guarded.NewBreaker(resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: cfg.StorageCircuitFailureCount,
			OpenTimeout:      cfg.StorageCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StorageCircuitHalfOpenMaxReq,
		}, logger)
		repos = repositories{
			players:     guarded.NewPlayerRepository(repos.players, breaker),
			tournaments: guarded.NewTournamentRepository(repos.tournaments, breaker),
			matches:     guarded.NewMatchRepository(repos.matches, breaker),
		}
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.players = cacherepo.NewPlayerRepository(repos.players, store)
		repos.tournaments = cacherepo.NewTournamentRepository(repos.tournaments, store)
	}

	return repos
}

// OpenDB opens a traced lib/pq pool and verifies connectivity.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.ServiceName),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
