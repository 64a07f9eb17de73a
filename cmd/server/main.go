package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/codehasanali/mywallet/internal/adapter/http"
	"github.com/codehasanali/mywallet/internal/adapter/http/handler"
	"github.com/codehasanali/mywallet/internal/adapter/http/middleware"
	"github.com/codehasanali/mywallet/internal/adapter/idgen"
	postgresRepo "github.com/codehasanali/mywallet/internal/adapter/repository/postgres"
	redisRepo "github.com/codehasanali/mywallet/internal/adapter/repository/redis"
	"github.com/codehasanali/mywallet/internal/infrastructure/config"
	"github.com/codehasanali/mywallet/internal/infrastructure/logger"
	"github.com/codehasanali/mywallet/internal/infrastructure/metrics"
	"github.com/codehasanali/mywallet/internal/infrastructure/postgres"
	"github.com/codehasanali/mywallet/internal/infrastructure/redis"
	"github.com/codehasanali/mywallet/internal/ledger"
)

type redisPinger struct {
	client *goredis.Client
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// backend bundles the driver-specific pieces selected at startup.
type backend struct {
	store    ledger.Store
	sessions handler.SessionService
	pinger   handler.Pinger
	close    func()
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.ConnectMaxElapsed

	switch cfg.StorageDriver {
	case "redis":
		var client *goredis.Client
		err := backoff.Retry(func() error {
			var err error
			client, err = redis.NewClient(ctx, cfg.RedisURL)
			if err != nil {
				log.Warn().Err(err).Msg("redis not ready, retrying")
			}
			return err
		}, backoff.WithContext(policy, ctx))
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}

		return &backend{
			store:    redisRepo.NewBalanceStore(client, cfg.StorageNamespace),
			sessions: redisRepo.NewSessionStore(client, cfg.StorageNamespace),
			pinger:   redisPinger{client: client},
			close:    func() { client.Close() },
		}, nil

	case "postgres":
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.DatabaseMigrations); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}

		var pool *pgxpool.Pool
		err := backoff.Retry(func() error {
			var err error
			pool, err = postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
			if err != nil {
				log.Warn().Err(err).Msg("postgres not ready, retrying")
			}
			return err
		}, backoff.WithContext(policy, ctx))
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}

		return &backend{
			store:    postgresRepo.NewBalanceStore(pool, cfg.StorageNamespace),
			sessions: postgresRepo.NewSessionStore(pool, cfg.StorageNamespace),
			pinger:   pool,
			close:    pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func main() {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx := context.Background()

	be, err := openBackend(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage backend")
	}
	defer be.close()
	log.Info().Str("driver", cfg.StorageDriver).Msg("storage backend ready")

	limitPolicy, err := ledger.ParseLimitPolicy(cfg.LimitPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid limit policy")
	}

	m := metrics.New()

	wallet := ledger.New(be.store, idgen.NewULIDGenerator(),
		ledger.WithLimitPolicy(limitPolicy),
		ledger.WithLogger(log),
		ledger.WithMetrics(m),
	)

	// Hydrate from the store; on transport failure the in-memory defaults
	// stay authoritative and the server still starts.
	if err := wallet.Load(ctx); err != nil {
		log.Warn().Err(err).Msg("could not hydrate wallet from store, starting empty")
	}

	// Mirror the aggregates into gauges on every commit.
	syncGauges := func(snap ledger.Snapshot) {
		m.Balance.Set(snap.Balance.InexactFloat64())
		m.Income.Set(snap.Income.InexactFloat64())
		m.Expense.Set(snap.Expense.InexactFloat64())
	}
	syncGauges(wallet.Snapshot())
	unsubscribe := wallet.Subscribe(syncGauges)
	defer unsubscribe()

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		WalletHandler:  handler.NewWalletHandler(wallet),
		LimitHandler:   handler.NewLimitHandler(wallet),
		ReportHandler:  handler.NewReportHandler(wallet),
		SessionHandler: handler.NewSessionHandler(be.sessions),
		HealthHandler:  handler.NewHealthHandler(be.pinger),
		Logger:         log,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
