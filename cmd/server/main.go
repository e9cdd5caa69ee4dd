package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/iho/simplebank/internal/adapter/http"
	"github.com/iho/simplebank/internal/adapter/http/handler"
	"github.com/iho/simplebank/internal/adapter/http/middleware"
	memoryRepo "github.com/iho/simplebank/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/simplebank/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/simplebank/internal/adapter/repository/redis"
	"github.com/iho/simplebank/internal/infrastructure/auth"
	"github.com/iho/simplebank/internal/infrastructure/config"
	"github.com/iho/simplebank/internal/infrastructure/logger"
	"github.com/iho/simplebank/internal/infrastructure/metrics"
	"github.com/iho/simplebank/internal/infrastructure/notifier"
	"github.com/iho/simplebank/internal/infrastructure/postgres"
	"github.com/iho/simplebank/internal/infrastructure/redis"
	"github.com/iho/simplebank/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	logger.Install(logger.New(logger.FromConfig(cfg, "server")))

	ctx := context.Background()

	openingBalance, err := parseOpeningBalance(cfg.OpeningBalance)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid opening balance")
	}

	// Storage
	store, err := openStorage(ctx, cfg, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("failed to open storage")
	}
	defer store.close()
	log.Info().Str("driver", cfg.StorageDriver).Msg("storage ready")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, redis.Config{
		URL:         cfg.RedisURL,
		PoolSize:    cfg.RedisPoolSize,
		DialTimeout: cfg.RedisDialTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	m := metrics.New()

	// Audit notifications never block or fail a committed operation
	sink, err := newAuditSink(cfg, log.Logger, redisClient)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure audit sink")
	}
	var audit usecase.Notifier
	var dispatcher *notifier.Dispatcher
	if sink != nil {
		dispatcher = notifier.NewDispatcher(notifier.DispatcherConfig{
			Sink:     sink,
			Logger:   log.Logger,
			Recorder: m,
			Timeout:  cfg.AuditTimeout,
		})
		audit = dispatcher
	}

	// Initialize use cases
	hasher := auth.NewBcryptHasher(0)
	idGen := postgresRepo.NewULIDGenerator()
	clock := usecase.NewMonotonicClock()

	accountUC := usecase.NewAccountUseCase(store.accounts, hasher, idGen, clock, openingBalance)
	transferUC := usecase.NewTransferUseCase(usecase.TransferUseCaseConfig{
		Unit:        usecase.NewUnitOfWork(store.txManager, store.retrier, cfg.TransactionTimeout),
		AccountRepo: store.accounts,
		LedgerRepo:  store.ledger,
		Notifier:    audit,
		IDGen:       idGen,
		Clock:       clock,
		Recorder:    m,
		Logger:      &log.Logger,
	})
	ledgerUC := usecase.NewLedgerUseCase(store.accounts, store.ledger)
	reconciliationUC := usecase.NewReconciliationUseCase(store.reconciliation, clock)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)

	// Health checks
	checks := map[string]handler.Checker{}
	if store.ping != nil {
		checks["postgres"] = handler.CheckerFunc(store.ping)
	}
	checks["redis"] = handler.CheckerFunc(redis.Ping(redisClient))

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		rateLimiter.OnReject(m.RateLimitHits.Inc)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:   handler.NewAccountHandler(accountUC).WithRecorder(m),
		AuthHandler:      handler.NewAuthHandler(accountUC, jwtManager, m),
		TransferHandler:  handler.NewTransferHandler(transferUC),
		LedgerHandler:    handler.NewLedgerHandler(ledgerUC, reconciliationUC).WithRecorder(m),
		HealthHandler:    handler.NewHealthHandler(checks),
		TokenVerifier:    jwtManager,
		IdempotencyStore: redisRepo.NewIdempotencyStore(redisClient),
		RateLimiter:      rateLimiter,
		Logger:           log.Logger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	if rateLimiter != nil {
		go cleanupLimiters(cleanupCtx, rateLimiter, time.Minute, 10*time.Minute)
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown: stop accepting requests, then drain audit events
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	if dispatcher != nil {
		if err := dispatcher.Close(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("audit events dropped on shutdown")
		}
	}

	log.Info().Msg("server stopped")
}

// storage bundles the adapters of one storage driver.
type storage struct {
	accounts       usecase.AccountRepository
	ledger         usecase.LedgerRepository
	reconciliation usecase.ReconciliationRepository
	txManager      usecase.TransactionManager
	retrier        usecase.Retrier
	ping           func(ctx context.Context) error
	close          func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		return newMemoryStorage(), nil
	case config.StorageDriverPostgres:
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.AutoMigrate {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return nil, err
		}
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	defer cancel()

	pool, err := postgres.NewPoolWithConfig(connectCtx, postgres.PoolConfig{
		DatabaseURL:      cfg.DatabaseURL,
		MaxConns:         cfg.DatabaseMaxConns,
		MinConns:         cfg.DatabaseMinConns,
		LockTimeout:      cfg.DatabaseLockTimeout,
		StatementTimeout: cfg.DatabaseStatementTimeout,
	})
	if err != nil {
		return nil, err
	}

	return &storage{
		accounts:       postgresRepo.NewAccountRepository(pool),
		ledger:         postgresRepo.NewTransactionRepository(pool),
		reconciliation: postgresRepo.NewReconciliationRepository(pool),
		txManager:      postgresRepo.NewTxManager(pool),
		retrier:        postgresRepo.NewRetrier(logger),
		ping:           pool.Ping,
		close:          pool.Close,
	}, nil
}

func newMemoryStorage() *storage {
	store := memoryRepo.NewStore()
	return &storage{
		accounts:       memoryRepo.NewAccountRepository(store),
		ledger:         memoryRepo.NewLedgerRepository(store),
		reconciliation: memoryRepo.NewReconciliationRepository(store),
		txManager:      memoryRepo.NewTxManager(store),
		close:          func() {},
	}
}

// newAuditSink returns the configured notifier, or nil when auditing is off.
func newAuditSink(cfg *config.Config, logger zerolog.Logger, client *goredis.Client) (usecase.Notifier, error) {
	switch cfg.AuditSink {
	case config.AuditSinkNone:
		return nil, nil
	case config.AuditSinkLog, "":
		return notifier.NewLogNotifier(logger), nil
	case config.AuditSinkWebhook:
		if cfg.AuditWebhookURL == "" {
			return nil, errors.New("AUDIT_WEBHOOK_URL is required for the webhook sink")
		}
		return notifier.NewWebhookNotifier(cfg.AuditWebhookURL, cfg.AuditTimeout), nil
	case config.AuditSinkRedis:
		if client == nil {
			return nil, errors.New("REDIS_URL is required for the redis sink")
		}
		return notifier.NewRedisNotifier(client, cfg.AuditRedisChannel), nil
	default:
		return nil, fmt.Errorf("unknown audit sink %q", cfg.AuditSink)
	}
}

func parseOpeningBalance(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse %q: %w", s, err)
	}
	if d.IsNegative() || !d.Equal(d.Round(2)) {
		return decimal.Zero, fmt.Errorf("opening balance %s must be non-negative with at most two decimal places", d)
	}
	return d, nil
}

func cleanupLimiters(ctx context.Context, rl *middleware.RateLimiter, every, maxIdle time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.CleanupLimiters(maxIdle)
		}
	}
}
