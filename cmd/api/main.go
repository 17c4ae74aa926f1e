package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"provider-bridge/config"
	httpHandler "provider-bridge/internal/adapter/http/handler"
	"provider-bridge/internal/adapter/ledger"
	"provider-bridge/internal/adapter/provider"
	pgStorage "provider-bridge/internal/adapter/storage/postgres"
	redisStorage "provider-bridge/internal/adapter/storage/redis"
	"provider-bridge/internal/core/ports"
	"provider-bridge/internal/service"
	"provider-bridge/pkg/logger"
	"provider-bridge/pkg/metrics"
	"provider-bridge/pkg/retry"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default: ./config.yaml or ./config/config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting provider bridge")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	waitOpts := retry.DefaultOptions
	waitOpts.MaxElapsedTime = cfg.Startup.MaxWait

	pool, err := pgStorage.NewPool(ctx, cfg.Database, waitOpts, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, waitOpts, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	registry, err := service.NewKeyRegistry(cfg.Tenants)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load tenant keys")
	}
	log.Info().Int("tenants", registry.Tenants()).Msg("Tenant keys loaded")

	// Repositories and stores
	walletRepo := pgStorage.NewWalletRepo(pool)
	transferRepo := pgStorage.NewTransferRepo(pool)
	txRepo := pgStorage.NewTransactionRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool)
	idempotencyCache := redisStorage.NewIdempotencyCache(rdb)
	rateLimitStore := redisStorage.NewRateLimitStore(rdb)

	// Outbound clients
	ledgerClient := ledger.NewClient(cfg.Ledger.BaseURL, cfg.Ledger.Timeout, logger.Component(log, "ledger"))
	providerClient := provider.NewClient(cfg.Provider.Timeout, logger.Component(log, "provider"))

	var reporter metrics.Reporter = metrics.NoopReporter{}
	if cfg.Metrics.Enabled {
		dd, err := metrics.NewDataDogReporter(cfg.Metrics.StatsdAddr, cfg.Metrics.Namespace)
		if err != nil {
			log.Warn().Err(err).Msg("metrics disabled")
		} else {
			reporter = dd
		}
	}
	defer reporter.Close()

	// Services
	validator := service.NewEnvelopeValidator(registry)
	callbackSvc := service.NewCallbackService(registry, validator, ledgerClient, logger.Component(log, "callback"))
	launchSvc := service.NewLaunchService(registry, validator, ledgerClient, logger.Component(log, "launch"))
	transferSvc := service.NewTransferService(
		registry,
		validator,
		walletRepo,
		transferRepo,
		idempotencyCache,
		transactor,
		ledgerClient,
		service.TransferConfig{
			DefaultCurrency: cfg.Bridge.DefaultCurrency,
			CacheTTL:        cfg.Bridge.TransferCacheTTL,
		},
		logger.Component(log, "transfer"),
	)
	listSvc := service.NewTransactionListService(registry, validator, txRepo, logger.Component(log, "transactions"))
	gameSvc := service.NewGameLaunchService(registry, providerClient, logger.Component(log, "games"))
	auditSvc := service.NewAuditService(auditRepo, logger.Component(log, "audit"))

	var docs *httpHandler.APIDocs
	if cfg.Server.OpenAPIPath != "" {
		specBytes, err := os.ReadFile(cfg.Server.OpenAPIPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.Server.OpenAPIPath).Msg("OpenAPI document not found, Swagger UI will be unavailable")
		}
		if docs, err = httpHandler.NewAPIDocs(specBytes); err != nil {
			log.Warn().Err(err).Msg("OpenAPI document unreadable, Swagger UI will be unavailable")
			docs = nil
		} else if specBytes != nil {
			log.Info().Str("path", cfg.Server.OpenAPIPath).Msg("OpenAPI document loaded for Swagger UI at /swagger")
		}
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		CallbackSvc:    callbackSvc,
		LaunchSvc:      launchSvc,
		TransferSvc:    transferSvc,
		ListSvc:        listSvc,
		GameSvc:        gameSvc,
		RateLimitStore: rateLimitStore,
		HealthCheckers: []ports.HealthChecker{pgStorage.NewHealthCheck(pool), redisStorage.NewHealthCheck(rdb)},
		AuditSvc:       auditSvc,
		Metrics:        reporter,
		Docs:           docs,
		MaxBodyBytes:   cfg.Bridge.MaxBodyBytes,
		Logger:         log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
