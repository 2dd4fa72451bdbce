package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	adoptionserver "github.com/pawfectmatch/adoption-api/go"

	directoryclient "github.com/pawfectmatch/adoption-api/internal/clients/http/directory"

	accountlocalstate "github.com/pawfectmatch/adoption-api/internal/domains/accounts/adapters/localstate"
	accountmemory "github.com/pawfectmatch/adoption-api/internal/domains/accounts/adapters/memory"
	accountobs "github.com/pawfectmatch/adoption-api/internal/domains/accounts/adapters/observability"
	accountpostgres "github.com/pawfectmatch/adoption-api/internal/domains/accounts/adapters/persistence/postgres"
	accountapp "github.com/pawfectmatch/adoption-api/internal/domains/accounts/application"
	accountports "github.com/pawfectmatch/adoption-api/internal/domains/accounts/ports"

	adoptionlocalstate "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/adapters/localstate"
	adoptionmemory "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionobs "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/adapters/observability"
	adoptionpostgres "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/adapters/persistence/postgres"
	adoptionapp "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application"
	adoptionports "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/ports"

	listinglocalstate "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/localstate"
	listingmemory "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/memory"
	listingobs "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/observability"
	listingpostgres "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/persistence/postgres"
	listingworkflows "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/workflows"
	listingapp "github.com/pawfectmatch/adoption-api/internal/domains/listings/application"
	listingports "github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"

	"github.com/pawfectmatch/adoption-api/internal/platform/localstate"
	"github.com/pawfectmatch/adoption-api/internal/platform/migrations"
	platformobservability "github.com/pawfectmatch/adoption-api/internal/platform/observability"
	platformpostgres "github.com/pawfectmatch/adoption-api/internal/platform/postgres"
)

// Run boots the adoption HTTP API with observability, repositories, and workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "adoption-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := connectPostgres(ctx, cfg, logger)
	defer cleanupDB()

	state := openLocalState(cfg, logger)

	listingRepo, idemStore := buildListingStores(db, state, logger)
	listingService := listingobs.New(
		listingapp.NewService(listingRepo, listingapp.WithIdempotencyStore(idemStore)),
		listingobs.WithLogger(logger),
		listingobs.WithTracer(instruments.Tracer("internal.listings.application")),
		listingobs.WithMeter(instruments.Meter("internal.listings.application")),
	)

	adoptionRepo := buildAdoptionRepository(db, state, logger)
	adoptionService := adoptionobs.New(
		adoptionapp.NewService(adoptionRepo, listingService),
		adoptionobs.WithLogger(logger),
		adoptionobs.WithTracer(instruments.Tracer("internal.adoptions.application")),
		adoptionobs.WithMeter(instruments.Meter("internal.adoptions.application")),
	)

	accountService := accountobs.New(
		buildAccountService(cfg, db, state, logger),
		accountobs.WithLogger(logger),
		accountobs.WithTracer(instruments.Tracer("internal.accounts.application")),
		accountobs.WithMeter(instruments.Meter("internal.accounts.application")),
	)

	if db != nil && cfg.SessionPurgeIntervalMinute > 0 {
		go purgeExpiredTokens(ctx, cfg, db, logger)
	}

	var orchestrator listingports.WorkflowOrchestrator = listingworkflows.NewInlineListingWorkflows(listingService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline AddListing", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orchestrator = listingworkflows.NewTemporalListingWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	handlers := adoptionserver.ApiHandleFunctions{
		ListingAPI:  adoptionserver.NewListingAPI(listingService, adoptionService, orchestrator),
		AdoptionAPI: adoptionserver.NewAdoptionAPI(adoptionService),
		AccountAPI:  adoptionserver.NewAccountAPI(accountService),
	}

	router := adoptionserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("adoption API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("adoption API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func connectPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to local repositories")
		return nil, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to local repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to local repositories", slog.String("error", err.Error()))
		return nil, func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to run migrations, falling back to local repositories", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return nil, func() {}
	}
	logger.Info("postgres connection established")
	return db, func() { _ = sqlDB.Close() }
}

func openLocalState(cfg Config, logger *slog.Logger) *localstate.Store {
	if cfg.StateDir == "" {
		return nil
	}
	state, err := localstate.New(cfg.StateDir)
	if err != nil {
		logger.Warn("failed to open state directory, falling back to in-memory stores", slog.String("dir", cfg.StateDir), slog.String("error", err.Error()))
		return nil
	}
	logger.Info("local state enabled", slog.String("dir", cfg.StateDir))
	return state
}

func buildListingStores(db *gorm.DB, state *localstate.Store, logger *slog.Logger) (listingports.Repository, listingports.IdempotencyStore) {
	if db != nil {
		logger.Info("listing repository configured with postgres")
		return listingpostgres.NewRepository(db), listingpostgres.NewIdempotencyStore(db)
	}
	if state != nil {
		repo, err := listinglocalstate.NewRepository(state)
		if err == nil {
			logger.Info("listing repository configured with local state")
			return repo, listingmemory.NewIdempotencyStore()
		}
		logger.Warn("failed to load listing state, falling back to memory", slog.String("error", err.Error()))
	}
	return listingmemory.NewRepository(), listingmemory.NewIdempotencyStore()
}

func buildAdoptionRepository(db *gorm.DB, state *localstate.Store, logger *slog.Logger) adoptionports.Repository {
	if db != nil {
		logger.Info("adoption repository configured with postgres")
		return adoptionpostgres.NewRepository(db)
	}
	if state != nil {
		repo, err := adoptionlocalstate.NewRepository(state)
		if err == nil {
			logger.Info("adoption repository configured with local state")
			return repo
		}
		logger.Warn("failed to load adoption state, falling back to memory", slog.String("error", err.Error()))
	}
	return adoptionmemory.NewRepository()
}

func buildAccountService(cfg Config, db *gorm.DB, state *localstate.Store, logger *slog.Logger) accountports.Service {
	var directory accountports.Directory
	if cfg.DirectoryBaseURL != "" {
		remote, err := directoryclient.New(cfg.DirectoryBaseURL, &http.Client{Timeout: 10 * time.Second})
		if err != nil {
			logger.Warn("invalid DIRECTORY_BASE_URL, falling back to local directory", slog.String("error", err.Error()))
		} else {
			logger.Info("account directory configured with remote service", slog.String("baseUrl", cfg.DirectoryBaseURL))
			directory = remote
		}
	}
	if directory == nil && db != nil {
		logger.Info("account directory configured with postgres")
		directory = accountpostgres.NewDirectory(db)
	}
	if directory == nil {
		directory = accountmemory.NewDirectory()
	}

	var sessions accountports.SessionStore = accountmemory.NewSessionStore()
	if state != nil {
		store, err := accountlocalstate.NewSessionStore(state)
		if err == nil {
			logger.Info("session store configured with local state")
			sessions = store
		} else {
			logger.Warn("failed to load session state, falling back to memory", slog.String("error", err.Error()))
		}
	}

	opts := []accountapp.ServiceOption{}
	if db != nil {
		ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
		opts = append(opts, accountapp.WithTokenStore(accountpostgres.NewTokenStore(db, ttl)))
	}
	return accountapp.NewService(directory, sessions, opts...)
}

func purgeExpiredTokens(ctx context.Context, cfg Config, db *gorm.DB, logger *slog.Logger) {
	store := accountpostgres.NewTokenStore(db, time.Duration(cfg.SessionTTLHours)*time.Hour)
	ticker := time.NewTicker(time.Duration(cfg.SessionPurgeIntervalMinute) * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := store.PurgeExpired(ctx); err != nil {
				logger.Warn("failed to purge expired sessions", slog.String("error", err.Error()))
			}
		}
	}
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
