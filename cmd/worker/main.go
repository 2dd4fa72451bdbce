package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	syndicationclient "github.com/pawfectmatch/adoption-api/internal/clients/http/syndication"
	listingmemory "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/memory"
	listingpostgres "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/persistence/postgres"
	listingapp "github.com/pawfectmatch/adoption-api/internal/domains/listings/application"
	listingports "github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
	"github.com/pawfectmatch/adoption-api/internal/platform/migrations"
	platformobservability "github.com/pawfectmatch/adoption-api/internal/platform/observability"
	platformpostgres "github.com/pawfectmatch/adoption-api/internal/platform/postgres"
	listingactivities "github.com/pawfectmatch/adoption-api/internal/platform/temporal/activities/listings"
	listingworkflows "github.com/pawfectmatch/adoption-api/internal/platform/temporal/workflows/listings"
)

func main() {
	ctx := context.Background()
	const serviceName = "adoption-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repo, idemStore, cleanupRepo := buildListingStores(ctx, logger)
	defer cleanupRepo()
	persistService := listingapp.NewService(repo, listingapp.WithIdempotencyStore(idemStore))
	activities := listingactivities.NewActivities(persistService, repo, buildPartnerSync(logger))

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, listingworkflows.ListingCreationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(listingworkflows.ListingCreationWorkflow, workflow.RegisterOptions{Name: listingworkflows.ListingCreationWorkflowName})
	w.RegisterActivityWithOptions(activities.PersistListing, activity.RegisterOptions{Name: listingactivities.PersistListingActivityName})
	w.RegisterActivityWithOptions(activities.SyncListingWithPartner, activity.RegisterOptions{Name: listingactivities.SyncListingWithPartnerActivityName})

	logger.Info("worker listening", slog.String("taskQueue", listingworkflows.ListingCreationTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func buildListingStores(ctx context.Context, logger *slog.Logger) (listingports.Repository, listingports.IdempotencyStore, func()) {
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	if db == nil {
		return listingmemory.NewRepository(), listingmemory.NewIdempotencyStore(), cleanup
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("worker failed to run migrations, falling back to memory", slog.String("error", err.Error()))
		cleanup()
		return listingmemory.NewRepository(), listingmemory.NewIdempotencyStore(), func() {}
	}
	logger.Info("worker listing repository configured with postgres")
	return listingpostgres.NewRepository(db), listingpostgres.NewIdempotencyStore(db), cleanup
}

func buildPartnerSync(logger *slog.Logger) listingports.PartnerSync {
	baseURL := strings.TrimSpace(os.Getenv("SYNDICATION_BASE_URL"))
	if baseURL == "" {
		logger.Warn("SYNDICATION_BASE_URL not set, partner sync disabled")
		return nil
	}
	partner, err := syndicationclient.New(baseURL, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		logger.Warn("invalid SYNDICATION_BASE_URL, partner sync disabled", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("partner syndication enabled", slog.String("baseUrl", baseURL))
	return partner
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
