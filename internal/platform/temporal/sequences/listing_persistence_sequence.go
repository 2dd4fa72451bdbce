package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	listingtypes "github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	listingactivities "github.com/pawfectmatch/adoption-api/internal/platform/temporal/activities/listings"
)

// RunListingPersistenceSequence executes the ordered set of activities needed to persist a listing aggregate.
func RunListingPersistenceSequence(ctx workflow.Context, input listingtypes.AddListingInput) (*listingtypes.ListingProjection, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("listing persistence sequence started", "name", input.Draft.Name)
	persistOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	syncOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var projection listingtypes.ListingProjection
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, persistOptions), listingactivities.PersistListingActivityName, input).Get(ctx, &projection)
	if err != nil {
		logger.Error("listing persistence sequence failed", "name", input.Draft.Name, "error", err)
		return nil, err
	}
	if projection.Pet != nil {
		logger.Info("listing persistence sequence persisted", "listingId", projection.Pet.ID)
	} else {
		logger.Info("listing persistence sequence persisted")
	}

	// Sync to partner with separate retry policy.
	if projection.Pet != nil {
		syncInput := listingtypes.ListingIdentifier{ID: projection.Pet.ID}
		if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, syncOptions), listingactivities.SyncListingWithPartnerActivityName, syncInput).Get(ctx, nil); err != nil {
			logger.Error("listing persistence sequence sync failed", "listingId", projection.Pet.ID, "error", err)
			return &projection, err
		}
		logger.Info("listing persistence sequence synced", "listingId", projection.Pet.ID)
	}
	return &projection, nil
}
