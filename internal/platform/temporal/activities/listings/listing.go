package listings

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	listingtypes "github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	listingports "github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
)

const (
	// PersistListingActivityName persists a listing aggregate without calling external partners.
	PersistListingActivityName = "listings.activities.PersistListing"
	// SyncListingWithPartnerActivityName triggers partner syndication for an existing listing.
	SyncListingWithPartnerActivityName = "listings.activities.SyncListingWithPartner"
)

// Activities groups activities that operate on the listings bounded context.
type Activities struct {
	persistService listingports.Service
	repo           listingports.Repository
	partnerSync    listingports.PartnerSync
}

// NewActivities wires the listings collaborators into the Temporal activities bundle.
// persistService should be constructed without a partner sync dependency to avoid duplicate calls.
func NewActivities(persistService listingports.Service, repo listingports.Repository, partnerSync listingports.PartnerSync) *Activities {
	return &Activities{
		persistService: persistService,
		repo:           repo,
		partnerSync:    partnerSync,
	}
}

// PersistListing stores a new listing aggregate and returns its projection.
func (a *Activities) PersistListing(ctx context.Context, input listingtypes.AddListingInput) (*listingtypes.ListingProjection, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.persistService == nil {
		logger.Error("listing persist activity not initialized", "name", input.Draft.Name)
		return nil, errors.New("listing persist activity not initialized")
	}
	logger.Info("PersistListing activity started", "name", input.Draft.Name)
	projection, err := a.persistService.AddListing(ctx, input)
	if err != nil {
		logger.Error("PersistListing activity failed", "name", input.Draft.Name, "error", err)
		return nil, err
	}
	if projection != nil && projection.Pet != nil {
		logger.Info("PersistListing activity completed", "listingId", projection.Pet.ID)
	} else {
		logger.Info("PersistListing activity completed")
	}
	return projection, nil
}

// SyncListingWithPartner loads a listing and pushes it to the configured syndication partner.
func (a *Activities) SyncListingWithPartner(ctx context.Context, input listingtypes.ListingIdentifier) error {
	logger := activity.GetLogger(ctx)
	if a == nil {
		logger.Error("listing sync activity not initialized", "listingId", input.ID)
		return errors.New("listing sync activity not initialized")
	}
	if a.partnerSync == nil {
		logger.Info("partner sync not configured; skipping", "listingId", input.ID)
		return nil
	}
	if a.repo == nil {
		logger.Error("listing repository not configured for sync", "listingId", input.ID)
		return errors.New("listing repository not configured for sync")
	}

	var hb syncHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("SyncListingWithPartner already completed in prior attempt; skipping", "listingId", input.ID)
		return nil
	}

	logger.Info("SyncListingWithPartner activity started", "listingId", input.ID)
	projection, err := a.repo.GetByID(ctx, input.ID)
	if err != nil {
		logger.Error("SyncListingWithPartner failed to load listing", "listingId", input.ID, "error", err)
		return err
	}
	if projection == nil || projection.Pet == nil {
		logger.Error("SyncListingWithPartner missing listing projection", "listingId", input.ID)
		return errors.New("listing projection missing for sync")
	}
	if err := a.partnerSync.Sync(ctx, projection.Pet); err != nil {
		logger.Error("SyncListingWithPartner failed", "listingId", input.ID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, syncHeartbeat{Completed: true})
	logger.Info("SyncListingWithPartner activity completed", "listingId", input.ID)
	return nil
}

type syncHeartbeat struct {
	Completed bool
}
