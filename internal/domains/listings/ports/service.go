package ports

import (
	"context"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
)

// Service defines the listings use cases exposed to adapters (inbound/driving port).
type Service interface {
	AddListing(ctx context.Context, input types.AddListingInput) (*types.ListingProjection, error)
	UpdateListing(ctx context.Context, input types.UpdateListingInput) (*types.ListingProjection, error)
	GetByID(ctx context.Context, input types.ListingIdentifier) (*types.ListingProjection, error)
	RemoveListing(ctx context.Context, input types.ListingIdentifier) error
	SetAvailability(ctx context.Context, input types.SetAvailabilityInput) (*types.ListingProjection, error)
	Search(ctx context.Context, input types.SearchListingsInput) ([]*types.ListingProjection, error)
	List(ctx context.Context) ([]*types.ListingProjection, error)
}
