package ports

import (
	"context"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
)

// WorkflowOrchestrator exposes durable workflow operations required by the listings bounded context.
type WorkflowOrchestrator interface {
	CreateListing(ctx context.Context, input types.AddListingInput) (*types.ListingProjection, error)
}
