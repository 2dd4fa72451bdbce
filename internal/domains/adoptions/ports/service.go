package ports

import (
	"context"

	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application/types"
)

// Service defines the adoptions use cases exposed to adapters (inbound/driving port).
type Service interface {
	Submit(ctx context.Context, input types.SubmitApplicationInput) (*types.ApplicationProjection, error)
	Decide(ctx context.Context, input types.DecideApplicationInput) (*types.ApplicationProjection, error)
	GetByID(ctx context.Context, input types.ApplicationIdentifier) (*types.ApplicationProjection, error)
	List(ctx context.Context, input types.ListApplicationsInput) ([]*types.ApplicationProjection, error)
	PurgeForListing(ctx context.Context, petID string) error
}
