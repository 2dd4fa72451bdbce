package ports

import (
	"context"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
)

// PartnerSync defines outbound integration for syndicating listings to an external aggregator.
type PartnerSync interface {
	Sync(ctx context.Context, pet *domain.Pet) error
}
