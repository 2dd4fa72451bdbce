package types

import (
	"time"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
)

// ListingMetadata captures infrastructure timestamps associated with a persisted listing.
type ListingMetadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListingProjection transports a domain aggregate together with its persistence metadata.
type ListingProjection struct {
	Pet      *domain.Pet
	Metadata ListingMetadata
}

// NewListingProjection wraps an aggregate with persistence metadata.
func NewListingProjection(pet *domain.Pet, createdAt, updatedAt time.Time) *ListingProjection {
	if pet == nil {
		return nil
	}
	return &ListingProjection{
		Pet: pet,
		Metadata: ListingMetadata{
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
}
