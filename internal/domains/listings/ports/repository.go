package ports

import (
	"context"
	"errors"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
)

var ErrNotFound = errors.New("listing not found")

// Repository persists listing aggregates. List must return pets in insertion
// order; Save keeps a replaced pet at its original position.
type Repository interface {
	Save(ctx context.Context, pet *domain.Pet) (*types.ListingProjection, error)
	GetByID(ctx context.Context, id string) (*types.ListingProjection, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*types.ListingProjection, error)
}
