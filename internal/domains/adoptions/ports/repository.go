package ports

import (
	"context"
	"errors"

	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
)

// ErrNotFound indicates the requested application does not exist.
var ErrNotFound = errors.New("application not found")

// Repository abstracts persistence for adoption applications. List returns
// applications in insertion order; Save keeps an existing application's
// position.
type Repository interface {
	Save(ctx context.Context, application *domain.Application) (*types.ApplicationProjection, error)
	GetByID(ctx context.Context, id string) (*types.ApplicationProjection, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*types.ApplicationProjection, error)
}
