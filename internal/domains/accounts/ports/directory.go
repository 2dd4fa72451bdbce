package ports

import (
	"context"
	"errors"

	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
)

var (
	// ErrAccountNotFound indicates no directory document exists under the key.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidCredentials indicates the supplied password or role does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDirectoryUnavailable wraps remote directory faults (network/service).
	ErrDirectoryUnavailable = errors.New("account directory unavailable")
)

// Directory collection names. The first three are partitioned by role; the
// last holds pending seller signup requests awaiting admin review.
const (
	CollectionBuyer       = "buyer"
	CollectionSeller      = "seller"
	CollectionAdmin       = "admin"
	CollectionSellerApply = "sellerapply"
)

// CollectionForRole maps a role onto its directory collection.
func CollectionForRole(role domain.Role) string {
	return string(role)
}

// Directory is the external role-partitioned document store holding
// credential+profile records keyed by email. Only four operations are
// consumed: get-by-key, set-by-key (create or overwrite), delete-by-key,
// and list-all-in-collection.
type Directory interface {
	Get(ctx context.Context, collection, email string) (*domain.Account, error)
	Put(ctx context.Context, collection string, account *domain.Account) error
	Delete(ctx context.Context, collection, email string) error
	List(ctx context.Context, collection string) ([]*domain.Account, error)
}
