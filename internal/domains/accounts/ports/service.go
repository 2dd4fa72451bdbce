package ports

import (
	"context"

	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
)

// Service exposes account bounded context use cases to adapters.
type Service interface {
	// Restore loads any persisted session at startup. A missing or corrupt
	// record yields a nil session, never an error.
	Restore(ctx context.Context) (*domain.Session, error)
	// Login checks credentials against the directory, persists the session
	// before returning, and issues a token when a token store is configured.
	Login(ctx context.Context, role domain.Role, email, password string) (*domain.Session, string, error)
	// Logout unconditionally clears the active session.
	Logout(ctx context.Context) error

	RegisterBuyer(ctx context.Context, name, email, password string) (*domain.Account, error)
	// ApplyAsSeller files a pending seller signup for admin review.
	ApplyAsSeller(ctx context.Context, name, email, password string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, role domain.Role, email, name, password string) (*domain.Account, error)
	// DeleteAccount removes the directory document and clears a matching session.
	DeleteAccount(ctx context.Context, role domain.Role, email string) error

	PendingSellerApplications(ctx context.Context) ([]*domain.Account, error)
	ApproveSeller(ctx context.Context, email string) error
	RejectSeller(ctx context.Context, email string) error
	ListSellers(ctx context.Context) ([]*domain.Account, error)
	RemoveSeller(ctx context.Context, email string) error
}
