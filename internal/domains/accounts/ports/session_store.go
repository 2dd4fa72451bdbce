package ports

import (
	"context"

	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
)

// SessionStore persists the single active session. Load returns nil when no
// session is stored; a corrupt record is treated as absent, never an error.
type SessionStore interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context) error
}

// TokenStore persists server-issued login tokens with a TTL; purged by the
// session-purger job. Optional: NoopTokenStore is a safe default.
type TokenStore interface {
	Save(ctx context.Context, email, token string) error
	Delete(ctx context.Context, email string) error
}

// NoopTokenStore is used when token persistence is not configured.
var NoopTokenStore TokenStore = noopTokenStore{}

type noopTokenStore struct{}

func (noopTokenStore) Save(_ context.Context, _ string, _ string) error { return nil }
func (noopTokenStore) Delete(_ context.Context, _ string) error         { return nil }
