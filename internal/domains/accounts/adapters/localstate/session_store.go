// Package localstate persists the active session as a single JSON record
// under the well-known "user" key. Absence of the record means logged out.
package localstate

import (
	"context"
	"errors"

	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/ports"
	"github.com/pawfectmatch/adoption-api/internal/platform/localstate"
)

const snapshotKey = "user"

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is a durable session holder backed by a localstate snapshot.
type SessionStore struct {
	store *localstate.Store
}

type sessionSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// NewSessionStore wires the snapshot store.
func NewSessionStore(store *localstate.Store) (*SessionStore, error) {
	if store == nil {
		return nil, errors.New("localstate store is required")
	}
	return &SessionStore{store: store}, nil
}

// Load reads the persisted session. Missing or unparseable records yield nil.
func (s *SessionStore) Load(_ context.Context) (*domain.Session, error) {
	var snap sessionSnapshot
	ok, err := s.store.Load(snapshotKey, &snap)
	if err != nil || !ok {
		return nil, err
	}
	role, err := domain.ParseRole(snap.Role)
	if err != nil {
		// A record with an unknown role is treated as absent.
		return nil, nil
	}
	return &domain.Session{Name: snap.Name, Email: snap.Email, Role: role}, nil
}

// Save writes the session synchronously; callers rely on storage being
// current before Save returns.
func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	if session == nil {
		return s.store.Clear(snapshotKey)
	}
	return s.store.Save(snapshotKey, sessionSnapshot{
		Name:  session.Name,
		Email: session.Email,
		Role:  string(session.Role),
	})
}

// Clear removes the persisted session; clearing an absent session is a no-op.
func (s *SessionStore) Clear(_ context.Context) error {
	return s.store.Clear(snapshotKey)
}
