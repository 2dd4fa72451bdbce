package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/ports"
)

// Service exposes account bounded context use cases: session lifecycle,
// registration, profile maintenance, and the admin seller-approval flow.
type Service struct {
	directory ports.Directory
	sessions  ports.SessionStore
	tokens    ports.TokenStore
	now       func() time.Time
}

type ServiceOption func(*Service)

// WithTokenStore enables server-issued login tokens.
func WithTokenStore(tokens ports.TokenStore) ServiceOption {
	return func(s *Service) {
		if tokens != nil {
			s.tokens = tokens
		}
	}
}

// WithClock overrides the token clock, used in tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the directory and session collaborators.
func NewService(directory ports.Directory, sessions ports.SessionStore, opts ...ServiceOption) *Service {
	s := &Service{
		directory: directory,
		sessions:  sessions,
		tokens:    ports.NoopTokenStore,
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Restore reads any persisted session record. A missing, corrupt, or
// unreadable record yields a nil session; restore never fails the caller.
func (s *Service) Restore(ctx context.Context) (*domain.Session, error) {
	session, err := s.sessions.Load(ctx)
	if err != nil {
		return nil, nil
	}
	if !session.Valid() {
		return nil, nil
	}
	return session, nil
}

// Login checks the supplied credentials against the directory document keyed
// by (role, email). The session is persisted before the method returns, so a
// crash immediately after cannot leave memory and storage disagreeing.
func (s *Service) Login(ctx context.Context, role domain.Role, email, password string) (*domain.Session, string, error) {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, "", mapError(err)
	}
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(password) == "" {
		return nil, "", ports.ErrInvalidCredentials
	}

	account, err := s.directory.Get(ctx, ports.CollectionForRole(role), email)
	if err != nil {
		return nil, "", err
	}
	if account.Role != role || !account.CheckPassword(password) {
		return nil, "", ports.ErrInvalidCredentials
	}

	session := domain.NewSession(account)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, "", err
	}
	token := fmt.Sprintf("%s:%d", email, s.now().UnixNano())
	if err := s.tokens.Save(ctx, email, token); err != nil {
		return nil, "", err
	}
	return session, token, nil
}

// Logout clears the active session from memory and durable storage.
// Unconditional; there is no error path for an already-empty session.
func (s *Service) Logout(ctx context.Context) error {
	if session, err := s.sessions.Load(ctx); err == nil && session != nil {
		_ = s.tokens.Delete(ctx, session.Email)
	}
	return s.sessions.Clear(ctx)
}

// RegisterBuyer writes a buyer document into the directory.
func (s *Service) RegisterBuyer(ctx context.Context, name, email, password string) (*domain.Account, error) {
	return s.register(ctx, name, email, password, domain.RoleBuyer, ports.CollectionBuyer)
}

// ApplyAsSeller files a pending signup in the sellerapply collection. The
// account only becomes a seller once an admin approves it.
func (s *Service) ApplyAsSeller(ctx context.Context, name, email, password string) (*domain.Account, error) {
	account, err := domain.NewAccount(name, email, password, domain.RoleSeller)
	if err != nil {
		return nil, mapError(err)
	}
	for _, collection := range []string{ports.CollectionSeller, ports.CollectionSellerApply} {
		if err := s.ensureUnregistered(ctx, collection, account.Email); err != nil {
			return nil, err
		}
	}
	if err := s.directory.Put(ctx, ports.CollectionSellerApply, account); err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateProfile overwrites the caller's own directory document. Empty name or
// password keeps the stored value.
func (s *Service) UpdateProfile(ctx context.Context, role domain.Role, email, name, password string) (*domain.Account, error) {
	collection := ports.CollectionForRole(role)
	account, err := s.directory.Get(ctx, collection, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) != "" {
		if err := account.SetName(name); err != nil {
			return nil, mapError(err)
		}
	}
	if strings.TrimSpace(password) != "" {
		if err := account.SetPassword(password); err != nil {
			return nil, mapError(err)
		}
	}
	if err := s.directory.Put(ctx, collection, account); err != nil {
		return nil, err
	}
	if session, loadErr := s.sessions.Load(ctx); loadErr == nil && session != nil && session.Email == account.Email && session.Role == role {
		_ = s.sessions.Save(ctx, domain.NewSession(account))
	}
	return account, nil
}

// DeleteAccount removes the directory document and, when it belongs to the
// signed-in actor, clears the session as a logout would.
func (s *Service) DeleteAccount(ctx context.Context, role domain.Role, email string) error {
	email = strings.TrimSpace(email)
	if err := s.directory.Delete(ctx, ports.CollectionForRole(role), email); err != nil {
		return err
	}
	_ = s.tokens.Delete(ctx, email)
	if session, err := s.sessions.Load(ctx); err == nil && session != nil && session.Email == email && session.Role == role {
		return s.sessions.Clear(ctx)
	}
	return nil
}

// PendingSellerApplications lists signups awaiting admin review.
func (s *Service) PendingSellerApplications(ctx context.Context) ([]*domain.Account, error) {
	return s.directory.List(ctx, ports.CollectionSellerApply)
}

// ApproveSeller copies the pending document into the seller collection and
// removes it from sellerapply, after which the applicant can log in as seller.
func (s *Service) ApproveSeller(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	account, err := s.directory.Get(ctx, ports.CollectionSellerApply, email)
	if err != nil {
		return err
	}
	if err := s.directory.Put(ctx, ports.CollectionSeller, account); err != nil {
		return err
	}
	return s.directory.Delete(ctx, ports.CollectionSellerApply, email)
}

// RejectSeller discards a pending signup.
func (s *Service) RejectSeller(ctx context.Context, email string) error {
	return s.directory.Delete(ctx, ports.CollectionSellerApply, strings.TrimSpace(email))
}

// ListSellers enumerates approved seller accounts.
func (s *Service) ListSellers(ctx context.Context) ([]*domain.Account, error) {
	return s.directory.List(ctx, ports.CollectionSeller)
}

// RemoveSeller deletes a seller account from the directory.
func (s *Service) RemoveSeller(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := s.directory.Delete(ctx, ports.CollectionSeller, email); err != nil {
		return err
	}
	_ = s.tokens.Delete(ctx, email)
	return nil
}

func (s *Service) register(ctx context.Context, name, email, password string, role domain.Role, collection string) (*domain.Account, error) {
	account, err := domain.NewAccount(name, email, password, role)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.ensureUnregistered(ctx, collection, account.Email); err != nil {
		return nil, err
	}
	if err := s.directory.Put(ctx, collection, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *Service) ensureUnregistered(ctx context.Context, collection, email string) error {
	_, err := s.directory.Get(ctx, collection, email)
	switch {
	case err == nil:
		return ErrAlreadyRegistered
	case errors.Is(err, ports.ErrAccountNotFound):
		return nil
	default:
		return err
	}
}

var _ ports.Service = (*Service)(nil)
