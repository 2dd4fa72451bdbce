package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName     = errors.New("name is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
	ErrInvalidRole   = errors.New("role must be buyer, seller, or admin")
)

// Role enumerates the three actor kinds. Screen-set selection dispatches on
// this value exactly once, at session restore/login.
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole validates a transport-supplied role string.
func ParseRole(value string) (Role, error) {
	switch Role(strings.TrimSpace(value)) {
	case RoleBuyer:
		return RoleBuyer, nil
	case RoleSeller:
		return RoleSeller, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", ErrInvalidRole
}

// Account represents a credential+profile record in the Account Directory.
type Account struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// NewAccount builds an account ensuring required invariants.
func NewAccount(name, email, password string, role Role) (*Account, error) {
	account := &Account{Role: role}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	if err := account.SetName(name); err != nil {
		return nil, err
	}
	if err := account.SetEmail(email); err != nil {
		return nil, err
	}
	if err := account.SetPassword(password); err != nil {
		return nil, err
	}
	return account, nil
}

// SetName trims and validates the display name.
func (a *Account) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	a.Name = name
	return nil
}

// SetEmail applies the minimal well-formedness check the directory relies on.
func (a *Account) SetEmail(email string) error {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	a.Email = email
	return nil
}

// SetPassword validates basic password strength.
func (a *Account) SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 4 {
		return ErrWeakPassword
	}
	a.Password = password
	return nil
}

// CheckPassword compares the stored password with the supplied credentials.
// The directory stores plaintext, so this is a plain equality check.
func (a *Account) CheckPassword(password string) bool {
	return strings.TrimSpace(password) != "" && a.Password == strings.TrimSpace(password)
}

// Session is the locally cached identity of the signed-in actor. Absence of a
// session means logged out.
type Session struct {
	Name  string
	Email string
	Role  Role
}

// NewSession derives the cached identity from a directory account.
func NewSession(account *Account) *Session {
	if account == nil {
		return nil
	}
	return &Session{Name: account.Name, Email: account.Email, Role: account.Role}
}

// Valid reports whether a restored session record is well-formed.
func (s *Session) Valid() bool {
	if s == nil {
		return false
	}
	if strings.TrimSpace(s.Email) == "" {
		return false
	}
	_, err := ParseRole(string(s.Role))
	return err == nil
}
