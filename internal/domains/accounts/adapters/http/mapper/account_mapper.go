package mapper

import accountdomain "github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"

// Credentials captures the inbound login payload.
type Credentials struct {
	Role     string `json:"role"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration captures the inbound sign-up payload.
type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ProfileUpdate captures the inbound profile mutation payload.
type ProfileUpdate struct {
	Name     string `json:"name,omitempty"`
	Password string `json:"password,omitempty"`
}

// Session represents the transport-level session payload. The password never
// leaves the directory.
type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token,omitempty"`
}

// Account represents the transport-level account payload.
type Account struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// FromDomainSession converts a domain session into a transport representation.
func FromDomainSession(session *accountdomain.Session, token string) Session {
	if session == nil {
		return Session{}
	}
	return Session{
		Name:  session.Name,
		Email: session.Email,
		Role:  string(session.Role),
		Token: token,
	}
}

// FromDomainAccount converts a domain account into a transport representation.
func FromDomainAccount(account *accountdomain.Account) Account {
	if account == nil {
		return Account{}
	}
	return Account{
		Name:  account.Name,
		Email: account.Email,
		Role:  string(account.Role),
	}
}

// FromDomainAccounts converts a slice of domain accounts to transport representation.
func FromDomainAccounts(accounts []*accountdomain.Account) []Account {
	result := make([]Account, 0, len(accounts))
	for _, account := range accounts {
		result = append(result, FromDomainAccount(account))
	}
	return result
}
