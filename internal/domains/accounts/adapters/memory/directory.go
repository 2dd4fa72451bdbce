package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/ports"
)

var _ ports.Directory = (*Directory)(nil)

// Directory is an in-memory account directory used for demos/tests.
type Directory struct {
	mu          sync.RWMutex
	collections map[string]map[string]domain.Account
}

// NewDirectory constructs an empty directory.
func NewDirectory() *Directory {
	return &Directory{collections: map[string]map[string]domain.Account{}}
}

// Get returns the document keyed by email within a collection.
func (d *Directory) Get(_ context.Context, collection, email string) (*domain.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	docs, ok := d.collections[collection]
	if !ok {
		return nil, ports.ErrAccountNotFound
	}
	account, ok := docs[email]
	if !ok {
		return nil, ports.ErrAccountNotFound
	}
	copy := account
	return &copy, nil
}

// Put creates or overwrites the document keyed by the account's email.
func (d *Directory) Put(_ context.Context, collection string, account *domain.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	docs, ok := d.collections[collection]
	if !ok {
		docs = map[string]domain.Account{}
		d.collections[collection] = docs
	}
	docs[account.Email] = *account
	return nil
}

// Delete removes the document; missing keys are reported as not found.
func (d *Directory) Delete(_ context.Context, collection, email string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	docs, ok := d.collections[collection]
	if !ok {
		return ports.ErrAccountNotFound
	}
	if _, ok := docs[email]; !ok {
		return ports.ErrAccountNotFound
	}
	delete(docs, email)
	return nil
}

// List enumerates a collection sorted by email for deterministic output.
func (d *Directory) List(_ context.Context, collection string) ([]*domain.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	docs := d.collections[collection]
	list := make([]*domain.Account, 0, len(docs))
	for email := range docs {
		account := docs[email]
		list = append(list, &account)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Email < list[j].Email })
	return list, nil
}
