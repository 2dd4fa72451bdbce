package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory application store used for demos/tests. Entries
// are held in a slice so List preserves insertion order.
type Repository struct {
	mu      sync.RWMutex
	entries []*storedApplication
	index   map[string]int
	now     func() time.Time
}

type storedApplication struct {
	application *domain.Application
	metadata    types.ApplicationMetadata
}

// NewRepository constructs an empty in-memory store.
func NewRepository() *Repository {
	return &Repository{
		index: map[string]int{},
		now:   time.Now,
	}
}

// WithClock overrides the metadata clock, used in tests.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Save inserts or replaces an application while maintaining metadata and order.
func (r *Repository) Save(_ context.Context, application *domain.Application) (*types.ApplicationProjection, error) {
	if application == nil {
		return nil, errors.New("cannot save nil application")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now()
	metadata := types.ApplicationMetadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if pos, ok := r.index[application.ID]; ok {
		metadata.CreatedAt = r.entries[pos].metadata.CreatedAt
		r.entries[pos] = &storedApplication{application: application.Clone(), metadata: metadata}
		return projectionCopy(r.entries[pos]), nil
	}
	entry := &storedApplication{application: application.Clone(), metadata: metadata}
	r.index[application.ID] = len(r.entries)
	r.entries = append(r.entries, entry)
	return projectionCopy(entry), nil
}

// GetByID fetches an application if present.
func (r *Repository) GetByID(_ context.Context, id string) (*types.ApplicationProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(r.entries[pos]), nil
}

// Delete removes an application, compacting the order-preserving slice.
func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.index[id]
	if !ok {
		return ports.ErrNotFound
	}
	r.entries = append(r.entries[:pos], r.entries[pos+1:]...)
	delete(r.index, id)
	for i := pos; i < len(r.entries); i++ {
		r.index[r.entries[i].application.ID] = i
	}
	return nil
}

// List returns all applications in insertion order.
func (r *Repository) List(_ context.Context) ([]*types.ApplicationProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*types.ApplicationProjection, 0, len(r.entries))
	for _, entry := range r.entries {
		list = append(list, projectionCopy(entry))
	}
	return list, nil
}

func projectionCopy(entry *storedApplication) *types.ApplicationProjection {
	return &types.ApplicationProjection{
		Application: entry.application.Clone(),
		Metadata:    entry.metadata,
	}
}
