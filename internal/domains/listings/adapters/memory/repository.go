package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory listing store used for demos/tests. Entries are
// held in a slice so List preserves insertion order.
type Repository struct {
	mu      sync.RWMutex
	entries []*storedListing
	index   map[string]int
	now     func() time.Time
}

type storedListing struct {
	pet      *domain.Pet
	metadata types.ListingMetadata
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

// Save inserts or replaces a listing while maintaining metadata and order.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*types.ListingProjection, error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now()
	metadata := types.ListingMetadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	if pos, ok := r.index[pet.ID]; ok {
		metadata.CreatedAt = r.entries[pos].metadata.CreatedAt
		r.entries[pos] = &storedListing{pet: pet.Clone(), metadata: metadata}
		return projectionCopy(r.entries[pos]), nil
	}
	entry := &storedListing{pet: pet.Clone(), metadata: metadata}
	r.index[pet.ID] = len(r.entries)
	r.entries = append(r.entries, entry)
	return projectionCopy(entry), nil
}

// GetByID fetches a listing if present.
func (r *Repository) GetByID(_ context.Context, id string) (*types.ListingProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(r.entries[pos]), nil
}

// Delete removes a listing, compacting the order-preserving slice.
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
		r.index[r.entries[i].pet.ID] = i
	}
	return nil
}

// List returns all listings in insertion order.
func (r *Repository) List(_ context.Context) ([]*types.ListingProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*types.ListingProjection, 0, len(r.entries))
	for _, entry := range r.entries {
		list = append(list, projectionCopy(entry))
	}
	return list, nil
}

func projectionCopy(entry *storedListing) *types.ListingProjection {
	return &types.ListingProjection{
		Pet:      entry.pet.Clone(),
		Metadata: entry.metadata,
	}
}
