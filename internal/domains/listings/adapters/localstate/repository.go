// Package localstate persists the listing collection as a single JSON blob
// under the well-known "pets" key, rewriting the whole collection after every
// mutation. The in-memory cache is the source of truth during a session;
// storage is only consulted at startup.
package localstate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
	"github.com/pawfectmatch/adoption-api/internal/platform/localstate"
)

const snapshotKey = "pets"

var _ ports.Repository = (*Repository)(nil)

// Repository is a write-through listing store backed by a localstate snapshot.
type Repository struct {
	mu      sync.RWMutex
	store   *localstate.Store
	entries []*storedListing
	index   map[string]int
	now     func() time.Time
}

type storedListing struct {
	pet      *domain.Pet
	metadata types.ListingMetadata
}

type petSnapshot struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Breed       string    `json:"breed"`
	Age         string    `json:"age"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	Images      []string  `json:"images"`
	Available   bool      `json:"available"`
	Size        string    `json:"size,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Vaccinated  bool      `json:"vaccinated,omitempty"`
	Neutered    bool      `json:"neutered,omitempty"`
	Shelter     string    `json:"shelter,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewRepository loads any persisted collection and returns a ready store.
// A missing or corrupt snapshot yields an empty collection.
func NewRepository(store *localstate.Store) (*Repository, error) {
	if store == nil {
		return nil, errors.New("localstate store is required")
	}
	r := &Repository{store: store, index: map[string]int{}, now: time.Now}
	var snapshots []petSnapshot
	if _, err := store.Load(snapshotKey, &snapshots); err != nil {
		return nil, err
	}
	for _, snap := range snapshots {
		entry := snap.toStored()
		if entry == nil {
			continue
		}
		r.index[entry.pet.ID] = len(r.entries)
		r.entries = append(r.entries, entry)
	}
	return r, nil
}

// Save inserts or replaces a listing and persists the whole collection.
// On a persistence failure the in-memory mutation is kept; the error is
// reported so callers can warn, and a restart re-reads storage as truth.
func (r *Repository) Save(_ context.Context, pet *domain.Pet) (*types.ListingProjection, error) {
	if pet == nil {
		return nil, errors.New("cannot save nil pet")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now()
	metadata := types.ListingMetadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	var entry *storedListing
	if pos, ok := r.index[pet.ID]; ok {
		metadata.CreatedAt = r.entries[pos].metadata.CreatedAt
		entry = &storedListing{pet: pet.Clone(), metadata: metadata}
		r.entries[pos] = entry
	} else {
		entry = &storedListing{pet: pet.Clone(), metadata: metadata}
		r.index[pet.ID] = len(r.entries)
		r.entries = append(r.entries, entry)
	}
	if err := r.persistLocked(); err != nil {
		return projectionCopy(entry), err
	}
	return projectionCopy(entry), nil
}

// GetByID fetches a listing from the in-memory cache.
func (r *Repository) GetByID(_ context.Context, id string) (*types.ListingProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(r.entries[pos]), nil
}

// Delete removes a listing and persists the shrunken collection.
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
	return r.persistLocked()
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

func (r *Repository) persistLocked() error {
	snapshots := make([]petSnapshot, 0, len(r.entries))
	for _, entry := range r.entries {
		snapshots = append(snapshots, newPetSnapshot(entry))
	}
	return r.store.Save(snapshotKey, snapshots)
}

func newPetSnapshot(entry *storedListing) petSnapshot {
	pet := entry.pet
	return petSnapshot{
		ID:          pet.ID,
		Name:        pet.Name,
		Breed:       pet.Breed,
		Age:         pet.Age,
		Description: pet.Description,
		Type:        pet.Type,
		Location:    pet.Location,
		Images:      append([]string{}, pet.Images...),
		Available:   pet.Available,
		Size:        pet.Traits.Size,
		Gender:      pet.Traits.Gender,
		Vaccinated:  pet.Traits.Vaccinated,
		Neutered:    pet.Traits.Neutered,
		Shelter:     pet.Shelter,
		CreatedAt:   entry.metadata.CreatedAt,
		UpdatedAt:   entry.metadata.UpdatedAt,
	}
}

func (s petSnapshot) toStored() *storedListing {
	pet, err := domain.NewPet(s.ID, s.Name, s.Breed, s.Age, s.Type, s.Location)
	if err != nil {
		// Skip records that no longer satisfy the invariants rather than
		// failing startup for the whole collection.
		return nil
	}
	pet.SetDescription(s.Description)
	pet.ReplaceImages(s.Images)
	pet.SetAvailability(s.Available)
	pet.SetTraits(domain.Traits{
		Size:       s.Size,
		Gender:     s.Gender,
		Vaccinated: s.Vaccinated,
		Neutered:   s.Neutered,
	})
	pet.SetShelter(s.Shelter)
	return &storedListing{
		pet:      pet,
		metadata: types.ListingMetadata{CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt},
	}
}

func projectionCopy(entry *storedListing) *types.ListingProjection {
	return &types.ListingProjection{
		Pet:      entry.pet.Clone(),
		Metadata: entry.metadata,
	}
}
