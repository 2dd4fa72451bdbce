// Package localstate persists the application collection as a single JSON
// blob under the well-known "applications" key, rewriting the whole
// collection after every mutation. The in-memory cache is the source of truth
// during a session; storage is only consulted at startup.
package localstate

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/ports"
	"github.com/pawfectmatch/adoption-api/internal/platform/localstate"
)

const snapshotKey = "applications"

var _ ports.Repository = (*Repository)(nil)

// Repository is a write-through application store backed by a localstate snapshot.
type Repository struct {
	mu      sync.RWMutex
	store   *localstate.Store
	entries []*storedApplication
	index   map[string]int
	now     func() time.Time
}

type storedApplication struct {
	application *domain.Application
	metadata    types.ApplicationMetadata
}

type applicationSnapshot struct {
	ID                string    `json:"id"`
	PetID             string    `json:"petId"`
	PetName           string    `json:"petName"`
	ApplicantName     string    `json:"applicantName"`
	ApplicantEmail    string    `json:"applicantEmail"`
	ApplicantPhone    string    `json:"applicantPhone"`
	Address           string    `json:"address,omitempty"`
	Experience        string    `json:"experience,omitempty"`
	LivingSituation   string    `json:"livingSituation"`
	HasYard           bool      `json:"hasYard"`
	OtherPets         string    `json:"otherPets,omitempty"`
	ReasonForAdoption string    `json:"reasonForAdoption,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// NewRepository loads any persisted collection and returns a ready store.
// A missing or corrupt snapshot yields an empty collection.
func NewRepository(store *localstate.Store) (*Repository, error) {
	if store == nil {
		return nil, errors.New("localstate store is required")
	}
	r := &Repository{store: store, index: map[string]int{}, now: time.Now}
	var snapshots []applicationSnapshot
	if _, err := store.Load(snapshotKey, &snapshots); err != nil {
		return nil, err
	}
	for _, snap := range snapshots {
		entry := snap.toStored()
		if entry == nil {
			continue
		}
		r.index[entry.application.ID] = len(r.entries)
		r.entries = append(r.entries, entry)
	}
	return r, nil
}

// Save inserts or replaces an application and persists the whole collection.
// On a persistence failure the in-memory mutation is kept; the error is
// reported so callers can warn, and a restart re-reads storage as truth.
func (r *Repository) Save(_ context.Context, application *domain.Application) (*types.ApplicationProjection, error) {
	if application == nil {
		return nil, errors.New("cannot save nil application")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := r.now()
	metadata := types.ApplicationMetadata{CreatedAt: timestamp, UpdatedAt: timestamp}
	var entry *storedApplication
	if pos, ok := r.index[application.ID]; ok {
		metadata.CreatedAt = r.entries[pos].metadata.CreatedAt
		entry = &storedApplication{application: application.Clone(), metadata: metadata}
		r.entries[pos] = entry
	} else {
		entry = &storedApplication{application: application.Clone(), metadata: metadata}
		r.index[application.ID] = len(r.entries)
		r.entries = append(r.entries, entry)
	}
	if err := r.persistLocked(); err != nil {
		return projectionCopy(entry), err
	}
	return projectionCopy(entry), nil
}

// GetByID fetches an application from the in-memory cache.
func (r *Repository) GetByID(_ context.Context, id string) (*types.ApplicationProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return projectionCopy(r.entries[pos]), nil
}

// Delete removes an application and persists the shrunken collection.
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
	return r.persistLocked()
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

func (r *Repository) persistLocked() error {
	snapshots := make([]applicationSnapshot, 0, len(r.entries))
	for _, entry := range r.entries {
		snapshots = append(snapshots, newApplicationSnapshot(entry))
	}
	return r.store.Save(snapshotKey, snapshots)
}

func newApplicationSnapshot(entry *storedApplication) applicationSnapshot {
	app := entry.application
	return applicationSnapshot{
		ID:                app.ID,
		PetID:             app.PetID,
		PetName:           app.PetName,
		ApplicantName:     app.ApplicantName,
		ApplicantEmail:    app.ApplicantEmail,
		ApplicantPhone:    app.ApplicantPhone,
		Address:           app.Address,
		Experience:        app.Experience,
		LivingSituation:   string(app.LivingSituation),
		HasYard:           app.HasYard,
		OtherPets:         app.OtherPets,
		ReasonForAdoption: app.ReasonForAdoption,
		Status:            string(app.Status),
		CreatedAt:         app.CreatedAt,
		UpdatedAt:         entry.metadata.UpdatedAt,
	}
}

func (s applicationSnapshot) toStored() *storedApplication {
	app, err := domain.NewApplication(s.ID, s.PetID, s.PetName, s.ApplicantName, s.ApplicantEmail, s.ApplicantPhone, s.CreatedAt)
	if err != nil {
		// Skip records that no longer satisfy the invariants rather than
		// failing startup for the whole collection.
		return nil
	}
	if err := app.SetLivingSituation(domain.LivingSituation(s.LivingSituation)); err != nil {
		app.LivingSituation = domain.LivingOther
	}
	app.SetNarrative(s.Address, s.Experience, s.OtherPets, s.ReasonForAdoption, s.HasYard)
	switch domain.Status(s.Status) {
	case domain.StatusApproved:
		app.Status = domain.StatusApproved
	case domain.StatusRejected:
		app.Status = domain.StatusRejected
	default:
		app.Status = domain.StatusPending
	}
	return &storedApplication{
		application: app,
		metadata:    types.ApplicationMetadata{CreatedAt: s.CreatedAt, UpdatedAt: s.UpdatedAt},
	}
}

func projectionCopy(entry *storedApplication) *types.ApplicationProjection {
	return &types.ApplicationProjection{
		Application: entry.application.Clone(),
		Metadata:    entry.metadata,
	}
}
