package application

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
)

// Service orchestrates the listings bounded context use cases.
type Service struct {
	repo ports.Repository
	idem ports.IdempotencyStore
	now  func() time.Time
}

// ServiceOption customizes optional service collaborators.
type ServiceOption func(*Service)

// WithIdempotencyStore enables replay-safe listing creation.
func WithIdempotencyStore(store ports.IdempotencyStore) ServiceOption {
	return func(s *Service) {
		s.idem = store
	}
}

// WithClock overrides the identifier/timestamp clock, used in tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the listings service with its dependencies.
func NewService(repo ports.Repository, opts ...ServiceOption) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AddListing persists a new listing aggregate, assigning a fresh identifier.
// When an idempotency key accompanies the request, a replay with the same
// payload returns the previously stored listing.
func (s *Service) AddListing(ctx context.Context, input types.AddListingInput) (*types.ListingProjection, error) {
	var fingerprint string
	if input.IdempotencyKey != "" && s.idem != nil {
		var err error
		fingerprint, err = FingerprintAddListing(input)
		if err != nil {
			return nil, err
		}
		existing, err := s.idem.Get(ctx, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.RequestHash != fingerprint {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.repo.GetByID(ctx, existing.ListingID)
		}
	}

	pet, err := buildPetFromDraft(s.newListingID(), input.Draft)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, pet)
	if err != nil {
		return nil, mapError(err)
	}
	if fingerprint != "" {
		record := ports.IdempotencyRecord{
			Key:         input.IdempotencyKey,
			RequestHash: fingerprint,
			ListingID:   saved.Pet.ID,
			CreatedAt:   s.now(),
			UpdatedAt:   s.now(),
		}
		if _, err := s.idem.Save(ctx, record); err != nil && !errors.Is(err, ports.ErrIdempotencyConflict) {
			return nil, err
		}
	}
	return saved, nil
}

// UpdateListing replaces the mutable fields of an existing listing.
func (s *Service) UpdateListing(ctx context.Context, input types.UpdateListingInput) (*types.ListingProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	existing := projection.Pet
	if err := applyDraft(existing, input.Draft); err != nil {
		return nil, mapError(err)
	}
	if input.Available != nil {
		existing.SetAvailability(*input.Available)
	}
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// GetByID loads a single listing aggregate.
func (s *Service) GetByID(ctx context.Context, input types.ListingIdentifier) (*types.ListingProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	return projection, nil
}

// RemoveListing deletes a listing. Removing an unknown identifier is a no-op;
// pending applications referencing the pet become orphans and are hidden by
// the adoptions listing filter rather than deleted here.
func (s *Service) RemoveListing(ctx context.Context, input types.ListingIdentifier) error {
	if err := s.repo.Delete(ctx, input.ID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil
		}
		return mapError(err)
	}
	return nil
}

// SetAvailability flips a listing's adoptability flag. Not exposed over HTTP;
// invoked by the adoption approval cascade.
func (s *Service) SetAvailability(ctx context.Context, input types.SetAvailabilityInput) (*types.ListingProjection, error) {
	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	projection.Pet.SetAvailability(input.Available)
	saved, err := s.repo.Save(ctx, projection.Pet)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// Search filters the catalog with the pure domain predicate, preserving
// insertion order.
func (s *Service) Search(ctx context.Context, input types.SearchListingsInput) ([]*types.ListingProjection, error) {
	projections, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	pets := make([]*domain.Pet, 0, len(projections))
	byID := make(map[string]*types.ListingProjection, len(projections))
	for _, projection := range projections {
		if projection == nil || projection.Pet == nil {
			continue
		}
		if input.AvailableOnly && !projection.Pet.Available {
			continue
		}
		pets = append(pets, projection.Pet)
		byID[projection.Pet.ID] = projection
	}
	matched := domain.Filter(pets, input.Query)
	result := make([]*types.ListingProjection, 0, len(matched))
	for _, pet := range matched {
		result = append(result, byID[pet.ID])
	}
	return result, nil
}

// List exposes the full catalog in insertion order.
func (s *Service) List(ctx context.Context) ([]*types.ListingProjection, error) {
	result, err := s.repo.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return result, nil
}

func (s *Service) newListingID() string {
	return strconv.FormatInt(s.now().UnixNano(), 10)
}

func buildPetFromDraft(id string, draft types.ListingDraft) (*domain.Pet, error) {
	pet, err := domain.NewPet(id, draft.Name, draft.Breed, draft.Age, draft.Type, draft.Location)
	if err != nil {
		return nil, err
	}
	pet.SetDescription(draft.Description)
	pet.ReplaceImages(draft.Images)
	pet.SetTraits(domain.Traits{
		Size:       draft.Size,
		Gender:     draft.Gender,
		Vaccinated: draft.Vaccinated,
		Neutered:   draft.Neutered,
	})
	pet.SetShelter(draft.Shelter)
	return pet, nil
}

func applyDraft(target *domain.Pet, draft types.ListingDraft) error {
	if err := target.Rename(draft.Name); err != nil {
		return err
	}
	if err := target.SetBreed(draft.Breed); err != nil {
		return err
	}
	if err := target.SetAge(draft.Age); err != nil {
		return err
	}
	if err := target.SetType(draft.Type); err != nil {
		return err
	}
	if err := target.SetLocation(draft.Location); err != nil {
		return err
	}
	target.SetDescription(draft.Description)
	target.ReplaceImages(draft.Images)
	target.SetTraits(domain.Traits{
		Size:       draft.Size,
		Gender:     draft.Gender,
		Vaccinated: draft.Vaccinated,
		Neutered:   draft.Neutered,
	})
	target.SetShelter(draft.Shelter)
	return nil
}

var _ ports.Service = (*Service)(nil)
