package application

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/ports"
	listingtypes "github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	listingports "github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
)

// Service implements the adoptions use cases. Decisions run under a single
// critical section so the approval cascade is observed atomically.
type Service struct {
	repo     ports.Repository
	listings listingports.Service
	now      func() time.Time

	mu sync.Mutex
}

type ServiceOption func(*Service)

// WithClock overrides the identifier/timestamp clock, used in tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the application repository and the listings collaborator.
func NewService(repo ports.Repository, listings listingports.Service, opts ...ServiceOption) *Service {
	s := &Service{
		repo:     repo,
		listings: listings,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Submit validates the form, snapshots the listing's name, and appends a
// pending application. Nothing is written when validation fails.
func (s *Service) Submit(ctx context.Context, input types.SubmitApplicationInput) (*types.ApplicationProjection, error) {
	listing, err := s.listings.GetByID(ctx, listingtypes.ListingIdentifier{ID: input.PetID})
	if err != nil {
		return nil, err
	}
	if listing == nil || listing.Pet == nil || !listing.Pet.Available {
		return nil, ErrListingUnavailable
	}

	submittedAt := s.now()
	app, err := domain.NewApplication(
		s.newApplicationID(submittedAt),
		input.PetID,
		listing.Pet.Name,
		input.Form.ApplicantName,
		input.Form.ApplicantEmail,
		input.Form.ApplicantPhone,
		submittedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	if err := app.SetLivingSituation(domain.LivingSituation(input.Form.LivingSituation)); err != nil {
		return nil, mapError(err)
	}
	app.SetNarrative(input.Form.Address, input.Form.Experience, input.Form.OtherPets, input.Form.ReasonForAdoption, input.Form.HasYard)

	return s.repo.Save(ctx, app)
}

// Decide transitions a pending application to its terminal state. Approval
// additionally flips the listing to unavailable and force-rejects every other
// pending application for the same listing, all before the method returns.
func (s *Service) Decide(ctx context.Context, input types.DecideApplicationInput) (*types.ApplicationProjection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projection, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	app := projection.Application

	switch input.Status {
	case domain.StatusApproved:
		if err := app.Approve(); err != nil {
			return nil, err
		}
	case domain.StatusRejected:
		if err := app.Reject(); err != nil {
			return nil, err
		}
		return s.repo.Save(ctx, app)
	default:
		return nil, ErrInvalidDecision
	}

	decided, err := s.repo.Save(ctx, app)
	if err != nil {
		return nil, err
	}
	if err := s.cascadeApproval(ctx, app); err != nil {
		return decided, err
	}
	return decided, nil
}

// cascadeApproval enforces "at most one approved application per listing".
func (s *Service) cascadeApproval(ctx context.Context, approved *domain.Application) error {
	if _, err := s.listings.SetAvailability(ctx, listingtypes.SetAvailabilityInput{ID: approved.PetID, Available: false}); err != nil {
		// The listing may already be gone; the verdict itself stands.
		if !errors.Is(err, listingports.ErrNotFound) {
			return err
		}
	}

	siblings, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, sibling := range siblings {
		other := sibling.Application
		if other.ID == approved.ID || other.PetID != approved.PetID || !other.IsPending() {
			continue
		}
		if err := other.Reject(); err != nil {
			continue
		}
		if _, err := s.repo.Save(ctx, other); err != nil {
			return err
		}
	}
	return nil
}

// GetByID loads one application.
func (s *Service) GetByID(ctx context.Context, input types.ApplicationIdentifier) (*types.ApplicationProjection, error) {
	return s.repo.GetByID(ctx, input.ID)
}

// List returns applications in insertion order, optionally narrowed to one
// listing or applicant, optionally hiding orphans whose listing was removed.
func (s *Service) List(ctx context.Context, input types.ListApplicationsInput) ([]*types.ApplicationProjection, error) {
	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var known map[string]struct{}
	if input.ExcludeOrphans {
		listings, err := s.listings.List(ctx)
		if err != nil {
			return nil, err
		}
		known = make(map[string]struct{}, len(listings))
		for _, listing := range listings {
			if listing != nil && listing.Pet != nil {
				known[listing.Pet.ID] = struct{}{}
			}
		}
	}

	result := make([]*types.ApplicationProjection, 0, len(all))
	for _, projection := range all {
		app := projection.Application
		if input.PetID != "" && app.PetID != input.PetID {
			continue
		}
		if input.ApplicantEmail != "" && app.ApplicantEmail != input.ApplicantEmail {
			continue
		}
		if known != nil {
			if _, ok := known[app.PetID]; !ok {
				continue
			}
		}
		result = append(result, projection)
	}
	return result, nil
}

// PurgeForListing removes still-pending applications referencing a deleted
// listing. Decided applications stay in storage and are hidden by orphan
// filtering instead.
func (s *Service) PurgeForListing(ctx context.Context, petID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	for _, projection := range all {
		app := projection.Application
		if app.PetID != petID || !app.IsPending() {
			continue
		}
		if err := s.repo.Delete(ctx, app.ID); err != nil && !errors.Is(err, ports.ErrNotFound) {
			return err
		}
	}
	return nil
}

func (s *Service) newApplicationID(at time.Time) string {
	return strconv.FormatInt(at.UnixNano(), 10)
}

var _ ports.Service = (*Service)(nil)
