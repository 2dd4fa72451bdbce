package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	adoptionmemory "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/adapters/memory"
	adoptiontypes "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
	listingmemory "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/memory"
	listingapp "github.com/pawfectmatch/adoption-api/internal/domains/listings/application"
	listingtypes "github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	listingports "github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
)

type fixture struct {
	listings *listingapp.Service
	service  *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	listings := listingapp.NewService(listingmemory.NewRepository())
	tick := time.Unix(1700000000, 0)
	service := NewService(adoptionmemory.NewRepository(), listings, WithClock(func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}))
	return &fixture{listings: listings, service: service}
}

func (f *fixture) addPet(t *testing.T, name string) *listingtypes.ListingProjection {
	t.Helper()
	proj, err := f.listings.AddListing(context.Background(), listingtypes.AddListingInput{
		Draft: listingtypes.ListingDraft{
			Name:     name,
			Breed:    "Golden Retriever",
			Age:      "2 years",
			Type:     "Dog",
			Location: "Austin, TX",
		},
	})
	require.NoError(t, err)
	return proj
}

func formFixture() adoptiontypes.ApplicationForm {
	return adoptiontypes.ApplicationForm{
		ApplicantName:   "Jamie Doe",
		ApplicantEmail:  "jamie@example.com",
		ApplicantPhone:  "555-0100",
		LivingSituation: "house",
		HasYard:         true,
	}
}

func (f *fixture) submit(t *testing.T, petID string, form adoptiontypes.ApplicationForm) *adoptiontypes.ApplicationProjection {
	t.Helper()
	proj, err := f.service.Submit(context.Background(), adoptiontypes.SubmitApplicationInput{PetID: petID, Form: form})
	require.NoError(t, err)
	return proj
}

func TestSubmit_CreatesPendingWithSnapshot(t *testing.T) {
	f := newFixture(t)
	pet := f.addPet(t, "Buddy")

	proj := f.submit(t, pet.Pet.ID, formFixture())

	require.Equal(t, domain.StatusPending, proj.Application.Status)
	require.Equal(t, pet.Pet.ID, proj.Application.PetID)
	require.Equal(t, "Buddy", proj.Application.PetName)
	require.False(t, proj.Application.CreatedAt.IsZero())
}

func TestSubmit_ValidationLeavesStoreUnchanged(t *testing.T) {
	f := newFixture(t)
	pet := f.addPet(t, "Buddy")

	form := formFixture()
	form.ApplicantPhone = ""
	_, err := f.service.Submit(context.Background(), adoptiontypes.SubmitApplicationInput{PetID: pet.Pet.ID, Form: form})
	require.ErrorIs(t, err, ErrInvalidInput)

	all, err := f.service.List(context.Background(), adoptiontypes.ListApplicationsInput{})
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestSubmit_MissingListing(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Submit(context.Background(), adoptiontypes.SubmitApplicationInput{PetID: "missing", Form: formFixture()})
	require.ErrorIs(t, err, listingports.ErrNotFound)
}

func TestSubmit_UnavailableListing(t *testing.T) {
	f := newFixture(t)
	pet := f.addPet(t, "Buddy")
	_, err := f.listings.SetAvailability(context.Background(), listingtypes.SetAvailabilityInput{ID: pet.Pet.ID, Available: false})
	require.NoError(t, err)

	_, err = f.service.Submit(context.Background(), adoptiontypes.SubmitApplicationInput{PetID: pet.Pet.ID, Form: formFixture()})
	require.ErrorIs(t, err, ErrListingUnavailable)
}

func TestDecide_ApproveFlipsAvailability(t *testing.T) {
	f := newFixture(t)
	pet := f.addPet(t, "Buddy")
	app := f.submit(t, pet.Pet.ID, formFixture())

	decided, err := f.service.Decide(context.Background(), adoptiontypes.DecideApplicationInput{ID: app.Application.ID, Status: domain.StatusApproved})
	require.NoError(t, err)
	require.Equal(t, domain.StatusApproved, decided.Application.Status)

	reloaded, err := f.listings.GetByID(context.Background(), listingtypes.ListingIdentifier{ID: pet.Pet.ID})
	require.NoError(t, err)
	require.False(t, reloaded.Pet.Available)
}

func TestDecide_ApprovalCascadeRejectsCompetitors(t *testing.T) {
	f := newFixture(t)
	pet := f.addPet(t, "Buddy")
	other := f.addPet(t, "Max")

	first := f.submit(t, pet.Pet.ID, formFixture())
	second := f.submit(t, pet.Pet.ID, formFixture())
	third := f.submit(t, pet.Pet.ID, formFixture())
	unrelated := f.submit(t, other.Pet.ID, formFixture())

	_, err := f.service.Decide(context.Background(), adoptiontypes.DecideApplicationInput{ID: second.Application.ID, Status: domain.StatusApproved})
	require.NoError(t, err)

	statuses := map[string]domain.Status{}
	all, err := f.service.List(context.Background(), adoptiontypes.ListApplicationsInput{})
	require.NoError(t, err)
	for _, proj := range all {
		statuses[proj.Application.ID] = proj.Application.Status
	}
	require.Equal(t, domain.StatusApproved, statuses[second.Application.ID])
	require.Equal(t, domain.StatusRejected, statuses[first.Application.ID])
	require.Equal(t, domain.StatusRejected, statuses[third.Application.ID])
	require.Equal(t, domain.StatusPending, statuses[unrelated.Application.ID])

	// No third application on the same listing can reach approved afterwards.
	_, err = f.service.Decide(context.Background(), adoptiontypes.DecideApplicationInput{ID: third.Application.ID, Status: domain.StatusApproved})
	require.ErrorIs(t, err, domain.ErrNotPending)
}

func TestDecide_RejectHasNoCascade(t *testing.T) {
	f := newFixture(t)
	pet := f.addPet(t, "Buddy")
	first := f.submit(t, pet.Pet.ID, formFixture())
	second := f.submit(t, pet.Pet.ID, formFixture())

	decided, err := f.service.Decide(context.Background(), adoptiontypes.DecideApplicationInput{ID: first.Application.ID, Status: domain.StatusRejected})
	require.NoError(t, err)
	require.Equal(t, domain.StatusRejected, decided.Application.Status)

	reloaded, err := f.service.GetByID(context.Background(), adoptiontypes.ApplicationIdentifier{ID: second.Application.ID})
	require.NoError(t, err)
	require.Equal(t, domain.StatusPending, reloaded.Application.Status)

	listing, err := f.listings.GetByID(context.Background(), listingtypes.ListingIdentifier{ID: pet.Pet.ID})
	require.NoError(t, err)
	require.True(t, listing.Pet.Available)
}

func TestDecide_InvalidVerdict(t *testing.T) {
	f := newFixture(t)
	pet := f.addPet(t, "Buddy")
	app := f.submit(t, pet.Pet.ID, formFixture())

	_, err := f.service.Decide(context.Background(), adoptiontypes.DecideApplicationInput{ID: app.Application.ID, Status: "pending"})
	require.ErrorIs(t, err, ErrInvalidDecision)
}

func TestList_OrphanFiltering(t *testing.T) {
	f := newFixture(t)
	pet := f.addPet(t, "Buddy")
	app := f.submit(t, pet.Pet.ID, formFixture())
	// Decide it so the purge on delete keeps it in storage.
	_, err := f.service.Decide(context.Background(), adoptiontypes.DecideApplicationInput{ID: app.Application.ID, Status: domain.StatusRejected})
	require.NoError(t, err)

	require.NoError(t, f.listings.RemoveListing(context.Background(), listingtypes.ListingIdentifier{ID: pet.Pet.ID}))

	visible, err := f.service.List(context.Background(), adoptiontypes.ListApplicationsInput{ExcludeOrphans: true})
	require.NoError(t, err)
	require.Empty(t, visible)

	// The orphan is hidden, not destroyed.
	stored, err := f.service.List(context.Background(), adoptiontypes.ListApplicationsInput{})
	require.NoError(t, err)
	require.Len(t, stored, 1)
}

func TestPurgeForListing_RemovesOnlyPending(t *testing.T) {
	f := newFixture(t)
	pet := f.addPet(t, "Buddy")
	pending := f.submit(t, pet.Pet.ID, formFixture())
	decided := f.submit(t, pet.Pet.ID, formFixture())
	_, err := f.service.Decide(context.Background(), adoptiontypes.DecideApplicationInput{ID: decided.Application.ID, Status: domain.StatusRejected})
	require.NoError(t, err)

	require.NoError(t, f.service.PurgeForListing(context.Background(), pet.Pet.ID))

	all, err := f.service.List(context.Background(), adoptiontypes.ListApplicationsInput{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, decided.Application.ID, all[0].Application.ID)
	_ = pending
}

func TestList_Filters(t *testing.T) {
	f := newFixture(t)
	pet := f.addPet(t, "Buddy")
	other := f.addPet(t, "Max")

	form := formFixture()
	f.submit(t, pet.Pet.ID, form)
	form.ApplicantEmail = "alex@example.com"
	f.submit(t, other.Pet.ID, form)

	byPet, err := f.service.List(context.Background(), adoptiontypes.ListApplicationsInput{PetID: pet.Pet.ID})
	require.NoError(t, err)
	require.Len(t, byPet, 1)

	byApplicant, err := f.service.List(context.Background(), adoptiontypes.ListApplicationsInput{ApplicantEmail: "alex@example.com"})
	require.NoError(t, err)
	require.Len(t, byApplicant, 1)
	require.Equal(t, other.Pet.ID, byApplicant[0].Application.PetID)
}
