package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	listingmemory "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/memory"
	listingtypes "github.com/pawfectmatch/adoption-api/internal/domains/listings/application/types"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
)

func draftFixture() listingtypes.ListingDraft {
	return listingtypes.ListingDraft{
		Name:     "Buddy",
		Breed:    "Golden Retriever",
		Age:      "2 years",
		Type:     "Dog",
		Location: "Austin, TX",
		Images:   []string{"https://example.com/buddy.jpg"},
	}
}

func TestAddListing_Success(t *testing.T) {
	repo := listingmemory.NewRepository()
	svc := NewService(repo)

	proj, err := svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: draftFixture()})

	require.NoError(t, err)
	require.NotNil(t, proj)
	require.NotEmpty(t, proj.Pet.ID)
	require.Equal(t, "Buddy", proj.Pet.Name)
	require.True(t, proj.Pet.Available)
	require.False(t, proj.Metadata.CreatedAt.IsZero())
	require.False(t, proj.Metadata.UpdatedAt.IsZero())

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestAddListing_InvalidInput(t *testing.T) {
	repo := listingmemory.NewRepository()
	svc := NewService(repo)

	draft := draftFixture()
	draft.Name = ""
	_, err := svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: draft})
	require.ErrorIs(t, err, ErrInvalidInput)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestAddListing_UniqueIdentifiers(t *testing.T) {
	repo := listingmemory.NewRepository()
	tick := time.Unix(1700000000, 0)
	svc := NewService(repo, WithClock(func() time.Time {
		tick = tick.Add(time.Millisecond)
		return tick
	}))

	first, err := svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: draftFixture()})
	require.NoError(t, err)
	second, err := svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: draftFixture()})
	require.NoError(t, err)

	require.NotEqual(t, first.Pet.ID, second.Pet.ID)
}

func TestAddListing_IdempotentReplay(t *testing.T) {
	repo := listingmemory.NewRepository()
	svc := NewService(repo, WithIdempotencyStore(listingmemory.NewIdempotencyStore()))

	input := listingtypes.AddListingInput{Draft: draftFixture(), IdempotencyKey: "req-1"}
	first, err := svc.AddListing(context.Background(), input)
	require.NoError(t, err)

	replay, err := svc.AddListing(context.Background(), input)
	require.NoError(t, err)
	require.Equal(t, first.Pet.ID, replay.Pet.ID)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestAddListing_IdempotencyConflict(t *testing.T) {
	repo := listingmemory.NewRepository()
	svc := NewService(repo, WithIdempotencyStore(listingmemory.NewIdempotencyStore()))

	_, err := svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: draftFixture(), IdempotencyKey: "req-1"})
	require.NoError(t, err)

	other := draftFixture()
	other.Name = "Max"
	_, err = svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: other, IdempotencyKey: "req-1"})
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}

func TestUpdateListing_PreservesIdentityAndOrder(t *testing.T) {
	repo := listingmemory.NewRepository()
	svc := NewService(repo)

	first, err := svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: draftFixture()})
	require.NoError(t, err)
	other := draftFixture()
	other.Name = "Max"
	_, err = svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: other})
	require.NoError(t, err)

	draft := draftFixture()
	draft.Location = "Dallas, TX"
	updated, err := svc.UpdateListing(context.Background(), listingtypes.UpdateListingInput{ID: first.Pet.ID, Draft: draft})
	require.NoError(t, err)
	require.Equal(t, first.Pet.ID, updated.Pet.ID)
	require.Equal(t, "Dallas, TX", updated.Pet.Location)
	require.Equal(t, first.Metadata.CreatedAt, updated.Metadata.CreatedAt)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, first.Pet.ID, all[0].Pet.ID)
}

func TestUpdateListing_NotFound(t *testing.T) {
	repo := listingmemory.NewRepository()
	svc := NewService(repo)

	_, err := svc.UpdateListing(context.Background(), listingtypes.UpdateListingInput{ID: "missing", Draft: draftFixture()})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRemoveListing_MissingIsNoOp(t *testing.T) {
	repo := listingmemory.NewRepository()
	svc := NewService(repo)

	require.NoError(t, svc.RemoveListing(context.Background(), listingtypes.ListingIdentifier{ID: "missing"}))
}

func TestRemoveListing_RemovesOnlyTarget(t *testing.T) {
	repo := listingmemory.NewRepository()
	svc := NewService(repo)

	first, err := svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: draftFixture()})
	require.NoError(t, err)
	other := draftFixture()
	other.Name = "Max"
	second, err := svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: other})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveListing(context.Background(), listingtypes.ListingIdentifier{ID: first.Pet.ID}))

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, second.Pet.ID, all[0].Pet.ID)
}

func TestSetAvailability_Toggle(t *testing.T) {
	repo := listingmemory.NewRepository()
	svc := NewService(repo)

	proj, err := svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: draftFixture()})
	require.NoError(t, err)

	updated, err := svc.SetAvailability(context.Background(), listingtypes.SetAvailabilityInput{ID: proj.Pet.ID, Available: false})
	require.NoError(t, err)
	require.False(t, updated.Pet.Available)

	updated, err = svc.SetAvailability(context.Background(), listingtypes.SetAvailabilityInput{ID: proj.Pet.ID, Available: true})
	require.NoError(t, err)
	require.True(t, updated.Pet.Available)
}

func TestSearch_FiltersAndPreservesOrder(t *testing.T) {
	repo := listingmemory.NewRepository()
	svc := NewService(repo)

	dog := draftFixture()
	cat := listingtypes.ListingDraft{Name: "Whiskers", Breed: "Siamese", Age: "1 year", Type: "Cat", Location: "Austin, TX"}
	poodle := listingtypes.ListingDraft{Name: "Coco", Breed: "Poodle", Age: "3 years", Type: "Dog", Location: "Houston, TX"}

	for _, draft := range []listingtypes.ListingDraft{dog, cat, poodle} {
		_, err := svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: draft})
		require.NoError(t, err)
	}

	results, err := svc.Search(context.Background(), listingtypes.SearchListingsInput{Query: "dog"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "Buddy", results[0].Pet.Name)
	require.Equal(t, "Coco", results[1].Pet.Name)

	results, err = svc.Search(context.Background(), listingtypes.SearchListingsInput{Query: "austin"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	results, err = svc.Search(context.Background(), listingtypes.SearchListingsInput{Query: ""})
	require.NoError(t, err)
	require.Len(t, results, 3)

	results, err = svc.Search(context.Background(), listingtypes.SearchListingsInput{Query: "zebra"})
	require.NoError(t, err)
	require.Empty(t, results)
}

func TestSearch_AvailableOnly(t *testing.T) {
	repo := listingmemory.NewRepository()
	svc := NewService(repo)

	first, err := svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: draftFixture()})
	require.NoError(t, err)
	other := draftFixture()
	other.Name = "Max"
	_, err = svc.AddListing(context.Background(), listingtypes.AddListingInput{Draft: other})
	require.NoError(t, err)

	_, err = svc.SetAvailability(context.Background(), listingtypes.SetAvailabilityInput{ID: first.Pet.ID, Available: false})
	require.NoError(t, err)

	results, err := svc.Search(context.Background(), listingtypes.SearchListingsInput{Query: "dog", AvailableOnly: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "Max", results[0].Pet.Name)
}
