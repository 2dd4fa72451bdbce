package localstate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
	"github.com/pawfectmatch/adoption-api/internal/platform/localstate"
)

func newStore(t *testing.T, dir string) *localstate.Store {
	t.Helper()
	store, err := localstate.New(dir)
	require.NoError(t, err)
	return store
}

func mustPet(t *testing.T, id, name string) *domain.Pet {
	t.Helper()
	pet, err := domain.NewPet(id, name, "mixed", "2 years", "dog", "Austin")
	require.NoError(t, err)
	return pet
}

func TestRepository_RoundTripPreservesOrderAndFields(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewRepository(newStore(t, dir))
	require.NoError(t, err)

	ctx := context.Background()
	first := mustPet(t, "100", "Rex")
	first.ReplaceImages([]string{"file:///rex-1.jpg", "file:///rex-2.jpg"})
	first.SetTraits(domain.Traits{Size: "large", Gender: "male", Vaccinated: true})
	first.SetShelter("Happy Paws")
	second := mustPet(t, "200", "Milo")

	_, err = repo.Save(ctx, first)
	require.NoError(t, err)
	_, err = repo.Save(ctx, second)
	require.NoError(t, err)

	reloaded, err := NewRepository(newStore(t, dir))
	require.NoError(t, err)
	list, err := reloaded.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "100", list[0].Pet.ID)
	require.Equal(t, "200", list[1].Pet.ID)
	require.Equal(t, []string{"file:///rex-1.jpg", "file:///rex-2.jpg"}, list[0].Pet.Images)
	require.Equal(t, "Happy Paws", list[0].Pet.Shelter)
	require.True(t, list[0].Pet.Traits.Vaccinated)
	require.True(t, list[0].Pet.Available)
}

func TestRepository_DeletePersists(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewRepository(newStore(t, dir))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = repo.Save(ctx, mustPet(t, "1", "Rex"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, mustPet(t, "2", "Milo"))
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "1"))

	reloaded, err := NewRepository(newStore(t, dir))
	require.NoError(t, err)
	_, err = reloaded.GetByID(ctx, "1")
	require.ErrorIs(t, err, ports.ErrNotFound)
	list, err := reloaded.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "2", list[0].Pet.ID)
}

func TestRepository_ReplaceKeepsPosition(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewRepository(newStore(t, dir))
	require.NoError(t, err)

	ctx := context.Background()
	_, err = repo.Save(ctx, mustPet(t, "1", "Rex"))
	require.NoError(t, err)
	_, err = repo.Save(ctx, mustPet(t, "2", "Milo"))
	require.NoError(t, err)

	renamed := mustPet(t, "1", "Rexy")
	_, err = repo.Save(ctx, renamed)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, "Rexy", list[0].Pet.Name)
	require.Equal(t, "2", list[1].Pet.ID)
}
