package localstate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
	"github.com/pawfectmatch/adoption-api/internal/platform/localstate"
)

func newApplication(t *testing.T, id, petID string, status domain.Status) *domain.Application {
	t.Helper()
	app, err := domain.NewApplication(id, petID, "Buddy", "Jamie Doe", "jamie@example.com", "555-0100", time.Unix(1700000000, 0).UTC())
	require.NoError(t, err)
	require.NoError(t, app.SetLivingSituation(domain.LivingApartment))
	app.SetNarrative("12 Oak St", "grew up with dogs", "one cat", "companionship", false)
	switch status {
	case domain.StatusApproved:
		require.NoError(t, app.Approve())
	case domain.StatusRejected:
		require.NoError(t, app.Reject())
	}
	return app
}

func TestRepository_RoundTrip(t *testing.T) {
	store, err := localstate.New(t.TempDir())
	require.NoError(t, err)

	repo, err := NewRepository(store)
	require.NoError(t, err)
	for i, spec := range []struct {
		id     string
		status domain.Status
	}{
		{"a1", domain.StatusPending},
		{"a2", domain.StatusApproved},
		{"a3", domain.StatusRejected},
	} {
		_, err := repo.Save(context.Background(), newApplication(t, spec.id, "p1", spec.status))
		require.NoError(t, err, "entry %d", i)
	}

	reloaded, err := NewRepository(store)
	require.NoError(t, err)
	list, err := reloaded.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "a1", list[0].Application.ID)
	require.Equal(t, domain.StatusApproved, list[1].Application.Status)
	require.Equal(t, domain.StatusRejected, list[2].Application.Status)
	require.Equal(t, "Buddy", list[0].Application.PetName)
	require.Equal(t, domain.LivingApartment, list[0].Application.LivingSituation)
	require.Equal(t, "12 Oak St", list[0].Application.Address)
}

func TestRepository_DeletePersists(t *testing.T) {
	store, err := localstate.New(t.TempDir())
	require.NoError(t, err)

	repo, err := NewRepository(store)
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), newApplication(t, "a1", "p1", domain.StatusPending))
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), newApplication(t, "a2", "p1", domain.StatusPending))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(context.Background(), "a1"))

	reloaded, err := NewRepository(store)
	require.NoError(t, err)
	list, err := reloaded.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "a2", list[0].Application.ID)
}

func TestRepository_ReplaceKeepsPosition(t *testing.T) {
	store, err := localstate.New(t.TempDir())
	require.NoError(t, err)

	repo, err := NewRepository(store)
	require.NoError(t, err)
	first := newApplication(t, "a1", "p1", domain.StatusPending)
	_, err = repo.Save(context.Background(), first)
	require.NoError(t, err)
	_, err = repo.Save(context.Background(), newApplication(t, "a2", "p1", domain.StatusPending))
	require.NoError(t, err)

	require.NoError(t, first.Reject())
	_, err = repo.Save(context.Background(), first)
	require.NoError(t, err)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "a1", list[0].Application.ID)
	require.Equal(t, domain.StatusRejected, list[0].Application.Status)
}
