//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	listingpostgres "github.com/pawfectmatch/adoption-api/internal/domains/listings/adapters/persistence/postgres"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/listings/ports"
	"github.com/pawfectmatch/adoption-api/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("adoption_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func newListing(t *testing.T, id, name string) *domain.Pet {
	t.Helper()
	pet, err := domain.NewPet(id, name, "Golden Retriever", "2 years", "Dog", "Austin, TX")
	require.NoError(t, err)
	return pet
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := listingpostgres.NewRepository(db)
	ctx := context.Background()

	pet := newListing(t, "listing-1", "Buddy")
	pet.SetDescription("Playful and house trained")
	pet.ReplaceImages([]string{"http://example.com/buddy.jpg"})
	pet.SetTraits(domain.Traits{Size: "Large", Gender: "Male", Vaccinated: true})

	projection, err := repo.Save(ctx, pet)
	require.NoError(t, err)
	assert.NotNil(t, projection)
	assert.Equal(t, "Buddy", projection.Pet.Name)
	assert.False(t, projection.Metadata.CreatedAt.IsZero())
	assert.False(t, projection.Metadata.UpdatedAt.IsZero())

	retrieved, err := repo.GetByID(ctx, "listing-1")
	require.NoError(t, err)
	assert.Equal(t, "Buddy", retrieved.Pet.Name)
	assert.True(t, retrieved.Pet.Available)
	assert.Equal(t, "Large", retrieved.Pet.Traits.Size)
	assert.Equal(t, []string{"http://example.com/buddy.jpg"}, retrieved.Pet.Images)
}

func TestPostgresRepository_ListPreservesInsertionOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := listingpostgres.NewRepository(db)
	ctx := context.Background()

	names := []string{"Buddy", "Whiskers", "Coco", "Rex", "Milo"}
	for i, name := range names {
		pet := newListing(t, fmt.Sprintf("listing-%d", i), name)
		_, err := repo.Save(ctx, pet)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, len(names))
	for i, projection := range all {
		assert.Equal(t, names[i], projection.Pet.Name)
	}
}

func TestPostgresRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := listingpostgres.NewRepository(db)
	ctx := context.Background()

	pet := newListing(t, "listing-1", "ToDelete")
	_, err := repo.Save(ctx, pet)
	require.NoError(t, err)

	err = repo.Delete(ctx, "listing-1")
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, "listing-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, "listing-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestPostgresRepository_UpdatePreservesCreatedAt(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := listingpostgres.NewRepository(db)
	ctx := context.Background()

	pet := newListing(t, "listing-1", "Original Name")
	saved, err := repo.Save(ctx, pet)
	require.NoError(t, err)
	originalCreatedAt := saved.Metadata.CreatedAt

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, pet.Rename("Updated Name"))
	pet.SetAvailability(false)
	updated, err := repo.Save(ctx, pet)
	require.NoError(t, err)

	assert.Equal(t, "Updated Name", updated.Pet.Name)
	assert.False(t, updated.Pet.Available)
	assert.Equal(t, originalCreatedAt.Unix(), updated.Metadata.CreatedAt.Unix())
	assert.True(t, updated.Metadata.UpdatedAt.After(originalCreatedAt))
}

func TestPostgresIdempotencyStore_SaveAndReplay(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	store := listingpostgres.NewIdempotencyStore(db)
	ctx := context.Background()

	record := ports.IdempotencyRecord{Key: "idem-1", RequestHash: "hash-a", ListingID: "listing-1"}
	saved, err := store.Save(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, "listing-1", saved.ListingID)

	// Same key and hash replays the stored record.
	replayed, err := store.Save(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, "listing-1", replayed.ListingID)

	// Same key with a different payload hash conflicts.
	_, err = store.Save(ctx, ports.IdempotencyRecord{Key: "idem-1", RequestHash: "hash-b", ListingID: "listing-2"})
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)

	fetched, err := store.Get(ctx, "idem-1")
	require.NoError(t, err)
	require.NotNil(t, fetched)
	assert.Equal(t, "hash-a", fetched.RequestHash)

	missing, err := store.Get(ctx, "idem-absent")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
