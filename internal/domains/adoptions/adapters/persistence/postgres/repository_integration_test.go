//go:build integration
// +build integration

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

	adoptionpostgres "github.com/pawfectmatch/adoption-api/internal/domains/adoptions/adapters/persistence/postgres"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/adoptions/ports"
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

func newApplication(t *testing.T, id, petID string) *domain.Application {
	t.Helper()
	app, err := domain.NewApplication(id, petID, "Buddy", "Jordan Lee", "jordan@example.com", "+1234567890", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, app.SetLivingSituation(domain.LivingHouse))
	app.SetNarrative("12 Oak Street", "Grew up with dogs", "One cat", "Looking for a companion", true)
	return app
}

func TestPostgresRepository_SaveAndGetByID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := adoptionpostgres.NewRepository(db)
	ctx := context.Background()

	app := newApplication(t, "app-1", "listing-1")
	projection, err := repo.Save(ctx, app)
	require.NoError(t, err)
	assert.NotNil(t, projection)
	assert.Equal(t, "Jordan Lee", projection.Application.ApplicantName)
	assert.False(t, projection.Metadata.CreatedAt.IsZero())

	retrieved, err := repo.GetByID(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, "listing-1", retrieved.Application.PetID)
	assert.Equal(t, "Buddy", retrieved.Application.PetName)
	assert.Equal(t, domain.StatusPending, retrieved.Application.Status)
	assert.Equal(t, domain.LivingHouse, retrieved.Application.LivingSituation)
	assert.True(t, retrieved.Application.HasYard)
}

func TestPostgresRepository_StatusRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := adoptionpostgres.NewRepository(db)
	ctx := context.Background()

	app := newApplication(t, "app-1", "listing-1")
	_, err := repo.Save(ctx, app)
	require.NoError(t, err)

	require.NoError(t, app.Approve())
	updated, err := repo.Save(ctx, app)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, updated.Application.Status)

	retrieved, err := repo.GetByID(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, retrieved.Application.Status)
}

func TestPostgresRepository_ListPreservesInsertionOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := adoptionpostgres.NewRepository(db)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		app := newApplication(t, fmt.Sprintf("app-%d", i), "listing-1")
		_, err := repo.Save(ctx, app)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, projection := range all {
		assert.Equal(t, fmt.Sprintf("app-%d", i), projection.Application.ID)
	}
}

func TestPostgresRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	repo := adoptionpostgres.NewRepository(db)
	ctx := context.Background()

	app := newApplication(t, "app-1", "listing-1")
	_, err := repo.Save(ctx, app)
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "app-1"))

	_, err = repo.GetByID(ctx, "app-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	err = repo.Delete(ctx, "app-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
