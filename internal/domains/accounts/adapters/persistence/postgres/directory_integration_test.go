//go:build integration
// +build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	accountpostgres "github.com/pawfectmatch/adoption-api/internal/domains/accounts/adapters/persistence/postgres"
	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/ports"
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

func newAccount(t *testing.T, name, email string, role domain.Role) *domain.Account {
	t.Helper()
	account, err := domain.NewAccount(name, email, "pw1234", role)
	require.NoError(t, err)
	return account
}

func TestPostgresDirectory_PutGetDelete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	directory := accountpostgres.NewDirectory(db)
	ctx := context.Background()

	account := newAccount(t, "Jo", "jo@example.com", domain.RoleSeller)
	require.NoError(t, directory.Put(ctx, ports.CollectionSeller, account))

	stored, err := directory.Get(ctx, ports.CollectionSeller, "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jo", stored.Name)
	assert.Equal(t, domain.RoleSeller, stored.Role)
	assert.True(t, stored.CheckPassword("pw1234"))

	// Collections partition the keyspace: same email, different collection.
	_, err = directory.Get(ctx, ports.CollectionBuyer, "jo@example.com")
	assert.ErrorIs(t, err, ports.ErrAccountNotFound)

	require.NoError(t, directory.Delete(ctx, ports.CollectionSeller, "jo@example.com"))
	_, err = directory.Get(ctx, ports.CollectionSeller, "jo@example.com")
	assert.ErrorIs(t, err, ports.ErrAccountNotFound)

	err = directory.Delete(ctx, ports.CollectionSeller, "jo@example.com")
	assert.ErrorIs(t, err, ports.ErrAccountNotFound)
}

func TestPostgresDirectory_PutOverwritesDocument(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	directory := accountpostgres.NewDirectory(db)
	ctx := context.Background()

	account := newAccount(t, "Jo", "jo@example.com", domain.RoleSeller)
	require.NoError(t, directory.Put(ctx, ports.CollectionSeller, account))

	require.NoError(t, account.SetName("Joanna"))
	require.NoError(t, account.SetPassword("newpw"))
	require.NoError(t, directory.Put(ctx, ports.CollectionSeller, account))

	stored, err := directory.Get(ctx, ports.CollectionSeller, "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Joanna", stored.Name)
	assert.True(t, stored.CheckPassword("newpw"))
}

func TestPostgresDirectory_ListOrdersByEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	directory := accountpostgres.NewDirectory(db)
	ctx := context.Background()

	emails := []string{"zoe@example.com", "amy@example.com", "mia@example.com"}
	for _, email := range emails {
		require.NoError(t, directory.Put(ctx, ports.CollectionSellerApply, newAccount(t, "Applicant", email, domain.RoleSeller)))
	}

	listed, err := directory.List(ctx, ports.CollectionSellerApply)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, "amy@example.com", listed[0].Email)
	assert.Equal(t, "mia@example.com", listed[1].Email)
	assert.Equal(t, "zoe@example.com", listed[2].Email)
}

func TestPostgresTokenStore_SaveDeletePurge(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	ctx := context.Background()

	// A nanosecond TTL produces an immediately expired row so the purge path is observable.
	expiring := accountpostgres.NewTokenStore(db, time.Nanosecond)
	require.NoError(t, expiring.Save(ctx, "jo@example.com", "token-old"))
	time.Sleep(10 * time.Millisecond)

	store := accountpostgres.NewTokenStore(db, time.Hour)
	require.NoError(t, store.Save(ctx, "amy@example.com", "token-live"))

	require.NoError(t, store.PurgeExpired(ctx))

	var count int64
	require.NoError(t, db.Table("user_sessions").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	require.NoError(t, store.Delete(ctx, "amy@example.com"))
	require.NoError(t, db.Table("user_sessions").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}
