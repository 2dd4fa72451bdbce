package localstate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pawfectmatch/adoption-api/internal/domains/accounts/domain"
	"github.com/pawfectmatch/adoption-api/internal/platform/localstate"
)

func TestSessionStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := localstate.New(dir)
	require.NoError(t, err)
	sessions, err := NewSessionStore(store)
	require.NoError(t, err)

	require.NoError(t, sessions.Save(context.Background(), &domain.Session{Name: "Jo", Email: "a@x.com", Role: domain.RoleSeller}))

	// A fresh store over the same directory restores the session.
	store2, err := localstate.New(dir)
	require.NoError(t, err)
	reloaded, err := NewSessionStore(store2)
	require.NoError(t, err)
	session, err := reloaded.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, session)
	require.Equal(t, "Jo", session.Name)
	require.Equal(t, domain.RoleSeller, session.Role)
}

func TestSessionStore_ClearIsUnconditional(t *testing.T) {
	store, err := localstate.New(t.TempDir())
	require.NoError(t, err)
	sessions, err := NewSessionStore(store)
	require.NoError(t, err)

	require.NoError(t, sessions.Clear(context.Background()))

	session, err := sessions.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestSessionStore_CorruptRecordTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := localstate.New(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o600))

	sessions, err := NewSessionStore(store)
	require.NoError(t, err)
	session, err := sessions.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestSessionStore_UnknownRoleTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := localstate.New(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte(`{"name":"Jo","email":"a@x.com","role":"superuser"}`), 0o600))

	sessions, err := NewSessionStore(store)
	require.NoError(t, err)
	session, err := sessions.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, session)
}
