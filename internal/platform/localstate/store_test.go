package localstate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type snapshot struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	in := []snapshot{{ID: "1", Name: "Rex"}, {ID: "2", Name: "Milo"}}
	require.NoError(t, store.Save("pets", in))

	var out []snapshot
	ok, err := store.Load("pets", &out)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, in, out)
}

func TestStore_LoadMissingKey(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	var out []snapshot
	ok, err := store.Load("pets", &out)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_CorruptSnapshotTreatedAsAbsent(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pets.json"), []byte("{not json"), 0o644))

	var out []snapshot
	ok, err := store.Load("pets", &out)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_ClearIsUnconditional(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Clear("user"))
	require.NoError(t, store.Save("user", snapshot{ID: "1"}))
	require.NoError(t, store.Clear("user"))

	var out snapshot
	ok, err := store.Load("user", &out)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_RejectsPathTraversalKeys(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	require.Error(t, store.Save("../escape", snapshot{}))
	_, err = store.Load("a/b", &snapshot{})
	require.Error(t, err)
}
