// Package localstate persists named JSON snapshots under a state directory.
// Each well-known key maps to one file holding a single serialized value;
// every save rewrites the whole blob. A snapshot that cannot be parsed is
// treated as absent so a corrupt file degrades to an empty collection
// instead of failing startup.
package localstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrSnapshotWrite wraps durable-storage write failures. Callers should treat
// it as a best-effort warning: in-memory state may already have advanced, and
// a restart re-reads storage as ground truth.
var ErrSnapshotWrite = errors.New("state snapshot write failed")

// Store reads and writes named JSON snapshots in a directory.
type Store struct {
	dir string
}

// New ensures the state directory exists and returns a store rooted there.
func New(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("state directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load reads the snapshot for key into v. It reports false when the snapshot
// is absent or unreadable, never failing the caller for a corrupt file.
func (s *Store) Load(key string, v any) (bool, error) {
	path, err := s.path(key)
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

// Save serializes v and atomically replaces the snapshot for key.
func (s *Store) Save(key string, v any) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotWrite, err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+key+"-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotWrite, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSnapshotWrite, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSnapshotWrite, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrSnapshotWrite, err)
	}
	return nil
}

// Clear removes the snapshot for key. Clearing an absent key is a no-op.
func (s *Store) Clear(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrSnapshotWrite, err)
	}
	return nil
}

func (s *Store) path(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" || strings.ContainsAny(key, `/\`) {
		return "", fmt.Errorf("invalid snapshot key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}
