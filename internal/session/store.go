// Package session persists the signed-in identity across restarts.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/pr-poehali-dev/fteam-dark-site/storefront"
)

// Version of the on-disk record format.
const recordVersion = 1

// Sentinel errors
var (
	ErrCorrupted = errors.New("session: record corrupted")
	ErrPersist   = errors.New("session: failed to persist")
)

type record struct {
	Version int              `json:"version"`
	User    *storefront.User `json:"user,omitempty"`
}

// Store holds the persisted session identity with atomic file
// persistence. The on-disk copy is a cache: it pre-populates state on
// startup and is replaced whenever a server response returns a fresher
// record.
type Store struct {
	mu   sync.RWMutex
	path string
	data record
}

// NewStore creates or opens a session store at the given path. A missing
// file is not an error; it means no one is signed in. The parent
// directory is created with 0700 permissions.
func NewStore(path string) (*Store, error) {
	store := &Store{
		path: path,
		data: record{Version: recordVersion},
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	if err := store.load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return store, nil
}

// load reads the record from disk. Returns os.ErrNotExist when the file
// does not exist.
func (s *Store) load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	// Empty file is valid - nobody signed in
	if len(data) == 0 {
		return nil
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if rec.Version > recordVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorrupted, rec.Version)
	}

	s.data = rec
	s.data.Version = recordVersion
	return nil
}

// syncLocked writes the record atomically using the temp file + rename
// pattern. Must be called with the write lock held.
func (s *Store) syncLocked() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	tmpPath := s.path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", ErrPersist, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: write: %v", ErrPersist, err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: fsync: %v", ErrPersist, err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: close: %v", ErrPersist, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("%w: rename: %v", ErrPersist, err)
	}

	return nil
}

// Current returns a copy of the persisted identity, or nil when nobody
// is signed in.
func (s *Store) Current() *storefront.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.data.User == nil {
		return nil
	}
	u := *s.data.User
	return &u
}

// Save replaces the persisted identity.
func (s *Store) Save(user *storefront.User) error {
	if user == nil {
		return fmt.Errorf("user cannot be nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := *user
	s.data.User = &u
	return s.syncLocked()
}

// Clear removes the persisted identity. Logout is purely local, so this
// is the only server-independent mutation of the store.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.User = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: remove: %v", ErrPersist, err)
	}
	return nil
}

// Path returns the store file path.
func (s *Store) Path() string {
	return s.path
}
