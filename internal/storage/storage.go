// Package storage persists small client-side values (the session snapshot and
// the logged-in marker) as one file per key.
package storage

import (
	"os"
	"path/filepath"
	"regexp"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/crossorg/hrconsole/internal/errors"
)

// Keys written by the session store.
const (
	KeyUserInfo   = "userInfo"
	KeyIsLoggedIn = "isLoggedIn"
)

var validKey = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// Store is a string key/value store.
type Store interface {
	// Get returns the value and whether the key exists.
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// FileStore keeps each key in its own file under a root directory.
type FileStore struct {
	fs   afero.Fs
	root string
	mu   sync.RWMutex
}

// NewFileStore returns a store rooted at dir on fs.
func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, root: dir}
}

// NewOSStore returns a store rooted at dir on the real filesystem.
func NewOSStore(dir string) *FileStore {
	return NewFileStore(afero.NewOsFs(), dir)
}

// NewMemStore returns an in-memory store.
func NewMemStore() *FileStore {
	return NewFileStore(afero.NewMemMapFs(), "/state")
}

func (s *FileStore) path(key string) (string, error) {
	if !validKey.MatchString(key) {
		return "", errors.New(errors.ErrCodeStateWriteFailed, "invalid storage key: "+key)
	}
	return filepath.Join(s.root, key), nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	p, err := s.path(key)
	if err != nil {
		return "", false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := afero.ReadFile(s.fs, p)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(errors.ErrCodeStateReadFailed, "failed to read "+key, pkgerrors.WithStack(err))
	}
	return string(data), true, nil
}

func (s *FileStore) Set(key, value string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(s.root, 0o700); err != nil {
		return errors.Wrap(errors.ErrCodeStateWriteFailed, "failed to create state directory", pkgerrors.WithStack(err))
	}
	// Write then rename so a crash never leaves a half-written snapshot.
	tmp := p + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, []byte(value), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeStateWriteFailed, "failed to write "+key, pkgerrors.WithStack(err))
	}
	if err := s.fs.Rename(tmp, p); err != nil {
		return errors.Wrap(errors.ErrCodeStateWriteFailed, "failed to commit "+key, pkgerrors.WithStack(err))
	}
	return nil
}

// Remove deletes key. Removing a missing key is not an error.
func (s *FileStore) Remove(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStateWriteFailed, "failed to remove "+key, pkgerrors.WithStack(err))
	}
	return nil
}

// Root returns the directory holding the keys.
func (s *FileStore) Root() string {
	return s.root
}

var _ Store = (*FileStore)(nil)
