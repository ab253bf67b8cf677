// Package archive persists one file per (station, day), never overwriting.
package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrExists reports a create against a key that is already archived.
var ErrExists = errors.New("archive entry already exists")

// Store is the interface for an archive backend. Keys are slash-separated
// relative paths. Create must be atomic create-if-not-exists so that
// concurrent invocations against the same station cannot clobber a file.
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Create(ctx context.Context, key string, data []byte) error
}

// LocalStore is a file-based implementation of Store.
type LocalStore struct {
	dir string
}

// NewLocal creates a LocalStore rooted at the specified directory.
func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Exists reports whether a key is already archived.
func (s *LocalStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.keyPath(key))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Create writes a new file for key. O_EXCL makes the existence check and
// the write a single step; an already-archived key returns ErrExists.
func (s *LocalStore) Create(ctx context.Context, key string, data []byte) error {
	path := s.keyPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return ErrExists
		}
		return err
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func (s *LocalStore) keyPath(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key))
}
