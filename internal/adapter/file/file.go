// Package file stores each key as one JSON document under a data directory.
package file

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"forge/internal/domain"
	"forge/internal/store"
)

const globalDir = "_global"

// Store is a directory-backed backend. Account-scoped keys live in one
// sub-directory per account; process-wide keys live in _global.
type Store struct {
	root string
}

var _ store.Backend = (*Store)(nil)

// New returns a Store rooted at dir, creating it if needed.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{root: dir}, nil
}

func (s *Store) path(key domain.Key) string {
	dir := globalDir
	if key.Account != "" {
		dir = url.PathEscape(key.Account)
		if dir == "." || dir == ".." {
			dir = "_" + dir
		}
	}
	return filepath.Join(s.root, dir, string(key.Kind)+".json")
}

// Get reads the document for key.
func (s *Store) Get(_ context.Context, key domain.Key) ([]byte, error) {
	payload, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return payload, nil
}

// Put writes the document for key through a temporary file so a failed
// write never leaves a half-written document behind.
func (s *Store) Put(_ context.Context, key domain.Key, value []byte) error {
	p := s.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", key, err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "."+string(key.Kind)+"-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes the document for key.
func (s *Store) Delete(_ context.Context, key domain.Key) error {
	if err := os.Remove(s.path(key)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
