package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dbu-go/internal/dbu"
)

// FSStore is a filesystem-backed implementation of the ObjectStore
// interface. Object keys map to paths under the root directory, so the
// bucket layout can be inspected with ordinary tools. Useful for local
// destinations and integration tests.
type FSStore struct {
	root string
}

// NewFSStore creates a store rooted at the given directory, creating it if
// absent.
func NewFSStore(root string) (*FSStore, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("creating store root: %w", err)
	}
	return &FSStore{root: root}, nil
}

// Put writes the object to <root>/<key> atomically (temp file + rename),
// overwriting any existing object at that key.
func (s *FSStore) Put(_ context.Context, key string, r io.Reader, size int64) error {
	destPath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return &dbu.TransferError{Key: key, Err: err}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".tmp-*")
	if err != nil {
		return &dbu.TransferError{Key: key, Err: err}
	}
	tmpPath := tmpFile.Name()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return &dbu.TransferError{Key: key, Err: err}
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return &dbu.TransferError{Key: key, Err: err}
	}
	if written != size {
		os.Remove(tmpPath)
		return &dbu.TransferError{Key: key, Err: fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)}
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return &dbu.TransferError{Key: key, Err: err}
	}
	return nil
}

// Get reads the object at key and writes it to w.
func (s *FSStore) Get(_ context.Context, key string, w io.Writer) error {
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		return &dbu.TransferError{Key: key, Err: err}
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return &dbu.TransferError{Key: key, Err: err}
	}
	return nil
}

// Validate checks that the root exists and is a directory.
func (s *FSStore) Validate(context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("store root not accessible: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store root is not a directory: %s", s.root)
	}
	return nil
}

var _ dbu.ObjectStore = (*FSStore)(nil)
