package dbu

import (
	"context"
	"io"
)

// ObjectStore is the remote side of the pipeline. Implementations classify
// their failures with the error types in this package so callers can tell
// credential problems from transfer problems without parsing text.
type ObjectStore interface {
	// Put stores size bytes from r under key, overwriting any existing
	// object at that key. Exactly one attempt; no retries.
	Put(ctx context.Context, key string, r io.Reader, size int64) error

	// Get retrieves the object at key and writes it to w.
	Get(ctx context.Context, key string, w io.Writer) error

	// Validate checks that the store is reachable and usable.
	Validate(ctx context.Context) error
}

// Encryptor transforms the archive before it ships.
type Encryptor interface {
	// Seal encrypts archivePath into a new file next to it and returns the
	// new path. A pass-through implementation returns archivePath unchanged.
	Seal(archivePath string) (string, error)
}
