// Package spool persists recorded streams in external blob stores.
//
// A Store is a flat keyed blob store with streaming reads and writes.
// Implementations are provided for memory (testing), a local directory,
// Amazon S3, and BadgerDB. A Spooler drains a stream into a Store under
// a key, records a Manifest describing what was stored, and reads the
// stream back later:
//
//	sp := spool.New(store)
//	m, err := sp.PutKey(ctx, "session-7", r)
//	...
//	rc, m, err := sp.Open(ctx, "session-7")
//
// Missing keys are reported by wrapping os.ErrNotExist, so callers can
// test with errors.Is regardless of the backing store.
package spool

import (
	"context"
	"io"
)

// Store is a flat keyed blob store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Read opens the blob stored under key for sequential reading.
	// The caller must close the returned reader. If no blob exists
	// under key, the error wraps os.ErrNotExist.
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// Write creates or replaces the blob under key. The blob is not
	// guaranteed to be complete or visible until the returned writer
	// is closed.
	Write(ctx context.Context, key string) (io.WriteCloser, error)

	// Delete removes the blob under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether a blob is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}
