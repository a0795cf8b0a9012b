package spool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/googleapis/gax-go/v2"
)

// DefaultChunkSize is the copy buffer size used to drain streams into
// the store when no WithChunkSize option is given.
const DefaultChunkSize = 2048

// Spooler drains streams into a Store and reads them back. Each stream
// is stored under a key together with a Manifest blob; the manifest is
// the source of truth for whether a stream exists.
type Spooler struct {
	store     Store
	chunkSize int
	logger    *slog.Logger
	retries   int
	backoff   gax.Backoff
}

// Option configures a Spooler.
type Option func(*Spooler)

// WithChunkSize sets the copy buffer size used when draining streams
// into the store. Values below one are ignored.
func WithChunkSize(n int) Option {
	return func(s *Spooler) {
		if n > 0 {
			s.chunkSize = n
		}
	}
}

// WithLogger sets the logger. If not given, slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(s *Spooler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRetry makes store operations retry transient failures up to
// attempts extra times, with exponential backoff starting at initial.
// Only idempotent operations retry; draining stream data does not,
// since the source cannot be rewound.
func WithRetry(attempts int, initial time.Duration) Option {
	return func(s *Spooler) {
		if attempts > 0 {
			s.retries = attempts
		}
		if initial > 0 {
			s.backoff.Initial = initial
		}
	}
}

// New creates a Spooler over store.
func New(store Store, opts ...Option) *Spooler {
	s := &Spooler{
		store:     store,
		chunkSize: DefaultChunkSize,
		logger:    slog.Default(),
		backoff: gax.Backoff{
			Initial:    100 * time.Millisecond,
			Max:        5 * time.Second,
			Multiplier: 2,
		},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Put spools r under a fresh random key and returns the manifest.
func (s *Spooler) Put(ctx context.Context, r io.Reader) (*Manifest, error) {
	return s.PutKey(ctx, uuid.NewString(), r)
}

// PutKey drains r into the store under key and writes the manifest.
// An existing stream under the same key is replaced. The key must be
// non-empty and must not end in the manifest suffix.
func (s *Spooler) PutKey(ctx context.Context, key string, r io.Reader) (*Manifest, error) {
	if key == "" {
		return nil, errors.New("spool: empty key")
	}
	if strings.HasSuffix(key, manifestSuffix) {
		return nil, fmt.Errorf("spool: key %q uses reserved suffix %q", key, manifestSuffix)
	}

	w, err := s.store.Write(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("spool: put %s: %w", key, err)
	}
	n, err := io.CopyBuffer(w, r, make([]byte, s.chunkSize))
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("spool: put %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("spool: put %s: %w", key, err)
	}

	m := &Manifest{
		Key:       key,
		Length:    n,
		ChunkSize: s.chunkSize,
		Chunks:    int((n + int64(s.chunkSize) - 1) / int64(s.chunkSize)),
		CreatedAt: time.Now().UTC(),
	}
	data, err := encodeManifest(m)
	if err != nil {
		return nil, err
	}
	err = s.retry(ctx, "put manifest", func() error {
		return writeBlob(ctx, s.store, manifestKey(key), data)
	})
	if err != nil {
		return nil, fmt.Errorf("spool: put %s: %w", key, err)
	}
	s.logger.Debug("spool: stored stream", "key", key, "length", n, "chunks", m.Chunks)
	return m, nil
}

// Open returns the stored stream and its manifest. The caller must
// close the returned reader. Missing streams report os.ErrNotExist.
func (s *Spooler) Open(ctx context.Context, key string) (io.ReadCloser, *Manifest, error) {
	m, err := s.Stat(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	var rc io.ReadCloser
	err = s.retry(ctx, "open", func() error {
		var err error
		rc, err = s.store.Read(ctx, key)
		return err
	})
	if err != nil {
		return nil, nil, fmt.Errorf("spool: open %s: %w", key, err)
	}
	return rc, m, nil
}

// Stat reads the manifest for key without opening the stream data.
func (s *Spooler) Stat(ctx context.Context, key string) (*Manifest, error) {
	var data []byte
	err := s.retry(ctx, "stat", func() error {
		rc, err := s.store.Read(ctx, manifestKey(key))
		if err != nil {
			return err
		}
		defer rc.Close()
		data, err = io.ReadAll(rc)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("spool: stat %s: %w", key, err)
	}
	return decodeManifest(key, data)
}

// Delete removes the stream and its manifest. Deleting a missing key
// is not an error.
func (s *Spooler) Delete(ctx context.Context, key string) error {
	err := s.retry(ctx, "delete", func() error {
		return s.store.Delete(ctx, key)
	})
	if err != nil {
		return fmt.Errorf("spool: delete %s: %w", key, err)
	}
	err = s.retry(ctx, "delete manifest", func() error {
		return s.store.Delete(ctx, manifestKey(key))
	})
	if err != nil {
		return fmt.Errorf("spool: delete %s: %w", key, err)
	}
	s.logger.Debug("spool: deleted stream", "key", key)
	return nil
}

// writeBlob stores data under key in one shot.
func writeBlob(ctx context.Context, st Store, key string, data []byte) error {
	w, err := st.Write(ctx, key)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// retry runs fn, retrying transient failures with exponential backoff
// up to the configured attempt count. Not-exist and context errors are
// never retried.
func (s *Spooler) retry(ctx context.Context, op string, fn func() error) error {
	bo := s.backoff
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || attempt >= s.retries || !retryable(err) {
			return err
		}
		s.logger.Debug("spool: retrying", "op", op, "attempt", attempt+1, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(bo.Pause()):
		}
	}
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, os.ErrNotExist),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
