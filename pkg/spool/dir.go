package spool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Dir is a Store backed by a directory on the local filesystem. Each
// blob is one file; keys may contain forward slashes, which map to
// subdirectories under the root.
type Dir struct {
	root string
}

var _ Store = (*Dir)(nil)

// NewDir creates a directory-backed store rooted at root, creating the
// directory if it does not exist.
func NewDir(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("spool: resolve root %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("spool: create root %s: %w", root, err)
	}
	return &Dir{root: abs}, nil
}

// Root returns the absolute root directory of the store.
func (d *Dir) Root() string { return d.root }

// resolve maps a key to a path under the root and rejects keys that
// would escape it.
func (d *Dir) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("spool: empty key")
	}
	full := filepath.Join(d.root, filepath.FromSlash(key))
	if full == d.root || !strings.HasPrefix(full, d.root+string(filepath.Separator)) {
		return "", fmt.Errorf("spool: key %q escapes store root", key)
	}
	return full, nil
}

func (d *Dir) Read(_ context.Context, key string) (io.ReadCloser, error) {
	full, err := d.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("spool: read %s: %w", key, err)
	}
	return f, nil
}

func (d *Dir) Write(_ context.Context, key string) (io.WriteCloser, error) {
	full, err := d.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, fmt.Errorf("spool: write %s: %w", key, err)
	}
	// Write to a temp file in the same directory and rename on Close,
	// so readers never observe a half-written blob.
	tmp, err := os.CreateTemp(filepath.Dir(full), ".spool-*")
	if err != nil {
		return nil, fmt.Errorf("spool: write %s: %w", key, err)
	}
	return &dirWriter{f: tmp, key: key, final: full}, nil
}

func (d *Dir) Delete(_ context.Context, key string) error {
	full, err := d.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("spool: delete %s: %w", key, err)
	}
	return nil
}

func (d *Dir) Exists(_ context.Context, key string) (bool, error) {
	full, err := d.resolve(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("spool: stat %s: %w", key, err)
	}
	return true, nil
}

type dirWriter struct {
	f      *os.File
	key    string
	final  string
	closed bool
}

func (w *dirWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("spool: write %s: %w", w.key, os.ErrClosed)
	}
	return w.f.Write(p)
}

func (w *dirWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.f.Close(); err != nil {
		os.Remove(w.f.Name())
		return fmt.Errorf("spool: write %s: %w", w.key, err)
	}
	if err := os.Rename(w.f.Name(), w.final); err != nil {
		os.Remove(w.f.Name())
		return fmt.Errorf("spool: write %s: %w", w.key, err)
	}
	return nil
}
