package spool

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/haivivi/streamio/pkg/replay"
)

func newTestSpooler(st Store, opts ...Option) *Spooler {
	opts = append([]Option{WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	return New(st, opts...)
}

func TestSpooler_PutKeyOpen(t *testing.T) {
	ctx := context.Background()
	sp := newTestSpooler(NewMemory(), WithChunkSize(4))

	m, err := sp.PutKey(ctx, "session-7", strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("PutKey error: %v", err)
	}
	if m.Key != "session-7" || m.Length != 11 || m.ChunkSize != 4 || m.Chunks != 3 {
		t.Fatalf("manifest = %+v", m)
	}
	if m.CreatedAt.IsZero() {
		t.Fatal("manifest CreatedAt is zero")
	}

	rc, m2, err := sp.Open(ctx, "session-7")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if string(data) != "hello world" {
		t.Fatalf("got %q, want %q", data, "hello world")
	}
	if m2.Length != m.Length {
		t.Fatalf("Open manifest length = %d, want %d", m2.Length, m.Length)
	}
}

func TestSpooler_PutGeneratesKeys(t *testing.T) {
	ctx := context.Background()
	sp := newTestSpooler(NewMemory())

	m1, err := sp.Put(ctx, strings.NewReader("one"))
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	m2, err := sp.Put(ctx, strings.NewReader("two"))
	if err != nil {
		t.Fatalf("Put error: %v", err)
	}
	if err := uuid.Validate(m1.Key); err != nil {
		t.Fatalf("key %q is not a uuid: %v", m1.Key, err)
	}
	if m1.Key == m2.Key {
		t.Fatalf("duplicate generated key %q", m1.Key)
	}
}

func TestSpooler_KeyValidation(t *testing.T) {
	ctx := context.Background()
	sp := newTestSpooler(NewMemory())

	if _, err := sp.PutKey(ctx, "", strings.NewReader("x")); err == nil {
		t.Fatal("empty key accepted")
	}
	if _, err := sp.PutKey(ctx, "x.manifest", strings.NewReader("x")); err == nil {
		t.Fatal("reserved suffix accepted")
	}
}

func TestSpooler_Missing(t *testing.T) {
	ctx := context.Background()
	sp := newTestSpooler(NewMemory())

	if _, err := sp.Stat(ctx, "nope"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Stat: got %v, want os.ErrNotExist", err)
	}
	if _, _, err := sp.Open(ctx, "nope"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Open: got %v, want os.ErrNotExist", err)
	}
}

func TestSpooler_Delete(t *testing.T) {
	ctx := context.Background()
	st := NewMemory()
	sp := newTestSpooler(st)

	if _, err := sp.PutKey(ctx, "k", strings.NewReader("data")); err != nil {
		t.Fatalf("PutKey error: %v", err)
	}
	if err := sp.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, err := sp.Stat(ctx, "k"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Stat after delete: got %v, want os.ErrNotExist", err)
	}
	if st.Len() != 0 {
		t.Fatalf("store still holds %d blobs after delete", st.Len())
	}
	if err := sp.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete again error: %v", err)
	}
}

// flakyStore fails the first few reads to exercise retry.
type flakyStore struct {
	Store
	failures int
}

func (f *flakyStore) Read(ctx context.Context, key string) (io.ReadCloser, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("transient")
	}
	return f.Store.Read(ctx, key)
}

func TestSpooler_RetriesTransient(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	if _, err := newTestSpooler(mem).PutKey(ctx, "k", strings.NewReader("data")); err != nil {
		t.Fatalf("PutKey error: %v", err)
	}

	flaky := &flakyStore{Store: mem, failures: 2}
	sp := newTestSpooler(flaky, WithRetry(3, time.Millisecond))
	m, err := sp.Stat(ctx, "k")
	if err != nil {
		t.Fatalf("Stat with retry error: %v", err)
	}
	if m.Length != 4 {
		t.Fatalf("Length = %d, want 4", m.Length)
	}

	flaky.failures = 2
	if _, err := newTestSpooler(flaky).Stat(ctx, "k"); err == nil {
		t.Fatal("Stat without retry succeeded")
	}
}

func TestSpooler_NoRetryOnMissing(t *testing.T) {
	ctx := context.Background()
	sp := newTestSpooler(NewMemory(), WithRetry(5, time.Millisecond))

	start := time.Now()
	if _, err := sp.Stat(ctx, "nope"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Stat: got %v, want os.ErrNotExist", err)
	}
	if d := time.Since(start); d > 500*time.Millisecond {
		t.Fatalf("missing key was retried for %v", d)
	}
}

func TestSpooler_SpoolsRecordedStream(t *testing.T) {
	ctx := context.Background()
	sp := newTestSpooler(NewMemory())

	// Consume part of a recorded stream, rewind, then spool the whole
	// thing from the start.
	r := replay.NewReader(strings.NewReader("abcdef"))
	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil {
		t.Fatalf("ReadFull error: %v", err)
	}
	if err := r.ResetTo(0); err != nil {
		t.Fatalf("ResetTo error: %v", err)
	}

	m, err := sp.PutKey(ctx, "rec", r)
	if err != nil {
		t.Fatalf("PutKey error: %v", err)
	}
	if m.Length != 6 {
		t.Fatalf("Length = %d, want 6", m.Length)
	}
	rc, _, err := sp.Open(ctx, "rec")
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if string(data) != "abcdef" {
		t.Fatalf("got %q, want %q", data, "abcdef")
	}
}
