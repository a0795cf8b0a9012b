package spool

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	badger "github.com/dgraph-io/badger/v4"
)

// badgerChunkSize caps the size of a single BadgerDB value. Blobs
// larger than this are split across consecutive chunk entries.
const badgerChunkSize = 64 << 10

// Badger is a Store backed by BadgerDB v4. Blobs are stored as runs of
// fixed-size chunk entries, so streams larger than a comfortable LSM
// value still stream in and out without being held in memory whole.
//
// The store wraps an already open database. The caller owns the
// database handle and closes it.
type Badger struct {
	db        *badger.DB
	chunkSize int
}

var _ Store = (*Badger)(nil)

// NewBadger creates a BadgerDB-backed store over db.
func NewBadger(db *badger.DB) *Badger {
	return &Badger{db: db, chunkSize: badgerChunkSize}
}

// chunkKey encodes the storage key of chunk i of a blob. The NUL
// separator keeps blob keys from colliding with each other's chunks,
// and the big-endian index keeps chunks ordered for prefix scans.
func chunkKey(key string, i uint32) []byte {
	k := make([]byte, 0, len(key)+5)
	k = append(k, key...)
	k = append(k, 0)
	return binary.BigEndian.AppendUint32(k, i)
}

func (b *Badger) Read(_ context.Context, key string) (io.ReadCloser, error) {
	txn := b.db.NewTransaction(false)
	first, err := readChunk(txn, key, 0)
	if err != nil {
		txn.Discard()
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("spool: read %s: %w", key, os.ErrNotExist)
		}
		return nil, fmt.Errorf("spool: read %s: %w", key, err)
	}
	return &badgerReader{txn: txn, key: key, chunk: first, next: 1}, nil
}

func (b *Badger) Write(_ context.Context, key string) (io.WriteCloser, error) {
	if key == "" {
		return nil, errors.New("spool: empty key")
	}
	return &badgerWriter{
		db:    b.db,
		key:   key,
		buf:   make([]byte, 0, b.chunkSize),
		limit: b.chunkSize,
	}, nil
}

func (b *Badger) Delete(_ context.Context, key string) error {
	prefix := chunkKey(key, 0)[:len(key)+1]
	wb := b.db.NewWriteBatch()
	defer wb.Cancel()
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := wb.Delete(it.Item().KeyCopy(nil)); err != nil {
				return err
			}
		}
		return nil
	})
	if err == nil {
		err = wb.Flush()
	}
	if err != nil {
		return fmt.Errorf("spool: delete %s: %w", key, err)
	}
	return nil
}

func (b *Badger) Exists(_ context.Context, key string) (bool, error) {
	err := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(chunkKey(key, 0))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("spool: stat %s: %w", key, err)
	}
	return true, nil
}

func readChunk(txn *badger.Txn, key string, i uint32) ([]byte, error) {
	item, err := txn.Get(chunkKey(key, i))
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

// badgerReader streams chunks out of a single read transaction, so the
// blob is read at one consistent snapshot even while being replaced.
type badgerReader struct {
	txn   *badger.Txn
	key   string
	chunk []byte
	next  uint32
	eof   bool
}

func (r *badgerReader) Read(p []byte) (int, error) {
	for len(r.chunk) == 0 {
		if r.eof {
			return 0, io.EOF
		}
		chunk, err := readChunk(r.txn, r.key, r.next)
		if errors.Is(err, badger.ErrKeyNotFound) {
			r.eof = true
			return 0, io.EOF
		}
		if err != nil {
			return 0, fmt.Errorf("spool: read %s: %w", r.key, err)
		}
		r.chunk = chunk
		r.next++
	}
	n := copy(p, r.chunk)
	r.chunk = r.chunk[n:]
	return n, nil
}

func (r *badgerReader) Close() error {
	r.txn.Discard()
	return nil
}

// badgerWriter accumulates one chunk at a time and commits each full
// chunk in its own transaction. Chunk 0 is always written, so empty
// blobs still exist.
type badgerWriter struct {
	db     *badger.DB
	key    string
	buf    []byte
	limit  int
	next   uint32
	wrote  bool
	closed bool
	err    error
}

func (w *badgerWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("spool: write %s: %w", w.key, os.ErrClosed)
	}
	if w.err != nil {
		return 0, w.err
	}
	total := len(p)
	for len(p) > 0 {
		room := w.limit - len(w.buf)
		if room == 0 {
			if err := w.flush(); err != nil {
				w.err = err
				return total - len(p), err
			}
			room = w.limit
		}
		if room > len(p) {
			room = len(p)
		}
		w.buf = append(w.buf, p[:room]...)
		p = p[room:]
	}
	return total, nil
}

func (w *badgerWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	if w.err != nil {
		return w.err
	}
	if len(w.buf) > 0 || !w.wrote {
		if err := w.flush(); err != nil {
			return err
		}
	}
	return w.truncate()
}

func (w *badgerWriter) flush() error {
	// Badger holds on to the value slice, so the reusable buffer
	// cannot be handed over directly.
	chunk := append([]byte(nil), w.buf...)
	err := w.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(w.key, w.next), chunk)
	})
	if err != nil {
		return fmt.Errorf("spool: write %s: %w", w.key, err)
	}
	w.next++
	w.wrote = true
	w.buf = w.buf[:0]
	return nil
}

// truncate removes chunks left behind when a shorter blob replaces a
// longer one under the same key.
func (w *badgerWriter) truncate() error {
	for i := w.next; ; i++ {
		err := w.db.Update(func(txn *badger.Txn) error {
			k := chunkKey(w.key, i)
			if _, err := txn.Get(k); err != nil {
				return err
			}
			return txn.Delete(k)
		})
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("spool: write %s: %w", w.key, err)
		}
	}
}
