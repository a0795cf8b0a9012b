package replay

import (
	"fmt"
	"io"
)

var (
	_ io.Reader    = (*Reader[byte])(nil)
	_ Source[byte] = (*Reader[byte])(nil)
	_ Source[rune] = (*Reader[rune])(nil)
)

// skipChunkSize bounds the scratch buffer used when Skip has to consume
// fresh data from the source.
const skipChunkSize = 512

// Reader decorates a Source with a recording Buffer.
//
// Every unit pulled from the source is appended to the buffer before it is
// handed to the caller, and whenever the replay cursor sits behind the
// recorded total, reads are served from the buffer without touching the
// source. A caller that never rewinds therefore observes exactly the
// source's output, while Mark, Reset, ResetTo and Skip allow any previously
// visited position to be revisited regardless of the source's own
// capabilities.
//
// Close seals the recording and closes the source, but keeps the recorded
// content replayable: after an explicit Reset or ResetTo, reads continue to
// deliver recorded data until it runs dry, and only then report io.EOF.
//
// Reader adds no blocking behavior of its own; a read either completes
// against the buffer immediately or blocks exactly as long as the
// underlying source does. It is not safe for concurrent use.
type Reader[T Unit] struct {
	src    Source[T]
	buf    *Buffer[T]
	closed bool
}

// New creates a replaying reader decorating src, with the default initial
// buffer capacity.
func New[T Unit](src Source[T]) *Reader[T] {
	return NewSize(src, defaultBufferSize)
}

// NewSize creates a replaying reader decorating src, with an initial buffer
// capacity of size units. Panics if size is negative.
func NewSize[T Unit](src Source[T], size int) *Reader[T] {
	return &Reader[T]{
		src: src,
		buf: NewBufferSize[T](size),
	}
}

// NewReader creates a replaying byte reader decorating r. The result
// satisfies io.Reader.
func NewReader(r io.Reader) *Reader[byte] {
	return New(Bytes(r))
}

// NewRuneReader creates a replaying rune reader decorating r.
func NewRuneReader(r io.RuneReader) *Reader[rune] {
	return New(Runes(r))
}

// ReadUnit returns the next unit: the one at the replay cursor when recorded
// data is pending, otherwise a fresh unit pulled from the source and
// recorded on the way through. Returns io.EOF once the replay is drained and
// the source is exhausted or the reader has been closed.
func (r *Reader[T]) ReadUnit() (T, error) {
	if r.buf.Len() > 0 {
		return r.buf.ReadUnit()
	}
	var zero T
	if r.closed {
		return zero, io.EOF
	}
	var one [1]T
	n, err := r.src.Read(one[:])
	if n > 0 {
		r.buf.record(one[:1])
		return one[0], nil
	}
	if err != nil {
		return zero, err
	}
	return zero, io.ErrNoProgress
}

// Read fills p with up to len(p) units.
//
// Pending replay data is drained first. If it satisfies the whole request
// the source is not touched. If it covers only part of p, the remainder is
// filled with fresh pulls, each recorded before it is counted, until p is
// full or the source reports end of data. If no replay data is pending, a
// single best-effort pull is forwarded to the source and its result returned
// unchanged, so Read blocks exactly as the source does.
//
// After Close, Read serves pending replay data and then io.EOF.
func (r *Reader[T]) Read(p []T) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	avail := r.buf.Len()
	if avail >= len(p) {
		return r.buf.Read(p)
	}
	var n int
	if avail > 0 {
		n, _ = r.buf.Read(p[:avail])
	}
	if r.closed {
		if n > 0 {
			return n, nil
		}
		return 0, io.EOF
	}
	if n == 0 {
		m, err := r.src.Read(p)
		if m > 0 {
			r.buf.record(p[:m])
		}
		return m, err
	}
	for n < len(p) {
		m, err := r.src.Read(p[n:])
		if m > 0 {
			r.buf.record(p[n : n+m])
			n += m
		}
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		if m == 0 {
			return n, io.ErrNoProgress
		}
	}
	return n, nil
}

// Skip consumes up to n units and returns the number actually consumed.
//
// Pending replay data is skipped by cursor advance; any remainder is pulled
// from the source and recorded exactly as a read would, so skipped data
// remains replayable. Reaching end of data before n units is not an error:
// the true count is returned with a nil error. A negative n fails with
// ErrNegativeCount.
func (r *Reader[T]) Skip(n int) (int, error) {
	skipped, err := r.buf.Skip(n)
	if err != nil {
		return 0, err
	}
	if skipped == n || r.closed {
		return skipped, nil
	}
	scratch := make([]T, min(n-skipped, skipChunkSize))
	for skipped < n {
		m, err := r.src.Read(scratch[:min(n-skipped, len(scratch))])
		if m > 0 {
			r.buf.record(scratch[:m])
			skipped += m
		}
		if err == io.EOF {
			return skipped, nil
		}
		if err != nil {
			return skipped, err
		}
		if m == 0 {
			return skipped, io.ErrNoProgress
		}
	}
	return skipped, nil
}

// Mark records the current position. Reset returns to it. The initial mark
// is position 0, so Reset before any Mark rewinds to the start.
func (r *Reader[T]) Mark() {
	r.buf.Mark()
}

// Reset moves the read position back to the mark. Replay of everything
// between the mark and the recorded total follows. Unlike conventional
// mark/reset streams this never fails for want of a mark, and marked data is
// never invalidated by reading far ahead.
func (r *Reader[T]) Reset() error {
	return r.buf.Reset()
}

// ResetTo moves the read position to the absolute position pos, which must
// be between 0 and Size() inclusive. Moving backward rewinds into recorded
// data; moving forward catches up over previously recorded data. Positions
// beyond Size() fail with ErrOutOfRange; no fresh data is pulled to reach an
// unvisited position.
func (r *Reader[T]) ResetTo(pos int) error {
	return r.buf.ResetTo(pos)
}

// Pos returns the current read position, counted from the first unit ever
// delivered by this reader.
func (r *Reader[T]) Pos() int {
	return r.buf.Pos()
}

// Size returns the total number of units recorded so far, i.e. the highest
// position ever reached.
func (r *Reader[T]) Size() int {
	return r.buf.Size()
}

// Buffered returns the number of recorded units between the current position
// and the recorded total: how much the next reads can deliver without
// touching the source.
func (r *Reader[T]) Buffered() int {
	return r.buf.Len()
}

// Close seals the recording, closes the source when it implements io.Closer,
// and stops all fresh pulls. Recorded content remains replayable via Reset
// and ResetTo. Idempotent: the second and later calls return nil without
// touching the source again.
func (r *Reader[T]) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.buf.CloseWrite()
	if c, ok := r.src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("replay: close source: %w", err)
		}
	}
	return nil
}
