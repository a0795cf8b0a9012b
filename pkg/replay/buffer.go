package replay

import (
	"errors"
	"fmt"
	"io"
)

// ErrNegativeCount is returned when a negative count is passed to Skip.
var ErrNegativeCount = errors.New("replay: negative count")

// ErrOutOfRange is returned when ResetTo targets a position outside the
// recorded range.
var ErrOutOfRange = errors.New("replay: position out of range")

// ErrClosed is returned by cursor operations on a buffer whose storage has
// been released by Close.
var ErrClosed = errors.New("replay: buffer closed")

// Unit constrains the element types the package can record and replay: bytes
// for binary streams, runes for text streams.
type Unit interface {
	~byte | ~rune
}

const defaultBufferSize = 32

// Buffer is an append-only recording log with an independent replay cursor.
//
// Units are appended at the tail with Write and never change afterward: a
// unit recorded at position i is returned for every future read at i until
// the storage is released. Reading moves only the cursor, so any prefix of
// the log can be re-read arbitrarily often by moving the cursor back with
// Reset or ResetTo.
//
// The log grows automatically as data is appended. CloseWrite seals the log
// against further appends while leaving replay fully usable; Close releases
// the backing storage entirely. Buffer is not safe for concurrent use.
type Buffer[T Unit] struct {
	buf    []T
	off    int // replay cursor, 0 <= off <= size
	mark   int
	size   int // total units recorded, survives Close
	sealed bool
	closed bool
}

// NewBuffer creates an empty recording buffer with the default initial
// capacity.
func NewBuffer[T Unit]() *Buffer[T] {
	return NewBufferSize[T](defaultBufferSize)
}

// NewBufferSize creates an empty recording buffer with an initial capacity of
// n units. The capacity is a hint; the buffer grows past it as needed.
// Panics if n is negative.
func NewBufferSize[T Unit](n int) *Buffer[T] {
	if n < 0 {
		panic("replay.NewBufferSize: negative size")
	}
	return &Buffer[T]{buf: make([]T, 0, n)}
}

// Write appends p to the recording log.
//
// Appending never moves the replay cursor or the mark, and never fails: the
// returned count is always len(p). Once the buffer has been sealed by
// CloseWrite or released by Close the data is silently discarded while the
// call still reports success, so a producer feeding the log does not need to
// track its lifecycle.
func (b *Buffer[T]) Write(p []T) (int, error) {
	if b.sealed || b.closed {
		return len(p), nil
	}
	b.buf = append(b.buf, p...)
	b.size = len(b.buf)
	return len(p), nil
}

// WriteUnit appends a single unit to the recording log. It follows the same
// contract as Write.
func (b *Buffer[T]) WriteUnit(v T) error {
	if b.sealed || b.closed {
		return nil
	}
	b.buf = append(b.buf, v)
	b.size = len(b.buf)
	return nil
}

// record appends p and moves the cursor past it. Only called by Reader on
// its fresh-pull path, where the cursor is at the tail and the appended
// units have already been delivered to the caller.
func (b *Buffer[T]) record(p []T) {
	if b.sealed || b.closed {
		return
	}
	b.buf = append(b.buf, p...)
	b.size = len(b.buf)
	b.off = b.size
}

// Len returns the number of recorded units between the replay cursor and the
// tail, i.e. how many units the next reads can deliver without new data
// being appended. Reports 0 once the buffer is closed.
func (b *Buffer[T]) Len() int {
	if b.closed {
		return 0
	}
	return b.size - b.off
}

// Size returns the total number of units recorded since creation. The value
// is retained for bookkeeping even after Close releases the storage.
func (b *Buffer[T]) Size() int {
	return b.size
}

// Pos returns the replay cursor position.
func (b *Buffer[T]) Pos() int {
	return b.off
}

// ReadUnit returns the unit at the replay cursor and advances the cursor by
// one. Returns io.EOF when the cursor has reached the tail or the buffer is
// closed.
func (b *Buffer[T]) ReadUnit() (T, error) {
	if b.closed || b.off >= b.size {
		var zero T
		return zero, io.EOF
	}
	v := b.buf[b.off]
	b.off++
	return v, nil
}

// Read copies recorded units from the replay cursor into p and advances the
// cursor by the number copied, at most min(len(p), Len()).
//
// Returns io.EOF when the cursor has reached the tail or the buffer is
// closed and len(p) > 0; an empty p reads zero units with a nil error.
func (b *Buffer[T]) Read(p []T) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.closed || b.off >= b.size {
		return 0, io.EOF
	}
	n := copy(p, b.buf[b.off:b.size])
	b.off += n
	return n, nil
}

// Skip advances the replay cursor by up to n units without copying them and
// returns the number actually advanced, which is smaller than n when fewer
// recorded units remain. Skipped units stay in the log and can be revisited
// with Reset or ResetTo. A negative n fails with ErrNegativeCount and leaves
// the cursor unchanged.
func (b *Buffer[T]) Skip(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("replay: skip %d: %w", n, ErrNegativeCount)
	}
	if avail := b.Len(); n > avail {
		n = avail
	}
	b.off += n
	return n, nil
}

// Mark records the current replay cursor as the mark position. The initial
// mark is position 0.
func (b *Buffer[T]) Mark() {
	b.mark = b.off
}

// Reset moves the replay cursor back to the mark. Unlike conventional
// mark/reset streams it cannot fail for want of a mark; it only fails with
// ErrClosed once the storage has been released.
func (b *Buffer[T]) Reset() error {
	if b.closed {
		return fmt.Errorf("replay: reset: %w", ErrClosed)
	}
	b.off = b.mark
	return nil
}

// ResetTo moves the replay cursor to the absolute position pos.
//
// Any position from 0 through Size() is valid: moving backward rewinds into
// recorded data, moving forward catches up over units previously skipped or
// read, and Size() itself leaves nothing pending. Positions outside that
// range fail with ErrOutOfRange and leave the cursor unchanged. Fails with
// ErrClosed once the storage has been released.
func (b *Buffer[T]) ResetTo(pos int) error {
	if b.closed {
		return fmt.Errorf("replay: reset to %d: %w", pos, ErrClosed)
	}
	if pos < 0 || pos > b.size {
		return fmt.Errorf("replay: reset to %d with %d recorded: %w", pos, b.size, ErrOutOfRange)
	}
	b.off = pos
	return nil
}

// CloseWrite seals the log against further appends. Replay, Mark, Reset and
// ResetTo remain fully usable on the recorded content. Idempotent.
func (b *Buffer[T]) CloseWrite() error {
	b.sealed = true
	return nil
}

// Close releases the backing storage. Afterwards Len reports 0, reads return
// io.EOF, appends are discarded, and Reset/ResetTo fail with ErrClosed,
// while Pos and Size keep reporting their final values. Idempotent.
func (b *Buffer[T]) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	b.sealed = true
	b.buf = nil
	return nil
}
