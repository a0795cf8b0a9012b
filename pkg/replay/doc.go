// Package replay provides recording stream decorators that can rewind to any
// previously visited position.
//
// The package is generic over the stream's unit type: the byte instantiation
// decorates binary streams and the rune instantiation decorates text streams.
// Two types carry the design:
//
//   - Buffer: An append-only recording log with an independent replay cursor.
//     Everything ever appended stays addressable, so the cursor can move to
//     any recorded position at any time.
//
//   - Reader: A decorator that records every unit pulled from an underlying
//     Source into a Buffer. While the cursor sits behind the recorded total,
//     reads replay from the log without touching the source; once the log is
//     drained, reads pull fresh data and record it on the way through.
//
// A Reader therefore behaves exactly like its source for straight-through
// consumption, but adds Mark, Reset, ResetTo and Skip with no cooperation
// required from the source. Reader[byte] satisfies io.Reader, and every
// Reader satisfies Source, so replay readers stack in front of one another.
//
// Neither type is safe for concurrent use; callers that share one across
// goroutines must serialize access themselves.
//
// Example usage:
//
//	r := replay.NewReader(conn)
//
//	// Consume a prefix, then rewind and deliver it again.
//	header := make([]byte, 16)
//	io.ReadFull(r, header)
//	r.ResetTo(0)
//
//	// From here the full stream, header included, replays in order.
//	io.Copy(dst, r)
package replay
