package streams

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// DefaultBufferSize is the chunk size used by the copying helpers.
const DefaultBufferSize = 8192

// Merge copies each reader to w in order, one after the other. The first
// error, from a read or a write, stops the merge and is returned.
func Merge(w io.Writer, rs ...io.Reader) error {
	for i, r := range rs {
		if _, err := Pipe(w, r); err != nil {
			return fmt.Errorf("streams: merge input %d: %w", i, err)
		}
	}
	return nil
}

// MergeAvailable merges the readers as their data arrives rather than in
// order: one goroutine per reader feeds a shared pipe, so a slow source
// never starves the others. Within a single source the order is preserved;
// across sources it is arrival order.
//
// The merged stream ends with io.EOF once every source is exhausted, or with
// the first source error. Closing the returned reader tears the feeding
// goroutines down.
func MergeAvailable(rs ...io.Reader) io.ReadCloser {
	pr, pw := io.Pipe()

	var wg sync.WaitGroup
	var once sync.Once
	var firstErr error
	for _, r := range rs {
		wg.Add(1)
		go func(r io.Reader) {
			defer wg.Done()
			buf := make([]byte, DefaultBufferSize)
			for {
				n, err := r.Read(buf)
				if n > 0 {
					if _, werr := pw.Write(buf[:n]); werr != nil {
						// Reader side is gone.
						return
					}
				}
				if err == io.EOF {
					return
				}
				if err != nil {
					once.Do(func() { firstErr = err })
					return
				}
			}
		}(r)
	}
	go func() {
		wg.Wait()
		pw.CloseWithError(firstErr)
	}()
	return pr
}

// Pipe copies src to dst until end of data and returns the number of bytes
// copied.
func Pipe(dst io.Writer, src io.Reader) (int64, error) {
	return io.CopyBuffer(dst, src, make([]byte, DefaultBufferSize))
}

// PipeAsync starts the copy on its own goroutine and returns immediately.
// When the copy finishes, onExit (if non-nil) receives the terminal error:
// nil after a clean end of data, the failing read or write error otherwise.
func PipeAsync(dst io.Writer, src io.Reader, onExit func(error)) {
	go func() {
		_, err := Pipe(dst, src)
		if onExit != nil {
			onExit(err)
		}
	}()
}

// Tee returns a reader that hands through src while writing everything read
// to each mirror. A mirror write error surfaces as a read error.
func Tee(src io.Reader, mirrors ...io.Writer) io.Reader {
	if len(mirrors) == 0 {
		return src
	}
	return io.TeeReader(src, io.MultiWriter(mirrors...))
}

// Equal reports whether the two readers deliver identical content. Both are
// consumed up to the first difference or to end of data.
func Equal(a, b io.Reader) (bool, error) {
	ra := bufio.NewReaderSize(a, DefaultBufferSize)
	rb := bufio.NewReaderSize(b, DefaultBufferSize)
	for {
		ca, errA := ra.ReadByte()
		cb, errB := rb.ReadByte()
		if errA != nil && errA != io.EOF {
			return false, errA
		}
		if errB != nil && errB != io.EOF {
			return false, errB
		}
		if errA == io.EOF || errB == io.EOF {
			return errA == errB, nil
		}
		if ca != cb {
			return false, nil
		}
	}
}

// ReadFully fills p across short reads, stopping early only at end of data.
// It returns the count actually read with a nil error when anything was
// read, and 0, io.EOF when the source was already exhausted. Unlike
// io.ReadFull, a short fill caused by end of data is not an error.
func ReadFully(r io.Reader, p []byte) (int, error) {
	var n int
	for n < len(p) {
		m, err := r.Read(p[n:])
		n += m
		if err == io.EOF {
			if n == 0 {
				return 0, io.EOF
			}
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
