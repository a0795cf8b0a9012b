package replay

import "io"

// Source is the pull side a Reader decorates: a blocking, best-effort batch
// read in the shape of io.Reader, generalized over the unit type. Read fills
// p with up to len(p) units and reports how many it delivered; end of data is
// io.EOF, which may accompany the final units.
//
// Reader itself satisfies Source, so a replay reader can be composed
// transparently in front of any other source, including another replay
// reader.
type Source[T Unit] interface {
	Read(p []T) (int, error)
}

// Bytes adapts an io.Reader into a byte Source. If r is also an io.Closer,
// closing the adapter closes r.
func Bytes(r io.Reader) Source[byte] {
	return &byteSource{r: r}
}

type byteSource struct {
	r io.Reader
}

func (s *byteSource) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *byteSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Runes adapts an io.RuneReader into a rune Source. Each Read fills p one
// rune at a time until p is full or the reader is exhausted; a final partial
// fill is returned with a nil error and the io.EOF surfaces on the next
// call. If r is also an io.Closer, closing the adapter closes r.
func Runes(r io.RuneReader) Source[rune] {
	return &runeSource{r: r}
}

type runeSource struct {
	r io.RuneReader
}

func (s *runeSource) Read(p []rune) (int, error) {
	var n int
	for n < len(p) {
		r, _, err := s.r.ReadRune()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}
		p[n] = r
		n++
	}
	return n, nil
}

func (s *runeSource) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// RuneSlice adapts an in-memory rune slice into a rune Source, for fixtures
// and already-decoded text.
func RuneSlice(s []rune) Source[rune] {
	src := runeSliceSource(s)
	return &src
}

type runeSliceSource []rune

func (s *runeSliceSource) Read(p []rune) (int, error) {
	if len(*s) == 0 {
		return 0, io.EOF
	}
	n := copy(p, *s)
	*s = (*s)[n:]
	return n, nil
}
