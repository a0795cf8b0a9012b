// Package textio provides decoders for text streams: unicode escape
// sequences, byte order marks, and charset transcoding.
package textio

import (
	"io"
	"unicode/utf8"
)

// UnicodeReader decodes streams of escaped unicode sequences, turning
// "\u48ello" into "Hello". Sequences carry two, four, six or eight hex
// digits; an odd trailing digit is handed through after the decoded value.
// Escaped byte order marks are consumed rather than returned: U+FEFF
// vanishes silently, while U+FFFE toggles little-endian interpretation of
// four-digit sequences and FFFE0000 of eight-digit ones. Without a mark,
// sequences are read big-endian.
//
// Malformed sequences are not an error; the consumed lookahead is handed
// through verbatim, so "\u48\u6\u48" reads as "H\u6H". Runes that are not
// part of a sequence pass through untouched.
//
// UnicodeReader satisfies io.RuneReader and the replay Source shape for
// runes. It is not safe for concurrent use.
type UnicodeReader struct {
	r    io.RuneReader
	le16 bool
	le32 bool

	// Consumed lookahead replayed after a malformed sequence, followed by
	// the single pushed-back rune that ended a hex scan.
	pending []rune
	pushed  rune
	hasPush bool
}

// NewUnicodeReader creates a UnicodeReader decoding r. Byte streams are
// wrapped with bufio.NewReader first to obtain an io.RuneReader.
func NewUnicodeReader(r io.RuneReader) *UnicodeReader {
	return &UnicodeReader{r: r}
}

func (u *UnicodeReader) readRaw() (rune, error) {
	if len(u.pending) > 0 {
		ch := u.pending[0]
		u.pending = u.pending[1:]
		return ch, nil
	}
	if u.hasPush {
		u.hasPush = false
		return u.pushed, nil
	}
	ch, _, err := u.r.ReadRune()
	return ch, err
}

func isHex(ch rune) bool {
	return '0' <= ch && ch <= '9' || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}

func hexVal(ch rune) uint32 {
	switch {
	case ch <= '9':
		return uint32(ch - '0')
	case ch <= 'F':
		return uint32(ch-'A') + 10
	default:
		return uint32(ch-'a') + 10
	}
}

// ReadRune returns the next decoded rune. The reported size is the UTF-8
// encoding length of the returned rune, not the number of source runes
// consumed to produce it.
func (u *UnicodeReader) ReadRune() (rune, int, error) {
	for {
		ch, err := u.readRaw()
		if err != nil {
			return 0, 0, err
		}
		if ch != '\\' {
			return ch, runeLen(ch), nil
		}

		marker, err := u.readRaw()
		if err == io.EOF {
			return '\\', 1, nil
		}
		if err != nil {
			return 0, 0, err
		}
		if marker != 'u' {
			u.pending = append(u.pending, marker)
			return '\\', 1, nil
		}

		// Collect up to eight hex digits. The rune that ends the scan is
		// pushed back for the next read.
		var digits [8]rune
		n := 0
		for n < len(digits) {
			ch, err := u.readRaw()
			if err == io.EOF {
				break
			}
			if err != nil {
				return 0, 0, err
			}
			if !isHex(ch) {
				u.pushed, u.hasPush = ch, true
				break
			}
			digits[n] = ch
			n++
		}

		// Sequences decode in even digit counts; an odd trailing digit is
		// replayed after the value.
		count := n &^ 1
		if count == 0 {
			u.pending = append(u.pending, 'u')
			u.pending = append(u.pending, digits[:n]...)
			return '\\', 1, nil
		}
		if count < n {
			u.pending = append(u.pending, digits[count])
		}

		var value uint32
		if u.le16 && count == 4 || u.le32 && count == 8 {
			for i := 0; i < count; i++ {
				value += hexVal(digits[i]) << (4 * (i ^ 1))
			}
		} else {
			for i := 0; i < count; i++ {
				value = value<<4 + hexVal(digits[i])
			}
		}

		switch value {
		case 0xfffe:
			u.le16 = !u.le16
		case 0xfffe0000:
			u.le32 = !u.le32
		case 0xfeff:
			// Escaped byte order mark, consumed.
		default:
			return rune(value), runeLen(rune(value)), nil
		}
	}
}

func runeLen(ch rune) int {
	if n := utf8.RuneLen(ch); n > 0 {
		return n
	}
	return 1
}

// Read fills p with decoded runes, one ReadRune at a time, until p is full
// or the stream ends. A final partial fill is returned with a nil error and
// the io.EOF surfaces on the next call.
func (u *UnicodeReader) Read(p []rune) (int, error) {
	var n int
	for n < len(p) {
		ch, _, err := u.ReadRune()
		if err != nil {
			if n > 0 && err == io.EOF {
				return n, nil
			}
			return n, err
		}
		p[n] = ch
		n++
	}
	return n, nil
}

// Close closes the underlying reader when it implements io.Closer.
func (u *UnicodeReader) Close() error {
	if c, ok := u.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
