package textio

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned by Charset for names the IANA index cannot
// resolve to a usable encoding.
var ErrUnknownCharset = errors.New("textio: unknown charset")

// Charset resolves an IANA charset name or alias, such as "ISO-8859-1" or
// "windows-1252", to its encoding.
func Charset(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("textio: charset %q: %w", name, ErrUnknownCharset)
	}
	if enc == nil {
		return nil, fmt.Errorf("textio: charset %q has no decoder: %w", name, ErrUnknownCharset)
	}
	return enc, nil
}

// DecodeReader returns a reader that translates r from the given charset to
// UTF-8. Transcoding behavior, replacement runes included, is the encoding's
// own.
func DecodeReader(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}

// EncodeReader returns a reader that translates UTF-8 input from r into the
// given charset.
func EncodeReader(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewEncoder())
}
