package textio

import (
	"bytes"
	"io"

	"github.com/haivivi/streamio/pkg/replay"
	"github.com/haivivi/streamio/pkg/streams"
)

// BOM identifies a byte order mark at the start of a stream.
type BOM int

const (
	BOMNone BOM = iota
	BOMUTF8
	BOMUTF16LE
	BOMUTF16BE
	BOMUTF32LE
	BOMUTF32BE
)

var bomNames = map[BOM]string{
	BOMNone:    "none",
	BOMUTF8:    "UTF-8",
	BOMUTF16LE: "UTF-16LE",
	BOMUTF16BE: "UTF-16BE",
	BOMUTF32LE: "UTF-32LE",
	BOMUTF32BE: "UTF-32BE",
}

func (b BOM) String() string {
	if s, ok := bomNames[b]; ok {
		return s
	}
	return "unknown"
}

// Len returns the byte length of the mark, 0 for BOMNone.
func (b BOM) Len() int {
	switch b {
	case BOMUTF8:
		return 3
	case BOMUTF16LE, BOMUTF16BE:
		return 2
	case BOMUTF32LE, BOMUTF32BE:
		return 4
	}
	return 0
}

// DetectBOM reads the start of r, classifies its byte order mark, and
// returns a reader positioned just past the mark (or at the very start when
// none is present). The lookahead is recorded through a replay reader, so no
// data is lost regardless of the outcome.
func DetectBOM(r io.Reader) (BOM, io.Reader, error) {
	rr := replay.NewReader(r)
	head := make([]byte, 4)
	n, err := streams.ReadFully(rr, head)
	if err != nil && err != io.EOF {
		return BOMNone, nil, err
	}

	bom := classifyBOM(head[:n])
	if err := rr.ResetTo(bom.Len()); err != nil {
		return BOMNone, nil, err
	}
	return bom, rr, nil
}

// The 32-bit marks embed the 16-bit ones, so they are checked first.
func classifyBOM(head []byte) BOM {
	switch {
	case bytes.HasPrefix(head, []byte{0x00, 0x00, 0xFE, 0xFF}):
		return BOMUTF32BE
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE, 0x00, 0x00}):
		return BOMUTF32LE
	case bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}):
		return BOMUTF8
	case bytes.HasPrefix(head, []byte{0xFE, 0xFF}):
		return BOMUTF16BE
	case bytes.HasPrefix(head, []byte{0xFF, 0xFE}):
		return BOMUTF16LE
	}
	return BOMNone
}
