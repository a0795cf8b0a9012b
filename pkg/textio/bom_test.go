package textio

import (
	"bytes"
	"io"
	"testing"
)

func TestDetectBOM(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		bom  BOM
		rest []byte
	}{
		{"utf8", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, BOMUTF8, []byte("hi")},
		{"utf16be", []byte{0xFE, 0xFF, 0x00, 'h'}, BOMUTF16BE, []byte{0x00, 'h'}},
		{"utf16le", []byte{0xFF, 0xFE, 'h', 0x00}, BOMUTF16LE, []byte{'h', 0x00}},
		{"utf32be", []byte{0x00, 0x00, 0xFE, 0xFF, 'x'}, BOMUTF32BE, []byte("x")},
		{"utf32le", []byte{0xFF, 0xFE, 0x00, 0x00, 'x'}, BOMUTF32LE, []byte("x")},
		{"none", []byte("hello"), BOMNone, []byte("hello")},
		{"short", []byte("hi"), BOMNone, []byte("hi")},
		{"empty", nil, BOMNone, nil},
		// UTF-16LE data whose first unit resembles a 32-bit mark prefix is
		// classified as 32-bit; the longest mark wins.
		{"utf16le-vs-32", []byte{0xFF, 0xFE, 0x00, 0x00, 0x68, 0x00}, BOMUTF32LE, []byte{0x68, 0x00}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bom, rest, err := DetectBOM(bytes.NewReader(tt.in))
			if err != nil {
				t.Fatalf("DetectBOM error: %v", err)
			}
			if bom != tt.bom {
				t.Fatalf("BOM = %v, want %v", bom, tt.bom)
			}
			got, err := io.ReadAll(rest)
			if err != nil {
				t.Fatalf("ReadAll error: %v", err)
			}
			if !bytes.Equal(got, tt.rest) {
				t.Errorf("rest = %v, want %v", got, tt.rest)
			}
		})
	}
}

func TestBOM_Strings(t *testing.T) {
	if BOMUTF16LE.String() != "UTF-16LE" {
		t.Errorf("String = %q, want %q", BOMUTF16LE.String(), "UTF-16LE")
	}
	if BOMNone.Len() != 0 || BOMUTF8.Len() != 3 || BOMUTF32BE.Len() != 4 {
		t.Errorf("Len mismatch: none=%d utf8=%d utf32be=%d", BOMNone.Len(), BOMUTF8.Len(), BOMUTF32BE.Len())
	}
}
