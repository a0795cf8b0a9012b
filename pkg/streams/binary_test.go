package streams

import (
	"bytes"
	"encoding/binary"
	"io"
	"strings"
	"testing"
)

func TestBinary_RoundTrip(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.BigEndian, binary.LittleEndian} {
		var buf bytes.Buffer
		if err := WriteUint16(&buf, 0xBEEF, order); err != nil {
			t.Fatalf("WriteUint16 error: %v", err)
		}
		if err := WriteUint32(&buf, 0xDEADBEEF, order); err != nil {
			t.Fatalf("WriteUint32 error: %v", err)
		}
		if err := WriteUint64(&buf, 0x0123456789ABCDEF, order); err != nil {
			t.Fatalf("WriteUint64 error: %v", err)
		}
		if err := WriteFloat64(&buf, 3.25, order); err != nil {
			t.Fatalf("WriteFloat64 error: %v", err)
		}
		if buf.Len() != 2+4+8+8 {
			t.Fatalf("encoded length = %d, want 22", buf.Len())
		}

		if v, err := ReadUint16(&buf, order); err != nil || v != 0xBEEF {
			t.Errorf("%v ReadUint16 = %x, %v", order, v, err)
		}
		if v, err := ReadUint32(&buf, order); err != nil || v != 0xDEADBEEF {
			t.Errorf("%v ReadUint32 = %x, %v", order, v, err)
		}
		if v, err := ReadUint64(&buf, order); err != nil || v != 0x0123456789ABCDEF {
			t.Errorf("%v ReadUint64 = %x, %v", order, v, err)
		}
		if v, err := ReadFloat64(&buf, order); err != nil || v != 3.25 {
			t.Errorf("%v ReadFloat64 = %v, %v", order, v, err)
		}
	}
}

func TestBinary_Endianness(t *testing.T) {
	var buf bytes.Buffer
	WriteUint16(&buf, 0x0102, binary.BigEndian)
	if !bytes.Equal(buf.Bytes(), []byte{0x01, 0x02}) {
		t.Errorf("big endian bytes = %v, want [1 2]", buf.Bytes())
	}

	buf.Reset()
	WriteUint16(&buf, 0x0102, binary.LittleEndian)
	if !bytes.Equal(buf.Bytes(), []byte{0x02, 0x01}) {
		t.Errorf("little endian bytes = %v, want [2 1]", buf.Bytes())
	}
}

func TestBinary_Truncated(t *testing.T) {
	if _, err := ReadUint32(strings.NewReader("ab"), binary.BigEndian); err != io.ErrUnexpectedEOF {
		t.Errorf("truncated ReadUint32 error = %v, want io.ErrUnexpectedEOF", err)
	}
	if _, err := ReadUint16(strings.NewReader(""), binary.BigEndian); err != io.EOF {
		t.Errorf("empty ReadUint16 error = %v, want io.EOF", err)
	}
}
