package streams

import (
	"encoding/binary"
	"io"
	"math"
)

// Fixed-width primitive encode/decode with an explicit byte order. Signed
// values travel through their unsigned bit patterns; float values through
// IEEE 754 bits. A value truncated by end of data surfaces as
// io.ErrUnexpectedEOF; a reader already at end of data returns io.EOF.

// WriteUint16 writes v to w in the given byte order.
func WriteUint16(w io.Writer, v uint16, order binary.ByteOrder) error {
	var b [2]byte
	order.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteUint32 writes v to w in the given byte order.
func WriteUint32(w io.Writer, v uint32, order binary.ByteOrder) error {
	var b [4]byte
	order.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteUint64 writes v to w in the given byte order.
func WriteUint64(w io.Writer, v uint64, order binary.ByteOrder) error {
	var b [8]byte
	order.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

// WriteFloat32 writes the IEEE 754 bits of v to w in the given byte order.
func WriteFloat32(w io.Writer, v float32, order binary.ByteOrder) error {
	return WriteUint32(w, math.Float32bits(v), order)
}

// WriteFloat64 writes the IEEE 754 bits of v to w in the given byte order.
func WriteFloat64(w io.Writer, v float64, order binary.ByteOrder) error {
	return WriteUint64(w, math.Float64bits(v), order)
}

// ReadUint16 reads a uint16 from r in the given byte order.
func ReadUint16(r io.Reader, order binary.ByteOrder) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return order.Uint16(b[:]), nil
}

// ReadUint32 reads a uint32 from r in the given byte order.
func ReadUint32(r io.Reader, order binary.ByteOrder) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return order.Uint32(b[:]), nil
}

// ReadUint64 reads a uint64 from r in the given byte order.
func ReadUint64(r io.Reader, order binary.ByteOrder) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return order.Uint64(b[:]), nil
}

// ReadFloat32 reads an IEEE 754 float32 from r in the given byte order.
func ReadFloat32(r io.Reader, order binary.ByteOrder) (float32, error) {
	bits, err := ReadUint32(r, order)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadFloat64 reads an IEEE 754 float64 from r in the given byte order.
func ReadFloat64(r io.Reader, order binary.ByteOrder) (float64, error) {
	bits, err := ReadUint64(r, order)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}
