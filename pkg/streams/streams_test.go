package streams

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"time"
)

func TestMerge(t *testing.T) {
	var out bytes.Buffer
	err := Merge(&out, strings.NewReader("ab"), strings.NewReader("cd"), strings.NewReader("ef"))
	if err != nil {
		t.Fatalf("Merge error: %v", err)
	}
	if out.String() != "abcdef" {
		t.Errorf("Merge output = %q, want %q", out.String(), "abcdef")
	}
}

var errBroken = errors.New("broken")

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errBroken }

func TestMerge_Error(t *testing.T) {
	var out bytes.Buffer
	err := Merge(&out, strings.NewReader("ab"), brokenReader{}, strings.NewReader("cd"))
	if !errors.Is(err, errBroken) {
		t.Fatalf("Merge error = %v, want errBroken", err)
	}
	if out.String() != "ab" {
		t.Errorf("Merge partial output = %q, want %q", out.String(), "ab")
	}
}

func TestMergeAvailable(t *testing.T) {
	merged := MergeAvailable(strings.NewReader(strings.Repeat("a", 100)), strings.NewReader(strings.Repeat("b", 50)))
	defer merged.Close()

	got, err := io.ReadAll(merged)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if len(got) != 150 {
		t.Fatalf("merged length = %d, want 150", len(got))
	}
	counts := map[byte]int{}
	for _, c := range got {
		counts[c]++
	}
	if counts['a'] != 100 || counts['b'] != 50 {
		t.Errorf("merged counts = %v, want 100 a and 50 b", counts)
	}
}

func TestMergeAvailable_Error(t *testing.T) {
	merged := MergeAvailable(brokenReader{})
	defer merged.Close()

	if _, err := io.ReadAll(merged); !errors.Is(err, errBroken) {
		t.Errorf("ReadAll error = %v, want errBroken", err)
	}
}

func TestPipe(t *testing.T) {
	var out bytes.Buffer
	n, err := Pipe(&out, strings.NewReader("hello"))
	if err != nil {
		t.Fatalf("Pipe error: %v", err)
	}
	if n != 5 || out.String() != "hello" {
		t.Errorf("Pipe = %d, %q, want 5, %q", n, out.String(), "hello")
	}
}

func TestPipeAsync(t *testing.T) {
	var out bytes.Buffer
	done := make(chan error, 1)
	PipeAsync(&out, strings.NewReader("hello"), func(err error) {
		done <- err
	})

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("PipeAsync error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("PipeAsync did not finish")
	}
	if out.String() != "hello" {
		t.Errorf("PipeAsync output = %q, want %q", out.String(), "hello")
	}
}

func TestTee(t *testing.T) {
	var m1, m2 bytes.Buffer
	r := Tee(strings.NewReader("hello"), &m1, &m2)

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll error: %v", err)
	}
	if string(got) != "hello" || m1.String() != "hello" || m2.String() != "hello" {
		t.Errorf("Tee = %q, mirrors %q/%q, want all %q", got, m1.String(), m2.String(), "hello")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"", "", true},
		{"abc", "abc", true},
		{"abc", "abd", false},
		{"abc", "abcd", false},
		{"abcd", "abc", false},
	}
	for _, tt := range tests {
		got, err := Equal(strings.NewReader(tt.a), strings.NewReader(tt.b))
		if err != nil {
			t.Fatalf("Equal(%q, %q) error: %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestReadFully(t *testing.T) {
	// One byte per pull; ReadFully keeps going until the slice is full.
	r := iotest.OneByteReader(strings.NewReader("abcdef"))
	p := make([]byte, 4)
	n, err := ReadFully(r, p)
	if err != nil {
		t.Fatalf("ReadFully error: %v", err)
	}
	if n != 4 || string(p) != "abcd" {
		t.Fatalf("ReadFully = %q (%d), want %q (4)", p[:n], n, "abcd")
	}

	// End of data short of the slice is a partial count, not an error.
	p = make([]byte, 4)
	n, err = ReadFully(r, p)
	if err != nil {
		t.Fatalf("ReadFully error: %v", err)
	}
	if n != 2 || string(p[:n]) != "ef" {
		t.Errorf("ReadFully = %q (%d), want %q (2)", p[:n], n, "ef")
	}

	// Exhausted source reports io.EOF.
	if n, err := ReadFully(r, p); n != 0 || err != io.EOF {
		t.Errorf("ReadFully at end = %d, %v, want 0, io.EOF", n, err)
	}
}
