package textio

import (
	"io"
	"strings"
	"testing"

	"github.com/haivivi/streamio/pkg/replay"
)

func decodeAll(t *testing.T, input string) string {
	t.Helper()
	u := NewUnicodeReader(strings.NewReader(input))
	var sb strings.Builder
	for {
		ch, _, err := u.ReadRune()
		if err == io.EOF {
			return sb.String()
		}
		if err != nil {
			t.Fatalf("ReadRune error: %v", err)
		}
		sb.WriteRune(ch)
	}
}

// esc builds an escape sequence from its hex digits.
func esc(hex string) string { return `\u` + hex }

func TestUnicodeReader_Decode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{esc("0048") + "ello", "Hello"},
		// Two-digit forms.
		{`\u48\u65\u6C\u6C\u6F`, "Hello"},
		// Mixed widths and endianness toggles.
		{`\u48` + esc("0065") + esc("00006C") + esc("FFFE") + esc("6C00") + esc("FFFE0000") + esc("6F000000"), "Hello"},
		// A byte-swapped mark toggles back to big-endian reads.
		{esc("FFFE") + esc("6C00") + esc("FEFF") + esc("006C"), "ll"},
		{"plain text", "plain text"},
		{"pre" + esc("0020") + "post", "pre post"},
		// Multibyte runes pass through next to sequences.
		{"h" + esc("00E9") + "llo wörld", "héllo wörld"},
		// Malformed sequences replay their consumed lookahead.
		{`\u48\u6\u48`, `H\u6H`},
		{`a\qb`, `a\qb`},
		{`trailing\`, `trailing\`},
		{`nohex\u`, `nohex\u`},
		// Escaped byte order mark is consumed.
		{esc("FEFF") + "Hi", "Hi"},
		// An odd trailing digit follows the decoded value.
		{`\u123`, "\x12" + "3"},
	}
	for _, tt := range tests {
		if got := decodeAll(t, tt.in); got != tt.want {
			t.Errorf("decode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnicodeReader_Read(t *testing.T) {
	u := NewUnicodeReader(strings.NewReader(`\u48i there`))

	p := make([]rune, 4)
	n, err := u.Read(p)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if string(p[:n]) != "Hi t" {
		t.Fatalf("Read = %q, want %q", string(p[:n]), "Hi t")
	}

	rest := make([]rune, 16)
	n, err = u.Read(rest)
	if err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if string(rest[:n]) != "here" {
		t.Errorf("Read = %q, want %q", string(rest[:n]), "here")
	}
	if _, err := u.Read(rest); err != io.EOF {
		t.Errorf("Read at end error = %v, want io.EOF", err)
	}
}

func TestUnicodeReader_AsReplaySource(t *testing.T) {
	u := NewUnicodeReader(strings.NewReader(`\u61\u62\u63`))
	r := replay.New[rune](u)

	got := make([]rune, 3)
	if _, err := r.Read(got); err != nil {
		t.Fatalf("Read error: %v", err)
	}
	if string(got) != "abc" {
		t.Fatalf("Read = %q, want %q", string(got), "abc")
	}

	if err := r.ResetTo(0); err != nil {
		t.Fatalf("ResetTo error: %v", err)
	}
	ch, err := r.ReadUnit()
	if err != nil {
		t.Fatalf("ReadUnit error: %v", err)
	}
	if ch != 'a' {
		t.Errorf("replayed ReadUnit = %q, want %q", ch, 'a')
	}
}
