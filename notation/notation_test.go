package notation

import (
	"strings"
	"testing"

	"othello-local/rules"
	"othello-local/types"
)

func TestFormatMove(t *testing.T) {
	tests := []struct {
		col, row int
		want     string
	}{
		{0, 0, "a1"},
		{3, 2, "d3"},
		{7, 7, "h8"},
	}
	for _, tt := range tests {
		got := FormatMove(types.Move{Col: tt.col, Row: tt.row})
		if got != tt.want {
			t.Errorf("FormatMove(%d, %d) = %q, want %q", tt.col, tt.row, got, tt.want)
		}
	}
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove(" D3 ")
	if err != nil {
		t.Fatalf("ParseMove: %v", err)
	}
	if m != (types.Move{Col: 3, Row: 2}) {
		t.Fatalf("ParseMove = %v, want (3, 2)", m)
	}
	for _, bad := range []string{"", "i1", "a9", "a0", "abc"} {
		if _, err := ParseMove(bad); err == nil {
			t.Errorf("ParseMove(%q) should fail", bad)
		}
	}
}

func TestEncodeBoard(t *testing.T) {
	s := EncodeBoard(rules.InitialBoard())
	if !strings.HasPrefix(s, "[[0, 0, 0, 0, 0, 0, 0, 0], ") {
		t.Fatalf("unexpected prefix: %q", s)
	}
	if !strings.Contains(s, "[0, 0, 0, 2, 1, 0, 0, 0], [0, 0, 0, 1, 2, 0, 0, 0]") {
		t.Fatalf("center rows missing: %q", s)
	}
	if strings.Contains(s, "\n") {
		t.Fatal("snapshot must be a single line")
	}
}

func TestDecodeBoard(t *testing.T) {
	b := rules.PlayMove(rules.InitialBoard(), types.Dark, 3, 2)
	got, err := DecodeBoard(EncodeBoard(b))
	if err != nil {
		t.Fatalf("DecodeBoard: %v", err)
	}
	if got != b {
		t.Fatal("decoded board differs from the encoded one")
	}

	// Tuple form is accepted too.
	tuple := strings.NewReplacer("[", "(", "]", ")").Replace(EncodeBoard(b))
	if got, err := DecodeBoard(tuple); err != nil || got != b {
		t.Fatalf("tuple form: err=%v equal=%v", err, got == b)
	}
}

func TestDecodeBoardErrors(t *testing.T) {
	tests := []string{
		"",
		"[[0, 0]]",
		strings.Repeat("3 ", 64),
	}
	for _, in := range tests {
		if _, err := DecodeBoard(in); err == nil {
			t.Errorf("DecodeBoard(%q) should fail", in)
		}
	}
}
