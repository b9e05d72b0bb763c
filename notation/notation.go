// Package notation converts boards and moves to and from their text forms.
package notation

import (
	"fmt"
	"strings"

	"othello-local/types"
)

// Coordinate system:
// - Columns: a-h (left to right)
// - Rows: 1-8 (top to bottom)
// - Example: (3, 2) is "d3"

// FormatMove converts a move to its display form, e.g. (3, 2) -> "d3".
func FormatMove(m types.Move) string {
	return fmt.Sprintf("%c%d", 'a'+rune(m.Col), m.Row+1)
}

// ParseMove converts a display coordinate such as "d3" or "D3" to a move.
func ParseMove(s string) (types.Move, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if len(s) != 2 {
		return types.Move{}, fmt.Errorf("invalid coordinate: %q", s)
	}
	col := int(s[0] - 'a')
	row := int(s[1] - '1')
	if !types.InBounds(col, row) {
		return types.Move{}, fmt.Errorf("coordinate out of bounds: %q", s)
	}
	return types.Move{Col: col, Row: row}, nil
}

// ColorCode returns the protocol code for a color: 1 for dark, 2 for light.
func ColorCode(c types.Cell) int {
	return int(c)
}

// EncodeBoard writes the board as a bracketed list of rows of cell codes,
// e.g. "[[0, 0, ...], [...], ...]", rows top to bottom.
func EncodeBoard(b types.Board) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for row := 0; row < types.BoardSize; row++ {
		if row > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('[')
		for col := 0; col < types.BoardSize; col++ {
			if col > 0 {
				sb.WriteString(", ")
			}
			sb.WriteByte(byte('0' + b[row][col]))
		}
		sb.WriteByte(']')
	}
	sb.WriteByte(']')
	return sb.String()
}

// DecodeBoard parses a snapshot written by EncodeBoard. Brackets, parentheses,
// commas and whitespace are all treated as separators.
func DecodeBoard(s string) (types.Board, error) {
	var b types.Board
	fields := strings.FieldsFunc(s, func(r rune) bool {
		switch r {
		case '[', ']', '(', ')', ',', ' ', '\t', '\r', '\n':
			return true
		}
		return false
	})
	if len(fields) != types.BoardSize*types.BoardSize {
		return b, fmt.Errorf("board snapshot has %d cells, want %d", len(fields), types.BoardSize*types.BoardSize)
	}
	for i, f := range fields {
		if len(f) != 1 || f[0] < '0' || f[0] > '2' {
			return b, fmt.Errorf("invalid cell %q at index %d", f, i)
		}
		b[i/types.BoardSize][i%types.BoardSize] = types.Cell(f[0] - '0')
	}
	return b, nil
}
