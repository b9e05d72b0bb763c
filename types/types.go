// Package types contains shared data structures for othello-local.
package types

import "encoding/json"

// BoardSize is the fixed width and height of an Othello board.
const BoardSize = 8

// Cell is the state of a single square.
type Cell int

const (
	Empty Cell = iota
	Dark
	Light
)

// Opponent returns the other color. Empty stays Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case Dark:
		return Light
	case Light:
		return Dark
	}
	return Empty
}

func (c Cell) String() string {
	switch c {
	case Dark:
		return "dark"
	case Light:
		return "light"
	}
	return "empty"
}

// Board is indexed as Board[row][col].
type Board [BoardSize][BoardSize]Cell

// At returns the cell at (col, row).
func (b *Board) At(col, row int) Cell {
	return b[row][col]
}

// Count returns how many cells hold the given state.
func (b *Board) Count(c Cell) int {
	n := 0
	for row := range b {
		for col := range b[row] {
			if b[row][col] == c {
				n++
			}
		}
	}
	return n
}

// InBounds reports whether (col, row) lies on the board.
func InBounds(col, row int) bool {
	return col >= 0 && col < BoardSize && row >= 0 && row < BoardSize
}

// Move is a (column, row) pair.
type Move struct {
	Col int
	Row int
}

// UnmarshalJSON allows Move to be unmarshaled from a JSON array [col, row].
func (m *Move) UnmarshalJSON(data []byte) error {
	var v [2]int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m.Col = v[0]
	m.Row = v[1]
	return nil
}

// MarshalJSON writes Move as [col, row].
func (m Move) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{m.Col, m.Row})
}

// Direction is a unit offset used for line search.
type Direction struct {
	DCol int
	DRow int
}

// Directions lists the 8 compass offsets.
var Directions = [8]Direction{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Score holds disc counts for both sides.
type Score struct {
	Dark  int `json:"dark"`
	Light int `json:"light"`
}

// GameState is a read-only snapshot of a game handed to players and renderers.
type GameState struct {
	Board         Board  `json:"board"`
	CurrentPlayer Cell   `json:"current_player"`
	Score         Score  `json:"score"`
	Phase         string `json:"phase"` // "playing", "finished"
	Outcome       string `json:"outcome"`
	LastMove      *Move  `json:"last_move,omitempty"`
}

// Finished returns true if the game is over.
func (s *GameState) Finished() bool {
	return s.Phase == "finished"
}
