// Package rules implements Othello board logic: the initial layout, line
// detection, move application, scoring and legal move enumeration.
//
// Every function is pure. Boards are passed and returned by value so a caller
// holding an older board (a renderer, for instance) never sees it change.
package rules

import "othello-local/types"

// InitialBoard returns the canonical starting position.
func InitialBoard() types.Board {
	var b types.Board
	mid := types.BoardSize / 2
	b[mid-1][mid-1], b[mid][mid] = types.Light, types.Light
	b[mid-1][mid], b[mid][mid-1] = types.Dark, types.Dark
	return b
}

// FindLines returns every direction in which placing player's disc at
// (col, row) would capture at least one opponent disc. The result is empty
// when the cell is off the board or occupied.
func FindLines(b types.Board, col, row int, player types.Cell) []types.Direction {
	if !types.InBounds(col, row) || b[row][col] != types.Empty {
		return nil
	}
	opponent := player.Opponent()

	var lines []types.Direction
	for _, d := range types.Directions {
		c, r := col+d.DCol, row+d.DRow
		run := 0
		for types.InBounds(c, r) && b[r][c] == opponent {
			c += d.DCol
			r += d.DRow
			run++
		}
		if run > 0 && types.InBounds(c, r) && b[r][c] == player {
			lines = append(lines, d)
		}
	}
	return lines
}

// PlayMove places player's disc at (col, row) and flips the opponent discs on
// every qualifying line. The move is assumed legal; an illegal move places the
// disc without flipping anything.
func PlayMove(b types.Board, player types.Cell, col, row int) types.Board {
	lines := FindLines(b, col, row, player)
	b[row][col] = player
	for _, d := range lines {
		c, r := col+d.DCol, row+d.DRow
		for b[r][c] != player {
			b[r][c] = player
			c += d.DCol
			r += d.DRow
		}
	}
	return b
}

// GetPossibleMoves returns the legal moves for player in row-major order.
func GetPossibleMoves(b types.Board, player types.Cell) []types.Move {
	var moves []types.Move
	for row := 0; row < types.BoardSize; row++ {
		for col := 0; col < types.BoardSize; col++ {
			if len(FindLines(b, col, row, player)) > 0 {
				moves = append(moves, types.Move{Col: col, Row: row})
			}
		}
	}
	return moves
}

// IsLegal reports whether player may place a disc at (col, row).
func IsLegal(b types.Board, player types.Cell, col, row int) bool {
	return len(FindLines(b, col, row, player)) > 0
}

// GetScore counts the discs of each color.
func GetScore(b types.Board) types.Score {
	return types.Score{
		Dark:  b.Count(types.Dark),
		Light: b.Count(types.Light),
	}
}

// Flips returns how many discs PlayMove would turn over.
func Flips(b types.Board, player types.Cell, col, row int) int {
	n := 0
	for _, d := range FindLines(b, col, row, player) {
		c, r := col+d.DCol, row+d.DRow
		for b[r][c] != player {
			n++
			c += d.DCol
			r += d.DRow
		}
	}
	return n
}
