package engine

import (
	"context"

	"othello-local/types"
)

// Human is a player whose moves come from an external collaborator, such as a
// terminal UI translating a cursor position into a board cell.
type Human struct {
	name  string
	moves chan types.Move
}

// NewHuman creates a human player with the given display name.
func NewHuman(name string) *Human {
	return &Human{
		name:  name,
		moves: make(chan types.Move),
	}
}

// Name returns the display name.
func (h *Human) Name() string {
	return h.name
}

// Interactive reports true: a person can pick another cell after an invalid move.
func (h *Human) Interactive() bool {
	return true
}

// Submit hands a move to a pending GetMove call. It returns false when no
// GetMove call is waiting, in which case the move is dropped.
func (h *Human) Submit(col, row int) bool {
	select {
	case h.moves <- types.Move{Col: col, Row: row}:
		return true
	default:
		return false
	}
}

// GetMove blocks until a move is submitted or ctx is done.
func (h *Human) GetMove(ctx context.Context, _ *types.GameState) (types.Move, error) {
	select {
	case m := <-h.moves:
		return m, nil
	case <-ctx.Done():
		return types.Move{}, ctx.Err()
	}
}

// Terminate does nothing for human players.
func (h *Human) Terminate(*types.GameState) {}
