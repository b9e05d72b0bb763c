// Package game holds the authoritative game state and the loop that drives
// two players through a game.
package game

import (
	"fmt"
	"sync"

	"othello-local/engine"
	"othello-local/rules"
	"othello-local/types"
)

// Manager tracks the board and the side to move. It is the only mutator of
// game state; renderers read copies through Snapshot.
type Manager struct {
	mu sync.Mutex

	board   types.Board
	current types.Cell

	// Display cache only. Scores are always recomputable from board.
	darkScore  int
	lightScore int

	lastMove *types.Move
	phase    string
	outcome  string
}

// NewManager creates a manager holding the initial position with dark to move.
func NewManager() *Manager {
	m := &Manager{}
	m.Reset()
	return m
}

// Reset restores the initial position with dark to move and clears the cached scores.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.board = rules.InitialBoard()
	m.current = types.Dark
	m.darkScore = 0
	m.lightScore = 0
	m.lastMove = nil
	m.phase = "playing"
	m.outcome = ""
}

// Play places the current player's disc at (col, row) and passes the turn to
// the opponent. It fails with engine.ErrInvalidMove, leaving the state
// unchanged, when the cell is off the board, occupied, or captures nothing.
func (m *Manager) Play(col, row int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !types.InBounds(col, row) {
		return fmt.Errorf("%w: (%d, %d) is off the board", engine.ErrInvalidMove, col, row)
	}
	if m.board[row][col] != types.Empty {
		return fmt.Errorf("%w: occupied square (%d, %d)", engine.ErrInvalidMove, col, row)
	}
	if !rules.IsLegal(m.board, m.current, col, row) {
		return fmt.Errorf("%w: (%d, %d) captures nothing", engine.ErrInvalidMove, col, row)
	}

	m.board = rules.PlayMove(m.board, m.current, col, row)
	m.current = m.current.Opponent()
	m.lastMove = &types.Move{Col: col, Row: row}
	m.refreshScores()
	return nil
}

// PossibleMoves returns the legal moves of the side to move.
func (m *Manager) PossibleMoves() []types.Move {
	m.mu.Lock()
	defer m.mu.Unlock()
	return rules.GetPossibleMoves(m.board, m.current)
}

// CurrentPlayer returns the side to move.
func (m *Manager) CurrentPlayer() types.Cell {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// Board returns a copy of the board.
func (m *Manager) Board() types.Board {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.board
}

// Score returns the disc counts, computed from the board.
func (m *Manager) Score() types.Score {
	m.mu.Lock()
	defer m.mu.Unlock()
	return rules.GetScore(m.board)
}

// SetScores overwrites the display cache.
func (m *Manager) SetScores(dark, light int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.darkScore = dark
	m.lightScore = light
}

// Finish marks the game as over with the given outcome text.
func (m *Manager) Finish(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phase = "finished"
	m.outcome = outcome
	m.refreshScores()
}

// Snapshot returns a copy of the current state for players and renderers.
func (m *Manager) Snapshot() *types.GameState {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := &types.GameState{
		Board:         m.board,
		CurrentPlayer: m.current,
		Score:         types.Score{Dark: m.darkScore, Light: m.lightScore},
		Phase:         m.phase,
		Outcome:       m.outcome,
	}
	if m.lastMove != nil {
		last := *m.lastMove
		s.LastMove = &last
	}
	return s
}

// refreshScores must be called while holding the lock.
func (m *Manager) refreshScores() {
	score := rules.GetScore(m.board)
	m.darkScore = score.Dark
	m.lightScore = score.Light
}

// SetPosition replaces the board and side to move, for starting from a
// prepared position. Any side other than light means dark.
func (m *Manager) SetPosition(b types.Board, current types.Cell) {
	if current != types.Light {
		current = types.Dark
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.board = b
	m.current = current
	m.lastMove = nil
	m.phase = "playing"
	m.outcome = ""
	m.refreshScores()
}
