package ui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rivo/tview"

	"othello-local/config"
	"othello-local/engine"
	"othello-local/game"
	"othello-local/rules"
	"othello-local/types"
)

// stubPlayer stands in for an agent.
type stubPlayer struct{}

func (stubPlayer) Name() string { return "Bot" }

func (stubPlayer) GetMove(context.Context, *types.GameState) (types.Move, error) {
	return types.Move{}, nil
}

func (stubPlayer) Terminate(*types.GameState) {}

func newTestBoard() (*BoardUI, *tview.TextView) {
	cfg := config.DefaultConfig
	hint := tview.NewTextView()
	board := NewBoard(&cfg, hint)
	board.infoPanel = NewGameInfoPanel()
	return board, hint
}

func openingState() *types.GameState {
	return &types.GameState{Board: rules.InitialBoard(), CurrentPlayer: types.Dark}
}

func TestBoardLegalHints(t *testing.T) {
	board, _ := newTestBoard()
	board.SetState(openingState())
	n := 0
	for row := range board.legal {
		for col := range board.legal[row] {
			if board.legal[row][col] {
				n++
			}
		}
	}
	if n != 4 || !board.legal[2][3] {
		t.Fatalf("hints = %v", board.legal)
	}
}

func TestBoardMoveSelection(t *testing.T) {
	board, _ := newTestBoard()
	board.SetState(openingState())
	board.MoveSelection(1, 0)
	if sel := board.SelectedTile(); sel == nil || *sel != (types.Move{Col: 3, Row: 3}) {
		t.Fatalf("first selection = %v, want board center", sel)
	}
	for i := 0; i < 10; i++ {
		board.MoveSelection(1, 0)
	}
	if sel := board.SelectedTile(); sel.Col != types.BoardSize-1 {
		t.Fatalf("selection left the board: %v", sel)
	}
}

func TestBoardPlayMoveSubmitsToHuman(t *testing.T) {
	board, hint := newTestBoard()
	dark := engine.NewHuman("Ann")
	board.SetPlayers(dark, engine.NewHuman("Bob"))
	board.SetState(openingState())
	if !strings.Contains(hint.GetText(true), "Ann to move (dark)") {
		t.Fatalf("hint = %q", hint.GetText(true))
	}

	got := make(chan types.Move, 1)
	go func() {
		m, _ := dark.GetMove(context.Background(), nil)
		got <- m
	}()

	deadline := time.After(5 * time.Second)
	for {
		board.PlayMove(3, 2)
		if board.message == "" {
			break
		}
		select {
		case <-deadline:
			t.Fatal("move never reached the player")
		case <-time.After(10 * time.Millisecond):
		}
	}
	if m := <-got; m != (types.Move{Col: 3, Row: 2}) {
		t.Fatalf("player got %+v", m)
	}
}

func TestBoardPlayMoveNotYourTurn(t *testing.T) {
	board, hint := newTestBoard()
	board.SetPlayers(engine.NewHuman("Ann"), stubPlayer{})
	state := openingState()
	state.CurrentPlayer = types.Light
	board.SetState(state)
	board.SetThinking(true)
	if !strings.Contains(hint.GetText(true), "Bot (light) is thinking") {
		t.Fatalf("hint = %q", hint.GetText(true))
	}
	board.PlayMove(2, 3)
	if board.message != "Not your turn" {
		t.Fatalf("message = %q", board.message)
	}
}

func TestBoardFinish(t *testing.T) {
	board, hint := newTestBoard()
	board.SetPlayers(engine.NewHuman("Ann"), engine.NewHuman("Bob"))
	state := openingState()
	state.Phase = "finished"
	res := game.Result{Outcome: "Game over, it's a draw 2:2", Score: types.Score{Dark: 2, Light: 2}}
	board.Finish(res, state)

	if !board.IsFinished() || !strings.Contains(hint.GetText(true), res.Outcome) {
		t.Fatalf("hint = %q", hint.GetText(true))
	}
	if !strings.Contains(board.infoPanel.text(), res.Outcome) {
		t.Fatal("info panel does not show the outcome")
	}
	board.PlayMove(3, 2)
	if board.message != "" {
		t.Fatal("moves after the end should be ignored")
	}

	board.Reset(openingState())
	if board.IsFinished() || board.players[types.Dark] != nil {
		t.Fatal("Reset kept the previous game")
	}
}
