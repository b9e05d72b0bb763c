// Package ui specifies custom controls for tview to assist in playing Othello in the terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"othello-local/config"
	"othello-local/engine"
	"othello-local/game"
	"othello-local/notation"
	"othello-local/rules"
	"othello-local/types"
)

// Style slots, indexed into BoardUI.styles.
const (
	styleBoard = iota
	styleBoardAlt
	styleDark
	styleLight
	styleHint
	styleCursorFG
	styleCursorBG
	styleLastPlayed
)

// BoardUI draws an Othello board and turns cursor input into moves for
// human players. All methods must be called from the tview event goroutine.
type BoardUI struct {
	Box       *tview.Box
	State     *types.GameState
	hint      *tview.TextView
	cfg       *config.Config
	selX      int
	selY      int
	styles    []tcell.Color
	infoPanel *GameInfoPanel
	focusMode bool

	players  [3]engine.Player // indexed by types.Cell
	legal    [types.BoardSize][types.BoardSize]bool
	thinking bool
	message  string
	result   *game.Result
}

// ToggleFocusMode toggles focus mode and returns the new state.
func (g *BoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

// SetFocusMode sets focus mode to the given state.
func (g *BoardUI) SetFocusMode(enabled bool) {
	g.focusMode = enabled
	g.refreshHint()
}

func (g *BoardUI) IsFocusMode() bool {
	return g.focusMode
}

func (g *BoardUI) SelectedTile() *types.Move {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &types.Move{Col: g.selX, Row: g.selY}
}

func (g *BoardUI) MoveSelection(h, v int) {
	if g.IsFinished() {
		g.ResetSelection()
		return
	}
	if g.SelectedTile() == nil {
		if g.State.LastMove != nil {
			g.selX, g.selY = g.State.LastMove.Col, g.State.LastMove.Row
		} else {
			g.selX, g.selY = types.BoardSize/2-1, types.BoardSize/2-1
		}
		return
	}
	if !types.InBounds(g.selX+h, g.selY+v) {
		return
	}
	g.selX += h
	g.selY += v
}

func (g *BoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

func NewBoard(c *config.Config, hint *tview.TextView) *BoardUI {
	board := &BoardUI{
		Box:   tview.NewBox(),
		State: &types.GameState{Board: rules.InitialBoard(), CurrentPlayer: types.Dark},
		hint:  hint,
		selX:  -1,
		selY:  -1,
	}
	board.SetConfig(c)
	board.Box.SetDrawFunc(board.draw)
	return board
}

func (g *BoardUI) draw(screen tcell.Screen, x int, y int, width int, height int) (int, int, int, int) {
	if g.State == nil {
		return x, y, 1, 1
	}
	theme := g.cfg.Theme
	showHints := theme.ShowHints && g.humanToMove() != nil
	for row := 0; row < types.BoardSize; row++ {
		for col := 0; col < types.BoardSize; col++ {
			bg := styleBoard
			if (col+row)%2 == 1 {
				bg = styleBoardAlt
			}
			fg := styleBoard
			drawRune := theme.Symbols.BoardSquare

			switch g.State.Board[row][col] {
			case types.Dark:
				drawRune, fg = theme.Symbols.DarkDisc, styleDark
			case types.Light:
				drawRune, fg = theme.Symbols.LightDisc, styleLight
			default:
				if showHints && g.legal[row][col] {
					drawRune, fg = theme.Symbols.Hint, styleHint
				}
			}

			last := g.State.LastMove
			if col == g.selX && row == g.selY {
				if theme.DrawCursorBackground {
					bg = styleCursorBG
				} else if g.State.Board[row][col] == types.Empty {
					drawRune, fg = theme.Symbols.Cursor, styleCursorFG
				}
			} else if last != nil && col == last.Col && row == last.Row && theme.DrawLastPlayedBackground {
				bg = styleLastPlayed
			}

			style := tcell.StyleDefault.Background(g.styles[bg]).Foreground(g.styles[fg])
			drawCell(screen, style, drawRune, col, row, x+4, y)
		}
	}
	drawCoordinates(screen, x, y, g)
	return x, y, types.BoardSize*2 + 4, types.BoardSize + 2
}

// Reset clears the previous game and shows state.
func (g *BoardUI) Reset(state *types.GameState) {
	g.players = [3]engine.Player{}
	g.result = nil
	g.thinking = false
	g.message = ""
	g.ResetSelection()
	if g.infoPanel != nil {
		g.infoPanel.SetPlayers("Dark", "Light")
	}
	g.SetState(state)
}

// SetPlayers records who plays each side so cursor input can reach human players.
func (g *BoardUI) SetPlayers(dark, light engine.Player) {
	g.players[types.Dark] = dark
	g.players[types.Light] = light
	g.result = nil
	g.message = ""
	g.thinking = false
	if g.infoPanel != nil {
		g.infoPanel.SetPlayers(dark.Name(), light.Name())
	}
	g.refreshHint()
}

// SetState replaces the displayed position.
func (g *BoardUI) SetState(state *types.GameState) {
	g.State = state
	g.legal = [types.BoardSize][types.BoardSize]bool{}
	if !state.Finished() {
		for _, m := range rules.GetPossibleMoves(state.Board, state.CurrentPlayer) {
			g.legal[m.Row][m.Col] = true
		}
	}
	g.refreshHint()
}

// SetThinking marks whether the side to move is an agent computing its move.
func (g *BoardUI) SetThinking(thinking bool) {
	g.thinking = thinking
	g.refreshHint()
}

// SetMessage shows a transient message, such as a rejected move, in the status bar.
func (g *BoardUI) SetMessage(msg string) {
	g.message = msg
	g.refreshHint()
}

// Finish shows the result of the game.
func (g *BoardUI) Finish(res game.Result, state *types.GameState) {
	g.result = &res
	g.thinking = false
	g.message = ""
	g.ResetSelection()
	g.SetState(state)
	if g.infoPanel != nil {
		g.infoPanel.SetResult(res)
	}
}

// PlayMove hands the cell to the human player whose turn it is.
func (g *BoardUI) PlayMove(col, row int) {
	if g.IsFinished() {
		return
	}
	h := g.humanToMove()
	if h == nil {
		g.SetMessage("Not your turn")
		return
	}
	g.message = ""
	if !h.Submit(col, row) {
		g.SetMessage("Move ignored, the game is not waiting for one")
	}
}

func (g *BoardUI) humanToMove() *engine.Human {
	if g.State == nil || g.State.Finished() {
		return nil
	}
	h, _ := g.players[g.State.CurrentPlayer].(*engine.Human)
	return h
}

func (g *BoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // styleBoard
		tcell.PaletteColor(c.Theme.Colors.BoardColorAlt),     // styleBoardAlt
		tcell.PaletteColor(c.Theme.Colors.DarkColor),         // styleDark
		tcell.PaletteColor(c.Theme.Colors.LightColor),        // styleLight
		tcell.PaletteColor(c.Theme.Colors.HintColor),         // styleHint
		tcell.PaletteColor(c.Theme.Colors.CursorColorFG),     // styleCursorFG
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),     // styleCursorBG
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG), // styleLastPlayed
	}
	g.cfg = c
}

func (g *BoardUI) refreshHint() {
	if g.infoPanel != nil {
		g.infoPanel.SetState(g.State)
	}

	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	var statusLine, turnLine, controlsLine string

	if g.result != nil {
		turnLine = fmt.Sprintf("  %s\n", g.result.Outcome)
		controlsLine = "  q · return to menu"
	} else {
		if g.message != "" {
			statusLine = fmt.Sprintf("  ! %s   ", g.message)
		}
		color := g.State.CurrentPlayer
		name := ""
		if p := g.players[color]; p != nil {
			name = p.Name()
		}
		switch {
		case g.humanToMove() != nil:
			turnLine = fmt.Sprintf("  ● %s to move (%s)\n", name, color)
		case g.thinking:
			turnLine = fmt.Sprintf("  ◌ %s (%s) is thinking...\n", name, color)
		default:
			turnLine = "\n"
		}
		controlsLine = "  hjkl/↑↓←→ move   ⏎ play   f focus   q quit"
	}

	g.hint.SetText(statusLine + turnLine + controlsLine)
}

// IsFinished returns true if the game is over.
func (g *BoardUI) IsFinished() bool {
	return g.result != nil
}

// drawCell draws a board cell (2 characters wide)
func drawCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, ' ', nil, c)
}

// drawCoordinates labels columns a-h below the board and rows 1-8 to its left.
func drawCoordinates(s tcell.Screen, x, y int, ui *BoardUI) {
	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[styleCursorBG])
	lpHighlight := tcell.StyleDefault.Background(ui.styles[styleLastPlayed])
	last := ui.State.LastMove

	for col := 0; col < types.BoardSize; col++ {
		_style := style
		if col == ui.selX {
			_style = highlight
		} else if last != nil && col == last.Col {
			_style = lpHighlight
		}
		label := notation.FormatMove(types.Move{Col: col, Row: 0})
		s.SetContent(x+4+(col*2), y+types.BoardSize+1, rune(label[0]), nil, _style)
		s.SetContent(x+4+(col*2)+1, y+types.BoardSize+1, ' ', nil, _style)
	}

	for row := 0; row < types.BoardSize; row++ {
		_style := style
		if row == ui.selY {
			_style = highlight
		} else if last != nil && row == last.Row {
			_style = lpHighlight
		}
		s.SetContent(x+2, y+row, rune('1'+row), nil, _style)
	}
}
