package ui

import (
	"fmt"

	"github.com/rivo/tview"

	"othello-local/game"
	"othello-local/notation"
	"othello-local/rules"
	"othello-local/types"
)

// GameInfoPanel displays scores, names and the last move alongside the board.
type GameInfoPanel struct {
	box       *tview.TextView
	state     *types.GameState
	darkName  string
	lightName string
	result    *game.Result
}

// NewGameInfoPanel creates a new game info panel.
func NewGameInfoPanel() *GameInfoPanel {
	panel := &GameInfoPanel{
		box:       tview.NewTextView(),
		darkName:  "Dark",
		lightName: "Light",
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *GameInfoPanel) Box() *tview.TextView {
	return p.box
}

// SetState updates the panel with the current position.
func (p *GameInfoPanel) SetState(state *types.GameState) {
	p.state = state
	p.refresh()
}

// SetPlayers sets the names shown for each side and clears any previous result.
func (p *GameInfoPanel) SetPlayers(dark, light string) {
	p.darkName = dark
	p.lightName = light
	p.result = nil
	p.refresh()
}

func (p *GameInfoPanel) SetResult(res game.Result) {
	p.result = &res
	p.refresh()
}

func (p *GameInfoPanel) refresh() {
	p.box.SetText(p.text())
}

func (p *GameInfoPanel) text() string {
	if p.state == nil {
		return ""
	}

	// Count discs from the board rather than the cached score, which stays
	// zero until the first move.
	score := rules.GetScore(p.state.Board)
	if p.result != nil {
		score = p.result.Score
	}

	var text string
	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	turn := func(c types.Cell) string {
		if p.result == nil && p.state.CurrentPlayer == c {
			return "[yellow]>[-]"
		}
		return " "
	}
	text += fmt.Sprintf("%s[white]● %-12s[-] %2d\n", turn(types.Dark), p.darkName, score.Dark)
	text += fmt.Sprintf("%s[dimgray]○[-] [white]%-12s[-] %2d\n", turn(types.Light), p.lightName, score.Light)

	last := "-"
	if p.state.LastMove != nil {
		last = notation.FormatMove(*p.state.LastMove)
	}
	text += fmt.Sprintf("\n[white]Last:[-:-:-] %s\n", last)

	if p.result == nil {
		text += fmt.Sprintf("[white]Moves:[-:-:-] %d\n", len(rules.GetPossibleMoves(p.state.Board, p.state.CurrentPlayer)))
		return text
	}

	text += "\n[white::b]Result[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("%s\n", p.result.Outcome)
	text += fmt.Sprintf("[dimgray]%s[-]\n", p.result.Reason)
	return text
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(board *BoardUI, hint *tview.TextView) *tview.Flex {
	gameFrame := tview.NewFlex()
	RebuildNormalLayout(gameFrame, board, hint)
	return gameFrame
}

// CreateCenteredForm creates a centered form container for the setup screen.
func CreateCenteredForm(form *tview.Flex, maxWidth int) *tview.Flex {
	centered := tview.NewFlex().SetDirection(tview.FlexColumn)
	centered.AddItem(nil, 0, 1, false)
	centered.AddItem(form, maxWidth, 0, true)
	centered.AddItem(nil, 0, 1, false)

	return centered
}

// RebuildNormalLayout restores the normal game layout with board, info panel, and hint.
func RebuildNormalLayout(gameFrame *tview.Flex, board *BoardUI, hint *tview.TextView) {
	gameFrame.Clear()

	infoPanel := board.infoPanel
	if infoPanel == nil {
		infoPanel = NewGameInfoPanel()
		board.infoPanel = infoPanel
	}
	if board.State != nil {
		infoPanel.SetState(board.State)
	}

	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(board.Box, 0, 1, true)
	boardRow.AddItem(infoPanel.Box(), 26, 0, false)

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(boardRow, 0, 1, true)
	gameFrame.AddItem(hint, 4, 0, false)
}

// BuildFocusLayout builds the focus mode layout with just the centered board.
func BuildFocusLayout(gameFrame *tview.Flex, board *BoardUI) {
	gameFrame.Clear()

	boardWidth := types.BoardSize*2 + 4
	boardHeight := types.BoardSize + 2

	gameFrame.SetDirection(tview.FlexRow)
	gameFrame.AddItem(nil, 0, 1, false)

	centerRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	centerRow.AddItem(nil, 0, 1, false)
	centerRow.AddItem(board.Box, boardWidth, 0, true)
	centerRow.AddItem(nil, 0, 1, false)

	gameFrame.AddItem(centerRow, boardHeight, 0, true)
	gameFrame.AddItem(nil, 0, 1, false)
}
