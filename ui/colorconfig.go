package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"othello-local/config"
)

// ColorConfigUI provides a color configuration screen with live preview.
type ColorConfigUI struct {
	flex      *tview.Flex
	colorList *tview.List
	preview   *tview.Box
	cfg       *config.Config
	onDone    func()

	// Current selection
	selectedBoardColor int
	selectedAltColor   int
	editingAlt         bool // true = editing the alternate square color
}

// Board colors to choose from (felt greens first)
var boardColors = []struct {
	code int
	name string
}{
	{28, "Felt Green"},
	{22, "Dark Green"},
	{34, "Green"},
	{29, "Sea Green"},
	{23, "Teal"},
	{30, "Dark Cyan"},
	{64, "Olive"},
	{58, "Dark Olive"},
	{94, "Saddle Brown"},
	{136, "Dark Brown"},
	{172, "Brown"},
	{180, "Tan"},
	{24, "Deep Blue"},
	{17, "Navy Blue"},
	{240, "Gray"},
	{236, "Dark Gray"},
}

// NewColorConfig creates a new color configuration screen.
func NewColorConfig(cfg *config.Config, onDone func()) *ColorConfigUI {
	cc := &ColorConfigUI{
		cfg:                cfg,
		onDone:             onDone,
		selectedBoardColor: cfg.Theme.Colors.BoardColor,
		selectedAltColor:   cfg.Theme.Colors.BoardColorAlt,
	}

	cc.colorList = tview.NewList()
	cc.colorList.SetBorder(true)
	cc.colorList.ShowSecondaryText(false)
	cc.populateColorList()

	// Preview on highlight
	cc.colorList.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(boardColors) {
			return
		}
		if cc.editingAlt {
			cc.selectedAltColor = boardColors[index].code
		} else {
			cc.selectedBoardColor = boardColors[index].code
		}
	})

	// Apply on select
	cc.colorList.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		if index < 0 || index >= len(boardColors) {
			return
		}
		if !cc.editingAlt {
			// Pick the alternate square color next.
			cc.cfg.Theme.Colors.BoardColor = cc.selectedBoardColor
			cc.editingAlt = true
			cc.populateColorList()
			return
		}
		cc.cfg.Theme.Colors.BoardColorAlt = cc.selectedAltColor
		cc.cfg.Save()
		cc.editingAlt = false
		cc.populateColorList()
		onDone()
	})

	cc.preview = tview.NewBox()
	cc.preview.SetBorder(true)
	cc.preview.SetTitle(" Board Preview ")
	cc.preview.SetDrawFunc(cc.drawPreview)

	cc.flex = tview.NewFlex().
		AddItem(cc.colorList, 30, 0, true).
		AddItem(cc.preview, 0, 1, false)

	return cc
}

// populateColorList fills the list and selects the color currently being edited.
func (cc *ColorConfigUI) populateColorList() {
	cc.colorList.Clear()

	current := cc.selectedBoardColor
	if cc.editingAlt {
		cc.colorList.SetTitle(" Alternate Squares (Tab: main) ")
		current = cc.selectedAltColor
	} else {
		cc.colorList.SetTitle(" Board Color (Tab: alternate) ")
	}
	for i, c := range boardColors {
		cc.colorList.AddItem(fmt.Sprintf("[#%06x]████[-] %s (%d)",
			tcell.PaletteColor(c.code).Hex(), c.name, c.code),
			"", rune('a'+i), nil)
	}
	for i, c := range boardColors {
		if c.code == current {
			cc.colorList.SetCurrentItem(i)
			break
		}
	}
}

func (cc *ColorConfigUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if width < 20 || height < 10 {
		return x, y, width, height
	}

	darkColor := tcell.PaletteColor(cc.cfg.Theme.Colors.DarkColor)
	lightColor := tcell.PaletteColor(cc.cfg.Theme.Colors.LightColor)
	squares := []tcell.Color{
		tcell.PaletteColor(cc.selectedBoardColor),
		tcell.PaletteColor(cc.selectedAltColor),
	}

	// Opening position on a 6x6 corner of the board.
	discs := map[[2]int]bool{
		{2, 2}: false,
		{3, 3}: false,
		{2, 3}: true,
		{3, 2}: true,
	}

	startX := x + 2
	startY := y + 1
	size := 6

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			style := tcell.StyleDefault.Background(squares[(col+row)%2])
			char := ' '
			if dark, ok := discs[[2]int{col, row}]; ok {
				char = cc.cfg.Theme.Symbols.LightDisc
				style = style.Foreground(lightColor)
				if dark {
					char = cc.cfg.Theme.Symbols.DarkDisc
					style = style.Foreground(darkColor)
				}
			}
			screen.SetContent(startX+col*2, startY+row, char, nil, style)
			screen.SetContent(startX+col*2+1, startY+row, ' ', nil, style)
		}
	}

	info := fmt.Sprintf("Board: %d  Alternate: %d", cc.selectedBoardColor, cc.selectedAltColor)
	for i, ch := range info {
		if startX+i < x+width-1 {
			screen.SetContent(startX+i, startY+size+1, ch, nil, tcell.StyleDefault)
		}
	}

	return x, y, width, height
}

// Flex returns the flex container for this UI.
func (cc *ColorConfigUI) Flex() *tview.Flex {
	return cc.flex
}

// SetInputCapture sets the input capture for the color list.
func (cc *ColorConfigUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	cc.colorList.SetInputCapture(capture)
}

// ToggleMode switches between the main and alternate square colors.
func (cc *ColorConfigUI) ToggleMode() {
	cc.editingAlt = !cc.editingAlt
	cc.populateColorList()
}
