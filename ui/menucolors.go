package ui

import "github.com/gdamore/tcell/v2"

// MenuColors is the palette of the setup form.
var MenuColors = struct {
	Border     tcell.Color
	Title      tcell.Color
	Label      tcell.Color
	Hint       tcell.Color
	ButtonBG   tcell.Color
	ButtonText tcell.Color
}{
	Border:     tcell.PaletteColor(65),  // Sage
	Title:      tcell.PaletteColor(255), // Bright white
	Label:      tcell.PaletteColor(250), // Light gray
	Hint:       tcell.PaletteColor(245), // Dim gray
	ButtonBG:   tcell.PaletteColor(28),  // Board green
	ButtonText: tcell.PaletteColor(255),
}
