// Package ui provides terminal UI components for othello-local.
package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"othello-local/config"
	"othello-local/engine"
)

var playerKinds = []string{"Human", "Agent"}

// GameSetupUI provides a form for configuring a new game.
type GameSetupUI struct {
	form     *tview.Form
	flex     *tview.Flex
	onStart  func(engine.GameConfig)
	onCancel func()
	onColors func()

	game engine.GameConfig
}

// NewGameSetup creates a new game setup form, prefilled from cfg.
func NewGameSetup(cfg *config.Config, onStart func(engine.GameConfig), onCancel func(), onColors func()) *GameSetupUI {
	setup := &GameSetupUI{
		onStart:  onStart,
		onCancel: onCancel,
		onColors: onColors,
		game:     cfg.GameConfig(),
	}

	limits := make([]string, 10)
	for i := range limits {
		limits[i] = strconv.Itoa(i + 1)
	}

	form := tview.NewForm()

	setup.addSide(form, "Dark", &setup.game.Dark)
	setup.addSide(form, "Light", &setup.game.Light)

	agent := setup.game.Dark.Agent
	limit := agent.SearchLimit - 1
	if limit < 0 || limit >= len(limits) {
		limit = 4
	}
	form.AddDropDown("Search Limit", limits, limit, func(option string, index int) {
		setup.forAgents(func(a *engine.AgentConfig) { a.SearchLimit = index + 1 })
	})

	form.AddInputField("Move Timeout (s)", strconv.Itoa(int(agent.Timeout/time.Second)), 6, tview.InputFieldInteger, func(text string) {
		if val, err := strconv.Atoi(strings.TrimSpace(text)); err == nil && val > 0 {
			setup.forAgents(func(a *engine.AgentConfig) { a.Timeout = time.Duration(val) * time.Second })
		}
	})

	form.AddCheckbox("Minimax", agent.Minimax, func(checked bool) {
		setup.forAgents(func(a *engine.AgentConfig) { a.Minimax = checked })
	})
	form.AddCheckbox("Caching", agent.Caching, func(checked bool) {
		setup.forAgents(func(a *engine.AgentConfig) { a.Caching = checked })
	})
	form.AddCheckbox("Ordering", agent.Ordering, func(checked bool) {
		setup.forAgents(func(a *engine.AgentConfig) { a.Ordering = checked })
	})

	form.AddButton("Start Game", func() {
		onStart(setup.game)
	})

	form.AddButton("Board Color", func() {
		if onColors != nil {
			onColors()
		}
	})

	form.AddButton("Quit", func() {
		onCancel()
	})

	form.SetBorder(true)
	form.SetTitle(" New Game ")
	form.SetTitleAlign(tview.AlignCenter)
	form.SetBorderColor(MenuColors.Border)
	form.SetTitleColor(MenuColors.Title)
	form.SetLabelColor(MenuColors.Label)
	form.SetButtonBackgroundColor(MenuColors.ButtonBG)
	form.SetButtonTextColor(MenuColors.ButtonText)

	helpText := tview.NewTextView().
		SetText("Tab/Shift+Tab: navigate fields  |  Arrow keys: change dropdown  |  Enter: confirm").
		SetTextAlign(tview.AlignCenter)
	helpText.SetTextColor(MenuColors.Hint)

	flex := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(form, 0, 1, true).
		AddItem(helpText, 1, 0, false)

	setup.form = form
	setup.flex = flex
	return setup
}

// addSide adds the player kind and agent path fields for one color.
func (s *GameSetupUI) addSide(form *tview.Form, label string, pc *engine.PlayerConfig) {
	kind := 0
	if pc.Kind == engine.KindAgent {
		kind = 1
	}
	form.AddDropDown(label, playerKinds, kind, func(option string, index int) {
		pc.Kind = engine.KindHuman
		if index == 1 {
			pc.Kind = engine.KindAgent
		}
	})
	form.AddInputField(label+" Agent", pc.Agent.Path, 32, nil, func(text string) {
		pc.Agent.Path = strings.TrimSpace(text)
	})
}

func (s *GameSetupUI) forAgents(f func(*engine.AgentConfig)) {
	f(&s.game.Dark.Agent)
	f(&s.game.Light.Agent)
}

// Config returns the configuration the form currently describes.
func (s *GameSetupUI) Config() engine.GameConfig {
	return s.game
}

// Form returns the flex container with form and help text.
func (s *GameSetupUI) Form() *tview.Flex {
	return s.flex
}

// SetInputCapture sets the input capture function for the form.
func (s *GameSetupUI) SetInputCapture(capture func(event *tcell.EventKey) *tcell.EventKey) {
	s.form.SetInputCapture(capture)
}
