// othello-local is a terminal application to play Othello against external agent programs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"othello-local/config"
	"othello-local/engine"
	"othello-local/engine/agent"
	"othello-local/game"
	"othello-local/logging"
	"othello-local/notation"
	"othello-local/types"
	"othello-local/ui"
)

// Version is set at build time via ldflags
var Version = "dev"

// Command-line flags
var (
	flagDark        = flag.String("dark", "", `Agent program for dark, or "human"`)
	flagLight       = flag.String("light", "", `Agent program for light, or "human"`)
	flagInterpreter = flag.String("interpreter", "", "Interpreter used to run agent programs, e.g. python3")
	flagLimit       = flag.Int("limit", 0, "Search limit sent to agents")
	flagTimeout     = flag.Duration("timeout", 0, "Per-move deadline for agents, e.g. 30s")
	flagMinimax     = flag.Bool("minimax", false, "Ask agents to use plain minimax")
	flagCaching     = flag.Bool("caching", false, "Ask agents to cache states")
	flagOrdering    = flag.Bool("ordering", true, "Ask agents to order nodes")
	flagPosition    = flag.String("position", "", "Start from this board instead of the opening (rows of 0/1/2, dark to move)")
	flagQuickStart  = flag.Bool("play", false, "Start game immediately with the configured players")
	flagHeadless    = flag.Bool("headless", false, "Play agent against agent without the terminal UI and print the result")
	flagFocus       = flag.Bool("focus", false, "Start in focus mode (fullscreen board)")
	flagDebug       = flag.Bool("debug", false, "Log at debug level")
	flagVersion     = flag.Bool("version", false, "Print version and exit")
)

var app *tview.Application
var rootPage *tview.Pages
var gameBoard *ui.BoardUI
var gameFrame *tview.Flex
var gameHint *tview.TextView
var cfg *config.Config
var log *zap.SugaredLogger

// Only touched from the tview event goroutine, or before the app runs.
var (
	cancelGame context.CancelFunc
	generation int
	games      sync.WaitGroup
)

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("othello-local %s\n", Version)
		return
	}

	var err error
	cfg, err = config.InitConfig()
	if err == nil {
		err = applyFlags(cfg)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logPath, err := cfg.LogPath()
	if err == nil {
		log, err = logging.New(logPath, cfg.Log.Debug)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open log: %s\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *flagHeadless {
		code := runHeadless()
		log.Sync()
		os.Exit(code)
	}

	runUI()
}

// applyFlags overrides config values with the flags given on the command line.
func applyFlags(c *config.Config) error {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "dark":
			c.Agent.DarkPath = *flagDark
		case "light":
			c.Agent.LightPath = *flagLight
		case "interpreter":
			c.Agent.Interpreter = *flagInterpreter
		case "limit":
			c.Agent.SearchLimit = *flagLimit
		case "timeout":
			c.Agent.TimeoutSeconds = int((*flagTimeout + time.Second - 1) / time.Second)
		case "minimax":
			c.Agent.Minimax = *flagMinimax
		case "caching":
			c.Agent.Caching = *flagCaching
		case "ordering":
			c.Agent.Ordering = *flagOrdering
		case "debug":
			c.Log.Debug = *flagDebug
		}
	})
	return c.Validate()
}

// newManager returns a manager at the opening, or at the -position board.
func newManager() (*game.Manager, error) {
	m := game.NewManager()
	if *flagPosition == "" {
		return m, nil
	}
	b, err := notation.DecodeBoard(*flagPosition)
	if err != nil {
		return nil, fmt.Errorf("invalid -position: %w", err)
	}
	m.SetPosition(b, types.Dark)
	return m, nil
}

func newPlayer(color types.Cell, pc engine.PlayerConfig) (engine.Player, error) {
	if pc.Kind != engine.KindAgent {
		return engine.NewHuman(pc.Name), nil
	}
	a, err := agent.Spawn(color, pc.Agent, log)
	if err != nil {
		return nil, fmt.Errorf("%s agent %s: %w", color, pc.Agent.Path, err)
	}
	return a, nil
}

// newPlayers starts both sides. If light fails to start, dark is released.
func newPlayers(gameCfg engine.GameConfig) (engine.Player, engine.Player, error) {
	dark, err := newPlayer(types.Dark, gameCfg.For(types.Dark))
	if err != nil {
		return nil, nil, err
	}
	light, err := newPlayer(types.Light, gameCfg.For(types.Light))
	if err != nil {
		dark.Terminate(nil)
		return nil, nil, err
	}
	return dark, light, nil
}

// runHeadless plays one agent-vs-agent game on stdout and returns the exit code.
func runHeadless() int {
	gameCfg := cfg.GameConfig()
	if gameCfg.Dark.Kind != engine.KindAgent || gameCfg.Light.Kind != engine.KindAgent {
		fmt.Fprintln(os.Stderr, "Headless games need an agent on both sides (-dark and -light)")
		return 2
	}
	m, err := newManager()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dark, light, err := newPlayers(gameCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start game: %s\n", err)
		return 1
	}

	res := game.Run(ctx, m, dark, light, log, game.Callbacks{
		OnMove: func(color types.Cell, mv types.Move, _ *types.GameState) {
			fmt.Printf("%s %s\n", color, notation.FormatMove(mv))
		},
	})
	fmt.Println(res.Outcome)
	fmt.Println(res.String())
	if res.Reason == game.Aborted {
		return 130
	}
	return 0
}

func runUI() {
	app = tview.NewApplication()
	rootPage = tview.NewPages()
	rootPage.SetBorder(true).SetTitle(" ◐ othello ")

	gameHint = tview.NewTextView()
	gameHint.SetBorder(true)
	gameHint.SetBorderPadding(0, 0, 1, 1)
	gameHint.SetTitle(" Status ")
	gameHint.SetTitleAlign(tview.AlignLeft)
	gameBoard = ui.NewBoard(cfg, gameHint)

	gameFrame = ui.CreateGameLayout(gameBoard, gameHint)

	gameBoard.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'q' {
			if gameBoard.SelectedTile() != nil {
				gameBoard.ResetSelection()
			} else {
				stopGame()
				rootPage.SwitchToPage("setup")
			}
			return nil
		}
		switch event.Key() {
		case tcell.KeyUp:
			gameBoard.MoveSelection(0, -1)
		case tcell.KeyDown:
			gameBoard.MoveSelection(0, 1)
		case tcell.KeyLeft:
			gameBoard.MoveSelection(-1, 0)
		case tcell.KeyRight:
			gameBoard.MoveSelection(1, 0)
		case tcell.KeyEnter:
			selTile := gameBoard.SelectedTile()
			if selTile == nil {
				return nil
			}
			gameBoard.PlayMove(selTile.Col, selTile.Row)
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				gameBoard.MoveSelection(-1, 0)
			case 'j':
				gameBoard.MoveSelection(0, 1)
			case 'k':
				gameBoard.MoveSelection(0, -1)
			case 'l':
				gameBoard.MoveSelection(1, 0)
			case 'f':
				if gameBoard.ToggleFocusMode() {
					ui.BuildFocusLayout(gameFrame, gameBoard)
				} else {
					ui.RebuildNormalLayout(gameFrame, gameBoard, gameHint)
				}
			}
		}
		return event
	})

	setupUI := ui.NewGameSetup(cfg,
		func(gameCfg engine.GameConfig) {
			startGame(gameCfg)
		},
		func() {
			app.Stop()
		},
		func() {
			rootPage.SwitchToPage("colors")
		},
	)

	colorConfig := ui.NewColorConfig(cfg, func() {
		gameBoard.SetConfig(cfg)
		rootPage.SwitchToPage("setup")
	})
	colorConfig.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEsc || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
			rootPage.SwitchToPage("setup")
			return nil
		}
		if event.Key() == tcell.KeyTab {
			colorConfig.ToggleMode()
			return nil
		}
		return event
	})

	quickStart := *flagQuickStart || *flagFocus
	rootPage.AddPage("setup", ui.CreateCenteredForm(setupUI.Form(), 64), true, !quickStart)
	rootPage.AddPage("gameview", gameFrame, true, quickStart)
	rootPage.AddPage("colors", colorConfig.Flex(), true, false)

	if quickStart {
		startGame(setupUI.Config())
		if *flagFocus {
			gameBoard.SetFocusMode(true)
			ui.BuildFocusLayout(gameFrame, gameBoard)
		}
	}

	if err := app.SetRoot(rootPage, true).Run(); err != nil {
		panic(err)
	}

	// Make sure no agent process outlives the application.
	stopGame()
	games.Wait()
}

// stopGame aborts the running game, if any. Its players are terminated by game.Run.
func stopGame() {
	if cancelGame != nil {
		cancelGame()
		cancelGame = nil
	}
}

// startGame starts a game with the given configuration. Agents are spawned and
// the game is played on a separate goroutine; every UI change is queued back
// onto the event goroutine.
func startGame(gameCfg engine.GameConfig) {
	stopGame()

	m, err := newManager()
	if err != nil {
		showError(err)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancelGame = cancel
	generation++
	gen := generation

	// update drops UI changes from games that have since been replaced.
	update := func(f func()) {
		app.QueueUpdateDraw(func() {
			if gen == generation {
				f()
			}
		})
	}

	gameBoard.Reset(m.Snapshot())
	gameBoard.SetMessage("Starting players...")
	rootPage.SwitchToPage("gameview")

	games.Add(1)
	go func() {
		defer games.Done()
		dark, light, err := newPlayers(gameCfg)
		if err != nil {
			log.Errorw("failed to start game", "err", err)
			update(func() {
				rootPage.SwitchToPage("setup")
				showError(err)
			})
			return
		}
		update(func() {
			gameBoard.SetPlayers(dark, light)
			gameBoard.SetState(m.Snapshot())
		})

		game.Run(ctx, m, dark, light, log, game.Callbacks{
			OnTurn: func(state *types.GameState, p engine.Player) {
				thinking := !engine.CanRetry(p)
				update(func() {
					gameBoard.SetState(state)
					gameBoard.SetThinking(thinking)
				})
			},
			OnMove: func(_ types.Cell, _ types.Move, state *types.GameState) {
				update(func() { gameBoard.SetState(state) })
			},
			OnInvalidMove: func(_ types.Cell, mv types.Move, err error) {
				msg := fmt.Sprintf("%s is not a legal move", notation.FormatMove(mv))
				if !errors.Is(err, engine.ErrInvalidMove) {
					msg = err.Error()
				}
				update(func() { gameBoard.SetMessage(msg) })
			},
			OnGameEnd: func(res game.Result, state *types.GameState) {
				update(func() { gameBoard.Finish(res, state) })
			},
		})
	}()
}

func showError(err error) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("Failed to start game:\n%s", err.Error())).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			rootPage.RemovePage("error")
		})
	rootPage.AddPage("error", modal, true, true)
}
