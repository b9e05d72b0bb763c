package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"othello-local/engine"
	"othello-local/logging"
	"othello-local/notation"
	"othello-local/types"
)

// EndReason says why a game stopped.
type EndReason int

const (
	// NoMoves means the side to move had no legal move. The game ends there;
	// the turn is not passed to the opponent.
	NoMoves EndReason = iota
	Timeout
	ProtocolFailure
	IllegalAgentMove
	Aborted
)

func (r EndReason) String() string {
	switch r {
	case NoMoves:
		return "no-moves"
	case Timeout:
		return "timeout"
	case ProtocolFailure:
		return "protocol-error"
	case IllegalAgentMove:
		return "illegal-move"
	case Aborted:
		return "aborted"
	}
	return "unknown"
}

// Result describes a finished game.
type Result struct {
	GameID    string
	Reason    EndReason
	Score     types.Score
	Winner    types.Cell // Empty for a draw or an aborted game
	Culprit   types.Cell // Side that got stuck, timed out or misbehaved
	DarkName  string
	LightName string
	Outcome   string
	Err       error
}

// String formats the result as a one-line final report.
func (r Result) String() string {
	return fmt.Sprintf("FINAL: %s (dark) %d:%d %s (light)", r.DarkName, r.Score.Dark, r.Score.Light, r.LightName)
}

// Callbacks lets a renderer follow the game. Every field is optional and is
// called from the goroutine running Run.
type Callbacks struct {
	// OnTurn is called before a player is asked for a move.
	OnTurn func(state *types.GameState, player engine.Player)
	// OnMove is called after a move has been applied.
	OnMove func(color types.Cell, m types.Move, state *types.GameState)
	// OnInvalidMove is called when an interactive player's move is rejected.
	OnInvalidMove func(color types.Cell, m types.Move, err error)
	// OnGameEnd is called once, after both players have been terminated.
	OnGameEnd func(res Result, state *types.GameState)
}

// Run alternates turns between dark and light until the game ends and returns
// the result. Both players are terminated exactly once before Run returns,
// whatever ended the game.
func Run(ctx context.Context, m *Manager, dark, light engine.Player, log *zap.SugaredLogger, cb Callbacks) Result {
	if log == nil {
		log = logging.Nop()
	}
	res := Result{
		GameID:    uuid.NewString(),
		DarkName:  dark.Name(),
		LightName: light.Name(),
	}
	log = log.With("game", res.GameID)
	log.Infow("game started", "dark", res.DarkName, "light", res.LightName)

	players := map[types.Cell]engine.Player{types.Dark: dark, types.Light: light}

	for {
		color := m.CurrentPlayer()
		player := players[color]

		if ctx.Err() != nil {
			res.Reason = Aborted
			res.Err = ctx.Err()
			break
		}

		if len(m.PossibleMoves()) == 0 {
			res.Reason = NoMoves
			res.Culprit = color
			break
		}

		state := m.Snapshot()
		if cb.OnTurn != nil {
			cb.OnTurn(state, player)
		}

		move, err := player.GetMove(ctx, state)
		if err != nil {
			res.Culprit = color
			res.Err = err
			switch {
			case ctx.Err() != nil:
				res.Reason = Aborted
				res.Culprit = types.Empty
			case errors.Is(err, engine.ErrAgentTimeout):
				res.Reason = Timeout
			default:
				res.Reason = ProtocolFailure
			}
			log.Warnw("get move failed", "color", color.String(), "err", err)
			break
		}

		if err := m.Play(move.Col, move.Row); err != nil {
			if !engine.IsFatal(err) && engine.CanRetry(player) {
				log.Infow("invalid move", "color", color.String(), "col", move.Col, "row", move.Row, "err", err)
				if cb.OnInvalidMove != nil {
					cb.OnInvalidMove(color, move, err)
				}
				continue
			}
			res.Reason = IllegalAgentMove
			res.Culprit = color
			res.Err = err
			log.Warnw("illegal agent move", "color", color.String(), "col", move.Col, "row", move.Row, "err", err)
			break
		}

		log.Debugw("move", "color", color.String(), "player", player.Name(), "move", notation.FormatMove(move))
		if cb.OnMove != nil {
			cb.OnMove(color, move, m.Snapshot())
		}
	}

	res.Score = m.Score()
	res.Winner = winner(res)
	res.Outcome = outcome(res)
	m.Finish(res.Outcome)

	final := m.Snapshot()
	dark.Terminate(final)
	light.Terminate(final)

	log.Infow("game over", "reason", res.Reason.String(), "dark_score", res.Score.Dark, "light_score", res.Score.Light, "outcome", res.Outcome)
	if cb.OnGameEnd != nil {
		cb.OnGameEnd(res, final)
	}
	return res
}

func winner(res Result) types.Cell {
	switch res.Reason {
	case Aborted:
		return types.Empty
	case NoMoves:
		switch {
		case res.Score.Dark > res.Score.Light:
			return types.Dark
		case res.Score.Light > res.Score.Dark:
			return types.Light
		}
		return types.Empty
	}
	return res.Culprit.Opponent()
}

func outcome(res Result) string {
	names := map[types.Cell]string{types.Dark: res.DarkName, types.Light: res.LightName}
	culprit := fmt.Sprintf("%s (%s)", names[res.Culprit], res.Culprit)

	switch res.Reason {
	case Timeout:
		return fmt.Sprintf("Game over, %s lost (timeout)", culprit)
	case ProtocolFailure:
		return fmt.Sprintf("Game over, %s lost (protocol error)", culprit)
	case IllegalAgentMove:
		return fmt.Sprintf("Game over, %s lost (illegal move)", culprit)
	case Aborted:
		return "Game aborted"
	}
	switch res.Winner {
	case types.Dark:
		return fmt.Sprintf("Game over, %s (dark) wins %d:%d", res.DarkName, res.Score.Dark, res.Score.Light)
	case types.Light:
		return fmt.Sprintf("Game over, %s (light) wins %d:%d", res.LightName, res.Score.Light, res.Score.Dark)
	}
	return fmt.Sprintf("Game over, it's a draw %d:%d", res.Score.Dark, res.Score.Light)
}
