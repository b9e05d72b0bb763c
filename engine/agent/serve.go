package agent

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"othello-local/engine"
	"othello-local/notation"
	"othello-local/rules"
	"othello-local/types"
)

// Chooser picks a move for color on the given board.
type Chooser func(b types.Board, color types.Cell, cfg engine.AgentConfig) types.Move

// Greedy picks the legal move that flips the most discs, preferring the
// first in row-major order on ties. It returns (-1, -1) when color has no move.
func Greedy(b types.Board, color types.Cell, _ engine.AgentConfig) types.Move {
	best, bestFlips := types.Move{Col: -1, Row: -1}, 0
	for _, m := range rules.GetPossibleMoves(b, color) {
		if n := rules.Flips(b, color, m.Col, m.Row); n > bestFlips {
			best, bestFlips = m, n
		}
	}
	return best
}

// Serve runs the agent side of the protocol: it reads the configuration line,
// introduces itself as name, then answers move requests with choose until it
// receives a FINAL line or its input closes.
func Serve(r io.Reader, w io.Writer, name string, choose Chooser) error {
	in := bufio.NewReader(r)
	out := bufio.NewWriter(w)

	line, err := readLine(in)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	color, cfg, err := ParseConfigLine(line)
	if err != nil {
		return err
	}
	if err := writeLine(out, name); err != nil {
		return err
	}

	for {
		line, err := readLine(in)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		kind, _, err := ParseScoreLine(line)
		if err != nil {
			return err
		}
		if kind == "FINAL" {
			return nil
		}

		line, err = readLine(in)
		if err != nil {
			return fmt.Errorf("read board: %w", err)
		}
		board, err := notation.DecodeBoard(line)
		if err != nil {
			return fmt.Errorf("%w: %v", engine.ErrAgentProtocol, err)
		}
		if err := writeLine(out, FormatMoveLine(choose(board, color, cfg))); err != nil {
			return err
		}
	}
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func writeLine(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line + "\n"); err != nil {
		return err
	}
	return w.Flush()
}
