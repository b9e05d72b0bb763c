// Package agent drives an external move-selection process over a line protocol.
package agent

import (
	"fmt"
	"strconv"
	"strings"

	"othello-local/engine"
	"othello-local/notation"
	"othello-local/types"
)

// Wire format, one ASCII line per message:
//
//	core -> agent  "<color>,<limit>,<minimax>,<caching>,<ordering>"  once, at spawn
//	agent -> core  "<name>"                                          once, at spawn
//	core -> agent  "SCORE <dark> <light>" then "<board snapshot>"   per move request
//	agent -> core  "<col> <row>"                                     per move request
//	core -> agent  "FINAL <dark> <light>"                            at game end

// configLine formats the configuration line sent right after spawn.
func configLine(color types.Cell, cfg engine.AgentConfig) string {
	return fmt.Sprintf("%d,%d,%d,%d,%d",
		notation.ColorCode(color), cfg.SearchLimit,
		boolFlag(cfg.Minimax), boolFlag(cfg.Caching), boolFlag(cfg.Ordering))
}

// scoreLine formats the first line of a move request.
func scoreLine(score types.Score) string {
	return fmt.Sprintf("SCORE %d %d", score.Dark, score.Light)
}

// finalLine formats the end-of-game line.
func finalLine(score types.Score) string {
	return fmt.Sprintf("FINAL %d %d", score.Dark, score.Light)
}

// parseMoveLine parses "<col> <row>". Surrounding and repeated whitespace is ignored.
func parseMoveLine(line string) (types.Move, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return types.Move{}, fmt.Errorf("%w: expected \"<col> <row>\", got %q", engine.ErrAgentProtocol, line)
	}
	col, err := strconv.Atoi(fields[0])
	if err != nil {
		return types.Move{}, fmt.Errorf("%w: invalid column %q", engine.ErrAgentProtocol, fields[0])
	}
	row, err := strconv.Atoi(fields[1])
	if err != nil {
		return types.Move{}, fmt.Errorf("%w: invalid row %q", engine.ErrAgentProtocol, fields[1])
	}
	return types.Move{Col: col, Row: row}, nil
}

// ParseConfigLine parses a configuration line on the agent side.
func ParseConfigLine(line string) (types.Cell, engine.AgentConfig, error) {
	cfg := engine.AgentConfig{}
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 5 {
		return types.Empty, cfg, fmt.Errorf("%w: expected 5 config fields, got %q", engine.ErrAgentProtocol, line)
	}
	vals := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return types.Empty, cfg, fmt.Errorf("%w: invalid config field %q", engine.ErrAgentProtocol, p)
		}
		vals[i] = n
	}
	color := types.Cell(vals[0])
	if color != types.Dark && color != types.Light {
		return types.Empty, cfg, fmt.Errorf("%w: invalid color code %d", engine.ErrAgentProtocol, vals[0])
	}
	cfg.SearchLimit = vals[1]
	cfg.Minimax = vals[2] != 0
	cfg.Caching = vals[3] != 0
	cfg.Ordering = vals[4] != 0
	return color, cfg, nil
}

// ParseScoreLine parses a "SCORE <dark> <light>" or "FINAL <dark> <light>"
// line on the agent side and returns the keyword with the score.
func ParseScoreLine(line string) (string, types.Score, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 || (fields[0] != "SCORE" && fields[0] != "FINAL") {
		return "", types.Score{}, fmt.Errorf("%w: expected SCORE or FINAL line, got %q", engine.ErrAgentProtocol, line)
	}
	dark, err := strconv.Atoi(fields[1])
	if err != nil {
		return "", types.Score{}, fmt.Errorf("%w: invalid dark count %q", engine.ErrAgentProtocol, fields[1])
	}
	light, err := strconv.Atoi(fields[2])
	if err != nil {
		return "", types.Score{}, fmt.Errorf("%w: invalid light count %q", engine.ErrAgentProtocol, fields[2])
	}
	return fields[0], types.Score{Dark: dark, Light: light}, nil
}

// FormatMoveLine formats a move response on the agent side.
func FormatMoveLine(m types.Move) string {
	return fmt.Sprintf("%d %d", m.Col, m.Row)
}

func boolFlag(b bool) int {
	if b {
		return 1
	}
	return 0
}
