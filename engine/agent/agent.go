package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zapio"

	"othello-local/engine"
	"othello-local/logging"
	"othello-local/notation"
	"othello-local/rules"
	"othello-local/types"
)

// State is the lifecycle state of an agent.
type State int

const (
	Created State = iota
	Ready
	AwaitingMove
	MoveReceived
	TimedOut
	ProtocolError
	Terminated
)

func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Ready:
		return "ready"
	case AwaitingMove:
		return "awaiting-move"
	case MoveReceived:
		return "move-received"
	case TimedOut:
		return "timed-out"
	case ProtocolError:
		return "protocol-error"
	case Terminated:
		return "terminated"
	}
	return "unknown"
}

type lineResult struct {
	line string
	err  error
}

// stopper is the part of *time.Timer the deadline needs.
type stopper interface {
	Stop() bool
}

func realAfterFunc(d time.Duration, f func()) stopper {
	return time.AfterFunc(d, f)
}

// Agent implements engine.Player by exchanging lines with an external process.
// An Agent owns its process and pipes exclusively; at most one GetMove call
// may be outstanding at a time.
type Agent struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	writer *bufio.Writer

	color   types.Cell
	cfg     engine.AgentConfig
	name    string
	timeout time.Duration
	log     *zap.SugaredLogger

	lines chan lineResult // filled by readLines
	done  chan struct{}   // closed once the process is killed

	afterFunc func(time.Duration, func()) stopper

	mu       sync.Mutex
	state    State
	killOnce sync.Once
	kills    atomic.Int32
}

// Spawn starts the agent process, sends the configuration line and waits for
// the agent to introduce itself. The name read is bounded by the same deadline
// as a move. Any failure is reported as engine.ErrSpawn.
func Spawn(color types.Cell, cfg engine.AgentConfig, log *zap.SugaredLogger) (*Agent, error) {
	a := newAgent(color, cfg, log)
	if err := a.start(); err != nil {
		return nil, err
	}
	return a, nil
}

func newAgent(color types.Cell, cfg engine.AgentConfig, log *zap.SugaredLogger) *Agent {
	if log == nil {
		log = logging.Nop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = engine.DefaultTimeout
	}
	return &Agent{
		color:     color,
		cfg:       cfg,
		timeout:   timeout,
		log:       log.With("color", color.String(), "path", cfg.Path),
		lines:     make(chan lineResult),
		done:      make(chan struct{}),
		afterFunc: realAfterFunc,
		state:     Created,
	}
}

func (a *Agent) start() error {
	var args []string
	prog := a.cfg.Path
	if a.cfg.Interpreter != "" {
		prog = a.cfg.Interpreter
		args = append(args, a.cfg.Path)
	}
	args = append(args, a.cfg.Args...)
	a.cmd = exec.Command(prog, args...)

	var err error
	a.stdin, err = a.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("%w: failed to get stdin pipe: %v", engine.ErrSpawn, err)
	}
	stdout, err := a.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: failed to get stdout pipe: %v", engine.ErrSpawn, err)
	}
	a.writer = bufio.NewWriter(a.stdin)

	// Agent diagnostics go to the log instead of the terminal.
	a.cmd.Stderr = &zapio.Writer{Log: a.log.Desugar(), Level: zapcore.DebugLevel}

	if err := a.cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", engine.ErrSpawn, err)
	}
	go a.readLines(bufio.NewReader(stdout))

	if err := a.sendLine(configLine(a.color, a.cfg)); err != nil {
		a.kill()
		return fmt.Errorf("%w: failed to send config: %v", engine.ErrSpawn, err)
	}

	timer := time.NewTimer(a.timeout)
	defer timer.Stop()
	select {
	case res, ok := <-a.lines:
		if !ok || res.err != nil {
			a.kill()
			return fmt.Errorf("%w: agent closed output before sending a name", engine.ErrSpawn)
		}
		a.name = strings.TrimSpace(res.line)
	case <-timer.C:
		a.kill()
		return fmt.Errorf("%w: no name within %s", engine.ErrSpawn, a.timeout)
	}
	if a.name == "" {
		a.name = fmt.Sprintf("Agent (%s)", a.color)
	}

	a.setState(Ready)
	a.log.Infow("agent ready", "agent", a.name, "pid", a.cmd.Process.Pid)
	return nil
}

// readLines forwards every output line until the pipe closes or the agent is killed.
func (a *Agent) readLines(r *bufio.Reader) {
	defer close(a.lines)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if line == "" || !errors.Is(err, io.EOF) {
				select {
				case a.lines <- lineResult{err: err}:
				case <-a.done:
				}
				return
			}
			// Last line without a trailing newline.
		}
		select {
		case a.lines <- lineResult{line: strings.TrimRight(line, "\r\n")}:
		case <-a.done:
			return
		}
	}
}

// sendLine writes one newline-terminated line and flushes it.
func (a *Agent) sendLine(line string) error {
	a.log.Debugw("send", "line", line)
	if _, err := a.writer.WriteString(line + "\n"); err != nil {
		return err
	}
	return a.writer.Flush()
}

// Name returns the name the agent reported at spawn.
func (a *Agent) Name() string {
	return a.name
}

// Color returns the color the agent plays.
func (a *Agent) Color() types.Cell {
	return a.color
}

// State returns the current lifecycle state.
func (a *Agent) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Agent) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// GetMove sends the score and board to the agent and waits for its reply.
//
// The deadline timer is armed only after both request lines are flushed and is
// stopped before GetMove returns on every path. If the deadline expires the
// process is killed and the call fails with engine.ErrAgentTimeout. The
// response and the deadline race for a single resolution: once the kill has
// been initiated, a line arriving afterwards is discarded and the timeout
// stands.
func (a *Agent) GetMove(ctx context.Context, state *types.GameState) (types.Move, error) {
	a.mu.Lock()
	switch a.state {
	case Ready, MoveReceived:
		a.state = AwaitingMove
	case TimedOut:
		a.mu.Unlock()
		return types.Move{}, fmt.Errorf("%s: %w", a.name, engine.ErrAgentTimeout)
	case AwaitingMove:
		a.mu.Unlock()
		return types.Move{}, fmt.Errorf("%s: %w: request already outstanding", a.name, engine.ErrAgentProtocol)
	default:
		s := a.state
		a.mu.Unlock()
		return types.Move{}, fmt.Errorf("%s: %w: agent is %s", a.name, engine.ErrAgentProtocol, s)
	}
	a.mu.Unlock()

	score := rules.GetScore(state.Board)
	if err := a.sendLine(scoreLine(score)); err != nil {
		return a.fail(fmt.Errorf("%s: %w: write score: %v", a.name, engine.ErrAgentProtocol, err))
	}
	if err := a.sendLine(notation.EncodeBoard(state.Board)); err != nil {
		return a.fail(fmt.Errorf("%s: %w: write board: %v", a.name, engine.ErrAgentProtocol, err))
	}

	var resolve sync.Once
	expired := make(chan struct{})
	timer := a.afterFunc(a.timeout, func() {
		resolve.Do(func() {
			a.log.Warnw("agent timed out", "agent", a.name, "timeout", a.timeout)
			a.setState(TimedOut)
			a.kill()
			close(expired)
		})
	})
	defer timer.Stop()

	select {
	case res, ok := <-a.lines:
		won := false
		resolve.Do(func() { won = true })
		timer.Stop()
		if !won {
			a.log.Debugw("discarding late response", "agent", a.name, "line", res.line)
			return types.Move{}, fmt.Errorf("%s: %w after %s", a.name, engine.ErrAgentTimeout, a.timeout)
		}
		if !ok || res.err != nil {
			return a.fail(fmt.Errorf("%s: %w: output closed", a.name, engine.ErrAgentProtocol))
		}
		move, err := parseMoveLine(res.line)
		if err != nil {
			return a.fail(fmt.Errorf("%s: %w", a.name, err))
		}
		a.setState(MoveReceived)
		a.log.Debugw("move received", "agent", a.name, "col", move.Col, "row", move.Row)
		return move, nil

	case <-expired:
		return types.Move{}, fmt.Errorf("%s: %w after %s", a.name, engine.ErrAgentTimeout, a.timeout)

	case <-ctx.Done():
		won := false
		resolve.Do(func() { won = true })
		if !won {
			return types.Move{}, fmt.Errorf("%s: %w after %s", a.name, engine.ErrAgentTimeout, a.timeout)
		}
		a.setState(Terminated)
		a.kill()
		return types.Move{}, ctx.Err()
	}
}

func (a *Agent) fail(err error) (types.Move, error) {
	a.log.Errorw("agent protocol error", "agent", a.name, "err", err)
	a.setState(ProtocolError)
	return types.Move{}, err
}

// Terminate sends a best-effort final score and kills the process without
// waiting for it to acknowledge. It is safe to call after a timeout and more
// than once.
func (a *Agent) Terminate(state *types.GameState) {
	a.mu.Lock()
	prev := a.state
	a.state = Terminated
	a.mu.Unlock()

	if prev != TimedOut && prev != Terminated && state != nil {
		if err := a.sendLine(finalLine(rules.GetScore(state.Board))); err != nil {
			a.log.Debugw("final line not delivered", "agent", a.name, "err", err)
		}
	}
	a.kill()
}

// kill terminates the process at most once and reaps it in the background.
func (a *Agent) kill() {
	a.killOnce.Do(func() {
		a.kills.Add(1)
		close(a.done)
		if a.cmd == nil || a.cmd.Process == nil {
			return
		}
		if err := a.cmd.Process.Kill(); err != nil {
			a.log.Debugw("kill", "agent", a.name, "err", err)
		}
		go func() {
			err := a.cmd.Wait()
			a.log.Debugw("agent exited", "agent", a.name, "err", err)
		}()
	})
}
