package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"
	"time"

	"othello-local/engine"
	"othello-local/rules"
	"othello-local/types"
)

// TestHelperAgent is not a real test. It is re-executed as a scripted agent
// process by the tests below.
func TestHelperAgent(t *testing.T) {
	if os.Getenv("GO_WANT_AGENT_HELPER") != "1" {
		return
	}
	runHelper(os.Getenv("AGENT_HELPER_MODE"))
	os.Exit(0)
}

func runHelper(mode string) {
	in := bufio.NewReader(os.Stdin)
	if mode == "greedy" {
		err := Serve(in, os.Stdout, "helper", func(b types.Board, color types.Cell, _ engine.AgentConfig) types.Move {
			return rules.GetPossibleMoves(b, color)[0]
		})
		if err != nil {
			os.Exit(2)
		}
		return
	}

	config, _ := in.ReadString('\n')
	switch mode {
	case "noname":
		return
	case "hang-on-name":
		time.Sleep(time.Hour)
		return
	case "config-echo":
		fmt.Print(config)
		return
	}
	fmt.Println("helper")

	// Consume one request: score line and board line.
	in.ReadString('\n')
	in.ReadString('\n')
	switch mode {
	case "spaced":
		fmt.Println("   3    4   ")
	case "garbage":
		fmt.Println("hello world")
	case "short":
		fmt.Println("3")
	case "late":
		time.Sleep(300 * time.Millisecond)
		fmt.Println("2 3")
	case "close":
		return
	case "silent":
	}
	io.Copy(io.Discard, in)
}

func helperConfig(t *testing.T, mode string, timeout time.Duration) engine.AgentConfig {
	t.Helper()
	t.Setenv("GO_WANT_AGENT_HELPER", "1")
	t.Setenv("AGENT_HELPER_MODE", mode)
	return engine.AgentConfig{
		Path:        os.Args[0],
		Args:        []string{"-test.run=^TestHelperAgent$"},
		SearchLimit: 5,
		Ordering:    true,
		Timeout:     timeout,
	}
}

func spawnHelper(t *testing.T, mode string, timeout time.Duration) *Agent {
	t.Helper()
	a, err := Spawn(types.Dark, helperConfig(t, mode, timeout), nil)
	if err != nil {
		t.Fatalf("Spawn(%s): %v", mode, err)
	}
	t.Cleanup(func() { a.Terminate(nil) })
	return a
}

func initialState() *types.GameState {
	b := rules.InitialBoard()
	return &types.GameState{Board: b, CurrentPlayer: types.Dark, Score: rules.GetScore(b), Phase: "playing"}
}

func TestSpawnSendsConfigLine(t *testing.T) {
	a := spawnHelper(t, "config-echo", 5*time.Second)
	if a.Name() != "1,5,0,0,1" {
		t.Fatalf("agent saw config %q, want %q", a.Name(), "1,5,0,0,1")
	}
	if a.State() != Ready {
		t.Fatalf("state = %v, want ready", a.State())
	}
}

func TestSpawnWithoutName(t *testing.T) {
	_, err := Spawn(types.Dark, helperConfig(t, "noname", 5*time.Second), nil)
	if !errors.Is(err, engine.ErrSpawn) {
		t.Fatalf("err = %v, want ErrSpawn", err)
	}
}

func TestSpawnNameDeadline(t *testing.T) {
	start := time.Now()
	_, err := Spawn(types.Dark, helperConfig(t, "hang-on-name", 200*time.Millisecond), nil)
	if !errors.Is(err, engine.ErrSpawn) {
		t.Fatalf("err = %v, want ErrSpawn", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("spawn did not honour the deadline")
	}
}

func TestSpawnMissingProgram(t *testing.T) {
	cfg := engine.AgentConfig{Path: "/nonexistent/othello-agent", Timeout: time.Second}
	_, err := Spawn(types.Light, cfg, nil)
	if !errors.Is(err, engine.ErrSpawn) {
		t.Fatalf("err = %v, want ErrSpawn", err)
	}
}

func TestGetMove(t *testing.T) {
	a := spawnHelper(t, "greedy", 5*time.Second)
	if a.Name() != "helper" {
		t.Fatalf("name = %q", a.Name())
	}

	state := initialState()
	m, err := a.GetMove(context.Background(), state)
	if err != nil {
		t.Fatalf("GetMove: %v", err)
	}
	if m != (types.Move{Col: 3, Row: 2}) {
		t.Fatalf("move = %v, want (3, 2)", m)
	}
	if a.State() != MoveReceived {
		t.Fatalf("state = %v, want move-received", a.State())
	}

	// A second request on the same channel.
	state.Board = rules.PlayMove(state.Board, types.Dark, m.Col, m.Row)
	state.Board = rules.PlayMove(state.Board, types.Light, 2, 2)
	if _, err := a.GetMove(context.Background(), state); err != nil {
		t.Fatalf("second GetMove: %v", err)
	}

	a.Terminate(state)
	a.Terminate(state)
	if a.State() != Terminated {
		t.Fatalf("state = %v, want terminated", a.State())
	}
	if n := a.kills.Load(); n != 1 {
		t.Fatalf("kills = %d, want 1", n)
	}
	if _, err := a.GetMove(context.Background(), state); !errors.Is(err, engine.ErrAgentProtocol) {
		t.Fatalf("GetMove after Terminate: %v", err)
	}
}

func TestGetMoveWhitespace(t *testing.T) {
	a := spawnHelper(t, "spaced", 5*time.Second)
	m, err := a.GetMove(context.Background(), initialState())
	if err != nil {
		t.Fatalf("GetMove: %v", err)
	}
	if m != (types.Move{Col: 3, Row: 4}) {
		t.Fatalf("move = %v, want (3, 4)", m)
	}
}

func TestGetMoveMalformed(t *testing.T) {
	for _, mode := range []string{"garbage", "short", "close"} {
		a := spawnHelper(t, mode, 5*time.Second)
		_, err := a.GetMove(context.Background(), initialState())
		if !errors.Is(err, engine.ErrAgentProtocol) {
			t.Errorf("%s: err = %v, want ErrAgentProtocol", mode, err)
		}
		if errors.Is(err, engine.ErrAgentTimeout) {
			t.Errorf("%s: protocol error reported as timeout", mode)
		}
		if a.State() != ProtocolError {
			t.Errorf("%s: state = %v, want protocol-error", mode, a.State())
		}
	}
}

func TestGetMoveTimeout(t *testing.T) {
	a := spawnHelper(t, "silent", 200*time.Millisecond)

	start := time.Now()
	_, err := a.GetMove(context.Background(), initialState())
	if !errors.Is(err, engine.ErrAgentTimeout) {
		t.Fatalf("err = %v, want ErrAgentTimeout", err)
	}
	if time.Since(start) > 5*time.Second {
		t.Fatal("GetMove did not return promptly after the deadline")
	}
	if a.State() != TimedOut {
		t.Fatalf("state = %v, want timed-out", a.State())
	}
	if n := a.kills.Load(); n != 1 {
		t.Fatalf("kills = %d, want 1", n)
	}

	// Terminate after a timeout neither panics nor kills again.
	a.Terminate(initialState())
	if n := a.kills.Load(); n != 1 {
		t.Fatalf("kills after Terminate = %d, want 1", n)
	}
}

func TestLateResponseDiscarded(t *testing.T) {
	a := spawnHelper(t, "late", 100*time.Millisecond)
	if _, err := a.GetMove(context.Background(), initialState()); !errors.Is(err, engine.ErrAgentTimeout) {
		t.Fatalf("err = %v, want ErrAgentTimeout", err)
	}
	time.Sleep(400 * time.Millisecond)
	if _, err := a.GetMove(context.Background(), initialState()); !errors.Is(err, engine.ErrAgentTimeout) {
		t.Fatalf("GetMove after timeout: %v, want ErrAgentTimeout", err)
	}
}

func TestGetMoveContextCancel(t *testing.T) {
	a := spawnHelper(t, "silent", time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := a.GetMove(ctx, initialState())
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}
	if n := a.kills.Load(); n != 1 {
		t.Fatalf("kills = %d, want 1", n)
	}
}

type fakeTimers struct {
	mu        sync.Mutex
	armed     int
	active    int
	maxActive int
}

type fakeTimer struct {
	f       *fakeTimers
	stopped bool
}

func (f *fakeTimers) afterFunc(time.Duration, func()) stopper {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.armed++
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	return &fakeTimer{f: f}
}

func (t *fakeTimer) Stop() bool {
	t.f.mu.Lock()
	defer t.f.mu.Unlock()
	if t.stopped {
		return false
	}
	t.stopped = true
	t.f.active--
	return true
}

func TestDeadlineTimersDoNotOverlap(t *testing.T) {
	a := spawnHelper(t, "greedy", time.Minute)
	timers := &fakeTimers{}
	a.afterFunc = timers.afterFunc

	state := initialState()
	for i := 0; i < 2; i++ {
		m, err := a.GetMove(context.Background(), state)
		if err != nil {
			t.Fatalf("GetMove %d: %v", i, err)
		}
		timers.mu.Lock()
		active := timers.active
		timers.mu.Unlock()
		if active != 0 {
			t.Fatalf("after GetMove %d, %d deadline timers still active", i, active)
		}
		state.Board = rules.PlayMove(state.Board, types.Dark, m.Col, m.Row)
		reply := rules.GetPossibleMoves(state.Board, types.Light)[0]
		state.Board = rules.PlayMove(state.Board, types.Light, reply.Col, reply.Row)
	}
	if timers.armed != 2 || timers.maxActive != 1 {
		t.Fatalf("armed=%d maxActive=%d, want 2 and 1", timers.armed, timers.maxActive)
	}
}
