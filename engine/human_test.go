package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"othello-local/types"
)

func TestHumanSubmit(t *testing.T) {
	h := NewHuman("Alice")
	if h.Submit(1, 2) {
		t.Fatal("Submit should drop a move when nobody is waiting")
	}

	done := make(chan types.Move)
	go func() {
		m, _ := h.GetMove(context.Background(), nil)
		done <- m
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !h.Submit(2, 3) {
		if time.Now().After(deadline) {
			t.Fatal("GetMove never started waiting")
		}
		time.Sleep(time.Millisecond)
	}
	if m := <-done; m != (types.Move{Col: 2, Row: 3}) {
		t.Fatalf("GetMove = %v, want (2, 3)", m)
	}
}

func TestHumanGetMoveCancel(t *testing.T) {
	h := NewHuman("Bob")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := h.GetMove(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	h.Terminate(nil)
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{ErrInvalidMove, false},
		{ErrAgentTimeout, true},
		{ErrAgentProtocol, true},
		{ErrSpawn, true},
	}
	for _, tt := range tests {
		if got := IsFatal(tt.err); got != tt.want {
			t.Errorf("IsFatal(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestGameConfigFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Light.Kind = KindAgent
	if cfg.For(types.Light).Kind != KindAgent || cfg.For(types.Dark).Kind != KindHuman {
		t.Fatal("For returned the wrong side")
	}
}
