// Package engine defines the player abstraction that the game loop drives.
package engine

import (
	"context"
	"time"

	"othello-local/types"
)

// Player supplies moves for one side of a game.
type Player interface {
	// Name returns the display name of the player.
	Name() string

	// GetMove returns the player's chosen move for the given position.
	// The move is not checked for legality.
	GetMove(ctx context.Context, state *types.GameState) (types.Move, error)

	// Terminate releases the player at the end of a game.
	// It must be safe to call more than once.
	Terminate(state *types.GameState)
}

// Interactive is implemented by players that may retry after an invalid move.
type Interactive interface {
	Interactive() bool
}

// CanRetry reports whether p may be asked again after an invalid move.
func CanRetry(p Player) bool {
	i, ok := p.(Interactive)
	return ok && i.Interactive()
}

// PlayerKind selects the Player variant for a side.
type PlayerKind string

const (
	KindHuman PlayerKind = "human"
	KindAgent PlayerKind = "agent"
)

// AgentConfig holds the settings sent to an external agent process.
type AgentConfig struct {
	Path        string        // Agent program or script
	Interpreter string        // Optional interpreter, e.g. "python3"; empty runs Path directly
	Args        []string      // Extra arguments appended after Path
	SearchLimit int           // Depth limit passed to the agent
	Minimax     bool          // Plain minimax instead of alpha-beta
	Caching     bool          // Agent-side state caching
	Ordering    bool          // Agent-side node ordering
	Timeout     time.Duration // Per-move deadline
}

// PlayerConfig describes one side of a game.
type PlayerConfig struct {
	Kind  PlayerKind
	Name  string // Display name for human players
	Agent AgentConfig
}

// GameConfig holds configuration for starting a new game.
type GameConfig struct {
	Dark  PlayerConfig
	Light PlayerConfig
}

// DefaultTimeout is the per-move deadline used when none is configured.
const DefaultTimeout = 60 * time.Second

// DefaultAgentConfig returns the agent settings used when none are given.
func DefaultAgentConfig() AgentConfig {
	return AgentConfig{
		SearchLimit: 5,
		Minimax:     false,
		Caching:     false,
		Ordering:    true,
		Timeout:     DefaultTimeout,
	}
}

// DefaultConfig returns a human (dark) against human (light) configuration.
func DefaultConfig() GameConfig {
	return GameConfig{
		Dark:  PlayerConfig{Kind: KindHuman, Name: "Dark", Agent: DefaultAgentConfig()},
		Light: PlayerConfig{Kind: KindHuman, Name: "Light", Agent: DefaultAgentConfig()},
	}
}

// For returns the configuration of the given color.
func (c GameConfig) For(color types.Cell) PlayerConfig {
	if color == types.Light {
		return c.Light
	}
	return c.Dark
}
