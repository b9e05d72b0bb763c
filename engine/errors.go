package engine

import "errors"

var (
	// ErrInvalidMove is returned for an occupied cell or a move that captures nothing.
	// It is recoverable; the caller may try another move.
	ErrInvalidMove = errors.New("invalid move")

	// ErrAgentTimeout is returned when an agent does not answer before its deadline.
	ErrAgentTimeout = errors.New("agent timed out")

	// ErrAgentProtocol is returned for a malformed agent response or a closed channel.
	ErrAgentProtocol = errors.New("agent protocol error")

	// ErrSpawn is returned when an agent process cannot start or report its name.
	ErrSpawn = errors.New("agent failed to start")
)

// IsFatal reports whether err ends the game rather than allowing a retry.
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, ErrInvalidMove)
}
