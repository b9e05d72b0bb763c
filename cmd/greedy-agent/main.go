// greedy-agent is a minimal agent for othello-local. It plays the move that
// flips the most discs and is useful for trying the agent protocol end to end.
package main

import (
	"flag"
	"fmt"
	"os"

	"othello-local/engine/agent"
)

var flagName = flag.String("name", "Greedy", "Name reported to the game")

func main() {
	flag.Parse()
	if err := agent.Serve(os.Stdin, os.Stdout, *flagName, agent.Greedy); err != nil {
		fmt.Fprintf(os.Stderr, "greedy-agent: %s\n", err)
		os.Exit(1)
	}
}
