package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"othello-local/engine"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Agent.TimeoutSeconds != 60 || cfg.Agent.SearchLimit != 5 || !cfg.Agent.Ordering {
		t.Fatalf("unexpected defaults: %+v", cfg.Agent)
	}
	if cfg.Theme.Symbols.DarkDisc != '●' {
		t.Fatalf("dark symbol = %q", cfg.Theme.Symbols.DarkDisc)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `{
  "agent": {"dark_path": "agents/mcts.py", "interpreter": "python3", "timeout_seconds": 10, "minimax": true},
  "theme": {"show_hints": false, "symbols": {"dark": 88}}
}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Agent.DarkPath != "agents/mcts.py" || cfg.Agent.Interpreter != "python3" {
		t.Fatalf("agent paths not read: %+v", cfg.Agent)
	}
	if cfg.Agent.TimeoutSeconds != 10 || !cfg.Agent.Minimax {
		t.Fatalf("agent settings not read: %+v", cfg.Agent)
	}
	// Unset keys keep their defaults.
	if cfg.Agent.SearchLimit != 5 || cfg.Theme.Symbols.LightDisc != '●' {
		t.Fatal("defaults lost for keys missing from the file")
	}
	if cfg.Theme.ShowHints || cfg.Theme.Symbols.DarkDisc != 'X' {
		t.Fatalf("theme not read: %+v", cfg.Theme)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OTHELLO_AGENT_TIMEOUT_SECONDS", "30")
	t.Setenv("OTHELLO_AGENT_LIGHT_PATH", "/opt/agent")
	path := writeConfig(t, `{"agent": {"timeout_seconds": 10}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Agent.TimeoutSeconds != 30 || cfg.Agent.LightPath != "/opt/agent" {
		t.Fatalf("env overrides not applied: %+v", cfg.Agent)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []string{
		`{"agent": {"timeout_seconds": 0}}`,
		`{"agent": {"search_limit": 0}}`,
		`{"theme": {"symbols": {"hint": 7}}}`,
		`{not json`,
	}
	for _, content := range tests {
		_, err := Load(writeConfig(t, content))
		var invalid *InvalidConfig
		if !errors.As(err, &invalid) {
			t.Errorf("Load(%s) err = %v, want InvalidConfig", content, err)
		}
	}
}

func TestGameConfig(t *testing.T) {
	cfg := DefaultConfig
	cfg.Agent.LightPath = "agent.py"
	cfg.Agent.TimeoutSeconds = 5
	gc := cfg.GameConfig()
	if gc.Dark.Kind != engine.KindHuman {
		t.Fatalf("dark kind = %s, want human", gc.Dark.Kind)
	}
	if gc.Light.Kind != engine.KindAgent || gc.Light.Agent.Path != "agent.py" {
		t.Fatalf("light = %+v", gc.Light)
	}
	if gc.Light.Agent.Timeout != 5*time.Second {
		t.Fatalf("timeout = %s", gc.Light.Agent.Timeout)
	}

	cfg.Agent.DarkPath = "human"
	if cfg.GameConfig().Dark.Kind != engine.KindHuman {
		t.Fatal(`"human" should select a human player`)
	}
}

func TestLogPath(t *testing.T) {
	cfg := DefaultConfig
	cfg.Log.Path = "/tmp/othello-test.log"
	got, err := cfg.LogPath()
	if err != nil || got != "/tmp/othello-test.log" {
		t.Fatalf("LogPath = %q, %v", got, err)
	}
}
