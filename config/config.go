package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"othello-local/engine"
)

var (
	cfgFile = "othello-local/config.json"
	logFile = "othello-local/othello.log"
)

// Keys that can be overridden from the environment as OTHELLO_<KEY>,
// e.g. OTHELLO_AGENT_TIMEOUT_SECONDS=30.
var envKeys = []string{
	"agent.dark_path",
	"agent.light_path",
	"agent.interpreter",
	"agent.timeout_seconds",
	"agent.search_limit",
	"agent.minimax",
	"agent.caching",
	"agent.ordering",
	"log.path",
	"log.debug",
}

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("Config error: %s", e.err)
}

type ConfigColors struct {
	BoardColor        int `json:"board"`
	BoardColorAlt     int `json:"board_alt"`
	DarkColor         int `json:"dark"`
	LightColor        int `json:"light"`
	HintColor         int `json:"hint"`
	CursorColorFG     int `json:"cursor_fg"`
	CursorColorBG     int `json:"cursor_bg"`
	LastPlayedColorBG int `json:"last_played_bg"`
}

type ConfigSymbols struct {
	DarkDisc    rune `json:"dark"`
	LightDisc   rune `json:"light"`
	BoardSquare rune `json:"board"`
	Hint        rune `json:"hint"`
	Cursor      rune `json:"cursor"`
}

type Theme struct {
	DrawCursorBackground     bool          `json:"draw_cursor_bg"`
	DrawLastPlayedBackground bool          `json:"draw_last_played_bg"`
	ShowHints                bool          `json:"show_hints"`
	Colors                   ConfigColors  `json:"colors"`
	Symbols                  ConfigSymbols `json:"symbols"`
}

// AgentSettings holds defaults for agent players.
type AgentSettings struct {
	DarkPath       string `json:"dark_path"`
	LightPath      string `json:"light_path"`
	Interpreter    string `json:"interpreter"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	SearchLimit    int    `json:"search_limit"`
	Minimax        bool   `json:"minimax"`
	Caching        bool   `json:"caching"`
	Ordering       bool   `json:"ordering"`
}

// LogConfig selects where the log goes.
type LogConfig struct {
	Path  string `json:"path"` // empty means the XDG state directory
	Debug bool   `json:"debug"`
}

type Config struct {
	Theme Theme         `json:"theme"`
	Agent AgentSettings `json:"agent"`
	Log   LogConfig     `json:"log"`
}

func InitConfig() (*Config, error) {
	path := ""
	if absPath, err := xdg.SearchConfigFile(cfgFile); err == nil {
		path = absPath
	}
	return Load(path)
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	config := DefaultConfig

	v := viper.New()
	v.SetConfigType("json")
	v.SetEnvPrefix("OTHELLO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range envKeys {
		if err := v.BindEnv(k); err != nil {
			return nil, err
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &InvalidConfig{fmt.Sprintf("reading %s: %v", path, err)}
		}
	}
	err := v.Unmarshal(&config, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "json"
	})
	if err != nil {
		return nil, &InvalidConfig{err.Error()}
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	for _, r := range []rune{c.Theme.Symbols.DarkDisc, c.Theme.Symbols.LightDisc, c.Theme.Symbols.BoardSquare, c.Theme.Symbols.Hint} {
		if r < 32 || (r >= 127 && r <= 159) {
			return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
		}
	}
	if c.Agent.TimeoutSeconds <= 0 {
		return &InvalidConfig{"agent timeout must be positive"}
	}
	if c.Agent.SearchLimit < 1 {
		return &InvalidConfig{"agent search limit must be at least 1"}
	}
	return nil
}

// AgentConfig builds the settings for an agent program at path.
func (c *Config) AgentConfig(path string) engine.AgentConfig {
	return engine.AgentConfig{
		Path:        path,
		Interpreter: c.Agent.Interpreter,
		SearchLimit: c.Agent.SearchLimit,
		Minimax:     c.Agent.Minimax,
		Caching:     c.Agent.Caching,
		Ordering:    c.Agent.Ordering,
		Timeout:     time.Duration(c.Agent.TimeoutSeconds) * time.Second,
	}
}

// GameConfig builds a game configuration from the configured agent paths.
// A side with no agent path is played by a human.
func (c *Config) GameConfig() engine.GameConfig {
	side := func(path, name string) engine.PlayerConfig {
		pc := engine.PlayerConfig{Kind: engine.KindHuman, Name: name, Agent: c.AgentConfig(path)}
		if path != "" && path != string(engine.KindHuman) {
			pc.Kind = engine.KindAgent
		}
		return pc
	}
	return engine.GameConfig{
		Dark:  side(c.Agent.DarkPath, "Dark"),
		Light: side(c.Agent.LightPath, "Light"),
	}
}

// LogPath returns the configured log file, defaulting to the XDG state directory.
func (c *Config) LogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	return xdg.StateFile(logFile)
}

func (c *Config) Save() {
	absPath, err := xdg.ConfigFile(cfgFile)
	if err != nil {
		panic(err)
	}
	saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		panic(err)
	}
	err = os.WriteFile(filePath, jsonData, perm)
	if err != nil {
		panic(err)
	}
}
