package config

var DefaultConfig Config
var DefaultTheme Theme

func init() {
	DefaultTheme = Theme{
		DrawCursorBackground:     true,
		DrawLastPlayedBackground: true,
		ShowHints:                true,
		Colors: ConfigColors{
			BoardColor:        28,
			BoardColorAlt:     22,
			DarkColor:         232,
			LightColor:        255,
			HintColor:         120,
			CursorColorFG:     2,
			CursorColorBG:     4,
			LastPlayedColorBG: 94,
		},
		Symbols: ConfigSymbols{
			DarkDisc:    '●',
			LightDisc:   '●',
			BoardSquare: ' ',
			Hint:        '·',
			Cursor:      '+',
		},
	}

	DefaultConfig = Config{
		Theme: DefaultTheme,
		Agent: AgentSettings{
			Interpreter:    "",
			TimeoutSeconds: 60,
			SearchLimit:    5,
			Minimax:        false,
			Caching:        false,
			Ordering:       true,
		},
	}
}
