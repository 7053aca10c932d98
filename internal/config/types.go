package config

type Config struct {
	Version int    `yaml:"version"`
	UI      UI     `yaml:"ui"`
	Ops     Ops    `yaml:"ops"`
	LogFile string `yaml:"log_file"`
}

type UI struct {
	Theme          string `yaml:"theme"`
	Language       string `yaml:"language"`
	TickIntervalMS int    `yaml:"tick_interval_ms"`
	PollBudget     int    `yaml:"poll_budget"`
}

type Ops struct {
	// CommandTimeoutSeconds caps each external command. Zero means no limit,
	// matching how long-running repair passes are normally left alone.
	CommandTimeoutSeconds int      `yaml:"command_timeout_seconds"`
	ExtraTempDirs         []string `yaml:"extra_temp_dirs,omitempty"`
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

func DefaultConfig() Config {
	return Config{
		Version: 1,
		UI: UI{
			Theme:          ThemeDark,
			Language:       "en",
			TickIntervalMS: 100,
			PollBudget:     128,
		},
		Ops: Ops{
			CommandTimeoutSeconds: 0,
			ExtraTempDirs:         []string{},
		},
		LogFile: defaultLogFile(),
	}
}
