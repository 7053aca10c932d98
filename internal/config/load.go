package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type LoadOptions struct {
	ExplicitPath string
	WorkingDir   string
	Env          map[string]string
}

// fileConfig mirrors Config with pointer fields so merging can tell "absent"
// from "zero".
type fileConfig struct {
	Version *int     `yaml:"version"`
	UI      fileUI   `yaml:"ui"`
	Ops     fileOps  `yaml:"ops"`
	LogFile *string  `yaml:"log_file"`
}

type fileUI struct {
	Theme          *string `yaml:"theme"`
	Language       *string `yaml:"language"`
	TickIntervalMS *int    `yaml:"tick_interval_ms"`
	PollBudget     *int    `yaml:"poll_budget"`
}

type fileOps struct {
	CommandTimeoutSeconds *int      `yaml:"command_timeout_seconds"`
	ExtraTempDirs         *[]string `yaml:"extra_temp_dirs"`
}

// Load builds the effective config: defaults, then the user config, then the
// project config, then environment overrides. An explicit path replaces the
// user/project pair and must exist.
func Load(opts LoadOptions) (Config, error) {
	cfg := DefaultConfig()

	cwd := opts.WorkingDir
	if strings.TrimSpace(cwd) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("resolve working directory: %w", err)
		}
		cwd = wd
	}

	env := opts.Env
	if env == nil {
		env = osEnvMap()
	}

	if explicit := strings.TrimSpace(opts.ExplicitPath); explicit != "" {
		if err := mergeFile(&cfg, explicit, true); err != nil {
			return Config{}, err
		}
	} else {
		userPath, err := UserConfigPath()
		if err != nil {
			return Config{}, err
		}
		if err := mergeFile(&cfg, userPath, false); err != nil {
			return Config{}, err
		}

		if err := mergeFile(&cfg, ProjectConfigPath(cwd), false); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnvOverrides(&cfg, env); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mergeFile(cfg *Config, path string, required bool) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(payload, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Version != nil {
		cfg.Version = *fc.Version
	}
	if fc.UI.Theme != nil {
		cfg.UI.Theme = strings.TrimSpace(*fc.UI.Theme)
	}
	if fc.UI.Language != nil {
		cfg.UI.Language = strings.TrimSpace(*fc.UI.Language)
	}
	if fc.UI.TickIntervalMS != nil {
		cfg.UI.TickIntervalMS = *fc.UI.TickIntervalMS
	}
	if fc.UI.PollBudget != nil {
		cfg.UI.PollBudget = *fc.UI.PollBudget
	}
	if fc.Ops.CommandTimeoutSeconds != nil {
		cfg.Ops.CommandTimeoutSeconds = *fc.Ops.CommandTimeoutSeconds
	}
	if fc.Ops.ExtraTempDirs != nil {
		cfg.Ops.ExtraTempDirs = append([]string{}, (*fc.Ops.ExtraTempDirs)...)
	}
	if fc.LogFile != nil {
		cfg.LogFile = strings.TrimSpace(*fc.LogFile)
	}
	return nil
}

func applyEnvOverrides(cfg *Config, env map[string]string) error {
	if value := strings.TrimSpace(env["TUNEUP_THEME"]); value != "" {
		cfg.UI.Theme = value
	}
	if value := strings.TrimSpace(env["TUNEUP_LANGUAGE"]); value != "" {
		cfg.UI.Language = value
	}
	if value := strings.TrimSpace(env["TUNEUP_TICK_INTERVAL_MS"]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TUNEUP_TICK_INTERVAL_MS value %q: %w", value, err)
		}
		cfg.UI.TickIntervalMS = parsed
	}
	if value := strings.TrimSpace(env["TUNEUP_POLL_BUDGET"]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TUNEUP_POLL_BUDGET value %q: %w", value, err)
		}
		cfg.UI.PollBudget = parsed
	}
	if value := strings.TrimSpace(env["TUNEUP_COMMAND_TIMEOUT_SECONDS"]); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid TUNEUP_COMMAND_TIMEOUT_SECONDS value %q: %w", value, err)
		}
		cfg.Ops.CommandTimeoutSeconds = parsed
	}
	if value := strings.TrimSpace(env["TUNEUP_LOG_FILE"]); value != "" {
		cfg.LogFile = value
	}
	return nil
}

func osEnvMap() map[string]string {
	result := map[string]string{}
	for _, pair := range os.Environ() {
		pieces := strings.SplitN(pair, "=", 2)
		if len(pieces) == 2 {
			result[pieces[0]] = pieces[1]
		}
	}
	return result
}
