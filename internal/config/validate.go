package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid config"
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(e.Problems, "; "))
}

func Validate(cfg Config) error {
	problems := []string{}

	if cfg.Version != 1 {
		problems = append(problems, "version must be 1")
	}

	switch cfg.UI.Theme {
	case ThemeLight, ThemeDark:
	default:
		problems = append(problems, fmt.Sprintf("ui.theme must be %q or %q", ThemeLight, ThemeDark))
	}

	switch cfg.UI.Language {
	case "en", "es":
	default:
		problems = append(problems, `ui.language must be "en" or "es"`)
	}

	if cfg.UI.TickIntervalMS < 16 || cfg.UI.TickIntervalMS > 1000 {
		problems = append(problems, "ui.tick_interval_ms must be between 16 and 1000")
	}
	if cfg.UI.PollBudget <= 0 {
		problems = append(problems, "ui.poll_budget must be > 0")
	}

	if cfg.Ops.CommandTimeoutSeconds < 0 {
		problems = append(problems, "ops.command_timeout_seconds must be >= 0")
	}
	for _, dir := range cfg.Ops.ExtraTempDirs {
		if strings.TrimSpace(dir) == "" {
			problems = append(problems, "ops.extra_temp_dirs entries must not be empty")
			continue
		}
		if _, err := ExpandPath(dir); err != nil {
			problems = append(problems, fmt.Sprintf("ops.extra_temp_dirs entry %q is invalid", dir))
		}
	}

	if strings.TrimSpace(cfg.LogFile) != "" {
		if _, err := ExpandPath(cfg.LogFile); err != nil {
			problems = append(problems, "log_file must be a valid path")
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
