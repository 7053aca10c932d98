package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nkov/tuneup/internal/config"
	"github.com/nkov/tuneup/internal/logger"
)

func loadConfig(app *AppContext) (config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("resolve working directory: %w", err)
	}

	cfg, err := config.Load(config.LoadOptions{
		ExplicitPath: strings.TrimSpace(app.Opts.ConfigPath),
		WorkingDir:   wd,
	})
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// openFileLogger builds the zerolog file logger the session writes to. The
// returned closer is a no-op when logging is disabled.
func openFileLogger(cfg config.Config) (zerolog.Logger, func() error, error) {
	path, err := config.ExpandPath(cfg.LogFile)
	if err != nil {
		return zerolog.Nop(), func() error { return nil }, fmt.Errorf("resolve log file path: %w", err)
	}
	return logger.NewFileLogger(path)
}

func isTTY(file *os.File) bool {
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}
