package config

import "fmt"

func DefaultTemplate() string {
	return fmt.Sprintf(`version: 1
ui:
  theme: "dark"        # light or dark
  language: "en"       # en or es
  tick_interval_ms: 100
  poll_budget: 128
ops:
  # 0 disables the per-command timeout; repair passes can run for a long time.
  command_timeout_seconds: 0
  extra_temp_dirs: []
log_file: %q
`, defaultLogFile())
}
