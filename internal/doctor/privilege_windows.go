//go:build windows

package doctor

import "os/exec"

// `net session` succeeds only from an elevated shell.
func processIsElevated() bool {
	return exec.Command("net", "session").Run() == nil
}
