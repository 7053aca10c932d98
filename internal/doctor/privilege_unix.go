//go:build !windows

package doctor

import "os"

func processIsElevated() bool {
	return os.Geteuid() == 0
}
