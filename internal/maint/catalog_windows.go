//go:build windows

package maint

import (
	"os"
	"path/filepath"

	"github.com/nkov/tuneup/internal/op"
)

// Commands go through cmd /C like the stock maintenance tooling expects;
// DISM in particular resolves differently when invoked bare under WOW64.
func platformOperations() []Operation {
	return []Operation{
		{
			Kind:        KindRecycleBin,
			Title:       "Empty recycle bin",
			Description: "Permanently remove everything in the recycle bin",
			Script: op.Script{
				Kind:  KindRecycleBin,
				Title: "Recycle bin cleanup",
				Steps: []op.Step{
					op.CommandStep{
						Name: "clear recycle bin",
						Bin:  "powershell",
						Args: []string{"-NoProfile", "-Command", "Clear-RecycleBin -Force -ErrorAction SilentlyContinue"},
					},
				},
			},
		},
		{
			Kind:        KindNetwork,
			Title:       "Reset network",
			Description: "Flush the DNS cache and reset the socket stack",
			Script: op.Script{
				Kind:  KindNetwork,
				Title: "Network reset",
				Steps: []op.Step{
					op.CommandStep{
						Name: "flush DNS cache",
						Bin:  "cmd",
						Args: []string{"/C", "ipconfig /flushdns"},
					},
					op.CommandStep{
						Name: "reset winsock",
						Bin:  "cmd",
						Args: []string{"/C", "netsh winsock reset"},
					},
				},
			},
		},
		{
			Kind:        KindUpdateClean,
			Title:       "Clean update leftovers",
			Description: "Remove superseded Windows Update components",
			Script: op.Script{
				Kind:  KindUpdateClean,
				Title: "Update component cleanup",
				Steps: []op.Step{
					op.CommandStep{
						Name: "component cleanup",
						Bin:  "cmd",
						Args: []string{"/C", "DISM /Online /Cleanup-Image /StartComponentCleanup /ResetBase"},
					},
				},
			},
		},
		{
			Kind:        KindRepair,
			Title:       "Repair system files",
			Description: "Restore the component store, then verify system file integrity",
			Script: op.Script{
				Kind:  KindRepair,
				Title: "System repair",
				// Integrity check still runs even when the restore step
				// fails; it can repair from other sources.
				FailFast: false,
				Steps: []op.Step{
					op.CommandStep{
						Name: "restore component store",
						Bin:  "cmd",
						Args: []string{"/C", "DISM /Online /Cleanup-Image /RestoreHealth"},
					},
					op.CommandStep{
						Name: "verify system files",
						Bin:  "cmd",
						Args: []string{"/C", "sfc /scannow"},
					},
				},
			},
		},
	}
}

func platformTempRoots() []string {
	roots := []string{}
	if windir := os.Getenv("WINDIR"); windir != "" {
		roots = append(roots, filepath.Join(windir, "Temp"))
	}
	return roots
}

func browserCacheRoots() []string {
	local := os.Getenv("LOCALAPPDATA")
	if local == "" {
		return nil
	}
	return []string{
		filepath.Join(local, "Google", "Chrome", "User Data", "Default", "Cache"),
		filepath.Join(local, "Microsoft", "Edge", "User Data", "Default", "Cache"),
		filepath.Join(local, "Mozilla", "Firefox", "Profiles"),
	}
}
