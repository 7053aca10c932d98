//go:build !windows

package maint

import (
	"os"
	"path/filepath"

	"github.com/nkov/tuneup/internal/op"
)

func platformOperations() []Operation {
	return []Operation{
		{
			Kind:        KindTrashClean,
			Title:       "Empty trash",
			Description: "Permanently remove everything in the user trash",
			Script: op.Script{
				Kind:  KindTrashClean,
				Title: "Trash cleanup",
				Steps: []op.Step{
					cleanStep{name: "trash", roots: trashRoots()},
				},
			},
		},
		{
			Kind:        KindNetwork,
			Title:       "Flush DNS cache",
			Description: "Drop cached DNS lookups from the system resolver",
			Script: op.Script{
				Kind:  KindNetwork,
				Title: "DNS cache flush",
				Steps: []op.Step{
					op.CommandStep{
						Name: "flush resolver cache",
						Bin:  "resolvectl",
						Args: []string{"flush-caches"},
					},
				},
			},
		},
		{
			Kind:        KindLogClean,
			Title:       "Clean old journal logs",
			Description: "Vacuum journald entries older than a week",
			Script: op.Script{
				Kind:  KindLogClean,
				Title: "Journal cleanup",
				Steps: []op.Step{
					op.CommandStep{
						Name: "vacuum journal",
						Bin:  "journalctl",
						Args: []string{"--vacuum-time=7d"},
					},
				},
			},
		},
		{
			Kind:        KindRepair,
			Title:       "Filesystem maintenance",
			Description: "Flush pending writes, then clean stale runtime files",
			Script: op.Script{
				Kind:  KindRepair,
				Title: "Filesystem maintenance",
				// Stale-file cleanup still runs when the flush reports a
				// problem; the two steps are independent.
				FailFast: false,
				Steps: []op.Step{
					op.CommandStep{
						Name: "flush filesystem buffers",
						Bin:  "sync",
					},
					op.CommandStep{
						Name: "clean stale runtime files",
						Bin:  "systemd-tmpfiles",
						Args: []string{"--clean"},
					},
				},
			},
		},
	}
}

func platformTempRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{filepath.Join(home, ".cache", "thumbnails")}
}

func browserCacheRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	cache := os.Getenv("XDG_CACHE_HOME")
	if cache == "" {
		cache = filepath.Join(home, ".cache")
	}
	return []string{
		filepath.Join(cache, "google-chrome", "Default", "Cache"),
		filepath.Join(cache, "chromium", "Default", "Cache"),
		filepath.Join(cache, "mozilla", "firefox"),
	}
}

func trashRoots() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	data := os.Getenv("XDG_DATA_HOME")
	if data == "" {
		data = filepath.Join(home, ".local", "share")
	}
	return []string{
		filepath.Join(data, "Trash", "files"),
		filepath.Join(data, "Trash", "info"),
	}
}
