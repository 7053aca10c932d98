package maint

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/nkov/tuneup/internal/op"
)

// statsEvery is how many processed entries pass between counter snapshots.
const statsEvery = 25

// cleanStep deletes the direct children of each root directory, accumulating
// counters and emitting full snapshots as it goes. Roots that do not exist
// are skipped; the step only fails when every existing root was unreadable.
type cleanStep struct {
	name  string
	roots []string
}

func (s cleanStep) Title() string { return s.name }

func (s cleanStep) Run(rc op.RunContext) bool {
	stats := op.Stats{}
	existing := 0
	unreadable := 0

	for _, root := range s.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				if !rc.Sender.Log(fmt.Sprintf("skipping %s (not present)", root)) {
					return false
				}
				continue
			}
			existing++
			unreadable++
			if !rc.Sender.Error(fmt.Sprintf("cannot read %s: %v", root, err)) {
				return false
			}
			continue
		}
		existing++

		if !rc.Sender.Log(fmt.Sprintf("cleaning %s (%d entries)", root, len(entries))) {
			return false
		}

		for i, entry := range entries {
			path := filepath.Join(root, entry.Name())
			size := entrySize(path, entry)

			var rmErr error
			if entry.IsDir() {
				rmErr = os.RemoveAll(path)
			} else {
				rmErr = os.Remove(path)
			}
			if rmErr != nil {
				stats.Failed++
			} else {
				stats.Deleted++
				stats.BytesFreed += size
			}

			if (i+1)%statsEvery == 0 {
				if !rc.Sender.Stats(stats) {
					return false
				}
			}
		}

		if !rc.Sender.Stats(stats) {
			return false
		}
	}

	if !rc.Sender.Log(fmt.Sprintf("removed %d item(s), %d failed, %s freed",
		stats.Deleted, stats.Failed, humanize.Bytes(uint64(stats.BytesFreed)))) {
		return false
	}
	return unreadable == 0 || unreadable < existing
}

// entrySize reports how many bytes deleting path will free. Directory sizes
// are walked best-effort; unreadable children just count as zero.
func entrySize(path string, entry os.DirEntry) int64 {
	if !entry.IsDir() {
		info, err := entry.Info()
		if err != nil {
			return 0
		}
		return info.Size()
	}

	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, infoErr := d.Info(); infoErr == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total
}
