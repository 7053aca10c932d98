package maint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nkov/tuneup/internal/op"
)

type fakeSender struct {
	logs   []string
	errors []string
	stats  []op.Stats
}

func (s *fakeSender) Log(text string) bool       { s.logs = append(s.logs, text); return true }
func (s *fakeSender) StderrLog(text string) bool { s.logs = append(s.logs, text); return true }
func (s *fakeSender) Error(text string) bool     { s.errors = append(s.errors, text); return true }
func (s *fakeSender) Stats(stats op.Stats) bool  { s.stats = append(s.stats, stats); return true }

func TestCleanStepDeletesChildrenAndCountsBytes(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.tmp"), []byte("12345"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	sub := filepath.Join(root, "subdir")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(sub, "b.tmp"), []byte("1234567890"), 0o644); err != nil {
		t.Fatalf("write nested file: %v", err)
	}

	sender := &fakeSender{}
	ok := cleanStep{name: "test", roots: []string{root}}.Run(op.RunContext{Sender: sender})
	if !ok {
		t.Fatalf("expected clean step to succeed, errors: %v", sender.errors)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected root emptied, %d entries remain", len(entries))
	}

	if len(sender.stats) == 0 {
		t.Fatalf("expected at least one stats snapshot")
	}
	final := sender.stats[len(sender.stats)-1]
	if final.Deleted != 2 {
		t.Fatalf("expected 2 deletions (file + dir), got %d", final.Deleted)
	}
	if final.BytesFreed != 15 {
		t.Fatalf("expected 15 bytes freed, got %d", final.BytesFreed)
	}
	if final.Failed != 0 {
		t.Fatalf("expected no failures, got %d", final.Failed)
	}
}

func TestCleanStepStatsAreMonotonic(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < statsEvery*3; i++ {
		name := filepath.Join(root, fmt.Sprintf("file%03d", i))
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatalf("write file %d: %v", i, err)
		}
	}

	sender := &fakeSender{}
	if ok := (cleanStep{name: "test", roots: []string{root}}).Run(op.RunContext{Sender: sender}); !ok {
		t.Fatalf("expected clean step to succeed")
	}

	if len(sender.stats) < 2 {
		t.Fatalf("expected periodic snapshots, got %d", len(sender.stats))
	}
	prev := op.Stats{}
	for i, snap := range sender.stats {
		if snap.Deleted < prev.Deleted || snap.Failed < prev.Failed || snap.BytesFreed < prev.BytesFreed {
			t.Fatalf("counters decreased at snapshot %d: %+v -> %+v", i, prev, snap)
		}
		prev = snap
	}
}

func TestCleanStepSkipsMissingRoots(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	sender := &fakeSender{}
	ok := cleanStep{name: "test", roots: []string{missing}}.Run(op.RunContext{Sender: sender})
	if !ok {
		t.Fatalf("expected missing roots to be skipped, not fail")
	}

	sawSkip := false
	for _, line := range sender.logs {
		if strings.Contains(line, "skipping") {
			sawSkip = true
		}
	}
	if !sawSkip {
		t.Fatalf("expected a skip log line, got %v", sender.logs)
	}
	if len(sender.errors) != 0 {
		t.Fatalf("expected no errors for missing roots, got %v", sender.errors)
	}
}

func TestCatalogKindsAreUniqueAndRunnable(t *testing.T) {
	ops := Catalog(CatalogOptions{})
	if len(ops) < 4 {
		t.Fatalf("expected a populated catalog, got %d operations", len(ops))
	}

	seen := map[string]struct{}{}
	for _, o := range ops {
		if o.Kind == "" || o.Title == "" {
			t.Fatalf("operation missing kind or title: %+v", o)
		}
		if _, dup := seen[o.Kind]; dup {
			t.Fatalf("duplicate catalog kind %q", o.Kind)
		}
		seen[o.Kind] = struct{}{}
		if len(o.Script.Steps) == 0 {
			t.Fatalf("operation %q has no steps", o.Kind)
		}
	}

	repair, ok := Find(ops, KindRepair)
	if !ok {
		t.Fatalf("expected a repair operation on every platform")
	}
	if repair.Script.FailFast {
		t.Fatalf("repair script must be best-effort, not fail-fast")
	}
	if len(repair.Script.Steps) != 2 {
		t.Fatalf("expected a two-step repair script, got %d", len(repair.Script.Steps))
	}

	if _, ok := Find(ops, "no-such-kind"); ok {
		t.Fatalf("Find matched an unknown kind")
	}
}

func TestRequiredBinariesAreDistinctAndSorted(t *testing.T) {
	bins := RequiredBinaries(Catalog(CatalogOptions{}))
	if len(bins) == 0 {
		t.Fatalf("expected command steps in the catalog")
	}
	for i := 1; i < len(bins); i++ {
		if bins[i-1] >= bins[i] {
			t.Fatalf("binaries not sorted/unique: %v", bins)
		}
	}
}
