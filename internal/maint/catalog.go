// Package maint defines the catalog of maintenance operations: for each
// operation kind, the fixed ordered script of steps the background worker
// executes. Command steps differ per platform; the in-process cleanup steps
// are shared.
package maint

import (
	"os"
	"sort"

	"github.com/nkov/tuneup/internal/op"
)

const (
	KindTempClean    = "tempclean"
	KindBrowserClean = "browserclean"
	KindNetwork      = "network"
	KindRepair       = "repair"
	KindUpdateClean  = "updateclean"
	KindRecycleBin   = "recyclebin"
	KindTrashClean   = "trashclean"
	KindLogClean     = "logclean"
)

// Operation is one catalog entry: a script plus the text the menu shows.
type Operation struct {
	Kind        string
	Title       string
	Description string
	Script      op.Script
}

// CatalogOptions carries the config-driven parts of the catalog.
type CatalogOptions struct {
	// ExtraTempRoots are additional directories the tempclean operation
	// should empty, on top of the platform defaults.
	ExtraTempRoots []string
}

// Catalog returns the operations available on this platform, in menu order.
func Catalog(opts CatalogOptions) []Operation {
	ops := []Operation{tempCleanOperation(opts.ExtraTempRoots), browserCleanOperation()}
	ops = append(ops, platformOperations()...)
	return ops
}

// Find looks an operation up by kind.
func Find(ops []Operation, kind string) (Operation, bool) {
	for _, o := range ops {
		if o.Kind == kind {
			return o, true
		}
	}
	return Operation{}, false
}

// RequiredBinaries lists the distinct external binaries the catalog's command
// steps invoke, sorted for stable output.
func RequiredBinaries(ops []Operation) []string {
	seen := map[string]struct{}{}
	for _, o := range ops {
		for _, step := range o.Script.Steps {
			if cs, ok := step.(op.CommandStep); ok && cs.Bin != "" {
				seen[cs.Bin] = struct{}{}
			}
		}
	}
	bins := make([]string, 0, len(seen))
	for bin := range seen {
		bins = append(bins, bin)
	}
	sort.Strings(bins)
	return bins
}

func tempCleanOperation(extraRoots []string) Operation {
	roots := append([]string{os.TempDir()}, platformTempRoots()...)
	roots = append(roots, extraRoots...)
	return Operation{
		Kind:        KindTempClean,
		Title:       "Clean temporary files",
		Description: "Delete everything under the temp directories",
		Script: op.Script{
			Kind:  KindTempClean,
			Title: "Temporary file cleanup",
			Steps: []op.Step{
				cleanStep{name: "temp directories", roots: roots},
			},
		},
	}
}

func browserCleanOperation() Operation {
	return Operation{
		Kind:        KindBrowserClean,
		Title:       "Clean browser caches",
		Description: "Empty the cache directories of installed browsers",
		Script: op.Script{
			Kind:  KindBrowserClean,
			Title: "Browser cache cleanup",
			Steps: []op.Step{
				cleanStep{name: "browser caches", roots: browserCacheRoots()},
			},
		},
	}
}
