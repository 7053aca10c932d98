package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/nkov/tuneup/internal/exitcode"
	"github.com/nkov/tuneup/internal/maint"
)

func newListCommand(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List maintenance operations available on this platform",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(app)
			if err != nil {
				return withExitCode(exitcode.InvalidConfig, err)
			}

			catalog := maint.Catalog(maint.CatalogOptions{ExtraTempRoots: cfg.Ops.ExtraTempDirs})

			if app.Opts.JSON {
				type entry struct {
					Kind        string `json:"kind"`
					Title       string `json:"title"`
					Description string `json:"description"`
					Steps       int    `json:"steps"`
				}
				entries := make([]entry, 0, len(catalog))
				for _, operation := range catalog {
					entries = append(entries, entry{
						Kind:        operation.Kind,
						Title:       operation.Title,
						Description: operation.Description,
						Steps:       len(operation.Script.Steps),
					})
				}
				encoder := json.NewEncoder(app.IO.Out)
				if err := encoder.Encode(entries); err != nil {
					return withExitCode(exitcode.RuntimeFailure, err)
				}
				return nil
			}

			w := tabwriter.NewWriter(app.IO.Out, 0, 4, 2, ' ', 0)
			for _, operation := range catalog {
				fmt.Fprintf(w, "%s\t%s\t%s\n", operation.Kind, operation.Title, operation.Description)
			}
			return w.Flush()
		},
	}
}
