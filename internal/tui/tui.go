// Package tui is the interactive front end: a menu over the maintenance
// catalog, a live transcript for the running operation, and a system
// information panel. It owns the operation slot; the background worker only
// ever talks to it through the progress feed.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nkov/tuneup/internal/config"
	"github.com/nkov/tuneup/internal/maint"
)

func Run(cfg config.Config, log zerolog.Logger) error {
	catalog := maint.Catalog(maint.CatalogOptions{ExtraTempRoots: cfg.Ops.ExtraTempDirs})

	log.Info().Int("operations", len(catalog)).Msg("starting interactive session")

	m := newModel(cfg, catalog, log)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Error().Err(err).Msg("interactive session failed")
		return err
	}
	log.Info().Msg("interactive session ended")
	return nil
}
