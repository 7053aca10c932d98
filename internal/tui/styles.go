package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nkov/tuneup/internal/config"
)

type palette struct {
	title     lipgloss.Color
	accent    lipgloss.Color
	text      lipgloss.Color
	muted     lipgloss.Color
	good      lipgloss.Color
	bad       lipgloss.Color
	stderrTag lipgloss.Color
}

var darkPalette = palette{
	title:     lipgloss.Color("205"),
	accent:    lipgloss.Color("86"),
	text:      lipgloss.Color("255"),
	muted:     lipgloss.Color("241"),
	good:      lipgloss.Color("78"),
	bad:       lipgloss.Color("203"),
	stderrTag: lipgloss.Color("214"),
}

var lightPalette = palette{
	title:     lipgloss.Color("161"),
	accent:    lipgloss.Color("29"),
	text:      lipgloss.Color("235"),
	muted:     lipgloss.Color("245"),
	good:      lipgloss.Color("28"),
	bad:       lipgloss.Color("160"),
	stderrTag: lipgloss.Color("130"),
}

type styles struct {
	title    lipgloss.Style
	cursor   lipgloss.Style
	item     lipgloss.Style
	desc     lipgloss.Style
	hint     lipgloss.Style
	label    lipgloss.Style
	log      lipgloss.Style
	stderr   lipgloss.Style
	errText  lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	notice   lipgloss.Style
	statsBox lipgloss.Style
	frame    lipgloss.Style
}

func newStyles(theme string) styles {
	p := darkPalette
	if theme == config.ThemeLight {
		p = lightPalette
	}
	return styles{
		title:    lipgloss.NewStyle().Foreground(p.title).Bold(true).MarginBottom(1),
		cursor:   lipgloss.NewStyle().Foreground(p.title).Bold(true),
		item:     lipgloss.NewStyle().Foreground(p.text),
		desc:     lipgloss.NewStyle().Foreground(p.muted),
		hint:     lipgloss.NewStyle().Foreground(p.muted).Faint(true),
		label:    lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		log:      lipgloss.NewStyle().Foreground(p.text),
		stderr:   lipgloss.NewStyle().Foreground(p.stderrTag),
		errText:  lipgloss.NewStyle().Foreground(p.bad),
		success:  lipgloss.NewStyle().Foreground(p.good).Bold(true),
		failure:  lipgloss.NewStyle().Foreground(p.bad).Bold(true),
		notice:   lipgloss.NewStyle().Foreground(p.stderrTag).Bold(true),
		statsBox: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.title).Padding(0, 1),
		frame:    lipgloss.NewStyle().Padding(1, 2),
	}
}
