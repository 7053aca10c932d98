package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nkov/tuneup/internal/i18n"
	"github.com/nkov/tuneup/internal/op"
	"github.com/nkov/tuneup/internal/sysinfo"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.feedView.Width = msg.Width - 6
		// Leave room for the header, stats box and hint line.
		m.feedView.Height = msg.Height - 12
		if m.feedView.Height < 5 {
			m.feedView.Height = 5
		}
		m.refreshFeedView()
		return m, nil

	case tickMsg:
		m.drainFeed()
		if m.handle != nil {
			return m, m.tick()
		}
		return m, nil

	case noticeExpiredMsg:
		m.notice = ""
		return m, nil

	case spinner.TickMsg:
		if m.handle != nil {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.releaseHandle()
		return m, tea.Quit
	}

	switch m.screen {
	case screenMenu:
		return m.handleMenuKey(msg)
	case screenOperation:
		return m.handleOperationKey(msg)
	case screenInfo:
		if msg.String() == "esc" || msg.String() == "i" {
			m.screen = screenMenu
		}
		return m, nil
	}
	return m, nil
}

func (m model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.catalog)-1 {
			m.cursor++
		}
	case "enter":
		return m.launchSelected()
	case "i":
		m.info = sysinfo.Collect()
		m.screen = screenInfo
	}
	return m, nil
}

func (m model) handleOperationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "c":
		if m.handle != nil && !m.cancelled {
			m.cancelled = true
			m.handle.Cancel()
			m.log.Info().Str("kind", m.active.Kind).Msg("cancellation requested")
		}
	case "esc":
		// Leaving the transcript view does not abandon a live worker; the
		// drain keeps running and the menu shows the slot as busy.
		m.screen = screenMenu
	case "enter":
		if m.handle == nil && m.opState.Terminal() {
			m.screen = screenMenu
		}
	default:
		var cmd tea.Cmd
		m.feedView, cmd = m.feedView.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) launchSelected() (tea.Model, tea.Cmd) {
	if m.handle != nil {
		m.notice = m.tr.T(i18n.KeyBusyNotice)
		return m, m.expireNotice()
	}
	if len(m.catalog) == 0 {
		return m, nil
	}

	operation := m.catalog[m.cursor]
	m.active = operation
	m.opState = op.StateIdle
	m.stats = op.Stats{}
	m.lines = nil
	m.cancelled = false
	m.refreshFeedView()
	m.screen = screenOperation
	m.handle = m.launch(operation)
	m.log.Info().Str("kind", operation.Kind).Msg("operation launched")

	return m, tea.Batch(m.tick(), m.spinner.Tick)
}

// drainFeed moves ready progress messages into the model, at most pollBudget
// per tick so a chatty worker cannot starve input handling.
func (m *model) drainFeed() {
	if m.handle == nil {
		return
	}
	defer m.refreshFeedView()
	for i := 0; i < m.pollBudget; i++ {
		msg, ok := m.handle.TryNext()
		if !ok {
			return
		}
		switch msg := msg.(type) {
		case op.LogMsg:
			m.appendLine(logLine{text: msg.Text, stderr: msg.Stderr})
			if msg.Stderr {
				m.log.Warn().Str("kind", m.active.Kind).Msg(msg.Text)
			} else {
				m.log.Debug().Str("kind", m.active.Kind).Msg(msg.Text)
			}
		case op.StateMsg:
			m.opState = msg.State
		case op.StatsMsg:
			m.stats = msg.Stats
		case op.ErrorMsg:
			m.appendLine(logLine{text: msg.Text, isErr: true})
			m.log.Error().Str("kind", m.active.Kind).Msg(msg.Text)
		case op.DoneMsg:
			m.log.Info().
				Str("kind", m.active.Kind).
				Str("state", m.opState.String()).
				Int("deleted", m.stats.Deleted).
				Int("failed", m.stats.Failed).
				Int64("bytes_freed", m.stats.BytesFreed).
				Msg("operation finished")
			m.releaseHandle()
			return
		}
	}
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) expireNotice() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return noticeExpiredMsg{}
	})
}
