package tui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/nkov/tuneup/internal/i18n"
	"github.com/nkov/tuneup/internal/op"
	"github.com/nkov/tuneup/internal/sysinfo"
)

func (m model) View() string {
	switch m.screen {
	case screenOperation:
		return m.st.frame.Render(m.operationView())
	case screenInfo:
		return m.st.frame.Render(m.infoView())
	default:
		return m.st.frame.Render(m.menuView())
	}
}

func (m model) menuView() string {
	var b strings.Builder

	b.WriteString(m.st.title.Render(m.tr.T(i18n.KeyAppTitle)) + "\n\n")

	for i, operation := range m.catalog {
		cursor := "  "
		title := m.st.item.Render(operation.Title)
		if i == m.cursor {
			cursor = m.st.cursor.Render("> ")
			title = m.st.cursor.Render(operation.Title)
		}
		b.WriteString(cursor + title + "\n")
		if i == m.cursor {
			b.WriteString("    " + m.st.desc.Render(operation.Description) + "\n")
		}
	}

	if m.handle != nil {
		b.WriteString("\n" + m.spinner.View() + m.st.desc.Render(
			fmt.Sprintf("%s (%s)", m.active.Title, m.stateLabel())) + "\n")
	}
	if m.notice != "" {
		b.WriteString("\n" + m.st.notice.Render(m.notice) + "\n")
	}

	b.WriteString("\n" + m.st.hint.Render(m.tr.T(i18n.KeyMenuHint)))
	return b.String()
}

func (m model) operationView() string {
	var b strings.Builder

	header := m.active.Title
	if m.handle != nil {
		header = m.spinner.View() + header
	}
	b.WriteString(m.st.title.Render(header) + "\n")
	b.WriteString(m.st.label.Render(m.stateLabel()) + "\n\n")

	b.WriteString(m.st.statsBox.Render(m.statsLine()) + "\n\n")

	b.WriteString(m.feedView.View() + "\n")

	b.WriteString("\n" + m.st.hint.Render(m.operationHints()))
	return b.String()
}

func (m model) renderTranscript() string {
	var b strings.Builder
	for _, line := range m.lines {
		switch {
		case line.isErr:
			b.WriteString(m.st.errText.Render("✗ "+line.text) + "\n")
		case line.stderr:
			b.WriteString(m.st.stderr.Render("! "+line.text) + "\n")
		default:
			b.WriteString(m.st.log.Render("  "+line.text) + "\n")
		}
	}
	return b.String()
}

func (m model) infoView() string {
	var b strings.Builder

	b.WriteString(m.st.title.Render(m.tr.T(i18n.KeyInfoTitle)) + "\n\n")
	b.WriteString(m.st.label.Render("host") + "  " + m.info.Hostname + "\n")
	b.WriteString(m.st.label.Render("os") + "    " + m.info.Platform + "\n")
	b.WriteString(m.st.label.Render("up") + "    " + sysinfo.FormatUptime(m.info.UptimeSeconds) + "\n")
	b.WriteString(m.st.label.Render("mem") + "   " + fmt.Sprintf("%s / %s",
		humanize.Bytes(m.info.MemUsed), humanize.Bytes(m.info.MemTotal)) + "\n")
	for _, d := range m.info.Disks {
		b.WriteString(m.st.label.Render("disk") + "  " + d.String() + "\n")
	}

	b.WriteString("\n" + m.st.hint.Render(m.tr.T(i18n.KeyHintBack)+" · "+m.tr.T(i18n.KeyHintQuit)))
	return b.String()
}

func (m model) statsLine() string {
	return fmt.Sprintf("%s %d · %s %d · %s %s",
		m.tr.T(i18n.KeyStatsDeleted), m.stats.Deleted,
		m.tr.T(i18n.KeyStatsFailed), m.stats.Failed,
		m.tr.T(i18n.KeyStatsFreed), humanize.Bytes(uint64(m.stats.BytesFreed)))
}

func (m model) stateLabel() string {
	switch m.opState {
	case op.StateStarting:
		return m.tr.T(i18n.KeyStateStarting)
	case op.StateRunning:
		return m.tr.T(i18n.KeyStateRunning)
	case op.StateCompleted:
		return m.st.success.Render(m.tr.T(i18n.KeyStateDone))
	case op.StateFailed:
		return m.st.failure.Render(m.tr.T(i18n.KeyStateFailed))
	default:
		return m.tr.T(i18n.KeyStateIdle)
	}
}

func (m model) operationHints() string {
	hints := []string{}
	if m.handle != nil && !m.cancelled {
		hints = append(hints, m.tr.T(i18n.KeyHintCancel))
	}
	hints = append(hints, m.tr.T(i18n.KeyHintBack), m.tr.T(i18n.KeyHintQuit))
	return strings.Join(hints, " · ")
}
