package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nkov/tuneup/internal/config"
	"github.com/nkov/tuneup/internal/i18n"
	"github.com/nkov/tuneup/internal/maint"
	"github.com/nkov/tuneup/internal/op"
	"github.com/nkov/tuneup/internal/sysinfo"
)

type screen int

const (
	screenMenu screen = iota
	screenOperation
	screenInfo
)

// progressSource is the slice of op.Handle the model consumes. An interface
// so tests can drive the drain loop with a scripted feed.
type progressSource interface {
	TryNext() (op.Message, bool)
	Cancel()
	Close()
}

type logLine struct {
	text   string
	stderr bool
	isErr  bool
}

// maxLogLines bounds the in-memory transcript; the file log keeps the rest.
const maxLogLines = 500

type model struct {
	catalog []maint.Operation
	tr      i18n.Catalog
	st      styles
	log     zerolog.Logger

	tickInterval time.Duration
	pollBudget   int
	opTimeout    time.Duration

	screen screen
	cursor int
	width  int
	height int
	notice string

	// Single operation slot. handle is nil when no worker is alive; the
	// terminal state and transcript of the last run stay visible after it
	// is released.
	handle    progressSource
	active    maint.Operation
	opState   op.State
	stats     op.Stats
	lines     []logLine
	cancelled bool

	info     sysinfo.Info
	spinner  spinner.Model
	feedView viewport.Model

	// launch is swapped out in tests.
	launch func(maint.Operation) progressSource
}

func newModel(cfg config.Config, catalog []maint.Operation, log zerolog.Logger) model {
	st := newStyles(cfg.UI.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.cursor

	timeout := time.Duration(cfg.Ops.CommandTimeoutSeconds) * time.Second

	return model{
		catalog:      catalog,
		tr:           i18n.New(i18n.Language(cfg.UI.Language)),
		st:           st,
		log:          log,
		tickInterval: time.Duration(cfg.UI.TickIntervalMS) * time.Millisecond,
		pollBudget:   cfg.UI.PollBudget,
		opTimeout:    timeout,
		screen:       screenMenu,
		opState:      op.StateIdle,
		spinner:      sp,
		feedView:     viewport.New(80, 16),
		launch: func(operation maint.Operation) progressSource {
			return op.Start(operation.Script, op.Options{Timeout: timeout})
		},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m *model) appendLine(line logLine) {
	m.lines = append(m.lines, line)
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
}

// refreshFeedView re-renders the transcript into the viewport and keeps it
// pinned to the bottom unless the user scrolled away.
func (m *model) refreshFeedView() {
	pinned := m.feedView.AtBottom()
	m.feedView.SetContent(m.renderTranscript())
	if pinned {
		m.feedView.GotoBottom()
	}
}

func (m *model) releaseHandle() {
	if m.handle == nil {
		return
	}
	m.handle.Close()
	m.handle = nil
}
