package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"planeui/internal/logging"
	"planeui/internal/web"
)

const logBufferSize = 500

// SessionSource supplies the live session snapshot. The host satisfies
// this.
type SessionSource interface {
	Sessions() []web.SessionInfo
}

// Model is the debug viewer state: a session list on top, an optional log
// tail below.
type Model struct {
	width  int
	height int
	styles *Styles
	layout Layout

	source      SessionSource
	logEntries  <-chan logging.LogEntry
	sessionList list.Model
	logLines    []string
	logsOpen    bool
	bridgeURL   string
}

// NewModel creates the debug viewer model. logEntries may be nil when log
// capture is not configured.
func NewModel(themeName string, source SessionSource, logEntries <-chan logging.LogEntry) Model {
	styles := NewStyles(themeName)

	delegate := newSessionDelegate(styles)
	sessionList := list.New([]list.Item{}, delegate, 0, 0)
	sessionList.SetShowTitle(false)
	sessionList.SetShowStatusBar(false)
	sessionList.SetFilteringEnabled(false)
	sessionList.SetShowHelp(false)

	return Model{
		styles:      styles,
		source:      source,
		logEntries:  logEntries,
		sessionList: sessionList,
	}
}

// Init returns the initial commands: the refresh tick and the log pump.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tick(), m.pumpLogs())
}

// tick drives the periodic session list refresh.
func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{time: t}
	})
}

// pumpLogs blocks on the log channel and re-arms after each entry.
func (m Model) pumpLogs() tea.Cmd {
	if m.logEntries == nil {
		return nil
	}
	ch := m.logEntries
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return nil
		}
		return logEntryMsg{entry: entry}
	}
}

type tickMsg struct{ time time.Time }

type logEntryMsg struct{ entry logging.LogEntry }
