// pattern: Imperative Shell

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"planeui/internal/events"
)

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "l":
			m.logsOpen = !m.logsOpen
			m.applyLayout()
			return m, nil
		}

	case tickMsg:
		m.refreshSessions()
		return m, m.tick()

	case logEntryMsg:
		m.appendLog(msg.entry.String())
		return m, m.pumpLogs()

	case events.WebListenURLMsg:
		m.bridgeURL = msg.URL
		return m, nil

	case events.SessionClosedMsg:
		m.refreshSessions()
		return m, nil
	}

	var cmd tea.Cmd
	m.sessionList, cmd = m.sessionList.Update(msg)
	return m, cmd
}

// applyLayout recomputes regions and resizes the embedded components.
func (m *Model) applyLayout() {
	m.layout = ComputeLayout(m.width, m.height, m.logsOpen)
	m.sessionList.SetSize(m.layout.Sessions.Width, m.layout.SessionListHeight())
}

// refreshSessions pulls a fresh snapshot into the list.
func (m *Model) refreshSessions() {
	if m.source == nil {
		return
	}
	m.sessionList.SetItems(toListItems(m.source.Sessions()))
}

// appendLog adds one formatted line to the bounded log buffer.
func (m *Model) appendLog(line string) {
	m.logLines = append(m.logLines, line)
	if len(m.logLines) > logBufferSize {
		m.logLines = m.logLines[len(m.logLines)-logBufferSize:]
	}
}
