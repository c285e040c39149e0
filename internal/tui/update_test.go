package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"planeui/internal/events"
	"planeui/internal/logging"
	"planeui/internal/web"
)

type fakeSource struct {
	infos []web.SessionInfo
}

func (f *fakeSource) Sessions() []web.SessionInfo {
	return f.infos
}

func sized(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func TestWindowSizeAppliesLayout(t *testing.T) {
	m := sized(NewModel("mocha", &fakeSource{}, nil))
	if m.width != 80 || m.height != 24 {
		t.Errorf("size = %dx%d", m.width, m.height)
	}
	if m.layout.Sessions.Height == 0 {
		t.Error("layout should be computed")
	}
}

func TestQuitKeys(t *testing.T) {
	m := sized(NewModel("mocha", &fakeSource{}, nil))

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd == nil {
		t.Error("q should produce a quit command")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Error("ctrl+c should produce a quit command")
	}
}

func TestLogToggle(t *testing.T) {
	m := sized(NewModel("mocha", &fakeSource{}, nil))

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m = updated.(Model)
	if !m.logsOpen {
		t.Error("l should open the log panel")
	}
	if m.layout.Logs.Height == 0 {
		t.Error("open panel should get a region")
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")})
	m = updated.(Model)
	if m.logsOpen {
		t.Error("second l should close the log panel")
	}
}

func TestTickRefreshesSessions(t *testing.T) {
	src := &fakeSource{infos: []web.SessionInfo{{Viewer: "alice", AgeTicks: 7}}}
	m := sized(NewModel("mocha", src, nil))

	updated, cmd := m.Update(tickMsg{})
	m = updated.(Model)
	if cmd == nil {
		t.Error("tick should re-arm")
	}
	if len(m.sessionList.Items()) != 1 {
		t.Fatalf("%d items, want 1", len(m.sessionList.Items()))
	}
	if m.sessionList.Items()[0].(sessionItem).info.Viewer != "alice" {
		t.Error("item should carry the snapshot")
	}
}

func TestLogEntryAppends(t *testing.T) {
	m := sized(NewModel("mocha", &fakeSource{}, make(chan logging.LogEntry)))

	updated, cmd := m.Update(logEntryMsg{entry: logging.LogEntry{Scope: "host", Message: "tick loop started"}})
	m = updated.(Model)
	if cmd == nil {
		t.Error("log entry should re-arm the pump")
	}
	if len(m.logLines) != 1 || !strings.Contains(m.logLines[0], "tick loop started") {
		t.Errorf("logLines = %v", m.logLines)
	}
}

func TestLogBufferIsBounded(t *testing.T) {
	m := sized(NewModel("mocha", &fakeSource{}, nil))
	for i := 0; i < logBufferSize+50; i++ {
		m.appendLog("line")
	}
	if len(m.logLines) != logBufferSize {
		t.Errorf("buffer = %d lines, want %d", len(m.logLines), logBufferSize)
	}
}

func TestBridgeURLMessage(t *testing.T) {
	m := sized(NewModel("mocha", &fakeSource{}, nil))
	updated, _ := m.Update(events.WebListenURLMsg{URL: "http://127.0.0.1:9000"})
	m = updated.(Model)

	if !strings.Contains(m.View(), "http://127.0.0.1:9000") {
		t.Error("view should show the bridge URL")
	}
}

func TestViewRendersWithoutSessions(t *testing.T) {
	m := sized(NewModel("mocha", &fakeSource{}, nil))
	view := m.View()
	if !strings.Contains(view, "no viewers connected") {
		t.Error("empty state should be shown")
	}
	if !strings.Contains(view, "planeui") {
		t.Error("title should be shown")
	}
}
