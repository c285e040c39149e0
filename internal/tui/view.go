// pattern: Imperative Shell

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// View renders the debug viewer.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	var b strings.Builder

	b.WriteString(m.styles.TitleStyle().Render("planeui"))
	b.WriteString("\n")
	if m.bridgeURL != "" {
		b.WriteString(m.styles.SubtitleStyle().Render("bridge " + m.bridgeURL))
	} else {
		b.WriteString(m.styles.SubtitleStyle().Render("bridge starting..."))
	}
	b.WriteString("\n")

	if len(m.sessionList.Items()) == 0 {
		b.WriteString(m.styles.InfoStyle().Render("no viewers connected"))
		b.WriteString("\n")
	} else {
		content := m.sessionList.View()
		if m.layout.Plane.Width > 0 {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.renderPlane())
		}
		b.WriteString(content)
		b.WriteString("\n")
	}

	if m.logsOpen {
		b.WriteString(m.styles.HelpStyle().Render(strings.Repeat("─", max(m.width, 1))))
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
		b.WriteString("\n")
	}

	b.WriteString(m.statusBar())
	return b.String()
}

// renderLogs truncates each buffered line to the terminal width so long
// structured entries never wrap and break the panel.
func (m Model) renderLogs() string {
	if len(m.logLines) == 0 {
		return m.styles.InfoStyle().Render("no log entries yet")
	}

	visible := m.logLines
	if m.layout.Logs.Height > 0 && len(visible) > m.layout.Logs.Height {
		visible = visible[len(visible)-m.layout.Logs.Height:]
	}

	lines := make([]string, len(visible))
	for i, line := range visible {
		lines[i] = ansi.Truncate(line, max(m.width-2, 1), "…")
	}
	return strings.Join(lines, "\n")
}

// renderPlane projects the selected session's visible pages as a box map.
func (m Model) renderPlane() string {
	item, ok := m.sessionList.SelectedItem().(sessionItem)
	if !ok {
		return ""
	}
	grid := RenderPlaneMap(item.info.Pages, m.layout.Plane.Width-2, m.layout.Plane.Height)
	if grid == "" {
		return m.styles.HelpStyle().Render("  no visible pages")
	}
	return m.styles.InfoStyle().Render(grid)
}

func (m Model) statusBar() string {
	help := "q quit · l logs"
	count := fmt.Sprintf("%d viewer(s)", len(m.sessionList.Items()))
	return m.styles.HelpStyle().Render(count + "  " + help)
}
