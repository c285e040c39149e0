// pattern: Imperative Shell

package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"planeui/internal/web"
)

// sessionItem wraps a session snapshot for display in a list.
type sessionItem struct {
	info web.SessionInfo
}

// Title returns the viewer name for display.
func (i sessionItem) Title() string {
	return i.info.Viewer
}

// Description returns session details for display.
func (i sessionItem) Description() string {
	return fmt.Sprintf("age %d ticks", i.info.AgeTicks)
}

// FilterValue returns the value to filter on.
func (i sessionItem) FilterValue() string {
	return i.info.Viewer
}

// sessionDelegate handles rendering of session items in a list.
type sessionDelegate struct {
	styles *Styles
}

func newSessionDelegate(styles *Styles) sessionDelegate {
	return sessionDelegate{styles: styles}
}

// Height returns the height of a single item.
func (d sessionDelegate) Height() int {
	return 2
}

// Spacing returns the spacing between items.
func (d sessionDelegate) Spacing() int {
	return 1
}

// Update handles item-specific updates.
func (d sessionDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

// Render renders a single session item.
func (d sessionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	si, ok := item.(sessionItem)
	if !ok {
		return
	}

	isSelected := index == m.Index()

	titleStyle := d.styles.ItemStyle()
	descStyle := d.styles.ItemDescStyle()
	indicator := "  "
	if isSelected {
		titleStyle = d.styles.SelectedStyle()
		descStyle = d.styles.SelectedDescStyle()
		indicator = d.styles.SelectedStyle().Render("▸ ")
	}

	liveDot := d.styles.LiveStyle().Render("●")

	title := titleStyle.Render(si.info.Viewer)
	desc := descStyle.Render(si.Description())

	_, _ = fmt.Fprintf(w, "%s%s %s\n%s%s", indicator, liveDot, title, "    ", desc)
}

// toListItems converts session snapshots to list items.
func toListItems(infos []web.SessionInfo) []list.Item {
	items := make([]list.Item, len(infos))
	for i, info := range infos {
		items[i] = sessionItem{info: info}
	}
	return items
}
