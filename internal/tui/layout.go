// pattern: Functional Core

package tui

// Region defines a rectangular area within the terminal.
type Region struct {
	X      int // Left position (0-indexed)
	Y      int // Top position (0-indexed)
	Width  int // Width in cells
	Height int // Height in lines
}

// Layout holds computed regions for all UI components.
type Layout struct {
	Header    Region // App title + bridge URL (2 lines)
	Sessions  Region // Session list (left 40% of the content band)
	Plane     Region // Plane projection of the selected session (right side)
	Separator Region // Separator between sessions and logs (1 line when open)
	Logs      Region // Log tail when open (60% of content area)
	StatusBar Region // Status bar (1 line)
}

// Fixed heights for chrome elements
const (
	headerHeight    = 2
	statusBarHeight = 1
	marginHeight    = 2
	separatorHeight = 1

	// minPlaneWidth is the narrowest terminal that still gets the plane
	// panel next to the session list.
	minPlaneWidth = 60
)

// ComputeLayout calculates regions based on terminal dimensions. The
// content band puts the session list on the left and the plane projection
// on the right; narrow terminals drop the projection. When logPanelOpen is
// true, the content area splits 40/60 vertically between that band and the
// log tail.
func ComputeLayout(width, height int, logPanelOpen bool) Layout {
	fixedHeight := headerHeight + statusBarHeight + marginHeight
	availableHeight := height - fixedHeight

	if availableHeight < 4 {
		availableHeight = 4
	}

	var sessionsHeight, logsHeight int
	if logPanelOpen {
		sessionsHeight = int(float64(availableHeight) * 0.4)
		logsHeight = availableHeight - sessionsHeight - separatorHeight
	} else {
		sessionsHeight = availableHeight
		logsHeight = 0
	}

	y := 0

	header := Region{X: 0, Y: y, Width: width, Height: headerHeight}
	y += headerHeight

	sessionsWidth := width
	var plane Region
	if width >= minPlaneWidth {
		sessionsWidth = int(float64(width) * 0.4)
		plane = Region{X: sessionsWidth, Y: y, Width: width - sessionsWidth, Height: sessionsHeight}
	}
	sessions := Region{X: 0, Y: y, Width: sessionsWidth, Height: sessionsHeight}
	y += sessionsHeight

	var separator, logs Region
	if logPanelOpen {
		separator = Region{X: 0, Y: y, Width: width, Height: separatorHeight}
		y += separatorHeight

		logs = Region{X: 0, Y: y, Width: width, Height: logsHeight}
		y += logsHeight
	}

	statusBar := Region{X: 0, Y: y, Width: width, Height: statusBarHeight}

	return Layout{
		Header:    header,
		Sessions:  sessions,
		Plane:     plane,
		Separator: separator,
		Logs:      logs,
		StatusBar: statusBar,
	}
}

// SessionListHeight returns the height available for the session list
// after accounting for list chrome.
func (l Layout) SessionListHeight() int {
	h := l.Sessions.Height - 2
	if h < 1 {
		h = 1
	}
	return h
}
