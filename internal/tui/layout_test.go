package tui

import "testing"

func TestComputeLayoutClosedLogs(t *testing.T) {
	l := ComputeLayout(80, 24, false)

	if l.Header.Height != headerHeight {
		t.Errorf("header height = %d", l.Header.Height)
	}
	if l.Logs.Height != 0 || l.Separator.Height != 0 {
		t.Error("log regions should be empty when closed")
	}
	want := 24 - headerHeight - statusBarHeight - marginHeight
	if l.Sessions.Height != want {
		t.Errorf("sessions height = %d, want %d", l.Sessions.Height, want)
	}
	if l.StatusBar.Y != l.Sessions.Y+l.Sessions.Height {
		t.Error("status bar should follow the session list")
	}
}

func TestComputeLayoutOpenLogs(t *testing.T) {
	l := ComputeLayout(80, 30, true)

	available := 30 - headerHeight - statusBarHeight - marginHeight
	if l.Sessions.Height != int(float64(available)*0.4) {
		t.Errorf("sessions height = %d", l.Sessions.Height)
	}
	if l.Logs.Height != available-l.Sessions.Height-separatorHeight {
		t.Errorf("logs height = %d", l.Logs.Height)
	}
	if l.Separator.Y != l.Sessions.Y+l.Sessions.Height {
		t.Error("separator should sit between sessions and logs")
	}
	if l.Logs.Y != l.Separator.Y+separatorHeight {
		t.Error("logs should follow the separator")
	}
}

func TestComputeLayoutPlanePanel(t *testing.T) {
	l := ComputeLayout(80, 24, false)

	if l.Sessions.Width != 32 {
		t.Errorf("sessions width = %d, want 32", l.Sessions.Width)
	}
	if l.Plane.Width != 48 || l.Plane.X != 32 {
		t.Errorf("plane region = %+v", l.Plane)
	}
	if l.Plane.Height != l.Sessions.Height {
		t.Error("plane and sessions should share the content band")
	}

	narrow := ComputeLayout(50, 24, false)
	if narrow.Plane.Width != 0 {
		t.Error("narrow terminal should drop the plane panel")
	}
	if narrow.Sessions.Width != 50 {
		t.Errorf("narrow sessions width = %d, want full width", narrow.Sessions.Width)
	}
}

func TestComputeLayoutTinyTerminal(t *testing.T) {
	l := ComputeLayout(20, 3, false)
	if l.Sessions.Height < 4 {
		t.Errorf("sessions height = %d, want floor of 4", l.Sessions.Height)
	}
}

func TestSessionListHeightFloor(t *testing.T) {
	l := Layout{Sessions: Region{Height: 2}}
	if got := l.SessionListHeight(); got != 1 {
		t.Errorf("SessionListHeight() = %d, want 1", got)
	}
}
