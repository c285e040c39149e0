// package events contains message types shared between the web bridge,
// the host loop and the tui.
package events

import "planeui/internal/geom"

// ViewerJoinMsg is sent when a viewer connects to the input bridge. The
// host opens a session anchored at the given point.
type ViewerJoinMsg struct {
	Viewer string
	Anchor geom.Vec3
	Facing geom.Vec3
}

// ViewerPoseMsg carries one pose sample for a connected viewer.
type ViewerPoseMsg struct {
	Viewer string
	Eye    geom.Vec3
	Look   geom.Vec3
}

// ViewerClickMsg carries a discrete click event.
type ViewerClickMsg struct {
	Viewer  string
	Primary bool
}

// ViewerLeaveMsg is sent when a viewer's connection closes.
type ViewerLeaveMsg struct {
	Viewer string
}

// SessionClosedMsg is sent by the host after a session is torn down.
type SessionClosedMsg struct {
	Viewer string
	Reason string
}

// WebListenURLMsg is sent when the input bridge starts listening.
type WebListenURLMsg struct{ URL string }

// ConfigReloadedMsg is sent after a config hot reload is applied.
type ConfigReloadedMsg struct{}
