// pattern: Imperative Shell

package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/coder/websocket"

	"planeui/internal/events"
	"planeui/internal/geom"
)

// InputMessage is one frame of the viewer input protocol. The host client
// sends a join first, then pose samples every tick and clicks as they
// happen.
type InputMessage struct {
	Type    string `json:"type"` // "join", "pose", "click"
	Anchor  vec3   `json:"anchor,omitempty"`
	Facing  vec3   `json:"facing,omitempty"`
	Eye     vec3   `json:"eye,omitempty"`
	Look    vec3   `json:"look,omitempty"`
	Primary bool   `json:"primary,omitempty"`
}

type vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (v vec3) geom() geom.Vec3 {
	return geom.Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// HandleInput upgrades to websocket and streams one viewer's input into
// the host. The connection is the viewer's liveness signal: closing it
// sends a leave message and the host tears the session down.
func (s *Server) HandleInput(w http.ResponseWriter, r *http.Request) {
	viewer := r.URL.Query().Get("viewer")
	if viewer == "" {
		http.Error(w, "viewer query parameter required", http.StatusBadRequest)
		return
	}

	// Upgrade to websocket — IMPORTANT: do NOT use r.Context() after this.
	// Restrict to localhost origins to prevent cross-origin WebSocket attacks.
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"127.0.0.1:*", "localhost:*"},
	})
	if err != nil {
		s.logger.Error("websocket accept failed", "error", err)
		return
	}
	defer func() { _ = conn.CloseNow() }()
	conn.SetReadLimit(1 << 16)

	s.logger.Info("viewer connected", "viewer", viewer)

	ctx := context.Background()
	for {
		msgType, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		if msgType != websocket.MessageText {
			continue
		}

		var msg InputMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn("bad input frame", "viewer", viewer, "error", err)
			continue
		}

		switch msg.Type {
		case "join":
			s.notify(events.ViewerJoinMsg{
				Viewer: viewer,
				Anchor: msg.Anchor.geom(),
				Facing: msg.Facing.geom(),
			})
		case "pose":
			s.notify(events.ViewerPoseMsg{
				Viewer: viewer,
				Eye:    msg.Eye.geom(),
				Look:   msg.Look.geom(),
			})
		case "click":
			s.notify(events.ViewerClickMsg{
				Viewer:  viewer,
				Primary: msg.Primary,
			})
		default:
			s.logger.Warn("unknown input frame type", "viewer", viewer, "type", msg.Type)
		}
	}

	s.notify(events.ViewerLeaveMsg{Viewer: viewer})
	s.logger.Info("viewer disconnected", "viewer", viewer)

	_ = conn.Close(websocket.StatusNormalClosure, "input closed")
}
