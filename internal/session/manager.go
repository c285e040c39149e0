// pattern: Imperative Shell

package session

import (
	"planeui/internal/geom"
	"planeui/internal/logging"
	"planeui/internal/render"
)

// Manager owns the viewer-to-session registry. At most one session is live
// per viewer; creating a new one force-destroys the previous. The manager
// is owned and passed by the host rather than living in package state, so
// teardown on disconnect stays explicit.
type Manager struct {
	cfg      Config
	backend  render.Backend
	logs     logging.LoggerProvider
	sessions map[string]*Session
}

// NewManager creates an empty registry.
func NewManager(cfg Config, backend render.Backend, logs logging.LoggerProvider) *Manager {
	return &Manager{
		cfg:      cfg,
		backend:  backend,
		logs:     logs,
		sessions: make(map[string]*Session),
	}
}

// SetConfig replaces the tuning values applied to sessions created from
// now on. Live sessions keep the config they were created with.
func (m *Manager) SetConfig(cfg Config) {
	m.cfg = cfg
}

// Create opens a session for a viewer, force-destroying any previous one.
func (m *Manager) Create(viewer string, anchor, facing geom.Vec3) *Session {
	if prev, ok := m.sessions[viewer]; ok {
		prev.Destroy("replaced")
	}

	logger := m.logs.For("session." + viewer)
	s := New(viewer, anchor, facing, m.cfg, m.backend, logger)
	s.onDestroy = func(string) {
		// Only unregister if this session still owns the slot; a
		// replacement may already have taken it.
		if m.sessions[viewer] == s {
			delete(m.sessions, viewer)
		}
	}
	m.sessions[viewer] = s
	logger.Info("session created", "viewer", viewer, "anchor", anchor)
	return s
}

// Get returns the live session for a viewer.
func (m *Manager) Get(viewer string) (*Session, bool) {
	s, ok := m.sessions[viewer]
	return s, ok
}

// Close explicitly destroys a viewer's session.
func (m *Manager) Close(viewer string) {
	if s, ok := m.sessions[viewer]; ok {
		s.Destroy("closed")
	}
}

// Viewers lists viewers with live sessions.
func (m *Manager) Viewers() []string {
	out := make([]string, 0, len(m.sessions))
	for v := range m.sessions {
		out = append(out, v)
	}
	return out
}

// DestroyAll tears down every live session, e.g. on host shutdown.
func (m *Manager) DestroyAll() {
	for _, s := range m.sessions {
		s.Destroy("shutdown")
	}
}
