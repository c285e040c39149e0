// pattern: Imperative Shell

package host

import (
	"context"
	"fmt"
	"sync"
	"time"

	"planeui/internal/config"
	"planeui/internal/events"
	"planeui/internal/logging"
	"planeui/internal/page"
	"planeui/internal/render"
	"planeui/internal/session"
	"planeui/internal/web"
)

// SessionHook is called on the tick goroutine right after a viewer's
// session opens, with the page manager bound to it. The embedding app
// builds its UI here.
type SessionHook func(viewer string, pages *page.Manager) error

// viewerState is everything the host tracks per connected viewer.
type viewerState struct {
	pages     *page.Manager
	input     session.Input
	haveInput bool
}

// Host runs the fixed-cadence tick loop. All engine state is mutated only
// here; the web bridge and config watcher feed it through Notify.
type Host struct {
	cfg      config.Config
	sessions *session.Manager
	backend  render.Backend
	theme    *render.Theme
	logs     logging.LoggerProvider
	logger   *logging.ScopedLogger
	onOpen   SessionHook

	inbox   chan any
	viewers map[string]*viewerState

	mu       sync.RWMutex
	snapshot []web.SessionInfo

	// onSessionsChanged wakes external observers (SSE). May be nil.
	onSessionsChanged func()

	// emitFn forwards UI-facing messages (session closed and the like) to
	// the debug TUI. May be nil.
	emitFn func(any)
}

// New creates a host around a session registry.
func New(cfg config.Config, backend render.Backend, logs logging.LoggerProvider, onOpen SessionHook) *Host {
	sessCfg := session.Config{
		MaxDistance:   cfg.Session.MaxDistance,
		TimeoutTicks:  cfg.Session.TimeoutTicks,
		CooldownTicks: cfg.Session.CooldownTicks,
	}
	return &Host{
		cfg:      cfg,
		sessions: session.NewManager(sessCfg, backend, logs),
		backend:  backend,
		theme:    render.NewTheme(cfg.Theme),
		logs:     logs,
		logger:   logs.For("host"),
		onOpen:   onOpen,
		inbox:    make(chan any, 256),
		viewers:  make(map[string]*viewerState),
	}
}

// SetOnSessionsChanged registers a callback fired after session open and
// close. Called from the tick goroutine.
func (h *Host) SetOnSessionsChanged(fn func()) {
	h.onSessionsChanged = fn
}

// SetEmitter registers a sink for UI-facing messages, typically the
// bubbletea program's Send. Called from the tick goroutine.
func (h *Host) SetEmitter(fn func(any)) {
	h.emitFn = fn
}

func (h *Host) emit(msg any) {
	if h.emitFn != nil {
		h.emitFn(msg)
	}
}

// Notify queues a message for the tick loop. Safe to call from any
// goroutine; when the inbox is full the message is dropped rather than
// blocking the caller.
func (h *Host) Notify(msg any) {
	select {
	case h.inbox <- msg:
	default:
		h.logger.Warn("inbox full, dropping message")
	}
}

// Sessions returns the latest per-tick session snapshot. Safe to call
// from any goroutine.
func (h *Host) Sessions() []web.SessionInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]web.SessionInfo, len(h.snapshot))
	copy(out, h.snapshot)
	return out
}

// Run ticks until the context is cancelled, then tears every session
// down.
func (h *Host) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(h.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.logger.Info("tick loop started", "tick_rate", h.cfg.TickRate)

	for {
		select {
		case <-ctx.Done():
			h.sessions.DestroyAll()
			h.refreshSnapshot()
			h.logger.Info("tick loop stopped")
			return ctx.Err()
		case <-ticker.C:
			h.drainInbox()
			h.tick()
		}
	}
}

// drainInbox applies every queued message before the tick proper, so one
// tick sees a consistent latest state.
func (h *Host) drainInbox() {
	for {
		select {
		case msg := <-h.inbox:
			h.handle(msg)
		default:
			return
		}
	}
}

func (h *Host) handle(msg any) {
	switch m := msg.(type) {
	case events.ViewerJoinMsg:
		h.openSession(m)
	case events.ViewerPoseMsg:
		if v, ok := h.viewers[m.Viewer]; ok {
			v.input = session.Input{Eye: m.Eye, Look: m.Look}
			v.haveInput = true
		}
	case events.ViewerClickMsg:
		if s, ok := h.sessions.Get(m.Viewer); ok {
			s.DispatchClick(m.Primary)
		}
	case events.ViewerLeaveMsg:
		h.sessions.Close(m.Viewer)
		h.emit(events.SessionClosedMsg{Viewer: m.Viewer, Reason: "closed"})
	case config.Config:
		h.applyConfig(m)
	default:
		h.logger.Warn("unhandled message", "type", fmt.Sprintf("%T", msg))
	}
}

func (h *Host) openSession(m events.ViewerJoinMsg) {
	s := h.sessions.Create(m.Viewer, m.Anchor, m.Facing)

	pageCfg := page.Config{
		Gap:            h.cfg.Page.Gap,
		TabStripHeight: h.cfg.Page.TabStripHeight,
		MinPageSize:    h.cfg.Page.MinPageSize,
		DefaultBounds: page.Bounds{
			X: -h.cfg.Page.DefaultWidth / 2,
			Y: h.cfg.Page.DefaultHeight / 2,
			W: h.cfg.Page.DefaultWidth,
			H: h.cfg.Page.DefaultHeight,
		},
	}
	pages := page.NewManager(s, pageCfg, h.theme, h.logs.For("page."+m.Viewer))
	h.viewers[m.Viewer] = &viewerState{pages: pages}

	if h.onOpen != nil {
		if err := h.onOpen(m.Viewer, pages); err != nil {
			h.logger.Error("session hook failed", "viewer", m.Viewer, "error", err)
		}
	}
	if h.onSessionsChanged != nil {
		h.onSessionsChanged()
	}
}

// tick advances every live session with its latest pose, then the drag
// machinery, and finally refreshes the inspection snapshot.
func (h *Host) tick() {
	changed := false
	for viewer, v := range h.viewers {
		s, ok := h.sessions.Get(viewer)
		if !ok || s.Destroyed() {
			delete(h.viewers, viewer)
			changed = true
			continue
		}
		if !v.haveInput {
			continue
		}
		if !s.Tick(v.input) {
			delete(h.viewers, viewer)
			changed = true
			h.emit(events.SessionClosedMsg{Viewer: viewer, Reason: "watchdog"})
			continue
		}
		v.pages.Tick(v.input.Eye, v.input.Look)
	}

	h.refreshSnapshot()
	if changed && h.onSessionsChanged != nil {
		h.onSessionsChanged()
	}
}

func (h *Host) applyConfig(cfg config.Config) {
	h.cfg.Session = cfg.Session
	h.cfg.Page = cfg.Page
	h.sessions.SetConfig(session.Config{
		MaxDistance:   cfg.Session.MaxDistance,
		TimeoutTicks:  cfg.Session.TimeoutTicks,
		CooldownTicks: cfg.Session.CooldownTicks,
	})
	h.logger.Info("config reloaded")
}

func (h *Host) refreshSnapshot() {
	snap := make([]web.SessionInfo, 0, len(h.viewers))
	for viewer, v := range h.viewers {
		s, ok := h.sessions.Get(viewer)
		if !ok || s.Destroyed() {
			continue
		}
		info := web.SessionInfo{Viewer: viewer, AgeTicks: s.Age()}
		for _, p := range v.pages.Pages() {
			if !p.Visible() {
				continue
			}
			b := p.Bounds()
			info.Pages = append(info.Pages, web.PageInfo{
				Title: p.Title, X: b.X, Y: b.Y, W: b.W, H: b.H,
			})
		}
		snap = append(snap, info)
	}
	h.mu.Lock()
	h.snapshot = snap
	h.mu.Unlock()
}
