// pattern: Imperative Shell

package session

import (
	"github.com/google/uuid"

	"planeui/internal/element"
	"planeui/internal/geom"
	"planeui/internal/logging"
	"planeui/internal/render"
)

// Config holds session tuning values.
type Config struct {
	// MaxDistance bounds ray reach and the watchdog's viewer-to-anchor
	// distance check.
	MaxDistance float64

	// TimeoutTicks is the session lifetime budget; 0 disables the timeout.
	TimeoutTicks int64

	// CooldownTicks is the minimum tick gap between accepted clicks on one
	// element.
	CooldownTicks int64
}

// Input is the viewer pose fed by the host once per tick.
type Input struct {
	Eye  geom.Vec3
	Look geom.Vec3
}

// Session owns the set of active elements for one viewer. All methods must
// run on the host's tick goroutine; the session does no internal locking.
type Session struct {
	ID     uuid.UUID
	Viewer string

	frame    *geom.Frame
	backend  render.Backend
	logger   *logging.ScopedLogger
	cfg      Config
	elements []*element.Element

	tick      int64
	lastInput Input
	haveInput bool
	destroyed bool
	onDestroy func(reason string)
}

// New creates a session anchored at the given point, with the plane facing
// derived from the viewer's facing at creation time.
func New(viewer string, anchor, facing geom.Vec3, cfg Config, backend render.Backend, logger *logging.ScopedLogger) *Session {
	return &Session{
		ID:      uuid.New(),
		Viewer:  viewer,
		frame:   geom.NewFrame(anchor, facing, cfg.MaxDistance),
		backend: backend,
		logger:  logger,
		cfg:     cfg,
	}
}

// Frame returns the session's coordinate frame.
func (s *Session) Frame() *geom.Frame {
	return s.frame
}

// Spawn registers an element and attaches its visual.
func (s *Session) Spawn(e *element.Element) {
	if s.destroyed {
		return
	}
	e.Attach(s.backend, s.frame)
	s.elements = append(s.elements, e)
}

// Remove destroys one element and drops it from the registry.
func (s *Session) Remove(e *element.Element) {
	for i, el := range s.elements {
		if el == e {
			s.elements = append(s.elements[:i], s.elements[i+1:]...)
			e.Destroy()
			return
		}
	}
}

// CursorOnPlane intersects the viewer's look ray with the session plane.
func (s *Session) CursorOnPlane(eye, look geom.Vec3) (geom.Vec2, bool) {
	return s.frame.CursorOnPlane(eye, look)
}

// Tick advances the session one step: watchdog checks, then hover
// resolution against the supplied pose. Returns false once the session is
// destroyed.
func (s *Session) Tick(in Input) bool {
	if s.destroyed {
		return false
	}
	s.tick++
	s.lastInput = in
	s.haveInput = true

	if s.cfg.TimeoutTicks > 0 && s.tick > s.cfg.TimeoutTicks {
		s.Destroy("timeout")
		return false
	}
	if in.Eye.DistanceTo(s.frame.Anchor) > s.cfg.MaxDistance {
		s.Destroy("distance")
		return false
	}

	s.resolveHover(in.Eye, in.Look)
	return true
}

// resolveHover runs every interactive element's hit test and marks the
// single best hit (smallest plane-intersection t, center distance as the
// tie-break) as hovered. All others are unhovered.
func (s *Session) resolveHover(eye, look geom.Vec3) {
	var (
		best    geom.Hit
		hovered *element.Element
	)

	t, ok := s.frame.RayPlane(eye, look)
	if ok {
		hitPoint := eye.Add(look.Scale(t))
		for _, e := range s.elements {
			if !e.Interactive {
				continue
			}
			hit, hitOK := e.Test(s.frame, hitPoint, t)
			if !hitOK {
				continue
			}
			if hovered == nil || hit.Closer(best) {
				best = hit
				hovered = e
			}
		}
	}

	for _, e := range s.elements {
		e.SetHovered(e == hovered)
	}
}

// DispatchClick forces a hover resolution from the last known pose and, if
// an element is hovered and off cooldown, invokes its click handler.
func (s *Session) DispatchClick(primary bool) bool {
	if s.destroyed || !s.haveInput {
		return false
	}
	s.resolveHover(s.lastInput.Eye, s.lastInput.Look)
	for _, e := range s.elements {
		if e.Hovered() {
			return e.TryClick(s.tick, s.cfg.CooldownTicks, primary)
		}
	}
	return false
}

// Age returns the session's lifetime in ticks.
func (s *Session) Age() int64 {
	return s.tick
}

// Destroyed reports whether the session has been torn down.
func (s *Session) Destroyed() bool {
	return s.destroyed
}

// Destroy tears down every element and marks the session dead. Safe to
// call more than once.
func (s *Session) Destroy(reason string) {
	if s.destroyed {
		return
	}
	s.destroyed = true
	for _, e := range s.elements {
		e.Destroy()
	}
	s.elements = nil
	if s.logger != nil {
		s.logger.Info("session destroyed", "viewer", s.Viewer, "reason", reason, "age_ticks", s.tick)
	}
	if s.onDestroy != nil {
		s.onDestroy(reason)
	}
}
