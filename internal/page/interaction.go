// pattern: Imperative Shell

package page

import (
	"planeui/internal/element"
	"planeui/internal/geom"
	"planeui/internal/render"
)

// Mode is the drag state of the manager. At most one interaction runs per
// manager; entering a mode implicitly exits any other.
type Mode int

const (
	ModeNone Mode = iota
	ModeMove
	ModeResize
)

// Edge is a bitmask naming which bounds edges a resize handle drags.
// Corner handles carry two bits.
type Edge int

const (
	EdgeLeft Edge = 1 << iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

const handleRadius = 0.12

// handle is one grabber: its edge tag, its spawned element, and the rule
// placing it on the current bounds.
type handle struct {
	edge  Edge
	el    *element.Element
	place func(b Bounds) geom.Vec2
}

// Interaction tracks one live move or resize drag.
type Interaction struct {
	mode     Mode
	page     *Page
	handles  []*handle
	armed    *handle
	original Bounds
	bounds   Bounds
}

// InteractionMode returns the current drag mode.
func (m *Manager) InteractionMode() Mode {
	if m.interaction == nil {
		return ModeNone
	}
	return m.interaction.mode
}

// InteractionTarget returns the page under drag, or nil.
func (m *Manager) InteractionTarget() *Page {
	if m.interaction == nil {
		return nil
	}
	return m.interaction.page
}

// BeginMove enters move mode on a page: a single grabber at the bounds
// center. Clicking it arms the drag; clicking again commits and exits.
func (m *Manager) BeginMove(p *Page) error {
	if !m.holds(p) {
		return ErrNotInTree
	}
	m.EndInteraction()

	it := &Interaction{mode: ModeMove, page: p, original: p.Bounds(), bounds: p.Bounds()}
	m.interaction = it
	m.spawnHandle(it, 0, func(b Bounds) geom.Vec2 {
		return geom.Vec2{X: b.CenterX(), Y: b.CenterY()}
	})
	m.logger.Debug("move started", "page", p.Title)
	return nil
}

// BeginResize enters resize mode on a page: eight grabbers, four corners
// and four edge midpoints, each tagged with the edges it drags.
func (m *Manager) BeginResize(p *Page) error {
	if !m.holds(p) {
		return ErrNotInTree
	}
	m.EndInteraction()

	it := &Interaction{mode: ModeResize, page: p, original: p.Bounds(), bounds: p.Bounds()}
	m.interaction = it

	m.spawnHandle(it, EdgeLeft|EdgeTop, func(b Bounds) geom.Vec2 { return geom.Vec2{X: b.X, Y: b.Y} })
	m.spawnHandle(it, EdgeRight|EdgeTop, func(b Bounds) geom.Vec2 { return geom.Vec2{X: b.Right(), Y: b.Y} })
	m.spawnHandle(it, EdgeLeft|EdgeBottom, func(b Bounds) geom.Vec2 { return geom.Vec2{X: b.X, Y: b.Bottom()} })
	m.spawnHandle(it, EdgeRight|EdgeBottom, func(b Bounds) geom.Vec2 { return geom.Vec2{X: b.Right(), Y: b.Bottom()} })
	m.spawnHandle(it, EdgeTop, func(b Bounds) geom.Vec2 { return geom.Vec2{X: b.CenterX(), Y: b.Y} })
	m.spawnHandle(it, EdgeBottom, func(b Bounds) geom.Vec2 { return geom.Vec2{X: b.CenterX(), Y: b.Bottom()} })
	m.spawnHandle(it, EdgeLeft, func(b Bounds) geom.Vec2 { return geom.Vec2{X: b.X, Y: b.CenterY()} })
	m.spawnHandle(it, EdgeRight, func(b Bounds) geom.Vec2 { return geom.Vec2{X: b.Right(), Y: b.CenterY()} })
	m.logger.Debug("resize started", "page", p.Title)
	return nil
}

// EndInteraction destroys every handle and clears the drag state. The
// page keeps whatever bounds the drag last gave it; there is no separate
// cancel.
func (m *Manager) EndInteraction() {
	it := m.interaction
	if it == nil {
		return
	}
	m.interaction = nil
	for _, h := range it.handles {
		m.surface.Remove(h.el)
	}
	m.logger.Debug("interaction ended", "page", it.page.Title)
}

func (m *Manager) spawnHandle(it *Interaction, edge Edge, place func(Bounds) geom.Vec2) {
	h := &handle{edge: edge, place: place}
	pos := place(it.bounds)
	style := render.Style{Kind: "handle"}
	if m.theme != nil {
		style.Color = m.theme.Handle()
	}
	h.el = element.New(geom.Vec3{X: pos.X, Y: pos.Y, Z: 0.02}, element.Circle(handleRadius), style)
	h.el.Interactive = true
	h.el.OnClick = func(bool) { m.toggleHandle(it, h) }
	it.handles = append(it.handles, h)
	m.surface.Spawn(h.el)
}

// toggleHandle flips a grabber between armed and released. Arming a resize
// grabber re-snapshots the original bounds and tags the drag edge;
// releasing any grabber commits the current bounds and exits.
func (m *Manager) toggleHandle(it *Interaction, h *handle) {
	if m.interaction != it {
		return
	}
	if it.armed == h {
		it.armed = nil
		m.commit(it)
		m.EndInteraction()
		return
	}
	if it.armed != nil {
		return
	}
	it.armed = h
	it.original = it.bounds
	if m.theme != nil {
		style := h.el.Style
		style.Color = m.theme.HandleArmed()
		h.el.Restyle(style)
	}
}

// Tick advances an armed drag: intersect the look ray with the plane,
// derive new bounds from the cursor, re-render the page there and walk
// every handle to its new spot.
func (m *Manager) Tick(eye, look geom.Vec3) {
	it := m.interaction
	if it == nil || it.armed == nil {
		return
	}
	cursor, ok := m.surface.CursorOnPlane(eye, look)
	if !ok {
		return
	}

	switch it.mode {
	case ModeMove:
		it.bounds = it.original.CenteredAt(cursor.X, cursor.Y)
	case ModeResize:
		it.bounds = m.resizeBounds(it.original, it.armed.edge, cursor)
	default:
		return
	}

	if err := it.page.render(m.surface, it.bounds); err != nil {
		m.logger.Warn("drag re-render failed", "page", it.page.Title, "error", err)
	}
	for _, h := range it.handles {
		pos := h.place(it.bounds)
		h.el.Offset = geom.Vec3{X: pos.X, Y: pos.Y, Z: h.el.Offset.Z}
		h.el.Reposition(m.surface.Frame())
	}
}

// resizeBounds recomputes bounds from the drag-arm snapshot and the cursor.
// Each tagged edge follows the cursor on its axis; the opposite edge stays
// put. Width and height floor at the configured minimum.
func (m *Manager) resizeBounds(o Bounds, edge Edge, cursor geom.Vec2) Bounds {
	b := o
	if edge&EdgeRight != 0 {
		b.W = clampMin(cursor.X-o.X, m.cfg.MinPageSize)
	}
	if edge&EdgeLeft != 0 {
		b.W = clampMin(o.Right()-cursor.X, m.cfg.MinPageSize)
		b.X = o.Right() - b.W
	}
	if edge&EdgeBottom != 0 {
		b.H = clampMin(o.Y-cursor.Y, m.cfg.MinPageSize)
	}
	if edge&EdgeTop != 0 {
		b.H = clampMin(cursor.Y-o.Bottom(), m.cfg.MinPageSize)
		b.Y = o.Bottom() + b.H
	}
	return b
}

// commit records the final bounds. The drag already rendered the page
// there each tick, so release keeps them as-is.
func (m *Manager) commit(it *Interaction) {
	m.logger.Info("drag committed", "page", it.page.Title, "mode", int(it.mode),
		"x", it.bounds.X, "y", it.bounds.Y, "w", it.bounds.W, "h", it.bounds.H)
}

func clampMin(v, min float64) float64 {
	if v < min {
		return min
	}
	return v
}
