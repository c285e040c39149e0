package page

import (
	"testing"

	"planeui/internal/geom"
)

// lookAt builds an eye/look pair whose ray crosses the plane at the given
// plane-local point.
func lookAt(s *fakeSurface, x, y float64) (geom.Vec3, geom.Vec3) {
	eye := s.frame.LocalToWorld(x, y, -2)
	return eye, s.frame.Forward
}

func armedHandle(t *testing.T, m *Manager, edge Edge) *handle {
	t.Helper()
	if m.interaction == nil {
		t.Fatal("no interaction active")
	}
	for _, h := range m.interaction.handles {
		if h.edge == edge {
			return h
		}
	}
	t.Fatalf("no handle with edge %b", edge)
	return nil
}

func TestBeginMoveSpawnsCenterHandle(t *testing.T) {
	m, _ := testManager(t)
	p, _ := m.CreatePage("home", &stubContent{}, nil)

	if err := m.BeginMove(p); err != nil {
		t.Fatal(err)
	}
	if m.InteractionMode() != ModeMove {
		t.Error("mode should be Move")
	}
	if n := len(m.interaction.handles); n != 1 {
		t.Fatalf("%d handles, want 1", n)
	}
	h := m.interaction.handles[0]
	if h.el.Offset.X != p.Bounds().CenterX() || h.el.Offset.Y != p.Bounds().CenterY() {
		t.Errorf("handle at (%v,%v), want bounds center", h.el.Offset.X, h.el.Offset.Y)
	}
}

func TestBeginResizeSpawnsEightHandles(t *testing.T) {
	m, _ := testManager(t)
	p, _ := m.CreatePage("home", &stubContent{}, nil)

	if err := m.BeginResize(p); err != nil {
		t.Fatal(err)
	}
	if m.InteractionMode() != ModeResize {
		t.Error("mode should be Resize")
	}
	if n := len(m.interaction.handles); n != 8 {
		t.Fatalf("%d handles, want 8", n)
	}

	edges := map[Edge]bool{}
	for _, h := range m.interaction.handles {
		edges[h.edge] = true
	}
	for _, want := range []Edge{
		EdgeLeft, EdgeRight, EdgeTop, EdgeBottom,
		EdgeLeft | EdgeTop, EdgeRight | EdgeTop,
		EdgeLeft | EdgeBottom, EdgeRight | EdgeBottom,
	} {
		if !edges[want] {
			t.Errorf("missing handle for edge %b", want)
		}
	}
}

func TestBeginMoveReplacesActiveInteraction(t *testing.T) {
	m, _ := testManager(t)
	p, _ := m.CreatePage("home", &stubContent{}, nil)

	if err := m.BeginResize(p); err != nil {
		t.Fatal(err)
	}
	if err := m.BeginMove(p); err != nil {
		t.Fatal(err)
	}
	if m.InteractionMode() != ModeMove {
		t.Error("entering move should exit resize")
	}
	if n := len(m.interaction.handles); n != 1 {
		t.Errorf("%d handles, want 1 after mode switch", n)
	}
}

func TestMoveDragCentersOnCursor(t *testing.T) {
	m, s := testManager(t)
	p, _ := m.CreatePage("home", &stubContent{}, nil)
	origW, origH := p.Bounds().W, p.Bounds().H

	if err := m.BeginMove(p); err != nil {
		t.Fatal(err)
	}
	h := m.interaction.handles[0]
	h.el.OnClick(true)
	if m.interaction.armed != h {
		t.Fatal("click should arm the handle")
	}

	eye, look := lookAt(s, 2.0, 0.5)
	m.Tick(eye, look)

	b := p.Bounds()
	if b.W != origW || b.H != origH {
		t.Errorf("move changed size: %+v", b)
	}
	if b.CenterX() != 2.0 || b.CenterY() != 0.5 {
		t.Errorf("center = (%v,%v), want (2,0.5)", b.CenterX(), b.CenterY())
	}
	if h.el.Offset.X != 2.0 || h.el.Offset.Y != 0.5 {
		t.Errorf("handle should track the drag, at (%v,%v)", h.el.Offset.X, h.el.Offset.Y)
	}
}

func TestUnarmCommitsAndExits(t *testing.T) {
	m, s := testManager(t)
	p, _ := m.CreatePage("home", &stubContent{}, nil)

	if err := m.BeginMove(p); err != nil {
		t.Fatal(err)
	}
	h := m.interaction.handles[0]
	h.el.OnClick(true)

	eye, look := lookAt(s, 1.0, 0.0)
	m.Tick(eye, look)
	moved := p.Bounds()

	h.el.OnClick(true)
	if m.InteractionMode() != ModeNone {
		t.Error("second click should exit the interaction")
	}
	if s.live[h.el] {
		t.Error("handles should be removed on exit")
	}
	if p.Bounds() != moved {
		t.Errorf("release should keep the dragged bounds, got %+v", p.Bounds())
	}
}

func TestResizeRightEdge(t *testing.T) {
	m, s := testManager(t)
	p, _ := m.CreatePage("home", &stubContent{}, nil)
	orig := p.Bounds()

	if err := m.BeginResize(p); err != nil {
		t.Fatal(err)
	}
	h := armedHandle(t, m, EdgeRight)
	h.el.OnClick(true)

	eye, look := lookAt(s, 2.0, 0.0)
	m.Tick(eye, look)

	b := p.Bounds()
	if b.W != 2.0-orig.X {
		t.Errorf("w = %v, want %v", b.W, 2.0-orig.X)
	}
	if b.X != orig.X || b.Y != orig.Y || b.H != orig.H {
		t.Errorf("only width should change: %+v vs %+v", b, orig)
	}
}

func TestResizeCornerAdjustsBothAxes(t *testing.T) {
	m, s := testManager(t)
	p, _ := m.CreatePage("home", &stubContent{}, nil)
	orig := p.Bounds()

	if err := m.BeginResize(p); err != nil {
		t.Fatal(err)
	}
	h := armedHandle(t, m, EdgeLeft|EdgeTop)
	h.el.OnClick(true)

	eye, look := lookAt(s, -2.0, 1.5)
	m.Tick(eye, look)

	b := p.Bounds()
	if b.X != -2.0 || b.W != orig.Right()+2.0 {
		t.Errorf("left edge: x=%v w=%v, want x=-2 w=%v", b.X, b.W, orig.Right()+2.0)
	}
	if b.Y != 1.5 || b.H != 1.5-orig.Bottom() {
		t.Errorf("top edge: y=%v h=%v, want y=1.5 h=%v", b.Y, b.H, 1.5-orig.Bottom())
	}
}

func TestResizeFloorsAtMinimum(t *testing.T) {
	m, s := testManager(t)
	p, _ := m.CreatePage("home", &stubContent{}, nil)
	orig := p.Bounds()

	if err := m.BeginResize(p); err != nil {
		t.Fatal(err)
	}
	h := armedHandle(t, m, EdgeRight)
	h.el.OnClick(true)

	// Cursor well to the left of the left edge.
	eye, look := lookAt(s, orig.X-1.0, 0.0)
	m.Tick(eye, look)

	if got := p.Bounds().W; got != m.cfg.MinPageSize {
		t.Errorf("w = %v, want floored at %v", got, m.cfg.MinPageSize)
	}
}

func TestTickWithoutArmedHandleIsNoop(t *testing.T) {
	m, s := testManager(t)
	p, _ := m.CreatePage("home", &stubContent{}, nil)
	orig := p.Bounds()

	if err := m.BeginMove(p); err != nil {
		t.Fatal(err)
	}
	eye, look := lookAt(s, 2.0, 0.5)
	m.Tick(eye, look)

	if p.Bounds() != orig {
		t.Error("bounds must not change while no handle is armed")
	}
}

func TestClosePageEndsItsInteraction(t *testing.T) {
	m, s := testManager(t)
	p, _ := m.CreatePage("home", &stubContent{}, nil)

	if err := m.BeginMove(p); err != nil {
		t.Fatal(err)
	}
	if err := m.ClosePage(p); err != nil {
		t.Fatal(err)
	}
	if m.InteractionMode() != ModeNone {
		t.Error("closing the target page should end the interaction")
	}
	if len(s.live) != 0 {
		t.Errorf("%d elements still live", len(s.live))
	}
}
