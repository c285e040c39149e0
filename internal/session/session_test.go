package session

import (
	"testing"

	"planeui/internal/element"
	"planeui/internal/geom"
	"planeui/internal/logging"
	"planeui/internal/render"
)

func testConfig() Config {
	return Config{MaxDistance: 10, TimeoutTicks: 100, CooldownTicks: 5}
}

// poseAt aims the viewer at a plane-local point from two units out.
func poseAt(s *Session, x, y float64) Input {
	f := s.Frame()
	return Input{Eye: f.LocalToWorld(x, y, -2), Look: f.Forward}
}

func newTestSession() *Session {
	return New("alice", geom.Vec3{}, geom.Vec3{Z: 1}, testConfig(), render.Noop{}, logging.NopLogger())
}

func spawnButton(s *Session, x, y, radius float64) *element.Element {
	e := element.New(geom.Vec3{X: x, Y: y}, element.Circle(radius), render.Style{Kind: "button"})
	e.Interactive = true
	s.Spawn(e)
	return e
}

func TestHoverResolvesSingleElement(t *testing.T) {
	s := newTestSession()
	a := spawnButton(s, -1, 0, 0.5)
	b := spawnButton(s, 1, 0, 0.5)

	s.Tick(poseAt(s, -1, 0.1))
	if !a.Hovered() || b.Hovered() {
		t.Error("only the element under the ray should hover")
	}

	s.Tick(poseAt(s, 1, 0))
	if a.Hovered() || !b.Hovered() {
		t.Error("hover should move with the ray")
	}

	s.Tick(poseAt(s, 5, 5))
	if a.Hovered() || b.Hovered() {
		t.Error("missing everything should clear hover")
	}
}

func TestHoverIgnoresNonInteractive(t *testing.T) {
	s := newTestSession()
	e := element.New(geom.Vec3{}, element.Circle(1), render.Style{Kind: "label"})
	s.Spawn(e)

	s.Tick(poseAt(s, 0, 0))
	if e.Hovered() {
		t.Error("non-interactive elements must never hover")
	}
}

func TestHoverPrefersSmallerCenterDistanceOnPlane(t *testing.T) {
	s := newTestSession()
	big := spawnButton(s, 0, 0, 2)
	small := spawnButton(s, 0.5, 0, 0.6)

	// Both hitboxes contain the cursor; same plane, same t, so the
	// element whose center is nearer wins.
	s.Tick(poseAt(s, 0.4, 0))
	if big.Hovered() || !small.Hovered() {
		t.Error("tie on t should break on center distance")
	}
}

func TestClickDispatchAndCooldown(t *testing.T) {
	s := newTestSession()
	e := spawnButton(s, 0, 0, 1)
	clicks := 0
	e.OnClick = func(primary bool) {
		if !primary {
			t.Error("primary flag should pass through")
		}
		clicks++
	}

	s.Tick(poseAt(s, 0, 0))
	if !s.DispatchClick(true) {
		t.Fatal("click on hovered element should dispatch")
	}
	if s.DispatchClick(true) {
		t.Error("click inside cooldown should be rejected")
	}

	for i := 0; i < 5; i++ {
		s.Tick(poseAt(s, 0, 0))
	}
	if !s.DispatchClick(true) {
		t.Error("click after cooldown should dispatch")
	}
	if clicks != 2 {
		t.Errorf("handler ran %d times, want 2", clicks)
	}
}

func TestClickWithoutPoseIsRejected(t *testing.T) {
	s := newTestSession()
	spawnButton(s, 0, 0, 1)
	if s.DispatchClick(true) {
		t.Error("click before any tick should not dispatch")
	}
}

func TestTimeoutDestroysSession(t *testing.T) {
	s := newTestSession()
	in := poseAt(s, 0, 0)
	for i := 0; i < 100; i++ {
		if !s.Tick(in) {
			t.Fatalf("destroyed early at tick %d", i+1)
		}
	}
	if s.Tick(in) {
		t.Error("tick past the timeout should destroy the session")
	}
	if !s.Destroyed() {
		t.Error("session should be destroyed")
	}
}

func TestDistanceDestroysSession(t *testing.T) {
	s := newTestSession()
	far := Input{Eye: geom.Vec3{Z: -11}, Look: geom.Vec3{Z: 1}}
	if s.Tick(far) {
		t.Error("viewer beyond max distance should destroy the session")
	}
	if !s.Destroyed() {
		t.Error("session should be destroyed")
	}
}

func TestDestroyTearsDownElements(t *testing.T) {
	s := newTestSession()
	e := spawnButton(s, 0, 0, 1)

	s.Destroy("test")
	s.Destroy("test") // idempotent

	if s.Tick(poseAt(s, 0, 0)) {
		t.Error("destroyed session must reject ticks")
	}
	if e.Hovered() {
		t.Error("destroyed elements must not hover")
	}
}

func TestRemoveDropsElement(t *testing.T) {
	s := newTestSession()
	e := spawnButton(s, 0, 0, 1)

	s.Remove(e)
	s.Tick(poseAt(s, 0, 0))
	if e.Hovered() {
		t.Error("removed element should no longer receive hover")
	}
}

func TestManagerReplacesPreviousSession(t *testing.T) {
	logs := logging.NewTestManager(64)
	defer func() { _ = logs.Close() }()
	m := NewManager(testConfig(), render.Noop{}, logs)

	first := m.Create("alice", geom.Vec3{}, geom.Vec3{Z: 1})
	second := m.Create("alice", geom.Vec3{X: 1}, geom.Vec3{Z: 1})

	if !first.Destroyed() {
		t.Error("previous session should be force-destroyed")
	}
	if got, ok := m.Get("alice"); !ok || got != second {
		t.Error("registry should hold the replacement")
	}
	if n := len(m.Viewers()); n != 1 {
		t.Errorf("%d viewers, want 1", n)
	}
}

func TestManagerCloseUnregisters(t *testing.T) {
	m := NewManager(testConfig(), render.Noop{}, logging.NopProvider{})
	s := m.Create("bob", geom.Vec3{}, geom.Vec3{Z: 1})

	m.Close("bob")
	if !s.Destroyed() {
		t.Error("close should destroy the session")
	}
	if _, ok := m.Get("bob"); ok {
		t.Error("closed session should leave the registry")
	}
}

func TestManagerDestroyAll(t *testing.T) {
	m := NewManager(testConfig(), render.Noop{}, logging.NopProvider{})
	a := m.Create("a", geom.Vec3{}, geom.Vec3{Z: 1})
	b := m.Create("b", geom.Vec3{}, geom.Vec3{Z: 1})

	m.DestroyAll()
	if !a.Destroyed() || !b.Destroyed() {
		t.Error("all sessions should be destroyed")
	}
	if n := len(m.Viewers()); n != 0 {
		t.Errorf("%d viewers left, want 0", n)
	}
}
