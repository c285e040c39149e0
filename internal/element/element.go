// pattern: Functional Core

package element

import (
	"github.com/google/uuid"

	"planeui/internal/geom"
	"planeui/internal/render"
)

// HitboxKind discriminates hit test shapes.
type HitboxKind int

const (
	HitboxCircle HitboxKind = iota
	HitboxRect
)

// Hitbox is the region ray hits are tested against.
type Hitbox struct {
	Kind   HitboxKind
	Radius float64
	Width  float64
	Height float64
}

// Circle creates a circular hitbox.
func Circle(radius float64) Hitbox {
	return Hitbox{Kind: HitboxCircle, Radius: radius}
}

// Rect creates a rectangular hitbox.
func Rect(width, height float64) Hitbox {
	return Hitbox{Kind: HitboxRect, Width: width, Height: height}
}

// Element is one widget instance placed in frame-local coordinates
// (x along right, y along up, z forward depth). Elements are owned by
// exactly one session and destroyed with it.
type Element struct {
	ID          uuid.UUID
	Offset      geom.Vec3
	Interactive bool
	Hitbox      Hitbox
	Style       render.Style

	// OnClick runs when a click is dispatched to this element after its
	// cooldown elapsed. OnHoverChanged runs on every hover transition.
	OnClick        func(primary bool)
	OnHoverChanged func(hovered bool)

	hovered   bool
	lastClick int64
	visual    render.Visual
}

// New creates an element at the given frame-local offset.
func New(offset geom.Vec3, hitbox Hitbox, style render.Style) *Element {
	return &Element{
		ID:        uuid.New(),
		Offset:    offset,
		Hitbox:    hitbox,
		Style:     style,
		lastClick: -1 << 40,
	}
}

// Attach spawns the element's visual into the backend at its world
// position.
func (e *Element) Attach(backend render.Backend, frame *geom.Frame) {
	e.visual = backend.Spawn(e.worldPos(frame), e.Style)
}

// Reposition moves the visual to the element's current offset. Call after
// mutating Offset.
func (e *Element) Reposition(frame *geom.Frame) {
	if e.visual != nil {
		e.visual.Teleport(e.worldPos(frame))
	}
}

// Destroy tears down the element's visual.
func (e *Element) Destroy() {
	if e.visual != nil {
		e.visual.Destroy()
		e.visual = nil
	}
}

// Hovered reports whether the element is currently under the look ray.
func (e *Element) Hovered() bool {
	return e.hovered
}

// SetHovered flips the hovered flag, restyles the visual and fires the
// hover hook on actual transitions only.
func (e *Element) SetHovered(hovered bool) {
	if e.hovered == hovered {
		return
	}
	e.hovered = hovered
	if e.visual != nil {
		s := e.Style
		s.Hovered = hovered
		e.visual.SetStyle(s)
	}
	if e.OnHoverChanged != nil {
		e.OnHoverChanged(hovered)
	}
}

// Restyle swaps the element's style and pushes it to the visual, keeping
// the current hover state.
func (e *Element) Restyle(style render.Style) {
	e.Style = style
	if e.visual != nil {
		style.Hovered = e.hovered
		e.visual.SetStyle(style)
	}
}

// TryClick dispatches a click if the per-element cooldown has elapsed,
// resetting the cooldown timer on acceptance.
func (e *Element) TryClick(tick, cooldownTicks int64, primary bool) bool {
	if tick-e.lastClick < cooldownTicks {
		return false
	}
	e.lastClick = tick
	if e.OnClick != nil {
		e.OnClick(primary)
	}
	return true
}

// Test runs the element's hit test against a plane hit point. t is the
// ray parameter of the plane intersection, kept for ranking.
func (e *Element) Test(frame *geom.Frame, hitPoint geom.Vec3, t float64) (geom.Hit, bool) {
	switch e.Hitbox.Kind {
	case HitboxCircle:
		return geom.HitCircle(hitPoint, e.worldPos(frame), e.Hitbox.Radius, t)
	default:
		offset := geom.Vec2{X: e.Offset.X, Y: e.Offset.Y}
		return frame.HitRect(hitPoint, offset, e.Hitbox.Width/2, e.Hitbox.Height/2, t)
	}
}

func (e *Element) worldPos(frame *geom.Frame) geom.Vec3 {
	return frame.LocalToWorld(e.Offset.X, e.Offset.Y, e.Offset.Z)
}
