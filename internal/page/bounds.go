// pattern: Functional Core

package page

import "planeui/internal/geom"

// Direction selects the axis a split divides.
type Direction int

const (
	// Horizontal places children side by side.
	Horizontal Direction = iota
	// Vertical stacks children top to bottom.
	Vertical
)

// Position selects which slot of a split the new page takes.
type Position int

const (
	First Position = iota
	Second
)

// Bounds is a rectangle in plane-local space (+x right, +y up). X is the
// left edge and Y the TOP edge, so Bottom lies below Y. Bounds is a value
// type: every operation returns a new value.
type Bounds struct {
	X, Y, W, H float64
}

// Right returns the right edge coordinate.
func (b Bounds) Right() float64 {
	return b.X + b.W
}

// Bottom returns the bottom edge coordinate.
func (b Bounds) Bottom() float64 {
	return b.Y - b.H
}

// CenterX returns the horizontal center.
func (b Bounds) CenterX() float64 {
	return b.X + b.W/2
}

// CenterY returns the vertical center.
func (b Bounds) CenterY() float64 {
	return b.Y - b.H/2
}

// Inset shrinks the bounds by d on every side.
func (b Bounds) Inset(d float64) Bounds {
	return Bounds{X: b.X + d, Y: b.Y - d, W: b.W - 2*d, H: b.H - 2*d}
}

// InsetTop removes d from the top edge only.
func (b Bounds) InsetTop(d float64) Bounds {
	return Bounds{X: b.X, Y: b.Y - d, W: b.W, H: b.H - d}
}

// CenteredAt returns bounds of the same size centered on the given point.
func (b Bounds) CenteredAt(cx, cy float64) Bounds {
	return Bounds{X: cx - b.W/2, Y: cy + b.H/2, W: b.W, H: b.H}
}

// Contains reports whether a plane-local point lies inside the bounds.
func (b Bounds) Contains(p geom.Vec2) bool {
	return p.X >= b.X && p.X <= b.Right() && p.Y <= b.Y && p.Y >= b.Bottom()
}

// Split divides the bounds along the given direction at ratio, leaving gap
// between the halves.
func (b Bounds) Split(dir Direction, ratio, gap float64) (Bounds, Bounds) {
	if dir == Horizontal {
		usable := b.W - gap
		firstW := usable * ratio
		first := Bounds{X: b.X, Y: b.Y, W: firstW, H: b.H}
		second := Bounds{X: b.X + firstW + gap, Y: b.Y, W: usable - firstW, H: b.H}
		return first, second
	}
	usable := b.H - gap
	firstH := usable * ratio
	first := Bounds{X: b.X, Y: b.Y, W: b.W, H: firstH}
	second := Bounds{X: b.X, Y: b.Y - firstH - gap, W: b.W, H: usable - firstH}
	return first, second
}
