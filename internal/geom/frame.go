// pattern: Functional Core

package geom

import "math"

// WorldUp is the fixed world up axis. The frame's up vector is always
// WorldUp; the plane is vertical regardless of where the viewer looks.
var WorldUp = Vec3{X: 0, Y: 1, Z: 0}

const (
	// parallelEpsilon is the minimum |normal·dir| below which a ray is
	// treated as parallel to the plane.
	parallelEpsilon = 1e-6

	// sanityBound is how far a transformed point may land from the anchor
	// before it is considered corrupt and replaced by the anchor itself.
	sanityBound = 64.0
)

// Frame is the viewer-relative basis defining the UI's virtual plane.
// It is captured once at session creation and never reoriented: the anchor
// and the horizontal component of the viewer's facing at that moment fix
// the plane for the session's whole lifetime.
type Frame struct {
	Anchor  Vec3
	Right   Vec3
	Up      Vec3
	Forward Vec3

	// MaxDistance bounds both ray intersection reach and the session
	// watchdog's viewer-to-anchor distance check.
	MaxDistance float64
}

// NewFrame derives an orthonormal frame from an anchor point and a facing
// hint. The hint's vertical component is discarded so the plane stands
// upright; a degenerate hint (straight up/down, zero, non-finite) falls
// back to world +Z.
func NewFrame(anchor, facingHint Vec3, maxDistance float64) *Frame {
	flat := Vec3{X: facingHint.X, Z: facingHint.Z}.Sanitize()
	if flat.Length() < parallelEpsilon {
		flat = Vec3{Z: 1}
	}
	forward := flat.Normalize()

	// forward × up, in this order. Swapping the operands mirrors the UI
	// left-to-right.
	right := forward.Cross(WorldUp).Normalize()

	return &Frame{
		Anchor:      anchor.Sanitize(),
		Right:       right,
		Up:          WorldUp,
		Forward:     forward,
		MaxDistance: maxDistance,
	}
}

// LocalToWorld converts frame-local coordinates (x along right, y along up,
// z along forward) to a world point. Non-finite inputs are zeroed, and a
// result implausibly far from the anchor collapses to the anchor instead of
// propagating a corrupt position into the render backend.
func (f *Frame) LocalToWorld(x, y, z float64) Vec3 {
	x, y, z = sanitize(x), sanitize(y), sanitize(z)
	p := f.Anchor.
		Add(f.Right.Scale(x)).
		Add(f.Up.Scale(y)).
		Add(f.Forward.Scale(z))
	if p.DistanceTo(f.Anchor) > sanityBound {
		return f.Anchor
	}
	return p
}

// WorldToLocal projects a world point onto the plane basis, returning
// plane-local (x, y).
func (f *Frame) WorldToLocal(p Vec3) Vec2 {
	d := p.Sub(f.Anchor)
	return Vec2{X: d.Dot(f.Right), Y: d.Dot(f.Up)}
}

// Normal returns the plane normal, which faces back toward the viewer.
func (f *Frame) Normal() Vec3 {
	return f.Forward.Scale(-1)
}

// RayPlane intersects a ray with the frame's plane. It returns the ray
// parameter t (world distance when dir is unit length) and whether a valid
// intersection exists: the ray must not be parallel to the plane, the plane
// must be in front of the origin, and the hit must be within MaxDistance.
func (f *Frame) RayPlane(origin, dir Vec3) (float64, bool) {
	n := f.Normal()
	denom := n.Dot(dir)
	if math.Abs(denom) < parallelEpsilon {
		return 0, false
	}
	t := n.Dot(f.Anchor.Sub(origin)) / denom
	if t < 0 || t > f.MaxDistance {
		return 0, false
	}
	return t, true
}

// CursorOnPlane intersects the viewer's look ray with the plane and returns
// the plane-local cursor position.
func (f *Frame) CursorOnPlane(eye, look Vec3) (Vec2, bool) {
	t, ok := f.RayPlane(eye, look)
	if !ok {
		return Vec2{}, false
	}
	return f.WorldToLocal(eye.Add(look.Scale(t))), true
}
