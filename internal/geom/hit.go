// pattern: Functional Core

package geom

import "math"

// Hit is the outcome of a single element hit test. T is the ray parameter
// of the plane intersection and CenterDist the distance from the element's
// center, used as a tie-break when several elements share the plane.
type Hit struct {
	T          float64
	CenterDist float64
}

// HitCircle tests a world-space hit point against a circular hitbox
// centered at center.
func HitCircle(hitPoint, center Vec3, radius float64, t float64) (Hit, bool) {
	d := hitPoint.DistanceTo(center)
	if d >= radius {
		return Hit{}, false
	}
	return Hit{T: t, CenterDist: d}, true
}

// HitRect tests a world-space hit point against a rectangular hitbox whose
// center sits at the given plane-local offset. The point is projected onto
// the frame basis and compared against the half extents on both axes.
func (f *Frame) HitRect(hitPoint Vec3, offset Vec2, halfW, halfH float64, t float64) (Hit, bool) {
	local := f.WorldToLocal(hitPoint)
	dx := local.X - offset.X
	dy := local.Y - offset.Y
	if math.Abs(dx) > halfW || math.Abs(dy) > halfH {
		return Hit{}, false
	}
	return Hit{T: t, CenterDist: math.Hypot(dx, dy)}, true
}

// Closer reports whether h ranks ahead of o: smaller plane-intersection
// distance first, then smaller offset from the element center.
func (h Hit) Closer(o Hit) bool {
	if h.T != o.T {
		return h.T < o.T
	}
	return h.CenterDist < o.CenterDist
}
