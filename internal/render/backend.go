// pattern: Imperative Shell

package render

import "planeui/internal/geom"

// Visual is the opaque per-widget handle the engine drives. The engine
// never inspects the concrete representation; it only places, styles and
// destroys it.
type Visual interface {
	Teleport(pos geom.Vec3)
	SetStyle(style Style)
	Destroy()
}

// Backend spawns visuals into whatever world the host renders. A backend
// with no render target must return a usable no-op visual rather than
// failing, so a headless session still runs its full logic.
type Backend interface {
	Spawn(pos geom.Vec3, style Style) Visual
}

// Style is the engine-side description of how a widget should look. The
// backend maps it onto materials, sprites, glyphs or whatever it renders.
type Style struct {
	Kind    string // "button", "label", "panel", "handle", ...
	Label   string
	Color   string // hex, from the theme palette
	Hovered bool
}

type noopVisual struct{}

func (noopVisual) Teleport(geom.Vec3) {}
func (noopVisual) SetStyle(Style)     {}
func (noopVisual) Destroy()           {}

// Noop is a backend that renders nothing. Used when the host has no world
// to draw into; spawn becomes a silent no-op per the error handling
// contract.
type Noop struct{}

// Spawn returns a visual that ignores every call.
func (Noop) Spawn(geom.Vec3, Style) Visual {
	return noopVisual{}
}
