// pattern: Imperative Shell

package page

import (
	"fmt"

	"github.com/google/uuid"

	"planeui/internal/element"
	"planeui/internal/geom"
	"planeui/internal/layout"
	"planeui/internal/render"
)

// Surface is the element host a page tree renders onto. A session satisfies
// this; tests substitute lighter fakes.
type Surface interface {
	Spawn(e *element.Element)
	Remove(e *element.Element)
	Frame() *geom.Frame
	CursorOnPlane(eye, look geom.Vec3) (geom.Vec2, bool)
}

// Content produces a page's widget tree. BuildLayout returns the flex tree
// for the given content extent; Render spawns the elements the computed
// layout calls for.
type Content interface {
	BuildLayout(w, h float64) *layout.Node
	Render(rc *RenderContext) error
}

// RenderContext carries everything Content.Render needs to place widgets:
// the computed layout and the conversion from layout space (origin top-left,
// y down) to plane-local space (y up).
type RenderContext struct {
	page   *Page
	layout *layout.Layout
	bounds Bounds
}

// Bounds returns the content region in plane-local coordinates.
func (rc *RenderContext) Bounds() Bounds {
	return rc.bounds
}

// Result looks up a layout result by node id.
func (rc *RenderContext) Result(id string) (layout.Result, error) {
	r, ok := rc.layout.Result(id)
	if !ok {
		return layout.Result{}, fmt.Errorf("no layout node %q", id)
	}
	return r, nil
}

// Spawn places an element at the center of the named layout node. depth is
// the forward offset off the plane.
func (rc *RenderContext) Spawn(id string, depth float64, hitbox element.Hitbox, style render.Style) (*element.Element, error) {
	r, err := rc.Result(id)
	if err != nil {
		return nil, err
	}
	offset := geom.Vec3{
		X: rc.bounds.X + r.X + r.W/2,
		Y: rc.bounds.Y - r.Y - r.H/2,
		Z: depth,
	}
	e := element.New(offset, hitbox, style)
	rc.page.adopt(e)
	return e, nil
}

// SpawnAt places an element at an explicit plane-local offset, bypassing
// the layout. Used for chrome that is not part of the content tree.
func (rc *RenderContext) SpawnAt(offset geom.Vec3, hitbox element.Hitbox, style render.Style) *element.Element {
	e := element.New(offset, hitbox, style)
	rc.page.adopt(e)
	return e
}

// Page is one renderable unit in the tree. It owns the elements its content
// spawned and tears them down on every re-render.
type Page struct {
	ID    uuid.UUID
	Title string

	content  Content
	history  []Content
	holder   Container
	surface  Surface
	bounds   Bounds
	visible  bool
	elements []*element.Element
}

// NewPage creates a detached page around the given content.
func NewPage(title string, content Content) *Page {
	return &Page{
		ID:      uuid.New(),
		Title:   title,
		content: content,
	}
}

// Content returns the page's current content.
func (p *Page) Content() Content {
	return p.content
}

// Holder returns the container directly holding this page, or nil when the
// page sits in the root slot or in a split slot with no tab group.
func (p *Page) Holder() Container {
	return p.holder
}

func (p *Page) setHolder(c Container) {
	p.holder = c
}

// Bounds returns the plane region last assigned to the page.
func (p *Page) Bounds() Bounds {
	return p.bounds
}

// Visible reports whether the page currently has spawned elements.
func (p *Page) Visible() bool {
	return p.visible
}

func (p *Page) adopt(e *element.Element) {
	p.elements = append(p.elements, e)
	p.surface.Spawn(e)
}

// render lays the page out into the given region and spawns its elements,
// tearing down whatever the previous render left behind.
func (p *Page) render(surface Surface, bounds Bounds) error {
	p.teardown()
	p.surface = surface
	p.bounds = bounds
	p.visible = true

	if p.content == nil {
		return nil
	}

	root := p.content.BuildLayout(bounds.W, bounds.H)
	l := layout.New(bounds.W, bounds.H, root)
	if err := l.Compute(); err != nil {
		return fmt.Errorf("layout page %q: %w", p.Title, err)
	}

	rc := &RenderContext{page: p, layout: l, bounds: bounds}
	if err := p.content.Render(rc); err != nil {
		return fmt.Errorf("render page %q: %w", p.Title, err)
	}
	return nil
}

// teardown removes every element the page spawned. The page keeps its
// bounds and tree position and can be rendered again.
func (p *Page) teardown() {
	if p.surface != nil {
		for _, e := range p.elements {
			p.surface.Remove(e)
		}
	}
	p.elements = nil
	p.visible = false
}

// NavigateTo pushes the current content onto the history stack and shows
// the new content in place.
func (p *Page) NavigateTo(c Content) error {
	p.history = append(p.history, p.content)
	p.content = c
	if !p.visible {
		return nil
	}
	return p.render(p.surface, p.bounds)
}

// NavigateBack pops the history stack. Returns false when there is nothing
// to go back to.
func (p *Page) NavigateBack() (bool, error) {
	if len(p.history) == 0 {
		return false, nil
	}
	p.content = p.history[len(p.history)-1]
	p.history = p.history[:len(p.history)-1]
	if !p.visible {
		return true, nil
	}
	return true, p.render(p.surface, p.bounds)
}
