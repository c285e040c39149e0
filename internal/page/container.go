// pattern: Functional Core

package page

import "planeui/internal/element"

// Slot is the tagged union used for every tree position: it holds either a
// single page or a nested container, never both.
type Slot struct {
	page      *Page
	container Container
}

// PageSlot wraps a page.
func PageSlot(p *Page) Slot {
	return Slot{page: p}
}

// ContainerSlot wraps a container.
func ContainerSlot(c Container) Slot {
	return Slot{container: c}
}

// IsZero reports whether the slot is empty.
func (s Slot) IsZero() bool {
	return s.page == nil && s.container == nil
}

// IsPage reports whether the slot holds a single page.
func (s Slot) IsPage() bool {
	return s.page != nil
}

// Page returns the held page, or nil.
func (s Slot) Page() *Page {
	return s.page
}

// Container returns the held container, or nil.
func (s Slot) Container() Container {
	return s.container
}

// Container is either a 2-way split or an N-way tab group. Containers are
// replaced wholesale during tree surgery, so everything a container knows
// about its surroundings is the parent split back-reference.
type Container interface {
	// removePage detaches a member page. The returned slot is the
	// remaining content the caller must splice into the removed
	// container's position; collapsed is false when the container
	// survives with no structural change needed.
	removePage(p *Page) (remaining Slot, collapsed bool)

	parent() *SplitContainer
	setParent(sp *SplitContainer)

	// lastRegion is the plane region most recently assigned to this
	// container, used to re-layout survivors after surgery.
	lastRegion() Bounds
	setRegion(b Bounds)
}

// SplitContainer divides its region between exactly two slots. A split
// never holds fewer or more than two children: removing one collapses the
// split into its sibling.
type SplitContainer struct {
	Dir   Direction
	Ratio float64

	first  Slot
	second Slot
	par    *SplitContainer
	region Bounds
}

// First returns the first (left/top) slot.
func (c *SplitContainer) First() Slot {
	return c.first
}

// Second returns the second (right/bottom) slot.
func (c *SplitContainer) Second() Slot {
	return c.second
}

func (c *SplitContainer) removePage(p *Page) (Slot, bool) {
	if c.first.page == p {
		return c.second, true
	}
	if c.second.page == p {
		return c.first, true
	}
	return Slot{}, false
}

// replaceSlot swaps the slot holding old for repl. Used when a child page
// is wrapped by a new container.
func (c *SplitContainer) replaceSlot(old, repl Slot) bool {
	if c.first == old {
		c.first = repl
		return true
	}
	if c.second == old {
		c.second = repl
		return true
	}
	return false
}

func (c *SplitContainer) parent() *SplitContainer     { return c.par }
func (c *SplitContainer) setParent(p *SplitContainer) { c.par = p }
func (c *SplitContainer) lastRegion() Bounds          { return c.region }
func (c *SplitContainer) setRegion(b Bounds)          { c.region = b }

// TabbedContainer holds an ordered list of pages with one selected. Tab
// groups hold flat page lists only, never nested containers.
type TabbedContainer struct {
	pages    []*Page
	selected int
	par      *SplitContainer
	region   Bounds

	// chrome holds the tab strip buttons, rebuilt on every re-layout.
	chrome []*element.Element
}

// dropChrome removes the tab strip buttons from the surface.
func (c *TabbedContainer) dropChrome(surface Surface) {
	for _, e := range c.chrome {
		surface.Remove(e)
	}
	c.chrome = nil
}

// Pages returns the tab pages in order.
func (c *TabbedContainer) Pages() []*Page {
	return c.pages
}

// Selected returns the index of the visible tab.
func (c *TabbedContainer) Selected() int {
	return c.selected
}

// SelectedPage returns the visible page.
func (c *TabbedContainer) SelectedPage() *Page {
	if c.selected < 0 || c.selected >= len(c.pages) {
		return nil
	}
	return c.pages[c.selected]
}

// selectIndex switches the visible tab. Out-of-range indices are ignored.
func (c *TabbedContainer) selectIndex(i int) bool {
	if i < 0 || i >= len(c.pages) || i == c.selected {
		return false
	}
	c.selected = i
	return true
}

// add appends a page to the tab group.
func (c *TabbedContainer) add(p *Page) {
	c.pages = append(c.pages, p)
}

func (c *TabbedContainer) removePage(p *Page) (Slot, bool) {
	idx := -1
	for i, pg := range c.pages {
		if pg == p {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Slot{}, false
	}
	c.pages = append(c.pages[:idx], c.pages[idx+1:]...)

	// Exactly one page left: the group dissolves into that page.
	if len(c.pages) == 1 {
		return PageSlot(c.pages[0]), true
	}

	// Coerce the selection back into range.
	if c.selected >= len(c.pages) {
		c.selected = len(c.pages) - 1
	}
	return Slot{}, false
}

func (c *TabbedContainer) parent() *SplitContainer     { return c.par }
func (c *TabbedContainer) setParent(p *SplitContainer) { c.par = p }
func (c *TabbedContainer) lastRegion() Bounds          { return c.region }
func (c *TabbedContainer) setRegion(b Bounds)          { c.region = b }
