// pattern: Imperative Shell

package page

import (
	"errors"
	"fmt"

	"planeui/internal/element"
	"planeui/internal/geom"
	"planeui/internal/layout"
	"planeui/internal/logging"
	"planeui/internal/render"
)

// Config holds page tree tuning values.
type Config struct {
	// Gap is the spacing left between split siblings.
	Gap float64

	// TabStripHeight is the strip reserved at the top of a tab group.
	TabStripHeight float64

	// MinPageSize floors page width and height during resize drags.
	MinPageSize float64

	// DefaultBounds is the region a root page gets when the caller passes
	// none.
	DefaultBounds Bounds
}

var (
	// ErrNotInTree is returned when an operation targets a page the
	// manager does not hold.
	ErrNotInTree = errors.New("page not in tree")

	// ErrTabbedSplit is returned when splitting a page that lives inside
	// a tab group. Tab groups hold flat page lists only.
	ErrTabbedSplit = errors.New("cannot split a page inside a tab group")
)

// Manager owns one page tree on one surface. Like everything downstream of
// the host tick, it is single-goroutine.
type Manager struct {
	surface Surface
	cfg     Config
	theme   *render.Theme
	logger  *logging.ScopedLogger

	root        Slot
	interaction *Interaction
}

// NewManager creates an empty page tree bound to a surface.
func NewManager(surface Surface, cfg Config, theme *render.Theme, logger *logging.ScopedLogger) *Manager {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Manager{surface: surface, cfg: cfg, theme: theme, logger: logger}
}

// Root returns the root slot.
func (m *Manager) Root() Slot {
	return m.root
}

// Pages returns every page in the tree in traversal order.
func (m *Manager) Pages() []*Page {
	return collectPages(m.root, nil)
}

func collectPages(s Slot, acc []*Page) []*Page {
	switch {
	case s.IsZero():
		return acc
	case s.IsPage():
		return append(acc, s.Page())
	}
	switch c := s.Container().(type) {
	case *SplitContainer:
		acc = collectPages(c.first, acc)
		return collectPages(c.second, acc)
	case *TabbedContainer:
		return append(acc, c.pages...)
	default:
		return acc
	}
}

// CreatePage makes a new page. The first page becomes the tree root and is
// rendered immediately; later pages come back detached, ready to be handed
// to SplitPage or MergeToTabs.
func (m *Manager) CreatePage(title string, content Content, bounds *Bounds) (*Page, error) {
	p := NewPage(title, content)
	if !m.root.IsZero() {
		m.logger.Debug("page created detached", "title", title)
		return p, nil
	}

	b := m.cfg.DefaultBounds
	if bounds != nil {
		b = *bounds
	}
	m.root = PageSlot(p)
	if err := m.assign(m.root, b); err != nil {
		return nil, err
	}
	m.logger.Info("root page created", "title", title)
	return p, nil
}

// SplitPage divides the target page's region in two, placing a new page
// with the given content at position and the existing page in the other
// slot.
//
// The old holder reference must be captured before any wiring: building
// the new split rewrites the page's containment link, and the tree surgery
// below still needs the pre-mutation one.
func (m *Manager) SplitPage(p *Page, dir Direction, title string, content Content, pos Position, ratio float64) (*Page, error) {
	if !m.holds(p) {
		return nil, ErrNotInTree
	}
	if _, tabbed := p.Holder().(*TabbedContainer); tabbed {
		return nil, ErrTabbedSplit
	}

	oldHolder, _ := p.Holder().(*SplitContainer)
	region := p.Bounds()

	fresh := NewPage(title, content)
	sp := &SplitContainer{Dir: dir, Ratio: ratio}
	if pos == First {
		sp.first, sp.second = PageSlot(fresh), PageSlot(p)
	} else {
		sp.first, sp.second = PageSlot(p), PageSlot(fresh)
	}
	fresh.setHolder(sp)
	p.setHolder(sp)

	m.splice(PageSlot(p), oldHolder, ContainerSlot(sp))
	if err := m.assign(ContainerSlot(sp), region); err != nil {
		return nil, err
	}
	m.logger.Info("page split", "page", p.Title, "new", title, "dir", int(dir), "ratio", ratio)
	return fresh, nil
}

// MergeToTabs joins b into a tab group at a's position. When a already
// lives in a tab group, b is simply appended to it; otherwise a's slot is
// wrapped in a new two-page group. b is detached from wherever it was
// first, so no page is ever referenced from two tree positions.
func (m *Manager) MergeToTabs(a, b *Page) (*TabbedContainer, error) {
	if !m.holds(a) {
		return nil, ErrNotInTree
	}
	if a == b {
		return nil, fmt.Errorf("merge page %q with itself", a.Title)
	}
	if err := m.detach(b); err != nil {
		return nil, err
	}

	if tc, ok := a.Holder().(*TabbedContainer); ok {
		tc.add(b)
		b.setHolder(tc)
		if err := m.assign(ContainerSlot(tc), tc.lastRegion()); err != nil {
			return nil, err
		}
		return tc, nil
	}

	oldHolder, _ := a.Holder().(*SplitContainer)
	region := a.Bounds()

	tc := &TabbedContainer{pages: []*Page{a, b}}
	a.setHolder(tc)
	b.setHolder(tc)

	m.splice(PageSlot(a), oldHolder, ContainerSlot(tc))
	if err := m.assign(ContainerSlot(tc), region); err != nil {
		return nil, err
	}
	m.logger.Info("pages merged to tabs", "first", a.Title, "second", b.Title)
	return tc, nil
}

// ClosePage removes a page from the tree, collapsing whatever container is
// left with a single occupant.
func (m *Manager) ClosePage(p *Page) error {
	if m.interaction != nil && m.interaction.page == p {
		m.EndInteraction()
	}
	if err := m.detach(p); err != nil {
		return err
	}
	m.logger.Info("page closed", "title", p.Title)
	return nil
}

// SelectTab switches the visible tab of a group. Out-of-range indices are
// ignored.
func (m *Manager) SelectTab(tc *TabbedContainer, i int) error {
	if !tc.selectIndex(i) {
		return nil
	}
	return m.assign(ContainerSlot(tc), tc.lastRegion())
}

// detach unlinks a page from the tree and tears its elements down, running
// the collapse surgery when its container is left with a single occupant.
// A page outside the tree detaches trivially. The page object itself stays
// usable; MergeToTabs re-homes detached pages.
func (m *Manager) detach(p *Page) error {
	holder := p.Holder()
	if holder == nil {
		if m.root.Page() == p {
			m.root = Slot{}
		}
		p.teardown()
		return nil
	}

	remaining, collapsed := holder.removePage(p)
	p.teardown()
	p.setHolder(nil)

	if !collapsed {
		return m.assign(ContainerSlot(holder), holder.lastRegion())
	}
	if tc, ok := holder.(*TabbedContainer); ok {
		tc.dropChrome(m.surface)
	}
	parent := holder.parent()
	region := holder.lastRegion()
	if remaining.IsPage() {
		remaining.Page().setHolder(containerOrNil(parent))
	} else {
		remaining.Container().setParent(parent)
	}
	m.splice(ContainerSlot(holder), parent, remaining)
	return m.assign(remaining, region)
}

// splice replaces old with repl, either at the root or in the parent
// split's slot.
func (m *Manager) splice(old Slot, parent *SplitContainer, repl Slot) {
	if parent == nil {
		m.root = repl
		return
	}
	parent.replaceSlot(old, repl)
	if repl.Container() != nil {
		repl.Container().setParent(parent)
	}
}

// assign lays a subtree out into a region: pages render, splits divide,
// tab groups rebuild their strip and show the selected page.
func (m *Manager) assign(s Slot, region Bounds) error {
	switch {
	case s.IsZero():
		return nil
	case s.IsPage():
		return s.Page().render(m.surface, region)
	}

	switch c := s.Container().(type) {
	case *SplitContainer:
		c.setRegion(region)
		first, second := region.Split(c.Dir, c.Ratio, m.cfg.Gap)
		if err := m.assign(c.first, first); err != nil {
			return err
		}
		return m.assign(c.second, second)
	case *TabbedContainer:
		c.setRegion(region)
		if err := m.renderTabStrip(c, region); err != nil {
			return err
		}
		content := region.InsetTop(m.cfg.TabStripHeight)
		for i, pg := range c.pages {
			if i == c.selected {
				if err := pg.render(m.surface, content); err != nil {
					return err
				}
			} else {
				pg.teardown()
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown container kind %T", c)
	}
}

// renderTabStrip lays the tab buttons out with the flex solver and spawns
// one clickable element per page.
func (m *Manager) renderTabStrip(tc *TabbedContainer, region Bounds) error {
	tc.dropChrome(m.surface)

	row := layout.Row("strip").WithGap(m.cfg.Gap / 2)
	for i := range tc.pages {
		row.Add(layout.Leaf(tabID(i)).Flex(1))
	}
	l := layout.New(region.W, m.cfg.TabStripHeight, row)
	if err := l.Compute(); err != nil {
		return fmt.Errorf("tab strip layout: %w", err)
	}

	for i, pg := range tc.pages {
		r, ok := l.Result(tabID(i))
		if !ok {
			return fmt.Errorf("tab strip missing node %q", tabID(i))
		}
		offset := geom.Vec3{
			X: region.X + r.X + r.W/2,
			Y: region.Y - r.Y - r.H/2,
			Z: 0.01,
		}
		style := render.Style{Kind: "tab", Label: pg.Title}
		if m.theme != nil {
			style.Color = m.theme.Panel()
			if i == tc.selected {
				style.Color = m.theme.Widget()
			}
		}
		e := element.New(offset, element.Rect(r.W, r.H), style)
		e.Interactive = true
		idx := i
		e.OnClick = func(bool) {
			if err := m.SelectTab(tc, idx); err != nil {
				m.logger.Warn("tab select failed", "index", idx, "error", err)
			}
		}
		tc.chrome = append(tc.chrome, e)
		m.surface.Spawn(e)
	}
	return nil
}

func tabID(i int) string {
	return fmt.Sprintf("tab-%d", i)
}

// holds reports whether the page is reachable from the root.
func (m *Manager) holds(p *Page) bool {
	if p == nil {
		return false
	}
	if p.Holder() != nil {
		return true
	}
	return m.root.Page() == p
}

func containerOrNil(sp *SplitContainer) Container {
	if sp == nil {
		return nil
	}
	return sp
}
