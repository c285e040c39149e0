// pattern: Functional Core

package layout

import "fmt"

// Result is the computed placement of one node: offset from the tree's
// top-left corner plus final size.
type Result struct {
	X, Y float64
	W, H float64
}

// Layout solves a node tree against an available extent. Compute builds a
// fresh result table each call, so repeated solves of an unmodified tree
// are deterministic and never accumulate state.
type Layout struct {
	Root   *Node
	Width  float64
	Height float64

	results map[string]Result
}

// New creates a layout for the given available extent.
func New(width, height float64, root *Node) *Layout {
	return &Layout{Root: root, Width: width, Height: height}
}

// Compute solves the tree in two passes: measure (natural sizes, flex
// distribution) and place (absolute offsets with alignment). It fails if
// the tree is empty or contains duplicate node ids.
func (l *Layout) Compute() error {
	if l.Root == nil {
		return fmt.Errorf("layout has no root node")
	}
	seen := make(map[string]bool)
	if err := checkIDs(l.Root, seen); err != nil {
		return err
	}

	l.results = make(map[string]Result, len(seen))

	w, h := l.Root.Width, l.Root.Height
	if w == Unset {
		w = l.Width
	}
	if h == Unset {
		h = l.Height
	}
	l.place(l.Root, 0, 0, w, h)
	return nil
}

// Result returns the computed placement for a node id. Valid after
// Compute.
func (l *Layout) Result(id string) (Result, bool) {
	r, ok := l.results[id]
	return r, ok
}

// Results returns the full placement table keyed by node id.
func (l *Layout) Results() map[string]Result {
	return l.results
}

func checkIDs(n *Node, seen map[string]bool) error {
	if seen[n.ID] {
		return fmt.Errorf("duplicate layout node id %q", n.ID)
	}
	seen[n.ID] = true
	for _, c := range n.Children {
		if err := checkIDs(c, seen); err != nil {
			return err
		}
	}
	return nil
}

// measure returns a node's natural size under the given constraints,
// without committing any result.
func (l *Layout) measure(n *Node, availW, availH float64) (float64, float64) {
	switch n.Kind {
	case KindLeaf:
		return pick(n.Width, n.IntrinsicWidth), pick(n.Height, n.IntrinsicHeight)

	case KindBox:
		var cw, ch float64
		if len(n.Children) > 0 {
			cw, ch = l.measure(n.Children[0], availW-2*n.Padding, availH-2*n.Padding)
		}
		return pick(n.Width, cw+2*n.Padding), pick(n.Height, ch+2*n.Padding)

	default:
		mainTotal, crossMax := 0.0, 0.0
		innerMainAvail, innerCrossAvail := l.innerAxes(n, availW, availH)
		for i, c := range n.Children {
			cm := l.childBasis(c, n.Kind, innerMainAvail, innerCrossAvail)
			_, cc := l.childNatural(c, n.Kind, innerMainAvail, innerCrossAvail)
			mainTotal += cm
			if i > 0 {
				mainTotal += n.Gap
			}
			if cc > crossMax {
				crossMax = cc
			}
		}
		w, h := axesToSize(n.Kind, mainTotal+2*n.Padding, crossMax+2*n.Padding)
		return pick(n.Width, w), pick(n.Height, h)
	}
}

// place commits a node's result and lays out its children inside it.
func (l *Layout) place(n *Node, x, y, w, h float64) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	l.results[n.ID] = Result{X: x, Y: y, W: w, H: h}

	switch n.Kind {
	case KindLeaf:
		return

	case KindBox:
		if len(n.Children) == 0 {
			return
		}
		c := n.Children[0]
		innerW, innerH := w-2*n.Padding, h-2*n.Padding
		cw, ch := l.measure(c, innerW, innerH)
		if c.Width == Unset || cw > innerW {
			cw = innerW
		}
		if c.Height == Unset || ch > innerH {
			ch = innerH
		}
		l.place(c, x+n.Padding, y+n.Padding, cw, ch)

	default:
		l.placeFlex(n, x, y, w, h)
	}
}

// placeFlex distributes main-axis space among a Row/Column's children and
// positions them with main and cross alignment.
func (l *Layout) placeFlex(n *Node, x, y, w, h float64) {
	if len(n.Children) == 0 {
		return
	}

	innerMain, innerCross := l.innerAxes(n, w, h)
	gaps := n.Gap * float64(len(n.Children)-1)

	// Basis pass.
	bases := make([]float64, len(n.Children))
	total := 0.0
	for i, c := range n.Children {
		bases[i] = l.childBasis(c, n.Kind, innerMain, innerCross)
		total += bases[i]
	}

	// Flex pass: grow into slack, or shrink proportionally to
	// shrink-weight × basis, floored at zero.
	sizes := make([]float64, len(n.Children))
	copy(sizes, bases)
	slack := innerMain - total - gaps
	if slack > 0 {
		totalGrow := 0.0
		for _, c := range n.Children {
			totalGrow += c.Grow
		}
		if totalGrow > 0 {
			for i, c := range n.Children {
				sizes[i] += slack * c.Grow / totalGrow
			}
		}
	} else if slack < 0 {
		totalWeight := 0.0
		for i, c := range n.Children {
			totalWeight += c.Shrink * bases[i]
		}
		if totalWeight > 0 {
			for i, c := range n.Children {
				sizes[i] += slack * c.Shrink * bases[i] / totalWeight
				if sizes[i] < 0 {
					sizes[i] = 0
				}
			}
		}
	}

	// Main alignment over whatever space the flex pass left unclaimed.
	used := gaps
	for _, s := range sizes {
		used += s
	}
	leftover := innerMain - used
	if leftover < 0 {
		leftover = 0
	}
	cursor, between := mainAlignment(n.Justify, leftover, len(n.Children))

	for i, c := range n.Children {
		crossSize := l.childCross(c, n.Kind, innerCross, n.Items)
		crossOff := crossAlignment(n.Items, innerCross, crossSize)

		var cx, cy, cw, ch float64
		if n.Kind == KindRow {
			cx, cy = x+n.Padding+cursor, y+n.Padding+crossOff
			cw, ch = sizes[i], crossSize
		} else {
			cx, cy = x+n.Padding+crossOff, y+n.Padding+cursor
			cw, ch = crossSize, sizes[i]
		}
		l.place(c, cx, cy, cw, ch)

		cursor += sizes[i] + n.Gap
		if i < len(n.Children)-1 {
			cursor += between
		}
	}
}

// childBasis resolves a child's main-axis base size with the precedence
// explicit, intrinsic, flex basis.
func (l *Layout) childBasis(c *Node, parent Kind, availMain, availCross float64) float64 {
	explicit := c.Width
	if parent == KindColumn {
		explicit = c.Height
	}
	if explicit != Unset {
		return explicit
	}

	natMain, _ := l.childNatural(c, parent, availMain, availCross)
	if natMain > 0 {
		return natMain
	}
	if c.Basis != Unset {
		return c.Basis
	}
	return 0
}

// childNatural measures a child and returns its (main, cross) natural size
// relative to the parent's axes.
func (l *Layout) childNatural(c *Node, parent Kind, availMain, availCross float64) (float64, float64) {
	var mw, mh float64
	if parent == KindRow {
		mw, mh = l.measure(c, availMain, availCross)
		return mw, mh
	}
	mw, mh = l.measure(c, availCross, availMain)
	return mh, mw
}

// childCross resolves a child's cross-axis size: explicit wins, Stretch
// fills the container, otherwise the natural size clamped to the extent.
func (l *Layout) childCross(c *Node, parent Kind, innerCross float64, items Align) float64 {
	explicit := c.Height
	if parent == KindColumn {
		explicit = c.Width
	}
	if explicit != Unset {
		if explicit > innerCross {
			return innerCross
		}
		return explicit
	}
	if items == AlignStretch {
		return innerCross
	}
	_, nat := l.childNatural(c, parent, innerCross, innerCross)
	if nat == 0 || nat > innerCross {
		return innerCross
	}
	return nat
}

func (l *Layout) innerAxes(n *Node, w, h float64) (main, cross float64) {
	iw, ih := w-2*n.Padding, h-2*n.Padding
	if iw < 0 {
		iw = 0
	}
	if ih < 0 {
		ih = 0
	}
	if n.Kind == KindRow {
		return iw, ih
	}
	return ih, iw
}

func axesToSize(kind Kind, main, cross float64) (w, h float64) {
	if kind == KindRow {
		return main, cross
	}
	return cross, main
}

func mainAlignment(a Align, leftover float64, count int) (start, between float64) {
	switch a {
	case AlignCenter:
		return leftover / 2, 0
	case AlignEnd:
		return leftover, 0
	case AlignSpaceBetween:
		if count > 1 {
			return 0, leftover / float64(count-1)
		}
		return 0, 0
	default:
		return 0, 0
	}
}

func crossAlignment(a Align, extent, size float64) float64 {
	switch a {
	case AlignCenter:
		return (extent - size) / 2
	case AlignEnd:
		return extent - size
	default:
		return 0
	}
}

func pick(explicit, intrinsic float64) float64 {
	if explicit != Unset {
		return explicit
	}
	return intrinsic
}
