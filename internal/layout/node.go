// pattern: Functional Core

package layout

// Kind discriminates layout node types.
type Kind int

const (
	KindLeaf Kind = iota
	KindBox
	KindRow
	KindColumn
)

// Align positions children inside leftover space. Start/Center/End and
// SpaceBetween apply to the main axis; Start/Center/End and Stretch apply
// to the cross axis.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignSpaceBetween
	AlignStretch
)

// Unset marks an explicit dimension or flex basis as not provided.
const Unset = -1.0

// Node is one node of a layout tree. Leaves are sized terminals, Box wraps
// a single child with padding, Row and Column are flex containers laying
// children along one axis.
type Node struct {
	ID   string
	Kind Kind

	// Explicit size, Unset when the node sizes from content or flex.
	Width, Height float64

	// Intrinsic size, used when no explicit size is set (e.g. a text
	// label's natural extent).
	IntrinsicWidth, IntrinsicHeight float64

	Grow   float64
	Shrink float64
	Basis  float64

	Padding float64

	// Container-only properties.
	Gap     float64
	Justify Align // main axis
	Items   Align // cross axis

	Children []*Node
}

func newNode(id string, kind Kind, children ...*Node) *Node {
	return &Node{
		ID:       id,
		Kind:     kind,
		Width:    Unset,
		Height:   Unset,
		Shrink:   1,
		Basis:    Unset,
		Items:    AlignStretch,
		Children: children,
	}
}

// Leaf creates a sized terminal node.
func Leaf(id string) *Node {
	return newNode(id, KindLeaf)
}

// Box creates a single-child wrapper node.
func Box(id string, child *Node) *Node {
	return newNode(id, KindBox, child)
}

// Row creates a container laying children out left to right.
func Row(id string, children ...*Node) *Node {
	return newNode(id, KindRow, children...)
}

// Column creates a container laying children out top to bottom.
func Column(id string, children ...*Node) *Node {
	return newNode(id, KindColumn, children...)
}

// Size sets both explicit dimensions.
func (n *Node) Size(w, h float64) *Node {
	n.Width, n.Height = w, h
	return n
}

// WithWidth sets the explicit width.
func (n *Node) WithWidth(w float64) *Node {
	n.Width = w
	return n
}

// WithHeight sets the explicit height.
func (n *Node) WithHeight(h float64) *Node {
	n.Height = h
	return n
}

// Intrinsic sets the node's natural size, consulted when no explicit size
// is present.
func (n *Node) Intrinsic(w, h float64) *Node {
	n.IntrinsicWidth, n.IntrinsicHeight = w, h
	return n
}

// Flex sets the grow weight.
func (n *Node) Flex(grow float64) *Node {
	n.Grow = grow
	return n
}

// WithShrink sets the shrink weight (default 1).
func (n *Node) WithShrink(s float64) *Node {
	n.Shrink = s
	return n
}

// WithBasis sets the flex basis used when no explicit or intrinsic main
// size exists.
func (n *Node) WithBasis(b float64) *Node {
	n.Basis = b
	return n
}

// WithPadding sets inner padding on all sides.
func (n *Node) WithPadding(p float64) *Node {
	n.Padding = p
	return n
}

// WithGap sets spacing between adjacent children.
func (n *Node) WithGap(g float64) *Node {
	n.Gap = g
	return n
}

// JustifyContent sets main-axis alignment.
func (n *Node) JustifyContent(a Align) *Node {
	n.Justify = a
	return n
}

// AlignItems sets cross-axis alignment.
func (n *Node) AlignItems(a Align) *Node {
	n.Items = a
	return n
}

// Add appends children to a container node.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

func (n *Node) isContainer() bool {
	return n.Kind == KindRow || n.Kind == KindColumn
}
