package layout

import (
	"math"
	"testing"
)

const eps = 1e-9

func mustCompute(t *testing.T, l *Layout) {
	t.Helper()
	if err := l.Compute(); err != nil {
		t.Fatalf("Compute: %v", err)
	}
}

func result(t *testing.T, l *Layout, id string) Result {
	t.Helper()
	r, ok := l.Result(id)
	if !ok {
		t.Fatalf("no result for %q", id)
	}
	return r
}

func TestLeafSizing(t *testing.T) {
	tests := []struct {
		name         string
		node         *Node
		wantW, wantH float64
	}{
		{"explicit size", Leaf("a").Size(2, 1), 2, 1},
		{"intrinsic fallback", Leaf("a").Intrinsic(1.5, 0.25), 1.5, 0.25},
		{"explicit beats intrinsic", Leaf("a").Size(2, 1).Intrinsic(9, 9), 2, 1},
		{"unsized root fills extent", Leaf("a"), 4, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(4, 3, tt.node)
			mustCompute(t, l)
			r := result(t, l, "a")
			if r.W != tt.wantW || r.H != tt.wantH {
				t.Errorf("size = (%v,%v), want (%v,%v)", r.W, r.H, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRowGrowDistribution(t *testing.T) {
	// Slack distributes proportionally to grow weights and final sizes sum
	// to the available width.
	l := New(10, 2, Row("row",
		Leaf("a").WithWidth(2),
		Leaf("b").Flex(1),
		Leaf("c").Flex(3),
	))
	mustCompute(t, l)

	a, b, c := result(t, l, "a"), result(t, l, "b"), result(t, l, "c")
	if a.W != 2 {
		t.Errorf("a.W = %v, want 2", a.W)
	}
	if math.Abs(b.W-2) > eps {
		t.Errorf("b.W = %v, want 2 (1/4 of 8 slack)", b.W)
	}
	if math.Abs(c.W-6) > eps {
		t.Errorf("c.W = %v, want 6 (3/4 of 8 slack)", c.W)
	}
	if sum := a.W + b.W + c.W; math.Abs(sum-10) > eps {
		t.Errorf("widths sum to %v, want 10", sum)
	}
}

func TestRowShrink(t *testing.T) {
	// 4+4+4 into 10: overflow 2 shrinks proportionally to shrink × basis.
	l := New(10, 1, Row("row",
		Leaf("a").WithWidth(4),
		Leaf("b").WithWidth(4),
		Leaf("c").WithWidth(4),
	))
	mustCompute(t, l)

	for _, id := range []string{"a", "b", "c"} {
		r := result(t, l, id)
		if math.Abs(r.W-10.0/3.0) > eps {
			t.Errorf("%s.W = %v, want %v", id, r.W, 10.0/3.0)
		}
	}
}

func TestRowShrinkFloorsAtZero(t *testing.T) {
	l := New(1, 1, Row("row",
		Leaf("a").WithWidth(0.5).WithShrink(100),
		Leaf("b").WithWidth(10).WithShrink(0),
	))
	mustCompute(t, l)

	a := result(t, l, "a")
	if a.W < 0 {
		t.Errorf("a.W = %v, must not be negative", a.W)
	}
	b := result(t, l, "b")
	if b.W != 10 {
		t.Errorf("b.W = %v, want 10 (shrink 0 is rigid)", b.W)
	}
}

func TestColumnGapScenario(t *testing.T) {
	// column(gap=0.1){ leaf(h=0.5); leaf(grow=1) } in 4x2: the flexible
	// leaf resolves to 2 - 0.5 - 0.1 = 1.4.
	l := New(4, 2, Column("col",
		Leaf("fixed").WithHeight(0.5),
		Leaf("flex").Flex(1),
	).WithGap(0.1))
	mustCompute(t, l)

	flex := result(t, l, "flex")
	if math.Abs(flex.H-1.4) > eps {
		t.Errorf("flex.H = %v, want 1.4", flex.H)
	}
	if flex.Y != 0.6 {
		t.Errorf("flex.Y = %v, want 0.6", flex.Y)
	}
	fixed := result(t, l, "fixed")
	if fixed.W != 4 {
		t.Errorf("fixed.W = %v, want 4 (stretch fills cross axis)", fixed.W)
	}
}

func TestComputeIdempotent(t *testing.T) {
	l := New(6, 4, Column("col",
		Row("top", Leaf("a").Flex(1), Leaf("b").WithWidth(1)).WithHeight(1),
		Box("box", Leaf("inner").Size(2, 1)).WithPadding(0.2).Flex(1),
	).WithGap(0.5))
	mustCompute(t, l)

	first := make(map[string]Result, len(l.Results()))
	for id, r := range l.Results() {
		first[id] = r
	}

	mustCompute(t, l)
	if len(l.Results()) != len(first) {
		t.Fatalf("result count changed: %d -> %d", len(first), len(l.Results()))
	}
	for id, r := range l.Results() {
		if first[id] != r {
			t.Errorf("%s changed across computes: %+v -> %+v", id, first[id], r)
		}
	}
}

func TestBoxPadding(t *testing.T) {
	l := New(4, 4, Box("box", Leaf("inner")).WithPadding(0.5))
	mustCompute(t, l)

	inner := result(t, l, "inner")
	if inner.X != 0.5 || inner.Y != 0.5 {
		t.Errorf("inner offset = (%v,%v), want (0.5,0.5)", inner.X, inner.Y)
	}
	if inner.W != 3 || inner.H != 3 {
		t.Errorf("inner size = (%v,%v), want (3,3)", inner.W, inner.H)
	}
}

func TestMainAlignment(t *testing.T) {
	child := func() []*Node {
		return []*Node{Leaf("a").Size(1, 1), Leaf("b").Size(1, 1)}
	}

	tests := []struct {
		name    string
		justify Align
		wantAX  float64
		wantBX  float64
	}{
		{"start", AlignStart, 0, 1},
		{"center", AlignCenter, 1, 2},
		{"end", AlignEnd, 2, 3},
		{"space between", AlignSpaceBetween, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(4, 1, Row("row", child()...).JustifyContent(tt.justify))
			mustCompute(t, l)
			a, b := result(t, l, "a"), result(t, l, "b")
			if math.Abs(a.X-tt.wantAX) > eps || math.Abs(b.X-tt.wantBX) > eps {
				t.Errorf("offsets = (%v,%v), want (%v,%v)", a.X, b.X, tt.wantAX, tt.wantBX)
			}
		})
	}
}

func TestCrossAlignment(t *testing.T) {
	tests := []struct {
		name  string
		items Align
		wantY float64
		wantH float64
	}{
		{"stretch fills", AlignStretch, 0, 2},
		{"start", AlignStart, 0, 0.5},
		{"center", AlignCenter, 0.75, 0.5},
		{"end", AlignEnd, 1.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leaf := Leaf("a").WithWidth(1)
			if tt.items != AlignStretch {
				leaf = leaf.Intrinsic(0, 0.5)
			}
			l := New(4, 2, Row("row", leaf).AlignItems(tt.items))
			mustCompute(t, l)
			a := result(t, l, "a")
			if math.Abs(a.Y-tt.wantY) > eps || math.Abs(a.H-tt.wantH) > eps {
				t.Errorf("a = (Y=%v,H=%v), want (Y=%v,H=%v)", a.Y, a.H, tt.wantY, tt.wantH)
			}
		})
	}
}

func TestNestedOffsetsAccumulate(t *testing.T) {
	l := New(6, 6, Column("col",
		Leaf("top").WithHeight(1),
		Row("row",
			Leaf("left").WithWidth(2),
			Leaf("right").Flex(1),
		).Flex(1),
	).WithPadding(0.5))
	mustCompute(t, l)

	right := result(t, l, "right")
	if right.X != 2.5 {
		t.Errorf("right.X = %v, want 2.5 (padding + sibling)", right.X)
	}
	if right.Y != 1.5 {
		t.Errorf("right.Y = %v, want 1.5 (padding + top row)", right.Y)
	}
}

func TestComputeErrors(t *testing.T) {
	tests := []struct {
		name string
		l    *Layout
	}{
		{"nil root", New(1, 1, nil)},
		{"duplicate ids", New(1, 1, Row("r", Leaf("a"), Leaf("a")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.l.Compute(); err == nil {
				t.Error("expected error")
			}
		})
	}
}
