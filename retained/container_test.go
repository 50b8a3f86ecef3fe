package retained

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/quartzui/quartz/geom"
)

func TestContainerEmptySizesToInsets(t *testing.T) {
	c := NewContainer()
	if err := c.SetPadding(5); err != nil {
		t.Fatal(err)
	}
	if err := c.SetBorder(1); err != nil {
		t.Fatal(err)
	}

	res := reflowAt(t, c, geom.Rect{W: 100, H: 100}, ReflowInput{})
	want := geom.Rect{W: 12, H: 12}
	if diff := cmp.Diff(want, res.Rect); diff != "" {
		t.Errorf("empty container should collapse to its insets (-want +got):\n%s", diff)
	}
}

func TestContainerGrowsToChildren(t *testing.T) {
	c := NewContainer()
	if err := c.SetPadding(4); err != nil {
		t.Fatal(err)
	}
	w := NewWidget()
	w.SetSize(F(30), F(20))
	c.Add(w, CellAttrs{})

	res := reflowAt(t, c, geom.Rect{W: 200, H: 200}, ReflowInput{})
	want := geom.Rect{W: 38, H: 28}
	if diff := cmp.Diff(want, res.Rect); diff != "" {
		t.Errorf("container size (-want +got):\n%s", diff)
	}
}

func TestContainerExplicitSizeWins(t *testing.T) {
	c := NewContainer()
	c.SetSize(F(120), F(60))
	w := NewWidget()
	w.SetSize(F(30), F(20))
	c.Add(w, CellAttrs{})

	res := reflowAt(t, c, geom.Rect{W: 200, H: 200}, ReflowInput{})
	if res.Rect.W != 120 || res.Rect.H != 60 {
		t.Errorf("got %vx%v, want 120x60: explicit beats smaller content", res.Rect.W, res.Rect.H)
	}

	// content larger than explicit wins the other way
	w.SetSize(F(150), F(20))
	res = reflowAt(t, c, geom.Rect{W: 200, H: 200}, ReflowInput{})
	if res.Rect.W != 150 {
		t.Errorf("width = %v, want 150: content extent beats explicit", res.Rect.W)
	}
}

func TestContainerCenterAlignment(t *testing.T) {
	c := NewContainer()
	c.SetSize(F(100), F(50))
	w := NewWidget()
	w.SetSize(F(40), F(10))
	c.Add(w, CellAttrs{HAlign: AlignCenter, VAlign: AlignCenter})

	reflowAt(t, c, geom.Rect{W: 200, H: 200}, ReflowInput{})
	g := w.Geometry()
	if g.Rect.X != 30 || g.Rect.Y != 20 {
		t.Errorf("centered child at (%v, %v), want (30, 20)", g.Rect.X, g.Rect.Y)
	}
}

func TestContainerAlignmentUsesAccumulatedExtent(t *testing.T) {
	// with no explicit size, alignment resolves against the extent known at
	// that point of the walk, so cell order changes the outcome
	c := NewContainer()
	first := NewWidget()
	first.SetSize(F(100), F(10))
	second := NewWidget()
	second.SetSize(F(50), F(10))
	c.Add(first, CellAttrs{})
	c.Add(second, CellAttrs{HAlign: AlignEnd})

	reflowAt(t, c, geom.Rect{W: 400, H: 100}, ReflowInput{})
	if x := second.Geometry().Rect.X; x != 50 {
		t.Errorf("end-aligned second child at x=%v, want 50 (extent was 100)", x)
	}
}

func TestContainerCellPadding(t *testing.T) {
	c := NewContainer()
	w := NewWidget()
	w.SetSize(F(20), F(10))
	cell := c.Add(w, CellAttrs{Padding: []float64{2, 3}})

	reflowAt(t, c, geom.Rect{W: 100, H: 100}, ReflowInput{})
	g := w.Geometry()
	if g.Rect.X != 3 || g.Rect.Y != 2 {
		t.Errorf("padded child at (%v, %v), want (3, 2)", g.Rect.X, g.Rect.Y)
	}
	want := geom.Rect{W: 26, H: 14}
	got := cell.Rect()
	got.X, got.Y = 0, 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("cell rect includes padding (-want +got):\n%s", diff)
	}
}

func TestContainerReflowIdempotent(t *testing.T) {
	c := NewContainer()
	a := NewWidget()
	a.SetSize(F(30), F(10))
	b := NewWidget()
	b.SetSize(F(0.5), F(10))
	c.Add(a, CellAttrs{})
	c.Add(b, CellAttrs{HAlign: AlignCenter})

	box := geom.Rect{W: 100, H: 40}
	first := reflowAt(t, c, box, ReflowInput{})
	ga, gb := a.Geometry(), b.Geometry()
	second := reflowAt(t, c, box, ReflowInput{})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("container result changed on identical reflow (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(ga, a.Geometry()); diff != "" {
		t.Errorf("child a geometry changed (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(gb, b.Geometry()); diff != "" {
		t.Errorf("child b geometry changed (-first +second):\n%s", diff)
	}
}

func TestContainerSkipsInvisible(t *testing.T) {
	c := NewContainer()
	w := NewWidget()
	w.SetSize(F(30), F(30))
	c.Add(w, CellAttrs{})
	w.Hide()

	res := reflowAt(t, c, geom.Rect{W: 100, H: 100}, ReflowInput{})
	if res.Rect.W != 0 || res.Rect.H != 0 {
		t.Errorf("hidden child contributed %vx%v to the extent", res.Rect.W, res.Rect.H)
	}
	if w.Realized() {
		t.Error("hidden child should stay unrealized through a reflow")
	}
}

func TestContainerAutoReparent(t *testing.T) {
	a := NewContainer()
	b := NewContainer()
	w := NewWidget()

	a.Add(w, CellAttrs{})
	b.Add(w, CellAttrs{})

	if a.Len() != 0 {
		t.Errorf("old parent still holds %d cells", a.Len())
	}
	if b.IndexOf(w) != 0 {
		t.Error("new parent does not hold the widget")
	}
	if w.Parent() == nil || w.Parent().Base() != b.Base() {
		t.Error("widget parent pointer not updated")
	}
}

func TestContainerMutationDuringReflowIsDeferred(t *testing.T) {
	c := NewContainer()
	w := NewWidget()
	w.SetSize(F(10), F(10))
	late := NewWidget()
	late.SetSize(F(10), F(10))
	w.OnReflow(func(Widget) {
		if c.IndexOf(late) < 0 {
			c.Add(late, CellAttrs{})
		}
	})
	c.Add(w, CellAttrs{})

	reflowAt(t, c, geom.Rect{W: 100, H: 100}, ReflowInput{})
	if c.Len() != 2 {
		t.Fatalf("deferred add not applied, len=%d", c.Len())
	}
	if late.Realized() {
		t.Error("a widget added mid-pass must wait for the next reflow")
	}
}

func TestZOrderDrawAndHitOrder(t *testing.T) {
	c := NewContainer()
	mk := func(name string, z *int) *WidgetBase {
		w := NewWidget()
		w.SetName(name)
		w.SetSize(F(50), F(50))
		c.Add(w, CellAttrs{Z: z})
		return w
	}
	two := 2
	mk("back", nil)
	top := mk("top", &two)
	mid := mk("mid", nil)

	reflowAt(t, c, geom.Rect{W: 100, H: 100}, ReflowInput{})

	levels := c.ZLevels()
	if diff := cmp.Diff([]int{0, 2}, levels); diff != "" {
		t.Fatalf("z-levels (-want +got):\n%s", diff)
	}
	base := c.CellsAtZ(0)
	if len(base) != 2 || base[0].Widget().Base().Name() != "back" || base[1].Widget().Base().Name() != "mid" {
		t.Error("insertion order not preserved within a z-level")
	}

	// all three overlap at the origin: the top z-level wins the hit
	if hit := c.WidgetAt(10, 10); hit != top {
		t.Errorf("hit %v, want the z=2 widget", hit.Base().Name())
	}

	// within a level, the last-inserted is probed first
	top.Hide()
	reflowAt(t, c, geom.Rect{W: 100, H: 100}, ReflowInput{})
	if hit := c.WidgetAt(10, 10); hit != mid {
		t.Errorf("hit %v, want the last widget at z=0", hit.Base().Name())
	}
}

func TestWidgetAtRecursesIntoContainers(t *testing.T) {
	outer := NewContainer()
	inner := NewContainer()
	if err := inner.SetPadding(5); err != nil {
		t.Fatal(err)
	}
	leaf := NewWidget()
	leaf.SetSize(F(10), F(10))
	inner.Add(leaf, CellAttrs{})
	outer.Add(inner, CellAttrs{})

	reflowAt(t, outer, geom.Rect{W: 100, H: 100}, ReflowInput{})

	if hit := outer.WidgetAt(7, 7); hit != leaf {
		t.Errorf("hit %T, want the nested leaf", hit)
	}
	// padding band belongs to the inner container itself
	if hit := outer.WidgetAt(2, 2); hit == nil || hit.Base() != inner.Base() {
		t.Errorf("hit %T, want the inner container", hit)
	}
	if hit := outer.WidgetAt(90, 90); hit != nil {
		t.Errorf("hit %T outside every cell, want nil", hit)
	}
}

func TestCellZOverridesWidgetZ(t *testing.T) {
	c := NewContainer()
	w := NewWidget()
	w.SetSize(F(10), F(10))
	w.SetZ(1)
	five := 5
	c.Add(w, CellAttrs{Z: &five})

	reflowAt(t, c, geom.Rect{W: 100, H: 100}, ReflowInput{})
	if diff := cmp.Diff([]int{5}, c.ZLevels()); diff != "" {
		t.Errorf("cell-level z should shadow the widget z (-want +got):\n%s", diff)
	}
}
