package retained

import (
	"slices"
	"sort"

	"github.com/quartzui/quartz/geom"
)

// Container owns an ordered sequence of (widget, cell-attributes) pairs.
// Insertion order is preserved and semantically meaningful: it is the
// reflow order, the draw order within a z-level, and the reverse of the
// hit-test order.
//
// Children are laid out independently of one another: each child is
// reflowed against the container's content box and then aligned inside it
// via its cell attributes.
type Container struct {
	WidgetBase

	cells []*Cell
	bg    *Color

	// Derived, invalidatable indices.
	index   map[Widget]int // child identity -> cell position; nil when stale
	buckets map[int][]*Cell
	levels  []int // sorted bucket keys; nil when stale

	// Reflow-in-progress guard: structural mutations land in ops and are
	// applied when the pass finishes.
	reflowing bool
	ops       []func()
}

// NewContainer returns an empty container.
func NewContainer() *Container {
	c := &Container{}
	Init(c)
	return c
}

// SetBackground sets the container's own background fill. Draw-only.
func (c *Container) SetBackground(bg *Color) { c.bg = bg }

// Background returns the container background fill, or nil.
func (c *Container) Background() *Color { return c.bg }

// Len returns the number of cells, including flexspaces.
func (c *Container) Len() int { return len(c.cells) }

// CellAt returns the i'th cell in insertion order.
func (c *Container) CellAt(i int) *Cell { return c.cells[i] }

// Cells returns a copy of the cell list in insertion order.
func (c *Container) Cells() []*Cell { return slices.Clone(c.cells) }

// Add appends w with the given cell attributes and returns its cell. If w
// is already parented elsewhere it is detached first; this is a logged,
// recoverable transition, not an error.
func (c *Container) Add(w Widget, attrs CellAttrs) *Cell {
	return c.Insert(len(c.cells), w, attrs)
}

// Insert adds w at position i in the cell order.
func (c *Container) Insert(i int, w Widget, attrs CellAttrs) *Cell {
	cell := &Cell{
		kind:   CellWidget,
		widget: w,
		attrs:  attrs,
		pad:    resolveCellPadding(&attrs, c.Name()),
	}
	c.validateAttrs(cell)
	if c.reflowing {
		c.ops = append(c.ops, func() { c.attach(cell, i) })
		return cell
	}
	c.attach(cell, i)
	return cell
}

func (c *Container) attach(cell *Cell, i int) {
	w := cell.widget
	if w != nil {
		b := w.Base()
		if b.parent != nil && b.parent != widgetSelf(&c.WidgetBase) {
			diag.Debug("reparenting widget",
				"widget", b.Name(), "from", b.parent.Base().Name(), "to", c.Name())
			if r, ok := b.parent.(remover); ok {
				r.Remove(w)
			}
		}
		b.parent = widgetSelf(&c.WidgetBase)
		// work queued before the widget had a parent must become reachable
		// from the new ancestor chain
		if b.pending != ReflowNone || b.childPending {
			b.bubbleChildPending()
		}
	}
	if i < 0 {
		i = 0
	}
	if i > len(c.cells) {
		i = len(c.cells)
	}
	c.cells = slices.Insert(c.cells, i, cell)
	c.invalidateIndices()
	c.Invalidate(ReflowFull)
}

type remover interface {
	Remove(Widget) bool
}

// Remove detaches w from the container. The container's derived indices
// are invalidated immediately.
func (c *Container) Remove(w Widget) bool {
	if c.reflowing {
		c.ops = append(c.ops, func() { c.Remove(w) })
		return c.IndexOf(w) >= 0
	}
	i := c.IndexOf(w)
	if i < 0 {
		return false
	}
	c.cells = slices.Delete(c.cells, i, i+1)
	b := w.Base()
	b.parent = nil
	b.unrealize()
	c.invalidateIndices()
	c.Invalidate(ReflowFull)
	return true
}

// IndexOf returns w's cell position, or -1. The identity index is derived
// lazily and invalidated by any structural change.
func (c *Container) IndexOf(w Widget) int {
	if c.index == nil {
		c.index = make(map[Widget]int, len(c.cells))
		for i, cell := range c.cells {
			if cell.widget != nil {
				c.index[cell.widget] = i
			}
		}
	}
	i, ok := c.index[w]
	if !ok {
		return -1
	}
	return i
}

// CellOf returns the cell hosting w, or nil.
func (c *Container) CellOf(w Widget) *Cell {
	i := c.IndexOf(w)
	if i < 0 {
		return nil
	}
	return c.cells[i]
}

// SetCellAttrs replaces the cell attributes for w.
func (c *Container) SetCellAttrs(w Widget, attrs CellAttrs) {
	cell := c.CellOf(w)
	if cell == nil {
		return
	}
	cell.attrs = attrs
	cell.pad = resolveCellPadding(&attrs, c.Name())
	cell.warnedExpand = false
	c.validateAttrs(cell)
	c.invalidateZOrder()
	c.Invalidate(ReflowFull)
}

func (c *Container) invalidateIndices() {
	c.index = nil
	c.invalidateZOrder()
}

func (c *Container) invalidateZOrder() {
	c.buckets = nil
	c.levels = nil
}

// validateAttrs checks a cell record at the container boundary. Detected
// contradictions are diagnosed and resolved by a defined fallback.
func (c *Container) validateAttrs(cell *Cell) {
	a := &cell.attrs
	if a.Expand != nil && *a.Expand < 0 {
		diag.Warn("negative expand weight, using 0", "container", c.Name())
		a.Expand = F(0)
	}
}

func (c *Container) forEachChild(fn func(Widget)) {
	for _, cell := range c.cells {
		if cell.widget != nil {
			fn(cell.widget)
		}
	}
}

func (c *Container) beginPass() []*Cell {
	c.reflowing = true
	// snapshot: a child mutating this container mid-reflow must not
	// disturb the iteration set
	return slices.Clone(c.cells)
}

func (c *Container) endPass() {
	c.reflowing = false
	if len(c.ops) == 0 {
		return
	}
	ops := c.ops
	c.ops = nil
	for _, op := range ops {
		op()
	}
}

// resolveOwn resolves the container's explicit size against the offered
// box, returning the content-box extents offered to children and whether
// each axis is pinned (explicit or filled).
func (w *WidgetBase) resolveOwn(box geom.Rect, in ReflowInput) (contentW, contentH float64, fixedW, fixedH bool) {
	inset := w.contentInset()
	if v, ok := geom.ResolveDim(w.sizeW, box.W); ok {
		contentW, fixedW = v-inset.Horizontal(), true
	} else if in.FillW {
		contentW, fixedW = box.W-inset.Horizontal(), true
	} else {
		contentW = box.W - inset.Horizontal()
	}
	if v, ok := geom.ResolveDim(w.sizeH, box.H); ok {
		contentH, fixedH = v-inset.Vertical(), true
	} else if in.FillH {
		contentH, fixedH = box.H-inset.Vertical(), true
	} else {
		contentH = box.H - inset.Vertical()
	}
	if contentW < 0 {
		contentW = 0
	}
	if contentH < 0 {
		contentH = 0
	}
	return contentW, contentH, fixedW, fixedH
}

// finishOwn folds the accumulated children extent into the container's own
// border-box size per the max(explicit, accumulated) rule.
func (w *WidgetBase) finishOwn(box geom.Rect, in ReflowInput, extentW, extentH float64) (geom.Rect, bool, bool) {
	inset := w.contentInset()
	ownW := extentW + inset.Horizontal()
	ownH := extentH + inset.Vertical()
	if v, ok := geom.ResolveDim(w.sizeW, box.W); ok && v > ownW {
		ownW = v
	}
	if v, ok := geom.ResolveDim(w.sizeH, box.H); ok && v > ownH {
		ownH = v
	}
	if in.FillW && ownW < box.W {
		ownW = box.W
	}
	if in.FillH && ownH < box.H {
		ownH = box.H
	}
	// accumulated extent is never clamped to the offered box: overflow is
	// structural at this layer; only a viewport ancestor clips it
	ownW = geom.ClampDim(ownW, w.minW, w.maxW)
	ownH = geom.ClampDim(ownH, w.minH, w.maxH)

	ux, uy := w.offset()
	rect := geom.Rect{X: box.X + ux, Y: box.Y + uy, W: ownW, H: ownH}
	expandedW := in.FillW || (box.W > 0 && ownW >= box.W)
	expandedH := in.FillH || (box.H > 0 && ownH >= box.H)
	return rect, expandedW, expandedH
}

// Reflow lays out each visible child independently against the container's
// content box, aligns it via its cell attributes, accumulates the
// container's intrinsic size, and rebuilds the z-order buckets.
func (c *Container) Reflow(in ReflowInput, ctx *Context) ReflowResult {
	ctx = ensureContext(ctx)
	in, box, ok := c.resolveInput(in)
	if !ok {
		return ReflowResult{}
	}
	cells := c.beginPass()
	defer c.endPass()

	contentW, contentH, fixedW, fixedH := c.resolveOwn(box, in)

	var extentW, extentH float64
	for _, cell := range cells {
		if cell.kind == CellFlexspace {
			// flexspace only has meaning along a box direction
			cell.rect = geom.Rect{}
			continue
		}
		child := cell.widget
		b := child.Base()
		if !b.visible {
			b.unrealize()
			cell.rect = geom.Rect{}
			continue
		}

		ux, uy := b.offset()
		pad := cell.pad.Add(b.margin)

		// a child positioned away from the origin is offered less room
		// toward the far edge
		offW := contentW - ux - pad.Horizontal()
		offH := contentH - uy - pad.Vertical()
		if cell.attrs.MaxW != nil && offW > *cell.attrs.MaxW {
			offW = *cell.attrs.MaxW
		}
		if cell.attrs.MaxH != nil && offH > *cell.attrs.MaxH {
			offH = *cell.attrs.MaxH
		}
		if offW < 0 {
			offW = 0
		}
		if offH < 0 {
			offH = 0
		}

		childBox := geom.Rect{W: offW, H: offH}
		res := child.Reflow(ReflowInput{
			Box:    &childBox,
			FillW:  cell.attrs.FillW,
			FillH:  cell.attrs.FillH,
			ClampW: in.ClampW,
			ClampH: in.ClampH,
		}, ctx)

		// clamp upward to the cell min, never downward to the max: only
		// a viewport ancestor may clip overflow
		cw := res.Rect.W
		ch := res.Rect.H
		if cell.attrs.MinW != nil && cw < *cell.attrs.MinW {
			cw = *cell.attrs.MinW
		}
		if cell.attrs.MinH != nil && ch < *cell.attrs.MinH {
			ch = *cell.attrs.MinH
		}

		// alignment resolves against the extent known at this point in
		// the walk, unless an explicit size already fixed it
		alignW := extentW
		if fixedW {
			alignW = contentW
		}
		alignH := extentH
		if fixedH {
			alignH = contentH
		}

		x := ux + alignOffset(cell.attrs.HAlign, alignW, cw, pad.Left, pad.Right)
		y := uy + alignOffset(cell.attrs.VAlign, alignH, ch, pad.Top, pad.Bottom)

		cell.rect = geom.Rect{
			X: x - pad.Left,
			Y: y - pad.Top,
			W: cw + pad.Horizontal(),
			H: ch + pad.Vertical(),
		}
		b.place(x, y)

		if right := cell.rect.X + cell.rect.W; right > extentW {
			extentW = right
		}
		if bottom := cell.rect.Y + cell.rect.H; bottom > extentH {
			extentH = bottom
		}
	}

	rect, expandedW, expandedH := c.finishOwn(box, in, extentW, extentH)
	res := c.commit(in, box, rect, expandedW, expandedH)
	c.rebuildZOrder(cells)
	return res
}

// RealizeGeometry resolves absolute coordinates for the container and all
// realized children.
func (c *Container) RealizeGeometry(ctx *Context) {
	c.WidgetBase.RealizeGeometry(ctx)
	for _, cell := range c.cells {
		if cell.widget == nil {
			continue
		}
		if cell.widget.Base().realized {
			cell.widget.RealizeGeometry(ctx)
		}
	}
}

func (c *Container) rebuildZOrder(cells []*Cell) {
	buckets := make(map[int][]*Cell)
	for _, cell := range cells {
		if cell.kind != CellWidget || !cell.widget.Base().realized {
			continue
		}
		z := cell.effectiveZ()
		buckets[z] = append(buckets[z], cell)
	}
	levels := make([]int, 0, len(buckets))
	for z := range buckets {
		levels = append(levels, z)
	}
	sort.Ints(levels)
	c.buckets = buckets
	c.levels = levels
}

func (c *Container) ensureZOrder() {
	if c.buckets == nil {
		c.rebuildZOrder(c.cells)
	}
}

// ZLevels returns the populated z-levels in ascending draw order.
func (c *Container) ZLevels() []int {
	c.ensureZOrder()
	return slices.Clone(c.levels)
}

// CellsAtZ returns the realized cells at level z in insertion order, which
// is the draw order within the level.
func (c *Container) CellsAtZ(z int) []*Cell {
	c.ensureZOrder()
	return slices.Clone(c.buckets[z])
}

// WidgetAt hit-tests a point given in the container's content-box
// coordinates. Levels are probed top-down; within a level the probe order
// is the exact reverse of insertion order. Container children are probed
// recursively.
func (c *Container) WidgetAt(x, y float64) Widget {
	c.ensureZOrder()
	for li := len(c.levels) - 1; li >= 0; li-- {
		bucket := c.buckets[c.levels[li]]
		for i := len(bucket) - 1; i >= 0; i-- {
			cell := bucket[i]
			if !cell.rect.Contains(x, y) {
				continue
			}
			child := cell.widget
			if inner, ok := child.(interface {
				WidgetAt(float64, float64) Widget
			}); ok {
				b := child.Base()
				inset := b.contentInset()
				sx, sy := 0.0, 0.0
				if s, ok := child.(scroller); ok {
					sx, sy = s.scrollOffset()
				}
				if hit := inner.WidgetAt(
					x-b.calc.Rect.X-inset.Left+sx,
					y-b.calc.Rect.Y-inset.Top+sy,
				); hit != nil {
					return hit
				}
			}
			return child
		}
	}
	return nil
}
