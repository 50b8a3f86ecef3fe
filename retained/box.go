package retained

import (
	"github.com/quartzui/quartz/geom"
)

// Orientation is the box direction: the axis along which a Box distributes
// space. The zero value is invalid; a Box cannot exist without declaring
// its orientation.
type Orientation int

const (
	orientationNone Orientation = iota
	Horizontal
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return "none"
}

// Box is a Container specialized with an orientation. Children are stacked
// along the box direction in insertion order; leftover space is distributed
// among expanding cells and flexspaces by weight, and cross-axis sizing
// follows each cell's Stretch policy.
//
// The layout runs in two passes. Pass one measures non-expanding children
// against the remaining space and classifies expand weights, retroactively
// promoting a non-expanding child that consumed the whole remaining space
// ahead of later siblings. Pass two places flexspaces and expanding
// children at their weighted share and resolves the cells whose cross size
// or alignment depends on the final cross extent.
type Box struct {
	Container

	orient  Orientation
	spacing float64
}

// NewBox returns a box with the given orientation. Constructing a box
// without a valid orientation is a programmer error and panics.
func NewBox(o Orientation) *Box {
	if o != Horizontal && o != Vertical {
		panic("retained: NewBox requires Horizontal or Vertical")
	}
	b := &Box{orient: o}
	Init(b)
	return b
}

// NewHBox returns a box that stacks children left to right.
func NewHBox() *Box { return NewBox(Horizontal) }

// NewVBox returns a box that stacks children top to bottom.
func NewVBox() *Box { return NewBox(Vertical) }

// Orientation returns the box direction.
func (b *Box) Orientation() Orientation { return b.orient }

// SetSpacing sets the default gap between consecutive cells in the box
// direction. Individual cells may override it via CellAttrs.Spacing.
func (b *Box) SetSpacing(s float64) {
	if s < 0 {
		s = 0
	}
	b.spacing = s
	b.Invalidate(ReflowFull)
}

// Spacing returns the default inter-cell gap.
func (b *Box) Spacing() float64 { return b.spacing }

// AddFlexspace appends a flexspace cell with the default weight of 1: a
// spaceholder that consumes leftover box-direction space without hosting a
// widget.
func (b *Box) AddFlexspace() *Cell { return b.AddFlexspaceWeight(1) }

// AddFlexspaceWeight appends a flexspace competing for leftover space with
// the given expand weight. Non-positive weights fall back to 1.
func (b *Box) AddFlexspaceWeight(weight float64) *Cell {
	if weight <= 0 {
		weight = 1
	}
	cell := &Cell{kind: CellFlexspace, weight: weight}
	if b.reflowing {
		b.ops = append(b.ops, func() { b.attach(cell, len(b.cells)) })
		return cell
	}
	b.attach(cell, len(b.cells))
	return cell
}

// cellSpacing is the gap after a cell: its override, else the box default.
func (b *Box) cellSpacing(cell *Cell) float64 {
	if cell.attrs.Spacing != nil {
		return *cell.attrs.Spacing
	}
	return b.spacing
}

// cellExpand resolves a cell's calculated expand weight: the explicit
// weight, else 1 when the cell fills the box direction, else 0. A cell
// declaring both fill and an explicit expand of 0 is contradictory; the
// fill request wins, with a one-time diagnostic.
func (b *Box) cellExpand(cell *Cell) float64 {
	fillMain := cell.attrs.FillW
	if b.orient == Vertical {
		fillMain = cell.attrs.FillH
	}
	if cell.attrs.Expand != nil {
		e := *cell.attrs.Expand
		if e == 0 && fillMain {
			if !cell.warnedExpand {
				cell.warnedExpand = true
				diag.Warn("cell fills the box direction but declares expand=0; fill wins",
					"box", b.Name())
			}
			return 1
		}
		return e
	}
	if fillMain {
		return 1
	}
	return 0
}

// axis helpers: split a pair of extents or attributes into (main, cross)
// for the given direction.

func axisExt(horiz bool, w, h float64) (main, cross float64) {
	if horiz {
		return w, h
	}
	return h, w
}

func axisPad(horiz bool, in geom.Insets) (main, cross float64) {
	if horiz {
		return in.Horizontal(), in.Vertical()
	}
	return in.Vertical(), in.Horizontal()
}

func axisMin(horiz bool, a *CellAttrs) (main, cross *float64) {
	if horiz {
		return a.MinW, a.MinH
	}
	return a.MinH, a.MinW
}

func axisMax(horiz bool, a *CellAttrs) (main, cross *float64) {
	if horiz {
		return a.MaxW, a.MaxH
	}
	return a.MaxH, a.MaxW
}

func axisFillCross(horiz bool, a *CellAttrs) bool {
	if horiz {
		return a.FillH
	}
	return a.FillW
}

// hasVisibleAfter reports whether any visible cell follows index i; it
// gates both inter-cell spacing and starvation promotion.
func hasVisibleAfter(cells []*Cell, i int) bool {
	for _, cell := range cells[i+1:] {
		if cell.kind == CellFlexspace {
			return true
		}
		if cell.widget != nil && cell.widget.Base().visible {
			return true
		}
	}
	return false
}

// boxPass carries pass-one output into pass two.
type boxPass struct {
	cells    []*Cell
	avail    float64 // leftover box-direction space
	units    float64 // total expand units, flexspaces included
	unitSize float64 // avail / units, 0 when no units
	maxCross float64 // largest cross extent (cell padding included) seen
	// fullCross is set when any cell requests full cross stretch, which
	// forces the box's cross size to the full offered cross bound.
	fullCross bool
}

// measureCells is pass one: walk the cells in order, measure the
// non-expanding children against the remaining box-direction space, and
// accumulate expand units for everything else.
func (b *Box) measureCells(cells []*Cell, contentMain, contentCross float64, in ReflowInput, ctx *Context) *boxPass {
	horiz := b.orient == Horizontal
	clampMain := in.ClampW
	if !horiz {
		clampMain = in.ClampH
	}
	st := &boxPass{cells: cells, avail: contentMain}

	for i, cell := range cells {
		cell.calcExpand = 0
		cell.measured = false
		cell.deferredCross = false
		cell.mainExt, cell.crossExt = 0, 0

		if cell.kind == CellFlexspace {
			st.units += cell.weight
			continue
		}
		wb := cell.widget.Base()
		if !wb.visible {
			wb.unrealize()
			cell.rect = geom.Rect{}
			continue
		}

		if e := b.cellExpand(cell); e > 0 {
			// expanding cells are sized in pass two, once the leftover
			// space is known; their trailing spacing is charged now so the
			// unit size reflects the true leftover
			cell.calcExpand = e
			st.units += e
			if cell.attrs.Stretch == StretchFull {
				st.fullCross = true
			}
			if hasVisibleAfter(cells, i) {
				st.avail -= b.cellSpacing(cell)
			}
			continue
		}

		pad := cell.pad.Add(wb.margin)
		mainPad, crossPad := axisPad(horiz, pad)
		offMain := st.avail - mainPad
		offCross := contentCross - crossPad
		maxMain, maxCross := axisMax(horiz, &cell.attrs)
		if maxMain != nil && offMain > *maxMain {
			offMain = *maxMain
		}
		if maxCross != nil && offCross > *maxCross {
			offCross = *maxCross
		}
		if offMain < 0 {
			offMain = 0
		}
		if offCross < 0 {
			offCross = 0
		}

		fillCross := axisFillCross(horiz, &cell.attrs)
		switch cell.attrs.Stretch {
		case StretchFull:
			fillCross = true
		case StretchToSiblings:
			// cross fill deferred to pass two: the sibling extent is not
			// known yet
			fillCross = false
			cell.deferredCross = true
		}

		childIn := ReflowInput{ClampW: in.ClampW, ClampH: in.ClampH}
		var childBox geom.Rect
		if horiz {
			childBox = geom.Rect{W: offMain, H: offCross}
			childIn.FillH = fillCross
		} else {
			childBox = geom.Rect{W: offCross, H: offMain}
			childIn.FillW = fillCross
		}
		childIn.Box = &childBox
		res := cell.widget.Reflow(childIn, ctx)

		cm, cc := axisExt(horiz, res.Rect.W, res.Rect.H)
		minMain, minCross := axisMin(horiz, &cell.attrs)
		if minMain != nil && cm < *minMain {
			cm = *minMain
		}
		if minCross != nil && cc < *minCross {
			cc = *minCross
		}

		expandedMain := res.ExpandedW
		if !horiz {
			expandedMain = res.ExpandedH
		}
		if expandedMain && clampMain && hasVisibleAfter(cells, i) {
			// Starvation promotion: a nominally non-expanding child that
			// consumed everything left would starve later siblings.
			// Reclassify it as expanding; pass two redistributes it.
			cell.calcExpand = 1
			st.units++
			if cell.attrs.Stretch == StretchFull {
				st.fullCross = true
			}
			// promotion implies a visible successor, so the trailing
			// spacing is always charged
			st.avail -= b.cellSpacing(cell)
			ctx.Log.Debug("promoted starved cell to expand",
				"box", b.Name(), "cell", i, "widget", wb.Name())
			continue
		}

		cell.measured = true
		cell.mainExt, cell.crossExt = cm, cc
		st.avail -= cm + mainPad
		if hasVisibleAfter(cells, i) {
			st.avail -= b.cellSpacing(cell)
		}
		if cc+crossPad > st.maxCross {
			st.maxCross = cc + crossPad
		}
		if cell.attrs.Stretch == StretchFull {
			st.fullCross = true
		}
	}

	if st.avail < 0 {
		st.avail = 0
	}
	if st.units > 0 {
		st.unitSize = st.avail / st.units
	}
	return st
}

// Reflow runs the two-pass distribution along the box direction and the
// orientation-specific placement pass, then resolves the box's own size.
func (b *Box) Reflow(in ReflowInput, ctx *Context) ReflowResult {
	ctx = ensureContext(ctx)
	in, box, ok := b.resolveInput(in)
	if !ok {
		return ReflowResult{}
	}
	cells := b.beginPass()
	defer b.endPass()

	contentW, contentH, fixedW, fixedH := b.resolveOwn(box, in)

	var extentW, extentH float64
	var st *boxPass
	if b.orient == Horizontal {
		st = b.measureCells(cells, contentW, contentH, in, ctx)
		extentW, extentH = b.placeCellsH(st, contentH, fixedH, in, ctx)
	} else {
		st = b.measureCells(cells, contentH, contentW, in, ctx)
		extentW, extentH = b.placeCellsV(st, contentW, fixedW, in, ctx)
	}

	rect, expandedW, expandedH := b.finishOwn(box, in, extentW, extentH)
	if st.units > 0 {
		// expanding cells consumed the whole offered main extent
		if b.orient == Horizontal {
			expandedW = true
		} else {
			expandedH = true
		}
	}
	res := b.commit(in, box, rect, expandedW, expandedH)
	b.rebuildZOrder(cells)
	return res
}

// deferredCell is a pass-two queue entry. The two deferral reasons are
// independent and tracked separately: crossFill re-reflows the child
// against the final cross extent (stretch-to-siblings); align only
// re-anchors it (non-start alignment without cross fill).
type deferredCell struct {
	cell      *Cell
	crossFill bool
	align     bool
}
