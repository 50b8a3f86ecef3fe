package retained

import (
	"github.com/quartzui/quartz/geom"
)

// CellKind distinguishes the contents of a container cell. Flexspace is a
// first-class variant rather than a sentinel widget compared by identity.
type CellKind int

const (
	// CellWidget holds a real widget.
	CellWidget CellKind = iota

	// CellFlexspace consumes leftover box-direction space by weight
	// without hosting a widget. Only meaningful inside a Box.
	CellFlexspace
)

// CellAttrs is the per-cell attribute record consumed when a widget is
// added to a container. All fields are optional; the record is validated
// at the container boundary and malformed parts fall back to defaults with
// a diagnostic, never an abort.
type CellAttrs struct {
	// FillW and FillH ask the container to size the child to the cell on
	// the respective axis.
	FillW, FillH bool

	// HAlign and VAlign position a non-filled child inside its cell.
	HAlign, VAlign Align

	// Padding is a CSS-style shorthand (1-4 values) applied inside the
	// cell, around the child.
	Padding []float64

	// PadTop, PadRight, PadBottom and PadLeft override the shorthand per
	// edge.
	PadTop, PadRight, PadBottom, PadLeft *float64

	// MinW/MinH floor the child's reported size; MaxW/MaxH cap the box
	// offered to it. A min larger than the offer forces overflow.
	MinW, MinH, MaxW, MaxH *float64

	// BG fills the resolved cell rectangle behind the child.
	BG *Color

	// Z overrides the child widget's z-order level for this cell.
	Z *int

	// Expand is the weight for competing over leftover box-direction
	// space. Nil means 0, or 1 when the fill flag for the box direction
	// is set. Box only.
	Expand *float64

	// Stretch is the cross-axis sizing policy. Box only.
	Stretch Stretch

	// Spacing overrides the box's spacing after this cell. Box only.
	Spacing *float64
}

// Cell is the (contents, attributes, resolved rectangle) triple a
// container maintains for one child. The resolved rectangle and the box
// scratch fields are recomputed on every reflow.
type Cell struct {
	kind   CellKind
	widget Widget  // nil for CellFlexspace
	weight float64 // flexspace weight
	attrs  CellAttrs

	pad  geom.Insets // resolved cell padding
	rect geom.Rect   // resolved this reflow, relative to the content box

	// Box scratch, valid within a single reflow.
	calcExpand    float64
	measured      bool
	deferredCross bool
	mainExt       float64
	crossExt      float64
	warnedExpand  bool
}

// Kind returns the cell's content variant.
func (c *Cell) Kind() CellKind { return c.kind }

// Widget returns the hosted widget, or nil for a flexspace.
func (c *Cell) Widget() Widget { return c.widget }

// Attrs returns a copy of the cell's attribute record.
func (c *Cell) Attrs() CellAttrs { return c.attrs }

// Rect returns the cell rectangle resolved by the last reflow: position
// and size including the cell padding, relative to the container's content
// box. Downstream paint and hit-test consumers treat it as read-only.
func (c *Cell) Rect() geom.Rect { return c.rect }

// Background returns the cell's background fill, or nil.
func (c *Cell) Background() *Color { return c.attrs.BG }

// effectiveZ is the z-level used for bucketing: the cell override, else
// the widget's z, else zero. Flexspace never draws and stays at zero.
func (c *Cell) effectiveZ() int {
	if c.attrs.Z != nil {
		return *c.attrs.Z
	}
	if c.widget != nil {
		return c.widget.Base().z
	}
	return 0
}

// resolvePadding expands the attrs shorthand plus per-edge overrides into
// a concrete inset set. Invalid shorthands are reported and ignored.
func resolveCellPadding(attrs *CellAttrs, owner string) geom.Insets {
	var pad geom.Insets
	if len(attrs.Padding) > 0 {
		p, err := geom.ExpandEdges(attrs.Padding...)
		if err != nil {
			diag.Warn("invalid cell padding shorthand", "container", owner, "error", err)
		} else {
			pad = p
		}
	}
	if attrs.PadTop != nil {
		pad.Top = *attrs.PadTop
	}
	if attrs.PadRight != nil {
		pad.Right = *attrs.PadRight
	}
	if attrs.PadBottom != nil {
		pad.Bottom = *attrs.PadBottom
	}
	if attrs.PadLeft != nil {
		pad.Left = *attrs.PadLeft
	}
	return pad
}

// alignOffset positions an extent inside a span, honoring the leading and
// trailing cell padding. Center splits the leftover in two; end ignores
// the leading padding, CSS-style. When the span cannot contain the extent
// the child is pinned at the leading edge and overflows.
func alignOffset(a Align, span, extent, lead, trail float64) float64 {
	var off float64
	switch a {
	case AlignCenter:
		off = lead + (span-lead-trail-extent)/2
	case AlignEnd:
		off = span - trail - extent
	default:
		off = lead
	}
	if off < lead && a != AlignEnd {
		off = lead
	}
	return off
}
