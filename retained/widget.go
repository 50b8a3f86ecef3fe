// Package retained implements a retained-mode widget tree with a two-pass
// geometry reflow engine: a CSS-like box model, container layout with
// per-cell attributes, and directional boxes that distribute leftover space
// by expand weight.
//
// Layout is single-threaded and synchronous. A full reflow walks the tree
// from the root once per update cycle; attribute setters never relayout
// directly, they queue a Trigger that the driver coalesces into the next
// cycle.
package retained

import (
	"fmt"

	"github.com/quartzui/quartz/geom"
)

// Align selects where a child sits inside its cell on one axis.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
)

// Stretch is the cross-axis sizing policy for a Box cell.
type Stretch int

const (
	// StretchNone keeps the child's own cross size.
	StretchNone Stretch = iota

	// StretchFull sizes the child to the box's full offered cross extent
	// and forces the box's cross size to that extent.
	StretchFull

	// StretchToSiblings sizes the child to the largest sibling's cross
	// extent, resolved in a deferred pass once all siblings are measured.
	StretchToSiblings
)

// F returns a pointer to v, for the optional dimension attributes.
func F(v float64) *float64 { return &v }

// Calc holds a widget's calculated attributes. Only these are valid for
// drawing and hit-testing, and only after at least one reflow; they are
// invalidated by the next structural change.
type Calc struct {
	// Rect is the border-box rectangle relative to the parent's content
	// origin.
	Rect geom.Rect

	// AbsX and AbsY are the window-absolute border-box origin, filled in
	// by the RealizeGeometry pass after layout.
	AbsX, AbsY float64

	Padding geom.Insets
	Border  geom.Insets
	Margin  geom.Insets

	ExpandedW, ExpandedH bool
}

// Widget is the atomic layout unit. Concrete widgets embed WidgetBase and
// pass themselves through Init to wire virtual dispatch.
type Widget interface {
	// Base returns the embedded attribute and geometry state.
	Base() *WidgetBase

	// Reflow computes the widget's position and size against the offered
	// bounding box, updates its calculated geometry, and marks it
	// realized. See ReflowInput for the partial-reflow convention.
	Reflow(in ReflowInput, ctx *Context) ReflowResult

	// RealizeGeometry is the post-layout hook: it resolves
	// window-absolute coordinates from the parent chain. Containers
	// recurse into their children.
	RealizeGeometry(ctx *Context)

	// IntrinsicSize reports the widget's natural content size given the
	// available room, used when no explicit size is set.
	IntrinsicSize(availW, availH float64) (w, h float64)

	forEachChild(fn func(Widget))
}

// WidgetBase carries the user-set attributes, the calculated attributes,
// and the reflow bookkeeping shared by all widgets.
type WidgetBase struct {
	self   Widget
	parent Widget
	name   string

	// User-set attributes. Size values follow the relative-size rules: a
	// value in (0, 1] is a fraction of the offered box, a negative value
	// is an offset from the box's far edge. Position offsets are plain
	// numbers and do not affect siblings.
	posX, posY *float64
	sizeW      *float64
	sizeH      *float64
	minW, minH *float64
	maxW, maxH *float64
	padding    geom.Insets
	border     geom.Insets
	margin     geom.Insets
	visible    bool
	z          int

	calc     Calc
	realized bool

	lastIn  ReflowInput
	lastBox geom.Rect
	hasBox  bool

	pending      Trigger
	childPending bool

	onReflow    func(Widget)
	onUnrealize func(Widget)
}

// Init wires a concrete widget's virtual dispatch and defaults. Widget
// implementations embedding WidgetBase must pass themselves here before
// first use; the package constructors do this for the built-in types.
func Init(w Widget) {
	b := w.Base()
	b.self = w
	b.visible = true
}

// NewWidget returns a plain leaf widget with no intrinsic size.
func NewWidget() *WidgetBase {
	w := &WidgetBase{}
	Init(w)
	return w
}

func widgetSelf(b *WidgetBase) Widget {
	if b.self != nil {
		return b.self
	}
	return b
}

// Base implements Widget.
func (w *WidgetBase) Base() *WidgetBase { return w }

func (w *WidgetBase) forEachChild(func(Widget)) {}

// IntrinsicSize implements Widget. The base widget has no content, so its
// natural size is zero.
func (w *WidgetBase) IntrinsicSize(availW, availH float64) (float64, float64) {
	return 0, 0
}

// SetName attaches a debug name used in diagnostics.
func (w *WidgetBase) SetName(name string) { w.name = name }

// Name returns the debug name, or a placeholder derived from identity.
func (w *WidgetBase) Name() string {
	if w.name != "" {
		return w.name
	}
	return fmt.Sprintf("widget(%p)", w)
}

// Parent returns the widget's current container, or nil.
func (w *WidgetBase) Parent() Widget { return w.parent }

// Visible reports the user-set visibility.
func (w *WidgetBase) Visible() bool { return w.visible }

// Realized reports whether the widget has completed a reflow since it was
// last shown or restructured.
func (w *WidgetBase) Realized() bool { return w.realized }

// Geometry returns the calculated attributes. The zero Calc is returned
// until the first reflow completes.
func (w *WidgetBase) Geometry() Calc {
	if !w.realized {
		return Calc{}
	}
	return w.calc
}

// Invalidate queues a reflow of the given class for the next update cycle.
// Setters call this with their intrinsic class; callers may invoke it
// directly to override a classification for one mutation.
func (w *WidgetBase) Invalidate(t Trigger) {
	if t == ReflowNone {
		return
	}
	if t > w.pending {
		w.pending = t
	}
	w.bubbleChildPending()
}

// bubbleChildPending marks the ancestor chain so CollectPending descends to
// this widget. The chain stops at the first already-marked ancestor: its own
// ancestors are marked by the invariant.
func (w *WidgetBase) bubbleChildPending() {
	for p := w.parent; p != nil; p = p.Base().parent {
		pb := p.Base()
		if pb.childPending {
			break
		}
		pb.childPending = true
	}
}

// SetPos sets the position offset relative to the parent's content origin.
// Nil clears an axis back to zero.
func (w *WidgetBase) SetPos(x, y *float64) {
	w.posX, w.posY = x, y
	w.Invalidate(ReflowFull)
}

// SetSize sets the explicit border-box size. Nil means intrinsic; values
// in (0, 1] are fractions of the offered box; negative values are offsets
// from the box's far edge.
func (w *WidgetBase) SetSize(width, height *float64) {
	w.sizeW, w.sizeH = width, height
	w.Invalidate(ReflowFull)
}

// SetMinSize sets the minimum border-box size. A minimum larger than the
// offered box forces controlled overflow rather than an error.
func (w *WidgetBase) SetMinSize(width, height *float64) {
	w.minW, w.minH = width, height
	w.Invalidate(ReflowFull)
}

// SetMaxSize sets the maximum border-box size.
func (w *WidgetBase) SetMaxSize(width, height *float64) {
	w.maxW, w.maxH = width, height
	w.Invalidate(ReflowFull)
}

// SetPadding sets the widget's padding from a CSS-style shorthand (1, 2, 3
// or 4 values). A malformed shorthand is a configuration error: it is
// returned, logged, and the previous padding is kept.
func (w *WidgetBase) SetPadding(vals ...float64) error {
	in, err := geom.ExpandEdges(vals...)
	if err != nil {
		diag.Warn("invalid padding shorthand", "widget", w.Name(), "error", err)
		return fmt.Errorf("padding: %w", err)
	}
	w.padding = in
	w.Invalidate(ReflowFull)
	return nil
}

// SetBorder sets the border widths from a CSS-style shorthand.
func (w *WidgetBase) SetBorder(vals ...float64) error {
	in, err := geom.ExpandEdges(vals...)
	if err != nil {
		diag.Warn("invalid border shorthand", "widget", w.Name(), "error", err)
		return fmt.Errorf("border: %w", err)
	}
	w.border = in
	w.Invalidate(ReflowFull)
	return nil
}

// SetMargin sets the margin from a CSS-style shorthand. Margin lies outside
// the border box: parents subtract it from the box offered to the widget.
func (w *WidgetBase) SetMargin(vals ...float64) error {
	in, err := geom.ExpandEdges(vals...)
	if err != nil {
		diag.Warn("invalid margin shorthand", "widget", w.Name(), "error", err)
		return fmt.Errorf("margin: %w", err)
	}
	w.margin = in
	w.Invalidate(ReflowFull)
	return nil
}

// SetVisible shows or hides the widget. Hiding unrealizes it immediately
// and releases transient rendering state via the unrealize hook.
func (w *WidgetBase) SetVisible(v bool) {
	if w.visible == v {
		return
	}
	w.visible = v
	if !v {
		w.unrealize()
	}
	w.Invalidate(ReflowFull)
}

// Show makes the widget visible.
func (w *WidgetBase) Show() { w.SetVisible(true) }

// Hide makes the widget invisible and unrealizes it.
func (w *WidgetBase) Hide() { w.SetVisible(false) }

// SetZ sets the widget's z-order level. Draw order within a level is
// insertion order. This is a draw-only change: no reflow is queued, only
// the parent's z-bucket index is invalidated.
func (w *WidgetBase) SetZ(z int) {
	if w.z == z {
		return
	}
	w.z = z
	if p, ok := w.parent.(zOrderInvalidator); ok {
		p.invalidateZOrder()
	}
}

// Z returns the user-set z-order level.
func (w *WidgetBase) Z() int { return w.z }

// OnReflow registers the reflow-completed notification. The callback may
// queue future reflows but must not force an immediate nested one.
func (w *WidgetBase) OnReflow(fn func(Widget)) { w.onReflow = fn }

// OnUnrealize registers a hook called when the widget is hidden or
// removed, for releasing transient rendering resources.
func (w *WidgetBase) OnUnrealize(fn func(Widget)) { w.onUnrealize = fn }

type zOrderInvalidator interface {
	invalidateZOrder()
}

func (w *WidgetBase) unrealize() {
	if !w.realized {
		return
	}
	w.realized = false
	if w.onUnrealize != nil {
		w.onUnrealize(widgetSelf(w))
	}
}

// contentInset is the combined padding+border inset of the border box.
func (w *WidgetBase) contentInset() geom.Insets {
	return w.padding.Add(w.border)
}

// offset resolves the user position offsets.
func (w *WidgetBase) offset() (float64, float64) {
	var x, y float64
	if w.posX != nil {
		x = *w.posX
	}
	if w.posY != nil {
		y = *w.posY
	}
	return x, y
}

// resolveInput normalizes a reflow input: a nil box substitutes the input
// saved by the previous reflow. ok is false when the widget has never been
// offered a box, in which case geometry degenerates to zero.
func (w *WidgetBase) resolveInput(in ReflowInput) (ReflowInput, geom.Rect, bool) {
	if in.Box == nil {
		if !w.hasBox {
			return in, geom.Rect{}, false
		}
		saved := w.lastIn
		saved.Box = &w.lastBox
		return saved, w.lastBox, true
	}
	return in, *in.Box, true
}

// commit records the result of a reflow: calculated geometry, the
// last-known box for partial reflows, realization, and the completion
// notification.
func (w *WidgetBase) commit(in ReflowInput, box, rect geom.Rect, expandedW, expandedH bool) ReflowResult {
	w.lastBox = box
	in.Box = nil
	w.lastIn = in
	w.hasBox = true

	w.calc.Rect = rect
	w.calc.Padding = w.padding
	w.calc.Border = w.border
	w.calc.Margin = w.margin
	w.calc.ExpandedW = expandedW
	w.calc.ExpandedH = expandedH
	w.realized = true

	if w.onReflow != nil {
		w.onReflow(widgetSelf(w))
	}
	return ReflowResult{Rect: rect, ExpandedW: expandedW, ExpandedH: expandedH}
}

// place moves the widget's calculated rect origin, used by parents to
// apply alignment after the child has sized itself.
func (w *WidgetBase) place(x, y float64) {
	w.calc.Rect.X = x
	w.calc.Rect.Y = y
}

// resolveSize resolves one axis of the widget's size against the offered
// bound, applying fill, intrinsic fallback, min/max and the clamp flag.
func resolveSize(spec *float64, bound float64, fill bool, intrinsic float64, min, max *float64, clamp bool) (v float64, expanded bool) {
	v, set := geom.ResolveDim(spec, bound)
	if !set {
		if fill {
			v = bound
		} else {
			v = intrinsic
		}
	}
	v = geom.ClampDim(v, min, max)
	if clamp && v > bound {
		v = bound
		// an explicit min still wins: overflow is structural, not clipped
		if min != nil && v < *min {
			v = *min
		}
	}
	expanded = fill || (bound > 0 && v >= bound)
	return v, expanded
}

// Reflow implements the leaf layout step: resolve the user-set size
// against the offered box, fall back to the intrinsic size, clamp, and
// record calculated geometry.
func (w *WidgetBase) Reflow(in ReflowInput, ctx *Context) ReflowResult {
	_ = ensureContext(ctx)
	in, box, ok := w.resolveInput(in)
	if !ok {
		return ReflowResult{}
	}

	iw, ih := widgetSelf(w).IntrinsicSize(box.W, box.H)
	inset := w.contentInset()
	iw += inset.Horizontal()
	ih += inset.Vertical()

	width, expandedW := resolveSize(w.sizeW, box.W, in.FillW, iw, w.minW, w.maxW, in.ClampW)
	height, expandedH := resolveSize(w.sizeH, box.H, in.FillH, ih, w.minH, w.maxH, in.ClampH)

	ux, uy := w.offset()
	rect := geom.Rect{X: box.X + ux, Y: box.Y + uy, W: width, H: height}
	return w.commit(in, box, rect, expandedW, expandedH)
}

// RealizeGeometry resolves the window-absolute origin from the parent
// chain. Containers override this to recurse.
func (w *WidgetBase) RealizeGeometry(ctx *Context) {
	if p := w.parent; p != nil {
		pb := p.Base()
		inset := pb.contentInset()
		sx, sy := parentScroll(p)
		w.calc.AbsX = pb.calc.AbsX + inset.Left + w.calc.Rect.X - sx
		w.calc.AbsY = pb.calc.AbsY + inset.Top + w.calc.Rect.Y - sy
	} else {
		w.calc.AbsX = w.calc.Rect.X
		w.calc.AbsY = w.calc.Rect.Y
	}
}

type scroller interface {
	scrollOffset() (float64, float64)
}

func parentScroll(p Widget) (float64, float64) {
	if s, ok := p.(scroller); ok {
		return s.scrollOffset()
	}
	return 0, 0
}
