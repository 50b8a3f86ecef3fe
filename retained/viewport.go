package retained

import (
	"github.com/quartzui/quartz/geom"
)

// Viewport is the scrollable collaborator the reflow engine consumes clamp
// flags from. It is deliberately thin: it hosts its children like a
// Container, but disables clamping along its scroll axis so descendants
// overflow naturally, keeps its own size pinned to the offered box, and
// shifts realized children by the scroll offset. Clipping the overflow is
// the paint layer's job, against ClipRect.
type Viewport struct {
	Container

	scrollX, scrollY float64

	// scrollH and scrollV select the scrollable axes. Default: vertical.
	scrollH, scrollV bool

	contentW, contentH float64
}

// NewViewport returns a vertically scrolling viewport.
func NewViewport() *Viewport {
	v := &Viewport{scrollV: true}
	Init(v)
	return v
}

// SetScrollAxes selects which axes scroll.
func (v *Viewport) SetScrollAxes(horizontal, vertical bool) {
	v.scrollH, v.scrollV = horizontal, vertical
	v.Invalidate(ReflowFull)
}

// ScrollTo sets the scroll offset. Offsets are clamped to the scrollable
// range at realize time. A scroll is a partial reflow: ancestor geometry
// is untouched.
func (v *Viewport) ScrollTo(x, y float64) {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	v.scrollX, v.scrollY = x, y
	v.Invalidate(ReflowPartial)
}

// Scroll returns the current scroll offset.
func (v *Viewport) Scroll() (x, y float64) { return v.scrollX, v.scrollY }

// ScrollMax returns the scrollable range resolved by the last reflow.
func (v *Viewport) ScrollMax() (x, y float64) {
	x = v.contentW - v.calc.Rect.W
	y = v.contentH - v.calc.Rect.H
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}

// ClipRect returns the window-absolute rectangle paint should clip
// children to, valid after RealizeGeometry.
func (v *Viewport) ClipRect() geom.Rect {
	inset := v.contentInset()
	return geom.Rect{
		X: v.calc.AbsX + inset.Left,
		Y: v.calc.AbsY + inset.Top,
		W: v.calc.Rect.W - inset.Horizontal(),
		H: v.calc.Rect.H - inset.Vertical(),
	}
}

func (v *Viewport) scrollOffset() (float64, float64) {
	x, y := v.scrollX, v.scrollY
	maxX, maxY := v.ScrollMax()
	if x > maxX {
		x = maxX
	}
	if y > maxY {
		y = maxY
	}
	return x, y
}

// Reflow lays out children with clamping lifted on the scroll axes, then
// pins the viewport's own size to the offered box regardless of content
// overflow. The content extent is retained for the scroll range.
func (v *Viewport) Reflow(in ReflowInput, ctx *Context) ReflowResult {
	inner := in
	if in.Box != nil {
		if v.scrollH {
			inner.ClampW = false
		}
		if v.scrollV {
			inner.ClampH = false
		}
	}
	res := v.Container.Reflow(inner, ctx)
	if !v.realized {
		return res
	}

	inset := v.contentInset()
	v.contentW = res.Rect.W - inset.Horizontal()
	v.contentH = res.Rect.H - inset.Vertical()

	// own size never exceeds the offered box on a scroll axis
	box := v.lastBox
	rect := res.Rect
	if v.scrollH && rect.W > box.W {
		rect.W = box.W
	}
	if v.scrollV && rect.H > box.H {
		rect.H = box.H
	}
	v.calc.Rect = rect
	res.Rect = rect
	return res
}
