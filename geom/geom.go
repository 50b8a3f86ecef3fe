// Package geom provides the box-model primitives used by the retained
// layout engine: rectangles, per-edge insets, and the rules for resolving
// user-specified dimensions against a parent-offered bound.
package geom

import "fmt"

// Rect is an axis-aligned rectangle. X and Y are relative to the parent's
// content origin.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point (px, py) lies inside r.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Inset returns r shrunk by in on each edge. A degenerate result is
// clamped to zero size rather than inverted.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{
		X: r.X + in.Left,
		Y: r.Y + in.Top,
		W: r.W - in.Left - in.Right,
		H: r.H - in.Top - in.Bottom,
	}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Insets holds one value per rectangle edge, in CSS order.
type Insets struct {
	Top, Right, Bottom, Left float64
}

// Horizontal returns the combined left+right inset.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns the combined top+bottom inset.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

// Add returns the edge-wise sum of two inset sets.
func (in Insets) Add(other Insets) Insets {
	return Insets{
		Top:    in.Top + other.Top,
		Right:  in.Right + other.Right,
		Bottom: in.Bottom + other.Bottom,
		Left:   in.Left + other.Left,
	}
}

// Uniform returns insets with the same value on all four edges.
func Uniform(v float64) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}

// ExpandEdges resolves a CSS-style shorthand into four edge values:
//
//	1 value  -> all edges
//	2 values -> vertical, horizontal
//	3 values -> top, horizontal, bottom
//	4 values -> top, right, bottom, left
//
// Any other element count is a configuration error reported to the caller;
// the zero Insets is returned alongside it so layout can proceed with a
// defined fallback.
func ExpandEdges(vals ...float64) (Insets, error) {
	switch len(vals) {
	case 1:
		return Uniform(vals[0]), nil
	case 2:
		return Insets{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}, nil
	case 3:
		return Insets{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}, nil
	case 4:
		return Insets{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}, nil
	}
	return Insets{}, fmt.Errorf("edge shorthand: want 1-4 values, got %d", len(vals))
}

// ResolveDim resolves a user-specified dimension against an offered bound.
//
//	nil            -> (0, false): intrinsic, caller decides
//	v in (0, 1]    -> fraction of the bound
//	v < 0          -> offset from the bound's far edge (bound + v)
//	otherwise      -> absolute value
//
// The resolved value is never negative.
func ResolveDim(spec *float64, bound float64) (float64, bool) {
	if spec == nil {
		return 0, false
	}
	v := *spec
	switch {
	case v > 0 && v <= 1:
		v = bound * v
	case v < 0:
		v = bound + v
	}
	if v < 0 {
		v = 0
	}
	return v, true
}

// ClampDim clamps v to [min, max], with either bound optional. Min wins
// over max when the two conflict, matching the "min may force overflow"
// rule used throughout layout.
func ClampDim(v float64, min, max *float64) float64 {
	if max != nil && v > *max {
		v = *max
	}
	if min != nil && v < *min {
		v = *min
	}
	return v
}
