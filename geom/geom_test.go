package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExpandEdges(t *testing.T) {
	tests := []struct {
		name string
		vals []float64
		want Insets
	}{
		{
			name: "one value all edges",
			vals: []float64{5},
			want: Insets{Top: 5, Right: 5, Bottom: 5, Left: 5},
		},
		{
			name: "two values vertical horizontal",
			vals: []float64{5, 10},
			want: Insets{Top: 5, Right: 10, Bottom: 5, Left: 10},
		},
		{
			name: "three values top horizontal bottom",
			vals: []float64{1, 2, 3},
			want: Insets{Top: 1, Right: 2, Bottom: 3, Left: 2},
		},
		{
			name: "four values clockwise",
			vals: []float64{1, 2, 3, 4},
			want: Insets{Top: 1, Right: 2, Bottom: 3, Left: 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandEdges(tt.vals...)
			if err != nil {
				t.Fatalf("ExpandEdges(%v) error: %v", tt.vals, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExpandEdges(%v) mismatch (-want +got):\n%s", tt.vals, diff)
			}
		})
	}
}

func TestExpandEdgesInvalid(t *testing.T) {
	for _, vals := range [][]float64{{}, {1, 2, 3, 4, 5}} {
		if _, err := ExpandEdges(vals...); err == nil {
			t.Errorf("ExpandEdges(%v): expected error", vals)
		}
	}
}

func TestResolveDim(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	tests := []struct {
		name  string
		spec  *float64
		bound float64
		want  float64
		set   bool
	}{
		{name: "absent means intrinsic", spec: nil, bound: 100, want: 0, set: false},
		{name: "absolute", spec: f(40), bound: 100, want: 40, set: true},
		{name: "fraction half", spec: f(0.5), bound: 200, want: 100, set: true},
		{name: "fraction one is full", spec: f(1), bound: 200, want: 200, set: true},
		{name: "negative offsets from far edge", spec: f(-30), bound: 100, want: 70, set: true},
		{name: "negative past the edge floors at zero", spec: f(-150), bound: 100, want: 0, set: true},
		{name: "zero stays zero", spec: f(0), bound: 100, want: 0, set: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, set := ResolveDim(tt.spec, tt.bound)
			if got != tt.want || set != tt.set {
				t.Errorf("ResolveDim = (%v, %v), want (%v, %v)", got, set, tt.want, tt.set)
			}
		})
	}
}

func TestClampDim(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	if got := ClampDim(50, f(60), nil); got != 60 {
		t.Errorf("min floor: got %v, want 60", got)
	}
	if got := ClampDim(50, nil, f(40)); got != 40 {
		t.Errorf("max cap: got %v, want 40", got)
	}
	// min wins over a smaller max: overflow is intentional
	if got := ClampDim(50, f(80), f(40)); got != 80 {
		t.Errorf("min over max: got %v, want 80", got)
	}
	if got := ClampDim(50, nil, nil); got != 50 {
		t.Errorf("unbounded: got %v, want 50", got)
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 100, H: 50}
	got := r.Inset(Insets{Top: 5, Right: 10, Bottom: 5, Left: 10})
	want := Rect{X: 20, Y: 15, W: 80, H: 40}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Inset mismatch (-want +got):\n%s", diff)
	}

	tiny := Rect{W: 4, H: 4}.Inset(Uniform(10))
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("degenerate inset should clamp to zero size, got %+v", tiny)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !r.Contains(0, 0) {
		t.Error("origin should be inside")
	}
	if r.Contains(10, 10) {
		t.Error("far edge is exclusive")
	}
}
