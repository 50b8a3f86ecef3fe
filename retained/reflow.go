package retained

import (
	"github.com/hashicorp/go-hclog"

	"github.com/quartzui/quartz/geom"
)

// Trigger classifies how much relayout a mutation requires. Setters queue
// the strongest trigger seen since the last update cycle; the driver drains
// the queue via CollectPending.
type Trigger int

const (
	// ReflowNone marks draw-only mutations, z-order changes for instance.
	ReflowNone Trigger = iota

	// ReflowPartial relayouts the widget's own subtree against its
	// last-known bounding box. Ancestor geometry is untouched.
	ReflowPartial

	// ReflowFull relayouts the whole tree from the root.
	ReflowFull
)

func (t Trigger) String() string {
	switch t {
	case ReflowPartial:
		return "partial"
	case ReflowFull:
		return "full"
	}
	return "none"
}

// diag is the package-level diagnostic channel for recoverable conditions
// detected outside a reflow pass (setter validation, reparenting). Reflow
// passes log through their Context instead.
var diag hclog.Logger = hclog.NewNullLogger()

// SetDiagLogger routes the package diagnostics to log. A nil log restores
// the discard default.
func SetDiagLogger(log hclog.Logger) {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	diag = log
}

// Context carries per-cycle state down a reflow walk.
type Context struct {
	Log   hclog.Logger
	Frame uint64
}

// NewContext returns a reflow context for one update cycle.
func NewContext(log hclog.Logger, frame uint64) *Context {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Context{Log: log, Frame: frame}
}

// ensureContext substitutes a discard context so widgets reflowed outside a
// driver cycle need no nil checks.
func ensureContext(ctx *Context) *Context {
	if ctx == nil {
		return &Context{Log: hclog.NewNullLogger()}
	}
	if ctx.Log == nil {
		ctx.Log = hclog.NewNullLogger()
	}
	return ctx
}

// ReflowInput is the bounding-box offer a parent makes to a child.
//
// A nil Box requests a partial reflow: the widget reuses the box and flags
// saved by its previous reflow. A widget that has never been offered a box
// treats the request as a no-op and stays unrealized.
type ReflowInput struct {
	Box *geom.Rect

	// FillW and FillH ask the widget to consume the whole offered extent
	// on that axis when it has no explicit size.
	FillW, FillH bool

	// ClampW and ClampH cap the resolved size at the offered extent. A
	// widget min still wins over the clamp; overflow is structural and is
	// only ever clipped by a viewport ancestor.
	ClampW, ClampH bool
}

// ReflowResult reports the resolved border-box rectangle and whether the
// widget consumed the whole offered extent per axis. Boxes use the expanded
// flags to detect siblings that would starve the rest of the row.
type ReflowResult struct {
	Rect geom.Rect

	ExpandedW, ExpandedH bool
}

// CollectPending drains the queued reflow requests under root. It reports
// whether a full reflow is due and, otherwise, the widgets needing a
// partial one, in tree order. A full request anywhere subsumes all partial
// ones. All queue flags are cleared.
func CollectPending(root Widget) (full bool, partial []Widget) {
	walkPending(root, &full, &partial)
	if full {
		return true, nil
	}
	return false, partial
}

func walkPending(w Widget, full *bool, partial *[]Widget) {
	b := w.Base()
	switch b.pending {
	case ReflowFull:
		*full = true
	case ReflowPartial:
		*partial = append(*partial, widgetSelf(b))
	}
	b.pending = ReflowNone
	if b.childPending {
		b.childPending = false
		w.forEachChild(func(c Widget) { walkPending(c, full, partial) })
	}
}
