package quartz

import (
	"github.com/hashicorp/go-hclog"

	"github.com/quartzui/quartz/geom"
	"github.com/quartzui/quartz/retained"
	"github.com/quartzui/quartz/theme"
)

// UI owns a widget tree and drives its update cycles. The host calls
// SetSize when the window changes and Update once per frame; attribute
// mutations between frames queue reflow work that Update coalesces into at
// most one full reflow.
//
// UI is single-threaded by contract: all tree mutations and Update calls
// must happen on the same goroutine as the host's frame callback.
type UI struct {
	log   hclog.Logger
	theme theme.Theme
	root  *retained.Container

	width, height float64
	frame         uint64
	updating      bool
	sizeDirty     bool
}

// Option configures a UI.
type Option func(*UI)

// WithLogger routes layout diagnostics to log.
func WithLogger(log hclog.Logger) Option {
	return func(u *UI) { u.log = log }
}

// WithTheme applies visual defaults loaded from a theme.
func WithTheme(t theme.Theme) Option {
	return func(u *UI) { u.theme = t }
}

// WithSize sets the initial window size.
func WithSize(w, h float64) Option {
	return func(u *UI) {
		u.width, u.height = w, h
		u.sizeDirty = true
	}
}

// New returns a UI with an empty root container.
//
// The retained package's diagnostic logger is process-wide: New rebinds it
// to this instance's logger, so with multiple UIs the most recently
// constructed one receives the setter and reparenting diagnostics. Reflow
// diagnostics are unaffected; they flow through the per-cycle context.
func New(opts ...Option) *UI {
	u := &UI{
		log:   hclog.NewNullLogger(),
		theme: theme.Default(),
		root:  retained.NewContainer(),
	}
	for _, opt := range opts {
		opt(u)
	}
	retained.SetDiagLogger(u.log)
	u.root.SetName("root")
	if bg, err := retained.Hex(u.theme.Background); err == nil {
		u.root.SetBackground(&bg)
	}
	return u
}

// Root returns the root container.
func (u *UI) Root() *retained.Container { return u.root }

// Theme returns the visual defaults in effect.
func (u *UI) Theme() theme.Theme { return u.theme }

// Size returns the current window size.
func (u *UI) Size() (w, h float64) { return u.width, u.height }

// SetSize records a window resize and queues a full reflow.
func (u *UI) SetSize(w, h float64) {
	if w == u.width && h == u.height {
		return
	}
	u.width, u.height = w, h
	u.sizeDirty = true
}

// Update runs one layout cycle: it drains the queued reflow requests,
// performs a full reflow from the root or the queued partial reflows, and
// resolves absolute geometry. It reports whether any geometry changed.
//
// Update must not be re-entered from a reflow callback; a re-entrant call
// is diagnosed, queued as a full reflow, and returns false.
func (u *UI) Update() bool {
	if u.updating {
		u.log.Warn("reflow cycle re-entered; deferring to next update")
		u.sizeDirty = true
		return false
	}
	u.updating = true
	defer func() { u.updating = false }()

	full, partial := retained.CollectPending(u.root)
	if u.sizeDirty {
		full = true
		u.sizeDirty = false
	}
	if !full && len(partial) == 0 {
		return false
	}

	ctx := retained.NewContext(u.log, u.frame)
	u.frame++

	if full {
		box := geom.Rect{W: u.width, H: u.height}
		u.root.Reflow(retained.ReflowInput{
			Box:    &box,
			FillW:  true,
			FillH:  true,
			ClampW: true,
			ClampH: true,
		}, ctx)
	} else {
		for _, w := range partial {
			w.Reflow(retained.ReflowInput{}, ctx)
		}
	}

	u.root.RealizeGeometry(ctx)
	return true
}

// HitTest returns the topmost widget at the window coordinate, or nil.
func (u *UI) HitTest(x, y float64) retained.Widget {
	if !u.root.Realized() {
		return nil
	}
	inset := u.root.Geometry().Padding.Add(u.root.Geometry().Border)
	return u.root.WidgetAt(x-inset.Left, y-inset.Top)
}
