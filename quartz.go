// Package quartz is a retained-mode UI toolkit built around a geometry
// reflow engine: containers impose bounding boxes on widgets, widgets
// report back calculated geometry, and directional boxes distribute
// leftover space by expand weight.
//
// The layout types live in the retained subpackage; this package re-exports
// the common ones and provides the UI driver that coalesces reflow requests
// into per-frame update cycles.
package quartz

import (
	"github.com/quartzui/quartz/geom"
	"github.com/quartzui/quartz/retained"
)

// Re-exports of the common layout types, for consumer convenience.
type (
	Widget      = retained.Widget
	WidgetBase  = retained.WidgetBase
	Container   = retained.Container
	Box         = retained.Box
	Viewport    = retained.Viewport
	Cell        = retained.Cell
	CellAttrs   = retained.CellAttrs
	Color       = retained.Color
	Rect        = geom.Rect
	Insets      = geom.Insets
	ReflowInput = retained.ReflowInput
)

const (
	Horizontal = retained.Horizontal
	Vertical   = retained.Vertical

	AlignStart  = retained.AlignStart
	AlignCenter = retained.AlignCenter
	AlignEnd    = retained.AlignEnd

	StretchNone       = retained.StretchNone
	StretchFull       = retained.StretchFull
	StretchToSiblings = retained.StretchToSiblings
)

// F returns a pointer to v, for optional dimension attributes.
func F(v float64) *float64 { return retained.F(v) }

// NewContainer returns an empty container.
func NewContainer() *Container { return retained.NewContainer() }

// NewHBox returns a box that stacks children left to right.
func NewHBox() *Box { return retained.NewHBox() }

// NewVBox returns a box that stacks children top to bottom.
func NewVBox() *Box { return retained.NewVBox() }

// NewViewport returns a vertically scrolling viewport.
func NewViewport() *Viewport { return retained.NewViewport() }
