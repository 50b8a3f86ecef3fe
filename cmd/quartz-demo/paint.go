package main

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/quartzui/quartz/geom"
	"github.com/quartzui/quartz/retained"
)

// painter renders a realized widget tree onto a tcell screen using the
// artifacts the reflow engine produces: per-cell resolved rectangles and
// the z-order bucket maps. Both are treated as read-only.
type painter struct {
	screen tcell.Screen
	clip   *geom.Rect
}

func style(bg retained.Color) tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewRGBColor(
		int32(bg.R), int32(bg.G), int32(bg.B)))
}

func (p *painter) fill(r geom.Rect, bg retained.Color) {
	st := style(bg)
	x0, y0 := int(math.Floor(r.X)), int(math.Floor(r.Y))
	x1, y1 := int(math.Ceil(r.X+r.W)), int(math.Ceil(r.Y+r.H))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if p.clipped(x, y) {
				continue
			}
			p.screen.SetContent(x, y, ' ', nil, st)
		}
	}
}

func (p *painter) text(x, y float64, s string, fg, bg retained.Color) {
	st := style(bg).Foreground(tcell.NewRGBColor(
		int32(fg.R), int32(fg.G), int32(fg.B)))
	cx := int(math.Floor(x))
	cy := int(math.Floor(y))
	for _, r := range s {
		if !p.clipped(cx, cy) {
			p.screen.SetContent(cx, cy, r, nil, st)
		}
		cx += runewidth.RuneWidth(r)
	}
}

func (p *painter) clipped(x, y int) bool {
	if p.clip == nil {
		return false
	}
	return !p.clip.Contains(float64(x)+0.5, float64(y)+0.5)
}

// paintWidget draws one widget and, for containers, recurses through the
// z-order buckets: ascending levels, insertion order within a level.
func (p *painter) paintWidget(w retained.Widget, bg retained.Color) {
	b := w.Base()
	if !b.Realized() {
		return
	}
	calc := b.Geometry()
	abs := geom.Rect{X: calc.AbsX, Y: calc.AbsY, W: calc.Rect.W, H: calc.Rect.H}

	switch t := w.(type) {
	case *Label:
		p.text(abs.X, abs.Y, t.Text(), t.fg, bg)
		return
	case *retained.Viewport:
		clip := t.ClipRect()
		sx, sy := t.Scroll()
		p.paintContainer(&t.Container, abs, bg, &clip, sx, sy)
	case *retained.Box:
		p.paintContainer(&t.Container, abs, bg, p.clip, 0, 0)
	case *retained.Container:
		p.paintContainer(t, abs, bg, p.clip, 0, 0)
	}
}

func (p *painter) paintContainer(c *retained.Container, abs geom.Rect, inherited retained.Color, clip *geom.Rect, sx, sy float64) {
	bg := inherited
	if c.Background() != nil {
		bg = *c.Background()
		p.fill(abs, bg)
	}

	prevClip := p.clip
	p.clip = clip
	defer func() { p.clip = prevClip }()

	calc := c.Geometry()
	inset := calc.Padding.Add(calc.Border)
	originX := calc.AbsX + inset.Left - sx
	originY := calc.AbsY + inset.Top - sy

	for _, z := range c.ZLevels() {
		for _, cell := range c.CellsAtZ(z) {
			cellBG := bg
			if cell.Background() != nil {
				cellBG = *cell.Background()
				r := cell.Rect()
				p.fill(geom.Rect{
					X: originX + r.X,
					Y: originY + r.Y,
					W: r.W,
					H: r.H,
				}, cellBG)
			}
			p.paintWidget(cell.Widget(), cellBG)
		}
	}
}

// paint renders the whole tree from the root.
func paint(screen tcell.Screen, root *retained.Container, bg retained.Color) {
	p := &painter{screen: screen}
	p.paintWidget(root, bg)
}
