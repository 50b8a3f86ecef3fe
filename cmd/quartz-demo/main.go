// Command quartz-demo renders a quartz layout tree in the terminal:
// a header bar with a flexspace, an expanding content split, and a
// scrolling viewport, repainted through the z-order buckets on every
// update cycle. Click a row to select it; arrow keys scroll; q quits.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/quartzui/quartz"
	"github.com/quartzui/quartz/retained"
	"github.com/quartzui/quartz/theme"
)

type app struct {
	ui       *quartz.UI
	screen   tcell.Screen
	view     *quartz.Viewport
	status   *Label
	rows     []*Label
	selected int
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "quartz-demo:", err)
		os.Exit(1)
	}
}

func run() error {
	th := theme.Default()
	if data, err := theme.Load("quartz.toml"); err == nil {
		th = data
	}

	log := hclog.New(&hclog.LoggerOptions{
		Name:   "quartz",
		Level:  hclog.Warn,
		Output: os.Stderr,
	})

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	w, h := screen.Size()
	a := &app{
		ui:       quartz.New(quartz.WithLogger(log), quartz.WithTheme(th), quartz.WithSize(float64(w), float64(h))),
		screen:   screen,
		selected: -1,
	}
	a.build(th)

	for {
		if a.ui.Update() {
			a.redraw(th)
		}
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventResize:
			cols, rows := ev.Size()
			a.ui.SetSize(float64(cols), float64(rows))
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 != 0 {
				x, y := ev.Position()
				a.click(float64(x), float64(y))
			}
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyDown:
				a.scrollBy(1)
			case ev.Key() == tcell.KeyUp:
				a.scrollBy(-1)
			}
		case nil:
			return nil
		}
	}
}

func (a *app) build(th theme.Theme) {
	surface := retained.MustHex(th.Surface)
	accent := retained.MustHex(th.Accent)
	text := retained.MustHex(th.Text)

	root := quartz.NewVBox()
	a.ui.Root().Add(root, quartz.CellAttrs{FillW: true, FillH: true})

	// header: title, flexspace, right-aligned hint
	header := quartz.NewHBox()
	header.SetBackground(&surface)
	header.SetSpacing(th.Spacing)
	header.Add(NewLabel(" quartz demo ", accent), quartz.CellAttrs{})
	header.AddFlexspace()
	header.Add(NewLabel(" q: quit  arrows: scroll ", text), quartz.CellAttrs{})
	root.Add(header, quartz.CellAttrs{FillW: true})

	// content: fixed sidebar next to an expanding scroll view
	content := quartz.NewHBox()
	content.SetSpacing(th.Spacing)

	sidebar := quartz.NewVBox()
	sidebar.SetBackground(&surface)
	sidebar.SetSize(quartz.F(22), nil)
	sidebar.SetPadding(th.Padding)
	for _, item := range []string{"overview", "layout", "z-order", "viewport"} {
		sidebar.Add(NewLabel(item, text), quartz.CellAttrs{})
	}
	content.Add(sidebar, quartz.CellAttrs{Stretch: quartz.StretchFull})

	a.view = quartz.NewViewport()
	a.view.SetPadding(th.Padding)
	list := quartz.NewVBox()
	rowBG := surface.Darken(0.3)
	for i := 0; i < 60; i++ {
		row := NewLabel(fmt.Sprintf("row %02d", i), text)
		a.rows = append(a.rows, row)
		attrs := quartz.CellAttrs{FillW: true}
		if i%2 == 0 {
			attrs.BG = &rowBG
		}
		list.Add(row, attrs)
	}
	a.view.Add(list, quartz.CellAttrs{FillW: true})
	content.Add(a.view, quartz.CellAttrs{Expand: quartz.F(1), Stretch: quartz.StretchFull})

	root.Add(content, quartz.CellAttrs{FillW: true, Expand: quartz.F(1)})

	// status bar
	status := quartz.NewHBox()
	status.SetBackground(&surface)
	a.status = NewLabel(" ready", text)
	status.Add(a.status, quartz.CellAttrs{})
	root.Add(status, quartz.CellAttrs{FillW: true})
}

func (a *app) redraw(th theme.Theme) {
	a.screen.Clear()
	paint(a.screen, a.ui.Root(), retained.MustHex(th.Background))
	a.screen.Show()
}

func (a *app) click(x, y float64) {
	hit := a.ui.HitTest(x, y)
	label, ok := hit.(*Label)
	if !ok {
		a.status.SetText(" ready")
		return
	}
	for i, row := range a.rows {
		if row == label {
			a.selected = i
			a.status.SetText(fmt.Sprintf(" selected %s", label.Text()))
			return
		}
	}
	a.status.SetText(fmt.Sprintf(" clicked %q", label.Text()))
}

func (a *app) scrollBy(dy float64) {
	_, y := a.view.Scroll()
	a.view.ScrollTo(0, y+dy)
}
