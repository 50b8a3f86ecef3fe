package main

import (
	"github.com/mattn/go-runewidth"

	"github.com/quartzui/quartz/retained"
)

// Label is a single-line text leaf. Its intrinsic size is the display
// width of its text in terminal cells.
type Label struct {
	retained.WidgetBase

	text string
	fg   retained.Color
}

func NewLabel(text string, fg retained.Color) *Label {
	l := &Label{text: text, fg: fg}
	retained.Init(l)
	return l
}

func (l *Label) Text() string { return l.text }

// SetText queues a full reflow: the label's intrinsic size changes with
// its text, which can move siblings.
func (l *Label) SetText(text string) {
	if l.text == text {
		return
	}
	l.text = text
	l.Invalidate(retained.ReflowFull)
}

func (l *Label) IntrinsicSize(availW, availH float64) (float64, float64) {
	return float64(runewidth.StringWidth(l.text)), 1
}
