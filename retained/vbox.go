package retained

import (
	"github.com/quartzui/quartz/geom"
)

// placeCellsV is the vertical second pass, mirroring placeCellsH across
// the axes: the running offset advances downward and the horizontal axis
// is the cross axis.
func (b *Box) placeCellsV(st *boxPass, contentW float64, fixedCross bool, in ReflowInput, ctx *Context) (extentW, extentH float64) {
	crossExt := st.maxCross
	crossFinal := fixedCross || st.fullCross
	if crossFinal {
		crossExt = contentW
	}

	var offset float64
	var deferred []deferredCell
	for i, cell := range st.cells {
		if cell.kind == CellFlexspace {
			gap := st.unitSize * cell.weight
			cell.rect = geom.Rect{X: 0, Y: offset, W: crossExt, H: gap}
			offset += gap
			// spacing is suppressed immediately after a flexspace
			continue
		}
		wb := cell.widget.Base()
		if !wb.visible {
			continue
		}
		pad := cell.pad.Add(wb.margin)

		if cell.calcExpand > 0 && !cell.measured {
			slot := st.unitSize * cell.calcExpand
			offH := slot - pad.Vertical()
			crossOffer := crossExt
			if cell.attrs.Stretch == StretchFull {
				crossOffer = contentW
			}
			offW := crossOffer - pad.Horizontal()
			if cell.attrs.MaxW != nil && offW > *cell.attrs.MaxW {
				offW = *cell.attrs.MaxW
			}
			if offW < 0 {
				offW = 0
			}
			if offH < 0 {
				offH = 0
			}

			fillW := cell.attrs.FillW
			switch cell.attrs.Stretch {
			case StretchFull:
				fillW = true
			case StretchToSiblings:
				fillW = false
				cell.deferredCross = true
			}

			childBox := geom.Rect{W: offW, H: offH}
			res := cell.widget.Reflow(ReflowInput{
				Box:    &childBox,
				FillW:  fillW,
				FillH:  true,
				ClampW: in.ClampW,
				ClampH: in.ClampH,
			}, ctx)

			cw, ch := res.Rect.W, res.Rect.H
			if cell.attrs.MinW != nil && cw < *cell.attrs.MinW {
				cw = *cell.attrs.MinW
			}
			if cell.attrs.MinH != nil && ch < *cell.attrs.MinH {
				ch = *cell.attrs.MinH
			}
			cell.mainExt, cell.crossExt = ch, cw
			cell.measured = true
			if !crossFinal && cw+pad.Horizontal() > crossExt {
				crossExt = cw + pad.Horizontal()
			}
		}

		ux, uy := wb.offset()
		needAlign := cell.attrs.HAlign != AlignStart &&
			!(cell.attrs.FillW || cell.attrs.Stretch == StretchFull)
		if cell.deferredCross || (needAlign && !crossFinal) {
			cell.rect = geom.Rect{X: 0, Y: offset, W: crossExt, H: cell.mainExt + pad.Vertical()}
			deferred = append(deferred, deferredCell{
				cell:      cell,
				crossFill: cell.deferredCross,
				align:     needAlign,
			})
		} else {
			x := ux + alignOffset(cell.attrs.HAlign, crossExt, cell.crossExt, pad.Left, pad.Right)
			cell.rect = geom.Rect{X: 0, Y: offset, W: crossExt, H: cell.mainExt + pad.Vertical()}
			wb.place(x, offset+pad.Top+uy)
		}

		offset += cell.mainExt + pad.Vertical()
		if hasVisibleAfter(st.cells, i) {
			offset += b.cellSpacing(cell)
		}
	}

	// second sub-pass: resolve the queued cells against the now-final
	// cross extent, in original order
	for _, d := range deferred {
		cell := d.cell
		wb := cell.widget.Base()
		pad := cell.pad.Add(wb.margin)
		if d.crossFill {
			offW := crossExt - pad.Horizontal()
			if offW < 0 {
				offW = 0
			}
			childBox := geom.Rect{W: offW, H: cell.mainExt}
			res := cell.widget.Reflow(ReflowInput{
				Box:    &childBox,
				FillW:  true,
				FillH:  true,
				ClampW: in.ClampW,
				ClampH: in.ClampH,
			}, ctx)
			cw := res.Rect.W
			if cell.attrs.MinW != nil && cw < *cell.attrs.MinW {
				cw = *cell.attrs.MinW
			}
			cell.crossExt = cw
		}
		ux, uy := wb.offset()
		x := ux + alignOffset(cell.attrs.HAlign, crossExt, cell.crossExt, pad.Left, pad.Right)
		cell.rect.W = crossExt
		wb.place(x, cell.rect.Y+pad.Top+uy)
	}

	// cells resolved before the cross extent grew keep their slot width
	// in sync with the final extent
	for _, cell := range st.cells {
		if cell.kind == CellFlexspace || (cell.widget != nil && cell.widget.Base().visible) {
			cell.rect.W = crossExt
		}
	}

	return crossExt, offset
}
