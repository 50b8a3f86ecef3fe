package retained

import (
	"github.com/quartzui/quartz/geom"
)

// placeCellsH is the horizontal second pass: walk the cells left to right,
// advancing a running x offset past flexspaces and measured children,
// sizing the expanding children at their weighted share, and resolving the
// vertical (cross) placement of every cell.
func (b *Box) placeCellsH(st *boxPass, contentH float64, fixedCross bool, in ReflowInput, ctx *Context) (extentW, extentH float64) {
	crossExt := st.maxCross
	crossFinal := fixedCross || st.fullCross
	if crossFinal {
		crossExt = contentH
	}

	var offset float64
	var deferred []deferredCell
	for i, cell := range st.cells {
		if cell.kind == CellFlexspace {
			gap := st.unitSize * cell.weight
			cell.rect = geom.Rect{X: offset, Y: 0, W: gap, H: crossExt}
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
			offW := slot - pad.Horizontal()
			crossOffer := crossExt
			if cell.attrs.Stretch == StretchFull {
				crossOffer = contentH
			}
			offH := crossOffer - pad.Vertical()
			if cell.attrs.MaxH != nil && offH > *cell.attrs.MaxH {
				offH = *cell.attrs.MaxH
			}
			if offW < 0 {
				offW = 0
			}
			if offH < 0 {
				offH = 0
			}

			fillH := cell.attrs.FillH
			switch cell.attrs.Stretch {
			case StretchFull:
				fillH = true
			case StretchToSiblings:
				fillH = false
				cell.deferredCross = true
			}

			childBox := geom.Rect{W: offW, H: offH}
			res := cell.widget.Reflow(ReflowInput{
				Box:    &childBox,
				FillW:  true,
				FillH:  fillH,
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
			cell.mainExt, cell.crossExt = cw, ch
			cell.measured = true
			if !crossFinal && ch+pad.Vertical() > crossExt {
				crossExt = ch + pad.Vertical()
			}
		}

		ux, uy := wb.offset()
		needAlign := cell.attrs.VAlign != AlignStart &&
			!(cell.attrs.FillH || cell.attrs.Stretch == StretchFull)
		if cell.deferredCross || (needAlign && !crossFinal) {
			cell.rect = geom.Rect{X: offset, Y: 0, W: cell.mainExt + pad.Horizontal(), H: crossExt}
			deferred = append(deferred, deferredCell{
				cell:      cell,
				crossFill: cell.deferredCross,
				align:     needAlign,
			})
		} else {
			y := uy + alignOffset(cell.attrs.VAlign, crossExt, cell.crossExt, pad.Top, pad.Bottom)
			cell.rect = geom.Rect{X: offset, Y: 0, W: cell.mainExt + pad.Horizontal(), H: crossExt}
			wb.place(offset+pad.Left+ux, y)
		}

		offset += cell.mainExt + pad.Horizontal()
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
			offH := crossExt - pad.Vertical()
			if offH < 0 {
				offH = 0
			}
			childBox := geom.Rect{W: cell.mainExt, H: offH}
			res := cell.widget.Reflow(ReflowInput{
				Box:    &childBox,
				FillW:  true,
				FillH:  true,
				ClampW: in.ClampW,
				ClampH: in.ClampH,
			}, ctx)
			ch := res.Rect.H
			if cell.attrs.MinH != nil && ch < *cell.attrs.MinH {
				ch = *cell.attrs.MinH
			}
			cell.crossExt = ch
		}
		ux, uy := wb.offset()
		y := uy + alignOffset(cell.attrs.VAlign, crossExt, cell.crossExt, pad.Top, pad.Bottom)
		cell.rect.H = crossExt
		wb.place(cell.rect.X+pad.Left+ux, y)
	}

	// cells resolved before the cross extent grew keep their slot height
	// in sync with the final extent
	for _, cell := range st.cells {
		if cell.kind == CellFlexspace || (cell.widget != nil && cell.widget.Base().visible) {
			cell.rect.H = crossExt
		}
	}

	return offset, crossExt
}
