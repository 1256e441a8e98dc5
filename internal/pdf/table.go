package pdf

// tableBuffer accumulates a detected table block until a non-table line (or
// end of input) flushes it. Header and body rows are kept exactly as lexed;
// rows with a deviating column count render as-is.
type tableBuffer struct {
	header []string
	rows   [][]string
}

func (t *tableBuffer) columnCount() int {
	cols := len(t.header)
	for _, row := range t.rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	return cols
}

// renderTable draws the buffered table as a banded grid. It starts a new
// page when too little room remains, and repeats the header row at the top
// of every continuation page a long table spills onto. The builder cursor
// ends just below the drawn grid.
func (e *Engine) renderTable(t *tableBuffer) {
	cols := t.columnCount()
	if cols == 0 {
		return
	}
	widths := e.tableColumnWidths(t, cols)

	headerHeight := 0.0
	if len(t.header) > 0 {
		headerHeight = e.rowHeight(t.header, widths, true)
	}
	firstRowHeight := 0.0
	if len(t.rows) > 0 {
		firstRowHeight = e.rowHeight(t.rows[0], widths, false)
	}
	e.ensureRoom(headerHeight+firstRowHeight, e.style.HeadroomTable)

	if len(t.header) > 0 {
		e.drawTableRow(t.header, widths, true, false)
	}
	for i, row := range t.rows {
		rowHeight := e.rowHeight(row, widths, false)
		if e.b.CursorY()+rowHeight > e.b.BottomY() {
			e.b.NewPage()
			if len(t.header) > 0 {
				e.drawTableRow(t.header, widths, true, false)
			}
		}
		e.drawTableRow(row, widths, false, i%2 == 1)
	}
	e.b.SetCursorY(e.b.CursorY() + e.style.BlankGap)
}

// Column widths auto-fit to content: natural widths scaled so the grid spans
// exactly the content width. Overflowing cell text wraps inside its cell.
func (e *Engine) tableColumnWidths(t *tableBuffer, cols int) []float64 {
	natural := make([]float64, cols)
	measure := func(cells []string, bold bool) {
		if bold {
			e.b.SetFont(FontBold, e.style.BodySize)
		} else {
			e.b.SetFont(FontRegular, e.style.BodySize)
		}
		for i, cell := range cells {
			if i >= cols {
				break
			}
			w := e.b.TextWidth(cell) + 2*e.style.CellPadding
			if w > natural[i] {
				natural[i] = w
			}
		}
	}
	measure(t.header, true)
	for _, row := range t.rows {
		measure(row, false)
	}

	minWidth := 4 * e.style.CellPadding
	total := 0.0
	for i := range natural {
		if natural[i] < minWidth {
			natural[i] = minWidth
		}
		total += natural[i]
	}
	available := e.b.ContentWidth()
	widths := make([]float64, cols)
	for i := range natural {
		widths[i] = natural[i] / total * available
	}
	return widths
}

func (e *Engine) rowHeight(cells []string, widths []float64, bold bool) float64 {
	if bold {
		e.b.SetFont(FontBold, e.style.BodySize)
	} else {
		e.b.SetFont(FontRegular, e.style.BodySize)
	}
	lh := e.lineHeight(e.style.BodySize)
	maxLines := 1
	for i, cell := range cells {
		if i >= len(widths) {
			break
		}
		lines := e.wrapText(cell, widths[i]-2*e.style.CellPadding)
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}
	return float64(maxLines)*lh + 2*e.style.CellPadding
}

func (e *Engine) drawTableRow(cells []string, widths []float64, isHeader, banded bool) {
	lh := e.lineHeight(e.style.BodySize)
	pad := e.style.CellPadding
	top := e.b.CursorY()
	height := e.rowHeight(cells, widths, isHeader)

	rowWidth := 0.0
	for _, w := range widths {
		rowWidth += w
	}
	if isHeader {
		e.b.FillRect(e.b.LeftX(), top, rowWidth, height, e.style.TableHeaderFill)
		e.b.SetTextColor(RGB{255, 255, 255})
		e.b.SetFont(FontBold, e.style.BodySize)
	} else {
		if banded {
			e.b.FillRect(e.b.LeftX(), top, rowWidth, height, e.style.TableBandFill)
		}
		e.b.SetFont(FontRegular, e.style.BodySize)
	}

	x := e.b.LeftX()
	for i, w := range widths {
		if i < len(cells) {
			y := top + pad
			for _, line := range e.wrapText(cells[i], w-2*pad) {
				e.b.DrawText(x+pad, y+lh*0.75, line)
				y += lh
			}
		}
		e.b.StrokeLine(x, top, x, top+height, e.style.TableBorder)
		x += w
	}
	e.b.StrokeLine(x, top, x, top+height, e.style.TableBorder)
	e.b.StrokeLine(e.b.LeftX(), top, e.b.LeftX()+rowWidth, top, e.style.TableBorder)
	e.b.StrokeLine(e.b.LeftX(), top+height, e.b.LeftX()+rowWidth, top+height, e.style.TableBorder)

	if isHeader {
		e.b.SetTextColor(e.style.TextColor)
	}
	e.b.SetCursorY(top + height)
}
