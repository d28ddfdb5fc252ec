package binderpdf

import "github.com/jung-kurt/gofpdf"

// pageLayout owns the grid geometry of card pages: cell placement,
// page-break boundaries, and the cutting-guide overlay.
type pageLayout struct {
	pdf *gofpdf.Fpdf
}

// CellOrigin returns the top-left corner of cell i on the current page,
// i in [0, PageCapacity).
func (l *pageLayout) CellOrigin(i int) (x, y float64) {
	col := i % GridColumns
	row := i / GridColumns
	x = gridMarginX + float64(col)*(CellWidth+cellGapX)
	y = gridMarginY + float64(row)*(CellHeight+cellGapY)
	return x, y
}

// PageBreakBefore reports whether a new grid page must start before placing
// the cell with the given running count. A break happens exactly when the
// count is a positive multiple of the page capacity.
func PageBreakBefore(count int) bool {
	return count > 0 && count%PageCapacity == 0
}

// GridPages returns the number of grid pages needed for n cards.
func GridPages(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageCapacity - 1) / PageCapacity
}

// DrawFooter writes the page caption centered near the bottom edge. The
// caption is localized, so it goes through the compositor for the font and
// encoding of the target language.
func (l *pageLayout) DrawFooter(comp *compositor, caption, lang string) error {
	l.pdf.SetTextColor(150, 150, 150)
	err := comp.DrawCentered(caption, lang, PageWidth/2, PageHeight-6, false, scalePageFooter)
	l.pdf.SetTextColor(0, 0, 0)
	return err
}

// DrawGuides overlays the dashed cutting guides: one line at the midpoint of
// every inter-cell gap plus an outer frame offset by half a gap. Call last so
// the guides stay visible on top of cells and footer.
func (l *pageLayout) DrawGuides() {
	l.pdf.SetDrawColor(120, 120, 120)
	l.pdf.SetLineWidth(0.1)
	l.pdf.SetDashPattern([]float64{1.2, 1.2}, 0)

	top := gridMarginY - cellGapY/2
	bottom := gridMarginY + GridRows*CellHeight + (GridRows-1)*cellGapY + cellGapY/2
	left := gridMarginX - cellGapX/2
	right := gridMarginX + GridColumns*CellWidth + (GridColumns-1)*cellGapX + cellGapX/2

	for col := 0; col <= GridColumns; col++ {
		x := gridMarginX - cellGapX/2 + float64(col)*(CellWidth+cellGapX)
		l.pdf.Line(x, top, x, bottom)
	}
	for row := 0; row <= GridRows; row++ {
		y := gridMarginY - cellGapY/2 + float64(row)*(CellHeight+cellGapY)
		l.pdf.Line(left, y, right, y)
	}

	l.pdf.SetDashPattern([]float64{}, 0)
	l.pdf.SetDrawColor(0, 0, 0)
	l.pdf.SetLineWidth(0.2)
}
