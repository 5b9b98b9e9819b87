package spellbook

import (
	"fmt"
	"sort"
)

// tableData is the parsed form of the content between a pair of
// <table> toggles: an optional title and rows of cells, each cell a
// run of word and style tokens.
type tableData struct {
	title []Token
	rows  [][][]Token
}

// parseTable splits table content on its structural markers. The
// title, when present, leads the content wrapped in <title> and
// </title>; rows are separated by <row> and cells by | tokens.
// Escaped markers are ordinary text.
func parseTable(tokens []Token) (tableData, error) {
	var data tableData
	i := 0
	if len(tokens) > 0 && !tokens[0].Escaped && tokens[0].Kind == tokenWord && tokens[0].Text == tagTitleOpen {
		end := -1
		for j := 1; j < len(tokens); j++ {
			if isTableMarker(tokens[j]) && tokens[j].Text == tagTitleClose {
				end = j
				break
			}
		}
		if end < 0 {
			return data, fmt.Errorf("%w: unterminated table title", ErrBadTable)
		}
		data.title = tokens[1:end]
		i = end + 1
	}

	var row [][]Token
	var cell []Token
	endCell := func() {
		row = append(row, cell)
		cell = nil
	}
	endRow := func() {
		endCell()
		data.rows = append(data.rows, row)
		row = nil
	}
	for ; i < len(tokens); i++ {
		t := tokens[i]
		if isTableMarker(t) {
			switch t.Text {
			case tagColumn:
				endCell()
			case tagRow:
				endRow()
			default:
				return data, fmt.Errorf("%w: unexpected %s", ErrBadTable, t.Text)
			}
			continue
		}
		cell = append(cell, t)
	}
	if len(cell) > 0 || len(row) > 0 {
		endRow()
	}

	// ragged rows pad out to the widest
	columns := 0
	for _, r := range data.rows {
		if len(r) > columns {
			columns = len(r)
		}
	}
	for i, r := range data.rows {
		for len(r) < columns {
			r = append(r, nil)
		}
		data.rows[i] = r
	}
	return data, nil
}

// solveColumnWidths distributes a usable span over columns given each
// column's natural (unwrapped) width. Columns are visited narrowest
// first: one that fits inside an even share of what remains keeps its
// natural width, is centered, and donates its slack to the columns
// still unplaced; one that does not gets the even share, left-aligned
// and wrapped.
func solveColumnWidths(naturals []float64, span float64) (widths []float64, centered []bool) {
	n := len(naturals)
	widths = make([]float64, n)
	centered = make([]bool, n)
	if n == 0 || span <= 0 {
		return widths, centered
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return naturals[order[a]] < naturals[order[b]]
	})
	remaining := span
	for left := n; left > 0; left-- {
		idx := order[n-left]
		share := remaining / float64(left)
		if naturals[idx] < share {
			widths[idx] = naturals[idx]
			centered[idx] = true
		} else {
			widths[idx] = share
		}
		remaining -= widths[idx]
	}
	return widths, centered
}

// tableLayout is a fully measured table ready to draw.
type tableLayout struct {
	titleLines []wrappedLine
	titleH     float64
	cells      [][][]wrappedLine // row -> column -> lines
	rowLines   []int             // tallest cell per row
	lineHs     []float64         // per-row line height
	widths     []float64
	centered   []bool
	colX       []float64
	left       float64
	right      float64
}

// renderTable lays out table content in two passes over one shared
// page sequence: the first pass paints the alternating off-row
// shading bands, then the cursor rewinds and the second pass draws
// the title and cell text. Both passes step through the identical
// walk, so rows land on the same pages and baselines in each.
func (f *flow) renderTable(tokens []Token) error {
	data, err := parseTable(tokens)
	if err != nil {
		return err
	}
	if len(data.rows) == 0 {
		return nil
	}
	lay, err := f.measureTable(data)
	if err != nil {
		return err
	}

	f.padVertical(f.cfg.TableOuterGap)

	// A table that no longer fits below the cursor but would fit a
	// fresh page moves there whole, keeping the title with its first
	// rows. Taller tables stay and split at row boundaries.
	if !f.atTop {
		travel, fromTop := lay.heights(f.cfg)
		if f.y-travel < f.region.Bottom-layoutEpsilon && fromTop <= f.region.Height()+layoutEpsilon {
			if err := f.pageBreak(); err != nil {
				return err
			}
		}
	}

	mk := f.mark()
	if err := f.walkTable(lay, f.shadeRowLine(lay)); err != nil {
		return err
	}
	if err := f.rewind(mk); err != nil {
		return err
	}
	if err := f.walkTable(lay, f.drawRowLine(lay)); err != nil {
		return err
	}

	f.padVertical(f.cfg.TableOuterGap)
	f.x = f.region.Left
	return nil
}

// measureTable wraps every cell and solves the column widths.
func (f *flow) measureTable(data tableData) (*tableLayout, error) {
	cfg := f.cfg
	size := cfg.fontSize(ClassTableBody)
	columns := len(data.rows[0])
	span := f.region.Width() - 2*cfg.TableSideGap - cfg.ColumnGap*float64(columns-1)

	// natural width per column: the widest unwrapped cell
	naturals := make([]float64, columns)
	measured := make([][][]styledWord, len(data.rows))
	for i, row := range data.rows {
		base := Regular
		if i == 0 {
			base = Bold // header row
		}
		measured[i] = make([][]styledWord, columns)
		for j, cell := range row {
			style := base
			words, err := f.m.styleWords(cell, &style, size)
			if err != nil {
				return nil, err
			}
			measured[i][j] = words
			w, err := f.lineWidth(words, size)
			if err != nil {
				return nil, err
			}
			if w > naturals[j] {
				naturals[j] = w
			}
		}
	}

	lay := &tableLayout{}
	lay.widths, lay.centered = solveColumnWidths(naturals, span)

	total := cfg.ColumnGap * float64(columns-1)
	for _, w := range lay.widths {
		total += w
	}
	// a table narrower than its span sits centered in the region
	lay.left = f.region.Left + cfg.TableSideGap + (span+cfg.ColumnGap*float64(columns-1)-total)/2
	lay.colX = make([]float64, columns)
	x := lay.left
	for j := range lay.colX {
		lay.colX[j] = x
		x += lay.widths[j] + cfg.ColumnGap
	}
	lay.right = x - cfg.ColumnGap

	lay.cells = make([][][]wrappedLine, len(data.rows))
	lay.rowLines = make([]int, len(data.rows))
	lay.lineHs = make([]float64, len(data.rows))
	for i, row := range measured {
		base := Regular
		if i == 0 {
			base = Bold
		}
		lineH, err := f.m.lineHeight(base, size)
		if err != nil {
			return nil, err
		}
		lay.lineHs[i] = lineH
		lay.cells[i] = make([][]wrappedLine, columns)
		for j, words := range row {
			lines, err := f.m.wrapWords(words, size, lay.widths[j], lay.widths[j])
			if err != nil {
				return nil, err
			}
			lay.cells[i][j] = lines
			if len(lines) > lay.rowLines[i] {
				lay.rowLines[i] = len(lines)
			}
		}
	}

	if len(data.title) > 0 {
		style := Bold
		titleSize := cfg.fontSize(ClassTableTitle)
		words, err := f.m.styleWords(data.title, &style, titleSize)
		if err != nil {
			return nil, err
		}
		width := lay.right - lay.left
		lay.titleLines, err = f.m.wrapWords(words, titleSize, width, width)
		if err != nil {
			return nil, err
		}
		lay.titleH, err = f.m.lineHeightFor(words, Bold, titleSize)
		if err != nil {
			return nil, err
		}
	}
	return lay, nil
}

// heights returns the baseline travel the table consumes mid-page and
// its height measured from the top of a fresh page, where the first
// line hangs by its line height instead of advancing.
func (lay *tableLayout) heights(cfg *Config) (travel, fromTop float64) {
	travel = cfg.TableTitleNewline * float64(len(lay.titleLines))
	for _, n := range lay.rowLines {
		travel += cfg.RowGap + cfg.TableBodyNewline*float64(n)
	}
	firstAdvance := cfg.RowGap + cfg.TableBodyNewline
	firstLine := lay.lineHs[0]
	if len(lay.titleLines) > 0 {
		firstAdvance = cfg.TableTitleNewline
		firstLine = lay.titleH
	}
	fromTop = firstLine + travel - firstAdvance
	return travel, fromTop
}

func (f *flow) lineWidth(words []styledWord, size float64) (float64, error) {
	var w float64
	for i, word := range words {
		if i > 0 {
			sp, err := f.m.spaceWidth(words[i-1].style, size)
			if err != nil {
				return 0, err
			}
			w += sp
		}
		w += word.width
	}
	return w, nil
}

// tableSegment is one vertical step of the table walk: either a line
// of the title or one line of a row.
type tableSegment struct {
	title    bool
	row      int // row index; header is row 0
	line     int
	baseline float64
}

// walkTable steps the cursor through the table exactly once, invoking
// visit for each vertical segment. Rows are kept whole: a row that no
// longer fits moves entirely to the next page.
func (f *flow) walkTable(lay *tableLayout, visit func(tableSegment) error) error {
	cfg := f.cfg
	for i := range lay.titleLines {
		baseline, err := f.nextBaseline(cfg.TableTitleNewline, lay.titleH)
		if err != nil {
			return err
		}
		if err := visit(tableSegment{title: true, line: i, baseline: baseline}); err != nil {
			return err
		}
	}
	for i := range lay.cells {
		// keep the row's baselines together on one page
		needed := cfg.RowGap + cfg.TableBodyNewline*float64(lay.rowLines[i])
		if err := f.ensureSpace(needed); err != nil {
			return err
		}
		for j := 0; j < lay.rowLines[i]; j++ {
			advance := cfg.TableBodyNewline
			if j == 0 {
				advance += cfg.RowGap
			}
			baseline, err := f.nextBaseline(advance, lay.lineHs[i])
			if err != nil {
				return err
			}
			if err := visit(tableSegment{row: i, line: j, baseline: baseline}); err != nil {
				return err
			}
		}
	}
	return nil
}

// shadeRowLine paints the off-row shading band behind one line of a
// shaded row. Shading alternates among body rows starting with the
// second one; the header row and the title are never shaded.
func (f *flow) shadeRowLine(lay *tableLayout) func(tableSegment) error {
	cfg := f.cfg
	bandLeft := lay.left - cfg.ColumnGap/2
	bandRight := lay.right + cfg.ColumnGap/2
	return func(seg tableSegment) error {
		if seg.title || seg.row < 2 || seg.row%2 != 0 {
			return nil
		}
		lineH := lay.lineHs[seg.row]
		bottom := seg.baseline - lineH*cfg.OffRowShadeRaise
		height := lineH * cfg.OffRowShadeHeight
		if err := f.r.FillRect(bandLeft, bottom, bandRight-bandLeft, height, cfg.OffRowColor); err != nil {
			return fmt.Errorf("shade row %d: %w", seg.row, err)
		}
		return nil
	}
}

// drawRowLine draws the title and cell text for one segment.
func (f *flow) drawRowLine(lay *tableLayout) func(tableSegment) error {
	cfg := f.cfg
	return func(seg tableSegment) error {
		if seg.title {
			line := lay.titleLines[seg.line]
			x := lay.left + (lay.right-lay.left-line.width)/2
			return f.drawLine(line, x, seg.baseline, cfg.fontSize(ClassTableTitle), ClassTableTitle)
		}
		size := cfg.fontSize(ClassTableBody)
		for j, lines := range lay.cells[seg.row] {
			if seg.line >= len(lines) {
				continue
			}
			line := lines[seg.line]
			x := lay.colX[j]
			if lay.centered[j] {
				x += (lay.widths[j] - line.width) / 2
			}
			if err := f.drawLine(line, x, seg.baseline, size, ClassTableBody); err != nil {
				return err
			}
		}
		return nil
	}
}
