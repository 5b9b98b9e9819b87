package spellbook

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestSolveColumnWidths(t *testing.T) {
	widths, centered := solveColumnWidths([]float64{10, 200, 10}, 90.67)
	want := []float64{10, 70.67, 10}
	for i := range want {
		if math.Abs(widths[i]-want[i]) > 1e-9 {
			t.Fatalf("widths = %v, want %v", widths, want)
		}
	}
	if !centered[0] || centered[1] || !centered[2] {
		t.Fatalf("centered = %v, want narrow columns centered and wide left-aligned", centered)
	}
}

func TestSolveColumnWidthsAllNarrow(t *testing.T) {
	widths, centered := solveColumnWidths([]float64{5, 5}, 100)
	if widths[0] != 5 || widths[1] != 5 {
		t.Fatalf("widths = %v, want natural widths kept", widths)
	}
	if !centered[0] || !centered[1] {
		t.Fatalf("all-narrow columns should center, got %v", centered)
	}
}

func TestSolveColumnWidthsAllWide(t *testing.T) {
	widths, centered := solveColumnWidths([]float64{100, 100}, 60)
	if widths[0] != 30 || widths[1] != 30 {
		t.Fatalf("widths = %v, want even 30/30 split", widths)
	}
	if centered[0] || centered[1] {
		t.Fatalf("wide columns should stay left-aligned, got %v", centered)
	}
}

func TestParseTable(t *testing.T) {
	tokens := tokenize("<title> Wild Magic </title> d10 | Effect <row> 1 | Fireball <row> 2 | Sleep")
	data, err := parseTable(tokens)
	if err != nil {
		t.Fatalf("parseTable: %v", err)
	}
	if len(data.title) != 2 || data.title[0].Text != "Wild" {
		t.Fatalf("title = %+v", data.title)
	}
	if len(data.rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(data.rows))
	}
	for i, row := range data.rows {
		if len(row) != 2 {
			t.Fatalf("row %d has %d cells, want 2", i, len(row))
		}
	}
	if data.rows[2][1][0].Text != "Sleep" {
		t.Fatalf("last cell = %+v", data.rows[2][1])
	}
}

func TestParseTableUnterminatedTitle(t *testing.T) {
	_, err := parseTable(tokenize("<title> Lost Forever"))
	if !errors.Is(err, ErrBadTable) {
		t.Fatalf("expected ErrBadTable, got %v", err)
	}
}

func TestParseTableEscapedMarkers(t *testing.T) {
	data, err := parseTable(tokenize(`a \| b <row> c | d`))
	if err != nil {
		t.Fatalf("parseTable: %v", err)
	}
	if len(data.rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(data.rows))
	}
	if len(data.rows[0]) != 2 {
		t.Fatalf("escaped pipe split a cell: %+v", data.rows[0])
	}
	cell := data.rows[0][0]
	if len(cell) != 3 || cell[1].Text != "|" {
		t.Fatalf("escaped pipe should stay in the cell text: %+v", cell)
	}
}

func TestParseTableRaggedRowsPadded(t *testing.T) {
	data, err := parseTable(tokenize("a | b | c <row> d"))
	if err != nil {
		t.Fatalf("parseTable: %v", err)
	}
	if len(data.rows[1]) != 3 {
		t.Fatalf("short row should pad to 3 cells, got %d", len(data.rows[1]))
	}
}

func tableTestConfig() Config {
	return Config{
		BodyNewline:       1,
		TableBodyNewline:  1,
		TableTitleNewline: 2,
		RowGap:            1,
		ColumnGap:         2,
		TableSideGap:      2,
		TableOuterGap:     1,
	}
}

func TestTableOffRowShading(t *testing.T) {
	region := Region{Left: 0, Right: 60, Top: 40, Bottom: 0}
	f, r := testFlow(t, region, fakeMetrics{charW: 1, lineH: 1}, tableTestConfig())

	err := f.flowParagraph(
		tokenize("<table> h1 | h2 <row> a | b <row> c | d <row> e | f <row> g | h <table>"),
		flowOptions{class: ClassBody},
	)
	if err != nil {
		t.Fatalf("flowParagraph: %v", err)
	}

	rects := r.byKind("rect")
	// header plus four body rows of one line each: bands behind body
	// rows two and four only
	if len(rects) != 2 {
		t.Fatalf("expected 2 shading bands, got %d", len(rects))
	}
	want := DefaultConfig().OffRowColor
	for _, op := range rects {
		if op.Color != want {
			t.Fatalf("band color = %v, want %v", op.Color, want)
		}
	}

	// shading is painted before any table text
	firstText := -1
	lastRect := -1
	for i, op := range r.ops {
		if op.Kind == "text" && firstText == -1 {
			firstText = i
		}
		if op.Kind == "rect" {
			lastRect = i
		}
	}
	if lastRect > firstText {
		t.Fatalf("shading op at %d after text op at %d", lastRect, firstText)
	}
}

func TestTableTwoPassAlignment(t *testing.T) {
	// short page: the table is forced across page breaks
	region := Region{Left: 0, Right: 60, Top: 7, Bottom: 0}
	f, r := testFlow(t, region, fakeMetrics{charW: 1, lineH: 1}, tableTestConfig())

	err := f.flowParagraph(
		tokenize("<table> h1 | h2 <row> a | b <row> c | d <row> e | f <row> g | h <row> i | j <row> k | l <table>"),
		flowOptions{class: ClassBody},
	)
	if err != nil {
		t.Fatalf("flowParagraph: %v", err)
	}
	if r.pages < 2 {
		t.Fatalf("expected the table to cross pages, got %d page(s)", r.pages)
	}

	raise := DefaultConfig().OffRowShadeRaise
	texts := r.byKind("text")
	for _, band := range r.byKind("rect") {
		baseline := band.Y + raise // lineH is 1
		found := false
		for _, txt := range texts {
			if txt.Page == band.Page && math.Abs(txt.Y-baseline) < 1e-9 {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("band on page %d at y %g has no text baseline at %g", band.Page, band.Y, baseline)
		}
	}
}

func TestTableMovesWholeToNextPage(t *testing.T) {
	region := Region{Left: 0, Right: 60, Top: 10, Bottom: 0}
	f, r := testFlow(t, region, fakeMetrics{charW: 1, lineH: 1}, tableTestConfig())

	// six full-width lines leave 4 units of room, too little for the
	// table but far less than a whole page
	filler := make([]string, 6)
	for i := range filler {
		filler[i] = strings.Repeat("a", 60)
	}
	if err := f.flowParagraph(tokenize(strings.Join(filler, " ")), flowOptions{class: ClassBody}); err != nil {
		t.Fatalf("filler: %v", err)
	}
	err := f.flowParagraph(
		tokenize("<table> <title> T </title> h1 | h2 <row> a | b <row> c | d <table>"),
		flowOptions{class: ClassBody},
	)
	if err != nil {
		t.Fatalf("flowParagraph: %v", err)
	}

	if r.pages != 2 {
		t.Fatalf("expected 2 pages, got %d", r.pages)
	}
	table := map[string]bool{"T": true, "h1": true, "h2": true, "a": true, "b": true, "c": true, "d": true}
	for _, op := range r.byKind("text") {
		if table[op.Text] && op.Page != 2 {
			t.Fatalf("table text %q stranded on page %d, want the whole table on page 2", op.Text, op.Page)
		}
		if !table[op.Text] && op.Page != 1 {
			t.Fatalf("filler text moved to page %d", op.Page)
		}
	}
}

func TestTableTallerThanPageSplitsRows(t *testing.T) {
	region := Region{Left: 0, Right: 60, Top: 7, Bottom: 0}
	f, r := testFlow(t, region, fakeMetrics{charW: 1, lineH: 1}, tableTestConfig())

	if err := f.flowParagraph(tokenize("zz"), flowOptions{class: ClassBody}); err != nil {
		t.Fatalf("filler: %v", err)
	}
	err := f.flowParagraph(
		tokenize("<table> h1 | h2 <row> a | b <row> c | d <row> e | f <row> g | h <row> i | j <row> k | l <table>"),
		flowOptions{class: ClassBody},
	)
	if err != nil {
		t.Fatalf("flowParagraph: %v", err)
	}

	// no page can hold every row, so the header stays where the table
	// started and later rows split off
	for _, op := range r.byKind("text") {
		if op.Text == "h1" && op.Page != 1 {
			t.Fatalf("header row moved to page %d, want 1", op.Page)
		}
	}
	if r.pages < 2 {
		t.Fatalf("expected the table to cross pages, got %d page(s)", r.pages)
	}
}

func TestTableResetsStyleToRegular(t *testing.T) {
	region := Region{Left: 0, Right: 60, Top: 40, Bottom: 0}
	f, r := testFlow(t, region, fakeMetrics{charW: 1, lineH: 1}, tableTestConfig())

	err := f.flowParagraph(
		tokenize("<b> loud <table> a | b <row> c | d <table> quiet"),
		flowOptions{class: ClassBody},
	)
	if err != nil {
		t.Fatalf("flowParagraph: %v", err)
	}
	for _, op := range r.byKind("text") {
		switch op.Text {
		case "loud":
			if op.Style != Bold {
				t.Fatalf("text before the table drawn %v, want Bold", op.Style)
			}
		case "quiet":
			if op.Style != Regular {
				t.Fatalf("text after the table drawn %v, want Regular", op.Style)
			}
		}
	}
}

func TestTableHeaderIsBoldAndTitleDrawn(t *testing.T) {
	region := Region{Left: 0, Right: 60, Top: 40, Bottom: 0}
	f, r := testFlow(t, region, fakeMetrics{charW: 1, lineH: 1}, tableTestConfig())

	err := f.flowParagraph(
		tokenize("<table> <title> Effects </title> Roll | Result <row> 1 | x <table>"),
		flowOptions{class: ClassBody},
	)
	if err != nil {
		t.Fatalf("flowParagraph: %v", err)
	}

	cfg := DefaultConfig()
	var sawTitle, sawHeader, sawBody bool
	for _, op := range r.byKind("text") {
		switch op.Text {
		case "Effects":
			sawTitle = true
			if op.Size != cfg.TableTitleFontSize || op.Style != Bold {
				t.Fatalf("title drawn with size %g style %v", op.Size, op.Style)
			}
		case "Roll":
			sawHeader = true
			if op.Style != Bold {
				t.Fatalf("header cell style = %v, want Bold", op.Style)
			}
		case "x":
			sawBody = true
			if op.Style != Regular {
				t.Fatalf("body cell style = %v, want Regular", op.Style)
			}
		}
	}
	if !sawTitle || !sawHeader || !sawBody {
		t.Fatalf("missing table text: title=%v header=%v body=%v", sawTitle, sawHeader, sawBody)
	}
}

func TestTableNarrowColumnsCenteredOnPage(t *testing.T) {
	region := Region{Left: 0, Right: 100, Top: 40, Bottom: 0}
	f, r := testFlow(t, region, fakeMetrics{charW: 1, lineH: 1}, tableTestConfig())

	err := f.flowParagraph(tokenize("<table> ab | cd <row> e | f <table>"), flowOptions{class: ClassBody})
	if err != nil {
		t.Fatalf("flowParagraph: %v", err)
	}
	// both columns are 2 wide with a 2 gap: the 6-wide table sits
	// centered in the 100-wide region
	for _, op := range r.byKind("text") {
		if op.X < 40 || op.X > 60 {
			t.Fatalf("cell %q at x=%g, expected a centered table", op.Text, op.X)
		}
	}
}

func TestTableTextResumesAfterTable(t *testing.T) {
	region := Region{Left: 0, Right: 60, Top: 40, Bottom: 0}
	f, r := testFlow(t, region, fakeMetrics{charW: 1, lineH: 1}, tableTestConfig())

	err := f.flowParagraph(tokenize("before <table> a | b <row> c | d <table> after"), flowOptions{class: ClassBody})
	if err != nil {
		t.Fatalf("flowParagraph: %v", err)
	}
	texts := r.byKind("text")
	last := texts[len(texts)-1]
	if last.Text != "after" {
		t.Fatalf("expected trailing text drawn last, got %q", last.Text)
	}
	var beforeY float64
	for _, op := range texts {
		if op.Text == "before" {
			beforeY = op.Y
		}
	}
	if last.Y >= beforeY {
		t.Fatalf("text after the table should sit below text before it: %g vs %g", last.Y, beforeY)
	}
}
