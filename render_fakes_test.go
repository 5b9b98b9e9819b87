package spellbook

import "testing"

// fakeMetrics measures every rune as charW wide, so widths are exact
// and tests can reason about wrapping in whole numbers.
type fakeMetrics struct {
	charW float64
	lineH float64
}

func (m fakeMetrics) TextWidth(text string, style FontStyle, size float64) (float64, error) {
	return float64(len([]rune(text))) * m.charW, nil
}

func (m fakeMetrics) LineHeight(style FontStyle, size float64) (float64, error) {
	return m.lineH, nil
}

type renderOp struct {
	Kind  string
	Page  int
	X, Y  float64
	W, H  float64
	Text  string
	Style FontStyle
	Size  float64
	Color RGB
}

// recordRenderer captures draw calls for inspection.
type recordRenderer struct {
	pages int
	cur   int
	ops   []renderOp
}

func (r *recordRenderer) AddPage() (PageRef, error) {
	r.pages++
	r.cur = r.pages
	return PageRef(r.pages), nil
}

func (r *recordRenderer) SetPage(ref PageRef) error {
	r.cur = int(ref)
	return nil
}

func (r *recordRenderer) Text(x, y float64, text string, style FontStyle, size float64, color RGB) error {
	r.ops = append(r.ops, renderOp{Kind: "text", Page: r.cur, X: x, Y: y, Text: text, Style: style, Size: size, Color: color})
	return nil
}

func (r *recordRenderer) FillRect(x, y, w, h float64, color RGB) error {
	r.ops = append(r.ops, renderOp{Kind: "rect", Page: r.cur, X: x, Y: y, W: w, H: h, Color: color})
	return nil
}

func (r *recordRenderer) Image(path string, x, y, w, h float64) error {
	r.ops = append(r.ops, renderOp{Kind: "image", Page: r.cur, X: x, Y: y, W: w, H: h, Text: path})
	return nil
}

func (r *recordRenderer) Bookmark(title string, ref PageRef, y float64) error {
	r.ops = append(r.ops, renderOp{Kind: "bookmark", Page: int(ref), Y: y, Text: title})
	return nil
}

func (r *recordRenderer) byKind(kind string) []renderOp {
	var out []renderOp
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// testFlow builds a flow over fakes with a hand-set region.
func testFlow(t *testing.T, region Region, fm FontMetrics, cfg Config) (*flow, *recordRenderer) {
	t.Helper()
	merged := DefaultConfig()
	applyConfig(&merged, cfg)
	if err := validateConfig(&merged); err != nil {
		t.Fatalf("config: %v", err)
	}
	r := &recordRenderer{}
	f := newFlow(r, newMeasurer(fm, merged.FontScalars), &merged)
	f.region = region
	return f, r
}
