package pdf

import (
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"

	spellbook "github.com/ChandlerJayCalkins/dnd-spellbook-maker-sub000"
)

const fontFamily = "Spellbook"

// Renderer implements spellbook.Renderer over an fpdf document. It is
// not safe for concurrent use.
type Renderer struct {
	doc     *fpdf.Fpdf
	pageH   float64
	metrics *Metrics
}

// NewRenderer builds a PDF document renderer from cfg, registering
// the configured fonts with fpdf and parsing the same data for
// metrics.
func NewRenderer(cfg Config) (*Renderer, error) {
	if cfg.PageWidth <= 0 || cfg.PageHeight <= 0 {
		return nil, fmt.Errorf("pdf: invalid page size %gx%g", cfg.PageWidth, cfg.PageHeight)
	}
	data, err := cfg.fontData()
	if err != nil {
		return nil, err
	}
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: cfg.PageWidth, Ht: cfg.PageHeight},
	})
	for style, ttf := range data {
		doc.AddUTF8FontFromBytes(fontFamily, fpdfStyle(spellbook.FontStyle(style)), ttf)
	}
	// the layout engine decides every page break itself
	doc.SetAutoPageBreak(false, 0)
	if doc.Err() {
		return nil, fmt.Errorf("pdf: %w", doc.Error())
	}
	metrics, err := NewMetrics(data[0], data[1], data[2], data[3])
	if err != nil {
		return nil, err
	}
	return &Renderer{doc: doc, pageH: cfg.PageHeight, metrics: metrics}, nil
}

// Metrics returns the FontMetrics provider reading the same fonts
// this renderer draws with.
func (r *Renderer) Metrics() *Metrics { return r.metrics }

func fpdfStyle(s spellbook.FontStyle) string {
	switch s {
	case spellbook.Bold:
		return "B"
	case spellbook.Italic:
		return "I"
	case spellbook.BoldItalic:
		return "BI"
	default:
		return ""
	}
}

// flip converts a bottom-up y coordinate to fpdf's top-down space.
func (r *Renderer) flip(y float64) float64 { return r.pageH - y }

// AddPage appends a page and makes it current.
func (r *Renderer) AddPage() (spellbook.PageRef, error) {
	r.doc.AddPage()
	if r.doc.Err() {
		return 0, fmt.Errorf("pdf: add page: %w", r.doc.Error())
	}
	return spellbook.PageRef(r.doc.PageNo()), nil
}

// SetPage makes a previously added page current.
func (r *Renderer) SetPage(ref spellbook.PageRef) error {
	if int(ref) < 1 || int(ref) > r.doc.PageCount() {
		return fmt.Errorf("pdf: no such page %d", ref)
	}
	r.doc.SetPage(int(ref))
	if r.doc.Err() {
		return fmt.Errorf("pdf: set page: %w", r.doc.Error())
	}
	return nil
}

// Text draws a string with its baseline at y.
func (r *Renderer) Text(x, y float64, text string, style spellbook.FontStyle, size float64, color spellbook.RGB) error {
	r.doc.SetFont(fontFamily, fpdfStyle(style), size)
	r.doc.SetTextColor(int(color.R), int(color.G), int(color.B))
	r.doc.Text(x, r.flip(y), text)
	if r.doc.Err() {
		return fmt.Errorf("pdf: text %q: %w", text, r.doc.Error())
	}
	return nil
}

// FillRect fills a rectangle given by its bottom-left corner.
func (r *Renderer) FillRect(x, y, w, h float64, color spellbook.RGB) error {
	r.doc.SetFillColor(int(color.R), int(color.G), int(color.B))
	r.doc.Rect(x, r.flip(y+h), w, h, "F")
	if r.doc.Err() {
		return fmt.Errorf("pdf: rect: %w", r.doc.Error())
	}
	return nil
}

// Image draws an image file stretched to the given rectangle.
func (r *Renderer) Image(path string, x, y, w, h float64) error {
	opts := fpdf.ImageOptions{ReadDpi: true}
	r.doc.ImageOptions(path, x, r.flip(y+h), w, h, false, opts, 0, "")
	if r.doc.Err() {
		return fmt.Errorf("pdf: image %s: %w", path, r.doc.Error())
	}
	return nil
}

// Bookmark adds a top-level outline entry pointing at y on the given
// page, restoring the current page afterwards.
func (r *Renderer) Bookmark(title string, ref spellbook.PageRef, y float64) error {
	current := r.doc.PageNo()
	if current != int(ref) {
		if err := r.SetPage(ref); err != nil {
			return err
		}
	}
	r.doc.Bookmark(title, 0, r.flip(y))
	if current != int(ref) {
		r.doc.SetPage(current)
	}
	if r.doc.Err() {
		return fmt.Errorf("pdf: bookmark %q: %w", title, r.doc.Error())
	}
	return nil
}

// Save writes the finished document to a file and closes it.
func (r *Renderer) Save(path string) error {
	if err := r.doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("pdf: save %s: %w", path, err)
	}
	return nil
}

// Output writes the finished document to w.
func (r *Renderer) Output(w io.Writer) error {
	if err := r.doc.Output(w); err != nil {
		return fmt.Errorf("pdf: output: %w", err)
	}
	return nil
}
