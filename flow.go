package spellbook

import "fmt"

// geometric comparisons tolerate float drift up to this much.
const layoutEpsilon = 1e-6

// Region is a rectangular page area in millimeter coordinates with the
// origin at the bottom-left, so Top > Bottom and text flows downward
// by decreasing y.
type Region struct {
	Left, Right, Top, Bottom float64
}

// Width returns the horizontal extent of the region.
func (r Region) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent of the region.
func (r Region) Height() float64 { return r.Top - r.Bottom }

func (r Region) degenerate() bool {
	return r.Width() <= layoutEpsilon || r.Height() <= layoutEpsilon
}

// flow owns everything a layout pass needs: the renderer, calibrated
// metrics, the configuration, the ordered page sequence, and the
// cursor. The page sequence remembers every page ever created so
// table shading can revisit pages the text pass already crossed.
type flow struct {
	r      Renderer
	m      *measurer
	cfg    *Config
	region Region

	pages []PageRef
	page  int // index into pages

	x, y  float64
	atTop bool // no baseline placed yet on the current pass of this page
	style FontStyle

	// onPage runs once for each page the flow creates, before any
	// content lands on it. Page decoration (background, page numbers)
	// hangs off this.
	onPage func(ref PageRef, index int) error
}

func newFlow(r Renderer, m *measurer, cfg *Config) *flow {
	return &flow{
		r:      r,
		m:      m,
		cfg:    cfg,
		region: cfg.textRegion(),
		page:   -1,
		style:  Regular,
	}
}

// start creates the first page if none exists yet.
func (f *flow) start() error {
	if f.page >= 0 {
		return nil
	}
	return f.pageBreak()
}

func (f *flow) currentRef() PageRef {
	return f.pages[f.page]
}

// pageBreak moves the cursor to the top of the next page in the
// sequence, appending a fresh page when the sequence is exhausted.
func (f *flow) pageBreak() error {
	f.page++
	if f.page < len(f.pages) {
		if err := f.r.SetPage(f.pages[f.page]); err != nil {
			return fmt.Errorf("revisit page %d: %w", f.page, err)
		}
	} else {
		ref, err := f.r.AddPage()
		if err != nil {
			return fmt.Errorf("add page: %w", err)
		}
		f.pages = append(f.pages, ref)
		if f.onPage != nil {
			if err := f.onPage(ref, len(f.pages)-1); err != nil {
				return err
			}
		}
	}
	f.x = f.region.Left
	f.y = f.region.Top
	f.atTop = true
	return nil
}

// nextBaseline advances the cursor one line down and returns the
// baseline to draw on, breaking to the next page when the line would
// fall below the region. On a fresh page the first baseline hangs one
// line height below the top edge.
func (f *flow) nextBaseline(advance, lineHeight float64) (float64, error) {
	y := f.y - advance
	if f.atTop {
		y = f.region.Top - lineHeight
	}
	if y < f.region.Bottom-layoutEpsilon {
		if err := f.pageBreak(); err != nil {
			return 0, err
		}
		y = f.region.Top - lineHeight
	}
	f.y = y
	f.atTop = false
	f.x = f.region.Left
	return y, nil
}

// ensureSpace breaks to the next page unless h of vertical room
// remains below the current baseline. At the top of a page it never
// breaks; content that cannot fit a whole page is drawn anyway.
func (f *flow) ensureSpace(h float64) error {
	if f.atTop {
		return nil
	}
	if f.y-h < f.region.Bottom-layoutEpsilon {
		return f.pageBreak()
	}
	return nil
}

// padVertical moves the cursor down without emitting anything. Padding
// at the top of a page is swallowed.
func (f *flow) padVertical(h float64) {
	if f.atTop {
		return
	}
	f.y -= h
}

// flowMark captures the cursor and sequence position so a second
// layout pass can replay the exact same pages.
type flowMark struct {
	page  int
	x, y  float64
	atTop bool
	style FontStyle
}

func (f *flow) mark() flowMark {
	return flowMark{page: f.page, x: f.x, y: f.y, atTop: f.atTop, style: f.style}
}

func (f *flow) rewind(mk flowMark) error {
	if mk.page >= 0 && mk.page < len(f.pages) {
		if err := f.r.SetPage(f.pages[mk.page]); err != nil {
			return fmt.Errorf("rewind to page %d: %w", mk.page, err)
		}
	}
	f.page = mk.page
	f.x = mk.x
	f.y = mk.y
	f.atTop = mk.atTop
	f.style = mk.style
	return nil
}

// flowOptions shape one paragraph placement.
type flowOptions struct {
	class    TextClass
	indent   bool    // indent the first line by the tab amount
	inline   bool    // resume on the current baseline if room remains
	centered bool
	hang     float64 // left indent for continuation lines
}

// flowParagraph lays out one paragraph of classified tokens, routing
// table content to the table engine and everything else through the
// greedy wrapper. Style state persists across runs and into the next
// paragraph.
func (f *flow) flowParagraph(tokens []Token, opts flowOptions) error {
	if f.region.degenerate() {
		return nil
	}
	if err := f.start(); err != nil {
		return err
	}
	for _, run := range splitTables(tokens) {
		if run.table {
			if err := f.renderTable(run.tokens); err != nil {
				return err
			}
			// text after a table starts on a fresh line in the
			// regular style
			f.style = Regular
			opts.inline = false
			opts.indent = true
			continue
		}
		if err := f.flowText(run.tokens, opts); err != nil {
			return err
		}
		opts.inline = true
	}
	return nil
}

// flowBullet lays out one bullet line: a dot at the left edge with
// continuation lines hanging so they align after it. Dashes in the
// source render as dots.
func (f *flow) flowBullet(tokens []Token, class TextClass) error {
	if f.region.degenerate() {
		return nil
	}
	if err := f.start(); err != nil {
		return err
	}
	size := f.cfg.fontSize(class)
	dotW, err := f.m.width(bulletDot, f.style, size)
	if err != nil {
		return err
	}
	sp, err := f.m.spaceWidth(f.style, size)
	if err != nil {
		return err
	}
	dot := Token{Text: bulletDot, Kind: tokenWord}
	line := append([]Token{dot}, tokens...)
	return f.flowText(line, flowOptions{class: class, hang: dotW + sp})
}

// flowText places one table-free token run.
func (f *flow) flowText(tokens []Token, opts flowOptions) error {
	size := f.cfg.fontSize(opts.class)
	outgoing := f.style
	words, err := f.m.styleWords(tokens, &f.style, size)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return nil
	}
	lineH, err := f.m.lineHeightFor(words, f.style, size)
	if err != nil {
		return err
	}
	advance := f.cfg.newline(opts.class)
	width := f.region.Width()

	// An inline resume continues on the current baseline when the
	// first word still fits; once the cursor has passed the right
	// edge (or the word will not fit) the run pre-advances to a new
	// line indented by the tab amount.
	resume := opts.inline && !f.atTop && f.x > f.region.Left+layoutEpsilon
	var joint float64
	if resume {
		sp, err := f.m.spaceWidth(outgoing, size)
		if err != nil {
			return err
		}
		joint = sp
		if f.x+joint+words[0].width > f.region.Right+layoutEpsilon {
			resume = false
			opts.indent = true
		}
	}

	firstMax := width
	indentBy := 0.0
	switch {
	case resume:
		firstMax = f.region.Right - f.x - joint
	case opts.indent:
		indentBy = f.cfg.TabAmount
		firstMax = width - indentBy
	}
	restMax := width - opts.hang

	lines, err := f.m.wrapWords(words, size, firstMax, restMax)
	if err != nil {
		return err
	}
	for i, line := range lines {
		var baseline, startX float64
		switch {
		case i == 0 && resume:
			baseline = f.y
			startX = f.x + joint
		case i == 0:
			baseline, err = f.nextBaseline(advance, lineH)
			if err != nil {
				return err
			}
			startX = f.region.Left + indentBy
		default:
			baseline, err = f.nextBaseline(advance, lineH)
			if err != nil {
				return err
			}
			startX = f.region.Left + opts.hang
		}
		if opts.centered {
			startX = f.region.Left + (width-line.width)/2
		}
		if err := f.drawLine(line, startX, baseline, size, opts.class); err != nil {
			return err
		}
	}
	return nil
}

// drawLine draws one wrapped line word by word, leaving the cursor at
// the end of the last word.
func (f *flow) drawLine(line wrappedLine, x, baseline float64, size float64, class TextClass) error {
	color := f.cfg.color(class)
	for i, w := range line.words {
		if i > 0 {
			sp, err := f.m.spaceWidth(line.words[i-1].style, size)
			if err != nil {
				return err
			}
			x += sp
		}
		if err := f.r.Text(x, baseline, w.text, w.style, size, color); err != nil {
			return fmt.Errorf("draw %q: %w", w.text, err)
		}
		x += w.width
	}
	f.x = x
	return nil
}
