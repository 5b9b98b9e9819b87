package spellbook

import (
	"fmt"
	"strconv"
	"strings"
)

// Writer lays a whole spellbook out through a Renderer. A Writer is
// single-use and not safe for concurrent use; build the book in order
// (title page, then spells) and discard it.
type Writer struct {
	cfg  Config
	flow *flow
	r    Renderer
}

// NewWriter merges cfg over DefaultConfig, validates the result, and
// returns a Writer drawing through r and measuring through fm.
func NewWriter(r Renderer, fm FontMetrics, cfg Config) (*Writer, error) {
	merged := DefaultConfig()
	applyConfig(&merged, cfg)
	if err := validateConfig(&merged); err != nil {
		return nil, err
	}
	w := &Writer{cfg: merged, r: r}
	w.flow = newFlow(r, newMeasurer(fm, merged.FontScalars), &w.cfg)
	w.flow.onPage = w.decoratePage
	return w, nil
}

// Config returns the merged, validated configuration in use.
func (w *Writer) Config() Config { return w.cfg }

// decoratePage draws the background image and the page number on a
// freshly created page. Page numbers alternate sides when configured
// to flip, starting on the configured side.
func (w *Writer) decoratePage(ref PageRef, index int) error {
	cfg := &w.cfg
	if cfg.BackgroundImage != "" {
		if err := w.r.Image(cfg.BackgroundImage, 0, 0, cfg.PageWidth, cfg.PageHeight); err != nil {
			return fmt.Errorf("page background: %w", err)
		}
	}
	if cfg.NoPageNumbers {
		return nil
	}
	text := strconv.Itoa(cfg.PageNumberStart + index)
	width, err := w.flow.m.width(text, cfg.PageNumberStyle, cfg.PageNumberFontSize)
	if err != nil {
		return err
	}
	left := !cfg.PageNumbersStartRight
	if !cfg.PageNumbersNoFlip && index%2 == 1 {
		left = !left
	}
	x := cfg.PageNumberSideMargin
	if !left {
		x = cfg.PageWidth - cfg.PageNumberSideMargin - width
	}
	err = w.r.Text(x, cfg.PageNumberBottomMargin, text, cfg.PageNumberStyle, cfg.PageNumberFontSize, cfg.PageNumberColor)
	if err != nil {
		return fmt.Errorf("page number %s: %w", text, err)
	}
	return nil
}

// AddTitlePage writes the cover page: the book title centered, roughly
// a third of the way down the page.
func (w *Writer) AddTitlePage(title string) error {
	f := w.flow
	if f.region.degenerate() {
		return nil
	}
	if err := f.start(); err != nil {
		return err
	}
	f.y = f.region.Top - f.region.Height()/3
	f.atTop = false
	f.style = Regular
	return f.flowParagraph(tokenizePlain(title), flowOptions{class: ClassTitle, centered: true})
}

// AddSpell appends one spell: a bookmark, the name, the level and
// school line, the field block, the description, and the upcast
// paragraph when present. Each spell starts on its own page.
func (w *Writer) AddSpell(spell *Spell) error {
	if err := spell.validate(); err != nil {
		return err
	}
	f := w.flow
	if f.region.degenerate() {
		return nil
	}
	if err := f.start(); err != nil {
		return err
	}
	if !f.atTop {
		if err := f.pageBreak(); err != nil {
			return err
		}
	}
	if err := f.r.Bookmark(spell.Name, f.currentRef(), f.region.Top); err != nil {
		return fmt.Errorf("bookmark %q: %w", spell.Name, err)
	}

	f.style = Regular
	name := tokenizePlain(spell.Name)
	if err := f.flowParagraph(name, flowOptions{class: ClassHeader}); err != nil {
		return err
	}

	f.style = Italic
	school := tokenizePlain(spell.LevelSchoolText())
	if err := f.flowParagraph(school, flowOptions{class: ClassBody}); err != nil {
		return err
	}

	fields := []struct{ label, value string }{
		{"Casting Time:", spell.CastingTime.String()},
		{"Range:", spell.Range.String()},
		{"Components:", spell.Components.String()},
		{"Duration:", spell.Duration.String()},
	}
	for _, field := range fields {
		f.style = Regular
		tokens := boldTokens(field.label)
		tokens = append(tokens, Token{Text: tagRegular, Kind: tokenStyle, Style: Regular})
		tokens = append(tokens, tokenizePlain(field.value)...)
		if err := f.flowParagraph(tokens, flowOptions{class: ClassBody}); err != nil {
			return err
		}
	}

	f.style = Regular
	inBullets := false
	for _, paragraph := range spell.Description {
		tokens := tokenize(paragraph)
		if isBulletLine(tokens) {
			if !inBullets {
				// an extra newline sets the list off from the
				// text above it
				f.padVertical(w.cfg.BodyNewline)
				inBullets = true
			}
			if err := f.flowBullet(tokens[1:], ClassBody); err != nil {
				return err
			}
			continue
		}
		if inBullets {
			f.padVertical(w.cfg.BodyNewline)
			inBullets = false
		}
		if err := f.flowParagraph(tokens, flowOptions{class: ClassBody, indent: true}); err != nil {
			return err
		}
	}
	if spell.Upcast != "" {
		upcast := fmt.Sprintf("%s %s %s %s", tagBoldItalic, spell.UpcastPrefix(), tagRegular, spell.Upcast)
		if err := f.flowParagraph(tokenize(upcast), flowOptions{class: ClassBody, indent: true}); err != nil {
			return err
		}
	}
	return nil
}

// PageCount returns the number of pages created so far.
func (w *Writer) PageCount() int { return len(w.flow.pages) }

// tokenizePlain wraps literal text as word tokens, escaping anything
// that would read as markup.
func tokenizePlain(text string) []Token {
	words := strings.Fields(text)
	tokens := make([]Token, 0, len(words))
	for _, word := range words {
		tokens = append(tokens, classifyToken(EscapeToken(word)))
	}
	return tokens
}

// boldTokens renders literal text prefixed with a switch to bold.
func boldTokens(text string) []Token {
	return append([]Token{{Text: tagBold, Kind: tokenStyle, Style: Bold}}, tokenizePlain(text)...)
}

// Write lays out a complete spellbook: cover page first, then every
// spell in order.
func Write(r Renderer, fm FontMetrics, title string, spells []Spell, cfg Config) error {
	w, err := NewWriter(r, fm, cfg)
	if err != nil {
		return err
	}
	if err := w.AddTitlePage(title); err != nil {
		return fmt.Errorf("title page: %w", err)
	}
	for i := range spells {
		if err := w.AddSpell(&spells[i]); err != nil {
			return fmt.Errorf("spell %q: %w", spells[i].Name, err)
		}
	}
	return nil
}
