package pdf

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	spellbook "github.com/ChandlerJayCalkins/dnd-spellbook-maker-sub000"
)

const mmPerPoint = 25.4 / 72

// Metrics implements spellbook.FontMetrics by summing sfnt glyph
// advances. It shares one parse buffer and is not safe for concurrent
// use.
type Metrics struct {
	fonts [4]*sfnt.Font
	buf   sfnt.Buffer
}

// NewMetrics parses one TrueType font per variant, in
// spellbook.FontStyle order.
func NewMetrics(regular, bold, italic, boldItalic []byte) (*Metrics, error) {
	m := &Metrics{}
	for i, ttf := range [4][]byte{regular, bold, italic, boldItalic} {
		f, err := sfnt.Parse(ttf)
		if err != nil {
			return nil, fmt.Errorf("parse %s font: %w", spellbook.FontStyle(i), err)
		}
		m.fonts[i] = f
	}
	return m, nil
}

func (m *Metrics) font(style spellbook.FontStyle) (*sfnt.Font, error) {
	if int(style) >= len(m.fonts) || m.fonts[style] == nil {
		return nil, fmt.Errorf("%w: no %s font", spellbook.ErrNoMetrics, style)
	}
	return m.fonts[style], nil
}

func ppem(size float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(size * 64))
}

// TextWidth sums the glyph advances of text at size, in millimeters.
// Runes without a glyph fall back to the font's notdef glyph.
func (m *Metrics) TextWidth(text string, style spellbook.FontStyle, size float64) (float64, error) {
	f, err := m.font(style)
	if err != nil {
		return 0, err
	}
	var total fixed.Int26_6
	for _, r := range text {
		gi, err := f.GlyphIndex(&m.buf, r)
		if err != nil {
			return 0, fmt.Errorf("%w: glyph %q: %v", spellbook.ErrNoMetrics, r, err)
		}
		adv, err := f.GlyphAdvance(&m.buf, gi, ppem(size), font.HintingNone)
		if err != nil {
			return 0, fmt.Errorf("%w: advance %q: %v", spellbook.ErrNoMetrics, r, err)
		}
		total += adv
	}
	return float64(total) / 64 * mmPerPoint, nil
}

// LineHeight returns ascent plus descent at size, in millimeters.
func (m *Metrics) LineHeight(style spellbook.FontStyle, size float64) (float64, error) {
	f, err := m.font(style)
	if err != nil {
		return 0, err
	}
	met, err := f.Metrics(&m.buf, ppem(size), font.HintingNone)
	if err != nil {
		return 0, fmt.Errorf("%w: metrics: %v", spellbook.ErrNoMetrics, err)
	}
	return float64(met.Ascent+met.Descent) / 64 * mmPerPoint, nil
}
