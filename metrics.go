package spellbook

import "fmt"

// FontMetrics measures text for the layout engine. Implementations
// report ideal distances in millimeters; the engine applies the
// per-style calibration scalars from Config on top.
type FontMetrics interface {
	// TextWidth returns the width of text drawn in the given style at
	// the given point size.
	TextWidth(text string, style FontStyle, size float64) (float64, error)
	// LineHeight returns the height of a single line of the given
	// style at the given point size (ascent plus descent).
	LineHeight(style FontStyle, size float64) (float64, error)
}

// measurer wraps a FontMetrics provider with calibration scalars.
type measurer struct {
	fm      FontMetrics
	scalars [numFontStyles]float64
}

func newMeasurer(fm FontMetrics, scalars [numFontStyles]float64) *measurer {
	return &measurer{fm: fm, scalars: scalars}
}

func (m *measurer) width(text string, style FontStyle, size float64) (float64, error) {
	if text == "" {
		return 0, nil
	}
	w, err := m.fm.TextWidth(text, style, size)
	if err != nil {
		return 0, fmt.Errorf("measure %q %s: %w", text, style, err)
	}
	return w * m.scalars[style], nil
}

func (m *measurer) lineHeight(style FontStyle, size float64) (float64, error) {
	h, err := m.fm.LineHeight(style, size)
	if err != nil {
		return 0, fmt.Errorf("line height %s: %w", style, err)
	}
	return h * m.scalars[style], nil
}

// blockHeight returns the vertical extent of n lines whose baselines
// are newline apart and whose glyphs are lineHeight tall. Zero lines
// occupy no space.
func blockHeight(n int, newline, lineHeight float64) float64 {
	if n <= 0 {
		return 0
	}
	return float64(n-1)*newline + lineHeight
}
