// Package pdf backs the spellbook layout engine with a PDF document.
//
// It implements spellbook.Renderer over codeberg.org/go-pdf/fpdf and
// spellbook.FontMetrics over golang.org/x/image/font/sfnt, reading the
// same TrueType data for both so measured and drawn text agree. The
// layout engine's bottom-up millimeter coordinates are flipped to
// fpdf's top-down page space here and nowhere else.
package pdf
