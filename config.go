package spellbook

import "fmt"

// Config holds page geometry, typography, and table layout settings.
// All distances are in millimeters; font sizes are in points. Zero
// fields are filled from DefaultConfig when passed to Write or
// NewWriter, and the merged result is validated once up front.
type Config struct {
	PageWidth    float64
	PageHeight   float64
	LeftMargin   float64
	RightMargin  float64
	TopMargin    float64
	BottomMargin float64

	TitleFontSize      float64
	HeaderFontSize     float64
	BodyFontSize       float64
	TableTitleFontSize float64
	TableBodyFontSize  float64

	// FontScalars calibrate measured widths and heights per font
	// variant, indexed by FontStyle. Metrics providers report ideal
	// glyph advances; real fonts need a nudge to match what the
	// renderer draws.
	FontScalars [numFontStyles]float64

	TabAmount          float64
	TitleNewline       float64
	HeaderNewline      float64
	BodyNewline        float64
	TableTitleNewline  float64
	TableBodyNewline   float64

	TitleColor      RGB
	HeaderColor     RGB
	BodyColor       RGB
	TableTitleColor RGB
	TableBodyColor  RGB

	// Table geometry. ColumnGap and RowGap separate cells; the side
	// margin keeps the table off the text region edges and the outer
	// gap separates the table from surrounding text vertically.
	ColumnGap      float64
	RowGap         float64
	TableSideGap   float64
	TableOuterGap  float64
	// OffRowShadeRaise shifts shading bands up from the row baseline
	// and OffRowShadeHeight sizes them, both as fractions of the row's
	// line height.
	OffRowShadeRaise  float64
	OffRowShadeHeight float64
	OffRowColor       RGB

	// Page numbers are on by default, starting on the left edge and
	// alternating sides page by page. The bools are phrased so the
	// zero value keeps the defaults through applyConfig.
	NoPageNumbers          bool
	PageNumbersStartRight  bool
	PageNumbersNoFlip      bool
	PageNumberStart        int
	PageNumberStyle        FontStyle
	PageNumberFontSize     float64
	PageNumberColor        RGB
	PageNumberSideMargin   float64
	PageNumberBottomMargin float64

	// BackgroundImage, when set, is drawn covering every page before
	// any text.
	BackgroundImage string
}

// DefaultConfig returns a baseline A4 configuration.
func DefaultConfig() Config {
	return Config{
		PageWidth:    210,
		PageHeight:   297,
		LeftMargin:   10,
		RightMargin:  10,
		TopMargin:    5,
		BottomMargin: 8,

		TitleFontSize:      32,
		HeaderFontSize:     24,
		BodyFontSize:       12,
		TableTitleFontSize: 16,
		TableBodyFontSize:  12,

		FontScalars: [numFontStyles]float64{1, 1, 1, 1},

		TabAmount:         7.5,
		TitleNewline:      12,
		HeaderNewline:     8,
		BodyNewline:       5,
		TableTitleNewline: 6,
		TableBodyNewline:  5,

		TitleColor:      RGB{0, 0, 0},
		HeaderColor:     RGB{115, 26, 35},
		BodyColor:       RGB{0, 0, 0},
		TableTitleColor: RGB{0, 0, 0},
		TableBodyColor:  RGB{0, 0, 0},

		ColumnGap:         10,
		RowGap:            2,
		TableSideGap:      4,
		TableOuterGap:     4,
		OffRowShadeRaise:  0.3,
		OffRowShadeHeight: 1.2,
		OffRowColor:       RGB{213, 209, 224},

		PageNumberStart:        1,
		PageNumberStyle:        Regular,
		PageNumberFontSize:     12,
		PageNumberColor:        RGB{0, 0, 0},
		PageNumberSideMargin:   8,
		PageNumberBottomMargin: 4,
	}
}

// applyConfig overlays non-zero src fields onto dst.
func applyConfig(dst *Config, src Config) {
	if src.PageWidth > 0 {
		dst.PageWidth = src.PageWidth
	}
	if src.PageHeight > 0 {
		dst.PageHeight = src.PageHeight
	}
	if src.LeftMargin > 0 {
		dst.LeftMargin = src.LeftMargin
	}
	if src.RightMargin > 0 {
		dst.RightMargin = src.RightMargin
	}
	if src.TopMargin > 0 {
		dst.TopMargin = src.TopMargin
	}
	if src.BottomMargin > 0 {
		dst.BottomMargin = src.BottomMargin
	}
	if src.TitleFontSize > 0 {
		dst.TitleFontSize = src.TitleFontSize
	}
	if src.HeaderFontSize > 0 {
		dst.HeaderFontSize = src.HeaderFontSize
	}
	if src.BodyFontSize > 0 {
		dst.BodyFontSize = src.BodyFontSize
	}
	if src.TableTitleFontSize > 0 {
		dst.TableTitleFontSize = src.TableTitleFontSize
	}
	if src.TableBodyFontSize > 0 {
		dst.TableBodyFontSize = src.TableBodyFontSize
	}
	for i, s := range src.FontScalars {
		if s > 0 {
			dst.FontScalars[i] = s
		}
	}
	if src.TabAmount > 0 {
		dst.TabAmount = src.TabAmount
	}
	if src.TitleNewline > 0 {
		dst.TitleNewline = src.TitleNewline
	}
	if src.HeaderNewline > 0 {
		dst.HeaderNewline = src.HeaderNewline
	}
	if src.BodyNewline > 0 {
		dst.BodyNewline = src.BodyNewline
	}
	if src.TableTitleNewline > 0 {
		dst.TableTitleNewline = src.TableTitleNewline
	}
	if src.TableBodyNewline > 0 {
		dst.TableBodyNewline = src.TableBodyNewline
	}
	if src.TitleColor != (RGB{}) {
		dst.TitleColor = src.TitleColor
	}
	if src.HeaderColor != (RGB{}) {
		dst.HeaderColor = src.HeaderColor
	}
	if src.BodyColor != (RGB{}) {
		dst.BodyColor = src.BodyColor
	}
	if src.TableTitleColor != (RGB{}) {
		dst.TableTitleColor = src.TableTitleColor
	}
	if src.TableBodyColor != (RGB{}) {
		dst.TableBodyColor = src.TableBodyColor
	}
	if src.ColumnGap > 0 {
		dst.ColumnGap = src.ColumnGap
	}
	if src.RowGap > 0 {
		dst.RowGap = src.RowGap
	}
	if src.TableSideGap > 0 {
		dst.TableSideGap = src.TableSideGap
	}
	if src.TableOuterGap > 0 {
		dst.TableOuterGap = src.TableOuterGap
	}
	if src.OffRowShadeRaise > 0 {
		dst.OffRowShadeRaise = src.OffRowShadeRaise
	}
	if src.OffRowShadeHeight > 0 {
		dst.OffRowShadeHeight = src.OffRowShadeHeight
	}
	if src.OffRowColor != (RGB{}) {
		dst.OffRowColor = src.OffRowColor
	}
	if src.NoPageNumbers {
		dst.NoPageNumbers = true
	}
	if src.PageNumbersStartRight {
		dst.PageNumbersStartRight = true
	}
	if src.PageNumbersNoFlip {
		dst.PageNumbersNoFlip = true
	}
	if src.PageNumberStart != 0 {
		dst.PageNumberStart = src.PageNumberStart
	}
	if src.PageNumberStyle != Regular {
		dst.PageNumberStyle = src.PageNumberStyle
	}
	if src.PageNumberFontSize > 0 {
		dst.PageNumberFontSize = src.PageNumberFontSize
	}
	if src.PageNumberColor != (RGB{}) {
		dst.PageNumberColor = src.PageNumberColor
	}
	if src.PageNumberSideMargin > 0 {
		dst.PageNumberSideMargin = src.PageNumberSideMargin
	}
	if src.PageNumberBottomMargin > 0 {
		dst.PageNumberBottomMargin = src.PageNumberBottomMargin
	}
	if src.BackgroundImage != "" {
		dst.BackgroundImage = src.BackgroundImage
	}
}

// validateConfig rejects geometry and typography that cannot produce a
// usable page. Margins may consume the whole page; the resulting
// degenerate text region is legal and simply renders nothing.
func validateConfig(cfg *Config) error {
	if cfg.PageWidth <= 0 {
		return fmt.Errorf("%w: page width %g", ErrBadConfig, cfg.PageWidth)
	}
	if cfg.PageHeight <= 0 {
		return fmt.Errorf("%w: page height %g", ErrBadConfig, cfg.PageHeight)
	}
	if cfg.LeftMargin < 0 || cfg.RightMargin < 0 {
		return fmt.Errorf("%w: negative horizontal margin", ErrBadConfig)
	}
	if cfg.TopMargin < 0 || cfg.BottomMargin < 0 {
		return fmt.Errorf("%w: negative vertical margin", ErrBadConfig)
	}
	for _, size := range []float64{
		cfg.TitleFontSize, cfg.HeaderFontSize, cfg.BodyFontSize,
		cfg.TableTitleFontSize, cfg.TableBodyFontSize, cfg.PageNumberFontSize,
	} {
		if size <= 0 {
			return fmt.Errorf("%w: font size %g", ErrBadConfig, size)
		}
	}
	for style, s := range cfg.FontScalars {
		if s <= 0 {
			return fmt.Errorf("%w: %s font scalar %g", ErrBadConfig, FontStyle(style), s)
		}
	}
	for _, amount := range []float64{
		cfg.TabAmount, cfg.TitleNewline, cfg.HeaderNewline, cfg.BodyNewline,
		cfg.TableTitleNewline, cfg.TableBodyNewline,
	} {
		if amount < 0 {
			return fmt.Errorf("%w: negative spacing amount %g", ErrBadConfig, amount)
		}
	}
	if cfg.ColumnGap < 0 || cfg.RowGap < 0 || cfg.TableSideGap < 0 || cfg.TableOuterGap < 0 {
		return fmt.Errorf("%w: negative table margin", ErrBadConfig)
	}
	if cfg.OffRowShadeRaise < 0 || cfg.OffRowShadeHeight < 0 {
		return fmt.Errorf("%w: negative shading scalar", ErrBadConfig)
	}
	if cfg.PageNumberSideMargin < 0 || cfg.PageNumberBottomMargin < 0 {
		return fmt.Errorf("%w: negative page number margin", ErrBadConfig)
	}
	return nil
}

// fontSize returns the configured font size for a text class.
func (cfg *Config) fontSize(class TextClass) float64 {
	switch class {
	case ClassTitle:
		return cfg.TitleFontSize
	case ClassHeader:
		return cfg.HeaderFontSize
	case ClassTableTitle:
		return cfg.TableTitleFontSize
	case ClassTableBody:
		return cfg.TableBodyFontSize
	default:
		return cfg.BodyFontSize
	}
}

// newline returns the configured per-line advance for a text class.
func (cfg *Config) newline(class TextClass) float64 {
	switch class {
	case ClassTitle:
		return cfg.TitleNewline
	case ClassHeader:
		return cfg.HeaderNewline
	case ClassTableTitle:
		return cfg.TableTitleNewline
	case ClassTableBody:
		return cfg.TableBodyNewline
	default:
		return cfg.BodyNewline
	}
}

// color returns the configured text color for a text class.
func (cfg *Config) color(class TextClass) RGB {
	switch class {
	case ClassTitle:
		return cfg.TitleColor
	case ClassHeader:
		return cfg.HeaderColor
	case ClassTableTitle:
		return cfg.TableTitleColor
	case ClassTableBody:
		return cfg.TableBodyColor
	default:
		return cfg.BodyColor
	}
}

// textRegion returns the page area available to flowing text.
func (cfg *Config) textRegion() Region {
	return Region{
		Left:   cfg.LeftMargin,
		Right:  cfg.PageWidth - cfg.RightMargin,
		Top:    cfg.PageHeight - cfg.TopMargin,
		Bottom: cfg.BottomMargin,
	}
}
