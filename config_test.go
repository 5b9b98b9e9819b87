package spellbook

import (
	"errors"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := validateConfig(&cfg); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero page width", func(c *Config) { c.PageWidth = -1 }},
		{"negative margin", func(c *Config) { c.LeftMargin = -1 }},
		{"zero font size", func(c *Config) { c.BodyFontSize = -12 }},
		{"zero font scalar", func(c *Config) { c.FontScalars[Bold] = -0.5 }},
		{"negative newline", func(c *Config) { c.BodyNewline = -1 }},
		{"negative table gap", func(c *Config) { c.ColumnGap = -2 }},
		{"negative shade scalar", func(c *Config) { c.OffRowShadeHeight = -1 }},
		{"negative page number margin", func(c *Config) { c.PageNumberSideMargin = -3 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := validateConfig(&cfg)
			if !errors.Is(err, ErrBadConfig) {
				t.Fatalf("expected ErrBadConfig, got %v", err)
			}
		})
	}
}

func TestApplyConfigOverlaysNonZero(t *testing.T) {
	dst := DefaultConfig()
	applyConfig(&dst, Config{
		PageWidth:       100,
		BodyFontSize:    10,
		FontScalars:     [numFontStyles]float64{0, 1.2, 0, 0},
		HeaderColor:     RGB{1, 2, 3},
		PageNumberStart: 5,
	})
	if dst.PageWidth != 100 {
		t.Fatalf("PageWidth = %g, want 100", dst.PageWidth)
	}
	if dst.PageHeight != DefaultConfig().PageHeight {
		t.Fatalf("zero PageHeight should keep default")
	}
	if dst.BodyFontSize != 10 {
		t.Fatalf("BodyFontSize = %g, want 10", dst.BodyFontSize)
	}
	if dst.FontScalars[Bold] != 1.2 || dst.FontScalars[Regular] != 1 {
		t.Fatalf("scalars = %v", dst.FontScalars)
	}
	if dst.HeaderColor != (RGB{1, 2, 3}) {
		t.Fatalf("HeaderColor = %v", dst.HeaderColor)
	}
	if dst.PageNumberStart != 5 {
		t.Fatalf("PageNumberStart = %d, want 5", dst.PageNumberStart)
	}
}

func TestConfigClassLookups(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.fontSize(ClassHeader) != cfg.HeaderFontSize {
		t.Fatalf("header font size lookup wrong")
	}
	if cfg.newline(ClassTableBody) != cfg.TableBodyNewline {
		t.Fatalf("table body newline lookup wrong")
	}
	if cfg.color(ClassTitle) != cfg.TitleColor {
		t.Fatalf("title color lookup wrong")
	}
}

func TestTextRegion(t *testing.T) {
	cfg := DefaultConfig()
	region := cfg.textRegion()
	if region.Left != cfg.LeftMargin {
		t.Fatalf("region left = %g", region.Left)
	}
	if region.Top != cfg.PageHeight-cfg.TopMargin {
		t.Fatalf("region top = %g", region.Top)
	}
	if region.Width() != cfg.PageWidth-cfg.LeftMargin-cfg.RightMargin {
		t.Fatalf("region width = %g", region.Width())
	}
}
