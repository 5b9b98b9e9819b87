package pdf

import (
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Config holds PDF backend settings. Fonts come either from file
// paths or from embedded TTF bytes, never both; when neither is set
// the Go font family is used.
type Config struct {
	PageWidth  float64 // mm
	PageHeight float64 // mm

	RegularFont    string
	BoldFont       string
	ItalicFont     string
	BoldItalicFont string

	RegularFontBytes    []byte
	BoldFontBytes       []byte
	ItalicFontBytes     []byte
	BoldItalicFontBytes []byte
}

// DefaultConfig returns an A4 configuration using the embedded Go
// fonts.
func DefaultConfig() Config {
	return Config{
		PageWidth:  210,
		PageHeight: 297,
	}
}

// fontData resolves the configuration to one TTF per variant, in
// spellbook.FontStyle order.
func (cfg *Config) fontData() ([4][]byte, error) {
	var data [4][]byte
	paths := [4]string{cfg.RegularFont, cfg.BoldFont, cfg.ItalicFont, cfg.BoldItalicFont}
	bytes := [4][]byte{cfg.RegularFontBytes, cfg.BoldFontBytes, cfg.ItalicFontBytes, cfg.BoldItalicFontBytes}
	hasPath := false
	hasBytes := false
	for i := range paths {
		if paths[i] != "" {
			hasPath = true
		}
		if len(bytes[i]) > 0 {
			hasBytes = true
		}
	}
	switch {
	case hasPath && hasBytes:
		return data, fmt.Errorf("pdf: cannot mix font paths with embedded font bytes")
	case hasPath:
		for i, path := range paths {
			if path == "" {
				return data, fmt.Errorf("pdf: missing font path for variant %d", i)
			}
			ttf, err := os.ReadFile(path)
			if err != nil {
				return data, fmt.Errorf("pdf: read font: %w", err)
			}
			data[i] = ttf
		}
	case hasBytes:
		for i, ttf := range bytes {
			if len(ttf) == 0 {
				return data, fmt.Errorf("pdf: missing font bytes for variant %d", i)
			}
			data[i] = ttf
		}
	default:
		data = [4][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF}
	}
	return data, nil
}
