package spellbook

// FontStyle selects one of the four font variants of a typeface.
type FontStyle uint8

const (
	// Regular is the upright book weight.
	Regular FontStyle = iota
	// Bold is the heavy weight.
	Bold
	// Italic is the slanted book weight.
	Italic
	// BoldItalic is the heavy slanted weight.
	BoldItalic
)

// numFontStyles must match the number of FontStyle variants.
const numFontStyles = 4

func (s FontStyle) String() string {
	switch s {
	case Regular:
		return "Regular"
	case Bold:
		return "Bold"
	case Italic:
		return "Italic"
	case BoldItalic:
		return "Bold Italic"
	}
	return "Unknown"
}

// TextClass identifies what kind of text is being laid out. Each class
// carries its own font size, newline advance, and color in Config.
type TextClass uint8

const (
	// ClassTitle is cover page text.
	ClassTitle TextClass = iota
	// ClassHeader is spell name text.
	ClassHeader
	// ClassBody is spell fields and description text.
	ClassBody
	// ClassTableTitle is the title label above a table.
	ClassTableTitle
	// ClassTableBody is cell text inside a table.
	ClassTableBody
)

func (c TextClass) String() string {
	switch c {
	case ClassTitle:
		return "Title"
	case ClassHeader:
		return "Header"
	case ClassBody:
		return "Body"
	case ClassTableTitle:
		return "TableTitle"
	case ClassTableBody:
		return "TableBody"
	}
	return "Unknown"
}

// RGB is an 8-bit-per-channel color.
type RGB struct {
	R, G, B uint8
}
