package spellbook

// PageRef identifies a page created by a Renderer. Refs are handed out
// by AddPage and stay valid for the life of the document, so the
// engine can revisit earlier pages when it draws table shading.
type PageRef int

// Renderer draws layout output. Coordinates are in millimeters with
// the origin at the bottom-left of the page and y increasing upward;
// Text receives the baseline of the line it draws.
type Renderer interface {
	// AddPage appends a new page and makes it current.
	AddPage() (PageRef, error)
	// SetPage makes a previously created page current.
	SetPage(ref PageRef) error
	// Text draws a string with its left edge at x and baseline at y.
	Text(x, y float64, text string, style FontStyle, size float64, color RGB) error
	// FillRect fills the rectangle whose bottom-left corner is (x, y).
	FillRect(x, y, w, h float64, color RGB) error
	// Image draws the image file stretched to the given rectangle on
	// the current page, behind nothing (callers order their draws).
	Image(path string, x, y, w, h float64) error
	// Bookmark adds an outline entry pointing at y on the given page.
	Bookmark(title string, ref PageRef, y float64) error
}
