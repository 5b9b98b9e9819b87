package spellbook

import "strings"

// Spell description markup. Tags are whitespace-delimited tokens:
//
//	<r> <b> <i> <bi> <ib>   switch font style for subsequent text
//	<table> ... <table>     enclose table content
//	<title> ... </title>    table title (inside a table)
//	<row>                   row separator (inside a table)
//	|                       cell separator (inside a table)
//
// A token starting with a backslash has exactly one backslash stripped
// and is rendered as plain text, which is how a literal "<b>" or "|"
// gets onto the page.
const (
	tagRegular    = "<r>"
	tagBold       = "<b>"
	tagItalic     = "<i>"
	tagBoldItalic = "<bi>"
	tagItalicBold = "<ib>"
	tagTable      = "<table>"
	tagTitleOpen  = "<title>"
	tagTitleClose = "</title>"
	tagRow        = "<row>"
	tagColumn     = "|"
	escapePrefix  = `\`

	// A paragraph opening with either marker is a bullet line; both
	// render as a dot.
	bulletDot  = "•"
	bulletDash = "-"
)

// Token is one whitespace-delimited unit of spell description text.
type Token struct {
	Text    string
	Kind    tokenKind
	Style   FontStyle // target style for tokenStyle tokens
	Escaped bool      // one escape prefix was stripped from Text
}

type tokenKind uint8

const (
	tokenWord tokenKind = iota
	tokenStyle
	tokenTableToggle
)

// tokenize splits one paragraph of tagged text into classified tokens.
func tokenize(text string) []Token {
	fields := strings.Fields(text)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, classifyToken(f))
	}
	return tokens
}

func classifyToken(word string) Token {
	switch word {
	case tagRegular:
		return Token{Text: word, Kind: tokenStyle, Style: Regular}
	case tagBold:
		return Token{Text: word, Kind: tokenStyle, Style: Bold}
	case tagItalic:
		return Token{Text: word, Kind: tokenStyle, Style: Italic}
	case tagBoldItalic, tagItalicBold:
		return Token{Text: word, Kind: tokenStyle, Style: BoldItalic}
	case tagTable:
		return Token{Text: word, Kind: tokenTableToggle}
	}
	if strings.HasPrefix(word, escapePrefix) {
		return Token{Text: word[len(escapePrefix):], Kind: tokenWord, Escaped: true}
	}
	return Token{Text: word, Kind: tokenWord}
}

// isTableMarker reports whether a token acts as structural markup
// inside table content. Escaped tokens never do.
func isTableMarker(t Token) bool {
	if t.Kind != tokenWord || t.Escaped {
		return false
	}
	switch t.Text {
	case tagTitleOpen, tagTitleClose, tagRow, tagColumn:
		return true
	}
	return false
}

// isBulletLine reports whether a paragraph's tokens form a bullet
// point. Escaped markers read as plain text.
func isBulletLine(tokens []Token) bool {
	if len(tokens) == 0 || tokens[0].Kind != tokenWord || tokens[0].Escaped {
		return false
	}
	return tokens[0].Text == bulletDot || tokens[0].Text == bulletDash
}

// EscapeToken prefixes a word with a backslash when tokenizing it back
// would not yield the word itself, so that EscapeToken(w) always
// round-trips through classifyToken to the plain text w.
func EscapeToken(word string) string {
	t := classifyToken(word)
	if t.Kind != tokenWord || t.Escaped || isTableMarker(t) {
		return escapePrefix + word
	}
	return word
}

// PlainText strips the markup from one paragraph: tags are dropped,
// escapes resolved, and the remaining words joined with single spaces.
func PlainText(paragraph string) string {
	var b strings.Builder
	for _, t := range tokenize(paragraph) {
		if t.Kind != tokenWord {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}

// splitTables separates a token stream into runs of flowing text and
// table content. Table content is everything between a pair of
// <table> toggles; an unclosed toggle runs to the end of the
// paragraph.
type tokenRun struct {
	tokens []Token
	table  bool
}

func splitTables(tokens []Token) []tokenRun {
	var runs []tokenRun
	start := 0
	table := false
	for i, t := range tokens {
		if t.Kind != tokenTableToggle {
			continue
		}
		if i > start {
			runs = append(runs, tokenRun{tokens: tokens[start:i], table: table})
		}
		start = i + 1
		table = !table
	}
	if start < len(tokens) {
		runs = append(runs, tokenRun{tokens: tokens[start:], table: table})
	}
	return runs
}
