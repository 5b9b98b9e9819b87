package spellbook

// styledWord is a measured word carrying the style it resolved to
// after tag processing.
type styledWord struct {
	text  string
	style FontStyle
	width float64
}

// wrappedLine is a greedily filled row of words. width includes the
// inter-word spaces.
type wrappedLine struct {
	words []styledWord
	width float64
}

// styleWords runs the style state machine over a token run and
// measures each word in the style it lands in. The caller's style
// pointer is advanced so state carries across runs and paragraphs.
func (m *measurer) styleWords(tokens []Token, style *FontStyle, size float64) ([]styledWord, error) {
	words := make([]styledWord, 0, len(tokens))
	for _, t := range tokens {
		switch t.Kind {
		case tokenStyle:
			*style = t.Style
		case tokenWord:
			w, err := m.width(t.Text, *style, size)
			if err != nil {
				return nil, err
			}
			words = append(words, styledWord{text: t.Text, style: *style, width: w})
		}
	}
	return words, nil
}

// spaceWidth measures one inter-word space. Spaces take the style of
// the word they follow, so a style change costs its space in the
// outgoing style.
func (m *measurer) spaceWidth(style FontStyle, size float64) (float64, error) {
	return m.width(" ", style, size)
}

// wrapWords fills lines greedily against a wrap width. The first line
// may have its own width (indents, inline resumes). A word that does
// not fit starts the next line; a word wider than the whole line is
// placed alone on its own line, never split.
func (m *measurer) wrapWords(words []styledWord, size, firstMax, restMax float64) ([]wrappedLine, error) {
	var lines []wrappedLine
	var cur wrappedLine
	max := firstMax
	flush := func() {
		if len(cur.words) > 0 {
			lines = append(lines, cur)
			cur = wrappedLine{}
		}
		max = restMax
	}
	for _, w := range words {
		if len(cur.words) == 0 {
			cur.words = append(cur.words, w)
			cur.width = w.width
			if cur.width > max {
				flush()
			}
			continue
		}
		sp, err := m.spaceWidth(cur.words[len(cur.words)-1].style, size)
		if err != nil {
			return nil, err
		}
		if cur.width+sp+w.width > max {
			flush()
			cur.words = append(cur.words, w)
			cur.width = w.width
			if cur.width > max {
				flush()
			}
			continue
		}
		cur.words = append(cur.words, w)
		cur.width += sp + w.width
	}
	flush()
	return lines, nil
}

// lineHeightFor returns the tallest line height among the styles that
// appear in words, falling back to the base style for empty input.
func (m *measurer) lineHeightFor(words []styledWord, base FontStyle, size float64) (float64, error) {
	seen := [numFontStyles]bool{}
	seen[base] = true
	for _, w := range words {
		seen[w.style] = true
	}
	var h float64
	for style, ok := range seen {
		if !ok {
			continue
		}
		sh, err := m.lineHeight(FontStyle(style), size)
		if err != nil {
			return 0, err
		}
		if sh > h {
			h = sh
		}
	}
	return h, nil
}
