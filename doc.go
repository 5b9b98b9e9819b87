// Package spellbook lays out D&D 5e spells into paginated documents.
//
// The layout engine is renderer-agnostic: it measures text through a
// FontMetrics provider, flows it across pages through a Renderer, and
// leaves the actual drawing (PDF, recording fakes in tests) to the
// backend. Spell descriptions carry a small inline tag language for
// style changes and tables; the engine wraps greedily, never splits a
// token across lines, and keeps table shading and table text aligned
// by replaying one page sequence for both passes.
//
// Core properties:
//   - Bottom-up page coordinates in millimeters
//   - Greedy wrapping with no mid-token hyphenation
//   - Per-style width calibration scalars
//   - Two-pass tables sharing a single page sequence
//
// Example:
//
//	spells, err := spellbook.LoadSpellFolder("spells")
//	if err != nil {
//		log.Fatal(err)
//	}
//	r, err := pdf.NewRenderer(pdf.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = spellbook.Write(r, r.Metrics(), "A Wizard's Spellbook", spells, spellbook.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = r.Save("spellbook.pdf")
//
// Layout behavior is customized through Config; zero fields fall back
// to DefaultConfig values.
package spellbook
