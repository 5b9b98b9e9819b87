package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/version"

	spellbook "github.com/ChandlerJayCalkins/dnd-spellbook-maker-sub000"
	"github.com/ChandlerJayCalkins/dnd-spellbook-maker-sub000/pdf"
)

const defaultWidth = 80

func init() {
	version.SetDefaultModule("github.com/ChandlerJayCalkins/dnd-spellbook-maker-sub000")
}

func main() {
	var (
		spellDir       string
		outPath        string
		title          string
		preview        bool
		showVersion    bool
		widthFlag      int
		pageWidth      float64
		pageHeight     float64
		background     string
		regularFont    string
		boldFont       string
		italicFont     string
		boldItalicFont string
		noPageNumbers  bool
	)

	defaults := spellbook.DefaultConfig()
	flags := pflag.NewFlagSet("spellbook-maker", pflag.ExitOnError)
	flags.StringVarP(&spellDir, "spells", "s", "", "Folder of spell JSON files")
	flags.StringVarP(&outPath, "output", "o", "spellbook.pdf", "Output PDF file")
	flags.StringVarP(&title, "title", "t", "Spellbook", "Cover page title")
	flags.BoolVarP(&preview, "preview", "p", false, "Print spells to the terminal instead of writing a PDF")
	flags.BoolVarP(&showVersion, "version", "V", false, "Print version and exit")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Preview width override (0 uses terminal width if available)")
	flags.Float64Var(&pageWidth, "page-width", defaults.PageWidth, "Page width in mm")
	flags.Float64Var(&pageHeight, "page-height", defaults.PageHeight, "Page height in mm")
	flags.StringVar(&background, "background", "", "Background image drawn on every page")
	flags.StringVar(&regularFont, "regular-font", "", "TTF path for regular font")
	flags.StringVar(&boldFont, "bold-font", "", "TTF path for bold font")
	flags.StringVar(&italicFont, "italic-font", "", "TTF path for italic font")
	flags.StringVar(&boldItalicFont, "bold-italic-font", "", "TTF path for bold-italic font")
	flags.BoolVar(&noPageNumbers, "no-page-numbers", false, "Disable page numbers")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: spellbook-maker -s <spell folder> [flags]\n")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if showVersion {
		fmt.Println(version.Module(), version.Current())
		return
	}
	if spellDir == "" {
		flags.Usage()
		os.Exit(2)
	}

	spells, err := spellbook.LoadSpellFolder(normalizePath(spellDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load spells: %v\n", err)
		os.Exit(1)
	}
	if len(spells) == 0 {
		fmt.Fprintf(os.Stderr, "no spell files in %s\n", spellDir)
		os.Exit(1)
	}

	if preview {
		printPreview(spells, resolveWidth(widthFlag))
		return
	}

	cfg := spellbook.Config{
		PageWidth:       pageWidth,
		PageHeight:      pageHeight,
		BackgroundImage: background,
		NoPageNumbers:   noPageNumbers,
	}

	renderer, err := pdf.NewRenderer(pdf.Config{
		PageWidth:      pageWidth,
		PageHeight:     pageHeight,
		RegularFont:    normalizeFont(regularFont),
		BoldFont:       normalizeFont(boldFont),
		ItalicFont:     normalizeFont(italicFont),
		BoldItalicFont: normalizeFont(boldItalicFont),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "renderer: %v\n", err)
		os.Exit(1)
	}

	w, err := spellbook.NewWriter(renderer, renderer.Metrics(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "writer: %v\n", err)
		os.Exit(1)
	}
	if err := w.AddTitlePage(title); err != nil {
		fmt.Fprintf(os.Stderr, "title page: %v\n", err)
		os.Exit(1)
	}
	for i := range spells {
		if err := w.AddSpell(&spells[i]); err != nil {
			fmt.Fprintf(os.Stderr, "spell %q: %v\n", spells[i].Name, err)
			os.Exit(1)
		}
	}
	if err := renderer.Save(normalizePath(outPath)); err != nil {
		fmt.Fprintf(os.Stderr, "save: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "wrote %d spells across %d pages to %s\n", len(spells), w.PageCount(), outPath)
}

func printPreview(spells []spellbook.Spell, width int) {
	for i := range spells {
		s := &spells[i]
		fmt.Println(s.Name)
		fmt.Println(s.LevelSchoolText())
		fmt.Printf("Casting Time: %s\n", s.CastingTime)
		fmt.Printf("Range: %s\n", s.Range)
		fmt.Printf("Components: %s\n", s.Components)
		fmt.Printf("Duration: %s\n", s.Duration)
		for _, paragraph := range s.Description {
			fmt.Println()
			fmt.Println(wordwrap.String(spellbook.PlainText(paragraph), width))
		}
		if s.Upcast != "" {
			fmt.Println()
			upcast := fmt.Sprintf("%s %s", s.UpcastPrefix(), s.Upcast)
			fmt.Println(wordwrap.String(spellbook.PlainText(upcast), width))
		}
		if i < len(spells)-1 {
			fmt.Println(strings.Repeat("-", width))
		}
	}
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func normalizeFont(path string) string {
	if path == "" {
		return ""
	}
	return normalizePath(path)
}
