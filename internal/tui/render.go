package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/nav"
)

func renderMarkdown(raw string, width int, style string) (string, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}

	switch strings.ToLower(strings.TrimSpace(style)) {
	case "", "auto":
		opts = append(opts, glamour.WithAutoStyle())
	case "dark", "light", "notty", "ascii", "dracula", "pink", "tokyo-night":
		opts = append(opts, glamour.WithStylePath(style))
	default:
		// If it's a file path to a JSON style, use it; else fall back to auto.
		if _, err := os.Stat(style); err == nil {
			opts = append(opts, glamour.WithStylesFromJSONFile(style))
		} else {
			opts = append(opts, glamour.WithAutoStyle())
		}
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(raw)
}

// document is the whole page rendered for one width.
type document struct {
	lines  []string
	starts map[string]int
	// last is the number of lines in the final section and footer.
	last int
}

func renderDocument(sections []nav.Section, width int, style string) (document, error) {
	doc := document{starts: make(map[string]int, len(sections))}
	for i, sec := range sections {
		out, err := renderMarkdown(content.Sections[sec.ID], width, style)
		if err != nil {
			return document{}, err
		}
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		doc.starts[sec.ID] = len(doc.lines)
		doc.lines = append(doc.lines, lines...)
		if i == len(sections)-1 {
			doc.last = len(lines)
		}
	}
	doc.lines = append(doc.lines, "", "  © "+content.Footer)
	doc.last += 2
	return doc, nil
}

// padded returns the document with enough trailing blank lines that the last
// section can be scrolled to the top of a viewport of the given height.
func (d document) padded(height int) string {
	lines := d.lines
	if pad := height - d.last; pad > 0 {
		lines = append(lines[:len(lines):len(lines)], make([]string, pad)...)
	}
	return strings.Join(lines, "\n")
}
