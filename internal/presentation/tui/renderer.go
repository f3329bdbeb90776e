package tui

import (
	"github.com/charmbracelet/glamour"
)

// Markdown renders a markdown document for the terminal.
type Markdown func(string) (string, error)

// NewRenderer returns a function that renders markdown using glamour.
// With noColor it uses the plain "notty" style.
func NewRenderer(noColor bool) Markdown {
	style := glamour.WithAutoStyle() // Automatically detect light/dark background
	if noColor {
		style = glamour.WithStandardStyle("notty")
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(72))
	if err != nil {
		return PlainMarkdown
	}
	return r.Render
}

// PlainMarkdown returns the document unchanged.
func PlainMarkdown(markdown string) (string, error) {
	return markdown, nil
}
