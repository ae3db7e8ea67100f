// Package goldmark renders markdown text to ANSI-styled terminal output
// using goldmark for parsing, chroma for code highlighting and lipgloss for
// styling. It is the full renderer: GFM tables, images and fenced code are
// supported, and output is produced in one pass without animation.
package goldmark

import (
	"github.com/CoderFake/ragchat"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs and list items are word-wrapped to width. Code blocks are
// rendered at full width without reflow.
func Render(source string, width int, theme ragchat.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	return r.render([]byte(source), width)
}

// PlainText returns the visible text of source without styling. Blocks are
// separated by a blank line, list items and source line breaks by a newline.
func PlainText(source string) string {
	if source == "" {
		return ""
	}
	return plainText([]byte(source))
}

func newParser() parser.Parser {
	return goldmark.New(goldmark.WithExtensions(extension.Table)).Parser()
}
