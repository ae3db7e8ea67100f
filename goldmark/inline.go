package goldmark

import (
	"strings"

	"github.com/CoderFake/ragchat"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Inline renders the inline markup of source (emphasis, code spans, links,
// images) with the same styles Render uses. Block syntax is not
// interpreted: every line is paragraph text and line breaks are kept.
func Inline(source string, theme ragchat.Theme) string {
	if source == "" {
		return ""
	}
	doc, src := parseInline(source)
	r := newRenderer(theme)
	r.softBreak = "\n"
	var parts []string
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		parts = append(parts, strings.TrimRight(r.collectInline(c, src), "\n"))
	}
	return strings.Join(parts, "\n")
}

// PlainInline returns the visible text of source's inline markup without
// styling. It agrees with PlainText on the text of a paragraph.
func PlainInline(source string) string {
	if source == "" {
		return ""
	}
	doc, src := parseInline(source)
	var parts []string
	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		parts = append(parts, plainInline(c, src))
	}
	return strings.Join(parts, "\n")
}

// parseInline parses source with the paragraph parser only. Leading
// indentation is dropped the way a paragraph drops it.
func parseInline(source string) (ast.Node, []byte) {
	lines := strings.Split(source, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimLeft(l, " \t")
	}
	src := []byte(strings.Join(lines, "\n"))
	return newInlineParser().Parse(text.NewReader(src)), src
}

func newInlineParser() parser.Parser {
	return parser.NewParser(
		parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
		parser.WithInlineParsers(parser.DefaultInlineParsers()...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
	)
}
