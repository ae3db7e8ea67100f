package goldmark

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

func plainText(source []byte) string {
	doc := newParser().Parse(text.NewReader(source))
	return strings.Join(plainBlocks(doc, source), "\n\n")
}

// plainBlocks returns the text of each block child of node. Nested lists
// are flattened into their parent item.
func plainBlocks(node ast.Node, source []byte) []string {
	var out []string
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, plainBlock(c, source)...)
	}
	return out
}

func plainBlock(node ast.Node, source []byte) []string {
	switch n := node.(type) {
	case *ast.Paragraph, *ast.Heading, *ast.TextBlock:
		return []string{plainInline(n, source)}
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		return []string{codeText(n, source)}
	case *ast.List:
		return []string{strings.Join(plainList(n, source), "\n")}
	case *east.Table:
		return []string{plainTable(n, source)}
	case *ast.ThematicBreak:
		return []string{"---"}
	}
	return plainBlocks(node, source)
}

func plainList(list *ast.List, source []byte) []string {
	var lines []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				lines = append(lines, plainList(sub, source)...)
				continue
			}
			lines = append(lines, plainBlock(c, source)...)
		}
	}
	return lines
}

func plainTable(table *east.Table, source []byte) string {
	var rows []string
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, plainInline(cell, source))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}

func plainInline(node ast.Node, source []byte) string {
	var sb strings.Builder
	writePlainInline(node, source, &sb)
	return strings.TrimRight(sb.String(), "\n")
}

func writePlainInline(node ast.Node, source []byte, sb *strings.Builder) {
	for c := node.FirstChild(); c != nil; c = c.NextSibling() {
		switch n := c.(type) {
		case *ast.Text:
			sb.Write(n.Segment.Value(source))
			if n.SoftLineBreak() || n.HardLineBreak() {
				sb.WriteByte('\n')
			}
		case *ast.String:
			sb.Write(n.Value)
		case *ast.AutoLink:
			sb.Write(n.URL(source))
		case *ast.RawHTML:
			for i := 0; i < n.Segments.Len(); i++ {
				seg := n.Segments.At(i)
				sb.Write(seg.Value(source))
			}
		default:
			writePlainInline(c, source, sb)
		}
	}
}
