// Package markdown renders segmented blocks to ANSI-styled terminal output.
// It is the blockwise renderer: it draws whatever prefix of a message the
// reveal engine has made visible, so it must accept any block sequence,
// including a partially revealed last block.
package markdown

import (
	"strconv"
	"strings"

	"github.com/CoderFake/ragchat"
	"github.com/CoderFake/ragchat/goldmark"
	"github.com/charmbracelet/lipgloss"
)

const (
	bullet = "• "
	gutter = "│ "
)

// Render returns blocks as styled text wrapped to width. Blocks are
// separated by a blank line. Inline markup is rendered in every block but
// code, which is never reflowed.
func Render(blocks []ragchat.Block, width int, theme ragchat.Theme) string {
	if len(blocks) == 0 {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := newRenderer(theme)
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, r.block(b, width))
	}
	return strings.Join(parts, "\n\n")
}

// PlainText returns the visible text of blocks without styling or inline
// markup, separated the same way Render separates them.
func PlainText(blocks []ragchat.Block) string {
	texts := make([]string, len(blocks))
	for i, b := range blocks {
		switch b.Kind {
		case ragchat.Code:
			texts[i] = b.Text
		case ragchat.ListItem:
			items := strings.Split(b.Text, "\n")
			for j, item := range items {
				items[j] = goldmark.PlainInline(item)
			}
			texts[i] = strings.Join(items, "\n")
		default:
			texts[i] = goldmark.PlainInline(b.Text)
		}
	}
	return strings.Join(texts, "\n\n")
}

type renderer struct {
	theme ragchat.Theme
	h1    lipgloss.Style
	h2    lipgloss.Style
	h3    lipgloss.Style
	quote lipgloss.Style
	muted lipgloss.Style
	code  lipgloss.Style
}

func newRenderer(theme ragchat.Theme) *renderer {
	accent := lipgloss.NewStyle().Foreground(ansiColor(theme.Accent))
	return &renderer{
		theme: theme,
		h1:    accent.Bold(true).Underline(true),
		h2:    accent.Bold(true),
		h3:    accent,
		quote: lipgloss.NewStyle().Foreground(ansiColor(theme.Quote)).Italic(true),
		muted: lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		code:  lipgloss.NewStyle().Background(ansiColor(theme.CodeBg)),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}

func (r *renderer) block(b ragchat.Block, width int) string {
	switch b.Kind {
	case ragchat.Heading1:
		return r.h1.Render(wrap(r.inline(b.Text), width))
	case ragchat.Heading2:
		return r.h2.Render(wrap(r.inline(b.Text), width))
	case ragchat.Heading3:
		return r.h3.Render(wrap(r.inline(b.Text), width))
	case ragchat.ListItem:
		var lines []string
		for _, item := range strings.Split(b.Text, "\n") {
			lines = append(lines, hang(bullet, wrap(r.inline(item), width-len([]rune(bullet))))...)
		}
		return strings.Join(lines, "\n")
	case ragchat.Blockquote:
		prefix := r.muted.Render(gutter)
		var lines []string
		for _, line := range strings.Split(wrap(r.inline(b.Text), width-len([]rune(gutter))), "\n") {
			lines = append(lines, prefix+r.quote.Render(line))
		}
		return strings.Join(lines, "\n")
	case ragchat.Code:
		prefix := r.muted.Render(gutter)
		var lines []string
		for _, line := range strings.Split(b.Text, "\n") {
			lines = append(lines, prefix+r.code.Render(line))
		}
		return strings.Join(lines, "\n")
	default:
		return wrap(r.inline(b.Text), width)
	}
}

func (r *renderer) inline(text string) string {
	return goldmark.Inline(text, r.theme)
}

// wrap word-wraps text to width without padding short lines.
func wrap(text string, width int) string {
	if width < 10 {
		width = 10
	}
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}

// hang prefixes the first line of text with marker and indents the rest to
// line up under the first character after the marker.
func hang(marker, text string) []string {
	lines := strings.Split(text, "\n")
	indent := strings.Repeat(" ", len([]rune(marker)))
	for i, l := range lines {
		if i == 0 {
			lines[i] = marker + l
		} else {
			lines[i] = indent + l
		}
	}
	return lines
}
