// Package ansi cleans server-provided text before it reaches the terminal.
//
// Answers, source titles and document names come from the server and are
// drawn verbatim by the TUI. Escape sequences embedded in them would be
// interpreted by the terminal, so they are removed here.
package ansi

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Sanitize strips ANSI escape sequences and control characters from s. Tabs
// and newlines are kept; CRLF becomes LF and any other carriage return is
// dropped.
func Sanitize(s string) string {
	if s == "" {
		return s
	}
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\t' || r == '\n':
			b.WriteRune(r)
		case r < 0x20 || r == 0x7f:
			// C0 controls and DEL.
		case r >= 0x80 && r <= 0x9f:
			// C1 controls.
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Line sanitizes s for single-line display such as a table cell or a title.
// Newlines and tabs become spaces.
func Line(s string) string {
	s = Sanitize(s)
	return strings.Join(strings.Fields(s), " ")
}
