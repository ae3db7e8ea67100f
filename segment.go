package ragchat

import "strings"

const fence = "```"

// Segment splits markdown content into an ordered sequence of blocks for
// progressive display. It is a lossy, line-oriented classification, not a
// markdown parser: any input yields some sequence of blocks.
//
// Lines are classified in precedence order: code fence, heading (levels
// 1-3), list item, blockquote, paragraph. Consecutive lines of the same kind
// merge into one block; a blank line outside a code fence closes the open
// block. Inside a fence every line is kept verbatim until the closing fence.
func Segment(content string) []Block {
	if content == "" {
		return nil
	}
	s := segmenter{}
	for _, line := range strings.Split(content, "\n") {
		s.line(strings.TrimSuffix(line, "\r"))
	}
	s.flush()
	return s.blocks
}

type segmenter struct {
	blocks []Block
	lines  []string
	kind   BlockKind
	open   bool
	inCode bool
}

func (s *segmenter) line(line string) {
	trimmed := strings.TrimSpace(line)

	if strings.HasPrefix(trimmed, fence) {
		if s.inCode {
			s.flush()
			s.inCode = false
			return
		}
		// The rest of the opening fence line is the language hint; drop it.
		s.flush()
		s.inCode = true
		s.kind = Code
		s.open = true
		return
	}
	if s.inCode {
		s.lines = append(s.lines, line)
		return
	}
	if trimmed == "" {
		s.flush()
		return
	}

	kind, text := classify(line)
	if s.open && s.kind != kind {
		s.flush()
	}
	s.kind = kind
	s.open = true
	s.lines = append(s.lines, text)
}

func (s *segmenter) flush() {
	if s.open {
		s.blocks = append(s.blocks, Block{Kind: s.kind, Text: strings.Join(s.lines, "\n")})
	}
	s.lines = nil
	s.open = false
}

// classify returns the kind of a non-blank line outside a code fence and the
// line's content with the marker removed.
func classify(line string) (BlockKind, string) {
	t := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(t, "### "):
		return Heading3, strings.TrimSpace(t[4:])
	case strings.HasPrefix(t, "## "):
		return Heading2, strings.TrimSpace(t[3:])
	case strings.HasPrefix(t, "# "):
		return Heading1, strings.TrimSpace(t[2:])
	case strings.HasPrefix(t, "- "), strings.HasPrefix(t, "* "):
		return ListItem, t[2:]
	}
	if n := orderedMarkerLen(t); n > 0 {
		return ListItem, t[n:]
	}
	if strings.HasPrefix(t, "> ") {
		return Blockquote, t[2:]
	}
	return Paragraph, line
}

// orderedMarkerLen returns the length of a leading "<digits>. " marker, or 0.
func orderedMarkerLen(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || !strings.HasPrefix(s[i:], ". ") {
		return 0
	}
	return i + 2
}
