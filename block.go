package ragchat

import "github.com/rivo/uniseg"

// BlockKind classifies a segmented unit of markdown.
// The set is closed; renderers switch over it exhaustively.
type BlockKind int

const (
	Paragraph BlockKind = iota
	Heading1
	Heading2
	Heading3
	ListItem
	Blockquote
	Code
)

var blockKindNames = [...]string{
	Paragraph:  "paragraph",
	Heading1:   "heading1",
	Heading2:   "heading2",
	Heading3:   "heading3",
	ListItem:   "list_item",
	Blockquote: "blockquote",
	Code:       "code",
}

// String returns the snake_case name of the kind.
func (k BlockKind) String() string {
	if k < 0 || int(k) >= len(blockKindNames) {
		return "unknown"
	}
	return blockKindNames[k]
}

// IsHeading reports whether k is one of the heading levels.
func (k BlockKind) IsHeading() bool {
	return k == Heading1 || k == Heading2 || k == Heading3
}

// Block is a contiguous, classified run of markdown lines with the marker
// syntax stripped.
type Block struct {
	Kind BlockKind
	Text string
}

// Len returns the number of user-perceived characters (grapheme clusters)
// in the block's text. The reveal engine advances in these units.
func (b Block) Len() int {
	return uniseg.GraphemeClusterCount(b.Text)
}

// Prefix returns the first n user-perceived characters of the block's text.
func (b Block) Prefix(n int) string {
	if n <= 0 {
		return ""
	}
	g := uniseg.NewGraphemes(b.Text)
	end := 0
	for i := 0; i < n && g.Next(); i++ {
		_, end = g.Positions()
	}
	return b.Text[:end]
}
