package ragchat

import "strings"

// MaxBlockwiseLines is the longest message, in lines, that is still animated
// block by block. Longer content goes through the full renderer.
const MaxBlockwiseLines = 20

// RenderStrategy selects how a message body is drawn.
type RenderStrategy int

const (
	// RenderBlockwise segments the content and reveals it block by block.
	RenderBlockwise RenderStrategy = iota
	// RenderFull hands the content to the complete markdown renderer with
	// no animation.
	RenderFull
)

// String returns "blockwise" or "full".
func (s RenderStrategy) String() string {
	if s == RenderFull {
		return "full"
	}
	return "blockwise"
}

// fullMarkers are substrings the segmenter handles poorly: code fences,
// table pipes, images and raw HTML tables.
var fullMarkers = []string{fence, "|", "![", "<table"}

// ChooseRenderer picks the full renderer for structured or long content and
// the blockwise renderer for short conversational replies.
func ChooseRenderer(content string) RenderStrategy {
	lower := strings.ToLower(content)
	for _, m := range fullMarkers {
		if strings.Contains(lower, m) {
			return RenderFull
		}
	}
	if strings.Count(content, "\n")+1 > MaxBlockwiseLines {
		return RenderFull
	}
	return RenderBlockwise
}
