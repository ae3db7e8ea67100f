package ragchat_test

import (
	"testing"

	"github.com/CoderFake/ragchat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	t.Parallel()

	t.Run("empty content yields no blocks", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ragchat.Segment(""))
	})

	t.Run("blank line terminates a paragraph", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("a\n\nb")
		assert.Equal(t, []ragchat.Block{
			{Kind: ragchat.Paragraph, Text: "a"},
			{Kind: ragchat.Paragraph, Text: "b"},
		}, blocks)
	})

	t.Run("adjacent plain lines merge into one paragraph", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("line1\nline2")
		assert.Equal(t, []ragchat.Block{
			{Kind: ragchat.Paragraph, Text: "line1\nline2"},
		}, blocks)
	})

	t.Run("code fence is isolated without markers or language", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("```js\nconsole.log(1)\n```")
		require.Len(t, blocks, 1)
		assert.Equal(t, ragchat.Code, blocks[0].Kind)
		assert.Contains(t, blocks[0].Text, "console.log(1)")
		assert.NotContains(t, blocks[0].Text, "```")
		assert.NotContains(t, blocks[0].Text, "js")
	})

	t.Run("heading marker is stripped", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("## Title")
		assert.Equal(t, []ragchat.Block{{Kind: ragchat.Heading2, Text: "Title"}}, blocks)
	})

	t.Run("heading levels map to kinds", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("# One\n\n## Two\n\n### Three")
		require.Len(t, blocks, 3)
		assert.Equal(t, ragchat.Heading1, blocks[0].Kind)
		assert.Equal(t, ragchat.Heading2, blocks[1].Kind)
		assert.Equal(t, ragchat.Heading3, blocks[2].Kind)
		assert.Equal(t, "Three", blocks[2].Text)
	})

	t.Run("level four heading falls back to paragraph", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("#### Deep")
		assert.Equal(t, []ragchat.Block{{Kind: ragchat.Paragraph, Text: "#### Deep"}}, blocks)
	})

	t.Run("bullet and numbered markers normalize to list items", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("- one\n* two\n12. three")
		assert.Equal(t, []ragchat.Block{
			{Kind: ragchat.ListItem, Text: "one\ntwo\nthree"},
		}, blocks)
	})

	t.Run("indented list items are flattened", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("- outer\n  - inner")
		assert.Equal(t, []ragchat.Block{
			{Kind: ragchat.ListItem, Text: "outer\ninner"},
		}, blocks)
	})

	t.Run("number without dot-space is a paragraph", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("2024 was a year")
		assert.Equal(t, ragchat.Paragraph, blocks[0].Kind)
	})

	t.Run("blockquote marker is stripped", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("> quoted\n> more")
		assert.Equal(t, []ragchat.Block{
			{Kind: ragchat.Blockquote, Text: "quoted\nmore"},
		}, blocks)
	})

	t.Run("kind change starts a new block", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("# Title\nintro\n- item\n> note")
		assert.Equal(t, []ragchat.Block{
			{Kind: ragchat.Heading1, Text: "Title"},
			{Kind: ragchat.Paragraph, Text: "intro"},
			{Kind: ragchat.ListItem, Text: "item"},
			{Kind: ragchat.Blockquote, Text: "note"},
		}, blocks)
	})

	t.Run("code keeps blank lines and markers verbatim", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("before\n```\n# not a heading\n\n- not a list\n```\nafter")
		assert.Equal(t, []ragchat.Block{
			{Kind: ragchat.Paragraph, Text: "before"},
			{Kind: ragchat.Code, Text: "# not a heading\n\n- not a list"},
			{Kind: ragchat.Paragraph, Text: "after"},
		}, blocks)
	})

	t.Run("unterminated fence flushes accumulated code", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("```go\nfmt.Println(1)\nx := 2")
		assert.Equal(t, []ragchat.Block{
			{Kind: ragchat.Code, Text: "fmt.Println(1)\nx := 2"},
		}, blocks)
	})

	t.Run("carriage returns are dropped", func(t *testing.T) {
		t.Parallel()
		blocks := ragchat.Segment("a\r\nb\r\n\r\nc")
		assert.Equal(t, []ragchat.Block{
			{Kind: ragchat.Paragraph, Text: "a\nb"},
			{Kind: ragchat.Paragraph, Text: "c"},
		}, blocks)
	})

	t.Run("whitespace-only input yields no blocks", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, ragchat.Segment("  \n\t\n"))
	})
}

func TestBlockKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "heading1", ragchat.Heading1.String())
	assert.Equal(t, "list_item", ragchat.ListItem.String())
	assert.Equal(t, "code", ragchat.Code.String())
	assert.Equal(t, "unknown", ragchat.BlockKind(99).String())
}

func TestBlock_Prefix(t *testing.T) {
	t.Parallel()

	t.Run("counts grapheme clusters", func(t *testing.T) {
		t.Parallel()
		b := ragchat.Block{Text: "Tiếng Việt"}
		assert.Equal(t, 10, b.Len())
		assert.Equal(t, "Tiế", b.Prefix(3))
	})

	t.Run("prefix beyond length returns whole text", func(t *testing.T) {
		t.Parallel()
		b := ragchat.Block{Text: "abc"}
		assert.Equal(t, "abc", b.Prefix(10))
		assert.Equal(t, "", b.Prefix(0))
	})
}
