package bubbletea_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/CoderFake/ragchat"
	bt "github.com/CoderFake/ragchat/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var styles = bt.NewStyles(ragchat.ThemeFor(ragchat.ThemeLight))

func TestResponseBlock(t *testing.T) {
	t.Parallel()

	t.Run("short answer animates one character per tick", func(t *testing.T) {
		t.Parallel()
		b := bt.NewResponseBlock(1, "r1", "abc", time.Millisecond, true, styles)
		assert.Equal(t, ragchat.RenderBlockwise, b.Strategy())
		assert.True(t, b.Animating())
		require.NotNil(t, b.Start())

		tick := bt.RevealTickMsg{ID: 1, Generation: b.Generation()}
		_, cmd := b.Update(tick)
		assert.NotNil(t, cmd)
		assert.Contains(t, b.View(80), "a")
		assert.NotContains(t, b.View(80), "ab")
		assert.Contains(t, b.View(80), "▌")

		b.Update(tick)
		_, cmd = b.Update(tick)
		assert.Nil(t, cmd)
		assert.False(t, b.Animating())
		assert.Contains(t, b.View(80), "abc")
		assert.NotContains(t, b.View(80), "▌")
	})

	t.Run("without animation the block starts revealed", func(t *testing.T) {
		t.Parallel()
		b := bt.NewResponseBlock(1, "", "hello", time.Millisecond, false, styles)
		assert.False(t, b.Animating())
		assert.Nil(t, b.Start())
		assert.Contains(t, b.View(80), "hello")
		assert.NotContains(t, b.View(80), "▌")
	})

	t.Run("structured content uses the full renderer", func(t *testing.T) {
		t.Parallel()
		b := bt.NewResponseBlock(1, "", "```go\nx := 1\n```", time.Millisecond, true, styles)
		assert.Equal(t, ragchat.RenderFull, b.Strategy())
		assert.False(t, b.Animating())
		assert.Nil(t, b.Start())
		assert.Contains(t, b.View(80), "x")
		assert.NotContains(t, b.View(80), "```")
	})

	t.Run("new content drops ticks for the old content", func(t *testing.T) {
		t.Parallel()
		b := bt.NewResponseBlock(1, "", "first", time.Millisecond, true, styles)
		old := bt.RevealTickMsg{ID: 1, Generation: b.Generation()}

		require.NotNil(t, b.SetContent("second"))
		assert.Greater(t, b.Generation(), old.Generation)

		_, cmd := b.Update(old)
		assert.Nil(t, cmd)
		assert.NotContains(t, b.View(80), "s")
	})

	t.Run("unchanged content does not restart", func(t *testing.T) {
		t.Parallel()
		b := bt.NewResponseBlock(1, "", "same", time.Millisecond, false, styles)
		gen := b.Generation()
		assert.Nil(t, b.SetContent("same"))
		assert.Equal(t, gen, b.Generation())
	})

	t.Run("restart can switch to the full renderer", func(t *testing.T) {
		t.Parallel()
		b := bt.NewResponseBlock(1, "", "hi", time.Millisecond, true, styles)
		assert.Nil(t, b.SetContent("| a |\n|---|\n| 1 |"))
		assert.Equal(t, ragchat.RenderFull, b.Strategy())
		assert.False(t, b.Animating())
	})

	t.Run("tick for another block is ignored", func(t *testing.T) {
		t.Parallel()
		b := bt.NewResponseBlock(1, "", "abc", time.Millisecond, true, styles)
		_, cmd := b.Update(bt.RevealTickMsg{ID: 2, Generation: b.Generation()})
		assert.Nil(t, cmd)
		assert.True(t, b.Animating())
	})

	t.Run("skip reveals everything", func(t *testing.T) {
		t.Parallel()
		b := bt.NewResponseBlock(1, "", "# Title\n\nbody", time.Millisecond, true, styles)
		b.Update(bt.SkipRevealMsg{})
		assert.False(t, b.Animating())
		view := b.View(80)
		assert.Contains(t, view, "Title")
		assert.Contains(t, view, "body")
	})

	t.Run("speed change applies to later ticks", func(t *testing.T) {
		t.Parallel()
		b := bt.NewResponseBlock(1, "", "abcdef", time.Millisecond, true, styles)
		b.SetSpeed(0)
		_, cmd := b.Update(bt.RevealTickMsg{ID: 1, Generation: b.Generation()})
		assert.Nil(t, cmd)
		assert.False(t, b.Animating())
	})
}

func TestSourcesBlock(t *testing.T) {
	t.Parallel()

	high, low := 0.92, 0.314
	sources := []ragchat.DocumentSource{
		{ID: "1", Title: "Employee handbook", Category: "hr", RelevanceScore: &high},
		{ID: "2", Title: "Travel policy", RelevanceScore: &low},
		{ID: "3"},
	}

	t.Run("expanded lists every source", func(t *testing.T) {
		t.Parallel()
		b := bt.NewSourcesBlock(sources, "Sources (%d)", "%d%% match", styles)
		view := b.View(80)
		assert.Contains(t, view, "▼ Sources (3)")
		assert.Contains(t, view, "Employee handbook · hr · 92% match")
		assert.Contains(t, view, "Travel policy · 31% match")
		assert.Contains(t, view, "  3")
	})

	t.Run("toggle collapses to the header", func(t *testing.T) {
		t.Parallel()
		b := bt.NewSourcesBlock(sources, "Sources (%d)", "%d%% match", styles)
		b.Update(bt.ToggleMsg{})
		assert.True(t, b.Collapsed())
		view := b.View(80)
		assert.Contains(t, view, "▶ Sources (3)")
		assert.NotContains(t, view, "handbook")

		b.Update(bt.ToggleMsg{})
		assert.False(t, b.Collapsed())
	})

	t.Run("long titles are truncated to the width", func(t *testing.T) {
		t.Parallel()
		long := []ragchat.DocumentSource{{ID: "1", Title: strings.Repeat("x", 100)}}
		b := bt.NewSourcesBlock(long, "Sources (%d)", "%d%% match", styles)
		assert.Contains(t, b.View(40), "…")
	})
}

func TestMatchPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score float64
		want  int
	}{
		{0, 0},
		{0.874, 87},
		{0.875, 88},
		{1, 100},
		{1.7, 100},
		{-0.2, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, bt.MatchPercent(tt.score), "score %v", tt.score)
	}
}

func TestSimpleBlocks(t *testing.T) {
	t.Parallel()

	t.Run("user message", func(t *testing.T) {
		t.Parallel()
		view := bt.NewUserMessageBlock("what is RAG?", styles).View(80)
		assert.Contains(t, view, "> what is RAG?")
	})

	t.Run("error", func(t *testing.T) {
		t.Parallel()
		view := bt.NewErrorBlock(errors.New("connection refused"), styles).View(80)
		assert.Contains(t, view, "Error: connection refused")
	})

	t.Run("system notice", func(t *testing.T) {
		t.Parallel()
		view := bt.NewSystemBlock("Started a new conversation.", styles).View(80)
		assert.Contains(t, view, "Started a new conversation.")
	})

	t.Run("theme change restyles without changing text", func(t *testing.T) {
		t.Parallel()
		b := bt.NewUserMessageBlock("hi", styles)
		dark := bt.NewStyles(ragchat.ThemeFor(ragchat.ThemeDark))
		updated, cmd := b.Update(bt.ThemeMsg{Styles: dark})
		assert.Nil(t, cmd)
		assert.Contains(t, updated.View(80), "> hi")
	})
}

func TestBlockSeparator(t *testing.T) {
	t.Parallel()

	resp := bt.NewResponseBlock(1, "", "a", 0, false, styles)
	src := bt.NewSourcesBlock(nil, "Sources (%d)", "%d%%", styles)
	user := bt.NewUserMessageBlock("q", styles)

	assert.Equal(t, "\n", bt.BlockSeparator(resp, src))
	assert.Equal(t, "\n\n", bt.BlockSeparator(user, resp))
	assert.Equal(t, "\n\n", bt.BlockSeparator(src, user))
}

func TestNewStyles(t *testing.T) {
	t.Parallel()

	light := bt.NewStyles(ragchat.ThemeFor(ragchat.ThemeLight))
	dark := bt.NewStyles(ragchat.ThemeFor(ragchat.ThemeDark))
	assert.True(t, light.Query.GetBold())
	assert.True(t, light.Muted.GetFaint())
	assert.True(t, light.Title.GetUnderline())
	assert.Equal(t, ragchat.ThemeFor(ragchat.ThemeDark), dark.Theme)
	assert.True(t, dark.TableStyles().Selected.GetBold())
}
