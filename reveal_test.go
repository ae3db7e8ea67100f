package ragchat_test

import (
	"testing"
	"time"

	"github.com/CoderFake/ragchat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const speed = 10 * time.Millisecond

func TestAdvance(t *testing.T) {
	t.Parallel()

	blocks := []ragchat.Block{
		{Kind: ragchat.Heading1, Text: "Hi"},
		{Kind: ragchat.Paragraph, Text: "abc"},
	}

	t.Run("one tick reveals one character", func(t *testing.T) {
		t.Parallel()
		s := ragchat.Advance(blocks, ragchat.RevealState{}, speed, speed)
		assert.Equal(t, ragchat.RevealState{Index: 0, Chars: 1}, s)
	})

	t.Run("finishing a block moves to the next", func(t *testing.T) {
		t.Parallel()
		s := ragchat.Advance(blocks, ragchat.RevealState{}, speed, 2*speed)
		assert.Equal(t, ragchat.RevealState{Index: 1, Chars: 0}, s)
	})

	t.Run("partial interval is carried", func(t *testing.T) {
		t.Parallel()
		s := ragchat.Advance(blocks, ragchat.RevealState{}, speed, speed/2)
		assert.Equal(t, 0, s.Chars)
		s = ragchat.Advance(blocks, s, speed, speed/2)
		assert.Equal(t, 1, s.Chars)
		assert.Zero(t, s.Carry)
	})

	t.Run("reaches done within total length ticks", func(t *testing.T) {
		t.Parallel()
		s := ragchat.RevealState{}
		total := 0
		for _, b := range blocks {
			total += b.Len()
		}
		prev := s.Index
		for i := 0; i < total; i++ {
			s = ragchat.Advance(blocks, s, speed, speed)
			assert.GreaterOrEqual(t, s.Index, prev)
			prev = s.Index
		}
		assert.True(t, s.Done(blocks))
	})

	t.Run("ticks after done are no-ops", func(t *testing.T) {
		t.Parallel()
		done := ragchat.RevealState{Index: len(blocks)}
		assert.Equal(t, done, ragchat.Advance(blocks, done, speed, time.Second))
	})

	t.Run("empty blocks do not consume ticks", func(t *testing.T) {
		t.Parallel()
		withEmpty := []ragchat.Block{{Kind: ragchat.Code, Text: ""}, {Kind: ragchat.Paragraph, Text: "x"}}
		s := ragchat.Advance(withEmpty, ragchat.RevealState{}, speed, speed)
		assert.True(t, s.Done(withEmpty))
	})

	t.Run("non-positive speed reveals everything", func(t *testing.T) {
		t.Parallel()
		s := ragchat.Advance(blocks, ragchat.RevealState{}, 0, 0)
		assert.True(t, s.Done(blocks))
	})
}

func TestReveal(t *testing.T) {
	t.Parallel()

	t.Run("animated reveal starts idle", func(t *testing.T) {
		t.Parallel()
		r := ragchat.NewReveal("hello\n\nworld", speed, true)
		assert.Equal(t, ragchat.RevealState{}, r.State())
		assert.False(t, r.Done())
		assert.Empty(t, r.Visible())
	})

	t.Run("non-animated reveal starts done", func(t *testing.T) {
		t.Parallel()
		r := ragchat.NewReveal("hello\n\nworld", speed, false)
		assert.True(t, r.Done())
		assert.Equal(t, ragchat.Segment("hello\n\nworld"), r.Visible())
	})

	t.Run("empty content is immediately done", func(t *testing.T) {
		t.Parallel()
		r := ragchat.NewReveal("", speed, true)
		assert.True(t, r.Done())
		assert.Empty(t, r.Visible())
	})

	t.Run("visible shows finished blocks and a partial current block", func(t *testing.T) {
		t.Parallel()
		r := ragchat.NewReveal("# Hi\n\nabc", speed, true)
		r.Tick(4 * speed)
		assert.Equal(t, []ragchat.Block{
			{Kind: ragchat.Heading1, Text: "Hi"},
			{Kind: ragchat.Paragraph, Text: "ab"},
		}, r.Visible())
	})

	t.Run("full reveal matches non-animated rendering", func(t *testing.T) {
		t.Parallel()
		content := "# Title\n\nSome text\n- a\n- b\n> quote"
		animated := ragchat.NewReveal(content, speed, true)
		for !animated.Done() {
			animated.Tick(speed)
		}
		static := ragchat.NewReveal(content, speed, false)
		assert.Equal(t, static.Visible(), animated.Visible())
	})

	t.Run("content change restarts from the beginning", func(t *testing.T) {
		t.Parallel()
		r := ragchat.NewReveal("first\n\nsecond block", speed, true)
		r.Tick(8 * speed)
		require.Greater(t, r.State().Index, 0)
		require.Greater(t, r.State().Chars, 0)
		gen := r.Generation()

		assert.True(t, r.SetContent("replaced"))
		assert.Equal(t, ragchat.RevealState{}, r.State())
		assert.NotEqual(t, gen, r.Generation())
	})

	t.Run("content change without animation stays done", func(t *testing.T) {
		t.Parallel()
		r := ragchat.NewReveal("first", speed, false)
		r.SetContent("second")
		assert.True(t, r.Done())
		assert.Equal(t, "second", r.Visible()[0].Text)
	})

	t.Run("same content does not restart", func(t *testing.T) {
		t.Parallel()
		r := ragchat.NewReveal("same", speed, true)
		r.Tick(2 * speed)
		assert.False(t, r.SetContent("same"))
		assert.Equal(t, 2, r.State().Chars)
	})

	t.Run("skip jumps to done", func(t *testing.T) {
		t.Parallel()
		r := ragchat.NewReveal("long text here", speed, true)
		r.Skip()
		assert.True(t, r.Done())
	})
}
