package bubbletea_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/CoderFake/ragchat"
	bt "github.com/CoderFake/ragchat/bubbletea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Teatest(t *testing.T) {
	t.Parallel()

	t.Run("full query cycle with animated answer", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, alice)
		m := bt.New(f.services(), bt.Options{RevealSpeed: time.Millisecond})

		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(80, 24),
		)

		tm.Type("hi")
		tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("Hello there!")) &&
				bytes.Contains(out, []byte("enter: send"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})

		fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
		final, ok := fm.(bt.Model)
		require.True(t, ok)
		assert.False(t, final.Sending())
		assert.NoError(t, final.Err())

		f.mu.Lock()
		defer f.mu.Unlock()
		require.Len(t, f.sent, 1)
		assert.Equal(t, "hi", f.sent[0].Query)
	})

	t.Run("stored conversation renders on init", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, alice)
		f.chat.HistoryFn = func(_ context.Context, _ string, _ int) ([]ragchat.Message, error) {
			return []ragchat.Message{
				{Role: ragchat.RoleQuery, Content: "hello there"},
				{Role: ragchat.RoleResponse, Content: "Hi! How can I help?"},
			}, nil
		}
		m := bt.New(f.services(), bt.Options{})

		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(80, 24),
		)

		teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
			return bytes.Contains(out, []byte("hello there")) &&
				bytes.Contains(out, []byte("Hi! How can I help?"))
		}, teatest.WithDuration(5*time.Second))

		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
		tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))
	})

	t.Run("external config message changes the theme", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, alice)
		m := bt.New(f.services(), bt.Options{})

		tm := teatest.NewTestModel(t, m,
			teatest.WithInitialTermSize(80, 24),
		)
		tm.Send(bt.ConfigMsg{Theme: ragchat.ThemeDark})
		tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
		tm.WaitFinished(t, teatest.WithFinalTimeout(5*time.Second))

		assert.Equal(t, ragchat.ThemeDark, f.store.Get().Theme)
	})
}
