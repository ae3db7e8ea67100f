package bubbletea_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/CoderFake/ragchat"
	bt "github.com/CoderFake/ragchat/bubbletea"
	jsonstore "github.com/CoderFake/ragchat/json"
	"github.com/CoderFake/ragchat/mock"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

var (
	alice = &ragchat.User{ID: 7, Username: "alice", Name: "Alice", Role: ragchat.UserRoleUser}
	admin = &ragchat.User{ID: 1, Username: "root", Role: ragchat.UserRoleAdmin}
)

// fixture bundles the mocks behind a model.
type fixture struct {
	store    *jsonstore.FileStore
	chat     *mock.ChatService
	auth     *mock.AuthService
	docs     *mock.DocumentService
	settings *mock.SettingsService
	history  *mock.HistoryStore

	mu    sync.Mutex
	sent  []ragchat.ChatRequest
	saved map[string][]ragchat.Message
}

// newFixture returns mocks with harmless defaults. A nil user starts
// signed out. The interface language is English.
func newFixture(t *testing.T, user *ragchat.User) *fixture {
	t.Helper()
	store := jsonstore.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, store.Init())
	st := store.Get()
	st.Language = ragchat.LanguageEnglish
	if user != nil {
		st.AccessToken = "access"
		st.RefreshToken = "refresh"
		u := *user
		st.User = &u
	}
	require.NoError(t, store.Set(st))

	f := &fixture{store: store, saved: make(map[string][]ragchat.Message)}
	f.chat = &mock.ChatService{
		SendFn: func(_ context.Context, req ragchat.ChatRequest) (ragchat.ChatResponse, error) {
			f.mu.Lock()
			f.sent = append(f.sent, req)
			f.mu.Unlock()
			return ragchat.ChatResponse{Response: "Hello there!", ResponseID: "r1"}, nil
		},
		HistoryFn: func(context.Context, string, int) ([]ragchat.Message, error) {
			return nil, nil
		},
		FeedbackFn: func(context.Context, ragchat.Feedback) error { return nil },
	}
	f.auth = &mock.AuthService{
		LogoutFn: func(context.Context) error { return store.Clear() },
	}
	f.docs = &mock.DocumentService{}
	f.settings = &mock.SettingsService{}
	f.history = &mock.HistoryStore{
		SaveFn: func(_ context.Context, id string, msgs []ragchat.Message) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.saved[id] = msgs
			return nil
		},
		SessionsFn: func(context.Context) ([]ragchat.Session, error) { return nil, nil },
		MessagesFn: func(context.Context, string) ([]ragchat.Message, error) { return nil, nil },
	}
	return f
}

func (f *fixture) services() bt.Services {
	return bt.Services{
		Chat:      f.chat,
		Auth:      f.auth,
		Documents: f.docs,
		Settings:  f.settings,
		State:     f.store,
		History:   f.history,
	}
}

// model creates a model sized 80x24.
func (f *fixture) model(t *testing.T, opts bt.Options) bt.Model {
	t.Helper()
	return updateModel(t, bt.New(f.services(), opts), tea.WindowSizeMsg{Width: 80, Height: 24})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// update sends a message and returns the updated Model and command.
func update(t *testing.T, m bt.Model, msg tea.Msg) (bt.Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

// submit types text into the chat input and presses enter.
func submit(t *testing.T, m bt.Model, text string) (bt.Model, tea.Cmd) {
	t.Helper()
	m.Input.SetValue(text)
	return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

// typeText sends text as rune key presses.
func typeText(t *testing.T, m bt.Model, text string) bt.Model {
	t.Helper()
	return updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// execCmd runs cmd, expanding batches, and returns the produced messages.
// Only use it on commands that do not wait on timers longer than a tick.
func execCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, execCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// find returns the first message of type T.
func find[T tea.Msg](t *testing.T, msgs []tea.Msg) T {
	t.Helper()
	for _, msg := range msgs {
		if v, ok := msg.(T); ok {
			return v
		}
	}
	var zero T
	require.Failf(t, "message not found", "no %T among %v", zero, msgs)
	return zero
}

// reveal delivers ticks until every response block is fully revealed.
func reveal(t *testing.T, m bt.Model) bt.Model {
	t.Helper()
	for range 10000 {
		var pending *bt.ResponseBlock
		for _, b := range bt.Blocks(m) {
			if rb, ok := b.(*bt.ResponseBlock); ok && rb.Animating() {
				pending = rb
				break
			}
		}
		if pending == nil {
			return m
		}
		m = updateModel(t, m, bt.RevealTickMsg{ID: pending.ID(), Generation: pending.Generation()})
	}
	require.FailNow(t, "animation did not finish")
	return m
}

var noAnimation = bt.Options{NoAnimation: true, RevealSpeed: time.Millisecond}
