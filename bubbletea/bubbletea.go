// Package bubbletea provides the Bubble Tea TUI for the RAG chat client.
package bubbletea

import (
	"context"
	"log/slog"
	"time"

	"github.com/CoderFake/ragchat"
	tea "github.com/charmbracelet/bubbletea"
)

// Services are the backends the TUI talks to. History is optional; without
// it conversations are not cached locally.
type Services struct {
	Chat      ragchat.ChatService
	Auth      ragchat.AuthService
	Documents ragchat.DocumentService
	Settings  ragchat.SettingsService
	State     ragchat.StateStore
	History   ragchat.HistoryStore
}

// Options tune the TUI.
type Options struct {
	// RevealSpeed is the time per revealed character. Zero means
	// ragchat.DefaultRevealSpeed.
	RevealSpeed time.Duration
	// NoAnimation shows new answers at once.
	NoAnimation bool
	// Timeout bounds each backend call. Zero means no limit.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. The context is used for graceful shutdown: when cancelled, the
// program quits. Messages received on external, such as config reloads,
// are delivered to the model.
func Run(ctx context.Context, m Model, external <-chan tea.Msg) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		for {
			select {
			case <-ctx.Done():
				p.Quit()
				return
			case msg, ok := <-external:
				if !ok {
					external = nil
					continue
				}
				p.Send(msg)
			}
		}
	}()
	_, err := p.Run()
	return err
}

// ChatResponseMsg carries the answer to a submitted query.
type ChatResponseMsg struct {
	Response ragchat.ChatResponse
	Err      error
}

// HistoryLoadedMsg carries the messages of a chat session.
type HistoryLoadedMsg struct {
	SessionID string
	Messages  []ragchat.Message
	Err       error
}

// SessionsLoadedMsg carries the locally cached sessions.
type SessionsLoadedMsg struct {
	Sessions []ragchat.Session
	Err      error
}

// DocumentsLoadedMsg carries one page of the document listing.
type DocumentsLoadedMsg struct {
	Page ragchat.DocumentPage
	Err  error
}

// SettingsLoadedMsg carries the server indexing settings.
type SettingsLoadedMsg struct {
	Settings ragchat.Settings
	Err      error
}

// LoginDoneMsg is the outcome of a login attempt.
type LoginDoneMsg struct {
	Result ragchat.LoginResult
	Err    error
}

// RegisterDoneMsg is the outcome of a registration attempt.
type RegisterDoneMsg struct {
	User ragchat.User
	Err  error
}

// NoticeMsg reports the result of a background command: Text on success,
// Err on failure.
type NoticeMsg struct {
	Text string
	Err  error
}

// ConfigMsg applies reloaded configuration. Zero fields are left unchanged.
type ConfigMsg struct {
	RevealSpeed time.Duration
	Theme       ragchat.ThemeMode
}
