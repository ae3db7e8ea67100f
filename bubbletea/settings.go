package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/CoderFake/ragchat"
	tea "github.com/charmbracelet/bubbletea"
)

// settingsView shows the server indexing settings.
type settingsView struct {
	settings ragchat.Settings
	loaded   bool
	loading  bool
	err      error
}

func (m Model) openSettings() (tea.Model, tea.Cmd) {
	m.screen = screenSettings
	m.settings.err = nil
	m.settings.loading = true
	m.Input.Blur()
	return m, tea.Batch(m.loadSettings(), m.spinner.Tick)
}

func (m Model) loadSettings() tea.Cmd {
	svc := m.svc.Settings
	return m.call(func(ctx context.Context) tea.Msg {
		s, err := svc.Settings(ctx)
		return SettingsLoadedMsg{Settings: s, Err: err}
	})
}

func (m Model) handleSettings(msg SettingsLoadedMsg) (tea.Model, tea.Cmd) {
	m.settings.loading = false
	if msg.Err != nil {
		m.logger.Error("load settings", "error", msg.Err)
		if errors.Is(msg.Err, ragchat.ErrUnauthorized) {
			return m.handleError(msg.Err)
		}
		m.settings.err = msg.Err
		return m, nil
	}
	m.settings.err = nil
	m.settings.settings = msg.Settings
	m.settings.loaded = true
	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		return m.backToChat()
	}
	if msg.String() == "r" {
		m.settings.loading = true
		return m, m.loadSettings()
	}
	return m, nil
}

func (m Model) viewSettings() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.cat.T("settings.title")))
	b.WriteString("\n\n")
	switch {
	case m.settings.loading:
		b.WriteString(m.spinner.View())
	case m.settings.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.errorText(m.settings.err)))
	case m.settings.loaded:
		s := m.settings.settings
		rows := []struct{ key, value string }{
			{"settings.chunk_size", strconv.Itoa(s.ChunkSize)},
			{"settings.chunk_overlap", strconv.Itoa(s.ChunkOverlap)},
			{"settings.embedding", s.EmbeddingModel},
			{"settings.provider", s.LLMProvider},
			{"settings.languages", strings.Join(s.SupportedLanguages, ", ")},
		}
		for _, r := range rows {
			b.WriteString(m.styles.Accent.Render(fmt.Sprintf("%-20s", m.cat.T(r.key))))
			b.WriteString(" ")
			b.WriteString(r.value)
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.cat.T("settings.hint")))
	return b.String()
}

// settingFields are the names accepted by /set.
var settingFields = []string{"chunk_size", "chunk_overlap", "embedding_model", "llm_provider"}

// parseSetting turns a /set field and value into an edit of Settings.
func parseSetting(field, value string) (func(*ragchat.Settings), error) {
	switch field {
	case "chunk_size", "chunk_overlap":
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be an integer, got %q: %w", field, value, ragchat.ErrValidation)
		}
		if field == "chunk_size" {
			return func(s *ragchat.Settings) { s.ChunkSize = n }, nil
		}
		return func(s *ragchat.Settings) { s.ChunkOverlap = n }, nil
	case "embedding_model":
		return func(s *ragchat.Settings) { s.EmbeddingModel = value }, nil
	case "llm_provider":
		return func(s *ragchat.Settings) { s.LLMProvider = value }, nil
	}
	return nil, fmt.Errorf("unknown setting %q (want one of %s): %w",
		field, strings.Join(settingFields, ", "), ragchat.ErrValidation)
}

// updateSetting applies one edit on top of the current server settings.
func (m Model) updateSetting(edit func(*ragchat.Settings)) tea.Cmd {
	svc, cat := m.svc.Settings, m.cat
	return m.call(func(ctx context.Context) tea.Msg {
		s, err := svc.Settings(ctx)
		if err != nil {
			return NoticeMsg{Err: err}
		}
		edit(&s)
		if err := svc.UpdateSettings(ctx, s); err != nil {
			return NoticeMsg{Err: err}
		}
		return NoticeMsg{Text: cat.T("settings.updated")}
	})
}
