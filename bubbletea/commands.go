package bubbletea

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/CoderFake/ragchat"
	tea "github.com/charmbracelet/bubbletea"
)

// runCommand executes a slash command typed in the chat input.
func (m Model) runCommand(line string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil
	m.notice = ""

	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	switch name {
	case "/help":
		m.blocks = append(m.blocks, NewSystemBlock(m.cat.T("help"), m.styles))
		return m.refresh(true), nil

	case "/new":
		id := ragchat.NewSessionID()
		st := m.svc.State.Get()
		if err := m.svc.State.Set(st.WithSessionID(id)); err != nil {
			m.logger.Error("store session id", "error", err)
		}
		m.sessionID = id
		m.messages = nil
		m.blockFocus = -1
		m.blocks = []MessageBlock{NewSystemBlock(m.cat.T("chat.new_session"), m.styles)}
		return m.refresh(true), nil

	case "/history":
		return m.openHistory()

	case "/up", "/down", "/comment":
		return m.feedback(name, strings.Join(args, " "))

	case "/theme":
		mode := m.svc.State.Get().Theme.Toggle()
		if len(args) > 0 {
			parsed, err := ragchat.ParseThemeMode(args[0])
			if err != nil {
				return m.usage("/theme [light|dark]")
			}
			mode = parsed
		}
		m = m.setTheme(mode)
		m.notice = m.cat.Tf("theme.changed", mode)
		return m, nil

	case "/lang":
		lang := ragchat.LanguageEnglish
		if m.cat.Language() == ragchat.LanguageEnglish {
			lang = ragchat.LanguageVietnamese
		}
		if len(args) > 0 {
			parsed, err := ragchat.ParseLanguage(args[0])
			if err != nil {
				return m.usage("/lang [en|vi]")
			}
			lang = parsed
		}
		m = m.setLanguage(lang)
		m.notice = m.cat.T("lang.changed")
		return m, nil

	case "/logout":
		if err := m.svc.Auth.Logout(context.Background()); err != nil {
			m.err = err
			return m, nil
		}
		m, cmd := m.enterLogin()
		m.login.notice = m.cat.T("logout.done")
		return m, cmd
	}

	return m.runAdminCommand(name, args)
}

func (m Model) runAdminCommand(name string, args []string) (tea.Model, tea.Cmd) {
	switch name {
	case "/docs", "/upload", "/delete", "/reindex", "/settings", "/set":
	default:
		m.err = errors.New(m.cat.Tf("error.unknown_command", name))
		return m, nil
	}
	m, ok := m.requireAdmin()
	if !ok {
		return m, nil
	}

	switch name {
	case "/docs":
		page := 1
		if len(args) > 0 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return m.usage("/docs [page]")
			}
			page = n
		}
		return m.openDocuments(page)

	case "/upload":
		if len(args) < 1 || len(args) > 2 {
			return m.usage("/upload <path> [category]")
		}
		category := ""
		if len(args) == 2 {
			category = args[1]
		}
		return m.uploadDocument(args[0], category)

	case "/delete":
		if len(args) != 1 {
			return m.usage("/delete <id>")
		}
		return m, m.deleteDocument(args[0])

	case "/reindex":
		return m, m.reindex()

	case "/settings":
		return m.openSettings()
	}

	// /set
	if len(args) < 2 {
		return m.usage("/set <field> <value>")
	}
	edit, err := parseSetting(args[0], strings.Join(args[1:], " "))
	if err != nil {
		m.err = err
		return m, nil
	}
	return m, m.updateSetting(edit)
}

func (m Model) feedback(name, comment string) (tea.Model, tea.Cmd) {
	rid := m.lastResponseID()
	if rid == "" {
		m.err = errors.New(m.cat.T("feedback.none"))
		return m, nil
	}
	f := ragchat.Feedback{ResponseID: rid, Kind: ragchat.FeedbackThumbsUp}
	switch name {
	case "/down":
		f.Kind = ragchat.FeedbackThumbsDown
	case "/comment":
		f.Kind = ragchat.FeedbackComment
		f.Value = comment
	}
	if err := f.Validate(); err != nil {
		return m.usage("/comment <text>")
	}
	chat, cat := m.svc.Chat, m.cat
	return m, m.call(func(ctx context.Context) tea.Msg {
		if err := chat.Feedback(ctx, f); err != nil {
			return NoticeMsg{Err: err}
		}
		return NoticeMsg{Text: cat.T("feedback.sent")}
	})
}

func (m Model) usage(syntax string) (tea.Model, tea.Cmd) {
	m.err = errors.New(m.cat.Tf("error.usage", syntax))
	return m, nil
}
