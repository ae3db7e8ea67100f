package bubbletea

import (
	"context"
	"strconv"
	"strings"

	"github.com/CoderFake/ragchat"
	"github.com/CoderFake/ragchat/i18n"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

const timeLayout = "2006-01-02 15:04"

// historyView lists the locally cached conversations.
type historyView struct {
	table    table.Model
	sessions []ragchat.Session
	untitled string
	loading  bool
	err      error
}

func newHistoryView(cat *i18n.Catalog, styles Styles) historyView {
	t := table.New(table.WithFocused(true))
	t.SetStyles(styles.TableStyles())
	v := historyView{table: t}
	return v.relabel(cat)
}

func (v historyView) relabel(cat *i18n.Catalog) historyView {
	v.untitled = cat.T("history.untitled")
	v.table.SetColumns([]table.Column{
		{Title: cat.T("history.col.title"), Width: ragchat.SessionTitleWidth + 2},
		{Title: cat.T("history.col.messages"), Width: 10},
		{Title: cat.T("history.col.updated"), Width: len(timeLayout)},
	})
	return v.setSessions(v.sessions)
}

func (v historyView) setSessions(sessions []ragchat.Session) historyView {
	v.sessions = sessions
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		updated := ""
		if t := s.LastUpdated(); !t.IsZero() {
			updated = t.Local().Format(timeLayout)
		}
		rows[i] = table.Row{
			s.Title(ragchat.SessionTitleWidth, v.untitled),
			strconv.Itoa(len(s.Messages)),
			updated,
		}
	}
	v.table.SetRows(rows)
	if v.table.Cursor() >= len(rows) {
		v.table.SetCursor(max(len(rows)-1, 0))
	}
	return v
}

func (v historyView) selected() (ragchat.Session, bool) {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.sessions) {
		return ragchat.Session{}, false
	}
	return v.sessions[i], true
}

func (m Model) openHistory() (tea.Model, tea.Cmd) {
	m.screen = screenHistory
	m.history.err = nil
	m.Input.Blur()
	if m.svc.History == nil {
		m.history = m.history.setSessions(nil)
		return m, nil
	}
	m.history.loading = true
	return m, tea.Batch(m.loadSessions(), m.spinner.Tick)
}

func (m Model) loadSessions() tea.Cmd {
	store := m.svc.History
	return m.call(func(ctx context.Context) tea.Msg {
		sessions, err := store.Sessions(ctx)
		return SessionsLoadedMsg{Sessions: sessions, Err: err}
	})
}

func (m Model) handleSessions(msg SessionsLoadedMsg) (tea.Model, tea.Cmd) {
	m.history.loading = false
	if msg.Err != nil {
		m.logger.Error("list sessions", "error", msg.Err)
		m.history.err = msg.Err
		return m, nil
	}
	sessions := msg.Sessions
	ragchat.SortSessions(sessions)
	m.history = m.history.setSessions(sessions)
	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		return m.backToChat()
	case tea.KeyEnter:
		s, ok := m.history.selected()
		if !ok {
			return m, nil
		}
		return m.switchSession(s.ID)
	}
	if msg.String() == "d" && m.svc.History != nil {
		s, ok := m.history.selected()
		if !ok {
			return m, nil
		}
		store, load := m.svc.History, m.loadSessions()
		return m, m.call(func(ctx context.Context) tea.Msg {
			if err := store.DeleteSession(ctx, s.ID); err != nil {
				return SessionsLoadedMsg{Err: err}
			}
			return load()
		})
	}
	var cmd tea.Cmd
	m.history.table, cmd = m.history.table.Update(msg)
	return m, cmd
}

// switchSession makes id the current chat session and loads it.
func (m Model) switchSession(id string) (tea.Model, tea.Cmd) {
	st := m.svc.State.Get()
	if err := m.svc.State.Set(st.WithSessionID(id)); err != nil {
		m.logger.Error("store session id", "error", err)
	}
	m.screen = screenChat
	m.sessionID = id
	m.blocks = nil
	m.messages = nil
	m.blockFocus = -1
	m.err = nil
	m.notice = ""
	cmd := m.Input.Focus()
	return m.refresh(true), tea.Batch(cmd, m.loadHistory(id))
}

func (m Model) backToChat() (tea.Model, tea.Cmd) {
	m.screen = screenChat
	cmd := m.Input.Focus()
	return m.refresh(true), cmd
}

func (m Model) viewHistory() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.cat.T("history.title")))
	b.WriteString("\n")
	switch {
	case m.history.loading:
		b.WriteString(m.spinner.View())
	case m.history.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + userMessage(m.history.err)))
	case len(m.history.sessions) == 0:
		b.WriteString(m.styles.Muted.Render(m.cat.T("history.empty")))
	default:
		b.WriteString(m.history.table.View())
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.cat.T("history.hint")))
	return b.String()
}
