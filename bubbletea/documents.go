package bubbletea

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/CoderFake/ragchat"
	"github.com/CoderFake/ragchat/i18n"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// documentsPageSize is the number of documents listed per page.
const documentsPageSize = 10

// documentsView is the admin listing of indexed documents.
type documentsView struct {
	table   table.Model
	page    ragchat.DocumentPage
	loading bool
	err     error
}

func newDocumentsView(cat *i18n.Catalog, styles Styles) documentsView {
	t := table.New(table.WithFocused(true))
	t.SetStyles(styles.TableStyles())
	v := documentsView{table: t, page: ragchat.DocumentPage{Page: 1, Limit: documentsPageSize}}
	return v.relabel(cat)
}

func (v documentsView) relabel(cat *i18n.Catalog) documentsView {
	v.table.SetColumns([]table.Column{
		{Title: cat.T("docs.col.id"), Width: 8},
		{Title: cat.T("docs.col.title"), Width: 32},
		{Title: cat.T("docs.col.type"), Width: 6},
		{Title: cat.T("docs.col.category"), Width: 14},
		{Title: cat.T("docs.col.created"), Width: 10},
	})
	return v
}

func (v documentsView) setPage(p ragchat.DocumentPage) documentsView {
	v.page = p
	rows := make([]table.Row, len(p.Documents))
	for i, d := range p.Documents {
		created := ""
		if !d.CreatedAt.IsZero() {
			created = d.CreatedAt.Local().Format("2006-01-02")
		}
		rows[i] = table.Row{d.ID, d.Title, d.FileType, d.Category, created}
	}
	v.table.SetRows(rows)
	v.table.SetCursor(0)
	return v
}

// requireAdmin reports ErrNotAdmin in the status line for regular users.
func (m Model) requireAdmin() (Model, bool) {
	if m.svc.State.Get().User.IsAdmin() {
		return m, true
	}
	m.err = ragchat.ErrNotAdmin
	m.notice = ""
	return m, false
}

func (m Model) openDocuments(page int) (tea.Model, tea.Cmd) {
	m.screen = screenDocuments
	m.docs.err = nil
	m.docs.loading = true
	m.Input.Blur()
	return m, tea.Batch(m.loadDocuments(page), m.spinner.Tick)
}

func (m Model) loadDocuments(page int) tea.Cmd {
	docs := m.svc.Documents
	return m.call(func(ctx context.Context) tea.Msg {
		p, err := docs.Documents(ctx, page, documentsPageSize, "")
		return DocumentsLoadedMsg{Page: p, Err: err}
	})
}

func (m Model) handleDocuments(msg DocumentsLoadedMsg) (tea.Model, tea.Cmd) {
	m.docs.loading = false
	if msg.Err != nil {
		m.logger.Error("list documents", "error", msg.Err)
		if errors.Is(msg.Err, ragchat.ErrUnauthorized) {
			return m.handleError(msg.Err)
		}
		m.docs.err = msg.Err
		return m, nil
	}
	m.docs.err = nil
	m.docs = m.docs.setPage(msg.Page)
	return m, nil
}

func (m Model) updateDocuments(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		return m.backToChat()
	}
	page := m.docs.page.Page
	switch msg.String() {
	case "n":
		if page < m.docs.page.Pages() {
			m.docs.loading = true
			return m, m.loadDocuments(page + 1)
		}
		return m, nil
	case "p":
		if page > 1 {
			m.docs.loading = true
			return m, m.loadDocuments(page - 1)
		}
		return m, nil
	case "r":
		m.docs.loading = true
		return m, m.loadDocuments(max(page, 1))
	}
	var cmd tea.Cmd
	m.docs.table, cmd = m.docs.table.Update(msg)
	return m, cmd
}

func (m Model) viewDocuments() string {
	p := m.docs.page
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.cat.Tf("docs.title", max(p.Page, 1), p.Pages(), p.Total)))
	b.WriteString("\n")
	switch {
	case m.docs.loading:
		b.WriteString(m.spinner.View())
	case m.docs.err != nil:
		b.WriteString(m.styles.Error.Render("Error: " + m.errorText(m.docs.err)))
	default:
		b.WriteString(m.docs.table.View())
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.cat.T("docs.hint")))
	return b.String()
}

// uploadDocument validates the upload locally before sending it.
func (m Model) uploadDocument(path, category string) (tea.Model, tea.Cmd) {
	u := ragchat.DocumentUpload{Path: path, Category: category}.Normalize()
	if err := u.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	docs, cat := m.svc.Documents, m.cat
	return m, m.call(func(ctx context.Context) tea.Msg {
		res, err := docs.Upload(ctx, u)
		if err != nil {
			return NoticeMsg{Err: err}
		}
		name := res.Filename
		if name == "" {
			name = filepath.Base(u.Path)
		}
		return NoticeMsg{Text: cat.Tf("docs.uploaded", name, res.Chunks)}
	})
}

func (m Model) deleteDocument(id string) tea.Cmd {
	docs, cat := m.svc.Documents, m.cat
	return m.call(func(ctx context.Context) tea.Msg {
		if err := docs.Delete(ctx, id); err != nil {
			return NoticeMsg{Err: err}
		}
		return NoticeMsg{Text: cat.Tf("docs.deleted", id)}
	})
}

func (m Model) reindex() tea.Cmd {
	docs, cat := m.svc.Documents, m.cat
	return m.call(func(ctx context.Context) tea.Msg {
		if err := docs.Reindex(ctx); err != nil {
			return NoticeMsg{Err: err}
		}
		return NoticeMsg{Text: cat.T("docs.reindexed")}
	})
}
