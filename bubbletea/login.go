package bubbletea

import (
	"context"
	"strings"

	"github.com/CoderFake/ragchat"
	"github.com/CoderFake/ragchat/i18n"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldUsername = iota
	fieldPassword
	fieldName
	fieldEmail
)

// loginForm is the sign-in and registration form. Registration adds the
// name and email fields.
type loginForm struct {
	inputs   []textinput.Model
	labels   []string
	focus    int
	register bool
	busy     bool
	// expired marks a form shown because the session ran out.
	expired bool
	err     error
	notice  string
}

func newLoginForm(cat *i18n.Catalog) loginForm {
	keys := []string{"login.username", "login.password", "login.name", "login.email"}
	f := loginForm{inputs: make([]textinput.Model, len(keys)), labels: make([]string, len(keys))}
	for i, key := range keys {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 128
		f.inputs[i] = ti
		f.labels[i] = cat.T(key)
	}
	f.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	f.inputs[fieldPassword].EchoCharacter = '•'
	return f
}

func (f loginForm) fieldCount() int {
	if f.register {
		return len(f.inputs)
	}
	return fieldName
}

func (f loginForm) setFocus(i int) (loginForm, tea.Cmd) {
	n := f.fieldCount()
	f.focus = (i%n + n) % n
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
			continue
		}
		f.inputs[j].Blur()
	}
	return f, cmd
}

func (f loginForm) value(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

func (f loginForm) update(msg tea.Msg) (loginForm, tea.Cmd) {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyEsc:
		if m.login.register {
			m.login.register = false
			m.login, cmd = m.login.setFocus(fieldUsername)
			return m, cmd
		}
		return m.enterChat()

	case tea.KeyCtrlR:
		m.login.register = !m.login.register
		m.login.err = nil
		m.login.notice = ""
		m.login, cmd = m.login.setFocus(fieldUsername)
		return m, cmd

	case tea.KeyTab, tea.KeyDown:
		m.login, cmd = m.login.setFocus(m.login.focus + 1)
		return m, cmd

	case tea.KeyShiftTab, tea.KeyUp:
		m.login, cmd = m.login.setFocus(m.login.focus - 1)
		return m, cmd

	case tea.KeyEnter:
		if m.login.busy {
			return m, nil
		}
		if m.login.focus < m.login.fieldCount()-1 {
			m.login, cmd = m.login.setFocus(m.login.focus + 1)
			return m, cmd
		}
		return m.submitLogin()
	}

	m.login, cmd = m.login.update(msg)
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	f := m.login
	m.login.err = nil
	m.login.notice = ""
	m.login.expired = false
	auth := m.svc.Auth

	if f.register {
		reg := ragchat.Registration{
			Username: f.value(fieldUsername),
			Password: f.inputs[fieldPassword].Value(),
			Name:     f.value(fieldName),
			Email:    f.value(fieldEmail),
		}
		if err := reg.Validate(); err != nil {
			m.login.err = err
			return m, nil
		}
		m.login.busy = true
		return m, tea.Batch(m.call(func(ctx context.Context) tea.Msg {
			user, err := auth.Register(ctx, reg)
			return RegisterDoneMsg{User: user, Err: err}
		}), m.spinner.Tick)
	}

	cred := ragchat.Credentials{Username: f.value(fieldUsername), Password: f.inputs[fieldPassword].Value()}
	if err := cred.Validate(); err != nil {
		m.login.err = err
		return m, nil
	}
	m.login.busy = true
	return m, tea.Batch(m.call(func(ctx context.Context) tea.Msg {
		result, err := auth.Login(ctx, cred)
		return LoginDoneMsg{Result: result, Err: err}
	}), m.spinner.Tick)
}

func (m Model) handleLogin(msg LoginDoneMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.Err != nil {
		m.logger.Warn("login failed", "error", msg.Err)
		m.login.err = msg.Err
		m.login.inputs[fieldPassword].SetValue("")
		return m, nil
	}
	m.logger.Info("login", "user", msg.Result.User.Username)
	m, cmd := m.enterChat()
	m.notice = m.cat.Tf("login.welcome", msg.Result.User.DisplayName())
	return m, cmd
}

func (m Model) handleRegister(msg RegisterDoneMsg) (tea.Model, tea.Cmd) {
	m.login.busy = false
	if msg.Err != nil {
		m.login.err = msg.Err
		return m, nil
	}
	username := msg.User.Username
	if username == "" {
		username = m.login.value(fieldUsername)
	}
	m.login = newLoginForm(m.cat)
	m.login.inputs[fieldUsername].SetValue(username)
	m.login.notice = m.cat.Tf("register.success", username)
	var cmd tea.Cmd
	m.login, cmd = m.login.setFocus(fieldPassword)
	return m, cmd
}

func (m Model) viewLogin() string {
	f := m.login
	title, hint := m.cat.T("login.title"), m.cat.T("login.hint")
	if f.register {
		title, hint = m.cat.T("register.title"), m.cat.T("register.hint")
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.cat.T("app.title") + " · " + title))
	b.WriteString("\n\n")
	for i := range f.fieldCount() {
		label := f.labels[i]
		if i == f.focus {
			b.WriteString(m.styles.Accent.Render("› " + label))
		} else {
			b.WriteString(m.styles.Muted.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n\n")
	}

	switch {
	case f.busy:
		b.WriteString(m.spinner.View() + " ")
	case f.expired:
		b.WriteString(m.styles.Error.Render(m.cat.T("error.session_expired")))
	case f.err != nil:
		b.WriteString(m.styles.Error.Render(userMessage(f.err)))
	case f.notice != "":
		b.WriteString(m.styles.Success.Render(f.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(hint))
	return b.String()
}
