package bubbletea

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/CoderFake/ragchat"
	"github.com/CoderFake/ragchat/i18n"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

var _ tea.Model = Model{}

// historyLimit is the number of messages loaded when a session opens.
const historyLimit = 50

type screen int

const (
	screenLogin screen = iota
	screenChat
	screenHistory
	screenDocuments
	screenSettings
)

var screenNames = [...]string{
	screenLogin:     "login",
	screenChat:      "chat",
	screenHistory:   "history",
	screenDocuments: "documents",
	screenSettings:  "settings",
}

func (s screen) String() string { return screenNames[s] }

// Model is the Bubble Tea model for the chat TUI.
type Model struct {
	// Input is the text input component. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable output area. Exported for test access.
	Viewport viewport.Model

	svc    Services
	opts   Options
	logger *slog.Logger
	cat    *i18n.Catalog
	styles Styles

	screen   screen
	login    loginForm
	history  historyView
	docs     documentsView
	settings settingsView

	blocks     []MessageBlock
	blockFocus int // index of focused collapsible block (-1 = none)
	nextID     int
	sessionID  string
	messages   []ragchat.Message

	spinner spinner.Model
	sending bool
	cancel  context.CancelFunc
	notice  string
	err     error
	ready   bool
	width   int
	height  int
}

// New creates the TUI model. Signed-in users start in the chat; everyone
// else starts at the login form.
func New(svc Services, opts Options) Model {
	if opts.RevealSpeed == 0 {
		opts.RevealSpeed = ragchat.DefaultRevealSpeed
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	st := svc.State.Get()
	cat := i18n.New(st.Language)
	styles := NewStyles(ragchat.ThemeFor(st.Theme))

	ti := textinput.New()
	ti.Placeholder = cat.T("chat.placeholder")
	ti.Prompt = ""
	ti.CharLimit = 0

	m := Model{
		Input:      ti,
		svc:        svc,
		opts:       opts,
		logger:     logger,
		cat:        cat,
		styles:     styles,
		login:      newLoginForm(cat),
		history:    newHistoryView(cat, styles),
		docs:       newDocumentsView(cat, styles),
		blockFocus: -1,
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Accent)),
	}
	if st.Authenticated() {
		m, _ = m.enterChat()
	} else {
		m.login, _ = m.login.setFocus(0)
	}
	return m
}

// busy reports whether a backend call the user is waiting on is running.
func (m Model) busy() bool {
	return m.sending || m.login.busy || m.history.loading || m.docs.loading || m.settings.loading
}

// Screen returns the name of the active screen.
func (m Model) Screen() string { return m.screen.String() }

// Sending reports whether a query is awaiting its answer.
func (m Model) Sending() bool { return m.sending }

// Err returns the last error, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.screen == screenChat {
		return tea.Batch(textinput.Blink, m.loadHistory(m.sessionID))
	}
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		switch m.screen {
		case screenLogin:
			return m.updateLogin(msg)
		case screenHistory:
			return m.updateHistory(msg)
		case screenDocuments:
			return m.updateDocuments(msg)
		case screenSettings:
			return m.updateSettings(msg)
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case RevealTickMsg:
		return m.deliverTick(msg)

	case ChatResponseMsg:
		return m.handleResponse(msg)

	case HistoryLoadedMsg:
		return m.handleHistory(msg), nil

	case SessionsLoadedMsg:
		return m.handleSessions(msg)

	case DocumentsLoadedMsg:
		return m.handleDocuments(msg)

	case SettingsLoadedMsg:
		return m.handleSettings(msg)

	case LoginDoneMsg:
		return m.handleLogin(msg)

	case RegisterDoneMsg:
		return m.handleRegister(msg)

	case NoticeMsg:
		if msg.Err != nil {
			return m.handleError(msg.Err)
		}
		m.err = nil
		m.notice = msg.Text
		return m, nil

	case ConfigMsg:
		return m.applyConfig(msg), nil
	}

	// Pass remaining messages to sub-components.
	// Viewport always receives messages for scrolling (keyboard and mouse).
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	switch {
	case m.screen == screenLogin:
		m.login, cmd = m.login.update(msg)
		cmds = append(cmds, cmd)
	case m.screen == screenChat && !m.sending:
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	switch m.screen {
	case screenLogin:
		return m.viewLogin()
	case screenHistory:
		return m.viewHistory()
	case screenDocuments:
		return m.viewDocuments()
	case screenSettings:
		return m.viewSettings()
	}

	var b strings.Builder

	// Output area.
	b.WriteString(m.Viewport.View())
	b.WriteString("\n")

	// Status line.
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	// Input area.
	b.WriteString(m.Input.View())

	return b.String()
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	inputH := 1
	statusHeight := 1
	borderHeight := 2 // newlines between sections
	vpHeight := max(msg.Height-inputH-statusHeight-borderHeight, 1)

	if !m.ready {
		m.Viewport = viewport.New(msg.Width, vpHeight)
		m.ready = true
	} else {
		m.Viewport.Width = msg.Width
		m.Viewport.Height = vpHeight
	}
	m.width, m.height = msg.Width, msg.Height
	m.Input.Width = msg.Width

	tableHeight := max(msg.Height-4, 1)
	m.history.table.SetHeight(tableHeight)
	m.history.table.SetWidth(msg.Width)
	m.docs.table.SetHeight(tableHeight)
	m.docs.table.SetWidth(msg.Width)

	return m.refresh(true)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.sending {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEsc:
		return m.skipReveal(), nil

	case tea.KeyEnter:
		if m.sending {
			return m, nil
		}
		text := strings.TrimSpace(m.Input.Value())
		if text == "" {
			return m, nil
		}
		if strings.HasPrefix(text, "/") {
			return m.runCommand(text)
		}
		return m.submitQuery(text)

	case tea.KeyTab:
		if m.blockFocus >= 0 {
			block, cmd := m.blocks[m.blockFocus].Update(ToggleMsg{})
			m.blocks[m.blockFocus] = block
			return m.refresh(false), cmd
		}
		return m, nil

	case tea.KeyShiftTab:
		m = m.cycleFocusPrev()
		return m.refresh(false), nil
	}

	// When idle, pass keys to both the input (for typing) and viewport
	// (for scrolling). Only forward non-character keys to viewport to avoid
	// conflicts (e.g. 'j'/'k' are viewport scroll AND text characters).
	var cmds []tea.Cmd
	var cmd tea.Cmd
	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		m.Viewport, cmd = m.Viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	if !m.sending {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) submitQuery(text string) (tea.Model, tea.Cmd) {
	m.Input.SetValue("")
	m.err = nil
	m.notice = ""

	query := ragchat.Message{Role: ragchat.RoleQuery, Content: text, CreatedAt: time.Now()}
	if u := m.svc.State.Get().User; u != nil {
		query.UserID = u.ID
	}
	m.messages = append(m.messages, query)
	m.blocks = append(m.blocks, NewUserMessageBlock(text, m.styles))
	m = m.refresh(true)

	ctx, cancel := m.context()
	m.cancel = cancel
	m.sending = true

	chat := m.svc.Chat
	req := ragchat.ChatRequest{Query: text, SessionID: m.sessionID, Language: m.cat.Language()}
	send := func() tea.Msg {
		defer cancel()
		resp, err := chat.Send(ctx, req)
		return ChatResponseMsg{Response: resp, Err: err}
	}
	return m, tea.Batch(send, m.spinner.Tick)
}

func (m Model) handleResponse(msg ChatResponseMsg) (tea.Model, tea.Cmd) {
	m.sending = false
	m.cancel = nil
	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return m, nil
		}
		m.logger.Error("send query", "session", m.sessionID, "error", msg.Err)
		if errors.Is(msg.Err, ragchat.ErrUnauthorized) {
			return m.handleError(msg.Err)
		}
		m.blocks = append(m.blocks, NewErrorBlock(msg.Err, m.styles))
		return m.refresh(true), nil
	}

	resp := msg.Response
	m.messages = append(m.messages, resp.Message(time.Now()))
	block := m.appendResponse(resp.ResponseID, resp.Response, resp.Sources, !m.opts.NoAnimation)
	m = m.updateBlockFocus()
	m = m.refresh(true)
	return m, tea.Batch(block.Start(), m.saveHistory())
}

// appendResponse adds a response block and, when there are sources, the
// sources list under it.
func (m *Model) appendResponse(responseID, content string, sources []ragchat.DocumentSource, animate bool) *ResponseBlock {
	m.nextID++
	block := NewResponseBlock(m.nextID, responseID, content, m.opts.RevealSpeed, animate, m.styles)
	m.appendBlock(block, sources)
	return block
}

func (m *Model) appendBlock(block *ResponseBlock, sources []ragchat.DocumentSource) {
	m.blocks = append(m.blocks, block)
	if len(sources) > 0 {
		m.blocks = append(m.blocks, NewSourcesBlock(sources, m.cat.T("sources.title"), m.cat.T("sources.match"), m.styles))
	}
}

// handleError surfaces err in the status line. Expired credentials send the
// user back to the login form.
func (m Model) handleError(err error) (tea.Model, tea.Cmd) {
	if errors.Is(err, ragchat.ErrUnauthorized) {
		m, cmd := m.enterLogin()
		m.login.expired = true
		return m, cmd
	}
	m.err = err
	m.notice = ""
	return m, nil
}

func (m Model) handleHistory(msg HistoryLoadedMsg) Model {
	if msg.SessionID != m.sessionID {
		return m
	}
	if msg.Err != nil {
		m.logger.Warn("load history", "session", msg.SessionID, "error", msg.Err)
		return m
	}
	// Replies still being revealed keep their block so pending ticks land.
	var live []*ResponseBlock
	for _, b := range m.blocks {
		if rb, ok := b.(*ResponseBlock); ok && rb.Animating() {
			live = append(live, rb)
		}
	}
	// Queries sent while the history was loading stay at the end.
	m.messages = append(slices.Clone(msg.Messages), m.messages...)
	m.blocks = nil
	for i, hm := range m.messages {
		if hm.Role == ragchat.RoleQuery {
			m.blocks = append(m.blocks, NewUserMessageBlock(hm.Content, m.styles))
			continue
		}
		if i >= len(msg.Messages) && len(live) > 0 && live[0].Content() == hm.Content {
			m.appendBlock(live[0], hm.Sources)
			live = live[1:]
			continue
		}
		m.appendResponse(hm.ID, hm.Content, hm.Sources, false)
	}
	if n := len(msg.Messages); n > 0 {
		m.notice = m.cat.Tf("chat.loaded", n)
	}
	m = m.updateBlockFocus()
	return m.refresh(true)
}

func (m Model) deliverTick(msg RevealTickMsg) (tea.Model, tea.Cmd) {
	for i, b := range m.blocks {
		rb, ok := b.(*ResponseBlock)
		if !ok || rb.ID() != msg.ID {
			continue
		}
		block, cmd := rb.Update(msg)
		m.blocks[i] = block
		return m.refresh(false), cmd
	}
	return m, nil
}

func (m Model) skipReveal() Model {
	for i, b := range m.blocks {
		if rb, ok := b.(*ResponseBlock); ok && rb.Animating() {
			m.blocks[i], _ = rb.Update(SkipRevealMsg{})
		}
	}
	return m.refresh(false)
}

// broadcast delivers msg to every block.
func (m Model) broadcast(msg tea.Msg) Model {
	for i, b := range m.blocks {
		m.blocks[i], _ = b.Update(msg)
	}
	return m
}

func (m Model) applyConfig(msg ConfigMsg) Model {
	if msg.RevealSpeed > 0 {
		m.opts.RevealSpeed = msg.RevealSpeed
		for _, b := range m.blocks {
			if rb, ok := b.(*ResponseBlock); ok {
				rb.SetSpeed(msg.RevealSpeed)
			}
		}
	}
	if msg.Theme != "" {
		m = m.setTheme(msg.Theme)
	}
	return m
}

// setTheme persists mode and restyles everything on screen.
func (m Model) setTheme(mode ragchat.ThemeMode) Model {
	st := m.svc.State.Get()
	st.Theme = mode
	if err := m.svc.State.Set(st); err != nil {
		m.logger.Error("store theme", "error", err)
	}
	m.styles = NewStyles(ragchat.ThemeFor(mode))
	m.spinner.Style = m.styles.Accent
	m.history.table.SetStyles(m.styles.TableStyles())
	m.docs.table.SetStyles(m.styles.TableStyles())
	m = m.broadcast(ThemeMsg{Styles: m.styles})
	return m.refresh(false)
}

// setLanguage persists lang and relabels the interface.
func (m Model) setLanguage(lang ragchat.Language) Model {
	st := m.svc.State.Get()
	st.Language = lang
	if err := m.svc.State.Set(st); err != nil {
		m.logger.Error("store language", "error", err)
	}
	m.cat.SetLanguage(lang)
	m.Input.Placeholder = m.cat.T("chat.placeholder")
	m.history = m.history.relabel(m.cat)
	m.docs = m.docs.relabel(m.cat)
	return m
}

// enterChat switches to the chat screen for the current account and
// returns the command that loads its history.
func (m Model) enterChat() (Model, tea.Cmd) {
	m.screen = screenChat
	m.sessionID = m.ensureSession()
	m.blocks = nil
	m.messages = nil
	m.blockFocus = -1
	cmd := m.Input.Focus()
	return m.refresh(true), tea.Batch(cmd, m.loadHistory(m.sessionID))
}

func (m Model) enterLogin() (Model, tea.Cmd) {
	m.screen = screenLogin
	m.sessionID = ""
	m.blocks = nil
	m.messages = nil
	m.blockFocus = -1
	m.err = nil
	m.Input.Blur()
	m.Input.SetValue("")
	m.login = newLoginForm(m.cat)
	var cmd tea.Cmd
	m.login, cmd = m.login.setFocus(0)
	return m.refresh(true), cmd
}

// ensureSession returns the stored chat session id for the current account,
// creating one if none exists.
func (m Model) ensureSession() string {
	st := m.svc.State.Get()
	if id := st.CurrentSessionID(); id != "" {
		return id
	}
	id := ragchat.NewSessionID()
	if err := m.svc.State.Set(st.WithSessionID(id)); err != nil {
		m.logger.Error("store session id", "error", err)
	}
	return id
}

// lastResponseID returns the server id of the newest response, if any.
func (m Model) lastResponseID() string {
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if rb, ok := m.blocks[i].(*ResponseBlock); ok && rb.ResponseID() != "" {
			return rb.ResponseID()
		}
	}
	return ""
}

// refresh re-renders the conversation into the viewport. With follow, or
// when the view was already at the bottom, it stays pinned to the end.
func (m Model) refresh(follow bool) Model {
	if !m.ready {
		return m
	}
	atBottom := m.Viewport.AtBottom()
	m.Viewport.SetContent(m.renderContent())
	if follow || atBottom {
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return m.styles.Muted.Render(m.cat.T("chat.welcome"))
	}
	var b strings.Builder
	for i, block := range m.blocks {
		if i > 0 {
			b.WriteString(blockSeparator(m.blocks[i-1], block))
		}
		b.WriteString(block.View(m.Viewport.Width))
	}
	return b.String()
}

// updateBlockFocus scans backwards to find the last collapsible block.
// Only the focused block responds to Tab. ShiftTab cycles to the previous
// collapsible block.
func (m Model) updateBlockFocus() Model {
	m.blockFocus = -1
	for i := len(m.blocks) - 1; i >= 0; i-- {
		if _, ok := m.blocks[i].(*SourcesBlock); ok {
			m.blockFocus = i
			return m
		}
	}
	return m
}

// cycleFocusPrev moves blockFocus to the previous collapsible block, wrapping around.
func (m Model) cycleFocusPrev() Model {
	if len(m.blocks) == 0 {
		return m
	}
	start := m.blockFocus - 1
	if start < 0 {
		start = len(m.blocks) - 1
	}
	for i := range len(m.blocks) {
		idx := (start - i + len(m.blocks)) % len(m.blocks)
		if _, ok := m.blocks[idx].(*SourcesBlock); ok {
			m.blockFocus = idx
			return m
		}
	}
	m.blockFocus = -1
	return m
}

func (m Model) statusLine() string {
	switch {
	case m.sending:
		return m.spinner.View() + " " + m.styles.Muted.Render(m.cat.T("chat.thinking"))
	case m.err != nil:
		return m.styles.Error.Render("Error: " + m.errorText(m.err))
	case m.notice != "":
		return m.styles.Success.Render(m.notice)
	}
	return m.styles.Muted.Render(m.identity() + " · " + m.cat.T("chat.hint"))
}

// errorText localises the errors the user can act on.
func (m Model) errorText(err error) string {
	switch {
	case errors.Is(err, ragchat.ErrNotAdmin), errors.Is(err, ragchat.ErrForbidden):
		return m.cat.T("error.admin")
	case errors.Is(err, ragchat.ErrUnauthorized):
		return m.cat.T("error.session_expired")
	}
	return userMessage(err)
}

// userMessage prefers the server's own wording of an API error.
func userMessage(err error) string {
	var apiErr *ragchat.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func (m Model) identity() string {
	name := m.cat.T("status.guest")
	if u := m.svc.State.Get().User; u != nil {
		name = u.DisplayName()
	}
	return name + " [" + string(m.cat.Language()) + "]"
}

// context returns a context for one backend call, bounded by the
// configured timeout.
func (m Model) context() (context.Context, context.CancelFunc) {
	if m.opts.Timeout > 0 {
		return context.WithTimeout(context.Background(), m.opts.Timeout)
	}
	return context.WithCancel(context.Background())
}

// call runs fn in a command with a fresh bounded context.
func (m Model) call(fn func(ctx context.Context) tea.Msg) tea.Cmd {
	timeout := m.opts.Timeout
	return func() tea.Msg {
		ctx := context.Background()
		cancel := func() {}
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, timeout)
		}
		defer cancel()
		return fn(ctx)
	}
}

// loadHistory fetches a session from the server, falling back to the local
// cache when the server cannot be reached.
func (m Model) loadHistory(sessionID string) tea.Cmd {
	chat, cache, logger := m.svc.Chat, m.svc.History, m.logger
	return m.call(func(ctx context.Context) tea.Msg {
		msgs, err := chat.History(ctx, sessionID, historyLimit)
		if err != nil && cache != nil {
			cached, cerr := cache.Messages(ctx, sessionID)
			if cerr == nil {
				logger.Info("history served from cache", "session", sessionID, "error", err)
				return HistoryLoadedMsg{SessionID: sessionID, Messages: cached}
			}
		}
		return HistoryLoadedMsg{SessionID: sessionID, Messages: msgs, Err: err}
	})
}

// saveHistory caches the conversation locally. Failures are only logged.
func (m Model) saveHistory() tea.Cmd {
	if m.svc.History == nil || m.sessionID == "" || len(m.messages) == 0 {
		return nil
	}
	store, id, logger := m.svc.History, m.sessionID, m.logger
	msgs := slices.Clone(m.messages)
	return m.call(func(ctx context.Context) tea.Msg {
		if err := store.Save(ctx, id, msgs); err != nil {
			logger.Error("cache history", "session", id, "error", err)
		}
		return nil
	})
}
