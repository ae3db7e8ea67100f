package bubbletea

import (
	"strings"
	"time"

	"github.com/CoderFake/ragchat"
	"github.com/CoderFake/ragchat/goldmark"
	"github.com/CoderFake/ragchat/markdown"
	tea "github.com/charmbracelet/bubbletea"
)

var _ MessageBlock = (*ResponseBlock)(nil)

// revealCursor trails the revealed text while a response is animating.
const revealCursor = "▌"

// RevealTickMsg advances the typing animation of one response block. A tick
// whose Generation no longer matches the block's content is stale and
// ignored.
type RevealTickMsg struct {
	ID         int
	Generation int
}

// SkipRevealMsg finishes every running animation at once.
type SkipRevealMsg struct{}

// ResponseBlock renders an answer from the server. Short conversational
// answers are revealed block by block; structured or long answers go
// straight to the full markdown renderer.
type ResponseBlock struct {
	id         int
	responseID string
	reveal     *ragchat.Reveal
	strategy   ragchat.RenderStrategy
	styles     Styles

	// byWidth caches finished renders per width.
	byWidth map[int]string
}

// NewResponseBlock creates a block for content. When animate is false, or
// the content needs the full renderer, the block starts fully revealed.
func NewResponseBlock(id int, responseID, content string, speed time.Duration, animate bool, styles Styles) *ResponseBlock {
	b := &ResponseBlock{
		id:         id,
		responseID: responseID,
		styles:     styles,
		byWidth:    make(map[int]string),
	}
	b.reveal = ragchat.NewReveal(content, speed, animate)
	b.chooseStrategy()
	return b
}

// chooseStrategy picks the renderer for the current content. The full
// renderer is never animated.
func (b *ResponseBlock) chooseStrategy() {
	b.strategy = ragchat.ChooseRenderer(b.reveal.Content())
	if b.strategy == ragchat.RenderFull {
		b.reveal.Skip()
	}
}

// ID identifies the block within the conversation.
func (b *ResponseBlock) ID() int { return b.id }

// ResponseID is the server id used for feedback.
func (b *ResponseBlock) ResponseID() string { return b.responseID }

// Strategy reports which renderer draws the block.
func (b *ResponseBlock) Strategy() ragchat.RenderStrategy { return b.strategy }

// Content returns the full reply text regardless of reveal progress.
func (b *ResponseBlock) Content() string { return b.reveal.Content() }

// Animating reports whether part of the content is still hidden.
func (b *ResponseBlock) Animating() bool { return !b.reveal.Done() }

// Generation identifies the content currently being revealed.
func (b *ResponseBlock) Generation() int { return b.reveal.Generation() }

// Start returns the command that schedules the first tick, or nil when
// nothing is left to reveal.
func (b *ResponseBlock) Start() tea.Cmd {
	if b.reveal.Done() {
		return nil
	}
	return b.tick()
}

// SetContent replaces the content. Changed content restarts the animation
// and any ticks scheduled for the old content are dropped.
func (b *ResponseBlock) SetContent(content string) tea.Cmd {
	if !b.reveal.SetContent(content) {
		return nil
	}
	b.chooseStrategy()
	clear(b.byWidth)
	return b.Start()
}

// SetSpeed changes the animation speed for the following ticks.
func (b *ResponseBlock) SetSpeed(speed time.Duration) { b.reveal.SetSpeed(speed) }

func (b *ResponseBlock) tick() tea.Cmd {
	msg := RevealTickMsg{ID: b.id, Generation: b.reveal.Generation()}
	speed := b.reveal.Speed()
	if speed <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(speed, func(time.Time) tea.Msg { return msg })
}

func (b *ResponseBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	switch msg := msg.(type) {
	case RevealTickMsg:
		if msg.ID != b.id || msg.Generation != b.reveal.Generation() || b.reveal.Done() {
			return b, nil
		}
		b.reveal.Tick(b.reveal.Speed())
		if b.reveal.Done() {
			return b, nil
		}
		return b, b.tick()
	case SkipRevealMsg:
		b.reveal.Skip()
	case ThemeMsg:
		b.styles = msg.Styles
		clear(b.byWidth)
	}
	return b, nil
}

func (b *ResponseBlock) View(width int) string {
	if width <= 0 {
		width = 80
	}
	if b.reveal.Done() {
		if cached, ok := b.byWidth[width]; ok {
			return cached
		}
		rendered := b.render(width)
		b.byWidth[width] = rendered
		return rendered
	}
	return b.render(width) + b.styles.Cursor.Render(revealCursor)
}

func (b *ResponseBlock) render(width int) string {
	if b.strategy == ragchat.RenderFull {
		return strings.TrimRight(goldmark.Render(b.reveal.Content(), width, b.styles.Theme), "\n")
	}
	return markdown.Render(b.reveal.Visible(), width, b.styles.Theme)
}
