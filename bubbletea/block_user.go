package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a user query with a "> " prefix.
type UserMessageBlock struct {
	text   string
	styles Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(text string, styles Styles) *UserMessageBlock {
	return &UserMessageBlock{text: text, styles: styles}
}

func (b *UserMessageBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if msg, ok := msg.(ThemeMsg); ok {
		b.styles = msg.Styles
	}
	return b, nil
}

func (b *UserMessageBlock) View(width int) string {
	content := b.styles.Query.Render("> ") + b.text
	return lipgloss.NewStyle().Width(width).Render(content)
}
