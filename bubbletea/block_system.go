package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*SystemBlock)(nil)

// SystemBlock renders a client-side notice such as the command help.
type SystemBlock struct {
	text   string
	styles Styles
}

// NewSystemBlock creates a SystemBlock.
func NewSystemBlock(text string, styles Styles) *SystemBlock {
	return &SystemBlock{text: text, styles: styles}
}

func (b *SystemBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if msg, ok := msg.(ThemeMsg); ok {
		b.styles = msg.Styles
	}
	return b, nil
}

func (b *SystemBlock) View(width int) string {
	return b.styles.Muted.Render(lipgloss.NewStyle().Width(width).Render(b.text))
}
