package bubbletea

import (
	"fmt"
	"math"
	"strings"

	"github.com/CoderFake/ragchat"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var _ MessageBlock = (*SourcesBlock)(nil)

// SourcesBlock lists the documents a response was built from. It starts
// expanded and collapses to its header on ToggleMsg.
type SourcesBlock struct {
	sources   []ragchat.DocumentSource
	collapsed bool
	header    string
	match     string
	styles    Styles
}

// NewSourcesBlock creates a SourcesBlock. header is the localised title
// format taking the source count; match formats a relevance percentage.
func NewSourcesBlock(sources []ragchat.DocumentSource, header, match string, styles Styles) *SourcesBlock {
	return &SourcesBlock{sources: sources, header: header, match: match, styles: styles}
}

// Collapsed reports whether only the header is shown.
func (b *SourcesBlock) Collapsed() bool { return b.collapsed }

func (b *SourcesBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	switch msg := msg.(type) {
	case ToggleMsg:
		b.collapsed = !b.collapsed
	case ThemeMsg:
		b.styles = msg.Styles
	}
	return b, nil
}

func (b *SourcesBlock) View(width int) string {
	indicator := "▼"
	if b.collapsed {
		indicator = "▶"
	}
	header := b.styles.Source.Render(indicator + " " + fmt.Sprintf(b.header, len(b.sources)))
	if b.collapsed {
		return header
	}

	lines := []string{header}
	for _, s := range b.sources {
		lines = append(lines, b.line(s, width))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (b *SourcesBlock) line(s ragchat.DocumentSource, width int) string {
	var meta []string
	if s.Category != "" {
		meta = append(meta, s.Category)
	}
	if s.RelevanceScore != nil {
		meta = append(meta, fmt.Sprintf(b.match, MatchPercent(*s.RelevanceScore)))
	}
	suffix := ""
	if len(meta) > 0 {
		suffix = " · " + strings.Join(meta, " · ")
	}
	title := s.Title
	if title == "" {
		title = s.ID
	}
	if avail := width - 2 - runewidth.StringWidth(suffix); avail > 0 {
		title = runewidth.Truncate(title, avail, "…")
	}
	return "  " + title + b.styles.Muted.Render(suffix)
}

// MatchPercent converts a relevance score in [0, 1] to a whole percentage.
func MatchPercent(score float64) int {
	p := int(math.Round(score * 100))
	return max(0, min(100, p))
}
