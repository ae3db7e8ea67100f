package bubbletea

import (
	"strconv"

	"github.com/CoderFake/ragchat"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Theme   ragchat.Theme
	Query   lipgloss.Style
	Source  lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Cursor  lipgloss.Style
	Title   lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t ragchat.Theme) Styles {
	return Styles{
		Theme:   t,
		Query:   lipgloss.NewStyle().Foreground(ansiColor(t.Query)).Bold(true),
		Source:  lipgloss.NewStyle().Foreground(ansiColor(t.Source)),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Success: lipgloss.NewStyle().Foreground(ansiColor(t.Success)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Cursor:  lipgloss.NewStyle().Foreground(ansiColor(t.Cursor)),
		Title:   lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true).Underline(true),
	}
}

// TableStyles returns bubbles table styles in the theme's colours.
func (s Styles) TableStyles() table.Styles {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ansiColor(s.Theme.Muted)).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(ansiColor(s.Theme.Accent)).
		Bold(true)
	return ts
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
