// Package term renders eventchat output for plain terminals: lipgloss styles
// derived from a Theme, event cards, and a line-oriented Display.
package term

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/eventchat"
)

// Styles maps a Theme to lipgloss styles.
type Styles struct {
	UserMsg lipgloss.Style
	UserBg  lipgloss.Style
	Error   lipgloss.Style
	Muted   lipgloss.Style
	Accent  lipgloss.Style
	Badge   lipgloss.Style
	Link    lipgloss.Style
	Card    lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t eventchat.Theme) Styles {
	return Styles{
		UserMsg: lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		UserBg:  lipgloss.NewStyle().Background(ansiColor(t.UserBg)).PaddingLeft(1),
		Error:   lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Muted:   lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Badge:   lipgloss.NewStyle().Background(ansiColor(t.Badge)).Padding(0, 1),
		Link:    lipgloss.NewStyle().Foreground(ansiColor(t.Link)).Underline(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ansiColor(t.Muted)).
			Padding(0, 1),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
