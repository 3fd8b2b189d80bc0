package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/eventchat/term"
)

var _ MessageBlock = (*UserMessageBlock)(nil)

// UserMessageBlock renders a user question with a "> " prefix.
type UserMessageBlock struct {
	text   string
	styles term.Styles
}

// NewUserMessageBlock creates a UserMessageBlock.
func NewUserMessageBlock(text string, styles term.Styles) *UserMessageBlock {
	return &UserMessageBlock{text: text, styles: styles}
}

func (b *UserMessageBlock) View(width int) string {
	content := b.styles.UserMsg.Render("> ") + b.text
	return lipgloss.NewStyle().Width(width).Render(content)
}
