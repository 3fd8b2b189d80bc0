package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/eventchat"
	"github.com/fwojciec/eventchat/term"
)

var _ MessageBlock = (*AssistantBlock)(nil)

type assistantState int

const (
	assistantEmpty assistantState = iota
	assistantPlaceholder
	assistantAnswer
	assistantFailure
)

// AssistantBlock is the single output slot of one exchange. Each render
// replaces the previous one. Rendered answers are cached per width.
type AssistantBlock struct {
	state    assistantState
	text     string
	answer   eventchat.Answer
	renderer term.AnswerRenderer
	styles   term.Styles
	byWidth  map[int]string
}

// NewAssistantBlock creates an empty AssistantBlock.
func NewAssistantBlock(renderer term.AnswerRenderer, styles term.Styles) *AssistantBlock {
	return &AssistantBlock{
		renderer: renderer,
		styles:   styles,
		byWidth:  make(map[int]string),
	}
}

// SetPlaceholder shows transient text.
func (b *AssistantBlock) SetPlaceholder(text string) {
	b.state = assistantPlaceholder
	b.text = text
}

// SetAnswer shows the final answer.
func (b *AssistantBlock) SetAnswer(a eventchat.Answer) {
	b.state = assistantAnswer
	b.answer = a
	clear(b.byWidth)
}

// SetFailure shows a failure message.
func (b *AssistantBlock) SetFailure(message string) {
	b.state = assistantFailure
	b.text = message
}

func (b *AssistantBlock) View(width int) string {
	switch b.state {
	case assistantPlaceholder:
		return lipgloss.NewStyle().Width(width).Render(b.styles.Muted.Render(b.text))
	case assistantFailure:
		return lipgloss.NewStyle().Width(width).Render(b.styles.Error.Render(b.text))
	case assistantAnswer:
		if cached, ok := b.byWidth[width]; ok {
			return cached
		}
		rendered := b.renderer.Render(b.answer, width)
		b.byWidth[width] = rendered
		return rendered
	default:
		return ""
	}
}
