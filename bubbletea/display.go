package bubbletea

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/eventchat"
)

// Interface compliance check.
var _ eventchat.Display = (*Display)(nil)

// Display forwards renders to a running [Model] as tea messages. Each call
// blocks until the model has received the message, so renders are applied
// in call order and all of them are delivered before the send returns.
type Display struct {
	ch   chan tea.Msg
	quit chan struct{}
	once sync.Once
}

// NewDisplay creates a Display. Pass the same Display to the assistant and
// to [New].
func NewDisplay() *Display {
	return &Display{
		ch:   make(chan tea.Msg),
		quit: make(chan struct{}),
	}
}

func (d *Display) ShowPlaceholder(text string) { d.send(PlaceholderMsg{Text: text}) }

func (d *Display) ShowAnswer(a eventchat.Answer) { d.send(AnswerMsg{Answer: a}) }

func (d *Display) ShowEvents(events []eventchat.RankedEvent) { d.send(EventsMsg{Events: events}) }

func (d *Display) ShowFailure(message string) { d.send(FailureMsg{Message: message}) }

// Close unblocks pending and future renders once the program has exited.
func (d *Display) Close() {
	d.once.Do(func() { close(d.quit) })
}

func (d *Display) send(msg tea.Msg) {
	select {
	case d.ch <- msg:
	case <-d.quit:
	}
}

// listen waits for the next render or, once the send has returned, for its
// completion.
func listen(d *Display, doneCh <-chan SendDoneMsg) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-d.ch:
			return msg
		case done := <-doneCh:
			return done
		}
	}
}
