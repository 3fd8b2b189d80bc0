// Package bubbletea provides a Bubble Tea TUI for the event assistant.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/eventchat"
)

// SendFunc sends one question and blocks until its stream completes or
// fails. Renders reach the model through the [Display] the function was
// built with.
type SendFunc func(ctx context.Context, req eventchat.Request) (eventchat.Result, error)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits and any in-flight send has returned. Sends run under ctx: when it is
// cancelled the program quits, and when the program exits the pending send
// is cancelled.
func Run(ctx context.Context, m Model) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	m.ctx = ctx

	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	cancel()
	m.display.Close()
	m.sends.Wait()
	return err
}

// PlaceholderMsg replaces the current answer with transient text.
type PlaceholderMsg struct {
	Text string
}

// AnswerMsg replaces the current answer with the final answer.
type AnswerMsg struct {
	Answer eventchat.Answer
}

// EventsMsg replaces the recommended events section.
type EventsMsg struct {
	Events []eventchat.RankedEvent
}

// FailureMsg replaces the current answer with a failure message.
type FailureMsg struct {
	Message string
}

// SendDoneMsg signals that a send has returned.
type SendDoneMsg struct {
	Result eventchat.Result
	Err    error
}
