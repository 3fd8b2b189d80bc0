package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// Listen exports listen for testing.
func Listen(d *Display, doneCh <-chan SendDoneMsg) tea.Cmd {
	return listen(d, doneCh)
}

// WithContextForTest sets the context sends are derived from, as Run does.
func WithContextForTest(m Model, ctx context.Context) Model {
	m.ctx = ctx
	return m
}

// WaitSends blocks until every started send has returned.
func WaitSends(m Model) {
	m.sends.Wait()
}
