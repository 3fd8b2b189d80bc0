package mock

import "github.com/fwojciec/eventchat"

// Interface compliance check.
var _ eventchat.Display = (*Display)(nil)

// Display is a test double for eventchat.Display. Every function field is
// optional: a nil field makes the call a no-op.
type Display struct {
	ShowPlaceholderFn func(text string)
	ShowAnswerFn      func(a eventchat.Answer)
	ShowEventsFn      func(events []eventchat.RankedEvent)
	ShowFailureFn     func(message string)
}

// ShowPlaceholder delegates to ShowPlaceholderFn.
func (d *Display) ShowPlaceholder(text string) {
	if d.ShowPlaceholderFn != nil {
		d.ShowPlaceholderFn(text)
	}
}

// ShowAnswer delegates to ShowAnswerFn.
func (d *Display) ShowAnswer(a eventchat.Answer) {
	if d.ShowAnswerFn != nil {
		d.ShowAnswerFn(a)
	}
}

// ShowEvents delegates to ShowEventsFn.
func (d *Display) ShowEvents(events []eventchat.RankedEvent) {
	if d.ShowEventsFn != nil {
		d.ShowEventsFn(events)
	}
}

// ShowFailure delegates to ShowFailureFn.
func (d *Display) ShowFailure(message string) {
	if d.ShowFailureFn != nil {
		d.ShowFailureFn(message)
	}
}
