package eventchat

// Fixed texts shown on the display surface.
const (
	// PlaceholderText replaces the assistant output while tokens stream in.
	PlaceholderText = "generating…"
	// FailureText replaces the assistant output when the transport fails.
	FailureText = "❌ Hi ha hagut un error. Torna-ho a intentar."
	// EventsTitle heads a non-empty list of recommended events.
	EventsTitle = "Esdeveniments recomanats"
	// NoCategoryText is shown for events without a category.
	NoCategoryText = "Sense categoria"
)

// Display is the single surface an Assembler writes to. Implementations are
// injected by the caller; only one stream writes to a Display at a time.
type Display interface {
	// ShowPlaceholder replaces the assistant output with transient text.
	ShowPlaceholder(text string)
	// ShowAnswer replaces the assistant output with the final answer.
	ShowAnswer(a Answer)
	// ShowEvents replaces any previously shown events. An empty slice clears
	// the section.
	ShowEvents(events []RankedEvent)
	// ShowFailure replaces the assistant output with a failure message.
	ShowFailure(message string)
}
