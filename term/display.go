package term

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/eventchat"
	"github.com/muesli/termenv"
)

// Interface compliance check.
var _ eventchat.Display = (*Display)(nil)

// AnswerRenderer turns a final answer into terminal text.
type AnswerRenderer interface {
	Render(a eventchat.Answer, width int) string
}

type plainRenderer struct{}

func (plainRenderer) Render(a eventchat.Answer, _ int) string { return a.String() }

// Display writes one exchange at a time to a line-oriented writer.
//
// Output cannot be taken back once written, so the latest events list is
// held until the answer or the failure arrives and printed below it. The
// placeholder is printed once per exchange; on a terminal it is erased when
// the answer replaces it.
type Display struct {
	out      *termenv.Output
	styles   Styles
	cards    Cards
	renderer AnswerRenderer
	width    int
	erase    bool

	placeholder bool
	events      []eventchat.RankedEvent
}

// DisplayOption configures a [Display].
type DisplayOption func(*Display)

// WithAnswerRenderer sets how answers are rendered. Defaults to plain text.
func WithAnswerRenderer(r AnswerRenderer) DisplayOption {
	return func(d *Display) { d.renderer = r }
}

// WithWidth sets the wrap width. Defaults to 80.
func WithWidth(w int) DisplayOption {
	return func(d *Display) { d.width = w }
}

// WithBaseURL resolves site-relative event URLs against url.
func WithBaseURL(url string) DisplayOption {
	return func(d *Display) { d.cards.BaseURL = url }
}

// WithErase makes the placeholder line erasable. Only use it when w is a
// terminal.
func WithErase(erase bool) DisplayOption {
	return func(d *Display) { d.erase = erase }
}

// NewDisplay creates a Display writing to w.
func NewDisplay(w io.Writer, theme eventchat.Theme, opts ...DisplayOption) *Display {
	styles := NewStyles(theme)
	d := &Display{
		out:      termenv.NewOutput(w),
		styles:   styles,
		cards:    Cards{Styles: styles},
		renderer: plainRenderer{},
		width:    80,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// ShowPlaceholder prints text once per exchange.
func (d *Display) ShowPlaceholder(text string) {
	if d.placeholder {
		return
	}
	d.placeholder = true
	if d.erase {
		fmt.Fprint(d.out, d.styles.Muted.Render(text))
		return
	}
	fmt.Fprintln(d.out, d.styles.Muted.Render(text))
}

// ShowAnswer prints the rendered answer, then any pending events.
func (d *Display) ShowAnswer(a eventchat.Answer) {
	d.clearPlaceholder()
	fmt.Fprintln(d.out, trimLines(d.renderer.Render(a, d.width)))
	d.flushEvents()
}

// ShowEvents replaces the pending events list.
func (d *Display) ShowEvents(events []eventchat.RankedEvent) {
	d.events = events
}

// ShowFailure prints message, then any pending events.
func (d *Display) ShowFailure(message string) {
	d.clearPlaceholder()
	fmt.Fprintln(d.out, d.styles.Error.Render(message))
	d.flushEvents()
}

// ShowQuestion echoes the user's question and starts a new exchange.
func (d *Display) ShowQuestion(text string) {
	d.placeholder = false
	d.events = nil
	fmt.Fprintln(d.out, d.styles.UserMsg.Render("> "+text))
}

func (d *Display) clearPlaceholder() {
	if d.placeholder && d.erase {
		d.out.ClearLine()
		fmt.Fprint(d.out, "\r")
	}
	d.placeholder = false
}

func (d *Display) flushEvents() {
	if section := d.cards.Render(d.events, d.width); section != "" {
		fmt.Fprintln(d.out)
		fmt.Fprintln(d.out, section)
	}
	d.events = nil
}

// trimLines removes the padding lipgloss adds to wrapped lines.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
