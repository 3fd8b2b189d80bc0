// Package goldmark renders assistant answers to ANSI-styled terminal text,
// using goldmark for parsing and lipgloss for styling.
//
// Answers are plain prose with the occasional list, emphasis or link. Links
// that point into the site (for example "/events/12/") are resolved against
// the configured base URL so they can be opened from the terminal.
package goldmark

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/eventchat"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

const defaultWidth = 80

// Renderer renders answers for a fixed theme.
type Renderer struct {
	baseURL string
	parser  parser.Parser

	bold     lipgloss.Style
	italic   lipgloss.Style
	heading  lipgloss.Style
	muted    lipgloss.Style
	link     lipgloss.Style
	followUp lipgloss.Style
}

// Option configures a [Renderer].
type Option func(*Renderer)

// WithBaseURL resolves site-relative link destinations against url.
func WithBaseURL(url string) Option {
	return func(r *Renderer) { r.baseURL = strings.TrimRight(url, "/") }
}

// New creates a [Renderer] for theme.
func New(theme eventchat.Theme, opts ...Option) *Renderer {
	r := &Renderer{
		parser:   goldmark.DefaultParser(),
		bold:     lipgloss.NewStyle().Bold(true),
		italic:   lipgloss.NewStyle().Italic(true),
		heading:  lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)).Bold(true),
		muted:    lipgloss.NewStyle().Foreground(ansiColor(theme.Muted)).Faint(true),
		link:     lipgloss.NewStyle().Foreground(ansiColor(theme.Link)).Underline(true),
		followUp: lipgloss.NewStyle().Foreground(ansiColor(theme.Accent)),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Render renders a as word-wrapped terminal text. Structured answers are
// parsed as markdown, with the follow-up question below a separator. Raw
// answers are the server payload verbatim and are only wrapped.
func (r *Renderer) Render(a eventchat.Answer, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if a.Raw {
		out := lipgloss.NewStyle().Width(width).Render(a.Text)
		if a.FollowUp != "" {
			out += r.renderFollowUp(a.FollowUp, width)
		}
		return out
	}
	out := r.Markdown(a.Text, width)
	if a.FollowUp != "" {
		out += r.renderFollowUp(a.FollowUp, width)
	}
	return out
}

// Markdown renders markdown source to terminal text wrapped to width.
func (r *Renderer) Markdown(source string, width int) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	src := []byte(source)
	doc := r.parser.Parse(text.NewReader(src))
	w := &walker{r: r, source: src, width: width}
	w.blocks(doc)
	return strings.TrimRight(w.buf.String(), "\n")
}

func (r *Renderer) renderFollowUp(q string, width int) string {
	sep := strings.TrimLeft(eventchat.FollowUpSeparator, "\n")
	body := lipgloss.NewStyle().Width(width - lipgloss.Width(sep)).Render(r.followUp.Render(q))
	return "\n\n" + lipgloss.JoinHorizontal(lipgloss.Top, sep, body)
}

// resolve turns a site-relative destination into an absolute URL.
func (r *Renderer) resolve(dest string) string {
	if r.baseURL == "" || !strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "//") {
		return dest
	}
	return r.baseURL + dest
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
