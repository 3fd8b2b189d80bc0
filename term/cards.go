package term

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/eventchat"
	"github.com/mattn/go-runewidth"
)

const minCardWidth = 20

// Cards renders recommended events as bordered cards.
type Cards struct {
	Styles Styles
	// BaseURL is prepended to site-relative event URLs.
	BaseURL string
}

// Render returns the events section for width columns. An empty list renders
// nothing, which clears the section.
func (c Cards) Render(events []eventchat.RankedEvent, width int) string {
	if len(events) == 0 {
		return ""
	}
	width = max(width, minCardWidth)
	parts := []string{c.Styles.Accent.Render(eventchat.EventsTitle)}
	for _, ev := range events {
		parts = append(parts, c.card(ev, width))
	}
	return strings.Join(parts, "\n")
}

func (c Cards) card(ev eventchat.RankedEvent, width int) string {
	// Border and padding take four columns.
	inner := width - 4
	category := ev.Category
	if category == "" {
		category = eventchat.NoCategoryText
	}
	meta := c.Styles.Badge.Render(category)
	if d := FormatDate(ev.ScheduledDate); d != "" {
		meta += " " + c.Styles.Muted.Render(d)
	}
	lines := []string{
		c.Styles.Accent.Render(runewidth.Truncate(ev.Title, inner, "…")),
		c.Styles.Link.Render(runewidth.Truncate(c.resolve(ev.URL), inner, "…")),
		meta,
		c.Styles.Muted.Render("Rellevància: " + FormatScore(ev.Score)),
	}
	return c.Styles.Card.Width(width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (c Cards) resolve(url string) string {
	base := strings.TrimRight(c.BaseURL, "/")
	if base == "" || !strings.HasPrefix(url, "/") || strings.HasPrefix(url, "//") {
		return url
	}
	return base + url
}

// FormatDate formats t as a Catalan short date (d/m/yyyy) in t's own
// location. A nil date formats as "".
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year())
}

// FormatScore formats a relevance score with the fewest digits that
// represent it exactly.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
