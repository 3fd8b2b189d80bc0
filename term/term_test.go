package term_test

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/eventchat"
	"github.com/fwojciec/eventchat/term"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.ANSI)
	os.Exit(m.Run())
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 20, 0, 0, 0, time.UTC)
	return &t
}

func TestFormatDate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", term.FormatDate(nil))
	assert.Equal(t, "7/11/2026", term.FormatDate(date(2026, time.November, 7)))
	assert.Equal(t, "31/1/2027", term.FormatDate(date(2027, time.January, 31)))
}

func TestFormatScore(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "0.82", term.FormatScore(0.82))
	assert.Equal(t, "1", term.FormatScore(1))
	assert.Equal(t, "0", term.FormatScore(0))
}

func TestCards_Render(t *testing.T) {
	t.Parallel()

	cards := term.Cards{Styles: term.NewStyles(eventchat.DefaultTheme()), BaseURL: "https://agenda.example/"}

	t.Run("empty list renders nothing", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", cards.Render(nil, 60))
		assert.Equal(t, "", cards.Render([]eventchat.RankedEvent{}, 60))
	})

	t.Run("title then one card per event in order", func(t *testing.T) {
		t.Parallel()
		out := stripANSI(cards.Render([]eventchat.RankedEvent{
			{Title: "Jazz al parc", URL: "/events/7/", Category: "Música", ScheduledDate: date(2026, time.November, 7), Score: 0.82},
			{Title: "Fira d'artesania", URL: "https://altre.example/f", Score: 0.4},
		}, 60))

		assert.True(t, strings.HasPrefix(out, eventchat.EventsTitle+"\n"))
		jazz := strings.Index(out, "Jazz al parc")
		fira := strings.Index(out, "Fira d'artesania")
		require.Positive(t, jazz)
		assert.Greater(t, fira, jazz)

		assert.Contains(t, out, "https://agenda.example/events/7/")
		assert.Contains(t, out, "https://altre.example/f")
		assert.Contains(t, out, "Música")
		assert.Contains(t, out, "7/11/2026")
		assert.Contains(t, out, "Rellevància: 0.82")
		assert.Contains(t, out, eventchat.NoCategoryText)
		assert.Contains(t, out, "Rellevància: 0.4")
	})

	t.Run("cards fit the width and long titles are truncated", func(t *testing.T) {
		t.Parallel()
		out := cards.Render([]eventchat.RankedEvent{{
			Title: "Cicle de concerts de música antiga a les esglésies del Barri Gòtic",
			URL:   "/events/1/",
			Score: 1,
		}}, 30)
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), 30, "%q", stripANSI(line))
		}
		assert.Contains(t, stripANSI(out), "…")
	})
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	theme := eventchat.DefaultTheme()

	t.Run("placeholder once then answer then events", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		d := term.NewDisplay(&buf, theme)
		d.ShowQuestion("on hi ha jazz?")
		d.ShowPlaceholder(eventchat.PlaceholderText)
		d.ShowEvents([]eventchat.RankedEvent{{Title: "Primer", URL: "/1/", Score: 0.1}})
		d.ShowPlaceholder(eventchat.PlaceholderText)
		d.ShowEvents([]eventchat.RankedEvent{{Title: "Jazz al parc", URL: "/7/", Score: 0.9}})
		d.ShowAnswer(eventchat.Answer{Text: "Dissabte.", FollowUp: "Més?"})

		out := stripANSI(buf.String())
		assert.Equal(t, 1, strings.Count(out, eventchat.PlaceholderText))
		assert.NotContains(t, out, "Primer")
		q := strings.Index(out, "> on hi ha jazz?")
		a := strings.Index(out, "Dissabte."+eventchat.FollowUpSeparator+"Més?")
		e := strings.Index(out, "Jazz al parc")
		assert.True(t, q >= 0 && q < a && a < e, "order: %q", out)
	})

	t.Run("cleared events print no section", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		d := term.NewDisplay(&buf, theme)
		d.ShowEvents([]eventchat.RankedEvent{{Title: "A", URL: "/a/", Score: 1}})
		d.ShowEvents(nil)
		d.ShowAnswer(eventchat.Answer{Text: "res"})
		assert.NotContains(t, buf.String(), eventchat.EventsTitle)
	})

	t.Run("failure keeps events rendered", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		d := term.NewDisplay(&buf, theme)
		d.ShowEvents([]eventchat.RankedEvent{{Title: "A", URL: "/a/", Score: 1}})
		d.ShowFailure(eventchat.FailureText)
		out := stripANSI(buf.String())
		assert.Contains(t, out, eventchat.FailureText)
		assert.Contains(t, out, eventchat.EventsTitle)
	})

	t.Run("erasable placeholder is cleared before the answer", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		d := term.NewDisplay(&buf, theme, term.WithErase(true))
		d.ShowPlaceholder(eventchat.PlaceholderText)
		d.ShowAnswer(eventchat.Answer{Text: "fet"})
		assert.Contains(t, buf.String(), "\x1b[2K\r")
		assert.True(t, strings.HasSuffix(buf.String(), "fet\n"))
	})

	t.Run("uses the answer renderer", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		d := term.NewDisplay(&buf, theme, term.WithAnswerRenderer(upper{}), term.WithWidth(40))
		d.ShowAnswer(eventchat.Answer{Text: "hola"})
		assert.Equal(t, "HOLA@40\n", buf.String())
	})
}

type upper struct{}

func (upper) Render(a eventchat.Answer, width int) string {
	return strings.ToUpper(a.Text) + "@" + strings.TrimSpace(term.FormatScore(float64(width)))
}
