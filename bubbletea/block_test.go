package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/eventchat"
	bt "github.com/fwojciec/eventchat/bubbletea"
	"github.com/fwojciec/eventchat/term"
	"github.com/stretchr/testify/assert"
)

type countingRenderer struct {
	calls int
}

func (r *countingRenderer) Render(a eventchat.Answer, width int) string {
	r.calls++
	return strings.ToUpper(a.String())
}

func TestUserMessageBlock_View(t *testing.T) {
	t.Parallel()
	b := bt.NewUserMessageBlock("on hi ha teatre?", term.NewStyles(eventchat.DefaultTheme()))
	assert.Contains(t, stripANSI(b.View(40)), "> on hi ha teatre?")
}

func TestAssistantBlock_View(t *testing.T) {
	t.Parallel()

	styles := term.NewStyles(eventchat.DefaultTheme())

	t.Run("empty renders nothing", func(t *testing.T) {
		t.Parallel()
		b := bt.NewAssistantBlock(&countingRenderer{}, styles)
		assert.Equal(t, "", b.View(40))
	})

	t.Run("each render replaces the previous one", func(t *testing.T) {
		t.Parallel()
		b := bt.NewAssistantBlock(&countingRenderer{}, styles)

		b.SetPlaceholder(eventchat.PlaceholderText)
		assert.Contains(t, b.View(80), eventchat.PlaceholderText)

		b.SetAnswer(eventchat.Answer{Text: "fet", FollowUp: "i ara?"})
		view := b.View(80)
		assert.NotContains(t, view, eventchat.PlaceholderText)
		assert.Equal(t, "FET"+eventchat.FollowUpSeparator+"I ARA?", view)

		b.SetFailure(eventchat.FailureText)
		view = b.View(80)
		assert.Contains(t, view, eventchat.FailureText)
		assert.NotContains(t, view, "FET")
	})

	t.Run("answer render is cached per width", func(t *testing.T) {
		t.Parallel()
		r := &countingRenderer{}
		b := bt.NewAssistantBlock(r, styles)
		b.SetAnswer(eventchat.Answer{Text: "hola"})
		b.View(40)
		b.View(40)
		b.View(60)
		assert.Equal(t, 2, r.calls)

		b.SetAnswer(eventchat.Answer{Text: "adéu"})
		assert.Equal(t, "ADÉU", b.View(40))
		assert.Equal(t, 3, r.calls)
	})
}
