package eventchat_test

import (
	"testing"

	"github.com/fwojciec/eventchat"
	"github.com/stretchr/testify/assert"
)

func TestParseAnswer(t *testing.T) {
	t.Parallel()

	t.Run("answer with follow-up", func(t *testing.T) {
		t.Parallel()
		a := eventchat.ParseAnswer(`{"answer":"Hi","follow_up":"more?"}`)
		assert.Equal(t, eventchat.Answer{Text: "Hi", FollowUp: "more?"}, a)
		assert.Equal(t, "Hi"+eventchat.FollowUpSeparator+"more?", a.String())
	})

	t.Run("answer without follow-up", func(t *testing.T) {
		t.Parallel()
		a := eventchat.ParseAnswer(`{"answer":"Hi","recommended_ids":[1,2],"follow_up":""}`)
		assert.Equal(t, "Hi", a.String())
		assert.False(t, a.Raw)
	})

	t.Run("invalid payload falls back to raw text", func(t *testing.T) {
		t.Parallel()
		a := eventchat.ParseAnswer("not json")
		assert.True(t, a.Raw)
		assert.Equal(t, "not json", a.String())
	})

	t.Run("trailing garbage falls back to raw text", func(t *testing.T) {
		t.Parallel()
		payload := `{"answer":"Hi"} and more`
		assert.Equal(t, payload, eventchat.ParseAnswer(payload).String())
	})

	t.Run("trailing JSON after the object falls back to raw text", func(t *testing.T) {
		t.Parallel()
		for _, payload := range []string{`{"answer":"Hi"}}`, `{"answer":"Hi"}]`, `{"answer":"Hi"}{"answer":"Bye"}`} {
			a := eventchat.ParseAnswer(payload)
			assert.True(t, a.Raw, payload)
			assert.Equal(t, payload, a.String(), payload)
		}
	})

	t.Run("keys match case-sensitively", func(t *testing.T) {
		t.Parallel()
		a := eventchat.ParseAnswer(`{"ANSWER":"Hi"}`)
		assert.True(t, a.Raw)
		assert.Equal(t, `{"ANSWER":"Hi"}`, a.String())

		a = eventchat.ParseAnswer(`{"Follow_Up":"x","answer":"Hi"}`)
		assert.Equal(t, eventchat.Answer{Text: "Hi"}, a)
	})

	t.Run("non-string fields fall back to raw text", func(t *testing.T) {
		t.Parallel()
		for _, payload := range []string{`{"answer":42}`, `{"answer":"Hi","follow_up":[1]}`} {
			assert.Equal(t, eventchat.Answer{Text: payload, Raw: true}, eventchat.ParseAnswer(payload), payload)
		}
	})

	t.Run("null follow-up is treated as absent", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, eventchat.Answer{Text: "Hi"}, eventchat.ParseAnswer(`{"answer":"Hi","follow_up":null}`))
	})

	t.Run("non-object JSON falls back to raw text", func(t *testing.T) {
		t.Parallel()
		for _, payload := range []string{`"Hi"`, `42`, `[1]`, `null`} {
			assert.Equal(t, payload, eventchat.ParseAnswer(payload).String(), payload)
		}
	})

	t.Run("missing answer shows payload and keeps follow-up", func(t *testing.T) {
		t.Parallel()
		payload := `{"follow_up":"which day?"}`
		a := eventchat.ParseAnswer(payload)
		assert.Equal(t, payload+eventchat.FollowUpSeparator+"which day?", a.String())
	})

	t.Run("surrounding whitespace is tolerated", func(t *testing.T) {
		t.Parallel()
		a := eventchat.ParseAnswer("\n  {\"answer\": \"Bon dia\"}\n")
		assert.Equal(t, "Bon dia", a.String())
	})

	t.Run("empty payload", func(t *testing.T) {
		t.Parallel()
		a := eventchat.ParseAnswer("")
		assert.True(t, a.Raw)
		assert.Empty(t, a.String())
	})
}
