package eventchat_test

import (
	"testing"

	"github.com/fwojciec/eventchat"
	"github.com/stretchr/testify/assert"
)

func TestRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid message", func(t *testing.T) {
		t.Parallel()
		r := eventchat.Request{Message: "vull un concert de jazz", OnlyFuture: true}
		assert.NoError(t, r.Validate())
	})

	t.Run("blank message", func(t *testing.T) {
		t.Parallel()
		for _, msg := range []string{"", "   ", "\n\t"} {
			err := eventchat.Request{Message: msg}.Validate()
			assert.ErrorIs(t, err, eventchat.ErrValidation, "%q", msg)
		}
	})
}
