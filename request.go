package eventchat

import (
	"fmt"
	"strings"
)

// Request is one user question sent to the assistant.
type Request struct {
	Message string
	// OnlyFuture restricts recommendations to events that have not happened yet.
	OnlyFuture bool
}

// Validate checks that the request carries a non-blank message.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("message must not be empty: %w", ErrValidation)
	}
	return nil
}
