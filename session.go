package eventchat

import (
	"time"

	"github.com/google/uuid"
)

// SessionTTL is how long a session may stay inactive before it expires.
const SessionTTL = 15 * 24 * time.Hour

// Message is one entry of the conversation history.
type Message struct {
	Role      Role
	Text      string
	Timestamp time.Time
}

// Session represents a conversation with the assistant.
type Session struct {
	ID        string
	Messages  []Message
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession creates an empty session with a random ID.
func NewSession(now time.Time) Session {
	return Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Expired reports whether the session has been inactive for SessionTTL or longer.
func (s Session) Expired(now time.Time) bool {
	return now.Sub(s.UpdatedAt) >= SessionTTL
}

// SessionStore persists sessions.
type SessionStore interface {
	Save(s Session) error
}
