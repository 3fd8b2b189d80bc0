package mock

import "github.com/fwojciec/eventchat"

// Interface compliance check.
var _ eventchat.SessionStore = (*SessionStore)(nil)

// SessionStore is a test double for eventchat.SessionStore.
// Set SaveFn before calling Save.
type SessionStore struct {
	SaveFn func(s eventchat.Session) error
}

// Save delegates to SaveFn.
func (s *SessionStore) Save(sess eventchat.Session) error {
	return s.SaveFn(sess)
}
