// Package json persists eventchat sessions as JSON files.
package json

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/eventchat"
)

// envelope is the v1 wire format for a persisted session.
type envelope struct {
	Version   int          `json:"version"`
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Messages  []messageDTO `json:"messages"`
}

type messageDTO struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalSession serializes a Session to JSON in v1 envelope format.
func MarshalSession(s eventchat.Session) ([]byte, error) {
	env := envelope{
		Version:   1,
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Messages:  make([]messageDTO, len(s.Messages)),
	}
	for i, msg := range s.Messages {
		if err := validRole(msg.Role); err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		env.Messages[i] = messageDTO{Role: string(msg.Role), Text: msg.Text, Timestamp: msg.Timestamp}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalSession deserializes a Session from JSON in v1 envelope format.
func UnmarshalSession(data []byte) (eventchat.Session, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return eventchat.Session{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != 1 {
		return eventchat.Session{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	if env.ID == "" {
		return eventchat.Session{}, errors.New("missing session id")
	}
	msgs := make([]eventchat.Message, len(env.Messages))
	for i, dto := range env.Messages {
		role := eventchat.Role(dto.Role)
		if err := validRole(role); err != nil {
			return eventchat.Session{}, fmt.Errorf("message %d: %w", i, err)
		}
		msgs[i] = eventchat.Message{Role: role, Text: dto.Text, Timestamp: dto.Timestamp}
	}
	return eventchat.Session{
		ID:        env.ID,
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
		Messages:  msgs,
	}, nil
}

func validRole(r eventchat.Role) error {
	switch r {
	case eventchat.RoleUser, eventchat.RoleAssistant:
		return nil
	default:
		return fmt.Errorf("unknown role %q", r)
	}
}

// Save writes a Session to a JSON file, creating parent directories as needed.
func Save(path string, s eventchat.Session) error {
	data, err := MarshalSession(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Session from a JSON file.
func Load(path string) (eventchat.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return eventchat.Session{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalSession(data)
}
