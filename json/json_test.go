package json_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/eventchat"
	ecjson "github.com/fwojciec/eventchat/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() eventchat.Session {
	created := time.Date(2026, 10, 18, 18, 0, 0, 0, time.UTC)
	return eventchat.Session{
		ID:        "9b1f4a8e-3c2d-4e5f-8a9b-0c1d2e3f4a5b",
		CreatedAt: created,
		UpdatedAt: created.Add(2 * time.Minute),
		Messages: []eventchat.Message{
			{Role: eventchat.RoleUser, Text: "Què puc fer dissabte?", Timestamp: created.Add(time.Minute)},
			{Role: eventchat.RoleAssistant, Text: "Hi ha un concert.\n\n💬 Vols més?", Timestamp: created.Add(2 * time.Minute)},
		},
	}
}

func TestMarshalSession_RoundTrip(t *testing.T) {
	t.Parallel()
	session := sampleSession()

	data, err := ecjson.MarshalSession(session)
	require.NoError(t, err)

	got, err := ecjson.UnmarshalSession(data)
	require.NoError(t, err)

	assert.Equal(t, session.ID, got.ID)
	assert.True(t, session.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, session.UpdatedAt.Equal(got.UpdatedAt))
	require.Len(t, got.Messages, 2)
	assert.Equal(t, eventchat.RoleUser, got.Messages[0].Role)
	assert.Equal(t, "Què puc fer dissabte?", got.Messages[0].Text)
	assert.Equal(t, eventchat.RoleAssistant, got.Messages[1].Role)
	assert.Equal(t, "Hi ha un concert.\n\n💬 Vols més?", got.Messages[1].Text)
	assert.True(t, session.Messages[1].Timestamp.Equal(got.Messages[1].Timestamp))
}

func TestMarshalSession_V1Envelope(t *testing.T) {
	t.Parallel()
	data, err := ecjson.MarshalSession(sampleSession())
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, "1", string(raw["version"]))
	for _, key := range []string{"id", "created_at", "updated_at", "messages"} {
		assert.Contains(t, raw, key)
	}

	var msgs []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["messages"], &msgs))
	require.Len(t, msgs, 2)
	assert.JSONEq(t, `"user"`, string(msgs[0]["role"]))
	assert.Contains(t, msgs[0], "text")
	assert.Contains(t, msgs[0], "timestamp")
}

func TestMarshalSession_EmptySession(t *testing.T) {
	t.Parallel()
	data, err := ecjson.MarshalSession(eventchat.Session{ID: "buit"})
	require.NoError(t, err)
	got, err := ecjson.UnmarshalSession(data)
	require.NoError(t, err)
	assert.Empty(t, got.Messages)
}

func TestMarshalSession_UnknownRole(t *testing.T) {
	t.Parallel()
	_, err := ecjson.MarshalSession(eventchat.Session{
		ID:       "x",
		Messages: []eventchat.Message{{Role: "system", Text: "?"}},
	})
	assert.ErrorContains(t, err, "unknown role")
}

func TestUnmarshalSession_Rejects(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"invalid json":        `{`,
		"unsupported version": `{"version": 2, "id": "x"}`,
		"missing id":          `{"version": 1}`,
		"unknown role":        `{"version": 1, "id": "x", "messages": [{"role": "bot", "text": "hi"}]}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := ecjson.UnmarshalSession([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestSave_And_Load(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	session := sampleSession()

	require.NoError(t, ecjson.Save(path, session))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	got, err := ecjson.Load(path)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	require.Len(t, got.Messages, 2)
}

func TestLoad_NonexistentFile(t *testing.T) {
	t.Parallel()
	_, err := ecjson.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
