// Package api implements [eventchat.Streamer] and [eventchat.Replier] over the
// event site's assistant HTTP endpoints.
//
// The streaming endpoint answers with Server-Sent Events. The body is handed
// to the caller unread; framing and decoding happen in [eventchat.Assembler].
package api

import "encoding/json"

const (
	defaultBaseURL = "http://localhost:8000"
	streamPath     = "/assistant/api/stream/"
	chatPath       = "/assistant/api/chat/"
)

type apiRequest struct {
	Message    string `json:"message"`
	OnlyFuture bool   `json:"only_future"`
}

// apiReply is the body of a non-streaming chat response. Events keep their raw
// form so they go through the same decoder as streamed EVENTS frames.
type apiReply struct {
	Answer   string          `json:"answer"`
	FollowUp string          `json:"follow_up"`
	Events   json.RawMessage `json:"events"`
}

type apiErrorResponse struct {
	Error string `json:"error"`
}
