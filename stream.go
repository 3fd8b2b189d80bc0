package eventchat

import (
	"context"
	"io"
)

// State indicates where a stream is in its lifecycle.
type State int

const (
	StateIdle      State = iota // Before the stream starts.
	StateStreaming              // Frames are being consumed.
	StateCompleted              // Terminal marker seen or stream ended.
	StateFailed                 // Transport failed before completion.
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Streamer opens the assistant's event stream for a request. The caller
// closes the returned body. Connection failures and non-OK responses are
// returned as errors.
type Streamer interface {
	Stream(ctx context.Context, req Request) (io.ReadCloser, error)
}

// Replier answers a request in one round trip, without streaming.
type Replier interface {
	Reply(ctx context.Context, req Request) (Reply, error)
}

// Reply is the complete response of the non-streaming endpoint.
type Reply struct {
	Answer Answer
	Events []RankedEvent
}
