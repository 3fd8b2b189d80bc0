// Package mock provides test doubles for eventchat interfaces using function fields.
package mock

import (
	"context"
	"io"

	"github.com/fwojciec/eventchat"
)

// Interface compliance checks.
var (
	_ eventchat.Streamer = (*Streamer)(nil)
	_ eventchat.Replier  = (*Replier)(nil)
)

// Streamer is a test double for eventchat.Streamer.
// Set StreamFn before calling Stream.
type Streamer struct {
	StreamFn func(ctx context.Context, req eventchat.Request) (io.ReadCloser, error)
}

// Stream delegates to StreamFn.
func (s *Streamer) Stream(ctx context.Context, req eventchat.Request) (io.ReadCloser, error) {
	return s.StreamFn(ctx, req)
}

// Replier is a test double for eventchat.Replier.
// Set ReplyFn before calling Reply.
type Replier struct {
	ReplyFn func(ctx context.Context, req eventchat.Request) (eventchat.Reply, error)
}

// Reply delegates to ReplyFn.
func (r *Replier) Reply(ctx context.Context, req eventchat.Request) (eventchat.Reply, error) {
	return r.ReplyFn(ctx, req)
}
