package eventchat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Assistant sends user questions and renders the streamed responses. It
// admits one send at a time: a send issued while another is streaming fails
// with ErrBusy instead of sharing the Display.
type Assistant struct {
	streamer Streamer
	display  Display
	session  *Session
	store    SessionStore
	logger   *slog.Logger
	now      func() time.Time

	mu   sync.Mutex
	busy bool
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assistant) { a.logger = l }
}

// WithSessionStore persists the session after every completed answer.
func WithSessionStore(s SessionStore) Option {
	return func(a *Assistant) { a.store = s }
}

// WithClock overrides time.Now for message timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Assistant) { a.now = now }
}

// NewAssistant creates an Assistant that streams through streamer, renders
// to display and records history in session.
func NewAssistant(streamer Streamer, display Display, session *Session, opts ...Option) *Assistant {
	a := &Assistant{
		streamer: streamer,
		display:  display,
		session:  session,
		logger:   discardLogger(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Busy reports whether a send is in flight.
func (a *Assistant) Busy() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.busy
}

// Send streams the answer to req onto the Display. It blocks until the
// stream completes or fails. On completion the question and the answer are
// appended to the session.
func (a *Assistant) Send(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	req.Message = strings.TrimSpace(req.Message)

	if !a.acquire() {
		return Result{}, ErrBusy
	}
	defer a.release()

	asked := a.now()
	log := a.logger.With("only_future", req.OnlyFuture)
	log.Info("sending question", "chars", len(req.Message))

	body, err := a.streamer.Stream(ctx, req)
	if err != nil {
		a.display.ShowFailure(FailureText)
		log.Error("stream request failed", "err", err)
		return Result{State: StateFailed}, fmt.Errorf("stream: %w", err)
	}
	defer body.Close()

	res, err := NewAssembler(a.display, WithAssemblerLogger(log)).Run(ctx, body)
	if err != nil {
		return res, err
	}

	a.record(req.Message, asked, res.Answer)
	return res, nil
}

func (a *Assistant) record(question string, asked time.Time, answer Answer) {
	if a.session == nil {
		return
	}
	answered := a.now()
	a.session.Messages = append(a.session.Messages,
		Message{Role: RoleUser, Text: question, Timestamp: asked},
		Message{Role: RoleAssistant, Text: answer.String(), Timestamp: answered},
	)
	a.session.UpdatedAt = answered
	if a.store == nil {
		return
	}
	if err := a.store.Save(*a.session); err != nil {
		a.logger.Warn("saving session", "id", a.session.ID, "err", err)
	}
}

func (a *Assistant) acquire() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.busy {
		return false
	}
	a.busy = true
	return true
}

func (a *Assistant) release() {
	a.mu.Lock()
	a.busy = false
	a.mu.Unlock()
}
