package eventchat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const readSize = 4096

// Result is the outcome of one Assembler run.
type Result struct {
	State State
	// Answer is the rendered terminal result. Zero when the run failed.
	Answer Answer
	// Events is the last successfully rendered events list, nil if none arrived.
	Events []RankedEvent
	// Payload is the accumulated token payload the answer was parsed from.
	Payload string
	// Skipped holds decode errors for frames that were dropped.
	Skipped []error
}

// Assembler turns one event stream into renders on a Display: a placeholder
// while tokens arrive, events lists as they arrive, then exactly one answer,
// or a failure message when the transport fails.
//
// An Assembler is single-use and not safe for concurrent use.
type Assembler struct {
	display Display
	logger  *slog.Logger

	state   State
	frames  FrameBuffer
	payload strings.Builder
	result  Result
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithAssemblerLogger sets the logger for skipped frames and state changes.
func WithAssemblerLogger(l *slog.Logger) AssemblerOption {
	return func(a *Assembler) { a.logger = l }
}

// NewAssembler creates an Assembler that renders to display.
func NewAssembler(display Display, opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		display: display,
		logger:  discardLogger(),
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// State returns the current state.
func (a *Assembler) State() State { return a.state }

// Run consumes src until the terminal marker, end of stream, or a read
// error. Bytes after the terminal marker are never read. A read error
// renders FailureText and is returned wrapped; the Result is still valid.
func (a *Assembler) Run(ctx context.Context, src io.Reader) (Result, error) {
	if a.state != StateIdle {
		return a.result, fmt.Errorf("assembler: run in state %s", a.state)
	}
	a.state = StateStreaming

	r := transform.NewReader(src, unicode.UTF8.NewDecoder())
	buf := make([]byte, readSize)
	for {
		if err := ctx.Err(); err != nil {
			return a.fail(err)
		}
		n, err := r.Read(buf)
		if n > 0 {
			for _, raw := range a.frames.Push(string(buf[:n])) {
				if a.handle(raw) {
					return a.complete(), nil
				}
			}
		}
		if errors.Is(err, io.EOF) {
			if a.frames.Pending() != "" {
				a.logger.Debug("discarding unterminated frame", "bytes", len(a.frames.Pending()))
			}
			return a.complete(), nil
		}
		if err != nil {
			return a.fail(err)
		}
	}
}

// handle dispatches one complete frame and reports whether it was terminal.
func (a *Assembler) handle(raw string) bool {
	f, ok, err := ParseFrame(raw)
	if !ok {
		return false
	}
	if err != nil {
		a.logger.Warn("skipping frame", "err", err)
		a.result.Skipped = append(a.result.Skipped, err)
		return false
	}
	switch f := f.(type) {
	case DoneFrame:
		return true
	case EventsFrame:
		a.result.Events = f.Events
		a.display.ShowEvents(f.Events)
	case TokenFrame:
		a.payload.WriteString(f.Text)
		a.display.ShowPlaceholder(PlaceholderText)
	}
	return false
}

func (a *Assembler) complete() Result {
	a.state = StateCompleted
	a.result.State = a.state
	a.result.Payload = a.payload.String()
	a.result.Answer = ParseAnswer(a.result.Payload)
	a.display.ShowAnswer(a.result.Answer)
	a.logger.Debug("stream completed", "payload_bytes", len(a.result.Payload), "raw", a.result.Answer.Raw)
	return a.result
}

func (a *Assembler) fail(err error) (Result, error) {
	a.state = StateFailed
	a.result.State = a.state
	a.result.Payload = a.payload.String()
	a.display.ShowFailure(FailureText)
	a.logger.Error("stream failed", "err", err)
	return a.result, fmt.Errorf("read stream: %w", err)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
