package eventchat

import "strings"

// Wire protocol constants.
const (
	// FrameDelimiter separates frames in the stream.
	FrameDelimiter = "\n\n"
	// DataPrefix starts every actionable frame.
	DataPrefix = "data: "
	// DoneMarker is the terminal frame payload.
	DoneMarker = "[DONE]"
	// EventsPrefix starts a side-channel frame carrying ranked events.
	EventsPrefix = "EVENTS:"
)

// Frame is a sealed interface representing one decoded stream frame.
// The unexported marker method prevents external implementations.
type Frame interface {
	frame()
}

// TokenFrame carries an incremental piece of the accumulated payload.
// Text has literal `\n` escapes already replaced with real newlines.
type TokenFrame struct {
	Text string
}

func (TokenFrame) frame() {}

// EventsFrame carries the ranked events side-channel payload.
type EventsFrame struct {
	Events []RankedEvent
}

func (EventsFrame) frame() {}

// DoneFrame signals that no more content follows.
type DoneFrame struct{}

func (DoneFrame) frame() {}

// Interface compliance checks.
var (
	_ Frame = TokenFrame{}
	_ Frame = EventsFrame{}
	_ Frame = DoneFrame{}
)

// ParseFrame decodes a complete raw frame (delimiter already removed).
//
// ok is false when the frame lacks DataPrefix; such frames are ignored by
// the protocol and are not an error. A malformed events payload returns a
// *DecodeError.
func ParseFrame(raw string) (f Frame, ok bool, err error) {
	data, ok := strings.CutPrefix(raw, DataPrefix)
	if !ok {
		return nil, false, nil
	}
	switch {
	case data == DoneMarker:
		return DoneFrame{}, true, nil
	case strings.HasPrefix(data, EventsPrefix):
		body := strings.TrimPrefix(data, EventsPrefix)
		events, err := DecodeEvents([]byte(body))
		if err != nil {
			return nil, true, &DecodeError{Kind: "events", Payload: body, Err: err}
		}
		return EventsFrame{Events: events}, true, nil
	default:
		return TokenFrame{Text: unescapeToken(data)}, true, nil
	}
}

// unescapeToken turns the two-character sequence `\n` into a newline. The
// server escapes newlines so they cannot collide with the frame delimiter.
func unescapeToken(s string) string {
	return strings.ReplaceAll(s, `\n`, "\n")
}

// FrameBuffer reassembles frames from arbitrarily split text. It holds at
// most one incomplete trailing fragment between pushes.
type FrameBuffer struct {
	pending string
}

// Push appends text and returns the frames completed by it, in order. The
// trailing fragment after the last delimiter stays buffered.
func (b *FrameBuffer) Push(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(b.pending+text, FrameDelimiter)
	b.pending = parts[len(parts)-1]
	return parts[:len(parts)-1]
}

// Pending returns the buffered incomplete fragment.
func (b *FrameBuffer) Pending() string {
	return b.pending
}
