package eventchat

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrBusy indicates a send was attempted while another stream is in flight.
	ErrBusy = errors.New("assistant busy: a response is still streaming")

	// ErrDecode indicates a frame payload could not be decoded.
	ErrDecode = errors.New("decode error")
)

// DecodeError describes a frame whose payload was malformed.
// It matches ErrDecode with errors.Is.
type DecodeError struct {
	Kind    string // frame kind, e.g. "events"
	Payload string // offending payload, without the frame prefix
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s frame: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecode.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }
