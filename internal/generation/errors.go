package generation

import (
	"context"
	"errors"
	"fmt"
)

const (
	// FallbackServerMessage is surfaced when a failed response carries no message
	FallbackServerMessage = "Failed to generate content"
	// FallbackMessage is surfaced when the request could not be completed
	FallbackMessage = "An unexpected error occurred. Please try again."
)

// ValidationKind identifies which form rule was violated
type ValidationKind string

const (
	KindMissingTopic    ValidationKind = "missing_topic"
	KindMissingPlatform ValidationKind = "missing_platform"
	KindInvalidPlatform ValidationKind = "invalid_platform"
	KindInvalidSchedule ValidationKind = "invalid_schedule"
	KindScheduleTooSoon ValidationKind = "schedule_too_soon"
)

// ValidationError is returned before any network activity when the form is incomplete
type ValidationError struct {
	Kind    ValidationKind
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError means the request could not be completed
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request was cut short by a deadline
func (e *TransportError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// ServerError means a response arrived but it indicates failure
type ServerError struct {
	StatusCode int
	Message    string // server-supplied, may be empty
	Err        error  // decoding or schema failure, if any
}

func (e *ServerError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = FallbackServerMessage
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (status %d): %v", msg, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

// UserMessage returns the text a notification should show for err
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var se *ServerError
	if errors.As(err, &se) {
		if se.Message != "" {
			return se.Message
		}
		return FallbackServerMessage
	}
	return FallbackMessage
}
