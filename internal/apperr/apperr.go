package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInput            // sin archivo o tabla ilegible
	KindRateLimited      // 429
	KindExhaustedRetries // 429 tras todos los reintentos
	KindUpstream
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input_error"
	case KindRateLimited:
		return "rate_limited"
	case KindExhaustedRetries:
		return "exhausted_retries"
	case KindUpstream:
		return "upstream_fault"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Msg is safe to return to clients; Err may not be.
type Error struct {
	Kind   Kind
	Msg    string
	Status int // upstream HTTP status, 0 when not applicable
	Err    error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status %d)", e.Msg, e.Status)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func WithStatus(kind Kind, msg string, status int, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Status: status, Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Is(err error, k Kind) bool { return err != nil && KindOf(err) == k }
