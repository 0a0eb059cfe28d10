package generation

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindTimeout         ErrorKind = "timeout"
	KindInvalidResponse ErrorKind = "invalid_response"
	KindProviderError   ErrorKind = "provider_error"
)

// Error is every failure Generate can return
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("generation %s: %s", e.Kind, e.Msg)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a generation Error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var genErr *Error
	return errors.As(err, &genErr) && genErr.Kind == kind
}

func timeoutError(msg string, err error) *Error {
	return &Error{Kind: KindTimeout, Msg: msg, Err: err}
}

func invalidResponse(msg string) *Error {
	return &Error{Kind: KindInvalidResponse, Msg: msg}
}

func providerError(msg string, err error) *Error {
	return &Error{Kind: KindProviderError, Msg: msg, Err: err}
}
