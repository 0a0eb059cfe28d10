package pipeline

import (
	"fmt"
	"lexdraft/internal/errors"
	"lexdraft/internal/generation"
)

type Kind string

const (
	KindUnauthenticated     Kind = "unauthenticated"
	KindBusy                Kind = "busy"
	KindTemplateUnavailable Kind = "template_unavailable"
	KindValidationFailed    Kind = "validation_failed"
	KindGenerationFailed    Kind = "generation_failed"
	KindPersistenceFailed   Kind = "persistence_failed"
)

// Error is every failure Submit can return. Field is set for
// KindValidationFailed only.
type Error struct {
	Kind  Kind
	Field string
	Err   error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// APIError maps the failure onto the HTTP error the handlers render
func (e *Error) APIError() *errors.APIError {
	switch e.Kind {
	case KindUnauthenticated:
		return errors.Unauthorized("Sign in to create documents", e.Err)
	case KindBusy:
		return errors.Conflict("A document for this template is already being generated", e.Err)
	case KindTemplateUnavailable:
		return errors.NotFound("Template not found", e.Err)
	case KindValidationFailed:
		return errors.UnprocessableEntity("Please fill in all required fields", e.Err).
			WithDetail("field", e.Field)
	case KindGenerationFailed:
		if generation.IsKind(e.Err, generation.KindTimeout) {
			return errors.GatewayTimeout("Document generation timed out", e.Err)
		}
		return errors.BadGateway("Failed to generate document", e.Err)
	default:
		return errors.Internal(e)
	}
}
