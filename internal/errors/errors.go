package errors

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// APIError is the error shape every handler pushes onto the gin context.
// ErrorHandler renders Message and Details; Internal is only logged.
type APIError struct {
	Status   int               `json:"-"`
	Message  string            `json:"message"`
	Details  map[string]string `json:"details,omitempty"`
	Internal error             `json:"-"`
}

func (e *APIError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Internal
}

// WithDetail returns a copy of the error carrying one more detail entry
func (e *APIError) WithDetail(key, value string) *APIError {
	details := make(map[string]string, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details[key] = value
	return &APIError{
		Status:   e.Status,
		Message:  e.Message,
		Details:  details,
		Internal: e.Internal,
	}
}

func New(status int, message string, err error) *APIError {
	return &APIError{
		Status:   status,
		Message:  message,
		Internal: err,
	}
}

func BadRequest(message string, err error) *APIError {
	return New(http.StatusBadRequest, message, err)
}

func Unauthorized(message string, err error) *APIError {
	return New(http.StatusUnauthorized, message, err)
}

func Forbidden(message string, err error) *APIError {
	return New(http.StatusForbidden, message, err)
}

func NotFound(message string, err error) *APIError {
	return New(http.StatusNotFound, message, err)
}

func Conflict(message string, err error) *APIError {
	return New(http.StatusConflict, message, err)
}

func UnprocessableEntity(message string, err error) *APIError {
	return New(http.StatusUnprocessableEntity, message, err)
}

func BadGateway(message string, err error) *APIError {
	return New(http.StatusBadGateway, message, err)
}

func GatewayTimeout(message string, err error) *APIError {
	return New(http.StatusGatewayTimeout, message, err)
}

func Internal(err error) *APIError {
	return New(http.StatusInternalServerError, "Internal server error", err)
}

// NewValidationError turns binding errors into a 422 with one detail per
// offending field (field name -> failed tag).
func NewValidationError(err error) *APIError {
	apiErr := UnprocessableEntity("Validation failed", err)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apiErr
	}

	apiErr.Details = make(map[string]string, len(validationErrors))
	for _, ve := range validationErrors {
		apiErr.Details[ve.Field()] = ve.Tag()
	}
	return apiErr
}
