package service

import (
	"errors"
	"strings"

	"github.com/greenhouse-iot/telemetry-api/models"
)

// Sentinel errors returned by the credential check. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrMissingBearerToken is returned when the Authorization header is
	// absent, empty, or does not carry the Bearer scheme. Maps to HTTP 401.
	ErrMissingBearerToken = errors.New("Missing Bearer token")

	// ErrInvalidToken is returned when a Bearer token is present but does
	// not match the configured secret. Maps to HTTP 403.
	ErrInvalidToken = errors.New("Invalid token")
)

// ValidationError carries one entry per invalid request field. It maps to
// HTTP 422 with a field-level error list in the response body.
type ValidationError struct {
	Fields []models.FieldError
}

// Error implements the error interface by joining the per-field messages.
func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, strings.Join(f.Loc, ".")+": "+f.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// add appends a field error located at the given request section
// ("body" or "query") and field name.
func (e *ValidationError) add(section, field, msg string) {
	e.Fields = append(e.Fields, models.FieldError{
		Loc: []string{section, field},
		Msg: msg,
	})
}

// orNil returns the error when at least one field failed, nil otherwise.
// Returning a typed nil through the error interface would always compare
// non-nil, hence the explicit conversion point.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
