package odoo

import "fmt"

// ValidationError reports a malformed request parameter. It is always raised
// before any remote call is made for that parameter.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %q (%s)", e.Field, e.Value, e.Reason)
}

// NewValidationError builds a ValidationError for the given field and raw value.
func NewValidationError(field, value, reason string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// RemoteCallError wraps a failure surfaced by the Odoo backend. Calls are never
// retried and the underlying message is surfaced unchanged.
type RemoteCallError struct {
	Model  string
	Method string
	Err    error
}

func (e *RemoteCallError) Error() string {
	return e.Err.Error()
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}
