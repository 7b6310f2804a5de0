package shopify

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusInvalidInput is the diagnostic status used for inputs rejected before
// any network call, such as an unsupported identifier kind or entity type.
const StatusInvalidInput = 460

// StatusError is a failure with a diagnostic status code. Resolution and
// reconciliation calls return it so callers can branch on the status instead
// of parsing messages.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

func statusErrorf(status int, format string, args ...interface{}) *StatusError {
	return &StatusError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// StatusOf returns the diagnostic status carried by err, or 0 for untyped errors.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsNotModified reports whether err signals that the requested mutation
// matched the current remote state. Callers treat it as success with no work
// done, not as a failure.
func IsNotModified(err error) bool {
	return StatusOf(err) == http.StatusNotModified
}

func IsInvalidInput(err error) bool {
	return StatusOf(err) == StatusInvalidInput
}
