package api

import (
	"errors"
	"fmt"
)

// Failure taxonomy for backend calls. Callers match with errors.Is; the
// concrete cause stays wrapped for logs.
var (
	// ErrUnavailable means no usable response arrived (connection refused,
	// timeout, or a 5xx).
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized is a 401: no valid session, or bad credentials.
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is a 403 on a role-scoped call.
	ErrForbidden = errors.New("permission denied")

	// ErrNotFound is a 404, e.g. a resource already deleted.
	ErrNotFound = errors.New("not found")
)

// ValidationError carries the backend's field-level message for a 4xx
// response that is none of the above.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// UserMessage maps any error from this package to a short human-readable
// string. Raw failures are never surfaced to the end user.
func UserMessage(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ve) && ve.Message != "":
		return ve.Message
	case errors.Is(err, ErrUnavailable):
		return "The server is unreachable. Please try again later."
	case errors.Is(err, ErrUnauthorized):
		return "Please log in to continue."
	case errors.Is(err, ErrForbidden):
		return "You do not have permission to do that."
	case errors.Is(err, ErrNotFound):
		return "That item no longer exists."
	default:
		return "Something went wrong. Please try again."
	}
}
