// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Handlers map these to HTTP
// statuses in utils/response.go; storage-driver errors never cross the
// service boundary unwrapped.
var (
	// ErrUnauthenticated covers missing, unparseable, or expired credentials.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden covers a valid credential with insufficient privilege,
	// including the wrong token kind presented to a resolver.
	ErrForbidden = errors.New("access denied")

	// ErrNotFound deliberately conflates "does not exist" and "exists but
	// is not yours". Ownership checks query by id AND owner in one filter,
	// so callers cannot probe for existence of other users' documents.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict covers duplicate unique keys: email on signup, a second
	// relief application for the same scheme.
	ErrConflict = errors.New("resource already exists")

	// ErrUpstreamUnavailable means a third-party fetch failed and no cached
	// entry existed to serve stale.
	ErrUpstreamUnavailable = errors.New("upstream service unavailable")
)

// ValidationError carries the first violated rule's human-readable
// message. Validation surfaces one error at a time, not an aggregate.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func Validationf(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
