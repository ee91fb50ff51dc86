package model

import "github.com/pkg/errors"

var (
	ErrSiteNotFound = errors.New("site not found")
	ErrSiteConflict = errors.New("site id already exists")
	ErrUnavailable  = errors.New("upstream unavailable")
)

// ValidationError reports a missing or malformed request field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
