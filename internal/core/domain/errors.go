package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotPostAuthor      = errors.New("not the post author")
)

// Violation is a single field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every violation detected on one request,
// in declaration order. It is produced before any write is attempted.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return "validation failed: " + e.Violations[0].Field + " " + e.Violations[0].Message
}

// NewValidationError builds a ValidationError from one violation.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Violations: []Violation{{Field: field, Message: message}}}
}
