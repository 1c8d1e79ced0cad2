// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Message source errors.
	ErrPermissionDenied  = errors.New("sms permission denied")
	ErrSourceUnavailable = errors.New("message source unavailable")

	// Database errors.
	ErrNotFound = errors.New("not found")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsFatalSourceError reports whether a message-source error should fail
// the whole batch rather than a single item.
func IsFatalSourceError(err error) bool {
	return errors.Is(err, ErrPermissionDenied) || errors.Is(err, ErrSourceUnavailable)
}
