package cli

import (
	stderrors "errors"
	"fmt"

	"timelog/internal/errors"
	"timelog/internal/validation"
)

// ErrorHandler turns errors from the time log and services into the
// messages commands return to the user
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user-facing message of err with "failed to <operation>".
// Application errors stay reachable through errors.As so that callers can
// still decide whether to log them.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	var validationErr *validation.ValidationError
	if stderrors.As(err, &validationErr) {
		return fmt.Errorf("failed to %s: %s", operation, validationErr.GetUserFriendlyMessage())
	}

	if appErr, ok := errors.AsAppError(err); ok {
		return &handledError{
			message: fmt.Sprintf("failed to %s: %s", operation, errors.GetUserMessage(err)),
			cause:   appErr,
		}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// handledError carries the user message while keeping the AppError
// reachable through errors.As.
type handledError struct {
	message string
	cause   *errors.AppError
}

func (e *handledError) Error() string {
	return e.message
}

func (e *handledError) Unwrap() error {
	return e.cause
}
