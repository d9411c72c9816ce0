package errors

import (
	"errors"
	"fmt"
)

// NewValidationError wraps rejected entry text. The message is shown to
// the user as is.
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    CodeValidationFailed,
		Cause:   cause,
	}
}

// NewStorageError reports a failed read or write of the file at path
func NewStorageError(operation string, path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeStorage,
		Message: "storage operation failed: " + operation,
		Code:    CodeStorage,
		Cause:   cause,
		Context: map[string]any{"operation": operation, "path": path},
	}
}

// NewInvalidInputError reports a flag or argument value that cannot be used
func NewInvalidInputError(field string, value any, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    CodeInvalidInput,
		Context: map[string]any{"field": field, "value": value, "reason": reason},
	}
}

// NewParseError reports text that does not match a strict format. The
// message carries the offending text verbatim, e.g. `bad time: "xyzzy"`.
func NewParseError(what string, text string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("bad %s: %q", what, text),
		Code:    CodeParseFailed,
		Context: map[string]any{"field": what, "value": text},
	}
}

// NewPermissionError reports an operation the resource does not allow
func NewPermissionError(operation string, resource string) *AppError {
	return &AppError{
		Type:    ErrorTypePermission,
		Message: fmt.Sprintf("permission denied for %s on %s", operation, resource),
		Code:    CodePermission,
		Context: map[string]any{"operation": operation, "resource": resource},
	}
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether err's chain holds an AppError of errorType
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// GetUserMessage returns the text to show for err. Storage failures name
// the file instead of the low-level cause.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}
	if appErr.Type != ErrorTypeStorage {
		return appErr.Message
	}
	if path, ok := appErr.GetContext("path"); ok {
		return fmt.Sprintf("Could not access %v. Please check the file and try again.", path)
	}
	return "A storage error occurred. Please try again."
}

// GetErrorCode returns err's code, CodeUnknown for foreign errors
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return CodeUnknown
}

// ShouldLogError reports whether err is a fault worth logging rather
// than a user mistake
func ShouldLogError(err error) bool {
	return !IsErrorType(err, ErrorTypeValidation) && !IsErrorType(err, ErrorTypeInvalidInput)
}
