package errors

import (
	"fmt"
)

// ErrorType classifies an AppError
type ErrorType int

const (
	// ErrorTypeValidation marks entry text the log refuses to store.
	ErrorTypeValidation ErrorType = iota
	// ErrorTypeInvalidInput marks malformed flags, dates and times.
	ErrorTypeInvalidInput
	// ErrorTypeStorage marks failures reading or writing the log, the
	// task list or command output.
	ErrorTypeStorage
	// ErrorTypePermission marks operations the target does not allow,
	// such as appending to an in-memory log.
	ErrorTypePermission
)

var errorTypeNames = map[ErrorType]string{
	ErrorTypeValidation:   "validation",
	ErrorTypeInvalidInput: "invalid_input",
	ErrorTypeStorage:      "storage",
	ErrorTypePermission:   "permission",
}

func (et ErrorType) String() string {
	if name, ok := errorTypeNames[et]; ok {
		return name
	}
	return "unknown"
}

// Error codes carried by AppError.Code
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeParseFailed      = "PARSE_FAILED"
	CodeStorage          = "STORAGE_ERROR"
	CodePermission       = "PERMISSION_DENIED"
	CodeUnknown          = "UNKNOWN_ERROR"
)

// AppError is the error every package returns for failures a user can
// act on. Context holds the offending field, value, path or operation.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Context map[string]any
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches any AppError with the same type and code, so errors.Is can
// test against a template such as NewParseError("", "").
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.Type == t.Type && e.Code == t.Code
}

// IsType reports whether the error is of the given type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// GetContext returns the context value stored under key
func (e *AppError) GetContext(key string) (any, bool) {
	value, ok := e.Context[key]
	return value, ok
}
