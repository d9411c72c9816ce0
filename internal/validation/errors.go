package validation

import (
	"fmt"
	"strings"

	apperrors "timelog/internal/errors"
)

// ValidationErrorType names the rule a field broke
type ValidationErrorType string

const (
	ErrorTypeRequired         ValidationErrorType = "required"
	ErrorTypeInvalidLength    ValidationErrorType = "invalid_length"
	ErrorTypeInvalidRange     ValidationErrorType = "invalid_range"
	ErrorTypeInvalidCharacter ValidationErrorType = "invalid_character"
)

// FieldError is one broken rule
type FieldError struct {
	Field   string
	Type    ValidationErrorType
	Message string
	Value   any
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", fe.Field, fe.Message)
}

// ValidationError collects every problem found in one piece of input
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError returns an empty collection
func NewValidationError() *ValidationError {
	return &ValidationError{}
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation error"
	case 1:
		return ve.Errors[0].Error()
	}

	messages := make([]string, len(ve.Errors))
	for i := range ve.Errors {
		messages[i] = ve.Errors[i].Error()
	}
	return "multiple validation errors: " + strings.Join(messages, "; ")
}

// HasErrors reports whether any rule was broken
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

func (ve *ValidationError) add(field string, errorType ValidationErrorType, message string, value any) {
	ve.Errors = append(ve.Errors, FieldError{Field: field, Type: errorType, Message: message, Value: value})
}

// AddRequiredError records a missing field
func (ve *ValidationError) AddRequiredError(field string) {
	ve.add(field, ErrorTypeRequired, field+" is required", nil)
}

// AddMaxLengthError records text longer than max characters
func (ve *ValidationError) AddMaxLengthError(field string, value any, max int) {
	ve.add(field, ErrorTypeInvalidLength, fmt.Sprintf("%s must be at most %d characters long", field, max), value)
}

// AddInvalidRangeError records a range whose bounds are out of order
func (ve *ValidationError) AddInvalidRangeError(field string, value any, reason string) {
	ve.add(field, ErrorTypeInvalidRange, fmt.Sprintf("%s has invalid range: %s", field, reason), value)
}

// AddInvalidCharacterError records characters a log line cannot hold
func (ve *ValidationError) AddInvalidCharacterError(field string, value any, what string) {
	ve.add(field, ErrorTypeInvalidCharacter, fmt.Sprintf("%s must not contain %s", field, what), value)
}

// GetUserFriendlyMessage returns the message for one error, or a bullet
// list for several
func (ve *ValidationError) GetUserFriendlyMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}

	var b strings.Builder
	b.WriteString("Multiple validation errors occurred:")
	for _, err := range ve.Errors {
		b.WriteString("\n- ")
		b.WriteString(err.Message)
	}
	return b.String()
}

// AsAppError converts the collected errors into an application error
// carrying the user-friendly message.
func (ve *ValidationError) AsAppError() *apperrors.AppError {
	return apperrors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
}
