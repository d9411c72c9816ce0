package validation

import (
	"strings"
	"time"

	"timelog/internal/config"
)

const entryField = "entry"

// EntryValidator checks text before it is written to the time log
type EntryValidator struct {
	validator *Validator
}

// NewEntryValidator creates a new entry validator
func NewEntryValidator() *EntryValidator {
	return &EntryValidator{
		validator: NewValidator(),
	}
}

// NewEntryValidatorWithConfig creates an entry validator using configured limits
func NewEntryValidatorWithConfig(cfg *config.Config) *EntryValidator {
	return &EntryValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateEntryText validates the text of a new log entry. A log line is
// a single line, so line breaks and control characters are rejected.
func (ev *EntryValidator) ValidateEntryText(text string) error {
	validationError := NewValidationError()

	if !ev.validator.IsNonEmptyString(text) {
		validationError.AddRequiredError(entryField)
		return validationError
	}

	if !ev.validator.IsSingleLine(text) {
		validationError.AddInvalidCharacterError(entryField, text, "line breaks")
	} else if ev.validator.HasControlCharacters(text) {
		validationError.AddInvalidCharacterError(entryField, text, "control characters")
	}

	if !ev.validator.IsValidEntryLength(strings.TrimSpace(text)) {
		validationError.AddMaxLengthError(entryField, text, ev.validator.GetEntryMaxLength())
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateDateRange validates a custom report range [from, to)
func (ev *EntryValidator) ValidateDateRange(from, to time.Time) error {
	if ev.validator.IsValidDateRange(from, to) {
		return nil
	}
	validationError := NewValidationError()
	validationError.AddInvalidRangeError("date range", to, "end date must be after start date")
	return validationError
}
