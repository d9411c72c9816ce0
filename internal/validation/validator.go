package validation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"timelog/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinMaxLength checks that s has at most max characters
func (v *Validator) IsWithinMaxLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

// IsValidEntryLength checks an entry against the configured maximum length
func (v *Validator) IsValidEntryLength(text string) bool {
	return v.IsWithinMaxLength(text, v.GetEntryMaxLength())
}

// IsSingleLine checks that s has no line breaks
func (v *Validator) IsSingleLine(s string) bool {
	return !strings.ContainsAny(s, "\r\n")
}

// HasControlCharacters checks for control characters other than tabs
func (v *Validator) HasControlCharacters(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return r != '\t' && unicode.IsControl(r)
	})
}

// IsValidDateRange checks that from is strictly before to
func (v *Validator) IsValidDateRange(from, to time.Time) bool {
	return from.Before(to)
}

// GetEntryMaxLength returns the configured maximum entry length or default
func (v *Validator) GetEntryMaxLength() int {
	if v.config != nil {
		return v.config.Validation.EntryMaxLength
	}
	return 500 // Default maximum
}
