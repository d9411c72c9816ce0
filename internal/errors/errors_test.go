package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNewValidationError(t *testing.T) {
	cause := errors.New("entry is required")
	err := NewValidationError("validation failed", cause)

	if err.Type != ErrorTypeValidation {
		t.Errorf("NewValidationError type = %v, want %v", err.Type, ErrorTypeValidation)
	}
	if err.Message != "validation failed" {
		t.Errorf("NewValidationError message = %v, want %v", err.Message, "validation failed")
	}
	if err.Code != "VALIDATION_FAILED" {
		t.Errorf("NewValidationError code = %v, want %v", err.Code, "VALIDATION_FAILED")
	}
	if err.Cause != cause {
		t.Errorf("NewValidationError cause = %v, want %v", err.Cause, cause)
	}
}

func TestNewStorageError(t *testing.T) {
	cause := errors.New("read-only file system")
	err := NewStorageError("append entry", "/tmp/timelog.txt", cause)

	if err.Type != ErrorTypeStorage {
		t.Errorf("NewStorageError type = %v, want %v", err.Type, ErrorTypeStorage)
	}
	if err.Message != "storage operation failed: append entry" {
		t.Errorf("NewStorageError message = %v", err.Message)
	}
	if err.Code != "STORAGE_ERROR" {
		t.Errorf("NewStorageError code = %v", err.Code)
	}
	path, ok := err.GetContext("path")
	if !ok || path != "/tmp/timelog.txt" {
		t.Errorf("NewStorageError should set path context")
	}
}

func TestNewParseError(t *testing.T) {
	tests := []struct {
		what     string
		text     string
		expected string
	}{
		{"date time", "xyzzy", `bad date time: "xyzzy"`},
		{"date time", "YYYY-MM-DD HH:MM", `bad date time: "YYYY-MM-DD HH:MM"`},
		{"time", "25:00", `bad time: "25:00"`},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			err := NewParseError(tt.what, tt.text)
			if err.Message != tt.expected {
				t.Errorf("NewParseError message = %v, want %v", err.Message, tt.expected)
			}
			if err.Type != ErrorTypeInvalidInput {
				t.Errorf("NewParseError type = %v", err.Type)
			}
			value, _ := err.GetContext("value")
			if value != tt.text {
				t.Errorf("NewParseError value context = %v, want %v", value, tt.text)
			}
		})
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := NewInvalidInputError("period", "fortnight", "unsupported period")

	if err.Message != "invalid input for period: unsupported period" {
		t.Errorf("NewInvalidInputError message = %v", err.Message)
	}
	if err.Code != "INVALID_INPUT" {
		t.Errorf("NewInvalidInputError code = %v", err.Code)
	}
	if value, _ := err.GetContext("value"); value != "fortnight" {
		t.Errorf("NewInvalidInputError value context = %v", value)
	}
}

func TestNewPermissionError(t *testing.T) {
	err := NewPermissionError("append", "in-memory log")

	if err.Type != ErrorTypePermission {
		t.Errorf("NewPermissionError type = %v", err.Type)
	}
	if err.Message != "permission denied for append on in-memory log" {
		t.Errorf("NewPermissionError message = %v", err.Message)
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewParseError("time", "xx"))

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("AsAppError should unwrap to the AppError")
	}
	if appErr.Code != "PARSE_FAILED" {
		t.Errorf("AsAppError code = %v", appErr.Code)
	}

	if _, ok := AsAppError(errors.New("plain")); ok {
		t.Error("AsAppError should reject plain errors")
	}
	if !IsErrorType(wrapped, ErrorTypeInvalidInput) {
		t.Error("IsErrorType should match the wrapped type")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"parse error", NewParseError("time", "xyzzy"), `bad time: "xyzzy"`},
		{"validation", NewValidationError("entry is required", nil), "entry is required"},
		{"permission", NewPermissionError("append", "in-memory log"), "permission denied for append on in-memory log"},
		{"storage", NewStorageError("append entry", "/x/timelog.txt", errors.New("eio")), "Could not access /x/timelog.txt. Please check the file and try again."},
		{"storage without path", &AppError{Type: ErrorTypeStorage}, "A storage error occurred. Please try again."},
		{"plain", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.expected {
				t.Errorf("GetUserMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := GetErrorCode(NewPermissionError("append", "log")); code != CodePermission {
		t.Errorf("GetErrorCode() = %v", code)
	}
	if code := GetErrorCode(errors.New("x")); code != CodeUnknown {
		t.Errorf("GetErrorCode() = %v", code)
	}
}

func TestShouldLogError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"validation", NewValidationError("x", nil), false},
		{"invalid input", NewParseError("time", "x"), false},
		{"storage", NewStorageError("read", "p", nil), true},
		{"permission", NewPermissionError("append", "log"), true},
		{"plain", errors.New("x"), true},
		{"wrapped invalid input", fmt.Errorf("report: %w", NewInvalidInputError("style", "x", "bad")), false},
		{"wrapped storage", fmt.Errorf("report: %w", NewStorageError("write report", "output", nil)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldLogError(tt.err); got != tt.expected {
				t.Errorf("ShouldLogError() = %v, want %v", got, tt.expected)
			}
		})
	}
}
