package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Pipeline specific errors
	CodeInvocation        ErrorCode = "LLM_INVOCATION_ERROR"
	CodeParse             ErrorCode = "RESPONSE_PARSE_ERROR"
	CodeEmptyResult       ErrorCode = "EMPTY_RESULT"
	CodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	CodeExport            ErrorCode = "EXPORT_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}

// Helper functions for common errors

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

// NewInvocationError wraps a transport or service failure from the LLM.
func NewInvocationError(err error) *DomainError {
	return NewError(CodeInvocation, "LLM invocation failed", err)
}

// NewParseError wraps a malformed or schema-violating model response.
func NewParseError(message string, err error) *DomainError {
	return NewError(CodeParse, message, err)
}

// NewEmptyResultError signals that a run completed without producing a
// single flashcard. This is a distinguishable outcome, not a crash:
// every chunk was attempted.
func NewEmptyResultError() *DomainError {
	return NewError(CodeEmptyResult, "no flashcards were generated from the provided content", nil)
}

func NewUnsupportedFormatError(format string) *DomainError {
	return NewError(CodeUnsupportedFormat, fmt.Sprintf("unsupported format: %s", format), nil)
}

func NewExportError(message string, err error) *DomainError {
	return NewError(CodeExport, message, err)
}

// ValidationError represents a single field-level validation failure.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field-level failures so a request can
// report all of them at once.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msg := e[0].Error()
	if len(e) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(e)-1)
	}
	return msg
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid value %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("value %d must be between %d and %d", value, min, max)}
}
