package errors

import (
	"fmt"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError reports missing or malformed user input. It is raised
// locally and never follows a network call.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TransportError represents a failed list or create call against the record
// store. StatusCode is zero when no HTTP response was received.
type TransportError struct {
	Operation  string
	StatusCode int
	Err        error
}

// NewTransportError constructs a TransportError for the named operation.
func NewTransportError(operation string, statusCode int, err error) error {
	return &TransportError{Operation: operation, StatusCode: statusCode, Err: err}
}

func (e *TransportError) Error() string {
	if e == nil {
		return ""
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error [%s]: status %d: %v", e.Operation, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("transport error [%s]: %v", e.Operation, e.Err)
}

// Unwrap exposes the underlying error.
func (e *TransportError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// EvaluationError represents a failed scoring request for a single idea.
type EvaluationError struct {
	IdeaID     string
	StatusCode int
	Err        error
}

// NewEvaluationError constructs an EvaluationError for the given idea.
func NewEvaluationError(ideaID string, statusCode int, err error) error {
	return &EvaluationError{IdeaID: ideaID, StatusCode: statusCode, Err: err}
}

func (e *EvaluationError) Error() string {
	if e == nil {
		return ""
	}
	if e.IdeaID != "" {
		return fmt.Sprintf("evaluation error on idea %s: %v", e.IdeaID, e.Err)
	}
	return fmt.Sprintf("evaluation error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *EvaluationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
