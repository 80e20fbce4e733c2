package main

import (
	"errors"
	"fmt"

	apperrors "github.com/alexisbeaulieu97/ideavault/pkg/errors"
)

const connectionSuggestion = "Could not connect to server. Check that the API is running and that --api-url points at it."

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error {
	return e.cause
}

// suggestionFor picks advice matching the failure class.
func suggestionFor(err error, fallback string) string {
	var transportErr *apperrors.TransportError
	if errors.As(err, &transportErr) {
		return connectionSuggestion
	}
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		return "Please fill in both title and description."
	}
	return fallback
}
