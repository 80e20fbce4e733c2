package idea

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the invariant violations the idea registry reports.
type ErrorCode string

const (
	ErrCodeDuplicate    ErrorCode = "DUPLICATE_ID"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
)

// DomainError represents a typed error enriched with contextual data while
// remaining free from infrastructure dependencies.
type DomainError struct {
	Code    ErrorCode
	Message string
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if id, ok := e.Context["id"]; ok {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, id)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches on error code so callers can compare against the sentinel
// values below.
func (e *DomainError) Is(target error) bool {
	var domainErr *DomainError
	if !errors.As(target, &domainErr) {
		return false
	}
	return e.Code == domainErr.Code
}

// Sentinels for errors.Is comparisons.
var (
	ErrDuplicate    = &DomainError{Code: ErrCodeDuplicate, Message: "duplicate identifier"}
	ErrNotFound     = &DomainError{Code: ErrCodeNotFound, Message: "idea not found"}
	ErrInvalidState = &DomainError{Code: ErrCodeInvalidState, Message: "invalid status transition"}
)

// NewDuplicateError reports an insert for an identifier already present.
func NewDuplicateError(id string) *DomainError {
	return &DomainError{Code: ErrCodeDuplicate, Message: "duplicate identifier", Context: map[string]interface{}{
		"id": id,
	}}
}

// NewNotFoundError reports an operation on an unknown identifier.
func NewNotFoundError(id string) *DomainError {
	return &DomainError{Code: ErrCodeNotFound, Message: "idea not found", Context: map[string]interface{}{
		"id": id,
	}}
}

// NewInvalidStateError reports a refused status transition.
func NewInvalidStateError(id string, from, to Status) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidState,
		Message: fmt.Sprintf("cannot move from %s to %s", from, to),
		Context: map[string]interface{}{
			"id":   id,
			"from": from,
			"to":   to,
		},
	}
}
