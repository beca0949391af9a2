package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two identity-related outcomes a caller can recover
// from. Compared with errors.Is throughout.
var (
	// ErrDuplicateCode is returned when a create targets a code that already
	// exists. The existing row is never silently overwritten.
	ErrDuplicateCode = errors.New("a product with this code already exists")

	// ErrProductNotFound is returned when an update, delete or lookup targets
	// a code with no row behind it.
	ErrProductNotFound = errors.New("product not found")
)

// ValidationReason tags the exact field rule that a raw input violated.
type ValidationReason string

const (
	ReasonEmptyCode         ValidationReason = "EmptyCode"
	ReasonInvalidCodeFormat ValidationReason = "InvalidCodeFormat"
	ReasonEmptyName         ValidationReason = "EmptyName"
	ReasonNameTooLong       ValidationReason = "NameTooLong"
	ReasonInvalidPrice      ValidationReason = "InvalidPrice"
	ReasonInvalidQuantity   ValidationReason = "InvalidQuantity"
)

// ValidationError reports a single field-level rule violation. Validation
// short-circuits, so an input with several problems surfaces only the first.
type ValidationError struct {
	Reason  ValidationReason
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for the given field and reason.
func NewValidationError(reason ValidationReason, field, message string) *ValidationError {
	return &ValidationError{Reason: reason, Field: field, Message: message}
}

// AsValidationError unwraps err into a *ValidationError if it is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

// StorageError wraps a failure of the durable layer itself. It is opaque to
// the user, logged by the caller, and never retried automatically.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for the named operation.
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
