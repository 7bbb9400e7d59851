package application

import (
	"fmt"

	"contexere/internal/domain"
)

// Sentinel errors, re-exported from the domain for adapters
var (
	ErrInvalidFormat   = domain.ErrInvalidFormat
	ErrPrecondition    = domain.ErrPrecondition
	ErrYearOutOfRange  = domain.ErrYearOutOfRange
	ErrStepExhausted   = domain.ErrStepExhausted
	ErrStepUnsupported = domain.ErrStepUnsupported
)

// ValidationError represents a validation failure with details.
// Err, when set, is the underlying cause.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
