package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the token grammar and the sequencer
var (
	ErrInvalidFormat  = errors.New("invalid format")
	ErrPrecondition   = errors.New("precondition violation")
	ErrYearOutOfRange = errors.New("year out of range")

	ErrStepExhausted   = fmt.Errorf("%w: step %q is the last step of the day", ErrPrecondition, LastStep)
	ErrStepUnsupported = fmt.Errorf("%w: only single-letter steps can be incremented", ErrPrecondition)
)

// FormatError reports input that does not fit the fixed token grammar
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid format %q: %s", e.Input, e.Reason)
}

func (e *FormatError) Is(target error) bool {
	return target == ErrInvalidFormat
}

// RangeError reports a year the two-digit year field cannot hold
type RangeError struct {
	Year int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("year %d outside %d-%d", e.Year, MinYear, MaxYear)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrYearOutOfRange
}

// HistoryError reports a history that does not resolve to exactly one latest identifier
type HistoryError struct {
	Location string
	Count    int
}

func (e *HistoryError) Error() string {
	where := ""
	if e.Location != "" {
		where = " in " + e.Location
	}
	return fmt.Sprintf("expected exactly one latest identifier%s, got %d", where, e.Count)
}

func (e *HistoryError) Is(target error) bool {
	return target == ErrPrecondition
}
