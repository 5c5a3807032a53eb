package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the selection engine. Data-absence conditions (empty
// batches, empty cabins, no surviving pairings) are not errors and propagate
// as empty results; these sentinels mark configuration problems and caller
// misuse.
var (
	// ErrInvalidRequest indicates a malformed pass request or filter.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnknownProgram indicates no mileage valuation exists for a source.
	ErrUnknownProgram = errors.New("unknown mileage program")

	// ErrUnknownCurrency indicates no conversion rate could be obtained for
	// a tax currency that differs from the base currency.
	ErrUnknownCurrency = errors.New("unknown currency")

	// ErrNoDataFound indicates the multi-source entry point received no
	// batches at all, or every source yielded an empty result.
	ErrNoDataFound = errors.New("no data found")

	// ErrInvalidTrip indicates a trip with missing/zero cost or distance
	// reached the scoring function.
	ErrInvalidTrip = errors.New("invalid trip")
)

// SourceError wraps an error that occurred while processing one source's
// batch, carrying the source for context.
type SourceError struct {
	// Source is the program whose pass failed
	Source Source

	// Err is the underlying error
	Err error
}

// NewSourceError creates a SourceError for the given source.
func NewSourceError(source Source, err error) *SourceError {
	return &SourceError{Source: source, Err: err}
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As matching.
func (e *SourceError) Unwrap() error {
	return e.Err
}
