package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Fatal input problems
	ErrInputNotFound = errors.New("input file not found")
	ErrInputEmpty    = errors.New("input sheet has no rows")
	ErrReadFailed    = errors.New("input read failed")
	ErrWriteFailed   = errors.New("workbook write failed")

	// Degraded conditions
	ErrColumnNotFound = errors.New("expected column not found")
	ErrLedgerDisabled = errors.New("run ledger disabled")
	ErrRunNotFound    = errors.New("run not found")
)

// NewColumnError reports a confusion category with no matching header.
func NewColumnError(category string) error {
	return fmt.Errorf("%w: %s", ErrColumnNotFound, category)
}

// IsInputNotFound reports whether err stems from a missing input file.
func IsInputNotFound(err error) bool {
	return errors.Is(err, ErrInputNotFound)
}
