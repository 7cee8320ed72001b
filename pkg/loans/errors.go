package loans

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is matched by every *InvalidInputError.
	ErrInvalidInput = errors.New("invalid loan input")

	// ErrInvalidPayment indicates a payment that can never amortize the
	// principal because it does not cover a single period's interest.
	ErrInvalidPayment = errors.New("payment does not cover periodic interest")

	// ErrDidNotConverge is matched by every *DidNotConvergeError.
	ErrDidNotConverge = errors.New("rate solver did not converge")

	// ErrScheduleIncomplete indicates the schedule builder reached its safety
	// cap with a balance still outstanding.
	ErrScheduleIncomplete = errors.New("schedule did not reach payoff")
)

// InvalidInputError names the offending field of a loan definition.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %g: %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// DidNotConvergeError carries the last Newton-Raphson iterate so callers can
// inspect it, but it is never a valid answer.
type DidNotConvergeError struct {
	Iterations   int
	LastEstimate float64
}

func (e *DidNotConvergeError) Error() string {
	return fmt.Sprintf("rate solver did not converge after %d iterations (last estimate %g)",
		e.Iterations, e.LastEstimate)
}

func (e *DidNotConvergeError) Unwrap() error {
	return ErrDidNotConverge
}

func invalidInput(field string, value float64, reason string) error {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}
