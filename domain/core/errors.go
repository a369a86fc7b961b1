package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Argument errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptySample     = fmt.Errorf("%w: sample is empty", ErrInvalidArgument)
	ErrQuantileRange   = fmt.Errorf("%w: quantile out of range [0,1]", ErrInvalidArgument)
	ErrBadIterations   = fmt.Errorf("%w: iteration count must be positive", ErrInvalidArgument)

	// Data errors
	ErrUncomparable = errors.New("uncomparable value")
	ErrUnsorted     = errors.New("sample not sorted ascending")
	ErrNonFinite    = errors.New("non-finite value")

	// Lookup errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: comparison run", ErrNotFound)
)

// Error constructors with context
func NewQuantileRangeError(q float64) error {
	return fmt.Errorf("%w: q=%v", ErrQuantileRange, q)
}

func NewUncomparableError(estimator string, target, simulated float64) error {
	return fmt.Errorf("%w: estimator %s compared %v against %v", ErrUncomparable, estimator, target, simulated)
}

func NewNonFiniteError(source string, line int, value float64) error {
	return fmt.Errorf("%w: %v at %s line %d", ErrNonFinite, value, source, line)
}

// Error checking helpers
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsDataError(err error) bool {
	return errors.Is(err, ErrUncomparable) ||
		errors.Is(err, ErrUnsorted) ||
		errors.Is(err, ErrNonFinite)
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
