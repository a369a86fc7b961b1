package sample

import (
	"math"
	"sort"
	"sync/atomic"

	"numcmp/domain/core"
)

// Sample is an ascending-sorted sequence of finite real numbers. Every
// operation downstream of construction assumes the ordering invariant holds;
// SetStrictChecks controls whether that precondition is re-verified.
type Sample []float64

// strictChecks gates the is-sorted precondition verification. Off by
// default; test and debug configurations switch it on.
var strictChecks atomic.Bool

// SetStrictChecks enables or disables sortedness precondition checks.
func SetStrictChecks(enabled bool) {
	strictChecks.Store(enabled)
}

// StrictChecks reports whether precondition checks are enabled.
func StrictChecks() bool {
	return strictChecks.Load()
}

// New copies values into a fresh Sample and sorts it ascending.
func New(values []float64) (Sample, error) {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, core.NewNonFiniteError("sample", 0, v)
		}
	}
	s := make(Sample, len(values))
	copy(s, values)
	sort.Float64s(s)
	return s, nil
}

// FromSorted wraps values that are already sorted ascending without copying.
// With strict checks enabled an unsorted input is reported as ErrUnsorted.
func FromSorted(values []float64) (Sample, error) {
	s := Sample(values)
	if err := s.CheckSorted(); err != nil {
		return nil, err
	}
	return s, nil
}

// IsSorted reports whether the sample is sorted ascending.
func (s Sample) IsSorted() bool {
	return sort.Float64sAreSorted(s)
}

// CheckSorted verifies the ordering invariant when strict checks are on.
func (s Sample) CheckSorted() error {
	if strictChecks.Load() && !s.IsSorted() {
		return core.ErrUnsorted
	}
	return nil
}

// Count returns the number of observations.
func (s Sample) Count() int {
	return len(s)
}

// IsEmpty reports whether the sample has no observations.
func (s Sample) IsEmpty() bool {
	return len(s) == 0
}

// Sum returns the total of all observations.
func (s Sample) Sum() float64 {
	total := 0.0
	for _, v := range s {
		total += v
	}
	return total
}
