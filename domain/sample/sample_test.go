package sample

import (
	"errors"
	"math"
	"testing"

	"numcmp/domain/core"
)

func TestNew_SortsInput(t *testing.T) {
	s, err := New([]float64{5, 1, 3, 2, 4})
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsSorted() {
		t.Errorf("New did not sort: %v", s)
	}
	if s.Count() != 5 || s[0] != 1 || s[4] != 5 {
		t.Errorf("unexpected sample: %v", s)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	raw := []float64{3, 1, 2}
	s, err := New(raw)
	if err != nil {
		t.Fatal(err)
	}
	if raw[0] != 3 {
		t.Error("New mutated caller's slice")
	}
	s[0] = -99
	if raw[1] == -99 {
		t.Error("sample aliases caller's slice")
	}
}

func TestNew_RejectsNonFinite(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := New([]float64{1, bad, 3})
		if !errors.Is(err, core.ErrNonFinite) {
			t.Errorf("New with %v: error = %v, want ErrNonFinite", bad, err)
		}
	}
}

func TestFromSorted_StrictChecks(t *testing.T) {
	SetStrictChecks(true)
	defer SetStrictChecks(false)

	if _, err := FromSorted([]float64{1, 2, 3}); err != nil {
		t.Errorf("sorted input rejected: %v", err)
	}
	if _, err := FromSorted([]float64{2, 1}); !errors.Is(err, core.ErrUnsorted) {
		t.Errorf("unsorted input: error = %v, want ErrUnsorted", err)
	}
}

func TestFromSorted_ChecksOffByDefault(t *testing.T) {
	SetStrictChecks(false)

	// With checks off the precondition is the caller's problem and the
	// constructor does not pay for verification.
	if _, err := FromSorted([]float64{2, 1}); err != nil {
		t.Errorf("expected no check with strict checks off, got %v", err)
	}
}

func TestSum(t *testing.T) {
	s := Sample{1.5, 2.5, 6}
	if got := s.Sum(); got != 10 {
		t.Errorf("Sum = %v, want 10", got)
	}
	if got := (Sample{}).Sum(); got != 0 {
		t.Errorf("empty Sum = %v, want 0", got)
	}
}
