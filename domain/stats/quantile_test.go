package stats

import (
	"errors"
	"math"
	"testing"

	"numcmp/domain/core"
	"numcmp/domain/sample"
)

func sorted(values ...float64) sample.Sample {
	return sample.Sample(values)
}

func TestQuantile_Boundaries(t *testing.T) {
	samples := []sample.Sample{
		sorted(3.7),
		sorted(1.1, 2.2),
		sorted(-5, 0, 0.3, 7, 100),
		sorted(0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7),
	}

	for _, s := range samples {
		lo, err := Quantile(s, 0)
		if err != nil {
			t.Fatalf("Quantile(s, 0): %v", err)
		}
		if lo != s[0] {
			t.Errorf("Quantile(s, 0) = %v, want exactly %v", lo, s[0])
		}

		hi, err := Quantile(s, 1)
		if err != nil {
			t.Fatalf("Quantile(s, 1): %v", err)
		}
		if hi != s[len(s)-1] {
			t.Errorf("Quantile(s, 1) = %v, want exactly %v", hi, s[len(s)-1])
		}
	}
}

func TestQuantile_Monotonicity(t *testing.T) {
	s := sorted(-3, -1, 0, 0.5, 2, 2, 9, 14, 100)

	prev, err := Quantile(s, 0)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 100; i++ {
		q := float64(i) / 100
		v, err := Quantile(s, q)
		if err != nil {
			t.Fatalf("Quantile(s, %v): %v", q, err)
		}
		if v < prev {
			t.Errorf("Quantile not monotone: q=%v gave %v after %v", q, v, prev)
		}
		prev = v
	}
}

func TestQuantile_Singleton(t *testing.T) {
	s := sorted(42.5)
	for _, q := range []float64{0, 0.1, 0.5, 0.99, 1} {
		v, err := Quantile(s, q)
		if err != nil {
			t.Fatalf("Quantile([v], %v): %v", q, err)
		}
		if v != 42.5 {
			t.Errorf("Quantile([42.5], %v) = %v, want 42.5", q, v)
		}
	}
}

func TestQuantile_DomainValidation(t *testing.T) {
	s := sorted(1, 2, 3)

	cases := []struct {
		name string
		s    sample.Sample
		q    float64
		want error
	}{
		{"q below zero", s, -0.1, core.ErrQuantileRange},
		{"q above one", s, 1.1, core.ErrQuantileRange},
		{"q is NaN", s, math.NaN(), core.ErrQuantileRange},
		{"empty sample", sample.Sample{}, 0.5, core.ErrEmptySample},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Quantile(tc.s, tc.q)
			if !errors.Is(err, tc.want) {
				t.Errorf("Quantile error = %v, want %v", err, tc.want)
			}
			if !core.IsInvalidArgument(err) {
				t.Errorf("error %v should classify as invalid argument", err)
			}
		})
	}
}

func TestQuantile_Interpolation(t *testing.T) {
	v, err := Quantile(sorted(1.0, 2.0), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if v != 1.5 {
		t.Errorf("Quantile([1,2], 0.5) = %v, want 1.5", v)
	}
}

func TestQuantile_ExactIndex(t *testing.T) {
	v, err := Quantile(sorted(1.0, 2.0, 3.0), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if v != 2.0 {
		t.Errorf("Quantile([1,2,3], 0.5) = %v, want exactly 2.0", v)
	}
}

func TestQuantile_StrictChecksRejectUnsorted(t *testing.T) {
	sample.SetStrictChecks(true)
	defer sample.SetStrictChecks(false)

	_, err := Quantile(sample.Sample{3, 1, 2}, 0.5)
	if !errors.Is(err, core.ErrUnsorted) {
		t.Errorf("expected ErrUnsorted with strict checks on, got %v", err)
	}
}
