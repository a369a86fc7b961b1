package stats

import (
	"math"

	"numcmp/domain/core"
	"numcmp/domain/sample"
)

// quantileIndex maps a quantile in [0,1] to a fractional position among n
// order statistics. Two items at q=0.5 give index 0.5; three items at q=1
// give index 2.
func quantileIndex(n int, q float64) float64 {
	return float64(n-1) * q
}

// Quantile returns the interpolated order statistic of s at quantile q.
//
// The boundaries are returned exactly: q=0 yields the first element and q=1
// the last, with no interpolation arithmetic that could introduce float
// round-off. When the fractional index lands on an integer rank the element
// at that rank is returned as-is; otherwise the two bracketing order
// statistics are combined linearly.
func Quantile(s sample.Sample, q float64) (float64, error) {
	if s.IsEmpty() {
		return 0, core.ErrEmptySample
	}
	// NaN fails both comparisons below and would otherwise reach the index
	// arithmetic; it is out of range like any other q outside [0,1].
	if math.IsNaN(q) || q < 0 || q > 1 {
		return 0, core.NewQuantileRangeError(q)
	}
	if err := s.CheckSorted(); err != nil {
		return 0, err
	}

	if q == 0 {
		return s[0], nil
	}
	if q == 1 {
		return s[len(s)-1], nil
	}

	qi := quantileIndex(len(s), q)
	qf := math.Floor(qi)
	i := int(qf)

	if float64(i) == qi {
		return s[i], nil
	}

	// Strictly interior q with a fractional rank always has a right
	// neighbor: qi < n-1, so i+1 <= n-1.
	t := qi - qf
	x0 := s[i]
	x1 := s[i+1]

	return x0*(1-t) + x1*t, nil
}
