package stats

import (
	"numcmp/domain/core"
	"numcmp/domain/sample"
)

// EstimatorFunc reduces a sample to a single scalar. Implementations must be
// deterministic, total over any non-empty sample, and never return NaN.
type EstimatorFunc func(sample.Sample) (float64, error)

// Estimator pairs a display name with its scalar function. The registry
// order is load-bearing: reporters and the simulation engine pair counts
// with names by position.
type Estimator struct {
	Name string
	Fn   EstimatorFunc
}

// Mean returns the arithmetic mean of s.
func Mean(s sample.Sample) (float64, error) {
	if s.IsEmpty() {
		return 0, core.ErrEmptySample
	}
	return s.Sum() / float64(s.Count()), nil
}

func quantileEstimator(q float64) EstimatorFunc {
	return func(s sample.Sample) (float64, error) {
		return Quantile(s, q)
	}
}

// DefaultEstimators returns the fixed ordered registry: the arithmetic mean
// followed by seven order-statistic estimators from min through max.
func DefaultEstimators() []Estimator {
	return []Estimator{
		{Name: "avg", Fn: Mean},
		{Name: "min", Fn: quantileEstimator(0.0)},
		{Name: "p50", Fn: quantileEstimator(0.5)},
		{Name: "p75", Fn: quantileEstimator(0.75)},
		{Name: "p90", Fn: quantileEstimator(0.9)},
		{Name: "p95", Fn: quantileEstimator(0.95)},
		{Name: "p99", Fn: quantileEstimator(0.99)},
		{Name: "max", Fn: quantileEstimator(1.0)},
	}
}

// Summarize evaluates every estimator against the full sample, preserving
// registry order.
func Summarize(s sample.Sample, estimators []Estimator) (SampleSummary, error) {
	summary := SampleSummary{
		Count:  s.Count(),
		Values: make([]NamedValue, 0, len(estimators)),
	}
	for _, est := range estimators {
		v, err := est.Fn(s)
		if err != nil {
			return SampleSummary{}, err
		}
		summary.Values = append(summary.Values, NamedValue{Name: est.Name, Value: v})
	}
	return summary, nil
}
