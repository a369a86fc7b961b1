package stats

// NamedValue is one estimator's value over a full sample.
type NamedValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SampleSummary holds every registered estimator evaluated once against a
// full, un-resampled sample, in registry order.
type SampleSummary struct {
	Count  int          `json:"count"`
	Values []NamedValue `json:"values"`
}

// Get looks a value up by estimator name.
func (s SampleSummary) Get(name string) (float64, bool) {
	for _, nv := range s.Values {
		if nv.Name == name {
			return nv.Value, true
		}
	}
	return 0, false
}

// EstimatorResult is the aggregate outcome of a bootstrap simulation for one
// estimator. Immutable once the simulation finishes.
//
// INVARIANTS:
// - SimCount equals the requested iteration count exactly
// - TargetGtCount + TargetLtCount <= SimCount; the remainder are exact ties
type EstimatorResult struct {
	Name          string  `json:"name"`
	BaselineStat  float64 `json:"baseline_stat"` // estimator over the full baseline
	TargetStat    float64 `json:"target_stat"`   // estimator over the full target
	SimCount      int     `json:"sim_count"`
	TargetGtCount int     `json:"target_gt_count"` // target stat strictly above the replicate's
	TargetLtCount int     `json:"target_lt_count"` // target stat strictly below the replicate's
}

// TieCount returns the number of iterations where the target statistic
// exactly equaled the replicate's.
func (r EstimatorResult) TieCount() int {
	return r.SimCount - r.TargetGtCount - r.TargetLtCount
}

// GtRatio is the empirical one-sided tail probability that the target
// statistic exceeds a baseline-only resample's statistic.
func (r EstimatorResult) GtRatio() float64 {
	if r.SimCount == 0 {
		return 0
	}
	return float64(r.TargetGtCount) / float64(r.SimCount)
}

// LtRatio is the opposite one-sided tail probability.
func (r EstimatorResult) LtRatio() float64 {
	if r.SimCount == 0 {
		return 0
	}
	return float64(r.TargetLtCount) / float64(r.SimCount)
}
