package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"numcmp/domain/core"
	"numcmp/domain/sample"
)

// Profile describes the shape of one sample. It supplements the estimator
// summary with dispersion and shape markers; nothing in the bootstrap core
// depends on it.
type Profile struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
	IsNormal bool    `json:"is_normal"`
	ShapiroP float64 `json:"shapiro_p"`
}

// Describe computes a distribution profile for s.
func Describe(s sample.Sample) (Profile, error) {
	if s.IsEmpty() {
		return Profile{}, core.ErrEmptySample
	}

	data := []float64(s)
	p := Profile{Count: s.Count()}

	var err error
	if p.Mean, err = stats.Mean(data); err != nil {
		return Profile{}, err
	}
	if p.StdDev, err = stats.StandardDeviation(data); err != nil {
		return Profile{}, err
	}
	if p.Min, err = stats.Min(data); err != nil {
		return Profile{}, err
	}
	if p.Max, err = stats.Max(data); err != nil {
		return Profile{}, err
	}
	if p.Median, err = stats.Median(data); err != nil {
		return Profile{}, err
	}
	if p.Q25, err = stats.Percentile(data, 25); err != nil {
		return Profile{}, err
	}
	if p.Q75, err = stats.Percentile(data, 75); err != nil {
		return Profile{}, err
	}

	p.Skewness = skewness(data, p.Mean, p.StdDev)
	p.Kurtosis = kurtosis(data, p.Mean, p.StdDev)
	p.IsNormal, p.ShapiroP = normality(p.Skewness, p.Kurtosis)

	return p, nil
}

// skewness computes sample skewness with the adjusted Fisher-Pearson
// correction.
func skewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 || stdDev == 0 {
		return 0
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d
	}

	return (sum / n) * math.Sqrt(n*(n-1)) / (n - 2)
}

// kurtosis computes sample kurtosis (not excess).
func kurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 || stdDev == 0 {
		return 3
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / stdDev
		sum += d * d * d * d
	}

	excess := sum/n - 3
	excess = excess*(n-1)/((n-2)*(n-3)) + 6/(n+1)

	return excess + 3
}

// normality approximates a normality check from skewness and kurtosis,
// mapping the combined statistic through a chi-squared tail. A rough signal
// only; the bootstrap itself makes no normality assumption.
func normality(skew, kurt float64) (bool, float64) {
	testStat := math.Abs(skew) + math.Abs(kurt-3)/2

	chi := distuv.ChiSquared{K: 2}
	pValue := 1 - chi.CDF(testStat*testStat)

	return pValue > 0.05, pValue
}
