package simulation

import (
	"math/rand"
	"sort"

	"numcmp/domain/core"
	"numcmp/domain/sample"
)

// Resample draws one bootstrap replicate of the given size from baseline:
// size independent uniform draws with replacement, sorted ascending so the
// replicate satisfies the Sample ordering invariant for downstream
// estimators. The replicate can only ever contain baseline members.
func Resample(baseline sample.Sample, size int, rng *rand.Rand) (sample.Sample, error) {
	if baseline.IsEmpty() {
		return nil, core.ErrEmptySample
	}
	if size <= 0 {
		return nil, core.ErrInvalidArgument
	}

	replicate := make(sample.Sample, size)
	n := baseline.Count()
	for i := 0; i < size; i++ {
		replicate[i] = baseline[rng.Intn(n)]
	}
	sort.Float64s(replicate)

	return replicate, nil
}

// resampleInto is the allocation-free variant used by the simulation loop:
// the replicate buffer is reused across iterations within one worker.
func resampleInto(dst sample.Sample, baseline sample.Sample, rng *rand.Rand) {
	n := baseline.Count()
	for i := range dst {
		dst[i] = baseline[rng.Intn(n)]
	}
	sort.Float64s(dst)
}
