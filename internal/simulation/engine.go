package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"numcmp/domain/core"
	"numcmp/domain/sample"
	"numcmp/domain/stats"
	"numcmp/ports"
)

const (
	defaultWorkers = 4
	stageName      = "bootstrap"
)

// Engine drives the bootstrap simulation: a fixed number of resampling
// iterations, each evaluating every registered estimator on a fresh
// replicate and tallying how the target's real statistic compares.
//
// Iterations are independent, so they are partitioned across a fixed worker
// pool. Each worker derives its own RNG stream from (stage, worker key,
// seed); per-worker tallies are summed after all workers finish, which makes
// a run exactly reproducible for a fixed seed and worker count.
type Engine struct {
	rngPort ports.RNGPort
	workers int
}

// NewEngine creates a simulation engine with the default worker count.
func NewEngine(rngPort ports.RNGPort) *Engine {
	return &Engine{rngPort: rngPort, workers: defaultWorkers}
}

// SetWorkers configures the worker pool size. One worker runs the loop
// serially.
func (e *Engine) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	e.workers = n
}

// workerTally holds one worker's local per-estimator counts.
type workerTally struct {
	gt  []int
	lt  []int
	err error
}

// Simulate runs exactly iterations bootstrap rounds against the sorted
// baseline, sizing each replicate to the target. It aborts on the first
// error: estimator failures and uncomparable values are defects, not
// conditions the loop works around.
func (e *Engine) Simulate(ctx context.Context, iterations int, baseline, target sample.Sample, estimators []stats.Estimator, seed int64) ([]stats.EstimatorResult, error) {
	if iterations <= 0 {
		return nil, core.ErrBadIterations
	}
	if baseline.IsEmpty() || target.IsEmpty() {
		return nil, core.ErrEmptySample
	}
	if err := baseline.CheckSorted(); err != nil {
		return nil, err
	}

	// Real statistics are computed once, against the full un-resampled data.
	results := make([]stats.EstimatorResult, len(estimators))
	for i, est := range estimators {
		baseStat, err := est.Fn(baseline)
		if err != nil {
			return nil, fmt.Errorf("estimator %s on baseline: %w", est.Name, err)
		}
		targetStat, err := est.Fn(target)
		if err != nil {
			return nil, fmt.Errorf("estimator %s on target: %w", est.Name, err)
		}
		if math.IsNaN(baseStat) || math.IsNaN(targetStat) {
			return nil, core.NewUncomparableError(est.Name, targetStat, baseStat)
		}
		results[i] = stats.EstimatorResult{
			Name:         est.Name,
			BaselineStat: baseStat,
			TargetStat:   targetStat,
		}
	}

	workers := e.workers
	if workers > iterations {
		workers = iterations
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	tallies := make([]workerTally, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		share := iterations / workers
		if w < iterations%workers {
			share++
		}

		wg.Add(1)
		go func(w, share int) {
			defer wg.Done()
			tallies[w] = e.runWorker(runCtx, w, share, baseline, target, estimators, results, seed)
			if tallies[w].err != nil {
				cancel()
			}
		}(w, share)
	}
	wg.Wait()

	// Workers that were canceled by a sibling's failure report ctx.Err();
	// surface the underlying defect instead.
	var failure error
	for _, tally := range tallies {
		if tally.err == nil {
			continue
		}
		if failure == nil || errors.Is(failure, context.Canceled) {
			failure = tally.err
		}
	}
	if failure != nil {
		return nil, failure
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, tally := range tallies {
		for i := range results {
			results[i].TargetGtCount += tally.gt[i]
			results[i].TargetLtCount += tally.lt[i]
		}
	}
	for i := range results {
		results[i].SimCount = iterations
	}

	return results, nil
}

// runWorker executes one worker's share of iterations with its own RNG
// stream and a reused replicate buffer. The stream key deliberately excludes
// the run identifier so two runs with the same seed draw identical sequences.
func (e *Engine) runWorker(ctx context.Context, w, share int, baseline, target sample.Sample, estimators []stats.Estimator, results []stats.EstimatorResult, seed int64) workerTally {
	tally := workerTally{
		gt: make([]int, len(estimators)),
		lt: make([]int, len(estimators)),
	}

	rng, err := e.rngPort.Stream(ctx, "", stageName, fmt.Sprintf("worker-%d", w), seed)
	if err != nil {
		tally.err = fmt.Errorf("rng stream for worker %d: %w", w, err)
		return tally
	}

	replicate := make(sample.Sample, target.Count())
	for it := 0; it < share; it++ {
		select {
		case <-ctx.Done():
			tally.err = ctx.Err()
			return tally
		default:
		}

		resampleInto(replicate, baseline, rng)

		for i, est := range estimators {
			simVal, err := est.Fn(replicate)
			if err != nil {
				tally.err = fmt.Errorf("estimator %s on replicate: %w", est.Name, err)
				return tally
			}
			targetStat := results[i].TargetStat
			if math.IsNaN(simVal) {
				tally.err = core.NewUncomparableError(est.Name, targetStat, simVal)
				return tally
			}

			switch {
			case targetStat > simVal:
				tally.gt[i]++
			case targetStat < simVal:
				tally.lt[i]++
			}
		}
	}

	return tally
}
