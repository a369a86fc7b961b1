package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"numcmp/adapters/source"
	"numcmp/domain/sample"
	"numcmp/domain/stats"
	"numcmp/internal"
	"numcmp/internal/errors"
	"numcmp/internal/profiling"
	"numcmp/internal/simulation"
	"numcmp/ports"
)

// maxConcurrentComparisons bounds multi-target fan-out; each comparison
// already saturates the engine's own worker pool.
const maxConcurrentComparisons = 2

// CompareRequest describes one comparison to run.
type CompareRequest struct {
	BaselineRef string
	TargetRef   string
	Column      string // table sources only
	Iterations  int
	Seed        int64
	Save        bool
}

// CompareOutcome is the full result of one comparison run.
type CompareOutcome struct {
	RunID           uuid.UUID               `json:"run_id"`
	BaselineSummary stats.SampleSummary     `json:"baseline_summary"`
	TargetSummary   stats.SampleSummary     `json:"target_summary"`
	BaselineProfile profiling.Profile       `json:"baseline_profile"`
	TargetProfile   profiling.Profile       `json:"target_profile"`
	Results         []stats.EstimatorResult `json:"results"`
}

// CompareService orchestrates the pipeline: load sorted samples, summarize
// and profile them, run the bootstrap simulation, optionally persist the
// outcome to the run ledger.
type CompareService struct {
	engine     *simulation.Engine
	ledger     ports.RunLedgerPort // nil disables persistence
	estimators []stats.Estimator
	logger     *internal.Logger
}

// NewCompareService creates a comparison service around the given engine.
func NewCompareService(engine *simulation.Engine, ledger ports.RunLedgerPort, logger *internal.Logger) *CompareService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CompareService{
		engine:     engine,
		ledger:     ledger,
		estimators: stats.DefaultEstimators(),
		logger:     logger,
	}
}

// Summarize loads one sample and evaluates the full registry plus the
// distribution profile against it.
func (s *CompareService) Summarize(ctx context.Context, ref, column string) (stats.SampleSummary, profiling.Profile, error) {
	smp, err := source.Resolve(ref, column).Load(ctx, ref)
	if err != nil {
		return stats.SampleSummary{}, profiling.Profile{}, errors.Wrapf(err, "load sample %s", ref)
	}
	return s.summarizeSample(smp)
}

// Compare loads both samples from their references and runs the comparison.
func (s *CompareService) Compare(ctx context.Context, req CompareRequest) (*CompareOutcome, error) {
	baseline, err := source.Resolve(req.BaselineRef, req.Column).Load(ctx, req.BaselineRef)
	if err != nil {
		return nil, errors.Wrapf(err, "load baseline %s", req.BaselineRef)
	}
	target, err := source.Resolve(req.TargetRef, req.Column).Load(ctx, req.TargetRef)
	if err != nil {
		return nil, errors.Wrapf(err, "load target %s", req.TargetRef)
	}

	return s.CompareSamples(ctx, req, baseline, target)
}

// CompareSamples runs the comparison over already-loaded sorted samples.
func (s *CompareService) CompareSamples(ctx context.Context, req CompareRequest, baseline, target sample.Sample) (*CompareOutcome, error) {
	runID := uuid.New()
	start := time.Now()

	outcome := &CompareOutcome{RunID: runID}

	var err error
	if outcome.BaselineSummary, outcome.BaselineProfile, err = s.summarizeSample(baseline); err != nil {
		return nil, err
	}
	if outcome.TargetSummary, outcome.TargetProfile, err = s.summarizeSample(target); err != nil {
		return nil, err
	}

	results, err := s.engine.Simulate(ctx, req.Iterations, baseline, target, s.estimators, req.Seed)
	if err != nil {
		return nil, errors.Wrap(err, "bootstrap simulation failed")
	}
	outcome.Results = results

	s.logger.Info("run %s: %d iterations over baseline n=%d target n=%d in %s",
		runID, req.Iterations, baseline.Count(), target.Count(), time.Since(start).Round(time.Millisecond))

	if req.Save && s.ledger != nil {
		run := ports.ComparisonRun{
			ID:            runID,
			BaselineRef:   req.BaselineRef,
			TargetRef:     req.TargetRef,
			BaselineCount: baseline.Count(),
			TargetCount:   target.Count(),
			Iterations:    req.Iterations,
			Seed:          req.Seed,
			CreatedAt:     time.Now().UTC(),
			Results:       results,
		}
		if err := s.ledger.SaveRun(ctx, run); err != nil {
			return nil, errors.DatabaseError("persist comparison run", err)
		}
	}

	return outcome, nil
}

// CompareMany compares one baseline against several targets, bounded by a
// weighted semaphore so heavy simulations don't pile up.
func (s *CompareService) CompareMany(ctx context.Context, base CompareRequest, targetRefs []string) ([]*CompareOutcome, error) {
	sem := semaphore.NewWeighted(maxConcurrentComparisons)
	outcomes := make([]*CompareOutcome, len(targetRefs))
	errs := make([]error, len(targetRefs))

	var wg sync.WaitGroup
	for i, targetRef := range targetRefs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// In-flight comparisons still hold slices shared with this frame;
			// let them drain before handing the error back.
			wg.Wait()
			return nil, err
		}

		wg.Add(1)
		go func(i int, targetRef string) {
			defer wg.Done()
			defer sem.Release(1)

			req := base
			req.TargetRef = targetRef
			outcomes[i], errs[i] = s.Compare(ctx, req)
		}(i, targetRef)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return outcomes, nil
}

// GetRun fetches a persisted run from the ledger.
func (s *CompareService) GetRun(ctx context.Context, id uuid.UUID) (*ports.ComparisonRun, error) {
	if s.ledger == nil {
		return nil, errors.NotFound("run ledger")
	}
	return s.ledger.GetRun(ctx, id)
}

// ListRuns lists persisted runs.
func (s *CompareService) ListRuns(ctx context.Context, limit int) ([]ports.ComparisonRun, error) {
	if s.ledger == nil {
		return nil, errors.NotFound("run ledger")
	}
	return s.ledger.ListRuns(ctx, limit)
}

func (s *CompareService) summarizeSample(smp sample.Sample) (stats.SampleSummary, profiling.Profile, error) {
	summary, err := stats.Summarize(smp, s.estimators)
	if err != nil {
		return stats.SampleSummary{}, profiling.Profile{}, errors.Wrap(err, "summarize sample")
	}
	profile, err := profiling.Describe(smp)
	if err != nil {
		return stats.SampleSummary{}, profiling.Profile{}, errors.Wrap(err, "profile sample")
	}
	return summary, profile, nil
}
