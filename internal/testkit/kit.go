package testkit

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"numcmp/adapters/rng"
	"numcmp/domain/core"
	"numcmp/domain/sample"
	"numcmp/ports"
)

// Kit provides fixtures and deterministic adapters for tests.
type Kit struct {
	ledger *InMemoryRunLedger
}

// NewKit creates a test kit with strict sample checks enabled.
func NewKit() *Kit {
	sample.SetStrictChecks(true)
	return &Kit{ledger: NewInMemoryRunLedger()}
}

// RNGAdapter returns the deterministic RNG adapter used in production.
func (k *Kit) RNGAdapter() ports.RNGPort {
	return rng.New()
}

// RunLedger returns a shared in-memory run ledger.
func (k *Kit) RunLedger() *InMemoryRunLedger {
	return k.ledger
}

// GenerateSample produces n normally distributed values around mean with the
// given spread, sorted, from a fixed seed.
func (k *Kit) GenerateSample(n int, mean, stdDev float64, seed int64) sample.Sample {
	r := rand.New(rand.NewSource(seed))
	values := make([]float64, n)
	for i := range values {
		values[i] = mean + r.NormFloat64()*stdDev
	}
	sort.Float64s(values)
	return sample.Sample(values)
}

// InMemoryRunLedger implements ports.RunLedgerPort for tests and for the
// API/UI when no database is configured.
type InMemoryRunLedger struct {
	mu   sync.RWMutex
	runs map[uuid.UUID]ports.ComparisonRun
}

// NewInMemoryRunLedger creates an empty in-memory ledger.
func NewInMemoryRunLedger() *InMemoryRunLedger {
	return &InMemoryRunLedger{runs: make(map[uuid.UUID]ports.ComparisonRun)}
}

// SaveRun stores a copy of the run.
func (l *InMemoryRunLedger) SaveRun(ctx context.Context, run ports.ComparisonRun) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	l.runs[run.ID] = run
	return nil
}

// GetRun returns one stored run.
func (l *InMemoryRunLedger) GetRun(ctx context.Context, id uuid.UUID) (*ports.ComparisonRun, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	run, ok := l.runs[id]
	if !ok {
		return nil, core.ErrRunNotFound
	}
	return &run, nil
}

// ListRuns returns stored runs, most recent first.
func (l *InMemoryRunLedger) ListRuns(ctx context.Context, limit int) ([]ports.ComparisonRun, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	runs := make([]ports.ComparisonRun, 0, len(l.runs))
	for _, run := range l.runs {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

var _ ports.RunLedgerPort = (*InMemoryRunLedger)(nil)
