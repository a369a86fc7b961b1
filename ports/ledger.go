package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"numcmp/domain/stats"
)

// ComparisonRun records one completed bootstrap comparison.
type ComparisonRun struct {
	ID            uuid.UUID               `json:"id" db:"id"`
	BaselineRef   string                  `json:"baseline_ref" db:"baseline_ref"`
	TargetRef     string                  `json:"target_ref" db:"target_ref"`
	BaselineCount int                     `json:"baseline_count" db:"baseline_count"`
	TargetCount   int                     `json:"target_count" db:"target_count"`
	Iterations    int                     `json:"iterations" db:"iterations"`
	Seed          int64                   `json:"seed" db:"seed"`
	CreatedAt     time.Time               `json:"created_at" db:"created_at"`
	Results       []stats.EstimatorResult `json:"results" db:"-"`
}

// RunLedgerPort persists comparison runs and their per-estimator results.
// The ledger is append-only from the engine's point of view; results are
// immutable once written.
type RunLedgerPort interface {
	SaveRun(ctx context.Context, run ComparisonRun) error
	GetRun(ctx context.Context, id uuid.UUID) (*ComparisonRun, error)
	ListRuns(ctx context.Context, limit int) ([]ComparisonRun, error)
}
