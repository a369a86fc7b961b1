package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic
// operations. Resampling never reads ambient randomness; every stream is
// derived from an explicit seed so a run can be replayed exactly.
type RNGPort interface {
	// Stream creates a deterministic generator scoped to a run, stage, and
	// stream key. Distinct keys must yield distinct draw sequences so that
	// parallel workers never share a sequence unless seeded identically.
	Stream(ctx context.Context, runID, stageName, streamKey string, baseSeed int64) (*rand.Rand, error)
}
