package rng

import (
	"context"
	"math/rand"

	"numcmp/ports"
)

// Adapter implements ports.RNGPort with math/rand sources derived from
// explicit seeds. Stream seeds mix the run, stage, and stream identifiers so
// parallel workers get disjoint draw sequences for the same base seed.
type Adapter struct{}

// New creates an RNG adapter.
func New() *Adapter {
	return &Adapter{}
}

// Stream creates a deterministic generator scoped to run/stage/stream key.
func (a *Adapter) Stream(ctx context.Context, runID, stageName, streamKey string, baseSeed int64) (*rand.Rand, error) {
	seed := baseSeed
	if runID != "" {
		seed += int64(hashString(runID))
	}
	if stageName != "" {
		seed += int64(hashString(stageName))
	}
	if streamKey != "" {
		seed += int64(hashString(streamKey))
	}
	return rand.New(rand.NewSource(seed)), nil
}

// hashString creates a simple hash for deterministic seeding (djb2).
func hashString(s string) uint32 {
	var hash uint32 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint32(c)
	}
	return hash
}

var _ ports.RNGPort = (*Adapter)(nil)
