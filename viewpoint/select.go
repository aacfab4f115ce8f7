package viewpoint

import (
	"context"
	"math"

	"github.com/golang/geo/r3"
)

// PointSource draws random points from a walkable surface. Implementations
// with seeded randomness make selection reproducible.
type PointSource interface {
	RandomPoint(ctx context.Context) (r3.Vector, error)
}

// SelectConfig holds parameters for viewpoint rejection sampling.
type SelectConfig struct {
	FloorHeight     float64 // Inferred ground elevation for the scene
	HeightTolerance float64 // Max |y - FloorHeight| for a candidate
	MinSeparation   float64 // Min Euclidean distance between accepted points
	TargetCount     int     // Desired number of viewpoints
	MaxAttempts     int     // Draw budget; 0 = 50 per target viewpoint
}

// SelectViewpoints collects up to cfg.TargetCount floor-level viewpoints by
// rejection sampling: draw a point, reject it if it is off the floor level or
// closer than MinSeparation to any previously accepted point. The pairwise
// check is the online greedy construction, O(k) per draw against the k
// accepted so far. Not globally optimal, but k is small.
//
// The returned slice preserves acceptance order. If the attempt budget runs
// out first, the partial set is returned with ErrPartialSelection; an empty
// set returns ErrNoViewpoints. Draw errors from the source consume attempts
// but are otherwise ignored.
func SelectViewpoints(ctx context.Context, src PointSource, cfg SelectConfig) ([]Viewpoint, error) {
	if src == nil {
		return nil, ErrNilSource
	}

	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 50 * cfg.TargetCount
	}

	accepted := make([]Viewpoint, 0, cfg.TargetCount)
	for attempts := 0; attempts < maxAttempts && len(accepted) < cfg.TargetCount; attempts++ {
		if err := ctx.Err(); err != nil {
			return accepted, err
		}

		p, err := src.RandomPoint(ctx)
		if err != nil {
			continue
		}

		if math.Abs(p.Y-cfg.FloorHeight) > cfg.HeightTolerance {
			continue
		}

		if !farEnough(p, accepted, cfg.MinSeparation) {
			continue
		}

		accepted = append(accepted, Viewpoint{Position: p, FloorHeight: cfg.FloorHeight})
	}

	if len(accepted) == 0 {
		return nil, ErrNoViewpoints
	}
	if len(accepted) < cfg.TargetCount {
		return accepted, ErrPartialSelection
	}
	return accepted, nil
}

func farEnough(p r3.Vector, accepted []Viewpoint, minSeparation float64) bool {
	for _, v := range accepted {
		if p.Sub(v.Position).Norm() < minSeparation {
			return false
		}
	}
	return true
}
