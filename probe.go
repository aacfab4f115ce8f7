package habitat

import (
	"context"
	"fmt"

	"github.com/varun-cfg/Habitat/viewpoint"
)

// Probe loads one scene and captures every gaze direction from a single
// floor-level viewpoint, logging the validator statistics for each without
// persisting anything. It exists for threshold tuning and for checking the
// observer orientation against a freshly built navmesh.
func Probe(ctx context.Context, e *Extractor, scene string) error {
	surface, render, err := e.OpenScene(ctx, scene)
	if err != nil {
		return err
	}

	if err := e.PrepareScene(ctx, surface); err != nil {
		return err
	}
	if len(e.state.Viewpoints) == 0 {
		return viewpoint.ErrNoViewpoints
	}
	vp := e.state.Viewpoints[0]

	catalog := viewpoint.BuildGazeCatalog(e.cfg.Yaws, e.cfg.Pitches)
	for _, gaze := range catalog {
		if err := ctx.Err(); err != nil {
			return err
		}

		img, err := e.capture(ctx, render, e.observerPose(vp, gaze))
		if err != nil {
			e.logger.Warnf("%-20s capture failed: %v", gaze.Name, err)
			continue
		}

		verdict := viewpoint.Validate(img, e.cfg.Sampling.Validate)
		quality := "CHECK"
		if verdict.Accepted {
			quality = "GOOD"
		}
		e.logger.Infof("%-5s %-20s | bright: %6.1f | var: %7.1f | black: %.2f",
			quality, gaze.Name, verdict.Brightness, verdict.Variance, verdict.BlackRatio)

		forward := gaze.Combined().Forward()
		e.logger.Debugf("%-20s forward=(%.3f, %.3f, %.3f)", gaze.Name, forward.X, forward.Y, forward.Z)
	}

	return nil
}

// ProbeFloor loads one scene and reports only the floor estimate, without
// selecting viewpoints or rendering.
func ProbeFloor(ctx context.Context, e *Extractor, scene string) (float64, error) {
	surface, _, err := e.OpenScene(ctx, scene)
	if err != nil {
		return 0, err
	}
	if err := e.ensureNavMesh(ctx, surface); err != nil {
		return 0, err
	}
	floor, err := e.EstimateFloor(ctx, surface)
	if err != nil {
		return 0, fmt.Errorf("floor estimation: %w", err)
	}
	e.state.FloorHeight = floor
	e.saveDiagnostics()
	return floor, nil
}
