package habitat

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"go.viam.com/rdk/pointcloud"

	"github.com/varun-cfg/Habitat/sim"
	"github.com/varun-cfg/Habitat/viewpoint"
)

// Run processes every configured scene: floor inference, viewpoint selection,
// then a capture-validate-persist pass over each (viewpoint, gaze) pair. No
// per-scene or per-capture problem is fatal; a scene that cannot be prepared
// is skipped with a diagnostic and the run continues.
func Run(ctx context.Context, e *Extractor) (*RunStats, error) {
	if err := os.MkdirAll(e.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	// The gaze catalog has no scene dependency; build it once per run.
	catalog := viewpoint.BuildGazeCatalog(e.cfg.Yaws, e.cfg.Pitches)
	e.logger.Infof("Gaze catalog: %d directions", len(catalog))

	stats := &RunStats{}
	for _, scene := range e.cfg.Scenes {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		e.logger.Infof("=== Processing scene: %s ===", sceneName(scene))
		sceneStats, err := e.runScene(ctx, scene, catalog)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return stats, err
			}
			e.logger.Warnf("Skipping scene %s: %v", sceneName(scene), err)
			stats.ScenesSkipped++
			continue
		}

		e.logger.Infof("Scene %s complete: %d/%d captures accepted",
			sceneStats.Scene, sceneStats.Accepted, sceneStats.Captures)
		stats.add(sceneStats)
	}

	e.logger.Infof("All scenes processed: %d accepted images, %d scenes skipped",
		stats.TotalAccepted, stats.ScenesSkipped)
	return stats, nil
}

// runScene prepares one scene and captures its full working set. The
// returned error means the scene as a whole was unusable.
func (e *Extractor) runScene(ctx context.Context, scene string, catalog []viewpoint.GazeSpec) (SceneStats, error) {
	stats := SceneStats{Scene: sceneName(scene)}

	surface, render, err := e.OpenScene(ctx, scene)
	if err != nil {
		return stats, err
	}

	if err := e.PrepareScene(ctx, surface); err != nil {
		return stats, err
	}
	stats.Viewpoints = len(e.state.Viewpoints)

	outDir := filepath.Join(e.cfg.OutputDir, stats.Scene)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return stats, fmt.Errorf("create scene output dir: %w", err)
	}

	e.captureScene(ctx, render, catalog, outDir, &stats)
	return stats, ctx.Err()
}

// PrepareScene runs the pre-capture phases against the current scene's
// surface oracle: navmesh readiness, floor inference, viewpoint selection.
// The results land in the extractor's scene state.
func (e *Extractor) PrepareScene(ctx context.Context, surface sim.SurfaceOracle) error {
	if err := e.ensureNavMesh(ctx, surface); err != nil {
		return err
	}

	if lo, hi, err := surface.Bounds(ctx); err == nil {
		e.logger.Infof("NavMesh bounds: min=(%.2f, %.2f, %.2f) max=(%.2f, %.2f, %.2f)",
			lo.X, lo.Y, lo.Z, hi.X, hi.Y, hi.Z)
	}

	floor, err := e.EstimateFloor(ctx, surface)
	if err != nil {
		return fmt.Errorf("floor estimation: %w", err)
	}
	e.state.FloorHeight = floor
	e.logger.Infof("Detected floor level: %.3fm (eye level %.3fm)", floor, floor+e.cfg.EyeHeight)
	e.saveDiagnostics()

	selectCfg := e.cfg.Sampling.Select
	selectCfg.FloorHeight = floor
	vps, err := viewpoint.SelectViewpoints(ctx, surface, selectCfg)
	switch {
	case errors.Is(err, viewpoint.ErrPartialSelection):
		e.logger.Warnf("Only %d of %d viewpoints found; proceeding with partial set",
			len(vps), selectCfg.TargetCount)
	case err != nil:
		return fmt.Errorf("viewpoint selection: %w", err)
	}
	e.state.Viewpoints = vps
	e.logger.Infof("Found %d viewpoints", len(vps))
	return nil
}

// EstimateFloor draws the configured number of height samples and infers the
// ground elevation at the configured low percentile. The sampled points are
// retained as a cloud for diagnostics.
func (e *Extractor) EstimateFloor(ctx context.Context, surface sim.SurfaceOracle) (float64, error) {
	floorCfg := e.cfg.Sampling.Floor
	heights := make([]float64, 0, floorCfg.Samples)
	cloud := pointcloud.NewBasicEmpty()

	for i := 0; i < floorCfg.Samples; i++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		p, err := surface.RandomPoint(ctx)
		if err != nil {
			continue
		}
		heights = append(heights, p.Y)
		if err := cloud.Set(p, nil); err != nil {
			e.logger.Debugf("Failed to add sample point: %v", err)
		}
	}
	e.state.SampleCloud = cloud

	return viewpoint.EstimateFloor(heights, floorCfg.Percentile, floorCfg.MinSamples)
}

// ensureNavMesh rebuilds navigation data when the scene loaded without it.
func (e *Extractor) ensureNavMesh(ctx context.Context, surface sim.SurfaceOracle) error {
	ready, err := surface.Ready(ctx)
	if err != nil {
		return err
	}
	if ready {
		return nil
	}

	e.logger.Info("NavMesh not found. Generating a new one...")
	if err := surface.Rebuild(ctx, e.cfg.NavMesh); err != nil {
		return err
	}

	ready, err = surface.Ready(ctx)
	if err != nil {
		return err
	}
	if !ready {
		return sim.ErrNavMeshUnavailable
	}
	e.logger.Info("NavMesh generation complete")
	return nil
}

// captureScene walks viewpoints x gazes in order, validating and persisting
// each accepted frame. Capture failures skip the single capture.
func (e *Extractor) captureScene(
	ctx context.Context,
	render sim.RenderOracle,
	catalog []viewpoint.GazeSpec,
	outDir string,
	stats *SceneStats,
) {
	for i, vp := range e.state.Viewpoints {
		e.logger.Infof("Viewpoint %d/%d", i+1, len(e.state.Viewpoints))

		for j, gaze := range catalog {
			if ctx.Err() != nil {
				return
			}

			// Spot-check the composition on the first viewpoint: level
			// gazes must keep the forward vector horizontal.
			if i == 0 && j < 3 && !gazeIsLevel(gaze) {
				stats.OrientationWarnings++
				e.logger.Warnf("Orientation check failed for %s", gaze.Name)
			}

			img, err := e.capture(ctx, render, e.observerPose(vp, gaze))
			if err != nil {
				stats.CaptureFailures++
				e.logger.Warnf("Capture failed for point %d %s: %v", i, gaze.Name, err)
				continue
			}
			stats.Captures++

			verdict := viewpoint.Validate(img, e.cfg.Sampling.Validate)
			if !verdict.Accepted {
				stats.Rejected++
				e.logger.Debugf("Rejected point %d %s: brightness=%.1f variance=%.1f black=%.2f",
					i, gaze.Name, verdict.Brightness, verdict.Variance, verdict.BlackRatio)
				continue
			}

			path := imagePath(outDir, i, gaze.Name)
			if err := saveImage(img, path); err != nil {
				e.logger.Warnf("Failed to save %s: %v", path, err)
				continue
			}
			stats.Accepted++
			if stats.Accepted <= 3 {
				e.logger.Infof("Saved: %s", gaze.Name)
			}
		}
	}

	if stats.OrientationWarnings > 0 {
		e.logger.Warnf("%d orientation issues detected; the sensor correction may need adjusting",
			stats.OrientationWarnings)
	}
}

// gazeIsLevel verifies that a zero-pitch gaze keeps the body-frame forward
// vector horizontal after composition.
func gazeIsLevel(gaze viewpoint.GazeSpec) bool {
	if gaze.PitchDegrees != 0 {
		return true
	}
	forward := gaze.Combined().Forward()
	return math.Abs(forward.Y) < 0.2
}
