package habitat

import (
	"context"
	"fmt"
	"image"

	"github.com/golang/geo/r3"

	"github.com/varun-cfg/Habitat/sim"
	"github.com/varun-cfg/Habitat/viewpoint"
)

// observerPose builds the pose for one (viewpoint, gaze) pair. The observer
// stands at the viewpoint with its eye at FloorHeight + EyeHeight, the
// scene's fixed floor, not the sampled point's own height, so eye height is
// uniform. Body carries yaw only; the sensor head carries the pitch.
func (e *Extractor) observerPose(vp viewpoint.Viewpoint, gaze viewpoint.GazeSpec) sim.ObserverPose {
	return sim.ObserverPose{
		Position: r3.Vector{
			X: vp.Position.X,
			Y: vp.FloorHeight + e.cfg.EyeHeight,
			Z: vp.Position.Z,
		},
		Body: gaze.BodyRotation(),
		Head: gaze.HeadRotation(),
	}
}

// capture places the observer and requests one frame from the configured
// color sensor. Every error returned here is a capture failure: the
// orchestrator skips the single capture and counts it apart from validator
// rejections.
func (e *Extractor) capture(ctx context.Context, oracle sim.RenderOracle, pose sim.ObserverPose) (image.Image, error) {
	if err := oracle.SetObserverPose(ctx, pose); err != nil {
		return nil, fmt.Errorf("placing observer: %w", err)
	}

	frames, err := oracle.Render(ctx)
	if err != nil {
		return nil, fmt.Errorf("rendering: %w", err)
	}

	img, ok := frames[e.cfg.Sim.SensorName]
	if !ok || img == nil {
		return nil, fmt.Errorf("%w: sensor %q absent from render", sim.ErrNoColorImage, e.cfg.Sim.SensorName)
	}

	if img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty bounds", sim.ErrMalformedImage)
	}
	if !hasColorChannels(img) {
		return nil, fmt.Errorf("%w: fewer than 3 channels", sim.ErrMalformedImage)
	}

	return img, nil
}

// hasColorChannels rejects single-channel frames (a depth or gray sensor
// wired where the color sensor should be).
func hasColorChannels(img image.Image) bool {
	switch img.(type) {
	case *image.Gray, *image.Gray16, *image.Alpha, *image.Alpha16:
		return false
	}
	return true
}
