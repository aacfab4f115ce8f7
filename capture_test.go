package habitat

import (
	"context"
	"errors"
	"image"
	"testing"

	"go.viam.com/rdk/logging"

	"github.com/varun-cfg/Habitat/sim"
	"github.com/varun-cfg/Habitat/viewpoint"
)

type cannedRender struct {
	frames map[string]image.Image
	err    error
}

func (r *cannedRender) SetObserverPose(ctx context.Context, pose sim.ObserverPose) error {
	return nil
}

func (r *cannedRender) Render(ctx context.Context) (map[string]image.Image, error) {
	return r.frames, r.err
}

func testExtractor(t *testing.T) *Extractor {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	return NewExtractor(nil, logging.NewTestLogger(t), cfg)
}

func TestCapture_MissingSensorIsCaptureFailure(t *testing.T) {
	e := testExtractor(t)
	oracle := &cannedRender{frames: map[string]image.Image{"depth": image.NewGray(image.Rect(0, 0, 4, 4))}}

	_, err := e.capture(context.Background(), oracle, sim.ObserverPose{})
	if !errors.Is(err, sim.ErrNoColorImage) {
		t.Fatalf("expected ErrNoColorImage, got %v", err)
	}
}

func TestCapture_GrayFrameIsMalformed(t *testing.T) {
	e := testExtractor(t)
	oracle := &cannedRender{frames: map[string]image.Image{"rgb": image.NewGray(image.Rect(0, 0, 4, 4))}}

	_, err := e.capture(context.Background(), oracle, sim.ObserverPose{})
	if !errors.Is(err, sim.ErrMalformedImage) {
		t.Fatalf("expected ErrMalformedImage for single-channel frame, got %v", err)
	}
}

func TestCapture_EmptyBoundsIsMalformed(t *testing.T) {
	e := testExtractor(t)
	oracle := &cannedRender{frames: map[string]image.Image{"rgb": image.NewRGBA(image.Rect(0, 0, 0, 0))}}

	_, err := e.capture(context.Background(), oracle, sim.ObserverPose{})
	if !errors.Is(err, sim.ErrMalformedImage) {
		t.Fatalf("expected ErrMalformedImage for empty frame, got %v", err)
	}
}

func TestCapture_ColorFramePasses(t *testing.T) {
	e := testExtractor(t)
	want := image.NewRGBA(image.Rect(0, 0, 8, 8))
	oracle := &cannedRender{frames: map[string]image.Image{"rgb": want}}

	got, err := e.capture(context.Background(), oracle, sim.ObserverPose{})
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if got != want {
		t.Fatal("capture returned a different image than the oracle rendered")
	}
}

func TestObserverPose_UniformEyeHeight(t *testing.T) {
	e := testExtractor(t)
	vp := viewpoint.Viewpoint{FloorHeight: 0.35}
	vp.Position.X, vp.Position.Y, vp.Position.Z = 2, 0.41, 3

	pose := e.observerPose(vp, viewpoint.GazeSpec{Name: "forward_level"})
	// Eye height comes from the scene's fixed floor, not the sampled point's
	// own elevation.
	if want := 0.35 + e.cfg.EyeHeight; pose.Position.Y != want {
		t.Errorf("eye height %v, want %v", pose.Position.Y, want)
	}
	if pose.Position.X != 2 || pose.Position.Z != 3 {
		t.Errorf("horizontal position moved: %v", pose.Position)
	}
}
