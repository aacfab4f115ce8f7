package habitat

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/rdk/logging"

	"github.com/varun-cfg/Habitat/sim"
)

// fakeOracle is an in-memory scene: a flat square navmesh plus a canned
// frame generator. It implements both oracle interfaces.
type fakeOracle struct {
	rng      *rand.Rand
	side     float64
	floorY   float64
	ready    bool
	rebuilds int

	frame      func(n int) image.Image
	sensorName string
	renders    int
	poses      []sim.ObserverPose
}

func (o *fakeOracle) Ready(ctx context.Context) (bool, error) { return o.ready, nil }

func (o *fakeOracle) Rebuild(ctx context.Context, params sim.NavMeshParams) error {
	o.rebuilds++
	o.ready = true
	return nil
}

func (o *fakeOracle) RandomPoint(ctx context.Context) (r3.Vector, error) {
	return r3.Vector{
		X: o.rng.Float64() * o.side,
		Y: o.floorY,
		Z: o.rng.Float64() * o.side,
	}, nil
}

func (o *fakeOracle) Bounds(ctx context.Context) (r3.Vector, r3.Vector, error) {
	return r3.Vector{Y: o.floorY}, r3.Vector{X: o.side, Y: o.floorY, Z: o.side}, nil
}

func (o *fakeOracle) SetObserverPose(ctx context.Context, pose sim.ObserverPose) error {
	o.poses = append(o.poses, pose)
	return nil
}

func (o *fakeOracle) Render(ctx context.Context) (map[string]image.Image, error) {
	o.renders++
	img := o.frame(o.renders)
	if img == nil {
		return map[string]image.Image{}, nil
	}
	return map[string]image.Image{o.sensorName: img}, nil
}

// fakeProvider serves fakeOracles by scene name.
type fakeProvider struct {
	oracles map[string]*fakeOracle
}

func (p *fakeProvider) OpenScene(ctx context.Context, scene string) (sim.SurfaceOracle, sim.RenderOracle, error) {
	o, ok := p.oracles[scene]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", sim.ErrSceneUnavailable, scene)
	}
	return o, o, nil
}

func brightNoise(rng *rand.Rand) func(int) image.Image {
	return func(int) image.Image {
		img := image.NewRGBA(image.Rect(0, 0, 64, 48))
		for y := 0; y < 48; y++ {
			for x := 0; x < 64; x++ {
				img.SetRGBA(x, y, color.RGBA{
					uint8(64 + rng.Intn(192)), uint8(64 + rng.Intn(192)), uint8(64 + rng.Intn(192)), 255,
				})
			}
		}
		return img
	}
}

func allBlack() func(int) image.Image {
	return func(int) image.Image {
		return image.NewRGBA(image.Rect(0, 0, 64, 48))
	}
}

func testConfig(t *testing.T) Config {
	cfg := DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.Sampling.Floor.Samples = 100
	cfg.Sampling.Select.TargetCount = 5
	return cfg
}

func newFakeOracle(seed int64, frame func(int) image.Image) *fakeOracle {
	return &fakeOracle{
		rng:        rand.New(rand.NewSource(seed)),
		side:       10,
		ready:      true,
		frame:      frame,
		sensorName: "rgb",
	}
}

func TestRun_EndToEnd(t *testing.T) {
	logger := logging.NewTestLogger(t)
	oracle := newFakeOracle(1, brightNoise(rand.New(rand.NewSource(2))))
	provider := &fakeProvider{oracles: map[string]*fakeOracle{"scenes/apartment_0.glb": oracle}}

	cfg := testConfig(t)
	cfg.Scenes = []string{"scenes/apartment_0.glb"}

	e := NewExtractor(provider, logger, cfg)
	stats, err := Run(context.Background(), e)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(stats.Scenes) != 1 || stats.ScenesSkipped != 0 {
		t.Fatalf("got %d scenes, %d skipped; want 1, 0", len(stats.Scenes), stats.ScenesSkipped)
	}
	ss := stats.Scenes[0]
	if ss.Scene != "apartment_0" {
		t.Errorf("scene name %q, want apartment_0", ss.Scene)
	}
	if ss.Viewpoints != 5 {
		t.Fatalf("got %d viewpoints, want 5", ss.Viewpoints)
	}
	// 5 viewpoints x (4 level + 2 pitched) gazes, all bright and noisy.
	if ss.Captures != 30 || ss.Accepted != 30 || ss.Rejected != 0 || ss.CaptureFailures != 0 {
		t.Fatalf("captures=%d accepted=%d rejected=%d failures=%d; want 30/30/0/0",
			ss.Captures, ss.Accepted, ss.Rejected, ss.CaptureFailures)
	}
	if stats.TotalAccepted != 30 {
		t.Errorf("total accepted %d, want 30", stats.TotalAccepted)
	}

	// Output naming is deterministic from viewpoint index and gaze label.
	for _, name := range []string{"point_00_forward_level.png", "point_04_forward_down.png"} {
		path := filepath.Join(cfg.OutputDir, "apartment_0", name)
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output file %s: %v", name, err)
		}
	}

	// Every capture stands at the same eye height above the fixed floor, and
	// the body rotation never carries pitch.
	wantEye := oracle.floorY + cfg.EyeHeight
	for i, pose := range oracle.poses {
		if math.Abs(pose.Position.Y-wantEye) > 1e-12 {
			t.Fatalf("pose %d at eye height %v, want %v", i, pose.Position.Y, wantEye)
		}
		if forwardY := pose.Body.Forward().Y; math.Abs(forwardY) > 1e-12 {
			t.Fatalf("pose %d body rotation has vertical forward component %v", i, forwardY)
		}
	}
}

func TestRun_SceneSkippedOnLoadFailure(t *testing.T) {
	logger := logging.NewTestLogger(t)
	oracle := newFakeOracle(3, brightNoise(rand.New(rand.NewSource(4))))
	provider := &fakeProvider{oracles: map[string]*fakeOracle{"good.glb": oracle}}

	cfg := testConfig(t)
	cfg.Scenes = []string{"missing.glb", "good.glb"}

	e := NewExtractor(provider, logger, cfg)
	stats, err := Run(context.Background(), e)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.ScenesSkipped != 1 {
		t.Errorf("skipped %d scenes, want 1", stats.ScenesSkipped)
	}
	if len(stats.Scenes) != 1 || stats.Scenes[0].Scene != "good" {
		t.Fatalf("good scene not processed: %+v", stats.Scenes)
	}
	if stats.Scenes[0].Accepted == 0 {
		t.Error("good scene produced no accepted images")
	}
}

func TestRun_NavMeshRebuilt(t *testing.T) {
	logger := logging.NewTestLogger(t)
	oracle := newFakeOracle(5, brightNoise(rand.New(rand.NewSource(6))))
	oracle.ready = false
	provider := &fakeProvider{oracles: map[string]*fakeOracle{"s.glb": oracle}}

	cfg := testConfig(t)
	cfg.Scenes = []string{"s.glb"}

	e := NewExtractor(provider, logger, cfg)
	stats, err := Run(context.Background(), e)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if oracle.rebuilds != 1 {
		t.Errorf("navmesh rebuilt %d times, want 1", oracle.rebuilds)
	}
	if stats.TotalAccepted == 0 {
		t.Error("no images accepted after rebuild")
	}
}

func TestRun_DarkSceneAllRejected(t *testing.T) {
	logger := logging.NewTestLogger(t)
	oracle := newFakeOracle(7, allBlack())
	provider := &fakeProvider{oracles: map[string]*fakeOracle{"dark.glb": oracle}}

	cfg := testConfig(t)
	cfg.Scenes = []string{"dark.glb"}

	e := NewExtractor(provider, logger, cfg)
	stats, err := Run(context.Background(), e)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	ss := stats.Scenes[0]
	if ss.Accepted != 0 {
		t.Errorf("accepted %d dark images", ss.Accepted)
	}
	if ss.Rejected != ss.Captures || ss.Captures == 0 {
		t.Errorf("rejected=%d captures=%d; want all captures rejected", ss.Rejected, ss.Captures)
	}
	if ss.CaptureFailures != 0 {
		t.Errorf("dark frames miscounted as %d capture failures", ss.CaptureFailures)
	}

	entries, err := os.ReadDir(filepath.Join(cfg.OutputDir, "dark"))
	if err != nil {
		t.Fatalf("scene output dir missing: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("%d files persisted for a fully rejected scene", len(entries))
	}
}

func TestRun_CaptureFailuresCountedSeparately(t *testing.T) {
	logger := logging.NewTestLogger(t)
	noise := brightNoise(rand.New(rand.NewSource(8)))
	// Every third render yields no frame for the color sensor.
	frame := func(n int) image.Image {
		if n%3 == 0 {
			return nil
		}
		return noise(n)
	}
	oracle := newFakeOracle(9, frame)
	provider := &fakeProvider{oracles: map[string]*fakeOracle{"flaky.glb": oracle}}

	cfg := testConfig(t)
	cfg.Scenes = []string{"flaky.glb"}

	e := NewExtractor(provider, logger, cfg)
	stats, err := Run(context.Background(), e)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	ss := stats.Scenes[0]
	if ss.CaptureFailures == 0 {
		t.Fatal("no capture failures recorded")
	}
	if ss.Captures+ss.CaptureFailures != 30 {
		t.Errorf("captures=%d + failures=%d != 30 attempts", ss.Captures, ss.CaptureFailures)
	}
	if ss.Accepted != ss.Captures {
		t.Errorf("accepted=%d, want every successful capture (%d) accepted", ss.Accepted, ss.Captures)
	}
}
