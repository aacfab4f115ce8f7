package sim

import (
	"context"
	"fmt"
	"image"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"google.golang.org/protobuf/encoding/protojson"

	"go.viam.com/rdk/components/camera"
	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/rimage"
	"go.viam.com/rdk/robot"
	"go.viam.com/rdk/spatialmath"
	"go.viam.com/rdk/utils"

	"github.com/varun-cfg/Habitat/viewpoint"
)

// ViamConfig configures the Viam-machine-backed simulator adapter.
type ViamConfig struct {
	// CameraName is the resource name of the simulator's color camera
	// component. The simulator module also serves scene and navmesh control
	// through this component's DoCommand surface.
	CameraName string
	// SensorName keys the color frame in Render output.
	SensorName string
	// GPUDevice selects the render device, passed explicitly at scene load
	// rather than read from ambient environment state.
	GPUDevice int
	// Correction is a fixed sensor-mount correction composed after the head
	// rotation. Leave zero for the identity.
	Correction *viewpoint.Rotation
}

// ViamProvider opens scenes on a remote Viam machine hosting the simulator.
type ViamProvider struct {
	machine robot.Robot
	logger  logging.Logger
	cfg     ViamConfig
	cam     camera.Camera
}

// NewViamProvider looks up the simulator's camera component on the machine.
func NewViamProvider(machine robot.Robot, logger logging.Logger, cfg ViamConfig) (*ViamProvider, error) {
	if cfg.CameraName == "" {
		cfg.CameraName = "rgb-cam"
	}
	if cfg.SensorName == "" {
		cfg.SensorName = "rgb"
	}
	cam, err := camera.FromProvider(machine, cfg.CameraName)
	if err != nil {
		return nil, fmt.Errorf("simulator camera (%s): %w", cfg.CameraName, err)
	}
	return &ViamProvider{machine: machine, logger: logger, cfg: cfg, cam: cam}, nil
}

// OpenScene loads a scene asset in the simulator. The returned oracles are
// bound to that scene and invalidated by the next OpenScene call.
func (p *ViamProvider) OpenScene(ctx context.Context, scene string) (SurfaceOracle, RenderOracle, error) {
	p.logger.Infof("Loading scene %s (gpu %d)", scene, p.cfg.GPUDevice)
	resp, err := p.cam.DoCommand(ctx, map[string]interface{}{
		"load_scene": scene,
		"gpu_device": p.cfg.GPUDevice,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrSceneUnavailable, scene, err)
	}
	if ok, _ := resp["loaded"].(bool); !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrSceneUnavailable, scene)
	}
	o := &viamOracle{provider: p, scene: scene}
	return o, o, nil
}

// viamOracle implements both SurfaceOracle and RenderOracle against the
// simulator's DoCommand surface and camera stream for one loaded scene.
type viamOracle struct {
	provider *ViamProvider
	scene    string
}

func (o *viamOracle) Ready(ctx context.Context) (bool, error) {
	resp, err := o.provider.cam.DoCommand(ctx, map[string]interface{}{"navmesh_ready": true})
	if err != nil {
		return false, fmt.Errorf("navmesh_ready: %w", err)
	}
	ready, _ := resp["ready"].(bool)
	return ready, nil
}

func (o *viamOracle) Rebuild(ctx context.Context, params NavMeshParams) error {
	resp, err := o.provider.cam.DoCommand(ctx, map[string]interface{}{
		"recompute_navmesh": map[string]interface{}{
			"agent_height":    params.AgentHeight,
			"agent_radius":    params.AgentRadius,
			"agent_max_climb": params.MaxClimb,
			"agent_max_slope": params.MaxSlope,
		},
	})
	if err != nil {
		return fmt.Errorf("recompute_navmesh: %w", err)
	}
	if ok, _ := resp["ok"].(bool); !ok {
		return ErrNavMeshUnavailable
	}
	return nil
}

func (o *viamOracle) RandomPoint(ctx context.Context) (r3.Vector, error) {
	resp, err := o.provider.cam.DoCommand(ctx, map[string]interface{}{"random_navigable_point": true})
	if err != nil {
		return r3.Vector{}, fmt.Errorf("random_navigable_point: %w", err)
	}
	raw, ok := resp["point"]
	if !ok {
		return r3.Vector{}, fmt.Errorf("random_navigable_point response missing 'point' key")
	}
	return decodeVector(raw)
}

func (o *viamOracle) Bounds(ctx context.Context) (r3.Vector, r3.Vector, error) {
	resp, err := o.provider.cam.DoCommand(ctx, map[string]interface{}{"navmesh_bounds": true})
	if err != nil {
		return r3.Vector{}, r3.Vector{}, fmt.Errorf("navmesh_bounds: %w", err)
	}
	lo, err := decodeVector(resp["min"])
	if err != nil {
		return r3.Vector{}, r3.Vector{}, fmt.Errorf("navmesh_bounds min: %w", err)
	}
	hi, err := decodeVector(resp["max"])
	if err != nil {
		return r3.Vector{}, r3.Vector{}, fmt.Errorf("navmesh_bounds max: %w", err)
	}
	return lo, hi, nil
}

func (o *viamOracle) SetObserverPose(ctx context.Context, pose ObserverPose) error {
	head := pose.Head
	if o.provider.cfg.Correction != nil {
		head = head.Mul(*o.provider.cfg.Correction)
	}

	bodyJSON, err := marshalPose(pose.Position, pose.Body)
	if err != nil {
		return fmt.Errorf("marshal body pose: %w", err)
	}
	headJSON, err := marshalPose(r3.Vector{}, head)
	if err != nil {
		return fmt.Errorf("marshal head pose: %w", err)
	}

	resp, err := o.provider.cam.DoCommand(ctx, map[string]interface{}{
		"set_observer_pose": map[string]interface{}{
			"body": bodyJSON,
			"sensors": map[string]interface{}{
				o.provider.cfg.SensorName: headJSON,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("set_observer_pose: %w", err)
	}
	if ok, _ := resp["ok"].(bool); !ok {
		return fmt.Errorf("set_observer_pose rejected: %v", resp)
	}
	return nil
}

func (o *viamOracle) Render(ctx context.Context) (map[string]image.Image, error) {
	data, _, err := o.provider.cam.Image(ctx, utils.MimeTypePNG, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoColorImage, err)
	}
	img, err := rimage.DecodeImage(ctx, data, utils.MimeTypePNG)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedImage, err)
	}
	return map[string]image.Image{o.provider.cfg.SensorName: img}, nil
}

// marshalPose encodes a position and rotation as a protobuf Pose in JSON,
// the canonical wire form for spatial data on the DoCommand surface.
func marshalPose(pos r3.Vector, rot viewpoint.Rotation) (string, error) {
	axis, theta := rot.AxisAngles()
	p := spatialmath.NewPose(pos, &spatialmath.R4AA{
		Theta: theta,
		RX:    axis.X,
		RY:    axis.Y,
		RZ:    axis.Z,
	})
	bytes, err := protojson.Marshal(spatialmath.PoseToProtobuf(p))
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// decodeVector accepts either a {x,y,z} map or a 3-element array, the two
// shapes simulator modules emit for points.
func decodeVector(raw interface{}) (r3.Vector, error) {
	switch val := raw.(type) {
	case []interface{}:
		if len(val) != 3 {
			return r3.Vector{}, fmt.Errorf("point has %d components, want 3", len(val))
		}
		var out [3]float64
		for i, c := range val {
			f, ok := c.(float64)
			if !ok {
				return r3.Vector{}, fmt.Errorf("point component %d is %T, want float64", i, c)
			}
			out[i] = f
		}
		return r3.Vector{X: out[0], Y: out[1], Z: out[2]}, nil
	default:
		var v struct {
			X float64 `mapstructure:"x"`
			Y float64 `mapstructure:"y"`
			Z float64 `mapstructure:"z"`
		}
		if err := mapstructure.Decode(raw, &v); err != nil {
			return r3.Vector{}, fmt.Errorf("decode point: %w", err)
		}
		return r3.Vector{X: v.X, Y: v.Y, Z: v.Z}, nil
	}
}
