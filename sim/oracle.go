// Package sim defines the contracts of the external simulator (the walkable
// surface oracle and the render oracle) and the adapter that fulfils them
// over a Viam machine hosting the simulator module.
package sim

import (
	"context"
	"image"

	"github.com/golang/geo/r3"

	"github.com/varun-cfg/Habitat/viewpoint"
)

// NavMeshParams are the agent dimensions used to recompute which surfaces
// count as walkable. Units: meters and degrees.
type NavMeshParams struct {
	AgentHeight float64 `json:"agent_height"`
	AgentRadius float64 `json:"agent_radius"`
	MaxClimb    float64 `json:"agent_max_climb"`
	MaxSlope    float64 `json:"agent_max_slope"`
}

// DefaultNavMeshParams matches a standing adult: 1.6 m eye height, 0.3 m
// body radius, 0.2 m step height, 30 degree max slope.
func DefaultNavMeshParams() NavMeshParams {
	return NavMeshParams{
		AgentHeight: 1.6,
		AgentRadius: 0.3,
		MaxClimb:    0.2,
		MaxSlope:    30,
	}
}

// SurfaceOracle exposes random-point sampling over a scene's navigable area.
type SurfaceOracle interface {
	// Ready reports whether navigation data is loaded for the current scene.
	Ready(ctx context.Context) (bool, error)
	// RandomPoint draws one point from the walkable surface.
	RandomPoint(ctx context.Context) (r3.Vector, error)
	// Bounds returns the min and max corners of the navigable volume.
	Bounds(ctx context.Context) (r3.Vector, r3.Vector, error)
	// Rebuild recomputes navigation data with the given agent dimensions.
	Rebuild(ctx context.Context, params NavMeshParams) error
}

// ObserverPose places the observer for one capture. Body and head rotations
// are kept separate on purpose: the body carries yaw only and stays upright
// for footing, while the head carries the sensor pitch.
type ObserverPose struct {
	Position r3.Vector
	Body     viewpoint.Rotation
	Head     viewpoint.Rotation
}

// RenderOracle renders frames for a posed observer. The observer state is
// shared and mutable; callers must not issue overlapping captures.
type RenderOracle interface {
	// SetObserverPose moves the observer. The head rotation applies to every
	// sensor; this pipeline uses exactly one color sensor.
	SetObserverPose(ctx context.Context, pose ObserverPose) error
	// Render returns one frame per sensor name.
	Render(ctx context.Context) (map[string]image.Image, error)
}

// SceneProvider opens one scene at a time, yielding the oracles bound to it.
// Opening a new scene invalidates the previously returned oracles.
type SceneProvider interface {
	OpenScene(ctx context.Context, scene string) (SurfaceOracle, RenderOracle, error)
}
