// Package habitat extracts a human-perspective image dataset from walkable
// indoor 3-D scenes. For each scene it infers the floor level from navmesh
// height samples, picks well-separated standing positions, orients a virtual
// observer through a gravity-aligned gaze catalog, and keeps only renders
// that pass a perceptual-quality gate.
package habitat

import (
	"context"

	"go.viam.com/rdk/logging"
	"go.viam.com/rdk/pointcloud"

	"github.com/varun-cfg/Habitat/sim"
	"github.com/varun-cfg/Habitat/viewpoint"
)

// Extractor holds the oracle wiring and state for an extraction run.
type Extractor struct {
	logger   logging.Logger
	provider sim.SceneProvider
	cfg      Config

	// State for the scene currently being processed.
	state *SceneState
}

// SceneState tracks the working set of the current scene. It is rebuilt when
// the scene changes and discarded afterwards.
type SceneState struct {
	// Scene is the asset currently loaded in the simulator.
	Scene string

	// FloorHeight is the inferred ground elevation, fixed once per scene.
	FloorHeight float64

	// Viewpoints is the ordered working set; insertion order is preserved
	// in output naming for reproducibility.
	Viewpoints []viewpoint.Viewpoint

	// SampleCloud is the height-sampling cloud, kept for diagnostics.
	SampleCloud pointcloud.PointCloud
}

// NewExtractor wires an Extractor to a scene provider.
func NewExtractor(provider sim.SceneProvider, logger logging.Logger, cfg Config) *Extractor {
	return &Extractor{
		logger:   logger,
		provider: provider,
		cfg:      cfg,
		state:    &SceneState{},
	}
}

// Config returns the extractor's configuration.
func (e *Extractor) Config() Config {
	return e.cfg
}

// State returns the current scene's working state.
func (e *Extractor) State() *SceneState {
	return e.state
}

// OpenScene loads a scene through the provider and resets the working state.
func (e *Extractor) OpenScene(ctx context.Context, scene string) (sim.SurfaceOracle, sim.RenderOracle, error) {
	surface, render, err := e.provider.OpenScene(ctx, scene)
	if err != nil {
		return nil, nil, err
	}
	e.resetState(scene)
	return surface, render, nil
}

// resetState discards the previous scene's working set.
func (e *Extractor) resetState(scene string) {
	e.state = &SceneState{Scene: scene}
}
