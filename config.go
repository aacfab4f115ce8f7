package habitat

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/varun-cfg/Habitat/sim"
	"github.com/varun-cfg/Habitat/viewpoint"
)

// Config holds all configuration for an extraction run.
type Config struct {
	// Scenes are simulator scene assets, processed in order.
	Scenes []string `json:"scenes"`

	// OutputDir receives one subdirectory of accepted images per scene.
	OutputDir string `json:"output_dir"`

	// DiagnosticsDir, when set, receives per-scene PCD dumps of the
	// height-sampling cloud for offline inspection.
	DiagnosticsDir string `json:"diagnostics_dir,omitempty"`

	// EyeHeight is the observer's eye elevation above the inferred floor,
	// in meters. The floor is computed once per scene so eye height is
	// uniform across the dataset.
	EyeHeight float64 `json:"eye_height"`

	// NavMesh are the agent dimensions for walkable-surface computation.
	NavMesh sim.NavMeshParams `json:"navmesh"`

	// Sampling tunes floor inference, viewpoint selection, and image gating.
	Sampling viewpoint.Config `json:"sampling"`

	// Yaws and Pitches define the gaze catalog. Empty slices fall back to
	// the four cardinal facings with forward-only pitch variants.
	Yaws    []viewpoint.YawSpec   `json:"yaws,omitempty"`
	Pitches []viewpoint.PitchSpec `json:"pitches,omitempty"`

	// Sim configures the simulator adapter (camera resource, sensor name,
	// render device).
	Sim SimConfig `json:"sim"`
}

// SimConfig is the JSON-facing subset of the adapter configuration.
type SimConfig struct {
	CameraName string `json:"camera_name"`
	SensorName string `json:"sensor_name"`
	GPUDevice  int    `json:"gpu_device"`
}

// DefaultConfig returns a Config with the standing-human defaults.
func DefaultConfig() Config {
	return Config{
		OutputDir: "extraction_output",
		EyeHeight: 1.6,
		NavMesh:   sim.DefaultNavMeshParams(),
		Sampling:  viewpoint.DefaultConfig(),
		Yaws:      viewpoint.DefaultYaws(),
		Pitches:   viewpoint.DefaultPitches(),
		Sim: SimConfig{
			CameraName: "rgb-cam",
			SensorName: "rgb",
		},
	}
}

// LoadConfig reads a JSON config file over the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return &cfg, nil
}
