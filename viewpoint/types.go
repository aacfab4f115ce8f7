package viewpoint

import (
	"github.com/golang/geo/r3"
)

// Viewpoint is a floor-level standing position accepted into a scene's
// working set. Positions are in world coordinates, meters, Y up.
type Viewpoint struct {
	Position    r3.Vector
	FloorHeight float64
}

// GazeSpec names one logical viewing direction as a yaw/pitch pair.
// The catalog of GazeSpecs is built once per run and read-only afterwards.
type GazeSpec struct {
	Name         string
	YawDegrees   float64
	PitchDegrees float64
}

// BodyRotation is the upright body facing: yaw about world up only.
// Pitch never appears here, so the body's footing stays gravity-aligned.
func (g GazeSpec) BodyRotation() Rotation {
	return Yaw(g.YawDegrees)
}

// HeadRotation is the sensor tilt: pitch about the body-local lateral axis.
func (g GazeSpec) HeadRotation() Rotation {
	return Pitch(g.PitchDegrees)
}

// Combined is the single-rotation form for render oracles without a separate
// head transform: pitch composed in the already-yawed body frame. The reverse
// order would pitch about the world lateral axis and roll the horizon.
func (g GazeSpec) Combined() Rotation {
	return g.BodyRotation().Mul(g.HeadRotation())
}

// YawSpec describes one yaw direction in a gaze catalog request.
type YawSpec struct {
	Degrees float64
	Label   string
	// PitchVariants marks this yaw for additional look-up/look-down entries.
	// Only a subset of yaws gets variants to bound the catalog size.
	PitchVariants bool
}

// PitchSpec describes one pitch variant in a gaze catalog request.
type PitchSpec struct {
	Degrees float64
	Label   string
}

// Verdict is the outcome of validating one rendered image. The raw statistics
// are populated even on rejection so thresholds can be tuned offline.
type Verdict struct {
	Accepted   bool
	Brightness float64
	Variance   float64
	BlackRatio float64
	// MeanColor is the per-channel mean in 8-bit scale (R, G, B).
	MeanColor [3]float64
}
