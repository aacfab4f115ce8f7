package viewpoint

// FloorConfig holds parameters for floor-level inference.
type FloorConfig struct {
	Samples    int     // Height samples to draw from the surface
	Percentile float64 // Low percentile taken as the ground elevation
	MinSamples int     // Minimum batch size before estimation fails
}

// Config aggregates the tunables of the sampling and gating pipeline.
type Config struct {
	Floor    FloorConfig
	Select   SelectConfig
	Validate ValidateConfig
}

// DefaultConfig returns a Config with the thresholds used for indoor scene
// extraction at human eye height.
func DefaultConfig() Config {
	return Config{
		Floor: FloorConfig{
			Samples:    500,
			Percentile: 0.05,
			MinSamples: 50,
		},
		Select: SelectConfig{
			HeightTolerance: 0.1,
			MinSeparation:   1.5,
			TargetCount:     10,
			MaxAttempts:     500,
		},
		Validate: ValidateConfig{
			MinBrightness:  15,
			MinVariance:    150,
			BlackThreshold: 25,
			MaxBlackRatio:  0.6,
			MinMeanColor:   20,
		},
	}
}
