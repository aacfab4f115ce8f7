package viewpoint

import "errors"

var (
	// ErrTooFewSamples is returned when a height-sample batch is below the
	// configured minimum for floor estimation.
	ErrTooFewSamples = errors.New("too few height samples for floor estimation")

	// ErrBadPercentile is returned when the requested percentile is outside [0, 1).
	ErrBadPercentile = errors.New("percentile must be in [0, 1)")

	// ErrNoViewpoints is returned when rejection sampling exhausts its attempt
	// budget without accepting a single viewpoint.
	ErrNoViewpoints = errors.New("no viewpoints found")

	// ErrPartialSelection is returned alongside a non-empty result when fewer
	// viewpoints than requested were found. Callers may proceed with the
	// partial set or skip the scene.
	ErrPartialSelection = errors.New("fewer viewpoints than requested")

	// ErrNilSource is returned when a nil point source is passed.
	ErrNilSource = errors.New("point source is nil")
)
