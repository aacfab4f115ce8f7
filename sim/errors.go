package sim

import "errors"

var (
	// ErrNavMeshUnavailable is returned when a scene has no navigation data
	// and rebuilding it failed. The scene is skipped, not fatal.
	ErrNavMeshUnavailable = errors.New("navigation mesh unavailable")

	// ErrSceneUnavailable is returned when a scene asset cannot be loaded.
	ErrSceneUnavailable = errors.New("scene unavailable")

	// ErrNoColorImage is returned when a render produced no frame for the
	// configured color sensor. Counted as a capture failure, never as a
	// validation rejection.
	ErrNoColorImage = errors.New("render returned no color image")

	// ErrMalformedImage is returned when a render produced a frame without at
	// least three color channels or with empty bounds.
	ErrMalformedImage = errors.New("render returned a malformed image")
)
