package sim

import (
	"github.com/golang/geo/r3"
)

// Simulator coordinate conventions, pinned once. Every pose crossing the
// oracle boundary is expressed in this frame; nothing downstream rediscovers
// axes or handedness per call site.
//
//   - World up (anti-gravity) is +Y.
//   - The camera's local forward is -Z; +X is the camera's right.
//   - Rotations are right-handed, so positive yaw about +Y turns the
//     observer counter-clockwise seen from above.
var (
	// WorldUp is the anti-gravity axis.
	WorldUp = r3.Vector{Y: 1}

	// CameraForward is the camera's local viewing direction.
	CameraForward = r3.Vector{Z: -1}

	// CameraRight is the camera's local lateral axis.
	CameraRight = r3.Vector{X: 1}
)
