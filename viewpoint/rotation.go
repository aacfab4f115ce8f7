package viewpoint

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Rotation is a unit quaternion. The zero value is not valid; use Identity,
// Yaw, Pitch, or AxisAngle to construct one. World conventions: +Y is up,
// the camera's local forward is -Z, rotations are right-handed.
type Rotation struct {
	q quat.Number
}

// Identity returns the neutral rotation.
func Identity() Rotation {
	return Rotation{q: quat.Number{Real: 1}}
}

// AxisAngle returns the rotation of angle radians about the given axis.
// The axis need not be normalized. A zero axis yields the identity.
func AxisAngle(axis r3.Vector, angle float64) Rotation {
	n := axis.Norm()
	if n < 1e-12 {
		return Identity()
	}
	s := math.Sin(angle/2) / n
	return Rotation{q: quat.Number{
		Real: math.Cos(angle / 2),
		Imag: axis.X * s,
		Jmag: axis.Y * s,
		Kmag: axis.Z * s,
	}}
}

// Yaw returns a rotation of deg degrees about world up (+Y). Positive yaw
// turns counter-clockwise seen from above. Yaw(0) is the exact identity.
func Yaw(deg float64) Rotation {
	return AxisAngle(r3.Vector{Y: 1}, deg*math.Pi/180)
}

// Pitch returns a rotation of deg degrees about the lateral axis (+X).
// Positive pitch looks up. Pitch(0) is the exact identity.
func Pitch(deg float64) Rotation {
	return AxisAngle(r3.Vector{X: 1}, deg*math.Pi/180)
}

// Mul composes r with s: the result applies s within r's frame. Composing a
// body yaw with a head pitch as yaw.Mul(pitch) keeps the pitch axis attached
// to the body, which is what keeps the horizon level. The product is
// renormalized to bound floating-point drift across compositions.
func (r Rotation) Mul(s Rotation) Rotation {
	return Rotation{q: normalize(quat.Mul(r.q, s.q))}
}

// Inverse returns the rotation undoing r.
func (r Rotation) Inverse() Rotation {
	return Rotation{q: quat.Conj(r.q)}
}

// Apply rotates v by r.
func (r Rotation) Apply(v r3.Vector) r3.Vector {
	p := quat.Number{Imag: v.X, Jmag: v.Y, Kmag: v.Z}
	p = quat.Mul(quat.Mul(r.q, p), quat.Conj(r.q))
	return r3.Vector{X: p.Imag, Y: p.Jmag, Z: p.Kmag}
}

// Forward returns the world-frame direction of the camera's -Z axis under r.
func (r Rotation) Forward() r3.Vector {
	return r.Apply(r3.Vector{Z: -1})
}

// ApproxEqual reports whether r and s represent the same orientation within
// tol, accounting for the q / -q double cover.
func (r Rotation) ApproxEqual(s Rotation, tol float64) bool {
	d := quat.Mul(quat.Conj(r.q), s.q)
	return math.Abs(math.Abs(d.Real)-1) < tol
}

// AxisAngles decomposes r into a normalized axis and an angle in radians.
// The identity reports a zero angle about +Y.
func (r Rotation) AxisAngles() (r3.Vector, float64) {
	q := r.q
	if q.Real < 0 {
		q = quat.Scale(-1, q)
	}
	sinHalf := math.Sqrt(q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if sinHalf < 1e-12 {
		return r3.Vector{Y: 1}, 0
	}
	angle := 2 * math.Atan2(sinHalf, q.Real)
	return r3.Vector{X: q.Imag / sinHalf, Y: q.Jmag / sinHalf, Z: q.Kmag / sinHalf}, angle
}

// Quat exposes the underlying quaternion for interop with spatialmath.
func (r Rotation) Quat() quat.Number {
	return r.q
}

func normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}
