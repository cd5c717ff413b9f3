package walker

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Identity is the rotation that leaves every vector unchanged.
var Identity = r3.Rotation{Real: 1}

// Forward is the local axis that [LookRotation] aligns with the requested
// direction.
var Forward = r3.Vec{Z: 1}

// WorldUp is the default up vector.
var WorldUp = r3.Vec{Y: 1}

const degenerate = 1e-18

// LookRotation returns the rotation that turns [Forward] (+Z) to point along
// forward while keeping the rotated +Y axis as close to up as possible.
//
// It reports false if forward has zero length. If forward is parallel to up,
// an arbitrary perpendicular up vector is used instead.
func LookRotation(forward, up r3.Vec) (r3.Rotation, bool) {
	if r3.Norm2(forward) < degenerate {
		return Identity, false
	}
	z := r3.Unit(forward)
	x := r3.Cross(up, z)
	if r3.Norm2(x) < degenerate {
		// Pick whichever world axis is least aligned with forward.
		alt := r3.Vec{X: 1}
		if math.Abs(z.X) > 0.9 {
			alt = r3.Vec{Y: 1}
		}
		x = r3.Cross(alt, z)
	}
	x = r3.Unit(x)
	y := r3.Cross(z, x)
	return fromBasis(x, y, z), true
}

// fromBasis converts the rotation matrix with columns x, y, z to a unit
// quaternion.
func fromBasis(x, y, z r3.Vec) r3.Rotation {
	m00, m01, m02 := x.X, y.X, z.X
	m10, m11, m12 := x.Y, y.Y, z.Y
	m20, m21, m22 := x.Z, y.Z, z.Z

	var q quat.Number
	switch trace := m00 + m11 + m22; {
	case trace > 0:
		s := 0.5 / math.Sqrt(trace+1)
		q = quat.Number{
			Real: 0.25 / s,
			Imag: (m21 - m12) * s,
			Jmag: (m02 - m20) * s,
			Kmag: (m10 - m01) * s,
		}
	case m00 > m11 && m00 > m22:
		s := 2 * math.Sqrt(1+m00-m11-m22)
		q = quat.Number{
			Real: (m21 - m12) / s,
			Imag: 0.25 * s,
			Jmag: (m01 + m10) / s,
			Kmag: (m02 + m20) / s,
		}
	case m11 > m22:
		s := 2 * math.Sqrt(1+m11-m00-m22)
		q = quat.Number{
			Real: (m02 - m20) / s,
			Imag: (m01 + m10) / s,
			Jmag: 0.25 * s,
			Kmag: (m12 + m21) / s,
		}
	default:
		s := 2 * math.Sqrt(1+m22-m00-m11)
		q = quat.Number{
			Real: (m10 - m01) / s,
			Imag: (m02 + m20) / s,
			Jmag: (m12 + m21) / s,
			Kmag: 0.25 * s,
		}
	}
	return r3.Rotation(quat.Scale(1/quat.Abs(q), q))
}

// Nlerp interpolates between two rotations along the shorter arc and
// normalizes the result. t is clamped to [0, 1].
func Nlerp(a, b r3.Rotation, t float64) r3.Rotation {
	t = min(max(t, 0), 1)
	qa, qb := quat.Number(a), quat.Number(b)
	if dot(qa, qb) < 0 {
		qb = quat.Scale(-1, qb)
	}
	q := quat.Add(quat.Scale(1-t, qa), quat.Scale(t, qb))
	n := quat.Abs(q)
	if n == 0 {
		return b
	}
	return r3.Rotation(quat.Scale(1/n, q))
}

// Angle returns the angle in radians of the smallest rotation that turns a
// into b.
func Angle(a, b r3.Rotation) float64 {
	d := math.Abs(dot(quat.Number(a), quat.Number(b)))
	return 2 * math.Acos(min(d, 1))
}

func dot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}
