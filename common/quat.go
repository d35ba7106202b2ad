package common

import (
	"github.com/chewxy/math32"
)

// Quat is a unit quaternion describing an orientation in 3D space.
// Identity faces -Z with +Y up, matching the camera convention.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity orientation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle builds a quaternion rotating angle radians around axis.
// The axis must be normalized.
//
// Parameters:
//   - axis: normalized rotation axis
//   - angle: rotation in radians
//
// Returns:
//   - Quat: the rotation quaternion
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	half := angle / 2
	s := math32.Sin(half)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math32.Cos(half),
	}
}

// QuatLookAt builds the orientation of a viewer at eye looking toward center
// with the given up vector. The result rotates the -Z axis onto the view
// direction, so it composes directly with ViewFromPose.
func QuatLookAt(eye, center, up Vec3) Quat {
	z := eye.Sub(center)
	if z.LengthSq() == 0 {
		z.Z = 1
	}
	z = z.Normalized()

	x := up.Cross(z)
	if x.LengthSq() == 0 {
		x.X = 1
	}
	x = x.Normalized()
	y := z.Cross(x)

	// Quaternion from the orthonormal basis (Shepperd's method).
	trace := x.X + y.Y + z.Z
	var q Quat
	switch {
	case trace > 0:
		s := math32.Sqrt(trace+1) * 2
		q = Quat{
			X: (y.Z - z.Y) / s,
			Y: (z.X - x.Z) / s,
			Z: (x.Y - y.X) / s,
			W: s / 4,
		}
	case x.X > y.Y && x.X > z.Z:
		s := math32.Sqrt(1+x.X-y.Y-z.Z) * 2
		q = Quat{
			X: s / 4,
			Y: (y.X + x.Y) / s,
			Z: (z.X + x.Z) / s,
			W: (y.Z - z.Y) / s,
		}
	case y.Y > z.Z:
		s := math32.Sqrt(1+y.Y-x.X-z.Z) * 2
		q = Quat{
			X: (y.X + x.Y) / s,
			Y: s / 4,
			Z: (z.Y + y.Z) / s,
			W: (z.X - x.Z) / s,
		}
	default:
		s := math32.Sqrt(1+z.Z-x.X-y.Y) * 2
		q = Quat{
			X: (z.X + x.Z) / s,
			Y: (z.Y + y.Z) / s,
			Z: s / 4,
			W: (x.Y - y.X) / s,
		}
	}
	return q.Normalized()
}

// Mul returns the composition q * o (apply o first, then q).
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Dot returns the 4D dot product of q and o.
func (q Quat) Dot(o Quat) float32 {
	return q.X*o.X + q.Y*o.Y + q.Z*o.Z + q.W*o.W
}

// Normalized returns q scaled to unit length, or identity if degenerate.
func (q Quat) Normalized() Quat {
	l := math32.Sqrt(q.Dot(q))
	if l < 1e-8 {
		return QuatIdentity()
	}
	inv := 1 / l
	return Quat{X: q.X * inv, Y: q.Y * inv, Z: q.Z * inv, W: q.W * inv}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*qv × (qv × v + w*v)
	qv := V3(q.X, q.Y, q.Z)
	t := qv.Cross(v).Add(v.Scale(q.W))
	return v.Add(qv.Cross(t).Scale(2))
}

// AngleTo returns the shortest rotation angle in radians between q and o.
func (q Quat) AngleTo(o Quat) float32 {
	d := Clamp(math32.Abs(q.Dot(o)), 0, 1)
	return 2 * math32.Acos(d)
}

// Slerp spherically interpolates from q toward o by t, always taking the
// short arc. Falls back to normalized linear interpolation when the
// quaternions are nearly parallel, where the spherical formula degenerates.
func (q Quat) Slerp(o Quat, t float32) Quat {
	cosTheta := q.Dot(o)
	if cosTheta < 0 {
		o = Quat{X: -o.X, Y: -o.Y, Z: -o.Z, W: -o.W}
		cosTheta = -cosTheta
	}

	if cosTheta > 0.9995 {
		return Quat{
			X: Lerp(q.X, o.X, t),
			Y: Lerp(q.Y, o.Y, t),
			Z: Lerp(q.Z, o.Z, t),
			W: Lerp(q.W, o.W, t),
		}.Normalized()
	}

	theta := math32.Acos(Clamp(cosTheta, -1, 1))
	sinTheta := math32.Sin(theta)
	wa := math32.Sin((1-t)*theta) / sinTheta
	wb := math32.Sin(t*theta) / sinTheta
	return Quat{
		X: q.X*wa + o.X*wb,
		Y: q.Y*wa + o.Y*wb,
		Z: q.Z*wa + o.Z*wb,
		W: q.W*wa + o.W*wb,
	}
}

// Damp eases q toward target with a frame-rate independent spherical blend.
func (q Quat) Damp(target Quat, lambda, dt float32) Quat {
	return q.Slerp(target, DampFactor(lambda, dt))
}
