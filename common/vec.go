package common

import (
	"github.com/chewxy/math32"
)

// Vec3 is a 3-component float32 vector. Plain value type; all methods return
// new values and never mutate the receiver.
type Vec3 struct {
	X, Y, Z float32
}

// V3 constructs a Vec3 from components.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return V3(v.X+o.X, v.Y+o.Y, v.Z+o.Z)
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return V3(v.X-o.X, v.Y-o.Y, v.Z-o.Z)
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 {
	return V3(v.X*s, v.Y*s, v.Z*s)
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return V3(
		v.Y*o.Z-v.Z*o.Y,
		v.Z*o.X-v.X*o.Z,
		v.X*o.Y-v.Y*o.X,
	)
}

// LengthSq returns the squared length of v.
func (v Vec3) LengthSq() float32 {
	return v.Dot(v)
}

// Length returns the length of v.
func (v Vec3) Length() float32 {
	return math32.Sqrt(v.LengthSq())
}

// DistanceTo returns the distance between v and o.
func (v Vec3) DistanceTo(o Vec3) float32 {
	return v.Sub(o).Length()
}

// Normalized returns v scaled to unit length. Returns the zero vector when v
// is too short to normalize safely.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l < 1e-8 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Lerp linearly interpolates from v toward o by t.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// Damp eases v toward target with a frame-rate independent exponential blend.
func (v Vec3) Damp(target Vec3, lambda, dt float32) Vec3 {
	return v.Lerp(target, DampFactor(lambda, dt))
}
