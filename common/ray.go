package common

import (
	"github.com/chewxy/math32"
)

// Ray is a world-space ray with a normalized direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// RayFromNDC builds a world-space pick ray from a pointer position in
// normalized device coordinates ([-1,1] on each axis, +Y up) by unprojecting
// the near and far clip-space points through the inverse view-projection
// matrix.
//
// Parameters:
//   - ndcX, ndcY: pointer position in NDC
//   - invViewProj: inverse of the combined view-projection matrix (16 elements, column-major)
//
// Returns:
//   - Ray: the world-space pick ray
func RayFromNDC(ndcX, ndcY float32, invViewProj []float32) Ray {
	// WebGPU clip space has z in [0, 1]: 0 at the near plane, 1 at the far plane.
	near := TransformPoint(invViewProj, V3(ndcX, ndcY, 0))
	far := TransformPoint(invViewProj, V3(ndcX, ndcY, 1))
	return Ray{
		Origin:    near,
		Direction: far.Sub(near).Normalized(),
	}
}

// IntersectSphere tests the ray against a sphere. This is the cheap test that
// gates per-triangle mesh intersection.
//
// Parameters:
//   - center: sphere center in world space
//   - radius: sphere radius
//
// Returns:
//   - float32: distance along the ray to the nearest hit (0 if the origin is inside)
//   - bool: true if the ray hits the sphere
func (r Ray) IntersectSphere(center Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.LengthSq() - radius*radius
	if c > 0 && b > 0 {
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math32.Sqrt(disc)
	if t < 0 {
		t = 0 // origin inside the sphere
	}
	return t, true
}

// IntersectTriangle tests the ray against a single triangle using the
// Möller–Trumbore algorithm. Backfaces count as hits since pick targets may
// be seen from either side.
//
// Parameters:
//   - a, b, c: triangle vertices in world space
//
// Returns:
//   - float32: distance along the ray to the hit
//   - bool: true if the ray hits the triangle
func (r Ray) IntersectTriangle(a, b, c Vec3) (float32, bool) {
	const epsilon = 1e-7

	ab := b.Sub(a)
	ac := c.Sub(a)
	p := r.Direction.Cross(ac)
	det := ab.Dot(p)
	if math32.Abs(det) < epsilon {
		return 0, false // ray parallel to triangle plane
	}

	invDet := 1 / det
	tvec := r.Origin.Sub(a)
	u := tvec.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := tvec.Cross(ab)
	v := r.Direction.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := ac.Dot(q) * invDet
	if t < epsilon {
		return 0, false
	}
	return t, true
}
