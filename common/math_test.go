package common

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, float32(0), Clamp(-1, 0, 1))
	assert.Equal(t, float32(1), Clamp(2, 0, 1))
	assert.Equal(t, float32(0.5), Clamp(0.5, 0, 1))
}

func TestDampFactorFrameRateIndependence(t *testing.T) {
	// One big step covers the same fraction as the equivalent chain of small
	// steps.
	const lambda = float32(3.0)
	single := Damp(0, 1, lambda, 1.0)

	chained := float32(0)
	for i := 0; i < 60; i++ {
		chained = Damp(chained, 1, lambda, 1.0/60.0)
	}
	assert.InDelta(t, single, chained, 1e-4)

	// ~95% converged after one second at lambda 3.
	assert.InDelta(t, 0.95, single, 0.01)
}

func TestDampFactorBounds(t *testing.T) {
	assert.Equal(t, float32(0), DampFactor(3, 0))
	assert.Less(t, DampFactor(3, 10), float32(1.0001))
	assert.Greater(t, DampFactor(3, 10), float32(0.999))
}

func TestTransformPointPerspectiveDivide(t *testing.T) {
	var proj [16]float32
	Perspective(proj[:], math32.Pi/2, 1, 0.1, 100)

	// A point on the -Z axis projects to the NDC center.
	p := TransformPoint(proj[:], V3(0, 0, -10))
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)

	// At a 90 degree FOV the frustum edge sits at |x| == |z|.
	edge := TransformPoint(proj[:], V3(10, 0, -10))
	assert.InDelta(t, 1, edge.X, 1e-4)
}

func TestInvertRoundTrip(t *testing.T) {
	var view, inv, product [16]float32
	LookAt(view[:], V3(3, 2, 8), V3(0, 1, 0), V3(0, 1, 0))
	require.True(t, Invert4(inv[:], view[:]))

	Mul4(product[:], view[:], inv[:])
	var identity [16]float32
	Identity(identity[:])
	for i := range product {
		assert.InDelta(t, identity[i], product[i], 1e-5)
	}
}

func TestVec3Normalized(t *testing.T) {
	v := V3(3, 4, 0).Normalized()
	assert.InDelta(t, 1, v.Length(), 1e-6)
	assert.InDelta(t, 0.6, v.X, 1e-6)

	// Degenerate input stays zero instead of producing NaNs.
	zero := Vec3{}.Normalized()
	assert.Equal(t, Vec3{}, zero)
}

func TestVec3Lerp(t *testing.T) {
	a := V3(0, 0, 0)
	b := V3(2, 4, 6)
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, V3(1, 2, 3), a.Lerp(b, 0.5))
}

func TestQuatAxisAngleRotation(t *testing.T) {
	// A quarter turn about +Z carries +X onto +Y.
	q := QuatFromAxisAngle(V3(0, 0, 1), math32.Pi/2)
	v := q.Rotate(V3(1, 0, 0))
	assert.InDelta(t, 0, v.X, 1e-6)
	assert.InDelta(t, 1, v.Y, 1e-6)
	assert.InDelta(t, 0, v.Z, 1e-6)
}

func TestQuatLookAtFacesTarget(t *testing.T) {
	eye := V3(0, 0, 5)
	q := QuatLookAt(eye, V3(0, 0, 0), V3(0, 1, 0))

	// The camera's forward axis is -Z; looking down the axis from +5 the
	// rotated forward must point toward the origin.
	forward := q.Rotate(V3(0, 0, -1))
	assert.InDelta(t, -1, forward.Z, 1e-5)
	assert.InDelta(t, 0, forward.X, 1e-5)
}

func TestQuatSlerpEndpoints(t *testing.T) {
	a := QuatIdentity()
	b := QuatFromAxisAngle(V3(0, 1, 0), math32.Pi/3)

	assert.InDelta(t, 0, a.Slerp(b, 0).AngleTo(a), 1e-4)
	assert.InDelta(t, 0, a.Slerp(b, 1).AngleTo(b), 1e-4)

	mid := a.Slerp(b, 0.5)
	assert.InDelta(t, math32.Pi/6, mid.AngleTo(a), 1e-4)
}

func TestRayIntersectSphere(t *testing.T) {
	ray := Ray{Origin: V3(0, 0, 5), Direction: V3(0, 0, -1)}

	dist, hit := ray.IntersectSphere(V3(0, 0, 0), 1)
	require.True(t, hit)
	assert.InDelta(t, 4, dist, 1e-5)

	_, hit = ray.IntersectSphere(V3(5, 0, 0), 1)
	assert.False(t, hit)

	// Spheres behind the origin do not count.
	_, hit = ray.IntersectSphere(V3(0, 0, 10), 1)
	assert.False(t, hit)
}

func TestRayIntersectTriangle(t *testing.T) {
	ray := Ray{Origin: V3(0.1, 0.1, 5), Direction: V3(0, 0, -1)}

	a := V3(-1, -1, 0)
	b := V3(1, -1, 0)
	c := V3(0, 1, 0)

	dist, hit := ray.IntersectTriangle(a, b, c)
	require.True(t, hit)
	assert.InDelta(t, 5, dist, 1e-5)

	miss := Ray{Origin: V3(3, 3, 5), Direction: V3(0, 0, -1)}
	_, hit = miss.IntersectTriangle(a, b, c)
	assert.False(t, hit)
}
