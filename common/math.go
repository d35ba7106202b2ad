package common

import (
	"github.com/chewxy/math32"
)

// Identity resets a 4x4 matrix (flat slice) to the identity matrix.
// The matrix is stored in column-major order.
//
// Parameters:
//   - m: destination slice (must be at least 16 elements)
func Identity(m []float32) {
	for i := range m {
		m[i] = 0
	}
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
}

// Mul4 multiplies two 4x4 matrices and stores the result in out.
// All matrices are stored in column-major order (WebGPU convention).
// Result: out = a * b
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - a: left-hand matrix (16 elements)
//   - b: right-hand matrix (16 elements)
func Mul4(out, a, b []float32) {
	var buf [16]float32
	for i := 0; i < 4; i++ { // column of B
		for j := 0; j < 4; j++ { // row of A
			sum := float32(0)
			for k := 0; k < 4; k++ {
				sum += a[k*4+j] * b[i*4+k]
			}
			buf[i*4+j] = sum
		}
	}
	copy(out, buf[:])
}

// Perspective creates a perspective projection matrix.
// Uses the WebGPU clip space convention with z in [0, 1].
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - fovY: vertical field of view in radians
//   - aspect: viewport aspect ratio (width/height)
//   - near: near clipping plane distance (must be > 0)
//   - far: far clipping plane distance (must be > near)
func Perspective(out []float32, fovY, aspect, near, far float32) {
	f := 1.0 / math32.Tan(fovY/2.0)
	Identity(out)

	out[0] = f / aspect
	out[5] = f
	out[10] = far / (near - far)
	out[11] = -1.0
	out[14] = (near * far) / (near - far)
	out[15] = 0.0
}

// LookAt creates a view matrix that positions and orients the camera.
// The resulting matrix transforms world coordinates to view/camera space.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - eye: camera position in world space
//   - center: target point the camera looks at
//   - up: up vector defining camera orientation (typically 0,1,0)
func LookAt(out []float32, eye, center, up Vec3) {
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

	out[0], out[4], out[8], out[12] = x.X, x.Y, x.Z, -x.Dot(eye)
	out[1], out[5], out[9], out[13] = y.X, y.Y, y.Z, -y.Dot(eye)
	out[2], out[6], out[10], out[14] = z.X, z.Y, z.Z, -z.Dot(eye)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// ViewFromPose builds a view matrix from a camera pose (position + orientation).
// The view matrix is the inverse of the rigid transform described by the pose:
// rotation transposed, translation rotated back through it.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - position: camera position in world space
//   - orientation: camera orientation (identity faces -Z)
func ViewFromPose(out []float32, position Vec3, orientation Quat) {
	x := orientation.Rotate(V3(1, 0, 0))
	y := orientation.Rotate(V3(0, 1, 0))
	z := orientation.Rotate(V3(0, 0, 1))

	out[0], out[4], out[8], out[12] = x.X, x.Y, x.Z, -x.Dot(position)
	out[1], out[5], out[9], out[13] = y.X, y.Y, y.Z, -y.Dot(position)
	out[2], out[6], out[10], out[14] = z.X, z.Y, z.Z, -z.Dot(position)
	out[3], out[7], out[11], out[15] = 0, 0, 0, 1
}

// Compose builds a 4x4 model matrix from position, quaternion rotation, and scale.
// The matrix is stored in column-major order.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - position: translation in world space
//   - rotation: orientation quaternion (should be normalized)
//   - scale: scale factors along each local axis
func Compose(out []float32, position Vec3, rotation Quat, scale Vec3) {
	x2, y2, z2 := rotation.X+rotation.X, rotation.Y+rotation.Y, rotation.Z+rotation.Z
	xx, xy, xz := rotation.X*x2, rotation.X*y2, rotation.X*z2
	yy, yz, zz := rotation.Y*y2, rotation.Y*z2, rotation.Z*z2
	wx, wy, wz := rotation.W*x2, rotation.W*y2, rotation.W*z2

	out[0] = (1 - (yy + zz)) * scale.X
	out[1] = (xy + wz) * scale.X
	out[2] = (xz - wy) * scale.X
	out[3] = 0

	out[4] = (xy - wz) * scale.Y
	out[5] = (1 - (xx + zz)) * scale.Y
	out[6] = (yz + wx) * scale.Y
	out[7] = 0

	out[8] = (xz + wy) * scale.Z
	out[9] = (yz - wx) * scale.Z
	out[10] = (1 - (xx + yy)) * scale.Z
	out[11] = 0

	out[12] = position.X
	out[13] = position.Y
	out[14] = position.Z
	out[15] = 1
}

// Invert4 computes the inverse of a 4x4 column-major matrix using the Laplace
// expansion (cofactor) method. If the matrix is singular (determinant ≈ 0) the
// output is left unchanged and the function returns false.
//
// Parameters:
//   - out: destination slice (must be at least 16 elements)
//   - m: source matrix (16 elements, column-major)
//
// Returns:
//   - bool: true if the matrix was successfully inverted, false if singular
func Invert4(out, m []float32) bool {
	s0 := m[0]*m[5] - m[4]*m[1]
	s1 := m[0]*m[6] - m[4]*m[2]
	s2 := m[0]*m[7] - m[4]*m[3]
	s3 := m[1]*m[6] - m[5]*m[2]
	s4 := m[1]*m[7] - m[5]*m[3]
	s5 := m[2]*m[7] - m[6]*m[3]

	c5 := m[10]*m[15] - m[14]*m[11]
	c4 := m[9]*m[15] - m[13]*m[11]
	c3 := m[9]*m[14] - m[13]*m[10]
	c2 := m[8]*m[15] - m[12]*m[11]
	c1 := m[8]*m[14] - m[12]*m[10]
	c0 := m[8]*m[13] - m[12]*m[9]

	det := s0*c5 - s1*c4 + s2*c3 + s3*c2 - s4*c1 + s5*c0
	if det == 0 {
		return false
	}

	invDet := 1.0 / det

	out[0] = (m[5]*c5 - m[6]*c4 + m[7]*c3) * invDet
	out[1] = (-m[1]*c5 + m[2]*c4 - m[3]*c3) * invDet
	out[2] = (m[13]*s5 - m[14]*s4 + m[15]*s3) * invDet
	out[3] = (-m[9]*s5 + m[10]*s4 - m[11]*s3) * invDet

	out[4] = (-m[4]*c5 + m[6]*c2 - m[7]*c1) * invDet
	out[5] = (m[0]*c5 - m[2]*c2 + m[3]*c1) * invDet
	out[6] = (-m[12]*s5 + m[14]*s2 - m[15]*s1) * invDet
	out[7] = (m[8]*s5 - m[10]*s2 + m[11]*s1) * invDet

	out[8] = (m[4]*c4 - m[5]*c2 + m[7]*c0) * invDet
	out[9] = (-m[0]*c4 + m[1]*c2 - m[3]*c0) * invDet
	out[10] = (m[12]*s4 - m[13]*s2 + m[15]*s0) * invDet
	out[11] = (-m[8]*s4 + m[9]*s2 - m[11]*s0) * invDet

	out[12] = (-m[4]*c3 + m[5]*c1 - m[6]*c0) * invDet
	out[13] = (m[0]*c3 - m[1]*c1 + m[2]*c0) * invDet
	out[14] = (-m[12]*s3 + m[13]*s1 - m[14]*s0) * invDet
	out[15] = (m[8]*s3 - m[9]*s1 + m[10]*s0) * invDet

	return true
}

// TransformPoint applies a 4x4 column-major matrix to a point (w = 1),
// performing the perspective divide when w differs from 1.
//
// Parameters:
//   - m: the matrix (16 elements, column-major)
//   - v: the point to transform
//
// Returns:
//   - Vec3: the transformed point
func TransformPoint(m []float32, v Vec3) Vec3 {
	x := m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]
	y := m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]
	z := m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]
	w := m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]
	if w != 0 && w != 1 {
		inv := 1.0 / w
		return V3(x*inv, y*inv, z*inv)
	}
	return V3(x, y, z)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// DampFactor converts an exponential smoothing rate into a per-frame blend
// factor for a given delta time. Using 1 - exp(-lambda*dt) keeps easing speed
// independent of frame rate, which matters because the demand-driven loop
// delivers irregular dt.
//
// Parameters:
//   - lambda: smoothing rate (higher converges faster; ~3.0 reaches 95% in one second)
//   - dt: frame delta time in seconds
//
// Returns:
//   - float32: blend factor in [0, 1)
func DampFactor(lambda, dt float32) float32 {
	return 1 - math32.Exp(-lambda*dt)
}

// Damp eases current toward target using a frame-rate independent
// exponential blend. See DampFactor.
func Damp(current, target, lambda, dt float32) float32 {
	return current + (target-current)*DampFactor(lambda, dt)
}
