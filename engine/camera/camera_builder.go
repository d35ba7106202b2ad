package camera

import (
	"github.com/hollis-dev/stargate/common"
)

// CameraBuilderOption is a functional option for configuring a Camera at
// creation time.
type CameraBuilderOption func(*cameraImpl)

// WithPose sets the initial position and orientation of the camera.
//
// Parameters:
//   - position: world-space position
//   - orientation: orientation quaternion (identity faces -Z)
//
// Returns:
//   - CameraBuilderOption: the option function
func WithPose(position common.Vec3, orientation common.Quat) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = position
		c.orientation = orientation.Normalized()
	}
}

// WithFov sets the initial vertical field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: the option function
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the initial aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio
//
// Returns:
//   - CameraBuilderOption: the option function
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the initial near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: the option function
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the initial far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: the option function
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}
