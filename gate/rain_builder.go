package gate

import "github.com/hollis-dev/stargate/common"

// RainBuilderOption is a functional option for configuring a RainController.
type RainBuilderOption func(*rainControllerImpl)

// WithRainPoolSize sets the fixed number of pooled drops.
//
// Parameters:
//   - size: the pool size (values < 1 are ignored)
//
// Returns:
//   - RainBuilderOption: the option function
func WithRainPoolSize(size int) RainBuilderOption {
	return func(c *rainControllerImpl) {
		if size < 1 {
			return
		}
		c.poolSize = size
	}
}

// WithRainVolume sets the world-space volume the drops fall through,
// centered on the origin in x and z.
//
// Parameters:
//   - halfWidth: half-extent along x
//   - height: full extent along y
//   - halfDepth: half-extent along z
//
// Returns:
//   - RainBuilderOption: the option function
func WithRainVolume(halfWidth, height, halfDepth float32) RainBuilderOption {
	return func(c *rainControllerImpl) {
		c.halfWidth = halfWidth
		c.height = height
		c.halfDepth = halfDepth
	}
}

// WithRainDirection sets the constant fall direction. The vector is
// normalized.
//
// Parameters:
//   - direction: the fall direction
//
// Returns:
//   - RainBuilderOption: the option function
func WithRainDirection(direction common.Vec3) RainBuilderOption {
	return func(c *rainControllerImpl) {
		c.direction = direction.Normalized()
	}
}

// WithRainFadeLambda sets the exponential ease rate of the global opacity
// toward the raining flag.
//
// Parameters:
//   - lambda: the ease rate, higher converges faster
//
// Returns:
//   - RainBuilderOption: the option function
func WithRainFadeLambda(lambda float32) RainBuilderOption {
	return func(c *rainControllerImpl) {
		c.fadeLamda = lambda
	}
}
