package gate

// RockBuilderOption is a functional option for configuring a RockController.
type RockBuilderOption func(*rockControllerImpl)

// WithDrift sets the sinusoidal drift amplitude in world units and the base
// drift speed in radians per second.
//
// Parameters:
//   - amplitude: per-axis drift amplitude
//   - speed: base drift speed, scaled per rock by its speed multiplier
//
// Returns:
//   - RockBuilderOption: the option function
func WithDrift(amplitude, speed float32) RockBuilderOption {
	return func(c *rockControllerImpl) {
		c.driftAmplitude = amplitude
		c.driftSpeed = speed
	}
}

// WithRepel sets the pointer repulsion field parameters. Radius is measured
// in NDC; strength is the world-space push at distance zero.
//
// Parameters:
//   - radius: the screen-space repel radius
//   - strength: the maximum push distance in world units
//
// Returns:
//   - RockBuilderOption: the option function
func WithRepel(radius, strength float32) RockBuilderOption {
	return func(c *rockControllerImpl) {
		c.repelRadius = radius
		c.repelStrength = strength
	}
}

// WithRockEaseLambda sets the exponential ease rate toward the drift and
// repel target.
//
// Parameters:
//   - lambda: the ease rate, higher converges faster
//
// Returns:
//   - RockBuilderOption: the option function
func WithRockEaseLambda(lambda float32) RockBuilderOption {
	return func(c *rockControllerImpl) {
		c.easeLambda = lambda
	}
}
