package gate

// DayNightBuilderOption is a functional option for configuring a
// DayNightController.
type DayNightBuilderOption func(*dayNightControllerImpl)

// WithDayTargets overrides the daytime parameter set.
//
// Parameters:
//   - targets: the day targets
//
// Returns:
//   - DayNightBuilderOption: the option function
func WithDayTargets(targets DayNightTargets) DayNightBuilderOption {
	return func(c *dayNightControllerImpl) {
		c.day = targets
	}
}

// WithNightTargets overrides the night-time parameter set.
//
// Parameters:
//   - targets: the night targets
//
// Returns:
//   - DayNightBuilderOption: the option function
func WithNightTargets(targets DayNightTargets) DayNightBuilderOption {
	return func(c *dayNightControllerImpl) {
		c.night = targets
	}
}

// WithBlendLambda sets the shared exponential ease rate for every blended
// parameter.
//
// Parameters:
//   - lambda: the ease rate, higher converges faster
//
// Returns:
//   - DayNightBuilderOption: the option function
func WithBlendLambda(lambda float32) DayNightBuilderOption {
	return func(c *dayNightControllerImpl) {
		c.easeLambda = lambda
	}
}

// WithSwapThreshold sets the background intensity below which the texture
// swap is allowed.
//
// Parameters:
//   - threshold: the near-zero swap threshold
//
// Returns:
//   - DayNightBuilderOption: the option function
func WithSwapThreshold(threshold float32) DayNightBuilderOption {
	return func(c *dayNightControllerImpl) {
		c.swapThreshold = threshold
	}
}
