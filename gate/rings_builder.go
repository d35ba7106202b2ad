package gate

// RingBuilderOption is a functional option for configuring a RingController.
type RingBuilderOption func(*ringControllerImpl)

// WithRingSpeeds sets the idle and fully-charged angular speeds in radians
// per second. The effective speed blends linearly between them as activation
// progress rises.
//
// Parameters:
//   - base: the idle speed
//   - max: the speed at full activation
//
// Returns:
//   - RingBuilderOption: the option function
func WithRingSpeeds(base, max float32) RingBuilderOption {
	return func(c *ringControllerImpl) {
		c.baseSpeed = base
		c.maxSpeed = max
	}
}
