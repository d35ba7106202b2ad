package gate

// LightningBuilderOption is a functional option for configuring a
// LightningController.
type LightningBuilderOption func(*lightningControllerImpl)

// WithStrikeDelay sets the randomized countdown range, in seconds, between
// flashes.
//
// Parameters:
//   - min: the minimum delay
//   - max: the maximum delay
//
// Returns:
//   - LightningBuilderOption: the option function
func WithStrikeDelay(min, max float32) LightningBuilderOption {
	return func(c *lightningControllerImpl) {
		c.minDelay = min
		c.maxDelay = max
	}
}

// WithStrikeEnvelope sets the fixed flash envelope shape.
//
// Parameters:
//   - ramp: linear ramp-up time in seconds
//   - hold: hold time at peak in seconds
//   - decay: linear decay time in seconds
//
// Returns:
//   - LightningBuilderOption: the option function
func WithStrikeEnvelope(ramp, hold, decay float32) LightningBuilderOption {
	return func(c *lightningControllerImpl) {
		c.rampTime = ramp
		c.holdTime = hold
		c.decayTime = decay
	}
}

// WithStrikeIntensity sets the peak intensity of a primary flash.
//
// Parameters:
//   - peak: the peak light intensity
//
// Returns:
//   - LightningBuilderOption: the option function
func WithStrikeIntensity(peak float32) LightningBuilderOption {
	return func(c *lightningControllerImpl) {
		c.peakIntensity = peak
	}
}

// WithDoubleFlash sets the double-flash behavior: the chance per flash of a
// follow-up strike, the gap before it, and its intensity relative to the
// primary.
//
// Parameters:
//   - chance: probability in [0, 1]
//   - gap: seconds between the strikes
//   - dim: intensity multiplier for the second strike
//
// Returns:
//   - LightningBuilderOption: the option function
func WithDoubleFlash(chance, gap, dim float32) LightningBuilderOption {
	return func(c *lightningControllerImpl) {
		c.doubleChance = chance
		c.doubleGap = gap
		c.doubleDim = dim
	}
}

// WithStrikeRange sets the horizontal randomization range for strike
// positions, in world units either side of the authored position.
//
// Parameters:
//   - xRange: the horizontal half-range
//
// Returns:
//   - LightningBuilderOption: the option function
func WithStrikeRange(xRange float32) LightningBuilderOption {
	return func(c *lightningControllerImpl) {
		c.xRange = xRange
	}
}
