package gate

// ActivationBuilderOption is a functional option for configuring an
// ActivationController.
type ActivationBuilderOption func(*activationControllerImpl)

// WithActivationDurations sets how long a sustained hold takes to reach full
// progress and how long released progress takes to decay from full back to
// zero.
//
// Parameters:
//   - ramp: seconds from 0 to 1 while held
//   - decay: seconds from 1 to 0 while released
//
// Returns:
//   - ActivationBuilderOption: the option function
func WithActivationDurations(ramp, decay float32) ActivationBuilderOption {
	return func(c *activationControllerImpl) {
		c.rampDuration = ramp
		c.decayDuration = decay
	}
}

// WithMaxShake sets the camera shake amplitude at full activation.
//
// Parameters:
//   - amplitude: the shake amplitude in view-space units
//
// Returns:
//   - ActivationBuilderOption: the option function
func WithMaxShake(amplitude float32) ActivationBuilderOption {
	return func(c *activationControllerImpl) {
		c.maxShake = amplitude
	}
}

// WithFlashEnvelope sets the terminal flash envelope shape.
//
// Parameters:
//   - ramp: ramp-up time in seconds
//   - hold: hold time at full white in seconds
//   - decay: decay time in seconds
//
// Returns:
//   - ActivationBuilderOption: the option function
func WithFlashEnvelope(ramp, hold, decay float32) ActivationBuilderOption {
	return func(c *activationControllerImpl) {
		c.flashRamp = ramp
		c.flashHold = hold
		c.flashDecay = decay
	}
}
