package audio

import "time"

// EngineBuilderOption is a functional option for configuring an audio
// Engine.
type EngineBuilderOption func(*engineImpl)

// WithSmoothing sets the parameter easing rate and the smoothing tick
// interval.
//
// Parameters:
//   - lambda: exponential ease rate, higher converges faster
//   - interval: time between smoothing steps
//
// Returns:
//   - EngineBuilderOption: the option function
func WithSmoothing(lambda float64, interval time.Duration) EngineBuilderOption {
	return func(e *engineImpl) {
		if lambda > 0 {
			e.smoothLambda = lambda
		}
		if interval > 0 {
			e.tickInterval = interval
		}
	}
}
