package camera

// RigBuilderOption is a functional option for configuring a Rig at creation
// time.
type RigBuilderOption func(*rigImpl)

// WithOrbit sets the orbit controller used in FreeLook mode.
//
// Parameters:
//   - orbit: the orbit controller to use
//
// Returns:
//   - RigBuilderOption: the option function
func WithOrbit(orbit OrbitController) RigBuilderOption {
	return func(r *rigImpl) {
		if orbit != nil {
			r.orbit = orbit
		}
	}
}

// WithWheelSensitivity sets the scroll-to-zoom sensitivity in zoom units per
// unit of scroll delta.
//
// Parameters:
//   - sensitivity: the sensitivity to set
//
// Returns:
//   - RigBuilderOption: the option function
func WithWheelSensitivity(sensitivity float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.wheelSensitivity = sensitivity
	}
}

// WithParallaxAmplitude sets the pointer parallax amplitude in radians at
// zoom 0.
//
// Parameters:
//   - amplitude: the amplitude to set
//
// Returns:
//   - RigBuilderOption: the option function
func WithParallaxAmplitude(amplitude float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.parallaxAmplitude = amplitude
	}
}

// WithEaseLambda sets the exponential smoothing rate used for normal
// transitions.
//
// Parameters:
//   - lambda: the smoothing rate
//
// Returns:
//   - RigBuilderOption: the option function
func WithEaseLambda(lambda float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.easeLambda = lambda
	}
}

// WithReturnEpsilons sets the arrival thresholds for the two return
// transitions. The free-look return uses the tighter epsilon, the focus
// return the looser one since focus poses sit farther from home.
//
// Parameters:
//   - returnEpsilon: arrival threshold after FreeLook
//   - focusEpsilon: arrival threshold after PillarFocus
//
// Returns:
//   - RigBuilderOption: the option function
func WithReturnEpsilons(returnEpsilon, focusEpsilon float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.returnEpsilon = returnEpsilon
		r.focusEpsilon = focusEpsilon
	}
}

// WithFovZoomScales sets the fov multipliers reached at full zoom in and full
// zoom out. The fov-for-zoom mapping interpolates between the base fov and
// these extremes.
//
// Parameters:
//   - inScale: fov multiplier at zoom +1 (must be < 1 for zoom-in to narrow)
//   - outScale: fov multiplier at zoom -1 (must be > 1 for zoom-out to widen)
//
// Returns:
//   - RigBuilderOption: the option function
func WithFovZoomScales(inScale, outScale float32) RigBuilderOption {
	return func(r *rigImpl) {
		r.fovInScale = inScale
		r.fovOutScale = outScale
	}
}
