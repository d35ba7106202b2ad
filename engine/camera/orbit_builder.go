package camera

// OrbitControllerOption is a functional option for configuring an
// OrbitController at creation time.
type OrbitControllerOption func(*orbitControllerImpl)

// WithRadiusRange sets the minimum and maximum orbit radius.
//
// Parameters:
//   - minRadius: smallest allowed radius
//   - maxRadius: largest allowed radius
//
// Returns:
//   - OrbitControllerOption: the option function
func WithRadiusRange(minRadius, maxRadius float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minRadius = minRadius
		oc.maxRadius = maxRadius
	}
}

// WithElevationRange sets the minimum and maximum orbit elevation in radians.
//
// Parameters:
//   - minElevation: lowest allowed elevation
//   - maxElevation: highest allowed elevation
//
// Returns:
//   - OrbitControllerOption: the option function
func WithElevationRange(minElevation, maxElevation float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.minElevation = minElevation
		oc.maxElevation = maxElevation
	}
}

// WithDragSensitivity sets the pointer drag sensitivity in radians per pixel.
//
// Parameters:
//   - sensitivity: radians of rotation per pixel of drag
//
// Returns:
//   - OrbitControllerOption: the option function
func WithDragSensitivity(sensitivity float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.dragSensitivity = sensitivity
	}
}

// WithDollySpeed sets the scroll-to-radius speed for dolly moves.
//
// Parameters:
//   - speed: radius units per unit of scroll delta
//
// Returns:
//   - OrbitControllerOption: the option function
func WithDollySpeed(speed float32) OrbitControllerOption {
	return func(oc *orbitControllerImpl) {
		oc.dollySpeed = speed
	}
}
