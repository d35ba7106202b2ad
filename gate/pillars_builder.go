package gate

import "github.com/hollis-dev/stargate/engine/store"

// PillarBuilderOption is a functional option for configuring a
// PillarController.
type PillarBuilderOption func(*pillarControllerImpl)

// WithRiseHeight sets how far a hovered pillar rises along its tilt axis.
//
// Parameters:
//   - height: the rise distance in world units
//
// Returns:
//   - PillarBuilderOption: the option function
func WithRiseHeight(height float32) PillarBuilderOption {
	return func(c *pillarControllerImpl) {
		c.riseHeight = height
	}
}

// WithTiltAngle sets the hover tilt angle in radians.
//
// Parameters:
//   - angle: the tilt angle
//
// Returns:
//   - PillarBuilderOption: the option function
func WithTiltAngle(angle float32) PillarBuilderOption {
	return func(c *pillarControllerImpl) {
		c.tiltAngle = angle
	}
}

// WithPillarEaseLambda sets the exponential ease rate for hover transitions.
//
// Parameters:
//   - lambda: the ease rate, higher converges faster
//
// Returns:
//   - PillarBuilderOption: the option function
func WithPillarEaseLambda(lambda float32) PillarBuilderOption {
	return func(c *pillarControllerImpl) {
		c.easeLambda = lambda
	}
}

// WithPanelSlugs overrides which content panel each pillar opens when
// clicked. Sides absent from the map keep their default slug.
//
// Parameters:
//   - slugs: pillar side to content slug mapping
//
// Returns:
//   - PillarBuilderOption: the option function
func WithPanelSlugs(slugs map[store.PillarSide]string) PillarBuilderOption {
	return func(c *pillarControllerImpl) {
		c.slugs = slugs
	}
}
