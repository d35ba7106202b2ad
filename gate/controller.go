// Package gate holds the stargate domain controllers: pillar hover and
// focus, ring rotation, the rock drift field, day/night blending, lightning,
// rain, activation dust, the activation sequence, and the overlay text layer.
//
// Controllers coordinate exclusively through the shared store. Each mirrors
// the store fields it needs into plain struct fields inside its subscription
// callback and reads only those mirrors during Update; no controller holds a
// reference to another controller's internals. Cross-controller effects are
// always expressed as "read the last published value, converge toward it",
// which tolerates one frame of staleness.
package gate

// Controller is one per-frame animation unit. Update advances continuous
// state by dt seconds and reports whether the controller has settled; any
// unsettled controller causes the frame loop to schedule another frame.
type Controller interface {
	// Update advances the controller's animation state.
	//
	// Parameters:
	//   - dt: seconds elapsed since the previous frame (not assumed constant)
	//
	// Returns:
	//   - bool: true when the controller has no ongoing motion
	Update(dt float32) (settled bool)
}
