package gate

// DustBuilderOption is a functional option for configuring a DustController.
type DustBuilderOption func(*dustControllerImpl)

// WithDustPoolSize sets the fixed number of pooled motes.
//
// Parameters:
//   - size: the pool size (values < 1 are ignored)
//
// Returns:
//   - DustBuilderOption: the option function
func WithDustPoolSize(size int) DustBuilderOption {
	return func(c *dustControllerImpl) {
		if size < 1 {
			return
		}
		c.poolSize = size
	}
}

// WithDustVolume sets the cylinder-ish volume the motes fall through,
// centered on the gate.
//
// Parameters:
//   - radius: half-extent along x and z
//   - height: full extent along y
//
// Returns:
//   - DustBuilderOption: the option function
func WithDustVolume(radius, height float32) DustBuilderOption {
	return func(c *dustControllerImpl) {
		c.radius = radius
		c.height = height
	}
}

// WithDustSpeed sets the base fall speed at full activation.
//
// Parameters:
//   - speed: world units per second
//
// Returns:
//   - DustBuilderOption: the option function
func WithDustSpeed(speed float32) DustBuilderOption {
	return func(c *dustControllerImpl) {
		c.baseSpeed = speed
	}
}
